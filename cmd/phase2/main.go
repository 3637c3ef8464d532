// main.go - Phase-2 trusted-setup ceremony CLI. Subcommand dispatch
// follows the teacher pack's own plain-flag CLI idiom (os.Args[1] picks a
// subcommand, each subcommand owns its own flag.FlagSet), rather than the
// teacher's own cmd/auctiond (which hard-codes a single scenario with no
// flags at all) — the contribute/verify workflow here genuinely needs
// per-invocation paths a fixed scenario doesn't.
package main

import (
	"fmt"
	"os"

	"phase2/mpc"
	"phase2/mpcio"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: phase2 <new|contribute|verify-step|verify> [flags]

Subcommands:
  new          Build the initial (contribution-free) parameter set.
               Flags:
                 -circuit  <name>   circuit to synthesize (see registry.go)
                 -phase1   <dir>    directory holding phase1radix2m{k}
                 -out      <path>   where to write the resulting state
                 -config   <path>   config file (default: phase2.json)

  contribute   Apply one contributor's entropy to an existing state.
               Flags:
                 -in       <path>   state to extend
                 -out      <path>   where to write the extended state
                 -config   <path>   config file (default: phase2.json)

  verify-step  Check that one state extends another by exactly one valid
               contribution.
               Flags:
                 -before   <path>
                 -after    <path>

  verify       Independently audit a full contribution chain against the
               circuit that should have produced it.
               Flags:
                 -circuit  <name>
                 -phase1   <dir>
                 -in       <path>   final state to audit`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	var err error
	switch os.Args[1] {
	case "new":
		err = runNew(os.Args[2:])
	case "contribute":
		err = runContribute(os.Args[2:])
	case "verify-step":
		err = runVerifyStep(os.Args[2:])
	case "verify":
		err = runVerify(os.Args[2:])
	default:
		usage()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "phase2: %v\n", err)
		os.Exit(1)
	}
}

// loadLogger builds the CLI's Logger from the resolved Config, used by
// the new, contribute and verify subcommands to keep a single
// console+audit trail convention. verify-step takes no config and does
// not log.
func loadLogger(configPath string) (*Config, *Logger, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	auditPath := ""
	if cfg.EnableAudit {
		auditPath = cfg.AuditLogPath
	}
	logger, err := NewLogger(cfg.LogLevel, cfg.LogFile, auditPath)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

func runNew(args []string) error {
	fs := newFlagSet("new")
	circuitName := fs.String("circuit", "cuberoot", "circuit to synthesize")
	phase1Dir := fs.String("phase1", "", "phase1 transcript directory (defaults to config)")
	out := fs.String("out", "", "output state path (defaults to config)")
	configPath := fs.String("config", "phase2.json", "config file path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := loadLogger(*configPath)
	if err != nil {
		return err
	}
	defer logger.Close()

	dir := resolve(*phase1Dir, cfg.Phase1Dir)
	outPath := resolve(*out, cfg.StatePath)

	circuit, err := lookupCircuit(*circuitName)
	if err != nil {
		return err
	}

	logger.Info("building initial parameters: circuit=%s phase1=%s", *circuitName, dir)
	state, err := mpc.New(circuit, dir)
	if err != nil {
		logger.Error("build failed: %v", err)
		return err
	}

	if err := mpcio.Save(outPath, state); err != nil {
		return err
	}
	logger.Audit("parameters_built", map[string]interface{}{
		"circuit": *circuitName,
		"out":     outPath,
	})
	fmt.Printf("wrote initial parameters to %s (cs_hash=%x)\n", outPath, state.CSHash)
	return nil
}

func runContribute(args []string) error {
	fs := newFlagSet("contribute")
	in := fs.String("in", "", "input state path (defaults to config)")
	out := fs.String("out", "", "output state path (defaults to input)")
	configPath := fs.String("config", "phase2.json", "config file path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := loadLogger(*configPath)
	if err != nil {
		return err
	}
	defer logger.Close()

	inPath := resolve(*in, cfg.StatePath)
	outPath := resolve(*out, inPath)

	state, err := mpcio.Load(inPath)
	if err != nil {
		return err
	}

	receipt, err := state.ContributeRandom()
	if err != nil {
		logger.Error("contribution failed: %v", err)
		return err
	}

	if err := mpcio.Save(outPath, state); err != nil {
		return err
	}
	logger.Audit("contribution_accepted", map[string]interface{}{
		"out":     outPath,
		"receipt": mpcio.ReceiptHex(receipt),
	})
	fmt.Printf("wrote extended parameters to %s\nyour receipt: %s\n", outPath, mpcio.ReceiptHex(receipt))
	return nil
}

func runVerifyStep(args []string) error {
	fs := newFlagSet("verify-step")
	before := fs.String("before", "", "prior state path")
	after := fs.String("after", "", "candidate extended state path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *before == "" || *after == "" {
		return fmt.Errorf("both -before and -after are required")
	}

	beforeState, err := mpcio.Load(*before)
	if err != nil {
		return err
	}
	afterState, err := mpcio.Load(*after)
	if err != nil {
		return err
	}

	if err := mpc.VerifyContribution(beforeState, afterState); err != nil {
		return err
	}
	fmt.Println("ok: the candidate state extends the prior state by one valid contribution")
	return nil
}

func runVerify(args []string) error {
	fs := newFlagSet("verify")
	circuitName := fs.String("circuit", "cuberoot", "circuit to synthesize")
	phase1Dir := fs.String("phase1", "", "phase1 transcript directory (defaults to config)")
	in := fs.String("in", "", "final state path (defaults to config)")
	configPath := fs.String("config", "phase2.json", "config file path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := loadLogger(*configPath)
	if err != nil {
		return err
	}
	defer logger.Close()

	dir := resolve(*phase1Dir, cfg.Phase1Dir)
	inPath := resolve(*in, cfg.StatePath)

	circuit, err := lookupCircuit(*circuitName)
	if err != nil {
		return err
	}

	state, err := mpcio.Load(inPath)
	if err != nil {
		return err
	}

	receipts, err := state.Verify(circuit, dir)
	if err != nil {
		logger.Error("chain verification failed: %v", err)
		return err
	}

	logger.Audit("chain_verified", map[string]interface{}{
		"contributions": len(receipts),
	})
	fmt.Printf("chain verified: %d contribution(s)\n", len(receipts))
	for i, r := range receipts {
		fmt.Printf("  [%d] %s\n", i, mpcio.ReceiptHex(r))
	}
	return nil
}

func resolve(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}
