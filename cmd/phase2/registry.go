package main

import (
	"flag"
	"fmt"

	"phase2/circuits/cuberoot"
	"phase2/circuits/preimage"
	"phase2/r1cs"
)

// newFlagSet builds a FlagSet for a subcommand, exiting on parse error
// instead of panicking — ordinary CLI behavior for a bad flag.
func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ExitOnError)
}

// circuitRegistry maps a circuit name given on the command line to the
// r1cs.Circuit it synthesizes — the "black-box circuit DSL" of spec §1 is
// always reached through this seam, never hard-coded into the ceremony
// commands themselves.
var circuitRegistry = map[string]r1cs.Circuit{
	"cuberoot":  cuberoot.CubeRoot{},
	"preimage":  preimage.Preimage{Rounds: 4},
	"preimage8": preimage.Preimage{Rounds: 8},
}

func lookupCircuit(name string) (r1cs.Circuit, error) {
	c, ok := circuitRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown circuit %q (known: cuberoot, preimage, preimage8)", name)
	}
	return c, nil
}
