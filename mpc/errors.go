package mpc

import "errors"

// Sentinel errors per the system's error taxonomy. Verification failures
// are deliberately collapsed into one opaque value: a verifier must not
// give a tampering party a channel to learn which specific predicate
// tripped.
var (
	// ErrUnconstrainedVariable is returned by New when an auxiliary
	// variable's L entry evaluates to the identity point — in practice,
	// the variable appears in no constraint at all.
	ErrUnconstrainedVariable = errors.New("mpc: auxiliary variable is unconstrained")

	// ErrDomainTooLarge is returned by New when the circuit's constraint
	// count would require an evaluation domain larger than 2^21, for
	// which no Phase-1 transcript is assumed to exist.
	ErrDomainTooLarge = errors.New("mpc: constraint count exceeds the supported domain (2^21)")

	// ErrTranscriptIO wraps failures reading the Phase-1 transcript: a
	// missing file, a short read, an invalid point encoding, or an
	// identity point where one is not permitted.
	ErrTranscriptIO = errors.New("mpc: phase-1 transcript io error")

	// ErrVerificationFailure is returned by VerifyContribution and
	// (*State).Verify for any failed check. It carries no detail about
	// which predicate failed.
	ErrVerificationFailure = errors.New("mpc: contribution verification failed")
)
