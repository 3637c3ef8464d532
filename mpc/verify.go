package mpc

import (
	"io"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"phase2/r1cs"
	"phase2/transcript"
)

// bindingHash recomputes the PublicKey.Transcript field: Blake2b-64 over
// cs_hash, every prior contribution in order, then the candidate's s and
// s_delta. before is the chain the candidate's transcript is bound to, so
// callers pass the contributions that existed when the candidate was
// produced. Used by VerifyContribution, which only ever checks one
// candidate against one fixed prefix.
func bindingHash(csHash [64]byte, before []PublicKey, s, sDelta bls12381.G1Affine) ([64]byte, error) {
	tw := transcript.New(io.Discard)
	if _, err := tw.Write(csHash[:]); err != nil {
		return [64]byte{}, err
	}
	for i := range before {
		if err := writePublicKey(tw, &before[i]); err != nil {
			return [64]byte{}, err
		}
	}
	return bindingHashTail(tw, s, sDelta)
}

// bindingHashTail forks prefix and writes the candidate's s and s_delta
// onto the fork, leaving prefix untouched so the caller can reuse it for
// the next candidate's tail. This is the speculative-write case
// transcript.Fork exists for: (*State).Verify walks a growing chain and
// would otherwise re-hash the whole prior chain from scratch for every
// contribution it checks.
func bindingHashTail(prefix *transcript.Writer, s, sDelta bls12381.G1Affine) ([64]byte, error) {
	tw := prefix.Fork()
	if err := writeG1(tw, &s); err != nil {
		return [64]byte{}, err
	}
	if err := writeG1(tw, &sDelta); err != nil {
		return [64]byte{}, err
	}
	return tw.Sum(), nil
}

// checkPoK verifies a single PublicKey's proof of knowledge of delta:
// that s_delta and r_delta share delta's discrete log, and that the
// delta injected into deltaBefore (producing pk.DeltaAfter) is that same
// delta.
func checkPoK(pk PublicKey, deltaBeforeG1 bls12381.G1Affine, r bls12381.G2Affine) (bool, error) {
	ok1, err := sameRatio(pk.S, pk.SDelta, r, pk.RDelta)
	if err != nil || !ok1 {
		return false, err
	}
	ok2, err := sameRatio(deltaBeforeG1, pk.DeltaAfter, r, pk.RDelta)
	if err != nil || !ok2 {
		return false, err
	}
	return true, nil
}

// VerifyContribution checks that after extends before by exactly one
// valid contribution. Every predicate failure — tampering, a skipped
// check, a malformed chain — collapses to the same ErrVerificationFailure
// so a tamperer learns nothing about which check tripped.
func VerifyContribution(before, after *State) error {
	ok, err := verifyContribution(before, after)
	if err != nil {
		log.Error().Err(err).Msg("contribution verification errored")
		return err
	}
	if !ok {
		log.Warn().Msg("contribution verification failed")
		return ErrVerificationFailure
	}
	log.Info().Msg("contribution verification succeeded")
	return nil
}

func verifyContribution(before, after *State) (bool, error) {
	if len(after.Contributions) != len(before.Contributions)+1 {
		return false, nil
	}
	for i := range before.Contributions {
		if !before.Contributions[i].Equal(after.Contributions[i]) {
			return false, nil
		}
	}
	if len(after.Params.H) != len(before.Params.H) || len(after.Params.L) != len(before.Params.L) {
		return false, nil
	}
	if !frozenEqual(&before.Params, &after.Params) || before.CSHash != after.CSHash {
		return false, nil
	}

	pk := after.Contributions[len(after.Contributions)-1]
	hp, err := bindingHash(before.CSHash, before.Contributions, pk.S, pk.SDelta)
	if err != nil {
		return false, err
	}
	if hp != pk.Transcript {
		return false, nil
	}

	r, err := hashToG2(hp)
	if err != nil {
		return false, err
	}
	okPoK, err := checkPoK(pk, before.Params.VK.DeltaG1, r)
	if err != nil {
		return false, err
	}
	if !okPoK {
		return false, nil
	}

	if !after.Params.VK.DeltaG1.Equal(&pk.DeltaAfter) {
		return false, nil
	}

	_, _, g1Gen, g2Gen := bls12381.Generators()
	okDelta, err := sameRatio(g1Gen, after.Params.VK.DeltaG1, g2Gen, after.Params.VK.DeltaG2)
	if err != nil || !okDelta {
		return false, err
	}

	for _, q := range [][2][]bls12381.G1Affine{
		{before.Params.H, after.Params.H},
		{before.Params.L, after.Params.L},
	} {
		s, sp, err := mergePairs(q[0], q[1])
		if err != nil {
			return false, err
		}
		okQ, err := sameRatio(s, sp, after.Params.VK.DeltaG2, before.Params.VK.DeltaG2)
		if err != nil {
			return false, err
		}
		if !okQ {
			return false, nil
		}
	}

	return true, nil
}

// frozenEqual compares the fields every contribution must leave
// untouched: alpha, beta, gamma, IC, and the A/B_G1/B_G2 MSM queries.
func frozenEqual(a, b *Parameters) bool {
	if !a.VK.AlphaG1.Equal(&b.VK.AlphaG1) || !a.VK.BetaG1.Equal(&b.VK.BetaG1) ||
		!a.VK.BetaG2.Equal(&b.VK.BetaG2) || !a.VK.GammaG2.Equal(&b.VK.GammaG2) {
		return false
	}
	if len(a.VK.IC) != len(b.VK.IC) {
		return false
	}
	for i := range a.VK.IC {
		if !a.VK.IC[i].Equal(&b.VK.IC[i]) {
			return false
		}
	}
	if len(a.A) != len(b.A) || len(a.BG1) != len(b.BG1) || len(a.BG2) != len(b.BG2) {
		return false
	}
	for i := range a.A {
		if !a.A[i].Equal(&b.A[i]) {
			return false
		}
	}
	for i := range a.BG1 {
		if !a.BG1[i].Equal(&b.BG1[i]) {
			return false
		}
	}
	for i := range a.BG2 {
		if !a.BG2[i].Equal(&b.BG2[i]) {
			return false
		}
	}
	return true
}

// Verify independently audits a full contribution chain against the
// circuit that should have produced it: it rebuilds genesis parameters,
// confirms every contribution's proof of knowledge, and returns the
// ordered receipts a contributor can search for with
// ContainsContribution.
func (s *State) Verify(circuit r1cs.Circuit, phase1Dir string) ([][64]byte, error) {
	log.Info().Int("contributions", len(s.Contributions)).Msg("verifying ceremony chain")
	initial, err := New(circuit, phase1Dir)
	if err != nil {
		return nil, err
	}
	if !frozenEqual(&initial.Params, &s.Params) || initial.CSHash != s.CSHash {
		return nil, ErrVerificationFailure
	}

	_, _, g1Gen, g2Gen := bls12381.Generators()
	currentDeltaG1 := g1Gen

	// prefix accumulates cs_hash followed by each contribution in order;
	// bindingHashTail forks it per contribution so the shared prefix is
	// hashed once per contribution appended, not once per contribution
	// checked.
	prefix := transcript.New(io.Discard)
	if _, err := prefix.Write(s.CSHash[:]); err != nil {
		return nil, err
	}

	receipts := make([][64]byte, len(s.Contributions))
	for i, pk := range s.Contributions {
		hp, err := bindingHashTail(prefix, pk.S, pk.SDelta)
		if err != nil {
			return nil, err
		}
		if hp != pk.Transcript {
			return nil, ErrVerificationFailure
		}

		r, err := hashToG2(hp)
		if err != nil {
			return nil, err
		}
		ok, err := checkPoK(pk, currentDeltaG1, r)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrVerificationFailure
		}
		currentDeltaG1 = pk.DeltaAfter

		if err := writePublicKey(prefix, &pk); err != nil {
			return nil, err
		}

		rw := transcript.New(io.Discard)
		if err := writePublicKey(rw, &pk); err != nil {
			return nil, err
		}
		receipts[i] = rw.Sum()
	}

	if !currentDeltaG1.Equal(&s.Params.VK.DeltaG1) {
		return nil, ErrVerificationFailure
	}
	okDelta, err := sameRatio(g1Gen, s.Params.VK.DeltaG1, g2Gen, s.Params.VK.DeltaG2)
	if err != nil {
		return nil, err
	}
	if !okDelta {
		return nil, ErrVerificationFailure
	}

	for _, q := range [][2][]bls12381.G1Affine{
		{initial.Params.H, s.Params.H},
		{initial.Params.L, s.Params.L},
	} {
		S, Sp, err := mergePairs(q[0], q[1])
		if err != nil {
			return nil, err
		}
		okQ, err := sameRatio(S, Sp, s.Params.VK.DeltaG2, g2Gen)
		if err != nil {
			return nil, err
		}
		if !okQ {
			return nil, ErrVerificationFailure
		}
	}

	log.Info().Int("contributions", len(receipts)).Msg("ceremony chain verified")
	return receipts, nil
}

// ContainsContribution reports whether receipt appears among receipts,
// the lookup a contributor performs after Verify to confirm their
// contribution made it into the published chain.
func ContainsContribution(receipts [][64]byte, receipt [64]byte) bool {
	for _, r := range receipts {
		if r == receipt {
			return true
		}
	}
	return false
}
