// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package receipt

// ChainReport is the outcome of validating a chain. A broken chain is
// expected, observable data: validation never fails with an error.
type ChainReport struct {
	// Valid is true if the sequence is empty or every entry links correctly
	// to its predecessor.
	Valid bool

	// BreakIndex is the index of the first entry at which the chain breaks,
	// or -1 if the chain is intact.
	BreakIndex int
}

// chainVerifyOpts accumulates chain validation options.
type chainVerifyOpts struct {
	sessionID  string
	pinGenesis bool
}

// VerifyChainOpt are used to configure chain validation.
type VerifyChainOpt func(*chainVerifyOpts)

// OptVerifySession additionally requires the first entry's previous_hash to
// equal the genesis hash of sessionID.
func OptVerifySession(sessionID string) VerifyChainOpt {
	return func(o *chainVerifyOpts) {
		o.sessionID = sessionID
		o.pinGenesis = true
	}
}

// VerifyChain validates the linkage of rs in a single left-to-right scan.
// The input is not modified. For each entry the self hash is recomputed
// from the entry's fields, and each entry's previous_hash must equal its
// predecessor's self_hash. An empty sequence is vacuously valid.
func VerifyChain(rs []Receipt, opts ...VerifyChainOpt) ChainReport {
	var o chainVerifyOpts
	for _, opt := range opts {
		opt(&o)
	}

	for i := range rs {
		r := &rs[i]

		if i == 0 {
			if o.pinGenesis && r.PreviousHash != GenesisHash(o.sessionID) {
				return ChainReport{BreakIndex: 0}
			}
		} else {
			if r.PreviousHash != rs[i-1].SelfHash {
				return ChainReport{BreakIndex: i}
			}

			if r.ChainLength != 0 && rs[i-1].ChainLength != 0 && r.ChainLength <= rs[i-1].ChainLength {
				return ChainReport{BreakIndex: i}
			}
		}

		// Entries stripped of payload or proof cannot be recomputed; their
		// linkage is still covered by the pairwise checks.
		if r.Payload == nil || r.Proof == nil {
			continue
		}

		want, err := recomputeSelfHash(r)
		if err != nil || want != r.SelfHash {
			return ChainReport{BreakIndex: i}
		}
	}

	return ChainReport{Valid: true, BreakIndex: -1}
}
