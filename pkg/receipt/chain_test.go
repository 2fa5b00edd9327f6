// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package receipt

import (
	"fmt"
	"testing"
	"time"

	"github.com/sonate/trust-receipts/pkg/integrity"
)

const testSession = "session-42"

// testChain builds a signed chain of n receipts for testSession.
func testChain(t *testing.T, n int) []Receipt {
	t.Helper()

	kp, err := integrity.GenerateKeyPair(integrity.Ed25519Signature2020)
	if err != nil {
		t.Fatal(err)
	}

	signer, err := integrity.NewSigner(integrity.Ed25519Signature2020, kp.Private)
	if err != nil {
		t.Fatal(err)
	}

	b, err := NewChainBuilder(testSession, signer)
	if err != nil {
		t.Fatal(err)
	}

	rs := make([]Receipt, 0, n)
	for i := 0; i < n; i++ {
		r, err := b.Append(map[string]any{"turn": i, "content": fmt.Sprintf("entry %d", i)})
		if err != nil {
			t.Fatal(err)
		}
		rs = append(rs, *r)
	}

	return rs
}

func TestChainBuilderAppend(t *testing.T) {
	rs := testChain(t, 4)

	if got, want := rs[0].PreviousHash, GenesisHash(testSession); got != want {
		t.Errorf("got genesis previous_hash %v, want %v", got, want)
	}

	for i, r := range rs {
		if got, want := r.ChainLength, int64(i+1); got != want {
			t.Errorf("entry %d: got chain_length %v, want %v", i, got, want)
		}

		if got, want := r.Version, FormatVersion; got != want {
			t.Errorf("entry %d: got version %v, want %v", i, got, want)
		}

		if r.ID == "" {
			t.Errorf("entry %d: empty ID", i)
		}

		if len(r.SelfHash) != 64 {
			t.Errorf("entry %d: got self_hash %q, want 64 hex characters", i, r.SelfHash)
		}

		if i > 0 {
			if got, want := r.PreviousHash, rs[i-1].SelfHash; got != want {
				t.Errorf("entry %d: got previous_hash %v, want %v", i, got, want)
			}
		}
	}
}

func TestChainBuilderResume(t *testing.T) {
	rs := testChain(t, 2)

	kp, err := integrity.GenerateKeyPair(integrity.Ed25519Signature2020)
	if err != nil {
		t.Fatal(err)
	}

	signer, err := integrity.NewSigner(integrity.Ed25519Signature2020, kp.Private)
	if err != nil {
		t.Fatal(err)
	}

	b, err := NewChainBuilder(testSession, signer, OptChainWithTime(func() time.Time {
		return time.UnixMilli(1700000000000)
	}))
	if err != nil {
		t.Fatal(err)
	}

	tail := rs[len(rs)-1]
	if err := b.Resume(&tail); err != nil {
		t.Fatal(err)
	}

	r, err := b.Append(map[string]any{"turn": 2})
	if err != nil {
		t.Fatal(err)
	}

	if got, want := r.PreviousHash, tail.SelfHash; got != want {
		t.Errorf("got previous_hash %v, want %v", got, want)
	}
	if got, want := r.ChainLength, int64(3); got != want {
		t.Errorf("got chain_length %v, want %v", got, want)
	}
	if got, want := r.Timestamp, int64(1700000000000); got != want {
		t.Errorf("got timestamp %v, want %v", got, want)
	}

	other := tail
	other.SessionID = "session-43"
	if err := b.Resume(&other); err == nil {
		t.Error("expected error resuming foreign session tail")
	}
}

func TestVerifyChain(t *testing.T) {
	rs := testChain(t, 5)

	tests := []struct {
		name      string
		mutate    func([]Receipt) []Receipt
		opts      []VerifyChainOpt
		valid     bool
		wantBreak int
	}{
		{
			name:      "Intact",
			mutate:    func(rs []Receipt) []Receipt { return rs },
			valid:     true,
			wantBreak: -1,
		},
		{
			name:      "IntactPinnedSession",
			mutate:    func(rs []Receipt) []Receipt { return rs },
			opts:      []VerifyChainOpt{OptVerifySession(testSession)},
			valid:     true,
			wantBreak: -1,
		},
		{
			name:      "Empty",
			mutate:    func(rs []Receipt) []Receipt { return nil },
			valid:     true,
			wantBreak: -1,
		},
		{
			name: "WrongSessionPinned",
			mutate: func(rs []Receipt) []Receipt {
				return rs
			},
			opts:      []VerifyChainOpt{OptVerifySession("session-43")},
			wantBreak: 0,
		},
		{
			name: "MutatedSelfHashMiddle",
			mutate: func(rs []Receipt) []Receipt {
				rs[2].SelfHash = "00" + rs[2].SelfHash[2:]
				return rs
			},
			wantBreak: 2,
		},
		{
			name: "MutatedSelfHashTail",
			mutate: func(rs []Receipt) []Receipt {
				last := len(rs) - 1
				rs[last].SelfHash = "00" + rs[last].SelfHash[2:]
				return rs
			},
			wantBreak: 4,
		},
		{
			name: "MutatedPreviousHash",
			mutate: func(rs []Receipt) []Receipt {
				rs[3].PreviousHash = "00" + rs[3].PreviousHash[2:]
				return rs
			},
			wantBreak: 3,
		},
		{
			name: "MutatedPayload",
			mutate: func(rs []Receipt) []Receipt {
				rs[1].Payload = map[string]any{"turn": 1, "content": "altered"}
				return rs
			},
			wantBreak: 1,
		},
		{
			name: "DeletedEntry",
			mutate: func(rs []Receipt) []Receipt {
				return append(rs[:2], rs[3:]...)
			},
			wantBreak: 2,
		},
		{
			name: "ReorderedEntries",
			mutate: func(rs []Receipt) []Receipt {
				rs[1], rs[2] = rs[2], rs[1]
				return rs
			},
			wantBreak: 1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			// Work on a copy; VerifyChain itself must not mutate its input,
			// and neither should test cases leak into each other.
			in := make([]Receipt, len(rs))
			copy(in, rs)

			report := VerifyChain(tt.mutate(in), tt.opts...)

			if got, want := report.Valid, tt.valid; got != want {
				t.Errorf("got valid %v, want %v", got, want)
			}
			if got, want := report.BreakIndex, tt.wantBreak; got != want {
				t.Errorf("got break index %v, want %v", got, want)
			}
		})
	}
}

// Receipts stripped of payload carry enough linkage data to validate the
// chain structure.
func TestVerifyChainLinkageOnly(t *testing.T) {
	rs := testChain(t, 3)

	for i := range rs {
		rs[i].Payload = nil
		rs[i].Proof = nil
	}

	if report := VerifyChain(rs); !report.Valid {
		t.Errorf("got break at %v, want intact chain", report.BreakIndex)
	}

	rs[2].PreviousHash = GenesisHash("elsewhere")
	if report := VerifyChain(rs); report.Valid || report.BreakIndex != 2 {
		t.Errorf("got (%v, %v), want break at 2", report.Valid, report.BreakIndex)
	}
}
