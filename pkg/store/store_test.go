// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sonate/trust-receipts/pkg/integrity"
	"github.com/sonate/trust-receipts/pkg/receipt"
)

// testChain builds a signed chain of n receipts for sessionID.
func testChain(t *testing.T, sessionID string, n int) []receipt.Receipt {
	t.Helper()

	kp, err := integrity.GenerateKeyPair(integrity.Ed25519Signature2020)
	if err != nil {
		t.Fatal(err)
	}

	signer, err := integrity.NewSigner(integrity.Ed25519Signature2020, kp.Private)
	if err != nil {
		t.Fatal(err)
	}

	b, err := receipt.NewChainBuilder(sessionID, signer)
	if err != nil {
		t.Fatal(err)
	}

	rs := make([]receipt.Receipt, 0, n)
	for i := 0; i < n; i++ {
		r, err := b.Append(map[string]any{"turn": i})
		if err != nil {
			t.Fatal(err)
		}
		rs = append(rs, *r)
	}

	return rs
}

// stores returns a fresh instance of each Store implementation.
func stores(t *testing.T) map[string]Store {
	t.Helper()

	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "receipts.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = sq.Close() })

	return map[string]Store{
		"Memory": NewMemory(),
		"SQLite": sq,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	rs := testChain(t, "session-a", 3)

	for name, s := range stores(t) {
		s := s
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for i := range rs {
				if err := s.Append(ctx, &rs[i]); err != nil {
					t.Fatal(err)
				}
			}

			got, err := s.Chain(ctx, "session-a")
			if err != nil {
				t.Fatal(err)
			}

			if len(got) != len(rs) {
				t.Fatalf("got %v receipts, want %v", len(got), len(rs))
			}

			for i := range got {
				if got[i].ID != rs[i].ID {
					t.Errorf("entry %d: got ID %v, want %v", i, got[i].ID, rs[i].ID)
				}
				if got[i].SelfHash != rs[i].SelfHash {
					t.Errorf("entry %d: got self_hash %v, want %v", i, got[i].SelfHash, rs[i].SelfHash)
				}
				if got[i].Proof == nil {
					t.Errorf("entry %d: missing proof", i)
				}
			}

			// A reloaded chain must still verify.
			if report := receipt.VerifyChain(got, receipt.OptVerifySession("session-a")); !report.Valid {
				t.Errorf("reloaded chain broke at %v", report.BreakIndex)
			}

			tail, err := s.Tail(ctx, "session-a")
			if err != nil {
				t.Fatal(err)
			}
			if got, want := tail.SelfHash, rs[len(rs)-1].SelfHash; got != want {
				t.Errorf("got tail self_hash %v, want %v", got, want)
			}
		})
	}
}

func TestStoreAppendContiguity(t *testing.T) {
	rs := testChain(t, "session-a", 3)

	for name, s := range stores(t) {
		s := s
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			// A chain must start at length one.
			if err := s.Append(ctx, &rs[1]); !errors.Is(err, ErrNonContiguous) {
				t.Errorf("got error %v, want %v", err, ErrNonContiguous)
			}

			if err := s.Append(ctx, &rs[0]); err != nil {
				t.Fatal(err)
			}

			// Skipping an entry is rejected.
			if err := s.Append(ctx, &rs[2]); !errors.Is(err, ErrNonContiguous) {
				t.Errorf("got error %v, want %v", err, ErrNonContiguous)
			}

			// Re-appending the tail is rejected.
			if err := s.Append(ctx, &rs[0]); !errors.Is(err, ErrNonContiguous) {
				t.Errorf("got error %v, want %v", err, ErrNonContiguous)
			}

			// A contiguous entry with broken linkage is rejected.
			broken := rs[1]
			broken.PreviousHash = receipt.GenesisHash("elsewhere")
			if err := s.Append(ctx, &broken); !errors.Is(err, ErrBrokenLinkage) {
				t.Errorf("got error %v, want %v", err, ErrBrokenLinkage)
			}

			if err := s.Append(ctx, &rs[1]); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestStoreSessions(t *testing.T) {
	a := testChain(t, "session-a", 1)
	b := testChain(t, "session-b", 1)

	for name, s := range stores(t) {
		s := s
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			ids, err := s.Sessions(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(ids) != 0 {
				t.Errorf("got sessions %v, want none", ids)
			}

			if err := s.Append(ctx, &b[0]); err != nil {
				t.Fatal(err)
			}
			if err := s.Append(ctx, &a[0]); err != nil {
				t.Fatal(err)
			}

			ids, err = s.Sessions(ctx)
			if err != nil {
				t.Fatal(err)
			}

			want := []string{"session-a", "session-b"}
			if len(ids) != len(want) || ids[0] != want[0] || ids[1] != want[1] {
				t.Errorf("got sessions %v, want %v", ids, want)
			}
		})
	}
}

func TestStoreSessionNotFound(t *testing.T) {
	for name, s := range stores(t) {
		s := s
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := s.Chain(ctx, "no-such-session"); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("got error %v, want %v", err, ErrSessionNotFound)
			}

			if _, err := s.Tail(ctx, "no-such-session"); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("got error %v, want %v", err, ErrSessionNotFound)
			}
		})
	}
}

func TestSQLitePersistence(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "receipts.db")
	rs := testChain(t, "session-a", 2)

	s, err := OpenSQLite(dsn)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	for i := range rs {
		if err := s.Append(ctx, &rs[i]); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopen and resume the chain from the persisted tail.
	s, err = OpenSQLite(dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s.Close() }()

	tail, err := s.Tail(ctx, "session-a")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := tail.ChainLength, int64(2); got != want {
		t.Errorf("got tail chain_length %v, want %v", got, want)
	}

	kp, err := integrity.GenerateKeyPair(integrity.Ed25519Signature2020)
	if err != nil {
		t.Fatal(err)
	}
	signer, err := integrity.NewSigner(integrity.Ed25519Signature2020, kp.Private)
	if err != nil {
		t.Fatal(err)
	}

	b, err := receipt.NewChainBuilder("session-a", signer)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Resume(tail); err != nil {
		t.Fatal(err)
	}

	r, err := b.Append(map[string]any{"turn": 2})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Append(ctx, r); err != nil {
		t.Fatal(err)
	}

	got, err := s.Chain(ctx, "session-a")
	if err != nil {
		t.Fatal(err)
	}
	if report := receipt.VerifyChain(got, receipt.OptVerifySession("session-a")); !report.Valid {
		t.Errorf("resumed chain broke at %v", report.BreakIndex)
	}
}
