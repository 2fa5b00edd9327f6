// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

// Package store persists receipt chains. Only the receipt record and its
// chain-linkage fields are stored; appends are enforced to be contiguous per
// session so a store can never hold a gapped chain.
package store

import (
	"context"
	"errors"

	"github.com/sonate/trust-receipts/pkg/receipt"
)

// ErrNonContiguous is the error returned when an appended receipt does not
// extend the stored chain by exactly one entry.
var ErrNonContiguous = errors.New("non-contiguous chain append")

// ErrBrokenLinkage is the error returned when an appended receipt's
// previous_hash does not match the stored chain tail.
var ErrBrokenLinkage = errors.New("previous hash does not match chain tail")

// ErrSessionNotFound is the error returned when no chain exists for the
// requested session.
var ErrSessionNotFound = errors.New("session not found")

// Store persists receipt chains by session.
type Store interface {
	// Append stores r at the tail of its session's chain. If r does not
	// extend the chain by exactly one entry, an error wrapping
	// ErrNonContiguous is returned; if its previous_hash does not match the
	// stored tail, an error wrapping ErrBrokenLinkage is returned.
	Append(ctx context.Context, r *receipt.Receipt) error

	// Chain returns the full chain of sessionID in chain order. If the
	// session is unknown, an error wrapping ErrSessionNotFound is returned.
	Chain(ctx context.Context, sessionID string) ([]receipt.Receipt, error)

	// Tail returns the last receipt of sessionID's chain.
	Tail(ctx context.Context, sessionID string) (*receipt.Receipt, error)

	// Sessions returns the IDs of all stored sessions.
	Sessions(ctx context.Context) ([]string, error)

	// Close releases resources held by the store.
	Close() error
}

// checkAppend validates that r extends a chain currently ending at tail
// (nil for an empty chain).
func checkAppend(r *receipt.Receipt, tail *receipt.Receipt) error {
	if tail == nil {
		if r.ChainLength != 1 {
			return ErrNonContiguous
		}
		if r.PreviousHash != receipt.GenesisHash(r.SessionID) {
			return ErrBrokenLinkage
		}
		return nil
	}

	if r.ChainLength != tail.ChainLength+1 {
		return ErrNonContiguous
	}
	if r.PreviousHash != tail.SelfHash {
		return ErrBrokenLinkage
	}
	return nil
}
