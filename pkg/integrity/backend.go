// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"crypto"
	"fmt"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	// Ed25519 signing per RFC 8032 hashes with SHA-512; link the standard
	// digest so crypto.SHA512.Available() holds and signatures are
	// reproducible across environments.
	_ "crypto/sha512"
)

// Backend holds the one-time initialized cryptographic handles shared by
// Signer and Verifier instances. Initialization is lazy and happens at most
// once per Backend; concurrent first callers block on the same in-flight
// initialization and observe its memoized outcome.
//
// The zero value is not usable; construct with NewBackend.
type Backend struct {
	once sync.Once
	err  error
}

// NewBackend returns a new, uninitialized Backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Up initializes b, and may be called at startup to avoid first-call latency.
// It is safe to call concurrently and repeatedly; every call reports the
// outcome of the single initialization.
func (b *Backend) Up() error {
	if err := b.init(); err != nil {
		return fmt.Errorf("integrity: %w", err)
	}
	return nil
}

// init performs the one-time backend initialization: the secp256k1 curve
// tables are primed, and the digest algorithms required by the supported
// suites are checked for availability.
func (b *Backend) init() error {
	b.once.Do(func() {
		for _, h := range []crypto.Hash{crypto.SHA256, crypto.SHA512} {
			if !h.Available() {
				b.err = fmt.Errorf("hash algorithm unavailable: %v", h)
				return
			}
		}

		// Forces the lazy curve table computation now rather than during the
		// first signature operation.
		_ = secp256k1.S256()
	})

	return b.err
}
