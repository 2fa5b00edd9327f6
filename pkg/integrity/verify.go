// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"errors"
	"fmt"

	"github.com/sonate/trust-receipts/pkg/canonical"
)

// ErrSignatureInvalid is the error recorded when a signature is
// cryptographically invalid. It is distinct from a decoding error: the
// material was well-formed, but the mathematics did not hold.
var ErrSignatureInvalid = errors.New("signature not valid")

// errProofMissing is recorded when a document carries no proof to verify.
var errProofMissing = errors.New("proof missing")

// VerifyResult is the outcome of verifying a proof against a payload.
type VerifyResult struct {
	algorithm Algorithm
	err       error
}

// Valid returns true if the proof verified successfully.
func (r VerifyResult) Valid() bool {
	return r.err == nil
}

// Algorithm returns the algorithm named by the proof, if it declared one.
func (r VerifyResult) Algorithm() Algorithm {
	return r.algorithm
}

// Error returns an error describing the reason verification failed, or nil
// if verification was successful.
func (r VerifyResult) Error() error {
	return r.err
}

// Verifier verifies digital-signature proofs over trust-receipt payloads,
// dispatching on the algorithm each proof declares.
type Verifier struct {
	backend *Backend
}

// VerifierOpt are used to configure a Verifier.
type VerifierOpt func(*Verifier) error

// OptVerifyWithBackend sets the backend used for cryptographic operations.
func OptVerifyWithBackend(b *Backend) VerifierOpt {
	return func(v *Verifier) error {
		v.backend = b
		return nil
	}
}

// NewVerifier returns a Verifier configured according to opts.
func NewVerifier(opts ...VerifierOpt) (*Verifier, error) {
	v := &Verifier{}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("integrity: %w", err)
		}
	}

	if v.backend == nil {
		v.backend = NewBackend()
	}

	return v, nil
}

// Verify verifies p over the canonical form of payload against the
// wire-encoded public key. The payload must not contain the proof; use
// VerifyDocument for a document with an embedded proof.
//
// Verification input is adversarial by default, so Verify never fails with
// an error: decoding failures, unsupported algorithms and cryptographically
// invalid signatures are all converted into the returned result.
func (v *Verifier) Verify(payload map[string]any, p *Proof, publicKey string) VerifyResult {
	if p == nil || p.Type == "" {
		return VerifyResult{err: errProofMissing}
	}

	alg := p.Algorithm()

	s, ok := suiteFor(alg)
	if !ok {
		return VerifyResult{algorithm: alg, err: ErrUnsupportedAlgorithm}
	}

	if err := v.backend.init(); err != nil {
		return VerifyResult{algorithm: alg, err: err}
	}

	message, err := canonical.Canonicalize(WithoutProof(payload))
	if err != nil {
		return VerifyResult{algorithm: alg, err: err}
	}

	sig, err := s.decodeSignature(p)
	if err != nil {
		return VerifyResult{algorithm: alg, err: err}
	}

	if err := s.verify(message, sig, publicKey); err != nil {
		return VerifyResult{algorithm: alg, err: err}
	}

	return VerifyResult{algorithm: alg}
}

// VerifyDocument extracts the embedded proof member of doc, strips it, and
// verifies it over the canonical form of the remainder.
func (v *Verifier) VerifyDocument(doc map[string]any, publicKey string) VerifyResult {
	p, err := proofFromDocument(doc)
	if err != nil {
		return VerifyResult{err: err}
	}

	return v.Verify(WithoutProof(doc), p, publicKey)
}
