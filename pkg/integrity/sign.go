// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"fmt"
	"time"

	"github.com/sonate/trust-receipts/pkg/canonical"
)

// defaultProofPurpose is recorded in proofs when no purpose is configured.
const defaultProofPurpose = "assertionMethod"

// Signer creates digital-signature proofs over trust-receipt payloads using
// a single algorithm and private key.
type Signer struct {
	backend  *Backend
	s        suite
	alg      Algorithm
	priv     []byte
	pub      []byte
	timeFunc func() time.Time
	purpose  string
	method   string
}

// SignerOpt are used to configure a Signer.
type SignerOpt func(*Signer) error

// OptSignWithBackend sets the backend used for cryptographic operations.
// Supply a shared backend to amortize its one-time initialization across
// signers and verifiers.
func OptSignWithBackend(b *Backend) SignerOpt {
	return func(s *Signer) error {
		s.backend = b
		return nil
	}
}

// OptSignWithTime specifies fn as the func to obtain proof creation times.
func OptSignWithTime(fn func() time.Time) SignerOpt {
	return func(s *Signer) error {
		s.timeFunc = fn
		return nil
	}
}

// OptSignWithProofPurpose sets the proofPurpose recorded in created proofs.
func OptSignWithProofPurpose(purpose string) SignerOpt {
	return func(s *Signer) error {
		s.purpose = purpose
		return nil
	}
}

// OptSignWithVerificationMethod sets the verificationMethod key reference
// recorded in created proofs.
func OptSignWithVerificationMethod(method string) SignerOpt {
	return func(s *Signer) error {
		s.method = method
		return nil
	}
}

// NewSigner returns a Signer that signs with alg using privateKey, according
// to opts. The public component is derived from privateKey.
func NewSigner(alg Algorithm, privateKey []byte, opts ...SignerOpt) (*Signer, error) {
	st, ok := suiteFor(alg)
	if !ok {
		return nil, fmt.Errorf("integrity: %w", ErrUnsupportedAlgorithm)
	}

	s := &Signer{
		s:        st,
		alg:      alg,
		priv:     privateKey,
		timeFunc: time.Now,
		purpose:  defaultProofPurpose,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("integrity: %w", err)
		}
	}

	if s.backend == nil {
		s.backend = NewBackend()
	}

	pub, err := st.derivePublic(privateKey)
	if err != nil {
		return nil, fmt.Errorf("integrity: %w", err)
	}
	s.pub = pub

	return s, nil
}

// Algorithm returns the algorithm s signs with.
func (s *Signer) Algorithm() Algorithm {
	return s.alg
}

// Public returns the public key material derived from the signing key.
func (s *Signer) Public() []byte {
	return s.pub
}

// PublicEncoded returns the public key in the algorithm's wire encoding, as
// expected by a Verifier.
func (s *Signer) PublicEncoded() string {
	return s.s.encodePublic(s.pub)
}

// Sign signs message, returning raw signature bytes.
func (s *Signer) Sign(message []byte) ([]byte, error) {
	if err := s.backend.init(); err != nil {
		return nil, fmt.Errorf("integrity: %w", err)
	}

	sig, err := s.s.sign(message, s.priv)
	if err != nil {
		return nil, fmt.Errorf("integrity: %w", err)
	}

	return sig, nil
}

// SignDocument signs the canonical form of doc, excluding any embedded
// proof member, and returns the resulting proof along with the raw
// signature bytes. Canonicalization errors propagate: the payload on the
// signing path is producer-controlled.
func (s *Signer) SignDocument(doc map[string]any) (*Proof, []byte, error) {
	message, err := canonical.Canonicalize(WithoutProof(doc))
	if err != nil {
		return nil, nil, fmt.Errorf("integrity: %w", err)
	}

	sig, err := s.Sign(message)
	if err != nil {
		return nil, nil, err
	}

	p := &Proof{
		Type:               string(s.alg),
		Created:            s.timeFunc().UTC().Format(time.RFC3339),
		ProofPurpose:       s.purpose,
		VerificationMethod: s.method,
	}
	s.s.attach(p, sig)

	return p, sig, nil
}

// ProofFor is a convenience wrapper around SignDocument returning only the
// proof.
func (s *Signer) ProofFor(doc map[string]any) (*Proof, error) {
	p, _, err := s.SignDocument(doc)
	return p, err
}
