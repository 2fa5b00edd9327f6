// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"encoding/json"
	"fmt"
)

// proofKey is the payload member carrying an embedded proof. A signature
// covers the payload minus this member.
const proofKey = "proof"

// Proof is the digital-signature envelope attached to a receipt. It names
// its algorithm and verification key, and carries the encoded signature in
// proofValue (multibase, Ed25519), or jws (base64, RSA variants), or
// proofValue (hex, secp256k1). A proof is immutable once attached.
type Proof struct {
	Type               string `json:"type"`
	Created            string `json:"created"`
	ProofPurpose       string `json:"proofPurpose,omitempty"`
	VerificationMethod string `json:"verificationMethod,omitempty"`
	ProofValue         string `json:"proofValue,omitempty"`
	JWS                string `json:"jws,omitempty"`
}

// Algorithm returns the algorithm named by p.
func (p *Proof) Algorithm() Algorithm {
	return Algorithm(p.Type)
}

// Signature decodes and returns the raw signature bytes carried by p.
func (p *Proof) Signature() ([]byte, error) {
	s, ok := suiteFor(p.Algorithm())
	if !ok {
		return nil, fmt.Errorf("integrity: %w", ErrUnsupportedAlgorithm)
	}

	sig, err := s.decodeSignature(p)
	if err != nil {
		return nil, fmt.Errorf("integrity: %w", err)
	}

	return sig, nil
}

// WithoutProof returns a copy of doc with any embedded proof member removed.
// The input is not modified.
func WithoutProof(doc map[string]any) map[string]any {
	body := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == proofKey {
			continue
		}
		body[k] = v
	}
	return body
}

// proofFromDocument extracts the embedded proof member of doc, which may be
// a *Proof, a Proof, or a generic value tree decoded from JSON.
func proofFromDocument(doc map[string]any) (*Proof, error) {
	v, ok := doc[proofKey]
	if !ok || v == nil {
		return nil, errProofMissing
	}

	switch p := v.(type) {
	case *Proof:
		return p, nil
	case Proof:
		return &p, nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, errProofMissing
		}

		var pr Proof
		if err := json.Unmarshal(b, &pr); err != nil {
			return nil, errProofMissing
		}
		return &pr, nil
	}
}
