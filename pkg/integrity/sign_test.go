// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/sonate/trust-receipts/pkg/canonical"
)

var testPayload = map[string]any{
	"session_id": "session-42",
	"scores":     map[string]any{"trust": 0.91, "alignment": 0.87},
	"turn":       3,
}

func fixedTime() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestNewSigner(t *testing.T) {
	kp, err := GenerateKeyPair(Ed25519Signature2020)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		alg     Algorithm
		priv    []byte
		wantErr error
	}{
		{
			name: "Ed25519",
			alg:  Ed25519Signature2020,
			priv: kp.Private,
		},
		{
			name:    "UnknownAlgorithm",
			alg:     Algorithm("Dilithium2023"),
			priv:    kp.Private,
			wantErr: ErrUnsupportedAlgorithm,
		},
		{
			name:    "ShortKey",
			alg:     Ed25519Signature2020,
			priv:    kp.Private[:7],
			wantErr: &KeyDecodingError{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSigner(tt.alg, tt.priv)

			if got, want := err, tt.wantErr; !errors.Is(got, want) {
				t.Fatalf("got error %v, want %v", got, want)
			}
		})
	}
}

// Ed25519 signing is deterministic per RFC 8032: signing the same message
// twice with the same key must yield an identical signature.
func TestSignerSignDeterministic(t *testing.T) {
	kp, err := GenerateKeyPair(Ed25519Signature2020)
	if err != nil {
		t.Fatal(err)
	}

	s, err := NewSigner(Ed25519Signature2020, kp.Private)
	if err != nil {
		t.Fatal(err)
	}

	message := []byte(`{"a":1,"b":2}`)

	sig1, err := s.Sign(message)
	if err != nil {
		t.Fatal(err)
	}

	sig2, err := s.Sign(message)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(sig1, sig2) {
		t.Errorf("got signature %x, want %x", sig2, sig1)
	}
}

func TestSignerSignDocument(t *testing.T) {
	for _, alg := range SupportedAlgorithms() {
		alg := alg
		t.Run(string(alg), func(t *testing.T) {
			kp, err := GenerateKeyPair(alg)
			if err != nil {
				t.Fatal(err)
			}

			s, err := NewSigner(alg, kp.Private,
				OptSignWithTime(fixedTime),
				OptSignWithProofPurpose("assertionMethod"),
				OptSignWithVerificationMethod("did:key:test#key-1"),
			)
			if err != nil {
				t.Fatal(err)
			}

			p, sig, err := s.SignDocument(testPayload)
			if err != nil {
				t.Fatal(err)
			}

			if got, want := p.Type, string(alg); got != want {
				t.Errorf("got type %v, want %v", got, want)
			}

			if got, want := p.Created, "2026-01-02T03:04:05Z"; got != want {
				t.Errorf("got created %v, want %v", got, want)
			}

			if len(sig) == 0 {
				t.Error("expected signature bytes")
			}

			got, err := p.Signature()
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, sig) {
				t.Errorf("got decoded signature %x, want %x", got, sig)
			}

			switch alg {
			case Ed25519Signature2020:
				if !strings.HasPrefix(p.ProofValue, "z") {
					t.Errorf("got proofValue %v, want z multibase prefix", p.ProofValue)
				}
			case RsaSignature2018, JsonWebSignature2020:
				if p.JWS == "" {
					t.Error("expected jws value")
				}
			}
		})
	}
}

// The signature covers the payload minus any embedded proof member.
func TestSignerSignDocumentStripsProof(t *testing.T) {
	kp, err := GenerateKeyPair(Ed25519Signature2020)
	if err != nil {
		t.Fatal(err)
	}

	s, err := NewSigner(Ed25519Signature2020, kp.Private)
	if err != nil {
		t.Fatal(err)
	}

	doc := map[string]any{"a": 1, "proof": map[string]any{"type": "stale"}}

	_, sig, err := s.SignDocument(doc)
	if err != nil {
		t.Fatal(err)
	}

	message, err := canonical.Canonicalize(map[string]any{"a": 1})
	if err != nil {
		t.Fatal(err)
	}

	want, err := s.Sign(message)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(sig, want) {
		t.Errorf("got signature %x, want %x", sig, want)
	}

	if _, ok := doc["proof"]; !ok {
		t.Error("input document was mutated")
	}
}

func TestSignerSignDocumentCanonicalizationError(t *testing.T) {
	kp, err := GenerateKeyPair(Ed25519Signature2020)
	if err != nil {
		t.Fatal(err)
	}

	s, err := NewSigner(Ed25519Signature2020, kp.Private)
	if err != nil {
		t.Fatal(err)
	}

	_, _, err = s.SignDocument(map[string]any{"x": math.NaN()})
	if wantErr := (&canonical.Error{}); !errors.Is(err, wantErr) {
		t.Fatalf("got error %v, want %v", err, wantErr)
	}
}

func TestSignerPublicEncoded(t *testing.T) {
	tests := []struct {
		name   string
		alg    Algorithm
		prefix string
	}{
		{name: "Ed25519", alg: Ed25519Signature2020, prefix: "z"},
		{name: "Secp256k1", alg: EcdsaSecp256k1Signature2019, prefix: "0"},
		{name: "RSA", alg: RsaSignature2018, prefix: "-----BEGIN PUBLIC KEY-----"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			kp, err := GenerateKeyPair(tt.alg)
			if err != nil {
				t.Fatal(err)
			}

			s, err := NewSigner(tt.alg, kp.Private)
			if err != nil {
				t.Fatal(err)
			}

			if got := s.PublicEncoded(); !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("got %v, want prefix %v", got, tt.prefix)
			}
		})
	}
}
