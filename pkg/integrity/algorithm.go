// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"errors"
)

// Algorithm identifies a supported proof algorithm.
type Algorithm string

// Supported proof algorithms.
const (
	Ed25519Signature2020        Algorithm = "Ed25519Signature2020"
	EcdsaSecp256k1Signature2019 Algorithm = "EcdsaSecp256k1Signature2019"
	RsaSignature2018            Algorithm = "RsaSignature2018"
	JsonWebSignature2020        Algorithm = "JsonWebSignature2020"
)

// ErrUnsupportedAlgorithm is the error returned when a proof names an
// algorithm outside the supported set.
var ErrUnsupportedAlgorithm = errors.New("unsupported proof type")

// suite is the uniform capability implemented by each algorithm in the
// closed variant set. Key and signature material crosses the wire in a
// suite-specific encoding; each suite owns both the cryptographic operations
// and the codec for its material.
type suite interface {
	// generateKeyPair returns fresh key material in the suite's native
	// encoding.
	generateKeyPair() (KeyPair, error)

	// derivePublic derives the public component from private key material.
	derivePublic(priv []byte) ([]byte, error)

	// sign signs message with priv, returning raw signature bytes.
	sign(message, priv []byte) ([]byte, error)

	// verify verifies sig over message against the wire-encoded public key.
	verify(message, sig []byte, publicKey string) error

	// decodeSignature extracts and decodes the signature carried by p.
	decodeSignature(p *Proof) ([]byte, error)

	// attach encodes sig into the appropriate field of p.
	attach(p *Proof, sig []byte)

	// encodePublic renders public key material in the suite's wire encoding.
	encodePublic(pub []byte) string
}

// suites is the closed registry of algorithm variants. Adding an algorithm
// means adding a suite here, not scattering new string comparisons.
var suites = map[Algorithm]suite{
	Ed25519Signature2020:        ed25519Suite{},
	EcdsaSecp256k1Signature2019: secp256k1Suite{},
	RsaSignature2018:            rsaPSSSuite{},
	JsonWebSignature2020:        rsaPSSSuite{},
}

// suiteFor returns the suite implementing a, if supported.
func suiteFor(a Algorithm) (suite, bool) {
	s, ok := suites[a]
	return s, ok
}

// SupportedAlgorithms returns the set of supported proof algorithms.
func SupportedAlgorithms() []Algorithm {
	return []Algorithm{
		Ed25519Signature2020,
		EcdsaSecp256k1Signature2019,
		RsaSignature2018,
		JsonWebSignature2020,
	}
}
