// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"fmt"
)

// KeyPair holds asymmetric key material in an algorithm-specific encoding:
// raw key bytes for Ed25519, a 32-byte scalar and compressed point for
// secp256k1, PEM for RSA. The private component is never serialized into a
// receipt or proof.
type KeyPair struct {
	Private []byte
	Public  []byte
}

// KeyDecodingError records an error decoding key or signature material, such
// as malformed hex, base64 or PEM. It is distinct from a cryptographic
// verification failure.
type KeyDecodingError struct {
	Encoding string // Expected encoding ("hex", "base64", "pem", "multibase").
	Err      error  // Wrapped error.
}

func (e *KeyDecodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v decoding failed: %v", e.Encoding, e.Err)
	}
	return fmt.Sprintf("%v decoding failed", e.Encoding)
}

func (e *KeyDecodingError) Unwrap() error {
	return e.Err
}

// Is compares e against target. If target is a KeyDecodingError and matches
// e or target has a zero value Encoding, true is returned.
func (e *KeyDecodingError) Is(target error) bool {
	t, ok := target.(*KeyDecodingError)
	if !ok {
		return false
	}
	return e.Encoding == t.Encoding || t.Encoding == ""
}

// GenerateKeyPair generates fresh key material for alg using the operating
// system CSPRNG.
func GenerateKeyPair(alg Algorithm) (KeyPair, error) {
	s, ok := suiteFor(alg)
	if !ok {
		return KeyPair{}, fmt.Errorf("integrity: %w", ErrUnsupportedAlgorithm)
	}

	kp, err := s.generateKeyPair()
	if err != nil {
		return KeyPair{}, fmt.Errorf("integrity: %w", err)
	}

	return kp, nil
}
