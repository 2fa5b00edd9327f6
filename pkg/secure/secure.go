// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

// Package secure provides CSPRNG-backed token generation and constant-time
// comparison primitives used by the receipt integrity core.
package secure

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
)

// NonceSize is the number of random bytes in a nonce.
const NonceSize = 16

// APIKeySize is the default number of random bytes in an API key.
const APIKeySize = 32

var errInvalidLength = errors.New("length must be greater than zero")

// randomToken returns n bytes from the operating system CSPRNG, base64url
// encoded without padding.
func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("secure: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateNonce returns a base64url-encoded nonce of NonceSize random bytes,
// suitable for single-use replay protection. Freshness tracking is the
// caller's responsibility.
func GenerateNonce() (string, error) {
	return randomToken(NonceSize)
}

// GenerateAPIKey returns a base64url-encoded key of n random bytes.
func GenerateAPIKey(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("secure: %w", errInvalidLength)
	}
	return randomToken(n)
}

// TimingSafeEqual reports whether a and b are equal. Inputs of unequal length
// short-circuit, since length is not secret. For equal-length inputs the
// comparison runs in constant time.
func TimingSafeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
