// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// multibasePrefix is the only multibase prefix accepted by this package,
// denoting the base58btc alphabet.
const multibasePrefix = 'z'

// MultibaseError records an error decoding multibase-encoded material, such
// as an unexpected prefix or a character outside the base58btc alphabet.
type MultibaseError struct {
	Prefix byte  // Encountered prefix, if any.
	Err    error // Wrapped error.
}

func (e *MultibaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("multibase decoding failed: %v", e.Err)
	}
	if e.Prefix == 0 {
		return "multibase value empty"
	}
	return fmt.Sprintf("multibase prefix %q not supported", e.Prefix)
}

func (e *MultibaseError) Unwrap() error {
	return e.Err
}

// Is compares e against target. If target is a MultibaseError and matches e
// or target has a zero value Prefix, true is returned.
func (e *MultibaseError) Is(target error) bool {
	t, ok := target.(*MultibaseError)
	if !ok {
		return false
	}
	return e.Prefix == t.Prefix || t.Prefix == 0
}

// multibaseEncode encodes b as base58btc with the z multibase prefix.
func multibaseEncode(b []byte) string {
	return string(multibasePrefix) + base58.Encode(b)
}

// multibaseDecode decodes a z-prefixed base58btc value. Any other prefix, or
// a character outside the base58btc alphabet, results in a *MultibaseError.
func multibaseDecode(s string) ([]byte, error) {
	if s == "" {
		return nil, &MultibaseError{}
	}

	if s[0] != multibasePrefix {
		return nil, &MultibaseError{Prefix: s[0]}
	}

	b, err := base58.Decode(s[1:])
	if err != nil {
		return nil, &MultibaseError{Prefix: multibasePrefix, Err: err}
	}

	return b, nil
}
