// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

// Package canonical implements deterministic serialization of JSON-compatible
// values per the JSON Canonicalization Scheme (RFC 8785). Structurally equal
// values produce byte-identical output regardless of key insertion order,
// which is what makes detached signatures over receipt payloads reproducible
// across independent producers and verifiers.
package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gowebpki/jcs"
)

// Error records a value that has no canonical JSON representation, such as a
// non-finite number or a type encoding/json cannot marshal.
type Error struct {
	Reason string // Description of the offending value.
	Err    error  // Wrapped error.
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return "canonical: value has no canonical form"
	}
	return fmt.Sprintf("canonical: %v", e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is compares e against target. If target is an Error and matches e or target
// has a zero value Reason, true is returned.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Reason == t.Reason || t.Reason == ""
}

// Canonicalize returns the RFC 8785 canonical byte sequence of v. It accepts
// any value marshalable by encoding/json, including generic map/slice trees
// decoded from JSON documents.
//
// Values with no canonical JSON representation, such as NaN or infinities,
// result in an *Error; no silent coercion is performed.
func Canonicalize(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		var uve *json.UnsupportedValueError
		if errors.As(err, &uve) {
			return nil, &Error{Reason: fmt.Sprintf("unsupported value %v", uve.Str), Err: err}
		}

		var ute *json.UnsupportedTypeError
		if errors.As(err, &ute) {
			return nil, &Error{Reason: fmt.Sprintf("unsupported type %v", ute.Type), Err: err}
		}

		return nil, &Error{Reason: err.Error(), Err: err}
	}

	b, err = jcs.Transform(b)
	if err != nil {
		return nil, &Error{Reason: err.Error(), Err: err}
	}

	return b, nil
}

// Hash canonicalizes v and returns the SHA-256 digest of the canonical bytes
// as a lowercase hex string.
func Hash(v any) (string, error) {
	b, err := Canonicalize(v)
	if err != nil {
		return "", err
	}
	return HashBytes(b), nil
}

// HashBytes returns the SHA-256 digest of b as a lowercase hex string.
func HashBytes(b []byte) string {
	d := sha256.Sum256(b)
	return hex.EncodeToString(d[:])
}
