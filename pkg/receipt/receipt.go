// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

// Package receipt implements the trust-receipt record and the hash chain
// linking sequential receipts of a session.
//
// A receipt is created once at signing time and never mutated afterward. Its
// self hash commits to the previous receipt's self hash, the canonical
// payload, the timestamp and the signature, so removing, reordering or
// altering any entry of a chain is detectable by a linear scan.
package receipt

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/blang/semver/v4"

	"github.com/sonate/trust-receipts/pkg/canonical"
	"github.com/sonate/trust-receipts/pkg/integrity"
)

// FormatVersion is the current trust-receipt format version.
const FormatVersion = "1.0"

var supportedVersion = semver.MustParse("1.0.0")

// ErrIncompatibleVersion is the error returned when a receipt declares a
// format version outside the supported major.
var ErrIncompatibleVersion = errors.New("incompatible receipt version")

// CompatibleVersion checks whether a receipt format version can be processed
// by this implementation.
func CompatibleVersion(v string) error {
	sv, err := semver.ParseTolerant(v)
	if err != nil {
		return fmt.Errorf("receipt: parse version: %w", err)
	}

	if sv.Major != supportedVersion.Major {
		return fmt.Errorf("receipt: %w: %v", ErrIncompatibleVersion, v)
	}

	return nil
}

// Receipt is a signed, hash-chained audit record. The chain-linkage fields
// previous_hash, self_hash and chain_length are the persisted fields
// consumed by chain validation.
type Receipt struct {
	ID           string           `json:"id"`
	SessionID    string           `json:"session_id"`
	Version      string           `json:"version"`
	Payload      map[string]any   `json:"payload"`
	Proof        *integrity.Proof `json:"proof,omitempty"`
	Timestamp    int64            `json:"timestamp"` // Milliseconds since the Unix epoch.
	PreviousHash string           `json:"previous_hash"`
	SelfHash     string           `json:"self_hash"`
	ChainLength  int64            `json:"chain_length"`
}

// GenesisHash returns the previous_hash anchoring the first receipt of the
// session: the SHA-256 of "genesis_" followed by the session ID, as a
// lowercase hex string. It is a pure function of the session ID.
func GenesisHash(sessionID string) string {
	return canonical.HashBytes([]byte("genesis_" + sessionID))
}

// selfHash commits a receipt to its predecessor, canonical payload,
// timestamp and signature.
func selfHash(previousHash string, canonicalPayload []byte, timestamp int64, signatureHex string) string {
	h := sha256.New()
	h.Write([]byte(previousHash))
	h.Write(canonicalPayload)
	h.Write([]byte(strconv.FormatInt(timestamp, 10)))
	h.Write([]byte(signatureHex))
	return hex.EncodeToString(h.Sum(nil))
}

// recomputeSelfHash derives the expected self hash of r from its fields.
func recomputeSelfHash(r *Receipt) (string, error) {
	if r.Proof == nil {
		return "", errors.New("receipt has no proof")
	}

	sig, err := r.Proof.Signature()
	if err != nil {
		return "", err
	}

	cp, err := canonical.Canonicalize(integrity.WithoutProof(r.Payload))
	if err != nil {
		return "", err
	}

	return selfHash(r.PreviousHash, cp, r.Timestamp, hex.EncodeToString(sig)), nil
}
