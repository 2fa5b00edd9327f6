// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package receipt

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sonate/trust-receipts/pkg/canonical"
	"github.com/sonate/trust-receipts/pkg/integrity"
)

var errNilSigner = errors.New("nil signer")

// ChainBuilder appends signed receipts to the hash chain of one session.
// The first appended receipt anchors to the session's genesis hash; every
// subsequent receipt links to its predecessor's self hash. A builder is not
// safe for concurrent use; appends are inherently ordered.
type ChainBuilder struct {
	sessionID string
	signer    *integrity.Signer
	timeFunc  func() time.Time
	idFunc    func() string
	last      *Receipt
	length    int64
}

// ChainBuilderOpt are used to configure a ChainBuilder.
type ChainBuilderOpt func(*ChainBuilder) error

// OptChainWithTime specifies fn as the func to obtain receipt timestamps.
func OptChainWithTime(fn func() time.Time) ChainBuilderOpt {
	return func(b *ChainBuilder) error {
		b.timeFunc = fn
		return nil
	}
}

// OptChainWithIDFunc specifies fn as the func to obtain receipt IDs.
func OptChainWithIDFunc(fn func() string) ChainBuilderOpt {
	return func(b *ChainBuilder) error {
		b.idFunc = fn
		return nil
	}
}

// NewChainBuilder returns a ChainBuilder for the chain of sessionID, signing
// each appended receipt with signer.
func NewChainBuilder(sessionID string, signer *integrity.Signer, opts ...ChainBuilderOpt) (*ChainBuilder, error) {
	if signer == nil {
		return nil, fmt.Errorf("receipt: %w", errNilSigner)
	}

	b := &ChainBuilder{
		sessionID: sessionID,
		signer:    signer,
		timeFunc:  time.Now,
		idFunc:    uuid.NewString,
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, fmt.Errorf("receipt: %w", err)
		}
	}

	return b, nil
}

// SessionID returns the session whose chain b builds.
func (b *ChainBuilder) SessionID() string {
	return b.sessionID
}

// Len returns the number of receipts appended so far.
func (b *ChainBuilder) Len() int64 {
	return b.length
}

// Last returns the most recently appended receipt, or nil if the chain is
// empty.
func (b *ChainBuilder) Last() *Receipt {
	return b.last
}

// Append signs payload and links it into the chain, returning the new
// receipt. The payload is canonicalized minus any embedded proof member;
// canonicalization errors propagate, since the producer controls its own
// payload.
func (b *ChainBuilder) Append(payload map[string]any) (*Receipt, error) {
	previousHash := GenesisHash(b.sessionID)
	if b.last != nil {
		previousHash = b.last.SelfHash
	}

	proof, sig, err := b.signer.SignDocument(payload)
	if err != nil {
		return nil, fmt.Errorf("receipt: %w", err)
	}

	cp, err := canonical.Canonicalize(integrity.WithoutProof(payload))
	if err != nil {
		return nil, fmt.Errorf("receipt: %w", err)
	}

	ts := b.timeFunc().UnixMilli()

	r := &Receipt{
		ID:           b.idFunc(),
		SessionID:    b.sessionID,
		Version:      FormatVersion,
		Payload:      payload,
		Proof:        proof,
		Timestamp:    ts,
		PreviousHash: previousHash,
		SelfHash:     selfHash(previousHash, cp, ts, hex.EncodeToString(sig)),
		ChainLength:  b.length + 1,
	}

	b.last = r
	b.length++

	return r, nil
}

// Resume continues a chain from its persisted tail, so that the next
// appended receipt links to last.SelfHash.
func (b *ChainBuilder) Resume(last *Receipt) error {
	if last == nil {
		return fmt.Errorf("receipt: %w", errors.New("nil tail receipt"))
	}

	if last.SessionID != b.sessionID {
		return fmt.Errorf("receipt: tail belongs to session %q, not %q", last.SessionID, b.sessionID)
	}

	b.last = last
	b.length = last.ChainLength

	return nil
}
