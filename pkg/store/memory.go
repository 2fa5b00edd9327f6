// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sonate/trust-receipts/pkg/receipt"
)

// memoryStore holds chains in process memory, keyed by session ID.
type memoryStore struct {
	mu     sync.RWMutex
	chains map[string][]receipt.Receipt
}

// NewMemory returns an in-memory Store. It is safe for concurrent use and
// suited to tests and short-lived embedding.
func NewMemory() Store {
	return &memoryStore{chains: make(map[string][]receipt.Receipt)}
}

func (s *memoryStore) Append(ctx context.Context, r *receipt.Receipt) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.chains[r.SessionID]

	var tail *receipt.Receipt
	if len(rs) > 0 {
		tail = &rs[len(rs)-1]
	}

	if err := checkAppend(r, tail); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	s.chains[r.SessionID] = append(rs, *r)
	return nil
}

func (s *memoryStore) Chain(ctx context.Context, sessionID string) ([]receipt.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rs, ok := s.chains[sessionID]
	if !ok {
		return nil, fmt.Errorf("store: %w", ErrSessionNotFound)
	}

	out := make([]receipt.Receipt, len(rs))
	copy(out, rs)
	return out, nil
}

func (s *memoryStore) Tail(ctx context.Context, sessionID string) (*receipt.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rs, ok := s.chains[sessionID]
	if !ok || len(rs) == 0 {
		return nil, fmt.Errorf("store: %w", ErrSessionNotFound)
	}

	tail := rs[len(rs)-1]
	return &tail, nil
}

func (s *memoryStore) Sessions(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.chains))
	for id := range s.chains {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *memoryStore) Close() error {
	return nil
}
