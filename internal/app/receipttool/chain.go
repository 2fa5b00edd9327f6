// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package receipttool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/sonate/trust-receipts/pkg/integrity"
	"github.com/sonate/trust-receipts/pkg/receipt"
	"github.com/sonate/trust-receipts/pkg/store"
)

var errChainBroken = errors.New("chain verification failed")

// ChainAppend signs the JSON payload at payloadPath and appends the
// resulting receipt to sessionID's chain in the SQLite database at dsn,
// continuing from the stored tail if the session already exists. The new
// receipt is written to output.
func (a *App) ChainAppend(ctx context.Context, dsn, sessionID string, alg integrity.Algorithm, keyPath, payloadPath string) error {
	signer, err := loadSigner(alg, keyPath)
	if err != nil {
		return err
	}

	payload, err := readDocument(payloadPath)
	if err != nil {
		return err
	}

	s, err := store.OpenSQLite(dsn)
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := receipt.NewChainBuilder(sessionID, signer)
	if err != nil {
		return err
	}

	tail, err := s.Tail(ctx, sessionID)
	switch {
	case err == nil:
		if err := b.Resume(tail); err != nil {
			return err
		}
	case errors.Is(err, store.ErrSessionNotFound):
		// First receipt of the session.
	default:
		return err
	}

	r, err := b.Append(payload)
	if err != nil {
		return err
	}

	if err := s.Append(ctx, r); err != nil {
		return err
	}

	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintf(a.opts.out, "%s\n", out)
	return nil
}

// ChainVerify loads sessionID's chain from the SQLite database at dsn and
// validates its linkage. A broken chain is reported on output and returned
// as an error so callers can exit non-zero.
func (a *App) ChainVerify(ctx context.Context, dsn, sessionID string) error {
	s, err := store.OpenSQLite(dsn)
	if err != nil {
		return err
	}
	defer s.Close()

	rs, err := s.Chain(ctx, sessionID)
	if err != nil {
		return err
	}

	report := receipt.VerifyChain(rs, receipt.OptVerifySession(sessionID))

	tw := tabwriter.NewWriter(a.opts.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Session:\t%v\n", sessionID)
	fmt.Fprintf(tw, "Receipts:\t%v\n", len(rs))
	fmt.Fprintf(tw, "Valid:\t%v\n", report.Valid)
	if !report.Valid {
		fmt.Fprintf(tw, "Break index:\t%v\n", report.BreakIndex)
	}
	tw.Flush()

	if !report.Valid {
		return fmt.Errorf("%w at index %v", errChainBroken, report.BreakIndex)
	}
	return nil
}

// ChainSessions lists the sessions stored in the SQLite database at dsn.
func (a *App) ChainSessions(ctx context.Context, dsn string) error {
	s, err := store.OpenSQLite(dsn)
	if err != nil {
		return err
	}
	defer s.Close()

	ids, err := s.Sessions(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		fmt.Fprintln(a.opts.out, id)
	}
	return nil
}
