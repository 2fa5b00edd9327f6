// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver for database/sql

	"github.com/sonate/trust-receipts/pkg/integrity"
	"github.com/sonate/trust-receipts/pkg/receipt"
)

type sqliteStore struct{ db *sql.DB }

// OpenSQLite opens or creates a SQLite database at dsn and ensures the
// schema and PRAGMAs. The returned Store is safe for concurrent use.
func OpenSQLite(dsn string) (Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: %w", err)
	}

	for _, p := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=FULL;",
		"PRAGMA busy_timeout=5000;",
	} {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: set %s: %w", p, err)
		}
	}

	schema := `
CREATE TABLE IF NOT EXISTS receipts (
  session_id    TEXT    NOT NULL,
  chain_length  INTEGER NOT NULL,
  id            TEXT    NOT NULL,
  version       TEXT    NOT NULL,
  ts            INTEGER NOT NULL,
  payload       TEXT,
  proof         TEXT,
  previous_hash TEXT    NOT NULL,
  self_hash     TEXT    NOT NULL,
  PRIMARY KEY (session_id, chain_length)
);
`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: %w", err)
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Append(ctx context.Context, r *receipt.Receipt) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	tail, err := scanTail(tx.QueryRowContext(ctx,
		`SELECT session_id, chain_length, id, version, ts, payload, proof, previous_hash, self_hash
		   FROM receipts WHERE session_id = ? ORDER BY chain_length DESC LIMIT 1`, r.SessionID))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("store: %w", err)
	}

	if err := checkAppend(r, tail); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	payload, proof, err := marshalColumns(r)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO receipts(session_id, chain_length, id, version, ts, payload, proof, previous_hash, self_hash)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.ChainLength, r.ID, r.Version, r.Timestamp, payload, proof, r.PreviousHash, r.SelfHash,
	); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

func (s *sqliteStore) Chain(ctx context.Context, sessionID string) ([]receipt.Receipt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, chain_length, id, version, ts, payload, proof, previous_hash, self_hash
		   FROM receipts WHERE session_id = ? ORDER BY chain_length ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	defer rows.Close()

	var rs []receipt.Receipt
	for rows.Next() {
		r, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		rs = append(rs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	if len(rs) == 0 {
		return nil, fmt.Errorf("store: %w", ErrSessionNotFound)
	}
	return rs, nil
}

func (s *sqliteStore) Tail(ctx context.Context, sessionID string) (*receipt.Receipt, error) {
	r, err := scanTail(s.db.QueryRowContext(ctx,
		`SELECT session_id, chain_length, id, version, ts, payload, proof, previous_hash, self_hash
		   FROM receipts WHERE session_id = ? ORDER BY chain_length DESC LIMIT 1`, sessionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: %w", ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return r, nil
}

func (s *sqliteStore) Sessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT session_id FROM receipts ORDER BY session_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return ids, nil
}

func (s *sqliteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

// marshalColumns serializes the payload and proof columns.
func marshalColumns(r *receipt.Receipt) (payload, proof sql.NullString, err error) {
	if r.Payload != nil {
		b, err := json.Marshal(r.Payload)
		if err != nil {
			return payload, proof, err
		}
		payload = sql.NullString{String: string(b), Valid: true}
	}

	if r.Proof != nil {
		b, err := json.Marshal(r.Proof)
		if err != nil {
			return payload, proof, err
		}
		proof = sql.NullString{String: string(b), Valid: true}
	}

	return payload, proof, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReceipt(sc scanner) (*receipt.Receipt, error) {
	var r receipt.Receipt
	var payload, proof sql.NullString

	if err := sc.Scan(&r.SessionID, &r.ChainLength, &r.ID, &r.Version, &r.Timestamp,
		&payload, &proof, &r.PreviousHash, &r.SelfHash); err != nil {
		return nil, err
	}

	if payload.Valid {
		if err := json.Unmarshal([]byte(payload.String), &r.Payload); err != nil {
			return nil, err
		}
	}

	if proof.Valid {
		p := &integrity.Proof{}
		if err := json.Unmarshal([]byte(proof.String), p); err != nil {
			return nil, err
		}
		r.Proof = p
	}

	return &r, nil
}

func scanTail(row *sql.Row) (*receipt.Receipt, error) {
	return scanReceipt(row)
}
