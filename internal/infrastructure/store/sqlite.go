// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package store contains the SQLite-backed repositories for the attendance
// service: the roster, the session catalog, the attendance ledger, and the
// administrator accounts.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// Pure-Go SQLite driver, registered as "sqlite".
	_ "modernc.org/sqlite"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
)

// schema is applied on every open; all statements are idempotent.
// The UNIQUE(session_uid, roster_entry_uid) constraint is the ledger's
// at-most-one-record invariant; a racing duplicate insert surfaces as a
// constraint violation rather than a silent double record.
const schema = `
CREATE TABLE IF NOT EXISTS roster_entries (
	uid        TEXT PRIMARY KEY,
	handle     TEXT NOT NULL UNIQUE,
	full_name  TEXT NOT NULL,
	email      TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	uid                 TEXT PRIMARY KEY,
	join_link           TEXT NOT NULL,
	external_meeting_id TEXT NOT NULL DEFAULT '',
	title               TEXT NOT NULL DEFAULT '',
	session_date        TEXT NOT NULL,
	created_at          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS admins (
	uid           TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS attendance_records (
	uid              TEXT PRIMARY KEY,
	session_uid      TEXT NOT NULL REFERENCES sessions (uid) ON DELETE CASCADE,
	roster_entry_uid TEXT NOT NULL REFERENCES roster_entries (uid) ON DELETE CASCADE,
	join_time        TEXT,
	leave_time       TEXT,
	duration_seconds INTEGER NOT NULL DEFAULT 0,
	created_at       TEXT NOT NULL,
	UNIQUE (session_uid, roster_entry_uid)
);
`

// DB wraps the SQLite connection shared by the repositories.
type DB struct {
	conn *sql.DB
}

// Open opens (and creates, if needed) the attendance database at the given
// DSN and applies the schema. SQLite allows a single writer, so the pool is
// capped at one connection; this also makes in-memory databases behave.
func Open(ctx context.Context, dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// nullableTime converts an optional timestamp to its stored representation.
func nullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

// scanNullableTime converts a stored timestamp back to *time.Time.
func scanNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored timestamp: %w", err)
	}
	return &t, nil
}

// mapSQLiteError converts driver errors to domain errors. The modernc
// driver reports constraint failures in the error text.
func mapSQLiteError(err error, conflictMessage string) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return domain.NewConflictError(conflictMessage, err)
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return domain.NewValidationError("referenced row does not exist", err)
	}
	return domain.NewInternalError("database operation failed", err)
}
