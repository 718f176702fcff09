// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

// RosterRepository is the SQLite implementation of domain.RosterRepository.
type RosterRepository struct {
	db *DB
}

// NewRosterRepository creates a new SQLite roster repository.
func NewRosterRepository(db *DB) *RosterRepository {
	return &RosterRepository{db: db}
}

var _ domain.RosterRepository = (*RosterRepository)(nil)

func (r *RosterRepository) Create(ctx context.Context, entry *models.RosterEntry) error {
	now := time.Now().UTC()
	entry.CreatedAt = &now

	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO roster_entries (uid, handle, full_name, email, created_at) VALUES (?, ?, ?, ?, ?)`,
		entry.UID, entry.Handle, entry.FullName, entry.Email, now.Format(time.RFC3339),
	)
	if err != nil {
		return mapSQLiteError(err, "roster entry with this handle already exists")
	}
	return nil
}

func (r *RosterRepository) Get(ctx context.Context, entryUID string) (*models.RosterEntry, error) {
	return r.getOne(ctx,
		`SELECT uid, handle, full_name, email, created_at FROM roster_entries WHERE uid = ?`, entryUID)
}

func (r *RosterRepository) GetByHandle(ctx context.Context, handle string) (*models.RosterEntry, error) {
	return r.getOne(ctx,
		`SELECT uid, handle, full_name, email, created_at FROM roster_entries WHERE handle = ?`, handle)
}

func (r *RosterRepository) getOne(ctx context.Context, query, arg string) (*models.RosterEntry, error) {
	var entry models.RosterEntry
	var createdAt string

	err := r.db.conn.QueryRowContext(ctx, query, arg).Scan(
		&entry.UID, &entry.Handle, &entry.FullName, &entry.Email, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("roster entry not found")
		}
		return nil, mapSQLiteError(err, "")
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		entry.CreatedAt = &t
	}
	return &entry, nil
}

func (r *RosterRepository) Update(ctx context.Context, entry *models.RosterEntry) error {
	result, err := r.db.conn.ExecContext(ctx,
		`UPDATE roster_entries SET handle = ?, full_name = ?, email = ? WHERE uid = ?`,
		entry.Handle, entry.FullName, entry.Email, entry.UID,
	)
	if err != nil {
		return mapSQLiteError(err, "roster entry with this handle already exists")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.NewInternalError("failed to get rows affected", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("roster entry not found")
	}
	return nil
}

// Delete removes a roster entry. Attendance records referencing it are
// removed by the cascading foreign key.
func (r *RosterRepository) Delete(ctx context.Context, entryUID string) error {
	result, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM roster_entries WHERE uid = ?`, entryUID)
	if err != nil {
		return mapSQLiteError(err, "")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.NewInternalError("failed to get rows affected", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("roster entry not found")
	}
	return nil
}

// ListAll returns the full roster ordered by full name ascending. The
// identity matcher's first-match policy depends on this ordering.
func (r *RosterRepository) ListAll(ctx context.Context) ([]*models.RosterEntry, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT uid, handle, full_name, email, created_at FROM roster_entries ORDER BY full_name ASC`)
	if err != nil {
		return nil, mapSQLiteError(err, "")
	}
	defer func() { _ = rows.Close() }()

	var entries []*models.RosterEntry
	for rows.Next() {
		var entry models.RosterEntry
		var createdAt string
		if err := rows.Scan(&entry.UID, &entry.Handle, &entry.FullName, &entry.Email, &createdAt); err != nil {
			return nil, mapSQLiteError(err, "")
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			entry.CreatedAt = &t
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err, "")
	}

	return entries, nil
}
