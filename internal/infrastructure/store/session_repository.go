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

// SessionRepository is the SQLite implementation of domain.SessionRepository.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new SQLite session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

var _ domain.SessionRepository = (*SessionRepository)(nil)

func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	now := time.Now().UTC()
	session.CreatedAt = &now

	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO sessions (uid, join_link, external_meeting_id, title, session_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		session.UID, session.JoinLink, session.ExternalMeetingID, session.Title,
		session.Date, now.Format(time.RFC3339),
	)
	if err != nil {
		return mapSQLiteError(err, "session already exists")
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionUID string) (*models.Session, error) {
	var session models.Session
	var createdAt string

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT uid, join_link, external_meeting_id, title, session_date, created_at
		 FROM sessions WHERE uid = ?`, sessionUID).Scan(
		&session.UID, &session.JoinLink, &session.ExternalMeetingID,
		&session.Title, &session.Date, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("session not found")
		}
		return nil, mapSQLiteError(err, "")
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		session.CreatedAt = &t
	}
	return &session, nil
}

// Delete removes a session. Its attendance records are removed by the
// cascading foreign key.
func (r *SessionRepository) Delete(ctx context.Context, sessionUID string) error {
	result, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM sessions WHERE uid = ?`, sessionUID)
	if err != nil {
		return mapSQLiteError(err, "")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.NewInternalError("failed to get rows affected", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("session not found")
	}
	return nil
}

// ListAll returns all sessions ordered by date descending, newest first.
func (r *SessionRepository) ListAll(ctx context.Context) ([]*models.Session, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT uid, join_link, external_meeting_id, title, session_date, created_at
		 FROM sessions ORDER BY session_date DESC`)
	if err != nil {
		return nil, mapSQLiteError(err, "")
	}
	defer func() { _ = rows.Close() }()

	var sessions []*models.Session
	for rows.Next() {
		var session models.Session
		var createdAt string
		if err := rows.Scan(&session.UID, &session.JoinLink, &session.ExternalMeetingID,
			&session.Title, &session.Date, &createdAt); err != nil {
			return nil, mapSQLiteError(err, "")
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			session.CreatedAt = &t
		}
		sessions = append(sessions, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err, "")
	}

	return sessions, nil
}
