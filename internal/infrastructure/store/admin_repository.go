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

// AdminRepository is the SQLite implementation of domain.AdminRepository.
type AdminRepository struct {
	db *DB
}

// NewAdminRepository creates a new SQLite admin repository.
func NewAdminRepository(db *DB) *AdminRepository {
	return &AdminRepository{db: db}
}

var _ domain.AdminRepository = (*AdminRepository)(nil)

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	var createdAt string

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT uid, username, password_hash, created_at FROM admins WHERE username = ?`,
		username).Scan(&admin.UID, &admin.Username, &admin.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("admin not found")
		}
		return nil, mapSQLiteError(err, "")
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		admin.CreatedAt = &t
	}
	return &admin, nil
}

func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	now := time.Now().UTC()
	admin.CreatedAt = &now

	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO admins (uid, username, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		admin.UID, admin.Username, admin.PasswordHash, now.Format(time.RFC3339),
	)
	if err != nil {
		return mapSQLiteError(err, "admin with this username already exists")
	}
	return nil
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	result, err := r.db.conn.ExecContext(ctx,
		`UPDATE admins SET password_hash = ? WHERE username = ?`, passwordHash, username)
	if err != nil {
		return mapSQLiteError(err, "")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.NewInternalError("failed to get rows affected", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("admin not found")
	}
	return nil
}
