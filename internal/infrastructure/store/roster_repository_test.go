// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

func TestRosterListAllOrdersByFullName(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewRosterRepository(db)

	createTestRosterEntry(t, db, "zed", "Zed Yates")
	createTestRosterEntry(t, db, "anna", "Anna Bell")
	createTestRosterEntry(t, db, "ann", "Ann Arbor")

	entries, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Ann Arbor", entries[0].FullName)
	assert.Equal(t, "Anna Bell", entries[1].FullName)
	assert.Equal(t, "Zed Yates", entries[2].FullName)
}

func TestRosterDuplicateHandleConflict(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewRosterRepository(db)

	createTestRosterEntry(t, db, "dupe", "First Holder")

	err := repo.Create(ctx, &models.RosterEntry{
		UID:      uuid.New().String(),
		Handle:   "dupe",
		FullName: "Second Holder",
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))
}

func TestRosterGetByHandle(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewRosterRepository(db)

	created := createTestRosterEntry(t, db, "findme", "Find Me")

	entry, err := repo.GetByHandle(ctx, "findme")
	require.NoError(t, err)
	assert.Equal(t, created.UID, entry.UID)
	assert.Equal(t, "Find Me", entry.FullName)

	_, err = repo.GetByHandle(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}

func TestRosterUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewRosterRepository(db)

	entry := createTestRosterEntry(t, db, "old", "Old Name")

	entry.Handle = "new"
	entry.FullName = "New Name"
	entry.Email = "new@example.org"
	require.NoError(t, repo.Update(ctx, entry))

	fetched, err := repo.Get(ctx, entry.UID)
	require.NoError(t, err)
	assert.Equal(t, "new", fetched.Handle)
	assert.Equal(t, "New Name", fetched.FullName)
	assert.Equal(t, "new@example.org", fetched.Email)

	require.NoError(t, repo.Delete(ctx, entry.UID))

	_, err = repo.Get(ctx, entry.UID)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))

	err = repo.Delete(ctx, entry.UID)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}
