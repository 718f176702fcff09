// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

// MockRosterRepository implements RosterRepository for testing
type MockRosterRepository struct {
	mock.Mock
}

func (m *MockRosterRepository) Create(ctx context.Context, entry *models.RosterEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockRosterRepository) Get(ctx context.Context, entryUID string) (*models.RosterEntry, error) {
	args := m.Called(ctx, entryUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RosterEntry), args.Error(1)
}

func (m *MockRosterRepository) GetByHandle(ctx context.Context, handle string) (*models.RosterEntry, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RosterEntry), args.Error(1)
}

func (m *MockRosterRepository) Update(ctx context.Context, entry *models.RosterEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockRosterRepository) Delete(ctx context.Context, entryUID string) error {
	args := m.Called(ctx, entryUID)
	return args.Error(0)
}

func (m *MockRosterRepository) ListAll(ctx context.Context) ([]*models.RosterEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RosterEntry), args.Error(1)
}
