// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

// MockAttendanceRepository implements AttendanceRepository for testing
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Exists(ctx context.Context, sessionUID, rosterEntryUID string) (bool, error) {
	args := m.Called(ctx, sessionUID, rosterEntryUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAttendanceRepository) ListBySession(ctx context.Context, sessionUID string) ([]*models.AttendanceRecordWithRoster, error) {
	args := m.Called(ctx, sessionUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AttendanceRecordWithRoster), args.Error(1)
}
