// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

// MockParticipantProvider implements ParticipantProvider for testing
type MockParticipantProvider struct {
	mock.Mock
}

func (m *MockParticipantProvider) GetPastSessionParticipants(ctx context.Context, sessionUUID string) ([]models.ParticipantEvent, error) {
	args := m.Called(ctx, sessionUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ParticipantEvent), args.Error(1)
}
