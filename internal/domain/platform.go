// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

// ParticipantProvider defines the interface for retrieving attendance
// events from the external meeting platform. Implementations own credential
// acquisition; callers only see participant events or a typed error
// (unauthorized for a rejected credential exchange, unavailable for
// transport failures and non-2xx responses).
type ParticipantProvider interface {
	// GetPastSessionParticipants returns every participant event recorded
	// for one past session instance, in provider response order, following
	// provider pagination until exhausted.
	GetPastSessionParticipants(ctx context.Context, sessionUUID string) ([]models.ParticipantEvent, error)
}
