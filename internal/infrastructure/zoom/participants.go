// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package zoom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-attendance-service/pkg/utils"
)

// Ensure Client implements ParticipantProvider
var _ domain.ParticipantProvider = (*Client)(nil)

// participantPageSize is the maximum participants per page supported by the
// Zoom past-meetings endpoint.
const participantPageSize = 300

// pastParticipant represents one participant entry in the Zoom
// past-meetings participants response
type pastParticipant struct {
	Name      string `json:"name"`
	UserName  string `json:"user_name"`
	JoinTime  string `json:"join_time"`
	LeaveTime string `json:"leave_time"`
	Duration  int    `json:"duration"`
}

// pastParticipantsResponse represents one page of the Zoom past-meetings
// participants response
type pastParticipantsResponse struct {
	PageSize      int               `json:"page_size"`
	TotalRecords  int               `json:"total_records"`
	NextPageToken string            `json:"next_page_token"`
	Participants  []pastParticipant `json:"participants"`
}

// GetPastSessionParticipants retrieves every participant event for one past
// session instance, following pagination until exhausted. Events are
// returned in provider response order.
func (c *Client) GetPastSessionParticipants(ctx context.Context, sessionUUID string) ([]models.ParticipantEvent, error) {
	ctx = logging.AppendCtx(ctx, slog.String("zoom_operation", "get_past_session_participants"))

	if sessionUUID == "" {
		return nil, domain.NewValidationError("session UUID is required")
	}

	// The Zoom API requires the meeting UUID to be double URL-encoded, since
	// the UUID itself may contain characters such as '/' and '='.
	encodedUUID := url.QueryEscape(url.QueryEscape(sessionUUID))
	basePath := fmt.Sprintf("/past_meetings/%s/participants", encodedUUID)

	var events []models.ParticipantEvent
	nextPageToken := ""

	for {
		path := fmt.Sprintf("%s?page_size=%d", basePath, participantPageSize)
		if nextPageToken != "" {
			path += "&next_page_token=" + url.QueryEscape(nextPageToken)
		}

		page, err := c.getParticipantsPage(ctx, path)
		if err != nil {
			return nil, err
		}

		for _, p := range page.Participants {
			events = append(events, toParticipantEvent(p))
		}

		if page.NextPageToken == "" {
			break
		}
		nextPageToken = page.NextPageToken
	}

	slog.InfoContext(ctx, "successfully retrieved past session participants",
		"participant_count", len(events))

	return events, nil
}

// getParticipantsPage fetches and decodes one page of participant events
func (c *Client) getParticipantsPage(ctx context.Context, path string) (*pastParticipantsResponse, error) {
	resp, err := c.doGet(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		err := parseErrorResponse(body)
		slog.ErrorContext(ctx, "Zoom API returned error", logging.ErrKey, err, "status", resp.StatusCode)
		return nil, domain.NewUnavailableError("failed to fetch past session participants", err)
	}

	var page pastParticipantsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		slog.ErrorContext(ctx, "failed to decode participants response", logging.ErrKey, err)
		return nil, domain.NewUnavailableError("failed to decode participants response", err)
	}

	return &page, nil
}

// toParticipantEvent converts a Zoom participant entry to the domain event.
// A participant with no explicit duration is treated as duration 0.
func toParticipantEvent(p pastParticipant) models.ParticipantEvent {
	return models.ParticipantEvent{
		Name:            utils.CoalesceString(p.Name, p.UserName),
		JoinTime:        parseZoomTime(p.JoinTime),
		LeaveTime:       parseZoomTime(p.LeaveTime),
		DurationSeconds: p.Duration,
	}
}

// parseZoomTime parses the RFC3339 timestamps used by the Zoom API.
// Missing or malformed timestamps are treated as absent.
func parseZoomTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return utils.TimePtr(t)
}
