// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/infrastructure/store"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/service"
)

// stubProvider serves a fixed participant list without talking to Zoom.
type stubProvider struct {
	events []models.ParticipantEvent
}

func (p *stubProvider) GetPastSessionParticipants(_ context.Context, _ string) ([]models.ParticipantEvent, error) {
	return p.events, nil
}

func newTestHandler(t *testing.T, provider *stubProvider) http.Handler {
	t.Helper()

	db, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rosterRepo := store.NewRosterRepository(db)
	sessionRepo := store.NewSessionRepository(db)
	attendanceRepo := store.NewAttendanceRepository(db)
	adminRepo := store.NewAdminRepository(db)

	authService := service.NewAuthService(adminRepo, []byte("test-signing-key"))
	require.NoError(t, authService.EnsureDefaultAdmin(context.Background(), "admin", "admin123"))

	api := NewAttendanceAPI(
		authService,
		service.NewRosterService(rosterRepo),
		service.NewSessionService(sessionRepo),
		service.NewAttendanceService(sessionRepo, rosterRepo, attendanceRepo),
		service.NewReconciliationService(sessionRepo, rosterRepo, attendanceRepo, provider),
		service.NewReportService(sessionRepo, attendanceRepo),
		"",
	)
	return buildHandler(api)
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, handler http.Handler) string {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/auth/login", "",
		map[string]string{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthEndpointsArePublic(t *testing.T) {
	handler := newTestHandler(t, &stubProvider{})

	for _, path := range []string{"/livez", "/readyz"} {
		rec := doJSON(t, handler, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	handler := newTestHandler(t, &stubProvider{})

	rec := doJSON(t, handler, http.MethodGet, "/sessions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/sessions", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	handler := newTestHandler(t, &stubProvider{})

	rec := doJSON(t, handler, http.MethodPost, "/auth/login", "",
		map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReconcileEndToEnd(t *testing.T) {
	join := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	leave := join.Add(50 * time.Minute)
	provider := &stubProvider{events: []models.ParticipantEvent{
		{Name: "Alice Johnson", JoinTime: &join, LeaveTime: &leave, DurationSeconds: 3000},
		{Name: "Complete Stranger", JoinTime: &join, LeaveTime: &leave, DurationSeconds: 600},
	}}
	handler := newTestHandler(t, provider)
	token := login(t, handler)

	// Seed one roster entry and one session.
	rec := doJSON(t, handler, http.MethodPost, "/roster", token,
		map[string]string{"handle": "alicej", "full_name": "Alice Johnson"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var entry models.RosterEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))

	rec = doJSON(t, handler, http.MethodPost, "/sessions", token, map[string]string{
		"join_link": "https://zoom.us/j/123456789",
		"title":     "Weekly Sync",
		"date":      "2026-03-10",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var session models.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, "123456789", session.ExternalMeetingID)

	// First reconciliation records Alice and rejects the stranger.
	reconcilePath := fmt.Sprintf("/sessions/%s/reconcile", session.UID)
	rec = doJSON(t, handler, http.MethodPost, reconcilePath, token,
		map[string]string{"zoom_meeting_uuid": "abc=="})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var summary models.ReconciliationSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Approved)
	assert.Equal(t, 1, summary.Added)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 1, summary.Rejected)

	// A second run is idempotent.
	rec = doJSON(t, handler, http.MethodPost, reconcilePath, token,
		map[string]string{"zoom_meeting_uuid": "abc=="})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 0, summary.Added)
	assert.Equal(t, 1, summary.Skipped)

	// The ledger lists the single record with roster fields.
	rec = doJSON(t, handler, http.MethodGet, fmt.Sprintf("/sessions/%s/attendance", session.UID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var records []*models.AttendanceRecordWithRoster
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "alicej", records[0].Handle)

	// A manual insert for the same pair is a conflict.
	rec = doJSON(t, handler, http.MethodPost, fmt.Sprintf("/sessions/%s/attendance", session.UID), token,
		map[string]string{"roster_entry_uid": entry.UID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The PDF report streams with a download filename.
	rec = doJSON(t, handler, http.MethodGet, fmt.Sprintf("/sessions/%s/report", session.UID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance_"+session.UID)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	// The text summary names the attendee.
	rec = doJSON(t, handler, http.MethodGet, fmt.Sprintf("/sessions/%s/summary", session.UID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "Alice Johnson (alicej)"))
}

func TestReportForEmptyLedgerIsNotFound(t *testing.T) {
	handler := newTestHandler(t, &stubProvider{})
	token := login(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/sessions", token, map[string]string{
		"join_link": "https://zoom.us/j/123456789",
		"date":      "2026-03-10",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var session models.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))

	rec = doJSON(t, handler, http.MethodGet, fmt.Sprintf("/sessions/%s/report", session.UID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	handler := newTestHandler(t, &stubProvider{})
	token := login(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/sessions/nope", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
