// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/middleware"
)

// buildHandler assembles the route mux and middleware chain.
func buildHandler(api *AttendanceAPI) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /livez", api.handleLivez)
	mux.HandleFunc("GET /readyz", api.handleReadyz)

	mux.HandleFunc("POST /auth/login", api.handleLogin)
	mux.HandleFunc("POST /auth/change-password", api.handleChangePassword)

	mux.HandleFunc("GET /roster", api.handleListRoster)
	mux.HandleFunc("POST /roster", api.handleCreateRosterEntry)
	mux.HandleFunc("GET /roster/{uid}", api.handleGetRosterEntry)
	mux.HandleFunc("PUT /roster/{uid}", api.handleUpdateRosterEntry)
	mux.HandleFunc("DELETE /roster/{uid}", api.handleDeleteRosterEntry)

	mux.HandleFunc("GET /sessions", api.handleListSessions)
	mux.HandleFunc("POST /sessions", api.handleCreateSession)
	mux.HandleFunc("GET /sessions/{uid}", api.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{uid}", api.handleDeleteSession)

	mux.HandleFunc("GET /sessions/{uid}/attendance", api.handleListAttendance)
	mux.HandleFunc("POST /sessions/{uid}/attendance", api.handleAddAttendance)
	mux.HandleFunc("POST /sessions/{uid}/reconcile", api.handleReconcile)
	mux.HandleFunc("GET /sessions/{uid}/report", api.handleAttendanceReport)
	mux.HandleFunc("GET /sessions/{uid}/summary", api.handleAttendanceSummary)

	var handler http.Handler = mux

	// Add HTTP middleware
	// Note: Order matters - RequestIDMiddleware should come first in the chain,
	// so it should be the last middleware added to the handler since it is executed in reverse order.
	handler = middleware.RequestLoggerMiddleware()(handler)
	handler = middleware.AuthMiddleware(api.authService, "/livez", "/readyz", "/auth/login")(handler)
	handler = middleware.RequestIDMiddleware()(handler)

	return handler
}

// setupHTTPServer configures and starts the HTTP server
func setupHTTPServer(flags flags, api *AttendanceAPI, gracefulCloseWG *sync.WaitGroup) *http.Server {
	handler := buildHandler(api)

	// Set up http listener in a goroutine using provided command line parameters.
	var addr string
	if flags.Bind == "*" {
		addr = ":" + flags.Port
	} else {
		addr = flags.Bind + ":" + flags.Port
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}
	gracefulCloseWG.Add(1)
	go func() {
		slog.With("addr", addr).Debug("starting http server, listening on port " + flags.Port)
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			slog.With(logging.ErrKey, err).Error("http listener error")
			os.Exit(1)
		}
		// Because ErrServerClosed is *immediately* returned when Shutdown is
		// called, not when when Shutdown completes, this must not yet decrement
		// the wait group.
	}()

	return httpServer
}
