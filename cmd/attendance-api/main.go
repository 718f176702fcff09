// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package main is the attendance service API that provides a RESTful API
// for managing rosters, sessions and attendance reconciliation against
// Zoom past-meeting data.
package main

import (
	"context"
	_ "expvar"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/infrastructure/store"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/infrastructure/zoom"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/service"
)

func main() {
	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	// Open the sqlite store and apply the schema.
	db, err := store.Open(ctx, env.DatabasePath)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error opening database")
		os.Exit(1)
	}

	rosterRepo := store.NewRosterRepository(db)
	sessionRepo := store.NewSessionRepository(db)
	attendanceRepo := store.NewAttendanceRepository(db)
	adminRepo := store.NewAdminRepository(db)

	// Initialize the Zoom participant provider.
	zoomClient := zoom.NewClient(zoom.Config{
		AccountID:    env.Zoom.AccountID,
		ClientID:     env.Zoom.ClientID,
		ClientSecret: env.Zoom.ClientSecret,
		Timeout:      env.Zoom.Timeout,
	})

	// Initialize services
	authService := service.NewAuthService(adminRepo, []byte(env.JWTSecret))
	rosterService := service.NewRosterService(rosterRepo)
	sessionService := service.NewSessionService(sessionRepo)
	attendanceService := service.NewAttendanceService(sessionRepo, rosterRepo, attendanceRepo)
	reconciliationService := service.NewReconciliationService(sessionRepo, rosterRepo, attendanceRepo, zoomClient)
	reportService := service.NewReportService(sessionRepo, attendanceRepo)

	if err := authService.EnsureDefaultAdmin(ctx, env.DefaultAdminUsername, env.DefaultAdminPassword); err != nil {
		slog.With(logging.ErrKey, err).Error("error seeding default admin account")
		os.Exit(1)
	}

	if err := os.MkdirAll(env.ReportsDir, 0o755); err != nil {
		slog.With(logging.ErrKey, err).Error("error creating reports directory")
		os.Exit(1)
	}

	api := NewAttendanceAPI(
		authService,
		rosterService,
		sessionService,
		attendanceService,
		reconciliationService,
		reportService,
		env.ReportsDir,
	)

	httpServer := setupHTTPServer(flags, api, &gracefulCloseWG)

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(httpServer, db, &gracefulCloseWG, cancel)
}

// gracefulShutdown stops the HTTP listener, waits for in-flight requests to
// drain and closes the store.
func gracefulShutdown(httpServer *http.Server, db *store.DB, gracefulCloseWG *sync.WaitGroup, cancel context.CancelFunc) {
	slog.Info("shutting down attendance service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.With(logging.ErrKey, err).Error("error shutting down http server")
	}
	gracefulCloseWG.Done()

	cancel()
	gracefulCloseWG.Wait()

	if err := db.Close(); err != nil {
		slog.With(logging.ErrKey, err).Error("error closing database")
	}

	slog.Info("attendance service stopped")
}
