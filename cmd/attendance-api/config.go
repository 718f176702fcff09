// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
)

// flags are the command line flags for the attendance service.
type flags struct {
	Debug bool
	Port  string
	Bind  string
}

// environment are the environment variables for the attendance service.
type environment struct {
	Port         string `env:"PORT" envDefault:"8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"attendance.db"`
	ReportsDir   string `env:"REPORTS_DIR" envDefault:"reports"`

	// JWTSecret signs admin bearer tokens. The default only exists so a
	// fresh checkout starts; production deployments must override it.
	JWTSecret string `env:"JWT_SECRET" envDefault:"your-secret-key-please-change-in-production"`

	DefaultAdminUsername string `env:"DEFAULT_ADMIN_USERNAME" envDefault:"admin"`
	DefaultAdminPassword string `env:"DEFAULT_ADMIN_PASSWORD" envDefault:"admin123"`

	Zoom zoomEnvironment `envPrefix:"ZOOM_"`
}

// zoomEnvironment holds the Zoom Server-to-Server OAuth credentials.
type zoomEnvironment struct {
	AccountID    string        `env:"ACCOUNT_ID"`
	ClientID     string        `env:"CLIENT_ID"`
	ClientSecret string        `env:"CLIENT_SECRET"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// parseFlags parses command line flags for the attendance service
func parseFlags(defaultPort string) flags {
	var debug = flag.Bool("d", false, "enable debug logging")
	var port = flag.String("p", defaultPort, "listen port")
	var bind = flag.String("bind", "*", "interface to bind on")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
		Port:  *port,
		Bind:  *bind,
	}
}

// parseEnv parses environment variables for the attendance service. A .env
// file in the working directory is loaded first when present.
func parseEnv() environment {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.With(logging.ErrKey, err).Warn("error loading .env file")
	}

	var e environment
	if err := env.Parse(&e); err != nil {
		slog.With(logging.ErrKey, err).Error("error parsing environment variables")
		os.Exit(1)
	}
	return e
}
