// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-attendance-service/pkg/constants"
)

// TokenValidator verifies a bearer token and returns the principal it was
// issued to.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

type principalContextKey struct{}

// PrincipalFromContext returns the authenticated principal set by
// AuthMiddleware, or "" when the request was not authenticated.
func PrincipalFromContext(ctx context.Context) string {
	principal, _ := ctx.Value(principalContextKey{}).(string)
	return principal
}

// AuthMiddleware creates a middleware that requires a valid bearer token on
// every request except the listed public paths.
func AuthMiddleware(validator TokenValidator, publicPaths ...string) func(http.Handler) http.Handler {
	public := make(map[string]bool, len(publicPaths))
	for _, path := range publicPaths {
		public[path] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if public[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			principal, err := validator.ValidateToken(token)
			if err != nil {
				slog.WarnContext(r.Context(), "rejected bearer token", logging.ErrKey, err)
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), principalContextKey{}, principal)
			ctx = logging.AppendCtx(ctx, slog.String("principal", principal))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	authorization := r.Header.Get(constants.AuthorizationHeader)
	prefix := len(constants.BearerPrefix)
	if len(authorization) > prefix && strings.EqualFold(authorization[:prefix], constants.BearerPrefix) {
		return strings.TrimSpace(authorization[prefix:])
	}
	return ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
