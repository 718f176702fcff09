// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
)

// tokenValidity is how long an issued admin token remains usable.
const tokenValidity = 24 * time.Hour

// AuthService handles local administrator authentication: bcrypt-verified
// credentials exchanged for a signed bearer token.
type AuthService struct {
	AdminRepository domain.AdminRepository
	signingKey      []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(adminRepository domain.AdminRepository, signingKey []byte) *AuthService {
	return &AuthService{
		AdminRepository: adminRepository,
		signingKey:      signingKey,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *AuthService) ServiceReady() bool {
	return s.AdminRepository != nil && len(s.signingKey) > 0
}

// Login verifies the credentials and returns a signed token. Unknown
// usernames and wrong passwords produce the same error so the response
// does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.Admin, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return "", nil, domain.NewUnavailableError("service not initialized")
	}
	if username == "" || password == "" {
		return "", nil, domain.NewValidationError("username and password are required")
	}

	admin, err := s.AdminRepository.GetByUsername(ctx, username)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return "", nil, domain.NewUnauthorizedError("invalid credentials")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		slog.WarnContext(ctx, "rejected login attempt", "username", username)
		return "", nil, domain.NewUnauthorizedError("invalid credentials")
	}

	token, err := s.issueToken(username)
	if err != nil {
		return "", nil, domain.NewInternalError("failed to sign token", err)
	}

	slog.InfoContext(ctx, "admin logged in", "username", username)
	return token, admin, nil
}

// ChangePassword verifies the current password and stores a hash of the
// new one.
func (s *AuthService) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	if !s.ServiceReady() {
		return domain.NewUnavailableError("service not initialized")
	}
	if currentPassword == "" || newPassword == "" {
		return domain.NewValidationError("current and new password are required")
	}

	admin, err := s.AdminRepository.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(currentPassword)); err != nil {
		return domain.NewUnauthorizedError("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.NewInternalError("failed to hash password", err)
	}
	if err := s.AdminRepository.UpdatePassword(ctx, username, string(hash)); err != nil {
		return err
	}

	slog.InfoContext(ctx, "admin password changed", "username", username)
	return nil
}

// ValidateToken verifies a bearer token and returns the admin username it
// was issued to.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	if len(s.signingKey) == 0 {
		return "", domain.NewUnavailableError("service not initialized")
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.signingKey, nil
	})
	if err != nil || !token.Valid {
		return "", domain.NewUnauthorizedError("invalid or expired token", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.NewUnauthorizedError("invalid token claims")
	}
	return claims.Subject, nil
}

// EnsureDefaultAdmin seeds the given account when it does not exist yet so
// a fresh install is reachable. The caller is expected to rotate the
// password after first login.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	if !s.ServiceReady() {
		return domain.NewUnavailableError("service not initialized")
	}

	_, err := s.AdminRepository.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if domain.GetErrorType(err) != domain.ErrorTypeNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.NewInternalError("failed to hash password", err)
	}

	admin := &models.Admin{
		UID:          uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.AdminRepository.Create(ctx, admin); err != nil {
		return err
	}

	slog.WarnContext(ctx, "default admin account created; change its password after first login",
		"username", username)
	return nil
}

func (s *AuthService) issueToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenValidity)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}
