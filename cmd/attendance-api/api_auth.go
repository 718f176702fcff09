// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"net/http"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/middleware"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// handleLogin exchanges admin credentials for a bearer token.
func (api *AttendanceAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	token, admin, err := api.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, loginResponse{
		Token:    token,
		Username: admin.Username,
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// handleChangePassword rotates the authenticated admin's password.
func (api *AttendanceAPI) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username := middleware.PrincipalFromContext(ctx)
	if username == "" {
		writeError(ctx, w, domain.NewUnauthorizedError("authentication required"))
		return
	}

	var req changePasswordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := api.authService.ChangePassword(ctx, username, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]string{"message": "password updated"})
}
