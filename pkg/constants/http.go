// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants holds shared wire-level constants.
package constants

// Constants for the HTTP request headers
const (
	// AuthorizationHeader is the header name for the authorization
	AuthorizationHeader string = "Authorization"

	// RequestIDHeader is the header name for the request ID
	RequestIDHeader string = "X-Request-Id"

	// BearerPrefix is the authorization scheme prefix for bearer tokens
	BearerPrefix string = "Bearer "
)
