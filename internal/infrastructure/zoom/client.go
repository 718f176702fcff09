// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package zoom provides the Zoom API client used to pull past-session
// participant data for attendance reconciliation.
package zoom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
)

const (
	// BaseURL is the base URL for the Zoom API
	BaseURL = "https://api.zoom.us/v2"
	// AuthURL is the OAuth token endpoint
	AuthURL = "https://zoom.us/oauth/token"
	// DefaultClientTimeout is the default HTTP client timeout for Zoom API requests
	DefaultClientTimeout = 30 * time.Second
	// tokenExpirySkew is subtracted from the token validity so a token is
	// never served when it would expire mid-request.
	tokenExpirySkew = 60 * time.Second
)

// Config holds the configuration for the Zoom client
type Config struct {
	AccountID    string
	ClientID     string
	ClientSecret string
	// Optional: override base URL for testing
	BaseURL string
	// Optional: override auth URL for testing
	AuthURL string
	// Optional: override timeout for HTTP requests
	Timeout time.Duration
}

// Client represents a Zoom API client. It owns the cached bearer token and
// is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	config     Config
	tokens     *tokenCache
}

// NewClient creates a new Zoom API client
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = BaseURL
	}
	if config.AuthURL == "" {
		config.AuthURL = AuthURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultClientTimeout
	}

	// Zoom Server-to-Server OAuth requires specific grant_type and account_id
	oauthConfig := &clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     config.AuthURL,
		EndpointParams: url.Values{
			"grant_type": []string{"account_credentials"},
			"account_id": []string{config.AccountID},
		},
		AuthStyle: oauth2.AuthStyleInParams,
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
		tokens: &tokenCache{
			conf: oauthConfig,
			skew: tokenExpirySkew,
			httpClient: &http.Client{
				Timeout: config.Timeout,
			},
		},
	}
}

// tokenCache holds the process-wide bearer token state. Acquisition is
// serialized through a singleflight group so that concurrent callers
// observing a stale token share one credential exchange and its result.
type tokenCache struct {
	conf *clientcredentials.Config
	skew time.Duration
	// httpClient bounds the credential exchange with the same timeout as
	// regular API requests.
	httpClient *http.Client

	group singleflight.Group

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// cached returns the current token if it has not passed its skewed expiry.
func (tc *tokenCache) cached() (string, bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if tc.token != "" && time.Now().Before(tc.expiresAt) {
		return tc.token, true
	}
	return "", false
}

// bearer returns a valid bearer token, acquiring a fresh one when the
// cached token is absent or expired.
func (tc *tokenCache) bearer(ctx context.Context) (string, error) {
	if token, ok := tc.cached(); ok {
		return token, nil
	}

	v, err, _ := tc.group.Do("token", func() (any, error) {
		// Another waiter may have refreshed the token while this caller
		// queued behind the in-flight acquisition.
		if token, ok := tc.cached(); ok {
			return token, nil
		}

		tok, err := tc.conf.Token(context.WithValue(ctx, oauth2.HTTPClient, tc.httpClient))
		if err != nil {
			var retrieveErr *oauth2.RetrieveError
			if errors.As(err, &retrieveErr) {
				return nil, domain.NewUnauthorizedError("Zoom credential exchange rejected", err)
			}
			return nil, domain.NewUnavailableError("Zoom token endpoint unreachable", err)
		}

		tc.mu.Lock()
		tc.token = tok.AccessToken
		tc.expiresAt = tok.Expiry.Add(-tc.skew)
		tc.mu.Unlock()

		return tok.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// doGet performs an authenticated GET request against the Zoom API
func (c *Client) doGet(ctx context.Context, path string) (*http.Response, error) {
	token, err := c.tokens.bearer(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return nil, domain.NewInternalError("failed to create Zoom API request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	slog.DebugContext(ctx, "making Zoom API request", "method", http.MethodGet, "path", path)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		slog.ErrorContext(ctx, "Zoom API request failed",
			"method", http.MethodGet,
			"path", path,
			"duration", duration.String(),
			logging.ErrKey, err)
		return nil, domain.NewUnavailableError("Zoom API unreachable", err)
	}

	slog.InfoContext(ctx, "Zoom API request completed",
		"method", http.MethodGet,
		"path", path,
		"status", resp.StatusCode,
		"duration", duration.String(),
	)

	return resp, nil
}

// parseErrorResponse attempts to parse a Zoom API error response
func parseErrorResponse(body []byte) error {
	var errResp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return fmt.Errorf("zoom API error (code %d): %s", errResp.Code, errResp.Message)
	}
	return fmt.Errorf("zoom API error: %s", string(body))
}
