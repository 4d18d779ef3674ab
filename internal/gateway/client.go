// Package gateway implements the pilot auth operations: health check, login,
// profile fetch and logout. Every call is a single request/response exchange;
// the Client keeps no state between calls and is safe for concurrent use.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hongminglow/pilot-auth/internal/models"
	"github.com/hongminglow/pilot-auth/internal/transport"
)

const (
	pathHealth  = "health"
	pathLogin   = "auth/login"
	pathProfile = "v1/users/me"
	pathLogout  = "auth/logout"
)

// Client runs auth operations against one server.
type Client struct {
	transport *transport.Transport
	logger    *slog.Logger
}

// New wraps an existing transport.
func New(t *transport.Transport, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{transport: t, logger: logger}
}

// NewHTTP builds a Client on a fresh http.Client with the given timeout.
func NewHTTP(host string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	tr := transport.New(host,
		transport.WithDoer(&http.Client{Timeout: timeout}),
		transport.WithLogger(logger),
	)
	return New(tr, logger)
}

// CheckHealth reports whether the server answered the health check with 204
// and an empty body. Any other outcome, including network and decode
// failures, is reported as false rather than an error.
func (c *Client) CheckHealth(ctx context.Context) bool {
	resp, err := c.transport.Get(ctx, pathHealth, "")
	if err != nil {
		c.logger.DebugContext(ctx, "health check failed", "error", err)
		return false
	}
	body, err := resp.ReadBody()
	if err != nil {
		c.logger.DebugContext(ctx, "health check body unreadable", "status", resp.StatusCode, "error", err)
		return false
	}
	return resp.StatusCode == http.StatusNoContent && body.Kind == transport.KindEmpty
}

// Login exchanges account credentials for an access token. The token is
// returned exactly as the server sent it.
func (c *Client) Login(ctx context.Context, account, password string) (string, error) {
	creds := models.Credentials{Account: account, Password: password}
	resp, err := c.transport.Post(ctx, pathLogin, creds, "")
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	body, err := resp.ReadBody()
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", violation(ReasonStatusNot200)
	}
	if body.Kind != transport.KindObject {
		return "", violation(ReasonBodyNotObject)
	}
	token, ok := body.StringField("accessToken")
	if !ok {
		return "", violation(ReasonNoAccessToken)
	}
	return token, nil
}

// FetchUserProfile returns the current user's profile unchanged.
//
// Older clients accepted any response here. This one requires a 2xx status and
// a JSON object body and reports anything else as a ContractViolation.
func (c *Client) FetchUserProfile(ctx context.Context, token string) (models.UserProfile, error) {
	resp, err := c.transport.Get(ctx, pathProfile, token)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	body, err := resp.ReadBody()
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, violation(ReasonStatusNot2xx)
	}
	obj, ok := body.Object()
	if !ok {
		return nil, violation(ReasonBodyNotObject)
	}
	return models.UserProfile(obj), nil
}

// Logout tells the server the token is no longer wanted so it can rotate its
// token state. Success is a 204 with an empty body.
func (c *Client) Logout(ctx context.Context, token string) error {
	resp, err := c.transport.Get(ctx, pathLogout, token)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	body, err := resp.ReadBody()
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	if resp.StatusCode != http.StatusNoContent || body.Kind != transport.KindEmpty {
		return violation(ReasonInvalidLogout)
	}
	return nil
}
