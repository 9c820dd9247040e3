// Package api implements the memopad backend client: JSON HTTP calls for
// auth and notes, and a websocket subscription for session change events.
// Access tokens are held in memory and refreshed transparently; a refresh
// that fails ends the session and notifies subscribers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/akarpov/memopad/internal/client/config"
	"github.com/akarpov/memopad/internal/client/models"
	"github.com/akarpov/memopad/internal/common"
)

// Client talks to one memopad backend on behalf of at most one signed-in
// user. All methods are safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	identity     *models.Identity

	// refreshMu serializes token refreshes so concurrent expired-token
	// retries do not race to rotate the same refresh token.
	refreshMu sync.Mutex

	subMu  sync.Mutex
	subs   map[int]func(SessionEvent)
	nextID int
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.ApiKey,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		subs:    make(map[int]func(SessionEvent)),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// apiError converts a non-2xx response into one of the common sentinels so
// callers can branch with errors.Is.
func apiError(status int, body []byte) error {
	var er errorResponse
	_ = json.Unmarshal(body, &er)

	switch status {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrorValidation, er.Error)
	case http.StatusUnauthorized:
		if er.Error == "token expired" {
			return common.ErrTokenExpired
		}
		return common.ErrorUnauthorized
	case http.StatusForbidden:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, er.Error)
	default:
		return common.ErrorInternal
	}
}

// do performs one JSON request. A nil out skips decoding the response body.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var buf bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&buf).Encode(in); err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set(common.ApiKeyHeaderName, c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return apiError(resp.StatusCode, body)
	}
	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// doAuthed performs an authenticated request. On an expired access token it
// refreshes once and retries; a failed refresh ends the session.
func (c *Client) doAuthed(ctx context.Context, method, path string, in, out any) error {
	c.mu.Lock()
	token := c.accessToken
	c.mu.Unlock()

	if token == "" {
		return common.ErrorUnauthorized
	}

	err := c.do(ctx, method, path, token, in, out)
	if !errors.Is(err, common.ErrTokenExpired) {
		return err
	}

	token, err = c.refresh(ctx)
	if err != nil {
		return common.ErrorUnauthorized
	}
	return c.do(ctx, method, path, token, in, out)
}

func (c *Client) tokens() (access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

func (c *Client) setSession(access, refresh string, identity *models.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refreshToken = refresh
	if identity != nil {
		c.identity = identity
	}
}

// clearSession drops the in-memory session state.
func (c *Client) clearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = ""
	c.refreshToken = ""
	c.identity = nil
}
