package api

import (
	"context"
	"net/http"

	"github.com/akarpov/memopad/internal/client/models"
	"github.com/akarpov/memopad/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type loginResponse struct {
	User models.Identity `json:"user"`
	tokenPairResponse
}

// SignUp registers a new account. It does not sign the user in.
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", "", credentialsRequest{Email: email, Password: password}, nil)
}

// SignIn authenticates and stores the session tokens in memory.
func (c *Client) SignIn(ctx context.Context, email, password string) (*models.Identity, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", credentialsRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	identity := resp.User
	c.setSession(resp.AccessToken, resp.RefreshToken, &identity)
	return &identity, nil
}

// SignOut revokes the session server-side and clears local state. Local
// state is cleared even when the server call fails, so the client never
// stays signed in against a session the user asked to end.
func (c *Client) SignOut(ctx context.Context) error {
	err := c.doAuthed(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.clearSession()
	return err
}

// CurrentIdentity returns the identity of the signed-in user, or
// common.ErrorUnauthorized when no session is active. When a session exists
// but no identity is cached, the server is asked.
func (c *Client) CurrentIdentity(ctx context.Context) (*models.Identity, error) {
	c.mu.Lock()
	identity := c.identity
	token := c.accessToken
	c.mu.Unlock()

	if identity != nil {
		return identity, nil
	}
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	var resp models.Identity
	if err := c.doAuthed(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.identity = &resp
	c.mu.Unlock()
	return &resp, nil
}

// refresh rotates the token pair. On failure the session is over: local
// state is cleared and subscribers receive a signed_out event.
func (c *Client) refresh(ctx context.Context) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	_, refreshToken := c.tokens()
	if refreshToken == "" {
		return "", common.ErrorUnauthorized
	}

	var resp tokenPairResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", "", refreshRequest{RefreshToken: refreshToken}, &resp); err != nil {
		c.clearSession()
		c.notifySubscribers(SessionEvent{Kind: common.SessionEventSignedOut})
		return "", common.ErrorUnauthorized
	}

	c.setSession(resp.AccessToken, resp.RefreshToken, nil)
	return resp.AccessToken, nil
}
