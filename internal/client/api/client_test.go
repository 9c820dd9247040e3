package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akarpov/memopad/internal/client/config"
	"github.com/akarpov/memopad/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(ts *httptest.Server) *Client {
	return NewClient(&config.Config{
		BaseURL:        ts.URL,
		ApiKey:         "test-key",
		RequestTimeout: 5 * time.Second,
	})
}

func writeTestJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestSignIn_StoresSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.Header.Get(common.ApiKeyHeaderName))
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var req credentialsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user@example.com", req.Email)

		writeTestJSON(w, http.StatusOK, map[string]any{
			"user":          map[string]string{"id": "u1", "email": req.Email},
			"access_token":  "acc-1",
			"refresh_token": "ref-1",
		})
	}))
	defer ts.Close()

	c := newTestClient(ts)
	identity, err := c.SignIn(context.Background(), "user@example.com", "pass")
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.ID)

	access, refresh := c.tokens()
	assert.Equal(t, "acc-1", access)
	assert.Equal(t, "ref-1", refresh)

	got, err := c.CurrentIdentity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", got.Email)
}

func TestSignIn_BadCredentials(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	}))
	defer ts.Close()

	c := newTestClient(ts)
	_, err := c.SignIn(context.Background(), "user@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestCurrentIdentity_NoSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer ts.Close()

	c := newTestClient(ts)
	_, err := c.CurrentIdentity(context.Background())
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestDoAuthed_RefreshesOnceOnExpiredToken(t *testing.T) {
	var listCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/notes", func(w http.ResponseWriter, r *http.Request) {
		if listCalls.Add(1) == 1 {
			writeTestJSON(w, http.StatusUnauthorized, errorResponse{Error: "token expired"})
			return
		}
		require.Equal(t, "Bearer acc-2", r.Header.Get("Authorization"))
		writeTestJSON(w, http.StatusOK, []any{})
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ref-1", req.RefreshToken)
		writeTestJSON(w, http.StatusOK, tokenPairResponse{AccessToken: "acc-2", RefreshToken: "ref-2"})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := newTestClient(ts)
	c.setSession("acc-1", "ref-1", nil)

	notes, err := c.ListNotes(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.Equal(t, int32(2), listCalls.Load())

	access, refresh := c.tokens()
	assert.Equal(t, "acc-2", access)
	assert.Equal(t, "ref-2", refresh)
}

func TestDoAuthed_FailedRefreshEndsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/notes", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusUnauthorized, errorResponse{Error: "token expired"})
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := newTestClient(ts)
	c.setSession("acc-1", "ref-1", nil)

	var events []SessionEvent
	c.subMu.Lock()
	c.subs[0] = func(ev SessionEvent) { events = append(events, ev) }
	c.subMu.Unlock()

	_, err := c.ListNotes(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	access, refresh := c.tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)

	require.Len(t, events, 1)
	assert.Equal(t, common.SessionEventSignedOut, events[0].Kind)
}

func TestNotesRoundTrip(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/notes", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "shop", r.URL.Query().Get("title"))
		writeTestJSON(w, http.StatusOK, []map[string]string{{"id": "n1", "title": "Shopping"}})
	})
	mux.HandleFunc("POST /api/notes", func(w http.ResponseWriter, r *http.Request) {
		var req noteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeTestJSON(w, http.StatusCreated, map[string]string{"id": "n2", "title": req.Title, "content": req.Content})
	})
	mux.HandleFunc("PUT /api/notes/n2", func(w http.ResponseWriter, r *http.Request) {
		var req noteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeTestJSON(w, http.StatusOK, map[string]string{"id": "n2", "title": req.Title})
	})
	mux.HandleFunc("DELETE /api/notes/n2", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := newTestClient(ts)
	c.setSession("acc", "ref", nil)
	ctx := context.Background()

	notes, err := c.ListNotes(ctx, "shop")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Shopping", notes[0].Title)

	created, err := c.CreateNote(ctx, "New", "body")
	require.NoError(t, err)
	assert.Equal(t, "n2", created.ID)

	updated, err := c.UpdateNote(ctx, "n2", "Renamed", "body")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	require.NoError(t, c.DeleteNote(ctx, "n2"))
}

func TestApiError_ValidationMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusBadRequest, errorResponse{Error: "validation error: title must not be empty"})
	}))
	defer ts.Close()

	c := newTestClient(ts)
	c.setSession("acc", "ref", nil)

	_, err := c.CreateNote(context.Background(), "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Contains(t, err.Error(), "title must not be empty")
}

func TestApiError_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	}))
	defer ts.Close()

	c := newTestClient(ts)
	c.setSession("acc", "ref", nil)

	err := c.DeleteNote(context.Background(), "missing")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}
