package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/akarpov/memopad/internal/logging"
	"github.com/akarpov/memopad/internal/server/config"
	"github.com/akarpov/memopad/internal/server/services"
	"github.com/akarpov/memopad/internal/server/sessionhub"
)

const shutdownTimeout = 5 * time.Second

// Server wires the user and note services into HTTP routes and owns the
// listener lifecycle.
type Server struct {
	userService *services.UserService
	noteService *services.NoteService
	hub         *sessionhub.Hub
	logger      logging.Logger

	apiKey    string
	jwtSecret []byte

	httpServer *http.Server
}

func NewServer(users *services.UserService, notes *services.NoteService, hub *sessionhub.Hub, cfg *config.Config, logger logging.Logger) *Server {
	s := &Server{
		userService: users,
		noteService: notes,
		hub:         hub,
		logger:      logger,
		apiKey:      cfg.ApiKey,
		jwtSecret:   []byte(cfg.SecretKey),
	}
	s.httpServer = &http.Server{
		Addr:    cfg.EndpointAddr,
		Handler: s.routes(),
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	auth := func(h http.HandlerFunc) http.Handler { return s.authMiddleware(h) }

	mux.Handle("POST /api/auth/register", http.HandlerFunc(s.handleRegister))
	mux.Handle("POST /api/auth/login", http.HandlerFunc(s.handleLogin))
	mux.Handle("POST /api/auth/refresh", http.HandlerFunc(s.handleRefresh))
	mux.Handle("POST /api/auth/logout", auth(s.handleLogout))
	mux.Handle("GET /api/auth/me", auth(s.handleMe))

	mux.Handle("GET /api/notes", auth(s.handleListNotes))
	mux.Handle("POST /api/notes", auth(s.handleCreateNote))
	mux.Handle("PUT /api/notes/{id}", auth(s.handleUpdateNote))
	mux.Handle("DELETE /api/notes/{id}", auth(s.handleDeleteNote))

	mux.Handle("GET /ws/session", auth(s.handleSessionWs))

	return s.apiKeyMiddleware(mux)
}

// Run serves requests until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info(shutdownCtx, "shutting down http server")
	return s.httpServer.Shutdown(shutdownCtx)
}

func (s *Server) handleSessionWs(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}
	if err := sessionhub.ServeWs(s.hub, w, r, userID); err != nil {
		s.logger.Warn(r.Context(), "websocket upgrade failed", "error", err)
	}
}
