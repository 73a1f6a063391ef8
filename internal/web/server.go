// Package web serves the LinguaHub browser UI: project listing and CRUD
// forms, linguist registration and login, and the session-gated profile.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/linguahub/linguahub/internal/credentials"
	"github.com/linguahub/linguahub/internal/storage"
)

const defaultSessionTTL = 24 * time.Hour

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr string
	AppName  string
	// SessionTTL bounds how long a login session stays valid.
	SessionTTL time.Duration
	// SecureCookies marks session cookies Secure; enable behind TLS.
	SecureCookies bool
}

// Stores is the storage surface the handlers consume.
type Stores struct {
	Users     storage.UserStore
	Projects  storage.ProjectStore
	Reference storage.ReferenceStore
}

type handler struct {
	config   Config
	users    storage.UserStore
	projects storage.ProjectStore
	refdata  storage.ReferenceStore
	creds    *credentials.Service
	sessions *sessionStore
}

// NewHandler assembles the HTTP handler for the application routes.
func NewHandler(config Config, stores Stores) (http.Handler, error) {
	if stores.Users == nil || stores.Projects == nil || stores.Reference == nil {
		return nil, errors.New("all stores are required")
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = defaultSessionTTL
	}
	if strings.TrimSpace(config.AppName) == "" {
		config.AppName = "LinguaHub"
	}

	h := &handler{
		config:   config,
		users:    stores.Users,
		projects: stores.Projects,
		refdata:  stores.Reference,
		creds:    credentials.NewService(stores.Users),
		sessions: newSessionStore(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleProjects)
	mux.HandleFunc("GET /get_projects", h.handleProjects)
	mux.HandleFunc("GET /register", h.handleRegisterForm)
	mux.HandleFunc("POST /register", h.handleRegisterSubmit)
	mux.HandleFunc("GET /login", h.handleLoginForm)
	mux.HandleFunc("POST /login", h.handleLoginSubmit)
	mux.HandleFunc("GET /profile", h.handleProfile)
	mux.HandleFunc("GET /logout", h.handleLogout)
	mux.HandleFunc("GET /add_project", h.handleAddProjectForm)
	mux.HandleFunc("POST /add_project", h.handleAddProjectSubmit)
	mux.HandleFunc("GET /edit_project/{projectID}", h.handleEditProjectForm)
	mux.HandleFunc("POST /edit_project/{projectID}", h.handleEditProjectSubmit)
	mux.HandleFunc("GET /delete_project/{projectID}", h.handleDeleteProject)
	return mux, nil
}

// requireSession resolves the current session and redirects anonymous
// requests to the login page. The boolean reports whether the caller may
// proceed.
func (h *handler) requireSession(w http.ResponseWriter, r *http.Request) (*session, bool) {
	sess := sessionFromRequest(r, h.sessions)
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return nil, false
	}
	return sess, true
}

// startSession binds username to a fresh session and sets the cookie.
func (h *handler) startSession(w http.ResponseWriter, username string) {
	id := h.sessions.create(username, time.Now().Add(h.config.SessionTTL))
	setSessionCookie(w, id, int(h.config.SessionTTL/time.Second), h.config.SecureCookies)
}

// endSession drops the server-side session and expires the cookie.
func (h *handler) endSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		h.sessions.delete(cookie.Value)
	}
	clearSessionCookie(w, h.config.SecureCookies)
}

// Server hosts the application's HTTP server.
type Server struct {
	httpServer *http.Server
}

// NewServer builds a configured web server.
func NewServer(config Config, stores Stores) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	mux, err := NewHandler(config, stores)
	if err != nil {
		return nil, err
	}
	return &Server{httpServer: &http.Server{Addr: httpAddr, Handler: mux}}, nil
}

// ListenAndServe serves HTTP until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	}
}

// Close immediately releases server resources.
func (s *Server) Close() error {
	if s == nil || s.httpServer == nil {
		return nil
	}
	return s.httpServer.Close()
}
