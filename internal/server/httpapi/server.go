// Package httpapi exposes the authentication service over HTTP/JSON. It is a
// thin layer: request decoding, bearer extraction, and error-to-status
// mapping live here; every decision about credentials is made by the
// services underneath.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/akorchagin/authgate/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// HTTPServer serves the public JSON API.
type HTTPServer struct {
	address string
	logger  logging.Logger
	auth    AuthService
	tokens  TokenResolver
}

// NewHTTPServer constructs the server with its service dependencies.
func NewHTTPServer(address string, l logging.Logger, auth AuthService, tokens TokenResolver) *HTTPServer {
	return &HTTPServer{
		address: address,
		logger:  l.With("module", "http_server"),
		auth:    auth,
		tokens:  tokens,
	}
}

// Router assembles the chi route tree.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
		})
		r.Route("/user", func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/", s.handleCurrentUser)
		})
	})

	return r
}

// Run starts the listener and shuts it down gracefully when ctx is
// cancelled.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
