// ABOUTME: HTTP server hosting the pullups backend API over SQLite.
// ABOUTME: chi router with bearer-token auth and zap request logging.
package server

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/harperreed/pullups/internal/backend"
	"github.com/harperreed/pullups/internal/db"
	"go.uber.org/zap"
)

type ctxKey int

const userKey ctxKey = iota

// Server serves the backend API.
type Server struct {
	db  *sql.DB
	now func() time.Time
	log *zap.Logger
}

// New creates a Server. A nil clock means time.Now.
func New(conn *sql.DB, now func() time.Time, logger *zap.Logger) *Server {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{db: conn, now: now, log: logger}
}

// Routes returns the API router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.handleRegister)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/today/total", s.handleTodayTotal)
			r.Get("/today/stats", s.handleTodayStats)
			r.Get("/today/goal", s.handleTodayGoal)
			r.Put("/today/goal", s.handleSetTodayGoal)
			r.Post("/today/increment", s.handleIncrement)
			r.Get("/today/has-entries", s.handleHasEntries)
			r.Get("/days/{stamp}/stats", s.handleDayStats)
			r.Get("/days/{stamp}/total", s.handleDayTotal)
			r.Get("/stats", s.handleUserStats)
			r.Get("/profile", s.handleGetProfile)
			r.Put("/profile", s.handleSaveProfile)
		})
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("backend listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		u, err := db.UserByToken(r.Context(), s.db, token)
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unknown token")
			return
		}
		if err != nil {
			s.log.Error("token lookup failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

// backendFor returns the caller's Backend. Only valid behind authenticate.
func (s *Server) backendFor(r *http.Request) backend.Backend {
	u := r.Context().Value(userKey).(*db.User)
	return backend.NewLocal(s.db, u.ID, s.now)
}
