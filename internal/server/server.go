// Package server renders the recruiter dashboard and exposes the same
// operations as a JSON API under /api/v1.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mkoster/hireboard/internal/assistant"
	"github.com/mkoster/hireboard/internal/questions"
	"github.com/mkoster/hireboard/internal/server/middleware"
	"github.com/mkoster/hireboard/internal/server/ratelimit"
	"github.com/mkoster/hireboard/internal/session"
	"github.com/mkoster/hireboard/internal/store"
)

// authService is the slice of the auth client the server uses.
// *session.Client satisfies it.
type authService interface {
	SignIn(ctx context.Context, email, password string) (*session.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// questionSuggester generates questions from a job description.
// *assistant.Suggester satisfies it.
type questionSuggester interface {
	SuggestQuestions(ctx context.Context, jobDescription string, n int) ([]string, error)
}

// descriptionImporter extracts a job description from a posting URL.
// *ingest.Importer satisfies it.
type descriptionImporter interface {
	Description(ctx context.Context, url string) (string, error)
}

// Config wires the server's dependencies.
type Config struct {
	Port        int
	Collections *store.Collections
	Questions   *questions.Manager
	Assistant   assistant.Assistant
	Suggester   questionSuggester
	Auth        authService
	Verifier    middleware.TokenVerifier
	Importer    descriptionImporter
	Logger      *zap.Logger
}

// Server is the dashboard HTTP server.
type Server struct {
	httpServer  *http.Server
	collections *store.Collections
	questions   *questions.Manager
	assistant   assistant.Assistant
	suggester   questionSuggester
	auth        authService
	verifier    middleware.TokenVerifier
	importer    descriptionImporter
	rateLimiter *ratelimit.Limiter
	logger      *zap.Logger
}

// New creates a server and registers its routes.
func New(cfg Config) *Server {
	s := &Server{
		collections: cfg.Collections,
		questions:   cfg.Questions,
		assistant:   cfg.Assistant,
		suggester:   cfg.Suggester,
		auth:        cfg.Auth,
		verifier:    cfg.Verifier,
		importer:    cfg.Importer,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		logger:      cfg.Logger,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	page := middleware.RequirePage(s.verifier)
	api := middleware.RequireAPI(s.verifier)

	mux.HandleFunc("GET /signin", s.handleSignInForm)
	mux.HandleFunc("POST /signin", s.handleSignIn)
	mux.HandleFunc("POST /signout", s.handleSignOut)

	mux.Handle("GET /{$}", page(http.HandlerFunc(s.handleOverview)))
	mux.Handle("GET /candidates", page(http.HandlerFunc(s.handleCandidates)))
	mux.Handle("GET /questions", page(http.HandlerFunc(s.handleQuestions)))
	mux.Handle("POST /questions", page(http.HandlerFunc(s.handleAddQuestion)))
	mux.Handle("POST /questions/{id}/delete", page(http.HandlerFunc(s.handleDeleteQuestion)))
	mux.Handle("POST /interviews/{id}/description", page(http.HandlerFunc(s.handleSaveDescription)))
	mux.Handle("POST /interviews/{id}/description/import", page(http.HandlerFunc(s.handleImportDescription)))
	mux.Handle("POST /chat", page(http.HandlerFunc(s.handleChat)))

	mux.Handle("GET /api/v1/candidates", api(http.HandlerFunc(s.handleAPICandidates)))
	mux.Handle("GET /api/v1/metrics", api(http.HandlerFunc(s.handleAPIMetrics)))
	mux.Handle("GET /api/v1/questions", api(http.HandlerFunc(s.handleAPIListQuestions)))
	mux.Handle("POST /api/v1/questions", api(http.HandlerFunc(s.handleAPIAddQuestion)))
	mux.Handle("DELETE /api/v1/questions/{id}", api(http.HandlerFunc(s.handleAPIDeleteQuestion)))
	mux.Handle("PUT /api/v1/interviews/{id}/description", api(http.HandlerFunc(s.handleAPISaveDescription)))
	mux.Handle("POST /api/v1/interviews/{id}/suggestions", api(http.HandlerFunc(s.handleAPISuggestions)))
	mux.Handle("POST /api/v1/chat", api(http.HandlerFunc(s.handleAPIChat)))
	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Handler returns the full middleware-wrapped handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.clientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetAt.Unix()))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}
	s.logger.Warn("rate limit exceeded", zap.Int("limit", info.Limit))
	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"error":   "rate_limit_exceeded",
		"message": "Rate limit exceeded. Please try again later.",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	s.logger.Warn("request failed", zap.Error(err))
	s.jsonResponse(w, HTTPStatus(err), map[string]string{"error": bannerMessage(err)})
}

// recruiterID resolves the authenticated recruiter from the request
// context; routes are wrapped so this cannot fail in practice.
func (s *Server) recruiterID(r *http.Request) (uuid.UUID, error) {
	return middleware.UserID(r)
}
