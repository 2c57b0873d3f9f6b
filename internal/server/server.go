package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/findyourco/cofounder-connect/internal/config"
	"github.com/findyourco/cofounder-connect/internal/db"
	"github.com/findyourco/cofounder-connect/internal/enrich"
	"github.com/findyourco/cofounder-connect/internal/llm"
	"github.com/findyourco/cofounder-connect/internal/matching"
	"github.com/findyourco/cofounder-connect/internal/server/middleware"
	"github.com/findyourco/cofounder-connect/internal/server/ratelimit"
)

// DataStore is the storage surface the HTTP handlers need. *db.DB satisfies
// it; tests substitute fakes.
type DataStore interface {
	AuthStore
	matching.Store
	CreateProfile(ctx context.Context, authUserID uuid.UUID, role string) (*db.Profile, error)
	UpsertFounderProfile(ctx context.Context, f *db.FounderProfile) (*db.FounderProfile, error)
	UpsertStartupProfile(ctx context.Context, sp *db.StartupProfile) (*db.StartupProfile, error)
	UpsertEmployeeProfile(ctx context.Context, e *db.EmployeeProfile) (*db.EmployeeProfile, error)
	UpsertEmployeeSkills(ctx context.Context, sk *db.EmployeeSkills) (*db.EmployeeSkills, error)
	CreatePost(ctx context.Context, p *db.Post) (*db.Post, error)
	ListPosts(ctx context.Context, userID *uuid.UUID, limit int) ([]db.Post, error)
}

// MatchService runs the matching pipeline for an authenticated caller.
type MatchService interface {
	FindEmployeesForFounder(ctx context.Context, authUserID uuid.UUID) ([]matching.MatchCard, error)
	FindStartupsForEmployee(ctx context.Context, authUserID uuid.UUID) ([]matching.MatchCard, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       DataStore
	matcher     MatchService
	llmClient   llm.Client
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// New creates a new server instance. Config is validated before any
// connection is opened so failure paths have nothing to release.
func New(cfg *config.Config) (*Server, error) {
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmClient, err := llm.NewGeminiClient(context.Background(), llm.DefaultConfig().WithModel(cfg.MatchModel), cfg.GeminiKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	s := &Server{
		db:        database,
		store:     database,
		llmClient: llmClient,
		matcher:   matching.New(database, llmClient, matching.WithEnricher(enrich.NewFetcher())),
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())
	s.userService = NewUserService(database, passwordConfig)
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.Routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // matching runs a model inference
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Routes builds the request router. Exported so tests can drive the handlers
// through httptest without opening a listener.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Everything below requires a valid bearer token
	authed := http.NewServeMux()
	authed.HandleFunc("POST /auth/password", s.authHandler.UpdatePassword)
	authed.HandleFunc("POST /profiles/role", s.handleSelectRole)
	authed.HandleFunc("GET /profiles/me", s.handleGetMyProfile)
	authed.HandleFunc("PUT /profiles/founder", s.handleUpsertFounder)
	authed.HandleFunc("PUT /profiles/startup", s.handleUpsertStartup)
	authed.HandleFunc("PUT /profiles/employee", s.handleUpsertEmployee)
	authed.HandleFunc("PUT /profiles/skills", s.handleUpsertSkills)
	authed.HandleFunc("GET /matches", s.handleGetMatches)
	authed.HandleFunc("POST /posts", s.handleCreatePost)
	authed.HandleFunc("GET /posts", s.handleListPosts)

	mux.Handle("/", middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(authed))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("Error closing model client: %v", err)
		}
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractClientID identifies the client for rate limiting. Uses the IP from
// RemoteAddr; X-Forwarded-For is deliberately ignored because the service
// may not sit behind a trusted proxy.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())+1))
	writeJSON(w, http.StatusTooManyRequests, map[string]any{
		"error":       "rate_limit_exceeded",
		"retry_after": int(info.RetryAfter.Seconds()) + 1,
	})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// writeError writes an error JSON response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
