package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/jonathan/skillsage/internal/assessment"
	"github.com/jonathan/skillsage/internal/config"
	"github.com/jonathan/skillsage/internal/db"
	"github.com/jonathan/skillsage/internal/fetch"
	"github.com/jonathan/skillsage/internal/llm"
	"github.com/jonathan/skillsage/internal/logger"
	"github.com/jonathan/skillsage/internal/observability"
	"github.com/jonathan/skillsage/internal/server/middleware"
	"github.com/jonathan/skillsage/internal/server/ratelimit"
	"github.com/jonathan/skillsage/internal/session"
	"github.com/jonathan/skillsage/internal/types"
)

// Deps are the collaborators a Server is assembled from.
type Deps struct {
	Users       DBClient
	Sessions    session.Store
	Generator   *assessment.Generator
	JWT         *JWTService
	Passwords   *config.PasswordConfig
	Metrics     *observability.Metrics
	RateLimiter *ratelimit.Limiter
	Log         *logger.Logger
	CORSOrigins []string
	// FetchOptions controls resume imports from URLs; nil uses fetch defaults.
	FetchOptions *fetch.Options
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	log         *logger.Logger
	sessions    session.Store
	generator   *assessment.Generator
	metrics     *observability.Metrics
	rateLimiter *ratelimit.Limiter
	userService *UserService
	authHandler *AuthHandler
	validator   *validator.Validate
	fetchOpts   *fetch.Options
	closers     []func()
	shutdownTTL time.Duration
}

// New connects every backing service named in cfg and returns a ready server.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	closers = append(closers, database.Close)

	applied, err := database.Migrate(ctx)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if len(applied) > 0 {
		log.Info("applied database migrations", "versions", applied)
	}

	var store session.Store
	switch cfg.Session.Backend {
	case "redis":
		rs, err := session.NewRedisStore(ctx, session.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Session.TTL,
		})
		if err != nil {
			cleanup()
			return nil, err
		}
		closers = append(closers, func() { _ = rs.Close() })
		store = rs
	default:
		store = session.NewMemoryStore(cfg.Session.TTL)
	}

	var client llm.Client
	if cfg.LLM.APIKey == "" {
		log.Warn("GEMINI_API_KEY not set, assessments will use fallback data")
	} else {
		llmCfg := llm.DefaultGeminiConfig()
		if cfg.LLM.Model != "" {
			llmCfg = llmCfg.WithModel(llm.TierStandard, cfg.LLM.Model)
		}
		client, err = llm.NewClient(ctx, llmCfg, cfg.LLM.APIKey)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to create AI client: %w", err)
		}
		closers = append(closers, func() { _ = client.Close() })
	}

	metrics := observability.NewMetrics()
	generator := assessment.NewGenerator(client, log.With("component", "assessment"),
		assessment.WithTimeout(cfg.LLM.Timeout),
		assessment.WithRecorder(metrics),
	)

	passwords, err := config.NewPasswordConfig(cfg.Password.BcryptCost, cfg.Password.Pepper)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig(cfg.JWT.Secret, cfg.JWT.ExpirationHours)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	limiter := ratelimit.NewLimiter(ratelimit.FromSettings(cfg.RateLimit))
	closers = append(closers, limiter.Stop)

	s := newServer(Deps{
		Users:       database,
		Sessions:    store,
		Generator:   generator,
		JWT:         NewJWTService(jwtConfig),
		Passwords:   passwords,
		Metrics:     metrics,
		RateLimiter: limiter,
		Log:         log,
		CORSOrigins: cfg.CORS.AllowedOrigins,
	})
	s.closers = closers
	s.shutdownTTL = cfg.Server.ShutdownTimeout
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.LLM.Timeout + 30*time.Second, // provider calls run inside the request
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// newServer wires handlers and middleware around already-built dependencies.
func newServer(d Deps) *Server {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Metrics == nil {
		d.Metrics = observability.NewMetrics()
	}
	if d.RateLimiter == nil {
		d.RateLimiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}
	if d.Generator == nil {
		d.Generator = assessment.NewGenerator(nil, d.Log, assessment.WithRecorder(d.Metrics))
	}

	s := &Server{
		log:         d.Log,
		sessions:    d.Sessions,
		generator:   d.Generator,
		metrics:     d.Metrics,
		rateLimiter: d.RateLimiter,
		userService: NewUserService(d.Users, d.Passwords),
		validator:   types.NewValidator(),
		fetchOpts:   d.FetchOptions,
	}
	s.authHandler = NewAuthHandler(s.userService, d.JWT, d.Sessions, d.Log)

	authed := middleware.AuthMiddleware(d.JWT.AsTokenValidator())
	protect := func(h http.HandlerFunc) http.Handler { return authed(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	// Auth
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("POST /auth/logout", protect(s.authHandler.Logout))
	mux.Handle("PUT /auth/password", protect(s.authHandler.UpdatePassword))
	mux.Handle("GET /auth/me", protect(s.authHandler.Me))

	// Catalog
	mux.HandleFunc("GET /catalog", s.handleCatalog)
	mux.HandleFunc("GET /catalog/branches/{branch}", s.handleBranchOptions)

	// Profile
	mux.Handle("GET /profile", protect(s.handleGetProfile))
	mux.Handle("PATCH /profile", protect(s.handlePatchProfile))
	mux.Handle("POST /profile/resume", protect(s.handleUploadResume))
	mux.Handle("GET /notifications", protect(s.handleNotifications))

	// Assessment
	mux.Handle("POST /assessment/questions", protect(s.handleGenerateQuestions))
	mux.Handle("GET /assessment/questions", protect(s.handleGetQuestions))
	mux.Handle("PUT /assessment/answers", protect(s.handleRecordAnswers))
	mux.Handle("POST /assessment/recommendations", protect(s.handleGenerateRecommendations))

	// Dashboard
	mux.Handle("GET /dashboard", protect(s.handleGetDashboard))
	mux.Handle("GET /dashboard/skills", protect(s.handleSearchSkills))
	mux.Handle("GET /dashboard/courses", protect(s.handleFilterCourses))
	mux.Handle("GET /dashboard/roadmap/{index}/courses", protect(s.handleRoadmapCourses))

	s.handler = s.withRateLimit(s.withMetrics(s.withLogging(s.withCORS(d.CORSOrigins, mux))))
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully and releases
// every backing connection.
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	timeout := s.shutdownTTL
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// Close releases backing services. It is safe to call more than once.
func (s *Server) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// withCORS applies the configured cross-origin policy.
func (s *Server) withCORS(origins []string, next http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		MaxAge:         300,
	})
	return c.Handler(next)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (r *statusRecorder) code() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.log.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.code(),
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}

// withMetrics records request counts and latency per route pattern.
func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.metrics.ObserveRequest(r.Method, routeLabel(r), rec.code(), time.Since(start))
	})
}

// routeLabel returns the matched route pattern without its method, so path
// parameters do not create new label values.
func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return "unmatched"
	}
	if _, path, ok := strings.Cut(r.Pattern, " "); ok {
		return path
	}
	return r.Pattern
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := max(int(info.RetryAfter.Seconds()), 1)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.log.Warn("rate limit exceeded", "path", r.URL.Path, "method", r.Method, "limit", info.Limit)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, s.log, status, data)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, s.log, status, map[string]string{"error": message})
}

// fail maps err to a status code and writes it. Unexpected errors are logged
// and hidden from the client.
func (s *Server) fail(w http.ResponseWriter, err error) {
	writeError(w, s.log, err)
}

func writeJSON(w http.ResponseWriter, log *logger.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
		message = "internal server error"
	}
	writeJSON(w, log, status, map[string]string{"error": message})
}

// currentUser reads the authenticated user from the request context.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	uid, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return uid, true
}
