package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ngofund/ngoai/internal/agent"
	"github.com/ngofund/ngoai/internal/llm"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
	// RequestTimeout bounds one API request, including every fallback
	// attempt. Zero derives it from AttemptTimeout.
	RequestTimeout time.Duration
	// AttemptTimeout is the per-provider deadline of the dispatcher.
	AttemptTimeout time.Duration
}

// requestTimeout leaves room for an attempt on every known provider, so
// keys added after startup still get their turn. With neither timeout set
// it is 5 minutes.
func (c Config) requestTimeout() time.Duration {
	switch {
	case c.RequestTimeout > 0:
		return c.RequestTimeout
	case c.AttemptTimeout > 0:
		return time.Duration(len(llm.AllProviders)+1) * c.AttemptTimeout
	default:
		return 5 * time.Minute
	}
}

// Executor runs capability requests. *agent.Router implements it.
type Executor interface {
	Execute(ctx context.Context, req agent.AgentRequest) (*agent.AgentResponse, error)
}

// ProviderStatus reports which providers are usable. *llm.Dispatcher
// implements it.
type ProviderStatus interface {
	Available() []llm.ProviderName
	Best() (llm.ProviderName, bool)
}

// Server is the HTTP and websocket front of the AI layer.
type Server struct {
	cfg        Config
	providers  ProviderStatus
	executor   Executor
	logger     *slog.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a new server with all dependencies.
func New(cfg Config, providers ProviderStatus, executor Executor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:       cfg,
		providers: providers,
		executor:  executor,
		logger:    logger,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.requestTimeout()))
		s.registerAPIRoutes(r)
	})

	// The socket outlives any single request deadline.
	r.Get("/ws/chat", s.handleChatSocket)

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("ngoai server listening", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
