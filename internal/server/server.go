package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"github.com/richmanstudio/studio/internal/httpkit"
	"github.com/richmanstudio/studio/internal/logger"
)

// requestTimeout bounds ordinary requests. Websocket upgrades are exempt.
const requestTimeout = 60 * time.Second

// Config holds server configuration.
type Config struct {
	Port         int
	AllowAll     bool // allow all CORS origins (dev mode)
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RouteRegistrar is a feature that mounts its endpoints on the router.
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// PageHandler serves the site and the not-found page. It is mounted after
// every feature so its catch-all routes lose to API paths.
type PageHandler interface {
	RouteRegistrar
	NotFound(w http.ResponseWriter, r *http.Request)
}

// Server is the studio HTTP server.
type Server struct {
	cfg        Config
	log        *logger.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with the given features mounted. pages may be nil
// to serve the API only.
func New(cfg Config, log *logger.Logger, pages PageHandler, features ...RouteRegistrar) *Server {
	if log == nil {
		log = logger.Discard()
	}
	s := &Server{cfg: cfg, log: log}
	s.router = s.buildRouter(pages, features)
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter(pages PageHandler, features []RouteRegistrar) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpkit.RequestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(timeoutExceptUpgrades(requestTimeout))
	r.Use(httpkit.SecurityHeaders)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
		corsOpts.AllowCredentials = false
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpkit.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	for _, f := range features {
		f.RegisterRoutes(r)
	}

	if pages != nil {
		pages.RegisterRoutes(r)
		r.NotFound(pages.NotFound)
	} else {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			httpkit.Error(w, http.StatusNotFound, "not found", nil)
		})
	}
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpkit.Error(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	return r
}

// timeoutExceptUpgrades applies chi's Timeout to everything but websocket
// handshakes, whose connections outlive any request deadline.
func timeoutExceptUpgrades(d time.Duration) func(http.Handler) http.Handler {
	timeout := middleware.Timeout(d)
	return func(next http.Handler) http.Handler {
		timed := timeout(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if websocket.IsWebSocketUpgrade(r) {
				next.ServeHTTP(w, r)
				return
			}
			timed.ServeHTTP(w, r)
		})
	}
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port. It returns nil after a
// graceful Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("studio server listening", "addr", ln.Addr().String())
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
