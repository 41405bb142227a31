package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/ticker"
)

type serverConfig struct {
	MCPPath     string
	APIKey      string
	AuthHeader  string
	CORSOrigins []string
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Server struct {
	cfg      serverConfig
	svc      *ticker.Service
	mcp      *mcp.Server
	registry []toolInfo
	router   *chi.Mux
}

func newServer(cfg serverConfig, svc *ticker.Service) *Server {
	if cfg.MCPPath == "" {
		cfg.MCPPath = "/mcp"
	}
	if cfg.AuthHeader == "" {
		cfg.AuthHeader = "X-API-Key"
	}
	s := &Server{
		cfg: cfg,
		svc: svc,
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "fpl-fixture-ticker",
				Version: version,
			},
			nil,
		),
		registry: make([]toolInfo, 0, 4),
	}
	s.registerTools()
	s.setupRouter()
	return s
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", s.cfg.AuthHeader, "Mcp-Session-Id"},
		ExposedHeaders: []string{"X-Request-ID", "Mcp-Session-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(apiKeyAuth(s.cfg.APIKey, s.cfg.AuthHeader))

		r.Get("/tools", s.handleTools)
		r.Handle("/metrics", promhttp.Handler())

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))
			r.Get("/ticker", s.handleTicker)
			r.Get("/teams/{id}/fixtures", s.handleTeamFixtures)
			r.Get("/standings", s.handleStandings)
			r.Get("/gameweeks/status", s.handleGameweekStatus)
			r.Get("/gameweeks/{gw}/fixtures", s.handleGameweekFixtures)
		})

		mcpHandler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
			return s.mcp
		}, &mcp.StreamableHTTPOptions{JSONResponse: true})
		r.Handle(s.cfg.MCPPath, mcpHandler)
	})

	s.router = r
}
