// Package httpapi serves the dashboard JSON API the browser frontend
// renders from.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/jekabolt/woo-analytics/internal/dashboard"
	"github.com/jekabolt/woo-analytics/internal/dependency"
	"github.com/jekabolt/woo-analytics/internal/dto"
	"github.com/jekabolt/woo-analytics/internal/entity"
	"github.com/jekabolt/woo-analytics/internal/period"
)

// Config is the configuration for the http server.
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Refresher computes a dashboard report for the given parameters.
type Refresher interface {
	Refresh(ctx context.Context, p dashboard.Params) (*entity.Report, error)
}

// Server is the http server.
type Server struct {
	hs   *http.Server
	c    *Config
	done chan struct{}
}

// New creates a new server.
func New(c *Config) *Server {
	return &Server{
		c:    c,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Start begins serving the dashboard API. It returns once the listener is
// set up; serve errors close Done.
func (s *Server) Start(ctx context.Context, svc Refresher, src dependency.OrderSource) error {
	r := s.Router(svc, src)

	s.hs = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", s.c.Address, s.c.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		defer close(s.done)
		if err := s.hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Default().ErrorContext(ctx, "http server exited",
				slog.String("err", err.Error()),
			)
		}
	}()
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	return s.hs.Shutdown(ctx)
}

// Router builds the API router. Exposed separately so tests can serve it
// from httptest.
func (s *Server) Router(svc Refresher, src dependency.OrderSource) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.c.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/api/dashboard", s.handleDashboard(svc))
	r.Get("/api/products", s.handleProducts(src))
	r.Get("/api/health", s.handleHealth(src))

	return r
}

func (s *Server) handleDashboard(svc Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		p := dashboard.Params{
			Period:      period.ParseToken(q.Get("period")),
			Compare:     q.Get("compare") == "true",
			Mode:        period.ParseMode(q.Get("mode")),
			Granularity: parseGranularity(q.Get("granularity")),
		}

		rep, err := svc.Refresh(r.Context(), p)
		if err != nil {
			if errors.Is(err, dashboard.ErrSuperseded) {
				writeError(w, http.StatusConflict, "request superseded by a newer refresh")
				return
			}
			slog.Default().ErrorContext(r.Context(), "dashboard refresh failed",
				slog.String("err", err.Error()),
			)
			writeError(w, http.StatusBadGateway, "failed to load dashboard data from the store API")
			return
		}
		writeJSON(w, http.StatusOK, dto.ConvertReport(rep))
	}
}

func (s *Server) handleProducts(src dependency.OrderSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := src.Products(r.Context())
		if err != nil {
			slog.Default().ErrorContext(r.Context(), "product listing failed",
				slog.String("err", err.Error()),
			)
			writeError(w, http.StatusBadGateway, "failed to load products from the store API")
			return
		}
		writeJSON(w, http.StatusOK, dto.ConvertProducts(products))
	}
}

func (s *Server) handleHealth(src dependency.OrderSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := src.Ping(r.Context()); err != nil {
			slog.Default().WarnContext(r.Context(), "store api unreachable",
				slog.String("err", err.Error()),
			)
			writeError(w, http.StatusServiceUnavailable, "store API unreachable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func parseGranularity(s string) entity.Granularity {
	switch g := entity.Granularity(s); g {
	case entity.GranularityWeekly, entity.GranularityMonthly:
		return g
	default:
		return entity.GranularityDaily
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
