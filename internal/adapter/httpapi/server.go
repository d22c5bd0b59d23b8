// Package httpapi exposes slot state, refresh controls, and operational
// endpoints over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campsight/camp-weather-service/internal/cache"
	"github.com/campsight/camp-weather-service/internal/domain"
)

var validate = validator.New()

// WeatherService is the slice of the weather provider the HTTP surface needs.
type WeatherService interface {
	Primary(ctx context.Context) cache.Slot
	Secondary(ctx context.Context) cache.Slot
	Temporary() cache.Slot
	Refresh(ctx context.Context)
	FetchTemporary(ctx context.Context, lat, lon float64)
	ClearTemporary()
	Preferences() domain.Preferences
	CheckReadiness(ctx context.Context) error
}

// Server exposes the weather API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	service    WeatherService
	logger     *slog.Logger
}

// NewServer creates the HTTP server and wires all routes.
func NewServer(addr string, service WeatherService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/weather/primary", s.handlePrimary)
	mux.HandleFunc("GET /api/v1/weather/secondary", s.handleSecondary)
	mux.HandleFunc("GET /api/v1/weather/temporary", s.handleTemporary)
	mux.HandleFunc("POST /api/v1/weather/temporary", s.handleFetchTemporary)
	mux.HandleFunc("DELETE /api/v1/weather/temporary", s.handleClearTemporary)
	mux.HandleFunc("POST /api/v1/weather/refresh", s.handleRefresh)
	mux.HandleFunc("GET /api/v1/weather/preferences", s.handlePreferences)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.service.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handlePrimary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Primary(r.Context()))
}

func (s *Server) handleSecondary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Secondary(r.Context()))
}

func (s *Server) handleTemporary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Temporary())
}

// temporaryQuery holds the manual coordinate lookup parameters.
type temporaryQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

func (s *Server) handleFetchTemporary(w http.ResponseWriter, r *http.Request) {
	q, err := parseTemporaryQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.service.FetchTemporary(r.Context(), q.Lat, q.Lon)
	writeJSON(w, http.StatusOK, s.service.Temporary())
}

func (s *Server) handleClearTemporary(w http.ResponseWriter, _ *http.Request) {
	s.service.ClearTemporary()
	writeJSON(w, http.StatusOK, s.service.Temporary())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.service.Refresh(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

func (s *Server) handlePreferences(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Preferences())
}

func parseTemporaryQuery(r *http.Request) (temporaryQuery, error) {
	var q temporaryQuery

	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")
	if latStr == "" || lonStr == "" {
		return q, errMissingCoordinates
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return q, errInvalidCoordinates
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return q, errInvalidCoordinates
	}

	q.Lat = lat
	q.Lon = lon
	if err := validate.Struct(q); err != nil {
		return q, errInvalidCoordinates
	}
	return q, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
