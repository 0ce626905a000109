// Package server exposes generated board flows over HTTP, so a local
// visualization page can pull the SankeyMATIC payload instead of pasting it.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"cardtrail"
	"cardtrail/internal/logging"
	"cardtrail/internal/trello"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generator is the part of the cardtrail facade the server needs.
type Generator interface {
	Generate(ctx context.Context, boardID string) (*cardtrail.Result, error)
}

// Server handles HTTP access to the flow generator.
type Server struct {
	gen     Generator
	logger  *slog.Logger
	metrics *metrics
}

// NewHandler creates the HTTP handler for the generator.
func NewHandler(gen Generator, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{gen: gen, logger: logger, metrics: newMetrics()}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/boards/{boardID}/sankey", s.handleSankey)
	r.Get("/boards/{boardID}/flows", s.handleFlows)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func (s *Server) handleSankey(w http.ResponseWriter, r *http.Request) {
	res, ok := s.generate(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if res.Empty() {
		w.Write([]byte("// no card movements found\n"))
		return
	}
	w.Write([]byte(res.Output() + "\n"))
}

// flowsResponse is the JSON shape of the flows endpoint.
type flowsResponse struct {
	BoardID     string        `json:"board_id"`
	Cards       int           `json:"cards"`
	Transitions int           `json:"transitions"`
	Flows       []flowPayload `json:"flows"`
}

type flowPayload struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

func (s *Server) handleFlows(w http.ResponseWriter, r *http.Request) {
	res, ok := s.generate(w, r)
	if !ok {
		return
	}

	payload := flowsResponse{
		BoardID:     res.BoardID,
		Cards:       res.Cards,
		Transitions: res.Transitions,
		Flows:       make([]flowPayload, 0, len(res.Diagram.Flows)),
	}
	for _, f := range res.Diagram.Flows {
		payload.Flows = append(payload.Flows, flowPayload{From: f.From, To: f.To, Count: f.Count})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode flows response", "err", err)
	}
}

// generate runs the generator for the request's board and translates fetch
// failures into HTTP status codes. It reports false when a response has
// already been written.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) (*cardtrail.Result, bool) {
	boardID := chi.URLParam(r, "boardID")
	start := time.Now()

	res, err := s.gen.Generate(r.Context(), boardID)
	if err != nil {
		s.metrics.observe("error", time.Since(start))
		s.logger.Error("Board generation failed", "board_id", boardID, "err", err)

		var apiErr *trello.APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusNotFound || apiErr.Status == http.StatusUnauthorized) {
			http.Error(w, "board not found or not accessible", http.StatusNotFound)
		} else {
			http.Error(w, "failed to fetch board data", http.StatusBadGateway)
		}
		return nil, false
	}

	s.metrics.observe("ok", time.Since(start))
	return res, true
}
