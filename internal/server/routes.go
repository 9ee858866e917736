package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ngofund/ngoai/internal/agent"
	"github.com/ngofund/ngoai/internal/llm"
)

// registerAPIRoutes mounts the AI API routes.
func (s *Server) registerAPIRoutes(r chi.Router) {
	r.Route("/api/ai", func(r chi.Router) {
		r.Get("/providers", s.handleProviders)
		r.Get("/capabilities", s.handleCapabilities)
		r.Post("/agent", s.handleAgent)
	})
}

type providersResponse struct {
	Available []llm.ProviderName `json:"available"`
	Best      llm.ProviderName   `json:"best,omitempty"`
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	resp := providersResponse{Available: s.providers.Available()}
	if best, ok := s.providers.Best(); ok {
		resp.Best = best
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, agent.Capabilities())
}

func (s *Server) handleAgent(w http.ResponseWriter, r *http.Request) {
	var req agent.AgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Capability == "" {
		writeError(w, http.StatusBadRequest, "capability is required")
		return
	}

	resp, err := s.executor.Execute(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		s.logger.Error("agent request failed",
			"request_id", middleware.GetReqID(r.Context()), "capability", req.Capability, "status", status, "error", err)
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// statusFor maps a router error onto an HTTP status.
func statusFor(err error) int {
	var cfgErr *llm.ConfigurationError
	var fbErr *llm.FallbackError
	var httpErr *llm.HTTPError
	var trErr *llm.TransportError
	switch {
	case errors.Is(err, agent.ErrUnknownCapability), errors.Is(err, llm.ErrUnsupportedProvider):
		return http.StatusBadRequest
	case errors.As(err, &fbErr):
		return http.StatusBadGateway
	case errors.As(err, &cfgErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &httpErr), errors.As(err, &trErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes v before touching the status line so that an
// unencodable value still yields a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("encoding response failed", "error", err)
		status = http.StatusInternalServerError
		data = []byte(`{"error":"encoding response failed"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
