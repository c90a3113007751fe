// Package api exposes the control plane over HTTP: reading and mutating the
// per-process models and the simplified set-current operation.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/seastate/currentsim/internal/current"
	"github.com/seastate/currentsim/internal/gmprocess"
)

// Controller is the subset of the coordinator the control plane needs.
type Controller interface {
	Model(role current.Role) (gmprocess.Model, error)
	SetModel(role current.Role, m gmprocess.Model) error
	SetCurrent(speed, headingDeg float64) error
}

// Server handles control requests against a Controller.
type Server struct {
	ctrl Controller
	log  *slog.Logger
}

// NewHandler creates the HTTP handler for the control plane. The prometheus
// endpoint is mounted on the same router at /metrics.
func NewHandler(ctrl Controller, log *slog.Logger) http.Handler {
	s := &Server{ctrl: ctrl, log: log}
	r := chi.NewRouter()

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/v1/model/{role}", s.getModel)
	r.Put("/v1/model/{role}", s.setModel)
	r.Put("/v1/current", s.setCurrent)

	return r
}

type statusResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type setCurrentRequest struct {
	Speed      float64 `json:"speed"`
	HeadingDeg float64 `json:"heading_deg"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{OK: true})
}

// getModel handles GET /v1/model/{role}.
func (s *Server) getModel(w http.ResponseWriter, r *http.Request) {
	role := current.Role(chi.URLParam(r, "role"))
	m, err := s.ctrl.Model(role)
	if err != nil {
		writeJSON(w, http.StatusNotFound, statusResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// setModel handles PUT /v1/model/{role}. A rejected parameter set leaves the
// previous model in effect and reports failure.
func (s *Server) setModel(w http.ResponseWriter, r *http.Request) {
	role := current.Role(chi.URLParam(r, "role"))

	var m gmprocess.Model
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Error: "invalid request body"})
		return
	}

	if err := s.ctrl.SetModel(role, m); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, current.ErrUnknownRole) {
			status = http.StatusNotFound
		}
		s.log.Warn("model update rejected", "role", role, "error", err)
		writeJSON(w, status, statusResponse{Error: err.Error()})
		return
	}

	s.log.Info("model updated", "role", role, "mean", m.Mean, "min", m.Min, "max", m.Max,
		"noise_amp", m.NoiseAmp, "mu", m.Mu)
	writeJSON(w, http.StatusOK, statusResponse{OK: true})
}

// setCurrent handles PUT /v1/current.
func (s *Server) setCurrent(w http.ResponseWriter, r *http.Request) {
	var req setCurrentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Error: "invalid request body"})
		return
	}

	if err := s.ctrl.SetCurrent(req.Speed, req.HeadingDeg); err != nil {
		s.log.Warn("set current rejected", "speed", req.Speed, "heading_deg", req.HeadingDeg, "error", err)
		writeJSON(w, http.StatusBadRequest, statusResponse{Error: err.Error()})
		return
	}

	s.log.Info("current set", "speed", req.Speed, "heading_deg", req.HeadingDeg)
	writeJSON(w, http.StatusOK, statusResponse{OK: true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("response encode failed", "error", err)
	}
}
