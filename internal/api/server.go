// Package api adapts the workflow engine to the operations and field-agent
// UIs over plain request/response HTTP. It adds no behavior of its own: every
// route maps one-to-one onto an engine operation.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"fibre-order-tracker/internal/config"
	"fibre-order-tracker/internal/engine"
	"fibre-order-tracker/internal/lifecycle"
	"fibre-order-tracker/internal/models"
	"fibre-order-tracker/internal/telemetry"
)

// Server wires HTTP handlers around the engine.
type Server struct {
	cfg    config.Config
	engine *engine.Engine
	log    zerolog.Logger
}

// New constructs the API server.
func New(cfg config.Config, eng *engine.Engine, log zerolog.Logger) *Server {
	return &Server{cfg: cfg, engine: eng, log: log}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/metrics", telemetry.Handler())

	r.Get("/lifecycle", s.handleLifecycle)
	r.Get("/jobs", s.handleListJobs)
	r.Get("/jobs/{id}", s.handleGetJob)
	r.Post("/jobs/{id}/transition", s.handleTransition)
	r.Get("/jobs/{id}/audit", s.handleJobAudit)
	r.Get("/audit", s.handleAudit)
	r.Get("/notifications", s.handleNotifications)
	r.Post("/notifications/{id}/read", s.handleMarkRead)
	return r
}

type transitionRequest struct {
	NewStatus models.Status     `json:"new_status"`
	Actor     models.User       `json:"actor"`
	Metadata  *models.JobUpdate `json:"metadata,omitempty"`
	Decision  *models.Decision  `json:"decision,omitempty"`
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.NewStatus == "" {
		http.Error(w, "new_status is required", http.StatusBadRequest)
		return
	}
	if req.Actor.Role != models.RoleOperations && req.Actor.Role != models.RoleFieldAgent {
		http.Error(w, "actor role is required", http.StatusBadRequest)
		return
	}

	if err := s.engine.Transition(id, req.NewStatus, req.Actor, req.Metadata, req.Decision); err != nil {
		switch {
		case errors.Is(err, engine.ErrJobNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, engine.ErrIllegalTransition):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, engine.ErrIncompleteDecision):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	job, _ := s.engine.Job(id)
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, ok := s.engine.Job(id)
	if !ok {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	agent := r.URL.Query().Get("agent")
	parent := r.URL.Query().Get("parent")
	status := r.URL.Query().Get("status")

	jobs := s.engine.JobsWhere(func(j models.Job) bool {
		if region != "" && j.Region != region {
			return false
		}
		if agent != "" && j.AssignedAgentID != agent {
			return false
		}
		if parent != "" && j.ParentOrderID != parent {
			return false
		}
		if status != "" && j.Status != models.Status(status) {
			return false
		}
		return true
	})
	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

func (s *Server) handleJobAudit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.engine.Job(id); !ok {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": s.engine.AuditForJob(id)})
}

func (s *Server) handleAudit(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"entries": s.engine.AuditLog()})
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	role := models.Role(r.URL.Query().Get("role"))
	writeJSON(w, http.StatusOK, map[string]any{"notifications": s.engine.NotificationsForRole(role)})
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.engine.MarkNotificationRead(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// handleLifecycle returns the static transition table so the UIs can render
// timelines and guard their action buttons.
func (s *Server) handleLifecycle(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"statuses": lifecycle.Entries()})
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}
