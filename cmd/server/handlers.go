package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/bladecost/internal/bladecost"
	"github.com/Simplici0/bladecost/internal/design"
	"github.com/Simplici0/bladecost/internal/migrations"
	"github.com/Simplici0/bladecost/internal/store"
)

const maxBodyBytes = 1 << 20

type server struct {
	auth        *authService
	store       *store.Store
	db          *sql.DB
	maxSections int
}

type healthResponse struct {
	Status        string `json:"status"`
	SchemaVersion int64  `json:"schema_version"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) routes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(s.auth.middleware)
		r.Post("/evaluations", s.handleCreateEvaluation)
		r.Get("/evaluations", s.handleListEvaluations)
		r.Get("/evaluations/{id}", s.handleGetEvaluation)
		r.Get("/presets", s.handleListPresets)
		r.Get("/presets/{name}", s.handleGetPreset)
		r.Put("/presets/{name}", s.handlePutPreset)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	version, err := migrations.Version(s.db)
	if err != nil {
		log.Printf("health check: %v", err)
		writeErrorMessage(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", SchemaVersion: version})
}

// handleCreateEvaluation costs the posted design document and stores the result. The
// economics of the preset named by ?preset= (or the default preset) sit underneath the
// document's own economics.
func (s *server) handleCreateEvaluation(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorMessage(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeErrorMessage(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	doc, err := design.Parse(body)
	if err != nil {
		writeError(w, err)
		return
	}

	base, err := s.baseEconomics(r)
	if err != nil {
		writeError(w, err)
		return
	}

	assembly, err := doc.Assembly(base, s.maxSections)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := bladecost.Evaluate(assembly)
	if err != nil {
		writeError(w, err)
		return
	}

	ev, err := s.store.SaveEvaluation(r.Context(), doc.Name, res)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ev)
}

func (s *server) baseEconomics(r *http.Request) (bladecost.EconomicParams, error) {
	name := r.URL.Query().Get("preset")
	if name == "" {
		p, err := s.store.GetPreset(r.Context(), store.DefaultPreset)
		if errors.Is(err, store.ErrNotFound) {
			return bladecost.EconomicParams{}, nil
		}
		return p, err
	}
	return s.store.GetPreset(r.Context(), name)
}

func (s *server) handleListEvaluations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeErrorMessage(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = v
	}

	items, err := s.store.ListEvaluations(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	ev, err := s.store.GetEvaluation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := s.store.ListPresets(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presets)
}

func (s *server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	p, err := s.store.GetPreset(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, store.Preset{Name: name, Params: p})
}

// handlePutPreset replaces the named preset. Every rate must be present in the body.
func (s *server) handlePutPreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var body map[string]float64
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	for _, field := range bladecost.EconomicFieldNames {
		if _, ok := body[field]; !ok {
			writeErrorMessage(w, http.StatusBadRequest, fmt.Sprintf("missing %s", field))
			return
		}
	}

	p, err := bladecost.EconomicParams{}.WithOverrides(body)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.UpsertPreset(r.Context(), name, p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, store.Preset{Name: name, Params: p})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps domain errors to status codes. Unexpected errors are logged and
// reported without detail.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bladecost.ErrInvalidInput), errors.Is(err, design.ErrInvalidDocument):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, bladecost.ErrArithmeticOverflow):
		writeErrorMessage(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("request failed: %v", err)
		writeErrorMessage(w, http.StatusInternalServerError, "internal error")
	}
}
