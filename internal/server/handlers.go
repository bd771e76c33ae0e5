package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rcliao/cropcal/internal/model"
	"github.com/rcliao/cropcal/internal/planner"
	"github.com/rcliao/cropcal/internal/store"
)

// maxRequestBodySize limits POST body sizes.
const maxRequestBodySize = 1 << 20 // 1 MB

const (
	detailNotFound = "No matching calendar found."
	detailInternal = "Internal failure"
)

// errBadRequest marks request decoding failures.
var errBadRequest = errors.New("bad request")

// RegisterHTTPHandlers registers all routes on mux:
//
//	GET       /
//	GET       /healthz
//	GET|POST  /calendar
//	GET|POST  /plan
//	GET       /plans
//	GET       /metrics
func (s *Server) RegisterHTTPHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/{$}", s.metrics.instrument("root", s.handleRoot))
	mux.HandleFunc("/healthz", s.metrics.instrument("healthz", s.handleHealth))
	mux.HandleFunc("/calendar", s.metrics.instrument("calendar", s.handleCalendar))
	mux.HandleFunc("/plan", s.metrics.instrument("plan", s.handlePlan))
	if s.cfg.Catalog != nil {
		mux.HandleFunc("/plans", s.metrics.instrument("plans", s.handlePlans))
	}
	mux.Handle("/metrics", s.metrics.handler)
}

// PlanRequest is the POST body of /plan and /calendar.
type PlanRequest struct {
	Season  string `json:"season"`
	Crop    string `json:"crop"`
	Variety string `json:"variety"`
	Lang    string `json:"lang,omitempty"`
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "engine": "cropcal"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCalendar returns the raw month rows of a plan. Not cached.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	q, ok := s.decodeQuery(w, r)
	if !ok {
		return
	}
	cal, err := s.plans.Calendar(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	q, ok := s.decodeQuery(w, r)
	if !ok {
		return
	}
	plan, err := s.plans.Plan(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	v := r.URL.Query()
	p := store.SearchParams{
		Season: v.Get("season"),
		Crop:   v.Get("crop"),
		Query:  v.Get("q"),
	}
	if raw := v.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, r, fmt.Errorf("%w: limit must be a non-negative integer", errBadRequest))
			return
		}
		p.Limit = n
	}

	plans, err := s.cfg.Catalog.Plans(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"plans": plans, "count": len(plans)})
}

// decodeQuery reads a plan query from the URL (GET) or a JSON body (POST).
// On failure it writes the response and returns false.
func (s *Server) decodeQuery(w http.ResponseWriter, r *http.Request) (model.PlanQuery, bool) {
	var req PlanRequest
	switch r.Method {
	case http.MethodGet:
		v := r.URL.Query()
		req = PlanRequest{
			Season:  v.Get("season"),
			Crop:    v.Get("crop"),
			Variety: v.Get("variety"),
			Lang:    v.Get("lang"),
		}
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, r, fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err))
			return model.PlanQuery{}, false
		}
	default:
		methodNotAllowed(w)
		return model.PlanQuery{}, false
	}

	lang, err := model.ParseLanguage(req.Lang)
	if err != nil {
		s.writeError(w, r, err)
		return model.PlanQuery{}, false
	}
	q := model.PlanQuery{Season: req.Season, Crop: req.Crop, Variety: req.Variety, Language: lang}
	if err := q.Validate(); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return model.PlanQuery{}, false
	}
	return q, true
}

// writeError maps domain errors onto status codes. Internal details are
// logged, never returned.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, planner.ErrPlanNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: detailNotFound})
	case errors.Is(err, errBadRequest),
		errors.Is(err, planner.ErrInvalidQuery),
		errors.Is(err, model.ErrUnknownLanguage):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	default:
		s.logger.Error("request failed",
			"request_id", RequestID(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: detailInternal})
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Detail: "Method not allowed"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The header is already out; an encoding failure can only be dropped.
	_ = json.NewEncoder(w).Encode(v)
}
