package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/aatrey56/FPL-Fixture-Ticker/internal/ticker"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, apiError{Error: code, Message: message})
}

// statusFor maps service errors onto HTTP statuses and error codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ticker.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, ticker.ErrTeamNotFound):
		return http.StatusNotFound, "team_not_found"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, ticker.ErrUpstream):
		return http.StatusBadGateway, "upstream_unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status >= 500 {
		log.Error().Stack().Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	respondError(w, status, code, err.Error())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"tools": s.registry})
}

// GET /api/v1/ticker?start=&window=&sort=&order=&q=
func (s *Server) handleTicker(w http.ResponseWriter, r *http.Request) {
	req, err := ticker.ParseRequest(r.URL.Query())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	res, err := s.svc.Build(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// GET /api/v1/teams/{id}/fixtures?start=&window=
func (s *Server) handleTeamFixtures(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "team id must be an integer")
		return
	}
	req, err := ticker.ParseRequest(r.URL.Query())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	res, err := s.svc.Team(r.Context(), teamID, req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// GET /api/v1/standings
func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	res, err := s.svc.Standings(r.Context(), force)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// GET /api/v1/gameweeks/{gw}/fixtures (gw 0 = current)
func (s *Server) handleGameweekFixtures(w http.ResponseWriter, r *http.Request) {
	gw, err := strconv.Atoi(chi.URLParam(r, "gw"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "gameweek must be an integer")
		return
	}
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	res, err := s.svc.GameweekFixtures(r.Context(), gw, force)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// GET /api/v1/gameweeks/status
func (s *Server) handleGameweekStatus(w http.ResponseWriter, r *http.Request) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	res, err := s.svc.GameweekStatus(r.Context(), force)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
