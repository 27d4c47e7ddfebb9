// ABOUTME: HTTP handlers for the backend API.
// ABOUTME: Decode request, call the caller's Backend, encode response.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/harperreed/pullups/internal/backend"
	"github.com/harperreed/pullups/internal/db"
	"github.com/harperreed/pullups/internal/models"
	"go.uber.org/zap"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req backend.RegisterRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := db.CreateUser(r.Context(), s.db, req.Name)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, backend.RegisterResponse{UserID: u.ID, Token: u.Token})
}

func (s *Server) handleTodayTotal(w http.ResponseWriter, r *http.Request) {
	total, err := s.backendFor(r).TodayTotal(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, backend.TotalResponse{Total: total})
}

func (s *Server) handleTodayStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.backendFor(r).TodayStats(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, backend.StatsResponse{Stats: stats})
}

func (s *Server) handleDayStats(w http.ResponseWriter, r *http.Request) {
	stamp, ok := dayStampParam(w, r)
	if !ok {
		return
	}
	stats, err := s.backendFor(r).DayStats(r.Context(), stamp)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, backend.StatsResponse{Stats: stats})
}

func (s *Server) handleDayTotal(w http.ResponseWriter, r *http.Request) {
	stamp, ok := dayStampParam(w, r)
	if !ok {
		return
	}
	total, err := s.backendFor(r).DayTotal(r.Context(), stamp)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, backend.TotalResponse{Total: total})
}

func (s *Server) handleTodayGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := s.backendFor(r).TodayGoal(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, backend.GoalResponse{Goal: goal})
}

func (s *Server) handleSetTodayGoal(w http.ResponseWriter, r *http.Request) {
	var req backend.GoalRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.backendFor(r).SetTodayGoal(r.Context(), req.Goal); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleIncrement(w http.ResponseWriter, r *http.Request) {
	var req backend.IncrementRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	total, err := s.backendFor(r).IncrementTodayTotal(r.Context(), req.Reps)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, backend.IncrementResponse{Total: total})
}

func (s *Server) handleHasEntries(w http.ResponseWriter, r *http.Request) {
	has, err := s.backendFor(r).HasEntriesToday(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, backend.HasEntriesResponse{HasEntries: has})
}

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.backendFor(r).UserStats(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.backendFor(r).CallerProfile(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, backend.ProfileResponse{Profile: p})
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var p models.Profile
	if err := decode(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.backendFor(r).SaveCallerProfile(r.Context(), p); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail maps a backend error to a response.
func (s *Server) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, backend.ErrBadRequest) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func dayStampParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	stamp, err := strconv.ParseInt(chi.URLParam(r, "stamp"), 10, 64)
	if err != nil || stamp < 0 {
		writeError(w, http.StatusBadRequest, "invalid day stamp")
		return 0, false
	}
	return stamp, true
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, backend.ErrorResponse{Error: msg})
}
