package handler

import (
	"net/http"

	"github.com/pkordes/train-dispatch/internal/domain"
)

// ClockResponse is the body of every /clock response.
type ClockResponse struct {
	Time string `json:"time"`
}

// SetClockRequest is the body of PUT /clock.
type SetClockRequest struct {
	Time string `json:"time"` // "hh:mm"
}

// AdvanceClockRequest is the body of POST /clock/advance.
type AdvanceClockRequest struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// GetClock handles GET /clock.
func (s *Server) GetClock(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ClockResponse{Time: s.dispatch.Now(r.Context()).String()})
}

// SetClock handles PUT /clock. Moving the clock expires every departure whose
// actual departure time is now in the past.
func (s *Server) SetClock(w http.ResponseWriter, r *http.Request) {
	var body SetClockRequest
	if !decodeBody(w, r, &body) {
		return
	}
	at, err := domain.ParseClock(body.Time)
	if err != nil {
		writeError(w, r, err)
		return
	}
	now, err := s.dispatch.SetTime(r.Context(), at)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ClockResponse{Time: now.String()})
}

// AdvanceClock handles POST /clock/advance.
func (s *Server) AdvanceClock(w http.ResponseWriter, r *http.Request) {
	var body AdvanceClockRequest
	if !decodeBody(w, r, &body) {
		return
	}
	now, err := s.dispatch.AdvanceTime(r.Context(), body.Hours, body.Minutes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ClockResponse{Time: now.String()})
}
