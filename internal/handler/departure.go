package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/train-dispatch/internal/domain"
	"github.com/pkordes/train-dispatch/internal/service"
)

// Departure is the JSON form of a departure.
type Departure struct {
	Time                string `json:"time"`
	Line                string `json:"line"`
	TrainNumber         string `json:"train_number"`
	Destination         string `json:"destination"`
	Track               *int   `json:"track,omitempty"` // nil when no track is assigned
	Delay               string `json:"delay"`
	ActualDepartureTime string `json:"actual_departure_time"`
}

// Pagination describes the page returned in a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// DepartureList is the body of GET /departures.
type DepartureList struct {
	Data       []Departure `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// CreateDepartureRequest is the body of POST /departures.
type CreateDepartureRequest struct {
	Time        string `json:"time"`
	Line        string `json:"line"`
	TrainNumber string `json:"train_number"`
	Destination string `json:"destination"`
	Track       *int   `json:"track,omitempty"`
}

// AssignTrackRequest is the body of PUT /departures/{trainNumber}/track.
type AssignTrackRequest struct {
	Track int `json:"track"`
}

// SetDelayRequest is the body of PUT /departures/{trainNumber}/delay.
type SetDelayRequest struct {
	Delay string `json:"delay"` // "hh:mm"
}

// ListDepartures handles GET /departures.
// With ?destination= it returns only departures to that destination and
// responds 404 when there are none. ?page= and ?limit= select one page of the
// sorted result.
func (s *Server) ListDepartures(w http.ResponseWriter, r *http.Request) {
	params, ok := paginationParams(w, r)
	if !ok {
		return
	}

	var (
		departures []domain.Departure
		err        error
	)
	if destination := strings.TrimSpace(r.URL.Query().Get("destination")); destination != "" {
		departures, err = s.dispatch.SearchDestination(r.Context(), destination)
	} else {
		departures, err = s.dispatch.List(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	page := domain.Paginate(departures, params)
	data := make([]Departure, len(page))
	for i, d := range page {
		data[i] = departureToResponse(d)
	}
	writeJSON(w, http.StatusOK, DepartureList{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: len(departures),
		},
	})
}

// CreateDeparture handles POST /departures.
func (s *Server) CreateDeparture(w http.ResponseWriter, r *http.Request) {
	var body CreateDepartureRequest
	if !decodeBody(w, r, &body) {
		return
	}
	in, err := requestToDeparture(body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.dispatch.Add(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/departures/"+created.TrainNumber())
	writeJSON(w, http.StatusCreated, departureToResponse(created))
}

// GetDeparture handles GET /departures/{trainNumber}.
func (s *Server) GetDeparture(w http.ResponseWriter, r *http.Request) {
	d, err := s.dispatch.GetByTrainNumber(r.Context(), chi.URLParam(r, "trainNumber"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, departureToResponse(d))
}

// DeleteDeparture handles DELETE /departures/{trainNumber}.
func (s *Server) DeleteDeparture(w http.ResponseWriter, r *http.Request) {
	if err := s.dispatch.Remove(r.Context(), chi.URLParam(r, "trainNumber")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignTrack handles PUT /departures/{trainNumber}/track.
func (s *Server) AssignTrack(w http.ResponseWriter, r *http.Request) {
	var body AssignTrackRequest
	if !decodeBody(w, r, &body) {
		return
	}
	d, err := s.dispatch.AssignTrack(r.Context(), chi.URLParam(r, "trainNumber"), body.Track)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, departureToResponse(d))
}

// SetDelay handles PUT /departures/{trainNumber}/delay.
func (s *Server) SetDelay(w http.ResponseWriter, r *http.Request) {
	var body SetDelayRequest
	if !decodeBody(w, r, &body) {
		return
	}
	delay, err := domain.ParseDelay(body.Delay)
	if err != nil {
		writeError(w, r, err)
		return
	}
	d, err := s.dispatch.SetDelay(r.Context(), chi.URLParam(r, "trainNumber"), delay)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, departureToResponse(d))
}

// --- mapping helpers --------------------------------------------------------

// paginationParams reads the optional page and limit query values. It writes
// a 422 and returns false when either is present but not an integer.
func paginationParams(w http.ResponseWriter, r *http.Request) (domain.PaginationParams, bool) {
	var values [2]*int
	for i, name := range []string{"page", "limit"} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			requestError(w, name+" must be an integer")
			return domain.PaginationParams{}, false
		}
		values[i] = &n
	}
	return domain.NewPaginationParams(values[0], values[1]), true
}

// requestToDeparture converts a CreateDepartureRequest into service input.
// An explicit track of 0 becomes -1 so the domain rejects it instead of
// reading it as "no track".
func requestToDeparture(body CreateDepartureRequest) (service.NewDeparture, error) {
	at, err := domain.ParseClock(body.Time)
	if err != nil {
		return service.NewDeparture{}, err
	}
	in := service.NewDeparture{
		Time:        at,
		Line:        body.Line,
		TrainNumber: body.TrainNumber,
		Destination: body.Destination,
	}
	if body.Track != nil {
		in.Track = *body.Track
		if in.Track == 0 {
			in.Track = -1
		}
	}
	return in, nil
}

// departureToResponse converts a domain.Departure into its JSON form.
func departureToResponse(d domain.Departure) Departure {
	resp := Departure{
		Time:                d.DepartureTime().String(),
		Line:                d.Line(),
		TrainNumber:         d.TrainNumber(),
		Destination:         d.Destination(),
		Delay:               domain.FormatDelay(d.Delay()),
		ActualDepartureTime: d.ActualDepartureTime().String(),
	}
	if d.HasTrack() {
		track := d.Track()
		resp.Track = &track
	}
	return resp
}
