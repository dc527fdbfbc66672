package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/train-dispatch/internal/domain"
)

// ErrorDetail is the machine code and human message of a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// errorClass maps a group of domain sentinels to one status and code.
type errorClass struct {
	status    int
	code      string
	sentinels []error
}

var errorClasses = []errorClass{
	{http.StatusNotFound, "not_found", []error{domain.ErrNotFound}},
	{http.StatusConflict, "conflict", []error{
		domain.ErrDuplicateTrainNumber,
		domain.ErrTrackConflict,
		domain.ErrLineConflict,
		domain.ErrTrackAlreadySet,
		domain.ErrTimeRegression,
	}},
	{http.StatusUnprocessableEntity, "validation_error", []error{
		domain.ErrInvalidFormat,
		domain.ErrInvalidTrack,
		domain.ErrOverflow,
	}},
}

// writeError maps err to a status code and writes an ErrorResponse.
// Errors that match no domain sentinel are logged and reported as 500 without
// leaking their text.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, class := range errorClasses {
		for _, sentinel := range class.sentinels {
			if errors.Is(err, sentinel) {
				writeJSON(w, class.status, ErrorResponse{Error: ErrorDetail{Code: class.code, Message: unwrapMessage(err, sentinel)}})
				return
			}
		}
	}
	slog.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{Code: "internal_error", Message: "internal server error"}})
}

// requestError reports a bad request rejected before reaching the service
// layer (e.g. missing or malformed body).
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "duplicate train number: the train number 608 is already being used"
// → "the train number 608 is already being used"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	if detail, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok && detail != "" {
		return detail
	}
	return msg
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeBody decodes a JSON request body into dst, rejecting unknown fields.
// On failure it writes the error response itself and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: ErrorDetail{Code: "too_large", Message: "request body is too large"}})
			return false
		}
		if errors.Is(err, io.EOF) {
			requestError(w, "request body is required")
			return false
		}
		requestError(w, "request body is not valid JSON: "+err.Error())
		return false
	}
	return true
}
