package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"hotel_service/internal/domain"
)

// maxBodyBytes caps request bodies at 1 MiB.
const maxBodyBytes = 1 << 20

// envelope wraps every /api response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func respond(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: status < 400, Message: message, Data: data}); err != nil {
		log.Error().Err(err).Msg("write JSON envelope failed")
	}
}

func fail(w http.ResponseWriter, status int, message string) {
	respond(w, status, message, nil)
}

// readJSON decodes a size-limited JSON body, rejecting unknown fields.
func readJSON[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(w, http.StatusRequestEntityTooLarge, "request body too large")
			return v, false
		}
		fail(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return v, false
	}
	return v, true
}

// writeDomainError maps service errors to status codes and logs the failure once.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, subject string) {
	status, msg := http.StatusInternalServerError, "internal server error"
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, msg = http.StatusBadRequest, detail(err, domain.ErrValidation, "invalid input")
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, subject+" not found"
	case errors.Is(err, domain.ErrConflict):
		status, msg = http.StatusConflict, detail(err, domain.ErrConflict, subject+" already exists")
	}

	ev := log.Warn()
	if status >= 500 {
		ev = log.Error()
	}
	ev.Err(err).
		Str("route", routePattern(r)).
		Str("method", r.Method).
		Str("id", chi.URLParam(r, "id")).
		Str("request_id", chimw.GetReqID(r.Context())).
		Int("status", status).
		Msg("request failed")

	fail(w, status, msg)
}

// detail returns the text following "<sentinel>: " in err, or fallback.
func detail(err, sentinel error, fallback string) string {
	s, prefix := err.Error(), sentinel.Error()+": "
	if i := strings.Index(s, prefix); i >= 0 {
		return s[i+len(prefix):]
	}
	return fallback
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func okMsg(subject, verb string) string {
	return fmt.Sprintf("%s %s successfully", capitalize(subject), verb)
}
