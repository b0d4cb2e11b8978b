package handlers

import (
	"encoding/json"
	"errors"
	"ga-route-service/internal/services"
	"io"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object with no unknown fields into v.
// On failure it writes a 400 and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// writeServiceError maps service errors to HTTP statuses. Unexpected errors
// are logged and reported as 500 without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case services.IsNotFound(err):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrTooManyRuns):
		writeError(w, r, http.StatusTooManyRequests, err.Error())
	case services.IsConflict(err):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrGeocoderUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, err.Error())
	default:
		log.Printf("%s failed: method=%s path=%s err=%v", op, r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
