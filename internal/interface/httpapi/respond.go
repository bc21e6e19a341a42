package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"qtholidays-service/internal/domain/entity"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps the error taxonomy onto HTTP status codes
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrInvalidRecord):
		return http.StatusBadRequest, "invalid_record"
	case errors.Is(err, entity.ErrAuth):
		return http.StatusUnauthorized, "auth_error"
	case errors.Is(err, entity.ErrUnknownService):
		return http.StatusNotFound, "unknown_service"
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, entity.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "store_unavailable"
	case errors.Is(err, entity.ErrCorruptRecord):
		return http.StatusInternalServerError, "corrupt_record"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", "path", r.URL.Path, "error", err)
		message = http.StatusText(status)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}
