package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pokenihongo/admin-console/internal/domain"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeDomainError maps err to a status code. Backend statuses carried by
// a fetch error win over the generic 502 so that an expired token surfaces
// as 401 rather than a gateway failure.
func writeDomainError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "validation failed",
			Fields: verr.Errors,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrUnknownScreen), errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrNotSupported):
		writeError(w, http.StatusMethodNotAllowed, "operation not supported")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	case errors.Is(err, domain.ErrScopedFilter), errors.Is(err, domain.ErrInvalidAction):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		var ferr *domain.FetchError
		if errors.As(err, &ferr) {
			log.WarnContext(r.Context(), "backend fetch failed",
				slog.String("screen", ferr.Screen),
				slog.Int("status", ferr.Status),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusBadGateway, "backend unavailable")
			return
		}
		log.ErrorContext(r.Context(), "request failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
