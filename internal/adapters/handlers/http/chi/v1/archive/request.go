package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"file-researcher/internal/core/domain"
	"strconv"

	"github.com/go-chi/chi/v5"
)

var errMissingUser = errors.New("missing " + UserIDHeader + " header")

func userID(r *http.Request) (int64, error) {
	raw := r.Header.Get(UserIDHeader)
	if raw == "" {
		return 0, errMissingUser
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s header", UserIDHeader)
	}
	return id, nil
}

func pathID(r *http.Request, key string) (int64, error) {
	raw := chi.URLParam(r, key)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return id, nil
}

// writeServiceError maps domain errors to http status codes
func (h *HandlerV1) writeServiceError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrFileSetNotFound):
		http.Error(w, "file set not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrArchiveNotFound):
		http.Error(w, "archive not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrNoRecipient):
		http.Error(w, "no recipient recorded", http.StatusNotFound)
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, domain.ErrEmptyFileSet):
		http.Error(w, "nothing to archive", http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidRecipient):
		http.Error(w, "invalid recipient email", http.StatusBadRequest)
	case errors.Is(err, domain.ErrArchiveNotRetained):
		http.Error(w, "archive not retained", http.StatusConflict)
	default:
		h.logger.Error(msg, "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}
}

func (h *HandlerV1) writeJSON(w http.ResponseWriter, status int, resp any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
