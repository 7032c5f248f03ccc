package devserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/studyfocus/internal/repository"
)

type dataBody struct {
	Data any `json:"data"`
}

type messageBody struct {
	Message string `json:"message"`
}

func respondData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dataBody{Data: data}); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(messageBody{Message: msg}); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondStoreError maps repository errors onto status codes. Anything
// unrecognized is logged and reported as a 500 with a generic message.
func (s *Server) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrDuplicate):
		respondMessage(w, http.StatusConflict, err.Error())
	default:
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
