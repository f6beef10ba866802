package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/settlersonline/api/internal/game"
	"github.com/settlersonline/api/internal/store"
)

// ErrorResponse is returned for all error responses. Code is set for
// rejected game actions and lookups of missing resources.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

const (
	codeNotFound = "not_found"
	codeConflict = "conflict"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeFailure maps store and game errors to responses. what names the
// missing resource for 404s.
func writeFailure(w http.ResponseWriter, logger *slog.Logger, err error, what string) {
	var gerr *game.Error
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: what + " not found", Code: codeNotFound})
	case errors.Is(err, store.ErrConflict):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "the game changed, try again", Code: codeConflict})
	case errors.As(err, &gerr):
		writeJSON(w, gerr.Code.HTTPStatus(), ErrorResponse{Error: gerr.Message, Code: string(gerr.Code)})
	default:
		logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
