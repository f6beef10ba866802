package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/settlersonline/api/internal/id"
)

type ctxKey int

const (
	ctxKeyGameID ctxKey = iota
	ctxKeyTemplateID
)

// idParamMiddleware rejects malformed ids in the URL before any store
// lookup and stores the id in the request context.
func idParamMiddleware(param string, key ctxKey, what string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v := chi.URLParam(r, param)
			if !id.Valid(v) {
				writeJSON(w, http.StatusNotFound, ErrorResponse{Error: what + " not found", Code: codeNotFound})
				return
			}

			ctx := context.WithValue(r.Context(), key, v)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func gameIDFrom(r *http.Request) string {
	return r.Context().Value(ctxKeyGameID).(string)
}

func templateIDFrom(r *http.Request) string {
	return r.Context().Value(ctxKeyTemplateID).(string)
}
