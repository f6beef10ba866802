package server

import (
	"log/slog"
	"net/http"

	"github.com/settlersonline/api/internal/board"
	"github.com/settlersonline/api/internal/game"
	"github.com/settlersonline/api/internal/store"
)

type TemplateRequest struct {
	Name  string           `json:"name"`
	Hexes []board.Hex      `json:"hexes"`
	Ports []board.PortSpec `json:"ports,omitempty"`
}

// TemplateUpdateRequest changes only the fields that are present.
type TemplateUpdateRequest struct {
	Name  *string          `json:"name,omitempty"`
	Hexes []board.Hex      `json:"hexes,omitempty"`
	Ports []board.PortSpec `json:"ports,omitempty"`
}

type TemplateCreatedResponse struct {
	TemplateID string `json:"templateId"`
}

type TemplateListResponse struct {
	Templates []game.MapTemplate `json:"templates"`
}

func handleListTemplates(logger *slog.Logger, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := st.ListTemplates(r.Context())
		if err != nil {
			writeFailure(w, logger, err, "template")
			return
		}
		writeJSON(w, http.StatusOK, TemplateListResponse{Templates: list})
	}
}

func handleCreateTemplate(logger *slog.Logger, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TemplateRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		tpl, err := game.NewMapTemplate(req.Name, req.Hexes, req.Ports)
		if err != nil {
			writeFailure(w, logger, err, "template")
			return
		}
		if err := st.CreateTemplate(r.Context(), tpl); err != nil {
			writeFailure(w, logger, err, "template")
			return
		}

		logger.Info("template created", "template_id", tpl.ID, "hexes", len(tpl.Hexes))
		writeJSON(w, http.StatusCreated, TemplateCreatedResponse{TemplateID: tpl.ID})
	}
}

func handleGetTemplate(logger *slog.Logger, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tpl, err := st.GetTemplate(r.Context(), templateIDFrom(r))
		if err != nil {
			writeFailure(w, logger, err, "template")
			return
		}
		writeJSON(w, http.StatusOK, tpl)
	}
}

func handleUpdateTemplate(logger *slog.Logger, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TemplateUpdateRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		tpl, err := st.GetTemplate(r.Context(), templateIDFrom(r))
		if err != nil {
			writeFailure(w, logger, err, "template")
			return
		}
		if err := tpl.Apply(req.Name, req.Hexes, req.Ports); err != nil {
			writeFailure(w, logger, err, "template")
			return
		}
		if err := st.UpdateTemplate(r.Context(), tpl); err != nil {
			writeFailure(w, logger, err, "template")
			return
		}
		writeJSON(w, http.StatusOK, tpl)
	}
}

func handleDeleteTemplate(logger *slog.Logger, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.DeleteTemplate(r.Context(), templateIDFrom(r)); err != nil {
			writeFailure(w, logger, err, "template")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
