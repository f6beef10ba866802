package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	st, bus, rt := deps.Store, deps.Bus, deps.Runtime

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Settlers API", "/openapi.json", "/docs"))

	r.Route("/api/games", func(r chi.Router) {
		r.Get("/", handleListGames(logger, st))
		r.Post("/", handleCreateGame(logger, st, bus, rt))
		r.Post("/join", handleJoinGame(logger, st, bus, rt))

		r.Route("/{gameID}", func(r chi.Router) {
			r.Use(idParamMiddleware("gameID", ctxKeyGameID, "game"))
			r.Get("/", handleGetGame(logger, st))
			r.Post("/action", handleAction(logger, st, bus, rt))
			r.Get("/events", handleEvents(logger, st, bus, deps.PingInterval))
			r.Get("/ws", handleWS(logger, st, bus, deps.PingInterval))
		})
	})

	r.Route("/api/templates", func(r chi.Router) {
		r.Get("/", handleListTemplates(logger, st))
		r.Post("/", handleCreateTemplate(logger, st))

		r.Route("/{templateID}", func(r chi.Router) {
			r.Use(idParamMiddleware("templateID", ctxKeyTemplateID, "template"))
			r.Get("/", handleGetTemplate(logger, st))
			r.Put("/", handleUpdateTemplate(logger, st))
			r.Delete("/", handleDeleteTemplate(logger, st))
		})
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
