package server

import (
	"log/slog"
	"net/http"

	"github.com/settlersonline/api/internal/game"
	"github.com/settlersonline/api/internal/notify"
	"github.com/settlersonline/api/internal/store"
)

// handleAction applies one player action, checks for a winner and returns
// the actor's view of the saved game.
func handleAction(logger *slog.Logger, st store.Store, bus notify.Publisher, rt game.Runtime) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ActionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.PlayerID == "" {
			writeError(w, http.StatusBadRequest, "playerId is required")
			return
		}
		apply, ok := actions[req.Type]
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown action type")
			return
		}

		gameID := gameIDFrom(r)
		g, err := st.UpdateGame(r.Context(), gameID, func(g *game.Game) error {
			g.Attach(rt)
			if err := apply(g, req.PlayerID, req.Payload); err != nil {
				return err
			}
			g.CheckWin(req.PlayerID)
			return nil
		})
		if err != nil {
			if code := game.CodeOf(err); code != "" {
				logger.Debug("game action rejected",
					"game_id", gameID, "player_id", req.PlayerID, "type", req.Type, "code", code)
			}
			writeFailure(w, logger, err, "game")
			return
		}

		bus.Publish(r.Context(), gameID)
		logger.Info("game action", "game_id", gameID, "player_id", req.PlayerID, "type", req.Type, "phase", g.Phase)
		writeJSON(w, http.StatusOK, g.View(req.PlayerID))
	}
}
