package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/settlersonline/api/internal/board"
	"github.com/settlersonline/api/internal/game"
	"github.com/settlersonline/api/internal/id"
	"github.com/settlersonline/api/internal/notify"
	"github.com/settlersonline/api/internal/store"
)

type CreateGameRequest struct {
	Name             string        `json:"name"`
	MapType          board.MapType `json:"mapType,omitempty"`
	TemplateID       string        `json:"templateId,omitempty"`
	MaxVictoryPoints int           `json:"maxVictoryPoints,omitempty"`
	MaxPlayers       int           `json:"maxPlayers,omitempty"`
	MinPlayers       int           `json:"minPlayers,omitempty"`
}

type JoinGameRequest struct {
	GameID string `json:"gameId"`
	Name   string `json:"name"`
}

// SeatResponse identifies the caller's seat after creating or joining.
type SeatResponse struct {
	GameID   string        `json:"gameId"`
	PlayerID game.PlayerID `json:"playerId"`
}

type GameListResponse struct {
	Games []store.GameSummary `json:"games"`
}

func (req CreateGameRequest) settings() game.Settings {
	s := game.DefaultSettings()
	if req.MapType != "" {
		s.MapType = req.MapType
	}
	if req.MaxVictoryPoints != 0 {
		s.MaxVictoryPoints = req.MaxVictoryPoints
	}
	if req.MaxPlayers != 0 {
		s.MaxPlayers = req.MaxPlayers
	}
	if req.MinPlayers != 0 {
		s.MinPlayers = req.MinPlayers
	}
	return s
}

// handleCreateGame creates a lobby game seating the creator. A templateId
// selects a custom map, whose layout is copied into the game.
func handleCreateGame(logger *slog.Logger, st store.Store, bus notify.Publisher, rt game.Runtime) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		settings := req.settings()
		if tplID := strings.TrimSpace(req.TemplateID); tplID != "" {
			tpl, err := st.GetTemplate(r.Context(), tplID)
			if err != nil {
				writeFailure(w, logger, err, "template")
				return
			}
			settings.MapType = board.Custom
			settings.MapTemplateID = tpl.ID
			settings.CustomMap = tpl.CustomMap()
		}

		g, err := game.New(id.New(), settings, rt)
		if err != nil {
			writeFailure(w, logger, err, "game")
			return
		}
		playerID, err := g.Join(req.Name)
		if err != nil {
			writeFailure(w, logger, err, "game")
			return
		}
		if err := st.CreateGame(r.Context(), g); err != nil {
			writeFailure(w, logger, err, "game")
			return
		}

		bus.Publish(r.Context(), g.ID)
		logger.Info("game created", "game_id", g.ID, "player_id", playerID, "map_type", settings.MapType)
		writeJSON(w, http.StatusCreated, SeatResponse{GameID: g.ID, PlayerID: playerID})
	}
}

// handleJoinGame seats a new player and starts the game once enough
// players are present.
func handleJoinGame(logger *slog.Logger, st store.Store, bus notify.Publisher, rt game.Runtime) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.GameID = strings.TrimSpace(req.GameID)
		if !id.Valid(req.GameID) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "game not found", Code: codeNotFound})
			return
		}

		var (
			playerID game.PlayerID
			started  bool
		)
		_, err := st.UpdateGame(r.Context(), req.GameID, func(g *game.Game) error {
			g.Attach(rt)
			pid, err := g.Join(req.Name)
			if err != nil {
				return err
			}
			playerID = pid
			started, err = g.StartIfEligible()
			return err
		})
		if err != nil {
			writeFailure(w, logger, err, "game")
			return
		}

		bus.Publish(r.Context(), req.GameID)
		logger.Info("player joined", "game_id", req.GameID, "player_id", playerID, "started", started)
		writeJSON(w, http.StatusOK, SeatResponse{GameID: req.GameID, PlayerID: playerID})
	}
}

func handleListGames(logger *slog.Logger, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := store.DefaultListLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > store.MaxListLimit {
				writeError(w, http.StatusBadRequest, "limit must be between 1 and 50")
				return
			}
			limit = n
		}

		games, err := st.ListGames(r.Context(), limit)
		if err != nil {
			writeFailure(w, logger, err, "game")
			return
		}
		writeJSON(w, http.StatusOK, GameListResponse{Games: games})
	}
}

// handleGetGame returns the game as seen by the playerId query parameter.
// Without one, or with an id not seated in the game, the public view is
// returned.
func handleGetGame(logger *slog.Logger, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := st.LoadGame(r.Context(), gameIDFrom(r))
		if err != nil {
			writeFailure(w, logger, err, "game")
			return
		}
		viewer := game.PlayerID(r.URL.Query().Get("playerId"))
		writeJSON(w, http.StatusOK, g.View(viewer))
	}
}
