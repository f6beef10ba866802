package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/settlersonline/api/internal/game"
)

// HealthCheck is one entry of the /healthz response, keyed by dependency.
type HealthCheck struct {
	Status     string `json:"status" enum:"ok,error"`
	DurationMS int64  `json:"duration_ms"`
}

type gamePath struct {
	GameID string `path:"gameID"`
}

type gameViewInput struct {
	GameID   string `path:"gameID"`
	PlayerID string `query:"playerId" description:"Seat to render private state for."`
}

type listGamesInput struct {
	Limit int `query:"limit" minimum:"1" maximum:"50" default:"20"`
}

type actionInput struct {
	GameID   string `path:"gameID"`
	PlayerID string `json:"playerId" required:"true"`
	Type     string `json:"type" required:"true" enum:"build_city,build_road,build_settlement,chat,dev_buy,dev_play,end_turn,place_road,place_settlement,robber_move,robber_steal,roll,trade_bank,trade_offer_accept,trade_offer_cancel,trade_offer_create,trade_offer_reject"`
	Payload  any    `json:"payload,omitempty" description:"Type-specific arguments, e.g. {\"nodeId\":\"...\"} or {\"give\":\"wood\",\"get\":\"ore\"}."`
}

type templatePath struct {
	TemplateID string `path:"templateID"`
}

type templateUpdateInput struct {
	TemplateID string `path:"templateID"`
	TemplateUpdateRequest
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Settlers API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the settlement-building board game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(map[string]HealthCheck{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(map[string]HealthCheck{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/games
	listGames, _ := r.NewOperationContext(http.MethodGet, "/api/games")
	listGames.SetSummary("List games")
	listGames.SetDescription("Returns unfinished games, most recently updated first.")
	listGames.AddReqStructure(listGamesInput{})
	listGames.AddRespStructure(GameListResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	listGames.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(listGames)

	// POST /api/games
	createGame, _ := r.NewOperationContext(http.MethodPost, "/api/games")
	createGame.SetSummary("Create game")
	createGame.SetDescription("Creates a lobby game and seats the creator. A templateId selects a custom map.")
	createGame.AddReqStructure(CreateGameRequest{})
	createGame.AddRespStructure(SeatResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(createGame)

	// POST /api/games/join
	joinGame, _ := r.NewOperationContext(http.MethodPost, "/api/games/join")
	joinGame.SetSummary("Join game")
	joinGame.SetDescription("Seats a player in a lobby game. The game starts once the minimum player count is reached.")
	joinGame.AddReqStructure(JoinGameRequest{})
	joinGame.AddRespStructure(SeatResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	joinGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	joinGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	joinGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(joinGame)

	// GET /api/games/{gameID}
	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}")
	getGame.SetSummary("Get game")
	getGame.SetDescription("Returns the game as seen by playerId, or the public view without one.")
	getGame.AddReqStructure(gameViewInput{})
	getGame.AddRespStructure(game.View{}, openapi.WithHTTPStatus(http.StatusOK))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGame)

	// POST /api/games/{gameID}/action
	postAction, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/action")
	postAction.SetSummary("Play an action")
	postAction.SetDescription("Applies one player action and returns the actor's view of the game.")
	postAction.AddReqStructure(actionInput{})
	postAction.AddRespStructure(game.View{}, openapi.WithHTTPStatus(http.StatusOK))
	postAction.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postAction.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	postAction.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postAction.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postAction)

	// GET /api/games/{gameID}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events: a hello message, then one update message per saved change.")
	getEvents.AddReqStructure(gamePath{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/games/{gameID}/ws
	getWS, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/ws")
	getWS.SetSummary("WebSocket event stream")
	getWS.SetDescription("Upgrades to a WebSocket that pushes the same JSON events as the SSE stream.")
	getWS.AddReqStructure(gamePath{})
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	// GET /api/templates
	listTemplates, _ := r.NewOperationContext(http.MethodGet, "/api/templates")
	listTemplates.SetSummary("List map templates")
	listTemplates.AddRespStructure(TemplateListResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listTemplates)

	// POST /api/templates
	createTemplate, _ := r.NewOperationContext(http.MethodPost, "/api/templates")
	createTemplate.SetSummary("Create map template")
	createTemplate.AddReqStructure(TemplateRequest{})
	createTemplate.AddRespStructure(TemplateCreatedResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	createTemplate.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(createTemplate)

	// GET /api/templates/{templateID}
	getTemplate, _ := r.NewOperationContext(http.MethodGet, "/api/templates/{templateID}")
	getTemplate.SetSummary("Get map template")
	getTemplate.AddReqStructure(templatePath{})
	getTemplate.AddRespStructure(game.MapTemplate{}, openapi.WithHTTPStatus(http.StatusOK))
	getTemplate.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getTemplate)

	// PUT /api/templates/{templateID}
	updateTemplate, _ := r.NewOperationContext(http.MethodPut, "/api/templates/{templateID}")
	updateTemplate.SetSummary("Update map template")
	updateTemplate.SetDescription("Replaces the fields present in the body. Games already created keep their copy.")
	updateTemplate.AddReqStructure(templateUpdateInput{})
	updateTemplate.AddRespStructure(game.MapTemplate{}, openapi.WithHTTPStatus(http.StatusOK))
	updateTemplate.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	updateTemplate.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(updateTemplate)

	// DELETE /api/templates/{templateID}
	deleteTemplate, _ := r.NewOperationContext(http.MethodDelete, "/api/templates/{templateID}")
	deleteTemplate.SetSummary("Delete map template")
	deleteTemplate.AddReqStructure(templatePath{})
	deleteTemplate.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deleteTemplate.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteTemplate)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
