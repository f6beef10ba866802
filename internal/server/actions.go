package server

import (
	"encoding/json"
	"slices"

	"github.com/settlersonline/api/internal/board"
	"github.com/settlersonline/api/internal/game"
)

// ActionRequest is the body of POST /api/games/{gameID}/action.
type ActionRequest struct {
	PlayerID game.PlayerID   `json:"playerId"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

type nodePayload struct {
	NodeID string `json:"nodeId"`
}

type edgePayload struct {
	EdgeID string `json:"edgeId"`
}

type bankTradePayload struct {
	Give board.Resource `json:"give"`
	Get  board.Resource `json:"get"`
}

type offerCreatePayload struct {
	ToPlayerID game.PlayerID  `json:"toPlayerId,omitempty"`
	Give       game.Resources `json:"give"`
	Get        game.Resources `json:"get"`
}

type offerPayload struct {
	OfferID string `json:"offerId"`
}

type chatPayload struct {
	Text string `json:"text"`
}

type devPlayPayload struct {
	CardID  string          `json:"cardId"`
	Payload game.DevPayload `json:"payload"`
}

type robberMovePayload struct {
	TileID string `json:"tileId"`
}

type robberStealPayload struct {
	TargetPlayerID game.PlayerID  `json:"targetPlayerId"`
	Resource       board.Resource `json:"resource,omitempty"`
}

// action applies one decoded request to a game.
type action func(g *game.Game, pid game.PlayerID, payload json.RawMessage) error

func withPayload[P any](fn func(*game.Game, game.PlayerID, P) error) action {
	return func(g *game.Game, pid game.PlayerID, raw json.RawMessage) error {
		var p P
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &p); err != nil {
				return &game.Error{Code: game.CodeInvalidInput, Message: "malformed payload"}
			}
		}
		return fn(g, pid, p)
	}
}

func required(field, v string) error {
	if v == "" {
		return &game.Error{Code: game.CodeInvalidInput, Message: field + " is required"}
	}
	return nil
}

var actions = map[string]action{
	"place_settlement": withPayload(func(g *game.Game, pid game.PlayerID, p nodePayload) error {
		if err := required("nodeId", p.NodeID); err != nil {
			return err
		}
		return g.PlaceSettlement(pid, p.NodeID)
	}),
	"place_road": withPayload(func(g *game.Game, pid game.PlayerID, p edgePayload) error {
		if err := required("edgeId", p.EdgeID); err != nil {
			return err
		}
		return g.PlaceRoad(pid, p.EdgeID)
	}),
	"build_settlement": withPayload(func(g *game.Game, pid game.PlayerID, p nodePayload) error {
		if err := required("nodeId", p.NodeID); err != nil {
			return err
		}
		return g.BuildSettlement(pid, p.NodeID)
	}),
	"build_road": withPayload(func(g *game.Game, pid game.PlayerID, p edgePayload) error {
		if err := required("edgeId", p.EdgeID); err != nil {
			return err
		}
		return g.BuildRoad(pid, p.EdgeID)
	}),
	"build_city": withPayload(func(g *game.Game, pid game.PlayerID, p nodePayload) error {
		if err := required("nodeId", p.NodeID); err != nil {
			return err
		}
		return g.BuildCity(pid, p.NodeID)
	}),
	"roll": func(g *game.Game, pid game.PlayerID, _ json.RawMessage) error {
		_, err := g.RollDice(pid)
		return err
	},
	"end_turn": func(g *game.Game, pid game.PlayerID, _ json.RawMessage) error {
		return g.EndTurn(pid)
	},
	"trade_bank": withPayload(func(g *game.Game, pid game.PlayerID, p bankTradePayload) error {
		return g.TradeWithBank(pid, p.Give, p.Get)
	}),
	"trade_offer_create": withPayload(func(g *game.Game, pid game.PlayerID, p offerCreatePayload) error {
		_, err := g.CreateTradeOffer(pid, p.ToPlayerID, p.Give, p.Get)
		return err
	}),
	"trade_offer_accept": withPayload(func(g *game.Game, pid game.PlayerID, p offerPayload) error {
		if err := required("offerId", p.OfferID); err != nil {
			return err
		}
		return g.AcceptTradeOffer(pid, p.OfferID)
	}),
	"trade_offer_reject": withPayload(func(g *game.Game, pid game.PlayerID, p offerPayload) error {
		if err := required("offerId", p.OfferID); err != nil {
			return err
		}
		return g.RejectTradeOffer(pid, p.OfferID)
	}),
	"trade_offer_cancel": withPayload(func(g *game.Game, pid game.PlayerID, p offerPayload) error {
		if err := required("offerId", p.OfferID); err != nil {
			return err
		}
		return g.CancelTradeOffer(pid, p.OfferID)
	}),
	"chat": withPayload(func(g *game.Game, pid game.PlayerID, p chatPayload) error {
		return g.AddChat(pid, p.Text)
	}),
	"dev_buy": func(g *game.Game, pid game.PlayerID, _ json.RawMessage) error {
		_, err := g.BuyDevCard(pid)
		return err
	},
	"dev_play": withPayload(func(g *game.Game, pid game.PlayerID, p devPlayPayload) error {
		if err := required("cardId", p.CardID); err != nil {
			return err
		}
		return g.PlayDevCard(pid, p.CardID, p.Payload)
	}),
	"robber_move": withPayload(func(g *game.Game, pid game.PlayerID, p robberMovePayload) error {
		if err := required("tileId", p.TileID); err != nil {
			return err
		}
		return g.MoveRobber(pid, p.TileID)
	}),
	"robber_steal": withPayload(func(g *game.Game, pid game.PlayerID, p robberStealPayload) error {
		if err := required("targetPlayerId", string(p.TargetPlayerID)); err != nil {
			return err
		}
		return g.RobberSteal(pid, p.TargetPlayerID, p.Resource)
	}),
}

// ActionTypes lists the accepted action types in sorted order.
func ActionTypes() []string {
	types := make([]string, 0, len(actions))
	for t := range actions {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}
