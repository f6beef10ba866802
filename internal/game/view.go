package game

import (
	"maps"
	"slices"
	"time"

	"github.com/settlersonline/api/internal/board"
)

// PublicPlayer is what every viewer sees about a player. VictoryPoints
// excludes unrevealed victory cards until the game is finished.
type PublicPlayer struct {
	ID            PlayerID `json:"id"`
	Name          string   `json:"name"`
	Color         string   `json:"color"`
	VictoryPoints int      `json:"victoryPoints"`
	Roads         int      `json:"roads"`
	Settlements   int      `json:"settlements"`
	Cities        int      `json:"cities"`
	ResourceCount int      `json:"resourceCount"`
	DevCardCount  int      `json:"devCardCount"`
	KnightsPlayed int      `json:"knightsPlayed"`
	LongestRoad   bool     `json:"longestRoad"`
	LargestArmy   bool     `json:"largestArmy"`
}

// PrivateView is the viewer's own hand.
type PrivateView struct {
	PlayerID            PlayerID  `json:"playerId"`
	Name                string    `json:"name"`
	Resources           Resources `json:"resources"`
	Ports               Ports     `json:"ports"`
	DevCards            []DevCard `json:"devCards"`
	KnightsPlayed       int       `json:"knightsPlayed"`
	FreeRoadsToPlace    int       `json:"freeRoadsToPlace"`
	VictoryPoints       int       `json:"victoryPoints"`
	HiddenVictoryPoints int       `json:"hiddenVictoryPoints"`
}

// StealCandidate describes a player the robber may steal from. Resources is
// only set for the mover while a steal is pending.
type StealCandidate struct {
	PlayerID      PlayerID   `json:"playerId"`
	Name          string     `json:"name"`
	Color         string     `json:"color"`
	ResourceCount int        `json:"resourceCount"`
	Resources     *Resources `json:"resources,omitempty"`
}

type RobberView struct {
	Pending       bool             `json:"pending"`
	ByPlayerID    PlayerID         `json:"byPlayerId,omitempty"`
	Reason        RobberReason     `json:"reason,omitempty"`
	AwaitingSteal bool             `json:"awaitingSteal"`
	Candidates    []StealCandidate `json:"candidates"`
}

// View is a viewer-scoped snapshot of a game.
type View struct {
	ID             string     `json:"id"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	Settings       Settings   `json:"settings"`
	Phase          Phase      `json:"phase"`
	SetupStep      SetupStep  `json:"setupStep"`
	SetupRound     int        `json:"setupRound"`
	SetupDirection Direction  `json:"setupDirection"`
	WinnerPlayerID PlayerID   `json:"winnerPlayerId,omitempty"`
	FinishedAt     *time.Time `json:"finishedAt,omitempty"`

	Players         []PublicPlayer  `json:"players"`
	CurrentPlayerID PlayerID        `json:"currentPlayerId,omitempty"`
	Tiles           []board.Tile    `json:"tiles"`
	Ports           []board.Port    `json:"ports"`
	Nodes           []NodePlacement `json:"nodes"`
	Edges           []EdgePlacement `json:"edges"`

	Log         []LogEntry    `json:"log"`
	Chat        []ChatMessage `json:"chat"`
	TradeOffers []TradeOffer  `json:"tradeOffers"`

	LastRoll          *Roll `json:"lastRoll,omitempty"`
	TurnHasRolled     bool  `json:"turnHasRolled"`
	TurnNumber        int   `json:"turnNumber"`
	DevDeckCount      int   `json:"devDeckCount"`
	DevPlayedThisTurn bool  `json:"devPlayedThisTurn"`

	LargestArmyPlayerID PlayerID   `json:"largestArmyPlayerId,omitempty"`
	LargestArmySize     int        `json:"largestArmySize"`
	LongestRoadPlayerID PlayerID   `json:"longestRoadPlayerId,omitempty"`
	LongestRoadLength   int        `json:"longestRoadLength"`
	Robber              RobberView `json:"robber"`
	Stats               Stats      `json:"stats"`

	You *PrivateView `json:"you,omitempty"`
}

// View projects g for viewer. An empty or unknown viewer gets the public
// projection only.
func (g *Game) View(viewer PlayerID) View {
	settings := g.Settings
	settings.CustomMap = nil

	v := View{
		ID:             g.ID,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
		Settings:       settings,
		Phase:          g.Phase,
		SetupStep:      g.SetupStep,
		SetupRound:     g.Setup.Round,
		SetupDirection: g.Setup.Direction,
		WinnerPlayerID: g.WinnerPlayerID,
		FinishedAt:     g.FinishedAt,

		CurrentPlayerID: g.CurrentPlayerID,
		Tiles:           slices.Clone(g.Tiles),
		Ports:           slices.Clone(g.Ports),
		Nodes:           slices.Clone(g.Nodes),
		Edges:           slices.Clone(g.Edges),
		Log:             slices.Clone(g.Log),
		Chat:            slices.Clone(g.Chat),
		TradeOffers:     slices.Clone(g.TradeOffers),

		TurnHasRolled:     g.TurnHasRolled,
		TurnNumber:        g.TurnNumber,
		DevDeckCount:      len(g.DevDeck),
		DevPlayedThisTurn: g.DevPlayedThisTurn,

		LargestArmyPlayerID: g.LargestArmyPlayerID,
		LargestArmySize:     g.LargestArmySize,
		LongestRoadPlayerID: g.LongestRoadPlayerID,
		LongestRoadLength:   g.LongestRoadLength,
		Stats: Stats{
			RollCounts:    maps.Clone(g.Stats.RollCounts),
			ResourceGains: maps.Clone(g.Stats.ResourceGains),
		},
	}
	if g.LastRoll != nil {
		r := *g.LastRoll
		v.LastRoll = &r
	}

	revealAll := g.Phase == PhaseFinished
	v.Players = make([]PublicPlayer, 0, len(g.Players))
	for _, p := range g.Players {
		vp := p.VictoryPoints
		if !revealAll {
			vp -= p.HiddenVictoryPoints()
		}
		v.Players = append(v.Players, PublicPlayer{
			ID:            p.ID,
			Name:          p.Name,
			Color:         p.Color,
			VictoryPoints: vp,
			Roads:         p.Roads,
			Settlements:   p.Settlements,
			Cities:        p.Cities,
			ResourceCount: p.Resources.Total(),
			DevCardCount:  len(p.DevCards),
			KnightsPlayed: p.KnightsPlayed,
			LongestRoad:   p.ID == g.LongestRoadPlayerID,
			LargestArmy:   p.ID == g.LargestArmyPlayerID,
		})
	}

	v.Robber = g.robberView(viewer)

	if p := g.Player(viewer); p != nil {
		v.You = &PrivateView{
			PlayerID:            p.ID,
			Name:                p.Name,
			Resources:           p.Resources,
			Ports:               Ports{ThreeToOne: p.Ports.ThreeToOne, TwoToOne: maps.Clone(p.Ports.TwoToOne)},
			DevCards:            slices.Clone(p.DevCards),
			KnightsPlayed:       p.KnightsPlayed,
			FreeRoadsToPlace:    p.FreeRoadsToPlace,
			VictoryPoints:       p.VictoryPoints,
			HiddenVictoryPoints: p.HiddenVictoryPoints(),
		}
	}
	return v
}

func (g *Game) robberView(viewer PlayerID) RobberView {
	r := g.Robber
	rv := RobberView{
		Pending:       r.Pending,
		ByPlayerID:    r.ByPlayerID,
		Reason:        r.Reason,
		AwaitingSteal: r.AwaitingSteal,
		Candidates:    []StealCandidate{},
	}
	showHands := viewer != "" && viewer == r.ByPlayerID && r.AwaitingSteal
	for _, pid := range r.Candidates {
		p := g.Player(pid)
		if p == nil {
			continue
		}
		c := StealCandidate{
			PlayerID:      p.ID,
			Name:          p.Name,
			Color:         p.Color,
			ResourceCount: p.Resources.Total(),
		}
		if showHands {
			hand := p.Resources
			c.Resources = &hand
		}
		rv.Candidates = append(rv.Candidates, c)
	}
	return rv
}
