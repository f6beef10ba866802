package game

import "github.com/settlersonline/api/internal/board"

// Normalize fills defaults for fields missing from older stored documents and
// replaces nil collections with empty ones. Stores call it after every decode.
func (g *Game) Normalize() {
	def := DefaultSettings()
	if g.Settings.MaxVictoryPoints == 0 {
		g.Settings.MaxVictoryPoints = def.MaxVictoryPoints
	}
	if g.Settings.MaxPlayers == 0 {
		g.Settings.MaxPlayers = def.MaxPlayers
	}
	if g.Settings.MinPlayers == 0 {
		g.Settings.MinPlayers = def.MinPlayers
	}
	if g.Settings.MapType == "" {
		g.Settings.MapType = def.MapType
	}

	if g.Phase == "" {
		g.Phase = PhaseLobby
	}
	if g.SetupStep == "" {
		g.SetupStep = StepPlaceSettlement
	}
	if g.Setup.Round == 0 {
		g.Setup.Round = 1
	}
	if g.Setup.Direction == "" {
		g.Setup.Direction = Forward
	}
	if g.Setup.Done == nil {
		g.Setup.Done = make(map[PlayerID]int)
	}
	if g.TurnNumber == 0 {
		g.TurnNumber = 1
	}

	if g.Players == nil {
		g.Players = []*Player{}
	}
	if g.Tiles == nil {
		g.Tiles = []board.Tile{}
	}
	if g.Ports == nil {
		g.Ports = []board.Port{}
	}
	if g.Nodes == nil {
		g.Nodes = []NodePlacement{}
	}
	if g.Edges == nil {
		g.Edges = []EdgePlacement{}
	}
	if g.DevDeck == nil {
		g.DevDeck = []DevCardKind{}
	}
	if g.TradeOffers == nil {
		g.TradeOffers = []TradeOffer{}
	}
	if g.Log == nil {
		g.Log = []LogEntry{}
	}
	if g.Chat == nil {
		g.Chat = []ChatMessage{}
	}

	if !g.Robber.Pending {
		g.Robber = Robber{}
	}
	if g.Robber.Candidates == nil {
		g.Robber.Candidates = []PlayerID{}
	}

	if g.Stats.RollCounts == nil {
		g.Stats.RollCounts = make(map[int]int)
	}
	if g.Stats.ResourceGains == nil {
		g.Stats.ResourceGains = make(map[PlayerID]Resources)
	}

	for _, p := range g.Players {
		if p.Ports.TwoToOne == nil {
			p.Ports.TwoToOne = make(map[board.Resource]bool)
		}
		if p.DevCards == nil {
			p.DevCards = []DevCard{}
		}
		if _, ok := g.Stats.ResourceGains[p.ID]; !ok {
			g.Stats.ResourceGains[p.ID] = Resources{}
		}
		p.LongestRoadAward = p.ID == g.LongestRoadPlayerID
	}

	g.graph = nil
}
