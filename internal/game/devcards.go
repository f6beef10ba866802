package game

import (
	"slices"

	"github.com/settlersonline/api/internal/board"
)

// DevPayload carries the choices for Year of Plenty (R1, R2) and Monopoly
// (Resource).
type DevPayload struct {
	R1       board.Resource `json:"r1,omitempty"`
	R2       board.Resource `json:"r2,omitempty"`
	Resource board.Resource `json:"resource,omitempty"`
}

// BuyDevCard draws the top card of the deck. Victory cards score at once.
func (g *Game) BuyDevCard(pid PlayerID) (DevCard, error) {
	if err := g.requirePhase(PhaseMain, "buying a development card"); err != nil {
		return DevCard{}, err
	}
	p, err := g.requireTurn(pid)
	if err != nil {
		return DevCard{}, err
	}
	if err := g.requireRolled(); err != nil {
		return DevCard{}, err
	}
	if len(g.DevDeck) == 0 {
		return DevCard{}, reject(CodeStaleAction, "the development deck is empty")
	}
	if err := requireResources(p, DevCardCost); err != nil {
		return DevCard{}, err
	}

	p.Resources.Minus(DevCardCost)
	kind := g.DevDeck[0]
	g.DevDeck = g.DevDeck[1:]
	card := DevCard{ID: g.runtime().NewID(), Kind: kind, BoughtTurn: g.TurnNumber}
	p.DevCards = append(p.DevCards, card)
	if kind == VictoryPoint {
		p.VictoryPoints++
	}
	g.addLog("%s bought a development card.", p.Name)
	return card, nil
}

// PlayDevCard plays one of the player's non-victory cards. At most one card
// is played per turn and never on the turn it was bought.
func (g *Game) PlayDevCard(pid PlayerID, cardID string, payload DevPayload) error {
	if err := g.requirePhase(PhaseMain, "playing a development card"); err != nil {
		return err
	}
	p, err := g.requireTurn(pid)
	if err != nil {
		return err
	}
	if err := g.requireRolled(); err != nil {
		return err
	}
	if g.DevPlayedThisTurn {
		return reject(CodeStaleAction, "you already played a development card this turn")
	}
	if g.Robber.Pending {
		return reject(CodeStaleAction, "resolve the robber first")
	}

	idx := -1
	for i, c := range p.DevCards {
		if c.ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return reject(CodeInvalidTarget, "you do not have that development card")
	}
	card := p.DevCards[idx]
	if card.Kind == VictoryPoint {
		return reject(CodeStaleAction, "victory point cards are not played")
	}
	if card.BoughtTurn >= g.TurnNumber {
		return reject(CodeStaleAction, "a card cannot be played on the turn it was bought")
	}

	switch card.Kind {
	case YearOfPlenty:
		if !payload.R1.Valid() || !payload.R2.Valid() {
			return reject(CodeInvalidTarget, "choose two valid resources")
		}
	case Monopoly:
		if !payload.Resource.Valid() {
			return reject(CodeInvalidTarget, "choose a valid resource")
		}
	case Knight, RoadBuilding:
	default:
		return reject(CodeInvalidTarget, "unknown development card %q", card.Kind)
	}

	p.DevCards = slices.Delete(p.DevCards, idx, idx+1)
	g.DevPlayedThisTurn = true

	switch card.Kind {
	case RoadBuilding:
		p.FreeRoadsToPlace += 2
		g.addLog("%s played Road Building (+2 free roads).", p.Name)
	case YearOfPlenty:
		p.Resources.Add(payload.R1, 1)
		p.Resources.Add(payload.R2, 1)
		g.addLog("%s played Year of Plenty (+1 %s, +1 %s).", p.Name, payload.R1, payload.R2)
	case Monopoly:
		res := payload.Resource
		taken := 0
		for _, other := range g.Players {
			if other.ID == pid {
				continue
			}
			taken += other.Resources.Get(res)
			other.Resources.Set(res, 0)
		}
		p.Resources.Add(res, taken)
		g.addLog("%s played Monopoly on %s (+%d).", p.Name, res, taken)
	case Knight:
		p.KnightsPlayed++
		g.startRobber(pid, ReasonKnight)
		g.addLog("%s played a Knight and must move the robber.", p.Name)
		g.updateLargestArmy(p)
	}
	return nil
}

func (g *Game) updateLargestArmy(p *Player) {
	size := p.KnightsPlayed
	if g.LargestArmyPlayerID == p.ID {
		g.LargestArmySize = max(g.LargestArmySize, size)
		return
	}
	if size < largestArmyMin || size <= g.LargestArmySize {
		return
	}
	if old := g.Player(g.LargestArmyPlayerID); old != nil {
		old.VictoryPoints -= 2
	}
	p.VictoryPoints += 2
	g.LargestArmyPlayerID = p.ID
	g.LargestArmySize = size
	g.addLog("%s now holds Largest Army (+2 VP).", p.Name)
}
