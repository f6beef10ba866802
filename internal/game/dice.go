package game

import (
	"fmt"
	"strings"

	"github.com/settlersonline/api/internal/board"
)

// RollDice rolls for the current player. A seven makes every player over
// seven cards discard half (rounded down) and puts the robber in play;
// anything else pays out matching tiles.
func (g *Game) RollDice(pid PlayerID) (Roll, error) {
	if err := g.requirePhase(PhaseMain, "rolling"); err != nil {
		return Roll{}, err
	}
	p, err := g.requireTurn(pid)
	if err != nil {
		return Roll{}, err
	}
	if g.TurnHasRolled {
		return Roll{}, reject(CodeStaleAction, "you already rolled this turn")
	}

	d1, d2 := g.runtime().Dice()
	roll := Roll{At: g.now(), PlayerID: pid, D1: d1, D2: d2, Sum: d1 + d2}
	g.LastRoll = &roll
	g.TurnHasRolled = true
	g.Stats.RollCounts[roll.Sum]++
	g.addLog("%s rolled %d (%d+%d).", p.Name, roll.Sum, d1, d2)

	if roll.Sum == 7 {
		g.discardHalves()
		g.startRobber(pid, ReasonRoll7)
		g.addLog("Seven rolled: %s must move the robber.", p.Name)
		return roll, nil
	}

	g.distribute(roll.Sum)
	return roll, nil
}

// discardHalves removes floor(n/2) random cards from every hand over the
// limit. Each card is picked uniformly from the cards still held.
func (g *Game) discardHalves() {
	intn := g.runtime().IntN
	for _, p := range g.Players {
		total := p.Resources.Total()
		if total <= discardThreshold {
			continue
		}
		n := total / 2
		var lost Resources
		for range n {
			res := pickCard(p.Resources, intn)
			p.Resources.Add(res, -1)
			lost.Add(res, 1)
		}
		g.addLog("%s had %d cards and discarded %d (%s).", p.Name, total, n, strings.ReplaceAll(describe(lost), "+", "-"))
	}
}

// pickCard returns a resource chosen with probability proportional to the
// count held. The hand must not be empty.
func pickCard(hand Resources, intn func(int) int) board.Resource {
	k := intn(hand.Total())
	for _, res := range board.Resources {
		k -= hand.Get(res)
		if k < 0 {
			return res
		}
	}
	return board.Resources[len(board.Resources)-1]
}

func (g *Game) distribute(sum int) {
	payouts := make(map[PlayerID]*Resources)
	for _, t := range g.Tiles {
		if t.NumberToken != sum || t.HasRobber {
			continue
		}
		res, ok := t.Type.Resource()
		if !ok {
			continue
		}
		corners := g.tileCorners(t)
		for _, n := range g.Nodes {
			if !containsNode(corners, n.NodeID) {
				continue
			}
			owner := g.Player(n.PlayerID)
			if owner == nil {
				continue
			}
			amount := 1
			if n.Kind == City {
				amount = 2
			}
			owner.Resources.Add(res, amount)
			g.recordGain(owner.ID, res, amount)
			if payouts[owner.ID] == nil {
				payouts[owner.ID] = &Resources{}
			}
			payouts[owner.ID].Add(res, amount)
		}
	}

	var parts []string
	for _, p := range g.Players {
		if got := payouts[p.ID]; got != nil {
			parts = append(parts, fmt.Sprintf("%s: %s", p.Name, describe(*got)))
		}
	}
	if len(parts) == 0 {
		g.addLog("Production (%d): nobody collects.", sum)
		return
	}
	g.addLog("Production (%d): %s", sum, strings.Join(parts, " · "))
}

// EndTurn passes play to the next seat.
func (g *Game) EndTurn(pid PlayerID) error {
	if err := g.requirePhase(PhaseMain, "ending the turn"); err != nil {
		return err
	}
	if _, err := g.requireTurn(pid); err != nil {
		return err
	}
	if err := g.requireRolled(); err != nil {
		return err
	}
	if g.Robber.Pending {
		return reject(CodeStaleAction, "move the robber before ending your turn")
	}

	next := g.Players[(g.playerIndex(pid)+1)%len(g.Players)]
	g.CurrentPlayerID = next.ID
	g.TurnHasRolled = false
	g.DevPlayedThisTurn = false
	g.TurnNumber++
	g.pruneOffers()
	g.addLog("Turn over. Next: %s.", next.Name)
	return nil
}
