package game

import "github.com/settlersonline/api/internal/board"

func (g *Game) startRobber(pid PlayerID, reason RobberReason) {
	g.Robber = Robber{Pending: true, ByPlayerID: pid, Reason: reason, Candidates: []PlayerID{}}
}

func (g *Game) clearRobber() {
	g.Robber = Robber{Candidates: []PlayerID{}}
}

func (g *Game) requireMover(pid PlayerID) (*Player, error) {
	p, err := g.requirePlayer(pid)
	if err != nil {
		return nil, err
	}
	if !g.Robber.Pending {
		return nil, reject(CodeStaleAction, "the robber is not waiting to move")
	}
	if g.Robber.ByPlayerID != pid {
		return nil, reject(CodeNotYourTurn, "only the player who triggered the robber can move it")
	}
	return p, nil
}

// MoveRobber moves the robber to tileID. If some other player with cards
// owns a building on the tile, the mover must then steal.
func (g *Game) MoveRobber(pid PlayerID, tileID string) error {
	if err := g.requirePhase(PhaseMain, "moving the robber"); err != nil {
		return err
	}
	p, err := g.requireMover(pid)
	if err != nil {
		return err
	}
	if g.Robber.AwaitingSteal {
		return reject(CodeStaleAction, "the robber has already moved; choose who to steal from")
	}
	target := g.tile(tileID)
	if target == nil {
		return reject(CodeInvalidTarget, "unknown tile")
	}
	if target.HasRobber {
		return reject(CodeIllegalPlacement, "the robber must move to a different tile")
	}

	for i := range g.Tiles {
		g.Tiles[i].HasRobber = false
	}
	target.HasRobber = true

	corners := g.tileCorners(*target)
	adjacent := make(map[PlayerID]bool)
	for _, n := range g.Nodes {
		if n.PlayerID != pid && containsNode(corners, n.NodeID) {
			adjacent[n.PlayerID] = true
		}
	}
	candidates := []PlayerID{}
	for _, other := range g.Players {
		if adjacent[other.ID] && other.Resources.Total() > 0 {
			candidates = append(candidates, other.ID)
		}
	}

	if len(candidates) == 0 {
		g.clearRobber()
		g.addLog("%s moved the robber. Nobody to steal from.", p.Name)
		return nil
	}
	g.Robber.AwaitingSteal = true
	g.Robber.Candidates = candidates
	g.addLog("%s moved the robber and is choosing a victim.", p.Name)
	return nil
}

// RobberSteal takes one card of res from a steal candidate. An empty res
// takes a random card from the victim's hand.
func (g *Game) RobberSteal(pid, targetID PlayerID, res board.Resource) error {
	if err := g.requirePhase(PhaseMain, "stealing"); err != nil {
		return err
	}
	p, err := g.requireMover(pid)
	if err != nil {
		return err
	}
	if !g.Robber.AwaitingSteal {
		return reject(CodeStaleAction, "move the robber before stealing")
	}
	if res != "" && !res.Valid() {
		return reject(CodeInvalidTarget, "unknown resource %q", res)
	}
	isCandidate := false
	for _, c := range g.Robber.Candidates {
		if c == targetID {
			isCandidate = true
		}
	}
	victim := g.Player(targetID)
	if !isCandidate || victim == nil {
		return reject(CodeInvalidTarget, "you cannot steal from that player")
	}
	if res == "" {
		if victim.Resources.Total() == 0 {
			return reject(CodeInvalidTarget, "%s has no cards", victim.Name)
		}
		res = pickCard(victim.Resources, g.runtime().IntN)
	}
	if victim.Resources.Get(res) <= 0 {
		return reject(CodeInvalidTarget, "%s holds no %s", victim.Name, res)
	}

	victim.Resources.Add(res, -1)
	p.Resources.Add(res, 1)
	g.clearRobber()
	g.addLog("%s stole %s from %s.", p.Name, res, victim.Name)
	return nil
}
