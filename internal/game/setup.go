package game

import (
	"fmt"
	"strings"

	"github.com/settlersonline/api/internal/board"
)

// PlaceSettlement places a free setup settlement. The second settlement of
// the snake draft pays one card per adjacent producing tile.
func (g *Game) PlaceSettlement(pid PlayerID, nodeID string) error {
	if err := g.requirePhase(PhaseSetup, "placing a setup settlement"); err != nil {
		return err
	}
	if g.SetupStep != StepPlaceSettlement {
		return reject(CodeWrongSetupStep, "place a road next")
	}
	p, err := g.requireTurn(pid)
	if err != nil {
		return err
	}
	done := g.Setup.Done[pid]
	if done >= 2 {
		return reject(CodeStaleAction, "you have already placed both setup settlements")
	}
	graph := g.Graph()
	if !graph.HasNode(nodeID) {
		return reject(CodeIllegalPlacement, "unknown node")
	}
	if !graph.DistanceOK(nodeID, g.occupiedNodes()) {
		return reject(CodeIllegalPlacement, "that spot is taken or too close to another building")
	}

	g.Nodes = append(g.Nodes, NodePlacement{NodeID: nodeID, PlayerID: pid, Kind: Settlement})
	p.Settlements++
	p.VictoryPoints++
	g.grantPorts(p, nodeID)

	if g.Setup.Round == 2 && done == 1 {
		g.grantStartingResources(p, nodeID)
	}

	g.Setup.PendingSettlementNodeID = nodeID
	g.SetupStep = StepPlaceRoad
	g.addLog("%s placed a settlement.", p.Name)
	return nil
}

func (g *Game) grantStartingResources(p *Player, nodeID string) {
	var gains Resources
	for _, t := range g.Tiles {
		if t.HasRobber {
			continue
		}
		res, ok := t.Type.Resource()
		if !ok || !containsNode(g.tileCorners(t), nodeID) {
			continue
		}
		gains.Add(res, 1)
	}

	if gains.Total() == 0 {
		g.addLog("%s received no starting resources.", p.Name)
		return
	}
	p.Resources.Plus(gains)
	for _, res := range board.Resources {
		if n := gains.Get(res); n > 0 {
			g.recordGain(p.ID, res, n)
		}
	}
	g.addLog("%s received starting resources: %s.", p.Name, describe(gains))
}

// PlaceRoad places the free setup road, which must touch the settlement just
// placed, and advances the snake order.
func (g *Game) PlaceRoad(pid PlayerID, edgeID string) error {
	if err := g.requirePhase(PhaseSetup, "placing a setup road"); err != nil {
		return err
	}
	if g.SetupStep != StepPlaceRoad {
		return reject(CodeWrongSetupStep, "place a settlement first")
	}
	p, err := g.requireTurn(pid)
	if err != nil {
		return err
	}
	if g.edgeTaken(edgeID) {
		return reject(CodeIllegalPlacement, "that edge already has a road")
	}
	e, ok := g.Graph().Edge(edgeID)
	if !ok {
		return reject(CodeIllegalPlacement, "unknown edge")
	}
	pending := g.Setup.PendingSettlementNodeID
	if pending == "" || !e.Has(pending) {
		return reject(CodeIllegalPlacement, "a setup road must touch the settlement you just placed")
	}

	g.Edges = append(g.Edges, EdgePlacement{EdgeID: edgeID, PlayerID: pid})
	p.Roads++
	g.addLog("%s placed a road.", p.Name)
	g.RecomputeLongestRoad()

	g.Setup.Done[pid]++
	g.Setup.PendingSettlementNodeID = ""
	g.SetupStep = StepPlaceSettlement
	g.advanceSetup(g.playerIndex(pid))
	return nil
}

func (g *Game) advanceSetup(idx int) {
	last := len(g.Players) - 1

	if g.Setup.Direction == Forward {
		if idx == last {
			g.Setup.Direction = Backward
			g.Setup.Round = 2
			g.CurrentPlayerID = g.Players[last].ID
			g.addLog("Setup round 2 (reverse order): %s to place.", g.Players[last].Name)
			return
		}
		g.CurrentPlayerID = g.Players[idx+1].ID
		g.addLog("Next: %s.", g.Players[idx+1].Name)
		return
	}

	if idx > 0 {
		g.CurrentPlayerID = g.Players[idx-1].ID
		g.addLog("Next: %s.", g.Players[idx-1].Name)
		return
	}

	for _, pl := range g.Players {
		if g.Setup.Done[pl.ID] < 2 {
			// Unreachable with a consistent snake; keep the first seat to move.
			g.CurrentPlayerID = g.Players[0].ID
			return
		}
	}
	g.Phase = PhaseMain
	g.CurrentPlayerID = g.Players[0].ID
	g.resetTurnState()
	g.addLog("Setup complete. Main game starts with %s.", g.Players[0].Name)
}

// describe renders a resource bundle as "+1 wood, +2 ore".
func describe(r Resources) string {
	var parts []string
	for _, res := range board.Resources {
		if n := r.Get(res); n > 0 {
			parts = append(parts, fmt.Sprintf("+%d %s", n, res))
		}
	}
	return strings.Join(parts, ", ")
}
