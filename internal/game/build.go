package game

import "github.com/settlersonline/api/internal/board"

var (
	RoadCost       = Resources{Wood: 1, Brick: 1}
	SettlementCost = Resources{Wood: 1, Brick: 1, Wheat: 1, Sheep: 1}
	CityCost       = Resources{Wheat: 2, Ore: 3}
	DevCardCost    = Resources{Wheat: 1, Sheep: 1, Ore: 1}
)

func requireResources(p *Player, cost Resources) error {
	for _, res := range board.Resources {
		have, need := p.Resources.Get(res), cost.Get(res)
		if have < need {
			return reject(CodeInsufficientResources, "not enough %s (%d/%d)", res, have, need)
		}
	}
	return nil
}

// BuildRoad builds a road on edgeID. A free road credit from Road Building
// waives the cost but not the connection rule.
func (g *Game) BuildRoad(pid PlayerID, edgeID string) error {
	if err := g.requirePhase(PhaseMain, "building a road"); err != nil {
		return err
	}
	p, err := g.requireTurn(pid)
	if err != nil {
		return err
	}
	free := p.FreeRoadsToPlace > 0
	if !free {
		if err := requireResources(p, RoadCost); err != nil {
			return err
		}
	}
	if err := g.canBuildRoad(pid, edgeID); err != nil {
		return err
	}

	if free {
		p.FreeRoadsToPlace--
		g.addLog("%s built a free road.", p.Name)
	} else {
		p.Resources.Minus(RoadCost)
		g.addLog("%s built a road.", p.Name)
	}
	g.Edges = append(g.Edges, EdgePlacement{EdgeID: edgeID, PlayerID: pid})
	p.Roads++
	g.RecomputeLongestRoad()
	return nil
}

func (g *Game) canBuildRoad(pid PlayerID, edgeID string) error {
	if g.edgeTaken(edgeID) {
		return reject(CodeIllegalPlacement, "that edge already has a road")
	}
	graph := g.Graph()
	e, ok := graph.Edge(edgeID)
	if !ok {
		return reject(CodeIllegalPlacement, "unknown edge")
	}

	for _, n := range g.Nodes {
		if n.PlayerID == pid && e.Has(n.NodeID) {
			return nil
		}
	}
	for _, own := range g.Edges {
		if own.PlayerID != pid {
			continue
		}
		oe, ok := graph.Edge(own.EdgeID)
		if ok && (oe.Has(e.A) || oe.Has(e.B)) {
			return nil
		}
	}
	return reject(CodeIllegalPlacement, "a road must connect to your own road or building")
}

// BuildSettlement builds a settlement on nodeID, which must obey the distance
// rule and touch one of the player's roads.
func (g *Game) BuildSettlement(pid PlayerID, nodeID string) error {
	if err := g.requirePhase(PhaseMain, "building a settlement"); err != nil {
		return err
	}
	p, err := g.requireTurn(pid)
	if err != nil {
		return err
	}
	if err := requireResources(p, SettlementCost); err != nil {
		return err
	}
	graph := g.Graph()
	if !graph.HasNode(nodeID) {
		return reject(CodeIllegalPlacement, "unknown node")
	}
	if !graph.DistanceOK(nodeID, g.occupiedNodes()) {
		return reject(CodeIllegalPlacement, "that spot is taken or too close to another building")
	}
	if !g.hasRoadAt(pid, nodeID) {
		return reject(CodeIllegalPlacement, "a settlement must connect to your own road")
	}

	p.Resources.Minus(SettlementCost)
	g.Nodes = append(g.Nodes, NodePlacement{NodeID: nodeID, PlayerID: pid, Kind: Settlement})
	p.Settlements++
	p.VictoryPoints++
	g.grantPorts(p, nodeID)
	g.addLog("%s built a settlement.", p.Name)
	// A new building can cut an opponent's road.
	g.RecomputeLongestRoad()
	return nil
}

func (g *Game) hasRoadAt(pid PlayerID, nodeID string) bool {
	graph := g.Graph()
	for _, own := range g.Edges {
		if own.PlayerID != pid {
			continue
		}
		if e, ok := graph.Edge(own.EdgeID); ok && e.Has(nodeID) {
			return true
		}
	}
	return false
}

// BuildCity upgrades one of the player's settlements.
func (g *Game) BuildCity(pid PlayerID, nodeID string) error {
	if err := g.requirePhase(PhaseMain, "building a city"); err != nil {
		return err
	}
	p, err := g.requireTurn(pid)
	if err != nil {
		return err
	}
	if err := requireResources(p, CityCost); err != nil {
		return err
	}
	n := g.nodeAt(nodeID)
	switch {
	case n == nil:
		return reject(CodeIllegalPlacement, "there is no settlement here")
	case n.PlayerID != pid:
		return reject(CodeStaleAction, "you can only upgrade your own settlement")
	case n.Kind != Settlement:
		return reject(CodeStaleAction, "this is already a city")
	}

	p.Resources.Minus(CityCost)
	n.Kind = City
	p.Cities++
	p.Settlements--
	p.VictoryPoints++
	g.addLog("%s upgraded a settlement to a city.", p.Name)
	g.RecomputeLongestRoad()
	return nil
}

// grantPorts gives p every harbor touching nodeID.
func (g *Game) grantPorts(p *Player, nodeID string) {
	if p.Ports.TwoToOne == nil {
		p.Ports.TwoToOne = make(map[board.Resource]bool)
	}
	for _, port := range g.Ports {
		if !port.Touches(nodeID) {
			continue
		}
		if port.Kind == board.ThreeToOne {
			if !p.Ports.ThreeToOne {
				p.Ports.ThreeToOne = true
				g.addLog("%s gained a 3:1 harbor.", p.Name)
			}
			continue
		}
		if res, ok := port.Kind.Resource(); ok && !p.Ports.TwoToOne[res] {
			p.Ports.TwoToOne[res] = true
			g.addLog("%s gained a 2:1 %s harbor.", p.Name, res)
		}
	}
}
