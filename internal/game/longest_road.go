package game

// LongestRoadFor returns the number of edges in the player's longest simple
// road. A path may end at an opponent's building but not pass through it.
func (g *Game) LongestRoadFor(pid PlayerID) int {
	graph := g.Graph()

	blocked := make(map[string]bool)
	for _, n := range g.Nodes {
		if n.PlayerID != pid {
			blocked[n.NodeID] = true
		}
	}

	w := roadWalker{
		adj:     make(map[string][]roadStep),
		blocked: blocked,
		used:    make(map[string]bool),
	}
	var starts []string
	for _, own := range g.Edges {
		if own.PlayerID != pid {
			continue
		}
		e, ok := graph.Edge(own.EdgeID)
		if !ok {
			continue
		}
		for _, end := range []string{e.A, e.B} {
			if _, seen := w.adj[end]; !seen {
				starts = append(starts, end)
			}
		}
		w.adj[e.A] = append(w.adj[e.A], roadStep{to: e.B, edge: e.ID})
		w.adj[e.B] = append(w.adj[e.B], roadStep{to: e.A, edge: e.ID})
	}

	for _, start := range starts {
		w.walk(start, 0)
	}
	return w.best
}

type roadStep struct{ to, edge string }

// roadWalker is a depth-first search over one player's roads. used holds the
// edges on the current path and is restored on backtrack.
type roadWalker struct {
	adj     map[string][]roadStep
	blocked map[string]bool
	used    map[string]bool
	best    int
}

func (w *roadWalker) walk(node string, length int) {
	w.best = max(w.best, length)
	if length > 0 && w.blocked[node] {
		return
	}
	for _, s := range w.adj[node] {
		if w.used[s.edge] {
			continue
		}
		w.used[s.edge] = true
		w.walk(s.to, length+1)
		delete(w.used, s.edge)
	}
}

// RecomputeLongestRoad re-derives the Longest Road holder from the board.
// Running it again without a board change is a no-op.
func (g *Game) RecomputeLongestRoad() {
	maxLen := 0
	var leaders []PlayerID
	for _, p := range g.Players {
		n := g.LongestRoadFor(p.ID)
		switch {
		case n > maxLen:
			maxLen = n
			leaders = []PlayerID{p.ID}
		case n == maxLen:
			leaders = append(leaders, p.ID)
		}
	}

	holder := g.LongestRoadPlayerID

	if maxLen < longestRoadMin {
		if holder != "" {
			g.setLongestRoad("", 0)
		}
		return
	}

	if len(leaders) > 1 {
		for _, l := range leaders {
			if l == holder {
				g.LongestRoadLength = max(g.LongestRoadLength, maxLen)
			}
		}
		return
	}

	leader := leaders[0]
	if leader == holder {
		g.LongestRoadLength = max(g.LongestRoadLength, maxLen)
		return
	}
	if holder != "" && maxLen <= g.LongestRoadLength {
		return
	}
	g.setLongestRoad(leader, maxLen)
}

func (g *Game) setLongestRoad(pid PlayerID, length int) {
	if old := g.Player(g.LongestRoadPlayerID); old != nil {
		old.VictoryPoints -= 2
		old.LongestRoadAward = false
	}
	g.LongestRoadPlayerID = pid
	g.LongestRoadLength = length
	if p := g.Player(pid); p != nil {
		p.VictoryPoints += 2
		p.LongestRoadAward = true
		g.addLog("%s now holds Longest Road (+2 VP).", p.Name)
	}
}
