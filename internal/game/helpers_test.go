package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settlersonline/api/internal/board"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// testRuntime rolls 2+3, always picks the first card and numbers ids.
func testRuntime() Runtime {
	n := 0
	return Runtime{
		Dice:  func() (int, int) { return 2, 3 },
		IntN:  func(int) int { return 0 },
		NewID: func() string { n++; return fmt.Sprintf("id%03d", n) },
		Now:   func() time.Time { return testNow },
	}
}

func setDice(g *Game, d1, d2 int) {
	rt := g.runtime()
	rt.Dice = func() (int, int) { return d1, d2 }
	g.Attach(rt)
}

func newLobby(t *testing.T, names ...string) (*Game, []PlayerID) {
	t.Helper()
	g, err := New("game-1", DefaultSettings(), testRuntime())
	require.NoError(t, err)
	ids := make([]PlayerID, 0, len(names))
	for _, name := range names {
		pid, err := g.Join(name)
		require.NoError(t, err)
		ids = append(ids, pid)
	}
	return g, ids
}

func newStarted(t *testing.T, names ...string) (*Game, []PlayerID) {
	t.Helper()
	g, ids := newLobby(t, names...)
	started, err := g.StartIfEligible()
	require.NoError(t, err)
	require.True(t, started)
	return g, ids
}

// newMainGame plays the whole setup draft and returns a game on turn 1.
func newMainGame(t *testing.T, names ...string) (*Game, []PlayerID) {
	t.Helper()
	g, ids := newStarted(t, names...)
	playSetup(t, g)
	require.Equal(t, PhaseMain, g.Phase)
	return g, ids
}

// emptyBoardGame skips setup entirely: main phase, turn 1, nothing built.
func emptyBoardGame(t *testing.T, names ...string) (*Game, []PlayerID) {
	t.Helper()
	g, ids := newStarted(t, names...)
	g.Phase = PhaseMain
	g.CurrentPlayerID = ids[0]
	g.resetTurnState()
	return g, ids
}

func firstLegalNode(t *testing.T, g *Game) string {
	t.Helper()
	occupied := g.occupiedNodes()
	for _, n := range g.Graph().Nodes {
		if g.Graph().DistanceOK(n.ID, occupied) {
			return n.ID
		}
	}
	t.Fatal("no legal node left")
	return ""
}

func freeEdgeFrom(t *testing.T, g *Game, nodeID string) string {
	t.Helper()
	for _, nb := range g.Graph().Neighbors[nodeID] {
		if eid := board.EdgeID(nodeID, nb); !g.edgeTaken(eid) {
			return eid
		}
	}
	t.Fatalf("no free edge at %s", nodeID)
	return ""
}

// playSetup completes the snake draft and returns who placed, in order.
func playSetup(t *testing.T, g *Game) []PlayerID {
	t.Helper()
	var order []PlayerID
	for g.Phase == PhaseSetup {
		require.Less(t, len(order), 2*len(g.Players), "setup did not finish")
		pid := g.CurrentPlayerID
		order = append(order, pid)
		node := firstLegalNode(t, g)
		require.NoError(t, g.PlaceSettlement(pid, node))
		require.NoError(t, g.PlaceRoad(pid, freeEdgeFrom(t, g, node)))
	}
	return order
}

// quietBoard removes every number token so that rolls produce nothing.
func quietBoard(g *Game) {
	for i := range g.Tiles {
		g.Tiles[i].NumberToken = 0
	}
}

func ownNodes(g *Game, pid PlayerID) []string {
	var out []string
	for _, n := range g.Nodes {
		if n.PlayerID == pid {
			out = append(out, n.NodeID)
		}
	}
	return out
}

func corners(t *testing.T, g *Game, h board.Hex) [6]string {
	t.Helper()
	ids, ok := g.Graph().HexNodes(h)
	require.True(t, ok, "hex %v not on the board", h)
	return ids
}

func hexEdge(t *testing.T, g *Game, h board.Hex, i int) string {
	t.Helper()
	e, ok := g.Graph().HexEdge(h, i)
	require.True(t, ok)
	return e.ID
}

// tileTouching returns a robber-free tile that has one of nodes as a corner.
func tileTouching(t *testing.T, g *Game, nodes []string) *board.Tile {
	t.Helper()
	for _, n := range nodes {
		for i := range g.Tiles {
			tl := &g.Tiles[i]
			if !tl.HasRobber && containsNode(g.tileCorners(*tl), n) {
				return tl
			}
		}
	}
	t.Fatal("no robber-free tile touches the given nodes")
	return nil
}

func placeSettlement(g *Game, pid PlayerID, nodeID string) {
	g.Nodes = append(g.Nodes, NodePlacement{NodeID: nodeID, PlayerID: pid, Kind: Settlement})
	p := g.Player(pid)
	p.Settlements++
	p.VictoryPoints++
}

func placeRoads(g *Game, pid PlayerID, edgeIDs ...string) {
	for _, e := range edgeIDs {
		g.Edges = append(g.Edges, EdgePlacement{EdgeID: e, PlayerID: pid})
		g.Player(pid).Roads++
	}
}

// assertVictoryPoints checks every cached total against the board and awards.
func assertVictoryPoints(t *testing.T, g *Game) {
	t.Helper()
	for _, p := range g.Players {
		want := p.HiddenVictoryPoints()
		for _, n := range g.Nodes {
			if n.PlayerID != p.ID {
				continue
			}
			want++
			if n.Kind == City {
				want++
			}
		}
		if g.LongestRoadPlayerID == p.ID {
			want += 2
		}
		if g.LargestArmyPlayerID == p.ID {
			want += 2
		}
		assert.Equal(t, want, p.VictoryPoints, "victory points of %s", p.Name)
	}
}
