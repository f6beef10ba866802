package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settlersonline/api/internal/board"
)

var (
	// Two hexes that share no corner.
	homeHex = board.Hex{}
	farHex  = board.Hex{Q: 2, R: -2}
)

// ring returns the edges of h from corner 0 onwards.
func ring(t *testing.T, g *Game, h board.Hex, n int) []string {
	t.Helper()
	out := make([]string, n)
	for i := range n {
		out[i] = hexEdge(t, g, h, i)
	}
	return out
}

func TestLongestRoadFor(t *testing.T) {
	g, ids := emptyBoardGame(t, "Ann", "Ben")
	a, b := ids[0], ids[1]
	c := corners(t, g, homeHex)

	assert.Zero(t, g.LongestRoadFor(a))

	placeRoads(g, a, ring(t, g, homeHex, 5)...)
	assert.Equal(t, 5, g.LongestRoadFor(a))

	placeSettlement(g, a, c[2])
	assert.Equal(t, 5, g.LongestRoadFor(a), "own buildings do not block")

	g.Nodes = nil
	placeSettlement(g, b, c[2])
	assert.Equal(t, 3, g.LongestRoadFor(a), "an opponent's building splits the road")
	assert.Zero(t, g.LongestRoadFor(b))
}

func TestLongestRoadClosedLoop(t *testing.T) {
	g, ids := emptyBoardGame(t, "Ann", "Ben")
	placeRoads(g, ids[0], ring(t, g, homeHex, 6)...)
	assert.Equal(t, 6, g.LongestRoadFor(ids[0]))
}

func TestLongestRoadBranches(t *testing.T) {
	g, ids := emptyBoardGame(t, "Ann", "Ben")
	a := ids[0]
	c := corners(t, g, homeHex)
	placeRoads(g, a, ring(t, g, homeHex, 3)...)

	// A spur off corner 1 that leads away from the hex.
	var spur string
	for _, nb := range g.Graph().Neighbors[c[1]] {
		if nb != c[0] && nb != c[2] {
			spur = board.EdgeID(c[1], nb)
		}
	}
	require.NotEmpty(t, spur)
	placeRoads(g, a, spur)

	assert.Equal(t, 3, g.LongestRoadFor(a), "a fork counts only one branch")
}

func TestRecomputeLongestRoad(t *testing.T) {
	g, ids := emptyBoardGame(t, "Ann", "Ben")
	a, b := ids[0], ids[1]
	pa, pb := g.Player(a), g.Player(b)

	placeRoads(g, a, ring(t, g, homeHex, 4)...)
	g.RecomputeLongestRoad()
	assert.Empty(t, g.LongestRoadPlayerID, "four roads are not enough")

	placeRoads(g, a, hexEdge(t, g, homeHex, 4))
	g.RecomputeLongestRoad()
	assert.Equal(t, a, g.LongestRoadPlayerID)
	assert.Equal(t, 5, g.LongestRoadLength)
	assert.Equal(t, 2, pa.VictoryPoints)
	assert.True(t, pa.LongestRoadAward)

	g.RecomputeLongestRoad()
	g.RecomputeLongestRoad()
	assert.Equal(t, a, g.LongestRoadPlayerID)
	assert.Equal(t, 5, g.LongestRoadLength)
	assert.Equal(t, 2, pa.VictoryPoints, "recomputing does not pay twice")

	placeRoads(g, b, ring(t, g, farHex, 5)...)
	g.RecomputeLongestRoad()
	assert.Equal(t, a, g.LongestRoadPlayerID, "the holder keeps a tie")
	assert.Zero(t, pb.VictoryPoints)

	placeRoads(g, b, hexEdge(t, g, farHex, 5))
	g.RecomputeLongestRoad()
	assert.Equal(t, b, g.LongestRoadPlayerID)
	assert.Equal(t, 6, g.LongestRoadLength)
	assert.Equal(t, 0, pa.VictoryPoints)
	assert.Equal(t, 2, pb.VictoryPoints)
	assert.False(t, pa.LongestRoadAward)
	assert.True(t, pb.LongestRoadAward)
	assertVictoryPoints(t, g)
}

func TestLongestRoadTieWithoutHolder(t *testing.T) {
	g, ids := emptyBoardGame(t, "Ann", "Ben")
	placeRoads(g, ids[0], ring(t, g, homeHex, 5)...)
	placeRoads(g, ids[1], ring(t, g, farHex, 5)...)

	g.RecomputeLongestRoad()
	assert.Empty(t, g.LongestRoadPlayerID)
	assert.Zero(t, g.Player(ids[0]).VictoryPoints)
	assert.Zero(t, g.Player(ids[1]).VictoryPoints)
}

func TestSettlementCutsLongestRoad(t *testing.T) {
	g, ids := emptyBoardGame(t, "Ann", "Ben")
	a, b := ids[0], ids[1]
	c := corners(t, g, homeHex)
	placeRoads(g, a, ring(t, g, homeHex, 5)...)
	g.RecomputeLongestRoad()
	require.Equal(t, a, g.LongestRoadPlayerID)

	// Ben reaches corner 2 from outside the hex and settles there.
	var outside string
	for _, nb := range g.Graph().Neighbors[c[2]] {
		if nb != c[1] && nb != c[3] {
			outside = nb
		}
	}
	require.NotEmpty(t, outside)
	placeRoads(g, b, board.EdgeID(c[2], outside))
	g.CurrentPlayerID = b
	g.Player(b).Resources = SettlementCost

	require.NoError(t, g.BuildSettlement(b, c[2]))
	assert.Empty(t, g.LongestRoadPlayerID, "three roads left on either side")
	assert.Zero(t, g.Player(a).VictoryPoints)
	assertVictoryPoints(t, g)
}
