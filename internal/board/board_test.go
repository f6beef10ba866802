package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeCounts(t *testing.T) {
	tests := []struct {
		mapType MapType
		want    int
	}{
		{Classic, 19},
		{Large, 37},
		{Islands, 42},
		{World, 58},
	}
	for _, tt := range tests {
		t.Run(string(tt.mapType), func(t *testing.T) {
			hexes, err := ShapeCoords(tt.mapType)
			require.NoError(t, err)
			assert.Len(t, hexes, tt.want)
			assert.Len(t, Dedup(hexes), tt.want, "shape must not contain duplicates")
		})
	}

	_, err := ShapeCoords(Custom)
	assert.Error(t, err)
}

func TestGraphSizes(t *testing.T) {
	g := BuildGraph(RadiusCoords(2), HexSize)
	assert.Len(t, g.Nodes, 54)
	assert.Len(t, g.Edges, 72)

	g = BuildGraph(RadiusCoords(3), HexSize)
	assert.Len(t, g.Nodes, 96)
	assert.Len(t, g.Edges, 132)

	g = BuildGraph([]Hex{{0, 0}}, HexSize)
	assert.Len(t, g.Nodes, 6)
	assert.Len(t, g.Edges, 6)
	for _, n := range g.Nodes {
		assert.Len(t, g.Neighbors[n.ID], 2)
	}
}

func TestSharedCornersCollapse(t *testing.T) {
	a, b := Hex{0, 0}, Hex{1, 0}
	g := BuildGraph([]Hex{a, b}, HexSize)
	assert.Len(t, g.Nodes, 10)
	assert.Len(t, g.Edges, 11)

	an, ok := g.HexNodes(a)
	require.True(t, ok)
	bn, ok := g.HexNodes(b)
	require.True(t, ok)

	shared := 0
	for _, x := range an {
		for _, y := range bn {
			if x == y {
				shared++
			}
		}
	}
	assert.Equal(t, 2, shared)

	// Ids are recomputed from geometry, not from graph state.
	for i, c := range HexCorners(AxialToPixel(b, HexSize), HexSize) {
		assert.Equal(t, bn[i], NodeID(c))
	}
}

func TestEveryCornerSharedAcrossClassicBoard(t *testing.T) {
	hexes := RadiusCoords(2)
	g := BuildGraph(hexes, HexSize)
	for _, n := range g.Nodes {
		hs := g.NodeHexes(n.ID)
		require.NotEmpty(t, hs)
		assert.LessOrEqual(t, len(hs), 3)
		assert.LessOrEqual(t, len(g.Neighbors[n.ID]), 3)
	}
}

func TestNodeIDEncoding(t *testing.T) {
	assert.Equal(t, "N_41d6_m24", NodeID(Point{X: 41.5692, Y: -24.00001}))
	assert.Equal(t, "N_0_48", NodeID(Point{X: -0.01, Y: 48}))
	assert.Equal(t, EdgeID("N_a", "N_b"), EdgeID("N_b", "N_a"))
}

func TestDistanceRule(t *testing.T) {
	g := BuildGraph(RadiusCoords(2), HexSize)
	n := g.Nodes[0].ID
	occupied := map[string]bool{n: true}

	assert.False(t, g.DistanceOK(n, occupied))
	for _, nb := range g.Neighbors[n] {
		assert.False(t, g.DistanceOK(nb, occupied))
	}
	assert.False(t, g.DistanceOK("N_nope", occupied))

	free := 0
	for _, other := range g.Nodes {
		if g.DistanceOK(other.ID, occupied) {
			free++
		}
	}
	assert.Equal(t, len(g.Nodes)-1-len(g.Neighbors[n]), free)
}

func TestPixelToAxialRoundTrip(t *testing.T) {
	for _, h := range RadiusCoords(4) {
		p := AxialToPixel(h, HexSize)
		assert.Equal(t, h, PixelToAxial(p, HexSize))
		assert.Equal(t, h, PixelToAxial(Point{X: p.X + 10, Y: p.Y - 10}, HexSize))
	}
}

func TestGenerateClassic(t *testing.T) {
	tiles, ports, err := Generate("abc123", Classic, nil, nil)
	require.NoError(t, err)
	require.Len(t, tiles, 19)

	var tokens []int
	counts := map[TileType]int{}
	robbers := 0
	for _, tile := range tiles {
		counts[tile.Type]++
		if tile.HasRobber {
			robbers++
			assert.Equal(t, Desert, tile.Type)
		}
		if tile.Type == Desert {
			assert.Zero(t, tile.NumberToken)
		} else {
			tokens = append(tokens, tile.NumberToken)
		}
	}
	assert.Equal(t, 1, robbers)
	assert.Equal(t, map[TileType]int{
		TileType(Wood): 4, TileType(Brick): 3, TileType(Wheat): 4,
		TileType(Sheep): 4, TileType(Ore): 3, Desert: 1,
	}, counts)
	assert.ElementsMatch(t, tokenBag, tokens)

	require.Len(t, ports, 9)
	kinds := map[PortKind]int{}
	edges := map[string]bool{}
	g := BuildGraph(Hexes(tiles), HexSize)
	boundary := g.BoundaryNodes()
	for _, p := range ports {
		kinds[p.Kind]++
		e := EdgeID(p.NodeA, p.NodeB)
		_, ok := g.Edge(e)
		assert.True(t, ok, "port %s must sit on a board edge", p.ID)
		assert.False(t, edges[e], "port edges must be distinct")
		edges[e] = true
		assert.True(t, boundary[p.NodeA] || boundary[p.NodeB])
	}
	assert.Equal(t, 4, kinds[ThreeToOne])
	for _, r := range Resources {
		assert.Equal(t, 1, kinds[PortKind(r)])
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	for _, m := range []MapType{Classic, Large, Islands, World} {
		t1, p1, err := Generate("same-id", m, nil, nil)
		require.NoError(t, err)
		t2, p2, err := Generate("same-id", m, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, t1, t2, string(m))
		assert.Equal(t, p1, p2, string(m))
	}
}

func TestGenerateVariesByID(t *testing.T) {
	base, _, err := Generate("game-0", Classic, nil, nil)
	require.NoError(t, err)

	differs := false
	for _, id := range []string{"game-1", "game-2", "game-3", "game-4"} {
		other, _, err := Generate(id, Classic, nil, nil)
		require.NoError(t, err)
		for i := range base {
			if base[i].Type != other[i].Type || base[i].NumberToken != other[i].NumberToken {
				differs = true
			}
		}
	}
	assert.True(t, differs)
}

func TestGenerateLargeScalesBags(t *testing.T) {
	tiles, ports, err := Generate("big", Large, nil, nil)
	require.NoError(t, err)
	require.Len(t, tiles, 37)

	deserts := 0
	robbers := 0
	for _, tile := range tiles {
		if tile.Type == Desert {
			deserts++
		}
		if tile.HasRobber {
			robbers++
		}
	}
	assert.Equal(t, DesertCount(37), deserts)
	assert.Equal(t, 2, deserts)
	assert.Equal(t, 1, robbers)
	assert.Len(t, ports, PortCount(37))
}

func TestGenerateCustom(t *testing.T) {
	hexes := []Hex{{0, 0}, {1, 0}, {0, 1}, {1, 0}}
	specs := []PortSpec{
		{Q: 0, R: 0, Edge: 3, Kind: ThreeToOne},
		{Q: 1, R: 0, Edge: 0, Kind: RandomPort},
		{Q: 0, R: 1, Edge: 2, Kind: PortKind(Ore)},
		{Q: 0, R: 0, Edge: 3, Kind: PortKind(Wood)},
	}

	tiles, ports, err := Generate("custom-1", Custom, hexes, specs)
	require.NoError(t, err)
	assert.Len(t, tiles, 3)
	require.Len(t, ports, 3, "duplicate edge spec is skipped")
	assert.Equal(t, ThreeToOne, ports[0].Kind)
	assert.True(t, ports[1].Kind.Valid())
	assert.NotEqual(t, RandomPort, ports[1].Kind)
	assert.Equal(t, PortKind(Ore), ports[2].Kind)

	_, _, err = Generate("custom-1", Custom, hexes, []PortSpec{{Q: 5, R: 5, Edge: 0, Kind: ThreeToOne}})
	assert.Error(t, err)

	_, _, err = Generate("custom-1", Custom, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyMap)
}

func TestGenerateCustomWithoutPortsUsesShoreline(t *testing.T) {
	tiles, ports, err := Generate("c", Custom, RadiusCoords(2), nil)
	require.NoError(t, err)
	assert.Len(t, tiles, 19)
	assert.Len(t, ports, 9)
}
