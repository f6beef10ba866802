package board

import (
	"errors"
	"fmt"
	"math"

	"github.com/settlersonline/api/internal/rng"
)

// Base multisets, sized for the 19-tile classic board.
var (
	resourceBag = []TileType{
		TileType(Wood), TileType(Wood), TileType(Wood), TileType(Wood),
		TileType(Brick), TileType(Brick), TileType(Brick),
		TileType(Wheat), TileType(Wheat), TileType(Wheat), TileType(Wheat),
		TileType(Sheep), TileType(Sheep), TileType(Sheep), TileType(Sheep),
		TileType(Ore), TileType(Ore), TileType(Ore),
	}
	tokenBag     = []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}
	portKindsBag = []PortKind{
		ThreeToOne, ThreeToOne, ThreeToOne, ThreeToOne,
		PortKind(Wood), PortKind(Brick), PortKind(Wheat), PortKind(Sheep), PortKind(Ore),
	}
)

const classicTileCount = 19

var ErrEmptyMap = errors.New("map has no hexes")

// cycle repeats base until it has n elements.
func cycle[T any](base []T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = base[i%len(base)]
	}
	return out
}

// DesertCount returns how many deserts a map of n tiles gets.
func DesertCount(n int) int {
	if n <= 0 {
		return 0
	}
	d := max(1, int(math.Round(float64(n)/classicTileCount)))
	return min(d, n)
}

// PortCount returns how many harbors a map of n tiles gets.
func PortCount(n int) int {
	if n <= classicTileCount {
		return len(portKindsBag)
	}
	return int(math.Round(float64(len(portKindsBag)*n) / classicTileCount))
}

// Generate builds the tiles and ports for a new game. Preset map types derive
// their own coordinates; Custom uses hexes and portSpecs from a template. The
// result depends only on the arguments, so the same game id always yields the
// same board.
func Generate(gameID string, m MapType, hexes []Hex, portSpecs []PortSpec) ([]Tile, []Port, error) {
	if m != Custom {
		var err error
		hexes, err = ShapeCoords(m)
		if err != nil {
			return nil, nil, err
		}
		portSpecs = nil
	}
	hexes = Dedup(hexes)
	if len(hexes) == 0 {
		return nil, nil, ErrEmptyMap
	}

	tiles := GenerateTiles(gameID, m, hexes)
	g := BuildGraph(hexes, HexSize)

	if m == Custom && len(portSpecs) > 0 {
		ports, err := PlacePorts(gameID, g, portSpecs)
		if err != nil {
			return nil, nil, err
		}
		return tiles, ports, nil
	}
	return tiles, GeneratePorts(gameID, g, PortCount(len(tiles))), nil
}

// GenerateTiles assigns a resource and number token to each hex. The first
// desert in coordinate order holds the robber.
func GenerateTiles(gameID string, m MapType, hexes []Hex) []Tile {
	if m == "" {
		m = Classic
	}
	src := rng.FromTagged(gameID, "board:"+string(m))

	n := len(hexes)
	deserts := DesertCount(n)
	bag := cycle(resourceBag, n-deserts)
	for range deserts {
		bag = append(bag, Desert)
	}
	rng.Shuffle(src, bag)

	tokens := cycle(tokenBag, n-deserts)
	rng.Shuffle(src, tokens)

	tiles := make([]Tile, n)
	next := 0
	robberPlaced := false
	for i, h := range hexes {
		t := Tile{
			ID:   fmt.Sprintf("T%d_%d_%d", i, h.Q, h.R),
			Q:    h.Q,
			R:    h.R,
			Type: bag[i],
		}
		if t.Type == Desert {
			if !robberPlaced {
				t.HasRobber = true
				robberPlaced = true
			}
		} else {
			t.NumberToken = tokens[next]
			next++
		}
		tiles[i] = t
	}
	return tiles
}
