package board

import (
	"fmt"
	"math"
	"sort"

	"github.com/settlersonline/api/internal/rng"
)

// GeneratePorts places count harbors on shoreline edges spread evenly by
// angle around the board centroid, with kinds drawn from a shuffled bag.
func GeneratePorts(gameID string, g *Graph, count int) []Port {
	type candidate struct {
		edge  Edge
		mid   Point
		angle float64
	}

	center := g.Centroid()
	boundary := g.BoundaryNodes()

	var cands []candidate
	for _, e := range g.Edges {
		if !boundary[e.A] && !boundary[e.B] {
			continue
		}
		mid := g.Midpoint(e)
		cands = append(cands, candidate{
			edge:  e,
			mid:   mid,
			angle: math.Atan2(mid.Y-center.Y, mid.X-center.X),
		})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].angle < cands[j].angle })

	if count > len(cands) {
		count = len(cands)
	}

	used := make(map[string]bool, count)
	picked := make([]candidate, 0, count)
	for i := range count {
		j := int(math.Floor(float64(i) / float64(count) * float64(len(cands))))
		for j < len(cands) && used[cands[j].edge.ID] {
			j++
		}
		if j >= len(cands) {
			j = 0
			for j < len(cands) && used[cands[j].edge.ID] {
				j++
			}
		}
		if j >= len(cands) {
			break
		}
		used[cands[j].edge.ID] = true
		picked = append(picked, cands[j])
	}

	kinds := cycle(portKindsBag, len(picked))
	rng.Shuffle(rng.FromTagged(gameID, "ports"), kinds)

	ports := make([]Port, len(picked))
	for i, c := range picked {
		ports[i] = Port{
			ID:    fmt.Sprintf("P%d", i),
			Kind:  kinds[i],
			NodeA: c.edge.A,
			NodeB: c.edge.B,
			Mid:   c.mid,
		}
	}
	return ports
}

// PlacePorts resolves user-authored port specs against g. Specs with
// RandomPort draw from a shuffled bag; a second spec on an already used edge
// is skipped.
func PlacePorts(gameID string, g *Graph, specs []PortSpec) ([]Port, error) {
	pool := cycle(portKindsBag, len(specs))
	rng.Shuffle(rng.FromTagged(gameID, "ports"), pool)

	used := make(map[string]bool, len(specs))
	ports := make([]Port, 0, len(specs))
	for i, s := range specs {
		h := Hex{Q: s.Q, R: s.R}
		e, ok := g.HexEdge(h, s.Edge)
		if !ok {
			return nil, fmt.Errorf("port %d: no edge %d on hex (%d,%d)", i, s.Edge, s.Q, s.R)
		}
		if used[e.ID] {
			continue
		}

		kind := s.Kind
		switch {
		case kind == RandomPort:
			kind = pool[i]
		case !kind.Valid():
			return nil, fmt.Errorf("port %d: unknown kind %q", i, s.Kind)
		}

		used[e.ID] = true
		ports = append(ports, Port{
			ID:    fmt.Sprintf("P%d", len(ports)),
			Kind:  kind,
			NodeA: e.A,
			NodeB: e.B,
			Mid:   g.Midpoint(e),
		})
	}
	return ports, nil
}
