package board

import (
	"math"
	"strconv"
	"strings"
)

// HexSize is the corner radius used to derive node identities. Every caller
// that builds a graph for game rules uses this size, so node ids are stable
// across requests.
const HexSize = 48.0

// Hex is an axial hex coordinate.
type Hex struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the third cube coordinate.
func (h Hex) S() int { return -h.Q - h.R }

// Add returns h shifted by o.
func (h Hex) Add(o Hex) Hex { return Hex{Q: h.Q + o.Q, R: h.R + o.R} }

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AxialToPixel projects h onto the plane using a pointy-top layout.
func AxialToPixel(h Hex, size float64) Point {
	return Point{
		X: size * (math.Sqrt(3)*float64(h.Q) + math.Sqrt(3)/2*float64(h.R)),
		Y: size * (1.5 * float64(h.R)),
	}
}

// PixelToAxial is the inverse of AxialToPixel, rounding to the hex that
// contains p.
func PixelToAxial(p Point, size float64) Hex {
	q := (math.Sqrt(3)/3*p.X - p.Y/3) / size
	r := (2.0 / 3 * p.Y) / size
	return cubeRound(q, r, -q-r)
}

func cubeRound(x, y, z float64) Hex {
	rx, ry, rz := math.Round(x), math.Round(y), math.Round(z)
	dx, dy, dz := math.Abs(rx-x), math.Abs(ry-y), math.Abs(rz-z)
	switch {
	case dx > dy && dx > dz:
		rx = -ry - rz
	case dy > dz:
		ry = -rx - rz
	}
	return Hex{Q: int(rx), R: int(ry)}
}

// HexCorners returns the six corners of the hex centered at c, starting at
// -30 degrees and moving clockwise in screen space.
func HexCorners(c Point, size float64) [6]Point {
	var pts [6]Point
	for i := range 6 {
		angle := float64(60*i-30) * math.Pi / 180
		pts[i] = Point{
			X: c.X + size*math.Cos(angle),
			Y: c.Y + size*math.Sin(angle),
		}
	}
	return pts
}

// RoundPoint quantizes p to 0.1 so the same physical corner computed from
// different tiles collapses to one value.
func RoundPoint(p Point) Point {
	return Point{X: round1(p.X), Y: round1(p.Y)}
}

func round1(v float64) float64 {
	r := math.Floor(v*10+0.5) / 10
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// NodeID encodes a corner point as a node id. The point is rounded first.
func NodeID(p Point) string {
	p = RoundPoint(p)
	raw := strconv.FormatFloat(p.X, 'f', -1, 64) + "_" + strconv.FormatFloat(p.Y, 'f', -1, 64)
	return "N_" + nodeIDReplacer.Replace(raw)
}

var nodeIDReplacer = strings.NewReplacer("-", "m", ".", "d")

// EdgeID returns the id of the edge joining nodes a and b, independent of
// argument order.
func EdgeID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return "E_" + a + "__" + b
}

type Node struct {
	ID string `json:"id"`
	P  Point  `json:"p"`
}

type Edge struct {
	ID string `json:"id"`
	A  string `json:"a"`
	B  string `json:"b"`
}

// Has reports whether nodeID is one of the edge's endpoints.
func (e Edge) Has(nodeID string) bool { return e.A == nodeID || e.B == nodeID }

// Graph is the node and edge structure derived from a set of hexes.
type Graph struct {
	Nodes     []Node
	Edges     []Edge
	Neighbors map[string][]string
	EdgeNodes map[string]Edge

	nodeIndex map[string]int
	hexNodes  map[Hex][6]string
	nodeHexes map[string][]Hex
}

// BuildGraph derives the corner graph for hexes. Nodes and edges are listed
// in first-seen order, walking hexes in the order given.
func BuildGraph(hexes []Hex, size float64) *Graph {
	g := &Graph{
		Neighbors: make(map[string][]string),
		EdgeNodes: make(map[string]Edge),
		nodeIndex: make(map[string]int),
		hexNodes:  make(map[Hex][6]string, len(hexes)),
		nodeHexes: make(map[string][]Hex),
	}

	for _, h := range hexes {
		if _, dup := g.hexNodes[h]; dup {
			continue
		}
		corners := HexCorners(AxialToPixel(h, size), size)
		var ids [6]string
		for i, c := range corners {
			id := NodeID(c)
			ids[i] = id
			if _, ok := g.nodeIndex[id]; !ok {
				g.nodeIndex[id] = len(g.Nodes)
				g.Nodes = append(g.Nodes, Node{ID: id, P: RoundPoint(c)})
				g.Neighbors[id] = nil
			}
			g.nodeHexes[id] = append(g.nodeHexes[id], h)
		}
		g.hexNodes[h] = ids
	}

	for _, h := range hexes {
		ids := g.hexNodes[h]
		for i := range 6 {
			a, b := ids[i], ids[(i+1)%6]
			eid := EdgeID(a, b)
			if _, ok := g.EdgeNodes[eid]; ok {
				continue
			}
			e := Edge{ID: eid, A: a, B: b}
			g.Edges = append(g.Edges, e)
			g.EdgeNodes[eid] = e
			g.Neighbors[a] = append(g.Neighbors[a], b)
			g.Neighbors[b] = append(g.Neighbors[b], a)
		}
	}

	return g
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodeIndex[id]
	return ok
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// Edge returns the edge with the given id.
func (g *Graph) Edge(id string) (Edge, bool) {
	e, ok := g.EdgeNodes[id]
	return e, ok
}

// HexNodes returns the six corner node ids of h, in corner order.
func (g *Graph) HexNodes(h Hex) ([6]string, bool) {
	ids, ok := g.hexNodes[h]
	return ids, ok
}

// NodeHexes returns the hexes (one to three) that share the corner.
func (g *Graph) NodeHexes(nodeID string) []Hex {
	return g.nodeHexes[nodeID]
}

// HexEdge returns the edge between corners i and i+1 of h.
func (g *Graph) HexEdge(h Hex, i int) (Edge, bool) {
	if i < 0 || i > 5 {
		return Edge{}, false
	}
	ids, ok := g.hexNodes[h]
	if !ok {
		return Edge{}, false
	}
	return g.Edge(EdgeID(ids[i], ids[(i+1)%6]))
}

// DistanceOK reports whether a settlement may be placed at nodeID: the node
// must exist, be unoccupied and have no occupied neighbor.
func (g *Graph) DistanceOK(nodeID string, occupied map[string]bool) bool {
	if !g.HasNode(nodeID) || occupied[nodeID] {
		return false
	}
	for _, nb := range g.Neighbors[nodeID] {
		if occupied[nb] {
			return false
		}
	}
	return true
}

// BoundaryNodes returns the ids of nodes with at most two neighbors, which
// sit on the outer rim of the land.
func (g *Graph) BoundaryNodes() map[string]bool {
	out := make(map[string]bool)
	for _, n := range g.Nodes {
		if len(g.Neighbors[n.ID]) <= 2 {
			out[n.ID] = true
		}
	}
	return out
}

// Centroid returns the mean position of all nodes.
func (g *Graph) Centroid() Point {
	var c Point
	if len(g.Nodes) == 0 {
		return c
	}
	for _, n := range g.Nodes {
		c.X += n.P.X
		c.Y += n.P.Y
	}
	c.X /= float64(len(g.Nodes))
	c.Y /= float64(len(g.Nodes))
	return c
}

// Midpoint returns the midpoint of edge e.
func (g *Graph) Midpoint(e Edge) Point {
	a, _ := g.Node(e.A)
	b, _ := g.Node(e.B)
	return Point{X: (a.P.X + b.P.X) / 2, Y: (a.P.Y + b.P.Y) / 2}
}
