// Package board builds the hex map a game is played on: the corner graph
// derived from axial coordinates, the tile layout for each map shape and the
// harbor placement along the shoreline.
package board

// Resource is one of the five tradeable card kinds.
type Resource string

const (
	Wood  Resource = "wood"
	Brick Resource = "brick"
	Wheat Resource = "wheat"
	Sheep Resource = "sheep"
	Ore   Resource = "ore"
)

// Resources lists every resource in canonical order.
var Resources = []Resource{Wood, Brick, Wheat, Sheep, Ore}

// Valid reports whether r is one of the five resources.
func (r Resource) Valid() bool {
	switch r {
	case Wood, Brick, Wheat, Sheep, Ore:
		return true
	}
	return false
}

// TileType is a resource name or Desert.
type TileType string

const Desert TileType = "desert"

// Resource returns the resource produced by the tile type. Deserts produce
// nothing.
func (t TileType) Resource() (Resource, bool) {
	r := Resource(t)
	return r, r.Valid()
}

// Tile is a single land hex. NumberToken is 0 for deserts.
type Tile struct {
	ID          string   `json:"id"`
	Q           int      `json:"q"`
	R           int      `json:"r"`
	Type        TileType `json:"type"`
	NumberToken int      `json:"numberToken,omitempty"`
	HasRobber   bool     `json:"hasRobber"`
}

// Hex returns the tile's axial coordinate.
func (t Tile) Hex() Hex { return Hex{Q: t.Q, R: t.R} }

// Hexes returns the coordinates of tiles in order.
func Hexes(tiles []Tile) []Hex {
	out := make([]Hex, len(tiles))
	for i, t := range tiles {
		out[i] = t.Hex()
	}
	return out
}

// PortKind is ThreeToOne or the resource a 2:1 harbor trades.
type PortKind string

const (
	ThreeToOne PortKind = "threeToOne"
	// RandomPort is only valid in templates; it is resolved at generation.
	RandomPort PortKind = "random"
)

// Resource returns the resource of a 2:1 port.
func (k PortKind) Resource() (Resource, bool) {
	r := Resource(k)
	return r, r.Valid()
}

// Valid reports whether k names a placed port kind.
func (k PortKind) Valid() bool {
	_, ok := k.Resource()
	return ok || k == ThreeToOne
}

// Port is a harbor on a shoreline edge.
type Port struct {
	ID    string   `json:"id"`
	Kind  PortKind `json:"kind"`
	NodeA string   `json:"nodeA"`
	NodeB string   `json:"nodeB"`
	Mid   Point    `json:"mid"`
}

// Touches reports whether nodeID is one of the port's endpoints.
func (p Port) Touches(nodeID string) bool { return p.NodeA == nodeID || p.NodeB == nodeID }

// PortSpec is a user-authored port: a hex, one of its six edges and a kind,
// which may be RandomPort.
type PortSpec struct {
	Q    int      `json:"q"`
	R    int      `json:"r"`
	Edge int      `json:"edge"`
	Kind PortKind `json:"kind"`
}

// MapType selects a preset board shape or a custom template.
type MapType string

const (
	Classic MapType = "classic"
	Large   MapType = "large"
	Islands MapType = "islands"
	World   MapType = "world"
	Custom  MapType = "custom"
)

// Valid reports whether m is a known map type.
func (m MapType) Valid() bool {
	switch m {
	case Classic, Large, Islands, World, Custom:
		return true
	}
	return false
}
