package board

import "fmt"

// RadiusCoords returns every hex within radius steps of the origin, in q
// then r order.
func RadiusCoords(radius int) []Hex {
	var out []Hex
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			h := Hex{Q: q, R: r}
			if max(abs(h.Q), abs(h.R), abs(h.S())) <= radius {
				out = append(out, h)
			}
		}
	}
	return out
}

func shifted(hexes []Hex, by Hex) []Hex {
	out := make([]Hex, len(hexes))
	for i, h := range hexes {
		out[i] = h.Add(by)
	}
	return out
}

// Dedup drops repeated coordinates, keeping the first occurrence.
func Dedup(hexes []Hex) []Hex {
	seen := make(map[Hex]bool, len(hexes))
	out := make([]Hex, 0, len(hexes))
	for _, h := range hexes {
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}

// ShapeCoords returns the coordinates of a preset map shape. Custom maps have
// no preset and return an error.
func ShapeCoords(m MapType) ([]Hex, error) {
	switch m {
	case Classic, "":
		return RadiusCoords(2), nil
	case Large:
		return RadiusCoords(3), nil
	case Islands:
		var all []Hex
		all = append(all, shifted(RadiusCoords(2), Hex{Q: -2})...)
		all = append(all, shifted(RadiusCoords(2), Hex{Q: 2})...)
		all = append(all, shifted(RadiusCoords(1), Hex{R: 3})...)
		return Dedup(all), nil
	case World:
		all := RadiusCoords(3)
		all = append(all, shifted(RadiusCoords(1), Hex{Q: -5, R: 1})...)
		all = append(all, shifted(RadiusCoords(1), Hex{Q: 5, R: -1})...)
		all = append(all, shifted(RadiusCoords(1), Hex{R: 6})...)
		return Dedup(all), nil
	}
	return nil, fmt.Errorf("no preset coordinates for map type %q", m)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
