package game

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/settlersonline/api/internal/board"
	"github.com/settlersonline/api/internal/id"
)

const (
	minTemplateName  = 2
	maxTemplateName  = 32
	maxTemplateHexes = 200
	maxTemplatePorts = 30
)

// MapTemplate is a user-authored board layout that custom games copy at
// creation.
type MapTemplate struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Hexes     []board.Hex      `json:"hexes"`
	Ports     []board.PortSpec `json:"ports"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// NewMapTemplate validates a layout and returns a template with a fresh id.
// Duplicate hexes are dropped; ports must sit on a hex of the template.
func NewMapTemplate(name string, hexes []board.Hex, ports []board.PortSpec) (*MapTemplate, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < minTemplateName || n > maxTemplateName {
		return nil, reject(CodeInvalidInput, "template name must be %d to %d characters", minTemplateName, maxTemplateName)
	}
	hexes = board.Dedup(hexes)
	if len(hexes) == 0 || len(hexes) > maxTemplateHexes {
		return nil, reject(CodeInvalidInput, "a template needs 1 to %d hexes", maxTemplateHexes)
	}
	if len(ports) > maxTemplatePorts {
		return nil, reject(CodeInvalidInput, "a template allows at most %d ports", maxTemplatePorts)
	}

	inMap := make(map[board.Hex]bool, len(hexes))
	for _, h := range hexes {
		inMap[h] = true
	}
	for i, p := range ports {
		if p.Edge < 0 || p.Edge > 5 {
			return nil, reject(CodeInvalidInput, "port %d: edge must be 0 to 5", i)
		}
		if !p.Kind.Valid() && p.Kind != board.RandomPort {
			return nil, reject(CodeInvalidInput, "port %d: unknown kind %q", i, p.Kind)
		}
		if !inMap[board.Hex{Q: p.Q, R: p.R}] {
			return nil, reject(CodeInvalidInput, "port %d: hex (%d,%d) is not part of the map", i, p.Q, p.R)
		}
	}

	now := time.Now().UTC()
	return &MapTemplate{
		ID:        id.New(),
		Name:      name,
		Hexes:     hexes,
		Ports:     append([]board.PortSpec{}, ports...),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CustomMap returns the layout to copy into a game's settings.
func (t *MapTemplate) CustomMap() *CustomMap {
	return &CustomMap{
		Hexes: append([]board.Hex{}, t.Hexes...),
		Ports: append([]board.PortSpec{}, t.Ports...),
	}
}

// Apply replaces the fields that are given and revalidates the whole
// template. A nil name, hexes or ports keeps the current value.
func (t *MapTemplate) Apply(name *string, hexes []board.Hex, ports []board.PortSpec) error {
	next := *t
	if name != nil {
		next.Name = *name
	}
	if hexes != nil {
		next.Hexes = hexes
	}
	if ports != nil {
		next.Ports = ports
	}
	checked, err := NewMapTemplate(next.Name, next.Hexes, next.Ports)
	if err != nil {
		return err
	}
	t.Name = checked.Name
	t.Hexes = checked.Hexes
	t.Ports = checked.Ports
	t.UpdatedAt = checked.UpdatedAt
	return nil
}
