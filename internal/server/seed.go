package server

import (
	"context"
	"log/slog"

	"github.com/settlersonline/api/internal/board"
	"github.com/settlersonline/api/internal/game"
	"github.com/settlersonline/api/internal/store"
)

// SeedTemplates stores the starter map template if no templates exist.
// Idempotent: does nothing once any template is saved.
func SeedTemplates(ctx context.Context, logger *slog.Logger, st store.Store) error {
	existing, err := st.ListTemplates(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	tpl, err := game.NewMapTemplate("Twin Isles", twinIsles(), []board.PortSpec{
		{Q: -1, R: 0, Edge: 3, Kind: board.RandomPort},
		{Q: 5, R: -2, Edge: 0, Kind: board.RandomPort},
	})
	if err != nil {
		return err
	}
	if err := st.CreateTemplate(ctx, tpl); err != nil {
		return err
	}

	logger.Info("seeded map template", "template_id", tpl.ID, "name", tpl.Name)
	return nil
}

// twinIsles is two seven-hex islands with one water hex between them.
func twinIsles() []board.Hex {
	west := board.RadiusCoords(1)
	hexes := append([]board.Hex(nil), west...)
	for _, h := range west {
		hexes = append(hexes, h.Add(board.Hex{Q: 4, R: -2}))
	}
	return hexes
}
