package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/settlersonline/api/internal/game"
)

// LibSQL stores documents as JSONB in a libSQL database. Updates are
// serialized per game in process and guarded across processes by a
// version column.
type LibSQL struct {
	db      *sql.DB
	retries int
	logger  *slog.Logger
	locks   keyedMutex
}

// NewLibSQL expects db to be migrated with the sqlite dialect.
func NewLibSQL(db *sql.DB, retries int, logger *slog.Logger) *LibSQL {
	return &LibSQL{db: db, retries: max(retries, 0), logger: logger}
}

func (s *LibSQL) CreateGame(ctx context.Context, g *game.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO games (id, phase, version, created_at, updated_at, data)
		 VALUES (?, ?, 1, ?, ?, jsonb(?))`,
		g.ID, string(g.Phase), g.CreatedAt.UnixMilli(), g.UpdatedAt.UnixMilli(), string(data),
	)
	if err != nil {
		return fmt.Errorf("inserting game: %w", err)
	}
	return nil
}

func (s *LibSQL) load(ctx context.Context, id string) (*game.Game, int64, error) {
	var (
		data    string
		version int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data), version FROM games WHERE id = ?`, id,
	).Scan(&data, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("loading game: %w", err)
	}
	g, err := decodeGame([]byte(data))
	if err != nil {
		return nil, 0, err
	}
	return g, version, nil
}

func (s *LibSQL) LoadGame(ctx context.Context, id string) (*game.Game, error) {
	g, _, err := s.load(ctx, id)
	return g, err
}

func (s *LibSQL) UpdateGame(ctx context.Context, id string, fn func(*game.Game) error) (*game.Game, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	for attempt := 0; attempt <= s.retries; attempt++ {
		g, version, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := fn(g); err != nil {
			return nil, err
		}
		g.Touch()

		data, err := json.Marshal(g)
		if err != nil {
			return nil, err
		}
		res, err := s.db.ExecContext(ctx,
			`UPDATE games SET phase = ?, version = version + 1, updated_at = ?, data = jsonb(?)
			 WHERE id = ? AND version = ?`,
			string(g.Phase), g.UpdatedAt.UnixMilli(), string(data), id, version,
		)
		if err != nil {
			return nil, fmt.Errorf("saving game: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 1 {
			return g, nil
		}
		s.logger.Warn("game changed during update, retrying", "game_id", id, "attempt", attempt+1)
	}
	return nil, ErrConflict
}

func (s *LibSQL) ListGames(ctx context.Context, limit int) ([]GameSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT json(data) FROM games WHERE phase != ? ORDER BY updated_at DESC LIMIT ?`,
		string(game.PhaseFinished), ClampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	defer rows.Close()

	out := []GameSummary{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		g, err := decodeGame([]byte(data))
		if err != nil {
			return nil, err
		}
		out = append(out, Summarize(g))
	}
	return out, rows.Err()
}

func (s *LibSQL) CreateTemplate(ctx context.Context, t *game.MapTemplate) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO map_templates (id, name, updated_at, data) VALUES (?, ?, ?, jsonb(?))`,
		t.ID, t.Name, t.UpdatedAt.UnixMilli(), string(data),
	)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	return nil
}

func (s *LibSQL) UpdateTemplate(ctx context.Context, t *game.MapTemplate) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE map_templates SET name = ?, updated_at = ?, data = jsonb(?) WHERE id = ?`,
		t.Name, t.UpdatedAt.UnixMilli(), string(data), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *LibSQL) GetTemplate(ctx context.Context, id string) (*game.MapTemplate, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM map_templates WHERE id = ?`, id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	return decodeTemplate([]byte(data))
}

func (s *LibSQL) ListTemplates(ctx context.Context) ([]game.MapTemplate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT json(data) FROM map_templates ORDER BY updated_at DESC LIMIT ?`, maxTemplates,
	)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	out := []game.MapTemplate{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		t, err := decodeTemplate([]byte(data))
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *LibSQL) DeleteTemplate(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM map_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *LibSQL) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *LibSQL) Close() error {
	return s.db.Close()
}
