package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/settlersonline/api/internal/game"
)

// Postgres stores documents as JSONB rows and serializes game updates with
// SELECT ... FOR UPDATE, so any number of server instances can share it.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// DB returns a database/sql handle on the same pool, for migrations.
func (s *Postgres) DB() *sql.DB {
	return stdlib.OpenDBFromPool(s.pool)
}

func (s *Postgres) CreateGame(ctx context.Context, g *game.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO games (id, phase, version, created_at, updated_at, data)
		 VALUES ($1, $2, 1, $3, $4, $5)`,
		g.ID, string(g.Phase), g.CreatedAt, g.UpdatedAt, data,
	)
	if err != nil {
		return fmt.Errorf("inserting game: %w", err)
	}
	return nil
}

func (s *Postgres) LoadGame(ctx context.Context, id string) (*game.Game, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM games WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading game: %w", err)
	}
	return decodeGame(data)
}

func (s *Postgres) UpdateGame(ctx context.Context, id string, fn func(*game.Game) error) (*game.Game, error) {
	var out *game.Game
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var data []byte
		err := tx.QueryRow(ctx, `SELECT data FROM games WHERE id = $1 FOR UPDATE`, id).Scan(&data)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("locking game: %w", err)
		}
		g, err := decodeGame(data)
		if err != nil {
			return err
		}
		if err := fn(g); err != nil {
			return err
		}
		g.Touch()

		data, err = json.Marshal(g)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`UPDATE games SET phase = $2, version = version + 1, updated_at = $3, data = $4 WHERE id = $1`,
			id, string(g.Phase), g.UpdatedAt, data,
		)
		if err != nil {
			return fmt.Errorf("saving game: %w", err)
		}
		out = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Postgres) ListGames(ctx context.Context, limit int) ([]GameSummary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM games WHERE phase <> $1 ORDER BY updated_at DESC LIMIT $2`,
		string(game.PhaseFinished), ClampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	docs, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}

	out := make([]GameSummary, 0, len(docs))
	for _, data := range docs {
		g, err := decodeGame(data)
		if err != nil {
			return nil, err
		}
		out = append(out, Summarize(g))
	}
	return out, nil
}

func (s *Postgres) CreateTemplate(ctx context.Context, t *game.MapTemplate) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO map_templates (id, name, updated_at, data) VALUES ($1, $2, $3, $4)`,
		t.ID, t.Name, t.UpdatedAt, data,
	)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	return nil
}

func (s *Postgres) UpdateTemplate(ctx context.Context, t *game.MapTemplate) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE map_templates SET name = $2, updated_at = $3, data = $4 WHERE id = $1`,
		t.ID, t.Name, t.UpdatedAt, data,
	)
	if err != nil {
		return fmt.Errorf("updating template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) GetTemplate(ctx context.Context, id string) (*game.MapTemplate, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM map_templates WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	return decodeTemplate(data)
}

func (s *Postgres) ListTemplates(ctx context.Context) ([]game.MapTemplate, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM map_templates ORDER BY updated_at DESC LIMIT $1`, maxTemplates,
	)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	docs, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	out := make([]game.MapTemplate, 0, len(docs))
	for _, data := range docs {
		t, err := decodeTemplate(data)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *Postgres) DeleteTemplate(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM map_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Postgres) Close() error {
	s.pool.Close()
	return nil
}
