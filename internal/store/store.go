// Package store persists games and map templates as JSON documents.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/settlersonline/api/internal/game"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("concurrent update")
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 50
	maxTemplates     = 100
)

// Store is the persistence collaborator of the HTTP layer.
//
// UpdateGame gives fn exclusive access to the latest saved version of a
// game. If fn returns an error nothing is written and the error is returned
// unchanged. fn may run more than once, always on a freshly loaded game.
type Store interface {
	CreateGame(ctx context.Context, g *game.Game) error
	LoadGame(ctx context.Context, id string) (*game.Game, error)
	UpdateGame(ctx context.Context, id string, fn func(*game.Game) error) (*game.Game, error)
	ListGames(ctx context.Context, limit int) ([]GameSummary, error)

	CreateTemplate(ctx context.Context, t *game.MapTemplate) error
	GetTemplate(ctx context.Context, id string) (*game.MapTemplate, error)
	UpdateTemplate(ctx context.Context, t *game.MapTemplate) error
	ListTemplates(ctx context.Context) ([]game.MapTemplate, error)
	DeleteTemplate(ctx context.Context, id string) error

	Ping(ctx context.Context) error
	Close() error
}

type PlayerSummary struct {
	ID    game.PlayerID `json:"id"`
	Name  string        `json:"name"`
	Color string        `json:"color"`
}

// GameSummary is a lobby listing entry.
type GameSummary struct {
	GameID      string          `json:"gameId"`
	Phase       game.Phase      `json:"phase"`
	TurnNumber  int             `json:"turnNumber"`
	SetupStep   game.SetupStep  `json:"setupStep"`
	MapType     string          `json:"mapType"`
	Players     []PlayerSummary `json:"players"`
	PlayerCount int             `json:"playerCount"`
	MaxPlayers  int             `json:"maxPlayers"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func Summarize(g *game.Game) GameSummary {
	players := make([]PlayerSummary, len(g.Players))
	for i, p := range g.Players {
		players[i] = PlayerSummary{ID: p.ID, Name: p.Name, Color: p.Color}
	}
	return GameSummary{
		GameID:      g.ID,
		Phase:       g.Phase,
		TurnNumber:  g.TurnNumber,
		SetupStep:   g.SetupStep,
		MapType:     string(g.Settings.MapType),
		Players:     players,
		PlayerCount: len(players),
		MaxPlayers:  g.Settings.MaxPlayers,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// ClampLimit maps a requested list size into [1, MaxListLimit]; zero or
// negative selects the default.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}

func decodeGame(data []byte) (*game.Game, error) {
	var g game.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decoding game: %w", err)
	}
	g.Normalize()
	return &g, nil
}

func decodeTemplate(data []byte) (*game.MapTemplate, error) {
	var t game.MapTemplate
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decoding template: %w", err)
	}
	return &t, nil
}

// keyedMutex serializes work per key within this process.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*refMutex)
	}
	m := k.locks[key]
	if m == nil {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
