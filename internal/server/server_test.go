package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/settlersonline/api/internal/database"
	"github.com/settlersonline/api/internal/game"
	"github.com/settlersonline/api/internal/migrations"
	"github.com/settlersonline/api/internal/notify"
	"github.com/settlersonline/api/internal/store"
)

type testEnv struct {
	handler http.Handler
	store   *store.LibSQL
	bus     *notify.Broker
}

func newTestEnv(t *testing.T, opts ...func(*Deps)) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := migrations.Run(db, migrations.SQLite); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewLibSQL(db, 3, logger)
	t.Cleanup(func() { st.Close() })

	bus := notify.NewBroker()
	deps := Deps{
		Store: st,
		Bus:   bus,
		Runtime: game.Runtime{
			Dice: func() (int, int) { return 2, 3 },
		},
		PingInterval: 50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	return &testEnv{handler: NewHandler(logger, deps), store: st, bus: bus}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, rec, status)
	resp := decode[ErrorResponse](t, rec)
	if resp.Code != code {
		t.Errorf("code = %q, want %q (error %q)", resp.Code, code, resp.Error)
	}
	if resp.Error == "" {
		t.Error("empty error message")
	}
}

func (e *testEnv) createGame(t *testing.T, req CreateGameRequest) SeatResponse {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/games", req)
	expectStatus(t, rec, http.StatusCreated)
	return decode[SeatResponse](t, rec)
}

func (e *testEnv) joinGame(t *testing.T, gameID, name string) SeatResponse {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/games/join", JoinGameRequest{GameID: gameID, Name: name})
	expectStatus(t, rec, http.StatusOK)
	return decode[SeatResponse](t, rec)
}

func (e *testEnv) view(t *testing.T, gameID string, pid game.PlayerID) game.View {
	t.Helper()
	rec := e.do(t, http.MethodGet, "/api/games/"+gameID+"?playerId="+string(pid), nil)
	expectStatus(t, rec, http.StatusOK)
	return decode[game.View](t, rec)
}

func (e *testEnv) action(t *testing.T, gameID string, pid game.PlayerID, typ string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body := map[string]any{"playerId": pid, "type": typ}
	if payload != nil {
		body["payload"] = payload
	}
	return e.do(t, http.MethodPost, "/api/games/"+gameID+"/action", body)
}

// startedGame creates a two-player game, which starts on the second join.
func (e *testEnv) startedGame(t *testing.T) (string, game.PlayerID, game.PlayerID) {
	t.Helper()
	ann := e.createGame(t, CreateGameRequest{Name: "Ann"})
	ben := e.joinGame(t, ann.GameID, "Ben")
	return ann.GameID, ann.PlayerID, ben.PlayerID
}
