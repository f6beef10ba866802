package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settlersonline/api/internal/board"
)

func TestNormalizeEmptyDocument(t *testing.T) {
	var g Game
	require.NoError(t, json.Unmarshal([]byte(`{"id":"old","players":[{"id":"p1","name":"Ann"}]}`), &g))
	g.Normalize()

	assert.Equal(t, DefaultSettings(), g.Settings)
	assert.Equal(t, PhaseLobby, g.Phase)
	assert.Equal(t, StepPlaceSettlement, g.SetupStep)
	assert.Equal(t, 1, g.Setup.Round)
	assert.Equal(t, Forward, g.Setup.Direction)
	assert.NotNil(t, g.Setup.Done)
	assert.Equal(t, 1, g.TurnNumber)
	assert.NotNil(t, g.Tiles)
	assert.NotNil(t, g.Nodes)
	assert.NotNil(t, g.Edges)
	assert.NotNil(t, g.TradeOffers)
	assert.NotNil(t, g.Robber.Candidates)
	assert.NotNil(t, g.Stats.RollCounts)

	p := g.Player("p1")
	require.NotNil(t, p)
	assert.NotNil(t, p.Ports.TwoToOne)
	assert.NotNil(t, p.DevCards)
	assert.Contains(t, g.Stats.ResourceGains, PlayerID("p1"))
}

func TestNormalizeDropsStaleRobberState(t *testing.T) {
	var g Game
	g.Robber = Robber{ByPlayerID: "p1", AwaitingSteal: true, Candidates: []PlayerID{"p2"}}
	g.Normalize()
	assert.Equal(t, Robber{Candidates: []PlayerID{}}, g.Robber)
}

func TestGameRoundTrip(t *testing.T) {
	g, ids := newMainGame(t, "Ann", "Ben", "Cat")
	a := ids[0]
	quietBoard(g)
	_, err := g.RollDice(a)
	require.NoError(t, err)
	g.Player(a).Resources = Resources{Wood: 1}
	_, err = g.CreateTradeOffer(a, "", Resources{Wood: 1}, Resources{Ore: 1})
	require.NoError(t, err)
	require.NoError(t, g.AddChat(ids[1], "hi"))

	data, err := json.Marshal(g)
	require.NoError(t, err)

	var loaded Game
	require.NoError(t, json.Unmarshal(data, &loaded))
	loaded.Normalize()

	again, err := json.Marshal(&loaded)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))

	assert.Equal(t, g.Setup.Done, loaded.Setup.Done)
	assert.Equal(t, g.DevDeck, loaded.DevDeck)
	assert.Equal(t, g.Stats, loaded.Stats)
	for _, pid := range ids {
		assert.Equal(t, g.LongestRoadFor(pid), loaded.LongestRoadFor(pid))
	}

	// The graph is rebuilt from the stored tiles.
	assert.Len(t, loaded.Graph().Nodes, 54)
	loaded.Attach(testRuntime())
	require.NoError(t, loaded.EndTurn(a))
	assert.Equal(t, ids[1], loaded.CurrentPlayerID)
}

func TestRoundTripKeepsCustomLayout(t *testing.T) {
	s := DefaultSettings()
	s.MapType = board.Custom
	s.CustomMap = &CustomMap{Hexes: []board.Hex{{Q: 0, R: 0}, {Q: 1, R: 0}}}
	g, err := New("custom", s, testRuntime())
	require.NoError(t, err)

	data, err := json.Marshal(g)
	require.NoError(t, err)
	var loaded Game
	require.NoError(t, json.Unmarshal(data, &loaded))
	loaded.Normalize()
	assert.Equal(t, s, loaded.Settings)
}
