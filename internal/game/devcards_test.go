package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settlersonline/api/internal/board"
)

func TestBuyDevCard(t *testing.T) {
	g, ids := newMainGame(t, "Ann", "Ben")
	a := ids[0]
	quietBoard(g)
	p := g.Player(a)
	p.Resources = Resources{Wheat: 3, Sheep: 3, Ore: 3}
	g.DevDeck = []DevCardKind{VictoryPoint, Knight}
	vp := p.VictoryPoints

	_, err := g.BuyDevCard(a)
	assert.ErrorIs(t, err, ErrStaleAction, "roll first")

	_, err = g.RollDice(a)
	require.NoError(t, err)

	victory, err := g.BuyDevCard(a)
	require.NoError(t, err)
	assert.Equal(t, VictoryPoint, victory.Kind)
	assert.Equal(t, vp+1, p.VictoryPoints, "victory cards score at once")

	knight, err := g.BuyDevCard(a)
	require.NoError(t, err)
	assert.Equal(t, Knight, knight.Kind)
	assert.Equal(t, 1, knight.BoughtTurn)
	assert.Empty(t, g.DevDeck)
	assert.Equal(t, Resources{Wheat: 1, Sheep: 1, Ore: 1}, p.Resources)
	assert.Len(t, p.DevCards, 2)

	_, err = g.BuyDevCard(a)
	assert.ErrorIs(t, err, ErrStaleAction, "deck is empty")

	assert.ErrorIs(t, g.PlayDevCard(a, knight.ID, DevPayload{}), ErrStaleAction, "bought this turn")
	assert.ErrorIs(t, g.PlayDevCard(a, victory.ID, DevPayload{}), ErrStaleAction, "victory cards are never played")
	assert.False(t, g.DevPlayedThisTurn)
	assertVictoryPoints(t, g)
}

func TestBuyDevCardNeedsResources(t *testing.T) {
	g, ids := rolledGame(t, "Ann", "Ben")
	g.Player(ids[0]).Resources = Resources{Wheat: 1, Sheep: 1}
	_, err := g.BuyDevCard(ids[0])
	assert.ErrorIs(t, err, ErrInsufficientResources)
	assert.Len(t, g.DevDeck, 25)
}

// withCard gives the current player an old card of kind.
func withCard(g *Game, pid PlayerID, kind DevCardKind) string {
	p := g.Player(pid)
	id := "card-" + string(kind)
	p.DevCards = append(p.DevCards, DevCard{ID: id, Kind: kind, BoughtTurn: 0})
	return id
}

func TestPlayMonopoly(t *testing.T) {
	g, ids := rolledGame(t, "Ann", "Ben", "Cat")
	a, b, c := ids[0], ids[1], ids[2]
	g.Player(a).Resources = Resources{Wheat: 1}
	g.Player(b).Resources = Resources{Wheat: 3, Ore: 1}
	g.Player(c).Resources = Resources{Wheat: 2}
	card := withCard(g, a, Monopoly)

	before := 0
	for _, p := range g.Players {
		before += p.Resources.Wheat
	}

	assert.ErrorIs(t, g.PlayDevCard(a, card, DevPayload{Resource: "gold"}), ErrInvalidTarget)
	require.NoError(t, g.PlayDevCard(a, card, DevPayload{Resource: board.Wheat}))

	after := 0
	for _, p := range g.Players {
		after += p.Resources.Wheat
	}
	assert.Equal(t, before, after)
	assert.Equal(t, 6, g.Player(a).Resources.Wheat)
	assert.Equal(t, Resources{Ore: 1}, g.Player(b).Resources)
	assert.Zero(t, g.Player(c).Resources.Total())
	assert.True(t, g.DevPlayedThisTurn)
	assert.Empty(t, g.Player(a).DevCards)
}

func TestPlayYearOfPlenty(t *testing.T) {
	g, ids := rolledGame(t, "Ann", "Ben")
	a := ids[0]
	p := g.Player(a)
	p.Resources = Resources{}
	card := withCard(g, a, YearOfPlenty)

	err := g.PlayDevCard(a, card, DevPayload{R1: board.Wood})
	assert.ErrorIs(t, err, ErrInvalidTarget)
	assert.Len(t, p.DevCards, 1, "a rejected play keeps the card")
	assert.False(t, g.DevPlayedThisTurn)

	require.NoError(t, g.PlayDevCard(a, card, DevPayload{R1: board.Wood, R2: board.Wood}))
	assert.Equal(t, Resources{Wood: 2}, p.Resources)
}

func TestPlayRoadBuilding(t *testing.T) {
	g, ids := rolledGame(t, "Ann", "Ben")
	a := ids[0]
	card := withCard(g, a, RoadBuilding)
	require.NoError(t, g.PlayDevCard(a, card, DevPayload{}))
	assert.Equal(t, 2, g.Player(a).FreeRoadsToPlace)
}

func TestOneDevCardPerTurn(t *testing.T) {
	g, ids := rolledGame(t, "Ann", "Ben")
	a := ids[0]
	first := withCard(g, a, RoadBuilding)
	second := withCard(g, a, YearOfPlenty)

	require.NoError(t, g.PlayDevCard(a, first, DevPayload{}))
	err := g.PlayDevCard(a, second, DevPayload{R1: board.Ore, R2: board.Ore})
	assert.ErrorIs(t, err, ErrStaleAction)
	assert.ErrorIs(t, g.PlayDevCard(a, "missing", DevPayload{}), ErrStaleAction)
}

func TestPlayDevCardValidation(t *testing.T) {
	g, ids := newMainGame(t, "Ann", "Ben")
	a, b := ids[0], ids[1]
	quietBoard(g)
	card := withCard(g, a, Knight)

	assert.ErrorIs(t, g.PlayDevCard(a, card, DevPayload{}), ErrStaleAction, "roll first")
	_, err := g.RollDice(a)
	require.NoError(t, err)

	assert.ErrorIs(t, g.PlayDevCard(b, card, DevPayload{}), ErrNotYourTurn)
	assert.ErrorIs(t, g.PlayDevCard(a, "missing", DevPayload{}), ErrInvalidTarget)

	g.startRobber(a, ReasonRoll7)
	assert.ErrorIs(t, g.PlayDevCard(a, card, DevPayload{}), ErrStaleAction, "robber pending")
}

func TestPlayKnight(t *testing.T) {
	g, ids := rolledGame(t, "Ann", "Ben")
	a := ids[0]
	card := withCard(g, a, Knight)

	require.NoError(t, g.PlayDevCard(a, card, DevPayload{}))
	assert.Equal(t, 1, g.Player(a).KnightsPlayed)
	assert.True(t, g.Robber.Pending)
	assert.Equal(t, ReasonKnight, g.Robber.Reason)
	assert.Equal(t, a, g.Robber.ByPlayerID)
	assert.Empty(t, g.LargestArmyPlayerID, "one knight is not an army")
}

func TestLargestArmy(t *testing.T) {
	g, ids := rolledGame(t, "Ann", "Ben")
	a, b := ids[0], ids[1]
	pa, pb := g.Player(a), g.Player(b)
	pa.KnightsPlayed = 2
	card := withCard(g, a, Knight)
	vpA, vpB := pa.VictoryPoints, pb.VictoryPoints

	require.NoError(t, g.PlayDevCard(a, card, DevPayload{}))
	assert.Equal(t, a, g.LargestArmyPlayerID)
	assert.Equal(t, 3, g.LargestArmySize)
	assert.Equal(t, vpA+2, pa.VictoryPoints)

	pb.KnightsPlayed = 3
	g.updateLargestArmy(pb)
	assert.Equal(t, a, g.LargestArmyPlayerID, "a tie does not take the army")

	pb.KnightsPlayed = 4
	g.updateLargestArmy(pb)
	assert.Equal(t, b, g.LargestArmyPlayerID)
	assert.Equal(t, 4, g.LargestArmySize)
	assert.Equal(t, vpA, pa.VictoryPoints)
	assert.Equal(t, vpB+2, pb.VictoryPoints)

	pb.KnightsPlayed = 5
	g.updateLargestArmy(pb)
	assert.Equal(t, 5, g.LargestArmySize, "the holder's size keeps growing")
	assert.Equal(t, vpB+2, pb.VictoryPoints)
	assertVictoryPoints(t, g)
}
