// Package game implements the rules of the settlement-building game as a
// synchronous state machine over a single Game aggregate.
//
// Every exported action validates first and mutates only on success, so a
// returned *Error always leaves the game untouched. Callers load a game,
// invoke one action, persist it and fan out a change notification; the
// package itself never blocks and never logs.
package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/settlersonline/api/internal/board"
	"github.com/settlersonline/api/internal/id"
	"github.com/settlersonline/api/internal/rng"
)

const (
	DefaultMaxVictoryPoints = 10
	DefaultMaxPlayers       = 4
	DefaultMinPlayers       = 2

	maxLogEntries    = 200
	maxChatMessages  = 200
	maxChatLength    = 300
	minNameLength    = 2
	maxNameLength    = 24
	maxClosedOffers  = 50
	longestRoadMin   = 5
	largestArmyMin   = 3
	discardThreshold = 7
)

var colors = []string{"#60a5fa", "#f59e0b", "#34d399", "#f472b6"}

// Runtime supplies the non-deterministic inputs of the rules: live dice,
// random card picks, ids and the clock. Zero fields fall back to defaults.
type Runtime struct {
	Dice  func() (int, int)
	IntN  func(n int) int
	NewID func() string
	Now   func() time.Time
}

func DefaultRuntime() Runtime {
	return Runtime{
		Dice:  func() (int, int) { return 1 + rand.IntN(6), 1 + rand.IntN(6) },
		IntN:  rand.IntN,
		NewID: id.New,
		Now:   time.Now,
	}
}

func (rt Runtime) withDefaults() Runtime {
	def := DefaultRuntime()
	if rt.Dice == nil {
		rt.Dice = def.Dice
	}
	if rt.IntN == nil {
		rt.IntN = def.IntN
	}
	if rt.NewID == nil {
		rt.NewID = def.NewID
	}
	if rt.Now == nil {
		rt.Now = def.Now
	}
	return rt
}

// Attach installs rt for subsequent actions on g.
func (g *Game) Attach(rt Runtime) {
	g.rt = rt.withDefaults()
}

func (g *Game) runtime() Runtime {
	if g.rt.Now == nil {
		g.rt = g.rt.withDefaults()
	}
	return g.rt
}

func (g *Game) now() time.Time { return g.runtime().Now().UTC() }

// DefaultSettings returns the settings of a classic four-player game to 10.
func DefaultSettings() Settings {
	return Settings{
		MaxVictoryPoints: DefaultMaxVictoryPoints,
		MaxPlayers:       DefaultMaxPlayers,
		MinPlayers:       DefaultMinPlayers,
		MapType:          board.Classic,
	}
}

// Validate checks the ranges accepted at game creation.
func (s Settings) Validate() error {
	switch {
	case s.MaxVictoryPoints < 5 || s.MaxVictoryPoints > 20:
		return reject(CodeInvalidInput, "victory point target must be between 5 and 20")
	case s.MaxPlayers < 2 || s.MaxPlayers > 4:
		return reject(CodeInvalidInput, "player limit must be between 2 and 4")
	case s.MinPlayers < 2 || s.MinPlayers > s.MaxPlayers:
		return reject(CodeInvalidInput, "minimum players must be between 2 and the player limit")
	case !s.MapType.Valid():
		return reject(CodeInvalidInput, "unknown map type %q", s.MapType)
	case s.MapType == board.Custom && (s.CustomMap == nil || len(s.CustomMap.Hexes) == 0):
		return reject(CodeInvalidInput, "custom map needs a template")
	}
	return nil
}

// New creates a game in the lobby with no players.
func New(gameID string, s Settings, rt Runtime) (*Game, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		ID:        gameID,
		Settings:  s,
		Phase:     PhaseLobby,
		SetupStep: StepPlaceSettlement,
	}
	g.Attach(rt)
	now := g.now()
	g.CreatedAt = now
	g.UpdatedAt = now
	g.Normalize()
	return g, nil
}

// Join adds a player to a lobby game and returns the new player's id.
func (g *Game) Join(name string) (PlayerID, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < minNameLength || n > maxNameLength {
		return "", reject(CodeInvalidInput, "name must be %d to %d characters", minNameLength, maxNameLength)
	}
	if g.Phase != PhaseLobby {
		return "", reject(CodeWrongPhase, "the game has already started")
	}
	if len(g.Players) >= g.Settings.MaxPlayers {
		return "", reject(CodeGameFull, "the game is full (max %d players)", g.Settings.MaxPlayers)
	}

	p := &Player{
		ID:       PlayerID(g.runtime().NewID()),
		Name:     name,
		Color:    colors[len(g.Players)%len(colors)],
		Ports:    Ports{TwoToOne: make(map[board.Resource]bool)},
		DevCards: []DevCard{},
	}
	g.Players = append(g.Players, p)
	g.Stats.ResourceGains[p.ID] = Resources{}
	g.addLog("%s joined.", p.Name)
	return p.ID, nil
}

// StartIfEligible moves a lobby game with enough players into setup,
// generating the board and dev deck. It reports whether the game started.
func (g *Game) StartIfEligible() (bool, error) {
	if g.Phase != PhaseLobby || len(g.Players) < g.Settings.MinPlayers {
		return false, nil
	}

	var (
		hexes []board.Hex
		specs []board.PortSpec
	)
	if cm := g.Settings.CustomMap; cm != nil {
		hexes, specs = cm.Hexes, cm.Ports
	}
	tiles, ports, err := board.Generate(g.ID, g.Settings.MapType, hexes, specs)
	if err != nil {
		return false, reject(CodeInvalidInput, "cannot build board: %v", err)
	}

	g.Tiles = tiles
	g.Ports = ports
	g.graph = nil
	g.Phase = PhaseSetup
	g.SetupStep = StepPlaceSettlement
	g.Setup = Setup{Round: 1, Direction: Forward, Done: make(map[PlayerID]int)}
	g.CurrentPlayerID = g.Players[0].ID
	g.resetTurnState()
	g.DevDeck = NewDevDeck(g.ID)
	g.LargestArmyPlayerID = ""
	g.LargestArmySize = 0
	g.addLog("Game started. Setup: %s to place.", g.Players[0].Name)
	return true, nil
}

// NewDevDeck returns the 25-card development deck in the order fixed by
// gameID.
func NewDevDeck(gameID string) []DevCardKind {
	deck := make([]DevCardKind, 0, 25)
	for _, c := range []struct {
		kind DevCardKind
		n    int
	}{
		{Knight, 14},
		{VictoryPoint, 5},
		{RoadBuilding, 2},
		{YearOfPlenty, 2},
		{Monopoly, 2},
	} {
		for range c.n {
			deck = append(deck, c.kind)
		}
	}
	rng.Shuffle(rng.FromTagged(gameID, "devdeck"), deck)
	return deck
}

func (g *Game) resetTurnState() {
	g.TurnNumber = 1
	g.TurnHasRolled = false
	g.DevPlayedThisTurn = false
}

// Graph returns the corner graph of the current tiles. It is rebuilt from
// tile coordinates after every load and cached for the lifetime of g.
func (g *Game) Graph() *board.Graph {
	if g.graph == nil {
		g.graph = board.BuildGraph(board.Hexes(g.Tiles), board.HexSize)
	}
	return g.graph
}

// Player returns the player with the given id, or nil.
func (g *Game) Player(pid PlayerID) *Player {
	for _, p := range g.Players {
		if p.ID == pid {
			return p
		}
	}
	return nil
}

func (g *Game) playerIndex(pid PlayerID) int {
	for i, p := range g.Players {
		if p.ID == pid {
			return i
		}
	}
	return -1
}

func (g *Game) requirePlayer(pid PlayerID) (*Player, error) {
	p := g.Player(pid)
	if p == nil {
		return nil, reject(CodeInvalidTarget, "unknown player")
	}
	return p, nil
}

func (g *Game) requirePhase(ph Phase, action string) error {
	if g.Phase != ph {
		return reject(CodeWrongPhase, "%s is only allowed in the %s phase", action, ph)
	}
	return nil
}

func (g *Game) requireTurn(pid PlayerID) (*Player, error) {
	p, err := g.requirePlayer(pid)
	if err != nil {
		return nil, err
	}
	if g.CurrentPlayerID != pid {
		return nil, reject(CodeNotYourTurn, "it is not your turn")
	}
	return p, nil
}

func (g *Game) requireRolled() error {
	if !g.TurnHasRolled {
		return reject(CodeStaleAction, "roll the dice first")
	}
	return nil
}

func (g *Game) occupiedNodes() map[string]bool {
	out := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		out[n.NodeID] = true
	}
	return out
}

func (g *Game) nodeAt(nodeID string) *NodePlacement {
	for i := range g.Nodes {
		if g.Nodes[i].NodeID == nodeID {
			return &g.Nodes[i]
		}
	}
	return nil
}

func (g *Game) edgeTaken(edgeID string) bool {
	for _, e := range g.Edges {
		if e.EdgeID == edgeID {
			return true
		}
	}
	return false
}

func (g *Game) tile(tileID string) *board.Tile {
	for i := range g.Tiles {
		if g.Tiles[i].ID == tileID {
			return &g.Tiles[i]
		}
	}
	return nil
}

// tileCorners returns the corner node ids of t.
func (g *Game) tileCorners(t board.Tile) [6]string {
	ids, ok := g.Graph().HexNodes(t.Hex())
	if !ok {
		c := board.HexCorners(board.AxialToPixel(t.Hex(), board.HexSize), board.HexSize)
		for i, p := range c {
			ids[i] = board.NodeID(p)
		}
	}
	return ids
}

func containsNode(ids [6]string, nodeID string) bool {
	for _, n := range ids {
		if n == nodeID {
			return true
		}
	}
	return false
}

func (g *Game) addLog(format string, args ...any) {
	g.Log = append(g.Log, LogEntry{At: g.now(), Msg: fmt.Sprintf(format, args...)})
	if len(g.Log) > maxLogEntries {
		g.Log = append([]LogEntry(nil), g.Log[len(g.Log)-maxLogEntries:]...)
	}
}

// AddChat appends a chat message. Chat stays open after the game ends.
func (g *Game) AddChat(pid PlayerID, text string) error {
	p, err := g.requirePlayer(pid)
	if err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n < 1 || n > maxChatLength {
		return reject(CodeInvalidInput, "chat message must be 1 to %d characters", maxChatLength)
	}
	g.Chat = append(g.Chat, ChatMessage{At: g.now(), PlayerID: p.ID, Name: p.Name, Text: text})
	if len(g.Chat) > maxChatMessages {
		g.Chat = append([]ChatMessage(nil), g.Chat[len(g.Chat)-maxChatMessages:]...)
	}
	return nil
}

func (g *Game) recordGain(pid PlayerID, res board.Resource, n int) {
	gains := g.Stats.ResourceGains[pid]
	gains.Add(res, n)
	g.Stats.ResourceGains[pid] = gains
}

// Touch stamps the update time; stores call it before saving.
func (g *Game) Touch() {
	g.UpdatedAt = g.now()
}
