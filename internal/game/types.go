package game

import (
	"time"

	"github.com/settlersonline/api/internal/board"
)

// PlayerID is the opaque token a player receives when joining.
type PlayerID string

type Phase string

const (
	PhaseLobby    Phase = "lobby"
	PhaseSetup    Phase = "setup"
	PhaseMain     Phase = "main"
	PhaseFinished Phase = "finished"
)

type SetupStep string

const (
	StepPlaceSettlement SetupStep = "place_settlement"
	StepPlaceRoad       SetupStep = "place_road"
)

type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

type BuildingKind string

const (
	Settlement BuildingKind = "settlement"
	City       BuildingKind = "city"
)

type DevCardKind string

const (
	Knight       DevCardKind = "knight"
	VictoryPoint DevCardKind = "victory"
	RoadBuilding DevCardKind = "road_building"
	YearOfPlenty DevCardKind = "year_of_plenty"
	Monopoly     DevCardKind = "monopoly"
)

type RobberReason string

const (
	ReasonRoll7  RobberReason = "roll7"
	ReasonKnight RobberReason = "knight"
)

type OfferStatus string

const (
	OfferOpen      OfferStatus = "open"
	OfferAccepted  OfferStatus = "accepted"
	OfferRejected  OfferStatus = "rejected"
	OfferCancelled OfferStatus = "cancelled"
)

// Resources is a hand or a cost, one count per resource.
type Resources struct {
	Wood  int `json:"wood"`
	Brick int `json:"brick"`
	Wheat int `json:"wheat"`
	Sheep int `json:"sheep"`
	Ore   int `json:"ore"`
}

func (r *Resources) ptr(res board.Resource) *int {
	switch res {
	case board.Wood:
		return &r.Wood
	case board.Brick:
		return &r.Brick
	case board.Wheat:
		return &r.Wheat
	case board.Sheep:
		return &r.Sheep
	case board.Ore:
		return &r.Ore
	}
	return nil
}

// Get returns the count for res.
func (r Resources) Get(res board.Resource) int {
	if p := r.ptr(res); p != nil {
		return *p
	}
	return 0
}

// Add adds n (which may be negative) of res.
func (r *Resources) Add(res board.Resource, n int) {
	if p := r.ptr(res); p != nil {
		*p += n
	}
}

// Set overwrites the count for res.
func (r *Resources) Set(res board.Resource, n int) {
	if p := r.ptr(res); p != nil {
		*p = n
	}
}

func (r Resources) Total() int {
	return r.Wood + r.Brick + r.Wheat + r.Sheep + r.Ore
}

// Covers reports whether r holds at least need of every resource.
func (r Resources) Covers(need Resources) bool {
	for _, res := range board.Resources {
		if r.Get(res) < need.Get(res) {
			return false
		}
	}
	return true
}

func (r *Resources) Plus(o Resources) {
	for _, res := range board.Resources {
		r.Add(res, o.Get(res))
	}
}

func (r *Resources) Minus(o Resources) {
	for _, res := range board.Resources {
		r.Add(res, -o.Get(res))
	}
}

// Ports records the harbors a player has access to.
type Ports struct {
	ThreeToOne bool                    `json:"threeToOne"`
	TwoToOne   map[board.Resource]bool `json:"twoToOne"`
}

type DevCard struct {
	ID         string      `json:"id"`
	Kind       DevCardKind `json:"kind"`
	BoughtTurn int         `json:"boughtTurn"`
}

type Player struct {
	ID               PlayerID  `json:"id"`
	Name             string    `json:"name"`
	Color            string    `json:"color"`
	VictoryPoints    int       `json:"victoryPoints"`
	Roads            int       `json:"roads"`
	Settlements      int       `json:"settlements"`
	Cities           int       `json:"cities"`
	Resources        Resources `json:"resources"`
	Ports            Ports     `json:"ports"`
	DevCards         []DevCard `json:"devCards"`
	KnightsPlayed    int       `json:"knightsPlayed"`
	FreeRoadsToPlace int       `json:"freeRoadsToPlace"`
	LongestRoadAward bool      `json:"longestRoadAward"`
}

// HiddenVictoryPoints counts victory cards held, which are not announced
// until the game ends.
func (p *Player) HiddenVictoryPoints() int {
	n := 0
	for _, c := range p.DevCards {
		if c.Kind == VictoryPoint {
			n++
		}
	}
	return n
}

type NodePlacement struct {
	NodeID   string       `json:"nodeId"`
	PlayerID PlayerID     `json:"playerId"`
	Kind     BuildingKind `json:"kind"`
}

type EdgePlacement struct {
	EdgeID   string   `json:"edgeId"`
	PlayerID PlayerID `json:"playerId"`
}

// Setup tracks the snake draft. Done counts completed settlement+road pairs
// per player.
type Setup struct {
	Round                   int              `json:"round"`
	Direction               Direction        `json:"direction"`
	PendingSettlementNodeID string           `json:"pendingSettlementNodeId,omitempty"`
	Done                    map[PlayerID]int `json:"done"`
}

type Robber struct {
	Pending       bool         `json:"pending"`
	ByPlayerID    PlayerID     `json:"byPlayerId,omitempty"`
	Reason        RobberReason `json:"reason,omitempty"`
	AwaitingSteal bool         `json:"awaitingSteal"`
	Candidates    []PlayerID   `json:"candidates"`
}

type Roll struct {
	At       time.Time `json:"ts"`
	PlayerID PlayerID  `json:"playerId"`
	D1       int       `json:"d1"`
	D2       int       `json:"d2"`
	Sum      int       `json:"sum"`
}

// TradeOffer is a peer trade proposal. An empty ToPlayerID is open to
// anyone.
type TradeOffer struct {
	ID           string      `json:"id"`
	FromPlayerID PlayerID    `json:"fromPlayerId"`
	ToPlayerID   PlayerID    `json:"toPlayerId,omitempty"`
	Give         Resources   `json:"give"`
	Get          Resources   `json:"get"`
	Status       OfferStatus `json:"status"`
	At           time.Time   `json:"ts"`
}

type LogEntry struct {
	At  time.Time `json:"ts"`
	Msg string    `json:"msg"`
}

type ChatMessage struct {
	At       time.Time `json:"ts"`
	PlayerID PlayerID  `json:"playerId,omitempty"`
	Name     string    `json:"name"`
	Text     string    `json:"text"`
}

// Stats is observability only and never affects play.
type Stats struct {
	RollCounts    map[int]int            `json:"rollCounts"`
	ResourceGains map[PlayerID]Resources `json:"resourceGains"`
}

// CustomMap is the board layout copied from a map template at creation.
type CustomMap struct {
	Hexes []board.Hex      `json:"hexes"`
	Ports []board.PortSpec `json:"ports"`
}

type Settings struct {
	MaxVictoryPoints int           `json:"maxVictoryPoints"`
	MaxPlayers       int           `json:"maxPlayers"`
	MinPlayers       int           `json:"minPlayers"`
	MapType          board.MapType `json:"mapType"`
	MapTemplateID    string        `json:"mapTemplateId,omitempty"`
	CustomMap        *CustomMap    `json:"customMap,omitempty"`
}

// Game is the aggregate root. All rule operations are methods on *Game and
// assume the caller holds exclusive access for the duration of one call.
type Game struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Settings  Settings  `json:"settings"`

	Phase           Phase     `json:"phase"`
	SetupStep       SetupStep `json:"setupStep"`
	Setup           Setup     `json:"setup"`
	CurrentPlayerID PlayerID  `json:"currentPlayerId,omitempty"`
	TurnNumber      int       `json:"turnNumber"`
	TurnHasRolled   bool      `json:"turnHasRolled"`

	Players []*Player       `json:"players"`
	Tiles   []board.Tile    `json:"tiles"`
	Ports   []board.Port    `json:"ports"`
	Nodes   []NodePlacement `json:"nodes"`
	Edges   []EdgePlacement `json:"edges"`

	DevDeck           []DevCardKind `json:"devDeck"`
	DevPlayedThisTurn bool          `json:"devPlayedThisTurn"`
	LastRoll          *Roll         `json:"lastRoll,omitempty"`
	Robber            Robber        `json:"robber"`

	LongestRoadPlayerID PlayerID `json:"longestRoadPlayerId,omitempty"`
	LongestRoadLength   int      `json:"longestRoadLength"`
	LargestArmyPlayerID PlayerID `json:"largestArmyPlayerId,omitempty"`
	LargestArmySize     int      `json:"largestArmySize"`

	TradeOffers []TradeOffer  `json:"tradeOffers"`
	Log         []LogEntry    `json:"log"`
	Chat        []ChatMessage `json:"chat"`
	Stats       Stats         `json:"stats"`

	WinnerPlayerID PlayerID   `json:"winnerPlayerId,omitempty"`
	FinishedAt     *time.Time `json:"finishedAt,omitempty"`

	graph *board.Graph
	rt    Runtime
}
