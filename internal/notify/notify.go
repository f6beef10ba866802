// Package notify fans out "game changed" signals to connected clients.
//
// Events carry no game state. Subscribers re-fetch their own view after
// each one, so a dropped or duplicated event only costs a refresh.
package notify

import (
	"context"
	"sync"
	"time"
)

// EventUpdate is the only event type published after a game is saved.
const EventUpdate = "update"

type Event struct {
	Type   string `json:"type"`
	GameID string `json:"gameId"`
	At     int64  `json:"at"`
}

func newEvent(gameID string) Event {
	return Event{Type: EventUpdate, GameID: gameID, At: time.Now().UnixMilli()}
}

// Publisher announces that a game has been saved.
type Publisher interface {
	Publish(ctx context.Context, gameID string)
}

// Bus is a Publisher whose events can also be received.
type Bus interface {
	Publisher
	Subscribe(gameID string) (<-chan Event, func())
}

// Broker is an in-process pub/sub keyed by game id.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe returns a channel of events for gameID and a func that
// unsubscribes. The channel is never closed.
func (b *Broker) Subscribe(gameID string) (<-chan Event, func()) {
	ch := make(chan Event, 16)
	b.mu.Lock()
	if b.subs[gameID] == nil {
		b.subs[gameID] = make(map[chan Event]struct{})
	}
	b.subs[gameID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() { b.unsubscribe(gameID, ch) })
	}
}

func (b *Broker) unsubscribe(gameID string, ch chan Event) {
	b.mu.Lock()
	delete(b.subs[gameID], ch)
	if len(b.subs[gameID]) == 0 {
		delete(b.subs, gameID)
	}
	b.mu.Unlock()
}

// Publish delivers an update event to local subscribers of gameID.
func (b *Broker) Publish(_ context.Context, gameID string) {
	b.deliver(newEvent(gameID))
}

func (b *Broker) deliver(ev Event) {
	b.mu.RLock()
	for ch := range b.subs[ev.GameID] {
		select {
		case ch <- ev:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}

// Subscribers returns the number of local subscribers of gameID.
func (b *Broker) Subscribers(gameID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[gameID])
}
