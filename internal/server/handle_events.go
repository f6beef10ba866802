package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/settlersonline/api/internal/notify"
	"github.com/settlersonline/api/internal/store"
)

const eventHello = "hello"

func helloEvent(gameID string) notify.Event {
	return notify.Event{Type: eventHello, GameID: gameID, At: time.Now().UnixMilli()}
}

// handleEvents streams notify events for one game as Server-Sent Events.
// Each event is an unnamed message whose JSON carries its type.
func handleEvents(logger *slog.Logger, st store.Store, bus notify.Bus, pingEvery time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := gameIDFrom(r)
		if _, err := st.LoadGame(r.Context(), gameID); err != nil {
			writeFailure(w, logger, err, "game")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache, no-transform")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		ch, unsubscribe := bus.Subscribe(gameID)
		defer unsubscribe()

		send := func(ev notify.Event) {
			data, _ := json.Marshal(ev)
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
		send(helloEvent(gameID))

		ping := time.NewTicker(pingEvery)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case ev := <-ch:
				send(ev)
			case <-ping.C:
				fmt.Fprintf(w, ": ping %d\n\n", time.Now().UnixMilli())
				flusher.Flush()
			}
		}
	}
}
