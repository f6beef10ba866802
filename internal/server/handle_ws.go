package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/settlersonline/api/internal/notify"
	"github.com/settlersonline/api/internal/store"
)

// handleWS pushes the same events as handleEvents over a websocket. The
// connection is send-only; client messages close it.
func handleWS(logger *slog.Logger, st store.Store, bus notify.Bus, pingEvery time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := gameIDFrom(r)
		if _, err := st.LoadGame(r.Context(), gameID); err != nil {
			writeFailure(w, logger, err, "game")
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ch, unsubscribe := bus.Subscribe(gameID)
		defer unsubscribe()

		ctx := conn.CloseRead(r.Context())

		if err := writeEvent(ctx, conn, helloEvent(gameID)); err != nil {
			logger.Debug("websocket write failed", "error", err)
			return
		}

		ping := time.NewTicker(pingEvery)
		defer ping.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Debug("websocket closed", "game_id", gameID)
				conn.Close(websocket.StatusNormalClosure, "")
				return
			case ev := <-ch:
				if err := writeEvent(ctx, conn, ev); err != nil {
					logger.Debug("websocket write failed", "error", err)
					return
				}
			case <-ping.C:
				pctx, cancel := context.WithTimeout(ctx, pingEvery)
				err := conn.Ping(pctx)
				cancel()
				if err != nil {
					logger.Debug("websocket ping failed", "error", err)
					return
				}
			}
		}
	}
}

func writeEvent(ctx context.Context, conn *websocket.Conn, ev notify.Event) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return wsjson.Write(ctx, conn, ev)
}
