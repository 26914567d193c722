package handlers

// live.go streams a match to spectators over a WebSocket. The client first receives the
// current match view, then a fresh view every time a score or validation changes.

import (
	"context"
	"encoding/json"

	fiberws "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/trentd187/golf-cup/internal/tournament"
	"github.com/trentd187/golf-cup/internal/websocket"
)

// UpgradeGuard rejects plain HTTP requests on WebSocket routes with 426 Upgrade Required.
func UpgradeGuard(c *fiber.Ctx) error {
	if fiberws.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// LiveMatch returns the handler for GET /ws/matches/:id.
//
// Each connection becomes a hub client. A reader goroutine watches for the peer
// closing the socket; the handler goroutine drains the client's Send channel until
// either the peer leaves or the hub closes the channel.
func LiveMatch(hub *websocket.Hub, svc *tournament.Service) fiber.Handler {
	return fiberws.New(func(conn *fiberws.Conn) {
		matchID := conn.Params("id")
		log := zap.L().With(zap.String("match_id", matchID))

		// Register before taking the snapshot so nothing published in between is
		// lost. Views queued meanwhile are delivered after it, so the last one the
		// client sees is current.
		client := websocket.NewClient(matchID)
		hub.Register(client)
		defer hub.Unregister(client)

		// fasthttp recycles the request context once the upgrade completes.
		view, err := svc.MatchView(context.Background(), matchID)
		if err != nil {
			_ = conn.WriteJSON(fiber.Map{"error": err.Error()})
			return
		}
		data, err := json.Marshal(view)
		if err != nil {
			log.Error("encoding match view", zap.Error(err))
			return
		}
		if err := conn.WriteMessage(fiberws.TextMessage, data); err != nil {
			return
		}

		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-closed:
				return
			case msg, ok := <-client.Send:
				if !ok {
					_ = conn.WriteMessage(fiberws.CloseMessage, []byte{})
					return
				}
				if err := conn.WriteMessage(fiberws.TextMessage, msg); err != nil {
					log.Debug("websocket write failed", zap.Error(err))
					return
				}
			}
		}
	})
}
