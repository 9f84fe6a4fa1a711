package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	natsadapter "github.com/samirrijal/campusroute/internal/adapters/nats"
)

const wsPingInterval = 30 * time.Second

// routeFeedRequest is sent by the client to change the days it follows.
type routeFeedRequest struct {
	Action string `json:"action"` // "subscribe" | "unsubscribe"
	Day    string `json:"day"`    // weekday name, "" = all days
}

// RouteEventsGuard rejects plain HTTP requests and answers 503 when no feed is wired.
func RouteEventsGuard(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return newError(c, fiber.StatusUpgradeRequired, "upgrade_required", "this endpoint only speaks WebSocket")
		}
		if deps.Feed == nil {
			return newError(c, fiber.StatusServiceUnavailable, "unavailable", "route events are not enabled")
		}
		return c.Next()
	}
}

// RouteEventsHandler relays route-planned events to a WebSocket client. Every
// client starts on the all-days feed.
// Clients send JSON: {"action":"subscribe","day":"monday"}
func RouteEventsHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		reqID, _ := c.Locals("requestid").(string)
		log := slog.With("remote", c.RemoteAddr().String(), "request_id", reqID)
		log.Info("ws client connected")

		var mu sync.Mutex
		send := func(data []byte) error {
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}
		writeJSON := func(v any) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			return send(data)
		}

		// subject -> cancel; only the read loop below touches it
		subs := make(map[string]func())
		defer func() {
			for _, cancel := range subs {
				cancel()
			}
		}()
		subscribe := func(subject string) error {
			cancel, err := deps.Feed.SubscribeRoutes(subject, func(data []byte) {
				_ = send(data)
			})
			if err != nil {
				return err
			}
			subs[subject] = cancel
			return nil
		}

		if err := subscribe(natsadapter.SubjectRouteEvents); err != nil {
			log.Error("ws default subscribe failed", "error", err)
			return
		}

		done := make(chan struct{})
		defer close(done)
		go func() {
			ticker := time.NewTicker(wsPingInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, raw, err := c.ReadMessage()
			if err != nil {
				break
			}

			var req routeFeedRequest
			if err := json.Unmarshal(raw, &req); err != nil {
				_ = writeJSON(fiber.Map{"error": "invalid JSON"})
				continue
			}
			subject, err := natsadapter.RouteSubject(req.Day)
			if err != nil {
				_ = writeJSON(fiber.Map{"error": err.Error()})
				continue
			}

			switch req.Action {
			case "subscribe":
				if _, ok := subs[subject]; ok {
					_ = writeJSON(fiber.Map{"status": "already subscribed", "subject": subject})
					continue
				}
				if err := subscribe(subject); err != nil {
					_ = writeJSON(fiber.Map{"error": "subscribe failed: " + err.Error()})
					continue
				}
				_ = writeJSON(fiber.Map{"status": "subscribed", "subject": subject})
			case "unsubscribe":
				cancel, ok := subs[subject]
				if !ok {
					_ = writeJSON(fiber.Map{"error": "not subscribed to " + subject})
					continue
				}
				cancel()
				delete(subs, subject)
				_ = writeJSON(fiber.Map{"status": "unsubscribed", "subject": subject})
			default:
				_ = writeJSON(fiber.Map{"error": "unknown action: " + req.Action})
			}
		}

		log.Info("ws client disconnected")
	}
}
