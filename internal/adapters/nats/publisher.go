package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/campusroute/internal/core/domain"
)

// SubjectRoutePlanned prefixes per-day route events: campus.route.planned.monday.
const SubjectRoutePlanned = "campus.route.planned"

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS, enables JetStream and ensures the route stream exists.
func NewPublisher(url, stream string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := nats.StreamConfig{
		Name:       stream,
		Subjects:   []string{SubjectRouteEvents},
		Retention:  nats.LimitsPolicy,
		MaxAge:     7 * 24 * time.Hour,
		Storage:    nats.FileStorage,
		Duplicates: 2 * time.Minute,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			conn.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// PublishRoutePlanned publishes the event on the subject of its weekday.
func (p *Publisher) PublishRoutePlanned(ctx context.Context, event *domain.RoutePlanned) error {
	msg, err := routePlannedMsg(event)
	if err != nil {
		return err
	}
	_, err = p.js.PublishMsg(msg, nats.Context(ctx))
	return err
}

// routePlannedMsg builds the JetStream message. Each message carries a fresh ID so
// client retries within the stream's duplicate window are dropped.
func routePlannedMsg(event *domain.RoutePlanned) (*nats.Msg, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	msg := nats.NewMsg(SubjectRoutePlanned + "." + strings.ToLower(event.Day))
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, uuid.NewString())
	msg.Header.Set("Content-Type", "application/json")
	return msg, nil
}

// Ping reports whether the connection is currently usable.
func (p *Publisher) Ping() error {
	if !p.conn.IsConnected() {
		return fmt.Errorf("nats: %s", p.conn.Status())
	}
	return nil
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}
