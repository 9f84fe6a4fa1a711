package natsadapter

import (
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectRouteEvents matches every route event on the stream.
const SubjectRouteEvents = "campus.route.>"

// RouteSubject maps a weekday name in any case to its route subject. A blank
// day selects every day's events.
func RouteSubject(day string) (string, error) {
	day = strings.ToLower(strings.TrimSpace(day))
	if day == "" {
		return SubjectRouteEvents, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == day {
			return SubjectRoutePlanned + "." + day, nil
		}
	}
	return "", fmt.Errorf("unknown day %q", day)
}

// Subscriber relays live route events to in-process listeners through plain,
// non-durable subscriptions.
type Subscriber struct {
	conn *nats.Conn
}

// NewSubscriber opens its own NATS connection.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Subscriber{conn: conn}, nil
}

// SubscribeRoutes delivers the payload of every message on subject to fn until
// the returned cancel func is called.
func (s *Subscriber) SubscribeRoutes(subject string, fn func(data []byte)) (func(), error) {
	sub, err := s.conn.Subscribe(subject, func(msg *nats.Msg) {
		fn(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", subject, err)
	}
	return func() { _ = sub.Unsubscribe() }, nil
}

// Close drains the connection, which also ends every open subscription.
func (s *Subscriber) Close() {
	_ = s.conn.Drain()
}
