package natsadapter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/campusroute/internal/core/domain"
)

func TestRoutePlannedMsg(t *testing.T) {
	ev := &domain.RoutePlanned{
		Day:            "Wednesday",
		CRNs:           []string{"10001", "10002"},
		Stops:          []string{"59", "11"},
		Segments:       1,
		DistanceMeters: 350,
		PlannedAt:      time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC),
	}

	msg, err := routePlannedMsg(ev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Subject != "campus.route.planned.wednesday" {
		t.Errorf("unexpected subject %q", msg.Subject)
	}
	if msg.Header.Get(nats.MsgIdHdr) == "" {
		t.Error("expected a message id header")
	}

	var decoded domain.RoutePlanned
	if err := json.Unmarshal(msg.Data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.DistanceMeters != 350 || len(decoded.Stops) != 2 {
		t.Errorf("unexpected payload: %+v", decoded)
	}

	again, _ := routePlannedMsg(ev)
	if again.Header.Get(nats.MsgIdHdr) == msg.Header.Get(nats.MsgIdHdr) {
		t.Error("expected distinct message ids per publish")
	}
}
