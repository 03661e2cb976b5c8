package services

import (
	"context"
	"errors"
	"testing"

	"finmentor/internal/events"
	"finmentor/internal/models"
	"finmentor/internal/testutil"
)

type recordingPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func TestAuditLog(t *testing.T) {
	t.Run("writes_row_and_publishes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		pub := &recordingPublisher{}
		svc := NewAuditService(db, pub)

		user := testutil.CreateTestUser(t, db)
		svc.Log(user.ID, "create", "goal", "g-1", "127.0.0.1", map[string]any{"name": "Trip"})

		var entry models.AuditLog
		if err := db.Where("user_id = ?", user.ID).First(&entry).Error; err != nil {
			t.Fatalf("expected audit row: %v", err)
		}
		if entry.Changes != `{"name":"Trip"}` {
			t.Errorf("unexpected changes %q", entry.Changes)
		}
		if len(pub.events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(pub.events))
		}
		if got := pub.events[0].RoutingKey(); got != "goal.create" {
			t.Errorf("expected routing key goal.create, got %s", got)
		}
	})

	t.Run("publish_failure_is_swallowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		pub := &recordingPublisher{err: errors.New("broker down")}
		svc := NewAuditService(db, pub)

		user := testutil.CreateTestUser(t, db)
		svc.Log(user.ID, "delete", "budget", "2024-03", "", nil)

		var count int64
		db.Model(&models.AuditLog{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected audit row despite publish failure, got %d", count)
		}
	})

	t.Run("nil_publisher", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db, nil)

		user := testutil.CreateTestUser(t, db)
		svc.Log(user.ID, "update", "profile", user.ID, "", nil)
	})
}
