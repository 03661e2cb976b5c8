// Package events publishes domain events describing successful writes.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event describes a change to a user's resource.
type Event struct {
	Action       string         `json:"action"`
	ResourceType string         `json:"resourceType"`
	ResourceID   string         `json:"resourceId"`
	UserID       string         `json:"userId"`
	Changes      map[string]any `json:"changes,omitempty"`
	OccurredAt   time.Time      `json:"occurredAt"`
}

// RoutingKey is "<resourceType>.<action>", e.g. "goal.create".
func (e Event) RoutingKey() string {
	return e.ResourceType + "." + e.Action
}

// ToJSON encodes the event body.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
