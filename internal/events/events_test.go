package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEvent_RoutingKey(t *testing.T) {
	e := Event{Action: "update_amount", ResourceType: "goal"}
	require.Equal(t, "goal.update_amount", e.RoutingKey())
}

func TestEvent_ToJSON(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	e := Event{
		Action:       "create",
		ResourceType: "budget",
		ResourceID:   "b-1",
		UserID:       "u-1",
		Changes:      map[string]any{"year": 2025},
		OccurredAt:   at,
	}

	body, err := e.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Equal(t, "budget", decoded["resourceType"])
	require.Equal(t, "b-1", decoded["resourceId"])
	require.Equal(t, "2025-03-01T10:00:00Z", decoded["occurredAt"])
}

func TestNew_WithoutURL(t *testing.T) {
	p, err := New("", "finmentor.events")
	require.NoError(t, err)
	require.IsType(t, NopPublisher{}, p)
	require.NoError(t, p.Publish(context.Background(), Event{}))
	require.NoError(t, p.Close())
}
