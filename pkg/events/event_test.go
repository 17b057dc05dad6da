package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Score float64 `json:"score"`
}

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()

	before := time.Now().UTC()
	event := NewBaseEvent("loanrisk.sample", aggregateID, "Sample", samplePayload{Score: 0.25})
	after := time.Now().UTC()

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, "loanrisk.sample", event.EventType())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, "Sample", event.AggregateType())
	assert.False(t, event.OccurredAt().Before(before))
	assert.False(t, event.OccurredAt().After(after))
	assert.JSONEq(t, `{"score":0.25}`, string(event.Payload()))
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestNewEnvelope(t *testing.T) {
	event := NewBaseEvent("loanrisk.sample", uuid.New(), "Sample", samplePayload{Score: 1})

	data, err := json.Marshal(NewEnvelope(event))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "loanrisk.sample", decoded["event_type"])
	assert.Equal(t, event.EventID().String(), decoded["event_id"])
	assert.Equal(t, map[string]any{"score": float64(1)}, decoded["payload"])
}

func TestNewEnvelope_EmptyPayload(t *testing.T) {
	env := NewEnvelope(BaseEvent{})
	assert.Equal(t, json.RawMessage("null"), env.Payload)
}

func TestEventCollector(t *testing.T) {
	var c EventCollector
	c.Record(NewBaseEvent("a", uuid.New(), "Sample", nil))
	c.Record(NewBaseEvent("b", uuid.New(), "Sample", nil))
	c.Record(NewBaseEvent("a", uuid.New(), "Sample", nil))

	assert.Equal(t, 3, c.Pending())
	assert.Len(t, c.OfType("a"), 2)
	assert.Empty(t, c.OfType("c"))

	drained := c.Drain()
	assert.Len(t, drained, 3)
	assert.Equal(t, 0, c.Pending())
	assert.Empty(t, c.Drain())
}
