package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Envelope is the wire form of an Event on every bus.
type Envelope struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}

func Marshal(e Event) ([]byte, error) {
	return json.Marshal(Envelope{
		Type:       e.EventType(),
		OccurredAt: e.Timestamp(),
		Data:       e.Payload(),
	})
}

func Unmarshal(data []byte) (BaseEvent, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return BaseEvent{}, fmt.Errorf("decode event envelope: %w", err)
	}
	if env.Type == "" {
		return BaseEvent{}, fmt.Errorf("decode event envelope: missing type")
	}
	return BaseEvent{Type: env.Type, Data: env.Data, OccurredAt: env.OccurredAt}, nil
}

// ReviewID returns the review the event belongs to, if any.
func ReviewID(e Event) string {
	id, _ := e.Payload()["review_id"].(string)
	return id
}

// Subject is the NATS subject an event type is published on.
func Subject(eventType string) string {
	return "events." + eventType
}
