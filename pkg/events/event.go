package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "FINDING_FIXED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeDocumentSelected    = "DOCUMENT_SELECTED"
	TypeFindingsReady       = "FINDINGS_READY"
	TypeFindingFixed        = "FINDING_FIXED"
	TypeFeedbackRecorded    = "FEEDBACK_RECORDED"
	TypeMessageAppended     = "MESSAGE_APPENDED"
	TypeSuggestionsReplaced = "SUGGESTIONS_REPLACED"
	TypeConversationState   = "CONVERSATION_STATE"
)

// Audited reports whether events of this type are persisted.
func Audited(eventType string) bool {
	switch eventType {
	case TypeDocumentSelected, TypeFindingFixed, TypeFeedbackRecorded:
		return true
	}
	return false
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewReviewEvent stamps an event scoped to one review workspace.
func NewReviewEvent(eventType, reviewID string, data map[string]interface{}) BaseEvent {
	payload := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}
	payload["review_id"] = reviewID
	return BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: time.Now(),
	}
}
