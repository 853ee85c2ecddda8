package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReviewAudit is one persisted reviewer action (selection, fix or feedback).
type ReviewAudit struct {
	Id            uuid.UUID
	ReviewId      string
	EventType     string
	DocumentClass string
	FindingId     string
	Severity      string
	Positive      *bool
	Details       map[string]interface{}
	OccurredAt    time.Time
	CreatedAt     time.Time
}
