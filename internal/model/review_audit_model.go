package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ReviewAudit struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ReviewId      string         `gorm:"type:varchar(64);not null;index:idx_review_audits_review_occurred,priority:1" json:"review_id"`
	EventType     string         `gorm:"type:varchar(50);not null;index:idx_review_audits_event_type" json:"event_type"`
	DocumentClass string         `gorm:"type:varchar(20);not null" json:"document_class"`
	FindingId     string         `gorm:"type:varchar(32)" json:"finding_id,omitempty"`
	Severity      string         `gorm:"type:varchar(10)" json:"severity,omitempty"`
	Positive      *bool          `json:"positive,omitempty"`
	Details       datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`
	OccurredAt    time.Time      `gorm:"not null;index:idx_review_audits_review_occurred,priority:2" json:"occurred_at"`
	CreatedAt     time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ReviewAudit) TableName() string {
	return "review_audits"
}
