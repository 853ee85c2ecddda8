package specification

import "gorm.io/gorm"

type ByReviewID struct {
	ReviewID string
}

func (s ByReviewID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("review_id = ?", s.ReviewID)
}

type ByEventType struct {
	EventType string
}

func (s ByEventType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("event_type = ?", s.EventType)
}
