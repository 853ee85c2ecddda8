package mapper

import (
	"encoding/json"

	"compliance-review-be/internal/entity"
	"compliance-review-be/internal/model"

	"gorm.io/datatypes"
)

type ReviewAuditMapper struct{}

func NewReviewAuditMapper() *ReviewAuditMapper {
	return &ReviewAuditMapper{}
}

func (m *ReviewAuditMapper) ToModel(a *entity.ReviewAudit) (*model.ReviewAudit, error) {
	if a == nil {
		return nil, nil
	}
	var details datatypes.JSON
	if len(a.Details) > 0 {
		raw, err := json.Marshal(a.Details)
		if err != nil {
			return nil, err
		}
		details = datatypes.JSON(raw)
	}
	return &model.ReviewAudit{
		Id:            a.Id,
		ReviewId:      a.ReviewId,
		EventType:     a.EventType,
		DocumentClass: a.DocumentClass,
		FindingId:     a.FindingId,
		Severity:      a.Severity,
		Positive:      a.Positive,
		Details:       details,
		OccurredAt:    a.OccurredAt,
		CreatedAt:     a.CreatedAt,
	}, nil
}

func (m *ReviewAuditMapper) ToEntity(a *model.ReviewAudit) *entity.ReviewAudit {
	if a == nil {
		return nil
	}
	var details map[string]interface{}
	if len(a.Details) > 0 {
		_ = json.Unmarshal(a.Details, &details)
	}
	return &entity.ReviewAudit{
		Id:            a.Id,
		ReviewId:      a.ReviewId,
		EventType:     a.EventType,
		DocumentClass: a.DocumentClass,
		FindingId:     a.FindingId,
		Severity:      a.Severity,
		Positive:      a.Positive,
		Details:       details,
		OccurredAt:    a.OccurredAt,
		CreatedAt:     a.CreatedAt,
	}
}

func (m *ReviewAuditMapper) ToEntities(models []*model.ReviewAudit) []*entity.ReviewAudit {
	out := make([]*entity.ReviewAudit, 0, len(models))
	for _, a := range models {
		out = append(out, m.ToEntity(a))
	}
	return out
}
