package service

import (
	"context"
	"fmt"
	"time"

	"compliance-review-be/internal/entity"
	"compliance-review-be/internal/pkg/logger"
	"compliance-review-be/internal/repository/contract"
	"compliance-review-be/internal/repository/specification"
	"compliance-review-be/pkg/events"
	pktNats "compliance-review-be/pkg/nats"

	"github.com/google/uuid"
)

const AuditDurableName = "review-audit"

// AuditSubscriber is the durable event source the audit trail is built from.
type AuditSubscriber interface {
	Subscribe(ctx context.Context, subject, durableName string, handler pktNats.EventHandler) error
}

type IAuditService interface {
	Consume(ctx context.Context) error
	Record(ctx context.Context, event events.Event) error
	History(ctx context.Context, reviewID, eventType string) ([]*entity.ReviewAudit, error)
}

type auditService struct {
	subscriber AuditSubscriber
	repo       contract.ReviewAuditRepository
	logger     logger.ILogger
}

func NewAuditService(subscriber AuditSubscriber, repo contract.ReviewAuditRepository, log logger.ILogger) IAuditService {
	return &auditService{subscriber: subscriber, repo: repo, logger: log}
}

func (s *auditService) Consume(ctx context.Context) error {
	return s.subscriber.Subscribe(ctx, pktNats.StreamSubjects, AuditDurableName, s.Record)
}

// Record persists one audited event. Ids are derived from the event so a
// redelivery maps onto the same row.
func (s *auditService) Record(ctx context.Context, event events.Event) error {
	if !events.Audited(event.EventType()) {
		return nil
	}
	audit, err := auditFromEvent(event)
	if err != nil {
		return fmt.Errorf("%w: %v", pktNats.ErrPoison, err)
	}
	if err := s.repo.Create(ctx, audit); err != nil {
		return err
	}
	s.logger.Debug("Audit", "Review action recorded", map[string]interface{}{
		"review_id": audit.ReviewId,
		"type":      audit.EventType,
	})
	return nil
}

// History lists a review's audited actions oldest first, optionally
// narrowed to one event type.
func (s *auditService) History(ctx context.Context, reviewID, eventType string) ([]*entity.ReviewAudit, error) {
	specs := []specification.Specification{specification.ByReviewID{ReviewID: reviewID}}
	if eventType != "" {
		specs = append(specs, specification.ByEventType{EventType: eventType})
	}
	specs = append(specs, specification.OrderBy{Field: "occurred_at"})
	return s.repo.FindAll(ctx, specs...)
}

func auditFromEvent(event events.Event) (*entity.ReviewAudit, error) {
	payload := event.Payload()
	reviewID := events.ReviewID(event)
	if reviewID == "" {
		return nil, fmt.Errorf("event %s has no review_id", event.EventType())
	}

	audit := &entity.ReviewAudit{
		ReviewId:      reviewID,
		EventType:     event.EventType(),
		DocumentClass: stringField(payload, "document_class"),
		FindingId:     stringField(payload, "finding_id"),
		Severity:      stringField(payload, "severity"),
		OccurredAt:    event.Timestamp().UTC(),
		CreatedAt:     time.Now().UTC(),
		Details:       map[string]interface{}{},
	}
	if p, ok := payload["positive"].(bool); ok {
		audit.Positive = &p
	}
	for k, v := range payload {
		switch k {
		case "review_id", "document_class", "finding_id", "severity", "positive":
			continue
		}
		audit.Details[k] = v
	}

	key := fmt.Sprintf("%s|%s|%s|%d", audit.ReviewId, audit.EventType, audit.FindingId, audit.OccurredAt.UnixNano())
	audit.Id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
	return audit, nil
}

func stringField(payload map[string]interface{}, key string) string {
	switch v := payload[key].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
