package service

import (
	"context"
	"time"

	"compliance-review-be/internal/pkg/logger"
	"compliance-review-be/pkg/events"
	"compliance-review-be/pkg/review"
)

const (
	defaultEventBuffer = 1024
	auditPublishWait   = 5 * time.Second
)

// AuditPublisher ships audited events to durable storage (NATS JetStream).
type AuditPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// IEventService fans workspace events out to the live bus and the audit
// stream. Notify never blocks; Run does the delivery.
type IEventService interface {
	review.Notifier
	Run(ctx context.Context) error
}

type eventService struct {
	queue     chan events.Event
	publisher IPublisherService
	audit     AuditPublisher
	logger    logger.ILogger
}

func NewEventService(publisher IPublisherService, audit AuditPublisher, log logger.ILogger) IEventService {
	return &eventService{
		queue:     make(chan events.Event, defaultEventBuffer),
		publisher: publisher,
		audit:     audit,
		logger:    log,
	}
}

func (s *eventService) Notify(_ context.Context, event events.Event) {
	select {
	case s.queue <- event:
	default:
		s.logger.Warn("Events", "Event queue full, dropping event", map[string]interface{}{
			"type":      event.EventType(),
			"review_id": events.ReviewID(event),
		})
	}
}

func (s *eventService) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			s.drain()
			return nil
		case event := <-s.queue:
			s.dispatch(ctx, event)
		}
	}
}

// drain delivers what is already queued at shutdown.
func (s *eventService) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), auditPublishWait)
	defer cancel()
	for {
		select {
		case event := <-s.queue:
			s.dispatch(ctx, event)
		default:
			return
		}
	}
}

func (s *eventService) dispatch(ctx context.Context, event events.Event) {
	raw, err := events.Marshal(event)
	if err != nil {
		s.logger.Error("Events", "Failed to encode event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, ReviewEventsTopic, raw); err != nil {
			s.logger.Warn("Events", "Failed to publish live event", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}

	if s.audit == nil || !events.Audited(event.EventType()) {
		return
	}
	auditCtx, cancel := context.WithTimeout(ctx, auditPublishWait)
	defer cancel()
	if err := s.audit.Publish(auditCtx, event); err != nil {
		s.logger.Error("Events", "Failed to publish audit event", map[string]interface{}{
			"type":      event.EventType(),
			"review_id": events.ReviewID(event),
			"error":     err.Error(),
		})
	}
}
