package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"compliance-review-be/internal/entity"
	"compliance-review-be/internal/pkg/logger"
	"compliance-review-be/internal/repository/specification"
	"compliance-review-be/pkg/events"
	pktNats "compliance-review-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	mu       sync.Mutex
	topics   []string
	payloads [][]byte
}

func (p *capturePublisher) Publish(_ context.Context, topic string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *capturePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

type captureAudit struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (a *captureAudit) Publish(_ context.Context, e events.Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
	return a.err
}

func (a *captureAudit) types() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := []string{}
	for _, e := range a.events {
		out = append(out, e.EventType())
	}
	return out
}

func runEvents(t *testing.T, svc IEventService) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = svc.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return cancel
}

func TestEventServiceRoutesEvents(t *testing.T) {
	live := &capturePublisher{}
	audit := &captureAudit{}
	svc := NewEventService(live, audit, logger.NewNop())
	runEvents(t, svc)

	svc.Notify(context.Background(), events.NewReviewEvent(events.TypeMessageAppended, "rev-1", nil))
	svc.Notify(context.Background(), events.NewReviewEvent(events.TypeFindingFixed, "rev-1", map[string]interface{}{"finding_id": "nda-1"}))
	svc.Notify(context.Background(), events.NewReviewEvent(events.TypeFeedbackRecorded, "rev-1", nil))

	require.Eventually(t, func() bool { return live.count() == 3 }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return len(audit.types()) == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, []string{events.TypeFindingFixed, events.TypeFeedbackRecorded}, audit.types())

	live.mu.Lock()
	defer live.mu.Unlock()
	assert.Equal(t, ReviewEventsTopic, live.topics[0])
	decoded, err := events.Unmarshal(live.payloads[1])
	require.NoError(t, err)
	assert.Equal(t, "nda-1", decoded.Data["finding_id"])
}

func TestEventServiceAuditFailureDoesNotStopLive(t *testing.T) {
	live := &capturePublisher{}
	svc := NewEventService(live, &captureAudit{err: errors.New("nats down")}, logger.NewNop())
	runEvents(t, svc)

	svc.Notify(context.Background(), events.NewReviewEvent(events.TypeFindingFixed, "rev-1", nil))
	svc.Notify(context.Background(), events.NewReviewEvent(events.TypeMessageAppended, "rev-1", nil))
	assert.Eventually(t, func() bool { return live.count() == 2 }, time.Second, time.Millisecond)
}

func TestEventServiceDrainsOnShutdown(t *testing.T) {
	live := &capturePublisher{}
	svc := NewEventService(live, nil, logger.NewNop())
	for i := 0; i < 5; i++ {
		svc.Notify(context.Background(), events.NewReviewEvent(events.TypeConversationState, "rev-1", nil))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, svc.Run(ctx))
	assert.Equal(t, 5, live.count())
}

type captureDelivery struct {
	mu  sync.Mutex
	got map[string][][]byte
}

func (d *captureDelivery) Publish(_ context.Context, reviewID string, data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.got[reviewID] = append(d.got[reviewID], data)
}

func (d *captureDelivery) count(reviewID string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.got[reviewID])
}

func TestConsumerServiceForwardsToWatchers(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	delivery := &captureDelivery{got: map[string][][]byte{}}
	consumer := NewConsumerService(pubSub, ReviewEventsTopic, delivery, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- consumer.Consume(ctx) }()

	publisher := NewPublisherService(pubSub)
	raw, err := events.Marshal(events.NewReviewEvent(events.TypeFindingsReady, "rev-9", nil))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_ = publisher.Publish(context.Background(), ReviewEventsTopic, raw)
		return delivery.count("rev-9") > 0
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, publisher.Publish(context.Background(), ReviewEventsTopic, []byte("garbage")))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
}

type memoryAuditRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.ReviewAudit
}

func (r *memoryAuditRepo) Create(_ context.Context, a *entity.ReviewAudit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[a.Id.String()]; !ok {
		r.rows[a.Id.String()] = a
	}
	return nil
}

func (r *memoryAuditRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.ReviewAudit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.ReviewAudit{}
	for _, a := range r.rows {
		out = append(out, a)
	}
	return out, nil
}

func (r *memoryAuditRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

type replaySubscriber struct {
	events []events.Event
	errs   []error
}

func (s *replaySubscriber) Subscribe(ctx context.Context, subject, durable string, handler pktNats.EventHandler) error {
	for _, e := range s.events {
		s.errs = append(s.errs, handler(ctx, e))
	}
	return nil
}

func TestAuditServiceRecordsAndDeduplicates(t *testing.T) {
	fixed := events.NewReviewEvent(events.TypeFindingFixed, "rev-1", map[string]interface{}{
		"document_class": "nda",
		"finding_id":     "nda-3",
		"severity":       "high",
		"epoch":          float64(1),
	})
	feedback := events.NewReviewEvent(events.TypeFeedbackRecorded, "rev-1", map[string]interface{}{
		"document_class": "nda",
		"finding_id":     "nda-3",
		"positive":       false,
	})
	chatter := events.NewReviewEvent(events.TypeMessageAppended, "rev-1", nil)
	orphan := events.BaseEvent{Type: events.TypeFindingFixed, Data: map[string]interface{}{}, OccurredAt: time.Now()}

	repo := &memoryAuditRepo{rows: map[string]*entity.ReviewAudit{}}
	sub := &replaySubscriber{events: []events.Event{fixed, fixed, feedback, chatter, orphan}}
	svc := NewAuditService(sub, repo, logger.NewNop())

	require.NoError(t, svc.Consume(context.Background()))

	assert.NoError(t, sub.errs[0])
	assert.NoError(t, sub.errs[1])
	assert.NoError(t, sub.errs[3])
	assert.ErrorIs(t, sub.errs[4], pktNats.ErrPoison)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	rows, err := svc.History(context.Background(), "rev-1", "")
	require.NoError(t, err)
	for _, row := range rows {
		assert.Equal(t, "nda", row.DocumentClass)
		assert.Equal(t, "nda-3", row.FindingId)
		if row.EventType == events.TypeFeedbackRecorded {
			require.NotNil(t, row.Positive)
			assert.False(t, *row.Positive)
		} else {
			assert.Equal(t, "high", row.Severity)
			assert.Equal(t, float64(1), row.Details["epoch"])
		}
	}
}
