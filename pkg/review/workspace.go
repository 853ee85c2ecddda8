// Package review ties a document-class selection to its remediation and
// conversation sessions. Every selection discards the previous sessions and
// builds new ones; work started for a superseded selection never touches the
// new sessions.
package review

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"compliance-review-be/internal/pkg/logger"
	"compliance-review-be/pkg/catalog"
	"compliance-review-be/pkg/collaborator"
	"compliance-review-be/pkg/events"
	"compliance-review-be/pkg/review/conversation"
	"compliance-review-be/pkg/review/pacing"
	"compliance-review-be/pkg/review/remediation"
	"compliance-review-be/pkg/review/suggestion"
	"compliance-review-be/pkg/sampler"
)

var (
	ErrReviewNotFound     = errors.New("review not found")
	ErrNoDocumentSelected = errors.New("no document class selected")
	ErrWorkspaceClosed    = errors.New("review workspace closed")
)

// Notifier receives every event raised inside a workspace.
type Notifier interface {
	Notify(ctx context.Context, event events.Event)
}

type NotifierFunc func(ctx context.Context, event events.Event)

func (f NotifierFunc) Notify(ctx context.Context, event events.Event) {
	f(ctx, event)
}

type Config struct {
	AnalysisDelay time.Duration
	FixDelay      time.Duration
	Pacer         *pacing.Pacer
}

func DefaultConfig() Config {
	return Config{
		AnalysisDelay: remediation.DefaultAnalysisDelay,
		FixDelay:      remediation.DefaultFixDelay,
		Pacer:         pacing.NewDefault(nil),
	}
}

type Dependencies struct {
	Sampler     *sampler.Sampler
	Suggestions *suggestion.Adapter
	Analysis    collaborator.AnalysisCollaborator
	Notifier    Notifier
	Logger      logger.ILogger
}

type Snapshot struct {
	ID           string                 `json:"id"`
	Class        catalog.DocumentClass  `json:"document_class,omitempty"`
	Epoch        uint64                 `json:"epoch"`
	Remediation  *remediation.Snapshot  `json:"remediation,omitempty"`
	Conversation *conversation.Snapshot `json:"conversation,omitempty"`
}

type Workspace struct {
	id    string
	cfg   Config
	deps  Dependencies
	epoch atomic.Uint64

	mu           sync.Mutex
	class        catalog.DocumentClass
	remediation  *remediation.Session
	conversation *conversation.Session
	stopFetch    context.CancelFunc
	closed       bool
	wg           sync.WaitGroup
}

func NewWorkspace(id string, cfg Config, deps Dependencies) *Workspace {
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	if deps.Sampler == nil {
		deps.Sampler = sampler.New(nil)
	}
	if deps.Suggestions == nil {
		deps.Suggestions = suggestion.NewAdapter(nil, deps.Sampler.Source(), deps.Logger)
	}
	return &Workspace{id: id, cfg: cfg, deps: deps}
}

func (w *Workspace) ID() string {
	return w.id
}

// Epoch increments on every selection.
func (w *Workspace) Epoch() uint64 {
	return w.epoch.Load()
}

// emitter tags session events with their selection epoch and drops those
// raised after the selection was superseded.
func (w *Workspace) emitter(epoch uint64, class catalog.DocumentClass) func(string, map[string]interface{}) {
	return func(eventType string, data map[string]interface{}) {
		if w.deps.Notifier == nil || w.epoch.Load() != epoch {
			return
		}
		payload := make(map[string]interface{}, len(data)+2)
		for k, v := range data {
			payload[k] = v
		}
		payload["epoch"] = epoch
		payload["document_class"] = class
		w.deps.Notifier.Notify(context.Background(), events.NewReviewEvent(eventType, w.id, payload))
	}
}

// Select starts a new review of class, discarding the current sessions.
func (w *Workspace) Select(class catalog.DocumentClass) error {
	set, err := w.deps.Sampler.Sample(class)
	if err != nil {
		return err
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWorkspaceClosed
	}
	epoch := w.epoch.Add(1)
	emit := w.emitter(epoch, class)

	oldRemediation, oldConversation, oldStop := w.remediation, w.conversation, w.stopFetch

	// Notifiers must not call back into the workspace.
	emit(events.TypeDocumentSelected, map[string]interface{}{"sample_size": len(set.Findings)})

	rem := remediation.New(set, remediation.Options{
		AnalysisDelay: w.cfg.AnalysisDelay,
		FixDelay:      w.cfg.FixDelay,
		Emit:          emit,
	})
	conv := conversation.New(class, conversation.Options{
		Analysis:    w.deps.Analysis,
		Suggestions: w.deps.Suggestions,
		Pacer:       w.cfg.Pacer,
		Analyzing:   rem.IsAnalyzing,
		Emit:        emit,
		Logger:      w.deps.Logger,
	})
	fetchCtx, stop := context.WithCancel(context.Background())

	w.class = class
	w.remediation = rem
	w.conversation = conv
	w.stopFetch = stop
	w.wg.Add(1)
	w.mu.Unlock()

	if oldStop != nil {
		oldStop()
	}
	if oldRemediation != nil {
		oldRemediation.Close()
	}
	if oldConversation != nil {
		oldConversation.Close()
	}

	w.deps.Logger.Info("Review", "Document class selected", map[string]interface{}{
		"review_id":      w.id,
		"document_class": class,
		"epoch":          epoch,
	})

	go w.seedSuggestions(fetchCtx, epoch, class)
	return nil
}

func (w *Workspace) seedSuggestions(ctx context.Context, epoch uint64, class catalog.DocumentClass) {
	defer w.wg.Done()

	prompts := w.deps.Suggestions.FetchInitial(ctx, class)

	w.mu.Lock()
	if w.closed || w.epoch.Load() != epoch {
		w.mu.Unlock()
		return
	}
	conv := w.conversation
	w.mu.Unlock()

	conv.SeedSuggestions(prompts)
}

func (w *Workspace) current() (*remediation.Session, *conversation.Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, nil, ErrWorkspaceClosed
	}
	if w.remediation == nil {
		return nil, nil, ErrNoDocumentSelected
	}
	return w.remediation, w.conversation, nil
}

func (w *Workspace) Remediation() (*remediation.Session, error) {
	rem, _, err := w.current()
	return rem, err
}

func (w *Workspace) Conversation() (*conversation.Session, error) {
	_, conv, err := w.current()
	return conv, err
}

func (w *Workspace) ApplyFix(ctx context.Context, findingID string) (remediation.FixResult, error) {
	rem, err := w.Remediation()
	if err != nil {
		return remediation.FixResult{}, err
	}
	return rem.ApplyFix(ctx, findingID)
}

func (w *Workspace) RecordFeedback(findingID string, positive bool) error {
	rem, err := w.Remediation()
	if err != nil {
		return err
	}
	return rem.RecordFeedback(findingID, positive)
}

func (w *Workspace) Ask(ctx context.Context, text string) (collaborator.Message, error) {
	conv, err := w.Conversation()
	if err != nil {
		return collaborator.Message{}, err
	}
	return conv.Ask(ctx, text)
}

func (w *Workspace) AskSuggestion(ctx context.Context, index int) (collaborator.Message, error) {
	conv, err := w.Conversation()
	if err != nil {
		return collaborator.Message{}, err
	}
	return conv.AskSuggestion(ctx, index)
}

func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	snap := Snapshot{ID: w.id, Class: w.class, Epoch: w.epoch.Load()}
	rem, conv := w.remediation, w.conversation
	w.mu.Unlock()

	if rem != nil {
		r := rem.Snapshot()
		snap.Remediation = &r
	}
	if conv != nil {
		c := conv.Snapshot()
		snap.Conversation = &c
	}
	return snap
}

// Closed reports whether Close has been called.
func (w *Workspace) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// Close discards the sessions and waits for background work to stop.
func (w *Workspace) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	rem, conv, stop := w.remediation, w.conversation, w.stopFetch
	w.mu.Unlock()

	if stop != nil {
		stop()
	}
	if rem != nil {
		rem.Close()
	}
	if conv != nil {
		conv.Close()
	}
	w.wg.Wait()
}
