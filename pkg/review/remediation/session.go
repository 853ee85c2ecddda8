// Package remediation tracks which sampled findings have been fixed and what
// feedback the reviewer left on each of them.
package remediation

import (
	"context"
	"errors"
	"sync"
	"time"

	"compliance-review-be/pkg/catalog"
	"compliance-review-be/pkg/events"
	"compliance-review-be/pkg/review/pacing"
	"compliance-review-be/pkg/sampler"
)

var (
	ErrUnknownFinding     = errors.New("unknown finding")
	ErrAlreadyFixed       = errors.New("finding already fixed")
	ErrAnalysisInProgress = errors.New("analysis in progress")
	ErrSessionClosed      = errors.New("remediation session closed")
)

// DefaultRemediationText is shown when a finding carries no fix description.
const DefaultRemediationText = "The issue has been automatically resolved."

const (
	DefaultAnalysisDelay = 2500 * time.Millisecond
	DefaultFixDelay      = 1500 * time.Millisecond
)

// EmitFunc receives session events. It is called without locks held.
type EmitFunc func(eventType string, data map[string]interface{})

type Options struct {
	// AnalysisDelay is how long the sampled set stays hidden after creation.
	AnalysisDelay time.Duration
	// FixDelay is the acknowledgment delay of ApplyFix.
	FixDelay time.Duration
	Emit     EmitFunc
}

// Record is the remediation state of one finding.
type Record struct {
	FindingID string `json:"finding_id"`
	Fixed     bool   `json:"fixed"`
	Feedback  *bool  `json:"feedback,omitempty"`
}

type FixResult struct {
	FindingID       string `json:"finding_id"`
	RemediationText string `json:"remediation_text"`
	AlreadyFixed    bool   `json:"already_fixed"`
}

type FindingState struct {
	catalog.Finding
	Fixed    bool  `json:"fixed"`
	Feedback *bool `json:"feedback,omitempty"`
}

type Snapshot struct {
	Class     catalog.DocumentClass `json:"document_class"`
	Analyzing bool                  `json:"analyzing"`
	Findings  []FindingState        `json:"findings"`
}

type Session struct {
	mu        sync.RWMutex
	set       sampler.SampledFindingSet
	records   map[string]*Record
	pending   map[string]*pendingFix
	analyzing bool
	closed    bool
	ready     chan struct{}

	opts   Options
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New starts a session over set. Findings stay hidden, and fix/feedback are
// rejected, until the analysis delay has elapsed.
func New(set sampler.SampledFindingSet, opts Options) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		set:       set,
		records:   make(map[string]*Record, len(set.Findings)),
		pending:   make(map[string]*pendingFix),
		analyzing: true,
		ready:     make(chan struct{}),
		opts:      opts,
		ctx:       ctx,
		cancel:    cancel,
	}

	s.wg.Add(1)
	go s.reveal()

	return s
}

func (s *Session) reveal() {
	defer s.wg.Done()

	if err := pacing.Sleep(s.ctx, s.opts.AnalysisDelay); err != nil {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.analyzing = false
	close(s.ready)
	s.mu.Unlock()

	ids := make([]string, 0, len(s.set.Findings))
	for _, f := range s.set.Findings {
		ids = append(ids, f.ID)
	}
	s.emit(events.TypeFindingsReady, map[string]interface{}{
		"document_class": s.set.Class,
		"finding_ids":    ids,
	})
}

func (s *Session) emit(eventType string, data map[string]interface{}) {
	if s.opts.Emit != nil {
		s.opts.Emit(eventType, data)
	}
}

func (s *Session) Class() catalog.DocumentClass {
	return s.set.Class
}

// Ready is closed once the sampled findings become available, or when the
// session is closed first; IsAnalyzing tells the two apart.
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

func (s *Session) IsAnalyzing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyzing
}

// Findings returns the sampled set, or nil while analyzing.
func (s *Session) Findings() []catalog.Finding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.analyzing {
		return nil
	}
	out := make([]catalog.Finding, len(s.set.Findings))
	copy(out, s.set.Findings)
	return out
}

// Unfixed returns the sampled findings not yet fixed, in sample order.
func (s *Session) Unfixed() []catalog.Finding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.analyzing {
		return nil
	}
	var out []catalog.Finding
	for _, f := range s.set.Findings {
		if rec, ok := s.records[f.ID]; ok && rec.Fixed {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Record returns the state of id. Untouched findings report a zero record.
func (s *Session) Record(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set.Contains(id) {
		return Record{}, ErrUnknownFinding
	}
	if rec, ok := s.records[id]; ok {
		return copyRecord(rec), nil
	}
	return Record{FindingID: id}, nil
}

func copyRecord(rec *Record) Record {
	out := *rec
	if rec.Feedback != nil {
		v := *rec.Feedback
		out.Feedback = &v
	}
	return out
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{Class: s.set.Class, Analyzing: s.analyzing}
	if s.analyzing {
		return snap
	}
	snap.Findings = make([]FindingState, 0, len(s.set.Findings))
	for _, f := range s.set.Findings {
		state := FindingState{Finding: f}
		if rec, ok := s.records[f.ID]; ok {
			r := copyRecord(rec)
			state.Fixed = r.Fixed
			state.Feedback = r.Feedback
		}
		snap.Findings = append(snap.Findings, state)
	}
	return snap
}

// guard must be called with s.mu held.
func (s *Session) guard(id string) (catalog.Finding, error) {
	if s.closed {
		return catalog.Finding{}, ErrSessionClosed
	}
	if s.analyzing {
		return catalog.Finding{}, ErrAnalysisInProgress
	}
	f, ok := s.set.Get(id)
	if !ok {
		return catalog.Finding{}, ErrUnknownFinding
	}
	return f, nil
}

func (s *Session) record(id string) *Record {
	rec, ok := s.records[id]
	if !ok {
		rec = &Record{FindingID: id}
		s.records[id] = rec
	}
	return rec
}

func remediationText(f catalog.Finding) string {
	if f.RemediationText == "" {
		return DefaultRemediationText
	}
	return f.RemediationText
}

// pendingFix is one acknowledgment in flight. err is set before done closes.
type pendingFix struct {
	done chan struct{}
	err  error
}

func (p *pendingFix) wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ApplyFix waits for the acknowledgment delay and then marks id fixed.
// The acknowledgment belongs to the session: a caller whose ctx ends stops
// waiting, but the fix still lands unless the session is closed. A caller
// that finds id fixed, or arrives while its fix is being acknowledged, gets
// ErrAlreadyFixed with a valid result once the fix has landed; callers may
// treat it as success.
func (s *Session) ApplyFix(ctx context.Context, id string) (FixResult, error) {
	s.mu.Lock()
	f, err := s.guard(id)
	if err != nil {
		s.mu.Unlock()
		return FixResult{}, err
	}
	result := FixResult{FindingID: id, RemediationText: remediationText(f)}
	if rec, ok := s.records[id]; ok && rec.Fixed {
		s.mu.Unlock()
		result.AlreadyFixed = true
		return result, ErrAlreadyFixed
	}
	if p := s.pending[id]; p != nil {
		s.mu.Unlock()
		if err := p.wait(ctx); err != nil {
			return FixResult{}, err
		}
		result.AlreadyFixed = true
		return result, ErrAlreadyFixed
	}
	p := &pendingFix{done: make(chan struct{})}
	s.pending[id] = p
	s.wg.Add(1)
	go s.acknowledge(f, p)
	s.mu.Unlock()

	if err := p.wait(ctx); err != nil {
		return FixResult{}, err
	}
	return result, nil
}

func (s *Session) acknowledge(f catalog.Finding, p *pendingFix) {
	defer s.wg.Done()
	defer close(p.done)

	sleepErr := pacing.Sleep(s.ctx, s.opts.FixDelay)

	s.mu.Lock()
	delete(s.pending, f.ID)
	if s.closed || sleepErr != nil {
		s.mu.Unlock()
		p.err = ErrSessionClosed
		return
	}
	s.record(f.ID).Fixed = true
	s.mu.Unlock()

	s.emit(events.TypeFindingFixed, map[string]interface{}{
		"document_class":   s.set.Class,
		"finding_id":       f.ID,
		"severity":         f.Severity,
		"remediation_text": remediationText(f),
	})
}

// RecordFeedback stores the reviewer's verdict on id, replacing any earlier one.
func (s *Session) RecordFeedback(id string, positive bool) error {
	s.mu.Lock()
	f, err := s.guard(id)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.record(id).Feedback = &positive
	s.mu.Unlock()

	s.emit(events.TypeFeedbackRecorded, map[string]interface{}{
		"document_class": s.set.Class,
		"finding_id":     id,
		"severity":       f.Severity,
		"positive":       positive,
	})
	return nil
}

// Close cancels the reveal timer and any pending fix acknowledgment and
// releases Ready waiters.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.analyzing {
		close(s.ready)
	}
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
}
