// Package conversation runs the compliance assistant chat for one document
// class: ordered history, follow-up suggestions and a single in-flight
// analysis request at a time.
package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"

	"compliance-review-be/internal/pkg/logger"
	"compliance-review-be/pkg/catalog"
	"compliance-review-be/pkg/collaborator"
	"compliance-review-be/pkg/events"
	"compliance-review-be/pkg/review/pacing"
	"compliance-review-be/pkg/review/suggestion"

	"github.com/google/uuid"
)

var (
	ErrEmptyQuery         = errors.New("query is empty")
	ErrAnalysisInProgress = errors.New("document analysis in progress")
	ErrRequestInProgress  = errors.New("a request is already in progress")
	ErrUnknownSuggestion  = errors.New("unknown suggestion")
	ErrSessionClosed      = errors.New("conversation session closed")
)

// ApologyMessage replaces the answer whenever the analysis backend fails.
const ApologyMessage = "I apologize, but I'm experiencing technical difficulties. Please try again in a moment."

type State string

const (
	StateIdle             State = "idle"
	StateAwaitingResponse State = "awaiting_response"
)

// Outcome describes how the last exchange ended.
type Outcome string

const (
	OutcomeNone     Outcome = ""
	OutcomeAnswered Outcome = "answered"
	OutcomeApology  Outcome = "apology"
)

type EmitFunc func(eventType string, data map[string]interface{})

type Options struct {
	Analysis    collaborator.AnalysisCollaborator
	Suggestions *suggestion.Adapter
	Pacer       *pacing.Pacer
	// Analyzing reports whether the paired remediation session is still
	// analyzing; submissions are refused while it returns true.
	Analyzing func() bool
	Emit      EmitFunc
	Logger    logger.ILogger
	NewID     func() string
}

// Result is delivered once per accepted submission.
type Result struct {
	Sent        collaborator.Message
	Message     collaborator.Message
	Outcome     Outcome
	Suggestions []string
	Err         error
}

type Snapshot struct {
	Class       catalog.DocumentClass  `json:"document_class"`
	State       State                  `json:"state"`
	LastOutcome Outcome                `json:"last_outcome,omitempty"`
	History     []collaborator.Message `json:"history"`
	Suggestions []string               `json:"suggestions"`
	Draft       string                 `json:"draft,omitempty"`
}

type Session struct {
	mu          sync.Mutex
	class       catalog.DocumentClass
	history     []collaborator.Message
	suggestions []string
	refreshed   bool
	draft       string
	state       State
	lastOutcome Outcome
	closed      bool

	opts   Options
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(class catalog.DocumentClass, opts Options) *Session {
	if opts.Pacer == nil {
		opts.Pacer = pacing.Instant()
	}
	if opts.Suggestions == nil {
		opts.Suggestions = suggestion.NewAdapter(nil, nil, opts.Logger)
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		class:       class,
		suggestions: []string{},
		state:       StateIdle,
		opts:        opts,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (s *Session) Class() catalog.DocumentClass {
	return s.class
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) History() []collaborator.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]collaborator.Message(nil), s.history...)
}

func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.suggestions...)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Class:       s.class,
		State:       s.state,
		LastOutcome: s.lastOutcome,
		History:     append([]collaborator.Message{}, s.history...),
		Suggestions: append([]string{}, s.suggestions...),
		Draft:       s.draft,
	}
}

func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()
}

func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SeedSuggestions installs the initial suggestion set. It is ignored once an
// answer has already refreshed the suggestions, or after Close.
func (s *Session) SeedSuggestions(prompts []string) bool {
	s.mu.Lock()
	if s.closed || s.refreshed {
		s.mu.Unlock()
		return false
	}
	s.suggestions = append([]string{}, prompts...)
	current := append([]string{}, s.suggestions...)
	s.mu.Unlock()

	s.emit(events.TypeSuggestionsReplaced, map[string]interface{}{"suggestions": current})
	return true
}

func (s *Session) emit(eventType string, data map[string]interface{}) {
	if s.opts.Emit != nil {
		s.opts.Emit(eventType, data)
	}
}

// Ask submits text and waits for the assistant reply. If ctx ends first, Ask
// returns ctx.Err() but the exchange still completes within the session.
func (s *Session) Ask(ctx context.Context, text string) (collaborator.Message, error) {
	r, err := s.Exchange(ctx, text)
	return r.Message, err
}

// Exchange is Ask returning the whole Result.
func (s *Session) Exchange(ctx context.Context, text string) (Result, error) {
	results, err := s.Submit(text)
	if err != nil {
		return Result{}, err
	}
	select {
	case r := <-results:
		return r, r.Err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// SuggestionAt returns the displayed suggestion at index.
func (s *Session) SuggestionAt(index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.suggestions) {
		return "", ErrUnknownSuggestion
	}
	return s.suggestions[index], nil
}

// AskSuggestion submits the suggestion at index as if it were typed.
func (s *Session) AskSuggestion(ctx context.Context, index int) (collaborator.Message, error) {
	text, err := s.SuggestionAt(index)
	if err != nil {
		return collaborator.Message{}, err
	}
	return s.Ask(ctx, text)
}

// SubmitDraft submits the current draft.
func (s *Session) SubmitDraft(ctx context.Context) (collaborator.Message, error) {
	return s.Ask(ctx, s.Draft())
}

// Submit appends the user message and starts the analysis exchange. The
// returned channel receives exactly one Result.
func (s *Session) Submit(text string) (<-chan Result, error) {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return nil, ErrSessionClosed
	case strings.TrimSpace(text) == "":
		s.mu.Unlock()
		return nil, ErrEmptyQuery
	case s.opts.Analyzing != nil && s.opts.Analyzing():
		s.mu.Unlock()
		return nil, ErrAnalysisInProgress
	case s.state == StateAwaitingResponse:
		s.mu.Unlock()
		return nil, ErrRequestInProgress
	}

	prior := append([]collaborator.Message{}, s.history...)
	userMsg := collaborator.Message{ID: s.opts.NewID(), Role: collaborator.RoleUser, Content: text}
	s.history = append(s.history, userMsg)
	s.draft = ""
	s.state = StateAwaitingResponse
	s.wg.Add(1)
	s.mu.Unlock()

	s.emit(events.TypeMessageAppended, map[string]interface{}{"message": userMsg})
	s.emit(events.TypeConversationState, map[string]interface{}{"state": StateAwaitingResponse})

	results := make(chan Result, 1)
	go s.exchange(userMsg, prior, results)
	return results, nil
}

func (s *Session) exchange(sent collaborator.Message, prior []collaborator.Message, results chan<- Result) {
	defer s.wg.Done()

	reply, next, outcome := s.analyze(sent.Content, prior)
	if s.ctx.Err() != nil {
		results <- Result{Err: ErrSessionClosed}
		return
	}

	if err := s.opts.Pacer.Wait(s.ctx, reply); err != nil {
		results <- Result{Err: ErrSessionClosed}
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		results <- Result{Err: ErrSessionClosed}
		return
	}
	msg := collaborator.Message{ID: s.opts.NewID(), Role: collaborator.RoleAssistant, Content: reply}
	s.history = append(s.history, msg)
	if outcome == OutcomeAnswered {
		s.suggestions = next
		s.refreshed = true
	}
	s.state = StateIdle
	s.lastOutcome = outcome
	current := append([]string{}, s.suggestions...)
	s.mu.Unlock()

	s.emit(events.TypeMessageAppended, map[string]interface{}{"message": msg})
	if outcome == OutcomeAnswered {
		s.emit(events.TypeSuggestionsReplaced, map[string]interface{}{"suggestions": append([]string{}, next...)})
	}
	s.emit(events.TypeConversationState, map[string]interface{}{"state": StateIdle, "outcome": outcome})

	results <- Result{Sent: sent, Message: msg, Outcome: outcome, Suggestions: current}
}

// analyze calls the backend once. Failures are never retried; they turn into
// the apology reply and leave the suggestions untouched.
func (s *Session) analyze(query string, prior []collaborator.Message) (string, []string, Outcome) {
	if s.opts.Analysis == nil {
		return ApologyMessage, nil, OutcomeApology
	}

	resp, err := s.opts.Analysis.Analyze(s.ctx, collaborator.AnalysisRequest{
		Query:               query,
		DocumentClass:       s.class,
		ConversationHistory: prior,
	})
	if err == nil && (resp == nil || resp.Answer == "") {
		err = collaborator.ErrMalformedResponse
	}
	if err != nil {
		if s.ctx.Err() == nil && s.opts.Logger != nil {
			s.opts.Logger.Error("Conversation", "Error processing request", map[string]interface{}{
				"document_class": s.class,
				"error":          err.Error(),
			})
		}
		return ApologyMessage, nil, OutcomeApology
	}

	return resp.Answer, s.opts.Suggestions.Refresh(resp.RefreshedSuggestions), OutcomeAnswered
}

// Close cancels the in-flight request and pacing timer. Replies that arrive
// afterwards are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
}
