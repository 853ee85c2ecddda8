// Package pacing schedules the cancellable UX delays used by review sessions:
// the assistant "typing" delay and fixed acknowledgment delays.
package pacing

import (
	"context"
	"time"
	"unicode/utf8"

	"compliance-review-be/pkg/sampler"
)

const (
	DefaultPerRune   = 20 * time.Millisecond
	DefaultMaxJitter = 500 * time.Millisecond
	DefaultMax       = 6 * time.Second
)

// Pacer computes a typing delay that grows with message length. The
// length-proportional part is deterministic, jitter is drawn from
// [0, MaxJitter) and the total never exceeds Max.
type Pacer struct {
	PerRune   time.Duration
	MaxJitter time.Duration
	Max       time.Duration
	src       sampler.Source
}

func New(perRune, maxJitter, max time.Duration, src sampler.Source) *Pacer {
	if src == nil {
		src = sampler.NewTimeSource()
	}
	return &Pacer{PerRune: perRune, MaxJitter: maxJitter, Max: max, src: src}
}

func NewDefault(src sampler.Source) *Pacer {
	return New(DefaultPerRune, DefaultMaxJitter, DefaultMax, src)
}

// Instant returns a pacer with no delay.
func Instant() *Pacer {
	return &Pacer{}
}

func (p *Pacer) Delay(text string) time.Duration {
	if p == nil {
		return 0
	}
	d := p.PerRune * time.Duration(utf8.RuneCountInString(text))
	if p.MaxJitter > 0 && p.src != nil {
		d += time.Duration(p.src.Intn(int(p.MaxJitter)))
	}
	if p.Max > 0 && d > p.Max {
		d = p.Max
	}
	return d
}

// Wait blocks for the typing delay of text or until ctx is done.
func (p *Pacer) Wait(ctx context.Context, text string) error {
	return Sleep(ctx, p.Delay(text))
}

// Sleep waits for d. The timer is stopped when ctx ends first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
