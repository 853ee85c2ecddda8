package sampler

import (
	"math/rand"
	"sync"
	"time"

	"compliance-review-be/pkg/catalog"
)

// SampleSize is the number of findings surfaced per selection.
const SampleSize = 3

// Source is the random source used for shuffling. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSource returns a goroutine-safe source seeded with seed.
func NewSource(seed int64) Source {
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

// NewTimeSource seeds from the wall clock.
func NewTimeSource() Source {
	return NewSource(time.Now().UnixNano())
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// Shuffle permutes items in place (Fisher-Yates).
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Pick returns at most n items chosen uniformly without replacement.
// The input slice is not modified.
func Pick[T any](src Source, items []T, n int) []T {
	if n <= 0 || len(items) == 0 {
		return []T{}
	}
	out := make([]T, len(items))
	copy(out, items)
	if len(out) <= n {
		return out
	}
	// partial Fisher-Yates: the first n slots end up uniformly chosen
	for i := 0; i < n; i++ {
		j := i + src.Intn(len(out)-i)
		out[i], out[j] = out[j], out[i]
	}
	return out[:n]
}

// SampledFindingSet is the ordered selection for one document-class selection.
type SampledFindingSet struct {
	Class    catalog.DocumentClass
	Findings []catalog.Finding
}

func (s SampledFindingSet) Contains(id string) bool {
	_, ok := s.Get(id)
	return ok
}

func (s SampledFindingSet) Get(id string) (catalog.Finding, bool) {
	for _, f := range s.Findings {
		if f.ID == id {
			return f, true
		}
	}
	return catalog.Finding{}, false
}

type Sampler struct {
	src Source
}

func New(src Source) *Sampler {
	if src == nil {
		src = NewTimeSource()
	}
	return &Sampler{src: src}
}

// Source exposes the sampler's random source so other components can share it.
func (s *Sampler) Source() Source {
	return s.src
}

// Sample draws one high-severity finding (when the class has any) and two
// others, then shuffles the selection so position carries no severity signal.
func (s *Sampler) Sample(class catalog.DocumentClass) (SampledFindingSet, error) {
	all, err := catalog.Lookup(class)
	if err != nil {
		return SampledFindingSet{}, err
	}
	return s.draw(class, all), nil
}

func (s *Sampler) draw(class catalog.DocumentClass, all []catalog.Finding) SampledFindingSet {
	var high, other []catalog.Finding
	for _, f := range all {
		if f.IsHigh() {
			high = append(high, f)
		} else {
			other = append(other, f)
		}
	}
	Shuffle(s.src, high)
	Shuffle(s.src, other)

	selected := make([]catalog.Finding, 0, SampleSize)
	if len(high) > 0 {
		selected = append(selected, high[0])
	}
	if len(other) > SampleSize-1 {
		other = other[:SampleSize-1]
	}
	selected = append(selected, other...)
	Shuffle(s.src, selected)

	return SampledFindingSet{Class: class, Findings: selected}
}
