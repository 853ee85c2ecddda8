package memory

import (
	"time"

	"compliance-review-be/pkg/review"

	"github.com/patrickmn/go-cache"
)

// ReviewEntry binds a workspace to the user that created it.
type ReviewEntry struct {
	OwnerID   string
	Workspace *review.Workspace
}

// ReviewRepository keeps live workspaces in memory. Entries expire after ttl
// of inactivity and are closed when they leave the cache for any reason.
type ReviewRepository struct {
	cache *cache.Cache
}

func NewReviewRepository(ttl time.Duration) *ReviewRepository {
	cleanup := ttl / 6
	if cleanup < time.Second {
		cleanup = time.Second
	}
	c := cache.New(ttl, cleanup)
	c.OnEvicted(func(_ string, v interface{}) {
		if entry, ok := v.(*ReviewEntry); ok {
			entry.Workspace.Close()
		}
	})
	return &ReviewRepository{cache: c}
}

func (r *ReviewRepository) Save(entry *ReviewEntry) {
	r.cache.Set(entry.Workspace.ID(), entry, cache.DefaultExpiration)
}

// Get returns the entry and extends its lifetime. An entry whose workspace
// was closed, e.g. by an expiry that raced the refresh, is dropped.
func (r *ReviewRepository) Get(reviewID string) (*ReviewEntry, bool) {
	x, expiresAt, found := r.cache.GetWithExpiration(reviewID)
	if !found {
		return nil, false
	}
	entry := x.(*ReviewEntry)
	if !expiresAt.IsZero() {
		r.cache.Set(reviewID, entry, cache.DefaultExpiration)
	}
	if entry.Workspace.Closed() {
		r.drop(reviewID, entry)
		return nil, false
	}
	return entry, true
}

// drop removes reviewID only while it still maps to entry.
func (r *ReviewRepository) drop(reviewID string, entry *ReviewEntry) {
	if x, found := r.cache.Get(reviewID); found && x == entry {
		r.cache.Delete(reviewID)
	}
}

func (r *ReviewRepository) Delete(reviewID string) {
	r.cache.Delete(reviewID)
}

func (r *ReviewRepository) Count() int {
	return r.cache.ItemCount()
}

// CloseAll removes and closes every workspace.
func (r *ReviewRepository) CloseAll() {
	for id := range r.cache.Items() {
		r.cache.Delete(id)
	}
}
