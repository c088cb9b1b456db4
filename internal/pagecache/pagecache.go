package pagecache

import (
	"context"
	"sync"
	"time"

	"pacificair.org/pacificair-web/internal/cms"
)

// DefaultTTL bounds how long a fetched page payload may be served without
// consulting the CMS again.
const DefaultTTL = 300 * time.Second

// Entry is one cached page payload with its invalidation tags.
type Entry struct {
	Page    cms.Page
	Tags    []string
	Expires time.Time
}

// Store is the keyed, tagged, time-boxed cache the page pipeline runs on.
// Implementations must be safe for concurrent use. Get must not return
// expired entries.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool)
	Set(ctx context.Context, key string, entry Entry) error
	InvalidateByTag(ctx context.Context, tag string) error
}

// Key builds the cache key for a (content type, slug) pair. Two request
// paths that resolve to the same pair share one entry; that is the same
// CMS entity.
func Key(typeName, slug string) string {
	return typeName + ":" + slug
}

// Tags returns the invalidation tags attached to a (content type, slug)
// entry: the site-wide tag, the per-type tag, and the per-slug tag.
func Tags(typeName, slug string) []string {
	return []string{
		"page-content",
		"page-content-" + typeName,
		"page-" + slug,
	}
}

// MemoryStore is a process-wide in-memory Store. It lives for the life of
// the server; populate on miss, expire on TTL, no teardown.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Entry
	now   func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: map[string]Entry{},
		now:   time.Now,
	}
}

// SetClock overrides the store's clock, primarily for tests.
func (s *MemoryStore) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool) {
	s.mu.RLock()
	entry, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.Expires) {
		return Entry{}, false
	}
	return entry, true
}

func (s *MemoryStore) Set(_ context.Context, key string, entry Entry) error {
	s.mu.Lock()
	s.items[key] = entry
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) InvalidateByTag(_ context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.items {
		for _, t := range entry.Tags {
			if t == tag {
				delete(s.items, key)
				break
			}
		}
	}
	return nil
}

// Len reports the number of stored entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
