package pagecache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pacificair.org/pacificair-web/internal/cms"
)

func TestKeyAndTags(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Destination:gizo", Key("Destination", "gizo"))
	require.Equal(t, []string{
		"page-content",
		"page-content-Destination",
		"page-gizo",
	}, Tags("Destination", "gizo"))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	page := &cms.Destination{HeroTitle: "Gizo"}

	key := Key("Destination", "gizo")
	require.NoError(t, store.Set(ctx, key, Entry{
		Page:    page,
		Tags:    Tags("Destination", "gizo"),
		Expires: time.Now().Add(DefaultTTL),
	}))

	entry, ok := store.Get(ctx, key)
	require.True(t, ok)
	require.Same(t, cms.Page(page), entry.Page)

	_, ok = store.Get(ctx, Key("Destination", "munda"))
	require.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })

	key := Key("GenericPage", "baggage")
	require.NoError(t, store.Set(ctx, key, Entry{
		Page:    &cms.GenericPage{SEOTitle: "Baggage"},
		Expires: now.Add(DefaultTTL),
	}))

	_, ok := store.Get(ctx, key)
	require.True(t, ok)

	now = now.Add(DefaultTTL + time.Second)
	_, ok = store.Get(ctx, key)
	require.False(t, ok, "entries past their TTL must not be served")
}

func TestMemoryStoreInvalidateByTag(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	expires := time.Now().Add(DefaultTTL)

	require.NoError(t, store.Set(ctx, Key("Destination", "gizo"), Entry{
		Page:    &cms.Destination{},
		Tags:    Tags("Destination", "gizo"),
		Expires: expires,
	}))
	require.NoError(t, store.Set(ctx, Key("Destination", "munda"), Entry{
		Page:    &cms.Destination{},
		Tags:    Tags("Destination", "munda"),
		Expires: expires,
	}))
	require.NoError(t, store.Set(ctx, Key("GenericPage", "baggage"), Entry{
		Page:    &cms.GenericPage{},
		Tags:    Tags("GenericPage", "baggage"),
		Expires: expires,
	}))

	require.NoError(t, store.InvalidateByTag(ctx, "page-gizo"))
	_, ok := store.Get(ctx, Key("Destination", "gizo"))
	require.False(t, ok)
	_, ok = store.Get(ctx, Key("Destination", "munda"))
	require.True(t, ok)

	require.NoError(t, store.InvalidateByTag(ctx, "page-content"))
	require.Zero(t, store.Len())
}
