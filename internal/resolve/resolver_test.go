package resolve

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pacificair.org/pacificair-web/internal/cms"
	"pacificair.org/pacificair-web/internal/pagecache"
)

// cmsStub is a scripted GraphQL backend. Responses are matched by operation
// name; every request is counted per operation.
type cmsStub struct {
	t         *testing.T
	responses map[string]string
	calls     map[string]int
}

func newCMSStub(t *testing.T, responses map[string]string) (*cms.Client, *cmsStub) {
	t.Helper()
	stub := &cmsStub{t: t, responses: responses, calls: map[string]int{}}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	return cms.NewClient(srv.URL, nil), stub
}

func (s *cmsStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	require.NoError(s.t, json.NewDecoder(r.Body).Decode(&req))
	w.Header().Set("Content-Type", "application/json")
	for op, body := range s.responses {
		if strings.Contains(req.Query, op) {
			s.calls[op]++
			_, _ = w.Write([]byte(body))
			return
		}
	}
	s.calls["_unmatched"]++
	_, _ = w.Write([]byte(`{"data": null}`))
}

func request(path string) Request {
	var segments []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return Request{Segments: segments}
}

func TestResolveGenericPage(t *testing.T) {
	t.Parallel()

	client, _ := newCMSStub(t, map[string]string{
		"GetPageType":    `{"data":{"page":{"__typename":"GenericPage","id":"1","seoTitle":"Baggage","urlPath":"/baggage/"}}}`,
		"GetGenericPage": `{"data":{"genericPage":{"seoTitle":"Baggage","heroTitle":"Baggage allowance"}}}`,
	})
	resolver := New(client, pagecache.NewMemoryStore(), nil)

	res, err := resolver.Resolve(context.Background(), request("baggage"))
	require.NoError(t, err)
	require.Equal(t, cms.TypeGenericPage, res.TypeName)
	generic, ok := res.Page.(*cms.GenericPage)
	require.True(t, ok)
	require.Equal(t, "Baggage allowance", generic.HeroTitle)
}

func TestResolveUnknownSlugNotFound(t *testing.T) {
	t.Parallel()

	client, _ := newCMSStub(t, map[string]string{
		"GetPageType": `{"data":{"page":null}}`,
	})
	resolver := New(client, pagecache.NewMemoryStore(), nil)

	_, err := resolver.Resolve(context.Background(), request("no-such-page"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveCanonicalMismatchNotFound(t *testing.T) {
	t.Parallel()

	client, stub := newCMSStub(t, map[string]string{
		"GetPageType": `{"data":{"page":{"__typename":"Destination","id":"3","seoTitle":"Gizo","urlPath":"/explore/destinations/gizo/"}}}`,
	})
	resolver := New(client, pagecache.NewMemoryStore(), nil)

	// Same slug, wrong location: the descriptor owns a different path.
	_, err := resolver.Resolve(context.Background(), request("destinations/gizo"))
	require.ErrorIs(t, err, ErrNotFound)
	require.Zero(t, stub.calls["GetDestination"], "content must not be fetched for a non-canonical path")
}

func TestResolveNewsCategoryBeforeGeneric(t *testing.T) {
	t.Parallel()

	client, stub := newCMSStub(t, map[string]string{
		"GetNewsCategory": `{"data":{"newsCategory":{"id":"9","slug":"media-releases","heroTitle":"Media Releases"}}}`,
	})
	resolver := New(client, pagecache.NewMemoryStore(), nil)

	res, err := resolver.Resolve(context.Background(), request("news/media-releases"))
	require.NoError(t, err)
	require.Equal(t, cms.TypeNewsCategoryPage, res.TypeName)
	require.Zero(t, stub.calls["GetPageType"], "a matched category must short-circuit the generic path")
}

func TestResolveNewsCategoryFallsThrough(t *testing.T) {
	t.Parallel()

	// Two segments under news, but no category with that slug: the generic
	// resolver takes over and finds an index page.
	client, stub := newCMSStub(t, map[string]string{
		"GetNewsCategory":  `{"data":{"newsCategory":null}}`,
		"GetPageType":      `{"data":{"page":{"__typename":"NewsIndexPage","id":"2","seoTitle":"News","urlPath":"/news/archive/"}}}`,
		"GetNewsIndexPage": `{"data":{"pages":[{"heroTitle":"News","seoTitle":"News"}]}}`,
	})
	resolver := New(client, pagecache.NewMemoryStore(), nil)

	res, err := resolver.Resolve(context.Background(), request("news/archive"))
	require.NoError(t, err)
	require.Equal(t, cms.TypeNewsIndexPage, res.TypeName)
	require.Equal(t, 1, stub.calls["GetNewsCategory"])
}

func TestResolveNewsArticleUnderCategory(t *testing.T) {
	t.Parallel()

	client, _ := newCMSStub(t, map[string]string{
		"GetArticle": `{"data":{"newsArticle":{"id":"12","slug":"new-route","articleTitle":"New route announced"}}}`,
	})
	resolver := New(client, pagecache.NewMemoryStore(), nil)

	res, err := resolver.Resolve(context.Background(), request("news/media-releases/new-route"))
	require.NoError(t, err)
	require.Equal(t, cms.TypeNewsArticle, res.TypeName)
}

func TestResolveCachesContentNotType(t *testing.T) {
	t.Parallel()

	client, stub := newCMSStub(t, map[string]string{
		"GetPageType":    `{"data":{"page":{"__typename":"GenericPage","id":"1","seoTitle":"Baggage","urlPath":"/baggage/"}}}`,
		"GetGenericPage": `{"data":{"genericPage":{"seoTitle":"Baggage"}}}`,
	})
	resolver := New(client, pagecache.NewMemoryStore(), nil)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := resolver.Resolve(ctx, request("baggage"))
		require.NoError(t, err)
	}
	require.Equal(t, 3, stub.calls["GetPageType"], "type resolution must run fresh on every request")
	require.Equal(t, 1, stub.calls["GetGenericPage"], "content must be served from cache within TTL")
}

func TestResolveNotFoundNeverCached(t *testing.T) {
	t.Parallel()

	// The type lookup succeeds but the content fetch finds nothing. A later
	// request must consult the CMS again rather than serve a cached miss.
	client, stub := newCMSStub(t, map[string]string{
		"GetPageType":    `{"data":{"page":{"__typename":"GenericPage","id":"1","seoTitle":"Ghost","urlPath":"/ghost/"}}}`,
		"GetGenericPage": `{"data":{"genericPage":null}}`,
	})
	store := pagecache.NewMemoryStore()
	resolver := New(client, store, nil)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := resolver.Resolve(ctx, request("ghost"))
		require.ErrorIs(t, err, ErrNotFound)
	}
	require.Equal(t, 2, stub.calls["GetGenericPage"])
	require.Zero(t, store.Len())
}

func TestResolveCacheExpiry(t *testing.T) {
	t.Parallel()

	client, stub := newCMSStub(t, map[string]string{
		"GetPageType":    `{"data":{"page":{"__typename":"GenericPage","id":"1","seoTitle":"Baggage","urlPath":"/baggage/"}}}`,
		"GetGenericPage": `{"data":{"genericPage":{"seoTitle":"Baggage"}}}`,
	})
	store := pagecache.NewMemoryStore()
	now := time.Now()
	store.SetClock(func() time.Time { return now })
	resolver := New(client, store, nil)

	ctx := context.Background()
	_, err := resolver.Resolve(ctx, request("baggage"))
	require.NoError(t, err)

	now = now.Add(pagecache.DefaultTTL + time.Second)
	_, err = resolver.Resolve(ctx, request("baggage"))
	require.NoError(t, err)
	require.Equal(t, 2, stub.calls["GetGenericPage"])
}

func TestMetadataTitles(t *testing.T) {
	t.Parallel()

	client, _ := newCMSStub(t, map[string]string{
		"GetPageType": `{"data":{"page":{"__typename":"GenericPage","id":"1","seoTitle":"Baggage","urlPath":"/baggage/"}}}`,
	})
	resolver := New(client, pagecache.NewMemoryStore(), nil)
	ctx := context.Background()

	require.Equal(t, "Baggage", resolver.Metadata(ctx, request("baggage")))
	require.Equal(t, "Page Not Found", resolver.Metadata(ctx, request("wrong/baggage")))
}

func TestMetadataFallsBackToGenericTitle(t *testing.T) {
	t.Parallel()

	client, _ := newCMSStub(t, map[string]string{
		"GetPageType": `{"data":{"page":{"__typename":"GenericPage","id":"1","seoTitle":"","urlPath":"/baggage/"}}}`,
	})
	resolver := New(client, pagecache.NewMemoryStore(), nil)

	require.Equal(t, "Generic Page", resolver.Metadata(context.Background(), request("baggage")))
}

func TestPurgeInvalidatesTaggedEntries(t *testing.T) {
	t.Parallel()

	client, stub := newCMSStub(t, map[string]string{
		"GetPageType":    `{"data":{"page":{"__typename":"GenericPage","id":"1","seoTitle":"Baggage","urlPath":"/baggage/"}}}`,
		"GetGenericPage": `{"data":{"genericPage":{"seoTitle":"Baggage"}}}`,
	})
	resolver := New(client, pagecache.NewMemoryStore(), nil)
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, request("baggage"))
	require.NoError(t, err)
	require.NoError(t, resolver.Purge(ctx, "page-baggage"))

	_, err = resolver.Resolve(ctx, request("baggage"))
	require.NoError(t, err)
	require.Equal(t, 2, stub.calls["GetGenericPage"], "a purge must force the next request back to the CMS")
}
