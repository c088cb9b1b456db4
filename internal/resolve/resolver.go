package resolve

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"pacificair.org/pacificair-web/internal/cms"
	"pacificair.org/pacificair-web/internal/metrics"
	"pacificair.org/pacificair-web/internal/pagecache"
)

// ErrNotFound reports that a request path resolves to no servable page.
var ErrNotFound = errors.New("resolve: page not found")

// Request is one inbound catch-all request path, already split into
// segments with no leading or trailing slash.
type Request struct {
	Segments []string
}

// Slug is the last path segment, the CMS lookup key.
func (r Request) Slug() string {
	if len(r.Segments) == 0 {
		return ""
	}
	return r.Segments[len(r.Segments)-1]
}

// FullPath joins the segments with slashes.
func (r Request) FullPath() string {
	return strings.Join(r.Segments, "/")
}

// canonical returns the path in the CMS's canonical form, with leading and
// trailing slash.
func (r Request) canonical() string {
	return "/" + r.FullPath() + "/"
}

// Resolution is a successfully resolved page: the effective content type
// tag and its payload.
type Resolution struct {
	TypeName string
	Page     cms.Page
}

// Resolver turns request paths into page payloads. Strategies run in a
// fixed priority order; the first one that produces a payload wins.
type Resolver struct {
	cms   *cms.Client
	cache pagecache.Store
	ttl   time.Duration
	log   *zap.Logger
}

// New constructs a Resolver over the given CMS client and cache store.
func New(client *cms.Client, store pagecache.Store, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		cms:   client,
		cache: store,
		ttl:   pagecache.DefaultTTL,
		log:   log,
	}
}

// SetTTL overrides the cache TTL, primarily for tests.
func (r *Resolver) SetTTL(d time.Duration) {
	if d > 0 {
		r.ttl = d
	}
}

// strategy attempts to resolve a request. A (nil, nil) return means the
// strategy does not apply or failed softly; resolution falls through to the
// next strategy. Only the last (generic) strategy returns hard errors.
type strategy func(ctx context.Context, req Request) (*Resolution, error)

// Resolve runs the strategy chain: news category, news article under
// category, then the generic type-resolver path. Returns ErrNotFound when
// no strategy produces a payload.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Resolution, error) {
	strategies := []strategy{
		r.newsCategory,
		r.newsArticleUnderCategory,
		r.generic,
	}
	for _, resolve := range strategies {
		res, err := resolve(ctx, req)
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}
	}
	return nil, ErrNotFound
}

// newsCategory handles paths shaped news/<segment>. The news section nests
// two depths under the same prefix, so the category fetch runs before the
// generic resolver gets a chance to misread the slug.
func (r *Resolver) newsCategory(ctx context.Context, req Request) (*Resolution, error) {
	if len(req.Segments) != 2 || req.Segments[0] != "news" {
		return nil, nil
	}
	category, err := r.cms.NewsCategory(ctx, req.Slug())
	if err != nil {
		// Soft failure: fall through to the generic resolver.
		r.log.Info("news category lookup failed, falling through",
			zap.String("slug", req.Slug()), zap.Error(err))
		return nil, nil
	}
	if category == nil || category.ID == "" {
		return nil, nil
	}
	return &Resolution{TypeName: cms.TypeNewsCategoryPage, Page: category}, nil
}

// newsArticleUnderCategory handles paths shaped news/<segment>/<segment>.
func (r *Resolver) newsArticleUnderCategory(ctx context.Context, req Request) (*Resolution, error) {
	if len(req.Segments) != 3 || req.Segments[0] != "news" {
		return nil, nil
	}
	article, err := r.cms.NewsArticle(ctx, req.Slug())
	if err != nil {
		r.log.Info("news article lookup failed, falling through",
			zap.String("slug", req.Slug()), zap.Error(err))
		return nil, nil
	}
	if article == nil || article.ID == "" {
		return nil, nil
	}
	return &Resolution{TypeName: cms.TypeNewsArticle, Page: article}, nil
}

// generic is the authoritative path: a fresh page-type lookup, the
// canonical-URL guard, then the cached per-type fetch.
func (r *Resolver) generic(ctx context.Context, req Request) (*Resolution, error) {
	descriptor, err := r.cms.PageType(ctx, req.Slug())
	if err != nil {
		return nil, err
	}
	if descriptor == nil {
		return nil, ErrNotFound
	}
	// A page is only servable under the URL it canonically owns. A moved or
	// duplicate slug must 404 rather than leak the wrong content.
	if descriptor.CanonicalURL != req.canonical() {
		return nil, ErrNotFound
	}
	page, err := r.PageContent(ctx, descriptor.TypeName, req.Slug())
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrNotFound
	}
	return &Resolution{TypeName: page.PageTypeName(), Page: page}, nil
}

// PageContent returns the payload for (typeName, slug), serving from the
// cache within TTL and dispatching to the CMS on a miss. Not-found results
// are never cached; a missing page re-consults the CMS on every request.
func (r *Resolver) PageContent(ctx context.Context, typeName, slug string) (cms.Page, error) {
	key := pagecache.Key(typeName, slug)
	if entry, ok := r.cache.Get(ctx, key); ok {
		metrics.CacheHits.WithLabelValues(typeName).Inc()
		return entry.Page, nil
	}
	metrics.CacheMisses.WithLabelValues(typeName).Inc()

	page, err := r.cms.FetchPage(ctx, typeName, slug)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, nil
	}
	entry := pagecache.Entry{
		Page:    page,
		Tags:    pagecache.Tags(typeName, slug),
		Expires: time.Now().Add(r.ttl),
	}
	if err := r.cache.Set(ctx, key, entry); err != nil {
		r.log.Warn("page cache set failed", zap.String("key", key), zap.Error(err))
	}
	return page, nil
}

// Metadata resolves the page title for a request, independently of body
// resolution: it re-runs the type lookup and path guard on its own and
// falls back to a generic not-found title on any miss or error. A metadata
// failure never blocks body rendering and vice versa.
func (r *Resolver) Metadata(ctx context.Context, req Request) string {
	const fallback = "Page Not Found"
	descriptor, err := r.cms.PageType(ctx, req.Slug())
	if err != nil || descriptor == nil {
		return fallback
	}
	if descriptor.CanonicalURL != req.canonical() {
		return fallback
	}
	if descriptor.SEOTitle != "" {
		return descriptor.SEOTitle
	}
	return "Generic Page"
}

// Purge drops every cache entry carrying the given tag. This is the hook
// the external publish webhook calls; TTL expiry is otherwise the only
// invalidation.
func (r *Resolver) Purge(ctx context.Context, tag string) error {
	metrics.CachePurges.WithLabelValues(tag).Inc()
	return r.cache.InvalidateByTag(ctx, tag)
}
