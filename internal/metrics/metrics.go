package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts page-cache hits by content type.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pagecache_hits_total",
		Help: "Page cache hits by content type.",
	}, []string{"type"})

	// CacheMisses counts page-cache misses by content type.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pagecache_misses_total",
		Help: "Page cache misses by content type.",
	}, []string{"type"})

	// PageRenders counts successful template renders by content type.
	PageRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "page_renders_total",
		Help: "Rendered pages by content type.",
	}, []string{"type"})

	// NotFound counts requests that ended in the 404 path.
	NotFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "page_not_found_total",
		Help: "Requests resolved to not-found.",
	})

	// CachePurges counts tag-based cache invalidations.
	CachePurges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pagecache_purges_total",
		Help: "Tag-based page cache purges.",
	}, []string{"tag"})
)
