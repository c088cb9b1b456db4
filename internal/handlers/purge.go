package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"pacificair.org/pacificair-web/internal/resolve"
)

// Purge exposes the cache invalidation hook the CMS calls after publishing.
type Purge struct {
	resolver *resolve.Resolver
	log      *zap.Logger
}

// NewPurge constructs the purge handler.
func NewPurge(resolver *resolve.Resolver, log *zap.Logger) *Purge {
	if log == nil {
		log = zap.NewNop()
	}
	return &Purge{resolver: resolver, log: log}
}

// Handle drops every cache entry carrying the given tag. The tag parameter
// takes the same values the cache writes: page-content, page-content-{type}
// or page-{slug}.
func (h *Purge) Handle(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	if tag == "" {
		http.Error(w, "tag is required", http.StatusBadRequest)
		return
	}
	if err := h.resolver.Purge(r.Context(), tag); err != nil {
		h.log.Error("cache purge", zap.String("tag", tag), zap.Error(err))
		http.Error(w, "purge failed", http.StatusInternalServerError)
		return
	}
	h.log.Info("cache purged", zap.String("tag", tag))
	w.WriteHeader(http.StatusNoContent)
}
