package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"pacificair.org/pacificair-web/internal/cms"
	"pacificair.org/pacificair-web/internal/metrics"
	"pacificair.org/pacificair-web/internal/nav"
	"pacificair.org/pacificair-web/internal/render"
	"pacificair.org/pacificair-web/internal/resolve"
	"pacificair.org/pacificair-web/internal/seo"
)

// PageData is the view model shared by all page templates.
type PageData struct {
	Title       string
	SEO         seo.Meta
	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	// Page is the resolved content payload; its concrete type matches the
	// template selected for it.
	Page any
}

// templatesByType maps a content type tag to its template. Selection is an
// exact lookup; a missing tag is the single well-defined not-found path.
var templatesByType = map[string]string{
	cms.TypeGenericPage:          "page_generic",
	cms.TypeNewsIndexPage:        "page_news_index",
	cms.TypeNewsCategoryPage:     "page_news_category",
	cms.TypeNewsArticle:          "page_news_article",
	cms.TypeExperienceIndexPage:  "page_experience_index",
	cms.TypeExploreIndexPage:     "page_explore_index",
	cms.TypeDestinationIndexPage: "page_destination_index",
	cms.TypeDestination:          "page_destination",
	cms.TypeWhereWeFly:           "page_where_we_fly",
	cms.TypeFlightSchedule:       "page_flight_schedule",
	cms.TypeRoute:                "page_route",
	cms.TypeSpecialsIndexPage:    "page_specials_index",
	cms.TypeSpecial:              "page_special",
	cms.TypeAboutIndexPage:       "page_about",
	cms.TypeBelamaIndexPage:      "page_belama",
	cms.TypeBelamaSignUpPage:     "page_belama_signup",
	cms.TypeTravelAlertPage:      "page_travel_alerts",
	cms.TypeContactPage:          "page_contact",
	cms.TypeCareersPage:          "page_careers",
}

// ignorablePrefixes are well-known browser probe paths that should get an
// empty response without any CMS traffic.
var ignorablePrefixes = []string{".well-known"}

const devtoolsProbe = "com.chrome.devtools.json"

// Pages serves the catch-all content route.
type Pages struct {
	resolver *resolve.Resolver
	renderer *render.Renderer
	log      *zap.Logger
}

// NewPages constructs the catch-all page handler.
func NewPages(resolver *resolve.Resolver, renderer *render.Renderer, log *zap.Logger) *Pages {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pages{resolver: resolver, renderer: renderer, log: log}
}

// Handle resolves the request path to a page payload and renders the
// matching template, degrading to a 404 or a loading skeleton on failure.
func (h *Pages) Handle(w http.ResponseWriter, r *http.Request) {
	fullPath := strings.Trim(r.URL.Path, "/")
	if ignorable(fullPath) {
		w.WriteHeader(http.StatusOK)
		return
	}

	req := resolve.Request{Segments: splitPath(fullPath)}

	// Title resolution is deliberately isolated from body resolution: it
	// performs its own type lookup and path guard and can only fall back,
	// never fail.
	title := h.resolver.Metadata(r.Context(), req)

	res, err := h.resolver.Resolve(r.Context(), req)
	if err != nil {
		if errors.Is(err, resolve.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		h.log.Error("page resolution failed",
			zap.String("path", fullPath), zap.Error(err))
		// A failing news-article path gets a loading skeleton: article
		// fetch errors are usually transient CMS latency, and a skeleton
		// reads better than a hard 404.
		if strings.HasPrefix(fullPath, "news/") {
			h.renderPage(w, r, http.StatusOK, "page_news_article_loading", title, nil)
			return
		}
		h.NotFound(w, r)
		return
	}

	name, ok := templatesByType[res.TypeName]
	if !ok {
		h.NotFound(w, r)
		return
	}
	metrics.PageRenders.WithLabelValues(res.TypeName).Inc()
	h.renderPage(w, r, http.StatusOK, name, title, res.Page)
}

// NotFound renders the 404 page.
func (h *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	metrics.NotFound.Inc()
	data := h.pageData(r, "Page Not Found", nil)
	if err := h.renderer.HTML(w, http.StatusNotFound, "page_not_found", data); err != nil {
		h.log.Error("render not-found", zap.Error(err))
		http.NotFound(w, r)
	}
}

func (h *Pages) renderPage(w http.ResponseWriter, r *http.Request, status int, name, title string, page any) {
	data := h.pageData(r, title, page)
	if err := h.renderer.HTML(w, status, name, data); err != nil {
		h.log.Error("render page", zap.String("template", name), zap.Error(err))
		h.NotFound(w, r)
	}
}

func (h *Pages) pageData(r *http.Request, title string, page any) PageData {
	crumbs := nav.Breadcrumbs(r.URL.Path)
	meta := seo.Meta{
		Title:  title,
		JSONLD: []template.JS{seo.JSON(seo.BreadcrumbList(breadcrumbItems(crumbs)))},
	}
	if article, ok := page.(*cms.NewsArticle); ok {
		meta.JSONLD = append(meta.JSONLD, seo.JSON(seo.NewsArticle(
			article.ArticleTitle, article.URL, article.HeroImage.URL, article.FirstPublishedAt)))
	}
	return PageData{
		Title:       title,
		SEO:         meta,
		Path:        r.URL.Path,
		Nav:         nav.Build(r.URL.Path),
		Breadcrumbs: crumbs,
		Page:        page,
	}
}

func breadcrumbItems(crumbs []nav.Crumb) []seo.BreadcrumbItem {
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		items = append(items, seo.BreadcrumbItem{Name: c.Label, Item: c.Href})
	}
	return items
}

func ignorable(fullPath string) bool {
	for _, prefix := range ignorablePrefixes {
		if strings.HasPrefix(fullPath, prefix) {
			return true
		}
	}
	return strings.Contains(fullPath, devtoolsProbe)
}

func splitPath(fullPath string) []string {
	parts := strings.Split(fullPath, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
