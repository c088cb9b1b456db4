package handlers

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"pacificair.org/pacificair-web/internal/booking"
	"pacificair.org/pacificair-web/internal/cms"
	"pacificair.org/pacificair-web/internal/nav"
	"pacificair.org/pacificair-web/internal/render"
	"pacificair.org/pacificair-web/internal/seo"
)

// HomeData is the view model for the landing page.
type HomeData struct {
	Title       string
	SEO         seo.Meta
	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	Page     *cms.HomePage
	Alert    *cms.TravelAlert
	Airports []booking.Airport
}

// Home serves the landing page with the booking widget and an optional
// travel alert banner.
type Home struct {
	cms      *cms.Client
	renderer *render.Renderer
	airports []booking.Airport
	siteName string
	log      *zap.Logger
}

// NewHome constructs the landing page handler. airports is the static
// booking catalogue merged with CMS routes at request time.
func NewHome(client *cms.Client, renderer *render.Renderer, airports []booking.Airport, log *zap.Logger) *Home {
	if log == nil {
		log = zap.NewNop()
	}
	return &Home{
		cms:      client,
		renderer: renderer,
		airports: airports,
		siteName: "Pacific Air",
		log:      log,
	}
}

// Handle renders the home page. Every CMS lookup here is best effort: a
// failed fetch logs and renders with what we have.
func (h *Home) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, err := h.cms.HomePage(ctx)
	if err != nil {
		h.log.Warn("home page fetch", zap.Error(err))
	}

	alert, err := h.cms.ActiveAlert(ctx)
	if err != nil {
		h.log.Warn("active alert fetch", zap.Error(err))
	}

	airports := h.airports
	if routes, err := h.cms.Routes(ctx); err != nil {
		h.log.Warn("routes fetch", zap.Error(err))
	} else {
		airports = booking.MergeRoutes(h.airports, routes)
	}

	title := h.siteName
	if page != nil && page.SEOTitle != "" {
		title = page.SEOTitle
	}

	meta := seo.Meta{
		Title:     title,
		Canonical: "/",
		JSONLD:    []template.JS{seo.JSON(seo.Airline(h.siteName, "/", "IE", ""))},
	}
	data := HomeData{
		Title:    title,
		SEO:      meta,
		Path:     "/",
		Nav:      nav.Build("/"),
		Airports: airports,
		Page:     page,
		Alert:    alert,
	}
	if err := h.renderer.HTML(w, http.StatusOK, "home", data); err != nil {
		h.log.Error("render home", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
