package cms

import (
	"context"
	"errors"
	"strings"
)

// PageTypeDescriptor is the authoritative identity of a page as known to the
// CMS: its content type tag and the canonical URL that owns the slug.
type PageTypeDescriptor struct {
	TypeName     string `json:"__typename"`
	ID           string `json:"id"`
	SEOTitle     string `json:"seoTitle"`
	CanonicalURL string `json:"urlPath"`
}

const pageTypeQuery = `
query GetPageType($slug: String!) {
  page(slug: $slug) {
    __typename
    id
    seoTitle
    urlPath
    ... on FlightSchedule {
      schedules { id }
    }
  }
}`

// PageType resolves a slug to its content type tag and canonical URL.
// Returns (nil, nil) when the CMS has no page with that slug. Results are
// deliberately never cached: a stale type mapping would misroute requests.
func (c *Client) PageType(ctx context.Context, slug string) (*PageTypeDescriptor, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}
	var data struct {
		Page *struct {
			PageTypeDescriptor
			Schedules []struct {
				ID string `json:"id"`
			} `json:"schedules"`
		} `json:"page"`
	}
	err := c.query(ctx, pageTypeQuery, map[string]any{"slug": slug}, &data)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if data.Page == nil {
		return nil, nil
	}
	descriptor := data.Page.PageTypeDescriptor
	descriptor.TypeName = NormalizeTypeTag(descriptor.TypeName, len(data.Page.Schedules) > 0)
	if descriptor.TypeName == "" {
		return nil, nil
	}
	return &descriptor, nil
}

// ListingEntry is one row of the paginated full-site page listing.
type ListingEntry struct {
	Slug     string `json:"slug"`
	URL      string `json:"url"`
	URLPath  string `json:"urlPath"`
	TypeName string `json:"__typename"`
}

const pageListingQuery = `
query GetAllSlugs($limit: PositiveInt, $offset: PositiveInt) {
  pages(limit: $limit, offset: $offset) {
    slug
    url
    urlPath
    __typename
  }
}`

// Pages returns one batch of the full page listing. Used only at build time
// by the static-params enumerator.
func (c *Client) Pages(ctx context.Context, limit, offset int) ([]ListingEntry, error) {
	var data struct {
		Pages []ListingEntry `json:"pages"`
	}
	err := c.query(ctx, pageListingQuery, map[string]any{"limit": limit, "offset": offset}, &data)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data.Pages, nil
}

const activeAlertQuery = `
query GetActiveTravelAlert {
  pages(contentType: "alerts.TravelAlertPage") {
    ... on TravelAlertPage {
      activeAlert {
        title
        content
        isActive
        createdAt
      }
    }
  }
}`

// ActiveAlert returns the currently active travel alert, or nil when none
// is published.
func (c *Client) ActiveAlert(ctx context.Context) (*TravelAlert, error) {
	var data struct {
		Pages []struct {
			ActiveAlert *TravelAlert `json:"activeAlert"`
		} `json:"pages"`
	}
	err := c.query(ctx, activeAlertQuery, nil, &data)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for _, page := range data.Pages {
		if page.ActiveAlert != nil && page.ActiveAlert.IsActive {
			return page.ActiveAlert, nil
		}
	}
	return nil, nil
}

const routeListingQuery = `
query GetBookableRoutes {
  pages(contentType: "explore.Route") {
    ... on Route {
      departureAirport
      departureAirportCode
      arrivalAirport
      arrivalAirportCode
      url
      name
      nameFull
    }
  }
}`

// Routes lists every bookable route, used to populate the booking widget's
// airport choices.
func (c *Client) Routes(ctx context.Context) ([]RouteSummary, error) {
	var data struct {
		Pages []RouteSummary `json:"pages"`
	}
	err := c.query(ctx, routeListingQuery, nil, &data)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data.Pages, nil
}
