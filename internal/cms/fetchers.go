package cms

import (
	"context"
	"encoding/json"
	"errors"
)

// FetchFunc retrieves the full payload for one content type. Detail fetchers
// use the slug; index and singleton fetchers ignore it.
type FetchFunc func(ctx context.Context, c *Client, slug string) (Page, error)

// fetchers is the dispatch table: content type tag to its one fetch function.
// Adding a content type is a single registration here plus a template.
var fetchers = map[string]FetchFunc{
	TypeGenericPage:          fetchGenericPage,
	TypeNewsIndexPage:        fetchNewsIndexPage,
	TypeNewsCategoryPage:     fetchNewsCategoryAsPage,
	TypeNewsArticle:          fetchNewsArticleAsPage,
	TypeExperienceIndexPage:  fetchExperienceIndexPage,
	TypeExploreIndexPage:     fetchExploreIndexPage,
	TypeDestinationIndexPage: fetchDestinationIndexPage,
	TypeDestination:          fetchDestination,
	TypeWhereWeFly:           fetchWhereWeFly,
	TypeFlightSchedule:       fetchFlightSchedule,
	TypeRoute:                fetchRoute,
	TypeSpecialsIndexPage:    fetchSpecialsIndexPage,
	TypeSpecial:              fetchSpecial,
	TypeAboutIndexPage:       fetchAboutIndexPage,
	TypeBelamaIndexPage:      fetchBelamaIndexPage,
	TypeBelamaSignUpPage:     fetchBelamaSignUpPage,
	TypeTravelAlertPage:      fetchTravelAlertPage,
	TypeContactPage:          fetchContactPage,
	TypeCareersPage:          fetchCareersPage,
}

// FetchPage dispatches to the registered fetcher for typeName. It returns
// (nil, nil) for an unrecognized tag. It applies no caching and propagates
// CMS errors untouched; both concerns belong to the callers.
func (c *Client) FetchPage(ctx context.Context, typeName, slug string) (Page, error) {
	fetch, ok := fetchers[typeName]
	if !ok {
		return nil, nil
	}
	page, err := fetch(ctx, c, slug)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

// KnownType reports whether typeName has a registered fetcher.
func KnownType(typeName string) bool {
	_, ok := fetchers[typeName]
	return ok
}

const genericPageQuery = `
query GetGenericPage($slug: String!) {
  genericPage(slug: $slug) {
    seoTitle
    description
    heroTitle
    heroImage { url }
    url
    content {
      blockType
      heading
      text
      caption
      image { url }
    }
  }
}`

func fetchGenericPage(ctx context.Context, c *Client, slug string) (Page, error) {
	var data struct {
		GenericPage *GenericPage `json:"genericPage"`
	}
	if err := c.query(ctx, genericPageQuery, map[string]any{"slug": slug}, &data); err != nil {
		return nil, err
	}
	if data.GenericPage == nil {
		return nil, ErrNotFound
	}
	return data.GenericPage, nil
}

const newsIndexPageQuery = `
query GetNewsIndexPage {
  pages(contentType: "news.NewsIndexPage") {
    ... on NewsIndexPage {
      heroTitle
      heroImage { url }
      url
      seoTitle
      description
    }
  }
}`

func fetchNewsIndexPage(ctx context.Context, c *Client, _ string) (Page, error) {
	page := &NewsIndexPage{}
	if err := c.fetchFirstPage(ctx, newsIndexPageQuery, page); err != nil {
		return nil, err
	}
	return page, nil
}

const newsCategoryQuery = `
query GetNewsCategory($slug: String!) {
  newsCategory(slug: $slug) {
    id
    slug
    heroTitle
    heroImage { url }
    url
    seoTitle
    description
  }
}`

// NewsCategory fetches one news category listing page by slug.
func (c *Client) NewsCategory(ctx context.Context, slug string) (*NewsCategoryPage, error) {
	var data struct {
		NewsCategory *NewsCategoryPage `json:"newsCategory"`
	}
	if err := c.query(ctx, newsCategoryQuery, map[string]any{"slug": slug}, &data); err != nil {
		return nil, err
	}
	if data.NewsCategory == nil {
		return nil, ErrNotFound
	}
	return data.NewsCategory, nil
}

func fetchNewsCategoryAsPage(ctx context.Context, c *Client, slug string) (Page, error) {
	return c.NewsCategory(ctx, slug)
}

const newsArticleQuery = `
query GetArticle($slug: String!) {
  newsArticle(slug: $slug) {
    id
    slug
    url
    firstPublishedAt
    articleTitle
    body
    heroTitle
    heroImage { url }
  }
}`

// NewsArticle fetches one news article by slug.
func (c *Client) NewsArticle(ctx context.Context, slug string) (*NewsArticle, error) {
	var data struct {
		NewsArticle *NewsArticle `json:"newsArticle"`
	}
	if err := c.query(ctx, newsArticleQuery, map[string]any{"slug": slug}, &data); err != nil {
		return nil, err
	}
	if data.NewsArticle == nil {
		return nil, ErrNotFound
	}
	return data.NewsArticle, nil
}

func fetchNewsArticleAsPage(ctx context.Context, c *Client, slug string) (Page, error) {
	return c.NewsArticle(ctx, slug)
}

const experienceIndexPageQuery = `
query GetExperienceIndexPage {
  pages(contentType: "experience.ExperienceIndexPage") {
    ... on ExperienceIndexPage {
      heroTitle
      heroImage { url }
      url
      seoTitle
      description
      children {
        url
        title
        heroImage { url }
      }
    }
  }
}`

func fetchExperienceIndexPage(ctx context.Context, c *Client, _ string) (Page, error) {
	page := &ExperienceIndexPage{}
	if err := c.fetchFirstPage(ctx, experienceIndexPageQuery, page); err != nil {
		return nil, err
	}
	return page, nil
}

const exploreIndexPageQuery = `
query GetExploreIndexPage {
  pages(contentType: "explore.ExploreIndexPage") {
    ... on ExploreIndexPage {
      heroTitle
      heroImage { url }
      url
      seoTitle
      description
      children {
        url
        title
        heroImage { url }
      }
    }
  }
}`

func fetchExploreIndexPage(ctx context.Context, c *Client, _ string) (Page, error) {
	page := &ExploreIndexPage{}
	if err := c.fetchFirstPage(ctx, exploreIndexPageQuery, page); err != nil {
		return nil, err
	}
	return page, nil
}

const destinationIndexPageQuery = `
query GetDestinationIndexPage {
  pages(contentType: "explore.DestinationIndexPage") {
    ... on DestinationIndexPage {
      heroTitle
      heroImage { url }
      url
      seoTitle
      subTitle
      description
      children {
        url
        title
        heroImage { url }
        country
      }
    }
  }
}`

func fetchDestinationIndexPage(ctx context.Context, c *Client, _ string) (Page, error) {
	page := &DestinationIndexPage{}
	if err := c.fetchFirstPage(ctx, destinationIndexPageQuery, page); err != nil {
		return nil, err
	}
	return page, nil
}

const destinationQuery = `
query GetDestination($slug: String!) {
  destination(slug: $slug) {
    heroTitle
    heroImage { url }
    url
    seoTitle
    description
    country
    reasonsToVisit {
      heading
      text
      image { url }
    }
    travelRequirements {
      title
      description
      svgIcon { url }
      link
    }
    rankedRoutes(limit: 100) {
      route {
        departureAirport
        arrivalAirport
        departureAirportCode
        arrivalAirportCode
        url
        name
        nameFull
      }
    }
  }
}`

func fetchDestination(ctx context.Context, c *Client, slug string) (Page, error) {
	var data struct {
		Destination *Destination `json:"destination"`
	}
	if err := c.query(ctx, destinationQuery, map[string]any{"slug": slug}, &data); err != nil {
		return nil, err
	}
	if data.Destination == nil {
		return nil, ErrNotFound
	}
	return data.Destination, nil
}

const whereWeFlyQuery = `
query GetWhereWeFlyPage {
  pages(contentType: "explore.WhereWeFly") {
    ... on WhereWeFly {
      heroTitle
      heroImage { url }
      url
      seoTitle
      subTitle
      description
      rankedDomesticRoutes(limit: 100) {
        route {
          departureAirport
          arrivalAirport
          departureAirportCode
          arrivalAirportCode
          url
          name
          nameFull
        }
      }
      rankedInternationalRoutes(limit: 100) {
        route {
          departureAirport
          arrivalAirport
          departureAirportCode
          arrivalAirportCode
          url
          name
          nameFull
        }
      }
    }
  }
}`

func fetchWhereWeFly(ctx context.Context, c *Client, _ string) (Page, error) {
	page := &WhereWeFly{}
	if err := c.fetchFirstPage(ctx, whereWeFlyQuery, page); err != nil {
		return nil, err
	}
	return page, nil
}

const flightScheduleQuery = `
query GetFlightSchedules {
  pages(contentType: "explore.FlightSchedule") {
    ... on FlightSchedule {
      heroTitle
      heroImage { url }
      url
      seoTitle
      description
    }
  }
  schedules {
    id
    startDate
    endDate
    flights {
      id
      day
      flightNumber
      departurePort
      arrivalPort
      departureTime
      arrivalTime
      flightScope
    }
  }
}`

// fetchFlightSchedule merges the schedule page fragment with the top-level
// schedules listing. The fragment carries no __typename of its own; the
// normalization to an explicit FlightSchedule tag happens here, once, so
// downstream template selection never sniffs shapes.
func fetchFlightSchedule(ctx context.Context, c *Client, _ string) (Page, error) {
	var data struct {
		Pages     []json.RawMessage `json:"pages"`
		Schedules []Schedule        `json:"schedules"`
	}
	if err := c.query(ctx, flightScheduleQuery, nil, &data); err != nil {
		return nil, err
	}
	page := &FlightSchedulePage{Schedules: data.Schedules}
	for _, raw := range data.Pages {
		if len(raw) == 0 || string(raw) == "null" || string(raw) == "{}" {
			continue
		}
		if err := json.Unmarshal(raw, page); err != nil {
			return nil, err
		}
		break
	}
	if page.HeroTitle == "" && len(page.Schedules) == 0 {
		return nil, ErrNotFound
	}
	return page, nil
}

const routeQuery = `
query GetRoute($slug: String!) {
  route(slug: $slug) {
    departureAirport
    arrivalAirport
    departureAirportCode
    arrivalAirportCode
    heroTitle
    heroImage { url }
    url
    seoTitle
    subTitle
    description
    name
    nameFull
    fares {
      fareFamily
      price
      tripType
      currency
    }
    specialRoutes(limit: 100) {
      isExpired
      specialName
      startingPrice
      currency
      route {
        nameFull
        url
      }
    }
  }
}`

func fetchRoute(ctx context.Context, c *Client, slug string) (Page, error) {
	var data struct {
		Route *RoutePage `json:"route"`
	}
	if err := c.query(ctx, routeQuery, map[string]any{"slug": slug}, &data); err != nil {
		return nil, err
	}
	if data.Route == nil {
		return nil, ErrNotFound
	}
	return data.Route, nil
}

const specialsIndexPageQuery = `
query GetSpecials {
  pages(contentType: "explore.SpecialsIndexPage") {
    ... on SpecialsIndexPage {
      heroTitle
      heroImage { url }
      url
      seoTitle
      description
    }
  }
  specials {
    name
    heroImage { url }
    url
    endDate
  }
}`

func fetchSpecialsIndexPage(ctx context.Context, c *Client, _ string) (Page, error) {
	var data struct {
		Pages    []json.RawMessage `json:"pages"`
		Specials []SpecialSummary  `json:"specials"`
	}
	if err := c.query(ctx, specialsIndexPageQuery, nil, &data); err != nil {
		return nil, err
	}
	page := &SpecialsIndexPage{Specials: data.Specials}
	for _, raw := range data.Pages {
		if len(raw) == 0 || string(raw) == "null" || string(raw) == "{}" {
			continue
		}
		if err := json.Unmarshal(raw, page); err != nil {
			return nil, err
		}
		break
	}
	return page, nil
}

const specialQuery = `
query GetSpecial($slug: String!) {
  special(slug: $slug) {
    heroTitle
    heroImage { url }
    url
    seoTitle
    subTitle
    description
    name
    startDate
    endDate
    bookingClass
    discount
    tripType
    flightScope
    travelPeriods {
      startDate
      endDate
    }
    termsAndConditions
    specialRoutes {
      specialName
      startingPrice
      route {
        nameFull
        url
        heroImage { url }
      }
    }
  }
}`

func fetchSpecial(ctx context.Context, c *Client, slug string) (Page, error) {
	var data struct {
		Special *Special `json:"special"`
	}
	if err := c.query(ctx, specialQuery, map[string]any{"slug": slug}, &data); err != nil {
		return nil, err
	}
	if data.Special == nil {
		return nil, ErrNotFound
	}
	return data.Special, nil
}

const aboutIndexPageQuery = `
query GetAboutPage {
  pages(contentType: "about.AboutIndexPage") {
    ... on AboutIndexPage {
      heroTitle
      heroImage { url }
      heroVideo
      url
      seoTitle
      subTitle
      description
      missionStatement
      visionStatement
      values {
        title
        description
        image { url }
      }
    }
  }
}`

func fetchAboutIndexPage(ctx context.Context, c *Client, _ string) (Page, error) {
	page := &AboutIndexPage{}
	if err := c.fetchFirstPage(ctx, aboutIndexPageQuery, page); err != nil {
		return nil, err
	}
	return page, nil
}

const belamaIndexPageQuery = `
query GetBelamaPage {
  pages(contentType: "belama.BelamaIndexPage") {
    ... on BelamaIndexPage {
      heroTitle
      heroImage { url }
      url
      seoTitle
      subTitle
      description
      promoImage { url }
      individualMemberships {
        title
        price
        features
      }
      groupMemberships {
        title
        price
        features
      }
    }
  }
}`

func fetchBelamaIndexPage(ctx context.Context, c *Client, _ string) (Page, error) {
	page := &BelamaIndexPage{}
	if err := c.fetchFirstPage(ctx, belamaIndexPageQuery, page); err != nil {
		return nil, err
	}
	return page, nil
}

const belamaSignUpPageQuery = `
query GetBelamaSignUpPage {
  pages(contentType: "belama.BelamaSignUpPage") {
    ... on BelamaSignUpPage {
      heroTitle
      heroImage { url }
      url
      seoTitle
      description
    }
  }
}`

func fetchBelamaSignUpPage(ctx context.Context, c *Client, _ string) (Page, error) {
	page := &BelamaSignUpPage{}
	if err := c.fetchFirstPage(ctx, belamaSignUpPageQuery, page); err != nil {
		return nil, err
	}
	return page, nil
}

const travelAlertPageQuery = `
query GetTravelAlertPage {
  pages(contentType: "alerts.TravelAlertPage") {
    ... on TravelAlertPage {
      heroTitle
      heroImage { url }
      url
      subTitle
      description
      seoTitle
      allAlerts {
        title
        content
        isActive
        createdAt
      }
    }
  }
}`

func fetchTravelAlertPage(ctx context.Context, c *Client, _ string) (Page, error) {
	page := &TravelAlertPage{}
	if err := c.fetchFirstPage(ctx, travelAlertPageQuery, page); err != nil {
		return nil, err
	}
	return page, nil
}

const contactPageQuery = `
query GetContactPage {
  pages(contentType: "contact.ContactPage") {
    ... on ContactPage {
      seoTitle
      subTitle
      description
      heroTitle
      heroImage { url }
      url
      contactSections {
        categoryName
        categoryDescription
        subcategories {
          subcategoryName
          methods {
            methodType
            contactValue
          }
        }
      }
    }
  }
}`

func fetchContactPage(ctx context.Context, c *Client, _ string) (Page, error) {
	page := &ContactPage{}
	if err := c.fetchFirstPage(ctx, contactPageQuery, page); err != nil {
		return nil, err
	}
	return page, nil
}

const careersPageQuery = `
query GetCareersPage {
  pages(contentType: "about.CareersPage") {
    ... on CareersPage {
      heroTitle
      heroImage { url }
      heroVideo
      url
      seoTitle
      subTitle
      cultureHighlights {
        title
        description
        image { url }
      }
      departments {
        departmentName
        description
        image { url }
      }
      benefits {
        title
        description
      }
    }
  }
  jobVacancies {
    positionTitle
    departmentName
    location
    closingDate
    documentUrl
  }
}`

// fetchCareersPage merges the page content with the separately listed job
// vacancies into one composite payload; templates never see the seam.
func fetchCareersPage(ctx context.Context, c *Client, _ string) (Page, error) {
	var data struct {
		Pages        []json.RawMessage `json:"pages"`
		JobVacancies []JobVacancy      `json:"jobVacancies"`
	}
	if err := c.query(ctx, careersPageQuery, nil, &data); err != nil {
		return nil, err
	}
	page := &CareersPage{}
	found := false
	for _, raw := range data.Pages {
		if len(raw) == 0 || string(raw) == "null" || string(raw) == "{}" {
			continue
		}
		if err := json.Unmarshal(raw, page); err != nil {
			return nil, err
		}
		found = true
		break
	}
	if !found {
		return nil, ErrNotFound
	}
	page.JobVacancies = data.JobVacancies
	return page, nil
}

const homePageQuery = `
query GetHomePage {
  pages(contentType: "home.HomePage") {
    ... on HomePage {
      heroTitle
      heroImage { url }
      seoTitle
    }
  }
}`

// HomePage fetches the site root content. The home page is routed outside
// the catch-all and therefore outside the dispatch table.
func (c *Client) HomePage(ctx context.Context) (*HomePage, error) {
	page := &HomePage{}
	if err := c.fetchFirstPage(ctx, homePageQuery, page); err != nil {
		return nil, err
	}
	return page, nil
}
