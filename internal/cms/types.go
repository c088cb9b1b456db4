package cms

import (
	"encoding/json"
	"fmt"
)

// Content type tags as reported by the CMS in __typename.
const (
	TypeGenericPage          = "GenericPage"
	TypeNewsIndexPage        = "NewsIndexPage"
	TypeNewsCategoryPage     = "NewsCategoryPage"
	TypeNewsArticle          = "NewsArticle"
	TypeExperienceIndexPage  = "ExperienceIndexPage"
	TypeExploreIndexPage     = "ExploreIndexPage"
	TypeDestinationIndexPage = "DestinationIndexPage"
	TypeDestination          = "Destination"
	TypeWhereWeFly           = "WhereWeFly"
	TypeFlightSchedule       = "FlightSchedule"
	TypeRoute                = "Route"
	TypeSpecialsIndexPage    = "SpecialsIndexPage"
	TypeSpecial              = "Special"
	TypeAboutIndexPage       = "AboutIndexPage"
	TypeBelamaIndexPage      = "BelamaIndexPage"
	TypeBelamaSignUpPage     = "BelamaSignUpPage"
	TypeTravelAlertPage      = "TravelAlertPage"
	TypeContactPage          = "ContactPage"
	TypeCareersPage          = "CareersPage"
	TypeHomePage             = "HomePage"
)

// Page is the tagged union of all CMS page payloads. Payloads are immutable
// snapshots; nothing mutates them after the fetch that produced them.
type Page interface {
	PageTypeName() string
}

// Image is a CMS media reference.
type Image struct {
	URL string `json:"url"`
}

// ContentBlock is one entry of a page's streamfield body.
type ContentBlock struct {
	BlockType string `json:"blockType"`
	Heading   string `json:"heading"`
	Text      string `json:"text"`
	Caption   string `json:"caption"`
	Image     Image  `json:"image"`
}

// ChildPage is a shallow listing entry for index pages.
type ChildPage struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	HeroImage Image  `json:"heroImage"`
	Country   string `json:"country"`
}

// GenericPage is the default streamfield-driven content page.
type GenericPage struct {
	SEOTitle    string         `json:"seoTitle"`
	Description string         `json:"description"`
	HeroTitle   string         `json:"heroTitle"`
	HeroImage   Image          `json:"heroImage"`
	URL         string         `json:"url"`
	Content     []ContentBlock `json:"content"`
}

func (*GenericPage) PageTypeName() string { return TypeGenericPage }

// NewsIndexPage is the news landing page.
type NewsIndexPage struct {
	HeroTitle   string `json:"heroTitle"`
	HeroImage   Image  `json:"heroImage"`
	URL         string `json:"url"`
	SEOTitle    string `json:"seoTitle"`
	Description string `json:"description"`
}

func (*NewsIndexPage) PageTypeName() string { return TypeNewsIndexPage }

// NewsCategoryPage lists articles that belong to one news category.
type NewsCategoryPage struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	HeroTitle   string `json:"heroTitle"`
	HeroImage   Image  `json:"heroImage"`
	URL         string `json:"url"`
	SEOTitle    string `json:"seoTitle"`
	Description string `json:"description"`
}

func (*NewsCategoryPage) PageTypeName() string { return TypeNewsCategoryPage }

// NewsArticle is a single news article.
type NewsArticle struct {
	ID               string `json:"id"`
	Slug             string `json:"slug"`
	URL              string `json:"url"`
	FirstPublishedAt string `json:"firstPublishedAt"`
	ArticleTitle     string `json:"articleTitle"`
	Body             string `json:"body"`
	HeroTitle        string `json:"heroTitle"`
	HeroImage        Image  `json:"heroImage"`
}

func (*NewsArticle) PageTypeName() string { return TypeNewsArticle }

// ExperienceIndexPage lists experience content under /experiences/.
type ExperienceIndexPage struct {
	HeroTitle   string      `json:"heroTitle"`
	HeroImage   Image       `json:"heroImage"`
	URL         string      `json:"url"`
	SEOTitle    string      `json:"seoTitle"`
	Description string      `json:"description"`
	Children    []ChildPage `json:"children"`
}

func (*ExperienceIndexPage) PageTypeName() string { return TypeExperienceIndexPage }

// ExploreIndexPage is the top of the explore section.
type ExploreIndexPage struct {
	HeroTitle   string      `json:"heroTitle"`
	HeroImage   Image       `json:"heroImage"`
	URL         string      `json:"url"`
	SEOTitle    string      `json:"seoTitle"`
	Description string      `json:"description"`
	Children    []ChildPage `json:"children"`
}

func (*ExploreIndexPage) PageTypeName() string { return TypeExploreIndexPage }

// DestinationIndexPage lists destinations.
type DestinationIndexPage struct {
	HeroTitle   string      `json:"heroTitle"`
	HeroImage   Image       `json:"heroImage"`
	URL         string      `json:"url"`
	SEOTitle    string      `json:"seoTitle"`
	SubTitle    string      `json:"subTitle"`
	Description string      `json:"description"`
	Children    []ChildPage `json:"children"`
}

func (*DestinationIndexPage) PageTypeName() string { return TypeDestinationIndexPage }

// TravelRequirement is a single entry requirement for a destination.
type TravelRequirement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SVGIcon     Image  `json:"svgIcon"`
	Link        string `json:"link"`
}

// RouteSummary is the shallow route projection used in listings.
type RouteSummary struct {
	DepartureAirport     string `json:"departureAirport"`
	ArrivalAirport       string `json:"arrivalAirport"`
	DepartureAirportCode string `json:"departureAirportCode"`
	ArrivalAirportCode   string `json:"arrivalAirportCode"`
	URL                  string `json:"url"`
	Name                 string `json:"name"`
	NameFull             string `json:"nameFull"`
}

// RankedRoute wraps a route with its listing rank context.
type RankedRoute struct {
	Route RouteSummary `json:"route"`
}

// Destination is a single destination page.
type Destination struct {
	HeroTitle          string              `json:"heroTitle"`
	HeroImage          Image               `json:"heroImage"`
	URL                string              `json:"url"`
	SEOTitle           string              `json:"seoTitle"`
	Description        string              `json:"description"`
	Country            string              `json:"country"`
	ReasonsToVisit     []ContentBlock      `json:"reasonsToVisit"`
	TravelRequirements []TravelRequirement `json:"travelRequirements"`
	RankedRoutes       []RankedRoute       `json:"rankedRoutes"`
}

func (*Destination) PageTypeName() string { return TypeDestination }

// WhereWeFly is the network overview page.
type WhereWeFly struct {
	HeroTitle           string        `json:"heroTitle"`
	HeroImage           Image         `json:"heroImage"`
	URL                 string        `json:"url"`
	SEOTitle            string        `json:"seoTitle"`
	SubTitle            string        `json:"subTitle"`
	Description         string        `json:"description"`
	DomesticRoutes      []RankedRoute `json:"rankedDomesticRoutes"`
	InternationalRoutes []RankedRoute `json:"rankedInternationalRoutes"`
}

func (*WhereWeFly) PageTypeName() string { return TypeWhereWeFly }

// Flight is one scheduled leg.
type Flight struct {
	ID            string `json:"id"`
	Day           string `json:"day"`
	FlightNumber  string `json:"flightNumber"`
	DeparturePort string `json:"departurePort"`
	ArrivalPort   string `json:"arrivalPort"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	FlightScope   string `json:"flightScope"`
}

// Schedule is a dated block of flights.
type Schedule struct {
	ID        string   `json:"id"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Flights   []Flight `json:"flights"`
}

// FlightSchedulePage carries the schedule tables. The CMS page fragment has
// no discriminant of its own; the presence of schedules identifies it.
type FlightSchedulePage struct {
	HeroTitle   string     `json:"heroTitle"`
	HeroImage   Image      `json:"heroImage"`
	URL         string     `json:"url"`
	SEOTitle    string     `json:"seoTitle"`
	Description string     `json:"description"`
	Schedules   []Schedule `json:"schedules"`
}

func (*FlightSchedulePage) PageTypeName() string { return TypeFlightSchedule }

// Fare is a published fare family price point.
type Fare struct {
	FareFamily string  `json:"fareFamily"`
	Price      float64 `json:"price"`
	TripType   string  `json:"tripType"`
	Currency   string  `json:"currency"`
}

// SpecialRoute links a special to one of its routes.
type SpecialRoute struct {
	IsExpired     bool         `json:"isExpired"`
	Route         RouteSummary `json:"route"`
	SpecialName   string       `json:"specialName"`
	StartingPrice float64      `json:"startingPrice"`
	Currency      string       `json:"currency"`
}

// RoutePage is a single city-pair route page.
type RoutePage struct {
	DepartureAirport     string         `json:"departureAirport"`
	ArrivalAirport       string         `json:"arrivalAirport"`
	DepartureAirportCode string         `json:"departureAirportCode"`
	ArrivalAirportCode   string         `json:"arrivalAirportCode"`
	HeroTitle            string         `json:"heroTitle"`
	HeroImage            Image          `json:"heroImage"`
	URL                  string         `json:"url"`
	SEOTitle             string         `json:"seoTitle"`
	SubTitle             string         `json:"subTitle"`
	Description          string         `json:"description"`
	Name                 string         `json:"name"`
	NameFull             string         `json:"nameFull"`
	Fares                []Fare         `json:"fares"`
	SpecialRoutes        []SpecialRoute `json:"specialRoutes"`
}

func (*RoutePage) PageTypeName() string { return TypeRoute }

// SpecialSummary is the shallow specials listing projection.
type SpecialSummary struct {
	Name      string `json:"name"`
	HeroImage Image  `json:"heroImage"`
	URL       string `json:"url"`
	EndDate   string `json:"endDate"`
}

// SpecialsIndexPage lists current fare specials.
type SpecialsIndexPage struct {
	HeroTitle   string           `json:"heroTitle"`
	HeroImage   Image            `json:"heroImage"`
	URL         string           `json:"url"`
	SEOTitle    string           `json:"seoTitle"`
	Description string           `json:"description"`
	Specials    []SpecialSummary `json:"specials"`
}

func (*SpecialsIndexPage) PageTypeName() string { return TypeSpecialsIndexPage }

// TravelPeriod is a validity window for a special.
type TravelPeriod struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Special is one fare special.
type Special struct {
	HeroTitle          string         `json:"heroTitle"`
	HeroImage          Image          `json:"heroImage"`
	URL                string         `json:"url"`
	SEOTitle           string         `json:"seoTitle"`
	SubTitle           string         `json:"subTitle"`
	Description        string         `json:"description"`
	Name               string         `json:"name"`
	StartDate          string         `json:"startDate"`
	EndDate            string         `json:"endDate"`
	BookingClass       string         `json:"bookingClass"`
	Discount           string         `json:"discount"`
	TripType           string         `json:"tripType"`
	FlightScope        string         `json:"flightScope"`
	TravelPeriods      []TravelPeriod `json:"travelPeriods"`
	TermsAndConditions string         `json:"termsAndConditions"`
	SpecialRoutes      []SpecialRoute `json:"specialRoutes"`
}

func (*Special) PageTypeName() string { return TypeSpecial }

// ValueCard is a company value entry on the about page.
type ValueCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       Image  `json:"image"`
}

// AboutIndexPage is the about-us landing page.
type AboutIndexPage struct {
	HeroTitle        string      `json:"heroTitle"`
	HeroImage        Image       `json:"heroImage"`
	HeroVideo        string      `json:"heroVideo"`
	URL              string      `json:"url"`
	SEOTitle         string      `json:"seoTitle"`
	SubTitle         string      `json:"subTitle"`
	Description      string      `json:"description"`
	MissionStatement string      `json:"missionStatement"`
	VisionStatement  string      `json:"visionStatement"`
	Values           []ValueCard `json:"values"`
}

func (*AboutIndexPage) PageTypeName() string { return TypeAboutIndexPage }

// Membership is a Belama membership tier.
type Membership struct {
	Title    string   `json:"title"`
	Price    string   `json:"price"`
	Features []string `json:"features"`
}

// BelamaIndexPage presents the Belama membership programme.
type BelamaIndexPage struct {
	HeroTitle             string       `json:"heroTitle"`
	HeroImage             Image        `json:"heroImage"`
	URL                   string       `json:"url"`
	SEOTitle              string       `json:"seoTitle"`
	SubTitle              string       `json:"subTitle"`
	Description           string       `json:"description"`
	PromoImage            Image        `json:"promoImage"`
	IndividualMemberships []Membership `json:"individualMemberships"`
	GroupMemberships      []Membership `json:"groupMemberships"`
}

func (*BelamaIndexPage) PageTypeName() string { return TypeBelamaIndexPage }

// BelamaSignUpPage hosts the membership sign-up form copy.
type BelamaSignUpPage struct {
	HeroTitle   string `json:"heroTitle"`
	HeroImage   Image  `json:"heroImage"`
	URL         string `json:"url"`
	SEOTitle    string `json:"seoTitle"`
	Description string `json:"description"`
}

func (*BelamaSignUpPage) PageTypeName() string { return TypeBelamaSignUpPage }

// TravelAlert is one alert entry.
type TravelAlert struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

// TravelAlertPage lists current and past travel alerts.
type TravelAlertPage struct {
	HeroTitle   string        `json:"heroTitle"`
	HeroImage   Image         `json:"heroImage"`
	URL         string        `json:"url"`
	SEOTitle    string        `json:"seoTitle"`
	SubTitle    string        `json:"subTitle"`
	Description string        `json:"description"`
	AllAlerts   []TravelAlert `json:"allAlerts"`
}

func (*TravelAlertPage) PageTypeName() string { return TypeTravelAlertPage }

// ContactMethod is a reachable channel within a contact subcategory.
type ContactMethod struct {
	MethodType   string `json:"methodType"`
	ContactValue string `json:"contactValue"`
}

// ContactSubcategory groups contact methods.
type ContactSubcategory struct {
	SubcategoryName string          `json:"subcategoryName"`
	Methods         []ContactMethod `json:"methods"`
}

// ContactCategory is a top-level contact section.
type ContactCategory struct {
	CategoryName        string               `json:"categoryName"`
	CategoryDescription string               `json:"categoryDescription"`
	Subcategories       []ContactSubcategory `json:"subcategories"`
}

// ContactPage is the contact-us page.
type ContactPage struct {
	HeroTitle       string            `json:"heroTitle"`
	HeroImage       Image             `json:"heroImage"`
	URL             string            `json:"url"`
	SEOTitle        string            `json:"seoTitle"`
	SubTitle        string            `json:"subTitle"`
	Description     string            `json:"description"`
	ContactSections []ContactCategory `json:"contactSections"`
}

func (*ContactPage) PageTypeName() string { return TypeContactPage }

// CultureHighlight is a careers-page culture card.
type CultureHighlight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       Image  `json:"image"`
}

// Department is a careers-page department card.
type Department struct {
	DepartmentName string `json:"departmentName"`
	Description    string `json:"description"`
	Image          Image  `json:"image"`
}

// Benefit is a careers-page benefit entry.
type Benefit struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// JobVacancy is an open position, fetched separately from the page content.
type JobVacancy struct {
	PositionTitle  string `json:"positionTitle"`
	DepartmentName string `json:"departmentName"`
	Location       string `json:"location"`
	ClosingDate    string `json:"closingDate"`
	DocumentURL    string `json:"documentUrl"`
}

// CareersPage is the composite of careers page content and current vacancies.
type CareersPage struct {
	HeroTitle         string             `json:"heroTitle"`
	HeroImage         Image              `json:"heroImage"`
	HeroVideo         string             `json:"heroVideo"`
	URL               string             `json:"url"`
	SEOTitle          string             `json:"seoTitle"`
	SubTitle          string             `json:"subTitle"`
	CultureHighlights []CultureHighlight `json:"cultureHighlights"`
	Departments       []Department       `json:"departments"`
	Benefits          []Benefit          `json:"benefits"`
	JobVacancies      []JobVacancy       `json:"jobVacancies"`
}

func (*CareersPage) PageTypeName() string { return TypeCareersPage }

// HomePage is the site root, fetched outside the catch-all route.
type HomePage struct {
	HeroTitle string `json:"heroTitle"`
	HeroImage Image  `json:"heroImage"`
	SEOTitle  string `json:"seoTitle"`
}

func (*HomePage) PageTypeName() string { return TypeHomePage }

// pagePrototypes maps a content type tag to a constructor for its payload.
// Used when decoding cached envelopes back into concrete payloads.
var pagePrototypes = map[string]func() Page{
	TypeGenericPage:          func() Page { return &GenericPage{} },
	TypeNewsIndexPage:        func() Page { return &NewsIndexPage{} },
	TypeNewsCategoryPage:     func() Page { return &NewsCategoryPage{} },
	TypeNewsArticle:          func() Page { return &NewsArticle{} },
	TypeExperienceIndexPage:  func() Page { return &ExperienceIndexPage{} },
	TypeExploreIndexPage:     func() Page { return &ExploreIndexPage{} },
	TypeDestinationIndexPage: func() Page { return &DestinationIndexPage{} },
	TypeDestination:          func() Page { return &Destination{} },
	TypeWhereWeFly:           func() Page { return &WhereWeFly{} },
	TypeFlightSchedule:       func() Page { return &FlightSchedulePage{} },
	TypeRoute:                func() Page { return &RoutePage{} },
	TypeSpecialsIndexPage:    func() Page { return &SpecialsIndexPage{} },
	TypeSpecial:              func() Page { return &Special{} },
	TypeAboutIndexPage:       func() Page { return &AboutIndexPage{} },
	TypeBelamaIndexPage:      func() Page { return &BelamaIndexPage{} },
	TypeBelamaSignUpPage:     func() Page { return &BelamaSignUpPage{} },
	TypeTravelAlertPage:      func() Page { return &TravelAlertPage{} },
	TypeContactPage:          func() Page { return &ContactPage{} },
	TypeCareersPage:          func() Page { return &CareersPage{} },
	TypeHomePage:             func() Page { return &HomePage{} },
}

type pageEnvelope struct {
	TypeName string          `json:"typeName"`
	Data     json.RawMessage `json:"data"`
}

// EncodePage serializes a payload together with its discriminant so it can
// round-trip through an external cache store.
func EncodePage(p Page) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("cms: encode nil page")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return json.Marshal(pageEnvelope{TypeName: p.PageTypeName(), Data: data})
}

// DecodePage restores a payload serialized by EncodePage.
func DecodePage(raw []byte) (Page, error) {
	var env pageEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	proto, ok := pagePrototypes[env.TypeName]
	if !ok {
		return nil, fmt.Errorf("cms: decode unknown page type %q", env.TypeName)
	}
	page := proto()
	if err := json.Unmarshal(env.Data, page); err != nil {
		return nil, err
	}
	return page, nil
}

// NormalizeTypeTag resolves the effective discriminant for a raw CMS payload.
// Some legacy schedule pages arrive without __typename; a schedules field is
// taken to mean FlightSchedule.
func NormalizeTypeTag(tag string, hasSchedules bool) string {
	if tag != "" {
		return tag
	}
	if hasSchedules {
		return TypeFlightSchedule
	}
	return ""
}
