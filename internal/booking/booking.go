package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

var (
	// ErrMissingAirports is returned when origin or destination are absent.
	ErrMissingAirports = errors.New("booking: origin and destination are required")
	// ErrMissingDeparture is returned when no departure date is given.
	ErrMissingDeparture = errors.New("booking: departure date is required")
)

// Travelers is the party composition for a search.
type Travelers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// SearchRequest is the validated booking-widget input.
type SearchRequest struct {
	Origin      string
	Destination string
	Departure   time.Time
	Return      time.Time
	OneWay      bool
	Travelers   Travelers
}

// ParseSearchForm validates raw widget form input into a SearchRequest.
func ParseSearchForm(form url.Values) (SearchRequest, error) {
	req := SearchRequest{
		Origin:      strings.ToUpper(strings.TrimSpace(form.Get("origin"))),
		Destination: strings.ToUpper(strings.TrimSpace(form.Get("destination"))),
		OneWay:      form.Get("trip") == "oneway",
		Travelers: Travelers{
			Adults:   formInt(form, "adults", 1),
			Children: formInt(form, "children", 0),
			Infants:  formInt(form, "infants", 0),
		},
	}
	if req.Origin == "" || req.Destination == "" {
		return SearchRequest{}, ErrMissingAirports
	}
	departure, err := time.Parse(dateLayout, form.Get("departure"))
	if err != nil {
		return SearchRequest{}, ErrMissingDeparture
	}
	req.Departure = departure
	if !req.OneWay {
		ret, err := time.Parse(dateLayout, form.Get("return"))
		if err != nil {
			return SearchRequest{}, fmt.Errorf("booking: return date: %w", err)
		}
		if ret.Before(departure) {
			return SearchRequest{}, fmt.Errorf("booking: return date precedes departure")
		}
		req.Return = ret
	}
	if req.Travelers.Adults < 1 {
		req.Travelers.Adults = 1
	}
	return req, nil
}

func formInt(form url.Values, key string, fallback int) int {
	v, err := strconv.Atoi(form.Get(key))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

type itinerary struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
}

type searchPayload struct {
	Itineraries []itinerary `json:"itineraries"`
	Travelers   Travelers   `json:"travelers"`
	CabinClass  string      `json:"cabinClass"`
}

// Handoff is the cross-origin form submission to the external reservation
// system: target URL plus hidden form fields. Fire-and-forget; no response
// is ever parsed.
type Handoff struct {
	Action string
	Fields map[string]string
}

// Builder turns validated searches into reservation-system handoffs.
type Builder struct {
	action  string
	channel string
	newID   func() string
}

// NewBuilder constructs a Builder for the given reservation URL and channel
// tag.
func NewBuilder(action, channel string) *Builder {
	return &Builder{
		action:  action,
		channel: channel,
		newID:   func() string { return uuid.NewString() },
	}
}

// SetIDFunc overrides trace id generation, primarily for tests.
func (b *Builder) SetIDFunc(f func() string) {
	if f != nil {
		b.newID = f
	}
}

// Build produces the handoff for a search: the structured search object as
// a JSON field, the sales channel, and a fresh trace id.
func (b *Builder) Build(req SearchRequest) (Handoff, error) {
	payload := searchPayload{
		Itineraries: []itinerary{{
			Origin:        req.Origin,
			Destination:   req.Destination,
			DepartureDate: req.Departure.Format(dateLayout),
		}},
		Travelers:  req.Travelers,
		CabinClass: "economy",
	}
	if !req.OneWay {
		payload.Itineraries = append(payload.Itineraries, itinerary{
			Origin:        req.Destination,
			Destination:   req.Origin,
			DepartureDate: req.Return.Format(dateLayout),
		})
	}
	search, err := json.Marshal(payload)
	if err != nil {
		return Handoff{}, err
	}
	return Handoff{
		Action: b.action,
		Fields: map[string]string{
			"search":  string(search),
			"channel": b.channel,
			"tid":     b.newID(),
		},
	}, nil
}
