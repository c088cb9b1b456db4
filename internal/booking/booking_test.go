package booking

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func searchForm() url.Values {
	return url.Values{
		"origin":      {"hir"},
		"destination": {"GZO"},
		"departure":   {"2026-10-01"},
		"return":      {"2026-10-08"},
		"adults":      {"2"},
		"children":    {"1"},
	}
}

func TestParseSearchForm(t *testing.T) {
	t.Parallel()

	req, err := ParseSearchForm(searchForm())
	require.NoError(t, err)
	require.Equal(t, "HIR", req.Origin)
	require.Equal(t, "GZO", req.Destination)
	require.False(t, req.OneWay)
	require.Equal(t, Travelers{Adults: 2, Children: 1}, req.Travelers)
	require.Equal(t, "2026-10-01", req.Departure.Format("2006-01-02"))
}

func TestParseSearchFormValidation(t *testing.T) {
	t.Parallel()

	form := searchForm()
	form.Del("origin")
	_, err := ParseSearchForm(form)
	require.ErrorIs(t, err, ErrMissingAirports)

	form = searchForm()
	form.Del("departure")
	_, err = ParseSearchForm(form)
	require.ErrorIs(t, err, ErrMissingDeparture)

	form = searchForm()
	form.Set("return", "2026-09-01")
	_, err = ParseSearchForm(form)
	require.Error(t, err, "return before departure must be rejected")
}

func TestParseSearchFormOneWaySkipsReturn(t *testing.T) {
	t.Parallel()

	form := searchForm()
	form.Set("trip", "oneway")
	form.Del("return")
	req, err := ParseSearchForm(form)
	require.NoError(t, err)
	require.True(t, req.OneWay)
	require.True(t, req.Return.IsZero())
}

func TestParseSearchFormDefaultsAdults(t *testing.T) {
	t.Parallel()

	form := searchForm()
	form.Set("adults", "0")
	req, err := ParseSearchForm(form)
	require.NoError(t, err)
	require.Equal(t, 1, req.Travelers.Adults)
}

func TestBuildHandoffRoundTrip(t *testing.T) {
	t.Parallel()

	builder := NewBuilder("https://book.example/search", "web")
	builder.SetIDFunc(func() string { return "trace-1" })

	req, err := ParseSearchForm(searchForm())
	require.NoError(t, err)
	handoff, err := builder.Build(req)
	require.NoError(t, err)

	require.Equal(t, "https://book.example/search", handoff.Action)
	require.Equal(t, "web", handoff.Fields["channel"])
	require.Equal(t, "trace-1", handoff.Fields["tid"])

	var payload searchPayload
	require.NoError(t, json.Unmarshal([]byte(handoff.Fields["search"]), &payload))
	require.Len(t, payload.Itineraries, 2)
	require.Equal(t, "HIR", payload.Itineraries[0].Origin)
	require.Equal(t, "GZO", payload.Itineraries[0].Destination)
	require.Equal(t, "2026-10-01", payload.Itineraries[0].DepartureDate)
	require.Equal(t, "GZO", payload.Itineraries[1].Origin)
	require.Equal(t, "2026-10-08", payload.Itineraries[1].DepartureDate)
	require.Equal(t, "economy", payload.CabinClass)
	require.Equal(t, Travelers{Adults: 2, Children: 1}, payload.Travelers)
}

func TestBuildHandoffOneWay(t *testing.T) {
	t.Parallel()

	builder := NewBuilder("https://book.example/search", "web")
	form := searchForm()
	form.Set("trip", "oneway")
	req, err := ParseSearchForm(form)
	require.NoError(t, err)

	handoff, err := builder.Build(req)
	require.NoError(t, err)

	var payload searchPayload
	require.NoError(t, json.Unmarshal([]byte(handoff.Fields["search"]), &payload))
	require.Len(t, payload.Itineraries, 1)
	require.NotEmpty(t, handoff.Fields["tid"])
}
