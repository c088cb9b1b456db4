package staticparams

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"pacificair.org/pacificair-web/internal/cms"
)

type listingStub struct {
	t       *testing.T
	entries []cms.ListingEntry
	batches int
}

func (s *listingStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.batches++
	var req struct {
		Variables struct {
			Limit  int `json:"limit"`
			Offset int `json:"offset"`
		} `json:"variables"`
	}
	require.NoError(s.t, json.NewDecoder(r.Body).Decode(&req))

	start := req.Variables.Offset
	if start > len(s.entries) {
		start = len(s.entries)
	}
	end := start + req.Variables.Limit
	if end > len(s.entries) {
		end = len(s.entries)
	}
	resp := struct {
		Data struct {
			Pages []cms.ListingEntry `json:"pages"`
		} `json:"data"`
	}{}
	resp.Data.Pages = s.entries[start:end]
	w.Header().Set("Content-Type", "application/json")
	require.NoError(s.t, json.NewEncoder(w).Encode(resp))
}

func newListingEnumerator(t *testing.T, entries []cms.ListingEntry) (*Enumerator, *listingStub) {
	t.Helper()
	stub := &listingStub{t: t, entries: entries}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	return New(cms.NewClient(srv.URL, nil), nil, false), stub
}

func TestEnumerateFiltersAndSorts(t *testing.T) {
	t.Parallel()

	enum, _ := newListingEnumerator(t, []cms.ListingEntry{
		{URL: "/explore/destinations/munda/", TypeName: cms.TypeDestination},
		{URL: "/news/media-releases/new-route/", TypeName: cms.TypeNewsArticle},
		{URL: "/contact/", TypeName: cms.TypeContactPage},
		{URL: "/explore/destinations/gizo/", TypeName: cms.TypeDestination},
		{URL: "/checkout/", TypeName: "CheckoutPage"},
	})

	params := enum.Enumerate(context.Background())
	require.Equal(t, []Param{
		{Slug: []string{"contact"}},
		{Slug: []string{"explore", "destinations", "gizo"}},
		{Slug: []string{"explore", "destinations", "munda"}},
	}, params)
}

func TestEnumerateSkipsRoot(t *testing.T) {
	t.Parallel()

	enum, _ := newListingEnumerator(t, []cms.ListingEntry{
		{URL: "/", TypeName: cms.TypeHomePage},
		{URL: "/contact/", TypeName: cms.TypeContactPage},
	})

	params := enum.Enumerate(context.Background())
	require.Equal(t, []Param{{Slug: []string{"contact"}}}, params)
}

func TestEnumerateStopsOnShortBatch(t *testing.T) {
	t.Parallel()

	entries := make([]cms.ListingEntry, 0, 150)
	for i := 0; i < 150; i++ {
		entries = append(entries, cms.ListingEntry{
			URL:      fmt.Sprintf("/explore/destinations/stop-%03d/", i),
			TypeName: cms.TypeDestination,
		})
	}
	enum, stub := newListingEnumerator(t, entries)

	params := enum.Enumerate(context.Background())
	require.Len(t, params, 150)
	require.Equal(t, 2, stub.batches)
}

func TestEnumerateBatchCap(t *testing.T) {
	t.Parallel()

	total := maxBatches*batchSize + batchSize
	entries := make([]cms.ListingEntry, 0, total)
	for i := 0; i < total; i++ {
		entries = append(entries, cms.ListingEntry{
			URL:      fmt.Sprintf("/explore/destinations/cap-%05d/", i),
			TypeName: cms.TypeDestination,
		})
	}
	enum, stub := newListingEnumerator(t, entries)

	params := enum.Enumerate(context.Background())
	require.Equal(t, maxBatches, stub.batches, "enumeration must stop at the batch cap")
	require.Len(t, params, maxBatches*batchSize)
}

func TestEnumerateEmptyEndpoint(t *testing.T) {
	t.Parallel()

	enum := New(cms.NewClient("", nil), nil, false)
	require.Nil(t, enum.Enumerate(context.Background()))
}

func TestEnumerateNeverFails(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	enum := New(cms.NewClient(srv.URL, nil), nil, false)
	require.Nil(t, enum.Enumerate(context.Background()))
}
