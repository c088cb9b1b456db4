package staticparams

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"pacificair.org/pacificair-web/internal/cms"
)

const (
	batchSize = 100
	// maxBatches bounds build time against a misbehaving or enormous CMS
	// dataset: at most 50 requests (5000 pages).
	maxBatches   = 50
	batchTimeout = 30 * time.Second
)

// prerenderTypes is the allow-list of content types worth pre-rendering.
// Detail and rarely-changing leaf content renders dynamically on request.
var prerenderTypes = map[string]struct{}{
	cms.TypeHomePage:             {},
	cms.TypeNewsIndexPage:        {},
	cms.TypeExploreIndexPage:     {},
	cms.TypeExperienceIndexPage:  {},
	cms.TypeContactPage:          {},
	cms.TypeCareersPage:          {},
	cms.TypeDestinationIndexPage: {},
	cms.TypeDestination:          {},
	cms.TypeSpecialsIndexPage:    {},
	cms.TypeTravelAlertPage:      {},
	cms.TypeWhereWeFly:           {},
	cms.TypeFlightSchedule:       {},
}

// Param is one pre-renderable page, as a slug segment array.
type Param struct {
	Slug []string `json:"slug"`
}

// Enumerator pages through the CMS's full page listing at build time and
// emits the curated set of paths to pre-render.
type Enumerator struct {
	cms *cms.Client
	log *zap.Logger
	// dev suppresses the warning log on enumeration failure.
	dev bool
}

// New constructs an Enumerator. The client may be configured with an empty
// endpoint; enumeration then returns an empty list, which is a supported
// state meaning "skip static generation".
func New(client *cms.Client, log *zap.Logger, dev bool) *Enumerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Enumerator{cms: client, log: log, dev: dev}
}

// Enumerate returns the sorted static params. It never fails: any error
// resolves to an empty list so the build proceeds with dynamic rendering.
func (e *Enumerator) Enumerate(ctx context.Context) []Param {
	if e.cms == nil || e.cms.Endpoint() == "" {
		e.log.Warn("no GraphQL endpoint configured, skipping static generation")
		return nil
	}
	e.cms.SetHTTPClient(&http.Client{Timeout: batchTimeout})

	params, err := e.enumerate(ctx)
	if err != nil {
		if !e.dev {
			e.log.Warn("static params enumeration failed, falling back to dynamic rendering",
				zap.Error(err))
		}
		return nil
	}
	return params
}

func (e *Enumerator) enumerate(ctx context.Context) ([]Param, error) {
	var all []cms.ListingEntry
	offset := 0
	for batch := 0; batch < maxBatches; batch++ {
		entries, err := e.cms.Pages(ctx, batchSize, offset)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			break
		}
		all = append(all, entries...)
		offset += batchSize
		if len(entries) < batchSize {
			break
		}
	}
	e.log.Info("fetched page listing", zap.Int("pages", len(all)))

	params := make([]Param, 0, len(all))
	for _, entry := range all {
		if _, ok := prerenderTypes[entry.TypeName]; !ok {
			continue
		}
		segments := splitSegments(entry.URL)
		if len(segments) == 0 {
			// The site root is routed separately, not via the catch-all.
			continue
		}
		params = append(params, Param{Slug: segments})
	}
	sort.Slice(params, func(i, j int) bool {
		return strings.Join(params[i].Slug, "/") < strings.Join(params[j].Slug, "/")
	})
	return params, nil
}

func splitSegments(url string) []string {
	parts := strings.Split(url, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
