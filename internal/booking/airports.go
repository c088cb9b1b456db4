package booking

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"pacificair.org/pacificair-web/internal/cms"
)

// Airport is one selectable airport in the booking widget.
type Airport struct {
	Code     string `yaml:"code"`
	Name     string `yaml:"name"`
	Country  string `yaml:"country"`
	Domestic bool   `yaml:"domestic"`
}

type airportsFile struct {
	Airports []Airport `yaml:"airports"`
}

// LoadAirports reads the airport catalogue shipped with the site. A missing
// file is not an error; the widget then relies on the CMS route listing.
func LoadAirports(path string) ([]Airport, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var file airportsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("booking: parse airports %s: %w", path, err)
	}
	return file.Airports, nil
}

// MergeRoutes folds the CMS route listing into the static catalogue so
// newly published routes become bookable without a config change. The
// static entry wins on name conflicts.
func MergeRoutes(airports []Airport, routes []cms.RouteSummary) []Airport {
	seen := make(map[string]struct{}, len(airports))
	merged := make([]Airport, 0, len(airports)+len(routes))
	for _, a := range airports {
		if a.Code == "" {
			continue
		}
		if _, ok := seen[a.Code]; ok {
			continue
		}
		seen[a.Code] = struct{}{}
		merged = append(merged, a)
	}
	for _, r := range routes {
		for _, stop := range []struct{ code, name string }{
			{r.DepartureAirportCode, r.DepartureAirport},
			{r.ArrivalAirportCode, r.ArrivalAirport},
		} {
			if stop.code == "" {
				continue
			}
			if _, ok := seen[stop.code]; ok {
				continue
			}
			seen[stop.code] = struct{}{}
			merged = append(merged, Airport{Code: stop.code, Name: stop.name})
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Name < merged[j].Name })
	return merged
}
