// Package join assigns each summit the counties whose boundary polygons
// contain it and aggregates the matches into one row per summit.
package join

import (
	"sort"
	"strings"

	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/alexjj/sota-us-counties/internal/county"
	"github.com/alexjj/sota-us-counties/internal/summit"
)

// Row is one summit with its aggregated county label. Counties is the sorted,
// deduplicated ", "-joined set of "{Name} County, {ST}" entries; empty when
// the summit matched nothing usable.
type Row struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Region      string  `json:"region"`
	Association string  `json:"association"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Points      int     `json:"points"`
	Counties    string  `json:"counties"`
}

// Match is one (summit, county) containment relationship.
type Match struct {
	SummitCode string
	CountyName string
	StateFIPS  string
}

// Matches evaluates the containment predicate for every summit against every
// county. A summit may yield zero, one, or several matches.
func Matches(summits []summit.Summit, counties []county.County) []Match {
	var matches []Match
	for _, s := range summits {
		point := geom.Coord{s.Longitude, s.Latitude}
		for _, c := range counties {
			if contains(c.Geom, point) {
				matches = append(matches, Match{
					SummitCode: s.Code,
					CountyName: c.Name,
					StateFIPS:  c.StateFIPS,
				})
			}
		}
	}
	return matches
}

// Join performs the left spatial join. Every summit appears in the output
// exactly once, in source order; duplicate summit codes collapse onto the
// first-seen row while all duplicates' matches feed the label set. Matches
// with a missing county name or a state code outside the FIPS table
// contribute nothing.
func Join(summits []summit.Summit, counties []county.County) []Row {
	rows := make([]Row, 0, len(summits))
	rowIdx := make(map[string]int, len(summits))
	labels := make(map[string]map[string]struct{}, len(summits))

	for _, s := range summits {
		idx, seen := rowIdx[s.Code]
		if !seen {
			idx = len(rows)
			rowIdx[s.Code] = idx
			labels[s.Code] = make(map[string]struct{})
			rows = append(rows, Row{
				Code:        s.Code,
				Name:        s.Name,
				Region:      s.Region,
				Association: s.Association,
				Latitude:    s.Latitude,
				Longitude:   s.Longitude,
				Points:      s.Points,
			})
		}

		point := geom.Coord{s.Longitude, s.Latitude}
		for _, c := range counties {
			if !contains(c.Geom, point) {
				continue
			}
			label, ok := countyLabel(c)
			if !ok {
				continue
			}
			labels[s.Code][label] = struct{}{}
		}
	}

	for i := range rows {
		rows[i].Counties = joinLabels(labels[rows[i].Code])
	}

	zap.L().Info("spatial join complete",
		zap.Int("summits", len(summits)),
		zap.Int("counties", len(counties)),
		zap.Int("rows", len(rows)),
	)

	return rows
}

// countyLabel builds the "{Name} County, {ST}" label for one match. Matches
// missing the county name, or whose state code is not in the FIPS table, are
// excluded from labels entirely.
func countyLabel(c county.County) (string, bool) {
	if c.Name == "" {
		return "", false
	}
	abbr, ok := county.StateAbbr(c.StateFIPS)
	if !ok {
		return "", false
	}
	return c.Name + " County, " + abbr, true
}

func joinLabels(set map[string]struct{}) string {
	if len(set) == 0 {
		return ""
	}
	parts := make([]string, 0, len(set))
	for label := range set {
		parts = append(parts, label)
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
