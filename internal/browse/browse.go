// Package browse is the query boundary consumed by presentation layers. It
// filters and projects joined summit rows; it owns no join logic.
package browse

import (
	"sort"
	"strings"

	"github.com/alexjj/sota-us-counties/internal/join"
)

// Filter holds the three optional predicates. The zero value passes every row.
type Filter struct {
	// Search matches case-insensitively against summit name or code.
	Search string
	// County matches as a substring of the composite county label.
	County string
	// MinPoints is an inclusive lower bound on the summit score.
	MinPoints int
}

// Apply returns the rows satisfying every supplied predicate, sorted by
// summit name for display. The input slice is not modified.
func Apply(rows []join.Row, f Filter) []join.Row {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]join.Row, 0, len(rows))
	for _, row := range rows {
		if search != "" &&
			!strings.Contains(strings.ToLower(row.Name), search) &&
			!strings.Contains(strings.ToLower(row.Code), search) {
			continue
		}
		if f.County != "" && !strings.Contains(row.Counties, f.County) {
			continue
		}
		if row.Points < f.MinPoints {
			continue
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Vocabulary returns every distinct county value present in the rows, sorted.
// Values are recovered by splitting each non-empty composite label on commas
// and trimming whitespace, so "King County, WA" contributes both "King County"
// and "WA". That feeds the county selector, and selecting either value works
// because the County filter is a substring match.
func Vocabulary(rows []join.Row) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		if row.Counties == "" {
			continue
		}
		for _, part := range strings.Split(row.Counties, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				seen[part] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for label := range seen {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}
