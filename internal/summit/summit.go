// Package summit loads SOTA summit records from the summits CSV export.
package summit

// Summit is one summit record from the points source.
type Summit struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Region      string  `json:"region"`
	Association string  `json:"association"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Points      int     `json:"points"`

	// Extra carries any source columns beyond the required set, untouched.
	Extra map[string]string `json:"-"`
}
