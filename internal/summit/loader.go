package summit

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Required CSV columns. Anything else in the header is passed through into Extra.
const (
	colCode        = "SummitCode"
	colName        = "SummitName"
	colRegion      = "RegionName"
	colAssociation = "AssociationName"
	colLatitude    = "Latitude"
	colLongitude   = "Longitude"
	colPoints      = "Points"
)

var requiredColumns = []string{
	colCode, colName, colRegion, colAssociation, colLatitude, colLongitude, colPoints,
}

// Load reads the summits CSV at path. See Parse for row semantics.
func Load(path string) ([]Summit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "summit: open %s", path)
	}
	defer func() { _ = f.Close() }()

	summits, err := Parse(f)
	if err != nil {
		return nil, eris.Wrapf(err, "summit: parse %s", path)
	}
	return summits, nil
}

// Parse reads summit records from a CSV stream, preserving source order.
// Rows whose latitude or longitude is empty, non-numeric, or out of range are
// dropped; a source without the required header columns is an error.
func Parse(r io.Reader) ([]Summit, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("summit: empty source")
	}
	if err != nil {
		return nil, eris.Wrap(err, "summit: read header")
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, eris.Errorf("summit: missing required column %q", col)
		}
	}

	field := func(record []string, col string) string {
		i := idx[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var summits []Summit
	var dropped int

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "summit: read row")
		}

		lat, latErr := strconv.ParseFloat(field(record, colLatitude), 64)
		lon, lonErr := strconv.ParseFloat(field(record, colLongitude), 64)
		if latErr != nil || lonErr != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			dropped++
			continue
		}

		points, err := strconv.Atoi(field(record, colPoints))
		if err != nil || points < 0 {
			points = 0
		}

		s := Summit{
			Code:        field(record, colCode),
			Name:        field(record, colName),
			Region:      field(record, colRegion),
			Association: field(record, colAssociation),
			Latitude:    lat,
			Longitude:   lon,
			Points:      points,
		}

		for i, name := range header {
			name = strings.TrimSpace(name)
			if isRequired(name) || i >= len(record) {
				continue
			}
			if s.Extra == nil {
				s.Extra = make(map[string]string)
			}
			s.Extra[name] = strings.TrimSpace(record[i])
		}

		summits = append(summits, s)
	}

	if dropped > 0 {
		zap.L().Debug("summit: dropped rows with unusable coordinates",
			zap.Int("dropped", dropped),
			zap.Int("kept", len(summits)),
		)
	}

	return summits, nil
}

func isRequired(name string) bool {
	for _, col := range requiredColumns {
		if name == col {
			return true
		}
	}
	return false
}
