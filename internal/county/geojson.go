package county

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

// LoadGeoJSON reads a county FeatureCollection from path. The Census county
// GeoJSON carries latin-1 bytes, so the file is decoded as ISO 8859-1 rather
// than UTF-8 before JSON parsing.
func LoadGeoJSON(path string) ([]County, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "county: open %s", path)
	}
	defer func() { _ = f.Close() }()

	counties, err := ParseGeoJSON(charmap.ISO8859_1.NewDecoder().Reader(f))
	if err != nil {
		return nil, eris.Wrapf(err, "county: parse %s", path)
	}
	return counties, nil
}

// ParseGeoJSON decodes a FeatureCollection from r. Features keep their NAME
// and STATE attributes as-is; a feature missing either attribute is retained
// with the field empty. Features without usable polygon geometry are skipped.
func ParseGeoJSON(r io.Reader) ([]County, error) {
	var fc geojson.FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, eris.Wrap(err, "county: decode feature collection")
	}

	counties := make([]County, 0, len(fc.Features))
	var skipped int

	for _, feature := range fc.Features {
		if feature == nil {
			skipped++
			continue
		}
		switch feature.Geometry.(type) {
		case *geom.Polygon, *geom.MultiPolygon:
		default:
			skipped++
			continue
		}

		counties = append(counties, County{
			Name:      propString(feature.Properties, "NAME"),
			StateFIPS: propString(feature.Properties, "STATE"),
			Geom:      feature.Geometry,
		})
	}

	if skipped > 0 {
		zap.L().Debug("county: skipped features without polygon geometry",
			zap.Int("skipped", skipped),
			zap.Int("kept", len(counties)),
		)
	}

	return counties, nil
}

// propString pulls a string attribute out of feature properties.
// Non-string scalars are stringified; absent values come back empty.
func propString(props map[string]interface{}, key string) string {
	v, ok := props[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
