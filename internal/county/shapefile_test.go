package county

import (
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

// clockwise outer ring per the shapefile spec
func squareRing(minX, minY, maxX, maxY float64) []shp.Point {
	return []shp.Point{
		{X: minX, Y: minY},
		{X: minX, Y: maxY},
		{X: maxX, Y: maxY},
		{X: maxX, Y: minY},
		{X: minX, Y: minY},
	}
}

func TestPolygonToMultiPolygon_SingleRing(t *testing.T) {
	poly := &shp.Polygon{
		NumParts: 1,
		Parts:    []int32{0},
		Points:   squareRing(-122.0, 47.0, -121.0, 48.0),
	}

	g := polygonToMultiPolygon(poly)
	require.NotNil(t, g)

	mp, ok := g.(*geom.MultiPolygon)
	require.True(t, ok)
	assert.Equal(t, 1, mp.NumPolygons())
	assert.Equal(t, SRID, mp.SRID())
}

func TestPolygonToMultiPolygon_MultiPart(t *testing.T) {
	ring1 := squareRing(-122.0, 47.0, -121.0, 48.0)
	ring2 := squareRing(-120.0, 45.0, -119.0, 46.0)

	poly := &shp.Polygon{
		NumParts: 2,
		Parts:    []int32{0, int32(len(ring1))},
		Points:   append(append([]shp.Point{}, ring1...), ring2...),
	}

	g := polygonToMultiPolygon(poly)
	require.NotNil(t, g)

	mp := g.(*geom.MultiPolygon)
	assert.Equal(t, 2, mp.NumPolygons())
}

func TestPolygonToMultiPolygon_HoleRing(t *testing.T) {
	outer := squareRing(0, 0, 10, 10)
	// counter-clockwise ring inside the outer square
	hole := []shp.Point{
		{X: 4, Y: 4},
		{X: 6, Y: 4},
		{X: 6, Y: 6},
		{X: 4, Y: 6},
		{X: 4, Y: 4},
	}

	poly := &shp.Polygon{
		NumParts: 2,
		Parts:    []int32{0, int32(len(outer))},
		Points:   append(append([]shp.Point{}, outer...), hole...),
	}

	g := polygonToMultiPolygon(poly)
	require.NotNil(t, g)

	mp := g.(*geom.MultiPolygon)
	require.Equal(t, 1, mp.NumPolygons())
	assert.Equal(t, 2, mp.Polygon(0).NumLinearRings())
}

func TestPolygonToMultiPolygon_Empty(t *testing.T) {
	assert.Nil(t, polygonToMultiPolygon(&shp.Polygon{}))
	assert.Nil(t, polygonToMultiPolygon(nil))
}

func TestLoadShapefile_MissingFile(t *testing.T) {
	_, err := LoadShapefile(filepath.Join(t.TempDir(), "nope.shp"))
	assert.Error(t, err)
}

func TestLoadShapefile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counties.shp")

	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{
		shp.StringField("STATEFP", 2),
		shp.StringField("NAME", 32),
	}))

	ring := squareRing(-122.5, 47.0, -121.0, 48.0)
	w.Write(&shp.Polygon{
		Box:       shp.Box{MinX: -122.5, MinY: 47.0, MaxX: -121.0, MaxY: 48.0},
		NumParts:  1,
		NumPoints: int32(len(ring)),
		Parts:     []int32{0},
		Points:    ring,
	})
	require.NoError(t, w.WriteAttribute(0, 0, "53"))
	require.NoError(t, w.WriteAttribute(0, 1, "King"))
	require.NoError(t, w.Close())

	counties, err := LoadShapefile(path)
	require.NoError(t, err)
	require.Len(t, counties, 1)
	assert.Equal(t, "King", counties[0].Name)
	assert.Equal(t, "53", counties[0].StateFIPS)

	mp, ok := counties[0].Geom.(*geom.MultiPolygon)
	require.True(t, ok)
	assert.Equal(t, 1, mp.NumPolygons())
}
