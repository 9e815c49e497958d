package join

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"github.com/twpayne/go-geom/xy/location"
)

// contains reports whether point lies inside g or on its boundary. The test is
// inclusive: summits sitting exactly on a county line match every county that
// shares the line.
func contains(g geom.T, point geom.Coord) bool {
	switch t := g.(type) {
	case *geom.Polygon:
		return polygonContains(t, point)
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			if polygonContains(t.Polygon(i), point) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func polygonContains(p *geom.Polygon, point geom.Coord) bool {
	if p.NumLinearRings() == 0 {
		return false
	}

	switch xy.LocatePointInRing(p.Layout(), point, p.LinearRing(0).FlatCoords()) {
	case location.Exterior:
		return false
	case location.Boundary:
		return true
	}

	// Inside the shell. A point in a hole's interior is outside the polygon,
	// but a point on a hole's edge is still on the polygon boundary.
	for i := 1; i < p.NumLinearRings(); i++ {
		switch xy.LocatePointInRing(p.Layout(), point, p.LinearRing(i).FlatCoords()) {
		case location.Interior:
			return false
		case location.Boundary:
			return true
		}
	}
	return true
}
