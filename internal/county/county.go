// Package county loads county boundary polygons from GeoJSON or TIGER/Line
// shapefile sources. All geometries are geographic coordinates (EPSG:4326);
// nothing here reprojects.
package county

import (
	"github.com/twpayne/go-geom"
)

// SRID of every boundary geometry. Fixed at load time, never reprojected.
const SRID = 4326

// County is one administrative boundary polygon.
// Name or StateFIPS may be empty when the source feature lacks the attribute;
// such counties still participate in the join and simply contribute nothing
// to composite labels.
type County struct {
	Name      string `json:"name"`
	StateFIPS string `json:"state_fips"`
	Geom      geom.T `json:"-"`
}
