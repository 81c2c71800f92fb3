package planet

import (
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// LoadAOI reads an area of interest from a GeoJSON file. The file may
// hold a FeatureCollection (the first feature wins), a single Feature
// or a bare geometry. Degenerate geometries with no area are rejected.
func LoadAOI(path string) (orb.Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read AOI file %s: %w", path, err)
	}

	var geom orb.Geometry
	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil && len(fc.Features) > 0 {
		geom = fc.Features[0].Geometry
	} else if feat, err := geojson.UnmarshalFeature(data); err == nil {
		geom = feat.Geometry
	} else if g, err := geojson.UnmarshalGeometry(data); err == nil {
		geom = g.Geometry()
	} else {
		return nil, fmt.Errorf("failed to parse GeoJSON in %s", path)
	}

	if _, area := planar.CentroidArea(geom); area <= 0 {
		return nil, errors.New("AOI geometry has no area")
	}
	return geom, nil
}

// AOICentroid returns the WGS84 centroid of a geometry.
func AOICentroid(geom orb.Geometry) (lon, lat float64, err error) {
	centroid, area := planar.CentroidArea(geom)
	if area <= 0 {
		return 0, 0, errors.New("AOI geometry has no area")
	}
	return centroid.X(), centroid.Y(), nil
}
