// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"github.com/b4l/spatial/pkg/geo"
	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"
)

// MakePolygon builds a polygon from a closed shell line string and optional
// closed hole line strings. All inputs must share an SRID.
func MakePolygon(outer geo.Geometry, interior ...geo.Geometry) (geo.Geometry, error) {
	layout := geom.XY
	outerGeomT, err := outer.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	outerRing, err := lineStringToClosedRing(outerGeomT, layout)
	if err != nil {
		return geo.Geometry{}, err
	}
	srid := outerGeomT.SRID()
	polygon := geom.NewPolygon(layout).SetSRID(srid)
	if err := polygon.Push(outerRing); err != nil {
		return geo.Geometry{}, err
	}
	for _, g := range interior {
		interiorGeomT, err := g.AsGeomT()
		if err != nil {
			return geo.Geometry{}, err
		}
		if interiorGeomT.SRID() != 0 && interiorGeomT.SRID() != srid {
			return geo.Geometry{}, geo.NewMismatchingSRIDsError(
				g.SpatialObject(), outer.SpatialObject())
		}
		interiorRing, err := lineStringToClosedRing(interiorGeomT, layout)
		if err != nil {
			return geo.Geometry{}, err
		}
		if err := polygon.Push(interiorRing); err != nil {
			return geo.Geometry{}, err
		}
	}
	return geo.MakeGeometryFromGeomT(polygon)
}

func lineStringToClosedRing(t geom.T, layout geom.Layout) (*geom.LinearRing, error) {
	line, ok := t.(*geom.LineString)
	if !ok {
		return nil, errors.Newf("argument must be LINESTRING geometries")
	}
	if line.Empty() {
		return nil, geo.NewEmptyGeometryError()
	}
	if line.NumCoords() < 4 {
		return nil, errors.Newf("shell must have at least 4 points")
	}
	flat := line.FlatCoords()
	stride := line.Stride()
	if flat[0] != flat[len(flat)-stride] || flat[1] != flat[len(flat)-stride+1] {
		return nil, errors.Newf("shell must be a closed linestring")
	}
	return geom.NewLinearRingFlat(layout, flat), nil
}
