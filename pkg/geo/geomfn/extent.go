// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"github.com/b4l/spatial/pkg/geo"
	"github.com/b4l/spatial/pkg/geo/geopb"
)

// ExtentAccumulator aggregates the bounding box of a stream of geometries,
// backing an ST_Extent-style aggregate. Empty geometries do not contribute.
// The zero value is ready to use.
type ExtentAccumulator struct {
	bbox    *geo.CartesianBoundingBox
	srid    geopb.SRID
	sridSet bool
}

// Update folds a geometry into the accumulated extent. Geometries with SRID 0
// adopt the accumulator's SRID; mixing two different non-zero SRIDs is an
// error.
func (a *ExtentAccumulator) Update(g geo.Geometry) error {
	if a.sridSet && a.srid != 0 && g.SRID() != 0 && g.SRID() != a.srid {
		return geo.NewMismatchingSRIDsError(g.SpatialObject(), a.repr())
	}
	if !a.sridSet || (a.srid == 0 && g.SRID() != 0) {
		a.srid = g.SRID()
		a.sridSet = true
	}
	a.bbox = a.bbox.Combine(g.CartesianBoundingBox())
	return nil
}

// Merge merges another accumulator into this one, allowing partial
// aggregates to be computed independently and merged in any order.
func (a *ExtentAccumulator) Merge(o *ExtentAccumulator) error {
	if a.sridSet && o.sridSet && a.srid != 0 && o.srid != 0 && a.srid != o.srid {
		return geo.NewMismatchingSRIDsError(o.repr(), a.repr())
	}
	if !a.sridSet || (a.srid == 0 && o.sridSet && o.srid != 0) {
		a.srid = o.srid
		a.sridSet = a.sridSet || o.sridSet
	}
	a.bbox = a.bbox.Combine(o.bbox)
	return nil
}

// Finalize returns the accumulated extent as a geometry. The bool is false if
// no non-empty geometry was added, mirroring SQL aggregates returning NULL.
func (a *ExtentAccumulator) Finalize() (geo.Geometry, bool, error) {
	if a.bbox == nil {
		return geo.Geometry{}, false, nil
	}
	g, err := geo.MakeGeometryFromGeomT(a.bbox.ToGeomT(a.srid))
	if err != nil {
		return geo.Geometry{}, false, err
	}
	return g, true, nil
}

func (a *ExtentAccumulator) repr() geopb.SpatialObject {
	return geopb.SpatialObject{SRID: a.srid, ShapeType: geopb.ShapeType_Polygon}
}
