// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"github.com/b4l/spatial/pkg/geo"
	"github.com/twpayne/go-geom"
)

// Envelope returns the axis-aligned bounding envelope of a geometry. The
// result is a point for a degenerate zero-area box, a line for a box with
// zero width or height, and a rectangular polygon otherwise. Empty
// geometries return an empty polygon.
func Envelope(g geo.Geometry) (geo.Geometry, error) {
	bbox := g.CartesianBoundingBox()
	if bbox == nil {
		return geo.MakeGeometryFromGeomT(
			geom.NewPolygon(geom.XY).SetSRID(int(g.SRID())),
		)
	}
	return geo.MakeGeometryFromGeomT(bbox.ToGeomT(g.SRID()))
}
