// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"github.com/b4l/spatial/pkg/geo"
	"github.com/cockroachdb/errors"
	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom"
)

// LineInterpolatePoint returns the point at the given fraction of a line
// string's length, measured from its start.
func LineInterpolatePoint(g geo.Geometry, fraction float64) (geo.Geometry, error) {
	return lineInterpolate(g, fraction, false)
}

// LineInterpolatePoints returns points at every multiple of the given
// fraction of a line string's length when repeat is set, and behaves as
// LineInterpolatePoint otherwise.
func LineInterpolatePoints(g geo.Geometry, fraction float64, repeat bool) (geo.Geometry, error) {
	return lineInterpolate(g, fraction, repeat)
}

func lineInterpolate(g geo.Geometry, fraction float64, repeat bool) (geo.Geometry, error) {
	if fraction < 0 || fraction > 1 {
		return geo.Geometry{}, errors.Newf("fraction %v should be within [0 1] range", fraction)
	}
	t, err := g.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	line, ok := t.(*geom.LineString)
	if !ok {
		return geo.Geometry{}, geo.NewUnsupportedOperationError(
			"ST_LineInterpolatePoint", g.ShapeType())
	}
	pts := pointsFromFlatCoords(line.FlatCoords(), line.Stride())
	if len(pts) < 2 {
		return geo.Geometry{}, geo.NewEmptyGeometryError()
	}
	total := pathLength(pts)

	if !repeat || fraction == 0 || total == 0 {
		pt := pointAtDistance(pts, fraction*total)
		return geo.MakeGeometryFromGeomT(
			geom.NewPointFlat(geom.XY, []float64{pt.X, pt.Y}).SetSRID(int(g.SRID())))
	}
	mp := geom.NewMultiPoint(geom.XY).SetSRID(int(g.SRID()))
	for f := fraction; f <= 1; f += fraction {
		pt := pointAtDistance(pts, f*total)
		if err := mp.Push(geom.NewPointFlat(geom.XY, []float64{pt.X, pt.Y})); err != nil {
			return geo.Geometry{}, err
		}
	}
	return geo.MakeGeometryFromGeomT(mp)
}

// pointAtDistance walks the path to the point at the given arc length,
// clamping to the endpoints.
func pointAtDistance(pts []r2.Point, dist float64) r2.Point {
	if dist <= 0 {
		return pts[0]
	}
	for i := 1; i < len(pts); i++ {
		segLen := pts[i].Sub(pts[i-1]).Norm()
		if dist <= segLen && segLen > 0 {
			frac := dist / segLen
			return pts[i-1].Add(pts[i].Sub(pts[i-1]).Mul(frac))
		}
		dist -= segLen
	}
	return pts[len(pts)-1]
}
