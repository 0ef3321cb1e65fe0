// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"github.com/b4l/spatial/pkg/geo"
	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom"
)

// ConvexHull returns the convex hull of a geometry as a polygon, degrading
// to a line string or point for hulls with fewer than three extreme points.
// Unlike the overlay operations it accepts non-simple input, and geometry
// collections contribute the vertices of all their components.
func ConvexHull(g geo.Geometry) (geo.Geometry, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	shapes, err := flattenGeomT(t)
	if err != nil {
		return geo.Geometry{}, err
	}
	if shapes.empty() {
		return g, nil
	}
	hull := convexHull(shapes.vertices())

	var ret geom.T
	switch len(hull) {
	case 1:
		ret = geom.NewPointFlat(geom.XY, []float64{hull[0].X, hull[0].Y})
	case 2:
		ret = geom.NewLineStringFlat(geom.XY, flatCoordsFromPoints(hull))
	default:
		ring := append(hull, hull[0])
		ret = geom.NewPolygonFlat(
			geom.XY, flatCoordsFromPoints(ring), []int{len(ring) * 2},
		)
	}
	ret = applySRID(ret, g.SRID())
	return geo.MakeGeometryFromGeomT(ret)
}

// convexHull computes the hull with Andrew's monotone chain, returning the
// extreme points in counter-clockwise order starting from the
// lexicographically smallest. Collinear boundary points are excluded.
func convexHull(pts []r2.Point) []r2.Point {
	pts = dedupSortPoints(append([]r2.Point(nil), pts...))
	if len(pts) <= 2 {
		return pts
	}

	build := func(ordered []r2.Point) []r2.Point {
		var chain []r2.Point
		for _, pt := range ordered {
			for len(chain) >= 2 &&
				orientation(chain[len(chain)-2], chain[len(chain)-1], pt) != pointSideLeft {
				chain = chain[:len(chain)-1]
			}
			chain = append(chain, pt)
		}
		return chain
	}

	lower := build(pts)
	reversed := make([]r2.Point, len(pts))
	for i, pt := range pts {
		reversed[len(pts)-1-i] = pt
	}
	upper := build(reversed)

	// Chains share their endpoints.
	hull := append(lower[:len(lower)-1:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) == 2 && hull[0] == hull[1] {
		return hull[:1]
	}
	return hull
}
