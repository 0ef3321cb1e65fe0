// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"github.com/b4l/spatial/pkg/geo"
	"github.com/golang/geo/r2"
)

// Area returns the area of a geometry. Points and lines have zero area;
// holes subtract from their shell.
func Area(g geo.Geometry) (float64, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return 0, err
	}
	shapes, err := flattenGeomT(t)
	if err != nil {
		return 0, err
	}
	area := 0.0
	for _, poly := range shapes.polys {
		for _, ring := range poly.rings {
			// Shells wind counter-clockwise and holes clockwise, so the
			// signed areas sum to the polygon area.
			area += ringSignedArea(ring.pts) / 2
		}
	}
	return area, nil
}

// Length returns the summed length of the line components of a geometry.
// Polygon boundaries do not contribute, matching ST_Length.
func Length(g geo.Geometry) (float64, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return 0, err
	}
	shapes, err := flattenGeomT(t)
	if err != nil {
		return 0, err
	}
	length := 0.0
	for _, line := range shapes.lines {
		length += pathLength(line)
	}
	return length, nil
}

// Perimeter returns the summed boundary length of the polygon components of
// a geometry, including hole rings.
func Perimeter(g geo.Geometry) (float64, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return 0, err
	}
	shapes, err := flattenGeomT(t)
	if err != nil {
		return 0, err
	}
	perimeter := 0.0
	for _, poly := range shapes.polys {
		for _, ring := range poly.rings {
			perimeter += pathLength(ring.pts)
		}
	}
	return perimeter, nil
}

func pathLength(pts []r2.Point) float64 {
	length := 0.0
	for i := 1; i < len(pts); i++ {
		length += pts[i].Sub(pts[i-1]).Norm()
	}
	return length
}
