// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom"
)

// flatRing is a closed ring of points; the first and last point coincide.
type flatRing struct {
	pts []r2.Point
}

// flatPolygon holds a flattened polygon; ring 0 is the shell, the rest are
// holes. Rings are normalized so that the shell winds counter-clockwise and
// holes wind clockwise, putting the polygon interior on the left of every
// directed ring segment.
type flatPolygon struct {
	rings []flatRing
}

// flatShapes is the decomposition of a geometry into points, line strings
// and polygons with all collection structure stripped.
type flatShapes struct {
	points []r2.Point
	lines  [][]r2.Point
	polys  []flatPolygon
}

func (s *flatShapes) empty() bool {
	return len(s.points) == 0 && len(s.lines) == 0 && len(s.polys) == 0
}

// dim returns the maximum dimension present: 0 for points, 1 for lines,
// 2 for polygons, -1 when empty.
func (s *flatShapes) dim() int {
	switch {
	case len(s.polys) > 0:
		return 2
	case len(s.lines) > 0:
		return 1
	case len(s.points) > 0:
		return 0
	default:
		return -1
	}
}

// segments returns the segments of all lines and all polygon rings.
func (s *flatShapes) segments() []lineSegment {
	var ret []lineSegment
	for _, line := range s.lines {
		ret = appendSegments(ret, line)
	}
	for _, poly := range s.polys {
		for _, ring := range poly.rings {
			ret = appendSegments(ret, ring.pts)
		}
	}
	return ret
}

// vertices returns every point and every line/ring vertex.
func (s *flatShapes) vertices() []r2.Point {
	ret := append([]r2.Point(nil), s.points...)
	for _, line := range s.lines {
		ret = append(ret, line...)
	}
	for _, poly := range s.polys {
		for _, ring := range poly.rings {
			// The closing vertex repeats the first one.
			ret = append(ret, ring.pts[:len(ring.pts)-1]...)
		}
	}
	return ret
}

func appendSegments(dst []lineSegment, pts []r2.Point) []lineSegment {
	for i := 1; i < len(pts); i++ {
		dst = append(dst, lineSegment{a: pts[i-1], b: pts[i]})
	}
	return dst
}

// flattenGeomT decomposes a geometry into flatShapes, dropping empty
// components and consecutive duplicate vertices.
func flattenGeomT(t geom.T) (flatShapes, error) {
	var shapes flatShapes
	if err := flattenInto(t, &shapes); err != nil {
		return flatShapes{}, err
	}
	return shapes, nil
}

func flattenInto(t geom.T, shapes *flatShapes) error {
	if t.Empty() {
		if gc, ok := t.(*geom.GeometryCollection); ok {
			for _, subG := range gc.Geoms() {
				if err := flattenInto(subG, shapes); err != nil {
					return err
				}
			}
		}
		return nil
	}
	switch t := t.(type) {
	case *geom.Point:
		shapes.points = append(shapes.points, r2.Point{X: t.X(), Y: t.Y()})
	case *geom.MultiPoint:
		for i := 0; i < t.NumPoints(); i++ {
			if err := flattenInto(t.Point(i), shapes); err != nil {
				return err
			}
		}
	case *geom.LineString:
		pts := dedupPoints(pointsFromFlatCoords(t.FlatCoords(), t.Stride()))
		switch len(pts) {
		case 0:
		case 1:
			// A line collapsing to a single position is kept as a degenerate
			// closed segment so that it still has dimension 1.
			shapes.lines = append(shapes.lines, []r2.Point{pts[0], pts[0]})
		default:
			shapes.lines = append(shapes.lines, pts)
		}
	case *geom.MultiLineString:
		for i := 0; i < t.NumLineStrings(); i++ {
			if err := flattenInto(t.LineString(i), shapes); err != nil {
				return err
			}
		}
	case *geom.Polygon:
		poly := flatPolygon{}
		for i := 0; i < t.NumLinearRings(); i++ {
			ring := t.LinearRing(i)
			pts := dedupPoints(pointsFromFlatCoords(ring.FlatCoords(), ring.Stride()))
			if len(pts) > 0 && pts[0] != pts[len(pts)-1] {
				pts = append(pts, pts[0])
			}
			if len(pts) < 4 {
				// A collapsed ring (all points coincident) contributes no
				// area; drop it.
				if i == 0 {
					return nil
				}
				continue
			}
			isShell := i == 0
			if ringIsCCW(pts) != isShell {
				reversePoints(pts)
			}
			poly.rings = append(poly.rings, flatRing{pts: pts})
		}
		if len(poly.rings) > 0 {
			shapes.polys = append(shapes.polys, poly)
		}
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			if err := flattenInto(t.Polygon(i), shapes); err != nil {
				return err
			}
		}
	case *geom.GeometryCollection:
		for _, subG := range t.Geoms() {
			if err := flattenInto(subG, shapes); err != nil {
				return err
			}
		}
	default:
		return errors.AssertionFailedf("unknown geom.T type: %T", t)
	}
	return nil
}

func pointsFromFlatCoords(flatCoords []float64, stride int) []r2.Point {
	pts := make([]r2.Point, 0, len(flatCoords)/stride)
	for i := 0; i < len(flatCoords); i += stride {
		pts = append(pts, r2.Point{X: flatCoords[i], Y: flatCoords[i+1]})
	}
	return pts
}

func dedupPoints(pts []r2.Point) []r2.Point {
	ret := pts[:0]
	for i, p := range pts {
		if i > 0 && p == pts[i-1] {
			continue
		}
		ret = append(ret, p)
	}
	return ret
}

func reversePoints(pts []r2.Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// ringSignedArea returns twice the signed area of a closed ring; positive
// for counter-clockwise winding.
func ringSignedArea(pts []r2.Point) float64 {
	var area float64
	for i := 1; i < len(pts); i++ {
		area += pts[i-1].Cross(pts[i])
	}
	return area
}

func ringIsCCW(pts []r2.Point) bool {
	return ringSignedArea(pts) > 0
}

// linearRingSide describes where a point is relative to a ring or polygon.
type linearRingSide int

const (
	outsideLinearRing linearRingSide = -1
	onLinearRing      linearRingSide = 0
	insideLinearRing  linearRingSide = 1
)

// findPointSideOfLinearRing classifies a point against a closed ring using
// the winding number, with explicit boundary detection.
func findPointSideOfLinearRing(p r2.Point, ring []r2.Point) linearRingSide {
	winding := 0
	for i := 1; i < len(ring); i++ {
		u, v := ring[i-1], ring[i]
		if (lineSegment{a: u, b: v}).contains(p) {
			return onLinearRing
		}
		if u.Y <= p.Y {
			if v.Y > p.Y && orientation(u, v, p) == pointSideLeft {
				winding++
			}
		} else {
			if v.Y <= p.Y && orientation(u, v, p) == pointSideRight {
				winding--
			}
		}
	}
	if winding != 0 {
		return insideLinearRing
	}
	return outsideLinearRing
}

// findPointSideOfFlatPolygon classifies a point against a polygon with
// holes.
func findPointSideOfFlatPolygon(p r2.Point, poly flatPolygon) linearRingSide {
	switch findPointSideOfLinearRing(p, poly.rings[0].pts) {
	case outsideLinearRing:
		return outsideLinearRing
	case onLinearRing:
		return onLinearRing
	}
	for _, hole := range poly.rings[1:] {
		switch findPointSideOfLinearRing(p, hole.pts) {
		case insideLinearRing:
			return outsideLinearRing
		case onLinearRing:
			return onLinearRing
		}
	}
	return insideLinearRing
}

// findPointSideOfPolygons classifies a point against a set of polygons,
// returning the strongest containment found.
func findPointSideOfPolygons(p r2.Point, polys []flatPolygon) linearRingSide {
	ret := outsideLinearRing
	for _, poly := range polys {
		switch findPointSideOfFlatPolygon(p, poly) {
		case insideLinearRing:
			return insideLinearRing
		case onLinearRing:
			ret = onLinearRing
		}
	}
	return ret
}

// findPointSideOfPolygon classifies a (non-empty) point geometry against a
// (multi)polygon geometry.
func findPointSideOfPolygon(point geom.T, polygon geom.T) (linearRingSide, error) {
	p, ok := point.(*geom.Point)
	if !ok {
		return 0, errors.AssertionFailedf("expected *geom.Point, got %T", point)
	}
	shapes, err := flattenGeomT(polygon)
	if err != nil {
		return 0, err
	}
	return findPointSideOfPolygons(r2.Point{X: p.X(), Y: p.Y()}, shapes.polys), nil
}

// polygonRepresentativePoint returns a point strictly interior to the
// polygon. It scans horizontal lines positioned strictly between distinct
// vertex Y values, so the scanline never passes through a vertex or along a
// horizontal edge.
func polygonRepresentativePoint(poly flatPolygon) (r2.Point, bool) {
	ys := make([]float64, 0, len(poly.rings[0].pts))
	for _, ring := range poly.rings {
		for _, p := range ring.pts {
			ys = append(ys, p.Y)
		}
	}
	sort.Float64s(ys)
	ys = dedupFloat64s(ys)

	for i := 1; i < len(ys); i++ {
		y := ys[i-1] + (ys[i]-ys[i-1])/2
		if y == ys[i-1] || y == ys[i] {
			// The two values are adjacent floats; no strictly-between
			// scanline exists.
			continue
		}
		var xs []float64
		for _, ring := range poly.rings {
			for j := 1; j < len(ring.pts); j++ {
				u, v := ring.pts[j-1], ring.pts[j]
				if (u.Y < y) == (v.Y < y) {
					continue
				}
				xs = append(xs, u.X+(v.X-u.X)*(y-u.Y)/(v.Y-u.Y))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)
		// Crossings alternate outside/inside by the even-odd rule.
		for j := 1; j < len(xs); j += 2 {
			if xs[j-1] == xs[j] {
				continue
			}
			candidate := r2.Point{X: xs[j-1] + (xs[j]-xs[j-1])/2, Y: y}
			if findPointSideOfFlatPolygon(candidate, poly) == insideLinearRing {
				return candidate, true
			}
		}
	}
	return r2.Point{}, false
}

func dedupFloat64s(vs []float64) []float64 {
	ret := vs[:0]
	for i, v := range vs {
		if i > 0 && v == vs[i-1] {
			continue
		}
		ret = append(ret, v)
	}
	return ret
}
