// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"math"

	"github.com/b4l/spatial/pkg/geo"
	"github.com/cockroachdb/errors"
	"github.com/golang/geo/r2"
)

// MinDistance returns the minimum distance between geometries A and B.
// Returns an EmptyGeometryError if either geometry is empty.
func MinDistance(a geo.Geometry, b geo.Geometry) (float64, error) {
	if _, err := resolveSRIDs(a, b); err != nil {
		return 0, err
	}
	aShapes, bShapes, err := flattenPair(a, b)
	if err != nil {
		return 0, err
	}
	if aShapes.empty() || bShapes.empty() {
		return 0, geo.NewEmptyGeometryError()
	}
	return minDistanceShapes(aShapes, bShapes), nil
}

// MaxDistance returns the maximum distance between geometries A and B.
// Returns an EmptyGeometryError if either geometry is empty.
func MaxDistance(a geo.Geometry, b geo.Geometry) (float64, error) {
	if _, err := resolveSRIDs(a, b); err != nil {
		return 0, err
	}
	aShapes, bShapes, err := flattenPair(a, b)
	if err != nil {
		return 0, err
	}
	if aShapes.empty() || bShapes.empty() {
		return 0, geo.NewEmptyGeometryError()
	}
	// The maximum distance between two geometries is always attained at a
	// pair of vertices.
	ret := 0.0
	for _, aVertex := range aShapes.vertices() {
		for _, bVertex := range bShapes.vertices() {
			if d := aVertex.Sub(bVertex).Norm(); d > ret {
				ret = d
			}
		}
	}
	return ret, nil
}

// DWithin returns whether geometries A and B are within the given distance.
// Empty geometries are never within any distance of each other.
func DWithin(a geo.Geometry, b geo.Geometry, d float64) (bool, error) {
	if d < 0 {
		return false, errors.Newf("dwithin distance cannot be less than zero")
	}
	if _, err := resolveSRIDs(a, b); err != nil {
		return false, err
	}
	aShapes, bShapes, err := flattenPair(a, b)
	if err != nil {
		return false, err
	}
	if aShapes.empty() || bShapes.empty() {
		return false, nil
	}
	// Expanding one bounding box by the distance gives a cheap reject.
	aBox := a.CartesianBoundingBox()
	bBox := b.CartesianBoundingBox()
	if aBox != nil && bBox != nil {
		expanded := *aBox
		expanded.LoX -= d
		expanded.LoY -= d
		expanded.HiX += d
		expanded.HiY += d
		if !expanded.Intersects(bBox) {
			return false, nil
		}
	}
	return minDistanceShapes(aShapes, bShapes) <= d, nil
}

func flattenPair(a geo.Geometry, b geo.Geometry) (flatShapes, flatShapes, error) {
	aGeomT, err := a.AsGeomT()
	if err != nil {
		return flatShapes{}, flatShapes{}, err
	}
	bGeomT, err := b.AsGeomT()
	if err != nil {
		return flatShapes{}, flatShapes{}, err
	}
	aShapes, err := flattenGeomT(aGeomT)
	if err != nil {
		return flatShapes{}, flatShapes{}, err
	}
	bShapes, err := flattenGeomT(bGeomT)
	if err != nil {
		return flatShapes{}, flatShapes{}, err
	}
	return aShapes, bShapes, nil
}

// minDistanceShapes computes the minimum distance over all component pairs,
// short-circuiting as soon as the distance is known to be zero.
func minDistanceShapes(a flatShapes, b flatShapes) float64 {
	// A point inside a polygon is at distance zero from it.
	if containsAnyPoint(a.polys, b) || containsAnyPoint(b.polys, a) {
		return 0
	}
	ret := math.Inf(1)
	aSegs := a.segments()
	bSegs := b.segments()
	for _, aSeg := range aSegs {
		for _, bSeg := range bSegs {
			if intersectSegments(aSeg, bSeg).kind != segmentIntersectionNone {
				return 0
			}
			ret = math.Min(ret, segmentToSegmentDistance(aSeg, bSeg))
		}
	}
	for _, pt := range a.points {
		for _, bSeg := range bSegs {
			ret = math.Min(ret, pointToSegmentDistance(pt, bSeg))
		}
	}
	for _, pt := range b.points {
		for _, aSeg := range aSegs {
			ret = math.Min(ret, pointToSegmentDistance(pt, aSeg))
		}
	}
	for _, aPt := range a.points {
		for _, bPt := range b.points {
			ret = math.Min(ret, aPt.Sub(bPt).Norm())
		}
	}
	if ret == 0 {
		return 0
	}
	return ret
}

// containsAnyPoint returns whether any vertex or point of the other shapes
// lies inside (or on) one of the given polygons.
func containsAnyPoint(polys []flatPolygon, other flatShapes) bool {
	if len(polys) == 0 {
		return false
	}
	for _, pt := range other.vertices() {
		for i := range polys {
			if findPointSideOfFlatPolygon(pt, polys[i]) != outsideLinearRing {
				return true
			}
		}
	}
	return false
}

// pointToSegmentDistance returns the distance from a point to the closest
// point on a segment.
func pointToSegmentDistance(p r2.Point, seg lineSegment) float64 {
	ab := seg.b.Sub(seg.a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Sub(seg.a).Norm()
	}
	t := p.Sub(seg.a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := seg.a.Add(ab.Mul(t))
	return p.Sub(closest).Norm()
}

// segmentToSegmentDistance returns the distance between two non-intersecting
// segments, which is attained at an endpoint of one of them.
func segmentToSegmentDistance(a lineSegment, b lineSegment) float64 {
	return math.Min(
		math.Min(pointToSegmentDistance(a.a, b), pointToSegmentDistance(a.b, b)),
		math.Min(pointToSegmentDistance(b.a, a), pointToSegmentDistance(b.b, a)),
	)
}
