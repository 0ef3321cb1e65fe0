// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"sort"

	"github.com/golang/geo/r2"
)

// lineSegment is a segment between two points on the cartesian plane.
type lineSegment struct {
	a, b r2.Point
}

// contains returns whether p lies on the segment, endpoints included.
func (s lineSegment) contains(p r2.Point) bool {
	if orientation(s.a, s.b, p) != pointSideCollinear {
		return false
	}
	return inSegmentRange(s, p)
}

// inSegmentRange returns whether p falls inside the segment's bounding box.
// Only meaningful for points already known to be collinear with the segment.
func inSegmentRange(s lineSegment, p r2.Point) bool {
	minX, maxX := s.a.X, s.b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := s.a.Y, s.b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return minX <= p.X && p.X <= maxX && minY <= p.Y && p.Y <= maxY
}

// segmentIntersectionKind classifies how two segments intersect.
type segmentIntersectionKind int

const (
	segmentIntersectionNone segmentIntersectionKind = iota
	// segmentIntersectionPoint covers both proper crossings and touches at a
	// single point.
	segmentIntersectionPoint
	// segmentIntersectionOverlap is a collinear overlap of positive length.
	segmentIntersectionOverlap
)

// segmentIntersection is the result of intersecting two segments. For kind
// point, pt holds the intersection; for kind overlap, lo and hi hold the
// overlap extent.
type segmentIntersection struct {
	kind   segmentIntersectionKind
	pt     r2.Point
	lo, hi r2.Point
}

// pointLess orders points lexicographically by (X, Y).
func pointLess(p, q r2.Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

// canonical returns the segment with endpoints in lexicographic order.
func (s lineSegment) canonical() lineSegment {
	if pointLess(s.b, s.a) {
		return lineSegment{a: s.b, b: s.a}
	}
	return s
}

// intersectSegments computes the intersection of two segments. The segments
// are put in a canonical order first so the computed coordinates are
// identical regardless of argument order; overlay construction relies on
// intersection points being computed consistently.
func intersectSegments(s, o lineSegment) segmentIntersection {
	s, o = s.canonical(), o.canonical()
	if pointLess(o.a, s.a) || (o.a == s.a && pointLess(o.b, s.b)) {
		s, o = o, s
	}

	o1 := orientation(s.a, s.b, o.a)
	o2 := orientation(s.a, s.b, o.b)
	o3 := orientation(o.a, o.b, s.a)
	o4 := orientation(o.a, o.b, s.b)

	// All four collinear: the segments lie on one line.
	if o1 == pointSideCollinear && o2 == pointSideCollinear &&
		o3 == pointSideCollinear && o4 == pointSideCollinear {
		return intersectCollinearSegments(s, o)
	}

	if o1 != o2 && o3 != o4 {
		// Touching at an endpoint yields that endpoint exactly.
		switch {
		case o1 == pointSideCollinear && inSegmentRange(s, o.a):
			return segmentIntersection{kind: segmentIntersectionPoint, pt: o.a}
		case o2 == pointSideCollinear && inSegmentRange(s, o.b):
			return segmentIntersection{kind: segmentIntersectionPoint, pt: o.b}
		case o3 == pointSideCollinear && inSegmentRange(o, s.a):
			return segmentIntersection{kind: segmentIntersectionPoint, pt: s.a}
		case o4 == pointSideCollinear && inSegmentRange(o, s.b):
			return segmentIntersection{kind: segmentIntersectionPoint, pt: s.b}
		case o1 == pointSideCollinear || o2 == pointSideCollinear ||
			o3 == pointSideCollinear || o4 == pointSideCollinear:
			// Collinear but out of range: no intersection.
			return segmentIntersection{kind: segmentIntersectionNone}
		}
		return segmentIntersection{
			kind: segmentIntersectionPoint,
			pt:   properCrossingPoint(s, o),
		}
	}
	return segmentIntersection{kind: segmentIntersectionNone}
}

// properCrossingPoint computes the crossing point of two segments already
// known to properly cross.
func properCrossingPoint(s, o lineSegment) r2.Point {
	d1 := s.b.Sub(s.a)
	d2 := o.b.Sub(o.a)
	denom := d1.Cross(d2)
	t := o.a.Sub(s.a).Cross(d2) / denom
	return s.a.Add(d1.Mul(t))
}

// intersectCollinearSegments intersects two segments lying on the same line.
func intersectCollinearSegments(s, o lineSegment) segmentIntersection {
	// Both segments are canonical and s.a <= o.a, so lexicographic order is
	// the order along the shared line: the overlap is [o.a, min(s.b, o.b)].
	lo, hi := o.a, s.b
	if pointLess(hi, lo) {
		return segmentIntersection{kind: segmentIntersectionNone}
	}
	if pointLess(o.b, hi) {
		hi = o.b
	}
	if lo == hi {
		return segmentIntersection{kind: segmentIntersectionPoint, pt: lo}
	}
	return segmentIntersection{kind: segmentIntersectionOverlap, lo: lo, hi: hi}
}

// splitSegmentAt splits the segment at the given cut points, returning the
// ordered subsegments. Cut points coincident with the endpoints or off the
// segment are ignored.
func splitSegmentAt(s lineSegment, cuts []r2.Point) []lineSegment {
	if len(cuts) == 0 {
		return []lineSegment{s}
	}
	d := s.b.Sub(s.a)
	type cut struct {
		t  float64
		pt r2.Point
	}
	ordered := make([]cut, 0, len(cuts))
	for _, p := range cuts {
		if p == s.a || p == s.b {
			continue
		}
		ordered = append(ordered, cut{t: p.Sub(s.a).Dot(d), pt: p})
	}
	if len(ordered) == 0 {
		return []lineSegment{s}
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].t != ordered[j].t {
			return ordered[i].t < ordered[j].t
		}
		return pointLess(ordered[i].pt, ordered[j].pt)
	})
	ret := make([]lineSegment, 0, len(ordered)+1)
	prev := s.a
	for _, c := range ordered {
		if c.pt == prev {
			continue
		}
		ret = append(ret, lineSegment{a: prev, b: c.pt})
		prev = c.pt
	}
	if prev != s.b {
		ret = append(ret, lineSegment{a: prev, b: s.b})
	}
	return ret
}

// nodeSegmentsAgainst splits every segment in segs at its intersections with
// the segments in others.
func nodeSegmentsAgainst(segs []lineSegment, others []lineSegment) []lineSegment {
	ret := make([]lineSegment, 0, len(segs))
	for _, s := range segs {
		var cuts []r2.Point
		for _, o := range others {
			switch res := intersectSegments(s, o); res.kind {
			case segmentIntersectionPoint:
				cuts = append(cuts, res.pt)
			case segmentIntersectionOverlap:
				cuts = append(cuts, res.lo, res.hi)
			}
		}
		ret = append(ret, splitSegmentAt(s, cuts)...)
	}
	return ret
}

// midpoint returns the midpoint of the segment.
func (s lineSegment) midpoint() r2.Point {
	return r2.Point{X: (s.a.X + s.b.X) / 2, Y: (s.a.Y + s.b.Y) / 2}
}
