// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"sort"

	"github.com/b4l/spatial/pkg/geo"
	"github.com/b4l/spatial/pkg/geo/geopb"
	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom"
)

// Intersection returns the point-set intersection of geometries A and B.
func Intersection(a geo.Geometry, b geo.Geometry) (geo.Geometry, error) {
	return applyOverlayOp(a, b, overlayIntersection, "ST_Intersection")
}

// Union returns the point-set union of geometries A and B.
func Union(a geo.Geometry, b geo.Geometry) (geo.Geometry, error) {
	return applyOverlayOp(a, b, overlayUnion, "ST_Union")
}

// Difference returns the point-set difference of geometry A minus geometry B.
func Difference(a geo.Geometry, b geo.Geometry) (geo.Geometry, error) {
	return applyOverlayOp(a, b, overlayDifference, "ST_Difference")
}

// SymDifference returns the point-set symmetric difference of A and B.
func SymDifference(a geo.Geometry, b geo.Geometry) (geo.Geometry, error) {
	return applyOverlayOp(a, b, overlaySymDifference, "ST_SymDifference")
}

func applyOverlayOp(
	a geo.Geometry, b geo.Geometry, op overlayOp, opName string,
) (geo.Geometry, error) {
	srid, err := resolveSRIDs(a, b)
	if err != nil {
		return geo.Geometry{}, err
	}
	if a.ShapeType() == geopb.ShapeType_GeometryCollection {
		return geo.Geometry{}, geo.NewUnsupportedOperationError(opName, a.ShapeType())
	}
	if b.ShapeType() == geopb.ShapeType_GeometryCollection {
		return geo.Geometry{}, geo.NewUnsupportedOperationError(opName, b.ShapeType())
	}
	aShapes, bShapes, err := flattenPair(a, b)
	if err != nil {
		return geo.Geometry{}, err
	}
	if err := validatePolygonTopology(aShapes.polys); err != nil {
		return geo.Geometry{}, err
	}
	if err := validatePolygonTopology(bShapes.polys); err != nil {
		return geo.Geometry{}, err
	}
	res := overlayShapes(aShapes, bShapes, op)
	return shapesToGeometry(res, srid, emptyResultDim(a, b, op))
}

// emptyResultDim gives the dimension used for an empty result's shape:
// intersection takes the lower operand dimension, difference the left
// operand's, union and symmetric difference the higher.
func emptyResultDim(a geo.Geometry, b geo.Geometry, op overlayOp) int {
	aDim, bDim := shapeDim(a.ShapeType()), shapeDim(b.ShapeType())
	switch op {
	case overlayIntersection:
		if bDim < aDim {
			return bDim
		}
		return aDim
	case overlayDifference:
		return aDim
	default:
		if bDim > aDim {
			return bDim
		}
		return aDim
	}
}

// overlayShapes dispatches the set operation on the operand families. Each
// non-collection operand flattens to a single family.
func overlayShapes(a, b flatShapes, op overlayOp) flatShapes {
	aDim, bDim := a.dim(), b.dim()

	// Empty operands resolve without an overlay.
	if aDim == -1 || bDim == -1 {
		switch op {
		case overlayIntersection:
			return flatShapes{}
		case overlayDifference:
			return a
		default:
			if aDim == -1 {
				return b
			}
			return a
		}
	}

	switch {
	case aDim == 0 && bDim == 0:
		return overlayPointsPoints(a, b, op)
	case aDim == 0 || bDim == 0:
		return overlayPointsOther(a, b, op)
	case aDim == 1 && bDim == 1:
		return overlayLinesLines(a, b, op)
	case aDim == 2 && bDim == 2:
		res := overlayPolygons(a.polys, b.polys, op)
		return flatShapes{points: res.points, lines: res.lines, polys: res.polys}
	default:
		return overlayLinesPolygons(a, b, op)
	}
}

func overlayPointsPoints(a, b flatShapes, op overlayOp) flatShapes {
	inB := make(map[r2.Point]bool, len(b.points))
	for _, pt := range b.points {
		inB[pt] = true
	}
	var ret []r2.Point
	switch op {
	case overlayIntersection:
		for _, pt := range a.points {
			if inB[pt] {
				ret = append(ret, pt)
			}
		}
	case overlayUnion:
		ret = append(append(ret, a.points...), b.points...)
	case overlayDifference:
		for _, pt := range a.points {
			if !inB[pt] {
				ret = append(ret, pt)
			}
		}
	case overlaySymDifference:
		inA := make(map[r2.Point]bool, len(a.points))
		for _, pt := range a.points {
			inA[pt] = true
		}
		for _, pt := range a.points {
			if !inB[pt] {
				ret = append(ret, pt)
			}
		}
		for _, pt := range b.points {
			if !inA[pt] {
				ret = append(ret, pt)
			}
		}
	}
	return flatShapes{points: dedupSortPoints(ret)}
}

// overlayPointsOther handles a point operand against a line or polygon
// operand. Lines and polygons are closed point sets, so a point on a
// boundary is covered.
func overlayPointsOther(a, b flatShapes, op overlayOp) flatShapes {
	points, other := a, b
	pointsIsA := true
	if a.dim() != 0 {
		points, other = b, a
		pointsIsA = false
	}
	covered := func(pt r2.Point) bool {
		if len(other.polys) > 0 {
			return findPointSideOfPolygons(pt, other.polys) != outsideLinearRing
		}
		return onAnySegment(pt, other.segments())
	}
	var kept, uncovered []r2.Point
	for _, pt := range points.points {
		if covered(pt) {
			kept = append(kept, pt)
		} else {
			uncovered = append(uncovered, pt)
		}
	}
	switch op {
	case overlayIntersection:
		return flatShapes{points: dedupSortPoints(kept)}
	case overlayUnion, overlaySymDifference:
		ret := other
		ret.points = dedupSortPoints(append(ret.points, uncovered...))
		return ret
	default: // overlayDifference
		if pointsIsA {
			return flatShapes{points: dedupSortPoints(uncovered)}
		}
		return other
	}
}

func overlayLinesLines(a, b flatShapes, op overlayOp) flatShapes {
	aSegs := a.segments()
	bSegs := b.segments()
	aNoded := nodeSegmentsAgainst(aSegs, bSegs)
	bNoded := nodeSegmentsAgainst(bSegs, aSegs)

	var kept []lineSegment
	switch op {
	case overlayIntersection:
		for _, seg := range aNoded {
			if onAnySegment(seg.midpoint(), bNoded) {
				kept = append(kept, seg)
			}
		}
		lines := mergeSegmentRuns(kept)
		var points []r2.Point
		for _, node := range discreteIntersectionNodes(aNoded, bNoded) {
			if !onAnyLine(node, lines) {
				points = append(points, node)
			}
		}
		return flatShapes{points: dedupSortPoints(points), lines: lines}
	case overlayUnion:
		kept = append(kept, aNoded...)
		for _, seg := range bNoded {
			if !onAnySegment(seg.midpoint(), aNoded) {
				kept = append(kept, seg)
			}
		}
	case overlayDifference:
		for _, seg := range aNoded {
			if !onAnySegment(seg.midpoint(), bNoded) {
				kept = append(kept, seg)
			}
		}
	case overlaySymDifference:
		for _, seg := range aNoded {
			if !onAnySegment(seg.midpoint(), bNoded) {
				kept = append(kept, seg)
			}
		}
		for _, seg := range bNoded {
			if !onAnySegment(seg.midpoint(), aNoded) {
				kept = append(kept, seg)
			}
		}
	}
	return flatShapes{lines: mergeSegmentRuns(kept)}
}

// overlayLinesPolygons handles a line operand against a polygon operand.
func overlayLinesPolygons(a, b flatShapes, op overlayOp) flatShapes {
	lines, polys := a, b
	linesIsA := true
	if a.dim() == 2 {
		lines, polys = b, a
		linesIsA = false
	}
	polySegs := polygonSegments(polys.polys)
	noded := nodeSegmentsAgainst(lines.segments(), polySegs)

	var inside, outside []lineSegment
	for _, seg := range noded {
		if findPointSideOfPolygons(seg.midpoint(), polys.polys) == outsideLinearRing {
			outside = append(outside, seg)
		} else {
			inside = append(inside, seg)
		}
	}

	switch op {
	case overlayIntersection:
		clipped := mergeSegmentRuns(inside)
		var points []r2.Point
		for _, node := range discreteIntersectionNodes(noded, polySegs) {
			if !onAnyLine(node, clipped) {
				points = append(points, node)
			}
		}
		return flatShapes{points: dedupSortPoints(points), lines: clipped}
	case overlayUnion, overlaySymDifference:
		// The polygon interior absorbs the covered line parts.
		ret := polys
		ret.lines = append(ret.lines, mergeSegmentRuns(outside)...)
		return ret
	default: // overlayDifference
		if linesIsA {
			return flatShapes{lines: mergeSegmentRuns(outside)}
		}
		return polys
	}
}

func onAnyLine(pt r2.Point, lines [][]r2.Point) bool {
	for _, line := range lines {
		if onAnySegment(pt, appendSegments(nil, line)) {
			return true
		}
	}
	return false
}

func dedupSortPoints(pts []r2.Point) []r2.Point {
	if len(pts) == 0 {
		return nil
	}
	sort.Slice(pts, func(i, j int) bool { return pointLess(pts[i], pts[j]) })
	ret := pts[:1]
	for _, pt := range pts[1:] {
		if pt != ret[len(ret)-1] {
			ret = append(ret, pt)
		}
	}
	return ret
}

// shapesToGeometry assembles flattened shapes into a geometry. A single
// family collapses to its (multi-)shape; mixed families become a geometry
// collection; an empty result takes the shape of emptyDim.
func shapesToGeometry(s flatShapes, srid geopb.SRID, emptyDim int) (geo.Geometry, error) {
	var members []geom.T
	for _, pt := range s.points {
		members = append(members, geom.NewPointFlat(geom.XY, []float64{pt.X, pt.Y}))
	}
	for _, line := range s.lines {
		members = append(members,
			geom.NewLineStringFlat(geom.XY, flatCoordsFromPoints(line)))
	}
	for _, poly := range s.polys {
		polyT, err := polygonToGeomT(poly)
		if err != nil {
			return geo.Geometry{}, err
		}
		members = append(members, polyT)
	}

	var t geom.T
	switch {
	case len(members) == 0:
		switch emptyDim {
		case 0:
			t = geom.NewPointEmpty(geom.XY)
		case 1:
			t = geom.NewLineString(geom.XY)
		default:
			t = geom.NewPolygon(geom.XY)
		}
	case len(members) == 1:
		t = members[0]
	case s.dim() == 0 && len(s.lines) == 0 && len(s.polys) == 0:
		mp := geom.NewMultiPoint(geom.XY)
		for _, m := range members {
			if err := mp.Push(m.(*geom.Point)); err != nil {
				return geo.Geometry{}, err
			}
		}
		t = mp
	case len(s.points) == 0 && len(s.polys) == 0:
		ml := geom.NewMultiLineString(geom.XY)
		for _, m := range members {
			if err := ml.Push(m.(*geom.LineString)); err != nil {
				return geo.Geometry{}, err
			}
		}
		t = ml
	case len(s.points) == 0 && len(s.lines) == 0:
		mp := geom.NewMultiPolygon(geom.XY)
		for _, m := range members {
			if err := mp.Push(m.(*geom.Polygon)); err != nil {
				return geo.Geometry{}, err
			}
		}
		t = mp
	default:
		gc := geom.NewGeometryCollection()
		for _, m := range members {
			gc.MustPush(m)
		}
		t = gc
	}
	t = applySRID(t, srid)
	return geo.MakeGeometryFromGeomT(t)
}

func polygonToGeomT(poly flatPolygon) (*geom.Polygon, error) {
	ret := geom.NewPolygon(geom.XY)
	for _, ring := range poly.rings {
		if err := ret.Push(geom.NewLinearRingFlat(geom.XY, flatCoordsFromPoints(ring.pts))); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func flatCoordsFromPoints(pts []r2.Point) []float64 {
	ret := make([]float64, 0, len(pts)*2)
	for _, pt := range pts {
		ret = append(ret, pt.X, pt.Y)
	}
	return ret
}

func applySRID(t geom.T, srid geopb.SRID) geom.T {
	switch t := t.(type) {
	case *geom.Point:
		return t.SetSRID(int(srid))
	case *geom.LineString:
		return t.SetSRID(int(srid))
	case *geom.Polygon:
		return t.SetSRID(int(srid))
	case *geom.MultiPoint:
		return t.SetSRID(int(srid))
	case *geom.MultiLineString:
		return t.SetSRID(int(srid))
	case *geom.MultiPolygon:
		return t.SetSRID(int(srid))
	case *geom.GeometryCollection:
		return t.SetSRID(int(srid))
	}
	return t
}
