// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"github.com/b4l/spatial/pkg/geo"
	"github.com/b4l/spatial/pkg/geo/geopb"
	"github.com/cockroachdb/errors"
	"github.com/golang/geo/r2"
)

// imLocation indexes the interior/boundary/exterior rows and columns of a
// DE-9IM matrix.
type imLocation int

const (
	locInterior imLocation = 0
	locBoundary imLocation = 1
	locExterior imLocation = 2
)

// de9im is a DE-9IM matrix. Each cell holds the dimension (-1 for empty,
// else 0, 1 or 2) of the intersection of the corresponding point sets of the
// two geometries; rows are geometry A, columns geometry B.
type de9im [9]int

func newDE9IM() de9im {
	m := de9im{}
	for i := range m {
		m[i] = -1
	}
	// The exteriors of two bounded geometries always share the unbounded
	// plane.
	m.upgrade(locExterior, locExterior, 2)
	return m
}

// upgrade raises a cell to at least dim.
func (m *de9im) upgrade(row, col imLocation, dim int) {
	idx := 3*int(row) + int(col)
	if dim > m[idx] {
		m[idx] = dim
	}
}

func (m de9im) cell(row, col imLocation) int {
	return m[3*int(row)+int(col)]
}

// transpose mirrors the matrix, swapping the roles of A and B.
func (m de9im) transpose() de9im {
	var ret de9im
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			ret[3*row+col] = m[3*col+row]
		}
	}
	return ret
}

func (m de9im) String() string {
	var ret [9]byte
	for i, v := range m {
		switch v {
		case -1:
			ret[i] = 'F'
		default:
			ret[i] = byte('0' + v)
		}
	}
	return string(ret[:])
}

// Relate returns the DE-9IM relation between A and B.
func Relate(a geo.Geometry, b geo.Geometry) (string, error) {
	if _, err := resolveSRIDs(a, b); err != nil {
		return "", err
	}
	m, err := relate(a, b)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

// RelatePattern returns whether the DE-9IM relation between A and B matches
// the given pattern.
func RelatePattern(a geo.Geometry, b geo.Geometry, pattern string) (bool, error) {
	relation, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return MatchesDE9IM(relation, pattern)
}

// MatchesDE9IM checks whether a DE9IM relation matches the given pattern.
// Assumes the relation has been computed, and such has no 'T' and '*'
// characters.
func MatchesDE9IM(relation string, pattern string) (bool, error) {
	if len(relation) != 9 {
		return false, errors.Newf("relation %q should be of length 9", relation)
	}
	if len(pattern) != 9 {
		return false, errors.Newf("pattern %q should be of length 9", pattern)
	}
	for i := 0; i < len(pattern); i++ {
		matches, err := relationByteMatchesPatternByte(relation[i], pattern[i])
		if err != nil {
			return false, err
		}
		if !matches {
			return false, nil
		}
	}
	return true, nil
}

// relationByteMatchesPatternByte matches a single byte of a DE9IM relation
// against a single byte of a DE9IM pattern.
func relationByteMatchesPatternByte(r byte, p byte) (bool, error) {
	switch p {
	case '*':
		return true, nil
	case 't', 'T':
		return r >= '0' && r <= '2', nil
	case 'f', 'F':
		return r == 'F' || r == 'f', nil
	case '0', '1', '2':
		return r == p, nil
	default:
		return false, errors.Newf("unrecognized pattern character: %s", string(p))
	}
}

// relate computes the DE-9IM matrix of two geometries. Geometry collections
// are not supported.
func relate(a geo.Geometry, b geo.Geometry) (de9im, error) {
	if a.ShapeType() == geopb.ShapeType_GeometryCollection ||
		b.ShapeType() == geopb.ShapeType_GeometryCollection {
		return de9im{}, geo.NewUnsupportedOperationError(
			"Relate", geopb.ShapeType_GeometryCollection,
		)
	}
	aGeomT, err := a.AsGeomT()
	if err != nil {
		return de9im{}, err
	}
	bGeomT, err := b.AsGeomT()
	if err != nil {
		return de9im{}, err
	}
	aShapes, err := flattenGeomT(aGeomT)
	if err != nil {
		return de9im{}, err
	}
	bShapes, err := flattenGeomT(bGeomT)
	if err != nil {
		return de9im{}, err
	}
	return relateShapes(aShapes, bShapes), nil
}

// relateShapes computes the DE-9IM matrix of two flattened, single-family
// shape sets.
func relateShapes(a, b flatShapes) de9im {
	m := newDE9IM()
	if a.empty() || b.empty() {
		if !a.empty() {
			m.upgrade(locInterior, locExterior, a.dim())
			m.upgrade(locBoundary, locExterior, boundaryDim(a))
		}
		if !b.empty() {
			m.upgrade(locExterior, locInterior, b.dim())
			m.upgrade(locExterior, locBoundary, boundaryDim(b))
		}
		return m
	}
	switch {
	case a.dim() == 0 && b.dim() == 0:
		relatePointsPoints(&m, a, b)
	case a.dim() == 0 && b.dim() == 1:
		relatePointsLines(&m, a, b)
	case a.dim() == 1 && b.dim() == 0:
		t := newDE9IM()
		relatePointsLines(&t, b, a)
		m = t.transpose()
	case a.dim() == 0 && b.dim() == 2:
		relatePointsPolygons(&m, a, b)
	case a.dim() == 2 && b.dim() == 0:
		t := newDE9IM()
		relatePointsPolygons(&t, b, a)
		m = t.transpose()
	case a.dim() == 1 && b.dim() == 1:
		relateLinesLines(&m, a, b)
	case a.dim() == 1 && b.dim() == 2:
		relateLinesPolygons(&m, a, b)
	case a.dim() == 2 && b.dim() == 1:
		t := newDE9IM()
		relateLinesPolygons(&t, b, a)
		m = t.transpose()
	default:
		relatePolygonsPolygons(&m, a, b)
	}
	return m
}

// boundaryDim returns the dimension of the combinatorial boundary of the
// shapes: 1 for polygons, 0 for lines with mod-2 endpoints, -1 otherwise.
func boundaryDim(s flatShapes) int {
	switch s.dim() {
	case 2:
		return 1
	case 1:
		if len(lineBoundaryNodes(s.lines)) > 0 {
			return 0
		}
	}
	return -1
}

// lineBoundaryNodes returns the endpoints appearing an odd number of times
// across the line set (the mod-2 boundary rule).
func lineBoundaryNodes(lines [][]r2.Point) map[r2.Point]bool {
	counts := make(map[r2.Point]int)
	for _, line := range lines {
		counts[line[0]]++
		counts[line[len(line)-1]]++
	}
	ret := make(map[r2.Point]bool)
	for p, c := range counts {
		if c%2 == 1 {
			ret[p] = true
		}
	}
	return ret
}

// locateOnLines classifies a point against line work: boundary if it is a
// mod-2 endpoint, interior if it lies on any segment, exterior otherwise.
func locateOnLines(p r2.Point, segs []lineSegment, boundary map[r2.Point]bool) imLocation {
	if boundary[p] {
		return locBoundary
	}
	for _, s := range segs {
		if s.contains(p) {
			return locInterior
		}
	}
	return locExterior
}

func onAnySegment(p r2.Point, segs []lineSegment) bool {
	for _, s := range segs {
		if s.contains(p) {
			return true
		}
	}
	return false
}

func relatePointsPoints(m *de9im, a, b flatShapes) {
	bSet := make(map[r2.Point]bool, len(b.points))
	for _, p := range b.points {
		bSet[p] = true
	}
	aSet := make(map[r2.Point]bool, len(a.points))
	for _, p := range a.points {
		aSet[p] = true
		if bSet[p] {
			m.upgrade(locInterior, locInterior, 0)
		} else {
			m.upgrade(locInterior, locExterior, 0)
		}
	}
	for _, p := range b.points {
		if !aSet[p] {
			m.upgrade(locExterior, locInterior, 0)
		}
	}
}

func relatePointsLines(m *de9im, a, b flatShapes) {
	bSegs := b.segments()
	bBoundary := lineBoundaryNodes(b.lines)
	covered := make(map[r2.Point]bool)
	for _, p := range a.points {
		loc := locateOnLines(p, bSegs, bBoundary)
		m.upgrade(locInterior, loc, 0)
		covered[p] = true
	}
	// A finite point set never covers a 1-dimensional interior.
	m.upgrade(locExterior, locInterior, 1)
	for p := range bBoundary {
		if !covered[p] {
			m.upgrade(locExterior, locBoundary, 0)
		}
	}
}

func relatePointsPolygons(m *de9im, a, b flatShapes) {
	for _, p := range a.points {
		switch findPointSideOfPolygons(p, b.polys) {
		case insideLinearRing:
			m.upgrade(locInterior, locInterior, 0)
		case onLinearRing:
			m.upgrade(locInterior, locBoundary, 0)
		case outsideLinearRing:
			m.upgrade(locInterior, locExterior, 0)
		}
	}
	// Finite point sets never cover a polygon's interior or boundary.
	m.upgrade(locExterior, locInterior, 2)
	m.upgrade(locExterior, locBoundary, 1)
}

// discreteIntersectionNodes collects the isolated intersection points of two
// segment sets, including the endpoints of collinear overlaps.
func discreteIntersectionNodes(aSegs, bSegs []lineSegment) []r2.Point {
	var ret []r2.Point
	for _, s := range aSegs {
		for _, o := range bSegs {
			switch res := intersectSegments(s, o); res.kind {
			case segmentIntersectionPoint:
				ret = append(ret, res.pt)
			case segmentIntersectionOverlap:
				ret = append(ret, res.lo, res.hi)
			}
		}
	}
	return ret
}

func relateLinesLines(m *de9im, a, b flatShapes) {
	aSegs, bSegs := a.segments(), b.segments()
	aBoundary := lineBoundaryNodes(a.lines)
	bBoundary := lineBoundaryNodes(b.lines)

	// 1-dimensional parts, via midpoints of subsegments noded at every
	// intersection.
	for _, sub := range nodeSegmentsAgainst(aSegs, bSegs) {
		if onAnySegment(sub.midpoint(), bSegs) {
			m.upgrade(locInterior, locInterior, 1)
		} else {
			m.upgrade(locInterior, locExterior, 1)
		}
	}
	for _, sub := range nodeSegmentsAgainst(bSegs, aSegs) {
		if !onAnySegment(sub.midpoint(), aSegs) {
			m.upgrade(locExterior, locInterior, 1)
		}
	}

	// 0-dimensional parts: isolated intersection points.
	for _, p := range discreteIntersectionNodes(aSegs, bSegs) {
		rowA, colB := locInterior, locInterior
		if aBoundary[p] {
			rowA = locBoundary
		}
		if bBoundary[p] {
			colB = locBoundary
		}
		m.upgrade(rowA, colB, 0)
	}

	// Boundary points against the other line work.
	for p := range aBoundary {
		m.upgrade(locBoundary, locateOnLines(p, bSegs, bBoundary), 0)
	}
	for p := range bBoundary {
		m.upgrade(locateOnLines(p, aSegs, aBoundary), locBoundary, 0)
	}
}

func relateLinesPolygons(m *de9im, a, b flatShapes) {
	aSegs := a.segments()
	bRingSegs := b.segments()
	aBoundary := lineBoundaryNodes(a.lines)

	for _, sub := range nodeSegmentsAgainst(aSegs, bRingSegs) {
		switch findPointSideOfPolygons(sub.midpoint(), b.polys) {
		case insideLinearRing:
			m.upgrade(locInterior, locInterior, 1)
		case onLinearRing:
			// The subsegment runs along a ring; both were noded at every
			// crossing, so a midpoint on the boundary means collinear
			// overlap.
			m.upgrade(locInterior, locBoundary, 1)
		case outsideLinearRing:
			m.upgrade(locInterior, locExterior, 1)
		}
	}

	// Isolated touches of the line interior with the polygon boundary.
	for _, p := range discreteIntersectionNodes(aSegs, bRingSegs) {
		rowA := locInterior
		if aBoundary[p] {
			rowA = locBoundary
		}
		m.upgrade(rowA, locBoundary, 0)
	}

	for p := range aBoundary {
		switch findPointSideOfPolygons(p, b.polys) {
		case insideLinearRing:
			m.upgrade(locBoundary, locInterior, 0)
		case onLinearRing:
			m.upgrade(locBoundary, locBoundary, 0)
		case outsideLinearRing:
			m.upgrade(locBoundary, locExterior, 0)
		}
	}

	// A line never covers a polygon's interior.
	m.upgrade(locExterior, locInterior, 2)

	// The polygon boundary not covered by the line work.
	for _, sub := range nodeSegmentsAgainst(bRingSegs, aSegs) {
		if !onAnySegment(sub.midpoint(), aSegs) {
			m.upgrade(locExterior, locBoundary, 1)
		}
	}
}

func relatePolygonsPolygons(m *de9im, a, b flatShapes) {
	aRingSegs := a.segments()
	bRingSegs := b.segments()

	for _, sub := range nodeSegmentsAgainst(aRingSegs, bRingSegs) {
		switch findPointSideOfPolygons(sub.midpoint(), b.polys) {
		case insideLinearRing:
			m.upgrade(locBoundary, locInterior, 1)
		case onLinearRing:
			m.upgrade(locBoundary, locBoundary, 1)
		case outsideLinearRing:
			m.upgrade(locBoundary, locExterior, 1)
		}
	}
	for _, sub := range nodeSegmentsAgainst(bRingSegs, aRingSegs) {
		switch findPointSideOfPolygons(sub.midpoint(), a.polys) {
		case insideLinearRing:
			m.upgrade(locInterior, locBoundary, 1)
		case onLinearRing:
			m.upgrade(locBoundary, locBoundary, 1)
		case outsideLinearRing:
			m.upgrade(locExterior, locBoundary, 1)
		}
	}

	// Isolated boundary touches.
	for range discreteIntersectionNodes(aRingSegs, bRingSegs) {
		m.upgrade(locBoundary, locBoundary, 0)
		break
	}

	// A boundary piece strictly inside the other polygon pins the interiors
	// together; so does a strictly interior representative point when the
	// boundaries merely touch.
	interiorsMeet := m.cell(locBoundary, locInterior) == 1 || m.cell(locInterior, locBoundary) == 1
	if !interiorsMeet {
		interiorsMeet = anyRepresentativeInside(a.polys, b.polys) ||
			anyRepresentativeInside(b.polys, a.polys)
	}
	if interiorsMeet {
		m.upgrade(locInterior, locInterior, 2)
	}

	// A's interior escapes B if part of A's boundary is strictly outside B,
	// or B's boundary passes through A's interior (one side of it is B's
	// exterior), or some component of A sits entirely outside B.
	if m.cell(locBoundary, locExterior) == 1 ||
		m.cell(locInterior, locBoundary) == 1 ||
		anyRepresentativeOutside(a.polys, b.polys) {
		m.upgrade(locInterior, locExterior, 2)
	}
	if m.cell(locExterior, locBoundary) == 1 ||
		m.cell(locBoundary, locInterior) == 1 ||
		anyRepresentativeOutside(b.polys, a.polys) {
		m.upgrade(locExterior, locInterior, 2)
	}
}

func anyRepresentativeInside(of []flatPolygon, in []flatPolygon) bool {
	for _, poly := range of {
		if rep, ok := polygonRepresentativePoint(poly); ok {
			if findPointSideOfPolygons(rep, in) == insideLinearRing {
				return true
			}
		}
	}
	return false
}

func anyRepresentativeOutside(of []flatPolygon, in []flatPolygon) bool {
	for _, poly := range of {
		if rep, ok := polygonRepresentativePoint(poly); ok {
			if findPointSideOfPolygons(rep, in) == outsideLinearRing {
				return true
			}
		}
	}
	return false
}
