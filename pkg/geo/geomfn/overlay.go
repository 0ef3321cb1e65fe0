// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
)

// overlayOp selects the boolean set operation computed by the overlay.
type overlayOp int

const (
	overlayIntersection overlayOp = iota
	overlayUnion
	overlayDifference
	overlaySymDifference
)

// keep reports whether a region inside A iff inA and inside B iff inB
// belongs to the result of the operation.
func (op overlayOp) keep(inA, inB bool) bool {
	switch op {
	case overlayIntersection:
		return inA && inB
	case overlayUnion:
		return inA || inB
	case overlayDifference:
		return inA && !inB
	default:
		return inA != inB
	}
}

// overlayEdge is a directed boundary edge of the overlay result with the
// result interior on its left.
type overlayEdge struct {
	a, b r2.Point
}

// polygonOverlayResult holds the polygonal faces of an overlay along with
// lower-dimensional collapses: boundary stretches and isolated touch points
// that belong to the result point set but bound no result face. Collapses
// only arise for intersection.
type polygonOverlayResult struct {
	polys  []flatPolygon
	lines  [][]r2.Point
	points []r2.Point
}

// overlayPolygons computes the boolean overlay of two sets of polygons whose
// rings are normalized with the interior on the left of every directed
// segment. Inputs must have been validated for topology.
func overlayPolygons(aPolys, bPolys []flatPolygon, op overlayOp) polygonOverlayResult {
	aSegs := polygonSegments(aPolys)
	bSegs := polygonSegments(bPolys)

	aNoded := nodeSegmentsAgainst(aSegs, bSegs)
	bNoded := nodeSegmentsAgainst(bSegs, aSegs)

	var edges []overlayEdge
	var collapses []lineSegment

	for _, seg := range aNoded {
		leftB, rightB, shared := sidesAgainst(seg, bNoded, bPolys)
		keepLeft := op.keep(true, leftB)
		keepRight := op.keep(false, rightB)
		switch {
		case keepLeft && !keepRight:
			edges = append(edges, overlayEdge{a: seg.a, b: seg.b})
		case keepRight && !keepLeft:
			edges = append(edges, overlayEdge{a: seg.b, b: seg.a})
		case !keepLeft && !keepRight && shared && op == overlayIntersection:
			// Shared boundary with no result face on either side collapses
			// to a line in the intersection.
			collapses = append(collapses, seg)
		}
	}
	for _, seg := range bNoded {
		if on, _ := segmentOnAny(seg, aNoded); on {
			// Shared edges were already handled from A's side.
			continue
		}
		leftA, rightA, _ := sidesAgainst(seg, aNoded, aPolys)
		keepLeft := op.keep(leftA, true)
		keepRight := op.keep(rightA, false)
		switch {
		case keepLeft && !keepRight:
			edges = append(edges, overlayEdge{a: seg.a, b: seg.b})
		case keepRight && !keepLeft:
			edges = append(edges, overlayEdge{a: seg.b, b: seg.a})
		}
	}

	res := polygonOverlayResult{polys: stitchFaces(edges)}
	if op != overlayIntersection {
		return res
	}
	res.lines = mergeSegmentRuns(filterCollapses(collapses, res.polys))
	res.points = intersectionTouchPoints(aNoded, bNoded, res)
	return res
}

// sidesAgainst classifies the two sides of a directed edge of one operand
// against the other operand's polygons. For an edge lying on the other
// boundary the sides are read off the matching edge's direction; otherwise
// both sides share the midpoint's classification.
func sidesAgainst(
	seg lineSegment, otherSegs []lineSegment, otherPolys []flatPolygon,
) (left, right, shared bool) {
	if on, sameDir := segmentOnAny(seg, otherSegs); on {
		// Interior of the other operand lies on the left of its own
		// directed edges.
		return sameDir, !sameDir, true
	}
	inside := findPointSideOfPolygons(seg.midpoint(), otherPolys) == insideLinearRing
	return inside, inside, false
}

// segmentOnAny reports whether seg lies along one of the given segments,
// which after noding holds exactly when a single segment contains both of
// its endpoints. Testing the endpoints rather than the midpoint keeps the
// check exact when the vertices match to the last bit but their computed
// midpoint drifts off the shared line.
func segmentOnAny(seg lineSegment, others []lineSegment) (on, sameDir bool) {
	for _, other := range others {
		if other.contains(seg.a) && other.contains(seg.b) {
			return true, seg.b.Sub(seg.a).Dot(other.b.Sub(other.a)) > 0
		}
	}
	return false, false
}

func polygonSegments(polys []flatPolygon) []lineSegment {
	var ret []lineSegment
	for _, poly := range polys {
		for _, ring := range poly.rings {
			ret = appendSegments(ret, ring.pts)
		}
	}
	return ret
}

// stitchFaces links directed edges into rings and groups the rings into
// polygons. At every node the traversal leaves along the first edge
// clockwise from the reversed arrival direction, which walks each face with
// its interior on the left.
func stitchFaces(edges []overlayEdge) []flatPolygon {
	outgoing := make(map[r2.Point][]int, len(edges))
	for i, e := range edges {
		outgoing[e.a] = append(outgoing[e.a], i)
	}
	used := make([]bool, len(edges))

	var shells []flatRing
	var holes []flatRing
	for start := range edges {
		if used[start] {
			continue
		}
		ring := traceRing(edges, outgoing, used, start)
		if len(ring) < 4 {
			continue
		}
		if ringSignedArea(ring) > 0 {
			shells = append(shells, flatRing{pts: ring})
		} else {
			holes = append(holes, flatRing{pts: ring})
		}
	}
	return assignHolesToShells(shells, holes)
}

func traceRing(
	edges []overlayEdge, outgoing map[r2.Point][]int, used []bool, start int,
) []r2.Point {
	ring := []r2.Point{edges[start].a}
	cur := start
	for {
		used[cur] = true
		ring = append(ring, edges[cur].b)
		if edges[cur].b == edges[start].a {
			return ring
		}
		next := -1
		arrival := edges[cur].b.Sub(edges[cur].a)
		bestTurn := math.Inf(1)
		for _, cand := range outgoing[edges[cur].b] {
			if used[cand] {
				continue
			}
			turn := clockwiseTurn(arrival, edges[cand].b.Sub(edges[cand].a))
			if turn < bestTurn {
				bestTurn = turn
				next = cand
			}
		}
		if next == -1 {
			// Dead end; the edge set did not close. Drop the partial ring.
			return nil
		}
		cur = next
	}
}

// clockwiseTurn measures how far the outgoing direction lies clockwise from
// the direction opposite the arrival, in (0, 2π]. Smaller values are
// sharper left turns relative to the walk.
func clockwiseTurn(arrival, outgoing r2.Point) float64 {
	back := math.Atan2(-arrival.Y, -arrival.X)
	out := math.Atan2(outgoing.Y, outgoing.X)
	turn := back - out
	for turn <= 0 {
		turn += 2 * math.Pi
	}
	for turn > 2*math.Pi {
		turn -= 2 * math.Pi
	}
	return turn
}

// assignHolesToShells nests each hole ring inside the smallest shell that
// contains its representative point.
func assignHolesToShells(shells, holes []flatRing) []flatPolygon {
	polys := make([]flatPolygon, len(shells))
	areas := make([]float64, len(shells))
	for i, shell := range shells {
		polys[i].rings = []flatRing{shell}
		areas[i] = ringSignedArea(shell.pts)
	}
	for _, hole := range holes {
		reversed := append([]r2.Point(nil), hole.pts...)
		reversePoints(reversed)
		rep, ok := polygonRepresentativePoint(flatPolygon{
			rings: []flatRing{{pts: reversed}},
		})
		if !ok {
			continue
		}
		best := -1
		for i, shell := range shells {
			if findPointSideOfLinearRing(rep, shell.pts) != insideLinearRing {
				continue
			}
			if best == -1 || areas[i] < areas[best] {
				best = i
			}
		}
		if best >= 0 {
			polys[best].rings = append(polys[best].rings, hole)
		}
	}
	sort.Slice(polys, func(i, j int) bool {
		return pointLess(polys[i].rings[0].pts[0], polys[j].rings[0].pts[0])
	})
	return polys
}

// filterCollapses drops collapse segments covered by a result face boundary
// or interior.
func filterCollapses(collapses []lineSegment, polys []flatPolygon) []lineSegment {
	if len(polys) == 0 {
		return collapses
	}
	var ret []lineSegment
	for _, seg := range collapses {
		if findPointSideOfPolygons(seg.midpoint(), polys) == outsideLinearRing {
			ret = append(ret, seg)
		}
	}
	return ret
}

// mergeSegmentRuns chains segments sharing endpoints into line strings.
func mergeSegmentRuns(segs []lineSegment) [][]r2.Point {
	if len(segs) == 0 {
		return nil
	}
	used := make([]bool, len(segs))
	var ret [][]r2.Point
	for i := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		line := []r2.Point{segs[i].a, segs[i].b}
		for extended := true; extended; {
			extended = false
			for j := range segs {
				if used[j] {
					continue
				}
				switch line[len(line)-1] {
				case segs[j].a:
					line = append(line, segs[j].b)
				case segs[j].b:
					line = append(line, segs[j].a)
				default:
					switch line[0] {
					case segs[j].a:
						line = append([]r2.Point{segs[j].b}, line...)
					case segs[j].b:
						line = append([]r2.Point{segs[j].a}, line...)
					default:
						continue
					}
				}
				used[j] = true
				extended = true
			}
		}
		ret = append(ret, line)
	}
	return ret
}

// intersectionTouchPoints finds isolated points where the two boundaries
// meet outside every result face and collapse line.
func intersectionTouchPoints(
	aSegs, bSegs []lineSegment, res polygonOverlayResult,
) []r2.Point {
	var ret []r2.Point
	for _, node := range discreteIntersectionNodes(aSegs, bSegs) {
		if len(res.polys) > 0 &&
			findPointSideOfPolygons(node, res.polys) != outsideLinearRing {
			continue
		}
		covered := false
		for _, line := range res.lines {
			if onAnySegment(node, appendSegments(nil, line)) {
				covered = true
				break
			}
		}
		if !covered {
			ret = append(ret, node)
		}
	}
	return dedupSortPoints(ret)
}
