// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"fmt"
	"strings"

	"github.com/b4l/spatial/pkg/geo"
	"github.com/b4l/spatial/pkg/geo/geopb"
	"github.com/golang/geo/r2"
	geom "github.com/twpayne/go-geom"
)

// Node returns the fully noded set of line strings of the input: every
// crossing or touch between segments becomes a vertex shared by the output
// lines, and lines are split there. Input vertices are preserved.
func Node(g geo.Geometry) (geo.Geometry, error) {
	if g.ShapeType() != geopb.ShapeType_LineString &&
		g.ShapeType() != geopb.ShapeType_MultiLineString {
		return geo.Geometry{}, geo.NewUnsupportedOperationError("ST_Node", g.ShapeType())
	}
	if g.Empty() {
		return geo.MakeGeometryFromGeomT(
			geom.NewGeometryCollection().SetSRID(int(g.SRID())))
	}
	t, err := g.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	shapes, err := flattenGeomT(t)
	if err != nil {
		return geo.Geometry{}, err
	}

	nodes := intersectionNodes(shapes.lines)
	seen := make(map[string]bool)
	ml := geom.NewMultiLineString(geom.XY).SetSRID(int(g.SRID()))
	for _, line := range shapes.lines {
		for _, piece := range splitLineAtNodes(line, nodes) {
			key := pieceKey(piece)
			if seen[key] {
				continue
			}
			seen[key] = true
			if err := ml.Push(geom.NewLineStringFlat(geom.XY, flatCoordsFromPoints(piece))); err != nil {
				return geo.Geometry{}, err
			}
		}
	}
	return geo.MakeGeometryFromGeomT(ml)
}

// intersectionNodes finds every point where two segments of the lines meet,
// other than the shared vertex of consecutive segments of one line.
func intersectionNodes(lines [][]r2.Point) map[r2.Point]bool {
	type originSeg struct {
		seg       lineSegment
		line, idx int
	}
	var segs []originSeg
	for lineIdx, line := range lines {
		for i := 1; i < len(line); i++ {
			segs = append(segs, originSeg{
				seg:  lineSegment{a: line[i-1], b: line[i]},
				line: lineIdx,
				idx:  i - 1,
			})
		}
	}
	nodes := make(map[r2.Point]bool)
	for i := range segs {
		for j := i + 1; j < len(segs); j++ {
			adjacent := segs[i].line == segs[j].line &&
				(segs[j].idx == segs[i].idx+1 || segs[i].idx == segs[j].idx+1)
			res := intersectSegments(segs[i].seg, segs[j].seg)
			switch res.kind {
			case segmentIntersectionPoint:
				if adjacent && (res.pt == segs[i].seg.a || res.pt == segs[i].seg.b) {
					continue
				}
				nodes[res.pt] = true
			case segmentIntersectionOverlap:
				nodes[res.lo] = true
				nodes[res.hi] = true
			}
		}
	}
	return nodes
}

// splitLineAtNodes cuts a line at every node lying on it, keeping original
// vertices that are not nodes inside the pieces.
func splitLineAtNodes(line []r2.Point, nodes map[r2.Point]bool) [][]r2.Point {
	var pieces [][]r2.Point
	piece := []r2.Point{line[0]}
	for i := 1; i < len(line); i++ {
		seg := lineSegment{a: line[i-1], b: line[i]}
		var cuts []r2.Point
		for node := range nodes {
			if node != seg.a && node != seg.b && seg.contains(node) {
				cuts = append(cuts, node)
			}
		}
		for _, sub := range splitSegmentAt(seg, cuts) {
			piece = append(piece, sub.b)
			last := i == len(line)-1 && sub.b == seg.b
			if nodes[sub.b] && !last {
				pieces = append(pieces, piece)
				piece = []r2.Point{sub.b}
			}
		}
	}
	if len(piece) >= 2 {
		pieces = append(pieces, piece)
	}
	return pieces
}

// pieceKey is a direction-insensitive identity for a piece, used to drop
// duplicates arising from collinear overlaps between input lines.
func pieceKey(piece []r2.Point) string {
	pts := piece
	if pointLess(piece[len(piece)-1], piece[0]) {
		pts = append([]r2.Point(nil), piece...)
		reversePoints(pts)
	}
	var key strings.Builder
	for _, pt := range pts {
		fmt.Fprintf(&key, "%v %v;", pt.X, pt.Y)
	}
	return key.String()
}
