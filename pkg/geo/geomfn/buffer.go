// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"math"
	"strconv"
	"strings"

	"github.com/b4l/spatial/pkg/geo"
	"github.com/b4l/spatial/pkg/geo/geopb"
	"github.com/cockroachdb/errors"
	"github.com/golang/geo/r2"
)

// BufferParams controls the polygonal approximation of circular arcs in
// ST_Buffer results.
type BufferParams struct {
	// QuadrantSegments is the number of segments approximating a
	// quarter-circle arc.
	QuadrantSegments int
}

// DefaultQuadrantSegments is the arc approximation used when none is given.
const DefaultQuadrantSegments = 8

// MakeDefaultBufferParams returns the default buffer parameters.
func MakeDefaultBufferParams() BufferParams {
	return BufferParams{QuadrantSegments: DefaultQuadrantSegments}
}

// ParseBufferParams parses a PostGIS-style buffer parameter string of
// space-separated key=value pairs, e.g. "quad_segs=8". Only round end caps
// and joins are supported.
func ParseBufferParams(s string) (BufferParams, error) {
	p := MakeDefaultBufferParams()
	for _, field := range strings.Fields(s) {
		kv := strings.SplitN(field, "=", 2)
		if len(kv) != 2 {
			return BufferParams{}, errors.Newf("unknown buffer parameter: %s", field)
		}
		switch strings.ToLower(kv[0]) {
		case "quad_segs":
			quadSegs, err := strconv.Atoi(kv[1])
			if err != nil || quadSegs <= 0 {
				return BufferParams{}, errors.Newf(
					"invalid quad_segs value: %s", kv[1])
			}
			p.QuadrantSegments = quadSegs
		case "endcap", "join":
			if strings.ToLower(kv[1]) != "round" {
				return BufferParams{}, errors.Mark(
					errors.Newf("non-round buffer %s styles are unsupported", kv[0]),
					geo.ErrUnsupportedOperation,
				)
			}
		default:
			return BufferParams{}, errors.Newf("unknown buffer parameter: %s", kv[0])
		}
	}
	return p, nil
}

// Buffer returns the geometry covering all points within the given distance
// of g. Negative distances shrink polygons; a ring erased entirely yields an
// empty polygon. A zero distance returns the input unchanged.
func Buffer(g geo.Geometry, params BufferParams, distance float64) (geo.Geometry, error) {
	if g.ShapeType() == geopb.ShapeType_GeometryCollection {
		return geo.Geometry{}, geo.NewUnsupportedOperationError("ST_Buffer", g.ShapeType())
	}
	if distance == 0 {
		return g, nil
	}
	t, err := g.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	shapes, err := flattenGeomT(t)
	if err != nil {
		return geo.Geometry{}, err
	}
	if shapes.empty() {
		return shapesToGeometry(flatShapes{}, g.SRID(), 2)
	}

	if distance < 0 {
		if len(shapes.polys) == 0 {
			// Points and lines have no interior to shrink.
			return shapesToGeometry(flatShapes{}, g.SRID(), 2)
		}
		eroded := shapes.polys
		for _, poly := range shapes.polys {
			ringBufs := bufferRings(poly, -distance, params.QuadrantSegments)
			for _, buf := range ringBufs {
				res := overlayPolygons(eroded, []flatPolygon{buf}, overlayDifference)
				eroded = res.polys
			}
		}
		return shapesToGeometry(flatShapes{polys: eroded}, g.SRID(), 2)
	}

	var pieces []flatPolygon
	for _, pt := range shapes.points {
		pieces = append(pieces, discPolygon(pt, distance, params.QuadrantSegments))
	}
	for _, seg := range shapes.segments() {
		pieces = append(pieces, capsulePolygon(seg, distance, params.QuadrantSegments))
	}
	result := shapes.polys
	for _, piece := range pieces {
		res := overlayPolygons(result, []flatPolygon{piece}, overlayUnion)
		result = res.polys
	}
	return shapesToGeometry(flatShapes{polys: result}, g.SRID(), 2)
}

// bufferRings buffers each boundary ring of a polygon by the given radius.
func bufferRings(poly flatPolygon, radius float64, quadSegs int) []flatPolygon {
	var ret []flatPolygon
	for _, ring := range poly.rings {
		ringBuf := []flatPolygon(nil)
		for _, seg := range appendSegments(nil, ring.pts) {
			capsule := capsulePolygon(seg, radius, quadSegs)
			if ringBuf == nil {
				ringBuf = []flatPolygon{capsule}
				continue
			}
			res := overlayPolygons(ringBuf, []flatPolygon{capsule}, overlayUnion)
			ringBuf = res.polys
		}
		ret = append(ret, ringBuf...)
	}
	return ret
}

// circleOffsets samples the circle of the given radius with 4*quadSegs
// offsets in counter-clockwise order starting at angle zero. Every arc in a
// buffer draws from these canonical samples, so arcs of different pieces
// around a shared center trace identical vertices and the overlay sees their
// common chords as exactly shared edges. The unit samples are snapped so the
// axis-aligned ones are exact.
func circleOffsets(radius float64, quadSegs int) []r2.Point {
	n := 4 * quadSegs
	ret := make([]r2.Point, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		ret[i] = r2.Point{
			X: radius * snapUnit(math.Cos(theta)),
			Y: radius * snapUnit(math.Sin(theta)),
		}
	}
	return ret
}

// snapUnit rounds a unit circle ordinate, turning trig residue such as
// cos(π/2) = 6.1e-17 into an exact zero.
func snapUnit(v float64) float64 {
	return math.Round(v*1e12) / 1e12
}

// discPolygon approximates the disc of the given radius around a point
// with 4*quadSegs vertices, wound counter-clockwise.
func discPolygon(center r2.Point, radius float64, quadSegs int) flatPolygon {
	offsets := circleOffsets(radius, quadSegs)
	pts := make([]r2.Point, 0, len(offsets)+1)
	for _, offset := range offsets {
		pts = append(pts, center.Add(offset))
	}
	pts = append(pts, pts[0])
	return flatPolygon{rings: []flatRing{{pts: pts}}}
}

// capsulePolygon approximates the set of points within the radius of a
// segment as the convex hull of the sampled discs around its endpoints.
// Degenerate segments fall back to a disc.
func capsulePolygon(seg lineSegment, radius float64, quadSegs int) flatPolygon {
	if seg.a == seg.b {
		return discPolygon(seg.a, radius, quadSegs)
	}
	offsets := circleOffsets(radius, quadSegs)
	pts := make([]r2.Point, 0, 2*len(offsets))
	for _, offset := range offsets {
		pts = append(pts, seg.a.Add(offset), seg.b.Add(offset))
	}
	ring := convexHull(pts)
	ring = append(ring, ring[0])
	return flatPolygon{rings: []flatRing{{pts: ring}}}
}
