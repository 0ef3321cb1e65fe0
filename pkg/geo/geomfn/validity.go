// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"github.com/b4l/spatial/pkg/geo"
)

// validatePolygonTopology checks that the flattened polygons have simple,
// non-crossing rings, the precondition for overlay operations. Adjacent
// segments of a ring share an endpoint; any other segment contact makes the
// ring non-simple. Rings of the same polygon may touch at isolated points
// but must not cross or overlap.
func validatePolygonTopology(polys []flatPolygon) error {
	for _, poly := range polys {
		for ringIdx, ring := range poly.rings {
			if err := validateRingSimple(ring); err != nil {
				return err
			}
			for _, other := range poly.rings[ringIdx+1:] {
				if err := validateRingPairContact(ring, other); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func validateRingSimple(ring flatRing) error {
	segs := appendSegments(nil, ring.pts)
	for i := range segs {
		for j := i + 1; j < len(segs); j++ {
			res := intersectSegments(segs[i], segs[j])
			switch res.kind {
			case segmentIntersectionNone:
			case segmentIntersectionOverlap:
				return geo.NewTopologyError(
					"ring has overlapping segments", res.lo.X, res.lo.Y)
			case segmentIntersectionPoint:
				adjacent := j == i+1 || (i == 0 && j == len(segs)-1)
				if adjacent && (res.pt == segs[i].a || res.pt == segs[i].b) {
					continue
				}
				return geo.NewTopologyError(
					"ring self-intersects", res.pt.X, res.pt.Y)
			}
		}
	}
	return nil
}

// validateRingPairContact allows two rings of the same polygon to touch at
// isolated vertices but not to cross or share a segment.
func validateRingPairContact(a, b flatRing) error {
	aSegs := appendSegments(nil, a.pts)
	bSegs := appendSegments(nil, b.pts)
	for _, aSeg := range aSegs {
		for _, bSeg := range bSegs {
			res := intersectSegments(aSeg, bSeg)
			switch res.kind {
			case segmentIntersectionNone:
			case segmentIntersectionOverlap:
				return geo.NewTopologyError(
					"rings share a segment", res.lo.X, res.lo.Y)
			case segmentIntersectionPoint:
				// A vertex of one ring resting on the other ring is a
				// touch; only interior-interior contact is a crossing.
				if res.pt == aSeg.a || res.pt == aSeg.b ||
					res.pt == bSeg.a || res.pt == bSeg.b {
					continue
				}
				return geo.NewTopologyError(
					"rings cross", res.pt.X, res.pt.Y)
			}
		}
	}
	return nil
}
