// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"math"

	"github.com/b4l/spatial/pkg/geo"
	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"
)

// Segmentize returns the geometry with every segment longer than
// segmentMaxLength split into the minimum number of equal-length pieces not
// exceeding that length. Points pass through unchanged.
func Segmentize(g geo.Geometry, segmentMaxLength float64) (geo.Geometry, error) {
	if math.IsNaN(segmentMaxLength) || math.IsInf(segmentMaxLength, 1) {
		return g, nil
	}
	t, err := g.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	switch t.(type) {
	case *geom.Point, *geom.MultiPoint:
		return g, nil
	}
	if segmentMaxLength <= 0 {
		return geo.Geometry{}, errors.Newf("maximum segment length must be positive")
	}
	segmentized, err := segmentizeGeomT(t, segmentMaxLength)
	if err != nil {
		return geo.Geometry{}, err
	}
	return geo.MakeGeometryFromGeomT(segmentized)
}

func segmentizeGeomT(t geom.T, maxLength float64) (geom.T, error) {
	srid := t.SRID()
	switch t := t.(type) {
	case *geom.Point, *geom.MultiPoint:
		return t, nil
	case *geom.LineString:
		return geom.NewLineStringFlat(
			geom.XY, segmentizePath(t.FlatCoords(), t.Stride(), maxLength),
		).SetSRID(srid), nil
	case *geom.Polygon:
		ret := geom.NewPolygon(geom.XY).SetSRID(srid)
		for i := 0; i < t.NumLinearRings(); i++ {
			ring := t.LinearRing(i)
			if err := ret.Push(geom.NewLinearRingFlat(
				geom.XY, segmentizePath(ring.FlatCoords(), ring.Stride(), maxLength),
			)); err != nil {
				return nil, err
			}
		}
		return ret, nil
	case *geom.MultiLineString:
		ret := geom.NewMultiLineString(geom.XY).SetSRID(srid)
		for i := 0; i < t.NumLineStrings(); i++ {
			sub, err := segmentizeGeomT(t.LineString(i), maxLength)
			if err != nil {
				return nil, err
			}
			if err := ret.Push(sub.(*geom.LineString)); err != nil {
				return nil, err
			}
		}
		return ret, nil
	case *geom.MultiPolygon:
		ret := geom.NewMultiPolygon(geom.XY).SetSRID(srid)
		for i := 0; i < t.NumPolygons(); i++ {
			sub, err := segmentizeGeomT(t.Polygon(i), maxLength)
			if err != nil {
				return nil, err
			}
			if err := ret.Push(sub.(*geom.Polygon)); err != nil {
				return nil, err
			}
		}
		return ret, nil
	case *geom.GeometryCollection:
		ret := geom.NewGeometryCollection().SetSRID(srid)
		for _, subG := range t.Geoms() {
			sub, err := segmentizeGeomT(subG, maxLength)
			if err != nil {
				return nil, err
			}
			if err := ret.Push(sub); err != nil {
				return nil, err
			}
		}
		return ret, nil
	default:
		return nil, errors.AssertionFailedf("unknown geometry type: %T", t)
	}
}

// segmentizePath inserts evenly spaced intermediate vertices into each
// segment of a coordinate path so that no piece exceeds maxLength. Extra
// ordinates beyond X and Y are dropped.
func segmentizePath(flat []float64, stride int, maxLength float64) []float64 {
	var ret []float64
	for i := 0; i+stride < len(flat); i += stride {
		ax, ay := flat[i], flat[i+1]
		bx, by := flat[i+stride], flat[i+stride+1]
		ret = append(ret, ax, ay)
		dist := math.Hypot(bx-ax, by-ay)
		pieces := int(math.Ceil(dist / maxLength))
		for k := 1; k < pieces; k++ {
			frac := float64(k) / float64(pieces)
			ret = append(ret, ax+(bx-ax)*frac, ay+(by-ay)*frac)
		}
	}
	if len(flat) >= stride {
		ret = append(ret, flat[len(flat)-stride], flat[len(flat)-stride+1])
	}
	return ret
}
