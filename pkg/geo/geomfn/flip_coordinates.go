// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"github.com/b4l/spatial/pkg/geo"
	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"
)

// FlipCoordinates swaps the X and Y ordinates of every vertex, preserving
// the geometry structure and SRID.
func FlipCoordinates(g geo.Geometry) (geo.Geometry, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	flipped, err := transformCoordinates(t, func(x, y float64) (float64, float64) {
		return y, x
	})
	if err != nil {
		return geo.Geometry{}, err
	}
	return geo.MakeGeometryFromGeomT(flipped)
}

// transformCoordinates rebuilds a geometry applying fn to every (x, y) pair.
func transformCoordinates(t geom.T, fn func(x, y float64) (float64, float64)) (geom.T, error) {
	if gc, ok := t.(*geom.GeometryCollection); ok {
		ret := geom.NewGeometryCollection().SetSRID(gc.SRID())
		for _, subG := range gc.Geoms() {
			sub, err := transformCoordinates(subG, fn)
			if err != nil {
				return nil, err
			}
			if err := ret.Push(sub); err != nil {
				return nil, err
			}
		}
		return ret, nil
	}

	flat := append([]float64(nil), t.FlatCoords()...)
	stride := t.Stride()
	for i := 0; i+1 < len(flat); i += stride {
		flat[i], flat[i+1] = fn(flat[i], flat[i+1])
	}

	layout := t.Layout()
	srid := t.SRID()
	switch t := t.(type) {
	case *geom.Point:
		if t.Empty() {
			return geom.NewPointEmpty(layout).SetSRID(srid), nil
		}
		return geom.NewPointFlat(layout, flat).SetSRID(srid), nil
	case *geom.LineString:
		return geom.NewLineStringFlat(layout, flat).SetSRID(srid), nil
	case *geom.Polygon:
		return geom.NewPolygonFlat(layout, flat, t.Ends()).SetSRID(srid), nil
	case *geom.MultiPoint:
		return geom.NewMultiPointFlat(
			layout, flat, geom.NewMultiPointFlatOptionWithEnds(t.Ends()),
		).SetSRID(srid), nil
	case *geom.MultiLineString:
		return geom.NewMultiLineStringFlat(layout, flat, t.Ends()).SetSRID(srid), nil
	case *geom.MultiPolygon:
		return geom.NewMultiPolygonFlat(layout, flat, t.Endss()).SetSRID(srid), nil
	default:
		return nil, errors.AssertionFailedf("unknown geometry type: %T", t)
	}
}
