// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geo

import (
	"fmt"

	"github.com/b4l/spatial/pkg/geo/geopb"
	"github.com/golang/geo/r1"
	"github.com/twpayne/go-geom"
)

// CartesianBoundingBox is the cartesian BoundingBox representation,
// meant for use for GEOMETRY types.
type CartesianBoundingBox struct {
	geopb.BoundingBox
}

// NewCartesianBoundingBox returns a properly initialized empty bounding box
// for cartesian plane types.
func NewCartesianBoundingBox() *CartesianBoundingBox {
	return nil
}

// Repr is the string representation of the CartesianBoundingBox.
func (b *CartesianBoundingBox) Repr() string {
	return fmt.Sprintf("BOX(%g %g,%g %g)", b.LoX, b.LoY, b.HiX, b.HiY)
}

// AddPoint adds a point to the CartesianBoundingBox coordinates.
// Returns a copy of the CartesianBoundingBox.
func (b *CartesianBoundingBox) AddPoint(x, y float64) *CartesianBoundingBox {
	if b == nil {
		return &CartesianBoundingBox{
			BoundingBox: geopb.BoundingBox{
				LoX: x,
				HiX: x,
				LoY: y,
				HiY: y,
			},
		}
	}
	ret := &CartesianBoundingBox{BoundingBox: b.BoundingBox}
	ret.Update(x, y)
	return ret
}

// Combine combines two bounding boxes together.
// Returns a copy of the CartesianBoundingBox.
func (b *CartesianBoundingBox) Combine(o *CartesianBoundingBox) *CartesianBoundingBox {
	if o == nil {
		return b
	}
	return b.AddPoint(o.LoX, o.LoY).AddPoint(o.HiX, o.HiY)
}

// Compare returns the comparison between two bounding boxes.
// Compare lower dimensions before higher ones, i.e. X, then Y.
func (b *CartesianBoundingBox) Compare(o *CartesianBoundingBox) int {
	if b.LoX < o.LoX {
		return -1
	} else if b.LoX > o.LoX {
		return 1
	}
	if b.HiX < o.HiX {
		return -1
	} else if b.HiX > o.HiX {
		return 1
	}
	if b.LoY < o.LoY {
		return -1
	} else if b.LoY > o.LoY {
		return 1
	}
	if b.HiY < o.HiY {
		return -1
	} else if b.HiY > o.HiY {
		return 1
	}
	return 0
}

// Intersects returns whether the BoundingBoxes intersect. Empty bounding
// boxes never intersect.
func (b *CartesianBoundingBox) Intersects(o *CartesianBoundingBox) bool {
	if b == nil || o == nil {
		return false
	}
	xInterval := r1.Interval{Lo: b.LoX, Hi: b.HiX}
	yInterval := r1.Interval{Lo: b.LoY, Hi: b.HiY}
	return xInterval.Intersects(r1.Interval{Lo: o.LoX, Hi: o.HiX}) &&
		yInterval.Intersects(r1.Interval{Lo: o.LoY, Hi: o.HiY})
}

// Covers returns whether the BoundingBox covers the other bounding box.
func (b *CartesianBoundingBox) Covers(o *CartesianBoundingBox) bool {
	if b == nil || o == nil {
		return false
	}
	return b.LoX <= o.LoX && o.LoX <= b.HiX &&
		b.LoX <= o.HiX && o.HiX <= b.HiX &&
		b.LoY <= o.LoY && o.LoY <= b.HiY &&
		b.LoY <= o.HiY && o.HiY <= b.HiY
}

// ToGeomT converts a BoundingBox to a GeomT. A zero-area box collapses to a
// point or line.
func (b *CartesianBoundingBox) ToGeomT(srid geopb.SRID) geom.T {
	if b.LoX == b.HiX && b.LoY == b.HiY {
		return geom.NewPointFlat(geom.XY, []float64{b.LoX, b.LoY}).SetSRID(int(srid))
	}
	if b.LoX == b.HiX || b.LoY == b.HiY {
		return geom.NewLineStringFlat(geom.XY, []float64{b.LoX, b.LoY, b.HiX, b.HiY}).SetSRID(int(srid))
	}
	return geom.NewPolygonFlat(
		geom.XY,
		[]float64{
			b.LoX, b.LoY,
			b.HiX, b.LoY,
			b.HiX, b.HiY,
			b.LoX, b.HiY,
			b.LoX, b.LoY,
		},
		[]int{10},
	).SetSRID(int(srid))
}

// BoundingBoxFromGeomT returns a bounding box from a given geom.T.
// Returns nil if no bounding box was found.
func BoundingBoxFromGeomT(g geom.T) *CartesianBoundingBox {
	if g.Empty() {
		// Each component of a collection can be empty on its own.
		if gc, ok := g.(*geom.GeometryCollection); ok {
			var bbox *CartesianBoundingBox
			for _, subG := range gc.Geoms() {
				bbox = bbox.Combine(BoundingBoxFromGeomT(subG))
			}
			return bbox
		}
		return nil
	}
	var bbox *CartesianBoundingBox
	switch g := g.(type) {
	case *geom.GeometryCollection:
		for _, subG := range g.Geoms() {
			bbox = bbox.Combine(BoundingBoxFromGeomT(subG))
		}
	default:
		flatCoords := g.FlatCoords()
		for i := 0; i < len(flatCoords); i += g.Stride() {
			bbox = bbox.AddPoint(flatCoords[i], flatCoords[i+1])
		}
	}
	return bbox
}
