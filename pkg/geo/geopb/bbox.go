// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geopb

import "math"

// BoundingBox is the axis-aligned minimum bounding rectangle of a shape,
// expressed in the shape's own coordinate system.
type BoundingBox struct {
	LoX float64
	HiX float64
	LoY float64
	HiY float64
}

// NewBoundingBox returns a bounding box primed for Update calls: any real
// coordinate will replace the initial sentinel bounds.
func NewBoundingBox() *BoundingBox {
	return &BoundingBox{
		LoX: math.MaxFloat64,
		HiX: -math.MaxFloat64,
		LoY: math.MaxFloat64,
		HiY: -math.MaxFloat64,
	}
}

// Update widens the bounding box to include the given coordinate.
func (b *BoundingBox) Update(x, y float64) {
	b.LoX = math.Min(b.LoX, x)
	b.HiX = math.Max(b.HiX, x)
	b.LoY = math.Min(b.LoY, y)
	b.HiY = math.Max(b.HiY, y)
}
