// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"math"
	"math/big"

	"github.com/golang/geo/r2"
)

// pointSide describes which side of the directed line from a to b a query
// point falls on.
type pointSide int

const (
	pointSideRight     pointSide = -1
	pointSideCollinear pointSide = 0
	pointSideLeft      pointSide = 1
)

// orientationErrBound is the relative error bound on the floating point
// 2x2 determinant, after Shewchuk's "Adaptive Precision Floating-Point
// Arithmetic and Fast Robust Geometric Predicates" (orientation filter
// constant (3 + 16*eps) * eps with eps = 2^-53).
const orientationErrBound = 3.3306690738754716e-16

// orientation returns the side of the directed line a->b that c lies on.
// The common case is decided by a filtered floating point determinant; when
// the determinant is too close to zero for the filter to be trusted, the
// sign is recomputed with exact rational arithmetic.
func orientation(a, b, c r2.Point) pointSide {
	detLeft := (b.X - a.X) * (c.Y - a.Y)
	detRight := (b.Y - a.Y) * (c.X - a.X)
	det := detLeft - detRight

	if detLeft == 0 || detRight == 0 || (detLeft > 0) != (detRight > 0) {
		// The two products have opposite signs (or one is zero); cancellation
		// cannot flip the sign of their difference.
		return sideFromSign(det)
	}
	detSum := math.Abs(detLeft + detRight)
	if math.Abs(det) >= orientationErrBound*detSum {
		return sideFromSign(det)
	}
	return orientationExact(a, b, c)
}

func sideFromSign(v float64) pointSide {
	switch {
	case v > 0:
		return pointSideLeft
	case v < 0:
		return pointSideRight
	default:
		return pointSideCollinear
	}
}

// orientationExact evaluates the orientation determinant in arbitrary
// precision rational arithmetic. Every float64 is exactly representable as a
// rational, so the result carries no rounding error.
func orientationExact(a, b, c r2.Point) pointSide {
	ax := new(big.Rat).SetFloat64(a.X)
	ay := new(big.Rat).SetFloat64(a.Y)
	bx := new(big.Rat).SetFloat64(b.X)
	by := new(big.Rat).SetFloat64(b.Y)
	cx := new(big.Rat).SetFloat64(c.X)
	cy := new(big.Rat).SetFloat64(c.Y)

	left := new(big.Rat).Mul(new(big.Rat).Sub(bx, ax), new(big.Rat).Sub(cy, ay))
	right := new(big.Rat).Mul(new(big.Rat).Sub(by, ay), new(big.Rat).Sub(cx, ax))
	return pointSide(new(big.Rat).Sub(left, right).Sign())
}
