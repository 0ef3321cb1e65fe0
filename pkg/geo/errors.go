// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geo

import (
	"github.com/b4l/spatial/pkg/geo/geopb"
	"github.com/cockroachdb/errors"
)

// Error sentinels for classifying geometry errors. Callers test with
// errors.Is; constructors below attach context while keeping the mark.
var (
	// ErrParse marks errors from decoding a textual or binary geometry
	// representation.
	ErrParse = errors.New("error parsing geometry")
	// ErrInvalidCoordinate marks geometries carrying NaN or infinite
	// ordinates.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrMixedSRIDs marks binary operations over operands with different
	// SRIDs.
	ErrMixedSRIDs = errors.New("operation on mixed SRID geometries")
	// ErrInvalidTopology marks operations whose input violates a topology
	// precondition, e.g. a self-intersecting polygon passed to an overlay.
	ErrInvalidTopology = errors.New("invalid topology")
	// ErrUnsupportedOperation marks operations not defined for the given
	// geometry type.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrEmptyGeometry marks operations that encountered an empty geometry
	// where a non-empty one is required.
	ErrEmptyGeometry = errors.New("empty shape found")
)

// NewEmptyGeometryError returns an error indicating an empty geometry was
// found where one is not permitted.
func NewEmptyGeometryError() error {
	return errors.Mark(errors.New("empty shape found"), ErrEmptyGeometry)
}

// NewParseError wraps err as a geometry parse error.
func NewParseError(err error) error {
	return errors.Mark(err, ErrParse)
}

// NewInvalidCoordinateError returns an error for a non-finite ordinate value.
func NewInvalidCoordinateError(v float64) error {
	return errors.Mark(
		errors.Newf("coordinate value %v is out of range", v),
		ErrInvalidCoordinate,
	)
}

// NewInvalidGeometryError wraps an error describing a malformed coordinate
// structure, e.g. an unclosed polygon ring or a one-point line string.
func NewInvalidGeometryError(err error) error {
	return errors.Mark(err, ErrInvalidCoordinate)
}

// NewMismatchingSRIDsError returns the error message for SRIDs of given
// geometries not matching.
func NewMismatchingSRIDsError(a geopb.SpatialObject, b geopb.SpatialObject) error {
	return errors.Mark(
		errors.Newf("operation on mixed SRID geometries: %s SRID=%d, %s SRID=%d",
			a.ShapeType, a.SRID, b.ShapeType, b.SRID),
		ErrMixedSRIDs,
	)
}

// NewTopologyError returns an error describing a topology violation found at
// the given coordinate.
func NewTopologyError(reason string, x, y float64) error {
	return errors.Mark(
		errors.Newf("%s at or near point %v %v", reason, x, y),
		ErrInvalidTopology,
	)
}

// NewUnsupportedOperationError returns an error for an operation not defined
// on the given shape.
func NewUnsupportedOperationError(op string, shape geopb.ShapeType) error {
	return errors.Mark(
		errors.Newf("%s is unsupported for %s", op, shape),
		ErrUnsupportedOperation,
	)
}
