// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

// Package geopb contains the wire-level representations of spatial objects:
// the serialized forms (WKT, WKB and their SRID-extended variants), the
// shape-type tag and the bounding box. Everything here is a plain value with
// no behavior beyond construction and accessors; the geo package layers the
// Geometry value type on top.
package geopb

// The common standard SRIDs.
const (
	// UnknownSRID is the default SRID if none is provided.
	UnknownSRID = SRID(0)
	// DefaultGeometrySRID is the same as being unknown.
	DefaultGeometrySRID = UnknownSRID
	// WGS84SRID (aka 4326) is the GPS lat/lng coordinate system. The kernel
	// performs no reprojection; the constant exists only so that callers can
	// tag coordinates.
	WGS84SRID = SRID(4326)
)

// SRID is a Spatial Reference Identifier. All shapes are stored and
// represented using coordinates that are bare floats; the SRID ties those
// floats to a coordinate system, allowing them to be interpreted and
// compared.
//
// The zero value is special and means an unknown coordinate system.
type SRID int32

// WKT is the Well Known Text form of a spatial object.
type WKT string

// EWKT is the SRID-extended Well Known Text form of a spatial object.
type EWKT string

// WKB is the Well Known Bytes form of a spatial object.
type WKB []byte

// EWKB is the SRID-extended Well Known Bytes form of a spatial object.
type EWKB []byte

// ShapeType is the type of a spatial shape. Each of these corresponds to a
// different representation and serialization format. For example, a Point is
// a pair of doubles, a LineString is an ordered series of Points, etc.
type ShapeType int16

const (
	ShapeType_Unset           ShapeType = 0
	ShapeType_Point           ShapeType = 1
	ShapeType_LineString      ShapeType = 2
	ShapeType_Polygon         ShapeType = 3
	ShapeType_MultiPoint      ShapeType = 4
	ShapeType_MultiLineString ShapeType = 5
	ShapeType_MultiPolygon    ShapeType = 6
	// ShapeType_Geometry can contain any type.
	ShapeType_Geometry ShapeType = 7
	// ShapeType_GeometryCollection can contain a list of any above type except
	// for Geometry.
	ShapeType_GeometryCollection ShapeType = 8
)

var ShapeType_name = map[int16]string{
	0: "Unset",
	1: "Point",
	2: "LineString",
	3: "Polygon",
	4: "MultiPoint",
	5: "MultiLineString",
	6: "MultiPolygon",
	7: "Geometry",
	8: "GeometryCollection",
}

var ShapeType_value = map[string]int16{
	"Unset":              0,
	"Point":              1,
	"LineString":         2,
	"Polygon":            3,
	"MultiPoint":         4,
	"MultiLineString":    5,
	"MultiPolygon":       6,
	"Geometry":           7,
	"GeometryCollection": 8,
}

func (x ShapeType) String() string {
	return ShapeType_name[int16(x)]
}

// MultiType returns the corresponding multi-type for the given shape type,
// or Unset if it has no multi-type.
func (x ShapeType) MultiType() ShapeType {
	switch x {
	case ShapeType_Unset:
		return ShapeType_Unset
	case ShapeType_Point, ShapeType_MultiPoint:
		return ShapeType_MultiPoint
	case ShapeType_LineString, ShapeType_MultiLineString:
		return ShapeType_MultiLineString
	case ShapeType_Polygon, ShapeType_MultiPolygon:
		return ShapeType_MultiPolygon
	case ShapeType_Geometry, ShapeType_GeometryCollection:
		return ShapeType_GeometryCollection
	default:
		return ShapeType_Unset
	}
}

// SpatialObject is the canonical serialized representation of a single
// geometry value. The EWKB member is authoritative; SRID, ShapeType and
// BoundingBox are denormalized out of it so that cheap operations (extent
// aggregation, bounding-box short circuits, type dispatch) never need to
// decode the payload.
type SpatialObject struct {
	// EWKB is the SRID-extended WKB encoding of the shape.
	EWKB EWKB
	// SRID is the denormalized SRID derived from the EWKB.
	SRID SRID
	// ShapeType is the denormalized shape type derived from the EWKB.
	ShapeType ShapeType
	// BoundingBox is the axis-aligned bounding box of the shape; nil for the
	// empty geometry.
	BoundingBox *BoundingBox
}
