// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

// Package geo contains the base types for spatial data types operating on a
// planar cartesian coordinate system.
package geo

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/b4l/spatial/pkg/geo/geopb"
	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkbcommon"
)

// DefaultEWKBEncodingFormat is the default encoding format for EWKB.
var DefaultEWKBEncodingFormat = binary.ByteOrder(binary.LittleEndian)

// EmptyBehavior is the behavior to adopt when an empty geometry is
// encountered while iterating a collection.
type EmptyBehavior uint8

const (
	// EmptyBehaviorError will error when an empty geometry is encountered.
	EmptyBehaviorError EmptyBehavior = 0
	// EmptyBehaviorOmit will omit an entry when an empty geometry is
	// encountered.
	EmptyBehaviorOmit EmptyBehavior = 1
)

// Geometry is planar spatial object.
type Geometry struct {
	spatialObject geopb.SpatialObject
}

// MakeGeometry returns a new Geometry. Assumes the input EWKB is validated
// and in little endian.
func MakeGeometry(spatialObject geopb.SpatialObject) (Geometry, error) {
	if len(spatialObject.EWKB) == 0 {
		return Geometry{}, NewParseError(errors.New("geometry EWKB is empty"))
	}
	return Geometry{spatialObject: spatialObject}, nil
}

// MakeGeometryUnsafe creates a geometry object that assumes spatialObject
// is from the DB. It assumes the spatialObject underneath is safe.
func MakeGeometryUnsafe(spatialObject geopb.SpatialObject) Geometry {
	return Geometry{spatialObject: spatialObject}
}

// MakeGeometryFromGeomT creates a new Geometry object from a geom.T object,
// validating and normalizing it along the way. Z and M ordinates are
// dropped.
func MakeGeometryFromGeomT(t geom.T) (Geometry, error) {
	t = forceLayoutXY(t)
	if err := validateGeomT(t); err != nil {
		return Geometry{}, err
	}
	spatialObject, err := spatialObjectFromGeomT(t)
	if err != nil {
		return Geometry{}, err
	}
	return Geometry{spatialObject: spatialObject}, nil
}

// MakeGeometryFromPointCoords makes a point from x, y coordinates.
func MakeGeometryFromPointCoords(x, y float64) (Geometry, error) {
	return MakeGeometryFromGeomT(geom.NewPointFlat(geom.XY, []float64{x, y}))
}

// MustMakeGeometryFromGeomT enforces no error from MakeGeometryFromGeomT.
func MustMakeGeometryFromGeomT(t geom.T) Geometry {
	g, err := MakeGeometryFromGeomT(t)
	if err != nil {
		panic(err)
	}
	return g
}

// AsGeomT returns the geometry as a geom.T object.
func (g *Geometry) AsGeomT() (geom.T, error) {
	t, err := ewkb.Unmarshal(g.spatialObject.EWKB)
	if err != nil {
		return nil, NewParseError(err)
	}
	return t, nil
}

// Empty returns whether the given Geometry is empty.
func (g *Geometry) Empty() bool {
	return g.spatialObject.BoundingBox == nil
}

// ShapeType returns the shape type of the Geometry.
func (g *Geometry) ShapeType() geopb.ShapeType {
	return g.spatialObject.ShapeType
}

// SRID returns the SRID representation of the Geometry.
func (g *Geometry) SRID() geopb.SRID {
	return g.spatialObject.SRID
}

// GeometryType returns the PostGIS-style type name of the Geometry,
// e.g. "ST_Point".
func (g *Geometry) GeometryType() string {
	return "ST_" + g.spatialObject.ShapeType.String()
}

// CloneWithSRID sets a given Geometry's SRID to another, without any
// transformations. Returns a new Geometry object.
func (g *Geometry) CloneWithSRID(srid geopb.SRID) (Geometry, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return Geometry{}, err
	}
	if err := applySRID(t, srid); err != nil {
		return Geometry{}, err
	}
	return MakeGeometryFromGeomT(t)
}

// SpatialObject returns the SpatialObject representation of the Geometry.
func (g *Geometry) SpatialObject() geopb.SpatialObject {
	return g.spatialObject
}

// EWKB returns the EWKB representation of the Geometry.
func (g *Geometry) EWKB() geopb.EWKB {
	return g.spatialObject.EWKB
}

// BoundingBoxRef returns a pointer to the bounding box of the Geometry,
// or nil if the geometry is empty. The returned value must not be mutated.
func (g *Geometry) BoundingBoxRef() *geopb.BoundingBox {
	return g.spatialObject.BoundingBox
}

// CartesianBoundingBox returns a Cartesian bounding box, or nil if the
// geometry is empty.
func (g *Geometry) CartesianBoundingBox() *CartesianBoundingBox {
	if g.spatialObject.BoundingBox == nil {
		return nil
	}
	return &CartesianBoundingBox{BoundingBox: *g.spatialObject.BoundingBox}
}

// Equal returns whether the Geometry is byte-wise identical to the other
// Geometry, SRID included.
func (g *Geometry) Equal(o Geometry) bool {
	return g.spatialObject.SRID == o.spatialObject.SRID &&
		bytes.Equal(g.spatialObject.EWKB, o.spatialObject.EWKB)
}

// applySRID recursively sets the SRID on a geom.T.
func applySRID(t geom.T, srid geopb.SRID) error {
	switch t := t.(type) {
	case *geom.Point:
		t.SetSRID(int(srid))
	case *geom.LineString:
		t.SetSRID(int(srid))
	case *geom.Polygon:
		t.SetSRID(int(srid))
	case *geom.MultiPoint:
		t.SetSRID(int(srid))
	case *geom.MultiLineString:
		t.SetSRID(int(srid))
	case *geom.MultiPolygon:
		t.SetSRID(int(srid))
	case *geom.GeometryCollection:
		t.SetSRID(int(srid))
		for _, subG := range t.Geoms() {
			if err := applySRID(subG, srid); err != nil {
				return err
			}
		}
	default:
		return errors.AssertionFailedf("unknown geom.T type: %T", t)
	}
	return nil
}

// forceLayoutXY returns a geometry with Z and M ordinates stripped. XY input
// is returned unchanged.
func forceLayoutXY(t geom.T) geom.T {
	if gc, ok := t.(*geom.GeometryCollection); ok {
		needsRebuild := false
		for _, subG := range gc.Geoms() {
			if _, isGC := subG.(*geom.GeometryCollection); isGC || subG.Layout() != geom.XY {
				needsRebuild = true
				break
			}
		}
		if !needsRebuild {
			return gc
		}
		ret := geom.NewGeometryCollection().SetSRID(gc.SRID())
		for _, subG := range gc.Geoms() {
			if err := ret.Push(forceLayoutXY(subG)); err != nil {
				// Push on a freshly built collection only errors on layout
				// mismatch, which cannot happen after forcing XY.
				panic(err)
			}
		}
		return ret
	}
	if t.Layout() == geom.XY {
		return t
	}
	flat := flatCoordsToXY(t.FlatCoords(), t.Stride())
	switch t := t.(type) {
	case *geom.Point:
		if t.Empty() {
			return geom.NewPointEmpty(geom.XY).SetSRID(t.SRID())
		}
		return geom.NewPointFlat(geom.XY, flat).SetSRID(t.SRID())
	case *geom.LineString:
		return geom.NewLineStringFlat(geom.XY, flat).SetSRID(t.SRID())
	case *geom.Polygon:
		return geom.NewPolygonFlat(geom.XY, flat, scaleEnds(t.Ends(), t.Stride())).SetSRID(t.SRID())
	case *geom.MultiPoint:
		return geom.NewMultiPointFlat(geom.XY, flat).SetSRID(t.SRID())
	case *geom.MultiLineString:
		return geom.NewMultiLineStringFlat(geom.XY, flat, scaleEnds(t.Ends(), t.Stride())).SetSRID(t.SRID())
	case *geom.MultiPolygon:
		endss := make([][]int, len(t.Endss()))
		for i, ends := range t.Endss() {
			endss[i] = scaleEnds(ends, t.Stride())
		}
		return geom.NewMultiPolygonFlat(geom.XY, flat, endss).SetSRID(t.SRID())
	}
	return t
}

func flatCoordsToXY(flatCoords []float64, stride int) []float64 {
	ret := make([]float64, 0, len(flatCoords)/stride*2)
	for i := 0; i < len(flatCoords); i += stride {
		ret = append(ret, flatCoords[i], flatCoords[i+1])
	}
	return ret
}

func scaleEnds(ends []int, stride int) []int {
	ret := make([]int, len(ends))
	for i, end := range ends {
		ret[i] = end / stride * 2
	}
	return ret
}

// validateGeomT validates the geom.T object: all ordinates must be finite,
// line strings must have at least 2 points, and polygon rings must be closed
// with at least 4 points.
func validateGeomT(t geom.T) error {
	if t.Empty() {
		if gc, ok := t.(*geom.GeometryCollection); ok {
			for i, subG := range gc.Geoms() {
				if err := validateGeomT(subG); err != nil {
					return errors.Wrapf(err, "invalid GeometryCollection component at position %d", i+1)
				}
			}
		}
		return nil
	}
	switch t := t.(type) {
	case *geom.Point:
	case *geom.LineString:
		if t.NumCoords() < 2 {
			return NewInvalidGeometryError(errors.Newf("LineString must have at least 2 coordinates"))
		}
	case *geom.Polygon:
		for i := 0; i < t.NumLinearRings(); i++ {
			linearRing := t.LinearRing(i)
			if linearRing.NumCoords() < 4 {
				return NewInvalidGeometryError(errors.Newf(
					"Polygon LinearRing must have at least 4 points, found %d at position %d",
					linearRing.NumCoords(),
					i+1,
				))
			}
			if !linearRing.Coord(0).Equal(geom.XY, linearRing.Coord(linearRing.NumCoords()-1)) {
				return NewInvalidGeometryError(errors.Newf("Polygon LinearRing at position %d is not closed", i+1))
			}
		}
	case *geom.MultiPoint:
	case *geom.MultiLineString:
		for i := 0; i < t.NumLineStrings(); i++ {
			if err := validateGeomT(t.LineString(i)); err != nil {
				return errors.Wrapf(err, "invalid MultiLineString component at position %d", i+1)
			}
		}
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			if err := validateGeomT(t.Polygon(i)); err != nil {
				return errors.Wrapf(err, "invalid MultiPolygon component at position %d", i+1)
			}
		}
	case *geom.GeometryCollection:
		for i, subG := range t.Geoms() {
			if err := validateGeomT(subG); err != nil {
				return errors.Wrapf(err, "invalid GeometryCollection component at position %d", i+1)
			}
		}
		// Components carry the coordinates; FlatCoords panics on collections.
		return nil
	default:
		return errors.AssertionFailedf("unknown geom.T type: %T", t)
	}
	for _, v := range t.FlatCoords() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewInvalidCoordinateError(v)
		}
	}
	return nil
}

// ewkbSRIDFlag is the bit set in the EWKB type word when a 4-byte SRID
// follows the header.
const ewkbSRIDFlag = 0x20000000

// spatialObjectFromGeomT creates a SpatialObject from a geom.T.
func spatialObjectFromGeomT(t geom.T) (geopb.SpatialObject, error) {
	encoded, err := wkb.Marshal(t, DefaultEWKBEncodingFormat, wkbcommon.WKBOptionEmptyPointHandling(wkbcommon.EmptyPointHandlingNaN))
	if err != nil {
		return geopb.SpatialObject{}, err
	}
	ret, err := writeEWKBSRID(encoded, t.SRID())
	if err != nil {
		return geopb.SpatialObject{}, err
	}
	shapeType, err := shapeTypeFromGeomT(t)
	if err != nil {
		return geopb.SpatialObject{}, err
	}
	var bbox *geopb.BoundingBox
	if cartesianBBox := BoundingBoxFromGeomT(t); cartesianBBox != nil {
		bbox = &cartesianBBox.BoundingBox
	}
	return geopb.SpatialObject{
		EWKB:        geopb.EWKB(ret),
		SRID:        geopb.SRID(t.SRID()),
		ShapeType:   shapeType,
		BoundingBox: bbox,
	}, nil
}

// writeEWKBSRID rewrites a WKB header into an EWKB one carrying the given
// SRID. A zero SRID leaves the encoding untouched; readers treat the two
// forms interchangeably.
func writeEWKBSRID(b []byte, srid int) ([]byte, error) {
	if srid == 0 {
		return b, nil
	}
	if len(b) < 5 {
		return nil, errors.AssertionFailedf("WKB header too short: %d bytes", len(b))
	}
	var byteOrder binary.ByteOrder = binary.BigEndian
	if b[0] == 1 {
		byteOrder = binary.LittleEndian
	}
	ret := make([]byte, len(b)+4)
	ret[0] = b[0]
	byteOrder.PutUint32(ret[1:5], byteOrder.Uint32(b[1:5])|ewkbSRIDFlag)
	byteOrder.PutUint32(ret[5:9], uint32(srid))
	copy(ret[9:], b[5:])
	return ret, nil
}

func shapeTypeFromGeomT(t geom.T) (geopb.ShapeType, error) {
	switch t := t.(type) {
	case *geom.Point:
		return geopb.ShapeType_Point, nil
	case *geom.LineString:
		return geopb.ShapeType_LineString, nil
	case *geom.Polygon:
		return geopb.ShapeType_Polygon, nil
	case *geom.MultiPoint:
		return geopb.ShapeType_MultiPoint, nil
	case *geom.MultiLineString:
		return geopb.ShapeType_MultiLineString, nil
	case *geom.MultiPolygon:
		return geopb.ShapeType_MultiPolygon, nil
	case *geom.GeometryCollection:
		return geopb.ShapeType_GeometryCollection, nil
	default:
		return geopb.ShapeType_Unset, errors.AssertionFailedf("unknown shape: %T", t)
	}
}
