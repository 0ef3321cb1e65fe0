// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"github.com/b4l/spatial/pkg/geo"
	"github.com/b4l/spatial/pkg/geo/geopb"
	"github.com/twpayne/go-geom"
)

// Intersects returns whether geometry A intersects geometry B.
func Intersects(a geo.Geometry, b geo.Geometry) (bool, error) {
	if _, err := resolveSRIDs(a, b); err != nil {
		return false, err
	}
	if !a.CartesianBoundingBox().Intersects(b.CartesianBoundingBox()) {
		return false, nil
	}
	// Geometry collections distribute over their components.
	if a.ShapeType() == geopb.ShapeType_GeometryCollection ||
		b.ShapeType() == geopb.ShapeType_GeometryCollection {
		return intersectsComponents(a, b)
	}
	// (Multi)point vs (multi)polygon has a cheaper path than the full
	// intersection matrix.
	if pointKind, polyKind, ok := pointKindPolygonKind(a, b); ok {
		return pointKindIntersectsPolygonKind(pointKind, polyKind)
	}
	m, err := relate(a, b)
	if err != nil {
		return false, err
	}
	return matrixIntersects(m), nil
}

func matrixIntersects(m de9im) bool {
	return m.cell(locInterior, locInterior) > -1 ||
		m.cell(locInterior, locBoundary) > -1 ||
		m.cell(locBoundary, locInterior) > -1 ||
		m.cell(locBoundary, locBoundary) > -1
}

// intersectsComponents distributes Intersects over the components of
// geometry collection operands.
func intersectsComponents(a geo.Geometry, b geo.Geometry) (bool, error) {
	aGeomT, err := a.AsGeomT()
	if err != nil {
		return false, err
	}
	bGeomT, err := b.AsGeomT()
	if err != nil {
		return false, err
	}
	aIt := geo.NewGeomTIterator(aGeomT, geo.EmptyBehaviorOmit)
	for {
		aSub, ok, err := aIt.Next()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		bIt := geo.NewGeomTIterator(bGeomT, geo.EmptyBehaviorOmit)
		for {
			bSub, ok, err := bIt.Next()
			if err != nil {
				return false, err
			}
			if !ok {
				break
			}
			aShapes, err := flattenGeomT(aSub)
			if err != nil {
				return false, err
			}
			bShapes, err := flattenGeomT(bSub)
			if err != nil {
				return false, err
			}
			if matrixIntersects(relateShapes(aShapes, bShapes)) {
				return true, nil
			}
		}
	}
}

// pointKindPolygonKind splits the operands into a (multi)point and a
// (multi)polygon operand if they have those shapes.
func pointKindPolygonKind(
	a geo.Geometry, b geo.Geometry,
) (pointKind geo.Geometry, polyKind geo.Geometry, ok bool) {
	isPointKind := func(g geo.Geometry) bool {
		return g.ShapeType() == geopb.ShapeType_Point || g.ShapeType() == geopb.ShapeType_MultiPoint
	}
	isPolyKind := func(g geo.Geometry) bool {
		return g.ShapeType() == geopb.ShapeType_Polygon || g.ShapeType() == geopb.ShapeType_MultiPolygon
	}
	switch {
	case isPointKind(a) && isPolyKind(b):
		return a, b, true
	case isPointKind(b) && isPolyKind(a):
		return b, a, true
	}
	return geo.Geometry{}, geo.Geometry{}, false
}

// pointKindIntersectsPolygonKind returns whether a (multi)point intersects
// a (multi)polygon without building the full intersection matrix.
func pointKindIntersectsPolygonKind(pointKind, polyKind geo.Geometry) (bool, error) {
	pointT, err := pointKind.AsGeomT()
	if err != nil {
		return false, err
	}
	polyT, err := polyKind.AsGeomT()
	if err != nil {
		return false, err
	}
	it := geo.NewGeomTIterator(pointT, geo.EmptyBehaviorOmit)
	for {
		point, ok, err := it.Next()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		side, err := findPointSideOfPolygon(point, polyT)
		if err != nil {
			return false, err
		}
		if side != outsideLinearRing {
			return true, nil
		}
	}
}

// Disjoint returns whether geometry A is disjoint from geometry B.
func Disjoint(a geo.Geometry, b geo.Geometry) (bool, error) {
	intersects, err := Intersects(a, b)
	if err != nil {
		return false, err
	}
	return !intersects, nil
}

// Equals returns whether geometry A equals geometry B topologically.
func Equals(a geo.Geometry, b geo.Geometry) (bool, error) {
	if _, err := resolveSRIDs(a, b); err != nil {
		return false, err
	}
	// Two empty geometries are equal, matching common spatial SQL behavior.
	if a.Empty() && b.Empty() {
		return true, nil
	}
	return relatesByPattern(a, b, "T*F**FFF*")
}

// Touches returns whether geometry A touches geometry B.
func Touches(a geo.Geometry, b geo.Geometry) (bool, error) {
	if _, err := resolveSRIDs(a, b); err != nil {
		return false, err
	}
	if !a.CartesianBoundingBox().Intersects(b.CartesianBoundingBox()) {
		return false, nil
	}
	m, err := relate(a, b)
	if err != nil {
		return false, err
	}
	if m.cell(locInterior, locInterior) > -1 {
		return false, nil
	}
	return m.cell(locInterior, locBoundary) > -1 ||
		m.cell(locBoundary, locInterior) > -1 ||
		m.cell(locBoundary, locBoundary) > -1, nil
}

// Crosses returns whether geometry A crosses geometry B.
func Crosses(a geo.Geometry, b geo.Geometry) (bool, error) {
	if _, err := resolveSRIDs(a, b); err != nil {
		return false, err
	}
	if !a.CartesianBoundingBox().Intersects(b.CartesianBoundingBox()) {
		return false, nil
	}
	m, err := relate(a, b)
	if err != nil {
		return false, err
	}
	aDim, bDim := shapeDim(a.ShapeType()), shapeDim(b.ShapeType())
	switch {
	case aDim < bDim:
		return m.cell(locInterior, locInterior) > -1 &&
			m.cell(locInterior, locExterior) > -1, nil
	case aDim > bDim:
		return m.cell(locInterior, locInterior) > -1 &&
			m.cell(locExterior, locInterior) > -1, nil
	case aDim == 1 && bDim == 1:
		return m.cell(locInterior, locInterior) == 0, nil
	}
	return false, nil
}

// Within returns whether geometry A is within geometry B.
func Within(a geo.Geometry, b geo.Geometry) (bool, error) {
	if _, err := resolveSRIDs(a, b); err != nil {
		return false, err
	}
	if !b.CartesianBoundingBox().Covers(a.CartesianBoundingBox()) {
		return false, nil
	}
	if pointKind, polyKind, ok := pointKindPolygonKind(a, b); ok && pointKind.Equal(a) {
		return pointKindWithinPolygonKind(pointKind, polyKind)
	}
	return relatesByPattern(a, b, "T*F**F***")
}

// pointKindWithinPolygonKind returns whether every point of a (multi)point
// lies in a (multi)polygon, with at least one point in its interior.
func pointKindWithinPolygonKind(pointKind, polyKind geo.Geometry) (bool, error) {
	pointT, err := pointKind.AsGeomT()
	if err != nil {
		return false, err
	}
	polyT, err := polyKind.AsGeomT()
	if err != nil {
		return false, err
	}
	insideOnce := false
	it := geo.NewGeomTIterator(pointT, geo.EmptyBehaviorOmit)
	for {
		point, ok, err := it.Next()
		if err != nil {
			return false, err
		}
		if !ok {
			break
		}
		side, err := findPointSideOfPolygon(point, polyT)
		if err != nil {
			return false, err
		}
		switch side {
		case outsideLinearRing:
			return false, nil
		case insideLinearRing:
			insideOnce = true
		}
	}
	return insideOnce, nil
}

// Contains returns whether geometry A contains geometry B.
func Contains(a geo.Geometry, b geo.Geometry) (bool, error) {
	return Within(b, a)
}

// Overlaps returns whether geometry A overlaps geometry B.
func Overlaps(a geo.Geometry, b geo.Geometry) (bool, error) {
	if _, err := resolveSRIDs(a, b); err != nil {
		return false, err
	}
	if !a.CartesianBoundingBox().Intersects(b.CartesianBoundingBox()) {
		return false, nil
	}
	aDim, bDim := shapeDim(a.ShapeType()), shapeDim(b.ShapeType())
	if aDim != bDim {
		return false, nil
	}
	m, err := relate(a, b)
	if err != nil {
		return false, err
	}
	if aDim == 1 {
		return m.cell(locInterior, locInterior) == 1 &&
			m.cell(locInterior, locExterior) > -1 &&
			m.cell(locExterior, locInterior) > -1, nil
	}
	return m.cell(locInterior, locInterior) > -1 &&
		m.cell(locInterior, locExterior) > -1 &&
		m.cell(locExterior, locInterior) > -1, nil
}

// Covers returns whether geometry A covers geometry B.
func Covers(a geo.Geometry, b geo.Geometry) (bool, error) {
	if _, err := resolveSRIDs(a, b); err != nil {
		return false, err
	}
	if !a.CartesianBoundingBox().Covers(b.CartesianBoundingBox()) {
		return false, nil
	}
	m, err := relate(a, b)
	if err != nil {
		return false, err
	}
	if m.cell(locExterior, locInterior) > -1 || m.cell(locExterior, locBoundary) > -1 {
		return false, nil
	}
	return m.cell(locInterior, locInterior) > -1 ||
		m.cell(locInterior, locBoundary) > -1 ||
		m.cell(locBoundary, locInterior) > -1 ||
		m.cell(locBoundary, locBoundary) > -1, nil
}

// CoveredBy returns whether geometry A is covered by geometry B.
func CoveredBy(a geo.Geometry, b geo.Geometry) (bool, error) {
	return Covers(b, a)
}

func relatesByPattern(a geo.Geometry, b geo.Geometry, pattern string) (bool, error) {
	m, err := relate(a, b)
	if err != nil {
		return false, err
	}
	return MatchesDE9IM(m.String(), pattern)
}

func shapeDim(shapeType geopb.ShapeType) int {
	switch shapeType {
	case geopb.ShapeType_Point, geopb.ShapeType_MultiPoint:
		return 0
	case geopb.ShapeType_LineString, geopb.ShapeType_MultiLineString:
		return 1
	case geopb.ShapeType_Polygon, geopb.ShapeType_MultiPolygon:
		return 2
	default:
		return -1
	}
}

// dimensionOfGeomT returns the topological dimension of a geometry,
// recursing into collections. Empty geometries still report the dimension of
// their shape.
func dimensionOfGeomT(t geom.T) int {
	switch t := t.(type) {
	case *geom.Point, *geom.MultiPoint:
		return 0
	case *geom.LineString, *geom.MultiLineString:
		return 1
	case *geom.Polygon, *geom.MultiPolygon:
		return 2
	case *geom.GeometryCollection:
		ret := 0
		for _, subG := range t.Geoms() {
			if d := dimensionOfGeomT(subG); d > ret {
				ret = d
			}
		}
		return ret
	default:
		return 0
	}
}
