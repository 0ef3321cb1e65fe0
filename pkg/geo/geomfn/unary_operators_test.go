// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"math"
	"testing"

	"github.com/b4l/spatial/pkg/geo"
	"github.com/stretchr/testify/require"
)

func TestArea(t *testing.T) {
	testCases := []struct {
		wkt      string
		expected float64
	}{
		{wkt: "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", expected: 4},
		{wkt: "POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 1 3, 3 3, 3 1, 1 1))", expected: 12},
		{wkt: "MULTIPOLYGON (((0 0, 1 0, 1 1, 0 1, 0 0)), ((5 5, 7 5, 7 7, 5 7, 5 5)))", expected: 5},
		{wkt: "POLYGON ((0 0, 1 0, 0.5 1, 0 0))", expected: 0.5},
		// The winding of the input rings does not matter.
		{wkt: "POLYGON ((0 0, 0 2, 2 2, 2 0, 0 0))", expected: 4},
		{wkt: "POINT (1 1)", expected: 0},
		{wkt: "LINESTRING (0 0, 3 4)", expected: 0},
		{wkt: "GEOMETRYCOLLECTION (POINT (5 5), POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0)))", expected: 4},
		{wkt: "POLYGON EMPTY", expected: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.wkt, func(t *testing.T) {
			area, err := Area(geo.MustParseGeometry(tc.wkt))
			require.NoError(t, err)
			require.InDelta(t, tc.expected, area, 1e-12)
		})
	}
}

func TestLength(t *testing.T) {
	testCases := []struct {
		wkt      string
		expected float64
	}{
		{wkt: "LINESTRING (0 0, 3 4)", expected: 5},
		{wkt: "LINESTRING (0 0, 1 0, 1 1)", expected: 2},
		{wkt: "MULTILINESTRING ((0 0, 1 0), (0 1, 0 3))", expected: 3},
		{wkt: "LINESTRING (0 0, 1 1)", expected: math.Sqrt2},
		// Points and polygon boundaries contribute no length.
		{wkt: "POINT (1 1)", expected: 0},
		{wkt: "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", expected: 0},
		{wkt: "GEOMETRYCOLLECTION (LINESTRING (0 0, 3 4), POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0)))", expected: 5},
		{wkt: "LINESTRING EMPTY", expected: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.wkt, func(t *testing.T) {
			length, err := Length(geo.MustParseGeometry(tc.wkt))
			require.NoError(t, err)
			require.InDelta(t, tc.expected, length, 1e-12)
		})
	}
}

func TestPerimeter(t *testing.T) {
	testCases := []struct {
		wkt      string
		expected float64
	}{
		{wkt: "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", expected: 8},
		{wkt: "POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 1 3, 3 3, 3 1, 1 1))", expected: 24},
		{wkt: "MULTIPOLYGON (((0 0, 1 0, 1 1, 0 1, 0 0)), ((5 5, 7 5, 7 7, 5 7, 5 5)))", expected: 12},
		// Lines contribute no perimeter.
		{wkt: "LINESTRING (0 0, 3 4)", expected: 0},
		{wkt: "POLYGON EMPTY", expected: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.wkt, func(t *testing.T) {
			perimeter, err := Perimeter(geo.MustParseGeometry(tc.wkt))
			require.NoError(t, err)
			require.InDelta(t, tc.expected, perimeter, 1e-12)
		})
	}
}
