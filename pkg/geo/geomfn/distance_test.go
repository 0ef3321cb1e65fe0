// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"fmt"
	"math"
	"testing"

	"github.com/b4l/spatial/pkg/geo"
	"github.com/stretchr/testify/require"
)

func TestMinDistance(t *testing.T) {
	testCases := []struct {
		a        string
		b        string
		expected float64
	}{
		{"POINT (0 0)", "POINT (3 4)", 5},
		{"POINT (0 0)", "POINT (0 0)", 0},
		{"POINT (1 1)", "LINESTRING (0 3, 3 0)", math.Sqrt(2) / 2},
		{"POINT (1 1)", "LINESTRING (0 0, 2 2)", 0},
		{"POINT (5 0)", "LINESTRING (0 0, 2 2)", math.Sqrt(9 + 4)},
		{"LINESTRING (0 0, 1 0)", "LINESTRING (0 1, 1 1)", 1},
		{"LINESTRING (0 0, 2 2)", "LINESTRING (0 2, 2 0)", 0},
		{"POINT (1 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", 0},
		{"POINT (3 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", 1},
		{
			"POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			"POLYGON ((3 0, 4 0, 4 1, 3 1, 3 0))",
			2,
		},
		// A point inside a hole measures to the hole boundary.
		{
			"POINT (2 2)",
			"POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 1 3, 3 3, 3 1, 1 1))",
			1,
		},
		{"MULTIPOINT (0 0, 10 10)", "POINT (9 10)", 1},
	}

	for i, tc := range testCases {
		t.Run(fmt.Sprintf("tc:%d", i), func(t *testing.T) {
			ret, err := MinDistance(geo.MustParseGeometry(tc.a), geo.MustParseGeometry(tc.b))
			require.NoError(t, err)
			require.InEpsilon(t, tc.expected+1, ret+1, 1e-12)

			// Distance is symmetric.
			reversed, err := MinDistance(geo.MustParseGeometry(tc.b), geo.MustParseGeometry(tc.a))
			require.NoError(t, err)
			require.Equal(t, ret, reversed)

			// Zero distance coincides with intersection.
			intersects, err := Intersects(geo.MustParseGeometry(tc.a), geo.MustParseGeometry(tc.b))
			require.NoError(t, err)
			require.Equal(t, tc.expected == 0, intersects)
		})
	}

	t.Run("errors on empty geometry", func(t *testing.T) {
		_, err := MinDistance(
			geo.MustParseGeometry("POINT EMPTY"), geo.MustParseGeometry("POINT (1 1)"))
		requireEmptyGeometryError(t, err)
	})

	t.Run("errors if SRIDs mismatch", func(t *testing.T) {
		_, err := MinDistance(mismatchingSRIDGeometryA, mismatchingSRIDGeometryB)
		requireMismatchingSRIDError(t, err)
	})
}

func TestMaxDistance(t *testing.T) {
	testCases := []struct {
		a        string
		b        string
		expected float64
	}{
		{"POINT (0 0)", "POINT (3 4)", 5},
		{"POINT (0 0)", "LINESTRING (1 0, 3 4)", 5},
		{
			"POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			"POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			math.Sqrt2,
		},
	}
	for i, tc := range testCases {
		t.Run(fmt.Sprintf("tc:%d", i), func(t *testing.T) {
			ret, err := MaxDistance(geo.MustParseGeometry(tc.a), geo.MustParseGeometry(tc.b))
			require.NoError(t, err)
			require.InEpsilon(t, tc.expected, ret, 1e-12)
		})
	}

	t.Run("errors on empty geometry", func(t *testing.T) {
		_, err := MaxDistance(
			geo.MustParseGeometry("LINESTRING EMPTY"), geo.MustParseGeometry("POINT (1 1)"))
		requireEmptyGeometryError(t, err)
	})
}

func TestDWithin(t *testing.T) {
	testCases := []struct {
		a        string
		b        string
		d        float64
		expected bool
	}{
		{"POINT (0 0)", "POINT (3 4)", 5, true},
		{"POINT (0 0)", "POINT (3 4)", 4.99, false},
		{"POINT (1 1)", "LINESTRING (0 0, 2 2)", 0, true},
		{"POINT EMPTY", "POINT (0 0)", 100, false},
	}
	for i, tc := range testCases {
		t.Run(fmt.Sprintf("tc:%d", i), func(t *testing.T) {
			ret, err := DWithin(geo.MustParseGeometry(tc.a), geo.MustParseGeometry(tc.b), tc.d)
			require.NoError(t, err)
			require.Equal(t, tc.expected, ret)
		})
	}

	t.Run("errors on negative distance", func(t *testing.T) {
		_, err := DWithin(geo.MustParseGeometry("POINT (0 0)"), geo.MustParseGeometry("POINT (1 1)"), -1)
		require.Error(t, err)
	})
}
