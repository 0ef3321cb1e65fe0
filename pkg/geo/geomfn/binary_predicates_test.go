// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"fmt"
	"testing"

	"github.com/b4l/spatial/pkg/geo"
	"github.com/stretchr/testify/require"
)

type predicateTestCase struct {
	a        string
	b        string
	expected bool
}

func runPredicateTests(
	t *testing.T,
	testCases []predicateTestCase,
	predicate func(a geo.Geometry, b geo.Geometry) (bool, error),
) {
	t.Helper()
	for i, tc := range testCases {
		t.Run(fmt.Sprintf("tc:%d", i), func(t *testing.T) {
			ret, err := predicate(geo.MustParseGeometry(tc.a), geo.MustParseGeometry(tc.b))
			require.NoError(t, err)
			require.Equal(t, tc.expected, ret)
		})
	}
}

func TestIntersects(t *testing.T) {
	runPredicateTests(t, []predicateTestCase{
		{"POINT (1 1)", "POINT (1 1)", true},
		{"POINT (1 1)", "POINT (2 2)", false},
		{"POINT (1 1)", "LINESTRING (0 0, 2 2)", true},
		{"POINT (1 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", true},
		{"POINT (2 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", true},
		{"POINT (5 5)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", false},
		{"MULTIPOINT (5 5, 1 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", true},
		{"MULTIPOINT (5 5, 6 6)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", false},
		{"MULTIPOINT (2 1, 5 5)", "MULTIPOLYGON (((0 0, 2 0, 2 2, 0 2, 0 0)), ((4 4, 6 4, 6 6, 4 6, 4 4)))", true},
		{"LINESTRING (0 0, 2 2)", "LINESTRING (0 2, 2 0)", true},
		{"LINESTRING (0 0, 1 1)", "LINESTRING (2 2, 3 3)", false},
		{"POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", "POLYGON ((1 1, 3 1, 3 3, 1 3, 1 1))", true},
		{"POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))", "POLYGON ((1 0, 2 0, 2 1, 1 1, 1 0))", true},
		{"POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))", "POLYGON ((5 5, 6 5, 6 6, 5 6, 5 5))", false},
		// The empty geometry intersects nothing, not even itself.
		{"POINT EMPTY", "POINT EMPTY", false},
		{"POINT EMPTY", "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))", false},
		// Geometry collections distribute over components.
		{"GEOMETRYCOLLECTION (POINT (5 5), POINT (1 1))", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", true},
		{"GEOMETRYCOLLECTION (POINT (5 5))", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", false},
	}, Intersects)

	t.Run("symmetric", func(t *testing.T) {
		a := geo.MustParseGeometry("LINESTRING (1 1, 3 1)")
		b := geo.MustParseGeometry("POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))")
		ab, err := Intersects(a, b)
		require.NoError(t, err)
		ba, err := Intersects(b, a)
		require.NoError(t, err)
		require.Equal(t, ab, ba)
	})

	t.Run("errors if SRIDs mismatch", func(t *testing.T) {
		_, err := Intersects(mismatchingSRIDGeometryA, mismatchingSRIDGeometryB)
		requireMismatchingSRIDError(t, err)
	})
}

func TestDisjoint(t *testing.T) {
	runPredicateTests(t, []predicateTestCase{
		{"POINT (1 1)", "POINT (2 2)", true},
		{"POINT (1 1)", "POINT (1 1)", false},
		{"POINT EMPTY", "POINT EMPTY", true},
		{"POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))", "POLYGON ((5 5, 6 5, 6 6, 5 6, 5 5))", true},
	}, Disjoint)
}

func TestEquals(t *testing.T) {
	runPredicateTests(t, []predicateTestCase{
		{"POINT (1 1)", "POINT (1 1)", true},
		{"POINT (1 1)", "POINT (2 2)", false},
		// Topological equality ignores vertex order and ring starting point.
		{
			"POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			"POLYGON ((1 0, 1 1, 0 1, 0 0, 1 0))",
			true,
		},
		{
			"POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			"POLYGON ((0 0, 0 1, 1 1, 1 0, 0 0))",
			true,
		},
		{"LINESTRING (0 0, 2 2)", "LINESTRING (2 2, 1 1, 0 0)", true},
		{"LINESTRING (0 0, 2 2)", "LINESTRING (0 0, 1 1)", false},
		// Both empty compare equal by convention.
		{"POINT EMPTY", "POINT EMPTY", true},
		{"POINT EMPTY", "LINESTRING EMPTY", true},
		{"POINT EMPTY", "POINT (1 1)", false},
	}, Equals)
}

func TestTouches(t *testing.T) {
	runPredicateTests(t, []predicateTestCase{
		{"POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))", "POLYGON ((1 0, 2 0, 2 1, 1 1, 1 0))", true},
		{"POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))", "POLYGON ((1 1, 2 1, 2 2, 1 2, 1 1))", true},
		{"POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", "POLYGON ((1 1, 3 1, 3 3, 1 3, 1 1))", false},
		{"POINT (2 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", true},
		{"POINT (1 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", false},
		{"LINESTRING (0 0, 1 1)", "LINESTRING (1 1, 2 2)", true},
		{"LINESTRING (0 0, 2 2)", "LINESTRING (0 2, 2 0)", false},
	}, Touches)
}

func TestCrosses(t *testing.T) {
	runPredicateTests(t, []predicateTestCase{
		{"LINESTRING (0 0, 2 2)", "LINESTRING (0 2, 2 0)", true},
		{"LINESTRING (0 0, 1 1)", "LINESTRING (1 1, 2 2)", false},
		{"LINESTRING (1 1, 3 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", true},
		{"LINESTRING (0.5 0.5, 1.5 1.5)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", false},
		{"MULTIPOINT (1 1, 5 5)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", true},
		{"MULTIPOINT (1 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", false},
	}, Crosses)
}

func TestWithin(t *testing.T) {
	runPredicateTests(t, []predicateTestCase{
		{"POINT (1 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", true},
		{"POINT (2 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", false},
		{"POINT (5 5)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", false},
		{
			"POLYGON ((0.5 0.5, 1.5 0.5, 1.5 1.5, 0.5 1.5, 0.5 0.5))",
			"POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))",
			true,
		},
		{
			"POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))",
			"POLYGON ((0.5 0.5, 1.5 0.5, 1.5 1.5, 0.5 1.5, 0.5 0.5))",
			false,
		},
		{"LINESTRING (0.5 0.5, 1.5 1.5)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", true},
		{"MULTIPOINT (1 1, 2 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", true},
		{"MULTIPOINT (2 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", false},
	}, Within)
}

func TestContains(t *testing.T) {
	runPredicateTests(t, []predicateTestCase{
		{"POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", "POINT (1 1)", true},
		{"POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", "POINT (2 1)", false},
		{
			"POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))",
			"POLYGON ((0.5 0.5, 1.5 0.5, 1.5 1.5, 0.5 1.5, 0.5 0.5))",
			true,
		},
		{"POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 1 3, 3 3, 3 1, 1 1))", "POINT (2 2)", false},
	}, Contains)
}

func TestOverlaps(t *testing.T) {
	runPredicateTests(t, []predicateTestCase{
		{"POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", "POLYGON ((1 1, 3 1, 3 3, 1 3, 1 1))", true},
		{"POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))", "POLYGON ((1 0, 2 0, 2 1, 1 1, 1 0))", false},
		{
			"POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))",
			"POLYGON ((0.5 0.5, 1.5 0.5, 1.5 1.5, 0.5 1.5, 0.5 0.5))",
			false,
		},
		{"LINESTRING (0 0, 2 2)", "LINESTRING (1 1, 3 3)", true},
		{"LINESTRING (0 0, 2 2)", "LINESTRING (0 2, 2 0)", false},
		{"MULTIPOINT (0 0, 1 1)", "MULTIPOINT (1 1, 2 2)", true},
		{"MULTIPOINT (0 0, 1 1)", "MULTIPOINT (0 0, 1 1)", false},
	}, Overlaps)
}

func TestCoversCoveredBy(t *testing.T) {
	runPredicateTests(t, []predicateTestCase{
		{"POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", "POINT (2 1)", true},
		{"POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", "POINT (1 1)", true},
		{"POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", "POINT (5 5)", false},
		{"POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", "LINESTRING (2 0, 2 2)", true},
		{"LINESTRING (0 0, 2 2)", "POINT (1 1)", true},
	}, Covers)

	runPredicateTests(t, []predicateTestCase{
		{"POINT (2 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", true},
		{"POINT (5 5)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", false},
	}, CoveredBy)
}
