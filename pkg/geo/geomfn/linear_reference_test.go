// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"testing"

	"github.com/b4l/spatial/pkg/geo"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestLineInterpolatePoint(t *testing.T) {
	testCases := []struct {
		desc     string
		input    string
		fraction float64
		expected string
	}{
		{
			desc:     "midpoint",
			input:    "LINESTRING (0 0, 10 0)",
			fraction: 0.5,
			expected: "POINT (5 0)",
		},
		{
			desc:     "start",
			input:    "LINESTRING (0 0, 10 0)",
			fraction: 0,
			expected: "POINT (0 0)",
		},
		{
			desc:     "end",
			input:    "LINESTRING (0 0, 10 0)",
			fraction: 1,
			expected: "POINT (10 0)",
		},
		{
			desc:     "interpolation crosses a vertex",
			input:    "LINESTRING (0 0, 1 0, 1 1)",
			fraction: 0.75,
			expected: "POINT (1 0.5)",
		},
		{
			desc:     "zero-length line returns its start",
			input:    "LINESTRING (2 3, 2 3)",
			fraction: 0.5,
			expected: "POINT (2 3)",
		},
		{
			desc:     "srid is preserved",
			input:    "SRID=4326;LINESTRING (0 0, 10 0)",
			fraction: 0.5,
			expected: "SRID=4326;POINT (5 0)",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			ret, err := LineInterpolatePoint(geo.MustParseGeometry(tc.input), tc.fraction)
			require.NoError(t, err)
			requireGeomEqual(t, geo.MustParseGeometry(tc.expected), ret)
		})
	}

	t.Run("fraction out of range", func(t *testing.T) {
		for _, fraction := range []float64{-0.1, 1.1} {
			_, err := LineInterpolatePoint(
				geo.MustParseGeometry("LINESTRING (0 0, 10 0)"), fraction)
			require.Error(t, err)
			require.Contains(t, err.Error(), "should be within [0 1] range")
		}
	})

	t.Run("non-linestring is unsupported", func(t *testing.T) {
		_, err := LineInterpolatePoint(unitSquare, 0.5)
		require.Error(t, err)
		require.True(t, errors.Is(err, geo.ErrUnsupportedOperation))
	})

	t.Run("empty linestring", func(t *testing.T) {
		_, err := LineInterpolatePoint(geo.MustParseGeometry("LINESTRING EMPTY"), 0.5)
		requireEmptyGeometryError(t, err)
	})
}

func TestLineInterpolatePoints(t *testing.T) {
	testCases := []struct {
		desc     string
		input    string
		fraction float64
		repeat   bool
		expected string
	}{
		{
			desc:     "repeat at quarters includes the endpoint",
			input:    "LINESTRING (0 0, 10 0)",
			fraction: 0.25,
			repeat:   true,
			expected: "MULTIPOINT (2.5 0, 5 0, 7.5 0, 10 0)",
		},
		{
			desc:     "repeat at halves",
			input:    "LINESTRING (0 0, 10 0)",
			fraction: 0.5,
			repeat:   true,
			expected: "MULTIPOINT (5 0, 10 0)",
		},
		{
			desc:     "repeat with zero fraction degrades to a single point",
			input:    "LINESTRING (0 0, 10 0)",
			fraction: 0,
			repeat:   true,
			expected: "POINT (0 0)",
		},
		{
			desc:     "no repeat behaves as a single interpolation",
			input:    "LINESTRING (0 0, 10 0)",
			fraction: 0.25,
			repeat:   false,
			expected: "POINT (2.5 0)",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			ret, err := LineInterpolatePoints(
				geo.MustParseGeometry(tc.input), tc.fraction, tc.repeat)
			require.NoError(t, err)
			requireGeomEqual(t, geo.MustParseGeometry(tc.expected), ret)
		})
	}
}
