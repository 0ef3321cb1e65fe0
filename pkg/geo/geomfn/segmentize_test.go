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

func TestSegmentize(t *testing.T) {
	testCases := []struct {
		desc      string
		input     string
		maxLength float64
		expected  string
	}{
		{
			desc:      "segment split in two",
			input:     "LINESTRING (0 0, 10 0)",
			maxLength: 5,
			expected:  "LINESTRING (0 0, 5 0, 10 0)",
		},
		{
			desc:      "pieces are equal length",
			input:     "LINESTRING (0 0, 10 0)",
			maxLength: 3,
			expected:  "LINESTRING (0 0, 2.5 0, 5 0, 7.5 0, 10 0)",
		},
		{
			desc:      "diagonal segment",
			input:     "LINESTRING (0 0, 3 4)",
			maxLength: 2.5,
			expected:  "LINESTRING (0 0, 1.5 2, 3 4)",
		},
		{
			desc:      "short segments are untouched",
			input:     "LINESTRING (0 0, 1 0, 1 1)",
			maxLength: 10,
			expected:  "LINESTRING (0 0, 1 0, 1 1)",
		},
		{
			desc:      "polygon rings are segmentized",
			input:     "POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0))",
			maxLength: 2,
			expected:  "POLYGON ((0 0, 2 0, 4 0, 4 2, 4 4, 2 4, 0 4, 0 2, 0 0))",
		},
		{
			desc:      "multilinestring",
			input:     "MULTILINESTRING ((0 0, 2 0), (0 1, 4 1))",
			maxLength: 2,
			expected:  "MULTILINESTRING ((0 0, 2 0), (0 1, 2 1, 4 1))",
		},
		{
			desc:      "geometrycollection",
			input:     "GEOMETRYCOLLECTION (POINT (1 1), LINESTRING (0 0, 10 0))",
			maxLength: 5,
			expected:  "GEOMETRYCOLLECTION (POINT (1 1), LINESTRING (0 0, 5 0, 10 0))",
		},
		{
			desc:      "points pass through",
			input:     "MULTIPOINT (0 0, 10 0)",
			maxLength: 1,
			expected:  "MULTIPOINT (0 0, 10 0)",
		},
		{
			desc:      "srid is preserved",
			input:     "SRID=4326;LINESTRING (0 0, 10 0)",
			maxLength: 5,
			expected:  "SRID=4326;LINESTRING (0 0, 5 0, 10 0)",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			ret, err := Segmentize(geo.MustParseGeometry(tc.input), tc.maxLength)
			require.NoError(t, err)
			requireGeomEqual(t, geo.MustParseGeometry(tc.expected), ret)
		})
	}

	t.Run("non-finite max length returns the input", func(t *testing.T) {
		in := geo.MustParseGeometry("LINESTRING (0 0, 10 0)")
		for _, maxLength := range []float64{math.NaN(), math.Inf(1)} {
			ret, err := Segmentize(in, maxLength)
			require.NoError(t, err)
			requireGeomEqual(t, in, ret)
		}
	})

	t.Run("non-positive max length errors", func(t *testing.T) {
		in := geo.MustParseGeometry("LINESTRING (0 0, 10 0)")
		for _, maxLength := range []float64{0, -1} {
			_, err := Segmentize(in, maxLength)
			require.Error(t, err)
			require.Contains(t, err.Error(), "maximum segment length must be positive")
		}
	})
}
