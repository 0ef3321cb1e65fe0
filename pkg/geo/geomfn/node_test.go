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

func TestNode(t *testing.T) {
	testCases := []struct {
		desc     string
		input    string
		expected string
	}{
		{
			desc:  "crossing lines split at the crossing",
			input: "MULTILINESTRING ((0 0, 2 2), (0 2, 2 0))",
			expected: "MULTILINESTRING ((0 0, 1 1), (1 1, 2 2), " +
				"(0 2, 1 1), (1 1, 2 0))",
		},
		{
			desc:     "self-intersecting line",
			input:    "LINESTRING (0 0, 2 2, 2 0, 0 2)",
			expected: "MULTILINESTRING ((0 0, 1 1), (1 1, 2 2, 2 0, 1 1), (1 1, 0 2))",
		},
		{
			desc:     "endpoint touching an interior splits the touched line",
			input:    "MULTILINESTRING ((0 0, 2 0), (1 0, 1 1))",
			expected: "MULTILINESTRING ((0 0, 1 0), (1 0, 2 0), (1 0, 1 1))",
		},
		{
			desc:     "collinear overlap is emitted once",
			input:    "MULTILINESTRING ((0 0, 2 0), (1 0, 3 0))",
			expected: "MULTILINESTRING ((0 0, 1 0), (1 0, 2 0), (2 0, 3 0))",
		},
		{
			desc:     "line without intersections",
			input:    "LINESTRING (0 0, 1 1)",
			expected: "MULTILINESTRING ((0 0, 1 1))",
		},
		{
			desc:     "shared vertex of one line is not a node",
			input:    "LINESTRING (0 0, 1 0, 1 1)",
			expected: "MULTILINESTRING ((0 0, 1 0, 1 1))",
		},
		{
			desc:     "srid is preserved",
			input:    "SRID=4326;MULTILINESTRING ((0 0, 2 2), (0 2, 2 0))",
			expected: "SRID=4326;MULTILINESTRING ((0 0, 1 1), (1 1, 2 2), (0 2, 1 1), (1 1, 2 0))",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			ret, err := Node(geo.MustParseGeometry(tc.input))
			require.NoError(t, err)
			requireGeomEqual(t, geo.MustParseGeometry(tc.expected), ret)
		})
	}

	t.Run("empty input", func(t *testing.T) {
		ret, err := Node(geo.MustParseGeometry("SRID=4326;LINESTRING EMPTY"))
		require.NoError(t, err)
		requireGeomEqual(t, geo.MustParseGeometry("SRID=4326;GEOMETRYCOLLECTION EMPTY"), ret)
	})

	t.Run("non-line input is unsupported", func(t *testing.T) {
		for _, wkt := range []string{"POINT (1 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))"} {
			_, err := Node(geo.MustParseGeometry(wkt))
			require.Error(t, err)
			require.True(t, errors.Is(err, geo.ErrUnsupportedOperation))
		}
	})
}
