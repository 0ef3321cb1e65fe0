// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"testing"

	"github.com/b4l/spatial/pkg/geo"
	"github.com/stretchr/testify/require"
)

func TestMakePolygon(t *testing.T) {
	testCases := []struct {
		desc     string
		outer    string
		interior []string
		expected string
	}{
		{
			desc:     "closed shell",
			outer:    "LINESTRING (0 0, 4 0, 4 4, 0 4, 0 0)",
			expected: "POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0))",
		},
		{
			desc:     "shell with one hole",
			outer:    "LINESTRING (0 0, 4 0, 4 4, 0 4, 0 0)",
			interior: []string{"LINESTRING (1 1, 1 3, 3 3, 3 1, 1 1)"},
			expected: "POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 1 3, 3 3, 3 1, 1 1))",
		},
		{
			desc:  "shell with two holes",
			outer: "LINESTRING (0 0, 10 0, 10 10, 0 10, 0 0)",
			interior: []string{
				"LINESTRING (1 1, 1 2, 2 2, 2 1, 1 1)",
				"LINESTRING (5 5, 5 7, 7 7, 7 5, 5 5)",
			},
			expected: "POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0), " +
				"(1 1, 1 2, 2 2, 2 1, 1 1), (5 5, 5 7, 7 7, 7 5, 5 5))",
		},
		{
			desc:     "srid is taken from the shell",
			outer:    "SRID=4326;LINESTRING (0 0, 4 0, 4 4, 0 4, 0 0)",
			expected: "SRID=4326;POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0))",
		},
		{
			desc:     "srid-less hole inherits the shell srid",
			outer:    "SRID=4326;LINESTRING (0 0, 4 0, 4 4, 0 4, 0 0)",
			interior: []string{"LINESTRING (1 1, 1 3, 3 3, 3 1, 1 1)"},
			expected: "SRID=4326;POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), " +
				"(1 1, 1 3, 3 3, 3 1, 1 1))",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			interior := make([]geo.Geometry, len(tc.interior))
			for i, wkt := range tc.interior {
				interior[i] = geo.MustParseGeometry(wkt)
			}
			ret, err := MakePolygon(geo.MustParseGeometry(tc.outer), interior...)
			require.NoError(t, err)
			requireGeomEqual(t, geo.MustParseGeometry(tc.expected), ret)
		})
	}

	errorCases := []struct {
		desc     string
		outer    string
		interior []string
		errMsg   string
	}{
		{
			desc:   "shell is not a linestring",
			outer:  "POINT (1 1)",
			errMsg: "argument must be LINESTRING geometries",
		},
		{
			desc:     "hole is not a linestring",
			outer:    "LINESTRING (0 0, 4 0, 4 4, 0 4, 0 0)",
			interior: []string{"POLYGON ((1 1, 1 3, 3 3, 3 1, 1 1))"},
			errMsg:   "argument must be LINESTRING geometries",
		},
		{
			desc:   "shell is not closed",
			outer:  "LINESTRING (0 0, 4 0, 4 4, 0 4)",
			errMsg: "shell must be a closed linestring",
		},
		{
			desc:   "shell has too few points",
			outer:  "LINESTRING (0 0, 4 0, 0 0)",
			errMsg: "shell must have at least 4 points",
		},
	}
	for _, tc := range errorCases {
		t.Run(tc.desc, func(t *testing.T) {
			interior := make([]geo.Geometry, len(tc.interior))
			for i, wkt := range tc.interior {
				interior[i] = geo.MustParseGeometry(wkt)
			}
			_, err := MakePolygon(geo.MustParseGeometry(tc.outer), interior...)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errMsg)
		})
	}

	t.Run("empty shell", func(t *testing.T) {
		_, err := MakePolygon(geo.MustParseGeometry("LINESTRING EMPTY"))
		requireEmptyGeometryError(t, err)
	})

	t.Run("mismatching hole srid", func(t *testing.T) {
		_, err := MakePolygon(
			geo.MustParseGeometry("SRID=4326;LINESTRING (0 0, 4 0, 4 4, 0 4, 0 0)"),
			geo.MustParseGeometry("SRID=3857;LINESTRING (1 1, 1 3, 3 3, 3 1, 1 1)"),
		)
		requireMismatchingSRIDError(t, err)
	})
}
