// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geomfn

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/b4l/spatial/pkg/geo"
	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestRelate(t *testing.T) {
	testCases := []struct {
		a        string
		b        string
		expected string
	}{
		{"POINT (1 1)", "POINT (1 1)", "0FFFFFFF2"},
		{"POINT (1 1)", "POINT (2 2)", "FF0FFF0F2"},
		{"POINT (1 1)", "LINESTRING (0 0, 2 2)", "0FFFFF102"},
		{"POINT (0 0)", "LINESTRING (0 0, 2 2)", "F0FFFF102"},
		{"POINT (5 5)", "LINESTRING (0 0, 2 2)", "FF0FFF102"},
		{"POINT (1 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", "0FFFFF212"},
		{"POINT (2 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", "F0FFFF212"},
		{"POINT (5 5)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", "FF0FFF212"},
		{"LINESTRING (0 0, 2 2)", "LINESTRING (0 2, 2 0)", "0F1FF0102"},
		{"LINESTRING (0 0, 2 2)", "LINESTRING (1 1, 3 3)", "1010F0102"},
		{"LINESTRING (0 0, 1 1)", "LINESTRING (1 1, 2 2)", "FF1F00102"},
		{"LINESTRING (0 0, 1 1)", "LINESTRING (0 0, 1 1)", "1FFF0FFF2"},
		{"LINESTRING (1 1, 3 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", "1010F0212"},
		{"LINESTRING (0.5 0.5, 1.5 1.5)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", "1FF0FF212"},
		{"LINESTRING (3 3, 4 4)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", "FF1FF0212"},
		{
			"POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))",
			"POLYGON ((0.5 0.5, 1.5 0.5, 1.5 1.5, 0.5 1.5, 0.5 0.5))",
			"212FF1FF2",
		},
		{
			"POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))",
			"POLYGON ((1 1, 3 1, 3 3, 1 3, 1 1))",
			"212101212",
		},
		{
			"POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			"POLYGON ((1 0, 2 0, 2 1, 1 1, 1 0))",
			"FF2F11212",
		},
		{
			"POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			"POLYGON ((1 1, 2 1, 2 2, 1 2, 1 1))",
			"FF2F01212",
		},
		{
			"POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			"POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			"2FFF1FFF2",
		},
		// Empty operands: everything is in the other's exterior.
		{"POINT EMPTY", "POINT (1 1)", "FFFFFF0F2"},
		{"POINT (1 1)", "POINT EMPTY", "FF0FFFFF2"},
		{"POLYGON EMPTY", "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))", "FFFFFF212"},
	}

	for i, tc := range testCases {
		t.Run(fmt.Sprintf("tc:%d", i), func(t *testing.T) {
			ret, err := Relate(geo.MustParseGeometry(tc.a), geo.MustParseGeometry(tc.b))
			require.NoError(t, err)
			require.Equal(t, tc.expected, ret)

			// The reversed arguments give the transposed matrix.
			reversed, err := Relate(geo.MustParseGeometry(tc.b), geo.MustParseGeometry(tc.a))
			require.NoError(t, err)
			require.Equal(t, transposeRelation(tc.expected), reversed)
		})
	}

	t.Run("errors on geometry collections", func(t *testing.T) {
		_, err := Relate(geo.MustParseGeometry("GEOMETRYCOLLECTION (POINT (1 1))"), leftRect)
		require.True(t, errors.Is(err, geo.ErrUnsupportedOperation))
	})

	t.Run("errors if SRIDs mismatch", func(t *testing.T) {
		_, err := Relate(mismatchingSRIDGeometryA, mismatchingSRIDGeometryB)
		requireMismatchingSRIDError(t, err)
	})
}

func transposeRelation(relation string) string {
	b := []byte(relation)
	transposed := []byte{
		b[0], b[3], b[6],
		b[1], b[4], b[7],
		b[2], b[5], b[8],
	}
	return string(transposed)
}

func TestRelatePattern(t *testing.T) {
	testCases := []struct {
		a        string
		b        string
		pattern  string
		expected bool
	}{
		{"POINT (1 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", "T*F**F***", true},
		{"POINT (1 1)", "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))", "FF*FF****", false},
		{"LINESTRING (0 0, 2 2)", "LINESTRING (0 2, 2 0)", "0********", true},
	}
	for i, tc := range testCases {
		t.Run(fmt.Sprintf("tc:%d", i), func(t *testing.T) {
			ret, err := RelatePattern(
				geo.MustParseGeometry(tc.a), geo.MustParseGeometry(tc.b), tc.pattern)
			require.NoError(t, err)
			require.Equal(t, tc.expected, ret)
		})
	}
}

func TestMatchesDE9IM(t *testing.T) {
	testCases := []struct {
		str           string
		pattern       string
		expected      bool
		expectedError string
	}{
		{"", "T**FF*FF*", false, `relation "" should be of length 9`},
		{"TTTTTTTTT", "T**FF*FF*T", false, `pattern "T**FF*FF*T" should be of length 9`},
		{"000FFF000", "cTTFfFTTT", false, `unrecognized pattern character: c`},
		{"120FFF021", "TTTFfFTTT", true, ""},
		{"02FFFF000", "T**FfFTTT", true, ""},
		{"020F1F010", "TTTFFFTtT", false, ""},
		{"020FFF0f0", "TTTFFFTtT", false, ""},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s has pattern %s", tc.str, tc.pattern), func(t *testing.T) {
			ret, err := MatchesDE9IM(tc.str, tc.pattern)
			if tc.expectedError == "" {
				require.NoError(t, err)
				require.Equal(t, tc.expected, ret)
			} else {
				require.EqualError(t, err, tc.expectedError)
			}
		})
	}
}

func TestRelateDataDriven(t *testing.T) {
	datadriven.RunTest(t, filepath.Join("testdata", "relate"), func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "relate":
			lines := strings.Split(strings.TrimSpace(d.Input), "\n")
			require.Len(t, lines, 2)
			a := geo.MustParseGeometry(strings.TrimSpace(lines[0]))
			b := geo.MustParseGeometry(strings.TrimSpace(lines[1]))
			ret, err := Relate(a, b)
			if err != nil {
				return fmt.Sprintf("error: %v", err)
			}
			return ret
		default:
			t.Fatalf("unknown command: %s", d.Cmd)
			return ""
		}
	})
}
