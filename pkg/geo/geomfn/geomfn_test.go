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

// Shared fixtures for predicate and overlay tests.
var (
	leftRect      = geo.MustParseGeometry("POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))")
	rightRect     = geo.MustParseGeometry("POLYGON ((1 0, 2 0, 2 1, 1 1, 1 0))")
	unitSquare    = geo.MustParseGeometry("POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))")
	offsetSquare  = geo.MustParseGeometry("POLYGON ((1 1, 3 1, 3 3, 1 3, 1 1))")
	squareWithHole = geo.MustParseGeometry(
		"POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 1 3, 3 3, 3 1, 1 1))")

	mismatchingSRIDGeometryA = geo.MustParseGeometry("SRID=4326;POINT (1 1)")
	mismatchingSRIDGeometryB = geo.MustParseGeometry("SRID=3857;POINT (1 1)")
)

func requireMismatchingSRIDError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, geo.ErrMixedSRIDs), "expected mixed SRID error, got %v", err)
}

func requireEmptyGeometryError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, geo.ErrEmptyGeometry), "expected empty geometry error, got %v", err)
}

func requireGeomEqual(t *testing.T, expected, got geo.Geometry) {
	t.Helper()
	require.Equal(t, expected.SRID(), got.SRID())
	require.Equalf(t, mustAsText(t, expected), mustAsText(t, got),
		"expected %s, got %s", mustAsText(t, expected), mustAsText(t, got))
}

func mustAsText(t *testing.T, g geo.Geometry) string {
	t.Helper()
	ret, err := geo.SpatialObjectToWKT(g.SpatialObject(), -1)
	require.NoError(t, err)
	return string(ret)
}
