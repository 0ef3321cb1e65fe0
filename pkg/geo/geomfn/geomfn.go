// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

// Package geomfn contains functions that are used for geometry-based
// builtins: predicates, distance, overlay operations and related
// constructions, all computed on the planar cartesian plane.
package geomfn

import (
	"github.com/b4l/spatial/pkg/geo"
	"github.com/b4l/spatial/pkg/geo/geopb"
)

// resolveSRIDs checks the SRIDs of a binary operation's operands. An unknown
// (zero) SRID on one side is coerced to the other side's; two differing
// known SRIDs are an error.
func resolveSRIDs(a geo.Geometry, b geo.Geometry) (geopb.SRID, error) {
	aSRID, bSRID := a.SRID(), b.SRID()
	switch {
	case aSRID == bSRID:
		return aSRID, nil
	case aSRID == geopb.UnknownSRID:
		return bSRID, nil
	case bSRID == geopb.UnknownSRID:
		return aSRID, nil
	default:
		return 0, geo.NewMismatchingSRIDsError(a.SpatialObject(), b.SpatialObject())
	}
}
