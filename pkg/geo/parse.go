// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geo

import (
	"strconv"
	"strings"

	"github.com/b4l/spatial/pkg/geo/geopb"
	"github.com/b4l/spatial/pkg/geo/wkt"
	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/ewkbhex"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// DefaultSRIDOverwriteSetting determines whether to overwrite the SRID
// defined on an object with the default SRID passed to a parse function.
type DefaultSRIDOverwriteSetting bool

const (
	// DefaultSRIDShouldOverwrite implies the parsing function should overwrite
	// the SRID with the default SRID.
	DefaultSRIDShouldOverwrite DefaultSRIDOverwriteSetting = true
	// DefaultSRIDIsHint implies that the default SRID is only a hint
	// and the SRID decoded from the representation itself should be used.
	DefaultSRIDIsHint DefaultSRIDOverwriteSetting = false
)

// ParseGeometry parses a Geometry from a given text. The text is interpreted
// using the first characters as a heuristic: hex-encoded (E)WKB, binary
// (E)WKB, EWKT with a SRID= prefix, or plain WKT.
func ParseGeometry(str string) (Geometry, error) {
	if len(str) == 0 {
		return Geometry{}, NewParseError(errors.New("parsing empty string to geo type"))
	}
	switch {
	case str[0] == '0':
		return ParseGeometryFromEWKBHex(str)
	case str[0] == 0x00 || str[0] == 0x01:
		return ParseGeometryFromEWKBUnsafe(geopb.EWKB(str))
	default:
		return ParseGeometryFromEWKT(geopb.EWKT(str), geopb.DefaultGeometrySRID, DefaultSRIDIsHint)
	}
}

// MustParseGeometry behaves as ParseGeometry, but panics if there is an
// error.
func MustParseGeometry(str string) Geometry {
	g, err := ParseGeometry(str)
	if err != nil {
		panic(err)
	}
	return g
}

// ParseGeometryFromEWKT parses a Geometry from an EWKT string. A leading
// "SRID=n;" prefix is honored unless defaultSRIDOverwriteSetting requires
// the default to win.
func ParseGeometryFromEWKT(
	ewkt geopb.EWKT, srid geopb.SRID, defaultSRIDOverwriteSetting DefaultSRIDOverwriteSetting,
) (Geometry, error) {
	wktStr, parsedSRID, err := splitEWKTSRID(string(ewkt))
	if err != nil {
		return Geometry{}, err
	}
	if defaultSRIDOverwriteSetting == DefaultSRIDShouldOverwrite || parsedSRID == geopb.UnknownSRID {
		parsedSRID = srid
	}
	t, err := wkt.Unmarshal(wktStr)
	if err != nil {
		return Geometry{}, NewParseError(err)
	}
	if parsedSRID != geopb.UnknownSRID {
		if err := applySRID(t, parsedSRID); err != nil {
			return Geometry{}, err
		}
	}
	return MakeGeometryFromGeomT(t)
}

// splitEWKTSRID splits off the optional SRID=n; prefix of an EWKT input.
func splitEWKTSRID(str string) (wktStr string, srid geopb.SRID, err error) {
	trimmed := strings.TrimSpace(str)
	if len(trimmed) < 5 || !strings.EqualFold(trimmed[:5], "srid=") {
		return trimmed, geopb.UnknownSRID, nil
	}
	sep := strings.IndexByte(trimmed, ';')
	if sep == -1 {
		return "", 0, NewParseError(errors.Newf("EWKT is missing a ';' after the SRID prefix"))
	}
	sridVal, err := strconv.ParseInt(strings.TrimSpace(trimmed[5:sep]), 10, 32)
	if err != nil {
		return "", 0, NewParseError(errors.Wrapf(err, "error parsing SRID"))
	}
	if sridVal < 0 {
		return "", 0, NewParseError(errors.Newf("SRID must be non-negative, got %d", sridVal))
	}
	return trimmed[sep+1:], geopb.SRID(sridVal), nil
}

// ParseGeometryFromEWKB parses the EWKB into a Geometry.
func ParseGeometryFromEWKB(b geopb.EWKB) (Geometry, error) {
	t, err := ewkb.Unmarshal(b)
	if err != nil {
		return Geometry{}, NewParseError(err)
	}
	return MakeGeometryFromGeomT(t)
}

// ParseGeometryFromEWKBUnsafe returns a new Geometry from an EWKB, without
// any SRID checks. You should only do this if you trust the EWKB is setup
// correctly. You must use ParseGeometryFromEWKB to parse user input.
func ParseGeometryFromEWKBUnsafe(b geopb.EWKB) (Geometry, error) {
	return ParseGeometryFromEWKB(b)
}

// ParseGeometryFromEWKBHex parses the hex-encoded (E)WKB into a Geometry.
func ParseGeometryFromEWKBHex(str string) (Geometry, error) {
	t, err := ewkbhex.Decode(str)
	if err != nil {
		return Geometry{}, NewParseError(err)
	}
	return MakeGeometryFromGeomT(t)
}

// ParseGeometryFromWKB parses the WKB into a Geometry, applying the given
// SRID. Any SRID embedded in the bytes (EWKB input) takes precedence.
func ParseGeometryFromWKB(b geopb.WKB, srid geopb.SRID) (Geometry, error) {
	t, err := wkb.Unmarshal(b)
	if err != nil {
		// The bytes may be EWKB; try that before giving up.
		et, eerr := ewkb.Unmarshal(b)
		if eerr != nil {
			return Geometry{}, NewParseError(err)
		}
		return MakeGeometryFromGeomT(et)
	}
	if srid != geopb.UnknownSRID {
		if err := applySRID(t, srid); err != nil {
			return Geometry{}, err
		}
	}
	return MakeGeometryFromGeomT(t)
}
