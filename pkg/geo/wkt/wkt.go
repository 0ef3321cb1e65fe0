// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

// Package wkt implements a parser for Well Known Text geometry
// representations. Geometries are parsed into XY layout; Z and M ordinates
// present in the input are dropped.
package wkt

import "github.com/twpayne/go-geom"

// Unmarshal parses a WKT string into a geom.T geometry.
func Unmarshal(wkt string) (geom.T, error) {
	p := makeWktParse(wkt)
	g, err := p.parseGeometry()
	if err != nil {
		return nil, err
	}
	if tok := p.next(); tok.typ != tokEOF {
		return nil, p.syntaxError(tok, "unexpected input after complete geometry", "")
	}
	if p.lex.lastErr != nil {
		return nil, p.lex.lastErr
	}
	return g, nil
}
