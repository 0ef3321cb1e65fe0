// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package wkt

import (
	"github.com/twpayne/go-geom"
)

// wktParse is a recursive-descent parser over the token stream produced by
// wktLex. All geometries are produced with the XY layout; Z/M ordinates in
// the input are consumed and dropped.
type wktParse struct {
	lex    *wktLex
	tok    token
	peeked bool
}

func makeWktParse(line string) *wktParse {
	return &wktParse{lex: makeWktLex(line)}
}

func (p *wktParse) next() token {
	if p.peeked {
		p.peeked = false
		return p.tok
	}
	return p.lex.Lex()
}

func (p *wktParse) peek() token {
	if !p.peeked {
		p.tok = p.lex.Lex()
		p.peeked = true
	}
	return p.tok
}

func (p *wktParse) syntaxError(tok token, problem string, hint string) error {
	// A lex error takes precedence over whatever the parser inferred from the
	// EOF token the lexer substituted.
	if p.lex.lastErr != nil {
		return p.lex.lastErr
	}
	return &ParseError{problem: "syntax error: " + problem, pos: tok.pos, str: p.lex.line, hint: hint}
}

func (p *wktParse) expect(typ tokType, what string) (token, error) {
	tok := p.next()
	if tok.typ != typ {
		return tok, p.syntaxError(tok, "expected "+what, "")
	}
	return tok, nil
}

func (p *wktParse) parseGeometry() (geom.T, error) {
	tok := p.next()
	switch tok.typ {
	case tokPoint:
		return p.parsePoint(tok.dim)
	case tokLineString:
		return p.parseLineString(tok.dim)
	case tokPolygon:
		return p.parsePolygon(tok.dim)
	case tokMultiPoint:
		return p.parseMultiPoint(tok.dim)
	case tokMultiLineString:
		return p.parseMultiLineString(tok.dim)
	case tokMultiPolygon:
		return p.parseMultiPolygon(tok.dim)
	case tokGeometryCollection:
		return p.parseGeometryCollection()
	default:
		return nil, p.syntaxError(tok, "expected geometry type keyword", "")
	}
}

// parseCoord reads one coordinate: X and Y, plus as many extra ordinates as
// the dimension suffix declares. Unsuffixed geometries may still carry one or
// two extra ordinates (bare XYZ/XYZM input); those are dropped too.
func (p *wktParse) parseCoord(dim dimSuffix) (x, y float64, err error) {
	xTok, err := p.expect(tokNum, "number")
	if err != nil {
		return 0, 0, err
	}
	yTok, err := p.expect(tokNum, "number")
	if err != nil {
		return 0, 0, err
	}
	extra := dim.extraOrdinates()
	if dim == dimXY {
		extra = 2
	}
	for i := 0; i < extra && p.peek().typ == tokNum; i++ {
		p.next()
	}
	if tok := p.peek(); tok.typ == tokNum {
		return 0, 0, p.syntaxError(tok, "too many ordinates in coordinate", "")
	}
	return xTok.num, yTok.num, nil
}

// parseCoordSeq reads a parenthesized comma-separated coordinate sequence,
// returning interleaved XY values.
func (p *wktParse) parseCoordSeq(dim dimSuffix) ([]float64, error) {
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}
	var flat []float64
	for {
		x, y, err := p.parseCoord(dim)
		if err != nil {
			return nil, err
		}
		flat = append(flat, x, y)
		tok := p.next()
		switch tok.typ {
		case tokComma:
			continue
		case tokRParen:
			return flat, nil
		default:
			return nil, p.syntaxError(tok, "expected ',' or ')'", "")
		}
	}
}

func (p *wktParse) parsePoint(dim dimSuffix) (geom.T, error) {
	if p.peek().typ == tokEmpty {
		p.next()
		return geom.NewPointEmpty(geom.XY), nil
	}
	if _, err := p.expect(tokLParen, "'(' or EMPTY"); err != nil {
		return nil, err
	}
	x, y, err := p.parseCoord(dim)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	return geom.NewPointFlat(geom.XY, []float64{x, y}), nil
}

func (p *wktParse) parseLineString(dim dimSuffix) (geom.T, error) {
	if p.peek().typ == tokEmpty {
		p.next()
		return geom.NewLineString(geom.XY), nil
	}
	tok := p.peek()
	flat, err := p.parseCoordSeq(dim)
	if err != nil {
		return nil, err
	}
	if len(flat) < 4 {
		return nil, p.syntaxError(tok, "line string must contain at least 2 points", "")
	}
	return geom.NewLineStringFlat(geom.XY, flat), nil
}

// parsePolygonBody parses the ring list of a polygon, without the leading
// keyword: ((x y, ...), (x y, ...)).
func (p *wktParse) parsePolygonBody(dim dimSuffix) (*geom.Polygon, error) {
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}
	var flat []float64
	var ends []int
	for {
		ringFlat, err := p.parseCoordSeq(dim)
		if err != nil {
			return nil, err
		}
		flat = append(flat, ringFlat...)
		ends = append(ends, len(flat))
		tok := p.next()
		switch tok.typ {
		case tokComma:
			continue
		case tokRParen:
			return geom.NewPolygonFlat(geom.XY, flat, ends), nil
		default:
			return nil, p.syntaxError(tok, "expected ',' or ')'", "")
		}
	}
}

func (p *wktParse) parsePolygon(dim dimSuffix) (geom.T, error) {
	if p.peek().typ == tokEmpty {
		p.next()
		return geom.NewPolygon(geom.XY), nil
	}
	return p.parsePolygonBody(dim)
}

func (p *wktParse) parseMultiPoint(dim dimSuffix) (geom.T, error) {
	if p.peek().typ == tokEmpty {
		p.next()
		return geom.NewMultiPoint(geom.XY), nil
	}
	if _, err := p.expect(tokLParen, "'(' or EMPTY"); err != nil {
		return nil, err
	}
	var flat []float64
	for {
		// Both MULTIPOINT (1 2, 3 4) and MULTIPOINT ((1 2), (3 4)) are valid.
		var x, y float64
		var err error
		if p.peek().typ == tokLParen {
			p.next()
			x, y, err = p.parseCoord(dim)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRParen, "')'"); err != nil {
				return nil, err
			}
		} else {
			x, y, err = p.parseCoord(dim)
			if err != nil {
				return nil, err
			}
		}
		flat = append(flat, x, y)
		tok := p.next()
		switch tok.typ {
		case tokComma:
			continue
		case tokRParen:
			return geom.NewMultiPointFlat(geom.XY, flat), nil
		default:
			return nil, p.syntaxError(tok, "expected ',' or ')'", "")
		}
	}
}

func (p *wktParse) parseMultiLineString(dim dimSuffix) (geom.T, error) {
	if p.peek().typ == tokEmpty {
		p.next()
		return geom.NewMultiLineString(geom.XY), nil
	}
	if _, err := p.expect(tokLParen, "'(' or EMPTY"); err != nil {
		return nil, err
	}
	ret := geom.NewMultiLineString(geom.XY)
	for {
		var ls *geom.LineString
		if p.peek().typ == tokEmpty {
			p.next()
			ls = geom.NewLineString(geom.XY)
		} else {
			tok := p.peek()
			flat, err := p.parseCoordSeq(dim)
			if err != nil {
				return nil, err
			}
			if len(flat) < 4 {
				return nil, p.syntaxError(tok, "line string must contain at least 2 points", "")
			}
			ls = geom.NewLineStringFlat(geom.XY, flat)
		}
		if err := ret.Push(ls); err != nil {
			return nil, err
		}
		tok := p.next()
		switch tok.typ {
		case tokComma:
			continue
		case tokRParen:
			return ret, nil
		default:
			return nil, p.syntaxError(tok, "expected ',' or ')'", "")
		}
	}
}

func (p *wktParse) parseMultiPolygon(dim dimSuffix) (geom.T, error) {
	if p.peek().typ == tokEmpty {
		p.next()
		return geom.NewMultiPolygon(geom.XY), nil
	}
	if _, err := p.expect(tokLParen, "'(' or EMPTY"); err != nil {
		return nil, err
	}
	ret := geom.NewMultiPolygon(geom.XY)
	for {
		var poly *geom.Polygon
		if p.peek().typ == tokEmpty {
			p.next()
			poly = geom.NewPolygon(geom.XY)
		} else {
			var err error
			poly, err = p.parsePolygonBody(dim)
			if err != nil {
				return nil, err
			}
		}
		if err := ret.Push(poly); err != nil {
			return nil, err
		}
		tok := p.next()
		switch tok.typ {
		case tokComma:
			continue
		case tokRParen:
			return ret, nil
		default:
			return nil, p.syntaxError(tok, "expected ',' or ')'", "")
		}
	}
}

func (p *wktParse) parseGeometryCollection() (geom.T, error) {
	ret := geom.NewGeometryCollection()
	if p.peek().typ == tokEmpty {
		p.next()
		return ret, nil
	}
	if _, err := p.expect(tokLParen, "'(' or EMPTY"); err != nil {
		return nil, err
	}
	for {
		g, err := p.parseGeometry()
		if err != nil {
			return nil, err
		}
		if err := ret.Push(g); err != nil {
			return nil, err
		}
		tok := p.next()
		switch tok.typ {
		case tokComma:
			continue
		case tokRParen:
			return ret, nil
		default:
			return nil, p.syntaxError(tok, "expected ',' or ')'", "")
		}
	}
}
