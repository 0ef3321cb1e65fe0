// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package wkt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// LexError is an error that occurs during lexing.
type LexError struct {
	expectedTokType string
	pos             int
	str             string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error: invalid %s at pos %d\n%s\n%s^",
		e.expectedTokType, e.pos, e.str, strings.Repeat(" ", e.pos))
}

// Position returns the byte offset in the input at which lexing failed.
func (e *LexError) Position() int { return e.pos }

// ParseError is an error that occurs during parsing, which happens after
// lexing.
type ParseError struct {
	problem string
	pos     int
	str     string
	hint    string
}

func (e *ParseError) Error() string {
	err := fmt.Sprintf("%s at pos %d\n%s\n%s^", e.problem, e.pos, e.str, strings.Repeat(" ", e.pos))
	if e.hint != "" {
		err += fmt.Sprintf("\nHINT: %s", e.hint)
	}
	return err
}

// Position returns the byte offset in the input at which parsing failed.
func (e *ParseError) Position() int { return e.pos }

type tokType int

const (
	tokEOF tokType = iota
	tokLParen
	tokRParen
	tokComma
	tokNum
	tokEmpty
	tokPoint
	tokLineString
	tokPolygon
	tokMultiPoint
	tokMultiLineString
	tokMultiPolygon
	tokGeometryCollection
)

// dimSuffix records an optional Z/M/ZM suffix on a geometry keyword. The
// kernel is 2D; the suffix only tells the parser how many extra ordinates to
// accept (and drop) per coordinate.
type dimSuffix int

const (
	dimXY dimSuffix = iota
	dimXYZ
	dimXYM
	dimXYZM
)

// extraOrdinates returns the number of ordinates beyond X and Y the suffix
// declares.
func (d dimSuffix) extraOrdinates() int {
	switch d {
	case dimXYZ, dimXYM:
		return 1
	case dimXYZM:
		return 2
	default:
		return 0
	}
}

type token struct {
	typ tokType
	pos int
	num float64
	dim dimSuffix
}

type wktLex struct {
	line    string
	pos     int
	lastPos int
	lastErr error
}

func makeWktLex(line string) *wktLex {
	return &wktLex{line: line}
}

// Lex lexes the next token from the input.
func (l *wktLex) Lex() token {
	l.trimLeft()
	l.lastPos = l.pos

	switch c := l.peek(); c {
	case eofRune:
		return token{typ: tokEOF, pos: l.lastPos}
	case '(':
		l.next()
		return token{typ: tokLParen, pos: l.lastPos}
	case ')':
		l.next()
		return token{typ: tokRParen, pos: l.lastPos}
	case ',':
		l.next()
		return token{typ: tokComma, pos: l.lastPos}
	default:
		if unicode.IsLetter(c) {
			return l.keyword()
		} else if isNumRune(c) {
			return l.num()
		}
		l.next()
		l.setLexError("character")
		return token{typ: tokEOF, pos: l.lastPos}
	}
}

func getKeywordToken(tokStr string) (tokType, bool) {
	switch tokStr {
	case "EMPTY":
		return tokEmpty, true
	case "POINT":
		return tokPoint, true
	case "LINESTRING":
		return tokLineString, true
	case "POLYGON":
		return tokPolygon, true
	case "MULTIPOINT":
		return tokMultiPoint, true
	case "MULTILINESTRING":
		return tokMultiLineString, true
	case "MULTIPOLYGON":
		return tokMultiPolygon, true
	case "GEOMETRYCOLLECTION":
		return tokGeometryCollection, true
	default:
		return tokEOF, false
	}
}

// keyword lexes a geometry type keyword, including any Z/M/ZM suffix either
// glued onto the keyword (POINTZM) or standing alone after it (POINT ZM).
func (l *wktLex) keyword() token {
	var b strings.Builder
	pos := l.lastPos

	for {
		c := l.peek()
		if !unicode.IsLetter(c) {
			break
		}
		b.WriteRune(unicode.ToUpper(l.next()))
	}

	str, dim := splitDimSuffix(b.String())

	// A detached suffix: POINT Z (1 2 3).
	if dim == dimXY && str != "EMPTY" {
		l.trimLeft()
		hasZ, hasM := false, false
		if unicode.ToUpper(l.peek()) == 'Z' {
			l.next()
			hasZ = true
		}
		if unicode.ToUpper(l.peek()) == 'M' {
			l.next()
			hasM = true
		}
		switch {
		case hasZ && hasM:
			dim = dimXYZM
		case hasZ:
			dim = dimXYZ
		case hasM:
			dim = dimXYM
		}
	}

	typ, ok := getKeywordToken(str)
	if !ok {
		l.setLexError("keyword")
		return token{typ: tokEOF, pos: pos}
	}
	return token{typ: typ, pos: pos, dim: dim}
}

// splitDimSuffix strips a trailing Z/M/ZM off a geometry keyword, leaving
// valid unsuffixed keywords untouched.
func splitDimSuffix(str string) (string, dimSuffix) {
	if _, ok := getKeywordToken(str); ok {
		return str, dimXY
	}
	switch {
	case strings.HasSuffix(str, "ZM"):
		return str[:len(str)-2], dimXYZM
	case strings.HasSuffix(str, "Z"):
		return str[:len(str)-1], dimXYZ
	case strings.HasSuffix(str, "M"):
		return str[:len(str)-1], dimXYM
	default:
		return str, dimXY
	}
}

func isNumRune(r rune) bool {
	switch r {
	case '-', '+', '.':
		return true
	default:
		return unicode.IsDigit(r)
	}
}

// num lexes a floating point number.
func (l *wktLex) num() token {
	var b strings.Builder
	pos := l.lastPos

	for {
		c := l.peek()
		if !isNumRune(c) && c != 'e' && c != 'E' {
			break
		}
		b.WriteRune(l.next())
		// Allow a sign directly after an exponent marker.
		if c == 'e' || c == 'E' {
			if s := l.peek(); s == '-' || s == '+' {
				b.WriteRune(l.next())
			}
		}
	}

	fl, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		l.setLexError("number")
		return token{typ: tokEOF, pos: pos}
	}
	return token{typ: tokNum, pos: pos, num: fl}
}

const eofRune = rune(0)

func (l *wktLex) peek() rune {
	if l.pos == len(l.line) {
		return eofRune
	}
	return rune(l.line[l.pos])
}

func (l *wktLex) next() rune {
	c := l.peek()
	if c != eofRune {
		l.pos++
	}
	return c
}

func (l *wktLex) trimLeft() {
	for {
		c := l.peek()
		if c == eofRune || !unicode.IsSpace(c) {
			break
		}
		l.next()
	}
}

func (l *wktLex) setLexError(expectedTokType string) {
	l.setError(&LexError{expectedTokType: expectedTokType, pos: l.lastPos, str: l.line})
}

func (l *wktLex) setError(err error) {
	if l.lastErr == nil {
		l.lastErr = err
	}
}
