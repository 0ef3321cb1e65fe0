// Copyright 2025 The Spatial Authors.
//
// Use of this software is governed by the Apache License, Version 2.0.

package geo

import (
	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"
)

// GeomTIterator decomposes geom.T into individual singleton geom.T
// components: multi geometries and collections are expanded, so Next only
// ever yields Point, LineString or Polygon values.
type GeomTIterator struct {
	g             geom.T
	emptyBehavior EmptyBehavior
	// idx is the index into a widened version of the geometry where nested
	// collections have been expanded.
	stack []geomTIteratorFrame
}

type geomTIteratorFrame struct {
	g   geom.T
	idx int
}

// NewGeomTIterator returns a new GeomTIterator.
func NewGeomTIterator(g geom.T, emptyBehavior EmptyBehavior) GeomTIterator {
	return GeomTIterator{
		g:             g,
		emptyBehavior: emptyBehavior,
		stack:         []geomTIteratorFrame{{g: g}},
	}
}

// Next returns the next geom.T object, a bool as to whether there is an
// entry and an error if any.
func (it *GeomTIterator) Next() (geom.T, bool, error) {
	for len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		switch t := frame.g.(type) {
		case *geom.Point, *geom.LineString, *geom.Polygon:
			it.stack = it.stack[:len(it.stack)-1]
			next, ok, err := filterEmpty(t, it.emptyBehavior)
			if err != nil {
				return nil, false, err
			}
			if ok {
				return next, true, nil
			}
		case *geom.MultiPoint:
			next, ok, err := it.nextMultiComponent(frame, t.NumPoints(), func(i int) geom.T { return t.Point(i) })
			if err != nil {
				return nil, false, err
			}
			if ok {
				return next, true, nil
			}
		case *geom.MultiLineString:
			next, ok, err := it.nextMultiComponent(frame, t.NumLineStrings(), func(i int) geom.T { return t.LineString(i) })
			if err != nil {
				return nil, false, err
			}
			if ok {
				return next, true, nil
			}
		case *geom.MultiPolygon:
			next, ok, err := it.nextMultiComponent(frame, t.NumPolygons(), func(i int) geom.T { return t.Polygon(i) })
			if err != nil {
				return nil, false, err
			}
			if ok {
				return next, true, nil
			}
		case *geom.GeometryCollection:
			if frame.idx == t.NumGeoms() {
				it.stack = it.stack[:len(it.stack)-1]
				continue
			}
			sub := t.Geom(frame.idx)
			frame.idx++
			it.stack = append(it.stack, geomTIteratorFrame{g: sub})
		default:
			return nil, false, errors.AssertionFailedf("unknown geom.T type: %T", t)
		}
	}
	return nil, false, nil
}

// nextMultiComponent advances iteration over a multi geometry, yielding its
// components one at a time. A component-less multi geometry follows the
// iterator's empty behavior itself.
func (it *GeomTIterator) nextMultiComponent(
	frame *geomTIteratorFrame, n int, component func(i int) geom.T,
) (geom.T, bool, error) {
	if frame.idx == n {
		it.stack = it.stack[:len(it.stack)-1]
		if n == 0 {
			if _, _, err := filterEmpty(frame.g, it.emptyBehavior); err != nil {
				return nil, false, err
			}
		}
		return nil, false, nil
	}
	sub := component(frame.idx)
	frame.idx++
	return filterEmpty(sub, it.emptyBehavior)
}

func filterEmpty(t geom.T, emptyBehavior EmptyBehavior) (geom.T, bool, error) {
	if !t.Empty() {
		return t, true, nil
	}
	switch emptyBehavior {
	case EmptyBehaviorOmit:
		return nil, false, nil
	case EmptyBehaviorError:
		return nil, false, NewEmptyGeometryError()
	default:
		return nil, false, errors.AssertionFailedf("programmer error: unknown behavior %d", emptyBehavior)
	}
}

// Reset resets an iterator back to the first element.
func (it *GeomTIterator) Reset() {
	it.stack = it.stack[:0]
	it.stack = append(it.stack, geomTIteratorFrame{g: it.g})
}
