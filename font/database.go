// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package font provides the font-database collaborator the shaper
// queries by (family, weight, style) to resolve glyph outlines. Font
// file discovery on disk and system-font enumeration are left entirely
// to the caller: this package only indexes faces it is handed already
// loaded.
package font

import (
	gofont "github.com/go-text/typesetting/font"
)

// Weight mirrors the handful of weight buckets `\b` can request: normal
// text or the bold variant. ASS override tags have no concept of
// intermediate weights (light, semibold, black); this is deliberately
// binary.
type Weight int

const (
	WeightNormal Weight = 400
	WeightBold   Weight = 700
)

// Style selects between a family's upright and italic/oblique faces,
// driven by `\i`.
type Style int

const (
	StyleNormal Style = iota
	StyleItalic
)

// Key identifies one registered face.
type Key struct {
	Family string
	Weight Weight
	Style  Style
}

// Database resolves a (family, weight, style) request to a face,
// matching spec §6's "Font database: queried by (family, weight, style);
// returns a font id that resolves to outlines for glyph indices" — here
// the "font id" is the go-text/typesetting Face value itself, since a
// Face already carries its own glyph outlines.
type Database interface {
	Face(family string, weight Weight, style Style) (gofont.Face, bool)
}

// GoTextDatabase is a Database backed by a set of already-loaded
// go-text/typesetting faces. Fallback is a priority list of family names
// consulted, in order, when the requested family has no matching face;
// per spec §4.I it should end at a generic sans-serif family the caller
// has registered.
type GoTextDatabase struct {
	faces    map[Key]gofont.Face
	fallback []string
}

// NewGoTextDatabase creates an empty database with the given fallback
// family priority list.
func NewGoTextDatabase(fallback ...string) *GoTextDatabase {
	return &GoTextDatabase{
		faces:    make(map[Key]gofont.Face),
		fallback: fallback,
	}
}

// Register adds face under the given key, overwriting any face
// previously registered for the same key.
func (d *GoTextDatabase) Register(family string, weight Weight, style Style, face gofont.Face) {
	d.faces[Key{Family: family, Weight: weight, Style: style}] = face
}

// Face implements Database. It tries, in order: the exact request; the
// same family at normal weight/style (the plain face standing in for a
// bold/italic variant the family doesn't have); then each fallback family at the
// requested weight/style and at normal weight/style.
func (d *GoTextDatabase) Face(family string, weight Weight, style Style) (gofont.Face, bool) {
	if f, ok := d.faces[Key{Family: family, Weight: weight, Style: style}]; ok {
		return f, true
	}
	if f, ok := d.faces[Key{Family: family, Weight: WeightNormal, Style: StyleNormal}]; ok {
		return f, true
	}
	for _, fam := range d.fallback {
		if f, ok := d.faces[Key{Family: fam, Weight: weight, Style: style}]; ok {
			return f, true
		}
		if f, ok := d.faces[Key{Family: fam, Weight: WeightNormal, Style: StyleNormal}]; ok {
			return f, true
		}
	}
	return gofont.Face{}, false
}
