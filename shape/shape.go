// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape maps a text run (text, font, size, weight, style) to
// positioned glyph outlines, per spec §4.I. It is a thin layer over
// go-text/typesetting's HarfBuzz shaper: this package owns font
// selection (via [font.Database]) and per-glyph spacing, and leaves
// shaping itself to harfbuzz.
package shape

import (
	"github.com/asslib/ass/asserr"
	"github.com/asslib/ass/font"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Request describes one run to shape: text plus the resolved style
// attributes the segmenter produced for it.
type Request struct {
	Text     string
	Family   string
	SizePx   float32
	Bold     bool
	Italic   bool
	SpacingPx float32 // extra advance per glyph, from \fsp
}

// Glyph is one positioned glyph in a shaped run. X and Y are the pen
// position of the glyph's origin, relative to the run's origin; Width
// and Height are the glyph's own ink extents, used by the compositor to
// build fill/stroke paths.
type Glyph struct {
	GlyphID  uint32
	X, Y     float32
	XAdvance float32
	Width    float32
	Height   float32
}

// Run is the shaped output of one Request: positioned glyphs plus the
// metrics needed to place the run within a line.
type Run struct {
	Glyphs  []Glyph
	Width   float32
	Height  float32
	Ascent  float32
	Descent float32
	Baseline float32
}

// Shaper shapes text runs against a font database, falling through a
// family priority list when the requested family has no matching face.
type Shaper struct {
	db      font.Database
	backend shaping.HarfbuzzShaper
}

// New returns a Shaper backed by db.
func New(db font.Database) *Shaper {
	return &Shaper{db: db}
}

// Shape resolves req's font and shapes its text into a Run. An empty
// Text yields an empty Run with zero metrics, not an error.
func (s *Shaper) Shape(req Request) (Run, error) {
	weight := font.WeightNormal
	if req.Bold {
		weight = font.WeightBold
	}
	style := font.StyleNormal
	if req.Italic {
		style = font.StyleItalic
	}
	face, ok := s.db.Face(req.Family, weight, style)
	if !ok {
		return Run{}, asserr.New(asserr.CommandFailed, "no face for family %q (weight %d, style %d)", req.Family, weight, style)
	}

	runes := []rune(req.Text)
	if len(runes) == 0 {
		return Run{}, nil
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      pxToFixed(req.SizePx),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	}
	out := s.backend.Shape(input)

	glyphs := make([]Glyph, len(out.Glyphs))
	var x, y float32
	spacing := req.SpacingPx
	for i, g := range out.Glyphs {
		glyphs[i] = Glyph{
			GlyphID:  uint32(g.GlyphID),
			X:        x + fixedToPx(g.XOffset),
			Y:        y - fixedToPx(g.YOffset),
			XAdvance: fixedToPx(g.XAdvance) + spacing,
			Width:    fixedToPx(g.Width),
			Height:   fixedToPx(g.Height),
		}
		x += fixedToPx(g.XAdvance) + spacing
		y -= fixedToPx(g.YAdvance)
	}

	ascent := fixedToPx(out.LineBounds.Ascent)
	// Descent is stored negative (below-baseline direction) per harfbuzz's
	// y-up convention; flip to a positive magnitude for Run's metrics.
	descent := -fixedToPx(out.LineBounds.Descent)
	return Run{
		Glyphs:   glyphs,
		Width:    x,
		Height:   ascent + descent,
		Ascent:   ascent,
		Descent:  descent,
		Baseline: ascent,
	}, nil
}

func pxToFixed(px float32) fixed.Int26_6 { return fixed.Int26_6(px * 64) }
func fixedToPx(f fixed.Int26_6) float32  { return float32(f) / 64 }
