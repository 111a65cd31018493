// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"image/color"

	"github.com/asslib/ass/drawing"
	"github.com/asslib/ass/shape"
)

// Layer is one of the three intermediate layer kinds spec §4.K's
// Compositor consumes: RasterLayer, VectorLayer, TextLayer.
type Layer interface{ isLayer() }

// RasterLayer composites a pre-rendered RGBA image at (X, Y) with
// SourceOver blending. Pix is tightly packed row-major RGBA8888.
type RasterLayer struct {
	Pix           []byte
	Width, Height int
	X, Y          float32
	BlurRadius    float32 // 0 disables; applied via bild/blur before compositing
}

func (RasterLayer) isLayer() {}

// Stroke describes an optional outline stroke on a VectorLayer.
type Stroke struct {
	Color color.NRGBA
	Width float32
}

// VectorLayer fills path at (X, Y) (path coordinates are already local;
// X/Y place its origin in canvas space), optionally stroked.
type VectorLayer struct {
	Path   drawing.Path
	X, Y   float32
	Fill   color.NRGBA
	Stroke *Stroke
}

func (VectorLayer) isLayer() {}

// Outline is the widen-and-fill outline effect (spec §4.K step 4).
type Outline struct {
	Color    color.NRGBA
	WidthX   float32
	WidthY   float32
	EdgeBlur float32
}

// Shadow is one shadow offset-and-fill pass (spec §4.K step 3). Multiple
// shadows (e.g. \4c plus a border-style opaque box) can stack; spec's
// TextEffects "ordered set" allows more than one.
type Shadow struct {
	Color  color.NRGBA
	DX, DY float32
}

// Clip restricts a TextLayer to a rectangle, or its complement if
// Inverse is set (\clip / \iclip with a rectangular argument; vector
// clip paths have no representation here and are not applied).
type Clip struct {
	X1, Y1, X2, Y2 float32
	Inverse        bool
}

// Karaoke describes the highlight/sweep state of one syllable at the
// frame being rendered (spec §4.K step 5).
type Karaoke struct {
	Progress      float32 // 0..1
	Style         int     // 0=basic, 1=fill, 2=outline, 3=sweep
	HighlightColor color.NRGBA
}

// TextEffects bundles every optional per-run effect a TextLayer can
// carry, in the application order spec §4.K's render steps define.
type TextEffects struct {
	Underline     bool
	Strikethrough bool
	Outline       *Outline
	Shadows       []Shadow
	Blur          float32
	RotationZ     float32 // radians, about the run's center
	RotationX     float32 // approximated via skew, per spec §9's open question
	RotationY     float32
	ScaleX        float32 // percent, 100 = unscaled
	ScaleY        float32
	ShearX        float32
	ShearY        float32
	Clip          *Clip
	Karaoke       *Karaoke
}

// TextLayer draws one shaped run at (X, Y) with the given effects.
type TextLayer struct {
	Run       shape.Run
	FontSizePx float32
	BaseColor color.NRGBA
	X, Y      float32
	Effects   TextEffects
}

func (TextLayer) isLayer() {}
