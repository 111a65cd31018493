// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asslib/ass/drawing"
	"github.com/asslib/ass/shape"
)

func solidRGBA(w, h int, c color.NRGBA) []byte {
	pix := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		pix[i*4+0] = c.R
		pix[i*4+1] = c.G
		pix[i*4+2] = c.B
		pix[i*4+3] = c.A
	}
	return pix
}

func TestRenderRasterLayerOpaqueOverwritesCanvas(t *testing.T) {
	c := New(4, 4)
	red := color.NRGBA{R: 255, A: 255}
	layer := RasterLayer{Pix: solidRGBA(2, 2, red), Width: 2, Height: 2, X: 1, Y: 1}

	out := c.Render([]Layer{layer})

	// (1,1) on a 4-wide canvas: row 1, col 1 -> index (1*4+1)*4
	i := (1*4 + 1) * 4
	assert.Equal(t, byte(255), out[i+0])
	assert.Equal(t, byte(255), out[i+3])
	// (0,0) untouched, stays transparent black.
	assert.Equal(t, byte(0), out[3])
}

func TestRenderRasterLayerBlendsOverTransparentBackground(t *testing.T) {
	c := New(2, 2)
	halfRed := color.NRGBA{R: 255, A: 128}
	layer := RasterLayer{Pix: solidRGBA(2, 2, halfRed), Width: 2, Height: 2}

	out := c.Render([]Layer{layer})

	assert.Equal(t, byte(255), out[0])
	assert.InDelta(t, 128, int(out[3]), 1)
}

func TestRenderVectorLayerFillsInsideBounds(t *testing.T) {
	c := New(20, 20)
	path, issues := drawing.Parse("m 0 0 l 10 0 l 10 10 l 0 10", 1)
	require.Empty(t, issues)
	layer := VectorLayer{Path: path, Fill: color.NRGBA{G: 255, A: 255}}

	out := c.Render([]Layer{layer})

	center := (5*20 + 5) * 4
	assert.Equal(t, byte(255), out[center+1])
	assert.Equal(t, byte(255), out[center+3])

	outside := (15*20 + 15) * 4
	assert.Equal(t, byte(0), out[outside+3])
}

func TestRenderTextLayerFillsGlyphBox(t *testing.T) {
	c := New(20, 20)
	run := shape.Run{
		Glyphs: []shape.Glyph{
			{X: 0, Y: 0, Width: 10, Height: 10},
		},
		Width: 10, Height: 10, Baseline: 8,
	}
	layer := TextLayer{Run: run, FontSizePx: 16, BaseColor: color.NRGBA{B: 255, A: 255}, X: 2, Y: 2}

	out := c.Render([]Layer{layer})

	inside := (5*20 + 5) * 4
	assert.Equal(t, byte(255), out[inside+2])
	assert.Equal(t, byte(255), out[inside+3])

	outside := (18*20 + 18) * 4
	assert.Equal(t, byte(0), out[outside+3])
}

func TestRenderTextLayerKaraokeSwapsFillColor(t *testing.T) {
	c := New(10, 10)
	run := shape.Run{Glyphs: []shape.Glyph{{X: 0, Y: 0, Width: 5, Height: 5}}}
	highlight := color.NRGBA{R: 255, A: 255}
	layer := TextLayer{
		Run: run, BaseColor: color.NRGBA{G: 255, A: 255},
		Effects: TextEffects{Karaoke: &Karaoke{Progress: 1, HighlightColor: highlight}},
	}

	out := c.Render([]Layer{layer})

	i := (2*10 + 2) * 4
	assert.Equal(t, byte(255), out[i+0])
	assert.Equal(t, byte(0), out[i+1])
}

func TestClipInverseDropsPixelsInsideRectangle(t *testing.T) {
	c := New(10, 10)
	run := shape.Run{Glyphs: []shape.Glyph{{X: 0, Y: 0, Width: 10, Height: 10}}}
	layer := TextLayer{
		Run: run, BaseColor: color.NRGBA{R: 255, A: 255},
		Effects: TextEffects{Clip: &Clip{X1: 0, Y1: 0, X2: 5, Y2: 5, Inverse: true}},
	}

	out := c.Render([]Layer{layer})

	insideClip := (2*10 + 2) * 4 // clipped away
	assert.Equal(t, byte(0), out[insideClip+3])
	outsideClip := (8*10 + 8) * 4 // still drawn
	assert.Equal(t, byte(255), out[outsideClip+3])
}

func TestStrokeOffsetsZeroWidthIsEmpty(t *testing.T) {
	assert.Empty(t, strokeOffsets(0))
	assert.Empty(t, strokeOffsets(-1))
}

func TestStrokeOffsetsNonZeroWidthFormsARing(t *testing.T) {
	offsets := strokeOffsets(2)
	require.Len(t, offsets, 8)
	for _, o := range offsets {
		dist := o.X*o.X + o.Y*o.Y
		assert.InDelta(t, 4, dist, 1e-3)
	}
}

func TestBlendNRGBAOverOpaqueSourceReplacesBackground(t *testing.T) {
	bg := color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	src := color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	out := blendNRGBAOver(bg, src)
	assert.Equal(t, src, out)
}

func TestBlendNRGBAOverTransparentSourceKeepsBackground(t *testing.T) {
	bg := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	src := color.NRGBA{A: 0}
	out := blendNRGBAOver(bg, src)
	assert.Equal(t, bg, out)
}

func TestScaleAlphaHalvesCoverage(t *testing.T) {
	c := color.NRGBA{R: 100, A: 200}
	out := scaleAlpha(c, 0.5)
	assert.Equal(t, byte(100), out.R)
	assert.Equal(t, byte(100), out.A)
}
