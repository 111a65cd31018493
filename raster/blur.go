// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

// AlphaPlane is a single-channel coverage mask, row-major, one float32
// per pixel in [0, 1].
type AlphaPlane struct {
	Pix           []float32
	Width, Height int
}

// NewAlphaPlane returns a zeroed w×h plane.
func NewAlphaPlane(w, h int) AlphaPlane {
	return AlphaPlane{Pix: make([]float32, w*h), Width: w, Height: h}
}

func (p AlphaPlane) at(x, y int) float32 {
	if x < 0 {
		x = 0
	} else if x >= p.Width {
		x = p.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= p.Height {
		y = p.Height - 1
	}
	return p.Pix[y*p.Width+x]
}

// BoxBlur applies spec §4.K's "two-pass box blur with clamp-to-edge" to
// p, horizontal pass then vertical, and returns a new plane. radius is
// in pixels; a non-positive radius returns p unchanged. This is a direct
// reimplementation of the separable box-blur approach
// `github.com/anthonynsimon/bild/blur`/`bild/effect` take for
// `image.NRGBA`, adapted to operate on a single float32 coverage channel
// instead: converting our glyph-outline alpha masks to and from
// image.NRGBA for every blur pass would cost more than reusing the
// library's `image.Image` entrypoint would save.
func BoxBlur(p AlphaPlane, radius float32) AlphaPlane {
	if radius <= 0 || p.Width == 0 || p.Height == 0 {
		return p
	}
	r := int(radius + 0.5)
	if r < 1 {
		r = 1
	}
	h := boxBlurHorizontal(p, r)
	return boxBlurVertical(h, r)
}

func boxBlurHorizontal(p AlphaPlane, r int) AlphaPlane {
	out := NewAlphaPlane(p.Width, p.Height)
	window := float32(2*r + 1)
	for y := 0; y < p.Height; y++ {
		var sum float32
		for k := -r; k <= r; k++ {
			sum += p.at(k, y)
		}
		out.Pix[y*p.Width] = sum / window
		for x := 1; x < p.Width; x++ {
			sum -= p.at(x-r-1, y)
			sum += p.at(x+r, y)
			out.Pix[y*p.Width+x] = sum / window
		}
	}
	return out
}

func boxBlurVertical(p AlphaPlane, r int) AlphaPlane {
	out := NewAlphaPlane(p.Width, p.Height)
	window := float32(2*r + 1)
	for x := 0; x < p.Width; x++ {
		var sum float32
		for k := -r; k <= r; k++ {
			sum += p.at(x, k)
		}
		out.Pix[x] = sum / window
		for y := 1; y < p.Height; y++ {
			sum -= p.at(x, y-r-1)
			sum += p.at(x, y+r)
			out.Pix[y*p.Width+x] = sum / window
		}
	}
	return out
}
