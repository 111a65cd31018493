// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout places shaped events on a frame: it turns each event's
// alignment, margins, and (if present) explicit `\pos`/`\move` into a
// top-left render-pixel position, stacks multi-line blocks away from
// their aligned edge, and nudges overlapping same-layer events apart,
// per spec §4.L.
package layout

import (
	"sort"

	"github.com/asslib/ass/style"
)

// PositionKind distinguishes how an event asked to be placed.
type PositionKind int

const (
	// PositionAuto computes the anchor from alignment and margins.
	PositionAuto PositionKind = iota
	// PositionFixed is an explicit `\pos(x, y)`.
	PositionFixed
	// PositionMoving is an explicit `\move(...)`, already sampled at the
	// rendered frame's instant: the caller computes Progress from the
	// frame time and the move's own t1/t2 window before calling Place,
	// the same way software_pipeline.rs's calculate_position_from_tags
	// resolves a move to one (x, y) per frame rather than handing an
	// animation descriptor downstream.
	PositionMoving
)

// Event is one event's layout inputs for a single rendered frame: its
// collision group, its measured text block, and its position mode.
type Event struct {
	Layer                     int
	Start, End                int // cs, defines the collision group's active window
	Alignment                 int // numpad 1-9, already normalized
	MarginL, MarginR, MarginV float32
	BlockWidth, BlockHeight   float32 // measured text block, render px
	LineHeight                float32 // render px, used to stack multi-line blocks
	Lines                     int

	Position       PositionKind
	FixedX, FixedY float32 // PositionFixed: the \pos target, PlayRes coordinates
	MoveX1, MoveY1 float32 // PositionMoving: \move's endpoints, PlayRes coordinates
	MoveX2, MoveY2 float32
	MoveProgress   float32 // PositionMoving: 0..1, already time-sampled by the caller
}

// Placement is the resolved top-left position ready to hand to the
// compositor.
type Placement struct {
	X, Y float32
}

// horizontalAnchor and verticalAnchor delegate to style.Alignment's own
// numpad decomposition rather than re-deriving it: every package that
// needs an alignment's anchor (drawing, here) shares the one formula
// style/resolved.go owns.
func horizontalAnchor(alignment int) int { return style.Alignment(alignment).HorizontalAnchor() }
func verticalAnchor(alignment int) int   { return style.Alignment(alignment).VerticalAnchor() }

// anchorPoint computes the alignment+margin anchor in render pixels, per
// spec §4.L: x from {margin_l, playResW/2, playResW-margin_r}, y from
// {playResY-margin_v, playResY/2, margin_v} for bottom/middle/top, scaled
// into render space.
func anchorPoint(e Event, playResW, playResH, renderW, renderH float32) (x, y float32) {
	scaleX := renderW / playResW
	scaleY := renderH / playResH

	switch horizontalAnchor(e.Alignment) {
	case -1:
		x = e.MarginL * scaleX
	case 0:
		x = renderW / 2
	default:
		x = renderW - e.MarginR*scaleX
	}

	var yScript float32
	switch verticalAnchor(e.Alignment) {
	case -1:
		yScript = playResH - e.MarginV
	case 0:
		yScript = playResH / 2
	default:
		yScript = e.MarginV
	}
	y = yScript * scaleY
	return x, y
}

// stackedAnchorY adjusts a multi-line block's vertical anchor so lines
// stack away from the aligned edge: upward from the bottom, downward from
// the top, centered around the middle. Matches spec §4.L's "line-stacking
// direction."
func stackedAnchorY(e Event, anchorY float32) float32 {
	if e.Lines <= 1 {
		return anchorY
	}
	switch verticalAnchor(e.Alignment) {
	case -1: // bottom: the block's own height already reaches down to the anchor
		return anchorY
	case 1: // top: block grows downward from the anchor, no shift needed
		return anchorY
	default: // middle: center the whole block around the anchor
		blockHeight := float32(e.Lines) * e.LineHeight
		return anchorY - blockHeight/2 + e.LineHeight/2
	}
}

// topLeft converts an anchor point plus block size into the block's
// top-left corner, per spec §4.L's "subtract a fraction of text width per
// horizontal alignment and text height per vertical alignment."
func topLeft(e Event, anchorX, anchorY float32) (x, y float32) {
	switch horizontalAnchor(e.Alignment) {
	case -1:
		x = anchorX
	case 0:
		x = anchorX - e.BlockWidth/2
	default:
		x = anchorX - e.BlockWidth
	}

	switch verticalAnchor(e.Alignment) {
	case -1:
		y = anchorY - e.BlockHeight
	case 0:
		y = anchorY - e.BlockHeight/2
	default:
		y = anchorY
	}
	return x, y
}

// Place lays out every event active in the same frame. Events are sorted
// by (layer ascending, start time ascending) as spec §4.L requires before
// collision resolution runs; events with an explicit Position skip both
// auto-anchoring and collision (spec: "when positions are explicit, no
// collision resolution is applied").
func Place(events []Event, playResW, playResH, renderW, renderH float32) []Placement {
	order := make([]int, len(events))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ea, eb := events[order[a]], events[order[b]]
		if ea.Layer != eb.Layer {
			return ea.Layer < eb.Layer
		}
		return ea.Start < eb.Start
	})

	out := make([]Placement, len(events))
	placed := map[int][]rect{} // per layer, boxes already placed this frame

	for _, i := range order {
		e := events[i]
		switch e.Position {
		case PositionFixed:
			scaleX, scaleY := renderW/playResW, renderH/playResH
			ax, ay := e.FixedX*scaleX, e.FixedY*scaleY
			x, y := topLeft(e, ax, ay)
			out[i] = Placement{X: x, Y: y}
			continue
		case PositionMoving:
			scaleX, scaleY := renderW/playResW, renderH/playResH
			ax := lerp(e.MoveX1, e.MoveX2, e.MoveProgress) * scaleX
			ay := lerp(e.MoveY1, e.MoveY2, e.MoveProgress) * scaleY
			x, y := topLeft(e, ax, ay)
			out[i] = Placement{X: x, Y: y}
			continue
		}

		ax, ay := anchorPoint(e, playResW, playResH, renderW, renderH)
		ay = stackedAnchorY(e, ay)
		x, y := topLeft(e, ax, ay)

		box := rect{x, y, x + e.BlockWidth, y + e.BlockHeight}
		box.y0, box.y1 = resolveCollision(placed[e.Layer], box, verticalAnchor(e.Alignment))
		placed[e.Layer] = append(placed[e.Layer], box)

		out[i] = Placement{X: box.x0, Y: box.y0}
	}
	return out
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

type rect struct{ x0, y0, x1, y1 float32 }

func (r rect) overlaps(o rect) bool {
	return r.x0 < o.x1 && r.x1 > o.x0 && r.y0 < o.y1 && r.y1 > o.y0
}

// resolveCollision nudges box up (bottom/middle-anchored blocks push
// further from the aligned edge they grew from) or down (top-anchored
// blocks push down the screen instead, since "up" would run off the
// aligned edge) until it no longer overlaps anything already placed on
// this layer this frame, per spec §4.L's "bidirectional collision
// resolver."
func resolveCollision(placed []rect, box rect, vAnchor int) (y0, y1 float32) {
	height := box.y1 - box.y0
	if height <= 0 {
		return box.y0, box.y1
	}
	direction := float32(1)
	if vAnchor != 1 {
		direction = -1
	}
	for {
		blocked := false
		for _, p := range placed {
			if box.overlaps(p) {
				blocked = true
				box.y0 += direction * height
				box.y1 += direction * height
				break
			}
		}
		if !blocked {
			return box.y0, box.y1
		}
	}
}
