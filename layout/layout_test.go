// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnchorPointBottomLeft(t *testing.T) {
	e := Event{Alignment: 1, MarginL: 10, MarginV: 20}
	x, y := anchorPoint(e, 384, 288, 384, 288)
	assert.Equal(t, float32(10), x)
	assert.Equal(t, float32(268), y) // 288 - 20
}

func TestAnchorPointTopCenterScalesToRenderRes(t *testing.T) {
	e := Event{Alignment: 8, MarginV: 10}
	x, y := anchorPoint(e, 384, 288, 768, 576) // 2x scale
	assert.Equal(t, float32(384), x)           // render width / 2
	assert.Equal(t, float32(20), y)            // margin_v * scale_y
}

func TestAnchorPointRightColumnSubtractsMarginR(t *testing.T) {
	e := Event{Alignment: 9, MarginR: 15}
	x, _ := anchorPoint(e, 384, 288, 384, 288)
	assert.Equal(t, float32(369), x)
}

func TestTopLeftBottomAlignmentSubtractsFullHeight(t *testing.T) {
	e := Event{Alignment: 2, BlockWidth: 100, BlockHeight: 40}
	x, y := topLeft(e, 200, 200)
	assert.Equal(t, float32(150), x) // centered: anchor - width/2
	assert.Equal(t, float32(160), y) // bottom: anchor - height
}

func TestTopLeftTopAlignmentKeepsAnchorAsTop(t *testing.T) {
	e := Event{Alignment: 8, BlockWidth: 100, BlockHeight: 40}
	_, y := topLeft(e, 200, 200)
	assert.Equal(t, float32(200), y)
}

func TestTopLeftMiddleAlignmentCentersVertically(t *testing.T) {
	e := Event{Alignment: 5, BlockWidth: 100, BlockHeight: 40}
	_, y := topLeft(e, 200, 200)
	assert.Equal(t, float32(180), y)
}

func TestStackedAnchorYBottomUnaffected(t *testing.T) {
	e := Event{Alignment: 2, Lines: 3, LineHeight: 20}
	assert.Equal(t, float32(100), stackedAnchorY(e, 100))
}

func TestStackedAnchorYMiddleCentersBlock(t *testing.T) {
	e := Event{Alignment: 5, Lines: 3, LineHeight: 20}
	// block height 60, centered around anchor 100: 100 - 30 + 10 = 80
	assert.Equal(t, float32(80), stackedAnchorY(e, 100))
}

func TestPlaceExplicitPositionSkipsAlignmentAndCollision(t *testing.T) {
	events := []Event{
		{Layer: 0, Position: PositionFixed, FixedX: 50, FixedY: 50, Alignment: 7, BlockWidth: 10, BlockHeight: 10},
	}
	out := Place(events, 384, 288, 384, 288)
	assert.Equal(t, float32(50), out[0].X)
	assert.Equal(t, float32(50), out[0].Y)
}

func TestPlaceMovingPositionInterpolatesByProgress(t *testing.T) {
	events := []Event{
		{
			Layer: 0, Position: PositionMoving, Alignment: 7, BlockWidth: 0, BlockHeight: 0,
			MoveX1: 0, MoveY1: 0, MoveX2: 100, MoveY2: 100, MoveProgress: 0.5,
		},
	}
	out := Place(events, 384, 288, 384, 288)
	assert.Equal(t, float32(50), out[0].X)
	assert.Equal(t, float32(50), out[0].Y)
}

func TestPlaceMovingPositionAtProgressZeroIsStartPoint(t *testing.T) {
	events := []Event{
		{
			Layer: 0, Position: PositionMoving, Alignment: 7, BlockWidth: 0, BlockHeight: 0,
			MoveX1: 10, MoveY1: 20, MoveX2: 100, MoveY2: 100, MoveProgress: 0,
		},
	}
	out := Place(events, 384, 288, 384, 288)
	assert.Equal(t, float32(10), out[0].X)
	assert.Equal(t, float32(20), out[0].Y)
}

func TestPlaceOverlappingSameLayerEventsAreNudgedApart(t *testing.T) {
	events := []Event{
		{Layer: 0, Start: 0, Alignment: 2, MarginV: 0, BlockWidth: 100, BlockHeight: 40},
		{Layer: 0, Start: 1, Alignment: 2, MarginV: 0, BlockWidth: 100, BlockHeight: 40},
	}
	out := Place(events, 384, 288, 384, 288)
	assert.NotEqual(t, out[0].Y, out[1].Y)
}

func TestPlaceDifferentLayersDoNotCollide(t *testing.T) {
	events := []Event{
		{Layer: 0, Start: 0, Alignment: 2, BlockWidth: 100, BlockHeight: 40},
		{Layer: 1, Start: 0, Alignment: 2, BlockWidth: 100, BlockHeight: 40},
	}
	out := Place(events, 384, 288, 384, 288)
	assert.Equal(t, out[0].Y, out[1].Y)
}

func TestPlaceSortsByLayerThenStartTimeForCollisionOrder(t *testing.T) {
	events := []Event{
		{Layer: 0, Start: 5, Alignment: 2, BlockWidth: 100, BlockHeight: 40},
		{Layer: 0, Start: 1, Alignment: 2, BlockWidth: 100, BlockHeight: 40},
	}
	out := Place(events, 384, 288, 384, 288)
	// The earlier-starting event (index 1) keeps the unshifted anchor position;
	// the later one gets pushed.
	assert.NotEqual(t, out[0].Y, out[1].Y)
}
