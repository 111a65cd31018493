// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drawing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asslib/ass/style"
)

func TestParseSquareViaMoveAndLines(t *testing.T) {
	path, issues := Parse("m 0 0 l 100 0 l 100 100 l 0 100", 1)
	require.Empty(t, issues)
	require.Len(t, path.Commands, 4)
	assert.Equal(t, MoveTo, path.Commands[0].Kind)
	assert.Equal(t, Point{0, 0}, path.Commands[0].Points[0])
	assert.Equal(t, LineTo, path.Commands[3].Kind)
	assert.Equal(t, Point{0, 100}, path.Commands[3].Points[0])
	assert.Equal(t, float32(0), path.MinX)
	assert.Equal(t, float32(100), path.MaxX)
	assert.Equal(t, float32(0), path.MinY)
	assert.Equal(t, float32(100), path.MaxY)
}

func TestParseBezierCommand(t *testing.T) {
	path, issues := Parse("m 0 0 b 0 50 50 100 100 100", 1)
	require.Empty(t, issues)
	require.Len(t, path.Commands, 2)
	assert.Equal(t, CubicTo, path.Commands[1].Kind)
	assert.Equal(t, Point{0, 50}, path.Commands[1].Points[0])
	assert.Equal(t, Point{50, 100}, path.Commands[1].Points[1])
	assert.Equal(t, Point{100, 100}, path.Commands[1].Points[2])
}

func TestParseScalesCoordinatesByLevel(t *testing.T) {
	path, issues := Parse("m 0 0 l 200 0", 2)
	require.Empty(t, issues)
	assert.Equal(t, Point{0, 0}, path.Commands[0].Points[0])
	assert.Equal(t, Point{100, 0}, path.Commands[1].Points[0])
}

func TestParseUnrecognizedCommandReportsIssue(t *testing.T) {
	path, issues := Parse("m 0 0 x 5 5", 1)
	require.Len(t, issues, 1)
	assert.Equal(t, "unrecognized drawing command", issues[0].Message)
	assert.Equal(t, "x", issues[0].Command)
	assert.Len(t, path.Commands, 1)
}

func TestParseLineBeforeMoveReportsIssue(t *testing.T) {
	_, issues := Parse("l 5 5", 1)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "before any m")
}

func TestParseBSplineClosedEmitsCubicsAndClose(t *testing.T) {
	path, issues := Parse("m 0 0 s 0 0 50 100 100 0 c", 1)
	require.Empty(t, issues)

	// The closed spline is emitted as cubic segments, and c closes the
	// path.
	last := path.Commands[len(path.Commands)-1]
	assert.Equal(t, Close, last.Kind)

	var sawCubic bool
	for _, cmd := range path.Commands {
		if cmd.Kind == CubicTo {
			sawCubic = true
		}
	}
	assert.True(t, sawCubic)
}

func TestParsePWithoutActiveSplineReportsIssue(t *testing.T) {
	_, issues := Parse("m 0 0 p 10 10", 1)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "without an active")
}

func TestParseSplineTooFewPointsReportsIssue(t *testing.T) {
	_, issues := Parse("m 0 0 s 10 10", 1)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "at least 3 points")
}

func TestAlignAnchorTopLeftUsesMinCorner(t *testing.T) {
	path, _ := Parse("m 0 0 l 100 0 l 100 100 l 0 100", 1)
	dx, dy := AlignAnchor(path, style.Alignment(7), 50, 60)
	assert.Equal(t, float32(50), dx)
	assert.Equal(t, float32(60), dy)
}

func TestAlignAnchorBottomCenterUsesMaxYMidX(t *testing.T) {
	path, _ := Parse("m 0 0 l 100 0 l 100 100 l 0 100", 1)
	dx, dy := AlignAnchor(path, style.Alignment(2), 0, 0)
	assert.Equal(t, float32(-50), dx)
	assert.Equal(t, float32(-100), dy)
}
