// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asslib/ass/style"
)

func TestParseBlockSplitsConsecutiveTags(t *testing.T) {
	parsed, issues := ParseBlock(`\b1\i1\fs40`)
	require.Empty(t, issues)
	require.Len(t, parsed, 3)
	assert.Equal(t, "b", parsed[0].Name)
	assert.Equal(t, []string{"1"}, parsed[0].Args)
	assert.Equal(t, "fs", parsed[2].Name)
	assert.Equal(t, []string{"40"}, parsed[2].Args)
}

func TestParseBlockPrefersLongestTagName(t *testing.T) {
	parsed, _ := ParseBlock(`\frz45\fscx50`)
	require.Len(t, parsed, 2)
	assert.Equal(t, "frz", parsed[0].Name)
	assert.Equal(t, "fscx", parsed[1].Name)
}

func TestParseBlockParsesParenTagWithNestedDepth(t *testing.T) {
	parsed, _ := ParseBlock(`\move(10,20,30,40,0,500)`)
	require.Len(t, parsed, 1)
	assert.Equal(t, []string{"10", "20", "30", "40", "0", "500"}, parsed[0].Args)
}

func TestParseBlockRecordsUnknownTagAsIssue(t *testing.T) {
	_, issues := ParseBlock(`\xyzzy1\b1`)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Raw, "xyzzy1")
}

func TestParseBlockFontNameRunsUntilNextBackslash(t *testing.T) {
	parsed, _ := ParseBlock(`\fnComic Sans MS\b1`)
	require.Len(t, parsed, 2)
	assert.Equal(t, []string{"Comic Sans MS"}, parsed[0].Args)
}

func TestApplyBoldItalic(t *testing.T) {
	s := State{}
	Apply(&s, Tag{Name: "b", Args: []string{"1"}})
	Apply(&s, Tag{Name: "i", Args: []string{"1"}})
	assert.True(t, s.Bold)
	assert.True(t, s.Italic)
}

func TestApplyColorPreservesExistingAlpha(t *testing.T) {
	s := State{Primary: style.Color{0, 0, 0, 128}}
	Apply(&s, Tag{Name: "c", Args: []string{"&HFFFFFF&"}})
	assert.Equal(t, style.Color{255, 255, 255, 128}, s.Primary)
}

func TestApplyPosSetsFixedPoint(t *testing.T) {
	s := State{}
	Apply(&s, Tag{Name: "pos", Args: []string{"100", "200"}})
	assert.Equal(t, PositionFixedPoint, s.Position.Mode)
	assert.Equal(t, float32(100), s.Position.X)
}

func TestApplyMoveWithTimes(t *testing.T) {
	s := State{}
	Apply(&s, Tag{Name: "move", Args: []string{"0", "0", "100", "100", "0", "500"}})
	assert.Equal(t, PositionMove, s.Position.Mode)
	assert.True(t, s.Position.HasMoveTimes)
	assert.Equal(t, 500, s.Position.T2Ms)
}

func TestApplyClipRect(t *testing.T) {
	s := State{}
	Apply(&s, Tag{Name: "clip", Args: []string{"0", "0", "100", "100"}})
	assert.Equal(t, ClipRect, s.Clip.Mode)
}

func TestApplyClipVectorPath(t *testing.T) {
	s := State{}
	Apply(&s, Tag{Name: "clip", Args: []string{"m 0 0 l 100 0 100 100 0 100"}})
	assert.Equal(t, ClipVector, s.Clip.Mode)
	assert.Contains(t, s.Clip.Path, "m 0 0")
}

func TestParseTransformExtractsTimesAndAccel(t *testing.T) {
	tr := parseTransform(`0,1000,2,\fs40`)
	assert.Equal(t, 0, tr.T1Ms)
	assert.Equal(t, 1000, tr.T2Ms)
	assert.True(t, tr.HasTimes)
	assert.InDelta(t, 2, tr.Accel, 0.001)
	require.Len(t, tr.Targets, 1)
	assert.Equal(t, "fs", tr.Targets[0].Name)
}

func TestParseTransformStyleOnly(t *testing.T) {
	tr := parseTransform(`\fs40\frz90`)
	assert.False(t, tr.HasTimes)
	assert.InDelta(t, 1, tr.Accel, 0.001)
	require.Len(t, tr.Targets, 2)
}

func TestTransformProgressClampsAndPowersAccel(t *testing.T) {
	tr := Transform{T1Ms: 0, T2Ms: 1000, HasTimes: true, Accel: 2}
	assert.InDelta(t, 0, tr.Progress(-100, 2000), 0.001)
	assert.InDelta(t, 1, tr.Progress(5000, 2000), 0.001)
	assert.InDelta(t, 0.25, tr.Progress(500, 2000), 0.001)
}

func TestTransformApplyInterpolatesFontSize(t *testing.T) {
	base := State{FontSize: 20}
	s := base
	tr := Transform{Targets: []Tag{{Name: "fs", Args: []string{"40"}}}}
	tr.Apply(&s, base, 0.5)
	assert.InDelta(t, 30, s.FontSize, 0.001)
}

func TestProcessAppliesSequentialTagsAndQueuesTransform(t *testing.T) {
	resolve := func(name string) (State, bool) {
		if name == "" || name == "Default" {
			return FromResolved(stubResolved()), true
		}
		return State{}, false
	}
	s, issues := Process(FromResolved(stubResolved()), `\b1\t(0,500,\fs40)`, resolve)
	require.Empty(t, issues)
	assert.True(t, s.Bold)
	require.Len(t, s.Transforms, 1)
	assert.Equal(t, "fs", s.Transforms[0].Targets[0].Name)
}

func TestProcessResetToNamedStyle(t *testing.T) {
	resolve := func(name string) (State, bool) {
		if name == "Alt" {
			return State{FontSize: 99}, true
		}
		return State{}, false
	}
	s, issues := Process(State{FontSize: 10}, `\r Alt`, resolve)
	require.Empty(t, issues)
	assert.Equal(t, float32(99), s.FontSize)
}

func TestProcessUnknownResetRecordsIssue(t *testing.T) {
	resolve := func(name string) (State, bool) { return State{}, false }
	_, issues := Process(State{}, `\rGhost`, resolve)
	require.Len(t, issues, 1)
}

func stubResolved() style.Resolved {
	return style.Resolved{Fontname: "Arial", Fontsize: 20, ScaleX: 100, ScaleY: 100, Alignment: 2, Primary: style.Color{255, 255, 255, 255}}
}
