// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSyllablesAutoAttachesTrailingBoundary(t *testing.T) {
	syl := splitSyllablesAuto("Hi there friend")
	assert.Equal(t, []string{"Hi ", "there ", "friend"}, syl)
}

func TestDistributeDurationsFoldsRemainderIntoLast(t *testing.T) {
	assert.Equal(t, []int{33, 33, 34}, distributeDurations(100, 3))
}

func TestKaraokeGenerateAutoTagsEverySyllableAndInverts(t *testing.T) {
	d := newDoc()
	gen := &KaraokeGenerate{EventIndex: 1, Style: KaraokeStandard, Mode: KaraokeAuto, TotalDurationCs: 200}
	_, err := gen.Execute(d)
	require.NoError(t, err)

	events := d.Script().Events()
	text, _ := events.Events[1].Field(d.Source(), events.Format, "Text")
	assert.Contains(t, text, `\k`)
	assert.Contains(t, text, "Second")
	assert.Contains(t, text, "line")

	_, err = gen.Invert().Execute(d)
	require.NoError(t, err)
	assert.Equal(t, fixture, string(d.Source()))
}

func TestKaraokeGenerateManualUsesGivenSyllables(t *testing.T) {
	d := newDoc()
	gen := &KaraokeGenerate{
		EventIndex:  1,
		Style:       KaraokeFillTag,
		Mode:        KaraokeManual,
		Syllables:   []string{"Se", "cond"},
		DurationsCs: []int{10, 20},
	}
	_, err := gen.Execute(d)
	require.NoError(t, err)

	events := d.Script().Events()
	text, _ := events.Events[1].Field(d.Source(), events.Format, "Text")
	assert.Equal(t, `{\kf10}Se{\kf20}cond`, text)
}

func TestKaraokeGenerateMismatchedDurationsErrors(t *testing.T) {
	d := newDoc()
	gen := &KaraokeGenerate{
		EventIndex:  1,
		Style:       KaraokeStandard,
		Mode:        KaraokeManual,
		Syllables:   []string{"a", "b"},
		DurationsCs: []int{10},
	}
	_, err := gen.Execute(d)
	require.Error(t, err)
}

func TestKaraokeAdjustScaleAndInvert(t *testing.T) {
	d := newDoc()
	gen := &KaraokeGenerate{
		EventIndex: 1, Style: KaraokeStandard, Mode: KaraokeManual,
		Syllables: []string{"Se", "cond"}, DurationsCs: []int{10, 20},
	}
	_, err := gen.Execute(d)
	require.NoError(t, err)

	adj := &KaraokeAdjust{EventIndex: 1, Mode: AdjustScale, Factor: 2}
	_, err = adj.Execute(d)
	require.NoError(t, err)

	events := d.Script().Events()
	text, _ := events.Events[1].Field(d.Source(), events.Format, "Text")
	assert.Equal(t, `{\k20}Se{\k40}cond`, text)

	_, err = adj.Invert().Execute(d)
	require.NoError(t, err)
	events = d.Script().Events()
	text, _ = events.Events[1].Field(d.Source(), events.Format, "Text")
	assert.Equal(t, `{\k10}Se{\k20}cond`, text)
}

func TestKaraokeAdjustOffsetClampsAtZero(t *testing.T) {
	d := newDoc()
	gen := &KaraokeGenerate{
		EventIndex: 1, Style: KaraokeStandard, Mode: KaraokeManual,
		Syllables: []string{"Se", "cond"}, DurationsCs: []int{10, 20},
	}
	_, err := gen.Execute(d)
	require.NoError(t, err)

	adj := &KaraokeAdjust{EventIndex: 1, Mode: AdjustOffset, OffsetCs: -1000}
	_, err = adj.Execute(d)
	require.NoError(t, err)

	events := d.Script().Events()
	text, _ := events.Events[1].Field(d.Source(), events.Format, "Text")
	assert.Equal(t, `{\k0}Se{\k0}cond`, text)
}

func TestKaraokeApplyEqualRewritesStyleAndDurationAndInverts(t *testing.T) {
	d := newDoc()
	gen := &KaraokeGenerate{
		EventIndex: 1, Style: KaraokeStandard, Mode: KaraokeManual,
		Syllables: []string{"Se", "cond"}, DurationsCs: []int{10, 20},
	}
	_, err := gen.Execute(d)
	require.NoError(t, err)

	ap := &KaraokeApply{EventIndex: 1, Style: KaraokeFillTag, Mode: ApplyEqual, TotalDurationCs: 100}
	_, err = ap.Execute(d)
	require.NoError(t, err)

	events := d.Script().Events()
	text, _ := events.Events[1].Field(d.Source(), events.Format, "Text")
	assert.Equal(t, `{\kf50}Se{\kf50}cond`, text)

	_, err = ap.Invert().Execute(d)
	require.NoError(t, err)
	events = d.Script().Events()
	text, _ = events.Events[1].Field(d.Source(), events.Format, "Text")
	assert.Equal(t, `{\k10}Se{\k20}cond`, text)
}

func TestKaraokeApplyNoTagsReportsMessage(t *testing.T) {
	d := newDoc()
	ap := &KaraokeApply{EventIndex: 1, Style: KaraokeFillTag, Mode: ApplyEqual, TotalDurationCs: 100}
	res, err := ap.Execute(d)
	require.NoError(t, err)
	assert.Equal(t, "no karaoke tags", res.Message)
}

func TestKaraokeSplitDividesDurationProportionallyAndInverts(t *testing.T) {
	d := newDoc()
	gen := &KaraokeGenerate{
		EventIndex: 1, Style: KaraokeStandard, Mode: KaraokeManual,
		Syllables: []string{"cond"}, DurationsCs: []int{40},
	}
	_, err := gen.Execute(d)
	require.NoError(t, err)

	split := &KaraokeSplit{EventIndex: 1, SyllableIndex: 0, AtRune: 2}
	_, err = split.Execute(d)
	require.NoError(t, err)

	events := d.Script().Events()
	text, _ := events.Events[1].Field(d.Source(), events.Format, "Text")
	assert.Equal(t, `{\k20}co{\k20}nd`, text)

	_, err = split.Invert().Execute(d)
	require.NoError(t, err)
	events = d.Script().Events()
	text, _ = events.Events[1].Field(d.Source(), events.Format, "Text")
	assert.Equal(t, `{\k40}cond`, text)
}

func TestKaraokeSplitRejectsOutOfRangeOffset(t *testing.T) {
	d := newDoc()
	gen := &KaraokeGenerate{
		EventIndex: 1, Style: KaraokeStandard, Mode: KaraokeManual,
		Syllables: []string{"cond"}, DurationsCs: []int{40},
	}
	_, err := gen.Execute(d)
	require.NoError(t, err)

	split := &KaraokeSplit{EventIndex: 1, SyllableIndex: 0, AtRune: 0}
	_, err = split.Execute(d)
	require.Error(t, err)
}
