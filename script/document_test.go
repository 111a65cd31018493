// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asslib/ass/asserr"
	"github.com/asslib/ass/ast"
)

const doc = "" +
	"[Script Info]\n" +
	"Title: Example\n" +
	"\n" +
	"[V4+ Styles]\n" +
	"Format: Name, Fontname, Fontsize\n" +
	"Style: Default,Arial,20\n" +
	"\n" +
	"[Events]\n" +
	"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n" +
	"Dialogue: 0,0:00:01.00,0:00:05.00,Default,,0,0,0,,Hi\n"

func TestDocumentAddStyleAppendsWithinSection(t *testing.T) {
	d := New([]byte(doc))
	require.NoError(t, d.AddStyle("Bold,Arial,24"))

	styles := d.Script().Styles()
	require.Len(t, styles.Styles, 2)
	assert.Equal(t, "Bold", styles.Styles[1].Name(d.Source(), styles.Format))

	// The new line must land before the next section header, not after.
	events := d.Script().Events()
	require.NotNil(t, events)
	require.Len(t, events.Events, 1)
}

func TestDocumentAddEvent(t *testing.T) {
	d := New([]byte(doc))
	require.NoError(t, d.AddEvent(ast.Dialogue, "0,0:00:05.00,0:00:08.00,Default,,0,0,0,,Bye"))

	events := d.Script().Events()
	require.Len(t, events.Events, 2)
	assert.Equal(t, "Bye", events.Events[1].Text(d.Source(), events.Format))
}

func TestDocumentRemoveSection(t *testing.T) {
	d := New([]byte(doc))
	require.NoError(t, d.RemoveSection(ast.StylesType))
	assert.Nil(t, d.Script().Styles())
	assert.NotNil(t, d.Script().Events())
	assert.NotNil(t, d.Script().ScriptInfo())
}

func TestDocumentRemoveSectionNotFoundError(t *testing.T) {
	d := New([]byte(doc))
	err := d.RemoveSection(ast.FontsType)
	require.Error(t, err)
	assert.True(t, asserr.Is(err, asserr.SectionNotFound))
}

func TestDocumentSetStylesFormatRewritesExistingLine(t *testing.T) {
	d := New([]byte(doc))
	require.NoError(t, d.SetStylesFormat([]string{"Name", "Fontname", "Fontsize", "Bold"}))
	assert.Equal(t, []string{"Name", "Fontname", "Fontsize", "Bold"}, d.Script().Styles().Format.Names)
}

func TestDocumentUpdateLineAtOffset(t *testing.T) {
	d := New([]byte(doc))
	offset := indexOf(doc, "Title: Example")
	require.NoError(t, d.UpdateLineAtOffset(offset, "Title: Renamed"))
	title, ok := d.Script().ScriptInfo().Get(d.Source(), "Title")
	require.True(t, ok)
	assert.Equal(t, "Renamed", title)
}

func TestChangeTrackerRecordsInOrder(t *testing.T) {
	d := New([]byte(doc), WithChangeTracking())
	require.NoError(t, d.AddStyle("Bold,Arial,24"))
	require.NoError(t, d.RemoveSection(ast.FontsType)) // fails, should not be recorded

	entries := d.Tracker().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, Added, entries[0].Kind)
}

func TestAtomicRollsBackOnFailure(t *testing.T) {
	d := New([]byte(doc), WithChangeTracking())
	before := append([]byte(nil), d.Source()...)

	err := d.Atomic(
		func(dd *Document) error { return dd.AddStyle("Bold,Arial,24") },
		func(dd *Document) error { return dd.RemoveSection(ast.FontsType) }, // fails
	)
	require.Error(t, err)
	assert.Equal(t, before, d.Source())
	assert.Equal(t, 0, d.Tracker().Len())
}

func TestAtomicCommitsAllOnSuccess(t *testing.T) {
	d := New([]byte(doc), WithChangeTracking())
	err := d.Atomic(
		func(dd *Document) error { return dd.AddStyle("Bold,Arial,24") },
		func(dd *Document) error { return dd.AddEvent(ast.Comment, "0,0:00:05.00,0:00:06.00,,,0,0,0,,note") },
	)
	require.NoError(t, err)
	assert.Len(t, d.Script().Styles().Styles, 2)
	assert.Len(t, d.Script().Events().Events, 2)
	assert.Equal(t, 2, d.Tracker().Len())
}

func TestFluentBuilderChainsAndReportsFirstError(t *testing.T) {
	_, err := NewBuilder([]byte(doc)).
		AddStyle("Bold,Arial,24").
		RemoveSection(ast.FontsType). // fails
		AddEvent(ast.Comment, "ignored").
		Document()
	require.Error(t, err)
}

func TestFluentBuilderSuccess(t *testing.T) {
	built, err := NewBuilder([]byte(doc)).
		AddStyle("Bold,Arial,24").
		SetEventsFormat("Layer", "Start", "End", "Style", "Name", "MarginL", "MarginR", "MarginV", "Effect", "Text").
		Document()
	require.NoError(t, err)
	assert.Len(t, built.Script().Styles().Styles, 2)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
