// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBlocksLocatesNonNestedBraces(t *testing.T) {
	blocks := findBlocks(`Hello {\b1}world{\b0} tail`)
	require.Len(t, blocks, 2)
	assert.Equal(t, `{\b1}`, `Hello {\b1}world{\b0} tail`[blocks[0].start:blocks[0].end])
	assert.Equal(t, `{\b0}`, `Hello {\b1}world{\b0} tail`[blocks[1].start:blocks[1].end])
}

func TestFindBlocksIgnoresUnterminatedBrace(t *testing.T) {
	blocks := findBlocks(`no close {\b1 here`)
	assert.Empty(t, blocks)
}

func TestTagInsertWrapsInBracesAndInverts(t *testing.T) {
	d := newDoc()
	ins := &TagInsert{EventIndex: 1, At: 0, Tag: `\i1`}
	_, err := ins.Execute(d)
	require.NoError(t, err)

	events := d.Script().Events()
	text, _ := events.Events[1].Field(d.Source(), events.Format, "Text")
	assert.Equal(t, `{\i1}Second line`, text)

	_, err = ins.Invert().Execute(d)
	require.NoError(t, err)
	assert.Equal(t, fixture, string(d.Source()))
}

func TestTagInsertRawSkipsWrapping(t *testing.T) {
	d := newDoc()
	ins := &TagInsert{EventIndex: 1, At: 0, Tag: `\i1`, InsertRaw: true}
	_, err := ins.Execute(d)
	require.NoError(t, err)
	events := d.Script().Events()
	text, _ := events.Events[1].Field(d.Source(), events.Format, "Text")
	assert.Equal(t, `\i1Second line`, text)
}

func TestTagWrapPairsOpenAndCloseAndInverts(t *testing.T) {
	d := newDoc()
	wrap := &TagWrap{EventIndex: 1, Start: 0, End: 6, OpenTag: `\b1`, CloseTag: `\b0`}
	_, err := wrap.Execute(d)
	require.NoError(t, err)

	events := d.Script().Events()
	text, _ := events.Events[1].Field(d.Source(), events.Format, "Text")
	assert.Equal(t, `{\b1}Second{\b0} line`, text)

	_, err = wrap.Invert().Execute(d)
	require.NoError(t, err)
	assert.Equal(t, fixture, string(d.Source()))
}

func TestTagRemoveAllDropsEveryBlockAndInverts(t *testing.T) {
	d := newDoc()
	rm := &TagRemove{EventIndex: 0, All: true}
	_, err := rm.Execute(d)
	require.NoError(t, err)

	events := d.Script().Events()
	text, _ := events.Events[0].Field(d.Source(), events.Format, "Text")
	assert.Equal(t, "Hello world", text)

	_, err = rm.Invert().Execute(d)
	require.NoError(t, err)
	assert.Equal(t, fixture, string(d.Source()))
}

func TestTagRemovePatternDropsOnlyMatchingTag(t *testing.T) {
	d := newDoc()
	ins := &TagInsert{EventIndex: 0, At: 0, Tag: `\i1\b1`}
	_, err := ins.Execute(d)
	require.NoError(t, err)

	rm := &TagRemove{EventIndex: 0, Pattern: "i"}
	_, err = rm.Execute(d)
	require.NoError(t, err)

	events := d.Script().Events()
	text, _ := events.Events[0].Field(d.Source(), events.Format, "Text")
	assert.Contains(t, text, `\b1`)
	assert.NotContains(t, text, `\i1`)
}

func TestTagRemoveNoMatchReportsMessage(t *testing.T) {
	d := newDoc()
	rm := &TagRemove{EventIndex: 0, Pattern: "zzz"}
	res, err := rm.Execute(d)
	require.NoError(t, err)
	assert.Equal(t, "no matching tags", res.Message)
}

func TestTagReplaceRewritesMatchedTagAndInverts(t *testing.T) {
	d := newDoc()
	rep := &TagReplace{EventIndex: 0, Pattern: "b", Replacement: `\b0`}
	_, err := rep.Execute(d)
	require.NoError(t, err)

	events := d.Script().Events()
	text, _ := events.Events[0].Field(d.Source(), events.Format, "Text")
	assert.Contains(t, text, `\b0`)
	assert.NotContains(t, text, `\b1`)

	_, err = rep.Invert().Execute(d)
	require.NoError(t, err)
	assert.Equal(t, fixture, string(d.Source()))
}

func TestTagParseReturnsStructuredTags(t *testing.T) {
	d := newDoc()
	parsed, issues, err := TagParse{EventIndex: 0}.Parse(d)
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, parsed, 1)
	require.Len(t, parsed[0], 1)
	assert.Equal(t, "b", parsed[0][0].Name)
}
