// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asslib/ass/ast"
	"github.com/asslib/ass/extmgr"
)

const sample = "" +
	"[Script Info]\n" +
	"Title: Example\n" +
	"ScriptType: v4.00+\n" +
	"\n" +
	"[V4+ Styles]\n" +
	"Format: Name, Fontname, Fontsize, PrimaryColour\n" +
	"Style: Default,Arial,20,&H00FFFFFF\n" +
	"\n" +
	"[Events]\n" +
	"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n" +
	"Dialogue: 0,0:00:01.00,0:00:04.00,Default,,0,0,0,,Hello, world!\n"

func TestParseBasicScript(t *testing.T) {
	script := Parse([]byte(sample))
	require.Empty(t, script.Issues)
	assert.Equal(t, ast.AssV4, script.Version)

	info := script.ScriptInfo()
	require.NotNil(t, info)
	title, ok := info.Get(script.Source, "Title")
	require.True(t, ok)
	assert.Equal(t, "Example", title)

	styles := script.Styles()
	require.NotNil(t, styles)
	require.Len(t, styles.Styles, 1)
	assert.Equal(t, "Default", styles.Styles[0].Name(script.Source, styles.Format))

	events := script.Events()
	require.NotNil(t, events)
	require.Len(t, events.Events, 1)
	ev := events.Events[0]
	assert.Equal(t, ast.Dialogue, ev.Type)
	// The Text field absorbed the extra top-level comma in "Hello, world!"
	// because it is the last of ten declared fields.
	assert.Equal(t, "Hello, world!", ev.Text(script.Source, events.Format))
}

func TestParseSsaVersionDetection(t *testing.T) {
	src := "[Script Info]\nScriptType: v4.00\n"
	script := Parse([]byte(src))
	assert.Equal(t, ast.SsaV4, script.Version)
}

func TestParseDefaultsToAssWhenScriptTypeMissing(t *testing.T) {
	script := Parse([]byte("[Script Info]\nTitle: x\n"))
	assert.Equal(t, ast.AssV4, script.Version)
}

func TestParseInsufficientFieldsPadsAndWarns(t *testing.T) {
	src := "[V4+ Styles]\n" +
		"Format: Name, Fontname, Fontsize, PrimaryColour\n" +
		"Style: Default,Arial\n"
	script := Parse([]byte(src))
	require.Len(t, script.Issues, 1)
	assert.Equal(t, ast.InsufficientFields, script.Issues[0].Kind)
	assert.Equal(t, ast.Warning, script.Issues[0].Severity)

	styles := script.Styles()
	require.Len(t, styles.Styles, 1)
	assert.Len(t, styles.Styles[0].Fields, 4)
	sizeSpan := styles.Styles[0].Fields[2]
	assert.Equal(t, 0, sizeSpan.Len())
}

func TestParseUnsupportedSectionIsSkippedByDefault(t *testing.T) {
	src := "[Aegisub Project Garbage]\nScaledBorderAndShadow: yes\n[Script Info]\nTitle: x\n"
	script := Parse([]byte(src))
	require.Len(t, script.Sections, 1)
	assert.Equal(t, ast.ScriptInfoType, script.Sections[0].Type())

	var sawUnsupported bool
	for _, iss := range script.Issues {
		if iss.Kind == ast.UnsupportedSection {
			sawUnsupported = true
		}
	}
	assert.True(t, sawUnsupported)
}

func TestParseUnsupportedSectionRetainedWithActiveExtension(t *testing.T) {
	mgr := extmgr.New()
	require.NoError(t, mgr.Register("Aegisub Project Garbage"))

	src := "[Aegisub Project Garbage]\nScaledBorderAndShadow: yes\nLast Style Storage: Default\n"
	script := Parse([]byte(src), WithExtensions(mgr))
	require.Len(t, script.Sections, 1)
	generic, ok := script.Sections[0].(*ast.GenericSection)
	require.True(t, ok)
	assert.Equal(t, "Aegisub Project Garbage", generic.Name)
	assert.Len(t, generic.Lines, 2)
}

func TestParseStyleLineBeforeFormatIsAnError(t *testing.T) {
	src := "[V4+ Styles]\nStyle: Default,Arial,20\n"
	script := Parse([]byte(src))
	require.Len(t, script.Issues, 1)
	assert.Equal(t, ast.MissingFormat, script.Issues[0].Kind)
	assert.Equal(t, ast.Error, script.Issues[0].Severity)
}

func TestParseFontsAttachment(t *testing.T) {
	src := "[Fonts]\n" +
		"fontname: arial.ttf\n" +
		"QlpoOTFBWSZTWX...\n" +
		"ZnVydGhlciBsaW5l\n"
	script := Parse([]byte(src))
	require.Len(t, script.Sections, 1)
	fonts, ok := script.Sections[0].(*ast.FontsSection)
	require.True(t, ok)
	require.Len(t, fonts.Attachments, 1)
	att := fonts.Attachments[0]
	assert.Equal(t, "arial.ttf", string(att.Filename.Text(script.Source)))
	assert.Len(t, att.DataLines, 2)
}

func TestParseMalformedSectionHeaderRecordsIssue(t *testing.T) {
	script := Parse([]byte("[Script Info\nTitle: x\n"))
	require.Len(t, script.Issues, 1)
	assert.Equal(t, ast.MalformedHeader, script.Issues[0].Kind)
}

func TestParseNeverPanicsOnEmptySource(t *testing.T) {
	script := Parse(nil)
	assert.Empty(t, script.Sections)
	assert.Empty(t, script.Issues)
}
