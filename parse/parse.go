// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse consumes the tokenizer's line and section structure into
// an [ast.Script]. It never fails outright: malformed input is recorded as
// an [ast.Issue] and parsing continues, per the recovery policy in the
// error handling design.
package parse

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/asslib/ass/ast"
	"github.com/asslib/ass/extmgr"
	"github.com/asslib/ass/token"
)

// Option configures a Parse call. The functional-options shape mirrors how
// the AWS SDK for Go v2 configures its loaders (config.LoadDefaultConfig),
// which is one of the third-party stacks this module's corpus draws on.
type Option func(*options)

type options struct {
	extensions *extmgr.Manager
}

// WithExtensions registers a section-extension manager so that otherwise
// unrecognized section headers whose name is Active in the manager are
// retained as [ast.GenericSection] values instead of being dropped with an
// UnsupportedSection issue.
func WithExtensions(m *extmgr.Manager) Option {
	return func(o *options) { o.extensions = m }
}

// Parse tokenizes and parses source into a Script. It always returns a
// non-nil Script; parse problems are reported via Script.Issues.
func Parse(source []byte, opts ...Option) *ast.Script {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	p := &parser{source: source, opts: o}
	p.run()

	script := &ast.Script{
		Source:   source,
		Sections: p.sections,
		Issues:   p.issues,
	}
	script.Version = DetectVersion(source, script)
	return script
}

type parser struct {
	source []byte
	opts   options

	sections []ast.Section
	issues   []ast.Issue

	curType ast.SectionType
	active  bool // whether curType refers to a live (non-skipped) section

	curInfo     *ast.ScriptInfoSection
	curStyles   *ast.StylesSection
	curEvents   *ast.EventsSection
	curFonts    *ast.FontsSection
	curGraphics *ast.GraphicsSection
	curGeneric  *ast.GenericSection

	attachmentIdx int // index of the attachment currently receiving data lines, or -1
}

func (p *parser) issue(sev ast.Severity, kind ast.IssueKind, span ast.Span, format string, args ...any) {
	p.issues = append(p.issues, ast.Issue{
		Severity: sev,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	})
}

func (p *parser) run() {
	for _, line := range token.Lines(p.source) {
		content := line.Content.Text(p.source)
		trimmed := bytes.TrimSpace(content)
		if len(trimmed) == 0 {
			continue
		}
		if trimmed[0] == ';' || (len(trimmed) >= 2 && trimmed[0] == '!' && trimmed[1] == ':') {
			continue // file-level comment, not retained
		}
		if trimmed[0] == '[' {
			p.startSection(content, line)
			continue
		}
		if !p.active {
			continue
		}
		switch p.curType {
		case ast.ScriptInfoType:
			p.parseScriptInfoLine(content, line)
		case ast.StylesType:
			p.parseFormattedLine(content, line, true)
		case ast.EventsType:
			p.parseFormattedLine(content, line, false)
		case ast.FontsType:
			p.parseAttachmentLine(content, line, &p.curFonts.Attachments)
		case ast.GraphicsType:
			p.parseAttachmentLine(content, line, &p.curGraphics.Attachments)
		case ast.GenericType:
			p.curGeneric.Lines = append(p.curGeneric.Lines, absSpan(line, 0, len(content)))
		}
	}
}

func absSpan(line token.Line, relStart, relEnd int) ast.Span {
	return ast.Span{
		Start:  line.Content.Start + relStart,
		End:    line.Content.Start + relEnd,
		Line:   line.Number,
		Column: relStart + 1,
	}
}

func trimmedSpan(content []byte, relStart, relEnd int, line token.Line) ast.Span {
	s, e := relStart, relEnd
	for s < e && isHSpace(content[s]) {
		s++
	}
	for e > s && isHSpace(content[e-1]) {
		e--
	}
	return absSpan(line, s, e)
}

func isHSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

func (p *parser) startSection(content []byte, line token.Line) {
	openIdx := bytes.IndexByte(content, '[')
	closeIdx := bytes.IndexByte(content, ']')
	if closeIdx < 0 || closeIdx < openIdx {
		p.issue(ast.Error, ast.MalformedHeader, absSpan(line, 0, len(content)), "section header missing closing ']'")
		p.active = false
		return
	}
	name := strings.TrimSpace(string(content[openIdx+1 : closeIdx]))
	header := absSpan(line, openIdx, closeIdx+1)
	p.attachmentIdx = -1

	switch normalizeSectionName(name) {
	case "script info":
		p.curInfo = &ast.ScriptInfoSection{Header: header, Name: name}
		p.sections = append(p.sections, p.curInfo)
		p.curType, p.active = ast.ScriptInfoType, true
	case "v4+ styles", "v4 styles", "styles":
		p.curStyles = &ast.StylesSection{Header: header, Name: name}
		p.sections = append(p.sections, p.curStyles)
		p.curType, p.active = ast.StylesType, true
	case "events":
		p.curEvents = &ast.EventsSection{Header: header, Name: name}
		p.sections = append(p.sections, p.curEvents)
		p.curType, p.active = ast.EventsType, true
	case "fonts":
		p.curFonts = &ast.FontsSection{Header: header, Name: name}
		p.sections = append(p.sections, p.curFonts)
		p.curType, p.active = ast.FontsType, true
	case "graphics":
		p.curGraphics = &ast.GraphicsSection{Header: header, Name: name}
		p.sections = append(p.sections, p.curGraphics)
		p.curType, p.active = ast.GraphicsType, true
	default:
		if p.opts.extensions.IsActive(name) {
			p.curGeneric = &ast.GenericSection{Header: header, Name: name}
			p.sections = append(p.sections, p.curGeneric)
			p.curType, p.active = ast.GenericType, true
		} else {
			p.issue(ast.Warning, ast.UnsupportedSection, header, "unsupported section %q", name)
			p.active = false
		}
	}
}

func normalizeSectionName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "scriptinfo" {
		return "script info"
	}
	return n
}

func (p *parser) parseScriptInfoLine(content []byte, line token.Line) {
	colon := bytes.IndexByte(content, ':')
	if colon < 0 {
		p.issue(ast.Warning, ast.InvalidFieldFormat, absSpan(line, 0, len(content)), "expected 'Key: Value'")
		return
	}
	keySpan := trimmedSpan(content, 0, colon, line)
	valSpan := trimmedSpan(content, colon+1, len(content), line)
	p.curInfo.Fields = append(p.curInfo.Fields, ast.KV{
		Key:      keySpan,
		Value:    valSpan,
		LineSpan: absSpan(line, 0, len(content)),
	})
}

// parseFormattedLine handles both Styles section lines ("Format:"/
// "Style:") and Events section lines ("Format:"/"Dialogue:"/"Comment:"/
// ...), selected by isStyles.
func (p *parser) parseFormattedLine(content []byte, line token.Line, isStyles bool) {
	colon := bytes.IndexByte(content, ':')
	if colon < 0 {
		p.issue(ast.Warning, ast.InvalidFieldFormat, absSpan(line, 0, len(content)), "expected a 'Keyword: ...' line")
		return
	}
	keyword := strings.TrimSpace(string(content[:colon]))
	rest := content[colon+1:]
	// Conventionally exactly one space follows the colon; skip at most
	// the leading run of horizontal whitespace so field 0 starts exactly
	// where the author's data begins.
	relStart := 0
	for relStart < len(rest) && isHSpace(rest[relStart]) {
		relStart++
	}
	base := line.Content.Start + colon + 1

	if strings.EqualFold(keyword, "Format") {
		p.parseFormatLine(rest[relStart:], base, line, isStyles)
		return
	}

	if isStyles {
		if !strings.EqualFold(keyword, "Style") {
			p.issue(ast.Warning, ast.InvalidFieldFormat, absSpan(line, 0, len(content)), "unrecognized Styles keyword %q", keyword)
			return
		}
		if p.curStyles.Format == nil {
			p.issue(ast.Error, ast.MissingFormat, absSpan(line, 0, len(content)), "Style line before Format line")
			return
		}
		fields, iss := splitRecordFields(rest[relStart:], base, line.Number, len(p.curStyles.Format.Names))
		if iss != nil {
			p.issues = append(p.issues, *iss)
		}
		p.curStyles.Styles = append(p.curStyles.Styles, ast.Style{Record: ast.Record{
			Span:   absSpan(line, 0, len(content)),
			Fields: fields,
		}})
		return
	}

	evType, ok := ast.EventTypeFromKeyword(canonicalEventKeyword(keyword))
	if !ok {
		p.issue(ast.Warning, ast.InvalidEventType, absSpan(line, 0, len(content)), "unrecognized Events keyword %q", keyword)
		return
	}
	if p.curEvents.Format == nil {
		p.issue(ast.Error, ast.MissingFormat, absSpan(line, 0, len(content)), "Events data line before Format line")
		return
	}
	fields, iss := splitRecordFields(rest[relStart:], base, line.Number, len(p.curEvents.Format.Names))
	if iss != nil {
		p.issues = append(p.issues, *iss)
	}
	p.curEvents.Events = append(p.curEvents.Events, ast.Event{
		Record: ast.Record{Span: absSpan(line, 0, len(content)), Fields: fields},
		Type:   evType,
	})
}

var eventKeywords = []string{"Dialogue", "Comment", "Picture", "Sound", "Movie", "Command"}

func canonicalEventKeyword(kw string) string {
	for _, k := range eventKeywords {
		if strings.EqualFold(kw, k) {
			return k
		}
	}
	return kw
}

func (p *parser) parseFormatLine(rest []byte, base int, line token.Line, isStyles bool) {
	parts := bytes.Split(rest, []byte(","))
	names := make([]string, len(parts))
	for i, part := range parts {
		names[i] = strings.TrimSpace(string(part))
	}
	table := ast.NewFormatTable(names)
	if isStyles {
		p.curStyles.Format = table
	} else {
		p.curEvents.Format = table
	}
}

func (p *parser) parseAttachmentLine(content []byte, line token.Line, attachments *[]ast.Attachment) {
	trimmed := strings.TrimSpace(string(content))
	if idx := strings.IndexByte(trimmed, ':'); idx >= 0 && strings.EqualFold(strings.TrimSpace(trimmed[:idx]), "fontname") {
		nameSpan := trimmedSpan(content, strings.IndexByte(string(content), ':')+1, len(content), line)
		*attachments = append(*attachments, ast.Attachment{
			FilenameLine: absSpan(line, 0, len(content)),
			Filename:     nameSpan,
			Span:         absSpan(line, 0, len(content)),
		})
		p.attachmentIdx = len(*attachments) - 1
		return
	}
	if p.attachmentIdx < 0 || p.attachmentIdx >= len(*attachments) {
		return
	}
	att := &(*attachments)[p.attachmentIdx]
	lineSpan := absSpan(line, 0, len(content))
	att.DataLines = append(att.DataLines, lineSpan)
	att.Span.End = lineSpan.End
}
