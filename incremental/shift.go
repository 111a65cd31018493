// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package incremental

import "github.com/asslib/ass/ast"

// shiftSection returns a copy of sec with every span it carries shifted by
// delta bytes. Used to keep a section whose bytes did not change valid
// against a new source buffer whose earlier content grew or shrank.
func shiftSection(sec ast.Section, delta int) ast.Section {
	if delta == 0 {
		return sec
	}
	switch s := sec.(type) {
	case *ast.ScriptInfoSection:
		out := &ast.ScriptInfoSection{
			Header: s.Header.Shift(delta),
			Name:   s.Name,
			Fields: make([]ast.KV, len(s.Fields)),
		}
		for i, kv := range s.Fields {
			out.Fields[i] = ast.KV{
				Key:      kv.Key.Shift(delta),
				Value:    kv.Value.Shift(delta),
				LineSpan: kv.LineSpan.Shift(delta),
			}
		}
		return out
	case *ast.StylesSection:
		out := &ast.StylesSection{
			Header: s.Header.Shift(delta),
			Name:   s.Name,
			Format: s.Format,
			Styles: make([]ast.Style, len(s.Styles)),
		}
		for i, style := range s.Styles {
			out.Styles[i] = ast.Style{Record: shiftRecord(style.Record, delta)}
		}
		return out
	case *ast.EventsSection:
		out := &ast.EventsSection{
			Header: s.Header.Shift(delta),
			Name:   s.Name,
			Format: s.Format,
			Events: make([]ast.Event, len(s.Events)),
		}
		for i, ev := range s.Events {
			out.Events[i] = ast.Event{Record: shiftRecord(ev.Record, delta), Type: ev.Type}
		}
		return out
	case *ast.FontsSection:
		return &ast.FontsSection{
			Header:      s.Header.Shift(delta),
			Name:        s.Name,
			Attachments: shiftAttachments(s.Attachments, delta),
		}
	case *ast.GraphicsSection:
		return &ast.GraphicsSection{
			Header:      s.Header.Shift(delta),
			Name:        s.Name,
			Attachments: shiftAttachments(s.Attachments, delta),
		}
	case *ast.GenericSection:
		out := &ast.GenericSection{
			Header: s.Header.Shift(delta),
			Name:   s.Name,
			Lines:  make([]ast.Span, len(s.Lines)),
		}
		for i, l := range s.Lines {
			out.Lines[i] = l.Shift(delta)
		}
		return out
	default:
		return sec
	}
}

func shiftRecord(r ast.Record, delta int) ast.Record {
	out := ast.Record{Span: r.Span.Shift(delta), Fields: make([]ast.Span, len(r.Fields))}
	for i, f := range r.Fields {
		out.Fields[i] = f.Shift(delta)
	}
	return out
}

func shiftAttachments(atts []ast.Attachment, delta int) []ast.Attachment {
	out := make([]ast.Attachment, len(atts))
	for i, a := range atts {
		lines := make([]ast.Span, len(a.DataLines))
		for j, l := range a.DataLines {
			lines[j] = l.Shift(delta)
		}
		out[i] = ast.Attachment{
			FilenameLine: a.FilenameLine.Shift(delta),
			Filename:     a.Filename.Shift(delta),
			DataLines:    lines,
			Span:         a.Span.Shift(delta),
		}
	}
	return out
}
