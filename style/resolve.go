// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package style

import (
	"strconv"
	"strings"

	"github.com/asslib/ass/ast"
)

// Info is the subset of a Script Info section Resolve needs: PlayRes,
// LayoutRes, and ScaledBorderAndShadow. Callers typically build one from
// an *ast.ScriptInfoSection via [InfoFrom].
type Info struct {
	PlayResX, PlayResY     float32
	LayoutResX, LayoutResY float32
	ScaledBorderAndShadow  bool
}

// InfoFrom reads PlayRes/LayoutRes/ScaledBorderAndShadow out of a parsed
// Script Info section, defaulting PlayRes to 384x288 (the classic SSA
// default) when absent and ScaledBorderAndShadow to true per spec 4.E.
func InfoFrom(source []byte, info *ast.ScriptInfoSection) Info {
	out := Info{PlayResX: 384, PlayResY: 288, ScaledBorderAndShadow: true}
	if info == nil {
		return out
	}
	if v, ok := info.Get(source, "PlayResX"); ok {
		out.PlayResX = parseFloat(v, out.PlayResX)
	}
	if v, ok := info.Get(source, "PlayResY"); ok {
		out.PlayResY = parseFloat(v, out.PlayResY)
	}
	out.LayoutResX = out.PlayResX
	out.LayoutResY = out.PlayResY
	if v, ok := info.Get(source, "LayoutResX"); ok {
		out.LayoutResX = parseFloat(v, out.PlayResX)
	}
	if v, ok := info.Get(source, "LayoutResY"); ok {
		out.LayoutResY = parseFloat(v, out.PlayResY)
	}
	if v, ok := info.Get(source, "ScaledBorderAndShadow"); ok {
		out.ScaledBorderAndShadow = parseASSBool(v, true)
	}
	return out
}

// Resolve turns style (looked up by event's Style field, falling back to
// "Default") plus event margin overrides and script info geometry into a
// Resolved value, per spec 4.E. eventsFormat is the enclosing Events
// section's declared field order, needed because an [ast.Event] is a thin
// Record and does not carry its own FormatTable.
func Resolve(source []byte, styles *ast.StylesSection, eventsFormat *ast.FormatTable, event ast.Event, info Info) Resolved {
	st, ok := findStyle(source, styles, event.StyleName(source, eventsFormat))
	if !ok {
		st, ok = findStyle(source, styles, "Default")
	}
	var r Resolved
	if ok {
		r = resolveStyle(source, styles.Format, st)
	} else {
		r = Resolved{Name: "Default", Fontname: "Arial", Fontsize: 20, ScaleX: 100, ScaleY: 100, Alignment: 2, Primary: Color{255, 255, 255, 255}}
	}

	applyEventMargins(source, eventsFormat, &r, event)
	rescale(&r, info)
	r.Complexity = ComplexityScore(r)
	return r
}

// ResolveByName resolves a style purely by name, with no event margin
// overlay — what `\r[name]` needs to reset a run back to a named style's
// own values mid-line, as opposed to [Resolve]'s per-event resolution.
func ResolveByName(source []byte, styles *ast.StylesSection, name string, info Info) (Resolved, bool) {
	st, ok := findStyle(source, styles, name)
	if !ok {
		return Resolved{}, false
	}
	r := resolveStyle(source, styles.Format, st)
	rescale(&r, info)
	r.Complexity = ComplexityScore(r)
	return r, true
}

func findStyle(source []byte, styles *ast.StylesSection, name string) (ast.Style, bool) {
	for _, s := range styles.Styles {
		if s.Name(source, styles.Format) == name {
			return s, true
		}
	}
	return ast.Style{}, false
}

func resolveStyle(source []byte, format *ast.FormatTable, s ast.Style) Resolved {
	field := func(name string) string {
		v, _ := s.Field(source, format, name)
		return v
	}

	var flags Flags
	if parseASSBool(field("Bold"), false) {
		flags |= Bold
	}
	if parseASSBool(field("Italic"), false) {
		flags |= Italic
	}
	if parseASSBool(field("Underline"), false) {
		flags |= Underline
	}
	if parseASSBool(field("StrikeOut"), false) {
		flags |= StrikeOut
	}

	border := BorderOutline
	if int(parseFloat(field("BorderStyle"), 1)) == 3 {
		border = BorderBox
	}

	m := Margins{
		L: parseFloat(field("MarginL"), 0),
		R: parseFloat(field("MarginR"), 0),
		V: parseFloat(field("MarginV"), 0),
	}
	if v, ok := format.IndexOf("MarginT"); ok && v >= 0 {
		if tv := field("MarginT"); tv != "" {
			m.T, m.HasTB = parseFloat(tv, 0), true
		}
	}
	if v, ok := format.IndexOf("MarginB"); ok && v >= 0 {
		if bv := field("MarginB"); bv != "" {
			m.B, m.HasTB = parseFloat(bv, 0), true
		}
	}

	return Resolved{
		Name:        field("Name"),
		Fontname:    field("Fontname"),
		Fontsize:    parseFloat(field("Fontsize"), 20),
		Primary:     ParseColor(field("PrimaryColour")),
		Secondary:   ParseColor(field("SecondaryColour")),
		Outline:     ParseColor(field("OutlineColour")),
		Back:        ParseColor(field("BackColour")),
		Flags:       flags,
		ScaleX:      parseFloat(field("ScaleX"), 100),
		ScaleY:      parseFloat(field("ScaleY"), 100),
		Spacing:     parseFloat(field("Spacing"), 0),
		Angle:       parseFloat(field("Angle"), 0),
		Border:      border,
		OutlineSize: parseFloat(field("Outline"), 2),
		Shadow:      parseFloat(field("Shadow"), 2),
		Alignment:   NormalizeAlignment(int(parseFloat(field("Alignment"), 2))),
		Margins:     m,
		Encoding:    int(parseFloat(field("Encoding"), 1)),
	}
}

// applyEventMargins overrides style margins with the event's own margins
// wherever the event's value is nonzero, per spec 4.E.
func applyEventMargins(source []byte, format *ast.FormatTable, r *Resolved, event ast.Event) {
	if v, ok := event.Field(source, format, "MarginL"); ok {
		if f := parseFloat(v, 0); f != 0 {
			r.Margins.L = f
		}
	}
	if v, ok := event.Field(source, format, "MarginR"); ok {
		if f := parseFloat(v, 0); f != 0 {
			r.Margins.R = f
		}
	}
	if v, ok := event.Field(source, format, "MarginV"); ok {
		if f := parseFloat(v, 0); f != 0 {
			r.Margins.V = f
		}
	}
}

// rescale implements spec 4.E's LayoutRes->PlayRes rescaling: font size
// and vertical quantities scale by PlayResY/LayoutResY, horizontal
// quantities by PlayResX/LayoutResX. Border/shadow rescale only when
// ScaledBorderAndShadow is set.
func rescale(r *Resolved, info Info) {
	if info.LayoutResX == 0 || info.LayoutResY == 0 {
		return
	}
	if info.LayoutResX == info.PlayResX && info.LayoutResY == info.PlayResY {
		return
	}
	sy := info.PlayResY / info.LayoutResY
	sx := info.PlayResX / info.LayoutResX

	r.Fontsize *= sy
	r.Spacing *= sx
	r.Margins.L *= sx
	r.Margins.R *= sx
	r.Margins.V *= sy
	if r.Margins.HasTB {
		r.Margins.T *= sy
		r.Margins.B *= sy
	}
	if info.ScaledBorderAndShadow {
		r.OutlineSize *= sy
		r.Shadow *= sy
	}
}

// ComplexityScore implements spec 4.E's performance-triage heuristic,
// capped at 100.
func ComplexityScore(r Resolved) int {
	score := 0
	switch {
	case r.Fontsize > 72:
		score += 20
	case r.Fontsize > 48:
		score += 10
	}
	switch {
	case r.OutlineSize > 4:
		score += 15
	case r.OutlineSize > 2:
		score += 8
	}
	switch {
	case r.Shadow > 3:
		score += 10
	case r.Shadow > 1:
		score += 5
	}
	if r.ScaleX != 100 || r.ScaleY != 100 {
		score += 10
	}
	if r.Angle != 0 {
		score += 15
	}
	if r.Flags.Has(Bold) {
		score += 2
	}
	if r.Flags.Has(Italic) {
		score += 2
	}
	if r.Flags.Has(Underline) || r.Flags.Has(StrikeOut) {
		score += 5
	}
	if score > 100 {
		score = 100
	}
	return score
}

func parseFloat(s string, def float32) float32 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return def
	}
	return float32(v)
}

func parseASSBool(s string, def bool) bool {
	s = strings.TrimSpace(s)
	switch s {
	case "-1":
		return true
	case "0":
		return false
	default:
		return def
	}
}

