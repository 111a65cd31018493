// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

// Style is one `Style: ...` line, stored as raw field spans aligned to the
// enclosing [StylesSection]'s FormatTable. The canonical ASS field names
// are Name, Fontname, Fontsize, PrimaryColour, SecondaryColour,
// OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX,
// ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment,
// MarginL, MarginR, MarginV, (MarginT, MarginB for some extensions),
// Encoding, and (RelativeTo for some extensions). None of that is
// hardcoded here: Style is a thin Record, and field access always goes
// through the section's FormatTable so an unconventional Format line is
// honored exactly as declared.
type Style struct {
	Record
}

// Name returns the style's Name field, defaulting to "" if the format has
// no Name column (malformed script).
func (s Style) Name(source []byte, format *FormatTable) string {
	v, _ := s.Field(source, format, "Name")
	return v
}
