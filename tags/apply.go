// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tags

import (
	"strings"

	"github.com/asslib/ass/style"
)

// Apply mutates s in place to reflect tag, per the grammar in spec 4.G.
// \r and \t are handled by [Process] rather than here: \r needs a named
// style to reset to, which this function has no access to, and \t queues
// a [Transform] instead of mutating s immediately.
func Apply(s *State, t Tag) {
	arg := func() string {
		if len(t.Args) == 0 {
			return ""
		}
		return t.Args[0]
	}
	switch t.Name {
	case "b":
		s.Bold = arg() != "0" && arg() != ""
	case "i":
		s.Italic = arg() != "0" && arg() != ""
	case "u":
		s.Underline = arg() != "0" && arg() != ""
	case "s":
		s.StrikeOut = arg() != "0" && arg() != ""
	case "fn":
		name := strings.TrimSpace(arg())
		if name == "" {
			return // \fn with no name leaves FontName as it is; the style's own font is not restored
		}
		s.FontName = name
	case "fs":
		s.FontSize = parseNum(arg(), s.FontSize)
	case "fscx":
		s.ScaleX = parseNum(arg(), s.ScaleX)
	case "fscy":
		s.ScaleY = parseNum(arg(), s.ScaleY)
	case "fsp":
		s.Spacing = parseNum(arg(), s.Spacing)
	case "frx":
		s.RotX = parseNum(arg(), s.RotX)
	case "fry":
		s.RotY = parseNum(arg(), s.RotY)
	case "frz", "fr":
		s.RotZ = parseNum(arg(), s.RotZ)
	case "fax":
		s.ShearX = parseNum(arg(), s.ShearX)
	case "fay":
		s.ShearY = parseNum(arg(), s.ShearY)
	case "c", "1c":
		s.Primary = style.ParseColor(arg()).WithAlpha(s.Primary[3])
	case "2c":
		s.Secondary = style.ParseColor(arg()).WithAlpha(s.Secondary[3])
	case "3c":
		s.Outline = style.ParseColor(arg()).WithAlpha(s.Outline[3])
	case "4c":
		s.Shadow = style.ParseColor(arg()).WithAlpha(s.Shadow[3])
	case "alpha":
		a := style.ParseAlpha(arg())
		s.Primary[3], s.Secondary[3], s.Outline[3], s.Shadow[3] = a, a, a, a
	case "1a":
		s.Primary[3] = style.ParseAlpha(arg())
	case "2a":
		s.Secondary[3] = style.ParseAlpha(arg())
	case "3a":
		s.Outline[3] = style.ParseAlpha(arg())
	case "4a":
		s.Shadow[3] = style.ParseAlpha(arg())
	case "bord":
		s.BorderX, s.BorderY = parseNum(arg(), s.BorderX), parseNum(arg(), s.BorderY)
	case "xbord":
		s.BorderX = parseNum(arg(), s.BorderX)
	case "ybord":
		s.BorderY = parseNum(arg(), s.BorderY)
	case "shad":
		s.ShadowX, s.ShadowY = parseNum(arg(), s.ShadowX), parseNum(arg(), s.ShadowY)
	case "xshad":
		s.ShadowX = parseNum(arg(), s.ShadowX)
	case "yshad":
		s.ShadowY = parseNum(arg(), s.ShadowY)
	case "blur":
		s.Blur = parseNum(arg(), s.Blur)
	case "be":
		s.EdgeBlur = parseNum(arg(), s.EdgeBlur)
	case "an":
		s.Alignment = style.Alignment(parseIntArg(arg(), int(s.Alignment)))
	case "a":
		s.Alignment = style.NormalizeAlignment(parseIntArg(arg(), int(s.Alignment)))
	case "pos":
		applyPos(s, t.Args)
	case "move":
		applyMove(s, t.Args)
	case "org":
		applyOrg(s, t.Args)
	case "fad":
		applyFad(s, t.Args)
	case "fade":
		applyFade(s, t.Args)
	case "clip":
		applyClip(s, t.Args, false)
	case "iclip":
		applyClip(s, t.Args, true)
	case "k":
		s.Karaoke = append(s.Karaoke, KaraokeEntry{Style: KaraokeBasic, DurationCs: parseIntArg(arg(), 0)})
	case "K", "kf":
		s.Karaoke = append(s.Karaoke, KaraokeEntry{Style: KaraokeFill, DurationCs: parseIntArg(arg(), 0)})
	case "ko":
		s.Karaoke = append(s.Karaoke, KaraokeEntry{Style: KaraokeOutline, DurationCs: parseIntArg(arg(), 0)})
	case "kt":
		s.Karaoke = append(s.Karaoke, KaraokeEntry{Style: KaraokeSweep, DurationCs: parseIntArg(arg(), 0)})
	case "p":
		s.DrawingMode = parseIntArg(arg(), 0)
	case "pbo":
		// baseline offset for drawing-mode text; not part of State's
		// animatable fields, tracked by the drawing-command parser itself.
	case "q":
		// wrap-style flag: affects the segmenter's \n vs \N handling, not
		// per-run State.
	}
}

func applyPos(s *State, args []string) {
	if len(args) < 2 {
		return
	}
	s.Position = Position{Mode: PositionFixedPoint, X: parseNum(args[0], 0), Y: parseNum(args[1], 0)}
}

func applyMove(s *State, args []string) {
	if len(args) < 4 {
		return
	}
	p := Position{
		Mode: PositionMove,
		X:    parseNum(args[0], 0), Y: parseNum(args[1], 0),
		X2: parseNum(args[2], 0), Y2: parseNum(args[3], 0),
	}
	if len(args) >= 6 {
		p.T1Ms, p.T2Ms, p.HasMoveTimes = parseIntArg(args[4], 0), parseIntArg(args[5], 0), true
	}
	s.Position = p
}

func applyOrg(s *State, args []string) {
	if len(args) < 2 {
		return
	}
	s.Origin = Origin{Set: true, X: parseNum(args[0], 0), Y: parseNum(args[1], 0)}
}

func applyFad(s *State, args []string) {
	if len(args) < 2 {
		return
	}
	s.Fade = Fade{Mode: FadeSimple, InCs: parseIntArg(args[0], 0), OutCs: parseIntArg(args[1], 0)}
}

func applyFade(s *State, args []string) {
	if len(args) < 7 {
		return
	}
	s.Fade = Fade{
		Mode: FadeComplex,
		A1:   parseIntArg(args[0], 0), A2: parseIntArg(args[1], 0), A3: parseIntArg(args[2], 0),
		T1: parseIntArg(args[3], 0), T2: parseIntArg(args[4], 0), T3: parseIntArg(args[5], 0), T4: parseIntArg(args[6], 0),
	}
}

func applyClip(s *State, args []string, inverse bool) {
	if len(args) == 4 && allNumeric(args) {
		s.Clip = Clip{
			Mode: ClipRect, Inverse: inverse,
			X1: parseNum(args[0], 0), Y1: parseNum(args[1], 0),
			X2: parseNum(args[2], 0), Y2: parseNum(args[3], 0),
		}
		return
	}
	path := strings.Join(args, ",")
	if len(args) > 0 {
		// \clip([scale,]drawing) — drop a leading bare scale number, the
		// drawing-command parser itself only consumes path commands.
		if _, ok := parseNumStrict(args[0]); ok && len(args) > 1 {
			path = strings.Join(args[1:], ",")
		}
	}
	s.Clip = Clip{Mode: ClipVector, Inverse: inverse, Path: path}
}

func allNumeric(args []string) bool {
	for _, a := range args {
		if _, ok := parseNumStrict(a); !ok {
			return false
		}
	}
	return true
}

func parseNumStrict(s string) (float32, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9') && r != '.' && r != '-' {
			return 0, false
		}
	}
	return parseNum(s, 0), true
}
