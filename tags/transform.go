// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tags

import (
	"strings"

	"github.com/chewxy/math32"

	"github.com/asslib/ass/style"
)

// Transform is one `\t(...)` block: an ordered list of target tag
// assignments plus the (t1, t2, accel) progress-curve parameters, per the
// data model's "transforms: an ordered list of Transform{...}".
type Transform struct {
	T1Ms, T2Ms int
	HasTimes   bool
	Accel      float32
	Targets    []Tag
}

// parseTransform splits a `\t(...)` block's inner argument text into its
// optional leading (t1, t2, accel) numbers and its trailing style-tag
// string, per the grammar's four accepted forms: `(style)`,
// `(accel,style)`, `(t1,t2,style)`, `(t1,t2,accel,style)`. The boundary is
// found by scanning for the first top-level backslash: everything before
// it (split on top-level commas) is numeric args, everything from it
// onward is the target tag list.
func parseTransform(raw string) Transform {
	var nums []string
	depth := 0
	last := 0
	tagsRaw := raw
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '\\':
			if depth == 0 {
				tagsRaw = raw[last:]
				goto done
			}
		case ',':
			if depth == 0 {
				nums = append(nums, strings.TrimSpace(raw[last:i]))
				last = i + 1
			}
		}
	}
	tagsRaw = strings.TrimSpace(raw[last:])
done:
	targets, _ := ParseBlock(tagsRaw)
	t := Transform{Targets: targets}
	switch len(nums) {
	case 1:
		t.Accel = parseNum(nums[0], 1)
	case 2:
		t.T1Ms, t.T2Ms, t.HasTimes = parseIntArg(nums[0], 0), parseIntArg(nums[1], 0), true
	case 3:
		t.T1Ms, t.T2Ms, t.HasTimes = parseIntArg(nums[0], 0), parseIntArg(nums[1], 0), true
		t.Accel = parseNum(nums[2], 1)
	}
	if t.Accel == 0 {
		t.Accel = 1
	}
	return t
}

// Progress computes \t's interpolation fraction at a given line-relative
// time, per spec 4.G: p = clamp((nowMs-t1)/(t2-t1), 0, 1)^accel. When the
// block has no explicit (t1,t2), it spans the whole line: callers pass
// lineDurationMs as t2.
func (t Transform) Progress(lineRelativeMs, lineDurationMs int) float32 {
	t1, t2 := t.T1Ms, t.T2Ms
	if !t.HasTimes {
		t1, t2 = 0, lineDurationMs
	}
	if t2 <= t1 {
		return 1
	}
	p := float32(lineRelativeMs-t1) / float32(t2-t1)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return math32.Pow(p, t.Accel)
}

// Apply blends base toward each of t's target tags by progress p and
// writes the result into s: colors blend componentwise via [style.
// Color.Lerp], scalars linearly, alpha following the same inversion
// already folded into [style.Color] by [style.ParseAlpha].
func (t Transform) Apply(s *State, base State, p float32) {
	for _, target := range t.Targets {
		blendTag(s, base, target, p)
	}
}

func blendTag(s *State, base State, t Tag, p float32) {
	arg := func() string {
		if len(t.Args) == 0 {
			return ""
		}
		return t.Args[0]
	}
	lerp := func(from, to float32) float32 { return from + (to-from)*p }

	switch t.Name {
	case "fs":
		s.FontSize = lerp(base.FontSize, parseNum(arg(), base.FontSize))
	case "fscx":
		s.ScaleX = lerp(base.ScaleX, parseNum(arg(), base.ScaleX))
	case "fscy":
		s.ScaleY = lerp(base.ScaleY, parseNum(arg(), base.ScaleY))
	case "fsp":
		s.Spacing = lerp(base.Spacing, parseNum(arg(), base.Spacing))
	case "frx":
		s.RotX = lerp(base.RotX, parseNum(arg(), base.RotX))
	case "fry":
		s.RotY = lerp(base.RotY, parseNum(arg(), base.RotY))
	case "frz", "fr":
		s.RotZ = lerp(base.RotZ, parseNum(arg(), base.RotZ))
	case "fax":
		s.ShearX = lerp(base.ShearX, parseNum(arg(), base.ShearX))
	case "fay":
		s.ShearY = lerp(base.ShearY, parseNum(arg(), base.ShearY))
	case "bord":
		v := lerp(base.BorderX, parseNum(arg(), base.BorderX))
		s.BorderX, s.BorderY = v, v
	case "xbord":
		s.BorderX = lerp(base.BorderX, parseNum(arg(), base.BorderX))
	case "ybord":
		s.BorderY = lerp(base.BorderY, parseNum(arg(), base.BorderY))
	case "shad":
		v := lerp(base.ShadowX, parseNum(arg(), base.ShadowX))
		s.ShadowX, s.ShadowY = v, v
	case "xshad":
		s.ShadowX = lerp(base.ShadowX, parseNum(arg(), base.ShadowX))
	case "yshad":
		s.ShadowY = lerp(base.ShadowY, parseNum(arg(), base.ShadowY))
	case "blur":
		s.Blur = lerp(base.Blur, parseNum(arg(), base.Blur))
	case "be":
		s.EdgeBlur = lerp(base.EdgeBlur, parseNum(arg(), base.EdgeBlur))
	case "c", "1c":
		s.Primary = base.Primary.Lerp(style.ParseColor(arg()).WithAlpha(base.Primary[3]), p)
	case "2c":
		s.Secondary = base.Secondary.Lerp(style.ParseColor(arg()).WithAlpha(base.Secondary[3]), p)
	case "3c":
		s.Outline = base.Outline.Lerp(style.ParseColor(arg()).WithAlpha(base.Outline[3]), p)
	case "4c":
		s.Shadow = base.Shadow.Lerp(style.ParseColor(arg()).WithAlpha(base.Shadow[3]), p)
	case "alpha":
		a := style.ParseAlpha(arg())
		s.Primary[3] = style.LerpAlpha(base.Primary[3], a, p)
		s.Secondary[3] = style.LerpAlpha(base.Secondary[3], a, p)
		s.Outline[3] = style.LerpAlpha(base.Outline[3], a, p)
		s.Shadow[3] = style.LerpAlpha(base.Shadow[3], a, p)
	case "1a":
		s.Primary[3] = style.LerpAlpha(base.Primary[3], style.ParseAlpha(arg()), p)
	case "2a":
		s.Secondary[3] = style.LerpAlpha(base.Secondary[3], style.ParseAlpha(arg()), p)
	case "3a":
		s.Outline[3] = style.LerpAlpha(base.Outline[3], style.ParseAlpha(arg()), p)
	case "4a":
		s.Shadow[3] = style.LerpAlpha(base.Shadow[3], style.ParseAlpha(arg()), p)
	}
}
