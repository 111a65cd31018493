// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"image/color"
	"strings"

	"github.com/asslib/ass/asserr"
	"github.com/asslib/ass/cache"
	"github.com/asslib/ass/drawing"
	"github.com/asslib/ass/layout"
	"github.com/asslib/ass/raster"
	"github.com/asslib/ass/segment"
	"github.com/asslib/ass/shape"
	"github.com/asslib/ass/style"
	"github.com/asslib/ass/tags"
)

const degToRad = 3.14159265 / 180

// preparedEvent is one active event's rendering inputs, measured and
// positioned in render pixels and ready to turn into layers once its
// [layout.Placement] is known.
type preparedEvent struct {
	layout     layout.Event
	lineHeight float32
	lines      [][]textSegment // nil for a drawing-mode event
	drawing    *drawingBlock   // nil for a text event
}

// textSegment is one segmenter run, already shaped and positioned along
// its own line.
type textSegment struct {
	run        shape.Run
	x          float32 // offset from the line's left edge, after per-line alignment
	fontSizePx float32
	baseColor  color.NRGBA
	effects    raster.TextEffects
}

// drawingBlock is a `\p` vector path, already scaled into render space.
type drawingBlock struct {
	path   drawing.Path
	fill   color.NRGBA
	stroke *raster.Stroke
}

// buildLayers turns a preparedEvent into the ordered layer list the
// compositor draws for it, given where layout placed its block.
func (pe preparedEvent) buildLayers(p layout.Placement) []raster.Layer {
	if pe.drawing != nil {
		d := pe.drawing
		return []raster.Layer{raster.VectorLayer{
			Path:   d.path,
			X:      p.X - d.path.MinX,
			Y:      p.Y - d.path.MinY,
			Fill:   d.fill,
			Stroke: d.stroke,
		}}
	}
	var layers []raster.Layer
	for i, line := range pe.lines {
		y := p.Y + float32(i)*pe.lineHeight
		for _, seg := range line {
			layers = append(layers, raster.TextLayer{
				Run:        seg.run,
				FontSizePx: seg.fontSizePx,
				BaseColor:  seg.baseColor,
				X:          p.X + seg.x,
				Y:          y,
				Effects:    seg.effects,
			})
		}
	}
	return layers
}

// prepareEvent resolves ae's style, walks its tag-annotated text, shapes
// or parses its drawing commands, and measures the resulting block, ready
// for this frame's collision pass. It returns (nil, nil) for an event
// whose text contains no renderable segments (empty Dialogue lines).
func (p *Pipeline) prepareEvent(ae activeEvent, timeCs, width, height int) (*preparedEvent, error) {
	e := ae.event
	resolved := style.Resolve(p.source, p.styles, p.eventsFormat, e, p.info)
	base := tags.FromResolved(resolved)

	resolve := func(name string) (tags.State, bool) {
		if name == "" {
			return base, true
		}
		r, ok := style.ResolveByName(p.source, p.styles, name, p.info)
		if !ok {
			return tags.State{}, false
		}
		return tags.FromResolved(r), true
	}

	text := e.Text(p.source, p.eventsFormat)
	// Tag issues (an unknown \r target, a malformed argument) are
	// recoverable: Process already fell back to a no-op for the offending
	// tag, so rendering continues with whatever state resulted.
	segs, _ := segment.Walk(text, base, resolve, p.wrap)
	if len(segs) == 0 {
		return nil, nil
	}

	scaleX := float32(width) / p.info.PlayResX
	scaleY := float32(height) / p.info.PlayResY
	head := segs[0].Tags
	durMs := (ae.endCs - ae.startCs) * 10
	nowMs := (timeCs - ae.startCs) * 10

	le := layout.Event{
		Layer:     eventLayer(p.source, p.eventsFormat, e),
		Start:     ae.startCs,
		End:       ae.endCs,
		Alignment: int(head.Alignment),
		MarginL:   resolved.Margins.L,
		MarginR:   resolved.Margins.R,
		MarginV:   resolved.Margins.V,
	}
	applyPosition(&le, head.Position, ae.startCs, ae.endCs, timeCs)

	if head.DrawingMode > 0 {
		return p.prepareDrawing(le, head, segs, scaleX, scaleY, nowMs, durMs)
	}
	return p.prepareText(le, base, segs, resolved, scaleX, scaleY, ae.startCs, nowMs, durMs)
}

func (p *Pipeline) prepareDrawing(le layout.Event, head tags.State, segs []segment.Segment, scaleX, scaleY float32, nowMs, durMs int) (*preparedEvent, error) {
	var commands strings.Builder
	for i, s := range segs {
		if i > 0 {
			commands.WriteByte(' ')
		}
		commands.WriteString(s.Text)
	}
	key := cache.PathKey{Commands: commands.String(), Level: head.DrawingMode}
	path, ok := p.paths.Get(key)
	if !ok {
		var issues []drawing.Issue
		path, issues = drawing.Parse(commands.String(), head.DrawingMode)
		if len(issues) > 0 {
			return nil, asserr.New(asserr.CommandFailed, "%d drawing-command issue(s)", len(issues))
		}
		p.paths.Put(key, path)
	}
	scaled := scalePath(path, scaleX, scaleY)

	le.BlockWidth = scaled.MaxX - scaled.MinX
	le.BlockHeight = scaled.MaxY - scaled.MinY
	le.LineHeight = le.BlockHeight
	le.Lines = 1

	fade := fadeAlphaFactor(head.Fade, nowMs, durMs)

	var stroke *raster.Stroke
	if head.BorderX > 0 || head.BorderY > 0 {
		width := head.BorderX * scaleX
		if w := head.BorderY * scaleY; w > width {
			width = w
		}
		stroke = &raster.Stroke{Color: scaleColorAlpha(colorNRGBA(head.Outline), fade), Width: width}
	}

	return &preparedEvent{
		layout: le,
		drawing: &drawingBlock{
			path:   scaled,
			fill:   scaleColorAlpha(colorNRGBA(head.Primary), fade),
			stroke: stroke,
		},
	}, nil
}

func (p *Pipeline) prepareText(le layout.Event, base tags.State, segs []segment.Segment, resolved style.Resolved, scaleX, scaleY float32, startCs, nowMs, durMs int) (*preparedEvent, error) {
	lineHeight := resolved.Fontsize * scaleY
	lines := segment.Lines(segs)

	built := make([][]textSegment, len(lines))
	lineWidths := make([]float32, len(lines))

	for li, line := range lines {
		var x float32
		karaokeAccumMs := 0
		for _, s := range line {
			effTags := applyTransforms(s.Tags, base, nowMs, durMs)

			req := shape.Request{
				Text:      s.Text,
				Family:    effTags.FontName,
				SizePx:    effTags.FontSize * scaleY,
				Bold:      effTags.Bold,
				Italic:    effTags.Italic,
				SpacingPx: effTags.Spacing * scaleX,
			}
			key := cache.KeyFor(req)
			run, ok := p.shaped.Get(key)
			if !ok {
				var err error
				run, err = p.shaper.Shape(req)
				if err != nil {
					return nil, err
				}
				p.shaped.Put(key, run)
			}

			var kar *raster.Karaoke
			if n := len(effTags.Karaoke); n > 0 {
				entry := effTags.Karaoke[n-1]
				syllableStart := startCs + karaokeAccumMs/10
				progress := karaokeProgress(startCs+nowMs/10, syllableStart, entry.DurationCs)
				kar = &raster.Karaoke{Progress: progress, Style: int(entry.Style), HighlightColor: colorNRGBA(effTags.Secondary)}
				karaokeAccumMs += entry.DurationCs * 10
			}

			fade := fadeAlphaFactor(effTags.Fade, nowMs, durMs)
			seg := textSegment{
				run:        run,
				x:          x,
				fontSizePx: effTags.FontSize * scaleY,
				baseColor:  scaleColorAlpha(colorNRGBA(effTags.Primary), fade),
				effects:    textEffectsFor(effTags, scaleX, scaleY, kar, fade),
			}
			built[li] = append(built[li], seg)

			width := run.Width * (effTags.ScaleX / 100)
			x += width
		}
		lineWidths[li] = x
	}

	var blockWidth float32
	for _, w := range lineWidths {
		if w > blockWidth {
			blockWidth = w
		}
	}
	for li := range built {
		offset := alignOffset(le.Alignment, blockWidth, lineWidths[li])
		for i := range built[li] {
			built[li][i].x += offset
		}
	}

	le.BlockWidth = blockWidth
	le.BlockHeight = lineHeight * float32(len(lines))
	le.LineHeight = lineHeight
	le.Lines = len(lines)

	return &preparedEvent{layout: le, lineHeight: lineHeight, lines: built}, nil
}

// alignOffset centers or right-aligns a narrower line within the block's
// own width, the way a subtitle block with mixed-length lines visually
// keeps every line sharing the block's horizontal anchor.
func alignOffset(alignment int, blockWidth, lineWidth float32) float32 {
	switch style.Alignment(alignment).HorizontalAnchor() {
	case -1:
		return 0
	case 1:
		return blockWidth - lineWidth
	default:
		return (blockWidth - lineWidth) / 2
	}
}

func textEffectsFor(t tags.State, scaleX, scaleY float32, kar *raster.Karaoke, fade float32) raster.TextEffects {
	eff := raster.TextEffects{
		Underline:     t.Underline,
		Strikethrough: t.StrikeOut,
		Blur:          t.Blur * scaleY,
		RotationZ:     t.RotZ * degToRad,
		RotationX:     t.RotX * degToRad,
		RotationY:     t.RotY * degToRad,
		ScaleX:        t.ScaleX,
		ScaleY:        t.ScaleY,
		ShearX:        t.ShearX,
		ShearY:        t.ShearY,
		Karaoke:       kar,
	}
	if t.BorderX > 0 || t.BorderY > 0 {
		eff.Outline = &raster.Outline{
			Color:    scaleColorAlpha(colorNRGBA(t.Outline), fade),
			WidthX:   t.BorderX * scaleX,
			WidthY:   t.BorderY * scaleY,
			EdgeBlur: t.EdgeBlur * scaleY,
		}
	}
	if t.ShadowX != 0 || t.ShadowY != 0 {
		eff.Shadows = []raster.Shadow{{Color: scaleColorAlpha(colorNRGBA(t.Shadow), fade), DX: t.ShadowX * scaleX, DY: t.ShadowY * scaleY}}
	}
	if t.Clip.Mode == tags.ClipRect {
		eff.Clip = &raster.Clip{
			X1: t.Clip.X1 * scaleX, Y1: t.Clip.Y1 * scaleY,
			X2: t.Clip.X2 * scaleX, Y2: t.Clip.Y2 * scaleY,
			Inverse: t.Clip.Inverse,
		}
	}
	return eff
}

// applyTransforms evaluates every queued `\t` transform in s against base
// (the event's pre-override resolved state) at the given line-relative
// instant. The grammar does not record a per-transform starting snapshot,
// so every \t is treated as animating from the style's own base values,
// the common case when no other override precedes it.
func applyTransforms(s tags.State, base tags.State, nowMs, durMs int) tags.State {
	if len(s.Transforms) == 0 {
		return s
	}
	out := s.Clone()
	for _, t := range s.Transforms {
		p := t.Progress(nowMs, durMs)
		t.Apply(&out, base, p)
	}
	return out
}

// applyPosition fills le's position fields from a run's resolved \pos/
// \move state, sampling \move at timeCs the way
// calculate_position_from_tags resolves a move to one (x, y) per frame.
func applyPosition(le *layout.Event, pos tags.Position, startCs, endCs, timeCs int) {
	switch pos.Mode {
	case tags.PositionFixedPoint:
		le.Position = layout.PositionFixed
		le.FixedX, le.FixedY = pos.X, pos.Y
	case tags.PositionMove:
		le.Position = layout.PositionMoving
		le.MoveX1, le.MoveY1 = pos.X, pos.Y
		le.MoveX2, le.MoveY2 = pos.X2, pos.Y2
		moveStart, moveEnd := startCs, endCs
		if pos.HasMoveTimes {
			moveStart = startCs + pos.T1Ms/10
			moveEnd = startCs + pos.T2Ms/10
		}
		le.MoveProgress = moveProgress(timeCs, moveStart, moveEnd)
	default:
		le.Position = layout.PositionAuto
	}
}

// moveProgress computes \move's linear interpolation fraction at timeCs,
// clamped to [0, 1], per calculate_move_progress.
func moveProgress(timeCs, startCs, endCs int) float32 {
	if endCs <= startCs {
		return 1
	}
	if timeCs <= startCs {
		return 0
	}
	if timeCs >= endCs {
		return 1
	}
	return float32(timeCs-startCs) / float32(endCs-startCs)
}

// karaokeProgress computes one syllable's highlight fraction at timeCs,
// per software_pipeline.rs's per-line karaoke accumulation: 0 before the
// syllable starts, 1 once it ends, linear in between.
func karaokeProgress(timeCs, syllableStartCs, durationCs int) float32 {
	if durationCs <= 0 {
		return 1
	}
	syllableEnd := syllableStartCs + durationCs
	switch {
	case timeCs < syllableStartCs:
		return 0
	case timeCs >= syllableEnd:
		return 1
	default:
		return float32(timeCs-syllableStartCs) / float32(durationCs)
	}
}

// fadeAlphaFactor computes \fad/\fade's multiplicative alpha factor at a
// line-relative instant, per spec §4.G: FadeSimple ramps 0→1→0 over the
// event's own duration around the fade-in/fade-out windows, FadeComplex
// interpolates between three absolute ASS alpha levels over four absolute
// instants. f's time fields are centiseconds, matching the data model's
// "Simple(in_cs, out_cs)" and the Fade struct's own InCs/OutCs naming.
func fadeAlphaFactor(f tags.Fade, nowMs, durMs int) float32 {
	switch f.Mode {
	case tags.FadeSimple:
		return fadeSimpleFactor(f.InCs*10, f.OutCs*10, nowMs, durMs)
	case tags.FadeComplex:
		return fadeComplexFactor(f, nowMs)
	default:
		return 1
	}
}

// fadeSimpleFactor implements \fad(tin,tout): 0 at t=0, 1 at t=tin, 1
// through the middle, 1 at t=dur-tout, 0 at t=dur.
func fadeSimpleFactor(tinMs, toutMs, nowMs, durMs int) float32 {
	fadeOutStart := durMs - toutMs
	switch {
	case tinMs > 0 && nowMs < tinMs:
		return clamp01(float32(nowMs) / float32(tinMs))
	case toutMs > 0 && nowMs > fadeOutStart:
		return clamp01(1 - float32(nowMs-fadeOutStart)/float32(toutMs))
	default:
		return 1
	}
}

// fadeComplexFactor implements \fade(a1,a2,a3,t1,t2,t3,t4): holds a1
// until t1, ramps to a2 over [t1,t2], holds a2 until t3, ramps to a3 over
// [t3,t4], then holds a3. a1..a3 are ASS on-disk alpha bytes (0 opaque,
// 255 transparent), converted here to the package's own 0..1 factor.
func fadeComplexFactor(f tags.Fade, nowMs int) float32 {
	t1, t2, t3, t4 := f.T1*10, f.T2*10, f.T3*10, f.T4*10
	alphaAt := func(a int) float32 { return 1 - float32(a)/255 }
	switch {
	case nowMs <= t1:
		return alphaAt(f.A1)
	case nowMs < t2:
		if t2 == t1 {
			return alphaAt(f.A2)
		}
		return lerpFloat(alphaAt(f.A1), alphaAt(f.A2), float32(nowMs-t1)/float32(t2-t1))
	case nowMs <= t3:
		return alphaAt(f.A2)
	case nowMs < t4:
		if t4 == t3 {
			return alphaAt(f.A3)
		}
		return lerpFloat(alphaAt(f.A2), alphaAt(f.A3), float32(nowMs-t3)/float32(t4-t3))
	default:
		return alphaAt(f.A3)
	}
}

func lerpFloat(a, b, t float32) float32 {
	return a + (b-a)*t
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// scaleColorAlpha multiplies c's alpha channel by factor, the fade
// schedule's way of dimming primary, outline, and shadow colors alike
// without touching their RGB.
func scaleColorAlpha(c color.NRGBA, factor float32) color.NRGBA {
	c.A = uint8(clamp01(factor) * float32(c.A))
	return c
}

// scalePath returns a copy of p with every coordinate scaled by (sx, sy),
// converting a drawing's PlayRes-space path into render space.
func scalePath(p drawing.Path, sx, sy float32) drawing.Path {
	out := drawing.Path{Commands: make([]drawing.PathCommand, len(p.Commands))}
	for i, cmd := range p.Commands {
		nc := cmd
		for j := range nc.Points {
			nc.Points[j].X *= sx
			nc.Points[j].Y *= sy
		}
		out.Commands[i] = nc
	}
	out.MinX, out.MaxX = p.MinX*sx, p.MaxX*sx
	out.MinY, out.MaxY = p.MinY*sy, p.MaxY*sy
	return out
}

func colorNRGBA(c style.Color) color.NRGBA {
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}
