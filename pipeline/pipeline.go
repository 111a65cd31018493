// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline wires the style resolver, tag processor, segmenter,
// shaper, drawing parser, layout engine, and compositor into the two-step
// per-frame orchestration of spec §5: a script is indexed once by
// [Pipeline.PrepareScript], then rendered any number of times by
// [Pipeline.RenderFrame], each call selecting the events active at a given
// time and producing one RGBA frame. Grounded on
// ass-renderer/src/pipeline/software_pipeline.rs's SoftwarePipeline struct
// and its prepare_script/process_events methods.
package pipeline

import (
	"image"
	"image/draw"
	"strconv"
	"strings"

	"github.com/asslib/ass/ast"
	"github.com/asslib/ass/cache"
	"github.com/asslib/ass/font"
	"github.com/asslib/ass/layout"
	"github.com/asslib/ass/raster"
	"github.com/asslib/ass/segment"
	"github.com/asslib/ass/shape"
	"github.com/asslib/ass/style"
)

// Pipeline owns the style map, font database, and shaped-run/drawing-path
// caches for one script at a time, per spec §5's "shared state ... owned
// by that instance". It is not safe for concurrent use; render independent
// Pipeline instances on separate goroutines for frame-level parallelism.
type Pipeline struct {
	fonts  font.Database
	shaper *shape.Shaper
	shaped *cache.Shaped
	paths  *cache.Paths

	source       []byte
	styles       *ast.StylesSection
	events       []ast.Event
	eventsFormat *ast.FormatTable
	info         style.Info
	wrap         segment.WrapStyle
}

// New returns a Pipeline backed by fonts, with shaped-run and drawing-path
// caches capped at shapedCapacity and pathCapacity entries respectively.
func New(fonts font.Database, shapedCapacity, pathCapacity int) *Pipeline {
	return &Pipeline{
		fonts:  fonts,
		shaper: shape.New(fonts),
		shaped: cache.NewShaped(shapedCapacity),
		paths:  cache.NewPaths(pathCapacity),
	}
}

// PrepareScript indexes script's Script Info, Styles, and Events sections
// so RenderFrame can select and resolve active events without rescanning
// the AST on every call. It is the first of spec §5's two mutation points;
// callers must call it at least once, and again after any edit that
// changes which events, styles, or script-info fields exist.
func (p *Pipeline) PrepareScript(script *ast.Script) {
	p.source = script.Source
	p.styles = script.Styles()
	if p.styles == nil {
		p.styles = &ast.StylesSection{Format: ast.NewFormatTable(nil)}
	}
	p.info = style.InfoFrom(script.Source, script.ScriptInfo())
	p.wrap = wrapStyleFrom(script.Source, script.ScriptInfo())

	if ev := script.Events(); ev != nil {
		p.events = ev.Events
		p.eventsFormat = ev.Format
	} else {
		p.events = nil
		p.eventsFormat = nil
	}
}

func wrapStyleFrom(source []byte, info *ast.ScriptInfoSection) segment.WrapStyle {
	if info == nil {
		return segment.WrapSmart
	}
	v, ok := info.Get(source, "WrapStyle")
	if !ok {
		return segment.WrapSmart
	}
	switch v {
	case "1":
		return segment.WrapEndOfLine
	case "2":
		return segment.WrapNone
	case "3":
		return segment.WrapSmartLowerWide
	default:
		return segment.WrapSmart
	}
}

// RenderFrame composites every Dialogue event active at timeCs into a
// width×height frame, per spec §5's second mutation point. A failure
// rendering one event (an unresolvable font, a malformed drawing command)
// is recorded in the returned error slice and that event is skipped; it
// never aborts the frame, per spec §7's "Compositor errors on a single
// layer are logged and skipped."
func (p *Pipeline) RenderFrame(timeCs, width, height int) (*image.RGBA, []error) {
	var errs []error
	active := p.activeEvents(timeCs)

	prepared := make([]preparedEvent, 0, len(active))
	for _, e := range active {
		pe, err := p.prepareEvent(e, timeCs, width, height)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if pe != nil {
			prepared = append(prepared, *pe)
		}
	}

	layoutEvents := make([]layout.Event, len(prepared))
	for i, pe := range prepared {
		layoutEvents[i] = pe.layout
	}
	placements := layout.Place(layoutEvents, p.info.PlayResX, p.info.PlayResY, float32(width), float32(height))

	var layers []raster.Layer
	for i, pe := range prepared {
		layers = append(layers, pe.buildLayers(placements[i])...)
	}

	comp := raster.New(width, height)
	pix := comp.Render(layers)
	nrgba := &image.NRGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), nrgba, image.Point{}, draw.Src)
	return out, errs
}

type activeEvent struct {
	event          ast.Event
	startCs, endCs int
}

// activeEvents returns every Dialogue event whose [start, end) window
// contains timeCs, per spec §2's "select active events by time." Comment
// and other non-visual event types never reach the compositor.
func (p *Pipeline) activeEvents(timeCs int) []activeEvent {
	var out []activeEvent
	for _, e := range p.events {
		if e.Type != ast.Dialogue {
			continue
		}
		startStr, _ := e.Field(p.source, p.eventsFormat, "Start")
		endStr, _ := e.Field(p.source, p.eventsFormat, "End")
		start, ok1 := ast.ParseTimeCs(startStr)
		end, ok2 := ast.ParseTimeCs(endStr)
		if !ok1 || !ok2 || timeCs < start || timeCs >= end {
			continue
		}
		out = append(out, activeEvent{event: e, startCs: start, endCs: end})
	}
	return out
}

func eventLayer(source []byte, format *ast.FormatTable, e ast.Event) int {
	v, _ := e.Field(source, format, "Layer")
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}
