// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package drawing parses `\p` drawing-command strings (the token stream
// that replaces plain text while drawing mode is active) into a filled
// vector [Path] with bounds, per spec §4.J.
package drawing

import (
	"strconv"
	"strings"

	"github.com/asslib/ass/style"
)

// Point is a coordinate in the drawing's own local space, already
// descaled by the `\p` level (see [Parse]).
type Point struct {
	X, Y float32
}

// CommandKind is the kind of one flattened path command. By the time
// Parse returns, b-splines have already been converted to cubic Bezier
// segments: a [Path] only ever contains these four primitives, matching
// what `golang.org/x/image/vector.Rasterizer` consumes directly.
type CommandKind int

const (
	MoveTo CommandKind = iota
	LineTo
	CubicTo
	Close
)

// PathCommand is one step of a Path. Points holds 1 element for MoveTo/
// LineTo, 3 for CubicTo (control1, control2, endpoint), 0 for Close.
type PathCommand struct {
	Kind   CommandKind
	Points [3]Point
}

// Path is a complete flattened drawing: a sequence of commands plus the
// bounding box of every point the commands visit (control points
// included, so the box is a conservative superset of the filled area).
type Path struct {
	Commands           []PathCommand
	MinX, MinY, MaxX, MaxY float32
	empty              bool
}

func newPath() *Path { return &Path{empty: true} }

func (p *Path) extend(pt Point) {
	if p.empty {
		p.MinX, p.MaxX = pt.X, pt.X
		p.MinY, p.MaxY = pt.Y, pt.Y
		p.empty = false
		return
	}
	if pt.X < p.MinX {
		p.MinX = pt.X
	}
	if pt.X > p.MaxX {
		p.MaxX = pt.X
	}
	if pt.Y < p.MinY {
		p.MinY = pt.Y
	}
	if pt.Y > p.MaxY {
		p.MaxY = pt.Y
	}
}

func (p *Path) moveTo(pt Point) {
	p.Commands = append(p.Commands, PathCommand{Kind: MoveTo, Points: [3]Point{pt}})
	p.extend(pt)
}

func (p *Path) lineTo(pt Point) {
	p.Commands = append(p.Commands, PathCommand{Kind: LineTo, Points: [3]Point{pt}})
	p.extend(pt)
}

func (p *Path) cubicTo(c1, c2, end Point) {
	p.Commands = append(p.Commands, PathCommand{Kind: CubicTo, Points: [3]Point{c1, c2, end}})
	p.extend(c1)
	p.extend(c2)
	p.extend(end)
}

func (p *Path) close() {
	p.Commands = append(p.Commands, PathCommand{Kind: Close})
}

// Issue is a problem encountered while parsing a drawing-command string:
// an unrecognized command letter, or one given too few coordinates.
type Issue struct {
	Message string
	Command string
}

// Parse parses a `\p<level>` drawing-command string. level is the
// drawing scale from the override tag (`\p1` is level 1); coordinates
// are divided by 2^(level-1), so level 1 is unscaled and each level above
// it halves the apparent coordinate grid, per the format's convention of
// using a finer integer grid at higher \p levels.
func Parse(commands string, level int) (Path, []Issue) {
	toks := strings.Fields(commands)
	divisor := float32(int(1) << maxInt(level-1, 0))

	path := newPath()
	var issues []Issue
	var pen Point
	var started bool
	var spline []Point // accumulated control points of an active `s`/`p` b-spline run

	i := 0
	num := func() (float32, bool) {
		if i >= len(toks) {
			return 0, false
		}
		f, err := strconv.ParseFloat(toks[i], 32)
		if err != nil {
			return 0, false
		}
		i++
		return float32(f), true
	}
	point := func() (Point, bool) {
		x, ok1 := num()
		y, ok2 := num()
		if !ok1 || !ok2 {
			return Point{}, false
		}
		return Point{X: x / divisor, Y: y / divisor}, true
	}
	peekIsNumber := func() bool {
		if i >= len(toks) {
			return false
		}
		_, err := strconv.ParseFloat(toks[i], 32)
		return err == nil
	}

	flushSpline := func(closed bool) {
		if len(spline) == 0 {
			return
		}
		pen = appendBSpline(path, spline, closed)
		if closed {
			path.close()
		}
		spline = nil
	}

	for i < len(toks) {
		tok := toks[i]
		switch tok {
		case "m", "n":
			i++
			flushSpline(false)
			p, ok := point()
			if !ok {
				issues = append(issues, Issue{Message: "missing coordinates", Command: tok})
				continue
			}
			path.moveTo(p)
			pen, started = p, true
		case "l":
			i++
			flushSpline(false)
			if !started {
				issues = append(issues, Issue{Message: "l before any m", Command: tok})
				continue
			}
			p, ok := point()
			if !ok {
				issues = append(issues, Issue{Message: "missing coordinates", Command: tok})
				continue
			}
			path.lineTo(p)
			pen = p
		case "b":
			i++
			flushSpline(false)
			if !started {
				issues = append(issues, Issue{Message: "b before any m", Command: tok})
				continue
			}
			c1, ok1 := point()
			c2, ok2 := point()
			end, ok3 := point()
			if !ok1 || !ok2 || !ok3 {
				issues = append(issues, Issue{Message: "missing coordinates", Command: tok})
				continue
			}
			path.cubicTo(c1, c2, end)
			pen = end
		case "s":
			i++
			flushSpline(false)
			if !started {
				issues = append(issues, Issue{Message: "s before any m", Command: tok})
				continue
			}
			spline = []Point{pen}
			for peekIsNumber() {
				p, ok := point()
				if !ok {
					break
				}
				spline = append(spline, p)
			}
			if len(spline) < 4 {
				issues = append(issues, Issue{Message: "b-spline needs at least 3 points", Command: tok})
				spline = nil
				continue
			}
		case "p":
			i++
			if spline == nil {
				issues = append(issues, Issue{Message: "p without an active b-spline", Command: tok})
				point() // consume its coordinates so the scan can keep going
				continue
			}
			p, ok := point()
			if !ok {
				issues = append(issues, Issue{Message: "missing coordinates", Command: tok})
				continue
			}
			spline = append(spline, p)
		case "c":
			i++
			if spline == nil {
				issues = append(issues, Issue{Message: "c without an active b-spline", Command: tok})
				continue
			}
			flushSpline(true)
		default:
			issues = append(issues, Issue{Message: "unrecognized drawing command", Command: tok})
			i++
		}
	}
	flushSpline(false)

	if path.empty {
		return Path{}, issues
	}
	return *path, issues
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// appendBSpline converts the uniform cubic b-spline defined by points
// (at least 4) into a sequence of cubic Bezier segments appended to path,
// and returns the spline's final on-curve point. The spline is clamped
// (its first and last control points are each repeated twice more) so the curve
// actually touches its first and last points, matching how drawing
// authors expect `s`/`p`/`c` to behave rather than the free-floating
// approximation an unclamped uniform b-spline would give; when closed is
// true the points instead wrap cyclically so the loop closes smoothly
// through its own start.
func appendBSpline(path *Path, points []Point, closed bool) Point {
	var padded []Point
	if closed {
		n := len(points)
		padded = make([]Point, 0, n+3)
		padded = append(padded, points[n-1])
		padded = append(padded, points...)
		padded = append(padded, points[0], points[1])
	} else {
		padded = make([]Point, 0, len(points)+4)
		padded = append(padded, points[0], points[0])
		padded = append(padded, points...)
		padded = append(padded, points[len(points)-1], points[len(points)-1])
	}
	var last Point
	for i := 1; i+2 < len(padded); i++ {
		p0, p1, p2, p3 := padded[i-1], padded[i], padded[i+1], padded[i+2]
		b0 := sixthWeighted(p0, p1, p2)
		b1 := thirdWeighted(p1, p1, p2)
		b2 := thirdWeighted(p1, p2, p2)
		b3 := sixthWeighted(p1, p2, p3)
		if i == 1 {
			path.lineTo(b0) // connect the pen's current position to the spline's clamped start
		}
		path.cubicTo(b1, b2, b3)
		last = b3
	}
	return last
}

func sixthWeighted(a, b, c Point) Point {
	return Point{X: (a.X + 4*b.X + c.X) / 6, Y: (a.Y + 4*b.Y + c.Y) / 6}
}

func thirdWeighted(a, b, c Point) Point {
	return Point{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
}

// AlignAnchor returns the (dx, dy) shift that moves the anchor point of
// bounds (selected by an's numpad position) onto (x, y), per spec §4.J's
// "shift such that the anchor-point of the bounding box lands at (x,y)."
func AlignAnchor(p Path, an style.Alignment, x, y float32) (dx, dy float32) {
	var anchorX, anchorY float32
	switch an.HorizontalAnchor() {
	case -1:
		anchorX = p.MinX
	case 0:
		anchorX = (p.MinX + p.MaxX) / 2
	case 1:
		anchorX = p.MaxX
	}
	switch an.VerticalAnchor() {
	case -1:
		anchorY = p.MaxY
	case 0:
		anchorY = (p.MinY + p.MaxY) / 2
	case 1:
		anchorY = p.MinY
	}
	return x - anchorX, y - anchorY
}
