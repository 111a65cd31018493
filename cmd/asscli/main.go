// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command asscli is a smoke-test harness over the ass library: it parses
// a script, reports any issues found, and optionally rasterizes a single
// frame to a PNG file. It is not a feature surface the library commits
// to; flag parsing and file I/O are deliberately kept out of the core
// packages per spec §1 and live here instead.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/go-text/typesetting/font"

	"github.com/asslib/ass/ast"
	assfont "github.com/asslib/ass/font"
	"github.com/asslib/ass/parse"
	"github.com/asslib/ass/pipeline"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "asscli:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("asscli", flag.ExitOnError)
	frame := fs.Int("frame", -1, "render the frame at this time (centiseconds) to -out")
	out := fs.String("out", "frame.png", "PNG path to write when -frame is given")
	width := fs.Int("width", 1920, "render width in pixels")
	height := fs.Int("height", 1080, "render height in pixels")
	fontPath := fs.String("font", "", "TrueType/OpenType font file used for every style (required with -frame)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: asscli [flags] <script.ass>")
	}

	source, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	script := parse.Parse(source)
	reportIssues(script)

	if *frame < 0 {
		return nil
	}
	if *fontPath == "" {
		return fmt.Errorf("-font is required when -frame is given")
	}

	db, err := loadFontDatabase(*fontPath)
	if err != nil {
		return err
	}

	p := pipeline.New(db, 256, 64)
	p.PrepareScript(script)
	img, errs := p.RenderFrame(*frame, *width, *height)
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, "asscli: render:", e)
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// reportIssues prints every diagnostic script.Issues carries, one per
// line, in the form a text editor's "jump to error" integration expects.
func reportIssues(script *ast.Script) {
	for _, iss := range script.Issues {
		fmt.Fprintf(os.Stderr, "%d:%d: %s: %s: %s\n",
			iss.Span.Line, iss.Span.Column, iss.Severity, iss.Kind, iss.Message)
	}
}

// loadFontDatabase reads one font file and registers every face it
// contains under its own family name, so a style's Fontname resolves as
// long as it names a family present in the file.
func loadFontDatabase(path string) (*assfont.GoTextDatabase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	faces, err := font.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", path, err)
	}

	// Bold/italic variant selection needs a second/third font file with its
	// own Describe().Family; asscli is a single-font smoke test, so every
	// face is registered as its family's one and only (normal, upright)
	// variant and font.Database's fallback-to-normal lookup does the rest.
	db := assfont.NewGoTextDatabase()
	for _, face := range faces {
		d := face.Describe()
		db.Register(d.Family, assfont.WeightNormal, assfont.StyleNormal, face)
	}
	return db, nil
}
