// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/asslib/ass/asserr"
	"github.com/asslib/ass/script"
	"github.com/asslib/ass/tags"
)

// KaraokeStyle selects which karaoke override tag a command emits.
type KaraokeStyle string

const (
	KaraokeStandard   KaraokeStyle = "k"
	KaraokeFillTag    KaraokeStyle = "kf"
	KaraokeOutlineTag KaraokeStyle = "ko"
	KaraokeTransition KaraokeStyle = "kt"
)

func isKaraokeTagName(name string) bool {
	switch name {
	case "k", "K", "kf", "ko", "kt":
		return true
	default:
		return false
	}
}

// karaokePunctuation is the punctuation treated, alongside Unicode
// whitespace, as a syllable boundary by the automatic splitter. It has no
// normative source in the ASS format itself; it is this package's own
// heuristic for where a human would plausibly place a karaoke break.
const karaokePunctuation = ",.!?;:\"'()[]{}…"

func isKaraokeBoundary(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(karaokePunctuation, r)
}

// splitSyllablesAuto breaks text into syllables by closing each syllable
// right after a boundary rune, so trailing spaces and punctuation stay
// attached to the word they follow rather than starting an empty one.
func splitSyllablesAuto(text string) []string {
	var out []string
	var cur strings.Builder
	for _, r := range text {
		cur.WriteRune(r)
		if isKaraokeBoundary(r) {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// distributeDurations splits total centiseconds across n syllables as
// evenly as integer division allows, folding the remainder into the last
// syllable.
func distributeDurations(total, n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	base := total / n
	for i := range out {
		out[i] = base
	}
	out[n-1] += total - base*n
	return out
}

// KaraokeMode selects manual or automatic syllable detection for
// KaraokeGenerate.
type KaraokeMode int

const (
	KaraokeAuto KaraokeMode = iota
	KaraokeManual
)

// KaraokeGenerate rewrites an event's Text field into a karaoke-tagged
// line: one `{\STYLE<duration>}` block per syllable. In Auto mode,
// syllables come from splitSyllablesAuto run over the event's current
// text; in Manual mode, the caller supplies Syllables directly. Per-
// syllable durations come from DurationsCs if given, otherwise
// TotalDurationCs is split evenly across the syllables.
type KaraokeGenerate struct {
	EventIndex      int
	Style           KaraokeStyle
	Mode            KaraokeMode
	Syllables       []string
	DurationsCs     []int
	TotalDurationCs int

	replace *Replace
}

func (c *KaraokeGenerate) Execute(doc *script.Document) (Result, error) {
	_, _, span, err := eventTextSpan(doc, c.EventIndex)
	if err != nil {
		return Result{}, err
	}
	text := string(span.Text(doc.Source()))

	syllables := c.Syllables
	if c.Mode == KaraokeAuto {
		syllables = splitSyllablesAuto(text)
	}
	if len(syllables) == 0 {
		return Result{}, asserr.New(asserr.CommandFailed, "no syllables to generate karaoke for")
	}

	durations := c.DurationsCs
	if len(durations) == 0 {
		durations = distributeDurations(c.TotalDurationCs, len(syllables))
	} else if len(durations) != len(syllables) {
		return Result{}, asserr.New(asserr.CommandFailed, "%d durations for %d syllables", len(durations), len(syllables))
	}

	var b strings.Builder
	for i, syl := range syllables {
		fmt.Fprintf(&b, "{\\%s%d}%s", c.Style, durations[i], syl)
	}

	r := &Replace{Start: span.Start, End: span.End, New: b.String()}
	res, err := r.Execute(doc)
	if err != nil {
		return Result{}, err
	}
	c.replace = r
	return res, nil
}

// Invert restores the event's original Text field.
func (c *KaraokeGenerate) Invert() Command { return c.replace.Invert() }

func karaokeTagInBody(body string) (tags.Tag, bool) {
	parsed, _ := tags.ParseBlock(body)
	for _, t := range parsed {
		if isKaraokeTagName(t.Name) {
			return t, true
		}
	}
	return tags.Tag{}, false
}

// karaokeDuration extracts a karaoke tag's duration argument, in
// centiseconds.
func karaokeDuration(t tags.Tag) int {
	if len(t.Args) == 0 {
		return 0
	}
	d, _ := strconv.Atoi(strings.TrimSpace(t.Args[0]))
	return d
}

// karaokeDurations returns the duration, in centiseconds, of every
// existing karaoke tag found in the event's Text field, in document
// order (one entry per `{...}` block carrying a karaoke tag).
func karaokeDurations(doc *script.Document, eventIndex int) ([]int, error) {
	_, _, span, err := eventTextSpan(doc, eventIndex)
	if err != nil {
		return nil, err
	}
	text := string(span.Text(doc.Source()))
	var out []int
	for _, b := range findBlocks(text) {
		body := text[b.start+1 : b.end-1]
		if t, ok := karaokeTagInBody(body); ok {
			out = append(out, karaokeDuration(t))
		}
	}
	return out, nil
}

// KaraokeAdjustMode selects how KaraokeAdjust recomputes each syllable's
// duration.
type KaraokeAdjustMode int

const (
	AdjustScale KaraokeAdjustMode = iota
	AdjustOffset
	AdjustSetAll
	AdjustCustom
)

// KaraokeAdjust recomputes the duration of every existing karaoke tag in
// an event's Text field, leaving each tag's style (\k/\kf/\ko/\kt) and
// the surrounding text untouched.
type KaraokeAdjust struct {
	EventIndex int
	Mode       KaraokeAdjustMode
	Factor     float64
	OffsetCs   int
	SetCs      int
	Custom     []int

	batch *Batch
}

func (c *KaraokeAdjust) Execute(doc *script.Document) (Result, error) {
	_, _, span, err := eventTextSpan(doc, c.EventIndex)
	if err != nil {
		return Result{}, err
	}
	text := string(span.Text(doc.Source()))
	batch := &Batch{}
	var merged Result
	merged.Success = true
	first := true
	blocks := findBlocks(text)
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		body := text[b.start+1 : b.end-1]
		t, ok := karaokeTagInBody(body)
		if !ok {
			continue
		}
		oldDur := karaokeDuration(t)
		newDur, err := c.adjustedDuration(i, oldDur)
		if err != nil {
			return Result{}, err
		}
		newRaw := "\\" + t.Name + strconv.Itoa(newDur)
		newBody := strings.Replace(body, t.Raw, newRaw, 1)
		absStart, absEnd := span.Start+b.start, span.Start+b.end
		r := &Replace{Start: absStart, End: absEnd, New: "{" + newBody + "}"}
		res, err := r.Execute(doc)
		if err != nil {
			return Result{}, err
		}
		batch.Cmds = append(batch.Cmds, r)
		if first || res.ModifiedRange.Start < merged.ModifiedRange.Start {
			merged.ModifiedRange.Start = res.ModifiedRange.Start
		}
		if res.ModifiedRange.End > merged.ModifiedRange.End {
			merged.ModifiedRange.End = res.ModifiedRange.End
		}
		first = false
		merged.ContentChanged = true
	}
	c.batch = batch
	return merged, nil
}

func (c *KaraokeAdjust) adjustedDuration(index, old int) (int, error) {
	switch c.Mode {
	case AdjustScale:
		return int(math.Round(float64(old) * c.Factor)), nil
	case AdjustOffset:
		d := old + c.OffsetCs
		if d < 0 {
			d = 0
		}
		return d, nil
	case AdjustSetAll:
		return c.SetCs, nil
	case AdjustCustom:
		if index < 0 || index >= len(c.Custom) {
			return 0, asserr.New(asserr.CommandFailed, "no custom duration for syllable %d", index)
		}
		return c.Custom[index], nil
	default:
		return old, nil
	}
}

// Invert restores every karaoke tag KaraokeAdjust touched to its
// original duration.
func (c *KaraokeAdjust) Invert() Command { return c.batch.Invert() }

// KaraokeApplyMode selects how KaraokeApply assigns durations to an
// event's existing karaoke tags while rewriting their style.
type KaraokeApplyMode int

const (
	ApplyEqual KaraokeApplyMode = iota
	ApplyBeat
	ApplyPattern
	ApplyImport
)

// KaraokeApply rewrites every existing karaoke tag in an event's Text
// field to Style, recomputing durations per Mode: Equal splits
// TotalDurationCs evenly across the syllables, Beat rounds each existing
// duration to the nearest multiple of BeatCs, Pattern cycles Durations
// across syllables, and Import assigns Durations positionally.
type KaraokeApply struct {
	EventIndex      int
	Style           KaraokeStyle
	Mode            KaraokeApplyMode
	TotalDurationCs int
	BeatCs          int
	Durations       []int

	batch *Batch
}

func (c *KaraokeApply) Execute(doc *script.Document) (Result, error) {
	durations, err := karaokeDurations(doc, c.EventIndex)
	if err != nil {
		return Result{}, err
	}
	n := len(durations)
	if n == 0 {
		return Result{Success: true, Message: "no karaoke tags"}, nil
	}

	var equal []int
	if c.Mode == ApplyEqual {
		equal = distributeDurations(c.TotalDurationCs, n)
	}

	_, _, span, err := eventTextSpan(doc, c.EventIndex)
	if err != nil {
		return Result{}, err
	}
	text := string(span.Text(doc.Source()))
	blocks := findBlocks(text)
	batch := &Batch{}
	var merged Result
	merged.Success = true
	first := true
	seen := n - 1
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		body := text[b.start+1 : b.end-1]
		t, ok := karaokeTagInBody(body)
		if !ok {
			continue
		}
		newDur, err := c.newDuration(seen, durations[seen], equal)
		if err != nil {
			return Result{}, err
		}
		seen--
		newRaw := "\\" + string(c.Style) + strconv.Itoa(newDur)
		newBody := strings.Replace(body, t.Raw, newRaw, 1)
		absStart, absEnd := span.Start+b.start, span.Start+b.end
		r := &Replace{Start: absStart, End: absEnd, New: "{" + newBody + "}"}
		res, err := r.Execute(doc)
		if err != nil {
			return Result{}, err
		}
		batch.Cmds = append(batch.Cmds, r)
		if first || res.ModifiedRange.Start < merged.ModifiedRange.Start {
			merged.ModifiedRange.Start = res.ModifiedRange.Start
		}
		if res.ModifiedRange.End > merged.ModifiedRange.End {
			merged.ModifiedRange.End = res.ModifiedRange.End
		}
		first = false
		merged.ContentChanged = true
	}
	c.batch = batch
	return merged, nil
}

func (c *KaraokeApply) newDuration(index, old int, equal []int) (int, error) {
	switch c.Mode {
	case ApplyEqual:
		return equal[index], nil
	case ApplyBeat:
		if c.BeatCs <= 0 {
			return 0, asserr.New(asserr.CommandFailed, "beat duration must be positive")
		}
		return int(math.Round(float64(old)/float64(c.BeatCs))) * c.BeatCs, nil
	case ApplyPattern:
		if len(c.Durations) == 0 {
			return 0, asserr.New(asserr.CommandFailed, "pattern has no durations")
		}
		return c.Durations[index%len(c.Durations)], nil
	case ApplyImport:
		if index < 0 || index >= len(c.Durations) {
			return 0, asserr.New(asserr.CommandFailed, "no imported duration for syllable %d", index)
		}
		return c.Durations[index], nil
	default:
		return old, nil
	}
}

// Invert restores every karaoke tag KaraokeApply touched to its original
// style and duration.
func (c *KaraokeApply) Invert() Command { return c.batch.Invert() }

// KaraokeSplit splits the syllable following the SyllableIndex'th (0-
// based, in document order) karaoke tag into two, at rune offset AtRune
// within that syllable's text. The original tag's duration is divided
// between the two halves in proportion to their rune lengths.
type KaraokeSplit struct {
	EventIndex    int
	SyllableIndex int
	AtRune        int

	replace *Replace
}

func (c *KaraokeSplit) Execute(doc *script.Document) (Result, error) {
	_, _, span, err := eventTextSpan(doc, c.EventIndex)
	if err != nil {
		return Result{}, err
	}
	text := string(span.Text(doc.Source()))
	blocks := findBlocks(text)

	idx := 0
	for i, b := range blocks {
		body := text[b.start+1 : b.end-1]
		t, ok := karaokeTagInBody(body)
		if !ok {
			continue
		}
		if idx != c.SyllableIndex {
			idx++
			continue
		}
		runEnd := len(text)
		if i+1 < len(blocks) {
			runEnd = blocks[i+1].start
		}
		syllable := text[b.end:runEnd]
		runes := []rune(syllable)
		if c.AtRune <= 0 || c.AtRune >= len(runes) {
			return Result{}, asserr.New(asserr.InvalidRange, "split offset %d outside syllable of %d runes", c.AtRune, len(runes))
		}
		oldDur := karaokeDuration(t)
		firstDur := oldDur * c.AtRune / len(runes)
		secondDur := oldDur - firstDur

		pre := string(runes[:c.AtRune])
		post := string(runes[c.AtRune:])
		newTagRaw := "\\" + t.Name + strconv.Itoa(firstDur)
		newBody := strings.Replace(body, t.Raw, newTagRaw, 1)
		newRun := "{" + newBody + "}" + pre + "{\\" + t.Name + strconv.Itoa(secondDur) + "}" + post

		absStart, absEnd := span.Start+b.start, span.Start+runEnd
		r := &Replace{Start: absStart, End: absEnd, New: newRun}
		res, err := r.Execute(doc)
		if err != nil {
			return Result{}, err
		}
		c.replace = r
		return res, nil
	}
	return Result{}, asserr.New(asserr.IndexOutOfBounds, "no karaoke tag at syllable index %d", c.SyllableIndex)
}

// Invert merges the split syllable back into one.
func (c *KaraokeSplit) Invert() Command { return c.replace.Invert() }
