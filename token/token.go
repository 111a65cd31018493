// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package token implements the context-aware byte scanner described for the
// ASS tokenizer: it classifies spans of the source into section headers,
// field text, numbers, hex colors, override blocks, comments, and
// delimiters, without itself understanding section or field semantics
// (that is package parse's job).
package token

import "fmt"

// Kind identifies the lexical class of a [Token].
type Kind int

const (
	// SectionHeader is the full `[Name]` span, brackets included.
	SectionHeader Kind = iota
	// SectionName is the bare name inside a SectionHeader, brackets
	// excluded. Emitted alongside SectionHeader by the scanner so callers
	// rarely need to re-trim brackets.
	SectionName
	// Text is a generic run of characters that is not a Number, HexValue,
	// or Comment.
	Text
	// Number is a run of characters drawn only from `[0-9.\-]`. ASS time
	// fields such as "0:01:23.45" contain ':' and so are classified as
	// Text, even where the context keeps them in one token.
	Number
	// HexValue is an ASS color literal: `&H` followed by 2-8 hex digits
	// (even count) and an optional trailing `&`.
	HexValue
	// Comment is a full line beginning with ';' or '!:'.
	Comment
	// OverrideBlock is a full `{...}` span, braces included.
	OverrideBlock
	// Colon is a single ':' delimiter (Document context only).
	Colon
	// Comma is a single ',' delimiter.
	Comma
	// Newline is a single line terminator: "\n", "\r", or "\r\n".
	Newline
	// Whitespace is a run of spaces and/or tabs.
	Whitespace
)

func (k Kind) String() string {
	switch k {
	case SectionHeader:
		return "SectionHeader"
	case SectionName:
		return "SectionName"
	case Text:
		return "Text"
	case Number:
		return "Number"
	case HexValue:
		return "HexValue"
	case Comment:
		return "Comment"
	case OverrideBlock:
		return "OverrideBlock"
	case Colon:
		return "Colon"
	case Comma:
		return "Comma"
	case Newline:
		return "Newline"
	case Whitespace:
		return "Whitespace"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Context selects which delimiters the scanner treats as terminators. The
// same byte ':' that ends a Document-context token is ordinary text inside
// a FieldValue, which is what lets "0:01:23.45" survive as one token there.
type Context int

const (
	// Document is the top-level context: colon and semicolon terminate a
	// token, '[' starts a SectionHeader, '{' starts an OverrideBlock.
	Document Context = iota
	// SectionHeaderCtx names the inside of a `[...]` header. The scanner
	// reads a whole header in one step and never pushes this context.
	SectionHeaderCtx
	// FieldValue is entered after the ':' following a key (Script Info) or
	// after a line's leading type tag (Style:/Dialogue:/...). Only ',' and
	// newline terminate a token, so times and other colon-bearing values
	// stay intact.
	FieldValue
	// StyleOverride names the inside of a `{...}` block. The scanner reads
	// a whole block as one OverrideBlock token and never pushes this
	// context.
	StyleOverride
)

// Token is one lexical unit together with its byte span in the source.
type Token struct {
	Kind       Kind
	Start, End int // byte offsets into the scanned source, End exclusive
	Line       int // 1-based line at Start
	Column     int // 1-based column (byte offset within line) at Start
}

// Text returns the token's source text.
func (t Token) Text(source []byte) []byte { return source[t.Start:t.End] }

// Len returns the token's byte length.
func (t Token) Len() int { return t.End - t.Start }
