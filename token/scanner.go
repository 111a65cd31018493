// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package token

// Scanner is a context-aware byte scanner over an ASS source buffer. It has
// no knowledge of sections or fields; it only knows how to carve the byte
// stream into typed spans, and it tracks enough context (its context stack,
// plus reading `[...]` headers and `{...}` blocks whole) to keep colons
// inside times and commas inside override blocks from being mis-split.
//
// Scanner keeps state across calls to Next, mirroring a streaming
// tokenizer: callers that want to re-tokenize from scratch should construct
// a fresh Scanner rather than trying to rewind one.
type Scanner struct {
	src  []byte
	pos  int
	line int
	bol  int // byte offset of beginning-of-line, for column computation

	ctx    []Context // stack; top is current context, Document if empty
	queue  []Token   // pending tokens to drain before scanning further
	iters  int
	iterCap int
}

// New constructs a Scanner over source. A UTF-8 byte-order mark, if
// present, is consumed silently and does not appear in any token.
func New(source []byte) *Scanner {
	s := &Scanner{
		src:  source,
		line: 1,
		// Proportional iteration cap: guards pathological inputs (spec
		// 4.A) without penalizing large well-formed scripts. Each
		// iteration of the scan loop advances pos by at least one byte,
		// so this is generous relative to len(source) and only trips on
		// a scanner bug that fails to advance.
		iterCap: len(source)*4 + 64,
	}
	if len(source) >= 3 && source[0] == 0xEF && source[1] == 0xBB && source[2] == 0xBF {
		s.pos = 3
	}
	return s
}

func (s *Scanner) context() Context {
	if len(s.ctx) == 0 {
		return Document
	}
	return s.ctx[len(s.ctx)-1]
}

func (s *Scanner) pushContext(c Context) { s.ctx = append(s.ctx, c) }

func (s *Scanner) popContext() {
	if len(s.ctx) > 0 {
		s.ctx = s.ctx[:len(s.ctx)-1]
	}
}

func (s *Scanner) column() int { return s.pos - s.bol + 1 }

func (s *Scanner) makeToken(kind Kind, start int) Token {
	return Token{
		Kind:   kind,
		Start:  start,
		End:    s.pos,
		Line:   s.line,
		Column: start - s.bol + 1,
	}
}

// Next returns the next token and true, or a zero Token and false at EOF or
// if the safety cap was exceeded.
func (s *Scanner) Next() (Token, bool) {
	if len(s.queue) > 0 {
		t := s.queue[0]
		s.queue = s.queue[1:]
		return t, true
	}
	for {
		if s.pos >= len(s.src) {
			return Token{}, false
		}
		s.iters++
		if s.iters > s.iterCap {
			return Token{}, false
		}
		before := s.pos
		tok, ok := s.step()
		if s.pos == before {
			// A step that fails to advance would loop forever; force
			// progress rather than trust every call site below.
			s.pos++
			continue
		}
		if ok {
			return tok, true
		}
	}
}

// step scans exactly one token's worth of input and reports whether a
// token was produced. scanSectionHeader returns the SectionHeader token
// and enqueues its SectionName on s.queue, so Next drains that before
// asking step for more input. step always advances s.pos by at
// least one byte when it consumes anything.
func (s *Scanner) step() (Token, bool) {
	start := s.pos
	c := s.src[s.pos]

	if nl, size := newlineAt(s.src, s.pos); nl {
		s.pos += size
		tok := s.makeToken(Newline, start)
		s.line++
		s.bol = s.pos
		if s.context() == FieldValue {
			s.popContext()
		}
		return tok, true
	}

	if c == ' ' || c == '\t' {
		for s.pos < len(s.src) && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
			s.pos++
		}
		return s.makeToken(Whitespace, start), true
	}

	if s.context() == Document && s.column() == 1 && isCommentStart(s.src, s.pos) {
		for s.pos < len(s.src) {
			if nl, _ := newlineAt(s.src, s.pos); nl {
				break
			}
			s.pos++
		}
		return s.makeToken(Comment, start), true
	}

	if c == '[' && s.context() != StyleOverride {
		return s.scanSectionHeader(start)
	}

	if c == '{' {
		return s.scanOverrideBlock(start)
	}

	if c == ':' && s.context() == Document {
		s.pos++
		s.pushContext(FieldValue)
		return s.makeToken(Colon, start), true
	}

	if c == ';' && s.context() == Document {
		for s.pos < len(s.src) {
			if nl, _ := newlineAt(s.src, s.pos); nl {
				break
			}
			s.pos++
		}
		return s.makeToken(Comment, start), true
	}

	if c == ',' {
		s.pos++
		return s.makeToken(Comma, start), true
	}

	// Generic run: consume bytes until a delimiter for the current
	// context is reached, then classify the run as HexValue, Number, or
	// Text.
	s.scanRun()
	return s.makeToken(classify(s.src[start:s.pos]), start), true
}

// scanRun advances s.pos over a run of ordinary characters, stopping before
// any delimiter meaningful in the current context.
func (s *Scanner) scanRun() {
	ctx := s.context()
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if nl, _ := newlineAt(s.src, s.pos); nl {
			break
		}
		if c == '{' {
			break
		}
		switch ctx {
		case Document:
			if c == ':' || c == ';' || c == ',' || c == '[' || c == ' ' || c == '\t' {
				return
			}
		case FieldValue:
			if c == ',' {
				return
			}
		}
		s.pos++
	}
}

func (s *Scanner) scanSectionHeader(start int) (Token, bool) {
	s.pos++ // consume '['
	nameStart := s.pos
	for s.pos < len(s.src) && s.src[s.pos] != ']' {
		if nl, _ := newlineAt(s.src, s.pos); nl {
			break
		}
		s.pos++
	}
	nameEnd := s.pos
	if s.pos < len(s.src) && s.src[s.pos] == ']' {
		s.pos++
	}
	nameTok := Token{Kind: SectionName, Start: nameStart, End: nameEnd, Line: s.line, Column: nameStart - s.bol + 1}
	headerTok := s.makeToken(SectionHeader, start)
	s.queue = append(s.queue, nameTok)
	return headerTok, true
}

func (s *Scanner) scanOverrideBlock(start int) (Token, bool) {
	s.pos++ // consume '{'
	depth := 1
	for s.pos < len(s.src) && depth > 0 {
		switch s.src[s.pos] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if nl, size := newlineAt(s.src, s.pos); nl {
			// Override blocks do not legitimately span lines; stop the
			// scan at the line break and let the parser flag the
			// unterminated block rather than eating the rest of the
			// document.
			_ = size
			return s.makeToken(OverrideBlock, start), true
		}
		s.pos++
	}
	return s.makeToken(OverrideBlock, start), true
}

func newlineAt(src []byte, pos int) (bool, int) {
	if pos >= len(src) {
		return false, 0
	}
	switch src[pos] {
	case '\n':
		return true, 1
	case '\r':
		if pos+1 < len(src) && src[pos+1] == '\n' {
			return true, 2
		}
		return true, 1
	default:
		return false, 0
	}
}

func isCommentStart(src []byte, pos int) bool {
	if src[pos] == ';' {
		return true
	}
	return src[pos] == '!' && pos+1 < len(src) && src[pos+1] == ':'
}

func classify(b []byte) Kind {
	if isHexValue(b) {
		return HexValue
	}
	if isNumber(b) {
		return Number
	}
	return Text
}

// isHexValue reports whether b matches `&H[0-9A-Fa-f]{2,8}&?` with an even
// digit count, per spec 4.A.
func isHexValue(b []byte) bool {
	if len(b) < 4 {
		return false
	}
	if b[0] != '&' || (b[1] != 'H' && b[1] != 'h') {
		return false
	}
	end := len(b)
	if b[end-1] == '&' {
		end--
	}
	digits := b[2:end]
	n := len(digits)
	if n < 2 || n > 8 || n%2 != 0 {
		return false
	}
	for _, c := range digits {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// isNumber reports whether every byte of b is a digit, '.', or '-'. An
// all-dash or all-dot run (e.g. "--") also counts as a Number per the
// letter of spec 4.A; the parser is responsible for rejecting it as an
// invalid number when a numeric field is expected.
func isNumber(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if !(c >= '0' && c <= '9' || c == '.' || c == '-') {
			return false
		}
	}
	return true
}
