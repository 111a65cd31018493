// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(src string) []Token {
	s := New([]byte(src))
	var toks []Token
	for {
		t, ok := s.Next()
		if !ok {
			break
		}
		toks = append(toks, t)
	}
	return toks
}

func TestSectionHeader(t *testing.T) {
	src := "[Script Info]\n"
	toks := collect(src)
	assert.Equal(t, SectionHeader, toks[0].Kind)
	assert.Equal(t, "[Script Info]", string(toks[0].Text([]byte(src))))
	assert.Equal(t, SectionName, toks[1].Kind)
	assert.Equal(t, "Script Info", string(toks[1].Text([]byte(src))))
	assert.Equal(t, Newline, toks[2].Kind)
}

func TestFieldValueKeepsColonInTime(t *testing.T) {
	src := "Dialogue: 0,0:01:23.45,0:01:24.00,Default,,0,0,0,,Hi\n"
	s := New([]byte(src))
	var kinds []Kind
	var texts []string
	for {
		tok, ok := s.Next()
		if !ok {
			break
		}
		kinds = append(kinds, tok.Kind)
		texts = append(texts, string(tok.Text([]byte(src))))
	}
	// "0:01:23.45" must survive as a single token, not be split on
	// the colons, because the scanner entered FieldValue after the first
	// Colon in the line.
	found := false
	for _, txt := range texts {
		if txt == "0:01:23.45" {
			found = true
		}
	}
	assert.True(t, found, "expected time value to remain a single token, got %v", texts)
}

func TestHexColorClassification(t *testing.T) {
	assert.True(t, isHexValue([]byte("&H00FF00&")))
	assert.True(t, isHexValue([]byte("&H00FF00")))
	assert.True(t, isHexValue([]byte("&HFF&")))
	assert.False(t, isHexValue([]byte("00FF00")), "raw hex without &H is not a HexValue")
	assert.False(t, isHexValue([]byte("&H0&")), "odd digit count is not a HexValue")
}

func TestCommentLines(t *testing.T) {
	toks := collect("; a comment\n!: also a comment\n")
	assert.Equal(t, Comment, toks[0].Kind)
	assert.Equal(t, Newline, toks[1].Kind)
	assert.Equal(t, Comment, toks[2].Kind)
}

func TestOverrideBlockIsOneToken(t *testing.T) {
	src := "{\\b1\\i1}Hi"
	s := New([]byte(src))
	tok, ok := s.Next()
	if assert.True(t, ok) {
		assert.Equal(t, OverrideBlock, tok.Kind)
		assert.Equal(t, "{\\b1\\i1}", string(tok.Text([]byte(src))))
	}
}

func TestLineCountingCRLFAndCR(t *testing.T) {
	for _, src := range []string{"a\nb", "a\r\nb", "a\rb"} {
		s := New([]byte(src))
		var last Token
		for {
			tok, ok := s.Next()
			if !ok {
				break
			}
			last = tok
		}
		assert.Equal(t, 2, last.Line, "source %q: each of CR, LF, CRLF should advance the line counter exactly once", src)
	}
}

func TestScannerTerminatesOnPathologicalInput(t *testing.T) {
	src := make([]byte, 10000)
	for i := range src {
		src[i] = '{'
	}
	s := New(src)
	n := 0
	for {
		_, ok := s.Next()
		if !ok {
			break
		}
		n++
		if n > len(src)*4+128 {
			t.Fatalf("scanner did not terminate within the safety cap")
		}
	}
}

func TestBOMIsConsumed(t *testing.T) {
	src := append([]byte{0xEF, 0xBB, 0xBF}, []byte("[Script Info]\n")...)
	s := New(src)
	tok, ok := s.Next()
	if assert.True(t, ok) {
		assert.Equal(t, 3, tok.Start)
	}
}
