// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asslib/ass/asserr"
	"github.com/asslib/ass/font"

	gofont "github.com/go-text/typesetting/font"
)

type fakeDatabase struct {
	has bool
}

func (f fakeDatabase) Face(family string, weight font.Weight, style font.Style) (gofont.Face, bool) {
	return gofont.Face{}, f.has
}

func TestShapeReturnsErrorWhenNoFaceResolves(t *testing.T) {
	s := New(fakeDatabase{has: false})
	_, err := s.Shape(Request{Text: "hi", Family: "Nonexistent"})
	require.Error(t, err)
	assert.True(t, asserr.Is(err, asserr.CommandFailed))
}

func TestShapeEmptyTextYieldsZeroRunWithoutCallingBackend(t *testing.T) {
	s := New(fakeDatabase{has: true})
	run, err := s.Shape(Request{Text: "", Family: "Arial"})
	require.NoError(t, err)
	assert.Empty(t, run.Glyphs)
	assert.Zero(t, run.Width)
	assert.Zero(t, run.Height)
}

func TestPxFixedRoundTrip(t *testing.T) {
	got := fixedToPx(pxToFixed(40))
	assert.InDelta(t, float32(40), got, 0.01)
}

func TestPxToFixedScalesBy64(t *testing.T) {
	assert.Equal(t, int32(40*64), int32(pxToFixed(40)))
}
