// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertExecuteAndInvert(t *testing.T) {
	d := newDoc()
	ins := &Insert{At: 0, Text: "XYZ"}
	res, err := ins.Execute(d)
	require.NoError(t, err)
	assert.True(t, res.ContentChanged)
	assert.Equal(t, "XYZ"+fixture, string(d.Source()))

	_, err = ins.Invert().Execute(d)
	require.NoError(t, err)
	assert.Equal(t, fixture, string(d.Source()))
}

func TestDeleteExecuteAndInvert(t *testing.T) {
	d := newDoc()
	del := &Delete{Start: 0, End: 13} // "[Script Info]"
	res, err := del.Execute(d)
	require.NoError(t, err)
	assert.True(t, res.ContentChanged)
	assert.NotContains(t, string(d.Source()), "[Script Info]")

	_, err = del.Invert().Execute(d)
	require.NoError(t, err)
	assert.Equal(t, fixture, string(d.Source()))
}

func TestReplaceExecuteAndInvert(t *testing.T) {
	d := newDoc()
	r := &Replace{Start: 21, End: 28, New: "Demo!"} // "Example" -> "Demo!"
	_, err := r.Execute(d)
	require.NoError(t, err)
	assert.Contains(t, string(d.Source()), "Title: Demo!")

	_, err = r.Invert().Execute(d)
	require.NoError(t, err)
	assert.Equal(t, fixture, string(d.Source()))
}

func TestReplaceRangeOutOfBoundsReturnsInvalidRange(t *testing.T) {
	d := newDoc()
	r := &Replace{Start: -1, End: 5, New: "x"}
	_, err := r.Execute(d)
	require.Error(t, err)
}
