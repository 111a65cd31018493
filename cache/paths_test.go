// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asslib/ass/drawing"
)

func TestPathsCacheRoundTrips(t *testing.T) {
	c := NewPaths(4)
	key := PathKey{Commands: "m 0 0 l 10 10", Level: 1}

	_, ok := c.Get(key)
	assert.False(t, ok)

	path, _ := drawing.Parse(key.Commands, key.Level)
	c.Put(key, path)

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, path.MaxX, got.MaxX)
	assert.Equal(t, 1, c.Len())
}

func TestPathsCacheDistinguishesByLevel(t *testing.T) {
	a := PathKey{Commands: "m 0 0 l 10 10", Level: 1}
	b := PathKey{Commands: "m 0 0 l 10 10", Level: 2}
	assert.NotEqual(t, a, b)
}

func TestPathsCacheIndependentCapacityFromShaped(t *testing.T) {
	paths := NewPaths(1)
	shaped := NewShaped(4)

	paths.Put(PathKey{Commands: "m 0 0", Level: 1}, drawing.Path{})
	paths.Put(PathKey{Commands: "m 1 1", Level: 1}, drawing.Path{})

	assert.Equal(t, 1, paths.Len())
	assert.Equal(t, 0, shaped.Len())
}
