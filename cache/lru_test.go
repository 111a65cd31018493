// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUGetMissReturnsFalse(t *testing.T) {
	c := newLRU[string, int](2)
	_, ok := c.get("missing")
	assert.False(t, ok)
}

func TestLRUPutThenGetRoundTrips(t *testing.T) {
	c := newLRU[string, int](2)
	c.put("a", 1)
	v, ok := c.get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestLRUEvictsLeastRecentlyUsedOnOverflow(t *testing.T) {
	c := newLRU[string, int](2)
	c.put("a", 1)
	c.put("b", 2)
	c.put("c", 3) // evicts "a", the least recently touched

	_, ok := c.get("a")
	assert.False(t, ok)
	_, ok = c.get("b")
	assert.True(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)
}

func TestLRUGetRefreshesRecency(t *testing.T) {
	c := newLRU[string, int](2)
	c.put("a", 1)
	c.put("b", 2)
	c.get("a")      // "a" is now more recent than "b"
	c.put("c", 3) // evicts "b", not "a"

	_, ok := c.get("a")
	assert.True(t, ok)
	_, ok = c.get("b")
	assert.False(t, ok)
}

func TestLRUPutExistingKeyUpdatesValueWithoutGrowing(t *testing.T) {
	c := newLRU[string, int](2)
	c.put("a", 1)
	c.put("a", 2)
	v, _ := c.get("a")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.len())
}

func TestLRUCapacityBelowOneIsClampedToOne(t *testing.T) {
	c := newLRU[string, int](0)
	c.put("a", 1)
	c.put("b", 2)
	assert.Equal(t, 1, c.len())
}
