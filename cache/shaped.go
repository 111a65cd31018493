// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import "github.com/asslib/ass/shape"

// ShapedKey is a shaped run's structural fingerprint: every field
// shape.Shaper.Shape's output depends on. It is deliberately a plain
// comparable struct (not a hash) so two fingerprints are equal exactly
// when they describe the same shaping request, matching spec's "caches
// exclusively own their entries keyed by structural fingerprints."
type ShapedKey struct {
	Text      string
	Family    string
	SizePx    float32
	Bold      bool
	Italic    bool
	SpacingPx float32
}

// KeyFor builds a ShapedKey from a shaping request.
func KeyFor(req shape.Request) ShapedKey {
	return ShapedKey{
		Text:      req.Text,
		Family:    req.Family,
		SizePx:    req.SizePx,
		Bold:      req.Bold,
		Italic:    req.Italic,
		SpacingPx: req.SpacingPx,
	}
}

// Shaped memoizes shape.Run results by ShapedKey, independent of the
// Paths cache's capacity per spec §4.M.
type Shaped struct {
	table *lru[ShapedKey, shape.Run]
}

// NewShaped returns a Shaped cache holding at most capacity entries.
func NewShaped(capacity int) *Shaped {
	return &Shaped{table: newLRU[ShapedKey, shape.Run](capacity)}
}

// Get returns the cached run for key, if present.
func (s *Shaped) Get(key ShapedKey) (shape.Run, bool) { return s.table.get(key) }

// Put caches run under key, evicting the least-recently-used entry if
// the cache is full.
func (s *Shaped) Put(key ShapedKey, run shape.Run) { s.table.put(key, run) }

// Len reports the number of runs currently cached.
func (s *Shaped) Len() int { return s.table.len() }
