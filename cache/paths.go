// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import "github.com/asslib/ass/drawing"

// PathKey fingerprints a drawing.Parse call: the raw command string plus
// the `\p` scale level, the only two inputs Parse's output depends on.
type PathKey struct {
	Commands string
	Level    int
}

// Paths memoizes drawing.Path results by PathKey, independent of the
// Shaped cache's capacity per spec §4.M.
type Paths struct {
	table *lru[PathKey, drawing.Path]
}

// NewPaths returns a Paths cache holding at most capacity entries.
func NewPaths(capacity int) *Paths {
	return &Paths{table: newLRU[PathKey, drawing.Path](capacity)}
}

// Get returns the cached path for key, if present.
func (p *Paths) Get(key PathKey) (drawing.Path, bool) { return p.table.get(key) }

// Put caches path under key, evicting the least-recently-used entry if
// the cache is full.
func (p *Paths) Put(key PathKey, path drawing.Path) { p.table.put(key, path) }

// Len reports the number of paths currently cached.
func (p *Paths) Len() int { return p.table.len() }
