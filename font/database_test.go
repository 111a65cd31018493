// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package font

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gofont "github.com/go-text/typesetting/font"
)

func TestGoTextDatabaseExactMatch(t *testing.T) {
	db := NewGoTextDatabase()
	db.Register("Arial", WeightBold, StyleNormal, gofont.Face{})

	_, ok := db.Face("Arial", WeightBold, StyleNormal)
	assert.True(t, ok)
}

func TestGoTextDatabaseFallsBackToNormalVariant(t *testing.T) {
	db := NewGoTextDatabase()
	db.Register("Arial", WeightNormal, StyleNormal, gofont.Face{})

	_, ok := db.Face("Arial", WeightBold, StyleItalic)
	require.True(t, ok)
}

func TestGoTextDatabaseNormalVariantDoesNotMatchOtherFamily(t *testing.T) {
	db := NewGoTextDatabase()
	db.Register("Arial", WeightNormal, StyleNormal, gofont.Face{})

	_, ok := db.Face("Times New Roman", WeightBold, StyleItalic)
	assert.False(t, ok)
}

func TestGoTextDatabaseFallsBackToFallbackFamily(t *testing.T) {
	db := NewGoTextDatabase("Sans Serif")
	db.Register("Sans Serif", WeightNormal, StyleNormal, gofont.Face{})

	_, ok := db.Face("Comic Sans", WeightBold, StyleNormal)
	assert.True(t, ok)
}

func TestGoTextDatabaseTriesFallbackFamiliesInOrder(t *testing.T) {
	db := NewGoTextDatabase("First Choice", "Second Choice")
	db.Register("Second Choice", WeightNormal, StyleNormal, gofont.Face{})

	_, ok := db.Face("Unregistered", WeightNormal, StyleNormal)
	assert.True(t, ok, "should fall through First Choice (unregistered) to Second Choice")
}

func TestGoTextDatabaseUnknownFamilyNoFallbackFails(t *testing.T) {
	db := NewGoTextDatabase()
	_, ok := db.Face("Comic Sans", WeightNormal, StyleNormal)
	assert.False(t, ok)
}

func TestGoTextDatabaseExhaustsFallbackListFails(t *testing.T) {
	db := NewGoTextDatabase("Sans Serif")
	_, ok := db.Face("Comic Sans", WeightBold, StyleItalic)
	assert.False(t, ok)
}
