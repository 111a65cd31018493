// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package script

import "github.com/asslib/ass/ast"

// Builder is a chainable wrapper over Document's mutation API: each call
// either runs its mutation or, once a prior step has failed, becomes a
// no-op, so a chain can be written without an error check after every
// step. Call Err or Document to find out whether the chain succeeded.
type Builder struct {
	doc *Document
	err error
}

// NewBuilder parses source and returns a Builder over a fresh Document.
func NewBuilder(source []byte, opts ...Option) *Builder {
	return &Builder{doc: New(source, opts...)}
}

// From wraps an existing Document in a Builder.
func From(doc *Document) *Builder {
	return &Builder{doc: doc}
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// AddStyle chains [Document.AddStyle].
func (b *Builder) AddStyle(fields string) *Builder {
	if b.err != nil {
		return b
	}
	return b.fail(b.doc.AddStyle(fields))
}

// AddEvent chains [Document.AddEvent].
func (b *Builder) AddEvent(eventType ast.EventType, fields string) *Builder {
	if b.err != nil {
		return b
	}
	return b.fail(b.doc.AddEvent(eventType, fields))
}

// RemoveSection chains [Document.RemoveSection].
func (b *Builder) RemoveSection(t ast.SectionType) *Builder {
	if b.err != nil {
		return b
	}
	return b.fail(b.doc.RemoveSection(t))
}

// SetStylesFormat chains [Document.SetStylesFormat].
func (b *Builder) SetStylesFormat(names ...string) *Builder {
	if b.err != nil {
		return b
	}
	return b.fail(b.doc.SetStylesFormat(names))
}

// SetEventsFormat chains [Document.SetEventsFormat].
func (b *Builder) SetEventsFormat(names ...string) *Builder {
	if b.err != nil {
		return b
	}
	return b.fail(b.doc.SetEventsFormat(names))
}

// UpdateLineAtOffset chains [Document.UpdateLineAtOffset].
func (b *Builder) UpdateLineAtOffset(offset int, newLine string) *Builder {
	if b.err != nil {
		return b
	}
	return b.fail(b.doc.UpdateLineAtOffset(offset, newLine))
}

// Err returns the first error encountered by the chain, if any.
func (b *Builder) Err() error { return b.err }

// Document returns the built Document, or the first error the chain
// encountered.
func (b *Builder) Document() (*Document, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.doc, nil
}
