// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package extmgr implements the section-extension registry and the
// extension lifecycle state machine described in the design notes: a
// registered extension lets the parser retain a non-standard section
// (anything other than Script Info, Styles, Events, Fonts, Graphics) as a
// [ast.GenericSection] instead of dropping it with a parse issue.
package extmgr

import (
	"fmt"
	"strings"
	"sync"
)

// State is a node in the extension lifecycle state machine:
//
//	Uninitialized -> Initializing -> Active -> Paused <-> Active -> ShuttingDown -> Shutdown
//
// Error is a terminal off-ramp reachable from any transient state.
type State int

const (
	Uninitialized State = iota
	Initializing
	Active
	Paused
	ShuttingDown
	Shutdown
	Error
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Active:
		return "active"
	case Paused:
		return "paused"
	case ShuttingDown:
		return "shutting down"
	case Shutdown:
		return "shutdown"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

var validTransitions = map[State]map[State]bool{
	Uninitialized: {Initializing: true, Error: true},
	Initializing:  {Active: true, Error: true},
	Active:        {Paused: true, ShuttingDown: true, Error: true},
	Paused:        {Active: true, ShuttingDown: true, Error: true},
	ShuttingDown:  {Shutdown: true, Error: true},
	Shutdown:      {},
	Error:         {},
}

// Extension is one registered section name and its current lifecycle
// state.
type Extension struct {
	Name  string
	state State
}

func (e *Extension) State() State { return e.state }

func (e *Extension) transition(to State) error {
	if !validTransitions[e.state][to] {
		return fmt.Errorf("extension %q: invalid transition %s -> %s", e.Name, e.state, to)
	}
	e.state = to
	return nil
}

// Manager is a registry of section extensions, safe for concurrent use: a
// single mutex guards the registry and every public method acquires it
// exactly once, so there is no re-entrant locking and no deadlock risk
// (spec 5, "no deadlocks: operations acquire the lock once per public
// call and do not re-enter"). Single-threaded callers pay the (uncontended,
// cheap) lock/unlock pair and nothing more.
type Manager struct {
	mu         sync.Mutex
	extensions map[string]*Extension
}

// New returns an empty Manager.
func New() *Manager {
	return &Manager{extensions: make(map[string]*Extension)}
}

func key(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// Register adds name to the registry in the Uninitialized state and
// immediately drives it to Active. It returns an error if name is already
// registered.
func (m *Manager) Register(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(name)
	if _, exists := m.extensions[k]; exists {
		return fmt.Errorf("extension %q already registered", name)
	}
	ext := &Extension{Name: name, state: Uninitialized}
	if err := ext.transition(Initializing); err != nil {
		return err
	}
	if err := ext.transition(Active); err != nil {
		return err
	}
	m.extensions[k] = ext
	return nil
}

// Pause moves a registered, Active extension to Paused. A paused
// extension's sections are no longer retained as generic by the parser.
func (m *Manager) Pause(name string) error {
	return m.apply(name, Paused)
}

// Resume moves a Paused extension back to Active.
func (m *Manager) Resume(name string) error {
	return m.apply(name, Active)
}

// Shutdown retires an extension permanently.
func (m *Manager) Shutdown(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ext, ok := m.extensions[key(name)]
	if !ok {
		return fmt.Errorf("extension %q not registered", name)
	}
	if err := ext.transition(ShuttingDown); err != nil {
		return err
	}
	return ext.transition(Shutdown)
}

// Fail forces an extension into the terminal Error state from any
// transient state.
func (m *Manager) Fail(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ext, ok := m.extensions[key(name)]
	if !ok {
		return fmt.Errorf("extension %q not registered", name)
	}
	return ext.transition(Error)
}

func (m *Manager) apply(name string, to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ext, ok := m.extensions[key(name)]
	if !ok {
		return fmt.Errorf("extension %q not registered", name)
	}
	return ext.transition(to)
}

// IsActive reports whether name is registered and currently Active. The
// parser calls this to decide whether an unrecognized section name should
// be kept as a [ast.GenericSection] (true) or dropped with a parse issue
// (false).
func (m *Manager) IsActive(name string) bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ext, ok := m.extensions[key(name)]
	return ok && ext.state == Active
}

// State returns the current state of a registered extension and true, or
// (Uninitialized, false) if it was never registered.
func (m *Manager) State(name string) (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ext, ok := m.extensions[key(name)]
	if !ok {
		return Uninitialized, false
	}
	return ext.state, true
}
