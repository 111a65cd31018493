// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extmgr

import "testing"

func TestLifecycle(t *testing.T) {
	m := New()
	if err := m.Register("Aegisub Project Garbage"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !m.IsActive("aegisub project garbage") {
		t.Fatalf("expected extension to be active after register")
	}
	if err := m.Pause("Aegisub Project Garbage"); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if m.IsActive("Aegisub Project Garbage") {
		t.Fatalf("expected extension to be inactive while paused")
	}
	if err := m.Resume("Aegisub Project Garbage"); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if !m.IsActive("Aegisub Project Garbage") {
		t.Fatalf("expected extension to be active after resume")
	}
	if err := m.Shutdown("Aegisub Project Garbage"); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if m.IsActive("Aegisub Project Garbage") {
		t.Fatalf("expected extension to be inactive after shutdown")
	}
	if err := m.Resume("Aegisub Project Garbage"); err == nil {
		t.Fatalf("expected resume after shutdown to fail")
	}
}

func TestUnregisteredIsNotActive(t *testing.T) {
	m := New()
	if m.IsActive("Unknown") {
		t.Fatalf("unregistered extension must not be active")
	}
	var nilManager *Manager
	if nilManager.IsActive("Unknown") {
		t.Fatalf("nil manager must report inactive, not panic")
	}
}
