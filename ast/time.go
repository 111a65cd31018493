// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import "fmt"

// ParseTimeCs parses an ASS H:MM:SS.CC timestamp (as used by Event's Start
// and End fields) into centiseconds. ok is false for a malformed
// timestamp.
func ParseTimeCs(s string) (cs int, ok bool) {
	var h, m, sec, cc int
	if n, err := fmt.Sscanf(s, "%d:%d:%d.%d", &h, &m, &sec, &cc); n != 4 || err != nil {
		return 0, false
	}
	if m < 0 || m > 59 || sec < 0 || sec > 59 || cc < 0 || cc > 99 || h < 0 {
		return 0, false
	}
	return ((h*60+m)*60+sec)*100 + cc, true
}

// FormatTimeCs formats centiseconds back into ASS's H:MM:SS.CC form.
func FormatTimeCs(cs int) string {
	if cs < 0 {
		cs = 0
	}
	h := cs / 360000
	cs -= h * 360000
	m := cs / 6000
	cs -= m * 6000
	sec := cs / 100
	cc := cs - sec*100
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, sec, cc)
}
