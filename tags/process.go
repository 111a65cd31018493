// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tags

import "strings"

// StyleResolver looks up a named style's starting State for \r[name], or
// the base style's State for a bare \r. ok is false for an unknown name,
// in which case \r is treated as a no-op and recorded as an Issue.
type StyleResolver func(name string) (State, bool)

// Process applies every tag in a `{...}` block's body to state in order,
// special-casing \r (reset to a named style, reopening a new resolution
// scope) and \t (queue a [Transform] rather than mutate state
// immediately), per spec 4.G. It returns the resulting state and any
// issues encountered along the way.
func Process(state State, body string, resolve StyleResolver) (State, []Issue) {
	parsed, issues := ParseBlock(body)
	for _, t := range parsed {
		switch t.Name {
		case "r":
			name := ""
			if len(t.Args) > 0 {
				name = strings.TrimSpace(t.Args[0])
			}
			if name == "" {
				if base, ok := resolve(""); ok {
					state = base
				}
				continue
			}
			base, ok := resolve(name)
			if !ok {
				issues = append(issues, Issue{Message: "unknown style in \\r", Raw: name})
				continue
			}
			state = base
		case "t":
			// \t's argument grammar (optional leading times mixed with an
			// embedded tag list) cannot be split by the generic
			// comma-splitter every other parenthesized tag uses, so it is
			// re-parsed from its own raw inner text instead of t.Args.
			transform := parseTransform(rawInnerOf(t))
			state.Transforms = append(state.Transforms, transform)
		default:
			Apply(&state, t)
		}
	}
	return state, issues
}

// rawInnerOf recovers the text between \t's parentheses from a Tag built
// by ParseBlock, since \t's argument grammar (optional leading times mixed
// with an embedded tag list) cannot be split generically the way every
// other parenthesized tag's comma-separated argument list can.
func rawInnerOf(t Tag) string {
	raw := t.Raw
	open := indexByte(raw, '(')
	if open < 0 || len(raw) == 0 || raw[len(raw)-1] != ')' {
		return ""
	}
	return raw[open+1 : len(raw)-1]
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
