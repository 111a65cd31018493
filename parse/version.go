// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import "github.com/asslib/ass/ast"

// DetectVersion inspects the Script Info section's ScriptType field to
// decide between the ASS (v4.00+) and SSA (v4.00) dialects. A missing or
// unrecognized field defaults to AssV4, the more capable and far more
// common dialect in the wild. Exported so package incremental can apply
// the same rule when it reconstitutes a Script without a full reparse.
func DetectVersion(source []byte, script *ast.Script) ast.Version {
	info := script.ScriptInfo()
	if info == nil {
		return ast.AssV4
	}
	v, ok := info.Get(source, "ScriptType")
	if !ok {
		return ast.AssV4
	}
	switch normalizeScriptType(v) {
	case "v4.00":
		return ast.SsaV4
	case "v4.00+":
		return ast.AssV4
	default:
		return ast.AssV4
	}
}

func normalizeScriptType(v string) string {
	out := make([]byte, 0, len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == ' ' || c == '\t' {
			continue
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
