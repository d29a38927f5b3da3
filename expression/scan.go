// Package expression implements the C2 mini-languages embedded in
// template text: $MATH[...] arithmetic, $IF[...THEN...ELSE...]
// branching, and $PROPERTY[...] substitution. $INCLUDE[...] is handled
// structurally by the template processor, not here.
package expression

import "strings"

// findBlock locates the next occurrence of prefix (e.g. "$MATH[") in s
// starting at or after from, and returns the span of its bracketed body
// (exclusive of the brackets) along with the full span including the
// prefix and closing bracket. ok is false if prefix doesn't occur or its
// bracket is never closed.
func findBlock(s, prefix string, from int) (bodyStart, bodyEnd, fullStart, fullEnd int, ok bool) {
	idx := strings.Index(s[from:], prefix)
	if idx < 0 {
		return 0, 0, 0, 0, false
	}
	fullStart = from + idx
	bodyStart = fullStart + len(prefix)
	depth := 1
	i := bodyStart
	for i < len(s) && depth > 0 {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		}
		i++
	}
	if depth != 0 {
		return 0, 0, 0, 0, false
	}
	bodyEnd = i - 1
	fullEnd = i
	return bodyStart, bodyEnd, fullStart, fullEnd, true
}

// replaceAllBlocks scans s for every occurrence of prefix and replaces
// each bracketed block with render(body). A block whose bracket never
// closes is left untouched (returned unchanged) rather than dropped.
func replaceAllBlocks(s, prefix string, render func(body string) string) string {
	var out strings.Builder
	pos := 0
	for {
		bodyStart, bodyEnd, fullStart, fullEnd, ok := findBlock(s, prefix, pos)
		if !ok {
			out.WriteString(s[pos:])
			break
		}
		out.WriteString(s[pos:fullStart])
		out.WriteString(render(s[bodyStart:bodyEnd]))
		pos = fullEnd
	}
	return out.String()
}
