// Package suffix implements the C4 suffix transformer used when a
// template, preset or property-group reference carries a suffix
// attribute: it rewrites property identifiers so repeated template
// instances (one per widget slot, one per button) address distinct
// property keys without colliding.
package suffix

import (
	"regexp"
	"strings"
)

// reserved identifiers are iteration built-ins that a suffix must never
// touch (§4.4).
var reserved = map[string]bool{
	"name":     true,
	"default":  true,
	"menu":     true,
	"index":    true,
	"id":       true,
	"idprefix": true,
	"suffix":   true,
}

var identBeforeOperator = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*\s*[=~]`)

// ApplySuffixToCondition appends suffix to every non-reserved identifier
// that precedes an '=' or '~' operator in cond. Values after the
// operator are left untouched. Idempotent only when suffix is empty.
func ApplySuffixToCondition(cond, suffix string) string {
	if suffix == "" {
		return cond
	}
	return identBeforeOperator.ReplaceAllStringFunc(cond, func(match string) string {
		opIdx := strings.IndexAny(match, "=~")
		ident := strings.TrimRight(match[:opIdx], " \t")
		op := match[opIdx:]
		if reserved[ident] {
			return match
		}
		return ident + suffix + op
	})
}

// ApplySuffixToFrom rewrites a from_source identifier. Reserved names
// pass through unchanged; bracketed "preset[attr]" names get the suffix
// inserted before the bracket; everything else is appended to.
func ApplySuffixToFrom(name, suffix string) string {
	if suffix == "" || reserved[name] {
		return name
	}
	if idx := strings.Index(name, "["); idx >= 0 {
		return name[:idx] + suffix + name[idx:]
	}
	return name + suffix
}
