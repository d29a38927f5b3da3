package condition

import "strings"

var keywordReplacer = strings.NewReplacer(
	" AND ", " + ",
	" OR ", " | ",
	" EQUALS ", "=",
	" CONTAINS ", "~",
)

// normalizeKeywords rewrites the word-form operators onto their symbol
// equivalents. NOT is handled separately since it is a prefix, not an
// infix, operator.
func normalizeKeywords(s string) string {
	s = " " + s + " "
	s = keywordReplacer.Replace(s)
	s = strings.ReplaceAll(s, "NOT ", "!")
	return strings.TrimSpace(s)
}

// ExpandCompactOR rewrites the "prop=v1 | v2 | v3" shorthand into the
// fully qualified "prop=v1 | prop=v2 | prop=v3" before tokenizing. The
// chain carries across a run of plain-value segments and resets the
// moment a segment isn't a bare value (another operator, a bracket, a
// fresh prop= atom). Bracketed subgroups are expanded independently of
// their enclosing chain (§4.1).
func ExpandCompactOR(s string) string {
	s = expandBrackets(s)
	segments := splitTopLevel(s, '|')
	segments = rewriteChain(segments)
	return strings.Join(segments, " | ")
}

func expandBrackets(s string) string {
	var out strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '[' {
			depth := 1
			j := i + 1
			for j < len(s) && depth > 0 {
				switch s[j] {
				case '[':
					depth++
				case ']':
					depth--
				}
				j++
			}
			inner := s[i+1:]
			if depth == 0 {
				inner = s[i+1 : j-1]
			}
			out.WriteByte('[')
			out.WriteString(ExpandCompactOR(inner))
			if depth == 0 {
				out.WriteByte(']')
			}
			i = j
		} else {
			out.WriteByte(s[i])
			i++
		}
	}
	return out.String()
}

// splitTopLevel splits s on sep, ignoring occurrences inside a bracketed
// subgroup.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '[':
			depth++
			buf.WriteByte(c)
		case c == ']':
			depth--
			buf.WriteByte(c)
		case c == sep && depth == 0:
			parts = append(parts, buf.String())
			buf.Reset()
		default:
			buf.WriteByte(c)
		}
	}
	parts = append(parts, buf.String())
	return parts
}

func rewriteChain(segments []string) []string {
	out := make([]string, len(segments))
	chainProp := ""
	for i, raw := range segments {
		seg := strings.TrimSpace(raw)
		if chainProp != "" && isPlainValue(seg) {
			out[i] = chainProp + "=" + seg
		} else {
			out[i] = seg
			chainProp = ""
		}
		if prop, ok := chainStart(seg); ok {
			chainProp = prop
		}
	}
	return out
}

// isPlainValue reports whether seg is a bare value with no operator of
// its own — a candidate to be folded into the preceding chain.
func isPlainValue(seg string) bool {
	if seg == "" || strings.ContainsAny(seg, "=~+![]") {
		return false
	}
	if strings.Contains(seg, " IN ") || strings.HasSuffix(seg, " EMPTY") {
		return false
	}
	return true
}

// chainStart reports whether seg is a simple "prop=value" atom and, if
// so, returns prop — the start (or continuation) of a compact-OR chain.
func chainStart(seg string) (string, bool) {
	if strings.ContainsAny(seg, "+![]~") {
		return "", false
	}
	idx := strings.Index(seg, "=")
	if idx <= 0 {
		return "", false
	}
	prop := strings.TrimSpace(seg[:idx])
	if prop == "" || strings.Contains(prop, " ") {
		return "", false
	}
	return prop, true
}
