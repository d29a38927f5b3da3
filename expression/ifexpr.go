package expression

import (
	"strings"

	"github.com/yaoapp/skinshortcuts/condition"
)

// EvalIf evaluates a $IF[...] body: "cond THEN value (ELIF cond THEN
// value)* (ELSE value)?". The first branch whose condition is true wins;
// with no match and no ELSE, it returns "".
func EvalIf(body string, properties map[string]string) string {
	branches, elseValue, hasElse := splitIfBranches(body)
	for _, b := range branches {
		if condition.Evaluate(b.cond, properties) {
			return b.value
		}
	}
	if hasElse {
		return elseValue
	}
	return ""
}

type ifBranch struct {
	cond  string
	value string
}

// splitIfBranches tokenizes on the case-sensitive, whitespace-delimited
// keywords THEN / ELIF / ELSE.
func splitIfBranches(body string) (branches []ifBranch, elseValue string, hasElse bool) {
	fields := splitKeywords(body)
	i := 0
	cond := strings.TrimSpace(fields.lead)
	for _, part := range fields.parts {
		switch part.keyword {
		case "THEN":
			branches = append(branches, ifBranch{cond: cond, value: strings.TrimSpace(part.text)})
		case "ELIF":
			cond = strings.TrimSpace(part.text)
		case "ELSE":
			elseValue = strings.TrimSpace(part.text)
			hasElse = true
		}
		i++
	}
	_ = i
	return branches, elseValue, hasElse
}

type keywordPart struct {
	keyword string
	text    string
}

type keywordSplit struct {
	lead  string
	parts []keywordPart
}

// splitKeywords scans body for top-level occurrences of THEN/ELIF/ELSE,
// each required to be whitespace-delimited, and returns the text before
// the first keyword plus the sequence of (keyword, following text) pairs.
func splitKeywords(body string) keywordSplit {
	keywords := []string{"THEN", "ELIF", "ELSE"}
	var result keywordSplit
	rest := body
	leadSet := false
	for len(rest) > 0 {
		idx, kw, kwLen := nextKeyword(rest, keywords)
		if idx < 0 {
			if !leadSet {
				result.lead = rest
				leadSet = true
			} else {
				result.parts[len(result.parts)-1].text += rest
			}
			break
		}
		if !leadSet {
			result.lead = rest[:idx]
			leadSet = true
		} else {
			result.parts[len(result.parts)-1].text += rest[:idx]
		}
		result.parts = append(result.parts, keywordPart{keyword: kw})
		rest = rest[idx+kwLen:]
	}
	return result
}

func nextKeyword(s string, keywords []string) (idx int, keyword string, length int) {
	best := -1
	bestKw := ""
	for _, kw := range keywords {
		search := s
		offset := 0
		for {
			i := strings.Index(search, kw)
			if i < 0 {
				break
			}
			abs := offset + i
			before := abs == 0 || isSpace(s[abs-1])
			afterIdx := abs + len(kw)
			after := afterIdx >= len(s) || isSpace(s[afterIdx])
			if before && after {
				if best < 0 || abs < best {
					best = abs
					bestKw = kw
				}
				break
			}
			offset = abs + len(kw)
			search = s[offset:]
		}
	}
	if best < 0 {
		return -1, "", 0
	}
	return best, bestKw, len(bestKw)
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }
