package template

import (
	"regexp"
	"strings"

	"github.com/yaoapp/skinshortcuts/xmlnode"
)

var paramPattern = regexp.MustCompile(`\$PARAM\[([^\]]*)\]`)

func substituteParams(s string, ctx map[string]string) string {
	return paramPattern.ReplaceAllStringFunc(s, func(m string) string {
		name := paramPattern.FindStringSubmatch(m)[1]
		return ctx[name]
	})
}

// extractIncludeDirectives strips every $INCLUDE[name] occurrence from s
// (after all other substitutions have run) and returns the cleaned text
// plus the ordered list of include names found, per §4.8's "converted
// to a child <include> element" rule.
func extractIncludeDirectives(s string) (string, []string) {
	const prefix = "$INCLUDE["
	var names []string
	var out strings.Builder
	pos := 0
	for {
		idx := strings.Index(s[pos:], prefix)
		if idx < 0 {
			out.WriteString(s[pos:])
			break
		}
		start := pos + idx
		out.WriteString(s[pos:start])
		bodyStart := start + len(prefix)
		end := strings.Index(s[bodyStart:], "]")
		if end < 0 {
			out.WriteString(s[start:])
			break
		}
		names = append(names, s[bodyStart:bodyStart+end])
		pos = bodyStart + end + 1
	}
	return out.String(), names
}

// ScanIncludeNames walks n and every descendant, collecting every name
// referenced by a $INCLUDE[name] occurrence in text, tail or any
// attribute value. Used to decide template_only="auto" emission.
func ScanIncludeNames(n *xmlnode.Node) []string {
	var names []string
	var walk func(*xmlnode.Node)
	walk = func(node *xmlnode.Node) {
		if node == nil {
			return
		}
		_, found := extractIncludeDirectives(node.Text)
		names = append(names, found...)
		_, found = extractIncludeDirectives(node.Tail)
		names = append(names, found...)
		for _, a := range node.Attrs {
			_, found = extractIncludeDirectives(a.Value)
			names = append(names, found...)
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(n)
	return names
}
