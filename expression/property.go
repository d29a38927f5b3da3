package expression

import "github.com/yaoapp/skinshortcuts/suffix"

// ResolveProperty implements $PROPERTY[name]: context wins over the
// item's own properties, and an unresolved name is the empty string.
// Nested $PROPERTY[...] inside the brackets is deliberately not
// supported — the name is taken verbatim.
func ResolveProperty(name string, context, itemProperties map[string]string) string {
	if v, ok := context[name]; ok {
		return v
	}
	if v, ok := itemProperties[name]; ok {
		return v
	}
	return ""
}

// SubstituteProperties replaces every $PROPERTY[name] occurrence in s.
func SubstituteProperties(s string, context, itemProperties map[string]string) string {
	return replaceAllBlocks(s, "$PROPERTY[", func(body string) string {
		return ResolveProperty(body, context, itemProperties)
	})
}

// SubstitutePropertiesSuffixed is SubstituteProperties with suffixStr
// applied to every looked-up name first, the same transform C7 applies
// to a suffixed preset/group reference's from_source.
func SubstitutePropertiesSuffixed(s, suffixStr string, context, itemProperties map[string]string) string {
	if suffixStr == "" {
		return SubstituteProperties(s, context, itemProperties)
	}
	return replaceAllBlocks(s, "$PROPERTY[", func(body string) string {
		return ResolveProperty(suffix.ApplySuffixToFrom(body, suffixStr), context, itemProperties)
	})
}

// SubstituteParent replaces every $PARENT[name] occurrence in s by
// looking the name up in parentProperties only. Used inside a submenu
// items="" iteration, where $PROPERTY[...] resolves against the submenu
// item but $PARENT[...] reaches the enclosing parent item.
func SubstituteParent(s string, parentProperties map[string]string) string {
	return replaceAllBlocks(s, "$PARENT[", func(body string) string {
		return parentProperties[body]
	})
}
