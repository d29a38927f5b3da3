package expression

// ProcessText applies the fixed C2 pipeline to one text node: $MATH
// first, then $IF, then $PROPERTY. $INCLUDE is left untouched — the
// template processor (C8) splices it structurally, not textually.
//
// properties is the evaluation environment used for $MATH identifiers
// and $IF conditions; context/itemProperties is the layered lookup used
// for $PROPERTY (context first, then the item's own properties).
func ProcessText(s string, properties, context, itemProperties map[string]string) string {
	s = replaceAllBlocks(s, "$MATH[", func(body string) string {
		return EvalMath(body, properties)
	})
	s = replaceAllBlocks(s, "$IF[", func(body string) string {
		return EvalIf(body, properties)
	})
	s = SubstituteProperties(s, context, itemProperties)
	return s
}

// ExpandExp textually inlines a named expression string in place of
// $EXP[name] occurrences; an unknown name becomes "". It does not
// evaluate the result. The template processor applies it to every text,
// tail and attribute value, not only to condition-like contexts, before
// running ProcessText on the expanded text.
func ExpandExp(s string, expressions map[string]string) string {
	return replaceAllBlocks(s, "$EXP[", func(body string) string {
		if v, ok := expressions[body]; ok {
			return v
		}
		return ""
	})
}
