// Package propctx implements C7: building the per-(template, item,
// index, menu) property context that C8 reads from. The steps
// below run in the fixed order §4.7 specifies, each writing into a
// single map; later writers are either unconditional (built-ins,
// item/default properties) or write-if-absent (everything template- and
// preset-derived).
package propctx

import (
	"strconv"

	"github.com/yaoapp/skinshortcuts/condition"
	"github.com/yaoapp/skinshortcuts/expression"
	"github.com/yaoapp/skinshortcuts/model"
	"github.com/yaoapp/skinshortcuts/suffix"
)

// Build computes the context for one iteration of a template over one
// item. outputSuffix is the current output-suffix (empty for a
// single-output build, or when no suffix applies).
func Build(
	tmpl *model.Template,
	item *model.MenuItem,
	index int,
	menu *model.Menu,
	schema *model.PropertySchema,
	templates *model.TemplateSchema,
	outputSuffix string,
) map[string]string {
	ctx := map[string]string{}

	// 1. menu defaults
	for k, v := range menu.Defaults.Properties {
		ctx[k] = v
	}
	// 2. item properties override
	for k, v := range item.Properties {
		ctx[k] = v
	}
	// 3. built-ins
	ctx["index"] = strconv.Itoa(index)
	ctx["name"] = item.Name
	ctx["menu"] = menu.Name
	ctx["idprefix"] = tmpl.IDPrefix
	ctx["id"] = tmpl.IDPrefix + strconv.Itoa(index)
	ctx["suffix"] = outputSuffix

	// 4. schema fallbacks
	applyFallbacks(ctx, item, schema)

	// 5. template properties (write-if-absent)
	applyTemplateProperties(ctx, item, tmpl.Properties, "", templates)

	// 6. template vars (write-if-absent)
	applyTemplateVars(ctx, tmpl.Vars, "")

	// 7. preset references, in declaration order
	for _, ref := range tmpl.PresetRefs {
		applyPresetRef(ctx, ref, templates)
	}

	// 8. property-group references, in declaration order
	for _, ref := range tmpl.GroupRefs {
		applyGroupRef(ctx, item, ref, templates)
	}

	return ctx
}

// writeIfAbsent is the shared write discipline for every template-,
// preset- and group-derived value.
func writeIfAbsent(ctx map[string]string, key, value string) {
	if _, ok := ctx[key]; !ok {
		ctx[key] = value
	}
}

func mergedProperties(ctx map[string]string, item *model.MenuItem) map[string]string {
	merged := make(map[string]string, len(ctx)+len(item.Properties))
	for k, v := range item.Properties {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	return merged
}

// applyFallbacks fills in schema-declared fallback values for any
// property the context still lacks (§4.7 step 4). When the current
// iteration carries an output suffix, a property already set under its
// suffixed variant also counts as present, and every fallback condition
// is suffix-transformed before evaluation, matching how presets and
// property groups treat a suffixed reference.
func applyFallbacks(ctx map[string]string, item *model.MenuItem, schema *model.PropertySchema) {
	if schema == nil {
		return
	}
	props := mergedProperties(ctx, item)
	suffixStr := ctx["suffix"]
	for name, rule := range schema.Fallbacks {
		if _, ok := ctx[name]; ok {
			continue
		}
		if suffixStr != "" {
			if _, ok := ctx[suffix.ApplySuffixToFrom(name, suffixStr)]; ok {
				continue
			}
		}
		matched := false
		for _, when := range rule.Rules {
			cond := when.When
			if suffixStr != "" {
				cond = suffix.ApplySuffixToCondition(cond, suffixStr)
			}
			if condition.Evaluate(cond, props) {
				ctx[name] = when.Value
				matched = true
				break
			}
		}
		if !matched && rule.HasDefault {
			ctx[name] = rule.Default
		}
	}
}

func applyTemplateProperties(ctx map[string]string, item *model.MenuItem, props []model.TemplateProperty, suffixStr string, templates *model.TemplateSchema) {
	merged := mergedProperties(ctx, item)
	for _, p := range props {
		cond := p.Condition
		if suffixStr != "" {
			cond = suffix.ApplySuffixToCondition(cond, suffixStr)
		}
		if !condition.Evaluate(cond, merged) {
			continue
		}
		var value string
		if p.Kind == model.ValueFromSource {
			from := p.FromSource
			if suffixStr != "" {
				from = suffix.ApplySuffixToFrom(from, suffixStr)
			}
			value = ResolveFromSource(from, ctx, item, templates)
		} else {
			value = expression.SubstituteProperties(p.Literal, ctx, item.Properties)
		}
		writeIfAbsent(ctx, p.Name, value)
	}
}

func applyTemplateVars(ctx map[string]string, vars []model.TemplateVar, suffixStr string) {
	for _, v := range vars {
		for _, c := range v.Cases {
			cond := c.Condition
			if suffixStr != "" && cond != "" {
				cond = suffix.ApplySuffixToCondition(cond, suffixStr)
			}
			if condition.Evaluate(cond, ctx) {
				writeIfAbsent(ctx, v.Name, c.Value)
				break
			}
		}
	}
}

func applyPresetRef(ctx map[string]string, ref model.Ref, templates *model.TemplateSchema) {
	if templates == nil {
		return
	}
	preset, ok := templates.Presets[ref.Name]
	if !ok {
		return
	}
	cond := ref.Condition
	if cond != "" && ref.Suffix != "" {
		cond = suffix.ApplySuffixToCondition(cond, ref.Suffix)
	}
	if cond != "" && !condition.Evaluate(cond, ctx) {
		return
	}
	for _, row := range preset.Rows {
		rowCond := row.Condition
		if ref.Suffix != "" {
			rowCond = suffix.ApplySuffixToCondition(rowCond, ref.Suffix)
		}
		if !condition.Evaluate(rowCond, ctx) {
			continue
		}
		for k, v := range row.Attrs {
			writeIfAbsent(ctx, k, v)
		}
		return
	}
}

func applyGroupRef(ctx map[string]string, item *model.MenuItem, ref model.Ref, templates *model.TemplateSchema) {
	if templates == nil {
		return
	}
	group, ok := templates.PropertyGroups[ref.Name]
	if !ok {
		return
	}
	if ref.Condition != "" {
		cond := ref.Condition
		if ref.Suffix != "" {
			cond = suffix.ApplySuffixToCondition(cond, ref.Suffix)
		}
		if !condition.Evaluate(cond, ctx) {
			return
		}
	}
	applyTemplateProperties(ctx, item, group.Properties, ref.Suffix, templates)
	applyTemplateVars(ctx, group.Vars, ref.Suffix)
}
