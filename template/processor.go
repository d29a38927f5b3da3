// Package template implements C8: iterating a Template's declared build
// mode over menus/list rows/a single raw pass, building the per-
// iteration property context (C7), and transforming a deep copy of the
// template's controls subtree into output XML.
package template

import (
	"github.com/yaoapp/skinshortcuts/condition"
	"github.com/yaoapp/skinshortcuts/expression"
	"github.com/yaoapp/skinshortcuts/model"
	"github.com/yaoapp/skinshortcuts/propctx"
	"github.com/yaoapp/skinshortcuts/suffix"
	"github.com/yaoapp/skinshortcuts/xmlnode"
)

// Result is what processing one Template produces: at most one include
// element (nil when template_only suppresses emission) plus the
// variable elements emitted alongside it.
type Result struct {
	Include   *xmlnode.Node
	Variables []*xmlnode.Node
}

// Process runs one Template through its full iteration contract.
// referenced is the set of "skinshortcuts-template-NAME" include names
// found in menu item property values or in template controls, consulted
// for template_only="auto".
func Process(tmpl *model.Template, allMenus []*model.Menu, schema *model.PropertySchema, templates *model.TemplateSchema, referenced map[string]bool) *Result {
	includeName := "skinshortcuts-template-" + tmpl.Include

	emit := true
	switch tmpl.TemplateOnly {
	case model.TemplateOnlyTrue:
		emit = false
	case model.TemplateOnlyAuto:
		emit = referenced[includeName]
	}

	var accumulated []*xmlnode.Node
	var variables []*xmlnode.Node

	for _, it := range iterations(tmpl, allMenus) {
		ctx := propctx.Build(tmpl, it.item, it.index, it.menu, schema, templates, tmpl.Suffix)
		if tmpl.BuildMode == model.BuildRaw {
			ctx["name"] = ""
			ctx["menu"] = ""
			ctx["index"] = ""
			for _, p := range tmpl.Params {
				if _, ok := ctx[p.Name]; !ok {
					ctx[p.Name] = p.Default
				}
			}
		}

		if emit && tmpl.Controls != nil {
			for _, c := range tmpl.Controls.Children {
				accumulated = append(accumulated, processElement(c, ctx, it.item, nil, it.menu.Container, allMenus, templates)...)
			}
		}

		variables = append(variables, emitVariables(tmpl, ctx, it.item, templates)...)
	}

	if !emit {
		return &Result{Variables: variables}
	}

	include := xmlnode.New("include")
	include.SetAttr("name", includeName)
	include.Children = accumulated
	if len(accumulated) == 0 {
		include.AppendChild(xmlnode.New("description"))
	}

	return &Result{Include: include, Variables: variables}
}

type iteration struct {
	item  *model.MenuItem
	index int
	menu  *model.Menu
}

func iterations(tmpl *model.Template, allMenus []*model.Menu) []iteration {
	switch tmpl.BuildMode {
	case model.BuildList:
		var out []iteration
		synthMenu := &model.Menu{}
		for i, row := range tmpl.ListItems {
			out = append(out, iteration{
				item:  &model.MenuItem{Properties: row},
				index: i + 1,
				menu:  synthMenu,
			})
		}
		return out

	case model.BuildRaw:
		return []iteration{{item: &model.MenuItem{Properties: map[string]string{}}, index: 0, menu: &model.Menu{}}}

	default: // MENU
		var out []iteration
		for _, menu := range allMenus {
			if tmpl.Menu != "" && tmpl.Menu != menu.Name {
				continue
			}
			idx := 0
			for _, item := range menu.Items {
				if item.Disabled {
					continue
				}
				merged := mergeProps(menu.Defaults.Properties, item.Properties)
				if !checkConditions(tmpl.Conditions, merged) {
					continue
				}
				idx++
				out = append(out, iteration{item: item, index: idx, menu: menu})
			}
		}
		return out
	}
}

func mergeProps(a, b map[string]string) map[string]string {
	merged := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] = v
	}
	return merged
}

func checkConditions(conditions []string, props map[string]string) bool {
	for _, c := range conditions {
		if !condition.Evaluate(c, props) {
			return false
		}
	}
	return true
}

func emitVariables(tmpl *model.Template, ctx map[string]string, item *model.MenuItem, templates *model.TemplateSchema) []*xmlnode.Node {
	var out []*xmlnode.Node
	seen := map[string]bool{}
	for _, ref := range tmpl.VarGroupRefs {
		out = append(out, resolveVariableGroup(ref.Name, ref.Suffix, ref.Condition, ctx, item, templates, seen)...)
	}
	return out
}

func resolveVariableGroup(name, suffixStr, cond string, ctx map[string]string, item *model.MenuItem, templates *model.TemplateSchema, seen map[string]bool) []*xmlnode.Node {
	if seen[name+"\x00"+suffixStr] {
		return nil
	}
	seen[name+"\x00"+suffixStr] = true

	group, ok := templates.VariableGroups[name]
	if !ok {
		return nil
	}
	if cond != "" {
		cond = suffix.ApplySuffixToCondition(cond, suffixStr)
		if !condition.Evaluate(cond, ctx) {
			return nil
		}
	}

	var out []*xmlnode.Node
	for _, ref := range group.Variables {
		out = append(out, emitVariable(ref.Name, ref.Suffix, ref.Condition, ctx, item, templates)...)
	}
	for _, ref := range group.Groups {
		out = append(out, resolveVariableGroup(ref.Name, ref.Suffix, ref.Condition, ctx, item, templates, seen)...)
	}
	return out
}

// emitVariable resolves one variable reference under its suffixed
// context (§4.8): both the variable's own condition and the reference's
// condition are suffix-transformed before evaluation, the same as C7
// suffix-transforms a preset/group reference's condition, and every
// $PROPERTY[...] lookup in the output name and body is resolved against
// the suffixed property name, mirroring C7's from_source handling.
func emitVariable(name, suffixStr, cond string, ctx map[string]string, item *model.MenuItem, templates *model.TemplateSchema) []*xmlnode.Node {
	def, ok := templates.Variables[name]
	if !ok {
		return nil
	}
	if def.Condition != "" && !condition.Evaluate(suffix.ApplySuffixToCondition(def.Condition, suffixStr), ctx) {
		return nil
	}
	if cond != "" && !condition.Evaluate(suffix.ApplySuffixToCondition(cond, suffixStr), ctx) {
		return nil
	}

	outputName := def.Name
	if def.Output != "" {
		outputName = expression.SubstitutePropertiesSuffixed(def.Output, suffixStr, ctx, item.Properties)
	}

	out := xmlnode.New("variable")
	out.SetAttr("name", outputName)
	out.Children = substituteTree(def.Body.Children, suffixStr, ctx, item)
	out.Text = expression.SubstitutePropertiesSuffixed(def.Body.Text, suffixStr, ctx, item.Properties)
	return []*xmlnode.Node{out}
}

func substituteTree(nodes []*xmlnode.Node, suffixStr string, ctx map[string]string, item *model.MenuItem) []*xmlnode.Node {
	out := make([]*xmlnode.Node, len(nodes))
	for i, n := range nodes {
		clone := xmlnode.New(n.Tag)
		clone.Attrs = make([]xmlnode.Attr, len(n.Attrs))
		for j, a := range n.Attrs {
			clone.Attrs[j] = xmlnode.Attr{Name: a.Name, Value: expression.SubstitutePropertiesSuffixed(a.Value, suffixStr, ctx, item.Properties)}
		}
		clone.Text = expression.SubstitutePropertiesSuffixed(n.Text, suffixStr, ctx, item.Properties)
		clone.Tail = expression.SubstitutePropertiesSuffixed(n.Tail, suffixStr, ctx, item.Properties)
		clone.Children = substituteTree(n.Children, suffixStr, ctx, item)
		out[i] = clone
	}
	return out
}
