// Package assemble implements C9: composing the per-menu, per-submenu
// and per-custom-widget <include> elements, splicing in whatever the
// template processor (C8) produces, and writing the result atomically
// to every configured output path.
package assemble

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/yaoapp/skinshortcuts/condition"
	"github.com/yaoapp/skinshortcuts/model"
	"github.com/yaoapp/skinshortcuts/template"
	"github.com/yaoapp/skinshortcuts/xmlnode"
)

const maxCustomWidgets = 10

// Build runs the full C9 pipeline and returns the assembled <includes>
// document. schema/templates may be NewPropertySchema()/NewTemplateSchema()
// zero values when the corresponding file was absent.
func Build(menus *model.MenuConfig, schema *model.PropertySchema, templates *model.TemplateSchema) *xmlnode.Node {
	root := xmlnode.New("includes")

	var includes []*xmlnode.Node
	var variables []*xmlnode.Node

	for _, menu := range menus.Menus {
		if menu.IsSubmenu {
			continue
		}
		includes = append(includes, buildMenuInclude(menu, schema))
		includes = append(includes, buildSubmenuInclude(menu, menus, schema))
		includes = append(includes, buildCustomWidgetIncludes(menu, menus, schema)...)
	}

	if templates != nil && len(templates.Templates) > 0 {
		referenced := referencedIncludeNames(menus, templates)
		merged := map[string]*xmlnode.Node{}
		var order []string

		for _, tmpl := range templates.Templates {
			result := template.Process(tmpl, menus.Menus, schema, templates, referenced)
			variables = append(variables, result.Variables...)
			if result.Include == nil {
				continue
			}
			name := result.Include.AttrOr("name", "")
			if existing, ok := merged[name]; ok {
				existing.Children = append(existing.Children, result.Include.Children...)
				continue
			}
			merged[name] = result.Include
			order = append(order, name)
		}
		for _, name := range order {
			includes = append(includes, merged[name])
		}
	}

	for _, v := range variables {
		root.AppendChild(v)
	}
	for _, inc := range includes {
		root.AppendChild(inc)
	}

	return root
}

// referencedIncludeNames scans every menu item's property values and
// every template's controls subtree for $INCLUDE[name] occurrences, used
// to resolve template_only="auto".
func referencedIncludeNames(menus *model.MenuConfig, templates *model.TemplateSchema) map[string]bool {
	out := map[string]bool{}
	for _, menu := range menus.Menus {
		for _, item := range menu.Items {
			for _, v := range item.Properties {
				for _, name := range template.ScanIncludeNames(&xmlnode.Node{Text: v}) {
					out[name] = true
				}
			}
		}
	}
	for _, tmpl := range templates.Templates {
		if tmpl.Controls == nil {
			continue
		}
		for _, name := range template.ScanIncludeNames(tmpl.Controls) {
			out[name] = true
		}
	}
	return out
}

func buildMenuInclude(menu *model.Menu, schema *model.PropertySchema) *xmlnode.Node {
	inc := xmlnode.New("include")
	inc.SetAttr("name", "skinshortcuts-"+menu.Name)

	idx := 0
	for _, item := range menu.Items {
		if item.Disabled {
			continue
		}
		inc.AppendChild(buildItem(menu, item, idx, schema, ""))
		idx++
	}
	return inc
}

func buildSubmenuInclude(menu *model.Menu, menus *model.MenuConfig, schema *model.PropertySchema) *xmlnode.Node {
	inc := xmlnode.New("include")
	inc.SetAttr("name", "skinshortcuts-"+menu.Name+"-submenu")

	idx := 0
	for _, parent := range menu.Items {
		if parent.Disabled || parent.Submenu == "" {
			continue
		}
		sub := menus.MenuByName(parent.Submenu)
		if sub == nil {
			continue
		}
		for _, subItem := range sub.Items {
			if subItem.Disabled {
				continue
			}
			child := buildItem(sub, subItem, idx, schema, parent.Name)
			child.SetAttr("parent", parent.Name)
			inc.AppendChild(child)
			idx++
		}
	}
	return inc
}

func buildCustomWidgetIncludes(menu *model.Menu, menus *model.MenuConfig, schema *model.PropertySchema) []*xmlnode.Node {
	var out []*xmlnode.Node
	for _, parent := range menu.Items {
		if parent.Disabled {
			continue
		}
		for n := 1; n <= maxCustomWidgets; n++ {
			name := parent.Name + ".customwidget"
			if n > 1 {
				name = fmt.Sprintf("%s.customwidget.%d", parent.Name, n)
			}
			widgetMenu := menus.MenuByName(name)
			if widgetMenu == nil {
				continue
			}
			inc := xmlnode.New("include")
			inc.SetAttr("name", fmt.Sprintf("skinshortcuts-%s-customwidget%d", parent.Name, n))
			idx := 0
			for _, item := range widgetMenu.Items {
				if item.Disabled {
					continue
				}
				inc.AppendChild(buildItem(widgetMenu, item, idx, schema, ""))
				idx++
			}
			out = append(out, inc)
		}
	}
	return out
}

// buildItem emits one <item> or <control> element per §4.9's
// _build_item rules. parentName, when non-empty, injects a "parent"
// property and a visibility predicate linking the item to its parent.
func buildItem(menu *model.Menu, item *model.MenuItem, index int, schema *model.PropertySchema, parentName string) *xmlnode.Node {
	var n *xmlnode.Node
	var idStr string
	if menu.ControlType != "" {
		idStr = fmt.Sprintf("%d", menu.StartID+index)
		n = xmlnode.New("control")
		n.SetAttr("type", menu.ControlType)
		n.SetAttr("id", idStr)
	} else {
		idStr = fmt.Sprintf("%d", index+1)
		n = xmlnode.New("item")
		n.SetAttr("id", idStr)
	}

	if item.Label != "" {
		label := xmlnode.New("label")
		label.Text = item.Label
		n.AppendChild(label)
	}
	if item.Label2 != "" {
		label2 := xmlnode.New("label2")
		label2.Text = item.Label2
		n.AppendChild(label2)
	}
	if item.Icon != "" {
		icon := xmlnode.New("icon")
		icon.Text = item.Icon
		n.AppendChild(icon)
	}
	if item.Thumb != "" {
		thumb := xmlnode.New("thumb")
		thumb.Text = item.Thumb
		n.AppendChild(thumb)
	}

	visible := item.Visible
	if parentName != "" {
		predicate := fmt.Sprintf("String.IsEqual(Container(%s).ListItem.Property(parent),%s)", menu.Container, parentName)
		if visible != "" {
			visible = visible + " + " + predicate
		} else {
			visible = predicate
		}
	}
	if visible != "" {
		v := xmlnode.New("visible")
		v.Text = visible
		n.AppendChild(v)
	}

	appendActions(n, menu, item)
	appendProperties(n, item, schema, parentName, idStr, menu.Name)

	return n
}

func appendActions(n *xmlnode.Node, menu *model.Menu, item *model.MenuItem) {
	props := make(map[string]string, len(menu.Defaults.Properties)+len(item.Properties))
	for k, v := range menu.Defaults.Properties {
		props[k] = v
	}
	for k, v := range item.Properties {
		props[k] = v
	}

	var before, after []model.DefaultAction
	for _, a := range menu.Defaults.Actions {
		if a.Slot == model.SlotBefore {
			before = append(before, a)
		} else {
			after = append(after, a)
		}
	}

	var conditional, unconditional []model.Action
	for _, a := range item.Actions {
		if a.Condition != "" {
			conditional = append(conditional, a)
		} else {
			unconditional = append(unconditional, a)
		}
	}

	for _, a := range before {
		appendAction(n, a.Action, a.Condition, props)
	}
	for _, a := range conditional {
		appendAction(n, a.Action, a.Condition, props)
	}
	for _, a := range unconditional {
		appendAction(n, a.Action, "", props)
	}
	for _, a := range after {
		appendAction(n, a.Action, a.Condition, props)
	}
}

func appendAction(n *xmlnode.Node, action, cond string, props map[string]string) {
	if cond != "" {
		if !condition.Evaluate(cond, props) {
			return
		}
	}
	a := xmlnode.New("onclick")
	a.Text = action
	n.AppendChild(a)
}

// appendProperties emits the <property> children for one item: the
// parent-link property (when nested under a submenu), then S1's
// built-in sink (id, name, menu, path — the item's own id, name, owning
// menu, and first action, mirroring the built-ins C7 writes into the
// template context), then the free-form properties in sorted order,
// excluding anything the schema marks template_only.
func appendProperties(n *xmlnode.Node, item *model.MenuItem, schema *model.PropertySchema, parentName, idStr, menuName string) {
	addProperty := func(name, value string) {
		if schema != nil {
			if def, ok := schema.Properties[name]; ok && def.TemplateOnly {
				return
			}
		}
		p := xmlnode.New("property")
		p.SetAttr("name", name)
		p.Text = value
		n.AppendChild(p)
	}

	if parentName != "" {
		addProperty("parent", parentName)
	}

	addProperty("id", idStr)
	addProperty("name", item.Name)
	addProperty("menu", menuName)
	if len(item.Actions) > 0 {
		addProperty("path", item.Actions[0].Action)
	}

	names := make([]string, 0, len(item.Properties))
	for k := range item.Properties {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, name := range names {
		addProperty(name, item.Properties[name])
	}
}

// Write serializes doc and writes it atomically to every path in
// outputPaths: write-to-temporary-then-rename, in the same directory as
// the final path so the rename stays on one filesystem.
func Write(doc *xmlnode.Node, outputPaths []string) error {
	buf := &bytes.Buffer{}
	if err := xmlnode.Write(buf, doc); err != nil {
		return err
	}
	data := buf.Bytes()

	for _, path := range outputPaths {
		dir := filepath.Dir(path)
		tmp, err := os.CreateTemp(dir, ".includes-*.tmp")
		if err != nil {
			return err
		}
		tmpName := tmp.Name()
		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return err
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmpName)
			return err
		}
		if err := os.Rename(tmpName, path); err != nil {
			os.Remove(tmpName)
			return err
		}
	}
	return nil
}
