package template

import (
	"fmt"

	"github.com/yaoapp/skinshortcuts/condition"
	"github.com/yaoapp/skinshortcuts/expression"
	"github.com/yaoapp/skinshortcuts/model"
	"github.com/yaoapp/skinshortcuts/xmlnode"
)

// processElement recursively transforms one copied controls subtree
// element, per §4.8's "element processing" rules. It returns zero or
// more replacement nodes: zero when the element is removed (a failed
// condition, an unresolved include or submenu reference), more than one
// when an unwrapped include or a submenu items="" directive expands
// into several siblings.
func processElement(n *xmlnode.Node, ctx map[string]string, item *model.MenuItem, parent *model.MenuItem, container string, allMenus []*model.Menu, templates *model.TemplateSchema) []*xmlnode.Node {
	if n.Tag == "skinshortcuts" {
		if text := n.Text; trimmedEquals(text, "visibility") {
			visible := xmlnode.New("visible")
			visible.Text = fmt.Sprintf("String.IsEqual(Container(%s).ListItem.Property(name),%s)", container, item.Name)
			return []*xmlnode.Node{visible}
		}
		if includeName, ok := n.Attr("include"); ok {
			return processIncludeDirective(n, includeName, ctx, item, parent, container, allMenus, templates)
		}
		if subkey, ok := n.Attr("items"); ok {
			return processSubmenuDirective(n, subkey, ctx, item, container, allMenus, templates)
		}
	}

	clone := xmlnode.New(n.Tag)
	clone.Attrs = make([]xmlnode.Attr, len(n.Attrs))
	for i, a := range n.Attrs {
		clone.Attrs[i] = xmlnode.Attr{Name: a.Name, Value: substituteAll(a.Value, ctx, item, parent, templates)}
	}

	for _, c := range n.Children {
		clone.Children = append(clone.Children, processElement(c, ctx, item, parent, container, allMenus, templates)...)
	}

	text, includes := extractIncludeDirectives(substituteAll(n.Text, ctx, item, parent, templates))
	clone.Text = text
	tail, tailIncludes := extractIncludeDirectives(substituteAll(n.Tail, ctx, item, parent, templates))
	clone.Tail = tail
	includes = append(includes, tailIncludes...)

	for _, name := range includes {
		inc := xmlnode.New("include")
		inc.Text = name
		clone.Children = append(clone.Children, inc)
	}

	return []*xmlnode.Node{clone}
}

func trimmedEquals(s, want string) bool {
	i, j := 0, len(s)
	for i < j && isWS(s[i]) {
		i++
	}
	for j > i && isWS(s[j-1]) {
		j--
	}
	return s[i:j] == want
}

func isWS(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

func substituteAll(s string, ctx map[string]string, item *model.MenuItem, parent *model.MenuItem, templates *model.TemplateSchema) string {
	s = expression.ExpandExp(s, templates.Expressions)
	s = expression.ProcessText(s, ctx, ctx, item.Properties)
	if parent != nil {
		s = expression.SubstituteParent(s, parent.Properties)
	}
	s = substituteParams(s, ctx)
	return s
}

func processIncludeDirective(n *xmlnode.Node, includeName string, ctx map[string]string, item *model.MenuItem, parent *model.MenuItem, container string, allMenus []*model.Menu, templates *model.TemplateSchema) []*xmlnode.Node {
	def, found := templates.Includes[includeName]
	if !found {
		return nil
	}
	if cond, ok := n.Attr("condition"); ok && cond != "" {
		if !condition.Evaluate(cond, ctx) {
			return nil
		}
	}

	var children []*xmlnode.Node
	for _, c := range def.Body.Children {
		children = append(children, processElement(c, ctx, item, parent, container, allMenus, templates)...)
	}

	if n.AttrOr("wrap", "") == "true" {
		wrapper := xmlnode.New("include")
		wrapper.SetAttr("name", includeName)
		wrapper.Children = children
		return []*xmlnode.Node{wrapper}
	}
	return children
}

func processSubmenuDirective(n *xmlnode.Node, subkey string, ctx map[string]string, item *model.MenuItem, container string, allMenus []*model.Menu, templates *model.TemplateSchema) []*xmlnode.Node {
	if cond, ok := n.Attr("condition"); ok && cond != "" {
		if !condition.Evaluate(cond, ctx) {
			return nil
		}
	}

	submenuName := item.Name + "." + subkey
	var submenu *model.Menu
	for _, m := range allMenus {
		if m.Name == submenuName {
			submenu = m
			break
		}
	}
	if submenu == nil {
		return nil
	}

	filter := n.AttrOr("filter", "")
	var out []*xmlnode.Node
	for _, subItem := range submenu.Items {
		if subItem.Disabled {
			continue
		}
		if filter != "" && !condition.Evaluate(filter, subItem.Properties) {
			continue
		}
		nestedCtx := make(map[string]string, len(ctx)+len(subItem.Properties)+1)
		for k, v := range ctx {
			nestedCtx[k] = v
		}
		for k, v := range subItem.Properties {
			nestedCtx[k] = v
		}
		nestedCtx["parent"] = item.Name

		for _, c := range n.Children {
			out = append(out, processElement(c, nestedCtx, subItem, item, container, allMenus, templates)...)
		}
	}
	return out
}
