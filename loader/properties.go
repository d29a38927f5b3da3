package loader

import (
	"github.com/yaoapp/skinshortcuts/model"
	"github.com/yaoapp/skinshortcuts/suffix"
	"github.com/yaoapp/skinshortcuts/xmlnode"
)

var validPropertyTypes = map[model.PropertyType]bool{
	model.PropertyOptions:    true,
	model.PropertyToggle:     true,
	model.PropertyWidget:     true,
	model.PropertyBackground: true,
}

// LoadProperties parses properties.xml.
//
//	<properties>
//	  <property name="widgetType" type="options" requires="widget" templateonly="false">
//	    <option value="movies" label="Movies" icon="..." condition="..."/>
//	  </property>
//	  <include content="commonoptions" suffix="2"/>
//	  <button name="addWidget" property="widget" type="widget" requires="" suffix="2"/>
//	  <fallback property="widgetType">
//	    <when condition="widget EMPTY">none</when>
//	    <default>movies</default>
//	  </fallback>
//	</properties>
func LoadProperties(path string) (*model.PropertySchema, error) {
	root, ok, err := readNode(model.KindProperty, path)
	if err != nil {
		return nil, err
	}
	schema := model.NewPropertySchema()
	if !ok {
		return schema, nil
	}

	// <include> expansion happens first so later <property>/<button>
	// declarations from the same file can still override by name.
	expanded, err := expandPropertyIncludes(path, root)
	if err != nil {
		return nil, err
	}

	for _, n := range expanded.FindAll("property") {
		def, err := parsePropertyDef(path, n)
		if err != nil {
			return nil, err
		}
		schema.Properties[def.Name] = def
	}

	for _, n := range expanded.FindAll("button") {
		name, has := n.Attr("name")
		if !has || name == "" {
			return nil, model.NewConfigError(model.KindProperty, path, 0, "button missing required attribute 'name'")
		}
		schema.Buttons[name] = model.ButtonDef{
			Name:     name,
			Property: attrOr(n, "property", ""),
			Type:     model.PropertyType(attrOr(n, "type", "")),
			Requires: attrOr(n, "requires", ""),
			Suffix:   attrOr(n, "suffix", ""),
		}
	}

	for _, n := range expanded.FindAll("fallback") {
		property, has := n.Attr("property")
		if !has || property == "" {
			return nil, model.NewConfigError(model.KindProperty, path, 0, "fallback missing required attribute 'property'")
		}
		rule := model.FallbackRule{Property: property}
		for _, when := range n.FindAll("when") {
			rule.Rules = append(rule.Rules, model.FallbackCondition{
				When:  attrOr(when, "condition", ""),
				Value: when.Text,
			})
		}
		if def := n.Find("default"); def != nil {
			rule.Default = def.Text
			rule.HasDefault = true
		}
		schema.Fallbacks[property] = rule
	}

	return schema, nil
}

func parsePropertyDef(path string, n *xmlnode.Node) (model.PropertyDef, error) {
	name, has := n.Attr("name")
	if !has || name == "" {
		return model.PropertyDef{}, model.NewConfigError(model.KindProperty, path, 0, "property missing required attribute 'name'")
	}
	ptype := model.PropertyType(attrOr(n, "type", string(model.PropertyToggle)))
	if !validPropertyTypes[ptype] {
		return model.PropertyDef{}, model.NewConfigError(model.KindProperty, path, 0, "property %q has unknown type %q", name, ptype)
	}

	def := model.PropertyDef{
		Name:         name,
		Type:         ptype,
		Requires:     attrOr(n, "requires", ""),
		TemplateOnly: attrBool(n, "templateonly"),
	}
	for _, opt := range n.FindAll("option") {
		value, has := opt.Attr("value")
		if !has {
			return model.PropertyDef{}, model.NewConfigError(model.KindProperty, path, 0, "option of property %q missing required attribute 'value'", name)
		}
		def.Options = append(def.Options, model.PropertyOption{
			Value: value,
			Label: attrOr(opt, "label", ""),
			Icon:  attrOr(opt, "icon", ""),
		})
	}
	return def, nil
}

// expandPropertyIncludes replaces every <include content="name"
// suffix="s"/> with a deep copy of the named fragment's children, with
// the suffix transform applied to every condition attribute when a
// suffix is supplied (§4.3).
func expandPropertyIncludes(path string, root *xmlnode.Node) (*xmlnode.Node, error) {
	fragments := map[string][]*xmlnode.Node{}
	var rest []*xmlnode.Node
	for _, c := range root.Children {
		if c.Tag == "includedef" {
			name, has := c.Attr("name")
			if !has || name == "" {
				return nil, model.NewConfigError(model.KindProperty, path, 0, "includedef missing required attribute 'name'")
			}
			fragments[name] = c.Children
			continue
		}
		rest = append(rest, c)
	}

	out := xmlnode.New(root.Tag)
	out.Attrs = root.Attrs
	for _, c := range rest {
		if c.Tag != "include" {
			out.AppendChild(c)
			continue
		}
		content, has := c.Attr("content")
		if !has || content == "" {
			return nil, model.NewConfigError(model.KindProperty, path, 0, "include missing required attribute 'content'")
		}
		body, known := fragments[content]
		if !known {
			return nil, model.NewConfigError(model.KindProperty, path, 0, "include references unknown content %q", content)
		}
		s := attrOr(c, "suffix", "")
		for _, frag := range body {
			out.AppendChild(applySuffixToFragment(frag, s))
		}
	}
	return out, nil
}

func applySuffixToFragment(n *xmlnode.Node, s string) *xmlnode.Node {
	clone := n.Clone()
	if s == "" {
		return clone
	}
	walkNodes(clone, func(node *xmlnode.Node) {
		if cond, ok := node.Attr("condition"); ok {
			node.SetAttr("condition", suffix.ApplySuffixToCondition(cond, s))
		}
	})
	return clone
}

func walkNodes(n *xmlnode.Node, fn func(*xmlnode.Node)) {
	fn(n)
	for _, c := range n.Children {
		walkNodes(c, fn)
	}
}
