package loader

import (
	"strings"

	"github.com/yaoapp/skinshortcuts/model"
	"github.com/yaoapp/skinshortcuts/xmlnode"
)

// LoadTemplates parses templates.xml: named sections first
// (expressions, presets, propertyGroups, includes, variables,
// variableGroups), then the ordered <template> and <submenu> lists.
func LoadTemplates(path string) (*model.TemplateSchema, error) {
	root, ok, err := readNode(model.KindTemplate, path)
	if err != nil {
		return nil, err
	}
	schema := model.NewTemplateSchema()
	if !ok {
		return schema, nil
	}

	if exprs := root.Find("expressions"); exprs != nil {
		for _, n := range exprs.FindAll("expression") {
			name, has := n.Attr("name")
			if !has || name == "" {
				return nil, model.NewConfigError(model.KindTemplate, path, 0, "expression missing required attribute 'name'")
			}
			schema.Expressions[name] = n.Text
		}
	}

	if presets := root.Find("presets"); presets != nil {
		for _, n := range presets.FindAll("preset") {
			preset, err := parsePreset(path, n)
			if err != nil {
				return nil, err
			}
			schema.Presets[preset.Name] = preset
		}
	}

	if groups := root.Find("propertyGroups"); groups != nil {
		for _, n := range groups.FindAll("propertyGroup") {
			group, err := parsePropertyGroup(path, n)
			if err != nil {
				return nil, err
			}
			schema.PropertyGroups[group.Name] = group
		}
	}

	if includes := root.Find("includes"); includes != nil {
		for _, n := range includes.FindAll("includedef") {
			name, has := n.Attr("name")
			if !has || name == "" {
				return nil, model.NewConfigError(model.KindTemplate, path, 0, "includedef missing required attribute 'name'")
			}
			body := xmlnode.New("body")
			body.Children = n.Children
			schema.Includes[name] = &model.IncludeDefinition{Name: name, Body: body}
		}
	}

	if variables := root.Find("variables"); variables != nil {
		for _, n := range variables.FindAll("variable") {
			name, has := n.Attr("name")
			if !has || name == "" {
				return nil, model.NewConfigError(model.KindTemplate, path, 0, "variable missing required attribute 'name'")
			}
			body := xmlnode.New("body")
			body.Children = n.Children
			schema.Variables[name] = &model.VariableDefinition{
				Name:      name,
				Body:      body,
				Output:    attrOr(n, "output", ""),
				Condition: attrOr(n, "condition", ""),
			}
		}
	}

	if groups := root.Find("variableGroups"); groups != nil {
		for _, n := range groups.FindAll("variableGroup") {
			name, has := n.Attr("name")
			if !has || name == "" {
				return nil, model.NewConfigError(model.KindTemplate, path, 0, "variableGroup missing required attribute 'name'")
			}
			vg := &model.VariableGroup{Name: name}
			for _, v := range n.FindAll("variable") {
				ref, err := parseRef(path, v)
				if err != nil {
					return nil, err
				}
				vg.Variables = append(vg.Variables, ref)
			}
			for _, g := range n.FindAll("group") {
				ref, err := parseRef(path, g)
				if err != nil {
					return nil, err
				}
				vg.Groups = append(vg.Groups, ref)
			}
			schema.VariableGroups[name] = vg
		}
	}

	for _, n := range root.FindAll("template") {
		tmpl, err := parseTemplateCommon(path, n)
		if err != nil {
			return nil, err
		}
		schema.Templates = append(schema.Templates, tmpl)
	}

	for _, n := range root.FindAll("submenu") {
		tmpl, err := parseTemplateCommon(path, n)
		if err != nil {
			return nil, err
		}
		schema.SubmenuTemplates = append(schema.SubmenuTemplates, &model.SubmenuTemplate{Template: *tmpl})
	}

	return schema, nil
}

func parseRef(path string, n *xmlnode.Node) (model.Ref, error) {
	name, has := n.Attr("name")
	if !has || name == "" {
		return model.Ref{}, model.NewConfigError(model.KindTemplate, path, 0, "reference missing required attribute 'name'")
	}
	return model.Ref{
		Name:      name,
		Suffix:    attrOr(n, "suffix", ""),
		Condition: attrOr(n, "condition", ""),
	}, nil
}

func parsePreset(path string, n *xmlnode.Node) (*model.Preset, error) {
	name, has := n.Attr("name")
	if !has || name == "" {
		return nil, model.NewConfigError(model.KindTemplate, path, 0, "preset missing required attribute 'name'")
	}
	preset := &model.Preset{Name: name}
	for _, row := range n.FindAll("row") {
		attrs := map[string]string{}
		for _, a := range row.Attrs {
			if a.Name == "condition" {
				continue
			}
			attrs[a.Name] = a.Value
		}
		preset.Rows = append(preset.Rows, model.PresetRow{
			Condition: attrOr(row, "condition", ""),
			Attrs:     attrs,
		})
	}
	return preset, nil
}

func parsePropertyGroup(path string, n *xmlnode.Node) (*model.PropertyGroup, error) {
	name, has := n.Attr("name")
	if !has || name == "" {
		return nil, model.NewConfigError(model.KindTemplate, path, 0, "propertyGroup missing required attribute 'name'")
	}
	group := &model.PropertyGroup{Name: name}
	for _, p := range n.FindAll("property") {
		prop, err := parseTemplateProperty(path, p)
		if err != nil {
			return nil, err
		}
		group.Properties = append(group.Properties, prop)
	}
	for _, v := range n.FindAll("var") {
		tv, err := parseTemplateVar(path, v)
		if err != nil {
			return nil, err
		}
		group.Vars = append(group.Vars, tv)
	}
	return group, nil
}

func parseTemplateProperty(path string, n *xmlnode.Node) (model.TemplateProperty, error) {
	name, has := n.Attr("name")
	if !has || name == "" {
		return model.TemplateProperty{}, model.NewConfigError(model.KindTemplate, path, 0, "property missing required attribute 'name'")
	}
	prop := model.TemplateProperty{Name: name, Condition: attrOr(n, "condition", "")}
	if from, has := n.Attr("from"); has && from != "" {
		prop.Kind = model.ValueFromSource
		prop.FromSource = from
	} else {
		prop.Kind = model.ValueLiteral
		prop.Literal = n.Text
	}
	return prop, nil
}

func parseTemplateVar(path string, n *xmlnode.Node) (model.TemplateVar, error) {
	name, has := n.Attr("name")
	if !has || name == "" {
		return model.TemplateVar{}, model.NewConfigError(model.KindTemplate, path, 0, "var missing required attribute 'name'")
	}
	tv := model.TemplateVar{Name: name}
	for _, c := range n.FindAll("case") {
		tv.Cases = append(tv.Cases, model.VarCase{
			Condition: attrOr(c, "condition", ""),
			Value:     c.Text,
		})
	}
	return tv, nil
}

func parseTemplateCommon(path string, n *xmlnode.Node) (*model.Template, error) {
	include, has := n.Attr("include")
	if !has || include == "" {
		return nil, model.NewConfigError(model.KindTemplate, path, 0, "%s missing required attribute 'include'", n.Tag)
	}

	tmpl := &model.Template{
		Include:      include,
		BuildMode:    model.BuildMode(attrOr(n, "buildmode", string(model.BuildMenu))),
		IDPrefix:     attrOr(n, "idprefix", ""),
		Suffix:       attrOr(n, "suffix", ""),
		TemplateOnly: model.TemplateOnlyMode(attrOr(n, "templateonly", string(model.TemplateOnlyNone))),
		Menu:         attrOr(n, "menu", ""),
	}
	if cond, has := n.Attr("condition"); has && cond != "" {
		tmpl.Conditions = strings.Split(cond, "&&")
		for i := range tmpl.Conditions {
			tmpl.Conditions[i] = strings.TrimSpace(tmpl.Conditions[i])
		}
	}

	for _, p := range n.FindAll("param") {
		name, has := p.Attr("name")
		if !has || name == "" {
			return nil, model.NewConfigError(model.KindTemplate, path, 0, "param missing required attribute 'name'")
		}
		tmpl.Params = append(tmpl.Params, model.TemplateParam{
			Name:    name,
			Default: attrOr(p, "default", ""),
		})
	}

	for _, p := range n.FindAll("property") {
		prop, err := parseTemplateProperty(path, p)
		if err != nil {
			return nil, err
		}
		tmpl.Properties = append(tmpl.Properties, prop)
	}

	for _, v := range n.FindAll("var") {
		tv, err := parseTemplateVar(path, v)
		if err != nil {
			return nil, err
		}
		tmpl.Vars = append(tmpl.Vars, tv)
	}

	for _, r := range n.FindAll("propertyGroupRef") {
		ref, err := parseRef(path, r)
		if err != nil {
			return nil, err
		}
		tmpl.GroupRefs = append(tmpl.GroupRefs, ref)
	}
	for _, r := range n.FindAll("presetRef") {
		ref, err := parseRef(path, r)
		if err != nil {
			return nil, err
		}
		tmpl.PresetRefs = append(tmpl.PresetRefs, ref)
	}
	for _, r := range n.FindAll("variableGroupRef") {
		ref, err := parseRef(path, r)
		if err != nil {
			return nil, err
		}
		tmpl.VarGroupRefs = append(tmpl.VarGroupRefs, ref)
	}

	for _, li := range n.FindAll("listitem") {
		row := map[string]string{}
		for _, a := range li.Attrs {
			row[a.Name] = a.Value
		}
		tmpl.ListItems = append(tmpl.ListItems, row)
	}

	if controls := n.Find("controls"); controls != nil {
		tmpl.Controls = controls.Clone()
	}

	return tmpl, nil
}
