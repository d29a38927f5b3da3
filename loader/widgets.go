package loader

import (
	"github.com/yaoapp/skinshortcuts/model"
	"github.com/yaoapp/skinshortcuts/xmlnode"
)

// WidgetConfig is the parsed widgets.xml document: a flat list of named
// widget records plus the (possibly nested) groupings used to present
// them in the out-of-scope management dialog.
type WidgetConfig struct {
	Widgets []model.Widget
	Groups  []model.Group
}

// LoadWidgets parses widgets.xml.
//
//	<widgets>
//	  <widget name="recentmovies" path="..." label="Recent Movies" type="..." target="..."/>
//	  <group name="Movies">
//	    <item>recentmovies</item>
//	    <group name="Nested"><item>other</item></group>
//	    <content source="library" target="..." path="movies"/>
//	  </group>
//	</widgets>
func LoadWidgets(path string) (*WidgetConfig, error) {
	root, ok, err := readNode(model.KindWidget, path)
	if err != nil {
		return nil, err
	}
	cfg := &WidgetConfig{}
	if !ok {
		return cfg, nil
	}

	for _, n := range root.FindAll("widget") {
		name, has := n.Attr("name")
		if !has || name == "" {
			return nil, model.NewConfigError(model.KindWidget, path, 0, "widget missing required attribute 'name'")
		}
		cfg.Widgets = append(cfg.Widgets, model.Widget{
			Name:   name,
			Path:   attrOr(n, "path", ""),
			Label:  attrOr(n, "label", ""),
			Type:   attrOr(n, "type", ""),
			Target: attrOr(n, "target", ""),
		})
	}

	for _, n := range root.FindAll("group") {
		group, err := parseGroup(model.KindWidget, path, n)
		if err != nil {
			return nil, err
		}
		cfg.Groups = append(cfg.Groups, *group)
	}

	return cfg, nil
}

func parseGroup(kind model.ConfigErrorKind, path string, n *xmlnode.Node) (*model.Group, error) {
	g := &model.Group{Name: attrOr(n, "name", "")}
	for _, item := range n.FindAll("item") {
		g.Items = append(g.Items, item.Text)
	}
	for _, content := range n.FindAll("content") {
		source, has := content.Attr("source")
		if !has || source == "" {
			return nil, model.NewConfigError(kind, path, 0, "content reference missing required attribute 'source'")
		}
		extra := map[string]string{}
		for _, a := range content.Attrs {
			if a.Name == "source" || a.Name == "target" || a.Name == "path" {
				continue
			}
			extra[a.Name] = a.Value
		}
		g.Contents = append(g.Contents, model.ContentRef{
			Source: source,
			Target: attrOr(content, "target", ""),
			Path:   attrOr(content, "path", ""),
			Extra:  extra,
		})
	}
	for _, sub := range n.FindAll("group") {
		child, err := parseGroup(kind, path, sub)
		if err != nil {
			return nil, err
		}
		g.Groups = append(g.Groups, child)
	}
	return g, nil
}
