// Package loader implements C3: turning the six declarative XML sources
// (menus, widgets, backgrounds, properties, templates, views) into the
// strongly typed model trees the rest of the pipeline consumes.
//
// Every Load* function is tolerant of a missing file — it returns the
// type's zero/default configuration — but raises a *model.ConfigError
// for a malformed one.
package loader

import (
	"github.com/yaoapp/gou/application"
	"github.com/yaoapp/skinshortcuts/model"
	"github.com/yaoapp/skinshortcuts/xmlnode"
)

// readNode loads path via the application file abstraction and parses
// it into a node tree. A missing file returns (nil, false, nil).
func readNode(kind model.ConfigErrorKind, path string) (*xmlnode.Node, bool, error) {
	exists, err := application.App.Exists(path)
	if err != nil {
		return nil, false, model.NewConfigError(kind, path, 0, "%s", err.Error())
	}
	if !exists {
		return nil, false, nil
	}

	data, err := application.App.Read(path)
	if err != nil {
		return nil, false, model.NewConfigError(kind, path, 0, "%s", err.Error())
	}

	root, err := xmlnode.Parse(data)
	if err != nil {
		return nil, false, model.NewConfigError(kind, path, 0, "%s", err.Error())
	}
	return root, true, nil
}

func attrOr(n *xmlnode.Node, name, fallback string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return fallback
}

func attrBool(n *xmlnode.Node, name string) bool {
	v, _ := n.Attr(name)
	return v == "true" || v == "1" || v == "yes"
}

func attrInt(n *xmlnode.Node, name string, fallback int) int {
	v, ok := n.Attr(name)
	if !ok {
		return fallback
	}
	out := 0
	neg := false
	for i, r := range v {
		if i == 0 && r == '-' {
			neg = true
			continue
		}
		if r < '0' || r > '9' {
			return fallback
		}
		out = out*10 + int(r-'0')
	}
	if neg {
		out = -out
	}
	return out
}
