// Package viewexpr implements C10: turning the view-locking
// configuration (views.xml) plus the user's per-content view
// selections into host-runtime boolean expression strings. The core
// never evaluates these — Container.Content(...) and the rest are
// Kodi skin-expression builtins the host engine interprets, so this
// package only composes the disjunction text (§4.10, §6 "Host
// visibility predicates").
package viewexpr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yaoapp/skinshortcuts/model"
	"github.com/yaoapp/skinshortcuts/xmlnode"
)

const (
	sourceLibrary = "library"
	sourcePlugins = "plugins"
)

// Build emits one <expression name="{prefix}{id}"> and one
// <expression name="{prefix}{id}_Include"> per view referenced by at
// least one content rule, plus the plugin-override expressions for
// every content rule that has a plugin-specific user override.
func Build(views *model.ViewConfig, userData *model.UserData) []*xmlnode.Node {
	if views == nil {
		return nil
	}
	if userData == nil {
		userData = model.NewUserData()
	}

	var out []*xmlnode.Node
	for _, v := range views.Views {
		referenced := false
		for _, rule := range views.Rules {
			if rule.LibraryDefault == v.ID || rule.PluginDefault == v.ID {
				referenced = true
			}
			for _, avail := range rule.AvailableViews {
				if avail == v.ID {
					referenced = true
				}
			}
		}
		if !referenced {
			continue
		}
		out = append(out, buildViewExpression(views, userData, v))
		out = append(out, buildIncludeExpression(views, v))
	}
	for _, rule := range views.Rules {
		out = append(out, buildPluginOverrideExpressions(views, userData, rule)...)
	}
	return out
}

func buildViewExpression(views *model.ViewConfig, userData *model.UserData, v model.View) *xmlnode.Node {
	var clauses []string
	for _, rule := range views.Rules {
		if effectiveView(rule, userData, sourceLibrary) == v.ID {
			clauses = append(clauses, contentClause(rule.Content))
		}
	}
	return expressionNode(views.Prefix+v.ID, disjunction(clauses))
}

func buildIncludeExpression(views *model.ViewConfig, v model.View) *xmlnode.Node {
	var clauses []string
	for _, rule := range views.Rules {
		for _, avail := range rule.AvailableViews {
			if avail == v.ID {
				clauses = append(clauses, contentClause(rule.Content))
				break
			}
		}
	}
	return expressionNode(views.Prefix+v.ID+"_Include", disjunction(clauses))
}

func contentClause(content string) string {
	return fmt.Sprintf("Container.Content(%s)", content)
}

func buildPluginOverrideExpressions(views *model.ViewConfig, userData *model.UserData, rule model.ContentRule) []*xmlnode.Node {
	var addons []string
	for source, byContent := range userData.Views {
		if source == sourceLibrary || source == sourcePlugins {
			continue
		}
		if _, ok := byContent[rule.Content]; ok {
			addons = append(addons, source)
		}
	}
	if len(addons) == 0 {
		return nil
	}
	sort.Strings(addons)

	var clauses []string
	for _, addon := range addons {
		clauses = append(clauses, fmt.Sprintf("String.IsEqual(Container.PluginName,%s)", addon))
	}
	hasOverride := expressionNode(views.Prefix+rule.Content+"_HasPluginOverride", disjunction(clauses))

	genericName := views.Prefix + rule.Content + "_IsGenericPlugin"
	generic := expressionNode(genericName, fmt.Sprintf(
		"Container.Content(%s) + !%s",
		rule.Content, hasOverride.AttrOr("name", ""),
	))

	return []*xmlnode.Node{hasOverride, generic}
}

// effectiveView resolves the view a content rule renders with under
// source ("library" or "plugins"): a matching user selection wins;
// otherwise the plugin default (in a plugin context) or the library
// default.
func effectiveView(rule model.ContentRule, userData *model.UserData, source string) string {
	if byContent, ok := userData.Views[source]; ok {
		if v, ok := byContent[rule.Content]; ok {
			return v
		}
	}
	if source == sourcePlugins && rule.PluginDefault != "" {
		return rule.PluginDefault
	}
	return rule.LibraryDefault
}

func disjunction(clauses []string) string {
	return strings.Join(clauses, " | ")
}

func expressionNode(name, body string) *xmlnode.Node {
	n := xmlnode.New("expression")
	n.SetAttr("name", name)
	n.Text = body
	return n
}
