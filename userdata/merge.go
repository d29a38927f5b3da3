package userdata

import (
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/yaoapp/skinshortcuts/model"
	"golang.org/x/text/cases"
)

var fold = cases.Fold()

func foldEqual(a, b string) bool {
	return fold.String(a) == fold.String(b)
}

// Merge applies the user-data overlay to the default menu list and then
// the action-override rules, returning a new, immutable-from-here-on
// menu list (§4.5). Problems with individual override entries are
// collected but never abort the merge.
func Merge(defaults []*model.Menu, overlay *model.UserData, actionOverrides []model.ActionOverrideRule) ([]*model.Menu, error) {
	var warnings error

	seen := map[string]bool{}
	var result []*model.Menu

	for _, menu := range defaults {
		seen[menu.Name] = true
		merged, err := mergeMenu(menu, overlay.Menus[menu.Name])
		if err != nil {
			warnings = multierror.Append(warnings, err)
		}
		result = append(result, merged)
	}

	// Step 5: user-only menus, built entirely from their overrides.
	var extraNames []string
	for name := range overlay.Menus {
		if !seen[name] {
			extraNames = append(extraNames, name)
		}
	}
	sort.Strings(extraNames)
	for _, name := range extraNames {
		result = append(result, menuFromOverrideOnly(name, overlay.Menus[name]))
	}

	applyActionOverrides(result, actionOverrides)

	return result, warnings
}

func mergeMenu(menu *model.Menu, override model.MenuOverride) (*model.Menu, error) {
	out := &model.Menu{
		Name:        menu.Name,
		Container:   menu.Container,
		IsSubmenu:   menu.IsSubmenu,
		Defaults:    menu.Defaults,
		Allow:       menu.Allow,
		ControlType: menu.ControlType,
		StartID:     menu.StartID,
	}

	removed := map[string]bool{}
	for _, name := range override.Removed {
		removed[name] = true
	}

	overrideByName := map[string]model.MenuItemOverride{}
	matched := map[string]bool{}
	for _, o := range override.Items {
		overrideByName[o.Name] = o
	}

	// Steps 1-2: defaults in order, omitting removed, merging matches.
	for _, item := range menu.Items {
		if removed[item.Name] {
			continue
		}
		merged := item.Clone()
		if o, ok := overrideByName[item.Name]; ok {
			matched[item.Name] = true
			applyItemOverride(merged, o)
		}
		out.Items = append(out.Items, merged)
	}

	// Step 3: new override-only items.
	for _, o := range override.Items {
		if matched[o.Name] || !o.IsNew {
			continue
		}
		out.Items = append(out.Items, newItemFromOverride(o))
	}

	// Step 4: positional reorder.
	out.Items = reorderByPosition(out.Items, overrideByName)

	return out, nil
}

func applyItemOverride(item *model.MenuItem, o model.MenuItemOverride) {
	if o.Label != nil {
		item.Label = *o.Label
	}
	if o.HasActions {
		item.OriginalAction = append([]model.Action(nil), item.Actions...)
		item.Actions = append([]model.Action(nil), o.Actions...)
	}
	if o.Icon != nil {
		item.Icon = *o.Icon
	}
	if o.Disabled != nil {
		item.Disabled = *o.Disabled
	}
	for k, v := range o.Properties {
		if item.Properties == nil {
			item.Properties = map[string]string{}
		}
		item.Properties[k] = v
	}
}

func newItemFromOverride(o model.MenuItemOverride) *model.MenuItem {
	item := &model.MenuItem{
		Name:       o.Name,
		Properties: map[string]string{},
		Actions:    []model.Action{{Action: "noop"}},
		Icon:       "DefaultShortcut.png",
	}
	if o.Label != nil {
		item.Label = *o.Label
	}
	if o.HasActions && len(o.Actions) > 0 {
		item.Actions = append([]model.Action(nil), o.Actions...)
	}
	if o.Icon != nil {
		item.Icon = *o.Icon
	}
	if o.Disabled != nil {
		item.Disabled = *o.Disabled
	}
	for k, v := range o.Properties {
		item.Properties[k] = v
	}
	item.OriginalAction = append([]model.Action(nil), item.Actions...)
	return item
}

func menuFromOverrideOnly(name string, override model.MenuOverride) *model.Menu {
	menu := &model.Menu{Name: name}
	overrideByName := map[string]model.MenuItemOverride{}
	for _, o := range override.Items {
		overrideByName[o.Name] = o
		menu.Items = append(menu.Items, newItemFromOverride(o))
	}
	menu.Items = reorderByPosition(menu.Items, overrideByName)
	return menu
}

// reorderByPosition moves every item whose override carries a Position
// to that index, preserving the stable relative order of everything
// else.
func reorderByPosition(items []*model.MenuItem, overrideByName map[string]model.MenuItemOverride) []*model.MenuItem {
	type placed struct {
		item *model.MenuItem
		pos  int
	}
	var positioned []placed
	var unpositioned []*model.MenuItem
	for _, item := range items {
		if o, ok := overrideByName[item.Name]; ok && o.Position != nil {
			positioned = append(positioned, placed{item: item, pos: *o.Position})
			continue
		}
		unpositioned = append(unpositioned, item)
	}
	if len(positioned) == 0 {
		return items
	}

	total := len(items)
	out := make([]*model.MenuItem, total)
	taken := make([]bool, total)
	for _, p := range positioned {
		idx := p.pos
		if idx < 0 {
			idx = 0
		}
		if idx >= total {
			idx = total - 1
		}
		for taken[idx] && idx < total-1 {
			idx++
		}
		out[idx] = p.item
		taken[idx] = true
	}
	ui := 0
	for i := 0; i < total; i++ {
		if out[i] == nil {
			out[i] = unpositioned[ui]
			ui++
		}
	}
	return out
}

func applyActionOverrides(menus []*model.Menu, rules []model.ActionOverrideRule) {
	if len(rules) == 0 {
		return
	}
	for _, menu := range menus {
		for _, item := range menu.Items {
			for i := range item.Actions {
				for _, rule := range rules {
					if foldEqual(item.Actions[i].Action, rule.Replace) {
						item.Actions[i].Action = rule.With
						break
					}
				}
			}
		}
	}
}
