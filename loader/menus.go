package loader

import (
	"github.com/yaoapp/skinshortcuts/model"
	"github.com/yaoapp/skinshortcuts/xmlnode"
)

// LoadMenus parses menus.xml. A missing file yields an empty MenuConfig.
//
// Schema (by example):
//
//	<menus contextmenu="true">
//	  <icon name="thumb" path="..."/>
//	  <shortcutgroup name="videos"><item>movies</item></shortcutgroup>
//	  <subdialog name="addons" label="Add-ons"/>
//	  <actionoverride replace="old" with="new"/>
//	  <menu name="mainmenu" container="10" submenu="false" controltype="50" startid="100">
//	    <defaults>
//	      <property name="thumb">default.png</property>
//	      <action slot="before" condition="...">ActivateWindow(...)</action>
//	    </defaults>
//	    <allow add="true" remove="true" reorder="true"/>
//	    <item name="movies" label="Movies" icon="..." visible="..." dialog_visible="..."
//	          disabled="false" required="false" submenu="movies.submenu" widget="recentmovies" background="fanart">
//	      <action condition="...">ActivateWindow(...)</action>
//	      <property name="widgetType">movies</property>
//	      <protection type="locked" message="..."/>
//	    </item>
//	  </menu>
//	</menus>
func LoadMenus(path string) (*model.MenuConfig, error) {
	root, ok, err := readNode(model.KindMenu, path)
	if err != nil {
		return nil, err
	}
	cfg := &model.MenuConfig{}
	if !ok {
		return cfg, nil
	}

	cfg.ContextMenuEnabled = attrBool(root, "contextmenu")

	for _, n := range root.FindAll("icon") {
		cfg.IconSources = append(cfg.IconSources, model.IconSource{
			Name: attrOr(n, "name", ""),
			Path: attrOr(n, "path", ""),
		})
	}
	for _, n := range root.FindAll("shortcutgroup") {
		group := model.ShortcutGroup{Name: attrOr(n, "name", "")}
		for _, item := range n.FindAll("item") {
			group.Items = append(group.Items, item.Text)
		}
		cfg.ShortcutGroups = append(cfg.ShortcutGroups, group)
	}
	for _, n := range root.FindAll("subdialog") {
		cfg.Subdialogs = append(cfg.Subdialogs, model.SubdialogDescriptor{
			Name:  attrOr(n, "name", ""),
			Label: attrOr(n, "label", ""),
		})
	}
	for _, n := range root.FindAll("actionoverride") {
		replace, hasReplace := n.Attr("replace")
		if !hasReplace {
			return nil, model.NewConfigError(model.KindMenu, path, 0, "actionoverride missing required attribute 'replace'")
		}
		cfg.ActionOverrides = append(cfg.ActionOverrides, model.ActionOverrideRule{
			Replace: replace,
			With:    attrOr(n, "with", ""),
		})
	}

	for _, n := range root.FindAll("menu") {
		menu, err := parseMenu(path, n)
		if err != nil {
			return nil, err
		}
		cfg.Menus = append(cfg.Menus, menu)
	}

	return cfg, nil
}

func parseMenu(path string, n *xmlnode.Node) (*model.Menu, error) {
	name, ok := n.Attr("name")
	if !ok || name == "" {
		return nil, model.NewConfigError(model.KindMenu, path, 0, "menu missing required attribute 'name'")
	}

	menu := &model.Menu{
		Name:        name,
		Container:   attrOr(n, "container", ""),
		IsSubmenu:   attrBool(n, "submenu"),
		ControlType: attrOr(n, "controltype", ""),
		StartID:     attrInt(n, "startid", 0),
	}

	if def := n.Find("defaults"); def != nil {
		menu.Defaults.Properties = map[string]string{}
		for _, p := range def.FindAll("property") {
			key := attrOr(p, "name", "")
			if key == "" {
				continue
			}
			menu.Defaults.Properties[key] = p.Text
		}
		for _, a := range def.FindAll("action") {
			slot := model.SlotAfter
			if attrOr(a, "slot", "after") == "before" {
				slot = model.SlotBefore
			}
			menu.Defaults.Actions = append(menu.Defaults.Actions, model.DefaultAction{
				Action:    a.Text,
				Condition: attrOr(a, "condition", ""),
				Slot:      slot,
			})
		}
	}

	if allow := n.Find("allow"); allow != nil {
		menu.Allow = model.MenuAllow{
			AllowAdd:     attrBool(allow, "add"),
			AllowRemove:  attrBool(allow, "remove"),
			AllowReorder: attrBool(allow, "reorder"),
		}
	}

	for _, itemNode := range n.FindAll("item") {
		item, err := parseMenuItem(path, itemNode)
		if err != nil {
			return nil, err
		}
		menu.Items = append(menu.Items, item)
	}

	return menu, nil
}

func parseMenuItem(path string, n *xmlnode.Node) (*model.MenuItem, error) {
	name, ok := n.Attr("name")
	if !ok || name == "" {
		return nil, model.NewConfigError(model.KindMenu, path, 0, "item missing required attribute 'name'")
	}

	item := &model.MenuItem{
		Name:          name,
		Label:         attrOr(n, "label", ""),
		Label2:        attrOr(n, "label2", ""),
		Icon:          attrOr(n, "icon", ""),
		Thumb:         attrOr(n, "thumb", ""),
		Visible:       attrOr(n, "visible", ""),
		DialogVisible: attrOr(n, "dialog_visible", ""),
		Disabled:      attrBool(n, "disabled"),
		Required:      attrBool(n, "required"),
		Submenu:       attrOr(n, "submenu", ""),
		Properties:    map[string]string{},
	}

	// Menu-level widget=/background= convenience attributes are desugared
	// into plain item properties holding the widget/background name only;
	// nothing later expands them into the widgets.xml/backgrounds.xml
	// record fields.
	if widget, ok := n.Attr("widget"); ok && widget != "" {
		item.Properties["widget"] = widget
	}
	if background, ok := n.Attr("background"); ok && background != "" {
		item.Properties["background"] = background
	}

	for _, p := range n.FindAll("property") {
		key := attrOr(p, "name", "")
		if key == "" {
			continue
		}
		item.Properties[key] = p.Text
	}

	for _, a := range n.FindAll("action") {
		item.Actions = append(item.Actions, model.Action{
			Action:    a.Text,
			Condition: attrOr(a, "condition", ""),
		})
	}
	item.OriginalAction = append([]model.Action(nil), item.Actions...)

	if prot := n.Find("protection"); prot != nil {
		item.Protection = &model.Protection{
			Type:    attrOr(prot, "type", ""),
			Message: attrOr(prot, "message", ""),
		}
	}

	return item, nil
}
