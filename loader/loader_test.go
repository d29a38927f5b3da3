package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yaoapp/skinshortcuts/model"
	"github.com/yaoapp/skinshortcuts/xmlnode"
)

func TestParseMenu(t *testing.T) {
	doc := `<menu name="mainmenu" container="10" startid="100">
		<defaults>
			<property name="thumb">default.png</property>
			<action slot="before">ActivateWindow(Home)</action>
		</defaults>
		<allow add="true" remove="false" reorder="true"/>
		<item name="movies" label="Movies" widget="recentmovies" submenu="movies.submenu">
			<action condition="widgetType=movies">ActivateWindow(Videos)</action>
			<property name="widgetType">movies</property>
		</item>
	</menu>`

	root, err := xmlnode.Parse([]byte(doc))
	assert.NoError(t, err)

	menu, err := parseMenu("menus.xml", root)
	assert.NoError(t, err)
	assert.Equal(t, "mainmenu", menu.Name)
	assert.Equal(t, "10", menu.Container)
	assert.Equal(t, 100, menu.StartID)
	assert.Equal(t, "default.png", menu.Defaults.Properties["thumb"])
	assert.Len(t, menu.Defaults.Actions, 1)
	assert.Equal(t, model.SlotBefore, menu.Defaults.Actions[0].Slot)
	assert.True(t, menu.Allow.AllowAdd)
	assert.False(t, menu.Allow.AllowRemove)

	assert.Len(t, menu.Items, 1)
	item := menu.Items[0]
	assert.Equal(t, "movies", item.Name)
	assert.Equal(t, "recentmovies", item.Properties["widget"])
	assert.Equal(t, "movies", item.Properties["widgetType"])
	assert.Equal(t, "movies.submenu", item.Submenu)
	assert.Len(t, item.Actions, 1)
	assert.Equal(t, item.Actions, item.OriginalAction)
}

func TestParseMenuMissingName(t *testing.T) {
	root, err := xmlnode.Parse([]byte(`<menu><item name="a"/></menu>`))
	assert.NoError(t, err)
	_, err = parseMenu("menus.xml", root)
	assert.Error(t, err)
	var cfgErr *model.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, model.KindMenu, cfgErr.Kind)
}

func TestParseGroupNested(t *testing.T) {
	root, err := xmlnode.Parse([]byte(`<group name="top">
		<item>a</item>
		<group name="nested"><item>b</item></group>
		<content source="library" target="x" path="movies" extra="1"/>
	</group>`))
	assert.NoError(t, err)

	group, err := parseGroup(model.KindWidget, "widgets.xml", root)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a"}, group.Items)
	assert.Len(t, group.Groups, 1)
	assert.Equal(t, "nested", group.Groups[0].Name)
	assert.Len(t, group.Contents, 1)
	assert.Equal(t, "library", group.Contents[0].Source)
	assert.Equal(t, "1", group.Contents[0].Extra["extra"])
}

func TestParseTemplateCommon(t *testing.T) {
	root, err := xmlnode.Parse([]byte(`<template include="MainMenu" buildmode="MENU" idprefix="80" condition="widgetType=movies">
		<property name="thumb" from="widgetPath"/>
		<property name="label">Movies</property>
		<var name="caption"><case condition="a=1">one</case><case>default</case></var>
		<presetRef name="iconSize" suffix="2"/>
		<controls><control type="group"/></controls>
	</template>`))
	assert.NoError(t, err)

	tmpl, err := parseTemplateCommon("templates.xml", root)
	assert.NoError(t, err)
	assert.Equal(t, "MainMenu", tmpl.Include)
	assert.Equal(t, model.BuildMenu, tmpl.BuildMode)
	assert.Equal(t, []string{"widgetType=movies"}, tmpl.Conditions)
	assert.Len(t, tmpl.Properties, 2)
	assert.Equal(t, model.ValueFromSource, tmpl.Properties[0].Kind)
	assert.Equal(t, "widgetPath", tmpl.Properties[0].FromSource)
	assert.Equal(t, model.ValueLiteral, tmpl.Properties[1].Kind)
	assert.Len(t, tmpl.Vars, 1)
	assert.Len(t, tmpl.Vars[0].Cases, 2)
	assert.Len(t, tmpl.PresetRefs, 1)
	assert.Equal(t, "2", tmpl.PresetRefs[0].Suffix)
	assert.NotNil(t, tmpl.Controls)
}

func TestViewsDocumentPrefixAndViews(t *testing.T) {
	root, err := xmlnode.Parse([]byte(`<views prefix="MyViews"><view id="500"/>
		<content type="movies"><visible>Container.Content(movies)</visible><available>500</available><librarydefault>500</librarydefault></content>
	</views>`))
	assert.NoError(t, err)

	cfg := model.NewViewConfig()
	cfg.Prefix = attrOr(root, "prefix", "")
	for _, n := range root.FindAll("view") {
		id, _ := n.Attr("id")
		cfg.Views = append(cfg.Views, model.View{ID: id})
	}
	assert.Equal(t, "MyViews", cfg.Prefix)
	assert.Len(t, cfg.Views, 1)
}
