package userdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yaoapp/skinshortcuts/model"
)

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }
func intptr(i int) *int       { return &i }

func TestMergeRemovesAndOverrides(t *testing.T) {
	defaults := []*model.Menu{
		{
			Name: "mainmenu",
			Items: []*model.MenuItem{
				{Name: "movies", Label: "Movies", Properties: map[string]string{"widgetType": "movies"}},
				{Name: "music", Label: "Music"},
				{Name: "tv", Label: "TV"},
			},
		},
	}
	overlay := model.NewUserData()
	overlay.Menus["mainmenu"] = model.MenuOverride{
		Removed: []string{"tv"},
		Items: []model.MenuItemOverride{
			{Name: "movies", Label: strptr("My Movies"), Properties: map[string]string{"widgetType": "tvshows"}},
			{Name: "games", IsNew: true, Label: strptr("Games")},
		},
	}

	result, err := Merge(defaults, overlay, nil)
	assert.NoError(t, err)
	assert.Len(t, result, 1)
	names := itemNames(result[0])
	assert.Equal(t, []string{"movies", "music", "games"}, names)

	movies := result[0].ItemByName("movies")
	assert.Equal(t, "My Movies", movies.Label)
	assert.Equal(t, "tvshows", movies.Properties["widgetType"])

	games := result[0].ItemByName("games")
	assert.Equal(t, []model.Action{{Action: "noop"}}, games.Actions)
	assert.Equal(t, "DefaultShortcut.png", games.Icon)
}

func TestMergePreservesOriginalActionBeforeOverride(t *testing.T) {
	defaults := []*model.Menu{
		{
			Name: "mainmenu",
			Items: []*model.MenuItem{
				{Name: "movies", Actions: []model.Action{{Action: "Default()"}}},
			},
		},
	}
	overlay := model.NewUserData()
	overlay.Menus["mainmenu"] = model.MenuOverride{
		Items: []model.MenuItemOverride{
			{Name: "movies", HasActions: true, Actions: []model.Action{{Action: "Override()"}}},
		},
	}

	result, err := Merge(defaults, overlay, nil)
	assert.NoError(t, err)

	movies := result[0].ItemByName("movies")
	assert.Equal(t, []model.Action{{Action: "Override()"}}, movies.Actions)
	assert.Equal(t, []model.Action{{Action: "Default()"}}, movies.OriginalAction)
}

func TestMergePosition(t *testing.T) {
	defaults := []*model.Menu{{
		Name: "mainmenu",
		Items: []*model.MenuItem{
			{Name: "a"}, {Name: "b"}, {Name: "c"},
		},
	}}
	overlay := model.NewUserData()
	overlay.Menus["mainmenu"] = model.MenuOverride{
		Items: []model.MenuItemOverride{
			{Name: "c", Position: intptr(0)},
		},
	}

	result, err := Merge(defaults, overlay, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, itemNames(result[0]))
}

func TestMergeUserOnlyMenu(t *testing.T) {
	overlay := model.NewUserData()
	overlay.Menus["extramenu"] = model.MenuOverride{
		Items: []model.MenuItemOverride{{Name: "x", IsNew: true}},
	}

	result, err := Merge(nil, overlay, nil)
	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "extramenu", result[0].Name)
}

func TestApplyActionOverridesCaseInsensitive(t *testing.T) {
	menus := []*model.Menu{{
		Name:  "mainmenu",
		Items: []*model.MenuItem{{Name: "movies", Actions: []model.Action{{Action: "OldAction"}}}},
	}}
	applyActionOverrides(menus, []model.ActionOverrideRule{{Replace: "oldaction", With: "NewAction"}})
	assert.Equal(t, "NewAction", menus[0].Items[0].Actions[0].Action)
}

func itemNames(m *model.Menu) []string {
	var out []string
	for _, it := range m.Items {
		out = append(out, it.Name)
	}
	return out
}
