package viewexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yaoapp/skinshortcuts/model"
)

func baseViews() *model.ViewConfig {
	return &model.ViewConfig{
		Prefix: "SkinShortcuts_View_",
		Views:  []model.View{{ID: "50"}, {ID: "51"}},
		Rules: []model.ContentRule{
			{Content: "movies", AvailableViews: []string{"50", "51"}, LibraryDefault: "50", PluginDefault: "51"},
			{Content: "tvshows", AvailableViews: []string{"50"}, LibraryDefault: "50"},
		},
	}
}

func TestBuildLibraryDefaultExpression(t *testing.T) {
	views := baseViews()
	userData := model.NewUserData()

	nodes := Build(views, userData)

	var v50 string
	for _, n := range nodes {
		if n.AttrOr("name", "") == "SkinShortcuts_View_50" {
			v50 = n.Text
		}
	}
	assert.Contains(t, v50, "Container.Content(movies)")
	assert.Contains(t, v50, "Container.Content(tvshows)")
}

func TestBuildUserSelectionOverridesLibraryDefault(t *testing.T) {
	views := baseViews()
	userData := model.NewUserData()
	userData.Views["library"] = map[string]string{"movies": "51"}

	nodes := Build(views, userData)

	var v50, v51 string
	for _, n := range nodes {
		switch n.AttrOr("name", "") {
		case "SkinShortcuts_View_50":
			v50 = n.Text
		case "SkinShortcuts_View_51":
			v51 = n.Text
		}
	}
	assert.NotContains(t, v50, "movies")
	assert.Contains(t, v51, "Container.Content(movies)")
}

func TestBuildIncludeExpressionListsAvailability(t *testing.T) {
	views := baseViews()
	nodes := Build(views, model.NewUserData())

	var include50 string
	for _, n := range nodes {
		if n.AttrOr("name", "") == "SkinShortcuts_View_50_Include" {
			include50 = n.Text
		}
	}
	assert.Contains(t, include50, "movies")
	assert.Contains(t, include50, "tvshows")
}

func TestBuildPluginOverrideExpressions(t *testing.T) {
	views := baseViews()
	userData := model.NewUserData()
	userData.Views["plugin.video.example"] = map[string]string{"movies": "51"}

	nodes := Build(views, userData)

	var foundOverride, foundGeneric bool
	var hasOverrideText, genericText string
	for _, n := range nodes {
		if n.AttrOr("name", "") == "SkinShortcuts_View_movies_HasPluginOverride" {
			foundOverride = true
			hasOverrideText = n.Text
		}
		if n.AttrOr("name", "") == "SkinShortcuts_View_movies_IsGenericPlugin" {
			foundGeneric = true
			genericText = n.Text
		}
	}
	assert.True(t, foundOverride)
	assert.Contains(t, hasOverrideText, "plugin.video.example")
	assert.True(t, foundGeneric)
	assert.Contains(t, genericText, "SkinShortcuts_View_movies_HasPluginOverride")
}

func TestBuildNilViewsReturnsNil(t *testing.T) {
	assert.Nil(t, Build(nil, nil))
}
