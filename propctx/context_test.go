package propctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yaoapp/skinshortcuts/model"
)

func TestBuildOrdering(t *testing.T) {
	menu := &model.Menu{
		Name: "mainmenu",
		Defaults: model.MenuDefaults{
			Properties: map[string]string{"thumb": "default.png", "widgetType": "music"},
		},
	}
	item := &model.MenuItem{
		Name:       "movies",
		Properties: map[string]string{"widgetType": "movies"},
	}
	tmpl := &model.Template{IDPrefix: "80"}

	ctx := Build(tmpl, item, 3, menu, model.NewPropertySchema(), model.NewTemplateSchema(), "")

	assert.Equal(t, "movies", ctx["widgetType"], "item properties override menu defaults")
	assert.Equal(t, "default.png", ctx["thumb"])
	assert.Equal(t, "3", ctx["index"])
	assert.Equal(t, "movies", ctx["name"])
	assert.Equal(t, "mainmenu", ctx["menu"])
	assert.Equal(t, "80", ctx["idprefix"])
	assert.Equal(t, "803", ctx["id"])
}

func TestBuildFallbacks(t *testing.T) {
	menu := &model.Menu{Name: "mainmenu"}
	item := &model.MenuItem{Name: "movies", Properties: map[string]string{}}
	tmpl := &model.Template{}
	schema := model.NewPropertySchema()
	schema.Fallbacks["widgetType"] = model.FallbackRule{
		Property: "widgetType",
		Rules:    []model.FallbackCondition{{When: "name=movies", Value: "movies"}},
		Default:  "none",
		HasDefault: true,
	}

	ctx := Build(tmpl, item, 1, menu, schema, model.NewTemplateSchema(), "")
	assert.Equal(t, "movies", ctx["widgetType"])
}

func TestBuildFallbackSkipsWhenSuffixedVariantAlreadySet(t *testing.T) {
	menu := &model.Menu{Name: "mainmenu"}
	item := &model.MenuItem{Name: "movies", Properties: map[string]string{"widgetType2": "tvshows"}}
	tmpl := &model.Template{}
	schema := model.NewPropertySchema()
	schema.Fallbacks["widgetType"] = model.FallbackRule{
		Property:   "widgetType",
		Rules:      []model.FallbackCondition{{When: "name=movies", Value: "movies"}},
		Default:    "none",
		HasDefault: true,
	}

	ctx := Build(tmpl, item, 1, menu, schema, model.NewTemplateSchema(), "2")
	assert.Equal(t, "tvshows", ctx["widgetType2"])
	_, bare := ctx["widgetType"]
	assert.False(t, bare, "fallback must not write the bare key once its suffixed variant is already present")
}

func TestBuildFallbackConditionIsSuffixTransformed(t *testing.T) {
	menu := &model.Menu{Name: "mainmenu"}
	item := &model.MenuItem{Name: "movies", Properties: map[string]string{"category2": "movies"}}
	tmpl := &model.Template{}
	schema := model.NewPropertySchema()
	schema.Fallbacks["widgetType"] = model.FallbackRule{
		Property: "widgetType",
		Rules:    []model.FallbackCondition{{When: "category=movies", Value: "movies"}},
	}

	ctx := Build(tmpl, item, 1, menu, schema, model.NewTemplateSchema(), "2")
	assert.Equal(t, "movies", ctx["widgetType"], "suffix-transformed condition reads the suffixed property, not the unsuffixed name")
}

func TestBuildTemplatePropertyWriteIfAbsent(t *testing.T) {
	menu := &model.Menu{Name: "mainmenu", Defaults: model.MenuDefaults{Properties: map[string]string{}}}
	item := &model.MenuItem{Name: "movies", Properties: map[string]string{"label": "FromItem"}}
	tmpl := &model.Template{
		Properties: []model.TemplateProperty{
			{Name: "label", Kind: model.ValueLiteral, Literal: "FromTemplate"},
			{Name: "caption", Kind: model.ValueLiteral, Literal: "$PROPERTY[label]"},
		},
	}

	ctx := Build(tmpl, item, 1, menu, model.NewPropertySchema(), model.NewTemplateSchema(), "")
	assert.Equal(t, "FromItem", ctx["label"], "item property already present wins over template literal")
	assert.Equal(t, "FromItem", ctx["caption"])
}

func TestResolveFromSourcePresetBracket(t *testing.T) {
	templates := model.NewTemplateSchema()
	templates.Presets["iconSize"] = &model.Preset{
		Name: "iconSize",
		Rows: []model.PresetRow{
			{Condition: "widgetType=movies", Attrs: map[string]string{"width": "100"}},
			{Condition: "", Attrs: map[string]string{"width": "80"}},
		},
	}
	item := &model.MenuItem{Properties: map[string]string{}}
	ctx := map[string]string{"widgetType": "movies"}

	got := ResolveFromSource("iconSize[width]", ctx, item, templates)
	assert.Equal(t, "100", got)
}

func TestResolveFromSourceBuiltinAndFallback(t *testing.T) {
	item := &model.MenuItem{Properties: map[string]string{"thumb": "x.png"}}
	ctx := map[string]string{"index": "4"}

	assert.Equal(t, "4", ResolveFromSource("index", ctx, item, nil))
	assert.Equal(t, "x.png", ResolveFromSource("thumb", ctx, item, nil))
	assert.Equal(t, "", ResolveFromSource("missing", ctx, item, nil))
}
