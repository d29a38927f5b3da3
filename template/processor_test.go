package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yaoapp/skinshortcuts/model"
	"github.com/yaoapp/skinshortcuts/xmlnode"
)

func buildControls(xmlStr string) *xmlnode.Node {
	n, err := xmlnode.Parse([]byte(xmlStr))
	if err != nil {
		panic(err)
	}
	return n
}

func TestProcessMenuMode(t *testing.T) {
	menu := &model.Menu{
		Name: "mainmenu",
		Items: []*model.MenuItem{
			{Name: "movies", Properties: map[string]string{"widgetType": "movies"}},
			{Name: "tvshows", Disabled: true, Properties: map[string]string{}},
		},
	}
	tmpl := &model.Template{
		Include:   "mainmenu",
		BuildMode: model.BuildMenu,
		IDPrefix:  "80",
		Controls:  buildControls(`<controls><item id="$PARAM[id]"><label>$PROPERTY[name]</label></item></controls>`),
	}

	result := Process(tmpl, []*model.Menu{menu}, model.NewPropertySchema(), model.NewTemplateSchema(), map[string]bool{})

	assert.NotNil(t, result.Include)
	assert.Equal(t, "skinshortcuts-template-mainmenu", result.Include.AttrOr("name", ""))
	assert.Len(t, result.Include.Children, 1, "disabled item excluded")
	assert.Equal(t, "801", result.Include.Children[0].AttrOr("id", ""))
}

func TestProcessConditionsFilterItems(t *testing.T) {
	menu := &model.Menu{
		Name: "mainmenu",
		Items: []*model.MenuItem{
			{Name: "movies", Properties: map[string]string{"widgetType": "movies"}},
			{Name: "music", Properties: map[string]string{"widgetType": "music"}},
		},
	}
	tmpl := &model.Template{
		Include:    "moviesOnly",
		BuildMode:  model.BuildMenu,
		Conditions: []string{"widgetType=movies"},
		Controls:   buildControls(`<controls><item><label>$PROPERTY[name]</label></item></controls>`),
	}

	result := Process(tmpl, []*model.Menu{menu}, model.NewPropertySchema(), model.NewTemplateSchema(), map[string]bool{})
	assert.Len(t, result.Include.Children, 1)
}

func TestProcessTemplateOnlyTrueSuppressesInclude(t *testing.T) {
	menu := &model.Menu{Name: "mainmenu", Items: []*model.MenuItem{{Name: "movies", Properties: map[string]string{}}}}
	tmpl := &model.Template{
		Include:      "hidden",
		BuildMode:    model.BuildMenu,
		TemplateOnly: model.TemplateOnlyTrue,
		Controls:     buildControls(`<controls><item/></controls>`),
	}

	result := Process(tmpl, []*model.Menu{menu}, model.NewPropertySchema(), model.NewTemplateSchema(), map[string]bool{})
	assert.Nil(t, result.Include)
}

func TestProcessTemplateOnlyAuto(t *testing.T) {
	menu := &model.Menu{Name: "mainmenu", Items: []*model.MenuItem{{Name: "movies", Properties: map[string]string{}}}}
	tmpl := &model.Template{
		Include:      "maybe",
		BuildMode:    model.BuildMenu,
		TemplateOnly: model.TemplateOnlyAuto,
		Controls:     buildControls(`<controls><item/></controls>`),
	}

	notReferenced := Process(tmpl, []*model.Menu{menu}, model.NewPropertySchema(), model.NewTemplateSchema(), map[string]bool{})
	assert.Nil(t, notReferenced.Include)

	referenced := Process(tmpl, []*model.Menu{menu}, model.NewPropertySchema(), model.NewTemplateSchema(), map[string]bool{"skinshortcuts-template-maybe": true})
	assert.NotNil(t, referenced.Include)
}

func TestProcessListMode(t *testing.T) {
	tmpl := &model.Template{
		Include:   "rows",
		BuildMode: model.BuildList,
		ListItems: []map[string]string{
			{"label": "One"},
			{"label": "Two"},
		},
		Controls: buildControls(`<controls><item><label>$PROPERTY[label]</label></item></controls>`),
	}

	result := Process(tmpl, nil, model.NewPropertySchema(), model.NewTemplateSchema(), map[string]bool{})
	assert.Len(t, result.Include.Children, 2)
}

func TestProcessRawModeUsesParamDefaults(t *testing.T) {
	tmpl := &model.Template{
		Include:   "raw",
		BuildMode: model.BuildRaw,
		Params:    []model.TemplateParam{{Name: "greeting", Default: "hello"}},
		Controls:  buildControls(`<controls><label>$PARAM[greeting]</label></controls>`),
	}

	result := Process(tmpl, nil, model.NewPropertySchema(), model.NewTemplateSchema(), map[string]bool{})
	assert.Len(t, result.Include.Children, 1)
	assert.Equal(t, "hello", result.Include.Children[0].Text)
}

func TestProcessEmptyIncludeGetsDescription(t *testing.T) {
	tmpl := &model.Template{
		Include:   "empty",
		BuildMode: model.BuildRaw,
		Controls:  buildControls(`<controls><skinshortcuts include="missing"/></controls>`),
	}

	result := Process(tmpl, nil, model.NewPropertySchema(), model.NewTemplateSchema(), map[string]bool{})
	assert.Len(t, result.Include.Children, 1)
	assert.Equal(t, "description", result.Include.Children[0].Tag)
}

func TestProcessVariableGroups(t *testing.T) {
	templates := model.NewTemplateSchema()
	body := xmlnode.New("string")
	body.Text = "$PROPERTY[name]"
	templates.Variables["itemName"] = &model.VariableDefinition{Name: "ItemName", Body: body}
	templates.VariableGroups["common"] = &model.VariableGroup{
		Name:      "common",
		Variables: []model.Ref{{Name: "itemName"}},
	}

	menu := &model.Menu{Name: "mainmenu", Items: []*model.MenuItem{{Name: "movies", Properties: map[string]string{}}}}
	tmpl := &model.Template{
		Include:      "vars",
		BuildMode:    model.BuildMenu,
		VarGroupRefs: []model.Ref{{Name: "common"}},
		Controls:     buildControls(`<controls><item/></controls>`),
	}

	result := Process(tmpl, []*model.Menu{menu}, model.NewPropertySchema(), templates, map[string]bool{})
	assert.Len(t, result.Variables, 1)
	assert.Equal(t, "ItemName", result.Variables[0].AttrOr("name", ""))
	assert.Equal(t, "movies", result.Variables[0].Text)
}

func TestProcessVariableGroupAppliesSuffixToBodyAndCondition(t *testing.T) {
	templates := model.NewTemplateSchema()
	body := xmlnode.New("string")
	body.Text = "$PROPERTY[widgetType]"
	templates.Variables["widget"] = &model.VariableDefinition{
		Name:      "Widget",
		Condition: "widgetType=tvshows",
		Body:      body,
	}
	templates.VariableGroups["slots"] = &model.VariableGroup{
		Name:      "slots",
		Variables: []model.Ref{{Name: "widget", Suffix: "2"}},
	}

	menu := &model.Menu{Name: "mainmenu", Items: []*model.MenuItem{{Name: "movies", Properties: map[string]string{}}}}
	tmpl := &model.Template{
		Include:      "vars",
		BuildMode:    model.BuildMenu,
		VarGroupRefs: []model.Ref{{Name: "slots"}},
		Controls:     buildControls(`<controls><item/></controls>`),
	}

	schema := model.NewPropertySchema()

	// Simulate the suffixed slot carrying a different widgetType than
	// the unsuffixed context: only the "2"-suffixed condition/lookup
	// should see it.
	menu.Items[0].Properties["widgetType"] = "movies"
	menu.Items[0].Properties["widgetType2"] = "tvshows"

	result := Process(tmpl, []*model.Menu{menu}, schema, templates, map[string]bool{})
	assert.Len(t, result.Variables, 1)
	assert.Equal(t, "tvshows", result.Variables[0].Text)
}
