// Package userdata implements C5: loading the JSON user-customization
// overlay and merging it into the default menu list produced by the
// loaders.
package userdata

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/yaoapp/gou/application"
	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/skinshortcuts/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonDocument struct {
	Menus map[string]jsonMenuOverride  `json:"menus"`
	Views map[string]map[string]string `json:"views"`
}

type jsonMenuOverride struct {
	Items   []jsonMenuItemOverride `json:"items"`
	Removed []string               `json:"removed"`
}

type jsonMenuItemOverride struct {
	Name       string            `json:"name"`
	Label      *string           `json:"label"`
	Actions    []jsonAction      `json:"actions"`
	Icon       *string           `json:"icon"`
	Disabled   *bool             `json:"disabled"`
	Properties map[string]string `json:"properties"`
	Position   *int              `json:"position"`
	IsNew      bool              `json:"is_new"`
}

type jsonAction struct {
	Action    string `json:"action"`
	Condition string `json:"condition"`
}

// Load reads and parses the user-data file at path. A missing file
// returns an empty overlay with no error. A malformed file is treated
// as empty, with the problem logged rather than returned (§4.5 failure
// mode: "a single invalid override entry should not abort the build").
func Load(path string) *model.UserData {
	exists, err := application.App.Exists(path)
	if err != nil || !exists {
		return model.NewUserData()
	}

	data, err := application.App.Read(path)
	if err != nil {
		log.Warn("skinshortcuts: user-data file %s unreadable: %v", path, err)
		return model.NewUserData()
	}

	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Warn("skinshortcuts: user-data file %s is malformed, ignoring: %v", path, err)
		return model.NewUserData()
	}

	out := model.NewUserData()
	for menuName, jm := range doc.Menus {
		override := model.MenuOverride{Removed: jm.Removed}
		for _, ji := range jm.Items {
			if ji.Name == "" {
				log.Warn("skinshortcuts: user-data file %s: skipping item override with no name", path)
				continue
			}
			override.Items = append(override.Items, model.MenuItemOverride{
				Name:       ji.Name,
				Label:      ji.Label,
				Actions:    toActions(ji.Actions),
				HasActions: ji.Actions != nil,
				Icon:       ji.Icon,
				Disabled:   ji.Disabled,
				Properties: ji.Properties,
				Position:   ji.Position,
				IsNew:      ji.IsNew,
			})
		}
		out.Menus[menuName] = override
	}
	out.Views = doc.Views
	return out
}

func toActions(in []jsonAction) []model.Action {
	if in == nil {
		return nil
	}
	out := make([]model.Action, len(in))
	for i, a := range in {
		out[i] = model.Action{Action: a.Action, Condition: a.Condition}
	}
	return out
}
