package userdata

import (
	"os"
	"path/filepath"

	"github.com/yaoapp/skinshortcuts/model"
)

type persistedItem struct {
	Name       string            `json:"name"`
	Label      *string           `json:"label,omitempty"`
	Actions    []jsonAction      `json:"actions,omitempty"`
	Icon       *string           `json:"icon,omitempty"`
	Disabled   *bool             `json:"disabled,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
	Position   *int              `json:"position,omitempty"`
	IsNew      bool              `json:"is_new,omitempty"`
}

type persistedMenu struct {
	Items   []persistedItem `json:"items,omitempty"`
	Removed []string        `json:"removed,omitempty"`
}

type persistedDocument struct {
	Menus map[string]persistedMenu     `json:"menus"`
	Views map[string]map[string]string `json:"views"`
}

// Persist atomically writes overlay back to path as the user-data JSON
// document, mirroring the hash gate's write-to-temporary-then-rename
// discipline (the secondary reset_* entry points of §6 mutate the
// overlay in place before re-invoking the build).
func Persist(path string, overlay *model.UserData) error {
	doc := persistedDocument{Menus: map[string]persistedMenu{}, Views: overlay.Views}
	for name, override := range overlay.Menus {
		pm := persistedMenu{Removed: override.Removed}
		for _, item := range override.Items {
			pi := persistedItem{
				Name:       item.Name,
				Label:      item.Label,
				Icon:       item.Icon,
				Disabled:   item.Disabled,
				Properties: item.Properties,
				Position:   item.Position,
				IsNew:      item.IsNew,
			}
			if item.HasActions {
				pi.Actions = fromActions(item.Actions)
			}
			pm.Items = append(pm.Items, pi)
		}
		doc.Menus[name] = pm
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".userdata-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func fromActions(in []model.Action) []jsonAction {
	out := make([]jsonAction, len(in))
	for i, a := range in {
		out[i] = jsonAction{Action: a.Action, Condition: a.Condition}
	}
	return out
}
