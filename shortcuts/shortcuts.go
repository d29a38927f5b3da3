// Package shortcuts wires the whole pipeline together: the hash gate
// (C6), the XML loaders (C3), the user-data merge (C5), the include
// assembler (C9, which itself drives the context builder C7 and the
// template processor C8), and the view-expression builder (C10).
package shortcuts

import (
	"path/filepath"

	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/skinshortcuts/assemble"
	"github.com/yaoapp/skinshortcuts/hashgate"
	"github.com/yaoapp/skinshortcuts/loader"
	"github.com/yaoapp/skinshortcuts/model"
	"github.com/yaoapp/skinshortcuts/userdata"
	"github.com/yaoapp/skinshortcuts/viewexpr"
	"github.com/yaoapp/skinshortcuts/xmlnode"
)

// Config names every input/output path a Build invocation needs.
type Config struct {
	ShortcutsDir  string
	UserDataPath  string
	OutputPaths   []string
	FingerprintPath string
	ScriptVersion string
	SkinDir       string
	HostVersion   string
}

func (c Config) configFiles() []string {
	return []string{
		filepath.Join(c.ShortcutsDir, "menus.xml"),
		filepath.Join(c.ShortcutsDir, "widgets.xml"),
		filepath.Join(c.ShortcutsDir, "backgrounds.xml"),
		filepath.Join(c.ShortcutsDir, "properties.xml"),
		filepath.Join(c.ShortcutsDir, "templates.xml"),
		filepath.Join(c.ShortcutsDir, "views.xml"),
	}
}

// Build implements the single top-level entry point of §6: check the
// hash gate, and if a rebuild is actually needed, load everything,
// merge, assemble, and write every configured output atomically. It
// returns true both when the gate finds nothing to rebuild and after a
// successful rebuild. A failed fingerprint check is logged and treated
// as needing a rebuild.
func Build(cfg Config, force bool) (bool, error) {
	inputs := hashgate.Inputs{
		ConfigFiles:   cfg.configFiles(),
		UserDataFile:  cfg.UserDataPath,
		ScriptVersion: cfg.ScriptVersion,
		SkinDir:       cfg.SkinDir,
		HostVersion:   cfg.HostVersion,
		OutputFiles:   cfg.OutputPaths,
	}

	current, err := hashgate.Generate(inputs)
	if err != nil {
		return false, model.NewBuildError("fingerprint", err)
	}

	if !force {
		needsRebuild, err := hashgate.NeedsRebuild(cfg.FingerprintPath, current, cfg.OutputPaths)
		if err != nil {
			log.Warn("skinshortcuts: fingerprint check failed, rebuilding: %v", err)
			needsRebuild = true
		}
		if !needsRebuild {
			return true, nil
		}
	}

	doc, err := buildDocument(cfg)
	if err != nil {
		return false, err
	}

	if err := assemble.Write(doc, cfg.OutputPaths); err != nil {
		return false, model.NewBuildError("write-output", err)
	}

	if err := hashgate.Persist(cfg.FingerprintPath, current); err != nil {
		return false, model.NewBuildError("persist-fingerprint", err)
	}

	return true, nil
}

func buildDocument(cfg Config) (*xmlnode.Node, error) {
	menus, err := loader.LoadMenus(filepath.Join(cfg.ShortcutsDir, "menus.xml"))
	if err != nil {
		return nil, err
	}
	schema, err := loader.LoadProperties(filepath.Join(cfg.ShortcutsDir, "properties.xml"))
	if err != nil {
		return nil, err
	}
	templates, err := loader.LoadTemplates(filepath.Join(cfg.ShortcutsDir, "templates.xml"))
	if err != nil {
		return nil, err
	}
	views, err := loader.LoadViews(filepath.Join(cfg.ShortcutsDir, "views.xml"))
	if err != nil {
		return nil, err
	}

	overlay := userdata.Load(cfg.UserDataPath)

	merged, err := userdata.Merge(menus.Menus, overlay, menus.ActionOverrides)
	if err != nil {
		log.Warn("skinshortcuts: user-data merge reported problems: %v", err)
	}
	menus.Menus = merged

	doc := assemble.Build(menus, schema, templates)
	for _, expr := range viewexpr.Build(views, overlay) {
		doc.Children = append([]*xmlnode.Node{expr}, doc.Children...)
	}

	return doc, nil
}

// ResetAll discards the entire user-data overlay and rebuilds.
func ResetAll(cfg Config) (bool, error) {
	return resetAndRebuild(cfg, model.NewUserData())
}

// ResetMenus discards only menu overrides, keeping view selections.
func ResetMenus(cfg Config) (bool, error) {
	overlay := userdata.Load(cfg.UserDataPath)
	overlay.Menus = map[string]model.MenuOverride{}
	return resetAndRebuild(cfg, overlay)
}

// ResetViews discards only view selections, keeping menu overrides.
func ResetViews(cfg Config) (bool, error) {
	overlay := userdata.Load(cfg.UserDataPath)
	overlay.Views = map[string]map[string]string{}
	return resetAndRebuild(cfg, overlay)
}

// ClearCustomWidget removes one item's customwidget-related properties
// (the property names carrying the "customwidget" and
// "customwidget.N" prefixes) from the overlay, then rebuilds.
func ClearCustomWidget(cfg Config, menuName, itemName string) (bool, error) {
	overlay := userdata.Load(cfg.UserDataPath)
	override, ok := overlay.Menus[menuName]
	if !ok {
		return Build(cfg, false)
	}
	for i, item := range override.Items {
		if item.Name != itemName {
			continue
		}
		for k := range item.Properties {
			if isCustomWidgetProperty(k) {
				delete(item.Properties, k)
			}
		}
		override.Items[i] = item
	}
	overlay.Menus[menuName] = override
	return resetAndRebuild(cfg, overlay)
}

func isCustomWidgetProperty(name string) bool {
	return len(name) >= len("customwidget") && name[:len("customwidget")] == "customwidget"
}

func resetAndRebuild(cfg Config, overlay *model.UserData) (bool, error) {
	if err := userdata.Persist(cfg.UserDataPath, overlay); err != nil {
		return false, model.NewBuildError("persist-userdata", err)
	}
	return Build(cfg, true)
}
