package loader

import "github.com/yaoapp/skinshortcuts/model"

// BackgroundConfig is the parsed backgrounds.xml document.
type BackgroundConfig struct {
	Backgrounds []model.Background
	Groups      []model.Group
}

var validBackgroundTypes = map[model.BackgroundType]bool{
	model.BackgroundStatic:       true,
	model.BackgroundPlaylist:     true,
	model.BackgroundBrowse:       true,
	model.BackgroundMulti:        true,
	model.BackgroundProperty:     true,
	model.BackgroundLive:         true,
	model.BackgroundLivePlaylist: true,
}

// LoadBackgrounds parses backgrounds.xml.
//
//	<backgrounds>
//	  <background name="fanart" path="..." label="Fan Art" type="static" target="..."/>
//	  <group name="Fan Art"><item>fanart</item></group>
//	</backgrounds>
func LoadBackgrounds(path string) (*BackgroundConfig, error) {
	root, ok, err := readNode(model.KindBackground, path)
	if err != nil {
		return nil, err
	}
	cfg := &BackgroundConfig{}
	if !ok {
		return cfg, nil
	}

	for _, n := range root.FindAll("background") {
		name, has := n.Attr("name")
		if !has || name == "" {
			return nil, model.NewConfigError(model.KindBackground, path, 0, "background missing required attribute 'name'")
		}
		btype := model.BackgroundType(attrOr(n, "type", string(model.BackgroundStatic)))
		if !validBackgroundTypes[btype] {
			return nil, model.NewConfigError(model.KindBackground, path, 0, "background %q has unknown type %q", name, btype)
		}
		cfg.Backgrounds = append(cfg.Backgrounds, model.Background{
			Name:   name,
			Path:   attrOr(n, "path", ""),
			Label:  attrOr(n, "label", ""),
			Type:   btype,
			Target: attrOr(n, "target", ""),
		})
	}

	for _, n := range root.FindAll("group") {
		group, err := parseGroup(model.KindBackground, path, n)
		if err != nil {
			return nil, err
		}
		cfg.Groups = append(cfg.Groups, *group)
	}

	return cfg, nil
}
