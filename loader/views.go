package loader

import "github.com/yaoapp/skinshortcuts/model"

// LoadViews parses views.xml.
//
//	<views prefix="MyViews">
//	  <view id="500"/>
//	  <content type="movies">
//	    <visible>Container.Content(movies)</visible>
//	    <available>500</available>
//	    <available>501</available>
//	    <librarydefault>500</librarydefault>
//	    <plugindefault>501</plugindefault>
//	  </content>
//	</views>
func LoadViews(path string) (*model.ViewConfig, error) {
	root, ok, err := readNode(model.KindView, path)
	if err != nil {
		return nil, err
	}
	cfg := model.NewViewConfig()
	if !ok {
		return cfg, nil
	}

	cfg.Prefix = attrOr(root, "prefix", "")

	for _, n := range root.FindAll("view") {
		id, has := n.Attr("id")
		if !has || id == "" {
			return nil, model.NewConfigError(model.KindView, path, 0, "view missing required attribute 'id'")
		}
		cfg.Views = append(cfg.Views, model.View{ID: id})
	}

	for _, n := range root.FindAll("content") {
		content, has := n.Attr("type")
		if !has || content == "" {
			return nil, model.NewConfigError(model.KindView, path, 0, "content rule missing required attribute 'type'")
		}
		rule := model.ContentRule{Content: content}
		if v := n.Find("visible"); v != nil {
			rule.Visible = v.Text
		}
		for _, a := range n.FindAll("available") {
			rule.AvailableViews = append(rule.AvailableViews, a.Text)
		}
		if d := n.Find("librarydefault"); d != nil {
			rule.LibraryDefault = d.Text
		}
		if d := n.Find("plugindefault"); d != nil {
			rule.PluginDefault = d.Text
		}
		cfg.Rules = append(cfg.Rules, rule)
	}

	return cfg, nil
}
