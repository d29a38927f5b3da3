package model

import "fmt"

// Widget is a typed value record produced by the widgets.xml loader.
type Widget struct {
	Name   string
	Path   string
	Label  string
	Type   string
	Target string
}

// ToProperties produces the fixed property map a widget contributes to an
// item's or menu-default's property map, under the given prefix (e.g.
// "widget" or "widget.2").
func (w Widget) ToProperties(prefix string) map[string]string {
	props := map[string]string{prefix: w.Name}
	if w.Path != "" {
		props[prefix+"Path"] = w.Path
	}
	if w.Label != "" {
		props[prefix+"Label"] = w.Label
	}
	if w.Type != "" {
		props[prefix+"Type"] = w.Type
	}
	if w.Target != "" {
		props[prefix+"Target"] = w.Target
	}
	return props
}

// BackgroundType enumerates the kinds a Background may be.
type BackgroundType string

// Background types.
const (
	BackgroundStatic        BackgroundType = "static"
	BackgroundPlaylist      BackgroundType = "playlist"
	BackgroundBrowse        BackgroundType = "browse"
	BackgroundMulti         BackgroundType = "multi"
	BackgroundProperty      BackgroundType = "property"
	BackgroundLive          BackgroundType = "live"
	BackgroundLivePlaylist  BackgroundType = "live-playlist"
)

// Background is a typed value record produced by the backgrounds.xml
// loader.
type Background struct {
	Name   string
	Path   string
	Label  string
	Type   BackgroundType
	Target string
}

// ToProperties mirrors Widget.ToProperties for backgrounds.
func (b Background) ToProperties(prefix string) map[string]string {
	props := map[string]string{prefix: b.Name}
	if b.Path != "" {
		props[prefix+"Path"] = b.Path
	}
	if b.Label != "" {
		props[prefix+"Label"] = b.Label
	}
	if b.Type != "" {
		props[prefix+"Type"] = string(b.Type)
	}
	if b.Target != "" {
		props[prefix+"Target"] = b.Target
	}
	return props
}

// ContentRef is an opaque reference to the dynamic content provider
// collaborator (§6): the core passes it through without interpreting it.
type ContentRef struct {
	Source string
	Target string
	Path   string
	Extra  map[string]string
}

func (c ContentRef) String() string {
	return fmt.Sprintf("content(source=%s target=%s)", c.Source, c.Target)
}

// Group is a named, possibly-recursive grouping of widgets or
// backgrounds, plus dynamic <content> references resolved by the content
// provider collaborator at runtime (not by the core).
type Group struct {
	Name     string
	Items    []string // names of Widget/Background records in this group
	Groups   []*Group // nested groups
	Contents []ContentRef
}
