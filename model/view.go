package model

// View is one selectable view control.
type View struct {
	ID string
}

// ContentRule binds a content type to its available views and defaults.
type ContentRule struct {
	Content        string
	Visible        string // host-runtime predicate, passed through unchanged
	AvailableViews []string
	LibraryDefault string
	PluginDefault  string
}

// ViewConfig is the parsed views.xml document.
type ViewConfig struct {
	Prefix string
	Views  []View
	Rules  []ContentRule
}

// NewViewConfig returns an empty view configuration (the default when
// views.xml is absent).
func NewViewConfig() *ViewConfig {
	return &ViewConfig{}
}
