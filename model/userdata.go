package model

// MenuItemOverride is one entry of a MenuOverride's item list. Every
// field but Name is a pointer/optional: nil means "inherit the default".
type MenuItemOverride struct {
	Name       string
	Label      *string
	Actions    []Action
	HasActions bool
	Icon       *string
	Disabled   *bool
	Properties map[string]string
	Position   *int
	IsNew      bool
}

// MenuOverride is the user-customization overlay for a single menu.
type MenuOverride struct {
	Items   []MenuItemOverride
	Removed []string
}

// UserData is the parsed user-customization JSON document (§6).
type UserData struct {
	Menus map[string]MenuOverride
	Views map[string]map[string]string // source -> content -> view id
}

// NewUserData returns an empty overlay (the default when the user-data
// file is absent, unreadable or malformed).
func NewUserData() *UserData {
	return &UserData{
		Menus: map[string]MenuOverride{},
		Views: map[string]map[string]string{},
	}
}
