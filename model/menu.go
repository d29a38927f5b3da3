package model

// Action is a single onclick action, optionally guarded by a condition
// evaluated by the condition evaluator (C1) at emission time.
type Action struct {
	Action    string
	Condition string
}

// DefaultActionSlot says whether a menu-level default action is spliced
// before or after an item's own actions (see Include assembler, C9).
type DefaultActionSlot string

// Default-action slots.
const (
	SlotBefore DefaultActionSlot = "before"
	SlotAfter  DefaultActionSlot = "after"
)

// DefaultAction is one entry of a Menu's MenuDefaults action list.
type DefaultAction struct {
	Action    string
	Condition string
	Slot      DefaultActionSlot
}

// MenuDefaults carries the property map and ordered default actions that
// every item of a Menu inherits unless overridden.
type MenuDefaults struct {
	Properties map[string]string
	Actions    []DefaultAction
}

// MenuAllow holds the three independent feature flags that gate what the
// (out-of-scope) management dialog may do to a menu; the core only
// threads them through unchanged.
type MenuAllow struct {
	AllowAdd    bool
	AllowRemove bool
	AllowReorder bool
}

// Protection records that an item's action may not be changed without
// satisfying some external check; the core never evaluates it, only
// preserves it for the dialog.
type Protection struct {
	Type    string
	Message string
}

// MenuItem is the atomic unit of a Menu.
type MenuItem struct {
	Name    string
	Label   string
	Actions []Action

	Label2 string
	Icon   string
	Thumb  string

	// Visible feeds the output <visible> tag; DialogVisible is consumed
	// only by the external management dialog and is never evaluated here.
	Visible       string
	DialogVisible string

	Disabled bool
	Required bool

	Protection *Protection

	// Submenu names another Menu (with IsSubmenu=true) that this item
	// opens; an unresolved name is simply never emitted (orphan policy).
	Submenu string

	Properties map[string]string

	// OriginalAction is the pre-override action list, preserved so the
	// external dialog can still run its protection checks after a merge.
	OriginalAction []Action
}

// Clone deep-copies a MenuItem so merge/override steps never mutate a
// shared default.
func (m *MenuItem) Clone() *MenuItem {
	if m == nil {
		return nil
	}
	c := *m
	c.Actions = append([]Action(nil), m.Actions...)
	c.OriginalAction = append([]Action(nil), m.OriginalAction...)
	c.Properties = make(map[string]string, len(m.Properties))
	for k, v := range m.Properties {
		c.Properties[k] = v
	}
	if m.Protection != nil {
		p := *m.Protection
		c.Protection = &p
	}
	return &c
}

// Menu is a named, ordered list of MenuItems.
type Menu struct {
	Name        string
	Items       []*MenuItem
	Container   string
	IsSubmenu   bool
	Defaults    MenuDefaults
	Allow       MenuAllow
	ControlType string
	StartID     int
}

// ItemByName returns the item with the given name, or nil.
func (m *Menu) ItemByName(name string) *MenuItem {
	for _, it := range m.Items {
		if it.Name == name {
			return it
		}
	}
	return nil
}

// ActionOverrideRule rewrites any item action matching Replace
// (case-insensitively) to With.
type ActionOverrideRule struct {
	Replace string
	With    string
}

// ShortcutGroup is a named grouping of shortcut item names, used by the
// (out-of-scope) management dialog to organize the add-shortcut picker.
type ShortcutGroup struct {
	Name  string
	Items []string
}

// IconSource names an external icon-lookup collaborator by id.
type IconSource struct {
	Name string
	Path string
}

// SubdialogDescriptor names a nested picker dialog the management UI may
// open; opaque to the core beyond its identity.
type SubdialogDescriptor struct {
	Name  string
	Label string
}

// MenuConfig is the full menus.xml document.
type MenuConfig struct {
	Menus               []*Menu
	ShortcutGroups      []ShortcutGroup
	IconSources         []IconSource
	Subdialogs          []SubdialogDescriptor
	ActionOverrides     []ActionOverrideRule
	ContextMenuEnabled  bool
}

// MenuByName returns the menu with the given name, or nil.
func (c *MenuConfig) MenuByName(name string) *Menu {
	for _, m := range c.Menus {
		if m.Name == name {
			return m
		}
	}
	return nil
}
