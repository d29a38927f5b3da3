package model

// PropertyType enumerates the kinds a property definition may declare in
// properties.xml.
type PropertyType string

// Property types.
const (
	PropertyOptions    PropertyType = "options"
	PropertyToggle     PropertyType = "toggle"
	PropertyWidget     PropertyType = "widget"
	PropertyBackground PropertyType = "background"
)

// PropertyOption is one selectable value of an "options" property,
// optionally carrying a conditional icon.
type PropertyOption struct {
	Value string
	Label string
	Icon  string
}

// PropertyDef is one entry of a PropertySchema.
type PropertyDef struct {
	Name         string
	Type         PropertyType
	Requires     string // name of a property this one depends on
	Options      []PropertyOption
	TemplateOnly bool // excluded from <property> emission (C9)
}

// ButtonDef maps a management-dialog button to the property it edits,
// optionally overriding that property's type/requires for this button,
// and inheriting a suffix for multi-slot widgets/backgrounds.
type ButtonDef struct {
	Name     string
	Property string
	Type     PropertyType
	Requires string
	Suffix   string
}

// FallbackCondition is one row of a FallbackRule: a condition string
// (evaluated by C1) paired with the value to use when it matches.
type FallbackCondition struct {
	When  string
	Value string
}

// FallbackRule supplies a property's value when the context has none,
// evaluated in declaration order with a final unconditional default.
type FallbackRule struct {
	Property string
	Rules    []FallbackCondition
	Default  string
	HasDefault bool
}

// PropertySchema is the parsed properties.xml document. The core only
// consumes Fallbacks and the TemplateOnly filter of Properties; Options,
// Requires and Buttons are preserved for completeness and for the
// out-of-scope management dialog.
type PropertySchema struct {
	Properties map[string]PropertyDef
	Fallbacks  map[string]FallbackRule
	Buttons    map[string]ButtonDef
}

// NewPropertySchema returns an empty schema (the default when
// properties.xml is absent).
func NewPropertySchema() *PropertySchema {
	return &PropertySchema{
		Properties: map[string]PropertyDef{},
		Fallbacks:  map[string]FallbackRule{},
		Buttons:    map[string]ButtonDef{},
	}
}
