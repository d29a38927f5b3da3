package model

import "github.com/yaoapp/skinshortcuts/xmlnode"

// BuildMode names how a Template iterates input (§4.8).
type BuildMode string

// Template build modes.
const (
	BuildMenu BuildMode = "MENU"
	BuildList BuildMode = "LIST"
	BuildRaw  BuildMode = "RAW"
)

// TemplateOnlyMode controls whether a Template contributes an <include>
// element, independent of whether its variables are emitted.
type TemplateOnlyMode string

// Template-only modes.
const (
	TemplateOnlyNone TemplateOnlyMode = "none"
	TemplateOnlyTrue TemplateOnlyMode = "true"
	TemplateOnlyAuto TemplateOnlyMode = "auto"
)

// PropertyValueKind distinguishes a TemplateProperty's literal value from
// a from_source lookup — modeled as a tagged union rather than relying on
// zero-value field presence (§9 "variant properties").
type PropertyValueKind int

// Property value kinds.
const (
	ValueLiteral PropertyValueKind = iota
	ValueFromSource
)

// TemplateProperty is one property assignment inside a Template or
// PropertyGroup.
type TemplateProperty struct {
	Name       string
	Condition  string
	Kind       PropertyValueKind
	Literal    string
	FromSource string
}

// VarCase is one (condition, value) pair of a TemplateVar; the first
// matching case wins, and a trailing empty-condition case is the default.
type VarCase struct {
	Condition string
	Value     string
}

// TemplateVar is a context variable resolved by walking its cases in
// order.
type TemplateVar struct {
	Name  string
	Cases []VarCase
}

// PresetRow is one row of a Preset: a condition guarding a set of
// attribute assignments.
type PresetRow struct {
	Condition string
	Attrs     map[string]string
}

// Preset is an ordered, conditioned lookup table.
type Preset struct {
	Name string
	Rows []PresetRow
}

// PropertyGroup is a named bundle of property and var assignments,
// referenced with an optional suffix and condition.
type PropertyGroup struct {
	Name       string
	Properties []TemplateProperty
	Vars       []TemplateVar
}

// Ref is a named reference carrying the optional suffix/condition
// attributes shared by preset, property-group and variable-group
// references.
type Ref struct {
	Name      string
	Suffix    string
	Condition string
}

// IncludeDefinition is a reusable XML fragment spliced by
// <skinshortcuts include="NAME"/> (an input-side include, distinct from
// the output <include> elements C9 emits).
type IncludeDefinition struct {
	Name string
	Body *xmlnode.Node
}

// VariableDefinition is one named host-runtime conditional value.
type VariableDefinition struct {
	Name      string
	Body      *xmlnode.Node
	Output    string // output name template; empty means use Name
	Condition string
}

// VariableGroup bundles references to variables and to other groups,
// each suffix- and condition-tagged.
type VariableGroup struct {
	Name      string
	Variables []Ref
	Groups    []Ref
}

// TemplateParam is one RAW-mode $PARAM[name] declaration.
type TemplateParam struct {
	Name    string
	Default string
}

// Template is one <template> entry of templates.xml.
type Template struct {
	Include      string
	BuildMode    BuildMode
	IDPrefix     string
	Suffix       string
	TemplateOnly TemplateOnlyMode
	Conditions   []string // ANDed
	Menu         string   // optional MENU-mode single-menu filter

	Params []TemplateParam // RAW mode

	Properties  []TemplateProperty
	Vars        []TemplateVar
	GroupRefs   []Ref
	PresetRefs  []Ref
	VarGroupRefs []Ref

	ListItems []map[string]string // LIST mode literal rows

	Controls *xmlnode.Node
}

// SubmenuTemplate shares a Template's shape but iterates (parent item,
// submenu item) pairs instead of (menu, item) pairs.
type SubmenuTemplate struct {
	Template
}

// TemplateSchema is the parsed templates.xml document.
type TemplateSchema struct {
	Expressions      map[string]string
	Presets          map[string]*Preset
	PropertyGroups   map[string]*PropertyGroup
	Includes         map[string]*IncludeDefinition
	Variables        map[string]*VariableDefinition
	VariableGroups   map[string]*VariableGroup
	Templates        []*Template
	SubmenuTemplates []*SubmenuTemplate
}

// NewTemplateSchema returns an empty schema (the default when
// templates.xml is absent).
func NewTemplateSchema() *TemplateSchema {
	return &TemplateSchema{
		Expressions:    map[string]string{},
		Presets:        map[string]*Preset{},
		PropertyGroups: map[string]*PropertyGroup{},
		Includes:       map[string]*IncludeDefinition{},
		Variables:      map[string]*VariableDefinition{},
		VariableGroups: map[string]*VariableGroup{},
	}
}
