package model

import "fmt"

// ConfigErrorKind names which declarative file a ConfigError came from.
type ConfigErrorKind string

// Config error kinds, one per loader in package loader.
const (
	KindMenu       ConfigErrorKind = "menu"
	KindWidget     ConfigErrorKind = "widget"
	KindBackground ConfigErrorKind = "background"
	KindProperty   ConfigErrorKind = "property"
	KindTemplate   ConfigErrorKind = "template"
	KindView       ConfigErrorKind = "view"
)

// ConfigError is raised by a loader (C3) on a structurally invalid
// declarative file. Loader errors are fatal for the build.
type ConfigError struct {
	Kind    ConfigErrorKind
	File    string
	Line    int // 0 when unknown
	Message string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s config error: %s", e.File, e.Line, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s config error: %s", e.File, e.Kind, e.Message)
}

// NewConfigError builds a ConfigError. line may be 0 when unknown.
func NewConfigError(kind ConfigErrorKind, file string, line int, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Kind: kind, File: file, Line: line, Message: fmt.Sprintf(format, args...)}
}

// TemplateError is raised by the template processor (C8) or the
// view-expression builder (C10) at processing time.
type TemplateError struct {
	Template string
	Message  string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %q: %s", e.Template, e.Message)
}

// NewTemplateError builds a TemplateError.
func NewTemplateError(template, format string, args ...interface{}) *TemplateError {
	return &TemplateError{Template: template, Message: fmt.Sprintf(format, args...)}
}

// BuildError wraps an I/O or integration-level failure from the top-level
// build entry point.
type BuildError struct {
	Op  string
	Err error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build: %s: %v", e.Op, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// NewBuildError wraps err under the named operation.
func NewBuildError(op string, err error) *BuildError {
	return &BuildError{Op: op, Err: err}
}
