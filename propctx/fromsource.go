package propctx

import (
	"strconv"
	"strings"

	"github.com/yaoapp/skinshortcuts/condition"
	"github.com/yaoapp/skinshortcuts/model"
)

var builtinNames = map[string]bool{
	"index": true, "name": true, "menu": true, "id": true, "idprefix": true,
}

// ResolveFromSource implements §4.7.1: bracket/dot preset lookup, then
// built-ins, then context, then item properties, then "".
func ResolveFromSource(name string, ctx map[string]string, item *model.MenuItem, templates *model.TemplateSchema) string {
	if presetName, attr, ok := splitPresetRef(name); ok && templates != nil {
		if preset, found := templates.Presets[presetName]; found {
			for _, row := range preset.Rows {
				if !condition.Evaluate(row.Condition, ctx) {
					continue
				}
				if v, ok := row.Attrs[attr]; ok {
					return v
				}
				return ""
			}
		}
		return ""
	}

	if builtinNames[name] {
		return ctx[name]
	}

	if v, ok := ctx[name]; ok {
		return v
	}
	if v, ok := item.Properties[name]; ok {
		return v
	}
	return ""
}

// splitPresetRef recognizes "preset[attr]" or "preset.attr" and returns
// (preset, attr, true); anything else returns ("", "", false).
func splitPresetRef(name string) (string, string, bool) {
	if idx := strings.Index(name, "["); idx > 0 && strings.HasSuffix(name, "]") {
		return name[:idx], name[idx+1 : len(name)-1], true
	}
	if idx := strings.LastIndex(name, "."); idx > 0 {
		// A dotted numeric suffix segment (identifiers may carry trailing
		// .N) is not a preset reference.
		if _, err := strconv.Atoi(name[idx+1:]); err == nil {
			return "", "", false
		}
		return name[:idx], name[idx+1:], true
	}
	return "", "", false
}
