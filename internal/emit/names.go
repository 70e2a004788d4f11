package emit

import (
	"strings"

	"github.com/zigadel/openxr-zig/internal/render"
)

// apiPrefix is the registry's namespace prefix, dropped from every
// emitted name since the bindings form their own namespace.
const apiPrefix = "Xr"

// constPrefix is the screaming-snake spelling of the namespace prefix.
const constPrefix = "XR_"

// funcPointerPrefix marks function pointer typedef names.
const funcPointerPrefix = "PFN_xr"

// typeName renders a registry type name as the emitted Zig type
// identifier: namespace prefix stripped, title camel, vendor tag kept.
func (e *Emitter) typeName(raw string) string {
	raw = e.ord.EmitName(e.ord.CanonicalName(raw))
	if strings.HasPrefix(raw, funcPointerPrefix) {
		return e.render("Pfn"+strings.TrimPrefix(raw, funcPointerPrefix), render.TitleCamel)
	}
	return e.render(strings.TrimPrefix(raw, apiPrefix), render.TitleCamel)
}

// commandName renders a raw command like xrCreateSession as the
// wrapper method name createSession.
func (e *Emitter) commandName(raw string) string {
	return e.render(strings.TrimPrefix(raw, "xr"), render.Camel)
}

// fieldName renders a struct member or parameter name.
func (e *Emitter) fieldName(raw string) string {
	return e.render(raw, render.Snake)
}

// constantName renders an API constant name without the namespace
// prefix, keeping the screaming-snake spelling.
func (e *Emitter) constantName(raw string) string {
	return e.render(strings.TrimPrefix(raw, constPrefix), render.ScreamingSnake)
}

// enumFieldName renders one enum value as a field of its enum type:
// the shared value prefix is stripped so .instance_create_info stands
// in for XR_TYPE_INSTANCE_CREATE_INFO.
func (e *Emitter) enumFieldName(enumName, valueName string) string {
	trimmed := strings.TrimPrefix(valueName, enumValuePrefix(enumName))
	trimmed = strings.TrimPrefix(trimmed, constPrefix)
	return e.fieldName(trimmed)
}

// flagBitName renders one bit value as a flag aggregate field name,
// dropping the shared prefix and the _BIT marker.
func (e *Emitter) flagBitName(enumName, valueName string) string {
	trimmed := strings.TrimPrefix(valueName, enumValuePrefix(enumName))
	trimmed = strings.TrimPrefix(trimmed, constPrefix)
	if i := strings.LastIndex(trimmed, "_BIT"); i >= 0 {
		trimmed = trimmed[:i] + trimmed[i+len("_BIT"):]
	}
	return e.fieldName(trimmed)
}

// errorName renders a result value as a Zig error: the XR_ERROR_ or
// XR_ prefix is dropped and the remainder is title-cased.
func (e *Emitter) errorName(valueName string) string {
	trimmed := strings.TrimPrefix(valueName, "XR_ERROR_")
	trimmed = strings.TrimPrefix(trimmed, constPrefix)
	return e.render(trimmed, render.TitleCamel)
}

// enumValuePrefix derives the screaming-snake prefix shared by an
// enum's values. The structure-type enum is the one irregular case:
// its values spell XR_TYPE_, not XR_STRUCTURE_TYPE_.
func enumValuePrefix(enumName string) string {
	name := strings.TrimSuffix(enumName, "FlagBits")
	if name == "XrStructureType" {
		return "XR_TYPE_"
	}
	var sb strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' && i > 0 {
			sb.WriteByte('_')
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('_')
	return sb.String()
}
