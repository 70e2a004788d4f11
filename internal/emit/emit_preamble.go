package emit

import "strings"

// emitPreamble prints the file header plus the version type every
// later section may reference.
func (e *Emitter) emitPreamble() {
	e.line("//! OpenXR bindings generated from the machine-readable registry.")
	e.line("//! Handles are distinct enum types, flag masks are packed structs")
	e.line("//! and commands are exposed through loader-built dispatch tables.")
	e.blank()
	e.line("const std = @import(\"std\");")
	e.blank()
	e.line("pub const Version = packed struct(u64) {")
	e.line("    patch: u32 = 0,")
	e.line("    minor: u16,")
	e.line("    major: u16,")
	e.blank()
	e.line("    pub fn toInt(self: Version) u64 {")
	e.line("        return @bitCast(self);")
	e.line("    }")
	e.blank()
	e.line("    pub fn fromInt(value: u64) Version {")
	e.line("        return @bitCast(value);")
	e.line("    }")
	e.line("};")
	e.blank()
}

// emitConstants prints the current API version and the registry's
// constant block.
func (e *Emitter) emitConstants() {
	v := e.reg.APIVersion
	e.linef("pub const CURRENT_API_VERSION = Version{ .major = %d, .minor = %d, .patch = %d };",
		v.Major, v.Minor, v.Patch)
	e.blank()

	for _, c := range e.reg.Constants {
		e.linef("pub const %s = %s;", e.constantName(c.Name), constantValue(c.Value))
	}
	if len(e.reg.Constants) > 0 {
		e.blank()
	}
}

// emitExtensionInfo prints the per-extension revision and name
// constants contributed by require blocks.
func (e *Emitter) emitExtensionInfo() {
	wrote := false
	for _, ext := range e.reg.Extensions {
		if ext.Supported == "disabled" {
			continue
		}
		for _, ee := range ext.Require.Enums {
			if ee.Extends != "" || ee.Value == "" {
				continue
			}
			if !strings.HasSuffix(ee.Name, "_SPEC_VERSION") && !strings.HasSuffix(ee.Name, "_EXTENSION_NAME") {
				continue
			}
			e.linef("pub const %s = %s;", e.constantName(ee.Name), constantValue(ee.Value))
			wrote = true
		}
	}
	if wrote {
		e.blank()
	}
}

// constantValue rewrites a C constant literal as a Zig literal: the
// grouping parentheses and integer/float suffixes go away, the digits
// stay untouched.
func constantValue(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	if strings.HasPrefix(s, "\"") {
		return s
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strings.TrimRight(s, "uUlL")
	}
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "fF")
	}
	return strings.TrimRight(s, "uUlL")
}
