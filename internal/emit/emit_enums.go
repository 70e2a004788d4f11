package emit

import "github.com/zigadel/openxr-zig/internal/registry"

// emitEnums prints every plain enumeration, core values first, then
// extension-contributed ones. Alias spellings collapse onto their
// canonical value and repeated numeric values keep the first spelling,
// since the target language rejects duplicates.
func (e *Emitter) emitEnums() {
	for _, decl := range e.reg.Enums {
		if decl.Kind != registry.EnumPlain {
			continue
		}
		e.linef("pub const %s = enum(i32) {", e.typeName(decl.Name))

		seen := make(map[int64]bool)
		for _, v := range e.reg.EnumWithExtensions(decl.Name) {
			if v.AliasOf != "" || v.IsBitPos || seen[v.Value] {
				continue
			}
			seen[v.Value] = true
			e.linef("    %s = %d,", e.enumFieldName(decl.Name, v.Name), v.Value)
		}

		e.line("    _,")
		e.line("};")
		e.blank()
	}
}
