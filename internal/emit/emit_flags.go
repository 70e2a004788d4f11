package emit

import (
	"fmt"

	"github.com/zigadel/openxr-zig/internal/registry"
)

// emitFlags prints every flags typedef as a packed bool struct over
// its declared storage width. Undeclared positions become reserved
// filler bits so conversion to and from the raw integer is lossless.
func (e *Emitter) emitFlags() {
	for _, decl := range e.decls(registry.KindBitmask) {
		e.emitFlagStruct(decl)
	}
}

func (e *Emitter) emitFlagStruct(decl *registry.TypeDecl) {
	name := e.typeName(decl.Name)
	width := decl.Bitmask.Width
	backing := fmt.Sprintf("u%d", width)

	fields := make([]string, width)
	var declared uint64
	if decl.Bitmask.BitsEnum != "" {
		for _, v := range e.reg.EnumWithExtensions(decl.Bitmask.BitsEnum) {
			if !v.IsBitPos || v.AliasOf != "" || v.BitPos >= width {
				continue
			}
			if fields[v.BitPos] != "" {
				continue
			}
			fields[v.BitPos] = e.flagBitName(decl.Bitmask.BitsEnum, v.Name)
			declared |= uint64(1) << v.BitPos
		}
	}

	e.linef("pub const %s = packed struct(%s) {", name, backing)
	for pos, field := range fields {
		if field == "" {
			field = fmt.Sprintf("_reserved_bit_%d", pos)
		}
		e.linef("    %s: bool = false,", field)
	}
	e.blank()
	e.linef("    const declared_bits: %s = 0x%x;", backing, declared)
	e.blank()
	e.linef("    pub fn toInt(self: %s) %s {", name, backing)
	e.line("        return @bitCast(self);")
	e.line("    }")
	e.blank()
	e.linef("    pub fn fromInt(value: %s) %s {", backing, name)
	e.line("        return @bitCast(value);")
	e.line("    }")
	e.blank()
	e.linef("    pub fn merge(lhs: %s, rhs: %s) %s {", name, name, name)
	e.line("        return fromInt(lhs.toInt() | rhs.toInt());")
	e.line("    }")
	e.blank()
	e.linef("    pub fn intersect(lhs: %s, rhs: %s) %s {", name, name, name)
	e.line("        return fromInt(lhs.toInt() & rhs.toInt());")
	e.line("    }")
	e.blank()
	e.linef("    pub fn subtract(lhs: %s, rhs: %s) %s {", name, name, name)
	e.line("        return fromInt(lhs.toInt() & ~rhs.toInt());")
	e.line("    }")
	e.blank()
	e.linef("    pub fn complement(self: %s) %s {", name, name)
	e.line("        return fromInt(~self.toInt() & declared_bits);")
	e.line("    }")
	e.blank()
	e.linef("    pub fn contains(self: %s, other: %s) bool {", name, name)
	e.line("        return intersect(self, other).toInt() == other.toInt();")
	e.line("    }")
	e.line("};")
	e.blank()
}
