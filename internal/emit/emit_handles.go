package emit

import "github.com/zigadel/openxr-zig/internal/registry"

// emitHandles prints every handle as a distinct non-exhaustive enum so
// handles of different kinds cannot be mixed up. Dispatchable handles
// are pointer wide, atoms are fixed 64-bit names.
func (e *Emitter) emitHandles() {
	for _, decl := range e.decls(registry.KindHandle) {
		backing := "u64"
		if decl.Handle.Dispatchable {
			backing = "usize"
		}
		e.linef("pub const %s = enum(%s) {", e.typeName(decl.Name), backing)
		e.line("    null_handle = 0,")
		e.line("    _,")
		e.line("};")
		e.blank()
	}
}
