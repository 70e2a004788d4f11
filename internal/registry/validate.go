package registry

import (
	"github.com/zigadel/openxr-zig/internal/diag"
)

// cBuiltins are the C spellings the registry may reference without
// declaring them.
var cBuiltins = map[string]bool{
	"void": true, "char": true, "float": true, "double": true,
	"int8_t": true, "uint8_t": true, "int16_t": true, "uint16_t": true,
	"int32_t": true, "uint32_t": true, "int64_t": true, "uint64_t": true,
	"size_t": true, "uintptr_t": true, "intptr_t": true, "int": true,
	"wchar_t": true,
}

// validate checks that every referenced type resolves to a declaration,
// a known enumeration, or a C builtin. The first dangling reference
// aborts the run.
func (p *parser) validate() error {
	for _, decl := range p.reg.Types {
		switch decl.Kind {
		case KindAlias:
			if !p.resolves(decl.Alias) {
				return p.errorf(diag.RegDanglingTypeRef, decl.Span,
					"alias '%s' targets undeclared '%s'", decl.Name, decl.Alias)
			}
		case KindBitmask:
			if decl.Bitmask.BitsEnum != "" && !p.resolves(decl.Bitmask.BitsEnum) {
				return p.errorf(diag.RegDanglingTypeRef, decl.Span,
					"bitmask '%s' references undeclared bits enum '%s'",
					decl.Name, decl.Bitmask.BitsEnum)
			}
		case KindStruct, KindUnion:
			for _, m := range decl.Struct.Members {
				if !p.resolves(m.Type) {
					return p.errorf(diag.RegDanglingTypeRef, m.Span,
						"member '%s.%s' references undeclared type '%s'",
						decl.Name, m.Name, m.Type)
				}
			}
		case KindFuncPointer:
			for _, param := range decl.FuncPtr.Params {
				if !p.resolves(param.Type) {
					return p.errorf(diag.RegDanglingTypeRef, decl.Span,
						"funcpointer '%s' references undeclared type '%s'",
						decl.Name, param.Type)
				}
			}
		case KindBase, KindHandle:
			// Leaf declarations reference nothing.
		}
	}

	for _, cmd := range p.reg.Commands {
		if cmd.AliasOf != "" {
			if _, ok := p.reg.CommandIndex[cmd.AliasOf]; !ok {
				return p.errorf(diag.RegDanglingTypeRef, cmd.Span,
					"command alias '%s' targets undeclared '%s'", cmd.Name, cmd.AliasOf)
			}
			continue
		}
		if cmd.ReturnType != "void" && !p.resolves(cmd.ReturnType) {
			return p.errorf(diag.RegDanglingTypeRef, cmd.Span,
				"command '%s' returns undeclared type '%s'", cmd.Name, cmd.ReturnType)
		}
		for _, param := range cmd.Params {
			if !p.resolves(param.Type) {
				return p.errorf(diag.RegDanglingTypeRef, param.Span,
					"parameter '%s' of '%s' references undeclared type '%s'",
					param.Name, cmd.Name, param.Type)
			}
		}
	}
	return nil
}

func (p *parser) resolves(name string) bool {
	if name == "" {
		return false
	}
	if _, ok := p.reg.TypeIndex[name]; ok {
		return true
	}
	if _, ok := p.reg.EnumIndex[name]; ok {
		return true
	}
	return p.enumTypes[name] || cBuiltins[name]
}
