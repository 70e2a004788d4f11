package emit

import "github.com/zigadel/openxr-zig/internal/registry"

// emitAggregates walks the resolver order once and prints base
// typedefs, structs, unions and function pointer types. The order
// already places value-typed dependencies first, so the output reads
// top-down like the hand-written headers do.
func (e *Emitter) emitAggregates() {
	for _, decl := range e.ord.Decls {
		switch decl.Kind {
		case registry.KindBase:
			e.emitBase(decl)
		case registry.KindStruct:
			e.emitStruct(decl)
		case registry.KindUnion:
			e.emitUnion(decl)
		case registry.KindFuncPointer:
			e.emitFuncPointer(decl)
		}
	}
}

func (e *Emitter) emitBase(decl *registry.TypeDecl) {
	// The version typedef is replaced by the packed struct in the
	// preamble; foreign platform types stay opaque references.
	if decl.Name == "XrVersion" || decl.Base.Foreign {
		return
	}
	underlying, ok := cScalars[decl.Base.CType]
	if !ok {
		underlying = e.typeRef(decl.Base.CType)
	}
	e.linef("pub const %s = %s;", e.typeName(decl.Name), underlying)
	e.blank()
}

func (e *Emitter) emitStruct(decl *registry.TypeDecl) {
	name := e.typeName(decl.Name)
	st := decl.Struct
	pure := e.isPureData(decl)

	e.linef("pub const %s = extern struct {", name)
	for i := range st.Members {
		m := &st.Members[i]
		field := e.fieldName(m.Name)
		typ := e.memberRef(m)
		switch {
		case m.Values != "":
			e.linef("    %s: %s = .%s,", field, typ, e.enumFieldName("XrStructureType", m.Values))
		case m.Name == "next":
			e.linef("    %s: %s = null,", field, typ)
		case pure:
			e.linef("    %s: %s = %s,", field, typ, zeroValue(m, typ))
		default:
			e.linef("    %s: %s,", field, typ)
		}
	}

	if st.StructureType != "" {
		e.blank()
		e.linef("    pub fn empty() %s {", name)
		e.linef("        var value: %s = undefined;", name)
		for i := range st.Members {
			m := &st.Members[i]
			switch {
			case m.Values != "":
				e.linef("        value.%s = .%s;", e.fieldName(m.Name), e.enumFieldName("XrStructureType", m.Values))
			case m.Name == "next":
				e.linef("        value.%s = null;", e.fieldName(m.Name))
			}
		}
		e.line("        return value;")
		e.line("    }")
	}
	e.line("};")
	e.blank()
}

func (e *Emitter) emitUnion(decl *registry.TypeDecl) {
	e.linef("pub const %s = extern union {", e.typeName(decl.Name))
	for i := range decl.Struct.Members {
		m := &decl.Struct.Members[i]
		e.linef("    %s: %s,", e.fieldName(m.Name), e.memberRef(m))
	}
	e.line("};")
	e.blank()
}

func (e *Emitter) emitFuncPointer(decl *registry.TypeDecl) {
	fp := decl.FuncPtr
	params := make([]byte, 0, 64)
	for i := range fp.Params {
		p := &fp.Params[i]
		if i > 0 {
			params = append(params, ", "...)
		}
		params = append(params, e.fieldName(p.Name)...)
		params = append(params, ": "...)
		params = append(params, e.pointerRef(p.Type, &p.Pointer, refParam)...)
	}
	ret := "void"
	if fp.ReturnType != "" && fp.ReturnType != "void" {
		ret = e.typeRef(fp.ReturnType)
	}
	e.linef("pub const %s = ?*const fn (%s) callconv(.c) %s;",
		e.typeName(decl.Name), params, ret)
	e.blank()
}

// isPureData reports whether every member is a plain numeric scalar,
// a fixed array of one, or a nested pure-data struct. Such structs are
// math aggregates and default to zero.
func (e *Emitter) isPureData(decl *registry.TypeDecl) bool {
	if decl.Kind != registry.KindStruct || decl.Struct.StructureType != "" {
		return false
	}
	for i := range decl.Struct.Members {
		m := &decl.Struct.Members[i]
		if m.Pointer.Pointer {
			return false
		}
		if numericScalar(m.Type) {
			continue
		}
		nested, ok := e.reg.LookupType(e.ord.CanonicalName(m.Type))
		if !ok || !e.isPureData(nested) {
			return false
		}
	}
	return true
}

func numericScalar(typ string) bool {
	switch typ {
	case "float", "double", "int8_t", "uint8_t", "int16_t", "uint16_t",
		"int32_t", "uint32_t", "int64_t", "uint64_t", "size_t", "int":
		return true
	}
	return false
}

// zeroValue renders the zero default for a pure-data member.
func zeroValue(m *registry.StructField, typ string) string {
	if m.Pointer.Mult == registry.MultFixedArray {
		return "std.mem.zeroes(" + typ + ")"
	}
	if numericScalar(m.Type) {
		return "0"
	}
	return ".{}"
}
