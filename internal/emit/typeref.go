package emit

import (
	"strings"

	"github.com/zigadel/openxr-zig/internal/registry"
)

// cScalars maps registry C spellings onto Zig scalar types.
var cScalars = map[string]string{
	"char":      "u8",
	"float":     "f32",
	"double":    "f64",
	"int8_t":    "i8",
	"uint8_t":   "u8",
	"int16_t":   "i16",
	"uint16_t":  "u16",
	"int32_t":   "i32",
	"uint32_t":  "u32",
	"int64_t":   "i64",
	"uint64_t":  "u64",
	"size_t":    "usize",
	"uintptr_t": "usize",
	"intptr_t":  "isize",
	"int":       "c_int",
}

// typeRef renders a bare (non-pointer) type reference.
func (e *Emitter) typeRef(name string) string {
	if z, ok := cScalars[name]; ok {
		return z
	}
	if name == "void" {
		return "anyopaque"
	}
	canon := e.ord.CanonicalName(name)
	if decl, ok := e.reg.LookupType(canon); ok && decl.Kind == registry.KindBase && decl.Base.Foreign {
		// Foreign platform types stay opaque; callers supply them
		// through pointers.
		return "anyopaque"
	}
	return e.typeName(canon)
}

// refKind controls nullability defaults for pointer rendering.
type refKind uint8

const (
	refMember refKind = iota
	refParam
	refNextChain
)

// memberRef renders a struct member's full type expression.
func (e *Emitter) memberRef(f *registry.StructField) string {
	if f.Name == "next" {
		return e.pointerRef(f.Type, &f.Pointer, refNextChain)
	}
	return e.pointerRef(f.Type, &f.Pointer, refMember)
}

// pointerRef renders a type reference together with its declarator
// shape: plain value, fixed array, single pointer, or unbounded
// many-item pointer for length-linked and null-terminated data.
func (e *Emitter) pointerRef(typ string, info *registry.PointerInfo, kind refKind) string {
	elem := e.typeRef(typ)

	if !info.Pointer {
		if info.Mult == registry.MultFixedArray {
			return "[" + e.arrayExtent(info.FixedSize) + "]" + elem
		}
		return elem
	}

	constPart := ""
	if info.Const {
		constPart = "const "
	}

	var sb strings.Builder
	// The next chain is always nullable regardless of what the
	// registry's optional attribute says.
	if info.Optional || kind == refNextChain || elem == "anyopaque" {
		sb.WriteByte('?')
	}

	switch {
	case info.Mult == registry.MultNullTerminated && typ == "char":
		sb.WriteString("[*:0]")
	case info.Mult == registry.MultLengthLinked || info.Mult == registry.MultNullTerminated:
		sb.WriteString("[*]")
	default:
		sb.WriteByte('*')
	}
	sb.WriteString(constPart)

	if info.PtrDepth > 1 {
		// Double pointers are arrays of strings or of opaque pointers.
		if typ == "char" {
			sb.WriteString("[*:0]const u8")
			return sb.String()
		}
		sb.WriteByte('*')
		sb.WriteString(constPart)
	}
	sb.WriteString(elem)
	return sb.String()
}

// arrayExtent renders a fixed-array extent, which is either a literal
// number or an API constant name.
func (e *Emitter) arrayExtent(extent string) string {
	if extent == "" {
		return "0"
	}
	if extent[0] >= '0' && extent[0] <= '9' {
		return extent
	}
	return e.constantName(extent)
}
