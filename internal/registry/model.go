package registry

import (
	"github.com/zigadel/openxr-zig/internal/source"
)

// Registry is the immutable in-memory model of one registry document.
// It is built once by Parse and never mutated afterward; structural
// sharing across emission stages is safe.
type Registry struct {
	Tags []Tag

	Types     []*TypeDecl // declaration order
	TypeIndex map[string]int

	Enums     []*EnumDecl
	EnumIndex map[string]int

	Commands     []*CommandDecl
	CommandIndex map[string]int

	Constants []Constant

	Features   []*Feature
	Extensions []*Extension

	// APIVersion is the current version define, when the registry
	// declares one.
	APIVersion Version
}

// Tag is one author/vendor tag from the tag table. Order matches the
// registry document.
type Tag struct {
	Name    string
	Author  string
	Contact string
}

// Version is a packed major/minor/patch API version.
type Version struct {
	Major uint16
	Minor uint16
	Patch uint32
}

// Pack encodes the version the way the C API does: major and minor in
// the top 32 bits, patch in the bottom 32.
func (v Version) Pack() uint64 {
	return uint64(v.Major)<<48 | uint64(v.Minor)<<32 | uint64(v.Patch)
}

type TypeKind uint8

const (
	// KindAlias renames an existing declaration; Alias holds the target.
	KindAlias TypeKind = iota
	// KindBase is a primitive typedef or an external platform type.
	KindBase
	// KindHandle is an opaque handle, wide (dispatchable) or narrow (atom).
	KindHandle
	// KindBitmask is a flags typedef with an optional bit-value enum.
	KindBitmask
	KindStruct
	KindUnion
	KindFuncPointer
)

func (k TypeKind) String() string {
	switch k {
	case KindAlias:
		return "alias"
	case KindBase:
		return "basetype"
	case KindHandle:
		return "handle"
	case KindBitmask:
		return "bitmask"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindFuncPointer:
		return "funcpointer"
	}
	return "unknown"
}

// TypeDecl is a closed tagged variant over declaration categories.
// Exactly the payload matching Kind is populated; emission sites switch
// exhaustively on Kind.
type TypeDecl struct {
	Name string
	Kind TypeKind
	Span source.Span

	Alias   string           // KindAlias: target declaration name
	Base    *BaseType        // KindBase
	Handle  *HandleType      // KindHandle
	Bitmask *BitmaskType     // KindBitmask
	Struct  *StructType      // KindStruct, KindUnion
	FuncPtr *FuncPointerType // KindFuncPointer
}

// BaseType is a primitive typedef (XrBool32, XrTime, ...) or a foreign
// platform type pulled in by an extension header.
type BaseType struct {
	// CType is the underlying C spelling, empty for foreign types.
	CType string
	// Foreign marks types declared only by reference to an external
	// header (VkInstance, Display, ...).
	Foreign bool
}

// HandleType is an opaque handle declaration.
type HandleType struct {
	// Dispatchable handles are passed to the loader dispatch table and
	// are pointer-wide; atoms are plain 64-bit resource names.
	Dispatchable bool
	Parent       string // owning handle, empty for the root handle
}

// BitmaskType is a flags typedef.
type BitmaskType struct {
	// Width of the underlying flags integer in bits (64 for XrFlags64).
	Width uint8
	// BitsEnum names the enum block declaring the individual bits;
	// empty when the registry reserves the type without any bits.
	BitsEnum string
}

// StructType describes struct and union declarations.
type StructType struct {
	Members       []StructField
	Extends       []string // structextends targets
	ParentStruct  string   // base struct for polymorphic chains
	ReturnedOnly  bool
	StructureType string // canonical discriminant tag, when members declare one
}

// StructField is one member of a struct or union.
type StructField struct {
	Name    string
	Type    string
	Pointer PointerInfo
	// Values is the canonical discriminant tag for a "type" member.
	Values string
	Span   source.Span
}

// Multiplicity classifies how many items a declarator denotes.
type Multiplicity uint8

const (
	MultSingle Multiplicity = iota
	MultFixedArray
	MultLengthLinked
	MultNullTerminated
)

// PointerInfo carries nullability, constness and multiplicity for a
// member or parameter, straight from the registry.
type PointerInfo struct {
	Pointer  bool
	PtrDepth uint8 // 1 for *, 2 for **
	Const    bool
	Optional bool
	Mult     Multiplicity
	// FixedSize is the array extent (number or constant name) for
	// MultFixedArray.
	FixedSize string
	// LenRef names the linked length member/parameter for
	// MultLengthLinked.
	LenRef string
}

// FuncPointerType is a function pointer typedef.
type FuncPointerType struct {
	ReturnType string
	Params     []FuncParam
}

// FuncParam is one parameter of a function pointer type.
type FuncParam struct {
	Name    string
	Type    string
	Pointer PointerInfo
}

// EnumKind distinguishes plain enumerations from bit-position blocks.
type EnumKind uint8

const (
	EnumPlain EnumKind = iota
	EnumBitmask
)

// EnumDecl is one enums block.
type EnumDecl struct {
	Name   string
	Kind   EnumKind
	Values []EnumValue
	Span   source.Span
}

// EnumValue is one declared value. Exactly one of Value/BitPos is
// meaningful, selected by IsBitPos; aliases carry AliasOf instead.
type EnumValue struct {
	Name     string
	Value    int64
	BitPos   uint8
	IsBitPos bool
	// Origin is empty for core values, otherwise the name of the
	// contributing feature or extension block.
	Origin  string
	AliasOf string
	Span    source.Span
}

// Constant is one API constant from the registry's constant block.
type Constant struct {
	Name  string
	Value string // literal spelling, preserved verbatim
	Type  string
	Span  source.Span
}

// CommandDecl is one raw command signature.
type CommandDecl struct {
	Name   string
	Params []CommandParam
	// ReturnType is the result enumeration name, or "void".
	ReturnType   string
	SuccessCodes []string
	ErrorCodes   []string
	// AliasOf names the canonical command for promoted aliases.
	AliasOf string
	Span    source.Span
}

// CommandParam is one raw parameter.
type CommandParam struct {
	Name    string
	Type    string
	Pointer PointerInfo
	Span    source.Span
}

// Feature is one core API feature block.
type Feature struct {
	Name    string
	Number  string
	Require RequireSet
	Span    source.Span
}

// Extension is one vendor extension block.
type Extension struct {
	Name string
	// Tag is the vendor tag segment of the extension name.
	Tag       string
	Number    int
	Type      string // "instance" or empty
	Supported string
	Require   RequireSet
	Span      source.Span
}

// RequireSet lists the declarations a feature or extension contributes
// or depends on.
type RequireSet struct {
	Types    []string
	Commands []string
	Enums    []ExtensionEnum
}

// ExtensionEnum is one enum addition or constant inside a require
// block. Additions extending a core enum carry Extends plus exactly one
// of Value/BitPos/Offset.
type ExtensionEnum struct {
	Name    string
	Extends string
	Value   string
	BitPos  int8 // -1 when absent
	Offset  int16
	HasOff  bool
	Negated bool // dir="-1"
	// ExtNumber overrides the enclosing extension number in the offset
	// formula. Feature-level additions have no enclosing number and
	// always carry it.
	ExtNumber int
	HasExtNum bool
	AliasOf   string
	Span      source.Span
}

// LookupType returns the declaration for name, if any.
func (r *Registry) LookupType(name string) (*TypeDecl, bool) {
	i, ok := r.TypeIndex[name]
	if !ok {
		return nil, false
	}
	return r.Types[i], true
}

// LookupEnum returns the enums block for name, if any.
func (r *Registry) LookupEnum(name string) (*EnumDecl, bool) {
	i, ok := r.EnumIndex[name]
	if !ok {
		return nil, false
	}
	return r.Enums[i], true
}

// LookupCommand returns the command for name, if any.
func (r *Registry) LookupCommand(name string) (*CommandDecl, bool) {
	i, ok := r.CommandIndex[name]
	if !ok {
		return nil, false
	}
	return r.Commands[i], true
}

// TagNames returns the tag table as plain strings, in registry order.
func (r *Registry) TagNames() []string {
	out := make([]string, len(r.Tags))
	for i, t := range r.Tags {
		out[i] = t.Name
	}
	return out
}
