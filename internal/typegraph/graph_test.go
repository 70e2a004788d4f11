package typegraph_test

import (
	"errors"
	"testing"

	"github.com/zigadel/openxr-zig/internal/diag"
	"github.com/zigadel/openxr-zig/internal/registry"
	"github.com/zigadel/openxr-zig/internal/typegraph"
)

func makeReg(decls ...*registry.TypeDecl) *registry.Registry {
	reg := &registry.Registry{
		TypeIndex:    make(map[string]int),
		EnumIndex:    make(map[string]int),
		CommandIndex: make(map[string]int),
	}
	for i, d := range decls {
		reg.Types = append(reg.Types, d)
		reg.TypeIndex[d.Name] = i
	}
	return reg
}

func structOf(name string, members ...registry.StructField) *registry.TypeDecl {
	return &registry.TypeDecl{
		Name:   name,
		Kind:   registry.KindStruct,
		Struct: &registry.StructType{Members: members},
	}
}

func valueField(name, typ string) registry.StructField {
	return registry.StructField{Name: name, Type: typ}
}

func pointerField(name, typ string) registry.StructField {
	return registry.StructField{
		Name:    name,
		Type:    typ,
		Pointer: registry.PointerInfo{Pointer: true, PtrDepth: 1},
	}
}

func position(t *testing.T, ord *typegraph.Order, name string) int {
	t.Helper()
	for i, d := range ord.Decls {
		if d.Name == name {
			return i
		}
	}
	t.Fatalf("%s missing from order", name)
	return -1
}

func TestResolve_ValueDependencyOrders(t *testing.T) {
	// XrOuter embeds XrInner by value but is declared first.
	reg := makeReg(
		structOf("XrOuter", valueField("inner", "XrInner")),
		structOf("XrInner", valueField("x", "float")),
	)
	ord, err := typegraph.Resolve(reg, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if position(t, ord, "XrInner") > position(t, ord, "XrOuter") {
		t.Error("value dependency XrInner must precede XrOuter")
	}
}

func TestResolve_PointerMemberDoesNotOrder(t *testing.T) {
	reg := makeReg(
		structOf("XrFirst", pointerField("ref", "XrSecond")),
		structOf("XrSecond", valueField("x", "float")),
	)
	ord, err := typegraph.Resolve(reg, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	// No hard edge: declaration order is preserved.
	if position(t, ord, "XrFirst") > position(t, ord, "XrSecond") {
		t.Error("pointer member must not reorder declarations")
	}
}

func TestResolve_DeterministicOrder(t *testing.T) {
	reg := makeReg(
		structOf("XrC", valueField("x", "float")),
		structOf("XrA", valueField("x", "float")),
		structOf("XrB", valueField("x", "float")),
	)
	ord, err := typegraph.Resolve(reg, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	for i, want := range []string{"XrC", "XrA", "XrB"} {
		if ord.Decls[i].Name != want {
			t.Fatalf("order[%d] = %s, want %s (declaration-order tie-break)", i, ord.Decls[i].Name, want)
		}
	}
}

func TestResolve_AliasCollapse(t *testing.T) {
	reg := makeReg(
		structOf("XrTargetEXT", valueField("x", "float")),
		&registry.TypeDecl{Name: "XrTarget", Kind: registry.KindAlias, Alias: "XrTargetEXT"},
		&registry.TypeDecl{Name: "XrTargetOld", Kind: registry.KindAlias, Alias: "XrTarget"},
	)
	reg.Features = []*registry.Feature{{
		Name:    "XR_VERSION_1_0",
		Require: registry.RequireSet{Types: []string{"XrTarget"}},
	}}

	ord, err := typegraph.Resolve(reg, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got := ord.CanonicalName("XrTargetOld"); got != "XrTargetEXT" {
		t.Errorf("CanonicalName(XrTargetOld) = %q, want XrTargetEXT", got)
	}
	// The core-promoted spelling wins over the extension spelling.
	if got := ord.EmitName("XrTargetEXT"); got != "XrTarget" {
		t.Errorf("EmitName(XrTargetEXT) = %q, want XrTarget", got)
	}
}

func TestResolve_CyclicDependency(t *testing.T) {
	reg := makeReg(
		structOf("XrX", valueField("y", "XrY")),
		structOf("XrY", valueField("x", "XrX")),
	)
	_, err := typegraph.Resolve(reg, nil)
	var tagged *diag.Error
	if !errors.As(err, &tagged) || tagged.Code != diag.ResCyclicTypeDep {
		t.Fatalf("want ResCyclicTypeDep, got %v", err)
	}
}

func TestResolve_AliasCycle(t *testing.T) {
	reg := makeReg(
		&registry.TypeDecl{Name: "XrA", Kind: registry.KindAlias, Alias: "XrB"},
		&registry.TypeDecl{Name: "XrB", Kind: registry.KindAlias, Alias: "XrA"},
	)
	_, err := typegraph.Resolve(reg, nil)
	var tagged *diag.Error
	if !errors.As(err, &tagged) || tagged.Code != diag.ResAliasCycle {
		t.Fatalf("want ResAliasCycle, got %v", err)
	}
}
