// Package typegraph alias-collapses and dependency-orders the type
// declarations of a parsed registry.
package typegraph

import (
	"github.com/zigadel/openxr-zig/internal/diag"
	"github.com/zigadel/openxr-zig/internal/registry"
)

// DeclID indexes a non-alias declaration inside the graph.
type DeclID uint32

// Order is the resolver output: every non-alias declaration in an
// emission order that places value-typed dependencies first.
type Order struct {
	Decls []*registry.TypeDecl

	// Canonical maps every declared name, including aliases, to the
	// terminal non-alias declaration name.
	Canonical map[string]string

	// Preferred maps a terminal name to the spelling that should be
	// emitted: the core-promoted spelling wins over an extension one.
	Preferred map[string]string
}

// CanonicalName resolves a type reference through the collapsed alias
// table. Unknown names (enums, C builtins) map to themselves.
func (o *Order) CanonicalName(name string) string {
	if c, ok := o.Canonical[name]; ok {
		return c
	}
	return name
}

// EmitName returns the spelling to emit for a terminal declaration.
func (o *Order) EmitName(name string) string {
	if p, ok := o.Preferred[name]; ok {
		return p
	}
	return name
}

// Resolve collapses aliases and topologically sorts the declarations.
// Fails fast with ResAliasCycle or ResCyclicTypeDep.
func Resolve(reg *registry.Registry, reporter diag.Reporter) (*Order, error) {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}

	ord := &Order{
		Canonical: make(map[string]string, len(reg.Types)),
		Preferred: make(map[string]string),
	}

	if err := collapseAliases(reg, ord, reporter); err != nil {
		return nil, err
	}

	g := buildGraph(reg, ord)
	sorted, cycle := toposort(g)
	if len(cycle) > 0 {
		first := g.decls[cycle[0]]
		err := diag.Errorf(reporter, diag.ResCyclicTypeDep, first.Span,
			"cyclic value dependency involving '%s' and %d other type(s)",
			first.Name, len(cycle)-1)
		return nil, err
	}

	ord.Decls = make([]*registry.TypeDecl, len(sorted))
	for i, id := range sorted {
		ord.Decls[i] = g.decls[id]
	}
	return ord, nil
}

// collapseAliases rewrites every alias chain to its terminal non-alias
// declaration and records the preferred emission spelling.
func collapseAliases(reg *registry.Registry, ord *Order, reporter diag.Reporter) error {
	core := coreNames(reg)

	for _, decl := range reg.Types {
		if decl.Kind != registry.KindAlias {
			ord.Canonical[decl.Name] = decl.Name
			continue
		}

		seen := map[string]bool{decl.Name: true}
		target := decl.Alias
		for {
			next, ok := reg.LookupType(target)
			if !ok {
				// Alias to an enum block or another non-type name;
				// the chain terminates there.
				break
			}
			if next.Kind != registry.KindAlias {
				break
			}
			if seen[next.Name] {
				return diag.Errorf(reporter, diag.ResAliasCycle, decl.Span,
					"alias chain starting at '%s' never terminates", decl.Name)
			}
			seen[next.Name] = true
			target = next.Alias
		}
		ord.Canonical[decl.Name] = target

		// A core-promoted alias spelling beats the extension spelling
		// of the terminal declaration.
		if core[decl.Name] && !core[target] {
			ord.Preferred[target] = decl.Name
		}
	}
	return nil
}

// coreNames collects every type name required by a core feature block.
func coreNames(reg *registry.Registry) map[string]bool {
	out := make(map[string]bool)
	for _, feat := range reg.Features {
		for _, name := range feat.Require.Types {
			out[name] = true
		}
	}
	return out
}

type graph struct {
	decls []*registry.TypeDecl
	index map[string]DeclID
	// edges[from] lists the declarations that must come after from.
	edges [][]DeclID
	indeg []int
}

// buildGraph creates dependency edges from value-typed struct and union
// members only; pointer members never order declarations.
func buildGraph(reg *registry.Registry, ord *Order) *graph {
	g := &graph{index: make(map[string]DeclID)}
	for _, decl := range reg.Types {
		if decl.Kind == registry.KindAlias {
			continue
		}
		g.index[decl.Name] = DeclID(len(g.decls))
		g.decls = append(g.decls, decl)
	}
	g.edges = make([][]DeclID, len(g.decls))
	g.indeg = make([]int, len(g.decls))

	for _, decl := range g.decls {
		if decl.Kind != registry.KindStruct && decl.Kind != registry.KindUnion {
			continue
		}
		to := g.index[decl.Name]
		for _, m := range decl.Struct.Members {
			if m.Pointer.Pointer {
				continue
			}
			from, ok := g.index[ord.CanonicalName(m.Type)]
			if !ok || from == to {
				continue
			}
			g.edges[from] = append(g.edges[from], to)
			g.indeg[to]++
		}
	}
	return g
}
