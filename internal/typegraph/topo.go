package typegraph

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// toposort runs Kahn's algorithm over the value-dependency graph. The
// ready set is sorted on every wave so ties break on declaration order,
// keeping the emission order deterministic. When a cycle remains, the
// second return value lists its members in declaration order.
func toposort(g *graph) (order []DeclID, cycle []DeclID) {
	nodeCount := len(g.decls)
	indeg := make([]int, len(g.indeg))
	copy(indeg, g.indeg)

	order = make([]DeclID, 0, nodeCount)

	current := make([]DeclID, 0, nodeCount)
	for i := 0; i < nodeCount; i++ {
		if indeg[i] == 0 {
			id, err := safecast.Conv[DeclID, int](i)
			if err != nil {
				panic(fmt.Errorf("decl id overflow: %w", err))
			}
			current = append(current, id)
		}
	}
	slices.Sort(current)

	for len(current) > 0 {
		next := make([]DeclID, 0)
		for _, id := range current {
			order = append(order, id)
			for _, to := range g.edges[int(id)] {
				indeg[int(to)]--
				if indeg[int(to)] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(order) != nodeCount {
		for i := 0; i < nodeCount; i++ {
			if indeg[i] > 0 {
				id, err := safecast.Conv[DeclID, int](i)
				if err != nil {
					panic(fmt.Errorf("decl id overflow: %w", err))
				}
				cycle = append(cycle, id)
			}
		}
		slices.Sort(cycle)
	}
	return order, cycle
}
