package lower

import (
	"github.com/zigadel/openxr-zig/internal/registry"
)

// pendingOverride is the one documented deviation from the registry's
// own success annotation: the pending-state status is routed through
// the failure path so callers cannot mistake it for a clean success.
const pendingOverride = "XR_SESSION_LOSS_PENDING"

// Partition is the total, disjoint split of one result enumeration
// into success and error subsets. Alias values are folded into their
// canonical entry and do not appear in either subset.
type Partition struct {
	Enum    string
	Success []string
	Errors  []string

	idx map[string]bool // name -> true when success
}

// IsSuccess reports whether a declared result value is in the success
// subset. The second return is false for unknown names.
func (p *Partition) IsSuccess(name string) (success, known bool) {
	s, ok := p.idx[name]
	return s, ok
}

// PartitionResults computes the success/error split for every result
// enumeration any command returns. The registry annotates each value by
// sign: non-negative values are successes, negative values are errors.
// The pending-state status is the single override, forced into the
// error subset.
func PartitionResults(reg *registry.Registry) map[string]*Partition {
	out := make(map[string]*Partition)
	for _, cmd := range reg.Commands {
		name := cmd.ReturnType
		if name == "" || name == "void" {
			continue
		}
		if _, done := out[name]; done {
			continue
		}
		values := reg.EnumWithExtensions(name)
		if values == nil {
			continue
		}
		out[name] = partitionEnum(name, values)
	}
	return out
}

func partitionEnum(name string, values []registry.EnumValue) *Partition {
	p := &Partition{Enum: name, idx: make(map[string]bool, len(values))}
	for _, v := range values {
		if v.AliasOf != "" {
			continue
		}
		success := v.Value >= 0 && v.Name != pendingOverride
		p.idx[v.Name] = success
		if success {
			p.Success = append(p.Success, v.Name)
		} else {
			p.Errors = append(p.Errors, v.Name)
		}
	}
	return p
}
