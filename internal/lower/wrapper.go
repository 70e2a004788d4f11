package lower

import (
	"github.com/zigadel/openxr-zig/internal/diag"
	"github.com/zigadel/openxr-zig/internal/registry"
)

// ReturnShape describes what the wrapper yields on success.
type ReturnShape uint8

const (
	// ReturnsNothing: no output parameters; success yields void.
	ReturnsNothing ReturnShape = iota
	// ReturnsSingle: exactly one output parameter, returned directly.
	ReturnsSingle
	// ReturnsAggregate: several outputs, returned as an anonymous
	// ordered aggregate in declaration order.
	ReturnsAggregate
)

// WrapperParam is one parameter kept in the synthesized signature.
type WrapperParam struct {
	Name    string
	Type    string
	Dir     Direction
	Pointer registry.PointerInfo
}

// Wrapper is the synthesized safe call signature for one command.
type Wrapper struct {
	Command *registry.CommandDecl

	// Params are the wrapper's inputs, in declaration order, with
	// elided length parameters removed.
	Params []WrapperParam

	// Outputs are the OUTPUT parameters the wrapper returns instead of
	// taking pointers, in declaration order.
	Outputs []WrapperParam

	Shape ReturnShape

	// ResultEnum is the result enumeration the raw command returns,
	// empty for void commands.
	ResultEnum string
}

// Lower classifies every parameter of cmd and synthesizes its wrapper
// signature. Length parameters referenced by an array linkage are
// elided; their value is derived from the array argument at the call
// site.
func Lower(cmd *registry.CommandDecl, reporter diag.Reporter) (*Wrapper, error) {
	w := &Wrapper{Command: cmd}
	if cmd.ReturnType != "" && cmd.ReturnType != "void" {
		w.ResultEnum = cmd.ReturnType
	}

	elided := make(map[string]bool)
	dirs := make([]Direction, len(cmd.Params))
	for i := range cmd.Params {
		dir, err := Classify(cmd, i, reporter)
		if err != nil {
			return nil, err
		}
		dirs[i] = dir
		if dir == DirArrayInOut {
			elided[cmd.Params[i].Pointer.LenRef] = true
		}
	}

	for i, param := range cmd.Params {
		if elided[param.Name] {
			continue
		}
		wp := WrapperParam{
			Name:    param.Name,
			Type:    param.Type,
			Dir:     dirs[i],
			Pointer: param.Pointer,
		}
		if dirs[i] == DirOut {
			w.Outputs = append(w.Outputs, wp)
			continue
		}
		w.Params = append(w.Params, wp)
	}

	switch len(w.Outputs) {
	case 0:
		w.Shape = ReturnsNothing
	case 1:
		w.Shape = ReturnsSingle
	default:
		w.Shape = ReturnsAggregate
	}
	return w, nil
}

// LowerAll lowers every non-alias command in the registry, preserving
// declaration order.
func LowerAll(reg *registry.Registry, reporter diag.Reporter) ([]*Wrapper, error) {
	out := make([]*Wrapper, 0, len(reg.Commands))
	for _, cmd := range reg.Commands {
		if cmd.AliasOf != "" {
			continue
		}
		w, err := Lower(cmd, reporter)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}
