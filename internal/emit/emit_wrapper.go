package emit

import (
	"fmt"
	"strings"

	"github.com/zigadel/openxr-zig/internal/lower"
)

// emitWrapper prints one error-union wrapper method inside a dispatch
// table. Elided length arguments are rebuilt from the slice length and
// output pointers from stack locals, so the raw call keeps the exact
// registry parameter order.
func (e *Emitter) emitWrapper(recv string, w *lower.Wrapper) {
	cmd := w.Command

	var sig strings.Builder
	fmt.Fprintf(&sig, "self: %s", recv)
	for i := range w.Params {
		p := &w.Params[i]
		sig.WriteString(", ")
		sig.WriteString(e.fieldName(p.Name))
		sig.WriteString(": ")
		sig.WriteString(e.wrapperParamType(p))
	}

	payload := "void"
	switch w.Shape {
	case lower.ReturnsSingle:
		payload = e.typeRef(w.Outputs[0].Type)
	case lower.ReturnsAggregate:
		payload = e.cmdTitle(cmd.Name) + "Result"
	}
	ret := payload
	if w.ResultEnum != "" {
		ret = e.cmdTitle(cmd.Name) + "Error!" + payload
	}

	e.linef("    pub fn %s(%s) %s {", e.commandName(cmd.Name), sig.String(), ret)

	for i := range w.Outputs {
		out := &w.Outputs[i]
		e.linef("        var %s: %s = undefined;", e.fieldName(out.Name), e.typeRef(out.Type))
	}

	call := fmt.Sprintf("self.dispatch.%s(%s)", cmd.Name, strings.Join(e.callArgs(w), ", "))
	if w.ResultEnum == "" {
		e.linef("        %s;", call)
	} else {
		e.linef("        const result = %s;", call)
		e.line("        switch (result) {")
		for _, field := range e.successFields(w) {
			e.linef("            .%s => {},", field)
		}
		for _, code := range e.errorCodes(w) {
			e.linef("            .%s => return error.%s,", e.enumFieldName(w.ResultEnum, code), e.errorName(code))
		}
		e.line("            else => return error.Unknown,")
		e.line("        }")
	}

	switch w.Shape {
	case lower.ReturnsSingle:
		e.linef("        return %s;", e.fieldName(w.Outputs[0].Name))
	case lower.ReturnsAggregate:
		var lit strings.Builder
		for i := range w.Outputs {
			if i > 0 {
				lit.WriteString(", ")
			}
			name := e.fieldName(w.Outputs[i].Name)
			fmt.Fprintf(&lit, ".%s = %s", name, name)
		}
		e.linef("        return .{ %s };", lit.String())
	}
	e.line("    }")
}

func (e *Emitter) wrapperParamType(p *lower.WrapperParam) string {
	if p.Dir == lower.DirArrayInOut {
		elem := e.typeRef(p.Type)
		if p.Pointer.Const {
			return "[]const " + elem
		}
		return "[]" + elem
	}
	return e.pointerRef(p.Type, &p.Pointer, refParam)
}

// callArgs renders the raw argument list in registry order.
func (e *Emitter) callArgs(w *lower.Wrapper) []string {
	arrayByLen := make(map[string]string)
	dirByName := make(map[string]lower.Direction)
	record := func(ps []lower.WrapperParam) {
		for i := range ps {
			p := &ps[i]
			dirByName[p.Name] = p.Dir
			if p.Dir == lower.DirArrayInOut {
				arrayByLen[p.Pointer.LenRef] = p.Name
			}
		}
	}
	record(w.Params)
	record(w.Outputs)

	args := make([]string, 0, len(w.Command.Params))
	for i := range w.Command.Params {
		raw := &w.Command.Params[i]
		if arr, ok := arrayByLen[raw.Name]; ok {
			args = append(args, "@intCast("+e.fieldName(arr)+".len)")
			continue
		}
		name := e.fieldName(raw.Name)
		switch dirByName[raw.Name] {
		case lower.DirOut:
			args = append(args, "&"+name)
		case lower.DirArrayInOut:
			args = append(args, name+".ptr")
		default:
			args = append(args, name)
		}
	}
	return args
}

// successFields lists the enum fields the result switch treats as
// success: the command's annotated success codes minus any the sign
// partition demotes, with plain success as the floor.
func (e *Emitter) successFields(w *lower.Wrapper) []string {
	part := e.parts[w.ResultEnum]
	var out []string
	for _, code := range w.Command.SuccessCodes {
		if part != nil {
			if success, known := part.IsSuccess(code); known && !success {
				continue
			}
		}
		out = append(out, e.enumFieldName(w.ResultEnum, code))
	}
	if len(out) == 0 {
		out = append(out, "success")
	}
	return out
}

// errorCodes lists the result values the switch maps onto named
// errors: declared error codes plus demoted success annotations.
func (e *Emitter) errorCodes(w *lower.Wrapper) []string {
	part := e.parts[w.ResultEnum]
	seen := make(map[string]bool)
	var out []string
	add := func(code string) {
		if !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	for _, code := range w.Command.ErrorCodes {
		add(code)
	}
	for _, code := range w.Command.SuccessCodes {
		if part != nil {
			if success, known := part.IsSuccess(code); known && !success {
				add(code)
			}
		}
	}
	return out
}
