package emit

import (
	"strings"

	"github.com/zigadel/openxr-zig/internal/lower"
	"github.com/zigadel/openxr-zig/internal/registry"
	"github.com/zigadel/openxr-zig/internal/render"
)

// loaderCommand bootstraps every dispatch table and is callable with a
// null instance, so it always lands in the base table.
const loaderCommand = "xrGetInstanceProcAddr"

func (e *Emitter) cmdTitle(cmdName string) string {
	return e.render(strings.TrimPrefix(cmdName, "xr"), render.TitleCamel)
}

func (e *Emitter) pfnName(cmdName string) string {
	return "Pfn" + e.cmdTitle(cmdName)
}

// emitCommandTypes prints one function pointer typedef per command,
// matching the raw C signature.
func (e *Emitter) emitCommandTypes() {
	for _, w := range e.wraps {
		cmd := w.Command
		var params strings.Builder
		for i := range cmd.Params {
			p := &cmd.Params[i]
			if i > 0 {
				params.WriteString(", ")
			}
			params.WriteString(e.fieldName(p.Name))
			params.WriteString(": ")
			params.WriteString(e.pointerRef(p.Type, &p.Pointer, refParam))
		}
		ret := "void"
		if cmd.ReturnType != "" && cmd.ReturnType != "void" {
			ret = e.typeRef(cmd.ReturnType)
		}
		e.linef("pub const %s = *const fn (%s) callconv(.c) %s;",
			e.pfnName(cmd.Name), params.String(), ret)
	}
	if len(e.wraps) > 0 {
		e.blank()
	}
}

// wrapperErrors collects the error names a wrapper can raise, closed
// by the catch-all for result values the registry never declared.
func (e *Emitter) wrapperErrors(w *lower.Wrapper) []string {
	var out []string
	seen := make(map[string]bool)
	for _, code := range e.errorCodes(w) {
		name := e.errorName(code)
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return append(out, "Unknown")
}

// emitErrorSets prints a named error set per result-returning command.
func (e *Emitter) emitErrorSets() {
	wrote := false
	for _, w := range e.wraps {
		if w.ResultEnum == "" {
			continue
		}
		e.linef("pub const %sError = error{", e.cmdTitle(w.Command.Name))
		for _, name := range e.wrapperErrors(w) {
			e.linef("    %s,", name)
		}
		e.line("};")
		wrote = true
	}
	if wrote {
		e.blank()
	}
}

// emitAggregateResults prints the return struct for every wrapper with
// more than one output, fields in parameter declaration order.
func (e *Emitter) emitAggregateResults() {
	wrote := false
	for _, w := range e.wraps {
		if w.Shape != lower.ReturnsAggregate {
			continue
		}
		e.linef("pub const %sResult = struct {", e.cmdTitle(w.Command.Name))
		for i := range w.Outputs {
			out := &w.Outputs[i]
			e.linef("    %s: %s,", e.fieldName(out.Name), e.typeRef(out.Type))
		}
		e.line("};")
		wrote = true
	}
	if wrote {
		e.blank()
	}
}

// baseLevel reports whether a command belongs in the base dispatch
// table: it takes no handle, or it is the loader entry point itself.
func (e *Emitter) baseLevel(w *lower.Wrapper) bool {
	if w.Command.Name == loaderCommand {
		return true
	}
	if len(w.Command.Params) == 0 {
		return true
	}
	first := e.ord.CanonicalName(w.Command.Params[0].Type)
	decl, ok := e.reg.LookupType(first)
	return !ok || decl.Kind != registry.KindHandle
}

func (e *Emitter) emitDispatchTables() {
	if len(e.wraps) == 0 {
		return
	}
	hasLoader := false
	if _, ok := e.reg.LookupCommand(loaderCommand); ok {
		hasLoader = true
	}

	var base, instance []*lower.Wrapper
	for _, w := range e.wraps {
		if e.baseLevel(w) {
			base = append(base, w)
		} else {
			instance = append(instance, w)
		}
	}

	if hasLoader {
		e.emitFetchCommand()
	}
	e.emitDispatchStruct("BaseDispatch", base, hasLoader, true)
	e.emitDispatchStruct("InstanceDispatch", instance, hasLoader, false)
}

// emitFetchCommand prints the shared loader shim used by every load
// function.
func (e *Emitter) emitFetchCommand() {
	e.linef("fn fetchCommand(get_proc_addr: %s, instance: Instance, name: [*:0]const u8) error{CommandLoadFailure}!*const fn () callconv(.c) void {", e.pfnName(loaderCommand))
	e.line("    var pfn: PfnVoidFunction = null;")
	e.line("    const result = get_proc_addr(instance, name, &pfn);")
	e.line("    if (result != .success) return error.CommandLoadFailure;")
	e.line("    return pfn orelse error.CommandLoadFailure;")
	e.line("}")
	e.blank()
}

func (e *Emitter) emitDispatchStruct(name string, group []*lower.Wrapper, hasLoader, base bool) {
	if len(group) == 0 {
		return
	}
	e.linef("pub const %s = struct {", name)
	e.line("    dispatch: Dispatch,")
	e.blank()
	e.line("    pub const Dispatch = struct {")
	for _, w := range group {
		e.linef("        %s: %s,", w.Command.Name, e.pfnName(w.Command.Name))
	}
	e.line("    };")

	if hasLoader {
		e.blank()
		if base {
			e.linef("    pub fn load(get_proc_addr: %s) error{CommandLoadFailure}!%s {", e.pfnName(loaderCommand), name)
			e.line("        const instance = Instance.null_handle;")
		} else {
			e.linef("    pub fn load(instance: Instance, get_proc_addr: %s) error{CommandLoadFailure}!%s {", e.pfnName(loaderCommand), name)
		}
		e.linef("        var self: %s = undefined;", name)
		for _, w := range group {
			e.linef("        self.dispatch.%s = @ptrCast(try fetchCommand(get_proc_addr, instance, \"%s\"));",
				w.Command.Name, w.Command.Name)
		}
		e.line("        return self;")
		e.line("    }")
	}

	for _, w := range group {
		e.blank()
		e.emitWrapper(name, w)
	}
	e.line("};")
	e.blank()
}
