// Package emit renders the resolved registry model as Zig source text.
// It is a straight-line structural printer: every section walks already
// validated model data, so the only failures it can surface are
// renderer limits.
package emit

import (
	"fmt"
	"strings"

	"github.com/zigadel/openxr-zig/internal/lower"
	"github.com/zigadel/openxr-zig/internal/registry"
	"github.com/zigadel/openxr-zig/internal/render"
	"github.com/zigadel/openxr-zig/internal/typegraph"
)

// Input bundles everything the emitter consumes. All fields are
// read-only during emission.
type Input struct {
	Registry   *registry.Registry
	Order      *typegraph.Order
	Wrappers   []*lower.Wrapper
	Partitions map[string]*lower.Partition
	// ExtraTags extends the renderer's author-tag table beyond the
	// registry's own tag block.
	ExtraTags []string
}

// Emitter prints one complete bindings file into an internal builder.
// It is single-use: construct, call EmitModule, discard.
type Emitter struct {
	reg   *registry.Registry
	ord   *typegraph.Order
	wraps []*lower.Wrapper
	parts map[string]*lower.Partition
	r     *render.Renderer

	sb strings.Builder

	// err latches the first renderer failure; subsequent render calls
	// become no-ops so section code stays branch-free.
	err error
}

func New(in Input) *Emitter {
	tags := in.Registry.TagNames()
	tags = append(tags, in.ExtraTags...)
	return &Emitter{
		reg:   in.Registry,
		ord:   in.Order,
		wraps: in.Wrappers,
		parts: in.Partitions,
		r:     render.NewRenderer(tags),
	}
}

// EmitModule emits the whole bindings file and returns its text. The
// section order is fixed: declarations only ever reference sections
// emitted earlier or other declarations in resolver order.
func (e *Emitter) EmitModule() (string, error) {
	e.emitPreamble()
	e.emitConstants()
	e.emitExtensionInfo()
	e.emitEnums()
	e.emitFlags()
	e.emitHandles()
	e.emitAggregates()
	e.emitCommandTypes()
	e.emitErrorSets()
	e.emitAggregateResults()
	e.emitDispatchTables()

	if e.err != nil {
		return "", e.err
	}
	return e.sb.String(), nil
}

// render is the error-latching renderer shim used by every section.
func (e *Emitter) render(rawID string, style render.Style) string {
	if e.err != nil {
		return ""
	}
	out, err := e.r.Render(rawID, style)
	if err != nil {
		e.err = err
		return ""
	}
	return out
}

func (e *Emitter) line(s string) {
	e.sb.WriteString(s)
	e.sb.WriteByte('\n')
}

func (e *Emitter) linef(format string, args ...any) {
	fmt.Fprintf(&e.sb, format, args...)
	e.sb.WriteByte('\n')
}

func (e *Emitter) blank() {
	e.sb.WriteByte('\n')
}

// decls iterates resolver-ordered declarations of one kind.
func (e *Emitter) decls(kind registry.TypeKind) []*registry.TypeDecl {
	out := make([]*registry.TypeDecl, 0, len(e.ord.Decls))
	for _, d := range e.ord.Decls {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
