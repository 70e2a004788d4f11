// Package genpipeline orchestrates the registry-to-bindings run:
// parse, resolve, lower, emit. Stages run strictly in order and the
// first error aborts the run with the failing stage reported.
package genpipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/zigadel/openxr-zig/internal/diag"
	"github.com/zigadel/openxr-zig/internal/emit"
	"github.com/zigadel/openxr-zig/internal/lower"
	"github.com/zigadel/openxr-zig/internal/registry"
	"github.com/zigadel/openxr-zig/internal/source"
	"github.com/zigadel/openxr-zig/internal/typegraph"
)

// defaultMaxDiagnostics bounds the bag when the caller does not.
const defaultMaxDiagnostics = 200

// Request configures one generation run.
type Request struct {
	// Document is the registry text to transform.
	Document *source.Document
	// MaxDiagnostics caps collected warnings; zero selects the default.
	MaxDiagnostics int
	// ExtraTags extends the renderer's author-tag table, so
	// identifiers suffixed with a vendor tag the document itself never
	// declares still segment correctly. The parsed registry is not
	// touched.
	ExtraTags []string
	Progress  ProgressSink
}

// Result captures the artefacts of a run. On error the fields filled
// by the stages that completed are still populated, so callers can
// print diagnostics.
type Result struct {
	Registry   *registry.Registry
	Order      *typegraph.Order
	Wrappers   []*lower.Wrapper
	Partitions map[string]*lower.Partition
	// Source is the emitted bindings text.
	Source  string
	Bag     *diag.Bag
	Timings Timings
}

// Generate runs the whole pipeline over one registry document.
func Generate(ctx context.Context, req *Request) (Result, error) {
	var result Result
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, fmt.Errorf("missing generate request")
	}
	if req.Document == nil {
		return result, fmt.Errorf("missing registry document")
	}

	maxDiags := req.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = defaultMaxDiagnostics
	}
	result.Bag = diag.NewBag(maxDiags)
	reporter := diag.BagReporter{Bag: result.Bag}

	emitQueued(req.Progress)

	reg, err := runStage(ctx, req.Progress, StageParse, &result.Timings,
		func() (*registry.Registry, error) {
			return registry.Parse(req.Document, reporter)
		})
	result.Registry = reg
	if err != nil {
		return result, err
	}

	ord, err := runStage(ctx, req.Progress, StageResolve, &result.Timings,
		func() (*typegraph.Order, error) {
			return typegraph.Resolve(reg, reporter)
		})
	result.Order = ord
	if err != nil {
		return result, err
	}

	wraps, err := runStage(ctx, req.Progress, StageLower, &result.Timings,
		func() ([]*lower.Wrapper, error) {
			return lower.LowerAll(reg, reporter)
		})
	result.Wrappers = wraps
	if err != nil {
		return result, err
	}
	result.Partitions = lower.PartitionResults(reg)

	src, err := runStage(ctx, req.Progress, StageEmit, &result.Timings,
		func() (string, error) {
			return emit.New(emit.Input{
				Registry:   reg,
				Order:      ord,
				Wrappers:   wraps,
				Partitions: result.Partitions,
				ExtraTags:  req.ExtraTags,
			}).EmitModule()
		})
	result.Source = src
	if err != nil {
		return result, err
	}

	result.Bag.Sort()
	return result, nil
}

// runStage wraps one stage with cancellation, timing and progress
// reporting.
func runStage[T any](ctx context.Context, sink ProgressSink, stage Stage, timings *Timings, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		emitStage(sink, stage, StatusError, err, 0)
		return zero, err
	}

	emitStage(sink, stage, StatusWorking, nil, 0)
	start := time.Now()
	out, err := fn()
	elapsed := time.Since(start)
	timings.Set(stage, elapsed)

	if err != nil {
		emitStage(sink, stage, StatusError, err, elapsed)
		return zero, err
	}
	emitStage(sink, stage, StatusDone, nil, elapsed)
	return out, nil
}

func emitQueued(sink ProgressSink) {
	if sink == nil {
		return
	}
	for _, stage := range []Stage{StageParse, StageResolve, StageLower, StageEmit} {
		sink.OnEvent(Event{Stage: stage, Status: StatusQueued})
	}
}

func emitStage(sink ProgressSink, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}
