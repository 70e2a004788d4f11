package main

import (
	"fmt"
	"io"
	"time"

	"github.com/zigadel/openxr-zig/internal/genpipeline"
)

func printStageTimings(out io.Writer, timings genpipeline.Timings) {
	if out == nil {
		return
	}
	var printErr error
	if timings.Has(genpipeline.StageParse) {
		_, printErr = fmt.Fprintf(out, "parsed %.1f ms\n", toMillis(timings.Duration(genpipeline.StageParse)))
		if printErr != nil {
			panic(printErr)
		}
	}
	if timings.Has(genpipeline.StageResolve) {
		_, printErr = fmt.Fprintf(out, "resolved %.1f ms\n", toMillis(timings.Duration(genpipeline.StageResolve)))
		if printErr != nil {
			panic(printErr)
		}
	}
	if timings.Has(genpipeline.StageLower) {
		_, printErr = fmt.Fprintf(out, "lowered %.1f ms\n", toMillis(timings.Duration(genpipeline.StageLower)))
		if printErr != nil {
			panic(printErr)
		}
	}
	if timings.Has(genpipeline.StageEmit) {
		_, printErr = fmt.Fprintf(out, "emitted %.1f ms\n", toMillis(timings.Duration(genpipeline.StageEmit)))
		if printErr != nil {
			panic(printErr)
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
