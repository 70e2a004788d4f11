// Package ui renders the post-run generation summary. Output is plain
// line-oriented text so it stays readable in logs; color is applied
// only when the caller asks for it.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/zigadel/openxr-zig/internal/genpipeline"
	"github.com/zigadel/openxr-zig/internal/registry"
)

// pipelineStages fixes the display order.
var pipelineStages = []genpipeline.Stage{
	genpipeline.StageParse,
	genpipeline.StageResolve,
	genpipeline.StageLower,
	genpipeline.StageEmit,
}

// Stats counts the declarations a run produced.
type Stats struct {
	Types      int
	Enums      int
	Commands   int
	Extensions int
	// Bytes is the emitted source size.
	Bytes int
}

// StatsFrom derives run statistics from pipeline output.
func StatsFrom(reg *registry.Registry, emitted string) Stats {
	var s Stats
	if reg != nil {
		s.Types = len(reg.Types)
		s.Enums = len(reg.Enums)
		s.Commands = len(reg.Commands)
		s.Extensions = len(reg.Extensions)
	}
	s.Bytes = len(emitted)
	return s
}

// Summary formats stage timings and run statistics.
type Summary struct {
	title string
	width int
	color bool
}

func NewSummary(title string, width int, color bool) *Summary {
	if width <= 0 {
		width = 80
	}
	return &Summary{title: title, width: width, color: color}
}

// Render prints the stage table followed by a statistics line.
func (s *Summary) Render(timings genpipeline.Timings, failed genpipeline.Stage, stats Stats) string {
	var b strings.Builder
	b.WriteString(s.titleStyle().Render(truncate(s.title, s.width)))
	b.WriteString("\n")

	for _, stage := range pipelineStages {
		status := "done"
		switch {
		case stage == failed:
			status = "error"
		case !timings.Has(stage):
			status = "skipped"
		}
		dur := ""
		if timings.Has(stage) {
			dur = formatDuration(timings.Duration(stage))
		}
		line := fmt.Sprintf("  %s %-8s %s",
			s.statusStyle(status).Render(fmt.Sprintf("%-7s", status)), stage, dur)
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("  %d types, %d enums, %d commands, %d extensions, %s emitted\n",
		stats.Types, stats.Enums, stats.Commands, stats.Extensions, formatBytes(stats.Bytes)))
	b.WriteString(fmt.Sprintf("  total %s\n", formatDuration(timings.Sum(pipelineStages...))))
	return b.String()
}

func (s *Summary) titleStyle() lipgloss.Style {
	if !s.color {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
}

func (s *Summary) statusStyle(status string) lipgloss.Style {
	if !s.color {
		return lipgloss.NewStyle()
	}
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%dus", d.Microseconds())
	}
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
