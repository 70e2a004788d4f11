package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zigadel/openxr-zig/internal/source"
)

type formattedDiagnostic struct {
	Severity string
	Code     string
	Line     uint32
	Column   uint32
	Message  string
}

// Format renders diagnostics into a stable, single-line-per-entry
// representation suitable for golden files and CLI short output.
// Diagnostics are sorted deterministically; the result is empty when
// nothing was reported.
func Format(diags []Diagnostic, doc *source.Document, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}

	rendered := make([]formattedDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = appendFormatted(rendered, d, doc, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var sb strings.Builder
	for _, r := range rendered {
		fmt.Fprintf(&sb, "%s %s %d:%d %s\n", r.Severity, r.Code, r.Line, r.Column, r.Message)
	}
	return sb.String()
}

func appendFormatted(out []formattedDiagnostic, d Diagnostic, doc *source.Document, includeNotes bool) []formattedDiagnostic {
	start := source.LineCol{Line: 0, Col: 0}
	if doc != nil {
		start, _ = doc.Resolve(d.Primary)
	}
	out = append(out, formattedDiagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Line:     start.Line,
		Column:   start.Col,
		Message:  d.Message,
	})
	if includeNotes {
		for _, n := range d.Notes {
			noteStart := source.LineCol{}
			if doc != nil {
				noteStart, _ = doc.Resolve(n.Span)
			}
			out = append(out, formattedDiagnostic{
				Severity: "NOTE",
				Code:     d.Code.ID(),
				Line:     noteStart.Line,
				Column:   noteStart.Col,
				Message:  n.Msg,
			})
		}
	}
	return out
}
