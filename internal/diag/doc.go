// Package diag defines the diagnostic model shared by all generator stages.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form, a human-oriented Message, the Primary span into the
// registry document, and optional Notes for secondary context.
//
// Stages emit through a diag.Reporter so producers stay decoupled from
// storage and formatting. BagReporter aggregates into a Bag, which supports
// deterministic sorting and golden-style formatting for tests and CLI
// output. The model is data-only: no IO, no rendering, no side effects.
package diag
