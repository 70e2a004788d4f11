// Package lower classifies command parameters, partitions result
// codes, and synthesizes safe wrapper signatures for raw commands.
package lower

import (
	"strings"

	"github.com/zigadel/openxr-zig/internal/diag"
	"github.com/zigadel/openxr-zig/internal/registry"
)

// Direction is the derived data-flow role of a command parameter.
type Direction uint8

const (
	// DirIn is a plain input: by value, or through a const pointer.
	DirIn Direction = iota
	// DirOut is a caller-supplied single-item output pointer; the
	// wrapper returns the value instead.
	DirOut
	// DirInOut is an optional non-const pointer without a length link:
	// a nullable reference read and written by the command.
	DirInOut
	// DirArrayInOut is a pointer linked to a separate length
	// parameter; the length is derived from the array argument and the
	// length parameter disappears from the wrapper signature.
	DirArrayInOut
)

func (d Direction) String() string {
	switch d {
	case DirIn:
		return "in"
	case DirOut:
		return "out"
	case DirInOut:
		return "inout"
	case DirArrayInOut:
		return "array"
	}
	return "unknown"
}

// Classify derives the direction of one parameter. The length link is
// authoritative: a linkage that cannot be resolved to exactly one
// plain length parameter fails closed instead of guessing.
func Classify(cmd *registry.CommandDecl, idx int, reporter diag.Reporter) (Direction, error) {
	param := cmd.Params[idx]
	info := param.Pointer

	if !info.Pointer {
		return DirIn, nil
	}

	if info.Mult == registry.MultLengthLinked {
		if err := checkLengthLink(cmd, idx, reporter); err != nil {
			return DirIn, err
		}
		return DirArrayInOut, nil
	}

	switch {
	case info.Const:
		return DirIn, nil
	case info.Optional:
		return DirInOut, nil
	case info.Mult == registry.MultSingle:
		return DirOut, nil
	default:
		// Null-terminated non-const pointers carry their own length.
		return DirInOut, nil
	}
}

// checkLengthLink validates that the parameter's length reference names
// exactly one other parameter of the same command, and that the
// reference is a plain identifier rather than a dereference path.
func checkLengthLink(cmd *registry.CommandDecl, idx int, reporter diag.Reporter) error {
	param := cmd.Params[idx]
	ref := param.Pointer.LenRef

	if strings.ContainsAny(ref, "*->.") {
		return diag.Errorf(reporter, diag.LowAmbiguousLengthLink, param.Span,
			"parameter '%s' of '%s' has non-trivial length reference %q",
			param.Name, cmd.Name, ref)
	}

	matches := 0
	for i, other := range cmd.Params {
		if i != idx && other.Name == ref {
			matches++
		}
	}
	if matches == 0 {
		return diag.Errorf(reporter, diag.LowUnknownLengthParam, param.Span,
			"parameter '%s' of '%s' links to unknown length parameter %q",
			param.Name, cmd.Name, ref)
	}
	if matches > 1 {
		return diag.Errorf(reporter, diag.LowAmbiguousLengthLink, param.Span,
			"parameter '%s' of '%s' has %d candidate length parameters",
			param.Name, cmd.Name, matches)
	}
	return nil
}
