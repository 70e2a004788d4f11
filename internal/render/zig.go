package render

import "strings"

// escape wraps the scratch buffer in Zig's raw identifier form when the
// rendered text would not parse as a plain identifier. Primitive type
// and literal spellings are wrapped unconditionally; everything else is
// wrapped only when it collides with a reserved word.
func (r *Renderer) escape() {
	if isPrimitiveSpelling(r.buf) || zigKeywords[string(r.buf)] {
		r.wrapRaw()
	}
}

// wrapRaw rewrites buf into @"buf" in place.
func (r *Renderer) wrapRaw() {
	n := len(r.buf)
	r.buf = append(r.buf, 0, 0, 0)
	copy(r.buf[2:], r.buf[:n])
	r.buf[0], r.buf[1] = '@', '"'
	r.buf[len(r.buf)-1] = '"'
}

// unescape strips a raw-identifier wrapper so rendering stays
// idempotent across repeated passes.
func unescape(id string) string {
	if len(id) > 3 && strings.HasPrefix(id, `@"`) && strings.HasSuffix(id, `"`) {
		return id[2 : len(id)-1]
	}
	return id
}

// isPrimitiveSpelling matches names Zig reserves for primitive types
// and literals: an i/u prefix followed only by digits, or one of the
// fixed builtin spellings.
func isPrimitiveSpelling(name []byte) bool {
	if len(name) >= 2 && (name[0] == 'i' || name[0] == 'u') {
		digits := true
		for _, c := range name[1:] {
			if !isDigit(c) {
				digits = false
				break
			}
		}
		if digits {
			return true
		}
	}
	return zigPrimitives[string(name)]
}

var zigPrimitives = map[string]bool{
	"f16": true, "f32": true, "f64": true, "f80": true, "f128": true,
	"bool": true, "void": true, "type": true, "anyopaque": true,
	"noreturn": true, "usize": true, "isize": true,
	"comptime_int": true, "comptime_float": true,
	"true": true, "false": true, "null": true, "undefined": true,
}

var zigKeywords = map[string]bool{
	"align": true, "allowzero": true, "and": true, "anyframe": true,
	"anytype": true, "asm": true, "async": true, "await": true,
	"break": true, "callconv": true, "catch": true, "comptime": true,
	"const": true, "continue": true, "defer": true, "else": true,
	"enum": true, "errdefer": true, "error": true, "export": true,
	"extern": true, "fn": true, "for": true, "if": true,
	"inline": true, "linksection": true, "noalias": true,
	"nosuspend": true, "opaque": true, "or": true, "orelse": true,
	"packed": true, "pub": true, "resume": true, "return": true,
	"struct": true, "suspend": true, "switch": true, "test": true,
	"threadlocal": true, "try": true, "union": true, "unreachable": true,
	"usingnamespace": true, "var": true, "volatile": true, "while": true,
}
