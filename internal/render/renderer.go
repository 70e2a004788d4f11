// Package render converts raw registry identifiers into cased, escaped,
// tag-aware target-language identifiers.
package render

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/zigadel/openxr-zig/internal/diag"
	"github.com/zigadel/openxr-zig/internal/source"
)

// Style selects the output case convention.
type Style uint8

const (
	Snake Style = iota
	ScreamingSnake
	Camel
	TitleCamel
)

func (s Style) String() string {
	switch s {
	case Snake:
		return "snake"
	case ScreamingSnake:
		return "screaming_snake"
	case Camel:
		return "camel"
	case TitleCamel:
		return "title_camel"
	}
	return "unknown"
}

// fallbackTag covers the one irregular vendor suffix that has appeared
// on extension names without an entry in the registry tag table.
const fallbackTag = "MNDX"

// maxIdentifier bounds scratch buffer growth; a longer identifier is a
// rendering error, not a silent truncation.
const maxIdentifier = 4096

// Renderer converts raw identifiers. It holds the shared immutable tag
// table and one reusable scratch buffer: the bytes returned by
// RenderBytes are valid only until the next render call, so callers
// must copy out first. Render returns an owned string and is the safe
// default.
type Renderer struct {
	tags []string
	buf  []byte
}

// NewRenderer builds a Renderer over the given author-tag table. The
// table is captured by reference and must not change afterward.
func NewRenderer(tags []string) *Renderer {
	return &Renderer{tags: tags, buf: make([]byte, 0, 128)}
}

// Render converts rawID into the requested style and returns an owned
// copy of the result.
func (r *Renderer) Render(rawID string, style Style) (string, error) {
	b, err := r.RenderBytes(rawID, style)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// RenderBytes converts rawID into the requested style. The returned
// slice aliases the renderer's scratch buffer and is invalidated by the
// next render call.
func (r *Renderer) RenderBytes(rawID string, style Style) ([]byte, error) {
	if len(rawID) > maxIdentifier {
		return nil, &diag.Error{
			Code: diag.RenderIdentifierLimit,
			Span: source.Span{},
			Msg:  "identifier exceeds renderer buffer limit",
		}
	}
	rawID = norm.NFC.String(rawID)

	// A previously escaped identifier is unwrapped before processing so
	// rendering is idempotent: no double-escaping.
	rawID = unescape(rawID)

	body, tag := r.splitTag(rawID)
	words := segment(body)

	r.buf = r.buf[:0]
	switch style {
	case Snake, ScreamingSnake:
		r.joinUnderscore(words, tag, style == ScreamingSnake)
	case Camel, TitleCamel:
		r.joinConcat(words, tag, style == TitleCamel)
	}

	r.escape()
	if len(r.buf) > maxIdentifier {
		return nil, &diag.Error{
			Code: diag.RenderIdentifierLimit,
			Span: source.Span{},
			Msg:  "rendered identifier exceeds buffer limit",
		}
	}
	return r.buf, nil
}

// splitTag removes a trailing author tag, checking the full table plus
// the fixed fallback suffix. A trailing separator left behind by the
// strip is dropped as well.
func (r *Renderer) splitTag(rawID string) (body, tag string) {
	for _, t := range r.tags {
		if isTagSuffix(rawID, t) {
			return strings.TrimRight(rawID[:len(rawID)-len(t)], "_"), t
		}
	}
	if isTagSuffix(rawID, fallbackTag) {
		return strings.TrimRight(rawID[:len(rawID)-len(fallbackTag)], "_"), fallbackTag
	}
	return rawID, ""
}

// isTagSuffix reports whether id ends in tag as a full trailing
// segment: the tag must not be the entire identifier and must be
// preceded by a boundary the segmenter would also produce.
func isTagSuffix(id, tag string) bool {
	if len(id) <= len(tag) || !strings.HasSuffix(id, tag) {
		return false
	}
	prev := id[len(id)-len(tag)-1]
	return prev == '_' || isLower(prev) || isDigit(prev)
}

func (r *Renderer) joinUnderscore(words []string, tag string, upper bool) {
	for i, w := range words {
		if i > 0 {
			r.buf = append(r.buf, '_')
		}
		for j := 0; j < len(w); j++ {
			r.buf = append(r.buf, caseByte(w[j], upper))
		}
	}
	if tag != "" {
		if len(r.buf) > 0 {
			r.buf = append(r.buf, '_')
		}
		for j := 0; j < len(tag); j++ {
			r.buf = append(r.buf, caseByte(tag[j], upper))
		}
	}
}

func (r *Renderer) joinConcat(words []string, tag string, title bool) {
	for i, w := range words {
		j := 0
		// A leading digit run passes through unchanged.
		for j < len(w) && isDigit(w[j]) {
			r.buf = append(r.buf, w[j])
			j++
		}
		if j < len(w) {
			first := w[j]
			if i == 0 && !title {
				r.buf = append(r.buf, toLower(first))
			} else {
				r.buf = append(r.buf, toUpper(first))
			}
			j++
		}
		for ; j < len(w); j++ {
			r.buf = append(r.buf, toLower(w[j]))
		}
	}
	// Concatenative styles reattach the tag in its original casing.
	r.buf = append(r.buf, tag...)
}

// segment splits an identifier into maximal words at separators and
// case-transition boundaries. A run of two or more uppercase letters
// followed by a lowercase letter is split before its last uppercase
// letter, keeping the acronym intact.
func segment(id string) []string {
	var words []string
	start := -1

	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, id[start:end])
		}
		start = -1
	}

	for i := 0; i < len(id); i++ {
		c := id[i]
		if isSeparator(c) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := id[i-1]
		switch {
		case isLower(prev) && isUpper(c):
			flush(i)
			start = i
		case isDigit(prev) && isUpper(c):
			// An uppercase letter after a digit run starts a word;
			// a lowercase one stays attached (Vector2f).
			flush(i)
			start = i
		case isUpper(prev) && isUpper(c) && i+1 < len(id) && isLower(id[i+1]):
			// prev closes an acronym run; c starts the next word.
			if i-start >= 1 {
				flush(i)
				start = i
			}
		}
	}
	flush(len(id))
	return words
}

func isSeparator(c byte) bool {
	return c == '_' || c == '-' || c == ' ' || c == ':'
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func toLower(c byte) byte {
	if isUpper(c) {
		return c + ('a' - 'A')
	}
	return c
}

func toUpper(c byte) byte {
	if isLower(c) {
		return c - ('a' - 'A')
	}
	return c
}

func caseByte(c byte, upper bool) byte {
	if upper {
		return toUpper(c)
	}
	return toLower(c)
}
