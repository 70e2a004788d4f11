// Package source holds the registry document text and byte-offset spans
// used by diagnostics.
package source

import (
	"crypto/sha256"
	"os"
	"slices"
)

// Document is one registry document loaded into memory. Content is
// normalized (no BOM, no CRLF) and immutable after construction.
type Document struct {
	Name    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
}

// NewDocument builds a Document from in-memory bytes, normalizing BOM and
// CRLF and computing the line index.
func NewDocument(name string, content []byte) *Document {
	content, _ = removeBOM(content)
	content, _ = normalizeCRLF(content)
	return &Document{
		Name:    name,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
	}
}

// Load reads a registry document from disk.
func Load(path string) (*Document, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewDocument(path, content), nil
}

// Resolve converts a span into line and column positions.
func (d *Document) Resolve(span Span) (start, end LineCol) {
	return toLineCol(d.LineIdx, span.Start), toLineCol(d.LineIdx, span.End)
}

// normalizeCRLF replaces every \r\n with \n, leaving lone \r untouched.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// binary search: index of the last newline strictly before off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	if hi < 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	startOff := lineIdx[hi] + 1
	return LineCol{Line: uint32(hi + 2), Col: off - startOff + 1}
}
