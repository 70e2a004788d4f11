// Package registry parses the machine-readable API registry document
// into an immutable in-memory model.
package registry

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"

	"github.com/zigadel/openxr-zig/internal/diag"
	"github.com/zigadel/openxr-zig/internal/source"
)

// Parse builds the Registry from one registry document. It fails fast:
// the first loader error aborts parsing, is reported to reporter, and is
// returned as a *diag.Error. On success the returned Registry is
// immutable.
func Parse(doc *source.Document, reporter diag.Reporter) (*Registry, error) {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}

	p := &parser{
		doc:      doc,
		reporter: reporter,
		reg: &Registry{
			TypeIndex:    make(map[string]int),
			EnumIndex:    make(map[string]int),
			CommandIndex: make(map[string]int),
		},
		enumTypes: make(map[string]bool),
	}

	// The author-tag table is parsed in a dedicated pre-scan: tag
	// detection during rendering depends on it, so it must be complete
	// before anything that references identifiers is processed.
	if err := p.scanTags(); err != nil {
		return nil, err
	}

	if err := p.walk(); err != nil {
		return nil, err
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	return p.reg, nil
}

type parser struct {
	dec      *xml.Decoder
	doc      *source.Document
	reporter diag.Reporter
	reg      *Registry

	// enumTypes records names declared with category "enum"; their
	// values arrive later in dedicated enums blocks.
	enumTypes map[string]bool
}

// here returns a zero-length span at the decoder's current offset.
func (p *parser) here() source.Span {
	off, err := safecast.Conv[uint32](p.dec.InputOffset())
	if err != nil {
		panic(fmt.Errorf("registry offset overflow: %w", err))
	}
	return source.At(off)
}

func (p *parser) errorf(code diag.Code, span source.Span, format string, args ...any) error {
	return diag.Errorf(p.reporter, code, span, format, args...)
}

func (p *parser) malformed(err error) error {
	return p.errorf(diag.RegMalformedDocument, p.here(), "malformed registry document: %v", err)
}

// scanTags runs a dedicated decoder over the document and collects the
// full tag table before the main walk starts.
func (p *parser) scanTags() error {
	dec := xml.NewDecoder(bytes.NewReader(p.doc.Content))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			p.dec = dec
			return p.malformed(err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "tags" {
			continue
		}
		if err := p.readTagTable(dec, se); err != nil {
			return err
		}
	}
	if len(p.reg.Tags) == 0 {
		p.dec = dec
		return p.errorf(diag.RegMissingTagTable, source.At(0), "registry declares no author tags")
	}
	return nil
}

func (p *parser) readTagTable(dec *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			p.dec = dec
			return p.malformed(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tag" {
				p.reg.Tags = append(p.reg.Tags, Tag{
					Name:    attr(t, "name"),
					Author:  attr(t, "author"),
					Contact: attr(t, "contact"),
				})
			}
			if err := dec.Skip(); err != nil {
				p.dec = dec
				return p.malformed(err)
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
}

// walk drives the main parse over the document root.
func (p *parser) walk() error {
	p.dec = xml.NewDecoder(bytes.NewReader(p.doc.Content))
	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return p.malformed(err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "registry" {
			return p.errorf(diag.RegMalformedDocument, p.here(),
				"expected root element 'registry', found '%s'", se.Name.Local)
		}
		return p.walkRegistry(se)
	}
}

func (p *parser) walkRegistry(root xml.StartElement) error {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return p.malformed(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var err error
			switch t.Name.Local {
			case "types":
				err = p.parseTypes(t)
			case "enums":
				err = p.parseEnums(t)
			case "commands":
				err = p.parseCommands(t)
			case "feature":
				err = p.parseFeature(t)
			case "extensions":
				err = p.parseExtensions(t)
			default:
				// tags were consumed in the pre-scan; comments and
				// anything unrecognized at this level carry no
				// declarations.
				err = p.skip()
			}
			if err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == root.Name.Local {
				return nil
			}
		}
	}
}

func (p *parser) skip() error {
	if err := p.dec.Skip(); err != nil {
		return p.malformed(err)
	}
	return nil
}

// attr returns the value of the named attribute, or "".
func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// declBody is the mixed content of a member, param or proto element:
// raw character data plus the nested type/name/enum captures.
type declBody struct {
	text     strings.Builder
	typeName string
	declName string
	enumRef  string
}

// readDeclBody consumes tokens until the end of the enclosing element,
// capturing nested <type>, <name> and <enum> text. Nested <comment>
// elements are dropped.
func (p *parser) readDeclBody(start xml.StartElement) (declBody, error) {
	var body declBody
	depth := 0
	capture := "" // element whose character data is being captured
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return body, p.malformed(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "type", "name", "enum":
				capture = t.Name.Local
				depth++
			case "comment":
				if err := p.skip(); err != nil {
					return body, err
				}
			default:
				depth++
			}
		case xml.EndElement:
			if depth == 0 && t.Name.Local == start.Name.Local {
				return body, nil
			}
			depth--
			capture = ""
		case xml.CharData:
			switch capture {
			case "type":
				body.typeName += string(t)
			case "name":
				body.declName += string(t)
			case "enum":
				body.enumRef += string(t)
			default:
				body.text.Write(t)
			}
		}
	}
}

// derivePointerInfo computes PointerInfo from the raw declarator text
// and the optional/len attributes, exactly as the registry spells them.
func derivePointerInfo(body *declBody, optionalAttr, lenAttr string) PointerInfo {
	text := body.text.String()
	var info PointerInfo

	depth := uint8(0)
	for _, r := range text {
		if r == '*' {
			depth++
		}
	}
	info.PtrDepth = depth
	info.Pointer = depth > 0
	info.Const = strings.Contains(text, "const")
	info.Optional = firstSegment(optionalAttr) == "true"

	switch {
	case strings.Contains(text, "["):
		info.Mult = MultFixedArray
		if body.enumRef != "" {
			info.FixedSize = strings.TrimSpace(body.enumRef)
		} else {
			info.FixedSize = extractArrayExtent(text)
		}
	case lenAttr != "":
		if first := firstSegment(lenAttr); first == "null-terminated" {
			info.Mult = MultNullTerminated
		} else {
			info.Mult = MultLengthLinked
			info.LenRef = first
		}
	default:
		info.Mult = MultSingle
	}
	return info
}

func firstSegment(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}

func extractArrayExtent(text string) string {
	open := strings.IndexByte(text, '[')
	if open < 0 {
		return ""
	}
	end := strings.IndexByte(text[open:], ']')
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(text[open+1 : open+end])
}
