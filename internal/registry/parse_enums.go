package registry

import (
	"encoding/xml"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"github.com/zigadel/openxr-zig/internal/diag"
)

// apiConstantsBlock is the reserved enums block holding loose API
// constants rather than a real enumeration.
const apiConstantsBlock = "API Constants"

func (p *parser) parseEnums(se xml.StartElement) error {
	span := p.here()
	name := attr(se, "name")

	if name == apiConstantsBlock {
		return p.parseAPIConstants(se)
	}

	kind := EnumPlain
	if attr(se, "type") == "bitmask" {
		kind = EnumBitmask
	}
	decl := &EnumDecl{Name: name, Kind: kind, Span: span}

	seenBits := make(map[uint8]string)
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return p.malformed(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "enum" {
				if err := p.skip(); err != nil {
					return err
				}
				continue
			}
			value, err := p.parseEnumValue(t, seenBits)
			if err != nil {
				return err
			}
			decl.Values = append(decl.Values, value)
			if err := p.skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return p.addEnum(decl)
			}
		}
	}
}

func (p *parser) parseEnumValue(se xml.StartElement, seenBits map[uint8]string) (EnumValue, error) {
	span := p.here()
	value := EnumValue{Name: attr(se, "name"), Span: span}

	if alias := attr(se, "alias"); alias != "" {
		value.AliasOf = alias
		return value, nil
	}

	if bitpos := attr(se, "bitpos"); bitpos != "" {
		n, err := strconv.ParseUint(bitpos, 10, 8)
		if err != nil {
			return value, p.errorf(diag.RegBadBitPosition, span,
				"bad bit position %q for '%s'", bitpos, value.Name)
		}
		pos, convErr := safecast.Conv[uint8](n)
		if convErr != nil || pos > 63 {
			return value, p.errorf(diag.RegBadBitPosition, span,
				"bit position %d out of range for '%s'", n, value.Name)
		}
		if prev, dup := seenBits[pos]; dup {
			return value, p.errorf(diag.RegDuplicateBitPosition, span,
				"bit position %d of '%s' already used by '%s'", pos, value.Name, prev)
		}
		seenBits[pos] = value.Name
		value.BitPos = pos
		value.IsBitPos = true
		return value, nil
	}

	raw := attr(se, "value")
	n, err := strconv.ParseInt(raw, 0, 64)
	if err != nil {
		return value, p.errorf(diag.RegBadEnumValue, span,
			"bad value %q for '%s'", raw, value.Name)
	}
	value.Value = n
	return value, nil
}

func (p *parser) parseAPIConstants(se xml.StartElement) error {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return p.malformed(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "enum" && attr(t, "alias") == "" {
				p.reg.Constants = append(p.reg.Constants, Constant{
					Name:  attr(t, "name"),
					Value: attr(t, "value"),
					Type:  attr(t, "type"),
					Span:  p.here(),
				})
			}
			if err := p.skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return nil
			}
		}
	}
}

func (p *parser) addEnum(decl *EnumDecl) error {
	if decl.Name == "" {
		return p.errorf(diag.RegMalformedDocument, decl.Span, "enums block without a name")
	}
	if _, exists := p.reg.EnumIndex[decl.Name]; exists {
		return p.errorf(diag.RegDuplicateDecl, decl.Span, "duplicate enums block '%s'", decl.Name)
	}
	p.reg.EnumIndex[decl.Name] = len(p.reg.Enums)
	p.reg.Enums = append(p.reg.Enums, decl)
	return nil
}

// splitList splits a comma-separated attribute into trimmed entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
