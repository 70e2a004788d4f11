package registry

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/zigadel/openxr-zig/internal/diag"
)

func (p *parser) parseFeature(se xml.StartElement) error {
	span := p.here()
	feat := &Feature{
		Name:   attr(se, "name"),
		Number: attr(se, "number"),
		Span:   span,
	}
	req, err := p.parseRequireBlocks(se)
	if err != nil {
		return err
	}
	feat.Require = req
	p.reg.Features = append(p.reg.Features, feat)
	return nil
}

func (p *parser) parseExtensions(start xml.StartElement) error {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return p.malformed(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var err error
			if t.Name.Local == "extension" {
				err = p.parseExtension(t)
			} else {
				err = p.skip()
			}
			if err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
}

func (p *parser) parseExtension(se xml.StartElement) error {
	span := p.here()
	name := attr(se, "name")

	number := 0
	if raw := attr(se, "number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p.errorf(diag.RegMalformedDocument, span,
				"extension '%s': bad number %q", name, raw)
		}
		number = n
	}

	ext := &Extension{
		Name:      name,
		Tag:       extensionTag(name),
		Number:    number,
		Type:      attr(se, "type"),
		Supported: attr(se, "supported"),
		Span:      span,
	}
	req, err := p.parseRequireBlocks(se)
	if err != nil {
		return err
	}
	ext.Require = req
	p.reg.Extensions = append(p.reg.Extensions, ext)
	return nil
}

// extensionTag extracts the vendor tag segment from an extension name
// like XR_KHR_vulkan_enable.
func extensionTag(name string) string {
	parts := strings.SplitN(name, "_", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func (p *parser) parseRequireBlocks(start xml.StartElement) (RequireSet, error) {
	var req RequireSet
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return req, p.malformed(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "require":
				if err := p.parseRequire(t, &req); err != nil {
					return req, err
				}
			default:
				if err := p.skip(); err != nil {
					return req, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return req, nil
			}
		}
	}
}

func (p *parser) parseRequire(start xml.StartElement, req *RequireSet) error {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return p.malformed(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "type":
				req.Types = append(req.Types, attr(t, "name"))
			case "command":
				req.Commands = append(req.Commands, attr(t, "name"))
			case "enum":
				ee, err := p.parseExtensionEnum(t)
				if err != nil {
					return err
				}
				req.Enums = append(req.Enums, ee)
			}
			if err := p.skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
}

func (p *parser) parseExtensionEnum(se xml.StartElement) (ExtensionEnum, error) {
	span := p.here()
	ee := ExtensionEnum{
		Name:    attr(se, "name"),
		Extends: attr(se, "extends"),
		Value:   attr(se, "value"),
		AliasOf: attr(se, "alias"),
		BitPos:  -1,
		Span:    span,
	}

	if raw := attr(se, "bitpos"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 8)
		if err != nil || n < 0 || n > 63 {
			return ee, p.errorf(diag.RegBadBitPosition, span,
				"bad bit position %q for '%s'", raw, ee.Name)
		}
		ee.BitPos = int8(n)
	}
	if raw := attr(se, "offset"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 16)
		if err != nil {
			return ee, p.errorf(diag.RegBadEnumValue, span,
				"bad offset %q for '%s'", raw, ee.Name)
		}
		ee.Offset = int16(n)
		ee.HasOff = true
	}
	if raw := attr(se, "extnumber"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return ee, p.errorf(diag.RegBadEnumValue, span,
				"bad extnumber %q for '%s'", raw, ee.Name)
		}
		ee.ExtNumber = n
		ee.HasExtNum = true
	}
	ee.Negated = attr(se, "dir") == "-1"
	return ee, nil
}
