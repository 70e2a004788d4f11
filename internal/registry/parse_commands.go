package registry

import (
	"encoding/xml"
	"strings"

	"github.com/zigadel/openxr-zig/internal/diag"
)

func (p *parser) parseCommands(start xml.StartElement) error {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return p.malformed(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var err error
			if t.Name.Local == "command" {
				err = p.parseCommand(t)
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

func (p *parser) parseCommand(se xml.StartElement) error {
	span := p.here()

	// Promoted command aliases are empty elements with name+alias attrs.
	if alias := attr(se, "alias"); alias != "" {
		name := attr(se, "name")
		if err := p.skip(); err != nil {
			return err
		}
		return p.addCommand(&CommandDecl{Name: name, AliasOf: alias, Span: span})
	}

	cmd := &CommandDecl{
		SuccessCodes: splitList(attr(se, "successcodes")),
		ErrorCodes:   splitList(attr(se, "errorcodes")),
		Span:         span,
	}

	for {
		tok, err := p.dec.Token()
		if err != nil {
			return p.malformed(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "proto":
				body, err := p.readDeclBody(t)
				if err != nil {
					return err
				}
				cmd.Name = strings.TrimSpace(body.declName)
				cmd.ReturnType = strings.TrimSpace(body.typeName)
			case "param":
				paramSpan := p.here()
				optional := attr(t, "optional")
				lenAttr := attr(t, "len")
				body, err := p.readDeclBody(t)
				if err != nil {
					return err
				}
				cmd.Params = append(cmd.Params, CommandParam{
					Name:    strings.TrimSpace(body.declName),
					Type:    strings.TrimSpace(body.typeName),
					Pointer: derivePointerInfo(&body, optional, lenAttr),
					Span:    paramSpan,
				})
			default:
				if err := p.skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				return p.addCommand(cmd)
			}
		}
	}
}

func (p *parser) addCommand(cmd *CommandDecl) error {
	if cmd.Name == "" {
		return p.errorf(diag.RegMalformedDocument, cmd.Span, "command without a name")
	}
	if _, exists := p.reg.CommandIndex[cmd.Name]; exists {
		return p.errorf(diag.RegDuplicateDecl, cmd.Span, "duplicate command '%s'", cmd.Name)
	}
	p.reg.CommandIndex[cmd.Name] = len(p.reg.Commands)
	p.reg.Commands = append(p.reg.Commands, cmd)
	return nil
}
