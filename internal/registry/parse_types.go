package registry

import (
	"encoding/xml"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"github.com/zigadel/openxr-zig/internal/diag"
	"github.com/zigadel/openxr-zig/internal/source"
)

func (p *parser) parseTypes(start xml.StartElement) error {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return p.malformed(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var err error
			if t.Name.Local == "type" {
				err = p.parseType(t)
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

func (p *parser) parseType(se xml.StartElement) error {
	span := p.here()
	category := attr(se, "category")

	if alias := attr(se, "alias"); alias != "" {
		name := attr(se, "name")
		if err := p.skip(); err != nil {
			return err
		}
		if category == "enum" {
			p.enumTypes[name] = true
		}
		return p.addType(&TypeDecl{Name: name, Kind: KindAlias, Span: span, Alias: alias})
	}

	switch category {
	case "basetype":
		return p.parseBaseType(se, span)
	case "handle":
		return p.parseHandle(se, span)
	case "bitmask":
		return p.parseBitmask(se, span)
	case "struct", "union":
		return p.parseStruct(se, span, category == "union")
	case "funcpointer":
		return p.parseFuncPointer(se, span)
	case "enum":
		// Values arrive later in a dedicated enums block.
		p.enumTypes[attr(se, "name")] = true
		return p.skip()
	case "define":
		return p.parseDefine(se, span)
	case "include":
		return p.skip()
	case "":
		// Foreign platform type pulled in by an extension header.
		name := attr(se, "name")
		if name == "" {
			return p.errorf(diag.RegMalformedDocument, span, "type without category or name")
		}
		if err := p.skip(); err != nil {
			return err
		}
		return p.addType(&TypeDecl{
			Name: name,
			Kind: KindBase,
			Span: span,
			Base: &BaseType{Foreign: true},
		})
	default:
		return p.errorf(diag.RegUnknownDeclKind, span, "unknown type category '%s'", category)
	}
}

func (p *parser) parseBaseType(se xml.StartElement, span source.Span) error {
	body, err := p.readDeclBody(se)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(body.declName)
	text := body.text.String()

	// Atoms are declared through their define macro rather than a
	// typedef; they are narrow handles, not plain typedefs.
	if strings.Contains(text, "XR_DEFINE_ATOM") || body.typeName == "XR_DEFINE_ATOM" ||
		strings.Contains(text, "XR_DEFINE_OPAQUE_64") || body.typeName == "XR_DEFINE_OPAQUE_64" {
		return p.addType(&TypeDecl{
			Name:   name,
			Kind:   KindHandle,
			Span:   span,
			Handle: &HandleType{Dispatchable: false},
		})
	}

	return p.addType(&TypeDecl{
		Name: name,
		Kind: KindBase,
		Span: span,
		Base: &BaseType{CType: strings.TrimSpace(body.typeName)},
	})
}

func (p *parser) parseHandle(se xml.StartElement, span source.Span) error {
	parent := attr(se, "parent")
	body, err := p.readDeclBody(se)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(body.declName)

	// XR_DEFINE_HANDLE produces a dispatchable, pointer-wide handle.
	dispatchable := body.typeName == "XR_DEFINE_HANDLE" ||
		strings.Contains(body.text.String(), "XR_DEFINE_HANDLE")

	return p.addType(&TypeDecl{
		Name:   name,
		Kind:   KindHandle,
		Span:   span,
		Handle: &HandleType{Dispatchable: dispatchable, Parent: parent},
	})
}

func (p *parser) parseBitmask(se xml.StartElement, span source.Span) error {
	bitsEnum := attr(se, "bitvalues")
	if bitsEnum == "" {
		bitsEnum = attr(se, "requires")
	}
	body, err := p.readDeclBody(se)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(body.declName)

	width := uint8(64)
	if strings.TrimSpace(body.typeName) == "XrFlags" {
		width = 32
	}

	return p.addType(&TypeDecl{
		Name:    name,
		Kind:    KindBitmask,
		Span:    span,
		Bitmask: &BitmaskType{Width: width, BitsEnum: bitsEnum},
	})
}

func (p *parser) parseStruct(se xml.StartElement, span source.Span, union bool) error {
	name := attr(se, "name")
	st := &StructType{
		ParentStruct: attr(se, "parentstruct"),
		ReturnedOnly: attr(se, "returnedonly") == "true",
	}
	if ext := attr(se, "structextends"); ext != "" {
		st.Extends = strings.Split(ext, ",")
	}

	for {
		tok, err := p.dec.Token()
		if err != nil {
			return p.malformed(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "member" {
				if err := p.skip(); err != nil {
					return err
				}
				continue
			}
			memberSpan := p.here()
			optional := attr(t, "optional")
			lenAttr := attr(t, "len")
			values := attr(t, "values")
			body, err := p.readDeclBody(t)
			if err != nil {
				return err
			}
			field := StructField{
				Name:    strings.TrimSpace(body.declName),
				Type:    strings.TrimSpace(body.typeName),
				Pointer: derivePointerInfo(&body, optional, lenAttr),
				Values:  values,
				Span:    memberSpan,
			}
			if field.Name == "type" && values != "" {
				st.StructureType = values
			}
			st.Members = append(st.Members, field)
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				kind := KindStruct
				if union {
					kind = KindUnion
				}
				return p.addType(&TypeDecl{Name: name, Kind: kind, Span: span, Struct: st})
			}
		}
	}
}

// parseFuncPointer reads a funcpointer typedef. The element mixes raw C
// text with one <name> child and one <type> child per referenced type.
// The whole declarator is flattened into one string with type
// references wrapped in \x00 markers, then split back into parameters
// on the top-level commas.
func (p *parser) parseFuncPointer(se xml.StartElement, span source.Span) error {
	var flat strings.Builder
	var name string
	capture := ""
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return p.malformed(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			capture = t.Name.Local
			if capture == "type" {
				flat.WriteByte(0)
			}
		case xml.CharData:
			if capture == "name" {
				name += string(t)
			} else {
				flat.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == se.Name.Local {
				fp, perr := buildFuncPointer(flat.String())
				if perr != "" {
					return p.errorf(diag.RegMalformedDocument, span,
						"funcpointer '%s': %s", strings.TrimSpace(name), perr)
				}
				return p.addType(&TypeDecl{
					Name:    strings.TrimSpace(name),
					Kind:    KindFuncPointer,
					Span:    span,
					FuncPtr: fp,
				})
			}
			if capture == "type" {
				flat.WriteByte(0)
			}
			capture = ""
		}
	}
}

// buildFuncPointer parses the flattened declarator text. Expected shape:
//
//	typedef RET (XRAPI_PTR *)(PARAMS);
//
// with the pointer name already extracted. Type references are wrapped
// in NUL markers.
func buildFuncPointer(flat string) (*FuncPointerType, string) {
	fp := &FuncPointerType{}

	head, rest, ok := strings.Cut(flat, "(")
	if !ok {
		return nil, "missing declarator"
	}
	head = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(head), "typedef"))
	fp.ReturnType = strings.Trim(head, "\x00 ")

	// Skip the calling-convention group, keep the parameter list.
	_, params, ok := strings.Cut(rest, "(")
	if !ok {
		return nil, "missing parameter list"
	}
	if i := strings.LastIndexByte(params, ')'); i >= 0 {
		params = params[:i]
	}

	for _, seg := range strings.Split(params, ",") {
		param, ok := parseFuncParam(seg)
		if ok {
			fp.Params = append(fp.Params, param)
		}
	}
	return fp, ""
}

func parseFuncParam(seg string) (FuncParam, bool) {
	var param FuncParam

	depth := uint8(0)
	for _, r := range seg {
		if r == '*' {
			depth++
		}
	}
	param.Pointer.PtrDepth = depth
	param.Pointer.Pointer = depth > 0
	param.Pointer.Const = strings.Contains(seg, "const")

	// The type is the marker-wrapped reference; without one the segment
	// is a bare "void" list.
	open := strings.IndexByte(seg, 0)
	if open < 0 {
		return param, false
	}
	end := strings.IndexByte(seg[open+1:], 0)
	if end < 0 {
		return param, false
	}
	param.Type = strings.TrimSpace(seg[open+1 : open+1+end])

	tail := seg[open+1+end+1:]
	fields := strings.FieldsFunc(tail, func(r rune) bool {
		return r == ' ' || r == '*' || r == '\n' || r == '\t' || r == ';' || r == ')'
	})
	if len(fields) > 0 {
		param.Name = fields[len(fields)-1]
	}
	return param, true
}

// parseDefine keeps only the current API version define; every other
// define is preprocessor glue the bindings do not need.
func (p *parser) parseDefine(se xml.StartElement, span source.Span) error {
	body, err := p.readDeclBody(se)
	if err != nil {
		return err
	}
	if strings.TrimSpace(body.declName) != "XR_CURRENT_API_VERSION" {
		return nil
	}

	text := body.text.String()
	open := strings.IndexByte(text, '(')
	end := strings.IndexByte(text, ')')
	if open < 0 || end < open {
		return p.errorf(diag.RegBadVersion, span, "cannot parse XR_CURRENT_API_VERSION")
	}
	parts := strings.Split(text[open+1:end], ",")
	if len(parts) != 3 {
		return p.errorf(diag.RegBadVersion, span, "expected three version components, got %d", len(parts))
	}

	nums := make([]uint64, 3)
	for i, part := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return p.errorf(diag.RegBadVersion, span, "bad version component %q", strings.TrimSpace(part))
		}
		nums[i] = n
	}

	major, errMajor := safecast.Conv[uint16](nums[0])
	minor, errMinor := safecast.Conv[uint16](nums[1])
	if errMajor != nil || errMinor != nil {
		return p.errorf(diag.RegBadVersion, span, "version component out of range")
	}
	p.reg.APIVersion = Version{Major: major, Minor: minor, Patch: uint32(nums[2])}
	return nil
}

// addType inserts a declaration, rejecting duplicate non-alias names.
func (p *parser) addType(decl *TypeDecl) error {
	if decl.Name == "" {
		return p.errorf(diag.RegMalformedDocument, decl.Span, "type declaration without a name")
	}
	if _, exists := p.reg.TypeIndex[decl.Name]; exists {
		return p.errorf(diag.RegDuplicateDecl, decl.Span, "duplicate type declaration '%s'", decl.Name)
	}
	p.reg.TypeIndex[decl.Name] = len(p.reg.Types)
	p.reg.Types = append(p.reg.Types, decl)
	return nil
}
