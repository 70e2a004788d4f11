package registry

// extensionEnumBase is the offset encoding base for enum values
// contributed by extensions: base + (number-1)*1000 + offset.
const extensionEnumBase = 1_000_000_000

// EnumWithExtensions returns the enum's core values plus every value
// contributed to it by a feature or extension require block, in
// registry order: core first, then features, then extensions. Alias
// values are carried through with AliasOf set; duplicates (the same
// name promoted by several blocks) are dropped.
func (r *Registry) EnumWithExtensions(name string) []EnumValue {
	decl, ok := r.LookupEnum(name)
	if !ok {
		return nil
	}

	out := make([]EnumValue, 0, len(decl.Values))
	seen := make(map[string]bool, len(decl.Values))
	for _, v := range decl.Values {
		if seen[v.Name] {
			continue
		}
		seen[v.Name] = true
		out = append(out, v)
	}

	add := func(ee ExtensionEnum, origin string, number int) {
		if ee.Extends != name || seen[ee.Name] {
			return
		}
		value := EnumValue{Name: ee.Name, Origin: origin, Span: ee.Span}
		if ee.HasExtNum {
			number = ee.ExtNumber
		}
		switch {
		case ee.AliasOf != "":
			value.AliasOf = ee.AliasOf
		case ee.BitPos >= 0:
			value.BitPos = uint8(ee.BitPos)
			value.IsBitPos = true
		case ee.HasOff:
			// Feature blocks carry no enclosing number; an offset
			// addition without extnumber has no defined value.
			if number < 1 {
				return
			}
			n := int64(extensionEnumBase) + int64(number-1)*1000 + int64(ee.Offset)
			if ee.Negated {
				n = -n
			}
			value.Value = n
		default:
			return
		}
		seen[ee.Name] = true
		out = append(out, value)
	}

	for _, feat := range r.Features {
		for _, ee := range feat.Require.Enums {
			add(ee, feat.Name, 0)
		}
	}
	for _, ext := range r.Extensions {
		for _, ee := range ext.Require.Enums {
			add(ee, ext.Name, ext.Number)
		}
	}
	return out
}
