package diag

import (
	"fmt"
)

type Code uint16

const (
	// Unknown failure, should not appear on well-formed registries.
	UnknownCode Code = 0

	// Registry loader (1000-1999)
	RegInfo                 Code = 1000
	RegMalformedDocument    Code = 1001
	RegUnknownDeclKind      Code = 1002
	RegDuplicateDecl        Code = 1003
	RegDanglingTypeRef      Code = 1004
	RegMissingTagTable      Code = 1005
	RegBadEnumValue         Code = 1006
	RegBadBitPosition       Code = 1007
	RegDuplicateBitPosition Code = 1008
	RegBadVersion           Code = 1009

	// Type graph resolver (2000-2999)
	ResInfo            Code = 2000
	ResCyclicTypeDep   Code = 2001
	ResAliasCycle      Code = 2002
	ResUnknownAliasTgt Code = 2003

	// Command lowering (3000-3999)
	LowInfo                Code = 3000
	LowAmbiguousLengthLink Code = 3001
	LowUnknownResultValue  Code = 3002
	LowUnknownLengthParam  Code = 3003

	// Identifier rendering (4000-4999)
	RenderInfo            Code = 4000
	RenderIdentifierLimit Code = 4001
)

// ID returns the stable short identifier, prefixed by the owning stage.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("REG%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LOW%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("RND%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if title, ok := codeTitles[c]; ok {
		return title
	}
	return "Unknown diagnostic"
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

var codeTitles = map[Code]string{
	RegInfo:                 "Registry note",
	RegMalformedDocument:    "Malformed registry document",
	RegUnknownDeclKind:      "Unknown declaration kind",
	RegDuplicateDecl:        "Duplicate declaration",
	RegDanglingTypeRef:      "Dangling type reference",
	RegMissingTagTable:      "Author tag table missing or empty",
	RegBadEnumValue:         "Unparseable enum value",
	RegBadBitPosition:       "Unparseable bit position",
	RegDuplicateBitPosition: "Duplicate bit position in bitmask",
	RegBadVersion:           "Unparseable version number",

	ResInfo:            "Resolver note",
	ResCyclicTypeDep:   "Cyclic type dependency",
	ResAliasCycle:      "Alias chain forms a cycle",
	ResUnknownAliasTgt: "Alias target not declared",

	LowInfo:                "Lowering note",
	LowAmbiguousLengthLink: "Ambiguous length-parameter linkage",
	LowUnknownResultValue:  "Result annotation names undeclared value",
	LowUnknownLengthParam:  "Length attribute names unknown parameter",

	RenderInfo:            "Renderer note",
	RenderIdentifierLimit: "Identifier exceeds renderer buffer limit",
}
