package registry

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Snapshot format changes.
const snapshotSchemaVersion uint16 = 1

// Snapshot is the serializable digest of a parsed registry, meant for
// inspection tooling and cross-run comparison. It carries names and
// counts, not full declaration bodies.
type Snapshot struct {
	// Schema version for safe invalidation when format changes.
	Schema uint16

	APIMajor uint16
	APIMinor uint16
	APIPatch uint32

	Tags []string

	// Declaration names grouped by kind, in registry order.
	Handles      []string
	Bitmasks     []string
	Structs      []string
	Unions       []string
	FuncPointers []string
	Aliases      []string

	Enums      []SnapshotEnum
	Commands   []string
	Extensions []SnapshotExtension

	ConstantCount int
}

// SnapshotEnum summarizes one enums block.
type SnapshotEnum struct {
	Name   string
	Values int
}

// SnapshotExtension summarizes one extension block.
type SnapshotExtension struct {
	Name   string
	Tag    string
	Number int
}

// BuildSnapshot digests a registry into its snapshot form.
func BuildSnapshot(r *Registry) *Snapshot {
	s := &Snapshot{
		Schema:        snapshotSchemaVersion,
		APIMajor:      r.APIVersion.Major,
		APIMinor:      r.APIVersion.Minor,
		APIPatch:      r.APIVersion.Patch,
		Tags:          r.TagNames(),
		ConstantCount: len(r.Constants),
	}

	for _, decl := range r.Types {
		switch decl.Kind {
		case KindHandle:
			s.Handles = append(s.Handles, decl.Name)
		case KindBitmask:
			s.Bitmasks = append(s.Bitmasks, decl.Name)
		case KindStruct:
			s.Structs = append(s.Structs, decl.Name)
		case KindUnion:
			s.Unions = append(s.Unions, decl.Name)
		case KindFuncPointer:
			s.FuncPointers = append(s.FuncPointers, decl.Name)
		case KindAlias:
			s.Aliases = append(s.Aliases, decl.Name)
		case KindBase:
			// Typedefs carry no binding surface of their own.
		}
	}

	for _, e := range r.Enums {
		s.Enums = append(s.Enums, SnapshotEnum{Name: e.Name, Values: len(e.Values)})
	}
	for _, c := range r.Commands {
		s.Commands = append(s.Commands, c.Name)
	}
	for _, ext := range r.Extensions {
		s.Extensions = append(s.Extensions, SnapshotExtension{
			Name:   ext.Name,
			Tag:    ext.Tag,
			Number: ext.Number,
		})
	}
	return s
}

// Encode writes the snapshot in msgpack form.
func (s *Snapshot) Encode(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(s)
}

// DecodeSnapshot reads a msgpack snapshot, rejecting unknown schemas.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return nil, err
	}
	if s.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("unsupported snapshot schema %d (expected %d)", s.Schema, snapshotSchemaVersion)
	}
	return &s, nil
}
