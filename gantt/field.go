package gantt

import (
	"fmt"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Role tells whether a field is categorical or numeric.
type Role int

const (
	Dimension Role = iota
	Measure
)

func (r Role) String() string {
	if r == Measure {
		return "measure"
	}
	return "dimension"
}

// Descriptor is the host's description of one bound field.
type Descriptor struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// FieldEntry is one key -> descriptor pair of a FieldMap.
type FieldEntry struct {
	Key        string
	Descriptor Descriptor
}

// FieldMap is a mapping of opaque field keys to descriptors that keeps the
// order in which the host declared them. Go maps do not, and field order
// decides the column order of every normalized row.
type FieldMap []FieldEntry

// UnmarshalYAML decodes a YAML (or JSON) mapping while preserving key order.
func (m *FieldMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: field map must be a mapping", node.Line)
	}
	entries := make(FieldMap, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var d Descriptor
		if err := node.Content[i+1].Decode(&d); err != nil {
			return fmt.Errorf("field %q: %w", node.Content[i].Value, err)
		}
		entries = append(entries, FieldEntry{Key: node.Content[i].Value, Descriptor: d})
	}
	*m = entries
	return nil
}

// Metadata is the host's field description, split into categorical and
// numeric members.
type Metadata struct {
	Dimensions FieldMap `yaml:"dimensions"`
	Measures   FieldMap `yaml:"mainStructureMembers"`
}

// Field is a flattened field with its identity preserved.
type Field struct {
	Key   string
	ID    string
	Label string
	Role  Role
}

// Catalog holds the ordered dimension and measure fields of one render.
type Catalog struct {
	Dimensions []Field
	Measures   []Field
}

// NewCatalog flattens md into two ordered field lists.
func NewCatalog(md Metadata) Catalog {
	return Catalog{
		Dimensions: flatten(md.Dimensions, Dimension),
		Measures:   flatten(md.Measures, Measure),
	}
}

func flatten(m FieldMap, role Role) []Field {
	return lo.Map(m, func(e FieldEntry, _ int) Field {
		return Field{Key: e.Key, ID: e.Descriptor.ID, Label: e.Descriptor.Label, Role: role}
	})
}

// Fields returns dimensions followed by measures, the column order of a
// normalized row.
func (c Catalog) Fields() []Field {
	out := make([]Field, 0, len(c.Dimensions)+len(c.Measures))
	out = append(out, c.Dimensions...)
	return append(out, c.Measures...)
}

// IDs returns the field ids in column order, prefixed by the synthetic
// position column.
func (c Catalog) IDs() []string {
	return append([]string{"INDEX"}, lo.Map(c.Fields(), func(f Field, _ int) string { return f.ID })...)
}
