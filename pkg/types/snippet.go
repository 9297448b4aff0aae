package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SnippetExtension is the file extension marking snippet templates
const SnippetExtension = ".j2"

// DefaultIcon is the icon used when a snippet declares none,
// relative to the extension directory
const DefaultIcon = "images/icon.png"

// DefaultMarkdownExtensions is the baseline extension set applied when a
// markdown snippet declares none
var DefaultMarkdownExtensions = []string{"table", "strikethrough", "tasklist", "autolink"}

// VariableSpec is one declared variable of a snippet. Value is unset
// until the session assigns it and is only ever cleared by a session
// reset.
type VariableSpec struct {
	ID      string
	Label   string
	Default string
	Value   string
	IsSet   bool
}

// Resolve returns the value to interpolate: the assigned value if set,
// else the declared default, else the empty string.
func (v *VariableSpec) Resolve() string {
	if v.IsSet {
		return v.Value
	}
	return v.Default
}

// VarMap is an ordered id -> VariableSpec mapping. Insertion order in
// the snippet header is prompt order, so decoding must not go through a
// plain Go map.
type VarMap struct {
	ids   []string
	specs map[string]*VariableSpec
}

// NewVarMap creates an empty VarMap
func NewVarMap() *VarMap {
	return &VarMap{specs: make(map[string]*VariableSpec)}
}

// Add appends a spec, keeping first-encountered order for duplicate ids
func (m *VarMap) Add(spec *VariableSpec) {
	if m.specs == nil {
		m.specs = make(map[string]*VariableSpec)
	}
	if _, exists := m.specs[spec.ID]; !exists {
		m.ids = append(m.ids, spec.ID)
	}
	m.specs[spec.ID] = spec
}

// Get returns the spec for an id, or nil
func (m *VarMap) Get(id string) *VariableSpec {
	if m == nil {
		return nil
	}
	return m.specs[id]
}

// IDs returns the declared ids in insertion order
func (m *VarMap) IDs() []string {
	if m == nil {
		return nil
	}
	return m.ids
}

// Len returns the number of declared variables
func (m *VarMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.ids)
}

// NextUnresolved returns the first declared variable without an assigned
// value, in insertion order, or nil when all are resolved.
func (m *VarMap) NextUnresolved() *VariableSpec {
	if m == nil {
		return nil
	}
	for _, id := range m.ids {
		if spec := m.specs[id]; !spec.IsSet {
			return spec
		}
	}
	return nil
}

// Reset clears every assigned value
func (m *VarMap) Reset() {
	if m == nil {
		return
	}
	for _, spec := range m.specs {
		spec.Value = ""
		spec.IsSet = false
	}
}

// UnmarshalYAML decodes a vars mapping while preserving document order.
// Each entry is id: {label, default}.
func (m *VarMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("vars must be a mapping, got %s", nodeKind(node))
	}
	m.ids = nil
	m.specs = make(map[string]*VariableSpec)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]

		var body struct {
			Label   string `yaml:"label"`
			Default string `yaml:"default"`
		}
		if err := valNode.Decode(&body); err != nil {
			return fmt.Errorf("var %q: %w", keyNode.Value, err)
		}

		m.Add(&VariableSpec{
			ID:      keyNode.Value,
			Label:   body.Label,
			Default: body.Default,
		})
	}
	return nil
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}

// SnippetDefinition is one parsed snippet file: its metadata plus the
// raw template body. Definitions are created fresh on every search and
// are only mutated through the embedded VariableSpec values while a
// session owns them.
type SnippetDefinition struct {
	Path               string
	Name               string
	Description        string
	Icon               string
	Vars               *VarMap
	Markdown           bool
	MarkdownExtensions []string
	FilePathTemplate   string
	FileOverwrite      bool
	Body               string
}

// NextVariable returns the first unresolved variable in declared order
func (d *SnippetDefinition) NextVariable() *VariableSpec {
	return d.Vars.NextUnresolved()
}

// ResetVariables clears every assigned variable value
func (d *SnippetDefinition) ResetVariables() {
	d.Vars.Reset()
}

func (d *SnippetDefinition) String() string {
	return d.Name
}
