package ast

// FieldDecl declares one field of an entity template. A nil Default means
// the field must be assigned at every instantiation.
type FieldDecl struct {
	Name    string
	Default Node
}

// EntityDefinition is an entity template: a name and an ordered set of
// fields with optional default expressions.
type EntityDefinition struct {
	Name   string
	Fields []FieldDecl
}

func NewEntityDefinition(name string, fields ...FieldDecl) *EntityDefinition {
	return &EntityDefinition{Name: name, Fields: fields}
}

// FieldNames returns the declared field names in declaration order
func (d *EntityDefinition) FieldNames() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return names
}

// HasField reports whether name is a declared field
func (d *EntityDefinition) HasField(name string) bool {
	for _, f := range d.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// IsValidInstantiation reports whether every declared field either has a
// default or appears in provided
func (d *EntityDefinition) IsValidInstantiation(provided []string) bool {
	return len(d.MissingFields(provided)) == 0
}

// MissingFields returns the declared fields lacking a default that are
// absent from provided, in declaration order
func (d *EntityDefinition) MissingFields(provided []string) []string {
	given := make(map[string]bool, len(provided))
	for _, name := range provided {
		given[name] = true
	}

	var missing []string
	for _, f := range d.Fields {
		if f.Default == nil && !given[f.Name] {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// FieldInit is one explicit field assignment of an instantiation
type FieldInit struct {
	Name  string
	Value Node
}

// CreateEntity instantiates the template Template evaluates to. The order
// in which Fields are evaluated is not guaranteed.
type CreateEntity struct {
	Template Node
	Fields   []FieldInit
}

func NewCreateEntity(template Node, fields ...FieldInit) *CreateEntity {
	return &CreateEntity{Template: template, Fields: fields}
}

// FieldNames returns the explicitly assigned field names
func (n *CreateEntity) FieldNames() []string {
	names := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		names[i] = f.Name
	}
	return names
}
