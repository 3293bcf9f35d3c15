package schema

// Namespace is a set of schemas that may reference each other.
type Namespace struct {
	Name    string
	Version string
	Schemas []*Schema
}

// Schema is one top-level record type.
type Schema struct {
	Name       string
	SchemaID   SchemaID
	Comment    string
	Properties []*Property
}

// FindByName returns every schema declared with name, in declaration order.
func (ns *Namespace) FindByName(name string) []*Schema {
	var out []*Schema
	for _, s := range ns.Schemas {
		if s.Name == name {
			out = append(out, s)
		}
	}
	return out
}

// FindByID returns the schema declared with id.
func (ns *Namespace) FindByID(id SchemaID) (*Schema, bool) {
	for _, s := range ns.Schemas {
		if s.SchemaID == id {
			return s, true
		}
	}
	return nil, false
}
