package schema

import (
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

var validate = validator.New()

type namespaceJSON struct {
	Name    string       `json:"name" validate:"required"`
	Version string       `json:"version"`
	Schemas []schemaJSON `json:"schemas" validate:"dive"`
}

type schemaJSON struct {
	Name       string         `json:"name" validate:"required"`
	ID         SchemaID       `json:"id" validate:"ne=0"`
	Comment    string         `json:"comment"`
	Type       TypeKind       `json:"type"`
	Properties []propertyJSON `json:"properties" validate:"dive"`
}

type propertyJSON struct {
	Path string   `json:"path" validate:"required"`
	Type typeJSON `json:"type"`
}

type typeJSON struct {
	Type       TypeKind        `json:"type"`
	Nullable   *bool           `json:"nullable"`
	Immutable  bool            `json:"immutable"`
	Storage    StorageKind     `json:"storage"`
	Length     int             `json:"length" validate:"gte=0"`
	Properties []propertyJSON  `json:"properties" validate:"dive"`
	Items      json.RawMessage `json:"items"`
	Keys       *typeJSON       `json:"keys"`
	Values     *typeJSON       `json:"values"`
	Name       string          `json:"name"`
	ID         SchemaID        `json:"id"`
}

// ParseNamespace decodes a namespace document. Properties and items are nullable
// unless they say otherwise; primitive storage defaults to sparse.
func ParseNamespace(data []byte) (*Namespace, error) {
	var raw namespaceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decode namespace")
	}
	if err := validate.Struct(&raw); err != nil {
		return nil, errors.Wrap(err, "validate namespace")
	}

	ns := &Namespace{
		Name:    raw.Name,
		Version: raw.Version,
		Schemas: make([]*Schema, 0, len(raw.Schemas)),
	}
	seen := make(map[SchemaID]string, len(raw.Schemas))
	for i := range raw.Schemas {
		rs := &raw.Schemas[i]
		if rs.Type != Invalid && rs.Type != UDT {
			return nil, errors.Errorf("schema %q: type must be %q, got %q", rs.Name, UDT, rs.Type)
		}
		if prev, ok := seen[rs.ID]; ok {
			return nil, errors.Errorf("schema %q: id %d already used by %q", rs.Name, rs.ID, prev)
		}
		seen[rs.ID] = rs.Name

		props, err := convertProperties(rs.Properties)
		if err != nil {
			return nil, errors.Wrapf(err, "schema %q", rs.Name)
		}
		ns.Schemas = append(ns.Schemas, &Schema{
			Name:       rs.Name,
			SchemaID:   rs.ID,
			Comment:    rs.Comment,
			Properties: props,
		})
	}
	return ns, nil
}

func convertProperties(raw []propertyJSON) ([]*Property, error) {
	props := make([]*Property, 0, len(raw))
	for i := range raw {
		pt, err := convertType(&raw[i].Type)
		if err != nil {
			return nil, errors.Wrapf(err, "property %q", raw[i].Path)
		}
		props = append(props, &Property{Path: raw[i].Path, PropertyType: pt})
	}
	return props, nil
}

func convertType(raw *typeJSON) (PropertyType, error) {
	nullable := raw.Nullable == nil || *raw.Nullable

	switch raw.Type {
	case Object:
		props, err := convertProperties(raw.Properties)
		if err != nil {
			return nil, err
		}
		return &ObjectPropertyType{Nullable: nullable, Immutable: raw.Immutable, Properties: props}, nil

	case Array:
		items, err := convertItem(raw.Items)
		if err != nil {
			return nil, err
		}
		return &ArrayPropertyType{Nullable: nullable, Immutable: raw.Immutable, Items: items}, nil

	case Set:
		items, err := convertItem(raw.Items)
		if err != nil {
			return nil, err
		}
		return &SetPropertyType{Nullable: nullable, Immutable: raw.Immutable, Items: items}, nil

	case Map:
		var keys, values PropertyType
		var err error
		if raw.Keys != nil {
			if keys, err = convertType(raw.Keys); err != nil {
				return nil, errors.Wrap(err, "keys")
			}
		}
		if raw.Values != nil {
			if values, err = convertType(raw.Values); err != nil {
				return nil, errors.Wrap(err, "values")
			}
		}
		return &MapPropertyType{Nullable: nullable, Immutable: raw.Immutable, Keys: keys, Values: values}, nil

	case Tuple:
		items, err := convertItemList(raw.Items)
		if err != nil {
			return nil, err
		}
		return &TuplePropertyType{Nullable: nullable, Immutable: raw.Immutable, Items: items}, nil

	case Tagged:
		items, err := convertItemList(raw.Items)
		if err != nil {
			return nil, err
		}
		return &TaggedPropertyType{Nullable: nullable, Immutable: raw.Immutable, Items: items}, nil

	case UDT:
		if raw.Name == "" {
			return nil, errors.New("schema reference requires a name")
		}
		return &UdtPropertyType{Nullable: nullable, Immutable: raw.Immutable, Name: raw.Name, SchemaID: raw.ID}, nil

	case Invalid:
		return nil, errors.New("missing type")

	default:
		return &PrimitivePropertyType{Kind: raw.Type, Nullable: nullable, Storage: raw.Storage, Length: raw.Length}, nil
	}
}

func convertItem(data json.RawMessage) (PropertyType, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var raw typeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "items")
	}
	if err := validate.Struct(&raw); err != nil {
		return nil, errors.Wrap(err, "items")
	}
	return convertType(&raw)
}

func convertItemList(data json.RawMessage) ([]PropertyType, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var raw []typeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "items")
	}
	items := make([]PropertyType, 0, len(raw))
	for i := range raw {
		if err := validate.Struct(&raw[i]); err != nil {
			return nil, errors.Wrapf(err, "items[%d]", i)
		}
		pt, err := convertType(&raw[i])
		if err != nil {
			return nil, errors.Wrapf(err, "items[%d]", i)
		}
		items = append(items, pt)
	}
	return items, nil
}
