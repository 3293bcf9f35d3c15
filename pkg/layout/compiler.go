package layout

import (
	"github.com/huynhanx03/go-hybridrow/pkg/schema"
)

const (
	minTaggedArity = 1
	maxTaggedArity = 2
)

// Compile compiles s, a schema of ns, into its layout.
func Compile(ns *schema.Namespace, s *schema.Schema) (*Layout, error) {
	b := NewBuilder(s.Name, s.SchemaID)
	if err := addProperties(b, ns, CodeSchema, s.Properties); err != nil {
		return nil, err
	}
	return b.Build()
}

func addProperties(b *Builder, ns *schema.Namespace, scope Code, props []*schema.Property) error {
	for _, p := range props {
		t, args, err := logicalToPhysicalType(ns, p.PropertyType)
		if err != nil {
			return err
		}
		if err := addProperty(b, ns, scope, p, t, args); err != nil {
			return err
		}
	}
	return nil
}

func addProperty(b *Builder, ns *schema.Namespace, scope Code, p *schema.Property, t *Type, args TypeArgumentList) error {
	nullable := p.PropertyType.IsNullable()

	switch t.kind() {
	case CodeObjectScope:
		if !nullable {
			return compileErrorf("Non-nullable sparse column are not supported.")
		}
		op, ok := p.PropertyType.(*schema.ObjectPropertyType)
		if !ok {
			return compileErrorf("Unknown property type: %s", p.PropertyType.Type())
		}
		if err := b.AddObjectScope(p.Path, t); err != nil {
			return err
		}
		if err := addProperties(b, ns, t.kind(), op.Properties); err != nil {
			return err
		}
		return b.EndObjectScope()

	case CodeArrayScope, CodeTypedArrayScope, CodeSetScope, CodeTypedSetScope,
		CodeMapScope, CodeTypedMapScope, CodeTupleScope, CodeTypedTupleScope,
		CodeTaggedScope, CodeTagged2Scope, CodeSchema:
		if !nullable {
			return compileErrorf("Non-nullable sparse column are not supported.")
		}
		return b.AddTypedScope(p.Path, t, args)

	case CodeNullableScope:
		return compileErrorf("Nullables cannot be explicitly declared as columns.")
	}

	pp, ok := p.PropertyType.(*schema.PrimitivePropertyType)
	if !ok {
		return compileErrorf("Unknown property type: %s", p.PropertyType.Type())
	}

	switch pp.Storage {
	case schema.Fixed:
		if scope != CodeSchema {
			return compileErrorf("Cannot have fixed storage within a sparse scope.")
		}
		if t.IsNull() && !nullable {
			return compileErrorf("Non-nullable null columns are not supported.")
		}
		return b.AddFixedColumn(p.Path, t, nullable, pp.Length)

	case schema.Variable:
		if scope != CodeSchema {
			return compileErrorf("Cannot have variable storage within a sparse scope.")
		}
		if !nullable {
			return compileErrorf("Non-nullable variable columns are not supported.")
		}
		return b.AddVariableColumn(p.Path, t, pp.Length)

	case schema.Sparse:
		if !nullable {
			return compileErrorf("Non-nullable sparse columns are not supported.")
		}
		return b.AddSparseColumn(p.Path, t)

	default:
		return compileErrorf("Unknown storage specification: %s", pp.Storage)
	}
}

var primitiveTypes = map[schema.TypeKind]*Type{
	schema.Null:            Null,
	schema.Boolean:         Boolean,
	schema.Int8:            Int8,
	schema.Int16:           Int16,
	schema.Int32:           Int32,
	schema.Int64:           Int64,
	schema.UInt8:           UInt8,
	schema.UInt16:          UInt16,
	schema.UInt32:          UInt32,
	schema.UInt64:          UInt64,
	schema.VarInt:          VarInt,
	schema.VarUInt:         VarUInt,
	schema.Float32:         Float32,
	schema.Float64:         Float64,
	schema.Float128:        Float128,
	schema.Decimal:         Decimal,
	schema.DateTime:        DateTime,
	schema.UnixDateTime:    UnixDateTime,
	schema.Guid:            Guid,
	schema.MongoDbObjectID: MongoDbObjectID,
	schema.Utf8:            Utf8,
	schema.Binary:          Binary,
}

func logicalToPhysicalType(ns *schema.Namespace, pt schema.PropertyType) (*Type, TypeArgumentList, error) {
	immutable := false
	if sp, ok := pt.(schema.ScopePropertyType); ok {
		immutable = sp.IsImmutable()
	}
	pick := func(mutable *Type) *Type {
		if immutable {
			return mutable.Immutable()
		}
		return mutable
	}

	switch p := pt.(type) {
	case *schema.PrimitivePropertyType:
		if t, ok := primitiveTypes[p.Kind]; ok {
			return t, TypeArgumentList{}, nil
		}

	case *schema.ObjectPropertyType:
		return pick(Object), TypeArgumentList{}, nil

	case *schema.ArrayPropertyType:
		if schema.IsAny(p.Items) {
			return pick(Array), TypeArgumentList{}, nil
		}
		item, err := itemTypeArgument(ns, p.Items)
		if err != nil {
			return nil, TypeArgumentList{}, err
		}
		return pick(TypedArray), NewTypeArgumentList(item), nil

	case *schema.SetPropertyType:
		if schema.IsAny(p.Items) {
			return nil, TypeArgumentList{}, compileErrorf("Untyped sparse sets are not supported.")
		}
		item, err := itemTypeArgument(ns, p.Items)
		if err != nil {
			return nil, TypeArgumentList{}, err
		}
		return pick(TypedSet), NewTypeArgumentList(item), nil

	case *schema.MapPropertyType:
		if schema.IsAny(p.Keys) || schema.IsAny(p.Values) {
			return nil, TypeArgumentList{}, compileErrorf("Untyped sparse maps are not supported.")
		}
		key, err := itemTypeArgument(ns, p.Keys)
		if err != nil {
			return nil, TypeArgumentList{}, err
		}
		value, err := itemTypeArgument(ns, p.Values)
		if err != nil {
			return nil, TypeArgumentList{}, err
		}
		return pick(TypedMap), NewTypeArgumentList(key, value), nil

	case *schema.TuplePropertyType:
		items := make([]TypeArgument, 0, len(p.Items))
		for _, it := range p.Items {
			item, err := itemTypeArgument(ns, it)
			if err != nil {
				return nil, TypeArgumentList{}, err
			}
			items = append(items, item)
		}
		return pick(TypedTuple), NewTypeArgumentList(items...), nil

	case *schema.TaggedPropertyType:
		if len(p.Items) < minTaggedArity || len(p.Items) > maxTaggedArity {
			return nil, TypeArgumentList{}, compileErrorf("Invalid number of arguments in Tagged: %d.", len(p.Items))
		}
		items := make([]TypeArgument, 0, len(p.Items)+1)
		items = append(items, NewTypeArgument(UInt8, TypeArgumentList{}))
		for _, it := range p.Items {
			item, err := itemTypeArgument(ns, it)
			if err != nil {
				return nil, TypeArgumentList{}, err
			}
			items = append(items, item)
		}
		t := Tagged
		if len(p.Items) == 2 {
			t = Tagged2
		}
		return pick(t), NewTypeArgumentList(items...), nil

	case *schema.UdtPropertyType:
		s, err := resolveUDT(ns, p)
		if err != nil {
			return nil, TypeArgumentList{}, err
		}
		return pick(UDT), NewUDTTypeArgumentList(s.SchemaID), nil
	}

	return nil, TypeArgumentList{}, compileErrorf("Unknown property type: %s", pt.Type())
}

// itemTypeArgument compiles a collection item, wrapping nullable items in a
// nullable scope.
func itemTypeArgument(ns *schema.Namespace, pt schema.PropertyType) (TypeArgument, error) {
	t, args, err := logicalToPhysicalType(ns, pt)
	if err != nil {
		return TypeArgument{}, err
	}
	if !pt.IsNullable() {
		return NewTypeArgument(t, args), nil
	}

	wrapper := Nullable
	if t.IsImmutable() {
		wrapper = ImmutableNullable
	}
	return NewTypeArgument(wrapper, NewTypeArgumentList(NewTypeArgument(t, args))), nil
}

func resolveUDT(ns *schema.Namespace, p *schema.UdtPropertyType) (*schema.Schema, error) {
	if p.SchemaID == schema.InvalidSchemaID {
		matches := ns.FindByName(p.Name)
		switch len(matches) {
		case 0:
			return nil, compileErrorf("Cannot resolve schema reference '%s:%d'", p.Name, p.SchemaID)
		case 1:
			return matches[0], nil
		default:
			// A name-only reference must match exactly one schema. Same-named
			// schemas are told apart by id, never by document order.
			return nil, compileErrorf("Ambiguous schema reference: '%s:%d'", p.Name, p.SchemaID)
		}
	}

	s, ok := ns.FindByID(p.SchemaID)
	if !ok {
		return nil, compileErrorf("Cannot resolve schema reference '%s:%d'", p.Name, p.SchemaID)
	}
	if s.Name != p.Name {
		return nil, compileErrorf("Ambiguous schema reference: '%s:%d'", p.Name, p.SchemaID)
	}
	return s, nil
}
