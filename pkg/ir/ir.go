package ir

import (
	"github.com/blimu-dev/openapi-iots-gen/pkg/generrors"
	"github.com/blimu-dev/openapi-iots-gen/pkg/orderedmap"
)

// Kind identifies a Type variant
type Kind string

const (
	KindLiteralString Kind = "literalString"
	KindString        Kind = "string"
	KindNumber        Kind = "number"
	KindBoolean       Kind = "boolean"
	KindArray         Kind = "array"
	KindObject        Kind = "object"
	KindRecord        Kind = "record"
	KindUnion         Kind = "union"
	KindUnknown       Kind = "unknown"
)

// Type is the canonical, closed-form type representation every schema shape
// is normalized into. The variant set is closed: only the types in this file
// implement it.
//
// IsRequired describes the slot holding the value (false means the slot may
// also be null or absent). It says nothing about the requiredness of nested
// object properties or union members, which carry their own flags.
type Type interface {
	Kind() Kind
	IsRequired() bool
	// WithRequired returns a copy of the type with the slot flag replaced.
	WithRequired(required bool) Type
	isType()
}

// LiteralString is a single fixed string value, used for injected discriminator tags
type LiteralString struct {
	Value    string
	Required bool
}

// String is a string primitive
type String struct {
	Required bool
}

// Number is a numeric primitive (integer and number both map here)
type Number struct {
	Required bool
}

// Boolean is a boolean primitive
type Boolean struct {
	Required bool
}

// Array is a homogeneous sequence
type Array struct {
	Items    Type
	Required bool
}

// Object is a fixed-shape record. Each property's own flag governs whether
// the property is optional in the emitted shape.
type Object struct {
	Props    *orderedmap.Map[string, Type]
	Required bool
}

// Record is a homogeneous open map keyed by string
type Record struct {
	Value    Type
	Required bool
}

// Union is a sum of alternatives
type Union struct {
	List     []Type
	Required bool
}

// Unknown is an opaque, unvalidated value
type Unknown struct {
	Required bool
}

func (LiteralString) Kind() Kind { return KindLiteralString }
func (String) Kind() Kind        { return KindString }
func (Number) Kind() Kind        { return KindNumber }
func (Boolean) Kind() Kind       { return KindBoolean }
func (Array) Kind() Kind         { return KindArray }
func (Object) Kind() Kind        { return KindObject }
func (Record) Kind() Kind        { return KindRecord }
func (Union) Kind() Kind         { return KindUnion }
func (Unknown) Kind() Kind       { return KindUnknown }

func (t LiteralString) IsRequired() bool { return t.Required }
func (t String) IsRequired() bool        { return t.Required }
func (t Number) IsRequired() bool        { return t.Required }
func (t Boolean) IsRequired() bool       { return t.Required }
func (t Array) IsRequired() bool         { return t.Required }
func (t Object) IsRequired() bool        { return t.Required }
func (t Record) IsRequired() bool        { return t.Required }
func (t Union) IsRequired() bool         { return t.Required }
func (t Unknown) IsRequired() bool       { return t.Required }

func (t LiteralString) WithRequired(r bool) Type { t.Required = r; return t }
func (t String) WithRequired(r bool) Type        { t.Required = r; return t }
func (t Number) WithRequired(r bool) Type        { t.Required = r; return t }
func (t Boolean) WithRequired(r bool) Type       { t.Required = r; return t }
func (t Array) WithRequired(r bool) Type         { t.Required = r; return t }
func (t Object) WithRequired(r bool) Type        { t.Required = r; return t }
func (t Record) WithRequired(r bool) Type        { t.Required = r; return t }
func (t Union) WithRequired(r bool) Type         { t.Required = r; return t }
func (t Unknown) WithRequired(r bool) Type       { t.Required = r; return t }

func (LiteralString) isType() {}
func (String) isType()        {}
func (Number) isType()        {}
func (Boolean) isType()       {}
func (Array) isType()         {}
func (Object) isType()        {}
func (Record) isType()        {}
func (Union) isType()         {}
func (Unknown) isType()       {}

// NewObject returns a required object with no properties.
func NewObject() Object {
	return Object{Props: orderedmap.New[string, Type](), Required: true}
}

// WithLiteralField returns a copy of t with a required LiteralString property
// name = value. It is only defined for objects and fails on any other variant.
// An existing property with the same name is replaced by the literal.
func WithLiteralField(t Type, name, value string) (Type, error) {
	obj, ok := t.(Object)
	if !ok {
		return nil, generrors.Validationf("", nil,
			"cannot add literal field %q = %q: a new property can only be added to an object, got %s", name, value, t.Kind())
	}
	obj.Props = obj.Props.Clone()
	obj.Props.Set(name, LiteralString{Value: value, Required: true})
	return obj, nil
}
