package kind

import (
	"go/types"
	"reflect"
)

// Key is the classification key of a value: the canonical name of its type.
// Keys compare by exact equality only, so int64 is not int and a defined type
// is not its underlying type.
type Key string

// Well-known keys for predeclared types.
const (
	Int     Key = "int"
	Int8    Key = "int8"
	Int16   Key = "int16"
	Int32   Key = "int32"
	Int64   Key = "int64"
	Uint    Key = "uint"
	Uint8   Key = "uint8"
	Uint16  Key = "uint16"
	Uint32  Key = "uint32"
	Uint64  Key = "uint64"
	Float32 Key = "float32"
	Float64 Key = "float64"
	Bool    Key = "bool"
	String  Key = "string"
	Rune    Key = Int32
	Byte    Key = Uint8

	// Invalid is returned for values with no usable type (untyped nil).
	Invalid Key = ""
)

// String returns the key as a type name.
func (k Key) String() string {
	if k == Invalid {
		return "<invalid>"
	}

	return string(k)
}

// IsValid reports whether k names a type.
func (k Key) IsValid() bool {
	return k != Invalid
}

// FromReflectType returns the key of a runtime type. Named types are qualified
// with their package name, matching reflect.Type.String.
func FromReflectType(rtype reflect.Type) Key {
	if rtype == nil {
		return Invalid
	}

	return Key(rtype.String())
}

// Of returns the key of v's dynamic type.
func Of(v any) Key {
	return FromReflectType(reflect.TypeOf(v))
}

// FromGoType returns the key of a type-checked type. Named types are qualified
// with their package name so keys agree with FromReflectType. Aliases resolve
// to their target. Untyped constants take their default type.
func FromGoType(t types.Type) Key {
	if t == nil {
		return Invalid
	}

	t = types.Unalias(t)

	if b, ok := t.(*types.Basic); ok {
		if b.Kind() == types.UntypedNil || b.Kind() == types.Invalid {
			return Invalid
		}

		// byte and rune are distinct *types.Basic values that print by their
		// alias names; key them by kind instead.
		t = types.Typ[types.Default(b).(*types.Basic).Kind()]
	}

	return Key(types.TypeString(t, qualifyByName))
}

func qualifyByName(p *types.Package) string {
	return p.Name()
}

// Parse returns the key named by s. Any non-empty name is accepted; "byte" and
// "rune" are normalised to the types they alias.
func Parse(s string) Key {
	switch s {
	case "byte":
		return Byte
	case "rune":
		return Rune
	}

	return Key(s)
}
