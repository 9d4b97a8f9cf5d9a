package engram

import "reflect"

// TypeID identifies a concrete polymorphic type on the wire. It must be
// stable across releases and unique within a registry.
type TypeID string

// Serializer is implemented by types that write themselves to a Codec.
type Serializer interface {
	Serialize(c *Codec, version uint32) error
}

// Deserializer is implemented by types that read themselves from a Codec.
type Deserializer interface {
	Deserialize(c *Codec, version uint32) error
}

// Object is a user-defined aggregate that can round-trip through a Codec.
type Object interface {
	Serializer
	Deserializer
}

// Polymorphic is an Object that can be written through an interface value
// and reconstructed without static knowledge of its concrete type.
type Polymorphic interface {
	Object
	TypeID() TypeID
}

// ObjectPtr constrains P to *T implementing Object, so generic code can
// allocate a T and decode into it.
type ObjectPtr[T any] interface {
	*T
	Object
}

// PolymorphicPtr constrains P to *T implementing Polymorphic.
type PolymorphicPtr[T any] interface {
	*T
	Polymorphic
}

// WriteObject asks v to serialize itself with the codec's format version.
func (c *Codec) WriteObject(v Serializer) error {
	if isNil(v) {
		return ErrNilObject
	}
	return v.Serialize(c, c.version)
}

// ReadObject asks v to deserialize itself with the codec's format version.
func (c *Codec) ReadObject(v Deserializer) error {
	if isNil(v) {
		return ErrNilObject
	}
	return v.Deserialize(c, c.version)
}

// ReadNew allocates a T and decodes into it.
func ReadNew[T any, P ObjectPtr[T]](c *Codec) (*T, error) {
	v := new(T)
	if err := P(v).Deserialize(c, c.version); err != nil {
		return nil, err
	}
	return v, nil
}

// isNil reports whether v is nil or an interface holding a nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
