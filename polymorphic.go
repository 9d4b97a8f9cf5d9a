package engram

import (
	"context"
	"fmt"
	"reflect"
)

// WritePolymorphic writes a null flag and, for a non-nil v, its type id
// followed by the state written by the registered serialize function.
//
// An unregistered type fails with *UnknownTypeError before anything is
// written.
func (c *Codec) WritePolymorphic(v Polymorphic) error {
	if isNil(v) {
		c.WriteBool(false)
		return nil
	}

	id := v.TypeID()
	e, ok := c.registry.lookup(id)
	if !ok {
		c.logger.LogUnknownType(context.Background(), id, c.buf.Len())
		return &UnknownTypeError{ID: id}
	}

	c.WriteBool(true)
	c.WriteString(string(id))
	return e.serialize(c, v)
}

// ReadPolymorphic reads a value written by WritePolymorphic. A null value
// decodes as nil. The returned value is freshly allocated and owned by the
// caller.
func (c *Codec) ReadPolymorphic() (Polymorphic, error) {
	present, err := c.ReadBool()
	if err != nil || !present {
		return nil, err
	}

	start := c.buf.Offset()
	s, err := c.ReadString()
	if err != nil {
		return nil, err
	}
	id := TypeID(s)

	e, ok := c.registry.lookup(id)
	if !ok {
		c.logger.LogUnknownType(context.Background(), id, start)
		return nil, c.fail(&UnknownTypeError{ID: id})
	}

	return e.deserialize(c)
}

// ReadPolymorphic reads a polymorphic value and returns it as B, which is
// normally an interface embedding Polymorphic. A null value decodes as the
// zero B. A value whose concrete type does not implement B fails with
// ErrTypeMismatch.
func ReadPolymorphic[B any](c *Codec) (B, error) {
	var zero B

	v, err := c.ReadPolymorphic()
	if err != nil || v == nil {
		return zero, err
	}

	b, ok := v.(B)
	if !ok {
		return zero, c.fail(fmt.Errorf("%w: %q (%T) is not %s", ErrTypeMismatch, string(v.TypeID()), v, reflect.TypeFor[B]()))
	}

	return b, nil
}
