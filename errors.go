package engram

import (
	"errors"
	"fmt"

	"github.com/hupe1980/engram/internal/buffer"
)

var (
	// ErrUnderflow is returned when a read needs more bytes than remain in the stream.
	ErrUnderflow = errors.New("engram: buffer underflow")

	// ErrUnknownType is returned when a polymorphic type id has no registry entry.
	ErrUnknownType = errors.New("engram: unknown type")

	// ErrDuplicateType is returned when a type id is registered twice.
	ErrDuplicateType = errors.New("engram: duplicate type registration")

	// ErrInvalidTypeID is returned when a type id is empty.
	ErrInvalidTypeID = errors.New("engram: invalid type id")

	// ErrTypeMismatch is returned when a decoded polymorphic value does not
	// implement the requested interface.
	ErrTypeMismatch = errors.New("engram: type mismatch")

	// ErrNilObject is returned when a nil value is handed to an operation that
	// cannot encode absence.
	ErrNilObject = errors.New("engram: nil object")

	// ErrLengthExceeded is returned when a length prefix is above the
	// configured maximum.
	ErrLengthExceeded = errors.New("engram: length prefix exceeds limit")

	// ErrLengthMismatch is returned when a fixed-size array is written with
	// the wrong number of elements.
	ErrLengthMismatch = errors.New("engram: array length mismatch")
)

// UnderflowError describes a read past the end of the stream.
//
// errors.Is(err, ErrUnderflow) reports true for it.
type UnderflowError struct {
	Offset int
	Need   int
	Have   int
}

func (e *UnderflowError) Error() string {
	return fmt.Sprintf("engram: buffer underflow: need %d bytes at offset %d, have %d", e.Need, e.Offset, e.Have)
}

// Is reports whether target is ErrUnderflow.
func (e *UnderflowError) Is(target error) bool { return target == ErrUnderflow }

// UnknownTypeError is returned when a polymorphic value names a type id that
// was never registered.
//
// The stream cannot be decoded past this point. Callers must stop reading.
type UnknownTypeError struct {
	ID TypeID
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("engram: unknown type %q", string(e.ID))
}

// Is reports whether target is ErrUnknownType.
func (e *UnknownTypeError) Is(target error) bool { return target == ErrUnknownType }

// IsFatal reports whether err leaves the stream desynchronized. Decoding
// must not continue after a fatal error.
func IsFatal(err error) bool {
	return errors.Is(err, ErrUnknownType)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var sre *buffer.ShortReadError
	if errors.As(err, &sre) {
		return &UnderflowError{Offset: sre.Offset, Need: sre.Need, Have: sre.Have}
	}
	if errors.Is(err, buffer.ErrUnderflow) {
		return fmt.Errorf("%w: %w", ErrUnderflow, err)
	}

	return err
}
