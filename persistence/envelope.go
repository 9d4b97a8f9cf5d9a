package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/engram/internal/hash"
)

// Envelope layout (little-endian):
//
//	magic   [4]byte "ENG1"
//	version uint32  format version of the payload
//	length  uint64  payload length in bytes
//	crc     uint32  CRC32C of the payload
//	payload [length]byte
const (
	envelopeMagic      = "ENG1"
	envelopeHeaderSize = 4 + 4 + 8 + 4
)

var (
	// ErrInvalidMagic is returned when data does not start with the envelope magic.
	ErrInvalidMagic = errors.New("persistence: invalid magic number")
	// ErrTruncated is returned when the envelope is shorter than its header claims.
	ErrTruncated = errors.New("persistence: truncated envelope")
)

// ChecksumMismatchError is returned when checksum verification fails.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

// IsChecksumMismatch returns true if err is or wraps a checksum mismatch error.
func IsChecksumMismatch(err error) bool {
	var cm *ChecksumMismatchError
	return errors.As(err, &cm)
}

// Seal wraps payload in an envelope tagged with version.
func Seal(version uint32, payload []byte) []byte {
	out := make([]byte, envelopeHeaderSize+len(payload))
	copy(out, envelopeMagic)
	binary.LittleEndian.PutUint32(out[4:], version)
	binary.LittleEndian.PutUint64(out[8:], uint64(len(payload)))
	binary.LittleEndian.PutUint32(out[16:], hash.CRC32C(payload))
	copy(out[envelopeHeaderSize:], payload)
	return out
}

// Open verifies an envelope and returns the format version and payload.
// The payload aliases data.
func Open(data []byte) (uint32, []byte, error) {
	if len(data) < len(envelopeMagic) || string(data[:len(envelopeMagic)]) != envelopeMagic {
		return 0, nil, ErrInvalidMagic
	}
	if len(data) < envelopeHeaderSize {
		return 0, nil, fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncated, envelopeHeaderSize, len(data))
	}

	version := binary.LittleEndian.Uint32(data[4:])
	length := binary.LittleEndian.Uint64(data[8:])
	expected := binary.LittleEndian.Uint32(data[16:])

	body := data[envelopeHeaderSize:]
	if length != uint64(len(body)) {
		if length > uint64(len(body)) {
			return 0, nil, fmt.Errorf("%w: payload needs %d bytes, have %d", ErrTruncated, length, len(body))
		}
		return 0, nil, fmt.Errorf("persistence: %d trailing bytes after payload", uint64(len(body))-length)
	}

	if actual := hash.CRC32C(body); actual != expected {
		return 0, nil, &ChecksumMismatchError{Expected: expected, Actual: actual}
	}

	return version, body, nil
}
