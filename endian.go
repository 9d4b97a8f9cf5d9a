package engram

import (
	"reflect"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// The wire is little-endian. Values are copied as-is on little-endian hosts
// and byte-swapped per element elsewhere.
var bigEndianHost = cpu.IsBigEndian

// Fixed is the set of types whose encoding is their fixed-width memory
// representation. int and uint are excluded because their width depends on
// the platform; use WriteInt and WriteUint for those.
type Fixed interface {
	~bool |
		~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func sizeOf[T Fixed]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func isBool[T Fixed]() bool {
	return reflect.TypeFor[T]().Kind() == reflect.Bool
}

// bytesOf returns the memory of s as a byte slice without copying.
func bytesOf[T Fixed](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*sizeOf[T]())
}

// swapEach reverses every size-byte group of p in place.
func swapEach(p []byte, size int) {
	if size < 2 {
		return
	}
	for i := 0; i+size <= len(p); i += size {
		w := p[i : i+size]
		for l, r := 0, size-1; l < r; l, r = l+1, r-1 {
			w[l], w[r] = w[r], w[l]
		}
	}
}

func putFixed[T Fixed](dst []byte, v T) {
	copy(dst, unsafe.Slice((*byte)(unsafe.Pointer(&v)), len(dst)))
	if bigEndianHost {
		swapEach(dst, len(dst))
	}
}

func getFixed[T Fixed](p []byte) T {
	if isBool[T]() {
		var v T
		*(*bool)(unsafe.Pointer(&v)) = p[0] != 0
		return v
	}
	var v T
	dst := unsafe.Slice((*byte)(unsafe.Pointer(&v)), len(p))
	copy(dst, p)
	if bigEndianHost {
		swapEach(dst, len(dst))
	}
	return v
}
