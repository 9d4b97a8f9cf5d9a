// Package mmap provides read-only memory-mapped file access.
//
// LocalStore maps saved streams instead of reading them into the heap, so a
// blob can be decoded straight from the page cache.
//
// # Usage
//
//	m, err := mmap.Open("state.eng")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile (Advise is a no-op)
//
// # Thread Safety
//
// A Mapping is safe for concurrent reads. Close is idempotent, but callers
// must not touch slices returned by Bytes after Close returns.
package mmap
