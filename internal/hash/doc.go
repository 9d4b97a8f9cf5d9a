// Package hash provides the CRC32-Castagnoli checksum used by engram.
//
// CRC32C guards persisted envelopes and is the checksum S3 verifies on
// upload. Go's crc32 package uses hardware instructions (SSE4.2, ARM CRC)
// when available.
//
//	checksum := hash.CRC32C(data)
package hash
