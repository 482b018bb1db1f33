// Package hash provides hashing utilities.
//
// # Key Mixing
//
// Mix64 turns caller-supplied key hashes into well-distributed 64-bit
// values for the open-addressing membership index.
//
// # CRC32-Castagnoli (CRC32C)
//
// Diagnostic dumps are checksummed with CRC32C:
//
//	checksum := hash.CRC32C(payload)
//
// Readers verify while streaming:
//
//	h := hash.NewCRC32C()
//	io.Copy(dst, io.TeeReader(src, h))
//	ok := h.Sum32() == checksum
package hash
