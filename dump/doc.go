// Package dump reads and writes diagnostic snapshots of a node list.
//
// A snapshot records which arena handles are open, closed or uncommitted,
// plus an optional opaque record per node produced by the caller's encoder.
// Visualization and debugging tools read snapshots back with Read; nothing in
// a snapshot feeds back into a running search.
//
// # Format
//
//	magic   [4]byte  "PNDM"
//	version uint8
//	codec   uint8    Compression of the payload
//	search  [16]byte search ID (UUID)
//	total, open, closed, uncommitted, chunk size   uint32 each
//	raw size, stored size, CRC32C of stored bytes  uint32 each
//	payload
//
// The payload holds the open and closed handle sets as portable roaring
// bitmaps followed by the node records, all length-prefixed with uvarints.
// It is compressed with LZ4 or ZSTD; if compression does not pay off the
// payload is stored raw and the codec byte says so.
//
// All integers are little endian.
package dump
