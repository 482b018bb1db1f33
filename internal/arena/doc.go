// Package arena provides a typed bump allocator for search nodes.
//
// Nodes are carved out of fixed-size chunks (4096 items by default). A chunk
// is never moved or reallocated once created, so every pointer and Handle
// issued stays valid until Free.
//
// # Features
//
//   - Amortized O(1) allocation, one heap allocation per chunk
//   - Stable uint32 handles (Handle 0 is reserved as "no node")
//   - Optional memory budget through a MemoryAcquirer (one reservation per chunk)
//   - Release of the whole arena at once; there is no per-node free
//
// # Safety
//
// Allocation failures are returned as errors. Get panics for handles the
// arena never issued, since those can only come from a programming error.
// An Arena is not safe for concurrent use.
package arena
