// Package conv provides checked integer conversions.
//
// Handles are uint32 while Go lengths are int, and dump files carry uvarint
// counts that must be validated before they size an allocation. Every
// conversion here reports ErrOverflow instead of silently truncating.
//
// For conversions that are provably safe by construction (loop indices,
// values already bounded by a chunk size), use direct casts instead.
package conv
