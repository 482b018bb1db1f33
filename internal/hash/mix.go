package hash

// Mix64 is the MurmurHash3 64-bit finalizer.
//
// Keys derived from bounded coordinate spaces (tile index, direction bits)
// tend to hash into a narrow band of low bits. Mixing spreads them across the
// whole word so power-of-two tables can mask the low bits directly.
func Mix64(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}
