package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC32C(t *testing.T) {
	// Known answer from RFC 3720 (iSCSI): 32 bytes of zeros.
	assert.Equal(t, uint32(0x8a9136aa), CRC32C(make([]byte, 32)))

	h := NewCRC32C()
	_, _ = h.Write([]byte("hello "))
	_, _ = h.Write([]byte("world"))
	assert.Equal(t, CRC32C([]byte("hello world")), h.Sum32())
}

func TestMix64_SpreadsLowBits(t *testing.T) {
	const mask = 1023
	buckets := make(map[uint64]struct{})
	for i := uint64(0); i < 1024; i++ {
		buckets[Mix64(i<<16)&mask] = struct{}{}
	}
	// Unmixed, every key lands in bucket 0.
	assert.Greater(t, len(buckets), 512)
}
