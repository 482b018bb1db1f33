package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToUint32(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := IntToUint32(0)
		assert.NoError(t, err)
		assert.Equal(t, uint32(0), got)
	})

	t.Run("valid max int32", func(t *testing.T) {
		got, err := IntToUint32(math.MaxInt32)
		assert.NoError(t, err)
		assert.Equal(t, uint32(math.MaxInt32), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := IntToUint32(-1)
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("invalid too large", func(t *testing.T) {
		if math.MaxInt == math.MaxInt32 {
			t.Skip("int is 32 bits")
		}
		_, err := IntToUint32(int(int64(math.MaxUint32) + 1))
		assert.ErrorIs(t, err, ErrOverflow)
	})
}

func TestUint64ToUint32(t *testing.T) {
	got, err := Uint64ToUint32(42)
	assert.NoError(t, err)
	assert.Equal(t, uint32(42), got)

	_, err = Uint64ToUint32(math.MaxUint32 + 1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestUint64ToInt(t *testing.T) {
	got, err := Uint64ToInt(7)
	assert.NoError(t, err)
	assert.Equal(t, 7, got)

	_, err = Uint64ToInt(math.MaxUint64)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestMulInt64(t *testing.T) {
	got, err := MulInt64(4096, 64)
	assert.NoError(t, err)
	assert.Equal(t, int64(262144), got)

	got, err = MulInt64(0, math.MaxInt64)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), got)

	_, err = MulInt64(math.MaxInt64, 2)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = MulInt64(-1, 2)
	assert.ErrorIs(t, err, ErrOverflow)
}
