package pathnode_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pathnode"
	"github.com/hupe1980/pathnode/dump"
	"github.com/hupe1980/pathnode/resource"
	"github.com/hupe1980/pathnode/testutil"
)

func encodeNode(n *node) ([]byte, error) {
	return json.Marshal(n.Key)
}

func TestWriteDump(t *testing.T) {
	for _, c := range []dump.Compression{dump.CompressionNone, dump.CompressionLZ4, dump.CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
			nl := newList(t, pathnode.WithResourceController(rc), pathnode.WithChunkSize(128))

			g := testutil.NewRNG(1).Grid(16, 16, 0.1)
			res, err := testutil.Search(nl, g, testutil.TileKey{}, testutil.TileKey{X: 15, Y: 15})
			require.NoError(t, err)
			require.True(t, res.Found)

			var buf bytes.Buffer
			require.NoError(t, nl.WriteDump(context.Background(), &buf, encodeNode, dump.WithCompression(c)))

			s, err := dump.Read(&buf)
			require.NoError(t, err)

			assert.Equal(t, nl.ID(), s.SearchID)
			assert.Equal(t, uint32(nl.TotalCount()), s.Total)
			assert.Equal(t, uint32(nl.OpenCount()), s.OpenCount)
			assert.Equal(t, uint32(nl.ClosedCount()), s.ClosedCount)
			assert.Equal(t, uint32(128), s.ChunkSize)
			require.Len(t, s.Records, nl.TotalCount())

			nl.Visit(func(n *node, state pathnode.State) bool {
				h := uint32(n.Handle())
				assert.Equal(t, state, s.StateOf(h))

				rec, ok := s.Record(h)
				require.True(t, ok)
				var k testutil.TileKey
				require.NoError(t, json.Unmarshal(rec, &k))
				assert.Equal(t, n.Key, k)
				return true
			})
		})
	}
}

func TestWriteDump_WithoutRecords(t *testing.T) {
	nl := newList(t)
	addOpen(t, nl, 1, 1)
	_, err := nl.CreateNewNode()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, nl.WriteDump(context.Background(), &buf, nil))

	s, err := dump.Read(&buf)
	require.NoError(t, err)
	assert.Empty(t, s.Records)
	assert.Equal(t, uint32(2), s.Uncommitted)
	assert.Equal(t, dump.StateUncommitted, s.StateOf(2))
	assert.Equal(t, dump.StateOpen, s.StateOf(1))
}

func TestWriteDump_EncodeError(t *testing.T) {
	nl := newList(t)
	addOpen(t, nl, 1, 1)

	errEncode := errors.New("encode failed")
	var buf bytes.Buffer
	err := nl.WriteDump(context.Background(), &buf, func(*node) ([]byte, error) {
		return nil, errEncode
	})
	assert.ErrorIs(t, err, errEncode)
	assert.Zero(t, buf.Len())
}

func TestWriteDump_DoesNotMutate(t *testing.T) {
	nl := newList(t)
	for x := int32(0); x < 10; x++ {
		addOpen(t, nl, x, float64(10-x))
	}
	before := nl.Stats()

	require.NoError(t, nl.WriteDump(context.Background(), &bytes.Buffer{}, encodeNode))

	assert.Equal(t, before, nl.Stats())
	best, ok := nl.PopBestOpenNode()
	require.True(t, ok)
	assert.Equal(t, int32(9), best.Key.X)
}
