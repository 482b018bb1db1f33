package pathnode

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intKey int

func (k intKey) Hash() uint64 { return uint64(k) } //nolint:gosec // test key

type testNode struct {
	Slot
	key intKey
	est float64
}

func (n *testNode) GetKey() intKey       { return n.key }
func (n *testNode) GetEstimate() float64 { return n.est }

// logLines decodes JSON log output.
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_Lifecycle(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	nl, err := New[testNode, intKey](WithLogger(logger), WithChunkSize(2))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		n, err := nl.CreateNewNode()
		require.NoError(t, err)
		n.key = intKey(i)
		nl.InsertOpenNode(n)
	}
	require.NoError(t, nl.Close())

	lines := logLines(t, &buf)
	require.Len(t, lines, 3)

	assert.Equal(t, "node chunk allocated", lines[0]["msg"])
	assert.Equal(t, float64(2), lines[0]["capacity"])
	assert.Equal(t, float64(4), lines[1]["capacity"])
	assert.Equal(t, "node list released", lines[2]["msg"])
	assert.Equal(t, float64(3), lines[2]["open"])
	for _, l := range lines {
		assert.Equal(t, nl.ID().String(), l["search_id"])
	}
}

func TestLogger_Precondition(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, nil))

	nl, err := New[testNode, intKey](WithLogger(logger))
	require.NoError(t, err)
	defer nl.Close()

	assert.Panics(t, func() { nl.DequeueBestOpenNode() })

	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "ERROR", lines[0]["level"])
	assert.Equal(t, "DequeueBestOpenNode", lines[0]["op"])
	assert.Equal(t, ErrEmptyQueue.Error(), lines[0]["error"])
}

func TestLogger_Exhausted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, nil))

	nl, err := New[testNode, intKey](WithLogger(logger), WithChunkSize(1), WithMaxChunks(1))
	require.NoError(t, err)
	defer nl.Close()

	n, err := nl.CreateNewNode()
	require.NoError(t, err)
	nl.FoundBestNode(n)
	_, err = nl.CreateNewNode()
	require.ErrorIs(t, err, ErrResourceExhausted)

	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "node allocation failed", lines[0]["msg"])
	assert.Equal(t, float64(1), lines[0]["total"])
}

func TestNoopLogger(t *testing.T) {
	o := applyOptions([]Option{WithLogger(nil)})
	require.NotNil(t, o.logger)
	assert.False(t, o.logger.Enabled(t.Context(), slog.LevelError))
	assert.NotPanics(t, func() { o.logger.LogDump(t.Context(), 1, nil) })
}
