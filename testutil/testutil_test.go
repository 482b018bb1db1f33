package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pathnode"
)

func TestGrid_Neighbors(t *testing.T) {
	g := NewGrid(3, 3)
	g.SetCost(1, 0, Wall)

	nbs := g.Neighbors(TileKey{X: 0, Y: 0})
	require.Len(t, nbs, 1)
	assert.Equal(t, TileKey{X: 0, Y: 1, Dir: DirSouth}, nbs[0].Key)
	assert.Equal(t, 1.0, nbs[0].Cost)

	// Turning costs one extra.
	nbs = g.Neighbors(TileKey{X: 1, Y: 1, Dir: DirSouth})
	for _, nb := range nbs {
		if nb.Key.Dir == DirSouth {
			assert.Equal(t, 1.0, nb.Cost)
		} else {
			assert.Equal(t, 2.0, nb.Cost)
		}
	}
}

func TestTileKey_Hash(t *testing.T) {
	a := TileKey{X: 1, Y: 2, Dir: DirEast}
	b := TileKey{X: 1, Y: 2, Dir: DirWest}
	assert.NotEqual(t, a.Hash(), b.Hash())
	assert.Equal(t, a.Tile(), b.Tile())
}

func TestRNG_Grid(t *testing.T) {
	g := NewRNG(4711).Grid(16, 8, 0.3)

	assert.Equal(t, 16, g.Width())
	assert.Equal(t, 8, g.Height())
	assert.NotEqual(t, Wall, g.Cost(0, 0))
	assert.NotEqual(t, Wall, g.Cost(15, 7))
	assert.Equal(t, Wall, g.Cost(-1, 0))
	assert.Equal(t, Wall, g.Cost(16, 0))
}

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(42)
	a := rng.Estimates(10, 100)
	rng.Reset()
	b := rng.Estimates(10, 100)
	assert.Equal(t, a, b)
	assert.Equal(t, int64(42), rng.Seed())
}

func TestSearch_MatchesShortestCost(t *testing.T) {
	rng := NewRNG(7)
	for i := 0; i < 20; i++ {
		g := rng.Grid(24, 24, 0.25)
		start, goal := TileKey{}, TileKey{X: 23, Y: 23}

		nl, err := pathnode.New[Node, TileKey]()
		require.NoError(t, err)

		res, err := Search(nl, g, start, goal)
		require.NoError(t, err)

		want, ok := ShortestCost(g, start, goal)
		require.Equal(t, ok, res.Found)
		if ok {
			assert.InDelta(t, want, res.Cost, 1e-9)
			assert.Equal(t, start, res.Path[0])
			assert.Equal(t, goal.Tile(), res.Path[len(res.Path)-1].Tile())
		}
		require.NoError(t, nl.Close())
	}
}

func TestSearch_Unreachable(t *testing.T) {
	g := NewGrid(3, 3)
	for y := 0; y < 3; y++ {
		g.SetCost(1, y, Wall)
	}

	nl, err := pathnode.New[Node, TileKey]()
	require.NoError(t, err)
	defer nl.Close()

	res, err := Search(nl, g, TileKey{}, TileKey{X: 2, Y: 2})
	require.NoError(t, err)
	assert.False(t, res.Found)
	// Column 0 in both directions plus the start state.
	assert.Equal(t, 5, res.Expanded)
}
