package testutil

import (
	"math"

	"github.com/hupe1980/pathnode"
)

// Wall marks an impassable cell.
const Wall uint8 = 0

// Direction is the heading a tile was entered with.
type Direction uint8

const (
	DirNone Direction = iota
	DirNorth
	DirEast
	DirSouth
	DirWest
)

var steps = [...]struct {
	dir    Direction
	dx, dy int32
}{
	{DirNorth, 0, -1},
	{DirEast, 1, 0},
	{DirSouth, 0, 1},
	{DirWest, -1, 0},
}

// TileKey identifies a search state: a cell plus the direction it was
// entered from.
type TileKey struct {
	X, Y int32
	Dir  Direction
}

// Hash implements pathnode.Key. The value is deliberately simple; the node
// list mixes it before use.
func (k TileKey) Hash() uint64 {
	return uint64(uint32(k.X))<<32 | uint64(uint32(k.Y))<<3 | uint64(k.Dir) //nolint:gosec // bit packing
}

// Tile returns the key without its direction.
func (k TileKey) Tile() TileKey {
	return TileKey{X: k.X, Y: k.Y}
}

// Node is a search node for grid worlds.
type Node struct {
	pathnode.Slot
	Key      TileKey
	Cost     float64 // cost so far
	Estimate float64 // cost so far plus heuristic
}

// GetKey implements pathnode.Item.
func (n *Node) GetKey() TileKey { return n.Key }

// GetEstimate implements pathnode.Item.
func (n *Node) GetEstimate() float64 { return n.Estimate }

// Grid is a 4-connected grid with per-cell terrain costs.
// Entering a cell costs its terrain value; turning costs one extra.
type Grid struct {
	width, height int
	costs         []uint8
}

// NewGrid creates a grid with every cell at cost 1.
func NewGrid(width, height int) *Grid {
	costs := make([]uint8, width*height)
	for i := range costs {
		costs[i] = 1
	}
	return &Grid{width: width, height: height, costs: costs}
}

// Width returns the grid width.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height.
func (g *Grid) Height() int { return g.height }

// SetCost sets the terrain cost of a cell. Wall blocks it.
func (g *Grid) SetCost(x, y int, cost uint8) {
	g.costs[y*g.width+x] = cost
}

// Cost returns the terrain cost of a cell, Wall when outside the grid.
func (g *Grid) Cost(x, y int32) uint8 {
	if x < 0 || y < 0 || int(x) >= g.width || int(y) >= g.height {
		return Wall
	}
	return g.costs[int(y)*g.width+int(x)]
}

// Neighbor is a reachable state and the cost to enter it.
type Neighbor struct {
	Key  TileKey
	Cost float64
}

// Neighbors returns the states reachable from k in one step.
func (g *Grid) Neighbors(k TileKey) []Neighbor {
	out := make([]Neighbor, 0, len(steps))
	for _, s := range steps {
		x, y := k.X+s.dx, k.Y+s.dy
		c := g.Cost(x, y)
		if c == Wall {
			continue
		}
		cost := float64(c)
		if k.Dir != DirNone && k.Dir != s.dir {
			cost++
		}
		out = append(out, Neighbor{Key: TileKey{X: x, Y: y, Dir: s.dir}, Cost: cost})
	}
	return out
}

// Manhattan is an admissible heuristic for Grid.
func Manhattan(from, to TileKey) float64 {
	return math.Abs(float64(from.X-to.X)) + math.Abs(float64(from.Y-to.Y))
}
