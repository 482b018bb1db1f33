// Package testutil provides testing utilities for pathnode.
//
// This package is intended for use in tests and benchmarks only.
// It provides a weighted grid world, a tile key and node type satisfying
// the pathnode item contract, a seeded RNG, and a reference A* loop that
// drives a NodeList the way a pathfinder does.
//
// # Grid Worlds
//
//	rng := testutil.NewRNG(seed)
//	grid := rng.Grid(64, 64, 0.2) // 20% walls, terrain cost 1..4
//
// # Reference Search
//
//	nl, _ := pathnode.New[testutil.Node, testutil.TileKey]()
//	res, err := testutil.Search(nl, grid, start, goal)
//
// # Ground Truth
//
//	cost, ok := testutil.ShortestCost(grid, start, goal)
package testutil
