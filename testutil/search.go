package testutil

import (
	"container/heap"

	"github.com/hupe1980/pathnode"
)

// NodeList is the node list type used with grid worlds.
type NodeList = pathnode.NodeList[Node, TileKey, *Node]

// Result contains the outcome of a search.
type Result struct {
	Path     []TileKey
	Cost     float64
	Expanded int
	Found    bool
}

// Search runs A* from start to the tile of goal (any arrival direction) on
// nl. Candidates are built in the node returned by CreateNewNode before the
// membership checks, so rejected candidates leave that node uncommitted and
// its storage is reused.
func Search(nl *NodeList, g *Grid, start, goal TileKey) (Result, error) {
	target := goal.Tile()

	first, err := nl.CreateNewNode()
	if err != nil {
		return Result{}, err
	}
	first.Key = start
	first.Cost = 0
	first.Estimate = Manhattan(start, target)
	nl.InsertOpenNode(first)

	expanded := 0
	for {
		cur, ok := nl.PopBestOpenNode()
		if !ok {
			return Result{Expanded: expanded}, nil
		}
		nl.InsertClosedNode(cur)

		if cur.Key.Tile() == target {
			nl.FoundBestNode(cur)
			nodes := nl.Path(cur)
			path := make([]TileKey, len(nodes))
			for i, n := range nodes {
				path[i] = n.Key
			}
			return Result{Path: path, Cost: cur.Cost, Expanded: expanded, Found: true}, nil
		}
		expanded++

		for _, nb := range g.Neighbors(cur.Key) {
			n, err := nl.CreateNewNode()
			if err != nil {
				return Result{Expanded: expanded}, err
			}
			n.Key = nb.Key
			n.Cost = cur.Cost + nb.Cost
			n.Estimate = n.Cost + Manhattan(nb.Key, target)
			n.SetParent(cur.Handle())

			if _, closed := nl.FindClosedNode(nb.Key); closed {
				continue
			}
			if open, ok := nl.FindOpenNode(nb.Key); ok {
				if n.Cost >= open.Cost {
					continue
				}
				// Decrease-key: take the open node out, update it in place
				// and queue it again.
				nl.PopOpenNode(nb.Key)
				open.Cost = n.Cost
				open.Estimate = n.Estimate
				open.SetParent(cur.Handle())
				nl.InsertOpenNode(open)
				continue
			}
			nl.InsertOpenNode(n)
		}
	}
}

type dijkstraItem struct {
	key  TileKey
	cost float64
}

type dijkstraQueue []dijkstraItem

func (q dijkstraQueue) Len() int           { return len(q) }
func (q dijkstraQueue) Less(i, j int) bool { return q[i].cost < q[j].cost }
func (q dijkstraQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *dijkstraQueue) Push(x any) { *q = append(*q, x.(dijkstraItem)) }

func (q *dijkstraQueue) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}

// ShortestCost returns the optimal cost from start to the tile of goal,
// computed with a plain Dijkstra over map-based state. It is the ground
// truth for Search.
func ShortestCost(g *Grid, start, goal TileKey) (float64, bool) {
	target := goal.Tile()
	best := map[TileKey]float64{start: 0}
	done := make(map[TileKey]bool)

	q := &dijkstraQueue{{key: start}}
	for q.Len() > 0 {
		cur := heap.Pop(q).(dijkstraItem)
		if done[cur.key] {
			continue
		}
		done[cur.key] = true
		if cur.key.Tile() == target {
			return cur.cost, true
		}
		for _, nb := range g.Neighbors(cur.key) {
			cost := cur.cost + nb.Cost
			if c, ok := best[nb.Key]; ok && c <= cost {
				continue
			}
			best[nb.Key] = cost
			heap.Push(q, dijkstraItem{key: nb.Key, cost: cost})
		}
	}
	return 0, false
}
