package pathnode_test

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/pathnode"
	"github.com/hupe1980/pathnode/dump"
	"github.com/hupe1980/pathnode/resource"
	"github.com/hupe1980/pathnode/testutil"
)

// Example demonstrates the open/closed life cycle of nodes.
func Example() {
	nl, err := pathnode.New[testutil.Node, testutil.TileKey]()
	if err != nil {
		log.Fatal(err)
	}
	defer nl.Close()

	for i, estimate := range []float64{5, 3, 7} {
		n, err := nl.CreateNewNode()
		if err != nil {
			log.Fatal(err)
		}
		n.Key = testutil.TileKey{X: int32(i)}
		n.Estimate = estimate
		nl.InsertOpenNode(n)
	}

	for {
		n, ok := nl.PopBestOpenNode()
		if !ok {
			break
		}
		nl.InsertClosedNode(n)
		fmt.Println(n.Key.X, n.Estimate)
	}
	fmt.Println("open:", nl.OpenCount(), "closed:", nl.ClosedCount())

	// Output:
	// 1 3
	// 0 5
	// 2 7
	// open: 0 closed: 3
}

// Example_gridSearch runs a complete A* search on a small grid.
func Example_gridSearch() {
	g := testutil.NewGrid(5, 5)
	for y := 0; y < 4; y++ {
		g.SetCost(2, y, testutil.Wall)
	}

	nl, err := pathnode.New[testutil.Node, testutil.TileKey]()
	if err != nil {
		log.Fatal(err)
	}
	defer nl.Close()

	res, err := testutil.Search(nl, g, testutil.TileKey{}, testutil.TileKey{X: 4, Y: 0})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("found:", res.Found)
	fmt.Println("steps:", len(res.Path)-1)
	fmt.Println("cost:", res.Cost)
	// Output:
	// found: true
	// steps: 12
	// cost: 14
}

// Example_memoryBudget shows searches sharing one memory budget.
func Example_memoryBudget() {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})

	nl, err := pathnode.New[testutil.Node, testutil.TileKey](
		pathnode.WithResourceController(rc),
		pathnode.WithChunkSize(1024),
	)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := nl.CreateNewNode(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("reserved:", rc.MemoryUsage() > 0)

	_ = nl.Close()
	fmt.Println("after close:", rc.MemoryUsage())
	// Output:
	// reserved: true
	// after close: 0
}

// Example_dump writes a diagnostic snapshot and reads it back.
func Example_dump() {
	nl, err := pathnode.New[testutil.Node, testutil.TileKey]()
	if err != nil {
		log.Fatal(err)
	}
	defer nl.Close()

	for x := int32(0); x < 3; x++ {
		n, _ := nl.CreateNewNode()
		n.Key = testutil.TileKey{X: x}
		nl.InsertOpenNode(n)
	}
	best, _ := nl.PopBestOpenNode()
	nl.InsertClosedNode(best)

	var buf bytes.Buffer
	if err := nl.WriteDump(context.Background(), &buf, nil, dump.WithCompression(dump.CompressionLZ4)); err != nil {
		log.Fatal(err)
	}

	s, err := dump.Read(&buf)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("total:", s.Total, "open:", s.OpenCount, "closed:", s.ClosedCount)
	fmt.Println("first node:", s.StateOf(1))
	// Output:
	// total: 3 open: 2 closed: 1
	// first node: closed
}
