package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/propertybindings/anchors"
	"github.com/delaneyj/propertybindings/dot"
	"github.com/delaneyj/propertybindings/items"
	"github.com/delaneyj/propertybindings/property"
	"github.com/urfave/cli/v3"
)

const (
	childrenKey = "children"
	outKey      = "out"
	focusKey    = "focus"
	upstreamKey = "upstream"
)

func main() {
	cmd := &cli.Command{
		Name:  "dotgen",
		Usage: "Write the property graph of a demo column layout as Graphviz DOT",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  childrenKey,
				Usage: "Number of items stacked in the column",
				Value: 3,
			},
			&cli.StringFlag{
				Name:  outKey,
				Usage: "Output file",
				Value: "layout.dot",
			},
			&cli.IntFlag{
				Name:  focusKey,
				Usage: "Only render this property id and what depends on it (-1 renders everything)",
				Value: -1,
			},
			&cli.BoolFlag{
				Name:  upstreamKey,
				Usage: "With --focus, render what the property reads instead of what reads it",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Graph generation started")
	defer func() {
		log.Printf("Graph generation finished in %v", time.Since(start))
	}()

	rt := property.NewRuntime()
	if _, err := demoLayout(rt, int(cmd.Uint(childrenKey))); err != nil {
		return err
	}

	snap := focus(rt.Snapshot(), cmd.Int(focusKey), cmd.Bool(upstreamKey))
	log.Printf("%d properties, %d edges", len(snap.Nodes), len(snap.Edges))

	out := cmd.String(outKey)
	if err := os.WriteFile(out, []byte(dot.Render("layout", snap)), 0644); err != nil {
		return err
	}
	log.Printf("Wrote %s", out)
	return nil
}

// focus narrows snap to id and its transitive dependents, or its transitive
// dependencies when upstream is set. A negative id keeps the whole graph.
func focus(snap property.Snapshot, id int64, upstream bool) property.Snapshot {
	if id < 0 {
		return snap
	}
	target := uint32(id)
	keep := snap.Downstream(target)
	if upstream {
		keep = snap.Upstream(target)
	}
	keep.Add(target)
	return snap.Subgraph(keep)
}

// demoLayout builds a window holding a column of n items, the column filling
// the window horizontally and centered vertically.
func demoLayout(rt *property.Runtime, n int) (*items.ColumnLayout, error) {
	window := items.NewItem(rt)
	if err := window.Geometry().Resize(640, 480); err != nil {
		return nil, err
	}

	column := items.NewColumnLayout(rt)
	for i := 0; i < n; i++ {
		child := items.NewItem(rt)
		if err := child.Geometry().Resize(float64(100+20*i), float64(30+10*(i%3))); err != nil {
			return nil, err
		}
		if err := column.AddChild(child); err != nil {
			return nil, fmt.Errorf("add child %d: %w", i, err)
		}
	}

	wg := window.Geometry()
	err := anchors.New().
		Left(property.DescribeFunc("window left", wg.Left)).
		Right(property.DescribeFunc("window right", wg.Right)).
		VerticalCenter(property.DescribeFunc("window center", wg.VerticalCenter)).
		Apply(column.Geometry())
	if err != nil {
		return nil, err
	}
	return column, nil
}
