package main

import (
	"fmt"
	"os"
	"time"

	"github.com/delaneyj/propertybindings/property"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-hclog"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

func addOne(prev *property.Property[int]) property.Binding[int] {
	return property.Func(func() int {
		return prev.Get() + 1
	})
}

func runPropagate(cfg PropagateConfig, logger hclog.Logger, shouldRender bool) error {
	tbl := table.NewWriter()
	tbl.SetTitle("Property propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "cells", "edges", "avg", "min", "p75", "p99", "max"})

	for _, w := range cfg.Widths {
		for _, h := range cfg.Heights {
			tach := tachymeter.New(&tachymeter.Config{Size: cfg.Iterations})

			rt := property.NewRuntime(property.WithLogger(logger))
			src := property.From(rt, 1)
			for i := 0; i < w; i++ {
				last := src
				for j := 0; j < h; j++ {
					next, err := property.FromBinding(rt, addOne(last))
					if err != nil {
						return err
					}
					last = next
				}
				last.OnNotify(func(int) {})
			}

			for i := 0; i < cfg.Iterations; i++ {
				start := time.Now()
				if err := src.Set(src.Peek() + 1); err != nil {
					return err
				}
				tach.AddTime(time.Since(start))
			}

			stats := rt.Stats()
			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					humanize.Comma(int64(stats.Cells)),
					humanize.Comma(int64(stats.Edges)),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
	return nil
}
