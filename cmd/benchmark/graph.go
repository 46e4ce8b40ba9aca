package main

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/propertybindings/property"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-hclog"
	"github.com/olekukonko/tablewriter"
)

type graphResult struct {
	sum         int
	checksum    uint64
	evaluations uint64
	duration    time.Duration
}

func runGraph(cfg GraphConfig, logger hclog.Logger) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"size", "sources", "read%", "static%",
		"nTimes", "test", "time", "evaluations",
		"updateRate", "checksum", "title",
	})

	for _, sc := range cfg.Scenarios {
		log.Printf("Running '%s' scenario", sc.Name)
		rt := property.NewRuntime(property.WithLogger(logger.Named(sc.Name)))
		graph, err := makeGraph(rt, sc)
		if err != nil {
			return fmt.Errorf("build %q: %w", sc.Name, err)
		}

		runOnce := func() (graphResult, error) {
			before := rt.Stats().Evaluations
			start := time.Now()
			sum, checksum, err := graph.run(sc)
			return graphResult{
				sum:         sum,
				checksum:    checksum,
				evaluations: rt.Stats().Evaluations - before,
				duration:    time.Since(start),
			}, err
		}
		// warm up
		if _, err := runOnce(); err != nil {
			return fmt.Errorf("run %q: %w", sc.Name, err)
		}

		var best graphResult
		for i := 0; i < cfg.Repeats; i++ {
			log.Printf("Running '%s' scenario, iteration %d/%d %d%%", sc.Name, i+1, cfg.Repeats, (i+1)*100/cfg.Repeats)
			res, err := runOnce()
			if err != nil {
				return fmt.Errorf("run %q: %w", sc.Name, err)
			}
			if i > 0 && res.checksum != best.checksum {
				return fmt.Errorf("run %q: checksum changed between repeats", sc.Name)
			}
			if i == 0 || res.duration < best.duration {
				best = res
			}
		}

		updateRate := float64(best.evaluations) / (float64(best.duration) / float64(time.Millisecond))
		table.Append([]string{
			fmt.Sprintf("%dx%d", sc.Width, sc.Layers),
			fmt.Sprint(sc.Sources),
			fmt.Sprint(sc.ReadFraction),
			fmt.Sprint(sc.StaticFraction),
			humanize.Comma(sc.Iterations),
			sc.Name,
			fmt.Sprint(best.duration),
			humanize.Comma(int64(best.evaluations)),
			humanize.Comma(int64(updateRate)),
			fmt.Sprintf("%016x", best.checksum),
			sc.title(),
		})
	}
	table.Render()
	return nil
}

func (sc Scenario) title() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", sc.Width, sc.Layers, sc.Sources))
	if sc.StaticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if sc.ReadFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*sc.ReadFraction))
	}
	return sb.String()
}

type layeredGraph struct {
	sources []*property.Property[int]
	layers  [][]*property.Property[int]
}

func makeGraph(rt *property.Runtime, sc Scenario) (*layeredGraph, error) {
	sources := make([]*property.Property[int], sc.Width)
	for i := range sources {
		sources[i] = property.From(rt, i)
	}
	g := &layeredGraph{sources: sources}

	random := rand.New(rand.NewSource(0))
	prev := sources
	for l := int64(0); l < sc.Layers-1; l++ {
		row, err := makeRow(rt, prev, sc, random)
		if err != nil {
			return nil, err
		}
		g.layers = append(g.layers, row)
		prev = row
	}
	return g, nil
}

func makeRow(rt *property.Runtime, prev []*property.Property[int], sc Scenario, random *rand.Rand) ([]*property.Property[int], error) {
	row := make([]*property.Property[int], len(prev))
	for myDex := range prev {
		mySources := make([]*property.Property[int], 0, sc.Sources)
		for sourceDex := 0; sourceDex < int(sc.Sources); sourceDex++ {
			mySources = append(mySources, prev[(myDex+sourceDex)%len(prev)])
		}

		var b property.Binding[int]
		if random.Float64() < sc.StaticFraction {
			b = property.Func(func() int {
				sum := 0
				for _, source := range mySources {
					sum += source.Get()
				}
				return sum
			})
		} else {
			first, tail := mySources[0], mySources[1:]
			b = property.Func(func() int {
				sum := first.Get()
				shouldDrop := sum&0x1 > 0
				dropDex := sum % len(tail)
				for i := 0; i < len(tail); i++ {
					if shouldDrop && i == dropDex {
						continue
					}
					sum += tail[i].Get()
				}
				return sum
			})
		}

		p, err := property.FromBinding(rt, b)
		if err != nil {
			return nil, err
		}
		row[myDex] = p
	}
	return row, nil
}

// run writes one source per iteration and reads a fixed random subset of
// the last layer, returning the final sum of that subset and a hash of the
// values read along the way.
func (g *layeredGraph) run(sc Scenario) (int, uint64, error) {
	random := rand.New(rand.NewSource(0))
	leaves := g.layers[len(g.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - sc.ReadFraction)))
	readLeaves := removeElems(leaves, skipCount, random)

	digest := xxhash.New()
	buf := make([]byte, 0, 8)
	for i := 0; i < int(sc.Iterations); i++ {
		sourceDex := i % len(g.sources)
		if err := g.sources[sourceDex].Set(i + sourceDex); err != nil {
			return 0, 0, err
		}
		for _, leaf := range readLeaves {
			buf = binary.LittleEndian.AppendUint64(buf[:0], uint64(leaf.Get()))
			digest.Write(buf)
		}
	}

	sum := 0
	for _, leaf := range readLeaves {
		sum += leaf.Get()
	}
	return sum, digest.Sum64(), nil
}

func removeElems[T any](src []T, rmCount int, rand *rand.Rand) []T {
	copyWithRemovals := make([]T, len(src))
	copy(copyWithRemovals, src)
	for i := 0; i < rmCount; i++ {
		rmDex := rand.Intn(len(copyWithRemovals))
		copyWithRemovals[rmDex] = copyWithRemovals[len(copyWithRemovals)-1]
		copyWithRemovals = copyWithRemovals[:len(copyWithRemovals)-1]
	}
	return copyWithRemovals
}
