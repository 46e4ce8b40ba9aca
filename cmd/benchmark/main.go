package main

import (
	"context"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hashicorp/go-hclog"
	"github.com/urfave/cli/v3"
)

const (
	configKey   = "config"
	logLevelKey = "log-level"
	profileKey  = "profile"
	warmupKey   = "warmup"
)

func main() {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  configKey,
			Usage: "YAML file overriding the default scenarios",
		},
		&cli.StringFlag{
			Name:  logLevelKey,
			Usage: "Runtime log level (trace, debug, info, warn, error, off)",
			Value: "off",
		},
		&cli.StringFlag{
			Name:  profileKey,
			Usage: "Write a CPU profile to this file",
		},
	}

	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Benchmark property propagation",
		Commands: []*cli.Command{
			{
				Name:  "propagate",
				Usage: "Chains of computed properties fanned out from one source",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  warmupKey,
						Usage: "Run the grid once without rendering first",
						Value: true,
					},
				}, flags...),
				Action: propagate,
			},
			{
				Name:   "graph",
				Usage:  "Layered graphs with static and dynamic dependencies",
				Flags:  flags,
				Action: graph,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type setup struct {
	cfg    Config
	logger hclog.Logger
	stop   func()
}

func prepare(cmd *cli.Command) (*setup, error) {
	cfg, err := LoadConfig(cmd.String(configKey))
	if err != nil {
		return nil, err
	}

	s := &setup{
		cfg: cfg,
		logger: hclog.New(&hclog.LoggerOptions{
			Name:  "benchmark",
			Level: hclog.LevelFromString(cmd.String(logLevelKey)),
		}),
		stop: func() {},
	}

	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, err
		}
		s.stop = func() {
			pprof.StopCPUProfile()
			f.Close()
		}
	}
	return s, nil
}

func propagate(ctx context.Context, cmd *cli.Command) error {
	s, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer s.stop()

	if cmd.Bool(warmupKey) {
		log.Printf("warming up")
		if err := runPropagate(s.cfg.Propagate, s.logger, false); err != nil {
			return err
		}
	}
	return runPropagate(s.cfg.Propagate, s.logger, true)
}

func graph(ctx context.Context, cmd *cli.Command) error {
	log.Print("Starting layered graph benchmark, please wait...")
	defer log.Print("Finished layered graph benchmark")

	s, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer s.stop()

	return runGraph(s.cfg.Graph, s.logger)
}
