// cmd/bench/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/opd-ai/go-particles/pkg/bench"
	"github.com/opd-ai/go-particles/pkg/config"
	"github.com/opd-ai/go-particles/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "Configuration file for world, spawn and quadtree settings")
	counts := flag.String("counts", "100,250,500,1000,2000", "Comma separated particle counts")
	ticks := flag.Int("ticks", 200, "Ticks per strategy and count")
	seed := flag.Uint64("seed", 1, "Population seed")
	flag.Parse()

	logger := logging.New(os.Stderr)
	ctx := logging.WithRunID(context.Background(), "")

	opts := bench.DefaultOptions()
	if *configPath != "" {
		cfg, err := config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
			os.Exit(1)
		}
		opts.World = cfg.Bounds()
		opts.Spawn = cfg.SpawnConfig()
		opts.Tree = cfg.QuadTree
	}

	parsed, err := parseCounts(*counts)
	if err != nil {
		logger.Error(ctx, "Invalid particle counts", err, "counts", *counts)
		os.Exit(1)
	}
	opts.Counts = parsed
	opts.Ticks = *ticks
	opts.Seed = *seed

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := bench.Run(ctx, opts, logger)
	if report != nil && len(report.Comparisons) > 0 {
		fmt.Print(report.Render())
	}
	if err != nil {
		logger.Error(ctx, "Benchmark failed", err)
		stop()
		os.Exit(1)
	}
	if missed := report.Disagreements(); len(missed) > 0 {
		logger.Error(ctx, "Quadtree missed overlapping pairs", nil, "counts", missed)
		stop()
		os.Exit(2)
	}
}

func parseCounts(s string) ([]int, error) {
	var counts []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("bad count %q: %w", field, err)
		}
		counts = append(counts, n)
	}
	if len(counts) == 0 {
		return nil, bench.ErrNoCounts
	}
	return counts, nil
}
