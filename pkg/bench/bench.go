// Package bench compares the collision strategies over identical seeded
// populations.
package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/opd-ai/go-particles/pkg/collision"
	"github.com/opd-ai/go-particles/pkg/engine"
	"github.com/opd-ai/go-particles/pkg/logging"
	"github.com/opd-ai/go-particles/pkg/particle"
	"github.com/opd-ai/go-particles/pkg/physics"
	"github.com/opd-ai/go-particles/pkg/spatial"
)

// ErrNoCounts is returned when there is nothing to compare
var ErrNoCounts = errors.New("no particle counts to compare")

// Options controls a comparison run
type Options struct {
	Counts []int
	Ticks  int
	Seed   uint64
	World  physics.Rect
	Spawn  particle.SpawnConfig
	Tree   spatial.Config
}

// DefaultOptions compares 100 to 2000 particles over 200 ticks in the
// default world
func DefaultOptions() Options {
	return Options{
		Counts: []int{100, 250, 500, 1000, 2000},
		Ticks:  200,
		Seed:   1,
		World:  physics.NewRect(0, 0, 1200, 800),
		Spawn:  particle.DefaultSpawnConfig(),
		Tree:   spatial.DefaultConfig(),
	}
}

// Validate checks that the options describe a runnable comparison
func (o Options) Validate() error {
	if len(o.Counts) == 0 {
		return ErrNoCounts
	}
	for _, n := range o.Counts {
		if n < 0 {
			return fmt.Errorf("particle count %d is negative", n)
		}
	}
	if o.Ticks <= 0 {
		return fmt.Errorf("tick count %d must be positive", o.Ticks)
	}
	if o.World.Width <= 0 || o.World.Height <= 0 {
		return fmt.Errorf("world size %vx%v must be positive", o.World.Width, o.World.Height)
	}
	if o.Tree.Capacity < 1 || o.Tree.MaxDepth < 0 {
		return fmt.Errorf("quadtree capacity %d and max depth %d are invalid", o.Tree.Capacity, o.Tree.MaxDepth)
	}
	return nil
}

// Result is the outcome of one strategy over one population
type Result struct {
	Strategy   collision.Strategy
	Ticks      int
	Total      time.Duration
	Collisions int
	FirstTick  int

	// Largest tree seen, indexed strategy only
	TreeNodes int
	TreeDepth int
}

// PerTick returns the mean wall time of one tick
func (r Result) PerTick() time.Duration {
	if r.Ticks == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Ticks)
}

// Comparison holds both strategies for one particle count
type Comparison struct {
	Count      int
	Exhaustive Result
	Indexed    Result

	// Overlapping pairs on the first tick, and how many of them the index
	// failed to offer as candidates
	Pairs  int
	Missed int
}

// Agree reports whether the index offered every overlapping pair
func (c Comparison) Agree() bool {
	return c.Missed == 0
}

// Speedup is exhaustive time over indexed time
func (c Comparison) Speedup() float64 {
	if c.Indexed.Total <= 0 {
		return 0
	}
	return float64(c.Exhaustive.Total) / float64(c.Indexed.Total)
}

// Report is the outcome of a whole run
type Report struct {
	Options     Options
	Comparisons []Comparison
}

// Disagreements returns the counts for which the index missed a pair
func (r *Report) Disagreements() []int {
	var counts []int
	for _, c := range r.Comparisons {
		if !c.Agree() {
			counts = append(counts, c.Count)
		}
	}
	return counts
}

// Run compares the strategies for every count in opts. Each count gets one
// population, seeded from opts.Seed and the count, which both strategies
// start from. ctx is checked between strategy runs.
func Run(ctx context.Context, opts Options, logger *logging.Logger) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, logging.WrapError(err, "invalid benchmark options")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	report := &Report{Options: opts}
	for _, count := range opts.Counts {
		src := particle.NewSource(opts.Seed + uint64(count))
		population := particle.CreateParticles(count, opts.World, src, opts.Spawn)

		cmp := Comparison{Count: count}
		cmp.Pairs, cmp.Missed = VerifyCandidates(population.Clone(), opts.World, opts.Tree)

		for _, strategy := range []collision.Strategy{collision.Exhaustive, collision.Indexed} {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			result := RunStrategy(population.Clone(), opts.World, strategy, opts.Ticks, opts.Tree)
			if strategy == collision.Exhaustive {
				cmp.Exhaustive = result
			} else {
				cmp.Indexed = result
			}
		}

		logger.Info(ctx, "comparison finished",
			"particles", count,
			"exhaustive_per_tick", cmp.Exhaustive.PerTick(),
			"indexed_per_tick", cmp.Indexed.PerTick(),
			"pairs", cmp.Pairs,
			"missed", cmp.Missed,
		)
		if !cmp.Agree() {
			logger.Warn(ctx, "index missed overlapping pairs", "particles", count, "missed", cmp.Missed)
		}
		report.Comparisons = append(report.Comparisons, cmp)
	}
	return report, nil
}

// RunStrategy runs ticks on ps with one strategy and times them
func RunStrategy(ps particle.Particles, bounds physics.Rect, strategy collision.Strategy, ticks int, tree spatial.Config) Result {
	result := Result{Strategy: strategy, Ticks: ticks}
	for i := 0; i < ticks; i++ {
		start := time.Now()
		collisions, qt := engine.TickWith(ps, bounds, strategy, tree)
		result.Total += time.Since(start)

		if i == 0 {
			result.FirstTick = collisions
		}
		result.Collisions += collisions
		if qt != nil {
			stats := qt.Stats()
			result.TreeNodes = max(result.TreeNodes, stats.Nodes)
			result.TreeDepth = max(result.TreeDepth, stats.Depth)
		}
	}
	return result
}

// VerifyCandidates advances ps once, then checks that the quadtree offers
// every overlapping pair the exhaustive scan finds. It returns the number of
// overlapping pairs and how many were missing from the candidates.
func VerifyCandidates(ps particle.Particles, bounds physics.Rect, tree spatial.Config) (pairs, missed int) {
	ps.Advance(bounds)
	qt := spatial.Build(bounds, ps, tree)

	for i := range ps {
		var candidates map[int]bool
		for j := i + 1; j < len(ps); j++ {
			if !ps.Circle(i).Collides(ps.Circle(j)) {
				continue
			}
			pairs++
			if candidates == nil {
				candidates = make(map[int]bool)
				for _, k := range qt.Retrieve(i) {
					candidates[k] = true
				}
			}
			if !candidates[j] {
				missed++
			}
		}
	}
	return pairs, missed
}
