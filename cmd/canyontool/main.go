// canyontool generates and flies canyons without a window.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/canyon-flight/internal/canyon"
	"github.com/Faultbox/canyon-flight/internal/logger"
	"github.com/Faultbox/canyon-flight/internal/sim"
	"github.com/Faultbox/canyon-flight/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "segments", "gen":
		err = cmdSegments(args)
	case "fly":
		err = cmdFly(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`canyontool - canyon generator and headless flight

Usage:
  canyontool <command> [options]

Commands:
  segments [-n N] [-seed S]                 Generate a chain of segments and print stats
  fly [-seconds T] [-seed S] [-dt D] [-v]   Fly the autopilot and report how far it got

Examples:
  canyontool segments -n 10 -seed 42
  canyontool fly -seconds 60 -seed 42`)
}

func cmdSegments(args []string) error {
	fs := flag.NewFlagSet("segments", flag.ExitOnError)
	n := fs.Int("n", 5, "Number of segments")
	seed := fs.Uint64("seed", 1, "Base seed")
	fs.Parse(args)

	cfg := canyon.DefaultConfig()
	rng := func(index int) *rand.Rand {
		return rand.New(rand.NewPCG(*seed, uint64(index)))
	}

	fmt.Printf("%-5s %-9s %-9s %-6s %-8s %-8s %-8s %s\n",
		"index", "x_min", "y_min", "width", "min_h", "max_h", "time", "centerline")

	var prev *canyon.Segment
	for i := 0; i < *n; i++ {
		params := canyon.First(rng(0), cfg)
		if prev != nil {
			params = canyon.Continuation(prev, i, cfg)
		}

		start := time.Now()
		seg := canyon.Generate(params, cfg, rng(i))
		elapsed := time.Since(start)

		lo, hi := seg.Heights[0], seg.Heights[0]
		for _, h := range seg.Heights {
			lo = min(lo, h)
			hi = max(hi, h)
		}
		fmt.Printf("%-5d %-9d %-9d %-6d %-8.2f %-8.2f %-8s %.1f -> %.1f\n",
			seg.Index, seg.XMin, seg.YMin, seg.Width, lo, hi,
			elapsed.Round(time.Microsecond),
			seg.ControlPoints[0].X, seg.ControlPoints[3].X)
		prev = seg
	}
	return nil
}

func cmdFly(args []string) error {
	fs := flag.NewFlagSet("fly", flag.ExitOnError)
	seconds := fs.Float64("seconds", 30, "Simulated flight time")
	seed := fs.Uint64("seed", 1, "Canyon seed")
	dt := fs.Float64("dt", 1.0/60, "Tick length in seconds")
	verbose := fs.Bool("v", false, "Log simulation events")
	fs.Parse(args)

	level := "warn"
	if *verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		return err
	}
	defer logger.Sync()

	cfg := sim.DefaultConfig()
	cfg.Seed = *seed
	report, err := fly(cfg, *seconds, *dt, logger.Named("sim"))
	if err != nil {
		return err
	}

	fmt.Printf("Seed:       %d\n", *seed)
	fmt.Printf("Flown:      %.2f s (%d ticks)\n", report.Elapsed, report.Ticks)
	fmt.Printf("Position:   (%.1f, %.1f, %.1f)\n", report.Position.X, report.Position.Y, report.Position.Z)
	fmt.Printf("Segments:   %d generated\n", report.Generated)
	fmt.Printf("Overruns:   %d ticks\n", report.Overruns)
	fmt.Printf("Crashed:    %v\n", report.Crashed)
	return nil
}

// flightReport summarizes a headless autopilot run.
type flightReport struct {
	Elapsed   float64
	Ticks     uint64
	Position  math.Vec3
	Generated int
	Overruns  int
	Crashed   bool
}

// fly runs the autopilot for the given simulated time, stopping early on a
// crash. Simulated time runs far ahead of the clock, so every generation is
// joined before the next tick and the vehicle never flies over terrain that
// does not exist yet.
func fly(cfg sim.Config, seconds, dt float64, log *zap.Logger) (flightReport, error) {
	var report flightReport
	if dt <= 0 {
		return report, fmt.Errorf("dt must be positive, got %v", dt)
	}

	s := sim.New(cfg, log)
	if err := s.Start(); err != nil {
		return report, err
	}

	pilot := sim.NewAutopilot(cfg.Flight.StartPosition.Y)
	for report.Elapsed < seconds {
		pilot.Steer(s)
		res := s.Tick(dt)
		report.Elapsed += dt
		if res.Generated {
			report.Generated++
			if err := s.Terrain().Wait(); err != nil {
				return report, multierr.Append(fmt.Errorf("generating terrain: %w", err), s.Close())
			}
		}
		if res.Overrun {
			report.Overruns++
		}
		if res.Crashed {
			report.Crashed = true
			break
		}
	}

	report.Ticks = s.Ticks()
	report.Position = s.Vehicle().Position()
	return report, s.Close()
}
