package canyon

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Generator builds one segment. Generate is the production implementation.
type Generator func(p GenerateParams, cfg Config, rng *rand.Rand) *Segment

// Option configures a Streamer.
type Option func(*Streamer)

// WithGenerator replaces the segment generator.
func WithGenerator(g Generator) Option {
	return func(s *Streamer) {
		s.generate = g
	}
}

// WithLogger sets the logger used for generation events.
func WithLogger(log *zap.Logger) Option {
	return func(s *Streamer) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSeed sets the base seed. Segment n always draws from a PRNG seeded
// with (seed, n), independent of when it is generated.
func WithSeed(seed uint64) Option {
	return func(s *Streamer) {
		s.seed = seed
	}
}

// Streamer keeps exactly two segments in a ping-pong buffer and builds the
// next one on a background worker when the vehicle crosses into the newer
// segment.
//
// The slot at index%2 is the active (older) segment, the other slot holds
// the next one. At most one generation is in flight.
type Streamer struct {
	cfg      Config
	generate Generator
	log      *zap.Logger
	seed     uint64

	mu       sync.Mutex
	slots    [2]*Segment
	index    int
	inFlight bool

	worker *errgroup.Group // Latest generation, nil once joined
	failed error           // Generation failures not yet returned by Wait
}

// NewStreamer creates a streamer. Call Initialize before use.
func NewStreamer(cfg Config, opts ...Option) *Streamer {
	s := &Streamer{
		cfg:      cfg,
		generate: Generate,
		log:      zap.NewNop(),
		seed:     uint64(time.Now().UnixNano()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the generation constants.
func (s *Streamer) Config() Config {
	return s.cfg
}

// Initialize synchronously builds segments 0 and 1, chained so that
// segment 1 continues from segment 0's terminal control point.
// Any in-flight generation is joined first.
func (s *Streamer) Initialize() error {
	if err := s.Wait(); err != nil {
		s.log.Warn("previous generation failed", zap.Error(err))
	}

	rng := s.rngFor(0)
	first := s.generate(First(rng, s.cfg), s.cfg, rng)
	if first == nil {
		return fmt.Errorf("canyon: segment 0: generator returned no segment")
	}
	second := s.generate(Continuation(first, 1, s.cfg), s.cfg, s.rngFor(1))
	if second == nil {
		return fmt.Errorf("canyon: segment 1: generator returned no segment")
	}

	s.mu.Lock()
	s.slots = [2]*Segment{first, second}
	s.index = 2
	s.inFlight = false
	s.mu.Unlock()

	s.log.Info("canyon initialized",
		zap.Uint64("seed", s.seed),
		zap.Int("width0", first.Width),
		zap.Int("width1", second.Width),
	)
	return nil
}

// ActiveSegment returns the segment in the active slot.
func (s *Streamer) ActiveSegment() *Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[s.index%2]
}

// NextSegment returns the segment in the next slot.
func (s *Streamer) NextSegment() *Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[1-s.index%2]
}

// Segments returns both slots, active first, as one consistent snapshot.
func (s *Streamer) Segments() [2]*Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return [2]*Segment{s.slots[s.index%2], s.slots[1-s.index%2]}
}

// Index returns the sequence number of the next segment to be generated.
func (s *Streamer) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Generating reports whether a background generation is in flight.
func (s *Streamer) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// MaybeAdvance starts generating the segment after the next one once depth
// (world Z) is TriggerMargin cells past the next segment's near edge.
// The check and the in-flight flag are set under one lock, so repeated or
// concurrent calls start at most one generation. It reports whether a
// generation was started.
func (s *Streamer) MaybeAdvance(depth float64) bool {
	s.mu.Lock()
	next := s.slots[1-s.index%2]
	if s.inFlight || next == nil {
		s.mu.Unlock()
		return false
	}
	if depth <= (float64(next.YMin)+s.cfg.TriggerMargin)*s.cfg.CellSize {
		s.mu.Unlock()
		return false
	}
	s.inFlight = true
	index := s.index
	params := Continuation(next, index, s.cfg)
	g := new(errgroup.Group)
	g.Go(func() error {
		return s.build(index, params)
	})
	s.worker = g
	s.mu.Unlock()

	s.log.Debug("generating segment",
		zap.Int("index", index),
		zap.Float64("depth", depth),
	)
	return true
}

// build runs on the worker. It touches shared state only for the swap.
func (s *Streamer) build(index int, params GenerateParams) error {
	start := time.Now()
	seg := s.generate(params, s.cfg, s.rngFor(index))
	if seg == nil {
		err := fmt.Errorf("canyon: segment %d: generator returned no segment", index)
		s.mu.Lock()
		s.inFlight = false
		s.failed = multierr.Append(s.failed, err)
		s.mu.Unlock()
		s.log.Warn("segment generation failed", zap.Error(err))
		return err
	}

	s.mu.Lock()
	slot := s.index % 2
	retired := s.slots[slot]
	s.slots[slot] = seg
	s.index++
	s.inFlight = false
	s.mu.Unlock()

	// Readers that grabbed the retired segment keep it alive until they drop it.
	fields := []zap.Field{
		zap.Int("index", index),
		zap.Int("slot", slot),
		zap.Duration("took", time.Since(start)),
	}
	if retired != nil {
		fields = append(fields, zap.Int("retired", retired.Index))
	}
	s.log.Debug("segment swapped in", fields...)
	return nil
}

// Wait blocks until the in-flight generation, if any, has finished. It
// returns the generation failures since the previous Wait, each only once.
func (s *Streamer) Wait() error {
	s.mu.Lock()
	g := s.worker
	s.mu.Unlock()

	if g != nil {
		// build records its failure before returning.
		_ = g.Wait()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.worker == g {
		s.worker = nil
	}
	err := s.failed
	s.failed = nil
	return err
}

// HeightAt returns the terrain height under a world position, checking both
// slots. ok is false over terrain that has not been generated.
func (s *Streamer) HeightAt(worldX, worldZ float64) (float64, bool) {
	segs := s.Segments()
	for _, seg := range segs {
		if seg == nil {
			continue
		}
		if h, ok := seg.HeightAt(worldX, worldZ, s.cfg.CellSize); ok {
			return h, true
		}
	}
	for _, near := range segs {
		for _, far := range segs {
			if h, ok := s.seamHeight(near, far, worldX, worldZ); ok {
				return h, true
			}
		}
	}
	return 0, false
}

// seamHeight covers the one-cell gap between the last row of near and the
// first row of far, which directly follows it, by blending the two rows.
func (s *Streamer) seamHeight(near, far *Segment, worldX, worldZ float64) (float64, bool) {
	if near == nil || far == nil || far.YMin != near.YMin+near.Height {
		return 0, false
	}
	cell := s.cfg.CellSize
	lastZ := float64(far.YMin-1) * cell
	firstZ := float64(far.YMin) * cell
	if worldZ < lastZ || worldZ > firstZ {
		return 0, false
	}

	a, okA := near.HeightAt(worldX, lastZ, cell)
	b, okB := far.HeightAt(worldX, firstZ, cell)
	switch {
	case okA && okB:
		f := (worldZ - lastZ) / cell
		return a*(1-f) + b*f, true
	case okA:
		return a, true
	case okB:
		return b, true
	}
	return 0, false
}

// Overrun reports whether depth is past the far edge of all generated
// terrain, which happens only when the vehicle outruns the worker.
func (s *Streamer) Overrun(depth float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.slots[1-s.index%2]
	if next == nil {
		return false
	}
	return depth > float64(next.YMin+next.Height)*s.cfg.CellSize
}

func (s *Streamer) rngFor(index int) *rand.Rand {
	return rand.New(rand.NewPCG(s.seed, uint64(index)))
}
