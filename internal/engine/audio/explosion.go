package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep/v2"
)

// Explosion is a decaying low-passed noise burst.
type Explosion struct {
	rng    *rand.Rand
	total  int
	pos    int
	decay  float64 // Per-sample amplitude multiplier
	gain   float64
	smooth float64 // One-pole low-pass coefficient
	last   float64
}

// NewExplosion returns a burst lasting d at the given sample rate.
// The same seed always produces the same waveform.
func NewExplosion(sr beep.SampleRate, d time.Duration, seed uint64) *Explosion {
	total := sr.N(d)
	decay := 1.0
	if total > 0 {
		// Reach -60dB at the end of the burst
		decay = math.Pow(0.001, 1/float64(total))
	}
	return &Explosion{
		rng:    rand.New(rand.NewPCG(seed, 0xb00)),
		total:  total,
		decay:  decay,
		gain:   1,
		smooth: 0.08,
	}
}

// Stream implements beep.Streamer.
func (e *Explosion) Stream(samples [][2]float64) (n int, ok bool) {
	if e.pos >= e.total {
		return 0, false
	}
	for i := range samples {
		if e.pos >= e.total {
			break
		}
		noise := e.rng.Float64()*2 - 1
		e.last += e.smooth * (noise - e.last)
		v := e.last * e.gain * 4
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		samples[i][0] = v
		samples[i][1] = v
		e.gain *= e.decay
		e.pos++
		n++
	}
	return n, true
}

// Err implements beep.Streamer.
func (e *Explosion) Err() error { return nil }

// Len returns the burst length in samples.
func (e *Explosion) Len() int { return e.total }
