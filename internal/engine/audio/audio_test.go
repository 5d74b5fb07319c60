package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
)

func TestVolumeConversion(t *testing.T) {
	tests := []struct {
		vol float64
		min float64
		max float64
	}{
		{1.0, -1, 1},     // Full volume should be ~0dB
		{0.5, -8, -4},    // Half volume should be around -6dB
		{0.25, -14, -10}, // Quarter volume should be around -12dB
		{0.0, -200, -90}, // Zero volume should be very negative
	}

	for _, tt := range tests {
		db := volumeToDb(tt.vol)
		if db < tt.min || db > tt.max {
			t.Errorf("volumeToDb(%f) = %f, want between %f and %f", tt.vol, db, tt.min, tt.max)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNewManager(t *testing.T) {
	m := New()
	if m.GetMasterVolume() != 1.0 {
		t.Errorf("default master volume = %f, want 1.0", m.GetMasterVolume())
	}
	if m.GetSFXVolume() != 1.0 {
		t.Errorf("default SFX volume = %f, want 1.0", m.GetSFXVolume())
	}
	if m.IsInitialized() {
		t.Error("new manager should not be initialized")
	}
}

func TestSetVolume(t *testing.T) {
	m := New()

	m.SetMasterVolume(0.5)
	if m.GetMasterVolume() != 0.5 {
		t.Errorf("master volume = %f, want 0.5", m.GetMasterVolume())
	}

	m.SetMasterVolume(2.0)
	if m.GetMasterVolume() != 1.0 {
		t.Errorf("master volume = %f, want 1.0 (clamped)", m.GetMasterVolume())
	}

	m.SetSFXVolume(-1.0)
	if m.GetSFXVolume() != 0.0 {
		t.Errorf("sfx volume = %f, want 0.0 (clamped)", m.GetSFXVolume())
	}
}

func TestPlayBeforeInit(t *testing.T) {
	m := New()
	if err := m.PlayExplosion(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestMutedSkipsDevice(t *testing.T) {
	m := New()
	m.SetMuted(true)

	if err := m.Init(); err != nil {
		t.Fatalf("muted Init: %v", err)
	}
	if m.IsInitialized() {
		t.Error("muted manager should not open the speaker")
	}
	if err := m.PlayExplosion(); err != nil {
		t.Errorf("muted play should be a no-op, got %v", err)
	}
	m.Close()
}

func TestLoadExplosionInvalid(t *testing.T) {
	m := New()
	if err := m.LoadExplosion([]byte("not a wav file")); err == nil {
		t.Error("expected decode error")
	}
}

func TestExplosionLength(t *testing.T) {
	e := NewExplosion(beep.SampleRate(1000), 500*time.Millisecond, 1)
	if e.Len() != 500 {
		t.Fatalf("Len() = %d, want 500", e.Len())
	}

	buf := make([][2]float64, 128)
	total := 0
	for {
		n, ok := e.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if total != 500 {
		t.Errorf("streamed %d samples, want 500", total)
	}
	if n, ok := e.Stream(buf); n != 0 || ok {
		t.Errorf("drained burst returned (%d, %v)", n, ok)
	}
}

func TestExplosionDecays(t *testing.T) {
	e := NewExplosion(beep.SampleRate(8000), time.Second, 3)
	samples := make([][2]float64, e.Len())
	if n, _ := e.Stream(samples); n != e.Len() {
		t.Fatalf("streamed %d samples, want %d", n, e.Len())
	}

	energy := func(s [][2]float64) float64 {
		var sum float64
		for _, v := range s {
			if v[0] != v[1] {
				t.Fatal("channels differ")
			}
			if math.Abs(v[0]) > 1 {
				t.Fatalf("sample %f out of range", v[0])
			}
			sum += v[0] * v[0]
		}
		return sum
	}

	quarter := len(samples) / 4
	head := energy(samples[:quarter])
	tail := energy(samples[len(samples)-quarter:])
	if head <= 0 {
		t.Fatal("burst is silent")
	}
	if tail >= head/10 {
		t.Errorf("tail energy %f not well below head energy %f", tail, head)
	}
}

func TestExplosionDeterministic(t *testing.T) {
	a := NewExplosion(beep.SampleRate(1000), 100*time.Millisecond, 9)
	b := NewExplosion(beep.SampleRate(1000), 100*time.Millisecond, 9)

	sa := make([][2]float64, 100)
	sb := make([][2]float64, 100)
	a.Stream(sa)
	b.Stream(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, sa[i], sb[i])
		}
	}
}
