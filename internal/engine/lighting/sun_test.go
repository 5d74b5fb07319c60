package lighting

import (
	"math"
	"testing"
)

func TestSunToSun(t *testing.T) {
	tests := []struct {
		name string
		sun  Sun
		want [3]float32
	}{
		{"zenith", Sun{Azimuth: 0, Elevation: 90}, [3]float32{0, 1, 0}},
		{"north horizon", Sun{Azimuth: 0, Elevation: 0}, [3]float32{0, 0, 1}},
		{"east horizon", Sun{Azimuth: 90, Elevation: 0}, [3]float32{1, 0, 0}},
		{"south 45", Sun{Azimuth: 180, Elevation: 45}, [3]float32{0, 0.70710677, -0.70710677}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sun.ToSun()
			for i := range got {
				if math.Abs(float64(got[i]-tt.want[i])) > 1e-5 {
					t.Errorf("ToSun() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestSunDirection(t *testing.T) {
	sun := DefaultSun()
	to := sun.ToSun()
	dir := sun.Direction()

	var length float64
	for i := range dir {
		if dir[i] != -to[i] {
			t.Errorf("Direction()[%d] = %v, want %v", i, dir[i], -to[i])
		}
		length += float64(dir[i]) * float64(dir[i])
	}
	if math.Abs(math.Sqrt(length)-1) > 1e-5 {
		t.Errorf("|Direction()| = %v, want 1", math.Sqrt(length))
	}
	if dir[1] >= 0 {
		t.Errorf("light should travel downward, got y = %v", dir[1])
	}
}
