// Package canyon synthesizes canyon heightfield segments and streams them
// through a two-slot buffer as the vehicle advances.
package canyon

// Config holds the fixed terrain generation constants.
type Config struct {
	Width  int // Nominal segment width in cells (also the control point spread)
	Height int // Segment length in cells along the flight axis

	CurveSamples    int // Interior curve samples per distance query
	BoundarySamples int // Extra samples past each end of the curve

	WallPadding    float64 // Cells added on both sides of the control point hull
	WallFalloff    float64 // Distance at which walls reach full height
	NoiseAmplitude float64 // Max absolute noise added to the normalized height

	CellSize      float64 // World units per grid cell
	TriggerMargin float64 // Cells past the next segment's near edge before generating
}

// MaxHeight is the height of a fully raised canyon wall.
const MaxHeight = 100.0

// DefaultConfig returns the reference scenario settings.
func DefaultConfig() Config {
	return Config{
		Width:           128,
		Height:          128,
		CurveSamples:    50,
		BoundarySamples: 2,
		WallPadding:     30,
		WallFalloff:     20,
		NoiseAmplitude:  0.1,
		CellSize:        4,
		TriggerMargin:   5,
	}
}
