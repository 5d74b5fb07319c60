package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/canyon-flight/internal/canyon"
	"github.com/Faultbox/canyon-flight/internal/flight"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	// Terrain and flight defaults mirror the package defaults
	if got := cfg.CanyonConfig(); got != canyon.DefaultConfig() {
		t.Errorf("canyon config = %+v, want %+v", got, canyon.DefaultConfig())
	}
	if got := cfg.FlightConfig(); got != flight.DefaultConfig() {
		t.Errorf("flight config = %+v, want %+v", got, flight.DefaultConfig())
	}
	if !cfg.Flight.Collisions {
		t.Error("expected collisions enabled by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true

audio:
  master_volume: 0.5
  muted: true

canyon:
  seed: 42
  segment_length: 64
  noise_amplitude: 0

flight:
  speed: 120
  collisions: false

logging:
  level: "debug"
  log_file: "canyon.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Audio.Muted {
		t.Error("expected muted to be true")
	}
	if cfg.Canyon.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Canyon.Seed)
	}
	if cfg.Canyon.SegmentLength != 64 {
		t.Errorf("expected segment length 64, got %d", cfg.Canyon.SegmentLength)
	}
	if cfg.Canyon.NoiseAmplitude != 0 {
		t.Errorf("expected noise amplitude 0, got %v", cfg.Canyon.NoiseAmplitude)
	}
	// Unset keys keep their defaults
	if cfg.Canyon.SegmentWidth != 128 {
		t.Errorf("expected segment width 128, got %d", cfg.Canyon.SegmentWidth)
	}
	if cfg.Flight.Speed != 120 {
		t.Errorf("expected speed 120, got %v", cfg.Flight.Speed)
	}
	if cfg.Flight.Collisions {
		t.Error("expected collisions disabled")
	}
	if cfg.Logging.LogFile != "canyon.log" {
		t.Errorf("expected log file 'canyon.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(FileName, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestConfigDirEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DirEnv, dir)

	if got := ConfigDir(); got != dir {
		t.Errorf("ConfigDir = %s, want %s", got, dir)
	}

	cfg := Default()
	cfg.Canyon.Seed = 17
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
		t.Errorf("Save did not write into %s: %v", DirEnv, err)
	}
}

func TestLoadPathEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(DirEnv, t.TempDir())

	path := filepath.Join(t.TempDir(), "tuned.yaml")
	if err := os.WriteFile(path, []byte("canyon:\n  seed: 23\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(PathEnv, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Canyon.Seed != 23 {
		t.Errorf("expected seed 23 from %s, got %d", PathEnv, cfg.Canyon.Seed)
	}

	// A named file that is missing is an error, not a silent fallback.
	t.Setenv(PathEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("expected error for a missing file named by the environment")
	}
}

func TestLoadFromFileStrict(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"empty file keeps defaults", "", false},
		{"comment only", "# nothing yet\n", false},
		{"misspelled key", "flight:\n  sped: 200\n", true},
		{"unknown section", "network:\n  port: 1\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			cfg := Default()
			err := loadFromFile(cfg, path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadFromFile error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg.Flight.Speed != Default().Flight.Speed {
				t.Errorf("speed changed to %v", cfg.Flight.Speed)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, "graphics.width"},
		{"negative speed", func(c *Config) { c.Flight.Speed = -1 }, "flight.speed"},
		{"no curve samples", func(c *Config) { c.Canyon.CurveSamples = 0 }, "canyon.curve_samples"},
		{"zero falloff", func(c *Config) { c.Canyon.WallFalloff = 0 }, "canyon.wall_falloff"},
		{"negative padding", func(c *Config) { c.Canyon.WallPadding = -2 }, "canyon.wall_padding"},
		{"margin past segment", func(c *Config) { c.Canyon.TriggerMargin = 500 }, "canyon.trigger_margin"},
		{"volume too loud", func(c *Config) { c.Audio.MasterVolume = 1.5 }, "audio.master_volume"},
		{"zero turn rate", func(c *Config) { c.Flight.UDTurnRate = 0 }, "flight.ud_turn_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %s", err, tt.wantErr)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Graphics.Width = 0
	cfg.Flight.Speed = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"graphics.width", "flight.speed"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestSimConfig(t *testing.T) {
	cfg := Default()
	cfg.Canyon.Seed = 7
	cfg.Flight.StartAltitude = 80
	cfg.Flight.Collisions = false

	sc := cfg.SimConfig()
	if sc.Seed != 7 {
		t.Errorf("expected seed 7, got %d", sc.Seed)
	}
	if sc.Flight.StartPosition.Y != 80 {
		t.Errorf("expected start altitude 80, got %v", sc.Flight.StartPosition.Y)
	}
	if sc.Collisions {
		t.Error("expected collisions disabled")
	}
	if !sc.PlaceAtEntrance {
		t.Error("expected vehicle placed at the canyon entrance")
	}

	cfg.Canyon.Seed = 0
	if cfg.SimConfig().Seed == 0 {
		t.Error("zero seed should be replaced")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Graphics.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 1234 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Canyon.Seed != 1234 {
					t.Errorf("expected seed 1234, got %d", cfg.Canyon.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "mute flag",
			setup: func() { *flagMute = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Audio.Muted {
					t.Error("expected audio muted")
				}
			},
			teardown: func() { *flagMute = false },
		},
		{
			name:  "nocollide flag",
			setup: func() { *flagNoCollide = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Flight.Collisions {
					t.Error("expected collisions disabled")
				}
			},
			teardown: func() { *flagNoCollide = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
canyon:
  seed: 5
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Canyon.Seed != 5 {
		t.Errorf("expected seed 5 from file, got %d", cfg.Canyon.Seed)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("flight:\n  speed: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject zero speed")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Canyon.Seed = 99
	cfg.Flight.Speed = 200
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Canyon.Seed != 99 || loaded.Flight.Speed != 200 {
		t.Errorf("round trip lost values: seed=%d speed=%v", loaded.Canyon.Seed, loaded.Flight.Speed)
	}
}
