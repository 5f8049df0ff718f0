package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/surfview/internal/engine/lighting"
	"github.com/Faultbox/surfview/internal/engine/transform"
	"github.com/Faultbox/surfview/internal/frame"
	"github.com/Faultbox/surfview/pkg/surface"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Surface.Family != "pseudosphere" {
		t.Errorf("expected family pseudosphere, got %s", cfg.Surface.Family)
	}
	if cfg.Surface.Grid != 0 {
		t.Errorf("expected natural grid, got %d", cfg.Surface.Grid)
	}
	if cfg.Camera.Projection != "ortho" || cfg.Camera.OrthoExtent != 2 {
		t.Errorf("expected ortho extent 2, got %s %g", cfg.Camera.Projection, cfg.Camera.OrthoExtent)
	}
	if cfg.Material.Color != "#3c8cdc" {
		t.Errorf("expected material colour #3c8cdc, got %s", cfg.Material.Color)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestDefaultMatchesDefaultParams(t *testing.T) {
	p, err := Default().Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if want := frame.DefaultParams(); p != want {
		t.Errorf("Default().Params() = %+v\nwant %+v", p, want)
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
  vsync: false

surface:
  family: klein
  grid: 60
  clamp_degenerate: true

camera:
  projection: perspective
  fov_degrees: 60
  controller: orbit

light:
  color: "#ff8000"
  orbit: false
  position: [0, 2, 3]

material:
  color: "#102030"
  diffusion: 0.5
  texture: checker.png
  use_texture: true
  tex_offset: [0.25, 0.5]

logging:
  level: "debug"
  log_file: "surfview.log"

screenshots:
  dir: shots
  format: jpeg
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Surface.Family != "klein" || cfg.Surface.Grid != 60 || !cfg.Surface.ClampDegenerate {
		t.Errorf("surface section not loaded: %+v", cfg.Surface)
	}
	if cfg.Camera.FovDegrees != 60 {
		t.Errorf("expected fov 60, got %g", cfg.Camera.FovDegrees)
	}
	// Unset keys keep their defaults.
	if cfg.Camera.Near != 0.1 {
		t.Errorf("expected default near 0.1, got %g", cfg.Camera.Near)
	}
	if cfg.Light.Position != [3]float32{0, 2, 3} {
		t.Errorf("expected light position [0 2 3], got %v", cfg.Light.Position)
	}
	if cfg.Material.TexOffset != [2]float32{0.25, 0.5} {
		t.Errorf("expected tex offset [0.25 0.5], got %v", cfg.Material.TexOffset)
	}
	if cfg.Logging.LogFile != "surfview.log" {
		t.Errorf("expected log file 'surfview.log', got %s", cfg.Logging.LogFile)
	}
	if cfg.Screenshots.Dir != "shots" || cfg.Screenshots.Prefix != "surface" {
		t.Errorf("screenshots section not merged: %+v", cfg.Screenshots)
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if p.Family != surface.FamilyKleinBottle || p.Grid != 60 || !p.ClampDegenerate {
		t.Errorf("surface params = %v/%d/%v", p.Family, p.Grid, p.ClampDegenerate)
	}
	if p.Projection.Kind != transform.Perspective {
		t.Errorf("expected perspective, got %v", p.Projection.Kind)
	}
	if p.ShowLight {
		t.Error("expected static light")
	}
	if !p.UseTexture {
		t.Error("expected texture enabled")
	}
	if kind, _ := cfg.ControllerKind(); kind != ControllerOrbit {
		t.Errorf("expected orbit controller, got %s", kind)
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

func TestLoadFromFileStrict(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"empty file keeps defaults", "", false},
		{"comment only", "# surfview\n", false},
		{"misspelt key", "surface:\n  clamp_degenrate: true\n", true},
		{"unknown section", "audio:\n  volume: 3\n", true},
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
				t.Fatalf("loadFromFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.Surface != Default().Surface {
				t.Errorf("surface = %+v, want defaults", cfg.Surface)
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
		is     error
	}{
		{"unknown family", func(c *Config) { c.Surface.Family = "torus" }, "surface.family", surface.ErrUnknownFamily},
		{"grid too small", func(c *Config) { c.Surface.Grid = 2 }, "surface.grid", nil},
		{"grid too large", func(c *Config) { c.Surface.Grid = 1000 }, "surface.grid", nil},
		{"bad projection", func(c *Config) { c.Camera.Projection = "fisheye" }, "camera", transform.ErrInvalidProjection},
		{"flat ortho box", func(c *Config) { c.Camera.OrthoExtent = 0 }, "camera", transform.ErrInvalidProjection},
		{"bad fov", func(c *Config) { c.Camera.Projection = "perspective"; c.Camera.FovDegrees = 0 }, "camera", transform.ErrInvalidProjection},
		{"bad controller", func(c *Config) { c.Camera.Controller = "fly" }, "camera.controller", nil},
		{"bad light colour", func(c *Config) { c.Light.Color = "white" }, "light.color", lighting.ErrBadColor},
		{"bad material colour", func(c *Config) { c.Material.Color = "#12345" }, "material.color", lighting.ErrBadColor},
		{"diffusion above one", func(c *Config) { c.Material.Diffusion = 1.5 }, "material.diffusion", nil},
		{"bad screenshot format", func(c *Config) { c.Screenshots.Format = "gif" }, "screenshots.format", nil},
		{"zero size", func(c *Config) { c.Graphics.Width = 0 }, "graphics", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name %s", err, tt.field)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error %v is not %v", err, tt.is)
			}
			if _, perr := cfg.Params(); perr == nil {
				t.Error("Params should reject an invalid config")
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Surface.Family = "torus"
	cfg.Light.Color = "nope"
	err := cfg.Validate()
	if !errors.Is(err, surface.ErrUnknownFamily) || !errors.Is(err, lighting.ErrBadColor) {
		t.Errorf("expected both errors, got %v", err)
	}
}

func TestSetParamsRoundTrip(t *testing.T) {
	p := frame.DefaultParams()
	p.Family = surface.FamilyKleinBottle
	p.SetGrid(48)
	p.SurfaceColor = lighting.MustParseHex("#804020")
	p.ShowLight = false
	p.Diffusion = 0.3

	cfg := Default()
	cfg.SetParams(p)
	got, err := cfg.Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if got != p {
		t.Errorf("round trip = %+v\nwant %+v", got, p)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Surface.Family = "sphere"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Surface.Family != "sphere" {
		t.Errorf("expected saved family sphere, got %s", loaded.Surface.Family)
	}
}

func TestBackgroundColor(t *testing.T) {
	cfg := Default()
	cfg.Graphics.Background = "#000000"
	if got := cfg.BackgroundColor(); got != [4]float32{0, 0, 0, 1} {
		t.Errorf("BackgroundColor() = %v", got)
	}
	cfg.Graphics.Background = "bad"
	if got := cfg.BackgroundColor(); got[3] != 1 {
		t.Errorf("fallback colour should be opaque, got %v", got)
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
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "surfview.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find surfview.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "surface flag",
			setup: func() { *flagSurface = "klein" },
			verify: func(cfg *Config) {
				if cfg.Surface.Family != "klein" {
					t.Errorf("expected family klein, got %s", cfg.Surface.Family)
				}
			},
			teardown: func() { *flagSurface = "" },
		},
		{
			name:  "grid flag",
			setup: func() { *flagGrid = 64 },
			verify: func(cfg *Config) {
				if cfg.Surface.Grid != 64 {
					t.Errorf("expected grid 64, got %d", cfg.Surface.Grid)
				}
			},
			teardown: func() { *flagGrid = 0 },
		},
		{
			name:  "projection flag",
			setup: func() { *flagProjection = "perspective" },
			verify: func(cfg *Config) {
				if cfg.Camera.Projection != "perspective" {
					t.Errorf("expected perspective, got %s", cfg.Camera.Projection)
				}
			},
			teardown: func() { *flagProjection = "" },
		},
		{
			name:  "texture flag",
			setup: func() { *flagTexture = "wood.jpg" },
			verify: func(cfg *Config) {
				if cfg.Material.Texture != "wood.jpg" || !cfg.Material.UseTexture {
					t.Errorf("expected texture wood.jpg enabled, got %+v", cfg.Material)
				}
			},
			teardown: func() { *flagTexture = "" },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
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
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
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
surface:
  family: sphere
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	*flagSurface = "klein"
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
		*flagSurface = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Surface.Family != "klein" {
		t.Errorf("expected family klein from flag, got %s", cfg.Surface.Family)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("surface:\n  family: torus\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	_, err := Load()
	if !errors.Is(err, surface.ErrUnknownFamily) {
		t.Errorf("Load() error = %v, want ErrUnknownFamily", err)
	}
	if err != nil && !strings.Contains(err.Error(), configPath) {
		t.Errorf("Load() error %q should name %s", err, configPath)
	}
}
