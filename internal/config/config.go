// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Surface     SurfaceConfig     `yaml:"surface"`
	Camera      CameraConfig      `yaml:"camera"`
	Light       LightConfig       `yaml:"light"`
	Material    MaterialConfig    `yaml:"material"`
	Logging     LoggingConfig     `yaml:"logging"`
	Screenshots ScreenshotsConfig `yaml:"screenshots"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	MSAA       int    `yaml:"msaa"`
	Background string `yaml:"background"`
}

// SurfaceConfig selects what is tessellated.
type SurfaceConfig struct {
	Family          string `yaml:"family"`
	Grid            int    `yaml:"grid"` // cells per axis, 0 = natural steps
	ClampDegenerate bool   `yaml:"clamp_degenerate"`
}

// CameraConfig holds projection and view controller settings.
type CameraConfig struct {
	Projection  string  `yaml:"projection"`
	OrthoExtent float32 `yaml:"ortho_extent"`
	FovDegrees  float32 `yaml:"fov_degrees"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	Controller  string  `yaml:"controller"` // trackball or orbit
}

// LightConfig holds light placement and colour.
type LightConfig struct {
	Azimuth     float32    `yaml:"azimuth"`
	Elevation   float32    `yaml:"elevation"`
	Position    [3]float32 `yaml:"position,flow"`
	Orbit       bool       `yaml:"orbit"`
	OrbitRadius float32    `yaml:"orbit_radius"`
	OrbitSpeed  float32    `yaml:"orbit_speed"`
	OrbitHeight float32    `yaml:"orbit_height"`
	Color       string     `yaml:"color"`
}

// MaterialConfig holds surface shading settings.
type MaterialConfig struct {
	Color      string     `yaml:"color"`
	Diffusion  float32    `yaml:"diffusion"`
	Angle      float32    `yaml:"angle"` // spot half-angle, radians
	Texture    string     `yaml:"texture"`
	UseTexture bool       `yaml:"use_texture"`
	TexOffset  [2]float32 `yaml:"tex_offset,flow"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ScreenshotsConfig holds screenshot output settings.
type ScreenshotsConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			MSAA:       4,
			Background: "#1a1a1f",
		},
		Surface: SurfaceConfig{
			Family: "pseudosphere",
		},
		Camera: CameraConfig{
			Projection:  "ortho",
			OrthoExtent: 2,
			FovDegrees:  45,
			Near:        0.1,
			Far:         100,
			Controller:  "trackball",
		},
		Light: LightConfig{
			Azimuth:     45,
			Elevation:   35,
			Position:    [3]float32{1, 1, 1},
			Orbit:       true,
			OrbitRadius: 1.5,
			OrbitSpeed:  1,
			OrbitHeight: 1,
			Color:       "#ffffff",
		},
		Material: MaterialConfig{
			Color:     "#3c8cdc",
			Diffusion: 0.8,
			Angle:     1.2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Screenshots: ScreenshotsConfig{
			Dir:    "screenshots",
			Prefix: "surface",
			Format: "png",
		},
	}
}
