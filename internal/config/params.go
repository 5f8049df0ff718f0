package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/surfview/internal/engine/debug"
	"github.com/Faultbox/surfview/internal/engine/lighting"
	"github.com/Faultbox/surfview/internal/engine/transform"
	"github.com/Faultbox/surfview/internal/frame"
	"github.com/Faultbox/surfview/pkg/math"
	"github.com/Faultbox/surfview/pkg/surface"
)

// Controller names the view-matrix provider.
type Controller string

const (
	ControllerTrackball Controller = "trackball"
	ControllerOrbit     Controller = "orbit"
)

// Validate checks every value that Params or the viewers would reject later.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if _, err := lighting.ParseHex(c.Graphics.Background); err != nil {
		errs = append(errs, fmt.Errorf("graphics.background: %w", err))
	}
	if _, err := surface.ParseFamily(c.Surface.Family); err != nil {
		errs = append(errs, fmt.Errorf("surface.family: %w", err))
	}
	if c.Surface.Grid != 0 && (c.Surface.Grid < frame.MinGrid || c.Surface.Grid > frame.MaxGrid) {
		errs = append(errs, fmt.Errorf("surface.grid: %d outside [%d, %d]", c.Surface.Grid, frame.MinGrid, frame.MaxGrid))
	}
	if p, err := c.projection(); err != nil {
		errs = append(errs, fmt.Errorf("camera: %w", err))
	} else if err := p.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("camera: %w", err))
	}
	if _, err := c.ControllerKind(); err != nil {
		errs = append(errs, fmt.Errorf("camera.controller: %w", err))
	}
	if _, err := lighting.ParseHex(c.Light.Color); err != nil {
		errs = append(errs, fmt.Errorf("light.color: %w", err))
	}
	if _, err := lighting.ParseHex(c.Material.Color); err != nil {
		errs = append(errs, fmt.Errorf("material.color: %w", err))
	}
	if c.Material.Diffusion < 0 || c.Material.Diffusion > 1 {
		errs = append(errs, fmt.Errorf("material.diffusion: %v outside [0, 1]", c.Material.Diffusion))
	}
	if _, err := debug.ParseFormat(c.Screenshots.Format); err != nil {
		errs = append(errs, fmt.Errorf("screenshots.format: %w", err))
	}
	return errors.Join(errs...)
}

func (c *Config) projection() (transform.Projection, error) {
	kind, err := transform.ParseProjectionKind(c.Camera.Projection)
	if err != nil {
		return transform.Projection{}, err
	}
	if kind == transform.Perspective {
		fov := c.Camera.FovDegrees * math32.Pi / 180
		return transform.PerspectiveProjection(fov, float32(c.Graphics.Width)/float32(c.Graphics.Height), c.Camera.Near, c.Camera.Far), nil
	}
	return transform.SymmetricOrtho(c.Camera.OrthoExtent), nil
}

// ControllerKind returns the configured view controller.
func (c *Config) ControllerKind() (Controller, error) {
	switch Controller(strings.ToLower(c.Camera.Controller)) {
	case "", ControllerTrackball:
		return ControllerTrackball, nil
	case ControllerOrbit:
		return ControllerOrbit, nil
	}
	return "", fmt.Errorf("unknown controller %q", c.Camera.Controller)
}

// BackgroundColor returns the clear colour.
func (c *Config) BackgroundColor() [4]float32 {
	col, err := lighting.ParseHex(c.Graphics.Background)
	if err != nil {
		return [4]float32{0.1, 0.1, 0.12, 1}
	}
	return col.RGBA(1)
}

// Params converts the config into initial frame parameters. The config
// must be valid.
func (c *Config) Params() (frame.Params, error) {
	if err := c.Validate(); err != nil {
		return frame.Params{}, err
	}
	p := frame.DefaultParams()

	p.Family, _ = surface.ParseFamily(c.Surface.Family)
	p.Grid = c.Surface.Grid
	p.ClampDegenerate = c.Surface.ClampDegenerate
	p.Projection, _ = c.projection()

	p.Light = lighting.Light{
		Azimuth:   c.Light.Azimuth,
		Elevation: c.Light.Elevation,
		Position:  math.Vec3{X: c.Light.Position[0], Y: c.Light.Position[1], Z: c.Light.Position[2]},
		Color:     lighting.MustParseHex(c.Light.Color),
	}
	p.ShowLight = c.Light.Orbit
	p.LightOrbit = transform.Orbit{
		Radius: c.Light.OrbitRadius,
		Speed:  c.Light.OrbitSpeed,
		Z:      c.Light.OrbitHeight,
	}

	p.SurfaceColor = lighting.MustParseHex(c.Material.Color)
	p.Diffusion = c.Material.Diffusion
	p.Angle = c.Material.Angle
	p.UseTexture = c.Material.UseTexture && c.Material.Texture != ""
	p.TexOffset = math.Vec2{X: c.Material.TexOffset[0], Y: c.Material.TexOffset[1]}
	return p, nil
}

// SetParams stores p back into the config so Save persists it.
func (c *Config) SetParams(p frame.Params) {
	c.Surface.Family = p.Family.String()
	c.Surface.Grid = p.Grid
	c.Surface.ClampDegenerate = p.ClampDegenerate
	c.Camera.Projection = p.Projection.Kind.String()
	if p.Projection.Kind == transform.Orthographic {
		c.Camera.OrthoExtent = p.Projection.Top
	}

	c.Light.Azimuth = p.Light.Azimuth
	c.Light.Elevation = p.Light.Elevation
	c.Light.Position = p.Light.Position.Array()
	c.Light.Color = p.Light.Color.Hex()
	c.Light.Orbit = p.ShowLight
	c.Light.OrbitRadius = p.LightOrbit.Radius
	c.Light.OrbitSpeed = p.LightOrbit.Speed
	c.Light.OrbitHeight = p.LightOrbit.Z

	c.Material.Color = p.SurfaceColor.Hex()
	c.Material.Diffusion = p.Diffusion
	c.Material.Angle = p.Angle
	c.Material.UseTexture = p.UseTexture
	c.Material.TexOffset = [2]float32{p.TexOffset.X, p.TexOffset.Y}
}
