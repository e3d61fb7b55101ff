// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Graphics    GraphicsConfig   `yaml:"graphics"`
	Camera      CameraConfig     `yaml:"camera"`
	Terrain     TerrainConfig    `yaml:"terrain"`
	Shaders     ShaderConfig     `yaml:"shaders"`
	Light       LightConfig      `yaml:"light"`
	Assets      AssetsConfig     `yaml:"assets"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	ClearColor [3]float32 `yaml:"clear_color"`
}

// CameraConfig holds the initial camera state and input tuning.
type CameraConfig struct {
	Mode          string     `yaml:"mode"` // "fly" or "orbit"
	Position      [3]float32 `yaml:"position"`
	Yaw           float32    `yaml:"yaw"`   // degrees
	Pitch         float32    `yaml:"pitch"` // degrees
	Speed         float32    `yaml:"speed"`
	Sensitivity   float32    `yaml:"sensitivity"`
	Zoom          float32    `yaml:"zoom"` // vertical field of view, degrees
	FollowTerrain bool       `yaml:"follow_terrain"`
	EyeHeight     float32    `yaml:"eye_height"`
}

// BiomeTextures lists the surface texture files blended across the terrain.
type BiomeTextures struct {
	Dirt  string `yaml:"dirt"`
	Sand  string `yaml:"sand"`
	Grass string `yaml:"grass"`
	Rock  string `yaml:"rock"`
	Snow  string `yaml:"snow"`
}

// TerrainConfig holds heightmap mesh construction parameters.
type TerrainConfig struct {
	Heightmap   string        `yaml:"heightmap"`
	NormalMap   string        `yaml:"normal_map"`
	Biomes      BiomeTextures `yaml:"biomes"`
	HeightScale float32       `yaml:"height_scale"` // world units for a full-white pixel
	XZScale     float32       `yaml:"xz_scale"`     // world units per grid cell
	Origin      [3]float32    `yaml:"origin"`
	Normals     string        `yaml:"normals"` // "flat" or "computed"
	Tangents    bool          `yaml:"tangents"`
}

// ShaderConfig optionally overrides the embedded terrain shader sources.
type ShaderConfig struct {
	TerrainVertex   string `yaml:"terrain_vertex"`
	TerrainFragment string `yaml:"terrain_fragment"`
}

// LightConfig describes the directional light. When UseSun is set the vector is
// derived from Longitude/Latitude instead of Position.
type LightConfig struct {
	Position  [3]float32 `yaml:"position"`
	UseSun    bool       `yaml:"use_sun"`
	Longitude float32    `yaml:"longitude"`
	Latitude  float32    `yaml:"latitude"`
}

// AssetsConfig lists directories searched for relative asset paths.
type AssetsConfig struct {
	Roots []string `yaml:"roots"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Near:       0.1,
			Far:        2000,
			ClearColor: [3]float32{0, 0, 0},
		},
		Camera: CameraConfig{
			Mode:        "fly",
			Position:    [3]float32{0, 0, 5},
			Yaw:         -90,
			Pitch:       0,
			Speed:       25,
			Sensitivity: 0.1,
			Zoom:        45,
			EyeHeight:   2,
		},
		Terrain: TerrainConfig{
			Heightmap: "textures/heightmap.png",
			NormalMap: "textures/heightnormal.png",
			Biomes: BiomeTextures{
				Dirt:  "textures/dirt.jpg",
				Sand:  "textures/sand.jpg",
				Grass: "textures/grass.png",
				Rock:  "textures/rock.jpg",
				Snow:  "textures/snow.jpg",
			},
			HeightScale: 100,
			XZScale:     1,
			Origin:      [3]float32{-500, -500, -500},
			Normals:     "flat",
		},
		Light: LightConfig{
			Position:  [3]float32{-0.5, -1, -0.5},
			Longitude: 45,
			Latitude:  45,
		},
		Assets: AssetsConfig{
			Roots: []string{"."},
		},
		Screenshots: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "terrain",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every invalid setting, joined into one error.
func (c *Config) Validate() error {
	var errs []error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.Near <= 0 || c.Graphics.Far <= c.Graphics.Near {
		errs = append(errs, fmt.Errorf("graphics: need 0 < near (%g) < far (%g)", c.Graphics.Near, c.Graphics.Far))
	}
	switch c.Camera.Mode {
	case "fly", "orbit":
	default:
		errs = append(errs, fmt.Errorf("camera: unknown mode %q (want fly or orbit)", c.Camera.Mode))
	}
	if c.Camera.Zoom < 1 || c.Camera.Zoom > 45 {
		errs = append(errs, fmt.Errorf("camera: zoom %g outside [1, 45]", c.Camera.Zoom))
	}
	if c.Terrain.Heightmap == "" {
		errs = append(errs, errors.New("terrain: heightmap path is empty"))
	}
	if c.Terrain.HeightScale <= 0 {
		errs = append(errs, fmt.Errorf("terrain: height_scale %g must be positive", c.Terrain.HeightScale))
	}
	if c.Terrain.XZScale <= 0 {
		errs = append(errs, fmt.Errorf("terrain: xz_scale %g must be positive", c.Terrain.XZScale))
	}
	switch c.Terrain.Normals {
	case "flat", "computed":
	default:
		errs = append(errs, fmt.Errorf("terrain: unknown normals mode %q (want flat or computed)", c.Terrain.Normals))
	}

	return errors.Join(errs...)
}
