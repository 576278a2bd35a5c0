// Package config collects every tunable of the scene. Default returns the
// values the scene was designed with; a JSON file may override any subset.
package config

import (
	"encoding/json"
	"os"
)

// DefaultPath is where Load looks when no path is given, relative to the
// working directory.
const DefaultPath = "config/kusama.json"

type Config struct {
	Window      Window      `json:"window"`
	Camera      Camera      `json:"camera"`
	Bloom       Bloom       `json:"bloom"`
	Room        Room        `json:"room"`
	Bubble      Bubble      `json:"bubble"`
	Population  Population  `json:"population"`
	Animation   Animation   `json:"animation"`
	Lights      []Light     `json:"lights"`
	Environment Environment `json:"environment"`

	// Seed fixes the random layout; 0 seeds from the clock.
	Seed  int64 `json:"seed"`
	Debug bool  `json:"debug"`
	// SnapshotPath is where F5 writes the glTF snapshot.
	SnapshotPath string `json:"snapshot_path"`
}

type Window struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Title         string  `json:"title"`
	VSync         bool    `json:"vsync"`
	Samples       int     `json:"samples"`
	MaxPixelRatio float32 `json:"max_pixel_ratio"`
}

type Camera struct {
	FOV           float32    `json:"fov"` // degrees
	Near          float32    `json:"near"`
	Far           float32    `json:"far"`
	Position      [3]float32 `json:"position"`
	DampingFactor float32    `json:"damping_factor"`
	MinDistance   float32    `json:"min_distance"` // dolly limits, inside the room
	MaxDistance   float32    `json:"max_distance"`
}

type Bloom struct {
	Strength  float32 `json:"strength"`
	Radius    float32 `json:"radius"`
	Threshold float32 `json:"threshold"`
	Exposure  float32 `json:"exposure"`
}

type Room struct {
	TextureSize int        `json:"texture_size"`
	StripeCount int        `json:"stripe_count"`
	StripeWidth float64    `json:"stripe_width"`
	StripeStep  float64    `json:"stripe_step"`
	DitherCount int        `json:"dither_count"`
	DitherMax   float64    `json:"dither_max"`
	Radius      float32    `json:"radius"`
	Segments    int        `json:"segments"`
	Spin        [2]float32 `json:"spin"` // y, z radians per frame
}

type Bubble struct {
	Radius       float32  `json:"radius"`
	Segments     int      `json:"segments"`
	DiskCount    int      `json:"disk_count"`
	DiskRadius   float32  `json:"disk_radius"`
	DiskHeight   float32  `json:"disk_height"`
	DiskSegments int      `json:"disk_segments"`
	Inset        float32  `json:"inset"`
	Palette      []string `json:"palette"`
}

type Population struct {
	Count  int        `json:"count"`
	Extent [3]float32 `json:"extent"` // full box size per axis
}

type Animation struct {
	BobAmplitude  float32    `json:"bob_amplitude"`
	BobFrequency  float32    `json:"bob_frequency"`
	SwayAmplitude float32    `json:"sway_amplitude"`
	SwayFrequency float32    `json:"sway_frequency"`
	Easing        float32    `json:"easing"`
	Spin          [2]float32 `json:"spin"` // y, z radians per frame
}

type Light struct {
	Position  [3]float32 `json:"position"`
	Color     string     `json:"color"`
	Intensity float32    `json:"intensity"`
}

type Environment struct {
	URL            string `json:"url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// Default returns the scene as designed.
func Default() Config {
	return Config{
		Window: Window{
			Width:         1280,
			Height:        720,
			Title:         "Kusama",
			VSync:         true,
			Samples:       4,
			MaxPixelRatio: 2,
		},
		Camera: Camera{
			FOV:           75,
			Near:          0.1,
			Far:           1000,
			Position:      [3]float32{0, 0, 30},
			DampingFactor: 0.05,
			MinDistance:   5,
			MaxDistance:   90,
		},
		Bloom: Bloom{
			Strength:  0.2,
			Radius:    0.4,
			Threshold: 0.4,
			Exposure:  1,
		},
		Room: Room{
			TextureSize: 1024,
			StripeCount: 15,
			StripeWidth: 60,
			StripeStep:  140,
			DitherCount: 8000,
			DitherMax:   30,
			Radius:      100,
			Segments:    64,
			Spin:        [2]float32{0.0003, 0.0001},
		},
		Bubble: Bubble{
			Radius:       2,
			Segments:     64,
			DiskCount:    6,
			DiskRadius:   0.8,
			DiskHeight:   0.1,
			DiskSegments: 32,
			Inset:        0.06,
			Palette:      []string{"#F8D12E", "#D3212D", "#0059CF", "#00A358", "#FF428A"},
		},
		Population: Population{
			Count:  40,
			Extent: [3]float32{40, 30, 30},
		},
		Animation: Animation{
			BobAmplitude:  0.7,
			BobFrequency:  0.5,
			SwayAmplitude: 0.3,
			SwayFrequency: 0.3,
			Easing:        0.05,
			Spin:          [2]float32{0.005, 0.002},
		},
		Lights: []Light{
			{Position: [3]float32{15, 20, 15}, Color: "#FFFFFF", Intensity: 250},
			{Position: [3]float32{-15, 10, 5}, Color: "#FFFFFF", Intensity: 200},
		},
		Environment: Environment{
			URL:            "https://raw.githubusercontent.com/mrdoob/three.js/master/examples/textures/equirectangular/royal_esplanade_1k.hdr",
			TimeoutSeconds: 60,
		},
		SnapshotPath: "kusama-snapshot.glb",
	}
}

// Load reads path (DefaultPath when empty) over the defaults. Fields absent
// from the file keep their default value. If the file is missing or
// invalid, Default() is returned and the error is reported for logging.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}
