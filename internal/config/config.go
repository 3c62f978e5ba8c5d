// Package config handles showcase configuration loading and management.
package config

import (
	"path/filepath"
	"time"

	"github.com/Faultbox/castle-showcase/pkg/math"
)

// Config holds all showcase settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Audio      AudioConfig      `yaml:"audio"`
	Assets     AssetsConfig     `yaml:"assets"`
	Loading    LoadingConfig    `yaml:"loading"`
	Camera     CameraConfig     `yaml:"camera"`
	Navigation NavigationConfig `yaml:"navigation"`
	Storage    StorageConfig    `yaml:"storage"`
	UI         UIConfig         `yaml:"ui"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	MusicVolume  float32 `yaml:"music_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`

	// SwitchDelay separates the transition woosh from the next ambient track.
	SwitchDelay time.Duration `yaml:"switch_delay"`

	// Tracks maps section identifiers to audio asset names.
	Tracks map[string]string `yaml:"tracks"`

	Click string `yaml:"click"`
	Hover string `yaml:"hover"`
	Woosh string `yaml:"woosh"`
}

// AssetsConfig describes where assets live and which ones to register.
type AssetsConfig struct {
	Root     string       `yaml:"root"`     // Base directory for relative asset paths
	Manifest string       `yaml:"manifest"` // Optional YAML manifest, appended to Entries
	Entries  []AssetEntry `yaml:"entries"`
}

// AssetEntry is a single (kind, path, name) registration.
type AssetEntry struct {
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
	Name string `yaml:"name"`
}

// LoadingConfig tunes the asset loader.
type LoadingConfig struct {
	Watchdog   time.Duration `yaml:"watchdog"`
	EmptyDelay time.Duration `yaml:"empty_delay"`
	ByteWeight float64       `yaml:"byte_weight"`
	Parallel   int           `yaml:"parallel"`
}

// CameraConfig holds the per-section camera choreography.
type CameraConfig struct {
	TweenDuration time.Duration       `yaml:"tween_duration"`
	Breakpoint    int                 `yaml:"breakpoint"`
	Poses         map[string]PosePair `yaml:"poses"`
}

// PosePair holds the small-screen and large-screen variants of a pose.
type PosePair struct {
	Small PoseSpec `yaml:"small"`
	Large PoseSpec `yaml:"large"`
}

// PoseSpec is a camera position, look-at target and vertical field of view in degrees.
type PoseSpec struct {
	Position math.Vec3 `yaml:"position"`
	Target   math.Vec3 `yaml:"target"`
	FOV      float32   `yaml:"fov"`
}

// NavigationConfig holds overlay sequencing and clickable hotspots.
type NavigationConfig struct {
	ContentDelay  time.Duration   `yaml:"content_delay"`
	ButtonDelay   time.Duration   `yaml:"button_delay"`
	FlightTimeout time.Duration   `yaml:"flight_timeout"` // Lands a transition the camera never reported
	Hotspots      []HotspotConfig `yaml:"hotspots"`
}

// HotspotConfig is a clickable object in the scene.
type HotspotConfig struct {
	Name    string    `yaml:"name"`
	Section string    `yaml:"section"`
	Origin  string    `yaml:"origin"` // "direct" or "pole"
	Model   string    `yaml:"model"`  // Asset name holding Node
	Node    string    `yaml:"node"`   // Optional node whose translation overrides Center
	Center  math.Vec3 `yaml:"center"`
	Radius  float32   `yaml:"radius"`
}

// StorageConfig holds persisted-state settings.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// UIConfig holds front-end settings.
type UIConfig struct {
	Language string `yaml:"language"` // BCP 47 tag; unsupported languages fall back to English
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

func pose(px, py, pz, tx, ty, tz, fov float32) PoseSpec {
	return PoseSpec{Position: math.V3(px, py, pz), Target: math.V3(tx, ty, tz), FOV: fov}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Castle",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			MusicVolume:  0.7,
			SFXVolume:    0.9,
			SwitchDelay:  500 * time.Millisecond,
			Tracks: map[string]string{
				"nav":           "ambient_courtyard",
				"about":         "ambient_library",
				"aidatingcoach": "ambient_mirror",
				"download":      "ambient_vault",
				"token":         "ambient_atm",
				"roadmap":       "ambient_tower",
			},
			Click: "sfx_click",
			Hover: "sfx_hover",
			Woosh: "sfx_woosh",
		},
		Assets: AssetsConfig{
			Root: "assets",
		},
		Loading: LoadingConfig{
			Watchdog:   20 * time.Second,
			EmptyDelay: 500 * time.Millisecond,
			ByteWeight: 0.4,
			Parallel:   4,
		},
		Camera: CameraConfig{
			TweenDuration: 1200 * time.Millisecond,
			Breakpoint:    768,
			Poses: map[string]PosePair{
				"nav": {
					Small: pose(0, 7, 30, 0, 3, 0, 62),
					Large: pose(0, 5, 20, 0, 3, 0, 45),
				},
				"about": {
					Small: pose(-8, 3, 12, -8, 2, 4, 55),
					Large: pose(-8, 2.5, 9, -8, 2, 4, 40),
				},
				"aidatingcoach": {
					Small: pose(6, 2.2, 4, 6, 2, -3, 55),
					Large: pose(6, 2, 2, 6, 2, -3, 38),
				},
				"download": {
					Small: pose(-4, 2.5, -1, -4, 1, -8, 58),
					Large: pose(-4, 2, -3, -4, 1, -8, 42),
				},
				"token": {
					Small: pose(9, 2, 12, 9, 1.5, 5, 55),
					Large: pose(9, 1.8, 10, 9, 1.5, 5, 40),
				},
				"roadmap": {
					Small: pose(0, 6, -3, 0, 4, -12, 60),
					Large: pose(0, 5, -5, 0, 4, -12, 44),
				},
			},
		},
		Navigation: NavigationConfig{
			ContentDelay:  400 * time.Millisecond,
			ButtonDelay:   1200 * time.Millisecond,
			FlightTimeout: 3 * time.Second,
			Hotspots: []HotspotConfig{
				{Name: "board", Section: "about", Origin: "direct", Center: math.V3(-8, 2, 4), Radius: 1.5},
				{Name: "mirror", Section: "aidatingcoach", Origin: "direct", Center: math.V3(6, 2, -3), Radius: 1.2},
				{Name: "chest", Section: "download", Origin: "direct", Center: math.V3(-4, 1, -8), Radius: 1.2},
				{Name: "atm", Section: "token", Origin: "direct", Center: math.V3(9, 1.5, 5), Radius: 1.2},
				{Name: "scroll", Section: "roadmap", Origin: "direct", Center: math.V3(0, 4, -12), Radius: 1.5},
				{Name: "pole_mirror", Section: "aidatingcoach", Origin: "pole", Center: math.V3(1.5, 3.2, 2), Radius: 0.4},
				{Name: "pole_atm", Section: "token", Origin: "pole", Center: math.V3(1.5, 2.6, 2), Radius: 0.4},
				{Name: "pole_scroll", Section: "roadmap", Origin: "pole", Center: math.V3(1.5, 2.0, 2), Radius: 0.4},
			},
		},
		Storage: StorageConfig{
			Path: filepath.Join(ConfigDir(), "storage.db"),
		},
		UI: UIConfig{
			Language: "en",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
