package config

import "github.com/spf13/pflag"

// Overrides are CLI flag values applied on top of defaults and the config file.
type Overrides struct {
	ConfigPath string
	Debug      bool
	Windowed   bool
	Fullscreen bool
	Width      int
	Height     int
	Muted      bool
	AssetsRoot string
	Manifest   string
	LogFile    string
	Language   string
}

// BindFlags registers override flags on fs and returns the struct they fill.
func BindFlags(fs *pflag.FlagSet) *Overrides {
	ov := &Overrides{}
	fs.StringVar(&ov.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&ov.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&ov.Windowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&ov.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&ov.Width, "width", 0, "Window width")
	fs.IntVar(&ov.Height, "height", 0, "Window height")
	fs.BoolVar(&ov.Muted, "mute", false, "Start with audio muted")
	fs.StringVar(&ov.AssetsRoot, "assets", "", "Asset root directory")
	fs.StringVar(&ov.Manifest, "manifest", "", "Asset manifest file")
	fs.StringVar(&ov.LogFile, "log-file", "", "Write logs to this file")
	fs.StringVar(&ov.Language, "lang", "", "Interface language, e.g. en or de")
	return ov
}

// apply applies CLI flag overrides to the config.
func (ov *Overrides) apply(cfg *Config) {
	if ov == nil {
		return
	}
	if ov.Debug {
		cfg.Logging.Level = "debug"
	}
	if ov.Windowed {
		cfg.Window.Fullscreen = false
	}
	if ov.Fullscreen {
		cfg.Window.Fullscreen = true
	}
	if ov.Width > 0 {
		cfg.Window.Width = ov.Width
	}
	if ov.Height > 0 {
		cfg.Window.Height = ov.Height
	}
	if ov.Muted {
		cfg.Audio.Muted = true
	}
	if ov.AssetsRoot != "" {
		cfg.Assets.Root = ov.AssetsRoot
	}
	if ov.Manifest != "" {
		cfg.Assets.Manifest = ov.Manifest
	}
	if ov.LogFile != "" {
		cfg.Logging.LogFile = ov.LogFile
	}
	if ov.Language != "" {
		cfg.UI.Language = ov.Language
	}
}
