package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsvg/pkg/errors"
	"github.com/matzehuels/qrsvg/pkg/pipeline"
)

// Config is the TOML config file. Every field is optional.
//
//	[render]
//	style = "rounded"
//	ratio = "0.9"
//	formats = ["svg", "png"]
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//
//	[serve]
//	addr = ":8080"
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Serve  ServeConfig  `toml:"serve"`
}

// RenderConfig mirrors the render flags.
type RenderConfig struct {
	Style          string   `toml:"style"`
	Ratio          string   `toml:"ratio"`
	Level          string   `toml:"level"`
	Box            int      `toml:"box"`
	Border         *int     `toml:"border"`
	Front          string   `toml:"front"`
	Fill           string   `toml:"fill"`
	Background     string   `toml:"background"`
	EyeColor       string   `toml:"eye_color"`
	EyeCenterColor string   `toml:"eye_center_color"`
	EyeStyle       string   `toml:"eye_style"`
	Path           bool     `toml:"path"`
	PixelUnits     bool     `toml:"px"`
	Formats        []string `toml:"formats"`
	Scale          float64  `toml:"scale"`
	Workers        int      `toml:"workers"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

// ServeConfig configures the render server.
type ServeConfig struct {
	Addr    string   `toml:"addr"`
	Timeout duration `toml:"timeout"`
}

// duration decodes TOML strings such as "30s".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func defaultConfigHint() string {
	return "$XDG_CONFIG_HOME/" + appName + "/config.toml"
}

// LoadConfig reads the config at path. An empty path tries the default
// location and yields a zero Config when no file exists there.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// apply fills opts from the config wherever the matching flag was not set
// on the command line.
func (rc RenderConfig) apply(cmd *cobra.Command, opts *pipeline.Options) {
	set := func(flag string) bool { return !cmd.Flags().Changed(flag) }

	if rc.Style != "" && set("style") {
		opts.Style = rc.Style
	}
	if rc.Ratio != "" && set("ratio") {
		opts.SizeRatio = rc.Ratio
	}
	if rc.Level != "" && set("level") {
		opts.Level = rc.Level
	}
	if rc.Box != 0 && set("box") {
		opts.BoxSize = rc.Box
	}
	if rc.Border != nil && set("border") {
		b := *rc.Border
		opts.Border = &b
	}
	if rc.Front != "" && set("front") {
		opts.FrontColor = rc.Front
	}
	if rc.Fill != "" && set("fill") {
		opts.FillColor = rc.Fill
	}
	if rc.Background != "" && set("background") {
		opts.Background = rc.Background
	}
	if rc.EyeColor != "" && set("eye-color") {
		opts.EyeColor = rc.EyeColor
	}
	if rc.EyeCenterColor != "" && set("eye-center-color") {
		opts.EyeCenterColor = rc.EyeCenterColor
	}
	if rc.EyeStyle != "" && set("eye-style") {
		opts.EyeStyle = rc.EyeStyle
	}
	if rc.Path && set("path") {
		opts.PathMode = true
	}
	if rc.PixelUnits && set("px") {
		opts.PixelUnits = true
	}
	if len(rc.Formats) > 0 && set("format") {
		opts.Formats = rc.Formats
	}
	if rc.Scale != 0 && set("scale") {
		opts.Scale = rc.Scale
	}
	if rc.Workers != 0 && set("workers") {
		opts.Workers = rc.Workers
	}
}
