package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"artlens/internal/tui/state"
)

const (
	EnvPrefix = "ARTLENS"
	appDir    = "artlens"
	fileName  = "config.yaml"
)

// Config is the resolved viewer configuration.
type Config struct {
	View  ViewConfig
	Fetch FetchConfig
	Log   LogConfig
}

// ViewConfig seeds the viewer's initial state and input handling.
type ViewConfig struct {
	DefaultMode    state.ViewMode
	SliderPosition float64
	OverlayOpacity float64
	FullSource     state.FullViewSource
	SplitDirection state.SplitDirection
	ToolOrder      state.ToolOrder
	PanStep        float64 // keyboard pan, in pixels
	Mouse          bool
	Watch          bool
	NoColor        bool
}

type FetchConfig struct {
	Timeout time.Duration
}

type LogConfig struct {
	File  string
	Level string
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("view.default_mode", "slide")
	v.SetDefault("view.slider_position", state.DefaultSlider)
	v.SetDefault("view.overlay_opacity", state.DefaultOpacity)
	v.SetDefault("view.full_source", "render")
	v.SetDefault("view.split_direction", "horizontal")
	v.SetDefault("view.tool_order", state.DefaultToolOrder().Names())
	v.SetDefault("view.pan_step", 4.0)
	v.SetDefault("view.mouse", true)
	v.SetDefault("view.watch", true)
	v.SetDefault("view.no_color", false)
	v.SetDefault("fetch.timeout", "20s")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// New returns a viper instance with defaults and ARTLENS_* env overrides.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// DefaultPath is where the config file lives unless --config says otherwise.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDir, fileName)
	}
	home, err := homedir.Dir()
	if err != nil {
		return fileName
	}
	return filepath.Join(home, ".config", appDir, fileName)
}

// Read loads path into v. An explicit path must exist; the default path is
// optional.
func Read(v *viper.Viper, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return errors.Wrap(err, "expand config path")
	}
	if _, err := os.Stat(expanded); err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "stat config")
	}
	v.SetConfigFile(expanded)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "read config %s", expanded)
	}
	return nil
}

// Load reads the config file (if any) and resolves it.
func Load(path string) (*Config, *viper.Viper, error) {
	v := New()
	if err := Read(v, path); err != nil {
		return nil, nil, err
	}
	c, err := Resolve(v)
	if err != nil {
		return nil, nil, err
	}
	return c, v, nil
}

// Resolve validates and converts raw viper values. Percentages are clamped;
// unknown names are errors.
func Resolve(v *viper.Viper) (*Config, error) {
	mode, ok := state.ParseViewMode(strings.ToLower(v.GetString("view.default_mode")))
	if !ok {
		return nil, errors.Errorf("view.default_mode: unknown mode %q", v.GetString("view.default_mode"))
	}

	var full state.FullViewSource
	switch strings.ToLower(v.GetString("view.full_source")) {
	case "render":
		full = state.SourceRender
	case "reference":
		full = state.SourceReference
	default:
		return nil, errors.Errorf("view.full_source: want reference or render, got %q", v.GetString("view.full_source"))
	}

	var dir state.SplitDirection
	switch strings.ToLower(v.GetString("view.split_direction")) {
	case "horizontal", "side-by-side":
		dir = state.SplitHorizontal
	case "vertical", "stacked":
		dir = state.SplitVertical
	default:
		return nil, errors.Errorf("view.split_direction: want horizontal or vertical, got %q", v.GetString("view.split_direction"))
	}

	tools, err := state.ParseToolOrder(v.GetStringSlice("view.tool_order"))
	if err != nil {
		return nil, errors.Wrap(err, "view.tool_order")
	}

	timeout := v.GetDuration("fetch.timeout")
	if timeout <= 0 {
		return nil, errors.Errorf("fetch.timeout: must be positive, got %q", v.GetString("fetch.timeout"))
	}

	panStep := v.GetFloat64("view.pan_step")
	if panStep <= 0 {
		panStep = 4
	}

	return &Config{
		View: ViewConfig{
			DefaultMode:    mode,
			SliderPosition: state.SetSlider(state.UIState{}, v.GetFloat64("view.slider_position")).Slider,
			OverlayOpacity: state.SetOpacity(state.UIState{}, v.GetFloat64("view.overlay_opacity")).Opacity,
			FullSource:     full,
			SplitDirection: dir,
			ToolOrder:      tools,
			PanStep:        panStep,
			Mouse:          v.GetBool("view.mouse"),
			Watch:          v.GetBool("view.watch"),
			NoColor:        v.GetBool("view.no_color"),
		},
		Fetch: FetchConfig{Timeout: timeout},
		Log: LogConfig{
			File:  v.GetString("log.file"),
			Level: v.GetString("log.level"),
		},
	}, nil
}

// Default is the configuration with every key at its default value, ignoring
// files and environment.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	c, err := Resolve(v)
	if err != nil {
		panic(errors.Wrap(err, "built-in defaults"))
	}
	return c
}

// InitialState builds the viewer state a fresh mount starts with.
func (c *Config) InitialState() state.UIState {
	s := state.New()
	s.Mode = c.View.DefaultMode
	s.Slider = c.View.SliderPosition
	s.Opacity = c.View.OverlayOpacity
	s.FullSource = c.View.FullSource
	s.SplitDirection = c.View.SplitDirection
	if len(c.View.ToolOrder) > 0 {
		s.Tools = c.View.ToolOrder.Clone()
	}
	return s
}

// Save writes the defaults of a fresh viper instance to path, creating the
// directory. Existing files are left alone.
func Save(path string) (string, error) {
	if path == "" {
		path = DefaultPath()
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.Wrap(err, "expand config path")
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return "", errors.Wrap(err, "create config dir")
	}
	v := viper.New()
	SetDefaults(v)
	if err := v.SafeWriteConfigAs(expanded); err != nil {
		return "", errors.Wrapf(err, "write config %s", expanded)
	}
	return expanded, nil
}
