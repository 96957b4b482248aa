package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"desklet/internal/widget"
)

type Config struct {
	SaveDirectory string
	StartMenu     bool
	DatabasePath  string
	FrameRate     int
	CellWidth     int
	CellHeight    int
	Timing        widget.Timing
	Widgets       []WidgetSpec
}

// WidgetSpec describes a widget spawned at startup.
type WidgetSpec struct {
	Name    string         `mapstructure:"name" yaml:"name"`
	Kind    string         `mapstructure:"kind" yaml:"kind"`
	Options map[string]any `mapstructure:"options" yaml:"options,omitempty"`
}

type fileConfig struct {
	SaveDirectory string `mapstructure:"save_directory"`
	StartMenu     bool   `mapstructure:"start_menu"`
	Database      struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Shell struct {
		FrameRate  int `mapstructure:"frame_rate"`
		CellWidth  int `mapstructure:"cell_width"`
		CellHeight int `mapstructure:"cell_height"`
	} `mapstructure:"shell"`
	Timing struct {
		ResizeSettle int `mapstructure:"resize_settle"`
		SaveDelay    int `mapstructure:"save_delay"`
		EnvelopeShow int `mapstructure:"envelope_show"`
		EnvelopeHide int `mapstructure:"envelope_hide"`
	} `mapstructure:"timing"`
	Widgets []WidgetSpec `mapstructure:"widgets"`
}

func defaultWidgets() []map[string]any {
	return []map[string]any{
		{"name": "clock", "kind": kindClock, "options": map[string]any{"width": 160, "height": 160, "right": 16, "top": 16, "aspect": true}},
		{"name": "note", "kind": kindNote, "options": map[string]any{"width": 240, "height": 96, "left": 16, "top": 16}},
		{"name": "spark", "kind": kindSpark, "options": map[string]any{"width": 240, "height": 64, "left": 16, "top": 160, "frequency": 4}},
	}
}

// loadConfig reads the config file and DESKLET_ environment overrides.
// A missing file leaves the defaults in place.
func loadConfig() (*Config, error) {
	home, _ := os.UserHomeDir()
	def := widget.DefaultTiming()

	v := viper.New()
	v.SetDefault("save_directory", "")
	v.SetDefault("start_menu", true)
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "desklet", "settings.db"))
	v.SetDefault("shell.frame_rate", defaultFrameRate)
	v.SetDefault("shell.cell_width", defaultCellWidth)
	v.SetDefault("shell.cell_height", defaultCellHeight)
	v.SetDefault("timing.resize_settle", def.ResizeSettle.Milliseconds())
	v.SetDefault("timing.save_delay", def.SaveDelay.Milliseconds())
	v.SetDefault("timing.envelope_show", def.EnvelopeShow.Milliseconds())
	v.SetDefault("timing.envelope_hide", def.EnvelopeHide.Milliseconds())
	v.SetDefault("widgets", defaultWidgets())

	v.SetConfigType("toml")
	if path := os.Getenv("DESKLET_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "desklet"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DESKLET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return fc.resolve(home), nil
}

func (fc fileConfig) resolve(home string) *Config {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	save := fc.SaveDirectory
	if strings.HasPrefix(save, "~") {
		save = filepath.Join(home, strings.TrimPrefix(save, "~"))
	}
	if save != "" && !filepath.IsAbs(save) {
		if abs, err := filepath.Abs(save); err == nil {
			save = abs
		}
	}

	return &Config{
		SaveDirectory: save,
		StartMenu:     fc.StartMenu,
		DatabasePath:  fc.Database.Path,
		FrameRate:     fc.Shell.FrameRate,
		CellWidth:     fc.Shell.CellWidth,
		CellHeight:    fc.Shell.CellHeight,
		Timing: widget.Timing{
			ResizeSettle: ms(fc.Timing.ResizeSettle),
			SaveDelay:    ms(fc.Timing.SaveDelay),
			EnvelopeShow: ms(fc.Timing.EnvelopeShow),
			EnvelopeHide: ms(fc.Timing.EnvelopeHide),
		},
		Widgets: fc.Widgets,
	}
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
