// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/tapmorse/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Keyer KeyerSection `toml:"keyer"`
	Drill DrillSection `toml:"drill"`
}

// KeyerSection maps the [keyer] table.
type KeyerSection struct {
	Profile        *string  `toml:"profile"`
	ClickThreshold *float64 `toml:"click-threshold"`
	CharDelay      *float64 `toml:"char-delay"`
	Transcript     *bool    `toml:"transcript"`
	Audio          *bool    `toml:"audio"`
	ToneFrequency  *float64 `toml:"tone-frequency"`
	Volume         *float64 `toml:"volume"`
	FrameRate      *int     `toml:"frame-rate"`
}

// DrillSection maps the [drill] table.
type DrillSection struct {
	Length     *int     `toml:"length"`
	Charset    *string  `toml:"charset"`
	Words      *string  `toml:"words"`
	FocusWeak  *bool    `toml:"focus-weak"`
	WeakTop    *int     `toml:"weak-top"`
	WeakFactor *float64 `toml:"weak-factor"`
	WeakWindow *int     `toml:"weak-window"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Overlay returns cfg with every value set in the file applied on top.
// The profile is not applied here; see ResolveProfile.
func (f FileConfig) Overlay(cfg model.Config) model.Config {
	setFloat(&cfg.ClickThreshold, f.Keyer.ClickThreshold)
	setFloat(&cfg.CharDelay, f.Keyer.CharDelay)
	setBool(&cfg.Transcript, f.Keyer.Transcript)
	setBool(&cfg.Audio, f.Keyer.Audio)
	setFloat(&cfg.ToneFrequency, f.Keyer.ToneFrequency)
	setFloat(&cfg.Volume, f.Keyer.Volume)
	setInt(&cfg.FrameRate, f.Keyer.FrameRate)

	setInt(&cfg.DrillLength, f.Drill.Length)
	setString(&cfg.DrillCharset, f.Drill.Charset)
	setString(&cfg.WordList, f.Drill.Words)
	setBool(&cfg.FocusWeak, f.Drill.FocusWeak)
	setInt(&cfg.WeakTop, f.Drill.WeakTop)
	setFloat(&cfg.WeakFactor, f.Drill.WeakFactor)
	setInt(&cfg.WeakWindow, f.Drill.WeakWindow)
	return cfg
}

func setFloat(target, value *float64) {
	if value != nil {
		*target = *value
	}
}

func setInt(target, value *int) {
	if value != nil {
		*target = *value
	}
}

func setBool(target, value *bool) {
	if value != nil {
		*target = *value
	}
}

func setString(target, value *string) {
	if value != nil {
		*target = *value
	}
}
