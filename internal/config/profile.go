package config

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/tapmorse/internal/keyer"
	"github.com/verte-zerg/tapmorse/internal/model"
)

// Profile names.
const (
	ProfileStandard = "standard"
	ProfileMinimal  = "minimal"
)

// Defaults shared by every profile.
const (
	DefaultToneFrequency = 600.0
	DefaultVolume        = 0.5
	DefaultFrameRate     = 60
	DefaultDrillLength   = 0
	DefaultDrillCharset  = "letters"
	DefaultWeakTop       = 8
	DefaultWeakFactor    = 2.0
	DefaultWeakWindow    = 20
)

var profiles = map[string]model.Config{
	ProfileStandard: {
		Profile:        ProfileStandard,
		ClickThreshold: 0.15,
		CharDelay:      0.2,
		Transcript:     true,
		Audio:          true,
	},
	ProfileMinimal: {
		Profile:        ProfileMinimal,
		ClickThreshold: 0.15,
		CharDelay:      0.5,
	},
}

// ProfileNames lists the known profiles.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProfileDefaults returns the full default configuration for a profile.
func ProfileDefaults(name string) (model.Config, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		name = ProfileStandard
	}
	cfg, ok := profiles[name]
	if !ok {
		return model.Config{}, fmt.Errorf("unknown profile %q (available: %s)", name, strings.Join(ProfileNames(), ", "))
	}
	cfg.ToneFrequency = DefaultToneFrequency
	cfg.Volume = DefaultVolume
	cfg.FrameRate = DefaultFrameRate
	cfg.DrillLength = DefaultDrillLength
	cfg.DrillCharset = DefaultDrillCharset
	cfg.WeakTop = DefaultWeakTop
	cfg.WeakFactor = DefaultWeakFactor
	cfg.WeakWindow = DefaultWeakWindow
	return cfg, nil
}

// ResolveProfile picks the profile name: an explicit flag wins over the file.
func ResolveProfile(flagValue string, flagChanged bool, file FileConfig) string {
	if flagChanged {
		return flagValue
	}
	if file.Keyer.Profile != nil {
		return *file.Keyer.Profile
	}
	return flagValue
}

// KeyerConfig converts settings into controller timings.
func KeyerConfig(cfg model.Config) keyer.Config {
	return keyer.Config{
		ClickThreshold: seconds(cfg.ClickThreshold),
		CharDelay:      seconds(cfg.CharDelay),
		Transcript:     cfg.Transcript,
		Audio:          cfg.Audio,
	}
}

func seconds(v float64) time.Duration {
	return time.Duration(math.Round(v * float64(time.Second)))
}
