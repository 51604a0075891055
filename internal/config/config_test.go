package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored: %v", err)
	}
	if cfg.Keyer.Profile != nil || cfg.Drill.Length != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[keyer]
profile = "minimal"
char-delay = 0.35
audio = true

[drill]
length = 10
charset = "digits"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	file, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	profile := ResolveProfile(ProfileStandard, false, file)
	if profile != ProfileMinimal {
		t.Fatalf("expected file profile, got %q", profile)
	}
	if got := ResolveProfile(ProfileStandard, true, file); got != ProfileStandard {
		t.Fatalf("expected flag profile to win, got %q", got)
	}

	base, err := ProfileDefaults(profile)
	if err != nil {
		t.Fatalf("profile defaults: %v", err)
	}
	cfg := file.Overlay(base)
	if cfg.CharDelay != 0.35 || !cfg.Audio || cfg.Transcript {
		t.Fatalf("unexpected keyer settings: %+v", cfg)
	}
	if cfg.ClickThreshold != 0.15 {
		t.Fatalf("expected profile click threshold, got %v", cfg.ClickThreshold)
	}
	if cfg.DrillLength != 10 || cfg.DrillCharset != "digits" || cfg.WeakTop != DefaultWeakTop {
		t.Fatalf("unexpected drill settings: %+v", cfg)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[keyer]\nclick = 0.1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestProfileDefaults(t *testing.T) {
	std, err := ProfileDefaults("")
	if err != nil {
		t.Fatalf("standard profile: %v", err)
	}
	kc := KeyerConfig(std)
	if kc.ClickThreshold != 150*time.Millisecond || kc.CharDelay != 200*time.Millisecond {
		t.Fatalf("unexpected standard timings: %+v", kc)
	}
	if !kc.Transcript || !kc.Audio {
		t.Fatalf("expected standard profile to enable transcript and audio")
	}

	minimal, err := ProfileDefaults("Minimal")
	if err != nil {
		t.Fatalf("minimal profile: %v", err)
	}
	kc = KeyerConfig(minimal)
	if kc.CharDelay != 500*time.Millisecond || kc.Transcript || kc.Audio {
		t.Fatalf("unexpected minimal settings: %+v", kc)
	}

	if _, err := ProfileDefaults("expert"); err == nil {
		t.Fatalf("expected unknown profile error")
	}
}

func TestOverlaySections(t *testing.T) {
	delay := 0.4
	words := "/tmp/words.txt"
	file := FileConfig{
		Keyer: KeyerSection{CharDelay: &delay},
		Drill: DrillSection{Words: &words},
	}
	base, err := ProfileDefaults(ProfileStandard)
	if err != nil {
		t.Fatalf("profile defaults: %v", err)
	}
	kc := KeyerConfig(file.Overlay(base))
	if kc.CharDelay != 400*time.Millisecond || kc.ClickThreshold != 150*time.Millisecond {
		t.Fatalf("unexpected keyer timings: %+v", kc)
	}
	if got := file.Overlay(base).WordList; got != words {
		t.Fatalf("expected word list %q, got %q", words, got)
	}
}
