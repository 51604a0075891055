package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/tapmorse/internal/config"
	"github.com/verte-zerg/tapmorse/internal/model"
	"github.com/verte-zerg/tapmorse/internal/stats"
)

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return out.String()
}

func TestEncodeCommand(t *testing.T) {
	out := execute(t, "", "encode", "sos", "hi")
	if strings.TrimSpace(out) != "••• --- ••• / •••• ••" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEncodeScriptReplaysToText(t *testing.T) {
	script := execute(t, "", "encode", "--script", "73 de k1abc")
	out := execute(t, script, "replay", "-")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 || lines[len(lines)-2] != "73DEK1ABC" {
		t.Fatalf("unexpected replay output:\n%s", out)
	}
}

func TestReplayMinimalProfileShowsLastChar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.txt")
	if err := os.WriteFile(path, []byte("down 300ms\nup 600ms\n"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	out := execute(t, "", "replay", "--profile", "minimal", path)
	if !strings.HasPrefix(out, "-        T\nT\n") {
		t.Fatalf("unexpected replay output %q", out)
	}
}

func TestValidateConfig(t *testing.T) {
	cfg, err := config.ProfileDefaults(config.ProfileStandard)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if err := validateConfig(cfg); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}

	bad := cfg
	bad.Volume = 1.5
	if validateConfig(bad) == nil {
		t.Fatalf("expected volume error")
	}

	minimal, _ := config.ProfileDefaults(config.ProfileMinimal)
	minimal.DrillLength = 10
	if validateConfig(minimal) == nil {
		t.Fatalf("expected drill without transcript to fail")
	}
}

func TestConfigTemplateDecodes(t *testing.T) {
	var file config.FileConfig
	uncommented := regexp.MustCompile(`(?m)^# ([a-z-]+ = )`).ReplaceAllString(defaultConfigTemplate(), "$1")
	meta, err := toml.Decode(uncommented, &file)
	if err != nil {
		t.Fatalf("decode template: %v", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		t.Fatalf("template has unknown key %q", undecoded[0].String())
	}
	if file.Keyer.CharDelay == nil || *file.Keyer.CharDelay != 0.2 {
		t.Fatalf("expected char-delay 0.2 in template, got %v", file.Keyer.CharDelay)
	}
}

func TestRenderReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := renderReport(&buf, stats.Report{}, model.StatsConfig{CurveWindow: 20}, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
