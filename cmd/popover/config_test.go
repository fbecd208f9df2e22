package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/popover"
	"github.com/spf13/pflag"
)

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("popover", pflag.ContinueOnError)
	fs.Float64("duration", defaultDuration, "")
	fs.Float64("damping", defaultDamping, "")
	fs.String("easing", "spring", "")
	fs.Bool("debug", false, "")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCLIConfigDefaults(t *testing.T) {
	cfg, err := loadCLIConfig(filepath.Join(t.TempDir(), "missing.yml"), nil)
	if err != nil {
		t.Fatalf("loadCLIConfig: %v", err)
	}
	if cfg.Duration != defaultDuration || cfg.Damping != defaultDamping {
		t.Errorf("duration=%v damping=%v", cfg.Duration, cfg.Damping)
	}
	if cfg.Easing != "spring" || cfg.Initial != "collapsed" {
		t.Errorf("easing=%q initial=%q", cfg.Easing, cfg.Initial)
	}
	if cfg.Width != defaultWidth || cfg.Height != defaultHeight {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestLoadCLIConfigPrecedence(t *testing.T) {
	path := writeConfig(t, "duration: 1.5\ndamping: 0.7\neasing: outCubic\nshow-fps: true\n")

	t.Run("file", func(t *testing.T) {
		cfg, err := loadCLIConfig(path, testFlags(t))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Duration != 1.5 || cfg.Damping != 0.7 || cfg.Easing != "outCubic" || !cfg.ShowFPS {
			t.Errorf("got %+v", cfg)
		}
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("POPOVER_DURATION", "2")
		t.Setenv("POPOVER_SHOW_FPS", "false")
		cfg, err := loadCLIConfig(path, testFlags(t))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Duration != 2 || cfg.ShowFPS {
			t.Errorf("duration=%v show-fps=%v, want 2 false", cfg.Duration, cfg.ShowFPS)
		}
	})

	t.Run("flag over env", func(t *testing.T) {
		t.Setenv("POPOVER_DURATION", "2")
		cfg, err := loadCLIConfig(path, testFlags(t, "--duration=0.3", "--debug"))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Duration != 0.3 || !cfg.Debug {
			t.Errorf("duration=%v debug=%v, want 0.3 true", cfg.Duration, cfg.Debug)
		}
		if cfg.Damping != 0.7 {
			t.Errorf("unset flag overrode file: damping=%v", cfg.Damping)
		}
	})
}

func TestLoadCLIConfigInvalidFile(t *testing.T) {
	path := writeConfig(t, "duration: [1, 2\n")
	if _, err := loadCLIConfig(path, nil); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestPopoverConfig(t *testing.T) {
	cli := cliConfig{
		Duration:  0.9,
		Damping:   1,
		Collapsed: 0.1,
		Expanded:  0.85,
		Easing:    "spring",
		Initial:   "expanded",
	}
	cfg, err := cli.popoverConfig(480)
	if err != nil {
		t.Fatalf("popoverConfig: %v", err)
	}
	if cfg.CollapsedExtent != 48 || cfg.ExpandedExtent != 408 {
		t.Errorf("extents = %v/%v, want 48/408", cfg.CollapsedExtent, cfg.ExpandedExtent)
	}
	if cfg.Initial != popover.Expanded {
		t.Errorf("initial = %s, want expanded", cfg.Initial)
	}

	tests := []struct {
		name   string
		mutate func(*cliConfig)
	}{
		{"bad initial", func(c *cliConfig) { c.Initial = "open" }},
		{"bad easing", func(c *cliConfig) { c.Easing = "wobble" }},
		{"zero duration", func(c *cliConfig) { c.Duration = 0 }},
		{"inverted extents", func(c *cliConfig) { c.Collapsed, c.Expanded = 0.9, 0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := cli
			tt.mutate(&bad)
			if _, err := bad.popoverConfig(480); !errors.Is(err, popover.ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
