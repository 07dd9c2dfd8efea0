package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"focusstake/internal/platform/config"
	apperrors "focusstake/internal/platform/errors"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, "focusstake.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
	if cfg.TickPeriod != 400*time.Millisecond || cfg.RatioStrategy != config.RatioGlobal {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ActiveSessionDir() != filepath.Join(dir, "active") {
		t.Fatalf("unexpected active session dir %s", cfg.ActiveSessionDir())
	}
}

func TestLoadRequiresDataDir(t *testing.T) {
	t.Parallel()
	if _, err := config.Load(" "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	raw := "ratio_strategy: commitment\ntick_period: 500ms\nlog_level: debug\nsigners:\n  - alice\n  - bob\n"
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RatioStrategy != config.RatioCommitment || cfg.TickPeriod != 500*time.Millisecond || cfg.LogLevel != "debug" {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	if len(cfg.Signers) != 2 || cfg.Signers[1] != "bob" {
		t.Fatalf("unexpected signers %v", cfg.Signers)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte("ratio_strategy: lucky\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(dir); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid strategy error, got %v", err)
	}

	broken := t.TempDir()
	if err := os.WriteFile(filepath.Join(broken, config.FileName), []byte("tick_period: [\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(broken); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte("log_level: debug\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FOCUSSTAKE_LOG_LEVEL", "warn")
	t.Setenv("FOCUSSTAKE_SIGNERS", "carol,dave")
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected env log level, got %s", cfg.LogLevel)
	}
	if len(cfg.Signers) != 2 || cfg.Signers[0] != "carol" {
		t.Fatalf("expected env signers, got %v", cfg.Signers)
	}

	t.Setenv("FOCUSSTAKE_TICK_PERIOD", "soon")
	if _, err := config.Load(dir); err == nil {
		t.Fatalf("expected env parse error")
	}
}
