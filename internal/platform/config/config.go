package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	hclog "github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"

	apperrors "focusstake/internal/platform/errors"
)

const (
	FileName = "focusstake.yaml"

	RatioGlobal     = "global"
	RatioCommitment = "commitment"

	DefaultSettlementAuthority = "vault-authority"
)

type Config struct {
	DataDir             string        `yaml:"-"`
	DBPath              string        `yaml:"db_path" env:"FOCUSSTAKE_DB_PATH"`
	JournalDir          string        `yaml:"journal_dir" env:"FOCUSSTAKE_JOURNAL_DIR"`
	LogLevel            string        `yaml:"log_level" env:"FOCUSSTAKE_LOG_LEVEL"`
	SettlementAuthority string        `yaml:"settlement_authority" env:"FOCUSSTAKE_SETTLEMENT_AUTHORITY"`
	TickPeriod          time.Duration `yaml:"tick_period" env:"FOCUSSTAKE_TICK_PERIOD"`
	RatioStrategy       string        `yaml:"ratio_strategy" env:"FOCUSSTAKE_RATIO_STRATEGY"`
	Signers             []string      `yaml:"signers" env:"FOCUSSTAKE_SIGNERS" envSeparator:","`
}

// New returns the defaults rooted at dataDir.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("%w: data dir is required", apperrors.ErrInvalidInput)
	}
	return Config{
		DataDir:             dataDir,
		DBPath:              filepath.Join(dataDir, "focusstake.db"),
		JournalDir:          filepath.Join(dataDir, "journal"),
		LogLevel:            "info",
		SettlementAuthority: DefaultSettlementAuthority,
		TickPeriod:          400 * time.Millisecond,
		RatioStrategy:       RatioGlobal,
	}, nil
}

// Load layers <dataDir>/focusstake.yaml and FOCUSSTAKE_* variables over the defaults.
func Load(dataDir string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	raw, err := os.ReadFile(filepath.Join(dataDir, FileName))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config: %w", err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.RatioStrategy {
	case RatioGlobal, RatioCommitment:
	default:
		return fmt.Errorf("%w: ratio strategy %q", apperrors.ErrInvalidInput, c.RatioStrategy)
	}
	if c.TickPeriod <= 0 {
		return fmt.Errorf("%w: tick period must be positive", apperrors.ErrInvalidInput)
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("%w: log level %q", apperrors.ErrInvalidInput, c.LogLevel)
	}
	if strings.TrimSpace(c.SettlementAuthority) == "" {
		return fmt.Errorf("%w: settlement authority is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("%w: db path is required", apperrors.ErrInvalidInput)
	}
	return nil
}

// ActiveSessionDir holds one pointer file per owner naming the session
// they started last.
func (c Config) ActiveSessionDir() string {
	return filepath.Join(c.DataDir, "active")
}
