package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/prometheus/common/model"
)

const (
	envPrefix  = "ROTA_"
	envConfig  = "ROTA_CONFIG"
	dotEnvFile = ".env"
)

// Load builds a Config by layering sources. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) named by ROTA_CONFIG
//  3. env (prefix ROTA_; a double underscore selects a nested key,
//     e.g. ROTA_ROSTER__NAME -> roster.name)
//
// A .env file in the working directory is read first; it never overrides
// variables already present in the environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, "")
}

// LoadFrom is Load with an explicit YAML path taking the place of ROTA_CONFIG.
func LoadFrom(_ context.Context, path string) (*Config, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	base := New()
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(envConfig)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	resetCollections(k, &cfg)
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resetCollections drops default maps and slices that the loaded sources
// set, so a configured collection replaces the default instead of being
// merged into it element by element.
func resetCollections(k *koanf.Koanf, cfg *Config) {
	if k.Exists("roles.fairness") {
		cfg.Roles.Fairness = nil
	}
	if k.Exists("roles.eligibility") {
		cfg.Roles.Eligibility = nil
	}
	if k.Exists("roles.grouped_display") {
		cfg.Roles.GroupedDisplay = nil
	}
	if k.Exists("meeting.treasures_rows") {
		cfg.Meeting.TreasuresRows = nil
	}
	if k.Exists("meeting.ministry_rows") {
		cfg.Meeting.MinistryRows = nil
	}
	if k.Exists("meeting.living_rows") {
		cfg.Meeting.LivingRows = nil
	}
	if k.Exists("metrics.labels") {
		cfg.Metrics.Labels = nil
	}
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// Validate checks the invariants the engine relies on.
func (c *Config) Validate() error {
	if c.RosterPath == "" {
		return fmt.Errorf("%w: roster_path must not be empty", ErrInvalidConfig)
	}
	if c.ProgramPath == "" {
		return fmt.Errorf("%w: program_path must not be empty", ErrInvalidConfig)
	}
	switch c.LedgerDriver {
	case LedgerCSV:
		if c.LedgerPath == "" {
			return fmt.Errorf("%w: ledger_path must not be empty", ErrInvalidConfig)
		}
	case LedgerSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite_path must not be empty", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown ledger_driver %q", ErrInvalidConfig, c.LedgerDriver)
	}
	switch c.Prompt {
	case PromptAuto, PromptForm, PromptLine:
	default:
		return fmt.Errorf("%w: unknown prompt %q", ErrInvalidConfig, c.Prompt)
	}
	if c.Roster.Name == "" {
		return fmt.Errorf("%w: roster.name must not be empty", ErrInvalidConfig)
	}
	if c.Roles.RecentLimit < 0 {
		return fmt.Errorf("%w: roles.recent_limit must not be negative", ErrInvalidConfig)
	}
	if err := uniqueMembership("roles.fairness", c.Roles.Fairness); err != nil {
		return err
	}
	if err := uniqueMembership("roles.eligibility", c.Roles.Eligibility); err != nil {
		return err
	}
	top := c.Meeting.TopN
	for name, n := range map[string]int{
		"chairman": top.Chairman, "treasures": top.Treasures, "reading": top.Reading,
		"ministry": top.Ministry, "living": top.Living,
	} {
		if n <= 0 {
			return fmt.Errorf("%w: meeting.top_n.%s must be positive", ErrInvalidConfig, name)
		}
	}
	if !validMetricName(c.Metrics.Namespace) {
		return fmt.Errorf("%w: metrics.namespace %q is not a valid metric name", ErrInvalidConfig, c.Metrics.Namespace)
	}
	for name := range c.Metrics.Labels {
		if !validMetricName(name) {
			return fmt.Errorf("%w: metrics.labels: %q is not a valid label name", ErrInvalidConfig, name)
		}
	}
	return nil
}

func validMetricName(name string) bool {
	return model.LabelName(name).IsValidLegacy() && !strings.HasPrefix(name, model.ReservedLabelPrefix)
}

// uniqueMembership rejects a role listed under more than one group.
func uniqueMembership(section string, groups map[string][]string) error {
	owner := make(map[string]string)
	for group, members := range groups {
		for _, role := range members {
			if prev, ok := owner[role]; ok && prev != group {
				return fmt.Errorf("%w: %s: role %q is in both %q and %q", ErrInvalidConfig, section, role, prev, group)
			}
			owner[role] = group
		}
	}
	return nil
}
