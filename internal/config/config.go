package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FileName is the workspace configuration file.
const FileName = "pennywise.yaml"

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config represents the top-level pennywise.yaml configuration.
type Config struct {
	Household  HouseholdConfig  `yaml:"household"`
	Categories CategoriesConfig `yaml:"categories"`
	Export     ExportConfig     `yaml:"export"`
	Log        LogConfig        `yaml:"log"`
	Git        GitConfig        `yaml:"git"`
}

// Partner is one member of the household.
type Partner struct {
	Name      string          `yaml:"name"`
	Income    decimal.Decimal `yaml:"monthly_income"`
	Statement string          `yaml:"statement,omitempty"` // path to this month's bank report
}

// HouseholdConfig names the two partners sharing costs.
type HouseholdConfig struct {
	PartnerA Partner `yaml:"partner_a"`
	PartnerB Partner `yaml:"partner_b"`
	Currency string  `yaml:"currency"`
}

// Known reports whether name is one of the partners.
func (h HouseholdConfig) Known(name string) bool {
	_, ok := h.Partner(name)
	return ok
}

// Partner looks up a partner by name.
func (h HouseholdConfig) Partner(name string) (Partner, bool) {
	switch name {
	case "":
		return Partner{}, false
	case h.PartnerA.Name:
		return h.PartnerA, true
	case h.PartnerB.Name:
		return h.PartnerB, true
	}
	return Partner{}, false
}

// CategoriesConfig points at the keyword mapping file.
type CategoriesConfig struct {
	File string `yaml:"file"` // .yaml, .json or .csv; empty uses built-in defaults
}

// ExportConfig controls categorized exports.
type ExportConfig struct {
	Format string `yaml:"format"` // "csv" or "json"
	Dir    string `yaml:"dir"`
}

// LogConfig sets the default log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a pennywise.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// LoadDir reads <root>/pennywise.yaml and validates it.
func LoadDir(root string) (*Config, error) {
	cfg, err := Load(filepath.Join(root, FileName))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new household.
func Default(partnerA, partnerB string) *Config {
	return &Config{
		Household: HouseholdConfig{
			PartnerA: Partner{Name: partnerA, Income: decimal.Zero},
			PartnerB: Partner{Name: partnerB, Income: decimal.Zero},
			Currency: "EUR",
		},
		Categories: CategoriesConfig{
			File: "categories.yaml",
		},
		Export: ExportConfig{
			Format: "csv",
			Dir:    "exports",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "PennyWise",
			AuthorEmail: "pennywise@localhost",
		},
	}
}

// Validate checks the config for values the commands cannot work with.
func (c *Config) Validate() error {
	a, b := c.Household.PartnerA, c.Household.PartnerB
	switch {
	case a.Name == "" || b.Name == "":
		return fmt.Errorf("%w: both household partners need a name", ErrInvalid)
	case a.Name == b.Name:
		return fmt.Errorf("%w: partner names must differ, both are %q", ErrInvalid, a.Name)
	case a.Income.IsNegative() || b.Income.IsNegative():
		return fmt.Errorf("%w: monthly income cannot be negative", ErrInvalid)
	}

	switch c.Export.Format {
	case "", "csv", "json":
	default:
		return fmt.Errorf("%w: export format %q (want csv or json)", ErrInvalid, c.Export.Format)
	}

	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%w: log level: %v", ErrInvalid, err)
		}
	}
	return nil
}

// Resolve makes p absolute against root unless it already is.
func Resolve(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
