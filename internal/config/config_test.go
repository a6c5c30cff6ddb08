package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Alice", "Bob")
	cfg.Household.PartnerA.Income = decimal.RequireFromString("3000")
	cfg.Household.PartnerA.Statement = "data/alice.csv"
	cfg.Household.PartnerB.Income = decimal.RequireFromString("2000.50")

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Alice", got.Household.PartnerA.Name)
	assert.True(t, got.Household.PartnerA.Income.Equal(decimal.RequireFromString("3000")))
	assert.Equal(t, "data/alice.csv", got.Household.PartnerA.Statement)
	assert.True(t, got.Household.PartnerB.Income.Equal(decimal.RequireFromString("2000.50")))
	assert.Equal(t, cfg.Household.Currency, got.Household.Currency)
	assert.Equal(t, cfg.Categories, got.Categories)
	assert.Equal(t, cfg.Export, got.Export)
	assert.Equal(t, cfg.Log, got.Log)
	assert.Equal(t, cfg.Git, got.Git)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Alice", "Bob")

	assert.Equal(t, "Alice", cfg.Household.PartnerA.Name)
	assert.Equal(t, "Bob", cfg.Household.PartnerB.Name)
	assert.True(t, cfg.Household.PartnerA.Income.IsZero())
	assert.Equal(t, "EUR", cfg.Household.Currency)
	assert.Equal(t, "categories.yaml", cfg.Categories.File)
	assert.Equal(t, "csv", cfg.Export.Format)
	assert.True(t, cfg.Git.AutoCommit)
	assert.Equal(t, "PennyWise", cfg.Git.AuthorName)
	require.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadHandWritten(t *testing.T) {
	dir := t.TempDir()
	src := `household:
  partner_a:
    name: Alice
    monthly_income: 3000
    statement: data/examples/person_a_march_2024.csv
  partner_b:
    name: Bob
    monthly_income: 2000.00
export:
  format: json
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(src), 0o644))

	cfg, err := LoadDir(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Household.PartnerA.Income.Equal(decimal.NewFromInt(3000)))
	assert.True(t, cfg.Household.PartnerB.Income.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, "json", cfg.Export.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Alice", "Bob")
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Alice")
	assert.Contains(t, contents, "file: categories.yaml")
	assert.Contains(t, contents, "format: csv")
	assert.Contains(t, contents, "auto_commit: true")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing name", func(c *Config) { c.Household.PartnerB.Name = "" }, "need a name"},
		{"same names", func(c *Config) { c.Household.PartnerB.Name = "Alice" }, "must differ"},
		{"negative income", func(c *Config) { c.Household.PartnerA.Income = decimal.NewFromInt(-1) }, "negative"},
		{"bad format", func(c *Config) { c.Export.Format = "xml" }, "export format"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("Alice", "Bob")
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestHouseholdLookup(t *testing.T) {
	h := Default("Alice", "Bob").Household
	assert.True(t, h.Known("Alice"))
	assert.True(t, h.Known("Bob"))
	assert.False(t, h.Known("Carol"))
	assert.False(t, h.Known(""))

	p, ok := h.Partner("Bob")
	require.True(t, ok)
	assert.Equal(t, "Bob", p.Name)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, filepath.Join("root", "a.csv"), Resolve("root", "a.csv"))
	assert.Equal(t, "/abs/a.csv", Resolve("root", "/abs/a.csv"))
	assert.Equal(t, "", Resolve("root", ""))
}
