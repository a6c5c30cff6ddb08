package commands_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pennywise-app/pennywise/internal/commands"
	"github.com/pennywise-app/pennywise/internal/config"
)

const testdata = "../../testdata"

// runPennywise executes the root command in-process and returns its stdout.
func runPennywise(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err != nil {
		t.Logf("stderr: %s", stderr.String())
	}
	return stdout.String(), err
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// newWorkspace initializes a workspace for Alice and Bob with the example incomes.
func newWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runPennywise(t, "init", dir, "--partner-a", "Alice", "--partner-b", "Bob")
	require.NoError(t, err)

	updateConfig(t, dir, func(cfg *config.Config) {
		cfg.Household.PartnerA.Income = decimal.NewFromInt(3000)
		cfg.Household.PartnerB.Income = decimal.NewFromInt(2000)
	})
	return dir
}

func updateConfig(t *testing.T, dir string, mutate func(*config.Config)) {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	mutate(cfg)
	require.NoError(t, config.Save(path, cfg))
}

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))
	require.NoError(t, os.WriteFile(dst, data, 0o644))
}
