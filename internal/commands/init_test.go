package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise-app/pennywise/internal/categorize"
	"github.com/pennywise-app/pennywise/internal/config"
)

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	out, err := runPennywise(t, "init", dir, "--partner-a", "Alice", "--partner-b", "Bob")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized PennyWise workspace")

	expectedDirs := []string{
		"import",
		filepath.Join("import", "processed"),
		"ledger",
		"exports",
		"logs",
		filepath.Join("data", "examples"),
	}
	for _, d := range expectedDirs {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	_, err = os.Stat(filepath.Join(dir, ".git"))
	assert.True(t, os.IsNotExist(err), "no git repo without --git")
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runPennywise(t, "init", dir, "--partner-a", "Alice", "--partner-b", "Bob")
	require.NoError(t, err)

	cfg, err := config.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "Alice", cfg.Household.PartnerA.Name)
	assert.Equal(t, "Bob", cfg.Household.PartnerB.Name)
	assert.False(t, cfg.Git.AutoCommit)
}

func TestInit_Categories(t *testing.T) {
	dir := t.TempDir()
	_, err := runPennywise(t, "init", dir, "--partner-a", "Alice", "--partner-b", "Bob")
	require.NoError(t, err)

	m, err := categorize.LoadMappings(filepath.Join(dir, "categories.yaml"))
	require.NoError(t, err)
	assert.Equal(t, categorize.DefaultMappings(), m)
}

func TestInit_Gitignore(t *testing.T) {
	dir := t.TempDir()
	_, err := runPennywise(t, "init", dir, "--partner-a", "Alice", "--partner-b", "Bob")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "exports/")
}

func TestInit_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := runPennywise(t, "init", dir, "--partner-a", "Alice")
	assert.Error(t, err, "partner-b is required")

	_, err = runPennywise(t, "init", dir, "--partner-a", "Alice", "--partner-b", "Alice")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = runPennywise(t, "init", dir, "--partner-a", "Alice", "--partner-b", "Bob")
	require.NoError(t, err)
	_, err = runPennywise(t, "init", dir, "--partner-a", "Alice", "--partner-b", "Bob")
	assert.ErrorContains(t, err, "already exists")
}

func TestInit_GitRepo(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	out, err := runPennywise(t, "init", dir, "--partner-a", "Alice", "--partner-b", "Bob", "--git")
	require.NoError(t, err)
	assert.Contains(t, out, "(")

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")

	log := exec.Command("git", "log", "--format=%s|%an <%ae>", "-1")
	log.Dir = dir
	got, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(got), "init: Alice and Bob household|PennyWise <pennywise@localhost>")

	cfg, err := config.LoadDir(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Git.AutoCommit)
}
