// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env",
		"# local settings\nOPSEARCH_TEST_BASE=http://api.local:8010/api\nOPSEARCH_TEST_LEVEL=debug\n")

	t.Setenv("OPSEARCH_TEST_LEVEL", "warn")
	// Registered with t.Setenv so the variable is restored after the test.
	t.Setenv("OPSEARCH_TEST_BASE", "")
	os.Unsetenv("OPSEARCH_TEST_BASE")

	applied, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"OPSEARCH_TEST_BASE"}, applied)
	assert.Equal(t, "http://api.local:8010/api", os.Getenv("OPSEARCH_TEST_BASE"))
	assert.Equal(t, "warn", os.Getenv("OPSEARCH_TEST_LEVEL"), "existing environment wins")
}

func TestLoad_MissingFile(t *testing.T) {
	applied, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestLoad_FirstFileWins(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.env", "OPSEARCH_TEST_ORDER=first\n")
	second := writeFile(t, dir, "b.env", "OPSEARCH_TEST_ORDER=second\n")

	t.Setenv("OPSEARCH_TEST_ORDER", "")
	os.Unsetenv("OPSEARCH_TEST_ORDER")

	applied, err := Load(first, second)
	require.NoError(t, err)
	assert.Equal(t, []string{"OPSEARCH_TEST_ORDER"}, applied)
	assert.Equal(t, "first", os.Getenv("OPSEARCH_TEST_ORDER"))
}

func TestLoad_Unreadable(t *testing.T) {
	// A directory cannot be parsed as an env file.
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}
