package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir is equivalent to t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GITHUB_TOKEN", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.github.com", cfg.GitHub.BaseURL)
	assert.Equal(t, 30, cfg.GitHub.Timeout)
	assert.Equal(t, ".github/CODEOWNERS", cfg.Rules.CodeownersPath)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Empty(t, cfg.Rules.IgnorePatterns)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cbo.yaml")
	content := `
github:
  base_url: https://github.example.com/api/v3
  timeout: 10
rules:
  codeowners_path: CODEOWNERS
  ignore_patterns:
    - "vendor/"
    - "*.gen.go"
output:
  format: json
  annotations: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://github.example.com/api/v3", cfg.GitHub.BaseURL)
	assert.Equal(t, 10, cfg.GitHub.Timeout)
	assert.Equal(t, "CODEOWNERS", cfg.Rules.CodeownersPath)
	assert.Equal(t, []string{"vendor/", "*.gen.go"}, cfg.Rules.IgnorePatterns)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.Annotations)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadTokenFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GITHUB_TOKEN", "ghp_example")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ghp_example", cfg.GitHub.Token)
}
