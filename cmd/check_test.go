package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRepository(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "")

	_, err := resolveRepository("")
	assert.Error(t, err)

	repo, err := resolveRepository("acme/widgets")
	require.NoError(t, err)
	assert.Equal(t, "acme/widgets", repo)

	_, err = resolveRepository("widgets")
	assert.Error(t, err)

	t.Setenv("GITHUB_REPOSITORY", "acme/env-repo")
	repo, err = resolveRepository("")
	require.NoError(t, err)
	assert.Equal(t, "acme/env-repo", repo)
}

func TestResolvePullRequestNumber(t *testing.T) {
	t.Setenv("GITHUB_EVENT_PATH", "")

	number, err := resolvePullRequestNumber(42)
	require.NoError(t, err)
	assert.Equal(t, 42, number)

	_, err = resolvePullRequestNumber(0)
	assert.Error(t, err)

	eventPath := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(eventPath, []byte(`{"pull_request":{"number":17}}`), 0o644))
	t.Setenv("GITHUB_EVENT_PATH", eventPath)

	number, err = resolvePullRequestNumber(0)
	require.NoError(t, err)
	assert.Equal(t, 17, number)
}

func TestReadEventPullRequestNumber(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "push.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ref":"refs/heads/main"}`), 0o644))
	_, err := readEventPullRequestNumber(path)
	assert.Error(t, err)

	path = filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = readEventPullRequestNumber(path)
	assert.Error(t, err)

	_, err = readEventPullRequestNumber(filepath.Join(dir, "absent.json"))
	assert.Error(t, err)
}

func TestFilterIgnored(t *testing.T) {
	files := []string{
		"src/main.go",
		"vendor/lib/lib.go",
		"api/types.gen.go",
		"docs/README.md",
	}

	assert.Equal(t, files, filterIgnored(files, nil))

	kept := filterIgnored(files, []string{"vendor/", "*.gen.go"})
	assert.Equal(t, []string{"src/main.go", "docs/README.md"}, kept)
}

func TestOwnerOf(t *testing.T) {
	assert.Equal(t, "acme", ownerOf("acme/widgets"))
	assert.Equal(t, "solo", ownerOf("solo"))
}
