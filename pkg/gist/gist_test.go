package gist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghub "github.com/fumiya-kume/ghflow/pkg/github"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCollectContentsFromStdin(t *testing.T) {
	contents, err := CollectContents(nil, strings.NewReader("hello\n"), "")
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, "gistfile.txt", contents[0].Name)
	assert.Equal(t, "hello\n", contents[0].Content)
}

func TestCollectContentsEmptyStdin(t *testing.T) {
	contents, err := CollectContents(nil, strings.NewReader(""), "")
	require.NoError(t, err)
	assert.Empty(t, contents)
}

func TestCollectContentsSingleFileRename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "content")

	contents, err := CollectContents([]string{filepath.Join(dir, "notes.txt")}, nil, "renamed.md")
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, "renamed.md", contents[0].Name)
}

func TestCollectContentsRenameIgnoredForMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "a")
	writeFile(t, dir, "b.txt", "b")

	contents, err := CollectContents([]string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
	}, nil, "renamed.md")
	require.NoError(t, err)
	require.Len(t, contents, 2)
	assert.Equal(t, "a.txt", contents[0].Name)
	assert.Equal(t, "b.txt", contents[1].Name)
}

func TestCollectContentsWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.txt", "top")
	writeFile(t, dir, filepath.Join("sub", "nested.txt"), "nested")
	writeFile(t, dir, filepath.Join(".git", "config"), "ignored")

	contents, err := CollectContents([]string{dir}, nil, "")
	require.NoError(t, err)

	names := make([]string, 0, len(contents))
	for _, content := range contents {
		names = append(names, content.Name)
	}
	assert.ElementsMatch(t, []string{"top.txt", "nested.txt"}, names)
}

func TestCollectContentsMissingPath(t *testing.T) {
	_, err := CollectContents([]string{filepath.Join(t.TempDir(), "absent.txt")}, nil, "")
	assert.Error(t, err)
}

func TestDedupeNames(t *testing.T) {
	contents := dedupeNames([]ghub.FileContent{
		{Name: "main.go"},
		{Name: "main.go"},
		{Name: "main.go"},
		{Name: "other.go"},
	})

	assert.Equal(t, "main.go", contents[0].Name)
	assert.Equal(t, "main_2.go", contents[1].Name)
	assert.Equal(t, "main_3.go", contents[2].Name)
	assert.Equal(t, "other.go", contents[3].Name)
}
