package browse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghub "github.com/fumiya-kume/ghflow/pkg/github"
)

func TestFileURL(t *testing.T) {
	path := ghub.FullPath{Owner: "alice", Name: "project"}

	tests := []struct {
		name      string
		relative  string
		startLine int
		endLine   int
		want      string
	}{
		{
			name: "repository root",
			want: "https://github.com/alice/project/tree/main",
		},
		{
			name:     "file without lines",
			relative: "pkg/auth/resolver.go",
			want:     "https://github.com/alice/project/tree/main/pkg/auth/resolver.go",
		},
		{
			name:      "single line",
			relative:  "main.go",
			startLine: 42,
			want:      "https://github.com/alice/project/tree/main/main.go#L42",
		},
		{
			name:      "line range",
			relative:  "main.go",
			startLine: 10,
			endLine:   20,
			want:      "https://github.com/alice/project/tree/main/main.go#L10-L20",
		},
		{
			name:      "collapsed range",
			relative:  "main.go",
			startLine: 10,
			endLine:   10,
			want:      "https://github.com/alice/project/tree/main/main.go#L10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FileURL("github.com", path, "main", tt.relative, tt.startLine, tt.endLine)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommitURL(t *testing.T) {
	path := ghub.FullPath{Owner: "alice", Name: "project"}
	got := CommitURL("github.com", path, "0123abcd")
	assert.Equal(t, "https://github.com/alice/project/commit/0123abcd", got)
}

func TestRelativeToRoot(t *testing.T) {
	root := t.TempDir()
	root, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "main.go"), []byte("package main\n"), 0o644))

	t.Run("file inside the tree", func(t *testing.T) {
		relative, err := relativeToRoot(root, filepath.Join(root, "pkg", "main.go"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("pkg", "main.go"), relative)
	})

	t.Run("root itself", func(t *testing.T) {
		relative, err := relativeToRoot(root, root)
		require.NoError(t, err)
		assert.Empty(t, relative)
	})

	t.Run("file outside the tree", func(t *testing.T) {
		outside := filepath.Join(t.TempDir(), "other.go")
		require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

		_, err := relativeToRoot(root, outside)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := relativeToRoot(root, filepath.Join(root, "absent.go"))
		assert.Error(t, err)
	})
}
