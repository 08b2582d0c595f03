package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/fumiya-kume/ghflow/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	runner := NewRunner(t.TempDir(), nil)
	ctx := context.Background()
	require.NoError(t, runner.Init(ctx))
	_, err := runner.run(ctx, "config", "user.name", "tester")
	require.NoError(t, err)
	_, err = runner.run(ctx, "config", "user.email", "tester@example.com")
	require.NoError(t, err)
	return runner
}

func TestRunnerCommitFlow(t *testing.T) {
	runner := newTestRunner(t)
	ctx := context.Background()

	dirty, err := runner.HasLocalChanges(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, os.WriteFile(filepath.Join(runner.Dir(), "README.md"), []byte("hello\n"), 0o644))

	dirty, err = runner.HasLocalChanges(ctx)
	require.NoError(t, err)
	assert.True(t, dirty)

	require.NoError(t, runner.AddAll(ctx))
	require.NoError(t, runner.Commit(ctx, "initial commit"))

	dirty, err = runner.HasLocalChanges(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestRunnerAddRemote(t *testing.T) {
	runner := newTestRunner(t)
	ctx := context.Background()

	require.NoError(t, runner.AddRemote(ctx, "origin", "https://github.com/alice/project.git"))

	out, err := runner.run(ctx, "remote", "get-url", "origin")
	require.NoError(t, err)
	assert.Contains(t, out, "https://github.com/alice/project.git")
}

func TestRunnerStash(t *testing.T) {
	runner := newTestRunner(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(runner.Dir(), "README.md"), []byte("hello\n"), 0o644))
	require.NoError(t, runner.AddAll(ctx))
	require.NoError(t, runner.Commit(ctx, "initial commit"))

	require.NoError(t, os.WriteFile(filepath.Join(runner.Dir(), "notes.txt"), []byte("wip\n"), 0o644))
	require.NoError(t, runner.StashPush(ctx, "before rebase"))

	dirty, err := runner.HasLocalChanges(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, runner.StashPop(ctx))

	dirty, err = runner.HasLocalChanges(ctx)
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestRunnerClone(t *testing.T) {
	source := newTestRunner(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(source.Dir(), "README.md"), []byte("hello\n"), 0o644))
	require.NoError(t, source.AddAll(ctx))
	require.NoError(t, source.Commit(ctx, "initial commit"))

	runner := NewRunner(t.TempDir(), nil)
	require.NoError(t, runner.Clone(ctx, source.Dir(), "copy"))
	assert.FileExists(t, filepath.Join(runner.Dir(), "copy", "README.md"))
}

func TestRunnerFailure(t *testing.T) {
	runner := newTestRunner(t)
	ctx := context.Background()

	err := runner.Rebase(ctx, "no-such-ref")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeGit))
}
