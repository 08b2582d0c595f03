package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/fumiya-kume/ghflow/pkg/errors"
	"github.com/fumiya-kume/ghflow/pkg/logger"
)

// Runner executes mutating git commands in a working directory. Read-side
// inspection goes through Repository; everything that touches the index,
// refs or the network shells out so that the user's git configuration
// (credential helpers, hooks, ssh setup) applies.
type Runner struct {
	dir string
	log logger.Interface
}

// NewRunner creates a runner bound to a working directory
func NewRunner(dir string, log logger.Interface) *Runner {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Runner{dir: dir, log: log}
}

// Dir returns the working directory commands run in
func (r *Runner) Dir() string {
	return r.dir
}

func (r *Runner) run(ctx context.Context, args ...string) (string, error) {
	r.log.Debug("git %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), errors.NewError(errors.ErrorTypeGit).
			WithMessagef("git %s failed: %s", args[0], strings.TrimSpace(stderr.String())).
			WithCause(err).
			WithContext("args", strings.Join(args, " ")).
			Build()
	}
	return stdout.String(), nil
}

// Init creates an empty repository in the working directory
func (r *Runner) Init(ctx context.Context) error {
	_, err := r.run(ctx, "init")
	return err
}

// Clone clones a repository into target, relative to the working directory
func (r *Runner) Clone(ctx context.Context, url, target string) error {
	_, err := r.run(ctx, "clone", url, target)
	return err
}

// AddRemote registers a new remote
func (r *Runner) AddRemote(ctx context.Context, name, url string) error {
	_, err := r.run(ctx, "remote", "add", name, url)
	return err
}

// AddAll stages every change in the working tree
func (r *Runner) AddAll(ctx context.Context) error {
	_, err := r.run(ctx, "add", "--all")
	return err
}

// Commit records the staged changes
func (r *Runner) Commit(ctx context.Context, message string) error {
	_, err := r.run(ctx, "commit", "-m", message)
	return err
}

// Push pushes a branch to a remote, setting the upstream
func (r *Runner) Push(ctx context.Context, remote, branch string) error {
	_, err := r.run(ctx, "push", "--set-upstream", remote, branch)
	return err
}

// Fetch updates the remote-tracking branches of a remote
func (r *Runner) Fetch(ctx context.Context, remote string) error {
	_, err := r.run(ctx, "fetch", remote)
	return err
}

// Rebase rebases the current branch onto the given upstream ref
func (r *Runner) Rebase(ctx context.Context, onto string) error {
	_, err := r.run(ctx, "rebase", onto)
	return err
}

// HasLocalChanges reports whether the working tree or index is dirty
func (r *Runner) HasLocalChanges(ctx context.Context) (bool, error) {
	out, err := r.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// StashPush saves local changes away before a history-rewriting operation
func (r *Runner) StashPush(ctx context.Context, message string) error {
	_, err := r.run(ctx, "stash", "push", "--include-untracked", "-m", message)
	return err
}

// StashPop restores the most recently stashed changes
func (r *Runner) StashPop(ctx context.Context) error {
	_, err := r.run(ctx, "stash", "pop")
	return err
}
