// Package git provides local repository access for the workflows: read-side
// introspection through go-git and mutating operations through the git
// executable.
package git

import (
	"strings"

	"github.com/fumiya-kume/ghflow/pkg/errors"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Remote is a named git remote with its fetch URLs
type Remote struct {
	Name string
	URLs []string
}

// FirstURL returns the first URL of the remote, or an empty string
func (r Remote) FirstURL() string {
	if len(r.URLs) == 0 {
		return ""
	}
	return r.URLs[0]
}

// RemoteRef is a remote-tracking branch of the local repository
type RemoteRef struct {
	Remote string
	Branch string
}

// LocalRef returns the full remote-tracking name, e.g. "origin/main"
func (r RemoteRef) LocalRef() string {
	return r.Remote + "/" + r.Branch
}

// Repository wraps a local git repository for read-side inspection
type Repository struct {
	root string
	repo *gogit.Repository
}

// Open locates the repository containing path, walking up to the .git
// directory the way git itself does.
func Open(path string) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, errors.NewError(errors.ErrorTypeGit).
			WithMessage("can't find git repository").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, errors.GitError("open worktree", err)
	}

	return &Repository{
		root: worktree.Filesystem.Root(),
		repo: repo,
	}, nil
}

// Root returns the repository's working tree root
func (r *Repository) Root() string {
	return r.root
}

// Remotes returns all configured remotes
func (r *Repository) Remotes() ([]Remote, error) {
	remotes, err := r.repo.Remotes()
	if err != nil {
		return nil, errors.GitError("list remotes", err)
	}

	result := make([]Remote, 0, len(remotes))
	for _, remote := range remotes {
		cfg := remote.Config()
		result = append(result, Remote{Name: cfg.Name, URLs: cfg.URLs})
	}
	return result, nil
}

// CurrentBranch returns the short name of the checked-out branch.
// Detached HEAD and unborn repositories are errors.
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", errors.NewError(errors.ErrorTypeGit).
			WithMessage("no current branch").
			WithCause(err).
			Build()
	}
	if !head.Name().IsBranch() {
		return "", errors.NewError(errors.ErrorTypeGit).
			WithMessage("repository is on detached HEAD").
			Build()
	}
	return head.Name().Short(), nil
}

// IsFresh reports whether the repository has no commits yet
func (r *Repository) IsFresh() bool {
	_, err := r.repo.Head()
	return err == plumbing.ErrReferenceNotFound
}

// RemoteBranches returns all remote-tracking branches
func (r *Repository) RemoteBranches() ([]RemoteRef, error) {
	refs, err := r.repo.References()
	if err != nil {
		return nil, errors.GitError("list references", err)
	}

	var result []RemoteRef
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if !ref.Name().IsRemote() {
			return nil
		}
		short := ref.Name().Short() // "origin/feature"
		remote, branch, ok := strings.Cut(short, "/")
		if !ok || branch == "HEAD" {
			return nil
		}
		result = append(result, RemoteRef{Remote: remote, Branch: branch})
		return nil
	})
	if err != nil {
		return nil, errors.GitError("walk references", err)
	}
	return result, nil
}

// TrackedBranch returns the remote and remote-branch the local branch tracks
func (r *Repository) TrackedBranch(branch string) (RemoteRef, error) {
	cfg, err := r.repo.Config()
	if err != nil {
		return RemoteRef{}, errors.GitError("read config", err)
	}

	branchCfg, ok := cfg.Branches[branch]
	if !ok || branchCfg.Remote == "" || branchCfg.Merge == "" {
		return RemoteRef{}, errors.NewError(errors.ErrorTypeGit).
			WithMessagef("branch %s doesn't have a tracked branch", branch).
			WithContext("branch", branch).
			Build()
	}

	return RemoteRef{
		Remote: branchCfg.Remote,
		Branch: branchCfg.Merge.Short(),
	}, nil
}
