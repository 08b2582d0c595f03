package pr

import (
	"context"
	"strings"

	"github.com/fumiya-kume/ghflow/pkg/errors"
	"github.com/fumiya-kume/ghflow/pkg/github"
)

// RepoContext is the fork metadata of the repository a pull request is
// created from. Zero paths mean the relationship doesn't exist.
type RepoContext struct {
	// Self is the repository the local checkout pushes to
	Self github.FullPath
	// Parent is the repository Self was forked from
	Parent github.FullPath
	// Source is the root of the fork network
	Source github.FullPath
	// Upstream is the repository behind the local "upstream" remote
	Upstream github.FullPath
}

// IsFork reports whether Self has a parent
func (r RepoContext) IsFork() bool {
	return !r.Parent.IsZero()
}

// TargetLookup is the network fallback used when the target owner can't be
// matched against anything already known locally.
type TargetLookup interface {
	// FindRepository returns the source path of the owner's repository
	// with the given name, and whether the repository exists.
	FindRepository(ctx context.Context, path github.FullPath) (source github.FullPath, found bool, err error)
	// FindFork returns the path of the user's fork of source, if any
	FindFork(ctx context.Context, source github.FullPath, user string) (github.FullPath, bool, error)
}

// ParseTarget splits an "owner:branch" reference. A bare branch name gets an
// empty owner.
func ParseTarget(target string) (owner, branch string) {
	owner, branch, ok := strings.Cut(target, ":")
	if !ok {
		return "", target
	}
	return owner, branch
}

// ResolveTargetRepository determines which repository an "owner:branch" pull
// request target lives in. Checks run cheapest first: the already enumerated
// branch list and fork metadata before any network lookup.
func ResolveTargetRepository(ctx context.Context, lookup TargetLookup, repoCtx RepoContext, branches []github.RemoteBranch, owner, branch string) (github.FullPath, error) {
	for _, candidate := range branches {
		if strings.EqualFold(candidate.User, owner) && candidate.Repo != "" {
			return github.FullPath{Owner: candidate.User, Name: candidate.Repo}, nil
		}
	}

	if repoCtx.Self.SameOwner(owner) {
		return repoCtx.Self, nil
	}
	if !repoCtx.Parent.IsZero() && repoCtx.Parent.SameOwner(owner) {
		return repoCtx.Parent, nil
	}
	if !repoCtx.Source.IsZero() && repoCtx.Source.SameOwner(owner) {
		return repoCtx.Source, nil
	}
	if !repoCtx.Upstream.IsZero() && repoCtx.Upstream.SameOwner(owner) {
		return repoCtx.Upstream, nil
	}

	source := repoCtx.Source
	if source.IsZero() {
		source = repoCtx.Self
	}

	// The owner's repository under our local name counts when it belongs
	// to the same fork network, which its source owner tells us.
	candidate := github.FullPath{Owner: owner, Name: repoCtx.Self.Name}
	candidateSource, found, err := lookup.FindRepository(ctx, candidate)
	if err != nil {
		return github.FullPath{}, err
	}
	if found && candidateSource.SameOwner(source.Owner) {
		return candidate, nil
	}

	fork, found, err := lookup.FindFork(ctx, source, owner)
	if err != nil {
		return github.FullPath{}, err
	}
	if found {
		return fork, nil
	}

	return github.FullPath{}, errors.NewError(errors.ErrorTypeValidation).
		WithMessagef("can't find repository for branch %s:%s", owner, branch).
		WithContext("owner", owner).
		WithContext("branch", branch).
		Build()
}
