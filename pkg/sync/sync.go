// Package sync rebases a fork onto its parent repository.
package sync

import (
	"context"
	"strings"

	gh "github.com/google/go-github/v60/github"

	"github.com/fumiya-kume/ghflow/pkg/auth"
	"github.com/fumiya-kume/ghflow/pkg/errors"
	"github.com/fumiya-kume/ghflow/pkg/git"
	ghub "github.com/fumiya-kume/ghflow/pkg/github"
	"github.com/fumiya-kume/ghflow/pkg/logger"
	"github.com/fumiya-kume/ghflow/pkg/notify"
)

// RepositoryService is the slice of the API this workflow needs
type RepositoryService interface {
	GetRepository(ctx context.Context, cred auth.Credential, path ghub.FullPath) (*gh.Repository, error)
}

var _ RepositoryService = (*ghub.Service)(nil)

// Manager drives the fork rebase workflow
type Manager struct {
	resolver *auth.Resolver
	service  RepositoryService
	notifier *notify.Notifier
	log      logger.Interface
}

// NewManager creates a sync manager
func NewManager(resolver *auth.Resolver, service RepositoryService, notifier *notify.Notifier, log logger.Interface) *Manager {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Manager{
		resolver: resolver,
		service:  service,
		notifier: notifier,
		log:      log,
	}
}

// Rebase fetches the fork's parent and rebases the current branch onto the
// parent's default branch. Local changes are stashed around the rebase.
func (m *Manager) Rebase(ctx context.Context, initial auth.Credential, dir string) error {
	repo, err := git.Open(dir)
	if err != nil {
		return err
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return err
	}

	githubURL, ok := git.FindGitHubRemoteURL(remotes, initial.Host)
	if !ok {
		return errors.ValidationError("repository has no GitHub remote")
	}
	self, ok := ghub.OwnerAndRepoFromRemoteURL(githubURL)
	if !ok {
		return errors.NewError(errors.ErrorTypeValidation).
			WithMessagef("can't parse remote URL %s", githubURL).
			Build()
	}

	info, _, err := auth.Run(ctx, m.resolver, initial, func(ctx context.Context, cred auth.Credential) (*gh.Repository, error) {
		return m.service.GetRepository(ctx, cred, self)
	})
	if err != nil {
		return err
	}

	parent := info.GetParent()
	if parent == nil {
		m.notifier.Info("Repository is not a fork", ghub.RepoWebURL(initial.Host, self))
		return nil
	}

	parentOwner := parent.GetOwner().GetLogin()
	if strings.EqualFold(parentOwner, self.Owner) {
		return errors.ValidationError("can't rebase a repository onto itself")
	}

	runner := git.NewRunner(repo.Root(), m.log)

	if _, hasUpstream := git.FindUpstreamRemote(remotes, initial.Host); !hasUpstream {
		parentPath := ghub.FullPath{Owner: parentOwner, Name: parent.GetName()}
		upstreamURL := ghub.CloneURL(initial.Host, parentPath)
		m.log.Info("configuring upstream remote %s", upstreamURL)
		if err := runner.AddRemote(ctx, "upstream", upstreamURL); err != nil {
			return err
		}
	}

	if err := runner.Fetch(ctx, "upstream"); err != nil {
		return err
	}

	baseBranch := baseBranchFor(parent)
	if err := m.rebaseWithStash(ctx, runner, "upstream/"+baseBranch); err != nil {
		m.notifier.Error("Rebase failed", err.Error())
		return err
	}

	m.notifier.Info("Successfully rebased", "rebased onto upstream/"+baseBranch)
	return nil
}

// baseBranchFor picks the parent's default branch, master when the API
// reports none.
func baseBranchFor(parent *gh.Repository) string {
	if branch := parent.GetDefaultBranch(); branch != "" {
		return branch
	}
	return "master"
}

// rebaseWithStash stashes local changes, rebases and restores the stash.
// The stash is restored even when the rebase fails.
func (m *Manager) rebaseWithStash(ctx context.Context, runner *git.Runner, onto string) error {
	dirty, err := runner.HasLocalChanges(ctx)
	if err != nil {
		return err
	}
	if dirty {
		if err := runner.StashPush(ctx, "before rebase onto upstream"); err != nil {
			return err
		}
	}

	rebaseErr := runner.Rebase(ctx, onto)

	if dirty {
		if err := runner.StashPop(ctx); err != nil {
			m.log.Warn("can't restore stashed changes: %v", err)
		}
	}
	return rebaseErr
}
