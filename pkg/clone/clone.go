// Package clone checks out one of the user's GitHub repositories.
package clone

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

// RepositoryLister is the slice of the API this workflow needs
type RepositoryLister interface {
	ListOwnRepos(ctx context.Context, cred auth.Credential) ([]*gh.Repository, error)
}

var _ RepositoryLister = (*ghub.Service)(nil)

// Manager drives the clone workflow
type Manager struct {
	resolver *auth.Resolver
	service  RepositoryLister
	notifier *notify.Notifier
	log      logger.Interface
}

// NewManager creates a clone manager
func NewManager(resolver *auth.Resolver, service RepositoryLister, notifier *notify.Notifier, log logger.Interface) *Manager {
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

// Clone checks out a repository by name. A bare name is looked up among the
// user's own repositories; "owner/name" is cloned directly. An empty target
// becomes the repository name.
func (m *Manager) Clone(ctx context.Context, initial auth.Credential, name, target string) (string, error) {
	if name == "" {
		return "", errors.ValidationError("repository name cannot be empty")
	}

	host := initial.Host
	path, hasOwner := parseRepoName(name)
	if !hasOwner {
		repos, resolved, err := auth.Run(ctx, m.resolver, initial, func(ctx context.Context, cred auth.Credential) ([]*gh.Repository, error) {
			return m.service.ListOwnRepos(ctx, cred)
		})
		if err != nil {
			return "", err
		}
		host = resolved.Host

		found, ok := findByName(repos, path.Name)
		if !ok {
			return "", errors.NewError(errors.ErrorTypeValidation).
				WithMessagef("you have no repository named %s", path.Name).
				Build()
		}
		path = found
	}

	if target == "" {
		target = path.Name
	}

	url := ghub.CloneURL(host, path)
	m.log.Info("cloning %s into %s", url, target)

	runner := git.NewRunner(".", m.log)
	if err := runner.Clone(ctx, url, target); err != nil {
		return "", err
	}

	m.notifier.Info("Successfully cloned "+path.String(), target)
	return target, nil
}

// parseRepoName splits an optional "owner/" prefix off a repository name
func parseRepoName(name string) (ghub.FullPath, bool) {
	owner, repo, ok := strings.Cut(name, "/")
	if !ok {
		return ghub.FullPath{Name: name}, false
	}
	return ghub.FullPath{Owner: owner, Name: repo}, true
}

// findByName picks the user's repository with the given name
func findByName(repos []*gh.Repository, name string) (ghub.FullPath, bool) {
	for _, repo := range repos {
		if strings.EqualFold(repo.GetName(), name) {
			return ghub.FullPath{
				Owner: repo.GetOwner().GetLogin(),
				Name:  repo.GetName(),
			}, true
		}
	}
	return ghub.FullPath{}, false
}
