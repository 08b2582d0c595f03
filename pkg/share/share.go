// Package share publishes a local project as a new GitHub repository.
package share

import (
	"context"
	"path/filepath"
	"strings"

	gh "github.com/google/go-github/v60/github"

	"github.com/fumiya-kume/ghflow/pkg/auth"
	"github.com/fumiya-kume/ghflow/pkg/errors"
	"github.com/fumiya-kume/ghflow/pkg/git"
	ghub "github.com/fumiya-kume/ghflow/pkg/github"
	"github.com/fumiya-kume/ghflow/pkg/logger"
	"github.com/fumiya-kume/ghflow/pkg/notify"
)

const defaultCommitMessage = "Initial commit"

// ProjectService is the slice of the API this workflow needs
type ProjectService interface {
	CurrentUser(ctx context.Context, cred auth.Credential) (*gh.User, error)
	ListOwnRepos(ctx context.Context, cred auth.Credential) ([]*gh.Repository, error)
	CreateRepository(ctx context.Context, cred auth.Credential, name, description string, private bool) (*gh.Repository, error)
}

var _ ProjectService = (*ghub.Service)(nil)

// Manager drives the share workflow
type Manager struct {
	resolver *auth.Resolver
	service  ProjectService
	notifier *notify.Notifier
	log      logger.Interface
}

// NewManager creates a share manager
func NewManager(resolver *auth.Resolver, service ProjectService, notifier *notify.Notifier, log logger.Interface) *Manager {
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

// Options are the user-supplied inputs of the workflow
type Options struct {
	// Dir is the project directory to share
	Dir string
	// Name of the new repository; the directory name when empty
	Name string
	// Description of the new repository
	Description string
	// Private creates a private repository
	Private bool
	// CommitMessage for the first commit of a fresh repository
	CommitMessage string
}

type accountData struct {
	user  *gh.User
	names map[string]bool
}

// Share creates a GitHub repository for the project and pushes it.
// A project that already has a GitHub remote is left alone.
func (m *Manager) Share(ctx context.Context, initial auth.Credential, opts Options) (*gh.Repository, error) {
	repo, openErr := git.Open(opts.Dir)
	hasRepo := openErr == nil

	if hasRepo {
		remotes, err := repo.Remotes()
		if err != nil {
			return nil, err
		}
		if url, ok := git.FindGitHubRemoteURL(remotes, initial.Host); ok {
			m.notifier.Info("Project is already on GitHub", url)
			return nil, nil
		}
	}

	name := opts.Name
	if name == "" {
		abs, err := filepath.Abs(opts.Dir)
		if err != nil {
			return nil, errors.ValidationError("can't resolve project directory")
		}
		name = filepath.Base(abs)
	}

	account, cred, err := auth.Run(ctx, m.resolver, initial, func(ctx context.Context, cred auth.Credential) (accountData, error) {
		return m.loadAccount(ctx, cred)
	})
	if err != nil {
		return nil, err
	}

	if account.names[strings.ToLower(name)] {
		return nil, errors.NewError(errors.ErrorTypeValidation).
			WithMessagef("repository %s already exists", name).
			Build()
	}
	if opts.Private && !canCreatePrivate(account.user) {
		return nil, errors.ValidationError("your account plan doesn't allow private repositories")
	}

	m.log.Info("creating GitHub repository %s", name)
	created, cred, err := auth.Run(ctx, m.resolver, cred, func(ctx context.Context, cred auth.Credential) (*gh.Repository, error) {
		return m.service.CreateRepository(ctx, cred, name, opts.Description, opts.Private)
	})
	if err != nil {
		return nil, err
	}

	path := ghub.FullPath{Owner: account.user.GetLogin(), Name: name}

	runner := git.NewRunner(opts.Dir, m.log)
	if !hasRepo {
		if err := runner.Init(ctx); err != nil {
			return nil, err
		}
		repo, err = git.Open(opts.Dir)
		if err != nil {
			return nil, err
		}
	}

	remoteName, err := m.addRemote(ctx, repo, runner, cred.Host, path)
	if err != nil {
		return nil, err
	}

	if repo.IsFresh() {
		if err := m.firstCommit(ctx, runner, opts.CommitMessage); err != nil {
			return nil, err
		}
	}

	branch, err := repo.CurrentBranch()
	if err != nil {
		return nil, err
	}
	m.log.Info("pushing %s to %s", branch, remoteName)
	if err := runner.Push(ctx, remoteName, branch); err != nil {
		return nil, err
	}

	m.notifier.InfoURL("Successfully shared project on GitHub", ghub.RepoWebURL(cred.Host, path))
	return created, nil
}

func (m *Manager) loadAccount(ctx context.Context, cred auth.Credential) (accountData, error) {
	user, err := m.service.CurrentUser(ctx, cred)
	if err != nil {
		return accountData{}, err
	}

	repos, err := m.service.ListOwnRepos(ctx, cred)
	if err != nil {
		return accountData{}, err
	}

	names := make(map[string]bool, len(repos))
	for _, repo := range repos {
		names[strings.ToLower(repo.GetName())] = true
	}
	return accountData{user: user, names: names}, nil
}

// addRemote registers the new repository as a remote. The name is "origin"
// unless the repository already has remotes, then "github".
func (m *Manager) addRemote(ctx context.Context, repo *git.Repository, runner *git.Runner, host string, path ghub.FullPath) (string, error) {
	remotes, err := repo.Remotes()
	if err != nil {
		return "", err
	}

	remoteName := "origin"
	if len(remotes) > 0 {
		remoteName = "github"
	}
	if err := runner.AddRemote(ctx, remoteName, ghub.CloneURL(host, path)); err != nil {
		return "", err
	}
	return remoteName, nil
}

func (m *Manager) firstCommit(ctx context.Context, runner *git.Runner, message string) error {
	if err := runner.AddAll(ctx); err != nil {
		return err
	}

	dirty, err := runner.HasLocalChanges(ctx)
	if err != nil {
		return err
	}
	if !dirty {
		return errors.ValidationError("project has no files to commit")
	}

	if message == "" {
		message = defaultCommitMessage
	}
	return runner.Commit(ctx, message)
}

func canCreatePrivate(user *gh.User) bool {
	plan := user.GetPlan()
	if plan == nil {
		return false
	}
	return plan.GetPrivateRepos() > 0
}
