// Package pr implements pull request creation: pushing the current branch
// and opening a pull request against the resolved target repository.
package pr

import (
	"context"
	stderrors "errors"
	"net/http"

	gh "github.com/google/go-github/v60/github"

	"github.com/fumiya-kume/ghflow/pkg/auth"
	"github.com/fumiya-kume/ghflow/pkg/config"
	"github.com/fumiya-kume/ghflow/pkg/errors"
	"github.com/fumiya-kume/ghflow/pkg/git"
	ghub "github.com/fumiya-kume/ghflow/pkg/github"
	"github.com/fumiya-kume/ghflow/pkg/logger"
	"github.com/fumiya-kume/ghflow/pkg/notify"
)

// PullRequestService is the slice of the API this workflow needs
type PullRequestService interface {
	GetRepository(ctx context.Context, cred auth.Credential, path ghub.FullPath) (*gh.Repository, error)
	ListBranches(ctx context.Context, cred auth.Credential, path ghub.FullPath) ([]ghub.RemoteBranch, error)
	CreatePullRequest(ctx context.Context, cred auth.Credential, target ghub.FullPath, title, body, head, base string) (*gh.PullRequest, error)
	FindForkByUser(ctx context.Context, cred auth.Credential, path ghub.FullPath, user string) (*gh.Repository, error)
}

var _ PullRequestService = (*ghub.Service)(nil)

// Manager drives the pull request workflow
type Manager struct {
	resolver *auth.Resolver
	service  PullRequestService
	notifier *notify.Notifier
	settings *config.Settings
	log      logger.Interface
}

// NewManager creates a pull request manager
func NewManager(resolver *auth.Resolver, service PullRequestService, notifier *notify.Notifier, settings *config.Settings, log logger.Interface) *Manager {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Manager{
		resolver: resolver,
		service:  service,
		notifier: notifier,
		settings: settings,
		log:      log,
	}
}

// CreateOptions are the user-supplied inputs of the workflow
type CreateOptions struct {
	// Dir is any directory inside the local repository
	Dir string
	// Title of the pull request; the branch name when empty
	Title string
	// Body of the pull request
	Body string
	// Target is the "owner:branch" to merge into; empty picks the
	// parent's default branch for forks, the configured default
	// otherwise.
	Target string
}

type repoData struct {
	info     *gh.Repository
	branches []ghub.RemoteBranch
}

// Create pushes the current branch and opens a pull request
func (m *Manager) Create(ctx context.Context, initial auth.Credential, opts CreateOptions) (*gh.PullRequest, error) {
	repo, err := git.Open(opts.Dir)
	if err != nil {
		return nil, err
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return nil, err
	}

	remote, remoteURL, ok := git.FindGitHubRemote(remotes, initial.Host)
	if !ok {
		return nil, errors.ValidationError("repository has no GitHub remote")
	}
	self, ok := ghub.OwnerAndRepoFromRemoteURL(remoteURL)
	if !ok {
		return nil, errors.NewError(errors.ErrorTypeValidation).
			WithMessagef("can't parse remote URL %s", remoteURL).
			Build()
	}

	branch, err := repo.CurrentBranch()
	if err != nil {
		return nil, err
	}

	repoCtx := RepoContext{Self: self}
	if upstreamURL, ok := git.FindUpstreamRemote(remotes, initial.Host); ok {
		if path, ok := ghub.OwnerAndRepoFromRemoteURL(upstreamURL); ok {
			repoCtx.Upstream = path
		}
	}

	data, cred, err := auth.Run(ctx, m.resolver, initial, func(ctx context.Context, cred auth.Credential) (repoData, error) {
		return m.loadRepoData(ctx, cred, self, repoCtx.Upstream)
	})
	if err != nil {
		return nil, err
	}

	repoCtx.Parent = repoPath(data.info.GetParent())
	repoCtx.Source = repoPath(data.info.GetSource())

	branches := append(data.branches, localRemoteBranches(repo, remotes)...)

	m.log.Info("pushing %s to %s", branch, remote.Name)
	runner := git.NewRunner(repo.Root(), m.log)
	if err := runner.Push(ctx, remote.Name, branch); err != nil {
		return nil, err
	}

	targetOwner, targetBranch := m.defaultTarget(repoCtx, data.info)
	if opts.Target != "" {
		targetOwner, targetBranch = ParseTarget(opts.Target)
		if targetOwner == "" {
			targetOwner = self.Owner
		}
	}

	lookup := &serviceLookup{service: m.service, cred: cred}
	targetRepo, err := ResolveTargetRepository(ctx, lookup, repoCtx, branches, targetOwner, targetBranch)
	if err != nil {
		return nil, err
	}

	if targetRepo == self && targetBranch == branch {
		return nil, errors.ValidationError("can't create pull request from a branch into itself")
	}

	title := opts.Title
	if title == "" {
		title = branch
	}
	head := self.Owner + ":" + branch

	pull, _, err := auth.Run(ctx, m.resolver, cred, func(ctx context.Context, cred auth.Credential) (*gh.PullRequest, error) {
		return m.service.CreatePullRequest(ctx, cred, targetRepo, title, opts.Body, head, targetBranch)
	})
	if err != nil {
		return nil, err
	}

	m.notifier.InfoURL("Pull request created", pull.GetHTMLURL())
	return pull, nil
}

// loadRepoData fetches the repository's fork metadata and the branches of
// every repository a target could reasonably point at.
func (m *Manager) loadRepoData(ctx context.Context, cred auth.Credential, self, upstream ghub.FullPath) (repoData, error) {
	info, err := m.service.GetRepository(ctx, cred, self)
	if err != nil {
		return repoData{}, err
	}

	parent := repoPath(info.GetParent())
	source := repoPath(info.GetSource())

	var paths []ghub.FullPath
	if !parent.IsZero() {
		paths = append(paths, parent)
	}
	paths = append(paths, self)
	if !source.IsZero() && source != parent {
		paths = append(paths, source)
	}
	if !upstream.IsZero() && upstream != parent && upstream != source && upstream != self {
		paths = append(paths, upstream)
	}

	var branches []ghub.RemoteBranch
	for _, path := range paths {
		listed, err := m.service.ListBranches(ctx, cred, path)
		if err != nil {
			return repoData{}, err
		}
		branches = append(branches, listed...)
	}
	return repoData{info: info, branches: branches}, nil
}

// defaultTarget is the parent's default branch for forks, the configured
// default branch on the repository itself otherwise.
func (m *Manager) defaultTarget(repoCtx RepoContext, info *gh.Repository) (owner, branch string) {
	if repoCtx.IsFork() {
		return repoCtx.Parent.Owner, info.GetParent().GetDefaultBranch()
	}
	branch = m.settings.PullRequestDefaultBranch
	if branch == "" {
		branch = info.GetDefaultBranch()
	}
	return repoCtx.Self.Owner, branch
}

// localRemoteBranches maps remote-tracking refs to their GitHub owners
func localRemoteBranches(repo *git.Repository, remotes []git.Remote) []ghub.RemoteBranch {
	owners := make(map[string]ghub.FullPath, len(remotes))
	for _, remote := range remotes {
		if path, ok := ghub.OwnerAndRepoFromRemoteURL(remote.FirstURL()); ok {
			owners[remote.Name] = path
		}
	}

	refs, err := repo.RemoteBranches()
	if err != nil {
		return nil
	}

	var branches []ghub.RemoteBranch
	for _, ref := range refs {
		path, ok := owners[ref.Remote]
		if !ok {
			continue
		}
		branches = append(branches, ghub.RemoteBranch{
			User:     path.Owner,
			Branch:   ref.Branch,
			Repo:     path.Name,
			LocalRef: ref.LocalRef(),
		})
	}
	return branches
}

func repoPath(r *gh.Repository) ghub.FullPath {
	if r == nil {
		return ghub.FullPath{}
	}
	return ghub.FullPath{Owner: r.GetOwner().GetLogin(), Name: r.GetName()}
}

// serviceLookup adapts the API service to the TargetLookup network fallback
type serviceLookup struct {
	service PullRequestService
	cred    auth.Credential
}

func (l *serviceLookup) FindRepository(ctx context.Context, path ghub.FullPath) (ghub.FullPath, bool, error) {
	info, err := l.service.GetRepository(ctx, l.cred, path)
	if err != nil {
		var respErr *gh.ErrorResponse
		if stderrors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound {
			return ghub.FullPath{}, false, nil
		}
		return ghub.FullPath{}, false, err
	}
	return repoPath(info.GetSource()), true, nil
}

func (l *serviceLookup) FindFork(ctx context.Context, source ghub.FullPath, user string) (ghub.FullPath, bool, error) {
	fork, err := l.service.FindForkByUser(ctx, l.cred, source, user)
	if err != nil {
		return ghub.FullPath{}, false, err
	}
	if fork == nil {
		return ghub.FullPath{}, false, nil
	}
	return repoPath(fork), true, nil
}
