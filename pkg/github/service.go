package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fumiya-kume/ghflow/pkg/auth"
	"github.com/fumiya-kume/ghflow/pkg/logger"
	"github.com/google/go-github/v60/github"
)

const listPageSize = 100

// Service exposes the GitHub REST operations the workflows need. Every call
// takes the credential to act as, so the auth resolver can re-run an
// operation with an escalated credential without rebuilding the service.
type Service struct {
	factory     *ClientFactory
	rateLimiter *RateLimiter
	log         logger.Interface
}

// NewService creates a service. GitHub allows 5000 requests/hour for
// authenticated users; the limiter keeps bursts under that.
func NewService(factory *ClientFactory, log logger.Interface) *Service {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Service{
		factory:     factory,
		rateLimiter: NewRateLimiter(5000, time.Hour),
		log:         log,
	}
}

func (s *Service) client(ctx context.Context, cred auth.Credential) (*github.Client, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.factory.NewClient(ctx, cred)
}

// CurrentUser returns the authenticated user
func (s *Service) CurrentUser(ctx context.Context, cred auth.Credential) (*github.User, error) {
	client, err := s.client(ctx, cred)
	if err != nil {
		return nil, err
	}

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return user, nil
}

// ListOwnRepos returns all repositories of the authenticated user
func (s *Service) ListOwnRepos(ctx context.Context, cred auth.Credential) ([]*github.Repository, error) {
	client, err := s.client(ctx, cred)
	if err != nil {
		return nil, err
	}

	var all []*github.Repository
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}
	for {
		repos, resp, err := client.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories: %w", err)
		}
		all = append(all, repos...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// CreateRepository creates a repository for the authenticated user
func (s *Service) CreateRepository(ctx context.Context, cred auth.Credential, name, description string, private bool) (*github.Repository, error) {
	client, err := s.client(ctx, cred)
	if err != nil {
		return nil, err
	}

	repo, _, err := client.Repositories.Create(ctx, "", &github.Repository{
		Name:        github.String(name),
		Description: github.String(description),
		Private:     github.Bool(private),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create repository %s: %w", name, err)
	}
	return repo, nil
}

// GetRepository returns detailed repository info, including the parent and
// source relationship for forks.
func (s *Service) GetRepository(ctx context.Context, cred auth.Credential, path FullPath) (*github.Repository, error) {
	client, err := s.client(ctx, cred)
	if err != nil {
		return nil, err
	}

	repo, _, err := client.Repositories.Get(ctx, path.Owner, path.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository %s: %w", path, err)
	}
	return repo, nil
}

// ListBranches returns the branches of a repository as RemoteBranch values
func (s *Service) ListBranches(ctx context.Context, cred auth.Credential, path FullPath) ([]RemoteBranch, error) {
	client, err := s.client(ctx, cred)
	if err != nil {
		return nil, err
	}

	var all []RemoteBranch
	opts := &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}
	for {
		branches, resp, err := client.Repositories.ListBranches(ctx, path.Owner, path.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list branches of %s: %w", path, err)
		}
		for _, branch := range branches {
			all = append(all, RemoteBranch{
				User:   path.Owner,
				Branch: branch.GetName(),
				Repo:   path.Name,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// CreatePullRequest opens a pull request on the target repository.
// head is "owner:branch", base is a branch name on the target.
func (s *Service) CreatePullRequest(ctx context.Context, cred auth.Credential, target FullPath, title, body, head, base string) (*github.PullRequest, error) {
	client, err := s.client(ctx, cred)
	if err != nil {
		return nil, err
	}

	pr, _, err := client.PullRequests.Create(ctx, target.Owner, target.Name, &github.NewPullRequest{
		Title: github.String(title),
		Body:  github.String(body),
		Head:  github.String(head),
		Base:  github.String(base),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request on %s: %w", target, err)
	}
	return pr, nil
}

// FindForkByUser looks through the forks of owner/name for one owned by the
// given user. Returns nil when the user has no fork.
func (s *Service) FindForkByUser(ctx context.Context, cred auth.Credential, path FullPath, user string) (*github.Repository, error) {
	client, err := s.client(ctx, cred)
	if err != nil {
		return nil, err
	}

	opts := &github.RepositoryListForksOptions{
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}
	for {
		forks, resp, err := client.Repositories.ListForks(ctx, path.Owner, path.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list forks of %s: %w", path, err)
		}
		for _, fork := range forks {
			if strings.EqualFold(fork.GetOwner().GetLogin(), user) {
				return fork, nil
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return nil, nil
}

// CreateGist creates a gist from the given contents. An anonymous credential
// produces an anonymous gist.
func (s *Service) CreateGist(ctx context.Context, cred auth.Credential, contents []FileContent, description string, public bool) (*github.Gist, error) {
	client, err := s.client(ctx, cred)
	if err != nil {
		return nil, err
	}

	files := make(map[github.GistFilename]github.GistFile, len(contents))
	for _, content := range contents {
		files[github.GistFilename(content.Name)] = github.GistFile{
			Content: github.String(content.Content),
		}
	}

	gist, _, err := client.Gists.Create(ctx, &github.Gist{
		Description: github.String(description),
		Public:      github.Bool(public),
		Files:       files,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gist: %w", err)
	}
	return gist, nil
}
