package clone

import (
	"context"
	"testing"

	gh "github.com/google/go-github/v60/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fumiya-kume/ghflow/pkg/auth"
	"github.com/fumiya-kume/ghflow/pkg/errors"
	ghub "github.com/fumiya-kume/ghflow/pkg/github"
	"github.com/fumiya-kume/ghflow/pkg/notify"
)

type stubLister struct {
	repos []*gh.Repository
	calls int
}

func (s *stubLister) ListOwnRepos(_ context.Context, _ auth.Credential) ([]*gh.Repository, error) {
	s.calls++
	return s.repos, nil
}

type nopPrompter struct{}

func (nopPrompter) PromptCredential(_ context.Context, _ string) (auth.Credential, error) {
	return auth.Credential{}, auth.ErrCancelled
}

type nopTrust struct{}

func (nopTrust) ConfirmTrust(_ context.Context, _ string) bool { return false }

func newTestManager(service RepositoryLister) *Manager {
	resolver := auth.NewResolver(nopPrompter{}, nopTrust{}, auth.NewTrustedHosts(), nil)
	return NewManager(resolver, service, notify.New(true, nil), nil)
}

func ownRepo(owner, name string) *gh.Repository {
	return &gh.Repository{
		Owner: &gh.User{Login: gh.String(owner)},
		Name:  gh.String(name),
	}
}

func TestParseRepoName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ghub.FullPath
		hasOwner bool
	}{
		{name: "bare name", input: "project", expected: ghub.FullPath{Name: "project"}},
		{name: "owner and name", input: "alice/project", expected: ghub.FullPath{Owner: "alice", Name: "project"}, hasOwner: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, hasOwner := parseRepoName(tt.input)
			assert.Equal(t, tt.expected, path)
			assert.Equal(t, tt.hasOwner, hasOwner)
		})
	}
}

func TestFindByName(t *testing.T) {
	repos := []*gh.Repository{
		ownRepo("bob", "dotfiles"),
		ownRepo("bob", "Project"),
	}

	path, found := findByName(repos, "project")
	require.True(t, found)
	assert.Equal(t, ghub.FullPath{Owner: "bob", Name: "Project"}, path)

	_, found = findByName(repos, "missing")
	assert.False(t, found)
}

func TestCloneEmptyName(t *testing.T) {
	service := &stubLister{}

	_, err := newTestManager(service).Clone(context.Background(), auth.Token("github.com", "ghp_x"), "", "")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	assert.Zero(t, service.calls)
}

func TestCloneUnknownRepositoryRejected(t *testing.T) {
	service := &stubLister{repos: []*gh.Repository{ownRepo("bob", "dotfiles")}}

	_, err := newTestManager(service).Clone(context.Background(), auth.Token("github.com", "ghp_x"), "project", "")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), "no repository named project")
	assert.Equal(t, 1, service.calls)
}
