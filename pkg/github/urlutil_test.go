package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostFromRemoteURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/alice/project.git", "github.com"},
		{"https://github.com/alice/project", "github.com"},
		{"git@github.com:alice/project.git", "github.com"},
		{"ssh://git@ghe.corp/alice/project.git", "ghe.corp"},
		{"ssh://git@ghe.corp:2222/alice/project.git", "ghe.corp"},
		{"git://github.com/alice/project.git", "github.com"},
		{"https://GHE.Corp/alice/project.git", "ghe.corp"},
		{"/local/path/repo", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, HostFromRemoteURL(tt.url))
		})
	}
}

func TestIsRemoteURLForHost(t *testing.T) {
	assert.True(t, IsRemoteURLForHost("github.com", "git@github.com:alice/project.git"))
	assert.True(t, IsRemoteURLForHost("ghe.corp", "https://ghe.corp/alice/project.git"))
	assert.False(t, IsRemoteURLForHost("github.com", "https://gitlab.com/alice/project.git"))
	assert.False(t, IsRemoteURLForHost("github.com", "/local/path"))
}

func TestOwnerAndRepoFromRemoteURL(t *testing.T) {
	tests := []struct {
		url  string
		want FullPath
		ok   bool
	}{
		{"https://github.com/alice/project.git", FullPath{"alice", "project"}, true},
		{"https://github.com/alice/project", FullPath{"alice", "project"}, true},
		{"https://github.com/alice/project/", FullPath{"alice", "project"}, true},
		{"git@github.com:alice/project.git", FullPath{"alice", "project"}, true},
		{"ssh://git@ghe.corp/alice/project.git", FullPath{"alice", "project"}, true},
		{"https://github.com/alice", FullPath{}, false},
		{"https://github.com/alice/sub/project", FullPath{}, false},
		{"not a url", FullPath{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := OwnerAndRepoFromRemoteURL(tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepoAndCloneURL(t *testing.T) {
	path := FullPath{Owner: "alice", Name: "project"}
	assert.Equal(t, "https://github.com/alice/project", RepoWebURL("github.com", path))
	assert.Equal(t, "https://ghe.corp/alice/project.git", CloneURL("ghe.corp", path))
}

func TestRemoteBranchReference(t *testing.T) {
	b := RemoteBranch{User: "alice", Branch: "feature", Repo: "project"}
	assert.Equal(t, "alice:feature", b.Reference())
}

func TestFullPath(t *testing.T) {
	p := FullPath{Owner: "Alice", Name: "project"}
	assert.Equal(t, "Alice/project", p.String())
	assert.True(t, p.SameOwner("alice"))
	assert.False(t, p.SameOwner("bob"))
	assert.False(t, p.IsZero())
	assert.True(t, FullPath{}.IsZero())
}
