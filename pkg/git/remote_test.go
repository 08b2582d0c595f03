package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindGitHubRemote(t *testing.T) {
	tests := []struct {
		name     string
		remotes  []Remote
		host     string
		wantName string
		wantURL  string
		wantOK   bool
	}{
		{
			name: "prefers remote named github",
			remotes: []Remote{
				{Name: "origin", URLs: []string{"https://github.com/alice/project.git"}},
				{Name: "github", URLs: []string{"https://github.com/bob/project.git"}},
			},
			host:     "github.com",
			wantName: "github",
			wantURL:  "https://github.com/bob/project.git",
			wantOK:   true,
		},
		{
			name: "falls back to origin",
			remotes: []Remote{
				{Name: "backup", URLs: []string{"https://github.com/carol/project.git"}},
				{Name: "origin", URLs: []string{"https://github.com/alice/project.git"}},
			},
			host:     "github.com",
			wantName: "origin",
			wantURL:  "https://github.com/alice/project.git",
			wantOK:   true,
		},
		{
			name: "any matching remote when no preferred name",
			remotes: []Remote{
				{Name: "mirror", URLs: []string{"https://gitlab.com/alice/project.git"}},
				{Name: "backup", URLs: []string{"git@github.com:alice/project.git"}},
			},
			host:     "github.com",
			wantName: "backup",
			wantURL:  "git@github.com:alice/project.git",
			wantOK:   true,
		},
		{
			name: "ignores preferred names pointing elsewhere",
			remotes: []Remote{
				{Name: "origin", URLs: []string{"https://gitlab.com/alice/project.git"}},
				{Name: "corp", URLs: []string{"https://ghe.example.com/team/project.git"}},
			},
			host:     "ghe.example.com",
			wantName: "corp",
			wantURL:  "https://ghe.example.com/team/project.git",
			wantOK:   true,
		},
		{
			name: "no match",
			remotes: []Remote{
				{Name: "origin", URLs: []string{"https://gitlab.com/alice/project.git"}},
			},
			host:   "github.com",
			wantOK: false,
		},
		{
			name:    "empty remote list",
			remotes: nil,
			host:    "github.com",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote, url, ok := FindGitHubRemote(tt.remotes, tt.host)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantName, remote.Name)
				assert.Equal(t, tt.wantURL, url)
			}
		})
	}
}

func TestFindUpstreamRemote(t *testing.T) {
	t.Run("upstream pointing at host", func(t *testing.T) {
		remotes := []Remote{
			{Name: "origin", URLs: []string{"https://github.com/alice/project.git"}},
			{Name: "upstream", URLs: []string{"https://github.com/parent/project.git"}},
		}
		url, ok := FindUpstreamRemote(remotes, "github.com")
		assert.True(t, ok)
		assert.Equal(t, "https://github.com/parent/project.git", url)
	})

	t.Run("no upstream remote", func(t *testing.T) {
		remotes := []Remote{
			{Name: "origin", URLs: []string{"https://github.com/alice/project.git"}},
		}
		_, ok := FindUpstreamRemote(remotes, "github.com")
		assert.False(t, ok)
	})

	t.Run("upstream pointing at another host", func(t *testing.T) {
		remotes := []Remote{
			{Name: "upstream", URLs: []string{"https://gitlab.com/parent/project.git"}},
		}
		_, ok := FindUpstreamRemote(remotes, "github.com")
		assert.False(t, ok)
	})
}

func TestIsOnGitHub(t *testing.T) {
	remotes := []Remote{
		{Name: "origin", URLs: []string{"git@github.com:alice/project.git"}},
	}
	assert.True(t, IsOnGitHub(remotes, "github.com"))
	assert.False(t, IsOnGitHub(remotes, "ghe.example.com"))
	assert.False(t, IsOnGitHub(nil, "github.com"))
}
