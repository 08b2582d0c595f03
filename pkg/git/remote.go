package git

import (
	ghub "github.com/fumiya-kume/ghflow/pkg/github"
)

// FindGitHubRemote picks the remote pointing at the given GitHub host.
// Remotes named "github" or "origin" win; otherwise the first remote with a
// matching URL is used.
func FindGitHubRemote(remotes []Remote, host string) (Remote, string, bool) {
	var fallback Remote
	var fallbackURL string
	found := false

	for _, remote := range remotes {
		for _, url := range remote.URLs {
			if !ghub.IsRemoteURLForHost(host, url) {
				continue
			}
			if remote.Name == "github" || remote.Name == "origin" {
				return remote, url, true
			}
			if !found {
				fallback = remote
				fallbackURL = url
				found = true
			}
			break
		}
	}
	return fallback, fallbackURL, found
}

// FindGitHubRemoteURL returns just the URL of the GitHub remote
func FindGitHubRemoteURL(remotes []Remote, host string) (string, bool) {
	_, url, ok := FindGitHubRemote(remotes, host)
	return url, ok
}

// FindUpstreamRemote returns the URL of the remote named "upstream" when it
// points at the given host.
func FindUpstreamRemote(remotes []Remote, host string) (string, bool) {
	for _, remote := range remotes {
		if remote.Name != "upstream" {
			continue
		}
		for _, url := range remote.URLs {
			if ghub.IsRemoteURLForHost(host, url) {
				return url, true
			}
		}
	}
	return "", false
}

// IsOnGitHub reports whether any remote points at the given host
func IsOnGitHub(remotes []Remote, host string) bool {
	_, ok := FindGitHubRemoteURL(remotes, host)
	return ok
}
