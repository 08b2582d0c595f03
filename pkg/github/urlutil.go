package github

import (
	"fmt"
	"regexp"
	"strings"
)

// remote URL shapes we understand:
//
//	https://github.com/owner/repo.git
//	git@github.com:owner/repo.git
//	ssh://git@github.com/owner/repo.git
//	git://github.com/owner/repo.git
var (
	scpLikeRe = regexp.MustCompile(`^[\w.-]+@([\w.-]+):(.+)$`)
	schemeRe  = regexp.MustCompile(`^(?:https?|ssh|git)://(?:[\w.-]+@)?([\w.-]+(?::\d+)?)/(.+)$`)
)

// HostFromRemoteURL extracts the hostname from a git remote URL, or returns
// an empty string when the URL is not recognized.
func HostFromRemoteURL(remoteURL string) string {
	remoteURL = strings.TrimSpace(remoteURL)

	if m := schemeRe.FindStringSubmatch(remoteURL); m != nil {
		host := m[1]
		if i := strings.Index(host, ":"); i >= 0 {
			host = host[:i]
		}
		return strings.ToLower(host)
	}
	if m := scpLikeRe.FindStringSubmatch(remoteURL); m != nil {
		return strings.ToLower(m[1])
	}
	return ""
}

// IsRemoteURLForHost reports whether the remote URL points at the given
// GitHub host.
func IsRemoteURLForHost(host, remoteURL string) bool {
	return HostFromRemoteURL(remoteURL) == strings.ToLower(host)
}

// OwnerAndRepoFromRemoteURL parses "owner/repo" out of a git remote URL.
func OwnerAndRepoFromRemoteURL(remoteURL string) (FullPath, bool) {
	remoteURL = strings.TrimSpace(remoteURL)

	var path string
	if m := schemeRe.FindStringSubmatch(remoteURL); m != nil {
		path = m[2]
	} else if m := scpLikeRe.FindStringSubmatch(remoteURL); m != nil {
		path = m[2]
	} else {
		return FullPath{}, false
	}

	path = strings.TrimSuffix(path, "/")
	path = strings.TrimSuffix(path, ".git")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return FullPath{}, false
	}

	return FullPath{Owner: parts[0], Name: parts[1]}, true
}

// RepoWebURL returns the web page of a repository
func RepoWebURL(host string, path FullPath) string {
	return fmt.Sprintf("https://%s/%s", host, path.String())
}

// CloneURL returns the https clone URL of a repository
func CloneURL(host string, path FullPath) string {
	return fmt.Sprintf("https://%s/%s.git", host, path.String())
}
