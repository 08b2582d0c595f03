package github

import "strings"

// FullPath identifies a repository by owner and name
type FullPath struct {
	Owner string
	Name  string
}

// String returns the "owner/name" form
func (p FullPath) String() string {
	return p.Owner + "/" + p.Name
}

// IsZero reports whether the path is empty
func (p FullPath) IsZero() bool {
	return p.Owner == "" && p.Name == ""
}

// SameOwner compares owners case-insensitively, the way GitHub treats logins
func (p FullPath) SameOwner(owner string) bool {
	return strings.EqualFold(p.Owner, owner)
}

// RemoteBranch is a branch of a GitHub repository, as discovered either from
// the API or from local remote-tracking refs.
type RemoteBranch struct {
	// User is the owner of the repository the branch lives in
	User string
	// Branch is the branch name
	Branch string
	// Repo is the repository name; may be empty for API-discovered branches
	// where only the owner is known to matter
	Repo string
	// LocalRef is the local remote-tracking ref, set only for branches
	// discovered from the local repository
	LocalRef string
}

// Reference returns the "user:branch" form used in pull request targets
func (b RemoteBranch) Reference() string {
	return b.User + ":" + b.Branch
}

// FileContent is a named blob for gist creation
type FileContent struct {
	Name    string
	Content string
}
