// Package browse builds GitHub web URLs for local files and opens them.
package browse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fumiya-kume/ghflow/pkg/errors"
	"github.com/fumiya-kume/ghflow/pkg/git"
	ghub "github.com/fumiya-kume/ghflow/pkg/github"
	"github.com/fumiya-kume/ghflow/pkg/logger"
)

// BrowserLauncher opens a URL in the user's browser
type BrowserLauncher interface {
	Browse(url string) error
}

// Manager builds and opens GitHub URLs
type Manager struct {
	browser BrowserLauncher
	log     logger.Interface
}

// NewManager creates a browse manager
func NewManager(browser BrowserLauncher, log logger.Interface) *Manager {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Manager{browser: browser, log: log}
}

// Options are the user-supplied inputs of the workflow
type Options struct {
	// Path to the file to open; the repository root when empty
	Path string
	// Host is the GitHub instance the remote points at
	Host string
	// StartLine and EndLine select a line range, 1-based; zero means no
	// line anchor.
	StartLine int
	EndLine   int
	// Commit opens the given commit instead of a file
	Commit string
	// Print writes the URL to stdout instead of opening a browser
	Print bool
}

// Open builds the web URL for the file at its tracked remote branch and
// opens it in the browser.
func (m *Manager) Open(ctx context.Context, opts Options) (string, error) {
	path := opts.Path
	if path == "" {
		path = "."
	}

	repo, err := git.Open(path)
	if err != nil {
		return "", err
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return "", err
	}
	remoteURL, ok := git.FindGitHubRemoteURL(remotes, opts.Host)
	if !ok {
		return "", errors.ValidationError("repository has no GitHub remote")
	}
	repoPath, ok := ghub.OwnerAndRepoFromRemoteURL(remoteURL)
	if !ok {
		return "", errors.NewError(errors.ErrorTypeValidation).
			WithMessagef("can't parse remote URL %s", remoteURL).
			Build()
	}

	var url string
	if opts.Commit != "" {
		url = CommitURL(opts.Host, repoPath, opts.Commit)
	} else {
		branch, err := repo.CurrentBranch()
		if err != nil {
			return "", err
		}
		tracked, err := repo.TrackedBranch(branch)
		if err != nil {
			return "", err
		}

		relative, err := relativeToRoot(repo.Root(), path)
		if err != nil {
			return "", err
		}
		url = FileURL(opts.Host, repoPath, tracked.Branch, relative, opts.StartLine, opts.EndLine)
	}

	if opts.Print {
		return url, nil
	}
	if err := m.browser.Browse(url); err != nil {
		return "", errors.NewError(errors.ErrorTypeTransport).
			WithMessagef("can't open %s in browser", url).
			WithCause(err).
			Build()
	}
	return url, nil
}

// FileURL builds the web URL of a file at a branch, with an optional line
// anchor. An empty relative path addresses the repository at the branch.
func FileURL(host string, path ghub.FullPath, branch, relative string, startLine, endLine int) string {
	url := ghub.RepoWebURL(host, path) + "/tree/" + branch
	if relative != "" {
		url += "/" + filepath.ToSlash(relative)
	}
	if startLine > 0 {
		url += fmt.Sprintf("#L%d", startLine)
		if endLine > startLine {
			url += fmt.Sprintf("-L%d", endLine)
		}
	}
	return url
}

// CommitURL builds the web URL of a commit
func CommitURL(host string, path ghub.FullPath, sha string) string {
	return ghub.RepoWebURL(host, path) + "/commit/" + sha
}

// relativeToRoot resolves path relative to the repository root. Files
// outside the working tree are rejected.
func relativeToRoot(root, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.ValidationError("can't resolve path")
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.NewError(errors.ErrorTypeValidation).
			WithMessagef("can't read %s", path).
			WithCause(err).
			Build()
	}
	if info.IsDir() && abs == root {
		return "", nil
	}

	relative, err := filepath.Rel(root, abs)
	if err != nil || strings.HasPrefix(relative, "..") {
		return "", errors.NewError(errors.ErrorTypeValidation).
			WithMessagef("%s is outside the repository", path).
			Build()
	}
	if relative == "." {
		return "", nil
	}
	return relative, nil
}
