// Package gist creates GitHub gists from local files or stdin.
package gist

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gh "github.com/google/go-github/v60/github"

	"github.com/fumiya-kume/ghflow/pkg/auth"
	"github.com/fumiya-kume/ghflow/pkg/errors"
	ghub "github.com/fumiya-kume/ghflow/pkg/github"
	"github.com/fumiya-kume/ghflow/pkg/logger"
	"github.com/fumiya-kume/ghflow/pkg/notify"
)

// BrowserLauncher opens a URL in the user's browser
type BrowserLauncher interface {
	Browse(url string) error
}

// GistService is the slice of the API this workflow needs
type GistService interface {
	CreateGist(ctx context.Context, cred auth.Credential, contents []ghub.FileContent, description string, public bool) (*gh.Gist, error)
}

var _ GistService = (*ghub.Service)(nil)

// Manager drives the gist workflow
type Manager struct {
	resolver *auth.Resolver
	service  GistService
	notifier *notify.Notifier
	browser  BrowserLauncher
	log      logger.Interface
}

// NewManager creates a gist manager
func NewManager(resolver *auth.Resolver, service GistService, notifier *notify.Notifier, browser BrowserLauncher, log logger.Interface) *Manager {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Manager{
		resolver: resolver,
		service:  service,
		notifier: notifier,
		browser:  browser,
		log:      log,
	}
}

// Options are the user-supplied inputs of the workflow
type Options struct {
	// Paths to files or directories to include; stdin is read when empty
	Paths []string
	// Stdin is the content source when no paths are given
	Stdin io.Reader
	// Name renames the file when the gist holds exactly one
	Name string
	// Description of the gist
	Description string
	// Private makes the gist secret
	Private bool
	// Anonymous creates the gist without authentication
	Anonymous bool
	// OpenBrowser opens the created gist instead of notifying
	OpenBrowser bool
}

// Create collects content and creates the gist
func (m *Manager) Create(ctx context.Context, initial auth.Credential, opts Options) (*gh.Gist, error) {
	contents, err := CollectContents(opts.Paths, opts.Stdin, opts.Name)
	if err != nil {
		return nil, err
	}
	if len(contents) == 0 {
		return nil, errors.ValidationError("can't create gist: no file content")
	}

	var created *gh.Gist
	if opts.Anonymous {
		created, err = m.service.CreateGist(ctx, auth.Anonymous(initial.Host), contents, opts.Description, !opts.Private)
	} else {
		created, _, err = auth.Run(ctx, m.resolver, initial, func(ctx context.Context, cred auth.Credential) (*gh.Gist, error) {
			return m.service.CreateGist(ctx, cred, contents, opts.Description, !opts.Private)
		})
	}
	if err != nil {
		return nil, err
	}

	url := created.GetHTMLURL()
	if opts.OpenBrowser && m.browser != nil {
		if err := m.browser.Browse(url); err != nil {
			m.log.Warn("can't open browser: %v", err)
			m.notifier.InfoURL("Gist created", url)
		}
	} else {
		m.notifier.InfoURL("Gist created", url)
	}
	return created, nil
}

const stdinFileName = "gistfile.txt"

// CollectContents reads gist content from the given paths, walking
// directories, or from stdin when no paths are given. rename replaces the
// file name when exactly one file was collected.
func CollectContents(paths []string, stdin io.Reader, rename string) ([]ghub.FileContent, error) {
	var contents []ghub.FileContent

	if len(paths) == 0 {
		if stdin == nil {
			return nil, nil
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.NewError(errors.ErrorTypeValidation).
				WithMessage("can't read gist content from stdin").
				WithCause(err).
				Build()
		}
		if len(data) > 0 {
			contents = append(contents, ghub.FileContent{Name: stdinFileName, Content: string(data)})
		}
	}

	for _, path := range paths {
		collected, err := collectPath(path)
		if err != nil {
			return nil, err
		}
		contents = append(contents, collected...)
	}

	contents = dedupeNames(contents)

	if rename != "" && len(contents) == 1 {
		contents[0].Name = rename
	}
	return contents, nil
}

func collectPath(path string) ([]ghub.FileContent, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewError(errors.ErrorTypeValidation).
			WithMessagef("can't read %s", path).
			WithCause(err).
			Build()
	}

	if !info.IsDir() {
		content, err := readFile(path)
		if err != nil {
			return nil, err
		}
		return []ghub.FileContent{content}, nil
	}

	var contents []ghub.FileContent
	err = filepath.WalkDir(path, func(entry string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		content, err := readFile(entry)
		if err != nil {
			return err
		}
		contents = append(contents, content)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func readFile(path string) (ghub.FileContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ghub.FileContent{}, errors.NewError(errors.ErrorTypeValidation).
			WithMessagef("can't read %s", path).
			WithCause(err).
			Build()
	}
	return ghub.FileContent{Name: filepath.Base(path), Content: string(data)}, nil
}

// dedupeNames keeps gist file names unique when different directories hold
// files with the same base name.
func dedupeNames(contents []ghub.FileContent) []ghub.FileContent {
	seen := make(map[string]int, len(contents))
	for i, content := range contents {
		name := content.Name
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			ext := filepath.Ext(name)
			base := strings.TrimSuffix(name, ext)
			contents[i].Name = fmt.Sprintf("%s_%d%s", base, n+1, ext)
		} else {
			seen[name] = 1
		}
	}
	return contents
}
