// Package source turns a user-supplied reference (file, directory or git
// URL) into the path of a local install config.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/re-cinq/instruct/internal/git"
	"github.com/re-cinq/instruct/internal/ignore"
	"github.com/rs/zerolog"
)

// ConfigName is the file looked up inside directories and repositories.
const ConfigName = "install.cfg"

// ErrConfigNotFound is returned when a directory holds no install config.
var ErrConfigNotFound = errors.New("no " + ConfigName + " found")

// IsConfigNotFound reports whether err indicates a missing config.
func IsConfigNotFound(err error) bool {
	return errors.Is(err, ErrConfigNotFound)
}

// AmbiguousError is returned when a directory holds more than one config
// below its root.
type AmbiguousError struct {
	Dir     string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("multiple %s files found in %s, pass one of:\n  %s",
		ConfigName, e.Dir, strings.Join(e.Matches, "\n  "))
}

// Resolved is a local config file. Close removes any temporary checkout
// made to get it.
type Resolved struct {
	Path   string
	Remote bool

	cleanup func() error
}

// Close releases the checkout behind a remote config. It is a no-op for
// local files.
func (r *Resolved) Close() error {
	if r.cleanup == nil {
		return nil
	}
	err := r.cleanup()
	r.cleanup = nil
	return err
}

// Resolve finds the config named by ref: a file path, a directory to
// search, or a git URL to clone shallowly and search.
func Resolve(ctx context.Context, ref string) (*Resolved, error) {
	log := zerolog.Ctx(ctx)

	if git.IsURL(ref) {
		dir, err := git.ShallowClone(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", ref, err)
		}
		path, err := Find(dir)
		if err != nil {
			_ = os.RemoveAll(dir)
			return nil, err
		}
		log.Debug().Str("ref", ref).Str("path", path).Msg("resolved remote config")
		return &Resolved{
			Path:    path,
			Remote:  true,
			cleanup: func() error { return os.RemoveAll(dir) },
		}, nil
	}

	info, err := os.Stat(ref)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", ref, err)
	}
	if !info.IsDir() {
		return &Resolved{Path: ref}, nil
	}
	path, err := Find(ref)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("ref", ref).Str("path", path).Msg("resolved config in directory")
	return &Resolved{Path: path}, nil
}

// Find returns the install config in dir. A config at the root wins;
// otherwise exactly one must exist below it, outside .git and ignored paths.
func Find(dir string) (string, error) {
	root := filepath.Join(dir, ConfigName)
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		return root, nil
	}

	m, err := ignore.Load(dir)
	if err != nil {
		return "", fmt.Errorf("loading .gitignore: %w", err)
	}

	var matches []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if d.Name() == ".git" || m.Ignored(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == ConfigName && !m.Ignored(rel, false) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("searching %s: %w", dir, err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w in %s", ErrConfigNotFound, dir)
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{Dir: dir, Matches: matches}
	}
}
