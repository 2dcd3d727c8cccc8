package ignore

import (
	"os"
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
)

const ignoreFile = ".gitignore"

// Matcher checks paths against the .gitignore at the root of a checkout.
type Matcher struct {
	gi *gitignore.GitIgnore
}

// Load loads .gitignore from the given directory.
// Returns a Matcher that matches nothing if no .gitignore exists.
func Load(dir string) (*Matcher, error) {
	path := filepath.Join(dir, ignoreFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Matcher{}, nil
	}

	gi, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, err
	}
	return &Matcher{gi: gi}, nil
}

// Ignored reports whether rel, a slash-separated path relative to the
// checkout root, is ignored. Directory-only patterns match when isDir is set.
func (m *Matcher) Ignored(rel string, isDir bool) bool {
	if m.gi == nil || rel == "" || rel == "." {
		return false
	}
	if m.gi.MatchesPath(rel) {
		return true
	}
	return isDir && m.gi.MatchesPath(rel+"/")
}
