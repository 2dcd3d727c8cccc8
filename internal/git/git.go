package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/re-cinq/instruct/internal/env"
	"github.com/rs/zerolog"
)

// gitEnvPrefixes lists git environment variables that must not reach child
// git processes. When instruct runs from a git hook, git sets GIT_DIR and
// friends relative to the calling repo, and a clone would then write into
// that repo instead of the temp directory.
var gitEnvPrefixes = []string{
	"GIT_DIR=",
	"GIT_WORK_TREE=",
	"GIT_INDEX_FILE=",
	"GIT_OBJECT_DIRECTORY=",
	"GIT_ALTERNATE_OBJECT_DIRECTORIES=",
	"GIT_COMMON_DIR=",
}

// remotePrefixes are the URL schemes treated as remote repositories.
var remotePrefixes = []string{"http://", "https://", "git://", "ssh://", "ftp://", "ftps://"}

// transientMarkers are substrings of git errors worth retrying.
var transientMarkers = []string{
	"Could not resolve host",
	"Connection timed out",
	"Connection reset",
	"early EOF",
	"remote end hung up unexpectedly",
}

const (
	retryMaxAttempts = 3
	retryDelay       = 2 * time.Second
)

var sleepFunc = time.Sleep

// IsURL reports whether ref names a remote repository.
func IsURL(ref string) bool {
	for _, p := range remotePrefixes {
		if strings.HasPrefix(ref, p) {
			return true
		}
	}
	return false
}

// Run executes a git command in the given directory, retrying transient
// network failures.
func Run(ctx context.Context, dir string, args ...string) (string, error) {
	log := zerolog.Ctx(ctx)
	var err error
	for attempt := 1; attempt <= retryMaxAttempts; attempt++ {
		var out string
		out, err = runOnce(ctx, dir, args...)
		if err == nil {
			return out, nil
		}
		if !isTransient(err.Error()) || attempt == retryMaxAttempts || ctx.Err() != nil {
			break
		}
		log.Debug().Err(err).Int("attempt", attempt).Msg("retrying git")
		sleepFunc(retryDelay)
	}
	return "", err
}

func runOnce(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(env.Filter(os.Environ(), gitEnvPrefixes...), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}

func isTransient(msg string) bool {
	for _, m := range transientMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// ShallowClone clones the tip of url into a new temporary directory and
// returns it. The caller removes the directory.
func ShallowClone(ctx context.Context, url string) (string, error) {
	dir, err := os.MkdirTemp("", "instruct-clone-")
	if err != nil {
		return "", fmt.Errorf("creating clone directory: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("url", url).Str("dir", dir).Msg("cloning")
	if _, err := Run(ctx, dir, "clone", "--depth=1", url, "."); err != nil {
		_ = os.RemoveAll(dir)
		return "", err
	}
	return dir, nil
}
