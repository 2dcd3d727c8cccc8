package env

import (
	"os"
	"strings"
)

// Filter returns a copy of environ without the variables matching any of
// the given prefixes. Prefixes should include the '=' suffix for exact
// matching (e.g. "GIT_DIR=", not "GIT_DIR").
func Filter(environ []string, excludePrefixes ...string) []string {
	result := make([]string, 0, len(environ))
	for _, e := range environ {
		skip := false
		for _, prefix := range excludePrefixes {
			if strings.HasPrefix(e, prefix) {
				skip = true
				break
			}
		}
		if !skip {
			result = append(result, e)
		}
	}
	return result
}

// ForChild returns os.Environ() minus instruct's own settings, for commands
// run on the user's behalf.
func ForChild() []string {
	return Filter(os.Environ(), "INSTRUCT_")
}
