package render

import (
	"regexp"
	"strings"
)

const errorTag = "[ERROR]"

var taggedError = regexp.MustCompile(`(?s)\[\[ERROR\]\](.*?)\[\[ERROR\]\]`)

// CollapseWhitespace replaces every whitespace run (newlines included) with
// a single space and trims the ends.
func CollapseWhitespace(s string) string {
	return Command(s)
}

// SplitLines returns the non-empty lines of s, each trimmed and with
// interior whitespace runs collapsed.
func SplitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = CollapseWhitespace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ExtractErrorMessage returns the text following the last [ERROR] tag in
// msg, with surrounding quotes and whitespace removed.
func ExtractErrorMessage(msg string) (string, bool) {
	i := strings.LastIndex(msg, errorTag)
	if i < 0 {
		return "", false
	}
	out := strings.TrimSpace(msg[i+len(errorTag):])
	out = strings.Trim(out, `"'`)
	return strings.TrimSpace(out), true
}

// ExtractTaggedError returns the message between the first pair of
// [[ERROR]] markers in rendered output.
func ExtractTaggedError(output string) (string, bool) {
	m := taggedError.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return CollapseWhitespace(m[1]), true
}
