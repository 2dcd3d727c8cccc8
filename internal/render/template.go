// Package render compiles and executes instruction templates.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
)

// DomainError is raised from inside a template to report an invalid
// combination of answers. It is an expected outcome, not a fault.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Template is a compiled instruction template. It is safe to execute from
// multiple goroutines.
type Template struct {
	tmpl *template.Template
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Compile parses text into a Template named name.
func Compile(name, text string) (*Template, error) {
	t := template.New(name).Option("missingkey=error")

	funcs := sprig.HermeticTxtFuncMap()
	funcs["raise"] = raise
	funcs["command"] = Command
	funcs["include"] = func(block string, data any) (string, error) {
		var buf bytes.Buffer
		if err := t.ExecuteTemplate(&buf, block, data); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	if _, err := t.Funcs(funcs).Parse(text); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return &Template{tmpl: t}, nil
}

// Execute renders the template against data.
func (t *Template) Execute(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func raise(msg ...any) (string, error) {
	parts := make([]string, len(msg))
	for i, m := range msg {
		parts[i] = fmt.Sprint(m)
	}
	return "", &DomainError{Message: strings.Join(parts, " ")}
}

// Command joins a multi-line shell command into a single line.
func Command(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
