package e2e_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// result is one run of the binary.
type result struct {
	Stdout string
	Stderr string
	Err    error
}

// workspace is a temp directory with its own defaults file, so runs never
// touch the user's saved answers.
type workspace struct {
	Dir      string
	Defaults string
}

func newWorkspace() *workspace {
	dir, err := os.MkdirTemp("", "instruct-test-*")
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(func() { os.RemoveAll(dir) })
	return &workspace{Dir: dir, Defaults: filepath.Join(dir, "state", "defaults.json")}
}

// run executes instruct in the workspace.
func (w *workspace) run(args ...string) result {
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = w.Dir
	cmd.Env = append(os.Environ(),
		"GIT_TERMINAL_PROMPT=0",
		"INSTRUCT_DEFAULTS_FILE="+w.Defaults,
		"INSTRUCT_LOG_LEVEL=",
		"INSTRUCT_LOG_FORMAT=",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
		Err:    err,
	}
}

// ok runs instruct and expects success, returning stdout.
func (w *workspace) ok(args ...string) string {
	r := w.run(args...)
	ExpectWithOffset(1, r.Err).NotTo(HaveOccurred(), "instruct %s failed:\n%s\n%s", strings.Join(args, " "), r.Stdout, r.Stderr)
	return r.Stdout
}

// fail runs instruct and expects exit status 1.
func (w *workspace) fail(args ...string) result {
	r := w.run(args...)
	var exitErr *exec.ExitError
	ExpectWithOffset(1, r.Err).To(BeAssignableToTypeOf(exitErr), "instruct %s should fail:\n%s", strings.Join(args, " "), r.Stdout)
	ExpectWithOffset(1, r.Err.(*exec.ExitError).ExitCode()).To(Equal(1))
	return r
}

// writeFile creates a file with the given content, creating parent dirs as needed.
func writeFile(dir, name, content string) string {
	p := filepath.Join(dir, name)
	err := os.MkdirAll(filepath.Dir(p), 0o755)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	err = os.WriteFile(p, []byte(content), 0o644)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return p
}

// readFile reads a file and returns its content.
func readFile(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return string(data)
}

func example(name string) string {
	return filepath.Join(examplesDir, name)
}

// echoConfig is a small config whose instructions are harmless shell commands.
const echoConfig = `$id: https://example.com/echo
title: Echo
properties:
  greeting:
    enum: [hello, goodbye, fail]
    default: hello
  loud:
    type: boolean
    default: false
required: [greeting]
------
echo {{ .greeting }}{{ if .loud }}!{{ end }} > greeting.txt
{{ if eq .greeting "fail" }}sh -c 'echo partial; echo broken >&2; exit 3'{{ end }}
cat greeting.txt
`
