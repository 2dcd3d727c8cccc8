// Package runner executes instruction lines as shell commands.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/creack/pty"
	"github.com/re-cinq/instruct/internal/env"
	"github.com/rs/zerolog"
)

// Result is what one command did.
type Result struct {
	Command  string
	Stdout   string
	Stderr   string
	ExitCode int
}

// ExitError is returned when a command exits non-zero or cannot start.
type ExitError struct {
	Result Result
	Err    error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q failed (exit %d): %v", e.Result.Command, e.Result.ExitCode, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Options configure a Runner.
type Options struct {
	// Dir is the working directory; empty means the current one.
	Dir string
	// Stream copies command output to Stdout and Stderr as it arrives, in
	// addition to capturing it.
	Stream bool
	// TTY runs commands under a pseudo-terminal. Output is then combined
	// into Result.Stdout.
	TTY    bool
	Stdout io.Writer
	Stderr io.Writer
	// OnStart, when set, is called with each command before it runs.
	OnStart func(command string)
}

// Runner runs shell commands one at a time.
type Runner struct {
	opts Options
}

// New returns a Runner.
func New(opts Options) *Runner {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	return &Runner{opts: opts}
}

// RunAll runs commands in order and stops at the first failure. The
// returned results include the failing command.
func (r *Runner) RunAll(ctx context.Context, commands []string) ([]Result, error) {
	results := make([]Result, 0, len(commands))
	for _, c := range commands {
		if r.opts.OnStart != nil {
			r.opts.OnStart(c)
		}
		res, err := r.Run(ctx, c)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// Run executes one command line through the platform shell.
func (r *Runner) Run(ctx context.Context, command string) (Result, error) {
	zerolog.Ctx(ctx).Debug().Str("command", command).Bool("tty", r.opts.TTY).Msg("running")

	name, args := shell(command)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.opts.Dir
	cmd.Env = env.ForChild()
	setProcGroup(cmd)

	var err error
	res := Result{Command: command}
	if r.opts.TTY {
		res.Stdout, err = r.runTTY(cmd)
	} else {
		res.Stdout, res.Stderr, err = r.runPiped(cmd)
	}
	if err != nil {
		res.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		}
		return res, &ExitError{Result: res, Err: err}
	}
	return res, nil
}

func (r *Runner) runPiped(cmd *exec.Cmd) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = r.sink(&stdout, r.opts.Stdout)
	cmd.Stderr = r.sink(&stderr, r.opts.Stderr)
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func (r *Runner) runTTY(cmd *exec.Cmd) (string, error) {
	sessionLeader(cmd)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return "", fmt.Errorf("starting pty: %w", err)
	}
	defer ptmx.Close()

	var out bytes.Buffer
	// Reading the pty fails with EIO once the child exits.
	_, _ = io.Copy(r.sink(&out, r.opts.Stdout), ptmx)
	return out.String(), cmd.Wait()
}

func (r *Runner) sink(buf *bytes.Buffer, stream io.Writer) io.Writer {
	if r.opts.Stream {
		return io.MultiWriter(buf, stream)
	}
	return buf
}
