package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CommandRunner runs external tools (poppler) and collects their output.
// When Jail is set the tool is started through the seccomp jail helper.
type CommandRunner struct {
	Jail      string
	Timeout   time.Duration
	MaxOutput int64
}

type CommandError struct {
	Binary string
	Stderr string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Binary, strings.TrimSpace(e.Stderr))
}

func (r *CommandRunner) command(ctx context.Context, binary string, args ...string) *exec.Cmd {
	if r.Jail != "" {
		return exec.CommandContext(ctx, r.Jail, append([]string{binary}, args...)...)
	}
	return exec.CommandContext(ctx, binary, args...)
}

// Run executes binary and returns its stdout, a process that failed or
// printed an error line returns a *CommandError carrying stderr
func (r *CommandRunner) Run(ctx context.Context, binary string, args ...string) ([]byte, error) {
	cmd := r.command(ctx, binary, args...)

	output_handler := NewOutputCaptureRunner()
	output_handler.SetTimeout(r.Timeout)
	output_handler.SetMaxOutput(r.MaxOutput)

	err := output_handler.CaptureOutput(cmd)
	if err != nil {
		return nil, err
	}

	stdout, stderr := output_handler.Collect()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if hasErrorLine(stderr) {
		return stdout, &CommandError{Binary: binary, Stderr: string(stderr)}
	}
	return stdout, nil
}

// poppler prints warnings ("Syntax Warning: ...") on stderr for damaged but
// readable files, only lines written by the capture runner count as failures
func hasErrorLine(stderr []byte) bool {
	for _, line := range bytes.Split(stderr, []byte("\n")) {
		if bytes.HasPrefix(line, []byte("error: ")) {
			return true
		}
	}
	return false
}
