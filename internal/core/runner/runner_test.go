package runner

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestCommandRunnerStdout(t *testing.T) {
	r := CommandRunner{Timeout: 5 * time.Second}
	out, err := r.Run(context.Background(), "sh", "-c", "printf 'page one\\fpage two'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "page one\fpage two" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestCommandRunnerWarningsAreNotErrors(t *testing.T) {
	r := CommandRunner{Timeout: 5 * time.Second}
	out, err := r.Run(context.Background(), "sh", "-c", "echo 'Syntax Warning: bad xref' 1>&2; echo ok")
	if err != nil {
		t.Fatalf("warnings should not fail the run: %v", err)
	}
	if strings.TrimSpace(string(out)) != "ok" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestCommandRunnerExitCode(t *testing.T) {
	r := CommandRunner{Timeout: 5 * time.Second}
	_, err := r.Run(context.Background(), "sh", "-c", "echo broken 1>&2; exit 3")
	var cmd_err *CommandError
	if !errors.As(err, &cmd_err) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if !strings.Contains(cmd_err.Stderr, "broken") || !strings.Contains(cmd_err.Stderr, "exit status 3") {
		t.Errorf("unexpected stderr: %q", cmd_err.Stderr)
	}
}

func TestCommandRunnerTimeout(t *testing.T) {
	r := CommandRunner{Timeout: 200 * time.Millisecond}
	start := time.Now()
	_, err := r.Run(context.Background(), "sleep", "5")
	if err == nil || !strings.Contains(err.Error(), "timeout") {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if time.Since(start) > 3*time.Second {
		t.Errorf("timeout did not kill the process")
	}
}

func TestCommandRunnerMissingBinary(t *testing.T) {
	r := CommandRunner{}
	if _, err := r.Run(context.Background(), "definitely-not-a-poppler-binary"); err == nil {
		t.Fatal("expected start error")
	}
}

func TestWithTempDir(t *testing.T) {
	base := t.TempDir()
	runner := TempDirRunner{}

	var seen string
	err := runner.WithTempDir(base, func(dir string) error {
		seen = dir
		if _, err := os.Stat(dir); err != nil {
			t.Errorf("temp dir missing inside closure: %v", err)
		}
		return os.WriteFile(dir+"/upload.pdf", []byte("%PDF-1.4"), 0600)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(seen, TEMP_DIR_PREFIX) {
		t.Errorf("unexpected temp dir name %s", seen)
	}
	if _, err := os.Stat(seen); !os.IsNotExist(err) {
		t.Errorf("temp dir should be removed, stat err: %v", err)
	}
}

func TestWithTempDirPropagatesError(t *testing.T) {
	runner := TempDirRunner{}
	want := errors.New("boom")
	err := runner.WithTempDir(t.TempDir(), func(string) error { return want })
	if !errors.Is(err, want) {
		t.Errorf("expected closure error, got %v", err)
	}
}

func TestCommandRunnerOutputLimit(t *testing.T) {
	r := CommandRunner{Timeout: 5 * time.Second, MaxOutput: 1024}
	_, err := r.Run(context.Background(), "head", "-c", "1000000", "/dev/zero")
	if err == nil || !strings.Contains(err.Error(), "output limit exceeded") {
		t.Fatalf("expected output limit error, got %v", err)
	}
}
