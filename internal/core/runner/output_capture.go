package runner

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/slidelens/slidelens/internal/utils/log"
)

type OutputCaptureRunner struct {
	stdout chan []byte
	stderr chan []byte
	done   chan bool

	timeout   time.Duration
	timed_out atomic.Bool

	max_output int64
	written    atomic.Int64
	truncated  atomic.Bool
}

func NewOutputCaptureRunner() *OutputCaptureRunner {
	return &OutputCaptureRunner{
		stdout: make(chan []byte),
		stderr: make(chan []byte),
		done:   make(chan bool),
	}
}

func (s *OutputCaptureRunner) WriteError(data []byte) {
	if s.stderr != nil {
		s.stderr <- data
	}
}

func (s *OutputCaptureRunner) WriteOutput(data []byte) {
	if s.stdout != nil {
		s.stdout <- data
	}
}

func (s *OutputCaptureRunner) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// SetMaxOutput bounds the stdout kept in memory, the process is killed once
// it writes more. Zero means unlimited.
func (s *OutputCaptureRunner) SetMaxOutput(max_output int64) {
	s.max_output = max_output
}

func (s *OutputCaptureRunner) CaptureOutput(cmd *exec.Cmd) error {
	// create a pipe for the stdout
	stdout_reader, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}

	// create a pipe for the stderr
	stderr_reader, err := cmd.StderrPipe()
	if err != nil {
		stdout_reader.Close()
		return err
	}

	// start the process
	err = cmd.Start()
	if err != nil {
		stdout_reader.Close()
		stderr_reader.Close()
		return err
	}

	// start a timer for the timeout
	timeout := s.timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	timer := time.AfterFunc(timeout, func() {
		if cmd.Process != nil {
			// the error is written by the wait goroutine once the process is gone
			s.timed_out.Store(true)
			cmd.Process.Kill()
		}
	})

	wg := sync.WaitGroup{}
	wg.Add(2)

	// read the output
	go func() {
		defer wg.Done()
		for {
			buf := make([]byte, 4096)
			n, err := stdout_reader.Read(buf)
			if n > 0 && !s.truncated.Load() {
				if s.max_output > 0 && s.written.Add(int64(n)) > s.max_output {
					s.truncated.Store(true)
					cmd.Process.Kill()
				} else {
					s.WriteOutput(buf[:n])
				}
			}
			// exit if EOF
			if err != nil {
				if err != io.EOF {
					s.WriteError([]byte(fmt.Sprintf("error: %v\n", err)))
				}
				break
			}
		}
	}()

	// read the error
	go func() {
		defer wg.Done()
		for {
			buf := make([]byte, 1024)
			n, err := stderr_reader.Read(buf)
			if n > 0 {
				s.WriteError(buf[:n])
			}
			// exit if EOF
			if err != nil {
				if err != io.EOF {
					s.WriteError([]byte(fmt.Sprintf("error: %v\n", err)))
				}
				break
			}
		}
	}()

	// wait for the process to finish
	go func() {
		// wait for the stdout and stderr to finish
		wg.Wait()

		// wait for the process to finish, the pipes are drained at this point
		err := cmd.Wait()
		timer.Stop()
		var exit_err *exec.ExitError
		if s.timed_out.Load() {
			s.WriteError([]byte("error: timeout\n"))
		} else if s.truncated.Load() {
			s.WriteError([]byte("error: output limit exceeded\n"))
		} else if errors.As(err, &exit_err) {
			exit_string := exit_err.String()
			if strings.Contains(exit_string, "bad system call") {
				s.WriteError([]byte("error: operation not permitted\n"))
			} else {
				s.WriteError([]byte(fmt.Sprintf("error: %v\n", exit_string)))
			}
		} else if err != nil {
			log.Error("process %s finished with error: %v", cmd.Path, err)
			s.WriteError([]byte(fmt.Sprintf("error: %v\n", err)))
		}

		s.done <- true
	}()

	return nil
}

// Collect drains the channels until the process is done
func (s *OutputCaptureRunner) Collect() (stdout []byte, stderr []byte) {
	defer close(s.done)
	defer close(s.stdout)
	defer close(s.stderr)

	for {
		select {
		case <-s.done:
			return stdout, stderr
		case out := <-s.stdout:
			stdout = append(stdout, out...)
		case err := <-s.stderr:
			stderr = append(stderr, err...)
		}
	}
}
