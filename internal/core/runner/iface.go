package runner

import "context"

type Runner interface {
	// Run runs the binary and returns its stdout
	Run(ctx context.Context, binary string, args ...string) ([]byte, error)
}
