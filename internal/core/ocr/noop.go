//go:build !ocr

package ocr

import "context"

type noopEngine struct{}

func NewEngine() Engine { return noopEngine{} }

func (noopEngine) Name() string    { return "none" }
func (noopEngine) Available() bool { return false }

func (noopEngine) Recognize(context.Context, []byte, []string) (string, error) {
	return "", ErrUnavailable
}
