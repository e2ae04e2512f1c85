// Package ocr recognizes text on rendered slides that have no text layer.
//
// The tesseract engine needs libtesseract at build time and is only compiled
// with the "ocr" build tag; the default build ships the no-op engine.
package ocr

import (
	"context"
	"errors"
)

var ErrUnavailable = errors.New("ocr engine not available in this build")

type Engine interface {
	Name() string
	Available() bool
	Recognize(ctx context.Context, image []byte, languages []string) (string, error)
}
