//go:build !ocr

package ocr

import (
	"context"
	"errors"
	"testing"
)

func TestDefaultEngineIsUnavailable(t *testing.T) {
	engine := NewEngine()
	if engine.Available() {
		t.Fatal("default build must not report an ocr engine")
	}
	if _, err := engine.Recognize(context.Background(), []byte{}, nil); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
