package analyzer

import (
	"context"

	"github.com/slidelens/slidelens/internal/core/inference"
	"github.com/slidelens/slidelens/internal/utils/log"
)

// ChatModel is the part of the inference client the text analyzers use.
type ChatModel interface {
	Ready() bool
	ChatCompletion(ctx context.Context, request inference.ChatRequest) (string, error)
}

// CaptionModel captions rendered slides.
type CaptionModel interface {
	Ready() bool
	ImageToText(ctx context.Context, model string, image []byte) (string, error)
}

func ready(model ChatModel) bool {
	return model != nil && model.Ready()
}

// callChat returns the cleaned answer, failures are logged and yield ""
func callChat(ctx context.Context, name string, model ChatModel, request inference.ChatRequest) string {
	if !ready(model) {
		return ""
	}
	text, err := model.ChatCompletion(ctx, request)
	if err != nil {
		log.Warn("[%s] llm call error: %v", name, err)
		return ""
	}
	return text
}
