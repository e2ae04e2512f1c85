package service

import (
	"context"

	"github.com/slidelens/slidelens/internal/static"
	"github.com/slidelens/slidelens/internal/types"
)

type ModelsResponse struct {
	LLM []types.ModelInfo `json:"llm"`
	VLM []types.ModelInfo `json:"vlm"`
}

func (s *Service) Report(ctx context.Context, id string) (*types.Report, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) Reports(ctx context.Context, limit int) ([]types.ReportSummary, error) {
	return s.Store.List(ctx, limit)
}

func Models() *ModelsResponse {
	return &ModelsResponse{
		LLM: static.GetLLMModels(),
		VLM: static.GetVLMModels(),
	}
}
