package service

import (
	"context"
	"time"

	"github.com/slidelens/slidelens/internal/cache"
	"github.com/slidelens/slidelens/internal/core/analyzer"
	"github.com/slidelens/slidelens/internal/core/inference"
	"github.com/slidelens/slidelens/internal/core/ocr"
	"github.com/slidelens/slidelens/internal/core/pdf"
	"github.com/slidelens/slidelens/internal/core/runner"
	"github.com/slidelens/slidelens/internal/static"
	"github.com/slidelens/slidelens/internal/storage"
	"github.com/slidelens/slidelens/internal/types"
	"github.com/slidelens/slidelens/internal/utils/log"
)

// pdftotext output above this size is treated as a failure
const MAX_COMMAND_OUTPUT = 64 << 20

// Renderer rasterizes the pages of a pdf into dir.
type Renderer interface {
	Render(ctx context.Context, path string, dir string) ([]types.SlideImage, error)
}

type Settings struct {
	TempDir         string
	MaxUploadBytes  int64
	PreviewLength   int
	OCR             bool
	OCRLanguages    []string
	SlidesPerBlock  int
	CaptionWorkers  int
	CaptionMaxWidth int
	Defaults        types.AnalysisOptions
}

// Service runs the analysis pipeline: save upload, extract, render, analyze,
// summarize and persist.
type Service struct {
	Settings  Settings
	Extractor pdf.Extractor
	Renderer  Renderer
	OCR       ocr.Engine
	Chat      analyzer.ChatModel
	Captioner analyzer.CaptionModel
	Store     storage.Store
	Cache     cache.Cache

	temp runner.TempDirRunner
}

// New wires the service from the global configuration.
func New(ctx context.Context, config types.SlideLensGlobalConfigurations) (*Service, error) {
	command_runner := &runner.CommandRunner{
		Timeout:   time.Duration(config.WorkerTimeout) * time.Second,
		MaxOutput: MAX_COMMAND_OUTPUT,
	}
	if config.Sandbox.Enabled {
		command_runner.Jail = config.Sandbox.JailPath
	}

	var extractor pdf.Extractor
	switch config.PDF.Engine {
	case static.PDF_ENGINE_NATIVE:
		extractor = &pdf.NativeExtractor{}
	default:
		extractor = &pdf.PopplerExtractor{
			Runner:    command_runner,
			Pdftotext: config.PDF.PdftotextPath,
			Pdfinfo:   config.PDF.PdfinfoPath,
		}
	}

	client := inference.NewClient(inference.Options{
		Token:          config.Inference.Token,
		ChatURL:        config.Inference.ChatURL,
		ModelsURL:      config.Inference.ModelsURL,
		RequestsPerSec: config.Inference.RequestsPerSec,
		Burst:          config.Inference.Burst,
		Timeout:        time.Duration(config.Inference.Timeout) * time.Second,
	})
	if !client.Ready() {
		log.Warn("HUGGINGFACE_HUB_TOKEN is not set, analyzers will use fallbacks")
	}

	var store storage.Store = storage.NewMemoryStore()
	if config.Database.DSN != "" {
		postgres, err := storage.OpenPostgres(ctx, config.Database.DSN)
		if err != nil {
			return nil, err
		}
		store = postgres
		log.Info("report store: postgres")
	}

	var report_cache cache.Cache = cache.Noop{}
	if config.Redis.Addr != "" {
		redis_cache := cache.NewRedisCache(cache.RedisOptions{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
			TTL:      time.Duration(config.Redis.TTL) * time.Second,
		})
		if err := redis_cache.Ping(ctx); err != nil {
			log.Warn("redis %s unreachable, cache disabled: %v", config.Redis.Addr, err)
			redis_cache.Close()
		} else {
			report_cache = redis_cache
			log.Info("report cache: redis %s", config.Redis.Addr)
		}
	}

	return &Service{
		Settings: Settings{
			TempDir:         config.TempDir,
			MaxUploadBytes:  int64(config.PDF.MaxUploadMB) << 20,
			PreviewLength:   config.PDF.PreviewLength,
			OCR:             config.PDF.OCR,
			OCRLanguages:    config.PDF.OCRLanguages,
			SlidesPerBlock:  config.Analysis.SlidesPerBlock,
			CaptionWorkers:  config.Analysis.CaptionWorkers,
			CaptionMaxWidth: config.Analysis.CaptionMaxWidth,
			Defaults: types.AnalysisOptions{
				LLMModelID:  config.Analysis.LLMModelID,
				VLMModelID:  config.Analysis.VLMModelID,
				MaxTokens:   config.Analysis.MaxTokens,
				Temperature: config.Analysis.Temperature,
			},
		},
		Extractor: extractor,
		Renderer: &pdf.Renderer{
			Runner:   command_runner,
			Pdftoppm: config.PDF.PdftoppmPath,
			DPI:      config.PDF.DPI,
		},
		OCR:       ocr.NewEngine(),
		Chat:      client,
		Captioner: client,
		Store:     store,
		Cache:     report_cache,
	}, nil
}

func (s *Service) Close() error {
	if err := s.Cache.Close(); err != nil {
		log.Warn("close cache: %v", err)
	}
	return s.Store.Close()
}
