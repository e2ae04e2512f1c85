package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/slidelens/slidelens/internal/cache"
	"github.com/slidelens/slidelens/internal/core/analyzer"
	"github.com/slidelens/slidelens/internal/core/pdf"
	"github.com/slidelens/slidelens/internal/metrics"
	"github.com/slidelens/slidelens/internal/static"
	"github.com/slidelens/slidelens/internal/types"
	"github.com/slidelens/slidelens/internal/utils/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	KIND_QUICK = "quick"
	KIND_FULL  = "full"
)

var tracer = otel.Tracer("github.com/slidelens/slidelens/internal/service")

// Upload is a presentation received from a client.
type Upload struct {
	Filename string
	Reader   io.Reader
}

// Quick extracts the text and counts the slides, nothing is sent to a model.
func (s *Service) Quick(ctx context.Context, upload Upload) (result *types.QuickResult, err error) {
	ctx, finish := s.track(ctx, KIND_QUICK, upload.Filename)
	defer func() { finish(err) }()

	err = s.temp.WithTempDir(s.Settings.TempDir, func(dir string) error {
		file, err := pdf.SaveUpload(upload.Reader, dir, s.Settings.MaxUploadBytes)
		if err != nil {
			return err
		}

		slides, err := s.Extractor.ExtractSlides(ctx, file.Path)
		if err != nil {
			return fmt.Errorf("extract text: %w", err)
		}
		images := s.render(ctx, file.Path, dir)
		metrics.SlidesPerAnalysis.Observe(float64(len(slides)))

		result = &types.QuickResult{
			Filename:    upload.Filename,
			TextPreview: pdf.Preview(pdf.ExtractText(slides), s.Settings.PreviewLength),
			CountSlides: len(images),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Full runs every analyzer. Reports are cached by file checksum and options
// and saved to the store.
func (s *Service) Full(ctx context.Context, upload Upload, options types.AnalysisOptions) (report *types.Report, err error) {
	options = s.resolveOptions(options)
	llm, err := static.LookupLLMModel(options.LLMModelID)
	if err != nil {
		return nil, err
	}
	vlm, err := static.LookupVLMModel(options.VLMModelID)
	if err != nil {
		return nil, err
	}

	ctx, finish := s.track(ctx, KIND_FULL, upload.Filename)
	defer func() { finish(err) }()
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("analysis.llm", llm.ModelName),
		attribute.String("analysis.vlm", vlm.ModelName),
	)

	err = s.temp.WithTempDir(s.Settings.TempDir, func(dir string) error {
		file, err := pdf.SaveUpload(upload.Reader, dir, s.Settings.MaxUploadBytes)
		if err != nil {
			return err
		}

		key := cache.Key(file.Checksum, options)
		if cached := s.cached(ctx, key); cached != nil {
			report = cached
			return nil
		}

		slides, err := s.Extractor.ExtractSlides(ctx, file.Path)
		if err != nil {
			return fmt.Errorf("extract text: %w", err)
		}
		images := s.render(ctx, file.Path, dir)
		s.recognizeEmptySlides(ctx, slides, images)
		metrics.SlidesPerAnalysis.Observe(float64(len(slides)))

		report = s.analyze(ctx, slides, images, options, llm, vlm)
		report.ID = uuid.NewString()
		report.Filename = upload.Filename
		report.Checksum = file.Checksum
		report.CreatedAt = time.Now().UTC()
		report.Options = options
		report.CountSlides = len(slides)
		report.TextPreview = pdf.Preview(pdf.ExtractText(slides), s.Settings.PreviewLength)

		if err := s.Store.Save(ctx, report); err != nil {
			log.Error("failed to save report %s: %v", report.ID, err)
		}
		if err := s.Cache.Set(ctx, key, report); err != nil {
			log.Warn("failed to cache report %s: %v", report.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Service) analyze(
	ctx context.Context,
	slides []types.Slide,
	images []types.SlideImage,
	options types.AnalysisOptions,
	llm types.ModelInfo,
	vlm types.ModelInfo,
) *types.Report {
	ctx, span := tracer.Start(ctx, "analyze.models")
	defer span.End()

	full_text := pdf.FullText(slides)
	report := &types.Report{}

	text_analyzer := analyzer.TextAnalyzer{}
	report.Slides = text_analyzer.Analyze(slides)

	structure_analyzer := analyzer.StructureAnalyzer{
		Model:          s.Chat,
		ModelName:      llm.ModelName,
		MaxTokens:      options.MaxTokens,
		Temperature:    options.Temperature,
		SlidesPerBlock: s.Settings.SlidesPerBlock,
	}
	content_analyzer := analyzer.ContentAnalyzer{
		Model:     s.Chat,
		ModelName: static.REASONING_MODEL,
	}
	visual_analyzer := analyzer.VisualAnalyzer{
		Captioner:    s.Captioner,
		CaptionModel: vlm.ModelName,
		Model:        s.Chat,
		ModelName:    static.REASONING_MODEL,
		Workers:      s.Settings.CaptionWorkers,
		MaxWidth:     s.Settings.CaptionMaxWidth,
	}

	group, group_ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		report.Structure = structure_analyzer.Analyze(group_ctx, full_text)
		return nil
	})
	group.Go(func() error {
		report.Content = content_analyzer.Analyze(group_ctx, full_text)
		return nil
	})
	group.Go(func() error {
		report.Visual = visual_analyzer.Analyze(group_ctx, images)
		return nil
	})
	group.Wait()

	presentation := analyzer.PresentationAnalyzer{}
	presentation.ScoreSlides(report.Slides)

	recommendations := []string{}
	for _, ref := range report.Structure.Recommendations {
		recommendations = append(recommendations, ref.Text)
	}
	recommendations = append(recommendations, report.Content.Recommendations...)
	report.Summary = presentation.Summarize(report.Slides, recommendations)

	return report
}

// render failures are logged, the analysis continues without images
func (s *Service) render(ctx context.Context, path string, dir string) []types.SlideImage {
	ctx, span := tracer.Start(ctx, "analyze.render")
	defer span.End()

	images, err := s.Renderer.Render(ctx, path, dir)
	if err != nil {
		log.Error("pdf to images failed: %v", err)
		span.RecordError(err)
		return []types.SlideImage{}
	}
	return images
}

func (s *Service) recognizeEmptySlides(ctx context.Context, slides []types.Slide, images []types.SlideImage) {
	if !s.Settings.OCR || s.OCR == nil || !s.OCR.Available() {
		return
	}

	paths := map[int]string{}
	for _, image := range images {
		paths[image.Number] = image.Path
	}

	for i := range slides {
		path, ok := paths[slides[i].Number]
		if !ok || strings.TrimSpace(slides[i].Text) != "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("ocr: read slide %d: %v", slides[i].Number, err)
			continue
		}
		text, err := s.OCR.Recognize(ctx, data, s.Settings.OCRLanguages)
		if err != nil {
			log.Warn("ocr: slide %d: %v", slides[i].Number, err)
			continue
		}
		slides[i].Text = text
		slides[i].WordCount = len(strings.Fields(text))
		slides[i].OCR = true
	}
}

func (s *Service) cached(ctx context.Context, key string) *types.Report {
	report, ok, err := s.Cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		log.Warn("cache lookup failed: %v", err)
		return nil
	case !ok:
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil
	default:
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return report
	}
}

func (s *Service) resolveOptions(options types.AnalysisOptions) types.AnalysisOptions {
	if options.LLMModelID == 0 {
		options.LLMModelID = s.Settings.Defaults.LLMModelID
	}
	if options.VLMModelID == 0 {
		options.VLMModelID = s.Settings.Defaults.VLMModelID
	}
	if options.MaxTokens <= 0 {
		options.MaxTokens = s.Settings.Defaults.MaxTokens
	}
	if options.Temperature < 0 {
		options.Temperature = s.Settings.Defaults.Temperature
	}
	return options
}

// track opens the analysis span and returns the callback recording the
// outcome in metrics and on the span.
func (s *Service) track(ctx context.Context, kind string, filename string) (context.Context, func(error)) {
	ctx, span := tracer.Start(ctx, "analyze."+kind)
	span.SetAttributes(attribute.String("analysis.filename", filename))

	start := time.Now()
	metrics.InflightAnalyses.WithLabelValues(kind).Inc()

	return ctx, func(err error) {
		metrics.InflightAnalyses.WithLabelValues(kind).Dec()
		result := "success"
		if err != nil {
			result = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if !isClientError(err) {
				log.Error("%s analysis of %s failed: %v", kind, filename, err)
			}
		}
		metrics.AnalysesTotal.WithLabelValues(kind, result).Inc()
		metrics.AnalysisDurationSeconds.WithLabelValues(kind, result).Observe(time.Since(start).Seconds())
		span.End()
	}
}

func isClientError(err error) bool {
	return errors.Is(err, pdf.ErrEmptyUpload) ||
		errors.Is(err, pdf.ErrNotPDF) ||
		errors.Is(err, pdf.ErrUploadTooLarge)
}
