package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/slidelens/slidelens/internal/core/inference"
	"github.com/slidelens/slidelens/internal/types"
	"github.com/slidelens/slidelens/internal/utils/log"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

const (
	DARK_LUMA_THRESHOLD  = 70
	COVERAGE_FACTOR      = 1.8
	TEXT_HEAVY_COVERAGE  = 0.35
	IMAGE_HEAVY_COVERAGE = 0.08

	SLIDE_TYPE_TEXT_HEAVY  = "text_heavy"
	SLIDE_TYPE_IMAGE_HEAVY = "image_heavy"
	SLIDE_TYPE_BALANCED    = "balanced"

	VISUAL_MAX_TOKENS = 1500
)

const visualSystemPrompt = "Ты — эксперт по визуальному анализу презентаций. Всегда отвечай на русском языке. Формат ответа — строго JSON."

var visualExample = map[string]interface{}{
	"strengths":       []string{"Сильная композиция на слайде 1"},
	"weaknesses":      []string{"Слайды 2, 5: слишком много текста"},
	"recommendations": []string{"Уменьшить текст на слайдах 2 и 5"},
	"design_style":    "Профессиональный, современный",
	"quality_score":   80,
	"final_verdict":   "Презентация в целом хороша, есть мелкие недочёты",
}

// VisualAnalyzer measures how much of every rendered slide is covered by
// dark pixels, captions the slides with a VLM and lets the LLM judge the
// design from these numbers.
type VisualAnalyzer struct {
	Captioner    CaptionModel
	CaptionModel string
	Model        ChatModel
	ModelName    string
	Workers      int
	MaxWidth     int
}

func (a *VisualAnalyzer) Analyze(ctx context.Context, images []types.SlideImage) types.VisualReport {
	stats := a.SlideStats(ctx, images)

	report := VisualFallback()
	if ready(a.Model) && len(stats) > 0 {
		raw := callChat(ctx, "VisualAnalyzer", a.Model, inference.ChatRequest{
			Model: a.ModelName,
			Messages: []inference.Message{
				{Role: "system", Content: visualSystemPrompt},
				{Role: "user", Content: visualPrompt(stats)},
			},
			MaxTokens:   VISUAL_MAX_TOKENS,
			Temperature: 0,
		})
		if parsed, ok := ParseVisual(raw); ok {
			report = parsed
		} else {
			log.Warn("[VisualAnalyzer] unparsable verdict, using fallback")
		}
	}
	report.Slides = stats
	return report
}

// SlideStats computes density and type of every slide and captions it when a
// caption model is available.
func (a *VisualAnalyzer) SlideStats(ctx context.Context, images []types.SlideImage) []types.VisualSlideStats {
	stats := make([]types.VisualSlideStats, len(images))

	workers := a.Workers
	if workers <= 0 {
		workers = 1
	}
	group, group_ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, slide := range images {
		i, slide := i, slide
		group.Go(func() error {
			stats[i] = a.slideStats(group_ctx, slide)
			return nil
		})
	}
	group.Wait()

	return stats
}

func (a *VisualAnalyzer) slideStats(ctx context.Context, slide types.SlideImage) types.VisualSlideStats {
	result := types.VisualSlideStats{SlideNumber: slide.Number}

	img, err := loadPNG(slide.Path)
	if err != nil {
		log.Warn("[VisualAnalyzer] slide %d: %v", slide.Number, err)
		result.SlideType = SlideType(0)
		return result
	}

	density, coverage := TextDensity(img)
	result.TextDensity = density
	result.TextCoverage = coverage
	result.SlideType = SlideType(coverage)

	if a.Captioner != nil && a.Captioner.Ready() {
		result.Caption = a.caption(ctx, slide.Number, img)
	}
	return result
}

func (a *VisualAnalyzer) caption(ctx context.Context, number int, img image.Image) string {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Downscale(img, a.MaxWidth)); err != nil {
		log.Warn("[VisualAnalyzer] slide %d: encode: %v", number, err)
		return ""
	}
	caption, err := a.Captioner.ImageToText(ctx, a.CaptionModel, buf.Bytes())
	if err != nil {
		log.Warn("[VisualAnalyzer] slide %d: caption: %v", number, err)
		return ""
	}
	return caption
}

func loadPNG(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// TextDensity returns the share of dark pixels and the estimated text
// coverage, both rounded to 4 places.
func TextDensity(img image.Image) (density float64, coverage float64) {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0, 0
	}

	dark := 0
	switch m := img.(type) {
	case *image.Gray:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := m.Pix[(y-bounds.Min.Y)*m.Stride:]
			for x := 0; x < bounds.Dx(); x++ {
				if row[x] < DARK_LUMA_THRESHOLD {
					dark++
				}
			}
		}
	case *image.RGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := m.Pix[(y-bounds.Min.Y)*m.Stride:]
			for x := 0; x < bounds.Dx(); x++ {
				p := row[x*4 : x*4+3]
				if luma(uint32(p[0]), uint32(p[1]), uint32(p[2])) < DARK_LUMA_THRESHOLD {
					dark++
				}
			}
		}
	default:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y < DARK_LUMA_THRESHOLD {
					dark++
				}
			}
		}
	}

	raw_density := float64(dark) / float64(total)
	raw_coverage := raw_density * COVERAGE_FACTOR
	if raw_coverage > 1 {
		raw_coverage = 1
	}
	return roundTo(raw_density, 4), roundTo(raw_coverage, 4)
}

// ITU-R 601-2 luma on 8 bit channels
func luma(r, g, b uint32) uint8 {
	return uint8((r*299 + g*587 + b*114 + 500) / 1000)
}

func SlideType(coverage float64) string {
	switch {
	case coverage > TEXT_HEAVY_COVERAGE:
		return SLIDE_TYPE_TEXT_HEAVY
	case coverage < IMAGE_HEAVY_COVERAGE:
		return SLIDE_TYPE_IMAGE_HEAVY
	default:
		return SLIDE_TYPE_BALANCED
	}
}

// Downscale keeps the aspect ratio and limits the width to max_width.
func Downscale(img image.Image, max_width int) image.Image {
	bounds := img.Bounds()
	if max_width <= 0 || bounds.Dx() <= max_width {
		return img
	}
	height := bounds.Dy() * max_width / bounds.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, max_width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

func visualPrompt(stats []types.VisualSlideStats) string {
	slides, _ := json.Marshal(stats)
	example, _ := json.Marshal(visualExample)
	return "Ты — эксперт по дизайну презентаций.\n" +
		"Анализируй только визуальные характеристики слайдов (не текст и не смысл).\n" +
		"Всегда возвращай ответ в формате JSON, ключи оставляй английскими, " +
		"а текст внутри всех полей — строго на русском языке.\n\n" +
		"Данные по слайдам:\n" +
		string(slides) + "\n\n" +
		"Пример правильного JSON-ответа:\n" +
		string(example) + "\n\n" +
		"Укажи в recommendations и weaknesses конкретные номера слайдов с проблемами."
}

// ParseVisual accepts any JSON object, missing fields keep neutral values.
func ParseVisual(text string) (types.VisualReport, bool) {
	object, ok := ParseJSONObject(text)
	if !ok {
		return types.VisualReport{}, false
	}

	report := types.VisualReport{
		Strengths:       rawStrings(object["strengths"], 0),
		Weaknesses:      rawStrings(object["weaknesses"], 0),
		Recommendations: rawStrings(object["recommendations"], 0),
		DesignStyle:     rawString(object["design_style"]),
		QualityScore:    5,
		FinalVerdict:    rawString(object["final_verdict"]),
	}
	if _, ok := object["quality_score"]; ok {
		report.QualityScore = rawInt(object["quality_score"])
	}
	return report, true
}

func VisualFallback() types.VisualReport {
	return types.VisualReport{
		Strengths:       []string{"Невозможно выполнить анализ"},
		Weaknesses:      []string{"Технический сбой"},
		Recommendations: []string{"Попробуйте позже"},
		DesignStyle:     "неопределён",
		QualityScore:    5,
		FinalVerdict:    "Fallback",
		Slides:          []types.VisualSlideStats{},
	}
}
