package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/slidelens/slidelens/internal/cache"
	"github.com/slidelens/slidelens/internal/core/pdf"
	"github.com/slidelens/slidelens/internal/static"
	"github.com/slidelens/slidelens/internal/storage"
	"github.com/slidelens/slidelens/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	mu    sync.Mutex
	calls int
	pages []string
}

func (f *fakeExtractor) Name() string { return "fake" }

func (f *fakeExtractor) ExtractSlides(ctx context.Context, path string) ([]types.Slide, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return pdf.NewSlides(f.pages), nil
}

type fakeRenderer struct {
	pages int
}

func (f *fakeRenderer) Render(ctx context.Context, path string, dir string) ([]types.SlideImage, error) {
	images := []types.SlideImage{}
	for i := 1; i <= f.pages; i++ {
		img := image.NewGray(image.Rect(0, 0, 8, 8))
		for p := range img.Pix {
			img.Pix[p] = 255
		}
		img.SetGray(0, 0, color.Gray{Y: 0})

		path := filepath.Join(dir, "slide-"+strconv.Itoa(i)+".png")
		file, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		if err := png.Encode(file, img); err != nil {
			file.Close()
			return nil, err
		}
		file.Close()
		images = append(images, types.SlideImage{Number: i, Path: path})
	}
	return images, nil
}

type mapCache struct {
	mu      sync.Mutex
	reports map[string]*types.Report
}

func (c *mapCache) Get(ctx context.Context, key string) (*types.Report, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	report, ok := c.reports[key]
	return report, ok, nil
}

func (c *mapCache) Set(ctx context.Context, key string, report *types.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports[key] = report
	return nil
}

func (c *mapCache) Close() error { return nil }

type fakeOCR struct{}

func (fakeOCR) Name() string    { return "fake" }
func (fakeOCR) Available() bool { return true }
func (fakeOCR) Recognize(ctx context.Context, image []byte, languages []string) (string, error) {
	return "распознанный текст слайда", nil
}

var pages = []string{
	"Машинное обучение. Введение в курс для студентов первого года.",
	"Линейная регрессия. Метод наименьших квадратов и его свойства.",
	"",
}

func newService(t *testing.T) (*Service, *fakeExtractor) {
	t.Helper()
	extractor := &fakeExtractor{pages: pages}
	return &Service{
		Settings: Settings{
			TempDir:         t.TempDir(),
			MaxUploadBytes:  1 << 20,
			PreviewLength:   20,
			SlidesPerBlock:  5,
			CaptionWorkers:  2,
			CaptionMaxWidth: 64,
			Defaults:        types.AnalysisOptions{LLMModelID: 1, VLMModelID: 1, MaxTokens: 2000},
		},
		Extractor: extractor,
		Renderer:  &fakeRenderer{pages: len(pages)},
		Store:     storage.NewMemoryStore(),
		Cache:     &mapCache{reports: map[string]*types.Report{}},
	}, extractor
}

func upload(content string) Upload {
	return Upload{Filename: "deck.pdf", Reader: bytes.NewBufferString(content)}
}

func TestQuick(t *testing.T) {
	s, _ := newService(t)

	result, err := s.Quick(context.Background(), upload("%PDF-1.4 fake"))
	require.NoError(t, err)
	assert.Equal(t, "deck.pdf", result.Filename)
	assert.Equal(t, 3, result.CountSlides)
	assert.Equal(t, []rune(pages[0])[:20], []rune(result.TextPreview))
}

func TestQuickRejectsUploads(t *testing.T) {
	s, _ := newService(t)

	_, err := s.Quick(context.Background(), upload(""))
	assert.ErrorIs(t, err, pdf.ErrEmptyUpload)

	_, err = s.Quick(context.Background(), upload("hello"))
	assert.ErrorIs(t, err, pdf.ErrNotPDF)

	entries, err := os.ReadDir(filepath.Join(s.Settings.TempDir, "tmp"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFullWithoutModels(t *testing.T) {
	s, extractor := newService(t)
	ctx := context.Background()

	report, err := s.Full(ctx, upload("%PDF-1.4 fake"), types.AnalysisOptions{Temperature: -1})
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, 3, report.CountSlides)
	assert.Len(t, report.Slides, 3)
	assert.Equal(t, "Fallback", report.Structure.FinalVerdict)
	assert.Contains(t, report.Content.MainTopic, "Машинное обучение")
	assert.Len(t, report.Visual.Slides, 3)
	assert.Equal(t, 3, report.Summary.TotalSlidesAnalyzed)
	assert.Contains(t, report.Summary.CriticalIssues, "Слайд не содержит текста")
	assert.Equal(t, 2000, report.Options.MaxTokens)
	assert.Equal(t, 1, extractor.calls)

	stored, err := s.Report(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.Checksum, stored.Checksum)

	list, err := s.Reports(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	again, err := s.Full(ctx, upload("%PDF-1.4 fake"), types.AnalysisOptions{Temperature: -1})
	require.NoError(t, err)
	assert.Equal(t, report.ID, again.ID)
	assert.Equal(t, 1, extractor.calls)
}

func TestFullOCR(t *testing.T) {
	s, _ := newService(t)
	s.Settings.OCR = true
	s.OCR = fakeOCR{}

	report, err := s.Full(context.Background(), upload("%PDF-1.4 fake"), types.AnalysisOptions{})
	require.NoError(t, err)
	assert.Equal(t, "распознанный текст слайда", report.Slides[2].MainTopic)
}

func TestFullUnknownModel(t *testing.T) {
	s, _ := newService(t)

	_, err := s.Full(context.Background(), upload("%PDF-1.4 fake"), types.AnalysisOptions{LLMModelID: 42})
	assert.ErrorIs(t, err, static.ErrUnknownModel)
}

func TestReportNotFound(t *testing.T) {
	s, _ := newService(t)
	_, err := s.Report(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrReportNotFound)
}

func TestModels(t *testing.T) {
	models := Models()
	assert.Len(t, models.LLM, 2)
	assert.Len(t, models.VLM, 3)
}

var _ cache.Cache = (*mapCache)(nil)
