package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/slidelens/slidelens/internal/service"
	"github.com/slidelens/slidelens/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	options types.AnalysisOptions
}

func (f *fakeAnalyzer) Quick(ctx context.Context, upload service.Upload) (*types.QuickResult, error) {
	return &types.QuickResult{Filename: upload.Filename, TextPreview: "Первый слайд", CountSlides: 2}, nil
}

func (f *fakeAnalyzer) Full(ctx context.Context, upload service.Upload, options types.AnalysisOptions) (*types.Report, error) {
	f.options = options
	return &types.Report{
		ID:       "r1",
		Filename: upload.Filename,
		Summary:  types.PresentationSummary{PresentationScore: 6.5, OverallVerdict: "Хорошая основа"},
	}, nil
}

func samplePDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0600))
	return path
}

func TestRunAnalyzeQuickJSON(t *testing.T) {
	out := &bytes.Buffer{}
	err := runAnalyze(context.Background(), analyzeParams{
		stdout:   out,
		analyzer: &fakeAnalyzer{},
		path:     samplePDF(t),
		json:     true,
	})
	require.NoError(t, err)

	var result types.QuickResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "deck.pdf", result.Filename)
	assert.Equal(t, 2, result.CountSlides)
}

func TestRunAnalyzeFullMarkdown(t *testing.T) {
	out := &bytes.Buffer{}
	analyzer := &fakeAnalyzer{}
	err := runAnalyze(context.Background(), analyzeParams{
		stdout:   out,
		analyzer: analyzer,
		path:     samplePDF(t),
		full:     true,
		options:  types.AnalysisOptions{LLMModelID: 2},
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Хорошая основа")
	assert.Equal(t, 2, analyzer.options.LLMModelID)
}

func TestRunAnalyzeMissingFile(t *testing.T) {
	err := runAnalyze(context.Background(), analyzeParams{
		stdout:   &bytes.Buffer{},
		analyzer: &fakeAnalyzer{},
		path:     filepath.Join(t.TempDir(), "missing.pdf"),
	})
	assert.Error(t, err)
}

func TestModelsCommand(t *testing.T) {
	out := &bytes.Buffer{}
	root := NewRootCommand()
	root.SetOut(out)
	root.SetArgs([]string{"models"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "IlyaGusev/saiga_llama3_8b")
	assert.Contains(t, out.String(), "Qwen/Qwen2-VL-7B-Instruct")
}

func TestVersionCommand(t *testing.T) {
	out := &bytes.Buffer{}
	root := NewRootCommand()
	root.SetOut(out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "slidelens dev\n", out.String())
}

func TestAnalyzeRequiresFile(t *testing.T) {
	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"analyze"})
	assert.Error(t, root.Execute())
}
