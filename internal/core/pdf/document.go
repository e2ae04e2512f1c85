package pdf

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/slidelens/slidelens/internal/types"
)

// Extractor reads the text layer of a pdf, one slide per page.
type Extractor interface {
	Name() string
	ExtractSlides(ctx context.Context, path string) ([]types.Slide, error)
}

// NewSlides numbers page texts from 1 and counts their words.
func NewSlides(pages []string) []types.Slide {
	slides := make([]types.Slide, 0, len(pages))
	for i, text := range pages {
		slides = append(slides, types.Slide{
			Number:    i + 1,
			Text:      text,
			WordCount: len(strings.Fields(text)),
		})
	}
	return slides
}

// ExtractText concatenates the text of all pages.
func ExtractText(slides []types.Slide) string {
	var builder strings.Builder
	for _, slide := range slides {
		builder.WriteString(slide.Text)
		if !strings.HasSuffix(slide.Text, "\n") {
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

// FullText joins slides with "--- SLIDE N ---" markers, the input format of
// the llm analyzers.
func FullText(slides []types.Slide) string {
	parts := make([]string, 0, len(slides))
	for _, slide := range slides {
		parts = append(parts, fmt.Sprintf("--- SLIDE %d ---\n%s", slide.Number, strings.TrimSpace(slide.Text)))
	}
	return strings.Join(parts, "\n\n")
}

// Preview returns the first n runes of text.
func Preview(text string, n int) string {
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n])
}
