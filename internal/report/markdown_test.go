package report

import (
	"strings"
	"testing"

	"github.com/slidelens/slidelens/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *types.Report {
	return &types.Report{
		Filename:    "deck.pdf",
		CountSlides: 2,
		Slides: []types.SlideTextMetrics{
			{SlideNumber: 1, MainTopic: "Введение | обзор", WordCount: 12, ClarityScore: 8, OverallScore: 6.5},
			{SlideNumber: 2, MainTopic: "Итоги", WordCount: 3, ClarityScore: 4, OverallScore: 4.5},
		},
		Structure: types.StructureReport{
			MainTopic:       "ML",
			Weaknesses:      []types.SlideRef{{Slide: 2, Text: "мало текста"}, {Slides: []int{1, 2}, Text: "нет выводов"}},
			Recommendations: []types.SlideRef{{Text: "добавить <план>"}},
		},
		Visual: types.VisualReport{
			DesignStyle: "строгий",
			Slides:      []types.VisualSlideStats{{SlideNumber: 1, SlideType: "balanced"}},
		},
		Summary: types.PresentationSummary{
			PresentationScore: 5.5,
			OverallVerdict:    "Требует доработки",
			KeyStrengths:      []string{"Информативная подача"},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sample())

	assert.True(t, strings.HasPrefix(md, "# Отчёт: deck.pdf\n"))
	assert.Contains(t, md, "**Оценка:** 5.5 / 10")
	assert.Contains(t, md, "- Слайд 2: мало текста")
	assert.Contains(t, md, "- Слайды 1, 2: нет выводов")
	assert.Contains(t, md, "- добавить &lt;план&gt;")
	assert.Contains(t, md, "| 1 | Введение \\| обзор | 12 | 8 | 6.5 | balanced |")
	assert.Contains(t, md, "| 2 | Итоги | 3 | 4 | 4.5 | - |")
	assert.NotContains(t, md, "### Недочёты")
}

func TestHTML(t *testing.T) {
	html, err := HTML(sample())
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Отчёт: deck.pdf</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<li>Слайд 2: мало текста</li>")
	assert.NotContains(t, html, "<план>")
}
