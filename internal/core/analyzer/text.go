package analyzer

import (
	"strings"
	"unicode/utf8"

	"github.com/slidelens/slidelens/internal/types"
)

const (
	TEXT_MAX_RUNES       = 1200
	TEXT_WORDS_OVERLOAD  = 80
	ANALYSIS_TYPE_RULES  = "rule_based"
	MAIN_TOPIC_MAX_RUNES = 140
)

// TextAnalyzer scores every slide with readability rules, no model involved.
type TextAnalyzer struct{}

func (a *TextAnalyzer) Analyze(slides []types.Slide) []types.SlideTextMetrics {
	metrics := make([]types.SlideTextMetrics, 0, len(slides))
	for _, slide := range slides {
		metrics = append(metrics, a.AnalyzeSlide(slide))
	}
	return metrics
}

func (a *TextAnalyzer) AnalyzeSlide(slide types.Slide) types.SlideTextMetrics {
	clean := CleanSlideText(slide.Text)
	clarity := ClarityScore(clean)
	return types.SlideTextMetrics{
		SlideNumber:      slide.Number,
		MainTopic:        MainTopic(clean),
		KeyPoints:        KeyPoints(clean),
		ClarityScore:     clarity,
		StructureQuality: StructureQuality(clean),
		ProblemsDetected: slideProblems(clean, slide.WordCount, clarity),
		WordCount:        slide.WordCount,
		AnalysisType:     ANALYSIS_TYPE_RULES,
	}
}

func CleanSlideText(text string) string {
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	return truncateRunes(text, TEXT_MAX_RUNES)
}

func MainTopic(text string) string {
	sentences := Sentences(text)
	if len(sentences) == 0 {
		return "Тема не определена"
	}
	first := sentences[0]
	if utf8.RuneCountInString(first) <= MAIN_TOPIC_MAX_RUNES {
		return first
	}
	return truncateRunes(first, MAIN_TOPIC_MAX_RUNES-3) + "..."
}

func KeyPoints(text string) []string {
	points := []string{}
	for _, sentence := range Sentences(text) {
		if utf8.RuneCountInString(sentence) > 10 {
			points = append(points, sentence)
		}
		if len(points) == 3 {
			break
		}
	}
	if len(points) == 0 {
		return []string{"Ключевые пункты не определены"}
	}
	return points
}

// ClarityScore rates the average sentence length in words.
func ClarityScore(text string) int {
	sentences := Sentences(text)
	if len(sentences) == 0 {
		return 3
	}
	avg := float64(len(strings.Fields(text))) / float64(len(sentences))
	switch {
	case avg >= 10 && avg <= 25:
		return 8
	case avg >= 5 && avg < 10, avg > 25 && avg <= 40:
		return 6
	default:
		return 4
	}
}

func StructureQuality(text string) string {
	switch n := len(Sentences(text)); {
	case n >= 4:
		return "хорошая"
	case n >= 2:
		return "средняя"
	default:
		return "слабая"
	}
}

func slideProblems(clean string, word_count int, clarity int) []string {
	if clean == "" {
		return []string{"Слайд не содержит текста"}
	}
	problems := []string{}
	if word_count > TEXT_WORDS_OVERLOAD {
		problems = append(problems, "Слишком много текста на слайде")
	}
	if clarity <= 4 {
		problems = append(problems, "Предложения слишком короткие или слишком длинные")
	}
	return problems
}
