package analyzer

import (
	"github.com/slidelens/slidelens/internal/types"
)

// DEFAULT_VISUAL_SCORE stands in for the per-slide visual score, slides are
// judged visually only as a whole deck.
const DEFAULT_VISUAL_SCORE = 5

// PresentationAnalyzer turns per-slide metrics into the final summary.
type PresentationAnalyzer struct{}

// ScoreSlides fills OverallScore of every slide.
func (a *PresentationAnalyzer) ScoreSlides(slides []types.SlideTextMetrics) {
	for i := range slides {
		slides[i].OverallScore = roundTo(float64(slides[i].ClarityScore+DEFAULT_VISUAL_SCORE)/2, 1)
	}
}

// Summarize aggregates scored slides. recommendations are candidates for the
// priority list, usually findings of the deck-level analyzers.
func (a *PresentationAnalyzer) Summarize(slides []types.SlideTextMetrics, recommendations []string) types.PresentationSummary {
	if len(slides) == 0 {
		return EmptySummary()
	}

	total := 0.0
	problems := []string{}
	for _, slide := range slides {
		total += slide.OverallScore
		problems = append(problems, slide.ProblemsDetected...)
	}
	avg := total / float64(len(slides))

	return types.PresentationSummary{
		PresentationScore:       roundTo(avg, 1),
		TotalSlidesAnalyzed:     len(slides),
		KeyStrengths:            keyStrengths(avg),
		CriticalIssues:          orDefault(uniqueLong(problems, 10, 4), "Серьезные проблемы не выявлены"),
		PriorityRecommendations: orDefault(uniqueLong(recommendations, 10, 4), "Продолжайте в том же духе"),
		TargetAudience:          targetAudience(avg),
		OverallVerdict:          verdict(avg),
	}
}

func keyStrengths(avg float64) []string {
	switch {
	case avg >= 7:
		return []string{"Хорошая структура", "Понятное изложение"}
	case avg >= 5:
		return []string{"Информативная подача", "Логичное построение"}
	default:
		return []string{"Потенциал для развития"}
	}
}

func targetAudience(avg float64) string {
	switch {
	case avg >= 8:
		return "Широкая аудитория"
	case avg >= 6:
		return "Общая аудитория"
	default:
		return "Требуется адаптация"
	}
}

func verdict(avg float64) string {
	switch {
	case avg >= 8:
		return "Отличная презентация"
	case avg >= 6:
		return "Хорошая основа"
	case avg >= 4:
		return "Требует доработки"
	default:
		return "Необходима переработка"
	}
}

func orDefault(items []string, fallback string) []string {
	if len(items) == 0 {
		return []string{fallback}
	}
	return items
}

func EmptySummary() types.PresentationSummary {
	return types.PresentationSummary{
		PresentationScore:       0,
		TotalSlidesAnalyzed:     0,
		KeyStrengths:            []string{"Данные отсутствуют"},
		CriticalIssues:          []string{"Анализ не выполнен"},
		PriorityRecommendations: []string{"Загрузите презентацию"},
		TargetAudience:          "Не определена",
		OverallVerdict:          "Анализ не выполнен",
	}
}
