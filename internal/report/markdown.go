package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/slidelens/slidelens/internal/types"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var renderer = goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))

// Markdown renders a report for humans: summary first, then the structural,
// content and visual findings and the per-slide table.
func Markdown(report *types.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title(report))
	summary := report.Summary
	fmt.Fprintf(&b, "**Оценка:** %.1f / 10  \n", summary.PresentationScore)
	fmt.Fprintf(&b, "**Слайдов:** %d  \n", report.CountSlides)
	fmt.Fprintf(&b, "**Вердикт:** %s  \n", summary.OverallVerdict)
	fmt.Fprintf(&b, "**Аудитория:** %s\n\n", summary.TargetAudience)

	list(&b, "Сильные стороны", summary.KeyStrengths)
	list(&b, "Критические проблемы", summary.CriticalIssues)
	list(&b, "Приоритетные рекомендации", summary.PriorityRecommendations)

	structure := report.Structure
	b.WriteString("## Структура\n\n")
	if structure.MainTopic != "" {
		fmt.Fprintf(&b, "**Тема:** %s  \n", structure.MainTopic)
	}
	if structure.Goal != "" {
		fmt.Fprintf(&b, "**Цель:** %s  \n", structure.Goal)
	}
	fmt.Fprintf(&b, "**Ясность:** %d, **качество:** %d, **стиль:** %s\n\n",
		structure.ClarityScore, structure.QualityScore, structure.Style)
	if structure.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", structure.Summary)
	}
	list(&b, "Сильные стороны структуры", structure.Strengths)
	list(&b, "Слабые места", refs(structure.Weaknesses))
	list(&b, "Рекомендации по структуре", refs(structure.Recommendations))

	content := report.Content
	b.WriteString("## Содержание\n\n")
	if content.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", content.Summary)
	}
	list(&b, "Ключевые моменты", content.KeyPoints)
	list(&b, "Недочёты", content.Weaknesses)
	list(&b, "Рекомендации по содержанию", content.Recommendations)

	visual := report.Visual
	b.WriteString("## Оформление\n\n")
	fmt.Fprintf(&b, "**Стиль:** %s, **оценка:** %d\n\n", visual.DesignStyle, visual.QualityScore)
	list(&b, "Сильные стороны оформления", visual.Strengths)
	list(&b, "Слабые места оформления", visual.Weaknesses)
	list(&b, "Рекомендации по оформлению", visual.Recommendations)

	if len(report.Slides) > 0 {
		slidesTable(&b, report)
	}
	return b.String()
}

// HTML renders the markdown report into an html fragment.
func HTML(report *types.Report) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(Markdown(report)), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

func title(report *types.Report) string {
	if report.Filename == "" {
		return "Отчёт по презентации"
	}
	return "Отчёт: " + escape(report.Filename)
}

func list(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", escape(item))
	}
	b.WriteString("\n")
}

func refs(items []types.SlideRef) []string {
	result := make([]string, 0, len(items))
	for _, ref := range items {
		switch {
		case ref.Slide > 0:
			result = append(result, fmt.Sprintf("Слайд %d: %s", ref.Slide, ref.Text))
		case len(ref.Slides) > 0:
			numbers := make([]string, 0, len(ref.Slides))
			for _, n := range ref.Slides {
				numbers = append(numbers, fmt.Sprint(n))
			}
			result = append(result, fmt.Sprintf("Слайды %s: %s", strings.Join(numbers, ", "), ref.Text))
		default:
			result = append(result, ref.Text)
		}
	}
	return result
}

func slidesTable(b *strings.Builder, report *types.Report) {
	visual := map[int]types.VisualSlideStats{}
	for _, stats := range report.Visual.Slides {
		visual[stats.SlideNumber] = stats
	}

	b.WriteString("## Слайды\n\n")
	b.WriteString("| № | Тема | Слов | Ясность | Оценка | Тип |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, slide := range report.Slides {
		slide_type := visual[slide.SlideNumber].SlideType
		if slide_type == "" {
			slide_type = "-"
		}
		fmt.Fprintf(b, "| %d | %s | %d | %d | %.1f | %s |\n",
			slide.SlideNumber, cell(slide.MainTopic), slide.WordCount,
			slide.ClarityScore, slide.OverallScore, slide_type)
	}
	b.WriteString("\n")
}

var markdownEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return markdownEscaper.Replace(strings.TrimSpace(s))
}

func cell(s string) string {
	return strings.ReplaceAll(escape(s), "|", "\\|")
}
