package analyzer

import (
	"context"
	"regexp"
	"strings"

	"github.com/slidelens/slidelens/internal/core/inference"
	"github.com/slidelens/slidelens/internal/types"
)

const contentInstruction = "Ты — преподаватель и эксперт по обучающим презентациям. " +
	"Проанализируй текст всей презентации, разделённый слайдами '--- SLIDE N ---'.\n" +
	"Верни строго JSON со следующей схемой:\n" +
	"{\n" +
	"  \"main_topic\": string,  # основная тема презентации\n" +
	"  \"summary\": string,     # краткая выжимка содержания\n" +
	"  \"key_points\": [string,...],  # ключевые моменты\n" +
	"  \"weaknesses\": [string,...],  # недочёты и ошибки содержания, с указанием слайдов\n" +
	"  \"recommendations\": [string,...] # советы, как улучшить содержание\n" +
	"}\n" +
	"Не добавляй markdown, code-blocks или лишние поля."

const (
	CONTENT_MAX_TOKENS = 800
	CONTENT_LIST_LIMIT = 6
)

var (
	lineBreaks = regexp.MustCompile(`[\n\r]+`)

	keyPointMarkers       = []string{"ключ", "основн"}
	weaknessMarkers       = []string{"слаб", "недостат"}
	recommendationMarkers = []string{"рекоменд", "совет", "предлож"}
)

// ContentAnalyzer reviews what the deck says, as a lecturer would for a
// student presentation.
type ContentAnalyzer struct {
	Model     ChatModel
	ModelName string
}

func (a *ContentAnalyzer) Analyze(ctx context.Context, full_text string) types.ContentReport {
	text := NormalizeFullText(full_text)
	if !ready(a.Model) {
		return ContentFallback(text)
	}

	raw := callChat(ctx, "ContentAnalyzer", a.Model, inference.ChatRequest{
		Model:       a.ModelName,
		Messages:    []inference.Message{{Role: "user", Content: prompt(contentInstruction, text)}},
		MaxTokens:   CONTENT_MAX_TOKENS,
		Temperature: 0,
		TopP:        0.9,
	})
	if report, ok := ParseContent(CleanResponse(raw)); ok {
		return report
	}
	return ContentFallbackFromAnswer(raw, text)
}

func ParseContent(text string) (types.ContentReport, bool) {
	object, ok := ParseJSONObject(text)
	if !ok || !hasKeys(object, "main_topic", "summary", "key_points", "weaknesses", "recommendations") {
		return types.ContentReport{}, false
	}
	return types.ContentReport{
		MainTopic:       rawString(object["main_topic"]),
		Summary:         rawString(object["summary"]),
		KeyPoints:       rawStrings(object["key_points"], CONTENT_LIST_LIMIT),
		Weaknesses:      rawStrings(object["weaknesses"], CONTENT_LIST_LIMIT),
		Recommendations: rawStrings(object["recommendations"], CONTENT_LIST_LIMIT),
	}, true
}

// ContentFallbackFromAnswer salvages a free-form answer by picking lines that
// mention key points, weaknesses or recommendations.
func ContentFallbackFromAnswer(answer string, original string) types.ContentReport {
	key_points := []string{}
	weaknesses := []string{}
	recommendations := []string{}

	for _, line := range lineBreaks.Split(answer, -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		low := strings.ToLower(line)
		if containsAny(low, keyPointMarkers) {
			key_points = append(key_points, line)
		}
		if containsAny(low, weaknessMarkers) {
			weaknesses = append(weaknesses, line)
		}
		if containsAny(low, recommendationMarkers) {
			recommendations = append(recommendations, line)
		}
	}

	summary := truncateRunes(CleanResponse(answer), 400)
	if summary == "" {
		summary = truncateRunes(original, 400)
	}

	return types.ContentReport{
		MainTopic:       "Тема не определена",
		Summary:         summary,
		KeyPoints:       firstOr(key_points, 5, "Ключевые моменты не определены"),
		Weaknesses:      firstOr(weaknesses, 5, "Недочёты не определены"),
		Recommendations: firstOr(recommendations, 5, "Рекомендации не определены"),
	}
}

// ContentFallback summarizes the deck from its first sentences.
func ContentFallback(text string) types.ContentReport {
	sentences := Sentences(text)
	report := types.ContentReport{
		MainTopic:       "Тема не определена",
		Summary:         "Содержимое отсутствует",
		KeyPoints:       firstOr(sentences, 5, "Ключевые моменты не определены"),
		Weaknesses:      []string{"Недочёты не определены"},
		Recommendations: []string{"Рекомендации не определены"},
	}
	if len(sentences) > 0 {
		report.MainTopic = sentences[0]
		report.Summary = strings.Join(report.KeyPoints, " ")
	}
	return report
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

func firstOr(items []string, n int, fallback string) []string {
	if len(items) == 0 {
		return []string{fallback}
	}
	if len(items) > n {
		items = items[:n]
	}
	return append([]string{}, items...)
}
