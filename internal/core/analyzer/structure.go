package analyzer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/slidelens/slidelens/internal/core/inference"
	"github.com/slidelens/slidelens/internal/types"
	"github.com/slidelens/slidelens/internal/utils/log"
)

const structureInstruction = "Ты — эксперт по презентациям. Проанализируй структуру презентации (только текст и заголовки). " +
	"Текст содержит все слайды, разделённые '--- SLIDE N ---'.\n\n" +
	"Верни строго JSON с полями:\n" +
	"- strengths: сильные стороны структуры презентации\n" +
	"- weaknesses: слабые места (укажи номера слайдов с проблемами, например 'Слайд 2: ...')\n" +
	"- recommendations: рекомендации по улучшению структуры с номерами слайдов\n" +
	"Остальные поля: main_topic, goal, summary, structure_quality, clarity_score, style, " +
	"audience_level, quality_score, final_verdict.\n" +
	"Не анализируй содержание текста, не добавляй markdown или code-blocks.\n"

var structureKeys = []string{
	"main_topic", "goal", "summary", "strengths", "weaknesses", "recommendations",
	"structure_quality", "clarity_score", "style", "audience_level", "final_verdict",
}

// StructureAnalyzer asks the LLM about the structure of the deck block by
// block and merges the answers.
type StructureAnalyzer struct {
	Model          ChatModel
	ModelName      string
	MaxTokens      int
	Temperature    float64
	SlidesPerBlock int
}

func (a *StructureAnalyzer) Analyze(ctx context.Context, full_text string) types.StructureReport {
	text := NormalizeFullText(full_text)
	if !ready(a.Model) || text == "" {
		return StructureFallback()
	}

	blocks := MakeBlocks(SplitMarkedSlides(text), a.SlidesPerBlock)
	results := make([]types.StructureReport, 0, len(blocks))
	for i, block := range blocks {
		raw := callChat(ctx, "StructureAnalyzer", a.Model, inference.ChatRequest{
			Model:       a.ModelName,
			Messages:    []inference.Message{{Role: "user", Content: prompt(structureInstruction, block)}},
			MaxTokens:   a.MaxTokens,
			Temperature: a.Temperature,
			TopP:        0.9,
		})
		report, ok := ParseStructure(CleanResponse(raw))
		if !ok {
			log.Warn("[StructureAnalyzer] block %d: unparsable answer, using fallback", i+1)
			report = StructureFallback()
		}
		results = append(results, report)
	}

	combined := MergeStructure(results)
	combined.Weaknesses = AttachSlideNumbers(combined.Weaknesses, text)
	combined.Recommendations = AttachSlideNumbers(combined.Recommendations, text)
	return combined
}

// ParseStructure decodes one block answer. Either quality_score or
// overall_quality_score is accepted.
func ParseStructure(text string) (types.StructureReport, bool) {
	object, ok := ParseJSONObject(text)
	if !ok || !hasKeys(object, structureKeys...) {
		return types.StructureReport{}, false
	}
	quality, ok := object["quality_score"]
	if !ok {
		if quality, ok = object["overall_quality_score"]; !ok {
			return types.StructureReport{}, false
		}
	}

	return types.StructureReport{
		MainTopic:        rawString(object["main_topic"]),
		Goal:             rawString(object["goal"]),
		Summary:          rawString(object["summary"]),
		Strengths:        rawStrings(object["strengths"], 5),
		Weaknesses:       rawRefs(object["weaknesses"], 20),
		Recommendations:  rawRefs(object["recommendations"], 20),
		StructureQuality: rawString(object["structure_quality"]),
		ClarityScore:     rawInt(object["clarity_score"]),
		Style:            rawString(object["style"]),
		AudienceLevel:    rawString(object["audience_level"]),
		QualityScore:     rawInt(quality),
		FinalVerdict:     rawString(object["final_verdict"]),
	}, true
}

func rawRefs(raw json.RawMessage, limit int) []types.SlideRef {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		if s := rawString(raw); s != "" {
			items = []json.RawMessage{raw}
		}
	}

	refs := []types.SlideRef{}
	for _, item := range items {
		if len(refs) >= limit {
			break
		}
		var ref types.SlideRef
		if err := json.Unmarshal(item, &ref); err != nil {
			ref = types.SlideRef{Text: rawString(item)}
		}
		ref.Text = strings.TrimSpace(ref.Text)
		refs = append(refs, ref)
	}
	return refs
}

// MergeStructure folds block results into the first one: lists are extended,
// scores are averaged pairwise in block order.
func MergeStructure(results []types.StructureReport) types.StructureReport {
	if len(results) == 0 {
		return StructureFallback()
	}

	combined := results[0]
	for _, r := range results[1:] {
		combined.Strengths = append(combined.Strengths, r.Strengths...)
		combined.Weaknesses = append(combined.Weaknesses, r.Weaknesses...)
		combined.Recommendations = append(combined.Recommendations, r.Recommendations...)
		combined.ClarityScore = roundHalfEven(float64(combined.ClarityScore+r.ClarityScore) / 2)
		combined.QualityScore = roundHalfEven(float64(combined.QualityScore+r.QualityScore) / 2)
	}
	return combined
}

func StructureFallback() types.StructureReport {
	return types.StructureReport{
		MainTopic:        "Тема не определена",
		Goal:             "Цель не определена",
		Summary:          "Структурный анализ выполнен частично",
		Strengths:        []string{"Стандартная структура слайдов"},
		Weaknesses:       []types.SlideRef{{Slide: 1, Text: "Перегруженность текста"}},
		Recommendations:  []types.SlideRef{{Slide: 1, Text: "Уменьшить количество текста"}},
		StructureQuality: "средняя",
		ClarityScore:     5,
		Style:            "общий",
		AudienceLevel:    "общая",
		QualityScore:     5,
		FinalVerdict:     "Fallback",
	}
}
