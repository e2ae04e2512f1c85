package types

import (
	"encoding/json"
	"time"
)

// Slide is a single page of the uploaded presentation.
type Slide struct {
	Number    int    `json:"slide_number"`
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
	OCR       bool   `json:"ocr,omitempty"`
}

// SlideImage is a rasterized page on disk.
type SlideImage struct {
	Number int    `json:"slide_number"`
	Path   string `json:"path"`
}

// SlideRef is a finding optionally attributed to one or more slides.
type SlideRef struct {
	Slide  int    `json:"slide,omitempty"`
	Slides []int  `json:"slides,omitempty"`
	Text   string `json:"text"`
}

// UnmarshalJSON accepts either a plain string or an object with slide fields.
func (r *SlideRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = SlideRef{Text: s}
		return nil
	}
	type plain SlideRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = SlideRef(p)
	return nil
}

func (r SlideRef) Attributed() bool {
	return r.Slide > 0 || len(r.Slides) > 0
}

type SlideTextMetrics struct {
	SlideNumber      int      `json:"slide_number"`
	MainTopic        string   `json:"main_topic"`
	KeyPoints        []string `json:"key_points"`
	ClarityScore     int      `json:"clarity_score"`
	StructureQuality string   `json:"structure_quality"`
	ProblemsDetected []string `json:"problems_detected"`
	WordCount        int      `json:"word_count"`
	OverallScore     float64  `json:"overall_score"`
	AnalysisType     string   `json:"analysis_type"`
}

type VisualSlideStats struct {
	SlideNumber  int     `json:"slide_number"`
	Caption      string  `json:"caption"`
	TextDensity  float64 `json:"text_density"`
	TextCoverage float64 `json:"text_coverage"`
	SlideType    string  `json:"slide_type"`
}

type StructureReport struct {
	MainTopic        string     `json:"main_topic"`
	Goal             string     `json:"goal"`
	Summary          string     `json:"summary"`
	Strengths        []string   `json:"strengths"`
	Weaknesses       []SlideRef `json:"weaknesses"`
	Recommendations  []SlideRef `json:"recommendations"`
	StructureQuality string     `json:"structure_quality"`
	ClarityScore     int        `json:"clarity_score"`
	Style            string     `json:"style"`
	AudienceLevel    string     `json:"audience_level"`
	QualityScore     int        `json:"quality_score"`
	FinalVerdict     string     `json:"final_verdict"`
}

type ContentReport struct {
	MainTopic       string   `json:"main_topic"`
	Summary         string   `json:"summary"`
	KeyPoints       []string `json:"key_points"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

type VisualReport struct {
	Strengths       []string           `json:"strengths"`
	Weaknesses      []string           `json:"weaknesses"`
	Recommendations []string           `json:"recommendations"`
	DesignStyle     string             `json:"design_style"`
	QualityScore    int                `json:"quality_score"`
	FinalVerdict    string             `json:"final_verdict"`
	Slides          []VisualSlideStats `json:"slides"`
}

type PresentationSummary struct {
	PresentationScore       float64  `json:"presentation_score"`
	TotalSlidesAnalyzed     int      `json:"total_slides_analyzed"`
	KeyStrengths            []string `json:"key_strengths"`
	CriticalIssues          []string `json:"critical_issues"`
	PriorityRecommendations []string `json:"priority_recommendations"`
	TargetAudience          string   `json:"target_audience"`
	OverallVerdict          string   `json:"overall_verdict"`
}

// QuickResult is the payload of POST /api/analyze.
type QuickResult struct {
	Filename    string `json:"filename"`
	TextPreview string `json:"text_preview"`
	CountSlides int    `json:"count_slides"`
}

type AnalysisOptions struct {
	LLMModelID  int     `json:"llm_model_id"`
	VLMModelID  int     `json:"vlm_model_id"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type Report struct {
	ID          string              `json:"id"`
	Filename    string              `json:"filename"`
	Checksum    string              `json:"checksum"`
	CreatedAt   time.Time           `json:"created_at"`
	Options     AnalysisOptions     `json:"options"`
	CountSlides int                 `json:"count_slides"`
	TextPreview string              `json:"text_preview"`
	Slides      []SlideTextMetrics  `json:"slides"`
	Structure   StructureReport     `json:"structure"`
	Content     ContentReport       `json:"content"`
	Visual      VisualReport        `json:"visual"`
	Summary     PresentationSummary `json:"summary"`
}

type ModelInfo struct {
	ID        int    `json:"id" yaml:"id"`
	ModelName string `json:"model_name" yaml:"model_name"`
	DevLevel  string `json:"dev_level" yaml:"dev_level"`
}

// ReportSummary is the listing view of a stored report.
type ReportSummary struct {
	ID                string    `json:"id" db:"id"`
	Filename          string    `json:"filename" db:"filename"`
	CountSlides       int       `json:"count_slides" db:"count_slides"`
	PresentationScore float64   `json:"presentation_score" db:"presentation_score"`
	OverallVerdict    string    `json:"overall_verdict" db:"overall_verdict"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

func (r *Report) ToSummary() ReportSummary {
	return ReportSummary{
		ID:                r.ID,
		Filename:          r.Filename,
		CountSlides:       r.CountSlides,
		PresentationScore: r.Summary.PresentationScore,
		OverallVerdict:    r.Summary.OverallVerdict,
		CreatedAt:         r.CreatedAt,
	}
}
