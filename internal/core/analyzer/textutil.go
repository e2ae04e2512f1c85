package analyzer

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/jsonc"
	"golang.org/x/text/unicode/norm"
)

var (
	codeFence     = regexp.MustCompile("```(?:json)?\\s*")
	controlChars  = regexp.MustCompile(`[\x00-\x1f]+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	sentenceBreak = regexp.MustCompile(`[.!?]`)
	wordPattern   = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// NormalizeFullText unifies line endings and unicode composition.
func NormalizeFullText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimSpace(norm.NFC.String(text))
}

// CleanResponse collapses control characters and whitespace of a model answer.
func CleanResponse(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = controlChars.ReplaceAllString(text, " ")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// ParseJSONObject strips code fences, tolerates comments and trailing commas
// and decodes a JSON object. ok is false for anything else.
func ParseJSONObject(text string) (map[string]json.RawMessage, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}
	cleaned := codeFence.ReplaceAllString(text, "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var object map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON([]byte(cleaned)), &object); err != nil {
		return nil, false
	}
	return object, object != nil
}

func hasKeys(object map[string]json.RawMessage, keys ...string) bool {
	for _, key := range keys {
		if _, ok := object[key]; !ok {
			return false
		}
	}
	return true
}

// rawString renders any JSON value as text, strings are unquoted
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		return number.String()
	}
	if string(raw) == "null" {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// rawInt accepts numbers and numeric strings, anything else is 0
func rawInt(raw json.RawMessage) int {
	value, err := strconv.ParseFloat(rawString(raw), 64)
	if err != nil {
		return 0
	}
	return int(math.Round(value))
}

func rawStrings(raw json.RawMessage, limit int) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		if s := rawString(raw); s != "" {
			items = []json.RawMessage{raw}
		}
	}
	result := []string{}
	for _, item := range items {
		if limit > 0 && len(result) >= limit {
			break
		}
		result = append(result, rawString(item))
	}
	return result
}

func truncateRunes(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n])
}

// Sentences splits on sentence punctuation and drops empty parts.
func Sentences(text string) []string {
	result := []string{}
	for _, part := range sentenceBreak.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// Words returns unicode words, the equivalent of \w+ with unicode classes.
func Words(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// roundHalfEven rounds to an integer with ties to even.
func roundHalfEven(value float64) int {
	return int(math.RoundToEven(value))
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}

func uniqueLong(items []string, min_runes int, limit int) []string {
	seen := map[string]bool{}
	result := []string{}
	for _, item := range items {
		if utf8.RuneCountInString(item) <= min_runes || seen[item] {
			continue
		}
		seen[item] = true
		result = append(result, item)
		if len(result) == limit {
			break
		}
	}
	return result
}

func prompt(instruction string, text string) string {
	return fmt.Sprintf("%s\n\n%s", instruction, text)
}
