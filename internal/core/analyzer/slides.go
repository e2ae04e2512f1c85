package analyzer

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/slidelens/slidelens/internal/types"
)

var (
	slideMarker   = regexp.MustCompile(`--- SLIDE (\d+) ---`)
	slideListSep  = regexp.MustCompile(`[,\s]+`)
	slideRangeSep = regexp.MustCompile(`[–\-]`)

	singleSlideRef = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^Слайд\s*(\d+)\s*[:\-–]\s*(.+)`),
		regexp.MustCompile(`(?i)^Slide\s*(\d+)\s*[:\-–]\s*(.+)`),
	}
	multiSlideRef = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^Слайды\s*([\d,\s–\-]+)\s*[:\-–]\s*(.+)`),
		regexp.MustCompile(`(?i)^Slides\s*([\d,\s–\-]+)\s*[:\-–]\s*(.+)`),
	}
)

// MarkedSlide is one "--- SLIDE N ---" section of the full text.
type MarkedSlide struct {
	Number int
	Text   string
}

// SplitMarkedSlides cuts the full text at slide markers. Text before the first
// marker is ignored; text without any marker becomes slide 1.
func SplitMarkedSlides(text string) []MarkedSlide {
	matches := slideMarker.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []MarkedSlide{{Number: 1, Text: text}}
	}

	slides := make([]MarkedSlide, 0, len(matches))
	for i, match := range matches {
		number, _ := strconv.Atoi(text[match[2]:match[3]])
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		slides = append(slides, MarkedSlide{
			Number: number,
			Text:   text[match[1]:end],
		})
	}
	return slides
}

// MakeBlocks groups slides into prompt-sized blocks of block_size slides,
// each slide keeps its marker header.
func MakeBlocks(slides []MarkedSlide, block_size int) []string {
	if block_size <= 0 {
		block_size = 5
	}

	blocks := []string{}
	current := []string{}
	for _, slide := range slides {
		current = append(current, "--- SLIDE "+strconv.Itoa(slide.Number)+" ---\n"+strings.TrimSpace(slide.Text))
		if len(current) >= block_size {
			blocks = append(blocks, strings.Join(current, "\n\n"))
			current = []string{}
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n\n"))
	}
	return blocks
}

// ParseSlideList parses "1, 2, 4–6" into sorted unique slide numbers.
func ParseSlideList(s string) []int {
	seen := map[int]bool{}
	for _, part := range slideListSep.Split(strings.TrimSpace(s), -1) {
		if part == "" {
			continue
		}
		if strings.ContainsAny(part, "–-") {
			bounds := slideRangeSep.Split(part, -1)
			if len(bounds) < 2 {
				continue
			}
			a, err_a := strconv.Atoi(bounds[0])
			b, err_b := strconv.Atoi(bounds[1])
			if err_a != nil || err_b != nil {
				continue
			}
			for n := a; n <= b; n++ {
				seen[n] = true
			}
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			seen[n] = true
		}
	}

	numbers := make([]int, 0, len(seen))
	for n := range seen {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// MapTextToSlides finds the slides a finding talks about: the longest shared
// n-gram (6 down to 3 words) wins, otherwise up to 3 slides with the largest
// word overlap. Slide texts are expected lowercased.
func MapTextToSlides(text string, slides []MarkedSlide) []int {
	words := []string{}
	for _, word := range Words(strings.ToLower(text)) {
		if len([]rune(word)) > 2 {
			words = append(words, word)
		}
	}
	if len(words) == 0 {
		return nil
	}

	n := len(words)
	if n > 6 {
		n = 6
	}
	for ; n > 2; n-- {
		for i := 0; i+n <= len(words); i++ {
			ngram := strings.Join(words[i:i+n], " ")
			for _, slide := range slides {
				if strings.Contains(slide.Text, ngram) {
					return []int{slide.Number}
				}
			}
		}
	}

	type score struct {
		number int
		count  int
	}
	scores := make([]score, 0, len(slides))
	for _, slide := range slides {
		slide_words := map[string]bool{}
		for _, w := range Words(slide.Text) {
			slide_words[w] = true
		}
		count := 0
		for _, w := range words {
			if slide_words[w] {
				count++
			}
		}
		scores = append(scores, score{number: slide.Number, count: count})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].count > scores[j].count
	})

	positive := []int{}
	for _, s := range scores {
		if s.count > 0 {
			positive = append(positive, s.number)
		}
		if len(positive) == 3 {
			break
		}
	}
	if len(positive) == 0 {
		return nil
	}
	return positive
}

// AttachSlideNumbers resolves slide numbers for findings that have none:
// explicit "Слайд N:" / "Слайды N, M:" prefixes first, then content matching.
func AttachSlideNumbers(refs []types.SlideRef, full_text string) []types.SlideRef {
	slides := SplitMarkedSlides(full_text)
	for i := range slides {
		slides[i].Text = strings.ToLower(slides[i].Text)
	}

	result := make([]types.SlideRef, 0, len(refs))
	for _, ref := range refs {
		if ref.Attributed() {
			result = append(result, ref)
			continue
		}
		result = append(result, attachOne(strings.TrimSpace(ref.Text), slides))
	}
	return result
}

func attachOne(s string, slides []MarkedSlide) types.SlideRef {
	for _, pattern := range singleSlideRef {
		if m := pattern.FindStringSubmatch(s); m != nil {
			number, _ := strconv.Atoi(m[1])
			return types.SlideRef{Slide: number, Text: strings.TrimSpace(m[2])}
		}
	}
	for _, pattern := range multiSlideRef {
		if m := pattern.FindStringSubmatch(s); m != nil {
			return types.SlideRef{Slides: ParseSlideList(m[1]), Text: strings.TrimSpace(m[2])}
		}
	}

	mapped := MapTextToSlides(s, slides)
	switch len(mapped) {
	case 0:
		return types.SlideRef{Text: s}
	case 1:
		return types.SlideRef{Slide: mapped[0], Text: s}
	default:
		return types.SlideRef{Slides: mapped, Text: s}
	}
}
