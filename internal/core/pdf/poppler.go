package pdf

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/slidelens/slidelens/internal/core/runner"
	"github.com/slidelens/slidelens/internal/types"
)

// PopplerExtractor shells out to pdfinfo and pdftotext from poppler-utils.
type PopplerExtractor struct {
	Runner    runner.Runner
	Pdftotext string
	Pdfinfo   string
}

func (p *PopplerExtractor) Name() string {
	return "poppler"
}

// PageCount reads the "Pages:" line of pdfinfo.
func (p *PopplerExtractor) PageCount(ctx context.Context, path string) (int, error) {
	out, err := p.Runner.Run(ctx, p.Pdfinfo, path)
	if err != nil {
		return 0, err
	}
	return ParsePageCount(out)
}

func (p *PopplerExtractor) ExtractSlides(ctx context.Context, path string) ([]types.Slide, error) {
	pages, err := p.PageCount(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("pdfinfo: %w", err)
	}

	out, err := p.Runner.Run(ctx, p.Pdftotext, "-enc", "UTF-8", path, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}

	return NewSlides(SplitPages(string(out), pages)), nil
}

func ParsePageCount(info []byte) (int, error) {
	scanner := bufio.NewScanner(bytes.NewReader(info))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:")))
		if err != nil {
			return 0, fmt.Errorf("invalid page count %q: %w", line, err)
		}
		return count, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("pdfinfo output has no page count")
}

// SplitPages splits pdftotext output on form feeds. pdftotext terminates every
// page with a form feed, the result is trimmed or padded to pages entries.
func SplitPages(text string, pages int) []string {
	parts := strings.Split(text, "\f")
	if pages <= 0 {
		pages = len(parts)
		if pages > 0 && parts[pages-1] == "" {
			pages--
		}
	}
	result := make([]string, pages)
	for i := 0; i < pages && i < len(parts); i++ {
		result[i] = parts[i]
	}
	return result
}
