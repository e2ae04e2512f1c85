package pdf

import (
	"context"
	"fmt"

	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/slidelens/slidelens/internal/types"
)

// NativeExtractor reads the text layer in process, no poppler needed.
type NativeExtractor struct{}

func (n *NativeExtractor) Name() string {
	return "native"
}

func (n *NativeExtractor) ExtractSlides(ctx context.Context, path string) (slides []types.Slide, err error) {
	// the parser panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			slides = nil
			err = fmt.Errorf("parse %s: %v", path, r)
		}
	}()

	file, reader, err := ledongthuc.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer file.Close()

	total := reader.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}

	return NewSlides(pages), nil
}
