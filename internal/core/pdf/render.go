package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/slidelens/slidelens/internal/core/runner"
	"github.com/slidelens/slidelens/internal/types"
)

const RENDER_PREFIX = "slide"

var renderedPage = regexp.MustCompile(`^` + RENDER_PREFIX + `-(\d+)\.png$`)

// Renderer rasterizes pages with pdftoppm.
type Renderer struct {
	Runner   runner.Runner
	Pdftoppm string
	DPI      int
}

// Render writes one png per page into dir and returns them ordered by page.
func (r *Renderer) Render(ctx context.Context, path string, dir string) ([]types.SlideImage, error) {
	dpi := r.DPI
	if dpi <= 0 {
		dpi = 200
	}

	_, err := r.Runner.Run(ctx, r.Pdftoppm,
		"-png", "-r", strconv.Itoa(dpi),
		path, filepath.Join(dir, RENDER_PREFIX),
	)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w", err)
	}

	return CollectRendered(dir)
}

// CollectRendered finds slide-N.png files, pdftoppm zero pads N depending on
// the page count so ordering is by parsed number.
func CollectRendered(dir string) ([]types.SlideImage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	images := []types.SlideImage{}
	for _, entry := range entries {
		match := renderedPage.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		number, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		images = append(images, types.SlideImage{
			Number: number,
			Path:   filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].Number < images[j].Number
	})
	return images, nil
}
