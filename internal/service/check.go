package service

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/slidelens/slidelens/internal/core/ocr"
	"github.com/slidelens/slidelens/internal/static"
	"github.com/slidelens/slidelens/internal/types"
)

var (
	ErrPopplerMissing = errors.New("poppler-utils are not installed, please install them or switch pdf.engine to native")
	ErrJailMissing    = errors.New("sandbox is enabled but the jail binary was not found")
	ErrOCRUnavailable = errors.New("ocr is enabled but the binary was built without tesseract")
)

var lookPath = exec.LookPath

// CheckDependencies verifies the external tools the configuration relies on.
func CheckDependencies(config types.SlideLensGlobalConfigurations) error {
	var errs []error

	// the renderer always needs pdftoppm, text extraction only with poppler
	binaries := []string{config.PDF.PdftoppmPath}
	if config.PDF.Engine != static.PDF_ENGINE_NATIVE {
		binaries = append(binaries, config.PDF.PdftotextPath, config.PDF.PdfinfoPath)
	}
	for _, binary := range binaries {
		if _, err := lookPath(binary); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s", ErrPopplerMissing, binary))
		}
	}

	if config.Sandbox.Enabled {
		if _, err := lookPath(config.Sandbox.JailPath); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s", ErrJailMissing, config.Sandbox.JailPath))
		}
	}

	if config.PDF.OCR && !ocr.NewEngine().Available() {
		errs = append(errs, ErrOCRUnavailable)
	}

	return errors.Join(errs...)
}
