package service

import (
	"errors"
	"testing"

	"github.com/slidelens/slidelens/internal/static"
	"github.com/slidelens/slidelens/internal/types"
	"github.com/stretchr/testify/assert"
)

func withLookPath(t *testing.T, present ...string) {
	t.Helper()
	original := lookPath
	t.Cleanup(func() { lookPath = original })
	lookPath = func(file string) (string, error) {
		for _, p := range present {
			if p == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", errors.New("not found")
	}
}

func checkConfig() types.SlideLensGlobalConfigurations {
	var config types.SlideLensGlobalConfigurations
	config.PDF.PdftoppmPath = "pdftoppm"
	config.PDF.PdftotextPath = "pdftotext"
	config.PDF.PdfinfoPath = "pdfinfo"
	config.Sandbox.JailPath = "/usr/local/bin/popplerjail"
	return config
}

func TestCheckDependenciesPoppler(t *testing.T) {
	withLookPath(t, "pdftoppm", "pdftotext", "pdfinfo")
	assert.NoError(t, CheckDependencies(checkConfig()))
}

func TestCheckDependenciesMissingPdftotext(t *testing.T) {
	withLookPath(t, "pdftoppm", "pdfinfo")
	err := CheckDependencies(checkConfig())
	assert.ErrorIs(t, err, ErrPopplerMissing)
	assert.Contains(t, err.Error(), "pdftotext")
}

func TestCheckDependenciesNativeEngine(t *testing.T) {
	withLookPath(t, "pdftoppm")
	config := checkConfig()
	config.PDF.Engine = static.PDF_ENGINE_NATIVE
	assert.NoError(t, CheckDependencies(config))
}

func TestCheckDependenciesJail(t *testing.T) {
	withLookPath(t, "pdftoppm", "pdftotext", "pdfinfo")
	config := checkConfig()
	config.Sandbox.Enabled = true
	assert.ErrorIs(t, CheckDependencies(config), ErrJailMissing)
}
