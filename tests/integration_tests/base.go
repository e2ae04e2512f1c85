package integrationtests_test

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/slidelens/slidelens/internal/service"
	"github.com/slidelens/slidelens/internal/static"
)

// buildPDF writes a minimal pdf with one Helvetica text line per page.
func buildPDF(pages []string) []byte {
	var buf bytes.Buffer
	offsets := []int{}
	object := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, 0, len(pages))
	for i := range pages {
		// catalog, pages and font come first, then a page and its stream per slide
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+i*2))
	}
	object("<< /Type /Catalog /Pages 2 0 R >>")
	object(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	object("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	for i, text := range pages {
		object(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			5+i*2,
		))
		stream := fmt.Sprintf("BT /F1 24 Tf 72 700 Td (%s) Tj ET", text)
		object(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

func requirePoppler(t *testing.T) {
	t.Helper()
	for _, binary := range []string{"pdftotext", "pdfinfo", "pdftoppm"} {
		if _, err := exec.LookPath(binary); err != nil {
			t.Skipf("%s is not installed", binary)
		}
	}
}

func newService(t *testing.T, engine string) *service.Service {
	t.Helper()
	config := static.GetSlideLensGlobalConfigurations()
	config.TempDir = t.TempDir()
	config.PDF.Engine = engine
	config.PDF.OCR = false
	config.Inference.Token = ""
	config.Database.DSN = ""
	config.Redis.Addr = ""

	svc, err := service.New(context.Background(), config)
	if err != nil {
		t.Fatalf("failed to init service: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc
}
