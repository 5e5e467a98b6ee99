package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Page is the text of one PDF page. Page numbers start at 1.
type Page struct {
	Number int
	Text   string
}

// Extractor pulls text out of PDF files.
type Extractor interface {
	Extract(ctx context.Context, path string) ([]Page, error)
}

// PopplerExtractor shells out to pdftotext (poppler-utils). Pages come
// back separated by form feed characters, which gives us page numbers
// for citation metadata without parsing the PDF ourselves.
type PopplerExtractor struct {
	Binary string
}

func NewPopplerExtractor() *PopplerExtractor {
	return &PopplerExtractor{Binary: "pdftotext"}
}

func (e *PopplerExtractor) Extract(ctx context.Context, path string) ([]Page, error) {
	bin := e.Binary
	if bin == "" {
		bin = "pdftotext"
	}

	// "-" sends the text to stdout, -layout keeps tables readable
	cmd := exec.CommandContext(ctx, bin, "-layout", path, "-")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	raw := strings.Split(stdout.String(), "\f")
	pages := make([]Page, 0, len(raw))
	for i, text := range raw {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, Page{Number: i + 1, Text: text})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("no extractable text in %s", path)
	}
	return pages, nil
}
