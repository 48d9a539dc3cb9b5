package document

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Converter turns an uploaded document into one raw text blob, pages in
// order. The conversion itself is a black box; only this contract matters to
// the extraction pipeline.
type Converter interface {
	ExtractText(data []byte, contentType string) (string, error)
}

// PDFConverter extracts text from PDF documents.
type PDFConverter struct{}

// ExtractText renders every page of a PDF to text and concatenates the pages.
func (PDFConverter) ExtractText(data []byte, contentType string) (string, error) {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))
	if mimeType != "" && mimeType != "application/pdf" && mimeType != "application/octet-stream" {
		return "", fmt.Errorf("unsupported document type %q, only PDF reports are accepted", contentType)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	var text strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		pageText, err := doc.Text(page)
		if err != nil {
			return "", fmt.Errorf("extracting text from page %d: %w", page, err)
		}
		text.WriteString(pageText)
	}

	return text.String(), nil
}
