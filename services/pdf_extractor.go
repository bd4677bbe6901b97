package services

import (
	"bytes"
	"fmt"
	"strings"

	applog "github.com/MominRaza6762/SamraAi/utils/logger"
	"github.com/ledongthuc/pdf"
)

// MaxPDFPages caps how many pages are read from one document
const MaxPDFPages = 2000

// PDFExtractor handles PDF text extraction using ledongthuc/pdf
type PDFExtractor struct {
	log *applog.Logger
}

// NewPDFExtractor creates a new PDF extractor
func NewPDFExtractor(log *applog.Logger) *PDFExtractor {
	return &PDFExtractor{log: log.With("component", "PDFExtractor")}
}

// sanitizePDF truncates anything appended after the last %%EOF marker.
// Content that is not a PDF is returned unchanged.
func sanitizePDF(content []byte) []byte {
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		return content
	}

	eofMarker := []byte("%%EOF")
	lastEOF := bytes.LastIndex(content, eofMarker)
	if lastEOF == -1 {
		return content
	}

	pdfEnd := lastEOF + len(eofMarker)
	for pdfEnd < len(content) && (content[pdfEnd] == '\n' || content[pdfEnd] == '\r') {
		pdfEnd++
	}
	return content[:pdfEnd]
}

// ExtractText extracts text page by page. Rows are joined with newlines and pages
// separated by a blank line.
func (p *PDFExtractor) ExtractText(content []byte) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("empty PDF content")
	}

	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		return "", fmt.Errorf("invalid PDF file: missing PDF header")
	}
	content = sanitizePDF(content)

	pdfReader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to parse PDF: %w", err)
	}

	numPages := pdfReader.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}
	if numPages > MaxPDFPages {
		return "", fmt.Errorf("PDF has %d pages, which exceeds the maximum of %d pages", numPages, MaxPDFPages)
	}

	var textBuilder strings.Builder
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			text, plainErr := page.GetPlainText(nil)
			if plainErr != nil {
				p.log.Warn("skipping unreadable PDF page", "page", i, "error", plainErr)
				continue
			}
			textBuilder.WriteString(text)
			textBuilder.WriteString("\n\n")
			continue
		}

		for _, row := range rows {
			var rowText strings.Builder
			for _, word := range row.Content {
				rowText.WriteString(word.S)
			}
			if line := strings.TrimSpace(rowText.String()); line != "" {
				textBuilder.WriteString(line)
				textBuilder.WriteString("\n")
			}
		}
		textBuilder.WriteString("\n")
	}

	extracted := strings.TrimSpace(textBuilder.String())
	if extracted == "" {
		return "", fmt.Errorf("no text could be extracted from PDF; it may be scanned or image-based")
	}

	p.log.Debug("extracted PDF text", "pages", numPages, "characters", len(extracted))
	return extracted, nil
}
