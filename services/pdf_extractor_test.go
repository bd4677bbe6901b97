package services

import (
	"bytes"
	"fmt"
	"testing"

	applog "github.com/MominRaza6762/SamraAi/utils/logger"
)

func TestSanitizePDF(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"not a pdf", "hello world", "hello world"},
		{"no eof marker", "%PDF-1.4 body", "%PDF-1.4 body"},
		{"clean pdf", "%PDF-1.4 body %%EOF\n", "%PDF-1.4 body %%EOF\n"},
		{"trailing garbage", "%PDF-1.4 body %%EOF\r\n<html>junk</html>", "%PDF-1.4 body %%EOF\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(sanitizePDF([]byte(tt.input))); got != tt.want {
				t.Errorf("sanitizePDF() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTextRejectsInvalidInput(t *testing.T) {
	extractor := NewPDFExtractor(applog.NewNopLogger())

	if _, err := extractor.ExtractText(nil); err == nil {
		t.Error("expected error for empty content")
	}
	_, err := extractor.ExtractText([]byte("definitely not a pdf"))
	if err == nil || err.Error() != "invalid PDF file: missing PDF header" {
		t.Errorf("non-PDF content error = %v", err)
	}
	if _, err := extractor.ExtractText([]byte("%PDF-1.4 truncated")); err == nil {
		t.Error("expected error for unparseable PDF")
	}
}

// buildTestPDF writes a one-page PDF showing text in Helvetica, with a valid xref table.
func buildTestPDF(text string) []byte {
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractTextFromValidPDF(t *testing.T) {
	extractor := NewPDFExtractor(applog.NewNopLogger())

	got, err := extractor.ExtractText(buildTestPDF("Hello Samra thesis"))
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if got != "Hello Samra thesis" {
		t.Errorf("ExtractText() = %q, want %q", got, "Hello Samra thesis")
	}
}

func TestExtractTextIgnoresTrailingGarbage(t *testing.T) {
	extractor := NewPDFExtractor(applog.NewNopLogger())

	content := append(buildTestPDF("Chapter one"), []byte("<html>proxy error page</html>")...)
	got, err := extractor.ExtractText(content)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if got != "Chapter one" {
		t.Errorf("ExtractText() = %q", got)
	}
}
