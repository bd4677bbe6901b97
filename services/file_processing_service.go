package services

import (
	"context"
	"fmt"
	"mime"
	"strings"

	applog "github.com/MominRaza6762/SamraAi/utils/logger"
)

// Office document MIME types
const (
	MimeTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// MaxUploadSize is the largest file accepted for analysis
const MaxUploadSize = 25 * 1024 * 1024

// AllowedMimeTypes is the upload allow-list
var AllowedMimeTypes = []string{
	"application/pdf",
	"text/plain",
	"text/csv",
	MimeTypeDOCX,
	MimeTypeXLSX,
	"application/json",
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/webp",
	"audio/mpeg",
	"audio/wav",
	"audio/mp4",
}

// InvalidFileTypeMessage is returned to clients for files outside the allow-list
const InvalidFileTypeMessage = "Invalid file type. Allowed types: PDF, TXT, CSV, DOCX, XLSX, JSON, JPG, JPEG, PNG, WEBP, MP3, WAV, M4A"

// IsAllowedMimeType reports whether mimeType is on the upload allow-list
func IsAllowedMimeType(mimeType string) bool {
	normalized := normalizeMimeType(mimeType)
	for _, allowed := range AllowedMimeTypes {
		if normalized == allowed {
			return true
		}
	}
	return false
}

// FileKind is the analysis branch a MIME type maps to
type FileKind int

const (
	FileKindUnsupported FileKind = iota
	FileKindImage
	FileKindAudio
	FileKindTextDocument
	FileKindOfficeDocument
)

func (k FileKind) String() string {
	switch k {
	case FileKindImage:
		return "image"
	case FileKindAudio:
		return "audio"
	case FileKindTextDocument:
		return "text_document"
	case FileKindOfficeDocument:
		return "office_document"
	default:
		return "unsupported"
	}
}

func normalizeMimeType(mimeType string) string {
	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mediaType
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

// Classify maps a declared MIME type to its analysis branch.
// Prefix matches for images and audio win over the exact document matches.
func Classify(mimeType string) FileKind {
	mimeType = normalizeMimeType(mimeType)
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return FileKindImage
	case strings.HasPrefix(mimeType, "audio/"):
		return FileKindAudio
	}

	switch mimeType {
	case "application/pdf", "text/plain", "text/csv", "application/json":
		return FileKindTextDocument
	case MimeTypeDOCX, MimeTypeXLSX:
		return FileKindOfficeDocument
	default:
		return FileKindUnsupported
	}
}

// AnalysisType tags the result of a file analysis
type AnalysisType string

const (
	AnalysisTypeImage    AnalysisType = "image_analysis"
	AnalysisTypeAudio    AnalysisType = "audio_transcription"
	AnalysisTypeDocument AnalysisType = "document_analysis"
)

// AnalysisResult is what the dispatcher produced for one file.
// Content is set for image and document results, Transcription and Analysis for audio.
type AnalysisResult struct {
	Type          AnalysisType
	Content       string
	Transcription string
	Analysis      string
}

// Reply formats the result as the assistant's chat message to userName
func (r *AnalysisResult) Reply(userName string) string {
	switch r.Type {
	case AnalysisTypeImage:
		return fmt.Sprintf("Dear %s, I've analyzed the image you uploaded. Here's what I found:\n\n%s", userName, r.Content)
	case AnalysisTypeAudio:
		return fmt.Sprintf("Dear %s, I've transcribed and analyzed your audio file.\n\nTranscription:\n%s\n\nAnalysis:\n%s",
			userName, r.Transcription, r.Analysis)
	case AnalysisTypeDocument:
		return fmt.Sprintf("Dear %s, I've analyzed your document. %s", userName, r.Content)
	default:
		return ""
	}
}

// FileAnalyzer is implemented by *Assistant
type FileAnalyzer interface {
	AnalyzeImage(ctx context.Context, imageURL, prompt string) (string, error)
	TranscribeAudio(ctx context.Context, audio []byte, fileName string) (string, error)
	AnalyzeDocument(ctx context.Context, documentText, prompt string) (string, error)
}

// FileInput is a stored file ready for analysis
type FileInput struct {
	URL      string
	MimeType string
	FileName string
	Data     []byte
	Prompt   string
}

// FileProcessor routes a file to the analysis matching its kind
type FileProcessor struct {
	analyzer FileAnalyzer
	pdf      *PDFExtractor
	userName string
	log      *applog.Logger
}

// NewFileProcessor creates a new file processor
func NewFileProcessor(analyzer FileAnalyzer, pdf *PDFExtractor, userName string, log *applog.Logger) *FileProcessor {
	return &FileProcessor{
		analyzer: analyzer,
		pdf:      pdf,
		userName: userName,
		log:      log.With("component", "FileProcessor"),
	}
}

// Process analyzes one file. Office documents get a fixed placeholder without a model call.
func (p *FileProcessor) Process(ctx context.Context, in FileInput) (*AnalysisResult, error) {
	kind := Classify(in.MimeType)
	p.log.Debug("processing file", "file", in.FileName, "mime_type", in.MimeType, "kind", kind.String())

	switch kind {
	case FileKindImage:
		content, err := p.analyzer.AnalyzeImage(ctx, in.URL, in.Prompt)
		if err != nil {
			return nil, err
		}
		return &AnalysisResult{Type: AnalysisTypeImage, Content: content}, nil

	case FileKindAudio:
		transcription, err := p.analyzer.TranscribeAudio(ctx, in.Data, in.FileName)
		if err != nil {
			return nil, err
		}
		prompt := in.Prompt
		if prompt == "" {
			prompt = defaultAudioPrompt
		}
		analysis, err := p.analyzer.AnalyzeDocument(ctx, transcription, prompt)
		if err != nil {
			return nil, err
		}
		return &AnalysisResult{Type: AnalysisTypeAudio, Transcription: transcription, Analysis: analysis}, nil

	case FileKindTextDocument:
		text, err := p.documentText(in)
		if err != nil {
			return nil, err
		}
		prompt := in.Prompt
		if prompt == "" {
			prompt = defaultDocumentPrompt
		}
		content, err := p.analyzer.AnalyzeDocument(ctx, text, prompt)
		if err != nil {
			return nil, err
		}
		return &AnalysisResult{Type: AnalysisTypeDocument, Content: content}, nil

	case FileKindOfficeDocument:
		return &AnalysisResult{Type: AnalysisTypeDocument, Content: p.officePlaceholder(in.MimeType)}, nil

	case FileKindUnsupported:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, in.MimeType)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, in.MimeType)
}

// documentText decodes a text document. PDFs go through the PDF extractor, never raw UTF-8.
func (p *FileProcessor) documentText(in FileInput) (string, error) {
	if normalizeMimeType(in.MimeType) == "application/pdf" {
		text, err := p.pdf.ExtractText(in.Data)
		if err != nil {
			return "", fmt.Errorf("failed to read PDF: %w", err)
		}
		return text, nil
	}
	return strings.ToValidUTF8(string(in.Data), "�"), nil
}

func (p *FileProcessor) officePlaceholder(mimeType string) string {
	kind := "Excel"
	if strings.Contains(mimeType, "word") {
		kind = "Word"
	}
	return fmt.Sprintf("Dear %s, I've received your %s document. To provide detailed analysis, please use PDF or TXT format, or describe what specific information you need from this file.",
		p.userName, kind)
}
