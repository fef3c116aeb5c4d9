package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MaxFileBytes is the largest accepted resume upload.
const MaxFileBytes = 5 << 20

// Format is a supported resume file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

var (
	// ErrEmptyDocument is returned when no text could be extracted.
	ErrEmptyDocument = errors.New("no readable text found in resume")
	// ErrLegacyWord is returned for .doc uploads, which cannot be parsed.
	ErrLegacyWord = errors.New("legacy .doc files are not supported, save the resume as .docx or PDF")
)

// UnsupportedFormatError reports a file that is not a PDF, DOCX or text file.
type UnsupportedFormatError struct {
	Filename    string
	ContentType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported resume format: %s (%s)", e.Filename, e.ContentType)
}

// TooLargeError reports an upload over the size limit.
type TooLargeError struct {
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("resume is %d bytes, limit is %d", e.Size, e.Limit)
}

// ExtractionError wraps a parser failure.
type ExtractionError struct {
	Format Format
	Cause  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to read %s resume: %v", e.Format, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeDOC  = "application/msword"
)

// DetectFormat decides the format from the file extension, falling back to
// the declared content type.
func DetectFormat(filename, contentType string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt", ".text", ".md":
		return FormatText, nil
	case ".doc":
		return "", ErrLegacyWord
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case mimePDF:
		return FormatPDF, nil
	case mimeDOCX:
		return FormatDOCX, nil
	case "text/plain", "text/markdown":
		return FormatText, nil
	case mimeDOC:
		return "", ErrLegacyWord
	}
	return "", &UnsupportedFormatError{Filename: filename, ContentType: contentType}
}

// IngestFile extracts and cleans the text of an uploaded resume.
func IngestFile(filename, contentType string, data []byte) (*Document, error) {
	if int64(len(data)) > MaxFileBytes {
		return nil, &TooLargeError{Size: int64(len(data)), Limit: MaxFileBytes}
	}
	format, err := DetectFormat(filename, contentType)
	if err != nil {
		return nil, err
	}

	raw, err := ExtractText(format, data)
	if err != nil {
		return nil, err
	}
	cleaned := CleanText(raw)
	if cleaned == "" {
		return nil, ErrEmptyDocument
	}

	meta := NewMetadata(cleaned, SourceUpload)
	meta.Filename = filename
	meta.Format = format
	meta.Bytes = len(data)
	return &Document{Text: cleaned, Metadata: meta}, nil
}

// ExtractText returns the raw text of a document in the given format.
func ExtractText(format Format, data []byte) (string, error) {
	switch format {
	case FormatPDF:
		return extractPDFText(data)
	case FormatDOCX:
		return extractDocxText(data)
	case FormatText:
		if !utf8.Valid(data) {
			return "", &ExtractionError{Format: format, Cause: errors.New("text is not valid UTF-8")}
		}
		return string(data), nil
	default:
		return "", &UnsupportedFormatError{ContentType: string(format)}
	}
}

func extractPDFText(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractionError{Format: FormatPDF, Cause: fmt.Errorf("malformed pdf: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatPDF, Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", &ExtractionError{Format: FormatPDF, Cause: err}
		}
		for _, row := range rows {
			for j, word := range row.Content {
				if j > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(word.S)
			}
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:br [^>]*/>|<w:tab/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
	xmlEntities      = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatDOCX, Cause: err}
	}
	defer func() { _ = doc.Close() }()

	content := doc.Editable().GetContent()
	content = docxParagraphEnd.ReplaceAllStringFunc(content, func(tag string) string {
		if tag == "<w:tab/>" {
			return " "
		}
		return "\n"
	})
	content = xmlTag.ReplaceAllString(content, "")
	return xmlEntities.Replace(content), nil
}
