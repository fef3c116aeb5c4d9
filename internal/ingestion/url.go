package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/skillsage/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// IngestFromURL imports a publicly shared resume. Google Docs share links are
// fetched as plain-text exports; other pages are reduced to their main text
// using host-specific selectors.
func IngestFromURL(ctx context.Context, urlStr string, opts *fetch.Options) (*Document, error) {
	source := fetch.DetectSource(urlStr)

	result, err := fetch.URL(ctx, fetch.ExportURL(urlStr), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	text := result.HTML
	if result.IsHTML() {
		text, err = fetch.ExtractMainText(result.HTML, fetch.SourceContentSelectors(source), fetch.SourceNoiseSelectors(source)...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, ErrEmptyDocument
	}

	meta := NewMetadata(cleaned, SourceURL)
	meta.URL = urlStr
	meta.Host = string(source)
	meta.Format = FormatText
	meta.Bytes = len(result.HTML)
	return &Document{Text: cleaned, Metadata: meta}, nil
}
