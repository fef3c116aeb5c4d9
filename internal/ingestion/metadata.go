package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// SourceKind records how a resume reached the service.
type SourceKind string

const (
	SourceUpload SourceKind = "upload"
	SourcePaste  SourceKind = "paste"
	SourceURL    SourceKind = "url"
)

// Document is a cleaned resume and how it was obtained.
type Document struct {
	Text     string    `json:"text"`
	Metadata *Metadata `json:"metadata"`
}

// Metadata describes an ingested resume
type Metadata struct {
	Source    SourceKind `json:"source"`
	Format    Format     `json:"format,omitempty"`
	Filename  string     `json:"filename,omitempty"`
	URL       string     `json:"url,omitempty"`
	Host      string     `json:"host,omitempty"` // Detected resume host for URL imports
	Bytes     int        `json:"bytes,omitempty"`
	Chars     int        `json:"chars"`
	Timestamp string     `json:"timestamp"` // RFC3339 format
	Hash      string     `json:"hash"`      // SHA256 hex digest of the cleaned text
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, source SourceKind) *Metadata {
	return &Metadata{
		Source:    source,
		Chars:     len([]rune(content)),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
