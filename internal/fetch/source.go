package fetch

import (
	"net/url"
	"strings"
)

// Source is a known host for publicly shared resumes.
type Source string

const (
	// SourceGoogleDocs is a shared Google Docs document
	SourceGoogleDocs Source = "google_docs"
	// SourceGitHub is a GitHub profile, repository or gist page
	SourceGitHub Source = "github"
	// SourceNotion is a public Notion page
	SourceNotion Source = "notion"
	// SourceUnknown is any other site
	SourceUnknown Source = "unknown"
)

// DetectSource identifies where a resume URL is hosted.
func DetectSource(urlStr string) Source {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return SourceUnknown
	}
	host := strings.ToLower(parsed.Hostname())

	switch {
	case host == "docs.google.com" && strings.HasPrefix(parsed.Path, "/document/d/"):
		return SourceGoogleDocs
	case host == "github.com" || strings.HasSuffix(host, ".github.io") || host == "gist.github.com":
		return SourceGitHub
	case strings.HasSuffix(host, "notion.site") || host == "www.notion.so" || host == "notion.so":
		return SourceNotion
	default:
		return SourceUnknown
	}
}

// ExportURL rewrites a share link into one that returns the document body
// directly. Google Docs links become plain-text exports; other URLs are
// returned unchanged.
func ExportURL(urlStr string) string {
	if DetectSource(urlStr) != SourceGoogleDocs {
		return urlStr
	}
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}
	parts := strings.Split(strings.TrimPrefix(parsed.Path, "/document/d/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return urlStr
	}
	return "https://docs.google.com/document/d/" + parts[0] + "/export?format=txt"
}

// SourceContentSelectors returns content selectors for a source.
func SourceContentSelectors(source Source) []string {
	switch source {
	case SourceGitHub:
		return []string{"article.markdown-body", ".markdown-body", ".js-gist-file-update-container", "main"}
	case SourceNotion:
		return []string{".notion-page-content", ".notion-frame", "main"}
	default:
		return ResumePageSelectors()
	}
}

// SourceNoiseSelectors returns elements to strip before extracting text.
func SourceNoiseSelectors(source Source) []string {
	common := []string{
		"form",
		".social-share",
		".share-buttons",
		".cookie-consent",
		".gdpr-notice",
	}
	switch source {
	case SourceGitHub:
		return append(common, ".file-navigation", ".BorderGrid", ".gist-meta", ".octicon")
	case SourceNotion:
		return append(common, ".notion-topbar", ".notion-sidebar")
	default:
		return common
	}
}
