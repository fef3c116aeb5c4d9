package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillsage/internal/fetch"
)

// localOptions lets tests reach httptest servers, which listen on loopback.
func localOptions(server *httptest.Server) *fetch.Options {
	return &fetch.Options{Client: server.Client()}
}

func TestIngestFromURL_HTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html><body>
<nav>Home | Blog</nav>
<div class="resume">
  <h1>Arjun Mehta</h1>
  <h2>Skills</h2>
  <ul><li>Python</li><li>Machine Learning</li></ul>
  <form><input name="contact"/>Contact me</form>
</div>
<footer>Footer</footer>
</body></html>`))
	}))
	defer server.Close()

	doc, err := IngestFromURL(context.Background(), server.URL, localOptions(server))
	require.NoError(t, err)

	assert.Contains(t, doc.Text, "Arjun Mehta")
	assert.Contains(t, doc.Text, "Machine Learning")
	assert.NotContains(t, doc.Text, "Home | Blog")
	assert.NotContains(t, doc.Text, "Contact me")
	assert.NotContains(t, doc.Text, "Footer")
	assert.Equal(t, SourceURL, doc.Metadata.Source)
	assert.Equal(t, server.URL, doc.Metadata.URL)
	assert.Equal(t, "unknown", doc.Metadata.Host)
}

func TestIngestFromURL_PlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("Arjun Mehta\r\nSkills:  Python,   SQL\r\n"))
	}))
	defer server.Close()

	doc, err := IngestFromURL(context.Background(), server.URL, localOptions(server))
	require.NoError(t, err)
	assert.Equal(t, "Arjun Mehta\nSkills: Python, SQL", doc.Text)
}

func TestIngestFromURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := IngestFromURL(context.Background(), server.URL, localOptions(server))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
	assert.Contains(t, err.Error(), "403")
}

func TestIngestFromURL_InvalidURL(t *testing.T) {
	_, err := IngestFromURL(context.Background(), "not a url", nil)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}

func TestIngestFromURL_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><nav>Only navigation</nav></body></html>`))
	}))
	defer server.Close()

	_, err := IngestFromURL(context.Background(), server.URL, localOptions(server))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestIngestFromURL_RefusesInternalAddress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"AccessKeyId":"internal"}`))
	}))
	defer server.Close()

	doc, err := IngestFromURL(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
	assert.ErrorIs(t, err, fetch.ErrBlockedAddress)
}
