// Package fetch loads the text scriptsift analyzes from standard input, local files or
// HTTP(S) URLs.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when a source is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// Size limits to prevent memory overload
const (
	MaxFileSizeBytes = 50 * 1024 * 1024  // 50MB limit for files and stdin
	MaxHTTPSizeBytes = 100 * 1024 * 1024 // 100MB limit for HTTP content (may not have Content-Length)
)

// HTTPRequestTimeout bounds a whole HTTP fetch.
const HTTPRequestTimeout = 30 * time.Second

// specific timeout thresholds (based on HTTPRequestTimeout)
var (
	HTTPDialTimeout           = HTTPRequestTimeout / 6
	HTTPTLSTimeout            = HTTPRequestTimeout / 6
	HTTPResponseHeaderTimeout = HTTPRequestTimeout / 2
)

// limitedReadCloser wraps an io.ReadCloser to enforce size limits
type limitedReadCloser struct {
	io.ReadCloser
	N      int64  // max bytes remaining
	source string // for error messages
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	if l.N <= 0 {
		return 0, fmt.Errorf("content from %q exceeds size limit", l.source)
	}
	if int64(len(p)) > l.N {
		p = p[0:l.N]
	}
	n, err = l.ReadCloser.Read(p)
	l.N -= int64(n)
	return
}

// httpClient is a shared HTTP client with timeouts; safe for concurrent use.
var httpClient = &http.Client{
	Timeout: HTTPRequestTimeout,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: HTTPDialTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   HTTPTLSTimeout,
		ResponseHeaderTimeout: HTTPResponseHeaderTimeout,
		DisableKeepAlives:     true,
	},
}

// Source is a fully loaded input document.
type Source struct {
	Name string // "-" for stdin, otherwise the path or URL
	Text string
	HTML bool // served as HTML or named *.html / *.htm
}

// IsURL reports whether source names an HTTP(S) resource.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// GetContent opens a source for reading:
//   - "-" reads from standard input
//   - URLs starting with "http://" or "https://" are fetched via HTTP
//   - everything else is treated as a local file path
func GetContent(ctx context.Context, source string) (io.ReadCloser, error) {
	reader, _, err := open(ctx, source)
	return reader, err
}

// Load reads a whole source and checks that it is valid UTF-8.
func Load(ctx context.Context, source string) (Source, error) {
	reader, mediaType, err := open(ctx, source)
	if err != nil {
		return Source{}, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read %q: %w", source, err)
	}
	if !utf8.Valid(data) {
		return Source{}, fmt.Errorf("failed to load %q: %w", source, ErrInvalidUTF8)
	}

	return Source{
		Name: source,
		Text: string(data),
		HTML: isHTML(source, mediaType),
	}, nil
}

// open routes a source to its reader and reports the media type when one is known.
func open(ctx context.Context, source string) (io.ReadCloser, string, error) {
	switch {
	case source == "-":
		return &limitedReadCloser{
			ReadCloser: os.Stdin,
			N:          MaxFileSizeBytes,
			source:     "stdin",
		}, "", nil
	case IsURL(source):
		return fetchURL(ctx, source)
	default:
		reader, err := fetchFile(source)
		return reader, "", err
	}
}

// isHTML decides from the media type, or for local files the extension.
func isHTML(source, mediaType string) bool {
	if mediaType != "" {
		return mediaType == "text/html" || mediaType == "application/xhtml+xml"
	}
	if IsURL(source) {
		return false
	}
	switch strings.ToLower(filepath.Ext(source)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

// fetchURL retrieves content from an HTTP or HTTPS URL.
func fetchURL(ctx context.Context, url string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request for URL %q: %w", url, err)
	}
	req.Header.Set("User-Agent", "scriptsift/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch URL %q: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("HTTP request failed for URL %q: status %s", url, resp.Status)
	}

	if contentLength := resp.Header.Get("Content-Length"); contentLength != "" {
		if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil && size > MaxHTTPSizeBytes {
			resp.Body.Close()
			return nil, "", fmt.Errorf("HTTP content too large (%d bytes > %d bytes limit)", size, MaxHTTPSizeBytes)
		}
	}

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	return &limitedReadCloser{
		ReadCloser: resp.Body,
		N:          MaxHTTPSizeBytes,
		source:     url,
	}, mediaType, nil
}

// fetchFile opens a local file for reading with better error messages
func fetchFile(path string) (io.ReadCloser, error) {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", path, err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%q is a directory, not a file", path)
	}

	if fileInfo.Size() > MaxFileSizeBytes {
		return nil, fmt.Errorf("file %q is too large (%d bytes > %d bytes limit)",
			path, fileInfo.Size(), MaxFileSizeBytes)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}
	return file, nil
}
