package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	// DefaultFetchTimeout bounds one remote media fetch. A hung upstream must
	// not hang the request forever; expiry surfaces as ErrUpstreamFetch.
	DefaultFetchTimeout = 30 * time.Second

	maxAssetSize = 100 * 1024 * 1024 // 100 MB
)

// Fetcher retrieves one remote media asset.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (data []byte, contentType string, err error)
}

type httpFetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher backed by an http.Client with the given
// timeout (DefaultFetchTimeout when zero).
func NewFetcher(timeout time.Duration) Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &httpFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *httpFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("%w: status %d from %s", ErrUpstreamFetch, resp.StatusCode, rawURL)
	}

	// Read one byte past the cap so truncation is detected instead of
	// caching a corrupt file.
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("%w: reading body: %v", ErrUpstreamFetch, err)
	}
	if len(data) > maxAssetSize {
		return nil, "", fmt.Errorf("%w: asset from %s exceeds %d bytes", ErrUpstreamFetch, rawURL, maxAssetSize)
	}

	contentType := resp.Header.Get("Content-Type")
	contentType = strings.Split(contentType, ";")[0]
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
		contentType = strings.Split(contentType, ";")[0]
	}

	return data, contentType, nil
}

// extensionFor infers a file extension from the response content type,
// falling back to the URL path suffix, then to .jpg (the dominant format at
// the sources we mirror).
func extensionFor(contentType, rawURL string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	}
	if u, err := url.Parse(rawURL); err == nil {
		if ext := path.Ext(u.Path); ext != "" && len(ext) <= 5 {
			return ext
		}
	}
	return ".jpg"
}
