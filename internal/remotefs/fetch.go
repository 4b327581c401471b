package remotefs

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"unicode/utf8"
)

// Transport performs a single HTTP round trip on behalf of the Fetcher.
// Implementations own timeouts and size limits; the pipeline enforces none
// of its own beyond surfacing the transport's failure.
type Transport interface {
	// Fetch issues one GET against url with the given headers and returns
	// the full response. A non-success status is not an error at this level.
	Fetch(ctx context.Context, url string, headers map[string]string) (*FetchResponse, error)
}

// FetchResponse is the transport-level result of fetching a URL.
type FetchResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Fetcher downloads a single remote resource as a FileRecord.
type Fetcher struct {
	transport Transport
}

// NewFetcher creates a Fetcher using the provided transport.
func NewFetcher(transport Transport) *Fetcher {
	return &Fetcher{transport: transport}
}

// Fetch issues one GET against url and converts the response into a file
// record at targetPath. A response whose Content-Type starts with "text" is
// carried as UTF-8 text; everything else, including responses with no
// content type at all, is carried as base64-encoded binary. The decision is
// made here, once, and never re-derived downstream.
func (f *Fetcher) Fetch(ctx context.Context, url, targetPath string, headers map[string]string) (*FileRecord, error) {
	if strings.HasSuffix(targetPath, "/") {
		return nil, fmt.Errorf("%w: target path %q must not end with a separator", ErrPath, targetPath)
	}

	resp, err := f.transport.Fetch(ctx, url, headers)
	if err != nil {
		if errors.Is(err, ErrTransport) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrTransport, url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: fetching %s: unexpected status %d", ErrTransport, url, resp.StatusCode)
	}

	rec := &FileRecord{
		Name: path.Base(targetPath),
		Path: targetPath,
	}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text") {
		if !utf8.Valid(resp.Body) {
			return nil, fmt.Errorf("%w: response body of %s is not valid UTF-8", ErrFormat, url)
		}
		rec.Format = FormatText
		rec.Mimetype = MimeTextPlain
		rec.Content = string(resp.Body)
	} else {
		rec.Format = FormatBase64
		rec.Mimetype = MimeOctetStream
		rec.Content = base64.StdEncoding.EncodeToString(resp.Body)
	}
	return rec, nil
}
