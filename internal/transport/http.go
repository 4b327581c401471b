// Package transport provides the net/http implementation of the pipeline's
// Transport interface.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"remotefs-go/internal/remotefs"
)

// HTTPTransport fetches URLs with a shared net/http client. One Fetch is one
// GET; redirects follow the default client policy and the whole body is read
// into memory, capped at maxBody when a cap is configured.
type HTTPTransport struct {
	client  *http.Client
	maxBody int64
}

// NewHTTPTransport creates an HTTPTransport. A zero timeout means no client
// timeout; a zero or negative maxBody means no body cap.
func NewHTTPTransport(timeout time.Duration, maxBody int64) *HTTPTransport {
	return &HTTPTransport{
		client:  &http.Client{Timeout: timeout},
		maxBody: maxBody,
	}
}

// Fetch issues one GET against url with the given headers. Connection-level
// failures and oversize bodies surface as transport errors; a non-success
// status does not, per the Transport contract.
func (t *HTTPTransport) Fetch(ctx context.Context, url string, headers map[string]string) (*remotefs.FetchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %v", remotefs.ErrTransport, url, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", remotefs.ErrTransport, err)
	}
	defer resp.Body.Close()

	r := io.Reader(resp.Body)
	if t.maxBody > 0 {
		r = io.LimitReader(resp.Body, t.maxBody+1)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", remotefs.ErrTransport, err)
	}
	if t.maxBody > 0 && int64(len(body)) > t.maxBody {
		return nil, fmt.Errorf("%w: response body of %s exceeds %d bytes", remotefs.ErrTransport, url, t.maxBody)
	}

	return &remotefs.FetchResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

var _ remotefs.Transport = (*HTTPTransport)(nil)
