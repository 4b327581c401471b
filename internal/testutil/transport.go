package testutil

import (
	"context"
	"net/http"
	"sync"

	"remotefs-go/internal/remotefs"
)

// MockTransport serves canned responses keyed by URL and counts Fetch calls.
// URLs with no canned response produce a 404, matching a live server's
// behavior closer than an error would.
type MockTransport struct {
	mu          sync.Mutex
	responses   map[string]*remotefs.FetchResponse
	err         error
	calls       int
	lastHeaders map[string]string
}

func NewMockTransport() *MockTransport {
	return &MockTransport{responses: make(map[string]*remotefs.FetchResponse)}
}

// Add registers a canned response for url.
func (m *MockTransport) Add(url string, resp *remotefs.FetchResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[url] = resp
}

// AddText registers a 200 text/plain response.
func (m *MockTransport) AddText(url, body string) {
	m.Add(url, &remotefs.FetchResponse{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/plain; charset=utf-8"}},
		Body:       []byte(body),
	})
}

// AddBinary registers a 200 response with the given content type. An empty
// contentType registers a response with no Content-Type header at all.
func (m *MockTransport) AddBinary(url, contentType string, body []byte) {
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	m.Add(url, &remotefs.FetchResponse{
		StatusCode: http.StatusOK,
		Header:     header,
		Body:       body,
	})
}

// FailWith makes every subsequent Fetch return err.
func (m *MockTransport) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns the number of Fetch invocations so far.
func (m *MockTransport) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastHeaders returns the headers passed to the most recent Fetch.
func (m *MockTransport) LastHeaders() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastHeaders
}

func (m *MockTransport) Fetch(_ context.Context, url string, headers map[string]string) (*remotefs.FetchResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastHeaders = headers
	if m.err != nil {
		return nil, m.err
	}
	if resp, ok := m.responses[url]; ok {
		return resp, nil
	}
	return &remotefs.FetchResponse{StatusCode: http.StatusNotFound, Header: http.Header{}}, nil
}

var _ remotefs.Transport = (*MockTransport)(nil)
