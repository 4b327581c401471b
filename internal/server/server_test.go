package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"remotefs-go/internal/remotefs"
	"remotefs-go/internal/testutil"
)

func newTestServer(t *testing.T) (*Server, *testutil.MockTransport, *testutil.RecordingStore) {
	t.Helper()
	transport := testutil.NewMockTransport()
	store := testutil.NewRecordingStore()
	svc := remotefs.NewIngestService(
		remotefs.NewFetcher(transport),
		store,
		remotefs.NewNopLogger(),
		testutil.FixedClock(),
		testutil.NewStubIDGenerator(),
	)
	return New(svc, remotefs.NewNopLogger()), transport, store
}

func postDownload(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/remotefs/download", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestDownloadSavesFile(t *testing.T) {
	srv, transport, store := newTestServer(t)
	transport.AddText("https://example.com/notes.txt", "some notes")

	rec := postDownload(t, srv, `{"remote_url": "https://example.com/notes.txt", "local_path": "docs/notes.txt"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	paths := store.Paths()
	want := []string{"docs", "docs/notes.txt"}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("expected %v, got %v", want, paths)
			break
		}
	}
}

func TestDownloadForwardsHeaders(t *testing.T) {
	srv, transport, _ := newTestServer(t)
	transport.AddText("https://example.com/private.txt", "secret")

	rec := postDownload(t, srv, `{
		"remote_url": "https://example.com/private.txt",
		"local_path": "private.txt",
		"headers": {"Authorization": "token abc"}
	}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if transport.LastHeaders()["Authorization"] != "token abc" {
		t.Errorf("expected forwarded header, got %v", transport.LastHeaders())
	}
}

func TestDownloadMalformedBody(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := postDownload(t, srv, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestDownloadMissingFields(t *testing.T) {
	srv, transport, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing url", `{"local_path": "docs/a.txt"}`},
		{"missing path", `{"remote_url": "https://example.com/a.txt"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postDownload(t, srv, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}

	if transport.Calls() != 0 {
		t.Errorf("expected no fetches for invalid requests, got %d", transport.Calls())
	}
}

func TestDownloadInvalidMode(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := postDownload(t, srv, `{"remote_url": "https://example.com/a.txt", "local_path": "a.txt", "unzip": "banana"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestDownloadTransportFailure(t *testing.T) {
	srv, _, _ := newTestServer(t)

	// Unknown URL yields a 404 from the mock transport.
	rec := postDownload(t, srv, `{"remote_url": "https://example.com/missing.txt", "local_path": "missing.txt"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
}

func TestDownloadFailureIsLogged(t *testing.T) {
	logger := testutil.NewRecordingLogger()
	svc := remotefs.NewIngestService(
		remotefs.NewFetcher(testutil.NewMockTransport()),
		testutil.NewRecordingStore(),
		remotefs.NewNopLogger(),
		testutil.FixedClock(),
		testutil.NewStubIDGenerator(),
	)
	srv := New(svc, logger)

	rec := postDownload(t, srv, `{"remote_url": "https://example.com/missing.txt", "local_path": "missing.txt"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}

	msgs := logger.Messages("ERROR")
	if len(msgs) != 1 || msgs[0] != "download failed" {
		t.Errorf("expected [download failed] in error log, got %v", msgs)
	}
}

func TestDownloadCorruptArchive(t *testing.T) {
	srv, transport, _ := newTestServer(t)
	transport.AddBinary("https://example.com/broken.zip", "application/zip", []byte("not a zip"))

	rec := postDownload(t, srv, `{"remote_url": "https://example.com/broken.zip", "local_path": "dest", "unzip": "zip"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
}

func TestDownloadStorageFailure(t *testing.T) {
	srv, transport, store := newTestServer(t)
	transport.AddText("https://example.com/a.txt", "content")
	store.FailOn("a.txt")

	rec := postDownload(t, srv, `{"remote_url": "https://example.com/a.txt", "local_path": "a.txt"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestDownloadZipArchive(t *testing.T) {
	srv, transport, store := newTestServer(t)

	archive := testutil.BuildZip(t, []testutil.ZipEntry{
		{Name: "a/"},
		{Name: "a/x.txt", Body: []byte("x")},
		{Name: "y.txt", Body: []byte("y")},
	})
	transport.AddBinary("https://example.com/bundle.zip", "application/zip", archive)

	rec := postDownload(t, srv, `{"remote_url": "https://example.com/bundle.zip", "local_path": "dest", "unzip": "auto"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	want := []string{"dest", "dest/a", "dest/a/x.txt", "dest/y.txt"}
	paths := store.Paths()
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("expected %v, got %v", want, paths)
			break
		}
	}
}
