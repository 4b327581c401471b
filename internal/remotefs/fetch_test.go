package remotefs_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"remotefs-go/internal/remotefs"
	"remotefs-go/internal/testutil"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Run("text content type yields a text record", func(t *testing.T) {
		tr := testutil.NewMockTransport()
		tr.AddText("http://example.com/notes.txt", "hello world")
		f := remotefs.NewFetcher(tr)

		rec, err := f.Fetch(context.Background(), "http://example.com/notes.txt", "docs/notes.txt", nil)
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if rec.Name != "notes.txt" || rec.Path != "docs/notes.txt" {
			t.Errorf("record = %s (%s), want notes.txt (docs/notes.txt)", rec.Name, rec.Path)
		}
		if rec.Format != remotefs.FormatText || rec.Mimetype != remotefs.MimeTextPlain {
			t.Errorf("encoding = %s/%s, want text/text-plain", rec.Format, rec.Mimetype)
		}
		if rec.Content != "hello world" {
			t.Errorf("content = %q, want %q", rec.Content, "hello world")
		}
	})

	t.Run("binary content type yields a base64 record", func(t *testing.T) {
		body := []byte{0x89, 0x50, 0x4E, 0x47}
		tr := testutil.NewMockTransport()
		tr.AddBinary("http://example.com/img.png", "image/png", body)
		f := remotefs.NewFetcher(tr)

		rec, err := f.Fetch(context.Background(), "http://example.com/img.png", "img.png", nil)
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if rec.Format != remotefs.FormatBase64 || rec.Mimetype != remotefs.MimeOctetStream {
			t.Errorf("encoding = %s/%s, want base64/octet-stream", rec.Format, rec.Mimetype)
		}
		if want := base64.StdEncoding.EncodeToString(body); rec.Content != want {
			t.Errorf("content = %q, want %q", rec.Content, want)
		}
	})

	t.Run("missing content type is treated as binary", func(t *testing.T) {
		tr := testutil.NewMockTransport()
		tr.AddBinary("http://example.com/blob", "", []byte("data"))
		f := remotefs.NewFetcher(tr)

		rec, err := f.Fetch(context.Background(), "http://example.com/blob", "blob", nil)
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if rec.Format != remotefs.FormatBase64 {
			t.Errorf("format = %s, want base64", rec.Format)
		}
	})

	t.Run("invalid UTF-8 under a text content type is a format error", func(t *testing.T) {
		tr := testutil.NewMockTransport()
		tr.Add("http://example.com/bad", &remotefs.FetchResponse{
			StatusCode: 200,
			Header:     textPlainHeader(),
			Body:       []byte{0xFF, 0xFE, 0xFD},
		})
		f := remotefs.NewFetcher(tr)

		_, err := f.Fetch(context.Background(), "http://example.com/bad", "bad", nil)
		if !errors.Is(err, remotefs.ErrFormat) {
			t.Errorf("error = %v, want ErrFormat", err)
		}
	})

	t.Run("target path ending in a separator is rejected before any fetch", func(t *testing.T) {
		tr := testutil.NewMockTransport()
		f := remotefs.NewFetcher(tr)

		_, err := f.Fetch(context.Background(), "http://example.com/x", "some/dir/", nil)
		if !errors.Is(err, remotefs.ErrPath) {
			t.Errorf("error = %v, want ErrPath", err)
		}
		if tr.Calls() != 0 {
			t.Errorf("transport calls = %d, want 0", tr.Calls())
		}
	})

	t.Run("non-success status is a transport error", func(t *testing.T) {
		tr := testutil.NewMockTransport()
		f := remotefs.NewFetcher(tr)

		// No canned response registered: the mock answers 404.
		_, err := f.Fetch(context.Background(), "http://example.com/missing", "missing", nil)
		if !errors.Is(err, remotefs.ErrTransport) {
			t.Errorf("error = %v, want ErrTransport", err)
		}
	})

	t.Run("connection failure is a transport error", func(t *testing.T) {
		tr := testutil.NewMockTransport()
		tr.FailWith(errors.New("connection refused"))
		f := remotefs.NewFetcher(tr)

		_, err := f.Fetch(context.Background(), "http://example.com/x", "x", nil)
		if !errors.Is(err, remotefs.ErrTransport) {
			t.Errorf("error = %v, want ErrTransport", err)
		}
	})

	t.Run("caller headers reach the transport", func(t *testing.T) {
		tr := testutil.NewMockTransport()
		tr.AddText("http://example.com/secure", "ok")
		f := remotefs.NewFetcher(tr)

		headers := map[string]string{"Authorization": "Bearer token"}
		if _, err := f.Fetch(context.Background(), "http://example.com/secure", "secure", headers); err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if got := tr.LastHeaders()["Authorization"]; got != "Bearer token" {
			t.Errorf("Authorization header = %q, want %q", got, "Bearer token")
		}
	})
}

func textPlainHeader() map[string][]string {
	return map[string][]string{"Content-Type": {"text/plain"}}
}
