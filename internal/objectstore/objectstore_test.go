package objectstore

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:    baseURL,
		Bucket:     "rabbits",
		ServiceKey: "service-key",
	}
}

func TestUpload_SendsOverwritingRequest(t *testing.T) {
	var gotPath, gotAuth, gotUpsert, gotContentType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotUpsert = r.Header.Get("x-upsert")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), srv.Client())

	payload := "fake image bytes"
	url, err := client.Upload(context.Background(), "rabbits/c0001.jpg", "image/jpeg", strings.NewReader(payload), int64(len(payload)))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if gotPath != "/storage/v1/object/rabbits/rabbits/c0001.jpg" {
		t.Errorf("wrong object path: %q", gotPath)
	}
	if gotAuth != "Bearer service-key" {
		t.Errorf("wrong authorization header: %q", gotAuth)
	}
	if gotUpsert != "true" {
		t.Errorf("upload must allow overwrite, x-upsert=%q", gotUpsert)
	}
	if gotContentType != "image/jpeg" {
		t.Errorf("wrong content type: %q", gotContentType)
	}
	if string(gotBody) != payload {
		t.Errorf("body did not arrive intact")
	}
	if url != srv.URL+"/storage/v1/object/public/rabbits/rabbits/c0001.jpg" {
		t.Errorf("wrong public url: %q", url)
	}
}

func TestUpload_TooLargeRejectedWithoutRequest(t *testing.T) {
	requested := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), srv.Client())

	_, err := client.Upload(context.Background(), "big.jpg", "image/jpeg", strings.NewReader("x"), MaxUploadSize+1)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if requested {
		t.Fatal("oversized uploads must be rejected before contacting storage")
	}
}

func TestUpload_EmptyPathRejected(t *testing.T) {
	client := New(testConfig("https://example.com"), nil)

	for _, path := range []string{"", "/", "  "} {
		if _, err := client.Upload(context.Background(), path, "", strings.NewReader("x"), 1); !errors.Is(err, ErrEmptyPath) {
			t.Errorf("path %q: expected ErrEmptyPath, got %v", path, err)
		}
	}
}

func TestUpload_NotConfigured(t *testing.T) {
	client := New(Config{}, nil)

	if client.Configured() {
		t.Fatal("empty settings must not count as configured")
	}
	if _, err := client.Upload(context.Background(), "a.jpg", "", strings.NewReader("x"), 1); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestUpload_StorageErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("bucket not found"))
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), srv.Client())

	_, err := client.Upload(context.Background(), "a.jpg", "", strings.NewReader("x"), 1)
	if err == nil || !strings.Contains(err.Error(), "bucket not found") {
		t.Fatalf("storage error body should surface, got %v", err)
	}
}

func TestPublicURL(t *testing.T) {
	client := New(testConfig("https://project.example.com/"), nil)

	got := client.PublicURL("/rabbits/c0001.jpg")
	want := "https://project.example.com/storage/v1/object/public/rabbits/rabbits/c0001.jpg"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
