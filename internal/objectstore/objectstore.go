// Package objectstore uploads catalog images to the hosted object
// storage service and resolves their public URLs.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// MaxUploadSize is the upload limit; larger payloads are rejected
	// before any bytes reach the storage service.
	MaxUploadSize = 10 << 20 // 10 MB

	defaultTimeout = 30 * time.Second
)

var (
	ErrNotConfigured = errors.New("object storage not configured")
	ErrEmptyPath     = errors.New("destination path is required")
	ErrTooLarge      = fmt.Errorf("file exceeds the %d MB upload limit", MaxUploadSize>>20)
)

// Client talks to the storage service's HTTP API. The zero value is not
// usable; construct with New.
type Client struct {
	httpClient *http.Client
	baseURL    string
	bucket     string
	serviceKey string
}

// Config holds the storage connection settings
type Config struct {
	BaseURL    string
	Bucket     string
	ServiceKey string
}

// Configured reports whether the connection settings are present
func (c Config) Configured() bool {
	return c.BaseURL != "" && c.ServiceKey != ""
}

// New creates a storage client. An http.Client may be injected for tests;
// nil gets a default with a sane timeout.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	bucket := cfg.Bucket
	if bucket == "" {
		bucket = "rabbits"
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		bucket:     bucket,
		serviceKey: cfg.ServiceKey,
	}
}

// Configured reports whether the client can reach the storage service
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.serviceKey != ""
}

// Upload sends the payload to the given path with overwrite allowed, so
// re-uploading to the same path replaces prior content. It returns the
// public URL of the stored object. size must be the payload length;
// anything over MaxUploadSize is rejected without contacting storage.
func (c *Client) Upload(ctx context.Context, path, contentType string, body io.Reader, size int64) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	if strings.Trim(path, "/ ") == "" {
		return "", ErrEmptyPath
	}
	if size > MaxUploadSize {
		return "", ErrTooLarge
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, strings.TrimLeft(path, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")
	req.ContentLength = size

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("upload failed: storage returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	return c.PublicURL(path), nil
}

// PublicURL resolves the public URL of an object at path
func (c *Client) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, strings.TrimLeft(path, "/"))
}
