// Package storage holds the object storage adapter for payment proofs and
// client documents.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kmwaura/malipo-api/internal/application/ports"
)

// Compile-time check that SupabaseStorage implements ObjectStorage.
var _ ports.ObjectStorage = (*SupabaseStorage)(nil)

// SupabaseStorage uploads objects to a Supabase Storage bucket over its REST
// API. Plain net/http; the official SDK is not required.
type SupabaseStorage struct {
	baseURL    string // e.g. https://xyz.supabase.co
	bucket     string
	serviceKey string
	httpClient *http.Client
}

// NewSupabaseStorage builds the adapter.
// With an empty serviceKey calls fail with a descriptive error instead of panicking.
func NewSupabaseStorage(baseURL, bucket, serviceKey string) *SupabaseStorage {
	return &SupabaseStorage{
		baseURL:    strings.TrimRight(baseURL, "/"),
		bucket:     bucket,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload stores data at path inside the bucket and returns the public URL.
// Existing objects at the same path are overwritten (x-upsert), so retried
// submissions do not fail on a half-written object.
func (s *SupabaseStorage) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	if s.serviceKey == "" {
		return "", fmt.Errorf("storage: SUPABASE_SERVICE_KEY not configured")
	}
	if path == "" || len(data) == 0 {
		return "", fmt.Errorf("storage: empty path or content")
	}

	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, strings.TrimLeft(path, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("storage: build HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("storage: timeout or cancellation: %w", ctx.Err())
		}
		return "", fmt.Errorf("storage: HTTP call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		rawBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return "", fmt.Errorf("storage: Supabase HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, strings.TrimLeft(path, "/"))
	return publicURL, nil
}
