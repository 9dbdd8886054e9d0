package ports

import "context"

// ObjectStorage is the outbound port for file storage. The core hands over
// bytes and a logical path and keeps only the returned reference; it never
// stores file content itself.
type ObjectStorage interface {
	Upload(ctx context.Context, path, contentType string, data []byte) (url string, err error)
}
