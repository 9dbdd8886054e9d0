package ports

import (
	"context"

	"github.com/kmwaura/malipo-api/internal/application/dto"
)

// DocumentClassifier is the outbound port for AI document classification.
// Any adapter (Anthropic, Gemini, mock) implements this contract; the
// application layer only knows the interface.
//
// Classification is advisory: callers persist the result as metadata and
// must treat failures as non-fatal for the owning record.
type DocumentClassifier interface {
	// ClassifyDocument sends the file content (adapter handles encoding)
	// and declared MIME type, returning category, confidence 0-100 and a
	// short reasoning. Callers should bound ctx with a timeout.
	ClassifyDocument(ctx context.Context, fileName, mimeType string, content []byte) (*dto.DocumentClassificationDTO, error)
}
