package port

import (
	"context"

	"lading/internal/docai"
)

// DocumentAnalyzer abstracts the external document-analysis processor that
// turns raw file bytes into OCR text, form fields, tables, and entities.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, fileBytes []byte, contentType string) (*docai.Document, error)
}
