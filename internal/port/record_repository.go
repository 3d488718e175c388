package port

import (
	"context"

	"github.com/google/uuid"

	"lading/internal/domain"
)

// RecordRepository defines the contract for parsed-record persistence.
type RecordRepository interface {
	Create(ctx context.Context, row *domain.RecordRow) error
	CreateBatch(ctx context.Context, rows []domain.RecordRow) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RecordRow, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.RecordRow, error)
	List(ctx context.Context, offset, limit int) ([]domain.RecordRow, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
