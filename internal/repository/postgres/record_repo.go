package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lading/internal/domain"
	"lading/internal/port"
)

type recordRepo struct {
	db *sqlx.DB
}

// NewRecordRepo creates a new PostgreSQL-backed RecordRepository.
func NewRecordRepo(db *sqlx.DB) port.RecordRepository {
	return &recordRepo{db: db}
}

const insertRecordQuery = `INSERT INTO shipment_records (
	id, document_id, record_id, bol_number,
	shipper_name, consignee_name, carrier_name, ship_date,
	overall_confidence, warnings, payload, source_file_name, created_at
) VALUES (
	:id, :document_id, :record_id, :bol_number,
	:shipper_name, :consignee_name, :carrier_name, :ship_date,
	:overall_confidence, :warnings, :payload, :source_file_name, :created_at
)`

func (r *recordRepo) Create(ctx context.Context, row *domain.RecordRow) error {
	if row.ID == (uuid.UUID{}) {
		row.ID = uuid.New()
	}
	row.CreatedAt = time.Now().UTC()

	if _, err := r.db.NamedExecContext(ctx, insertRecordQuery, row); err != nil {
		return fmt.Errorf("recordRepo.Create: %w", err)
	}
	return nil
}

func (r *recordRepo) CreateBatch(ctx context.Context, rows []domain.RecordRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("recordRepo.CreateBatch begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for i := range rows {
		if rows[i].ID == (uuid.UUID{}) {
			rows[i].ID = uuid.New()
		}
		rows[i].CreatedAt = now
		if _, err := tx.NamedExecContext(ctx, insertRecordQuery, &rows[i]); err != nil {
			return fmt.Errorf("recordRepo.CreateBatch insert: %w", err)
		}
	}
	return tx.Commit()
}

func (r *recordRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.RecordRow, error) {
	var row domain.RecordRow
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM shipment_records WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("recordRepo.GetByID: %w", err)
	}
	return &row, nil
}

func (r *recordRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.RecordRow, error) {
	var rows []domain.RecordRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM shipment_records WHERE document_id = $1 ORDER BY record_id`,
		documentID)
	if err != nil {
		return nil, fmt.Errorf("recordRepo.ListByDocument: %w", err)
	}
	return rows, nil
}

func (r *recordRepo) List(ctx context.Context, offset, limit int) ([]domain.RecordRow, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM shipment_records"); err != nil {
		return nil, 0, fmt.Errorf("recordRepo.List count: %w", err)
	}

	var rows []domain.RecordRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM shipment_records ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("recordRepo.List: %w", err)
	}
	return rows, total, nil
}

func (r *recordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM shipment_records WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("recordRepo.Delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("recordRepo.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}
