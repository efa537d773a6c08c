package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/datamart/bulkorder/internal/domain"
)

type BatchRepo struct {
	db *sql.DB
}

func NewBatchRepo(db *sql.DB) *BatchRepo {
	return &BatchRepo{db: db}
}

func (r *BatchRepo) Create(b *domain.Batch) error {
	_, err := r.db.Exec(
		`INSERT INTO batches (id, state, created_at, updated_at) VALUES (?,?,?,?)`,
		b.ID, string(b.State),
		b.CreatedAt.Format(time.RFC3339), b.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

func (r *BatchRepo) GetByID(id string) (*domain.Batch, error) {
	row := r.db.QueryRow("SELECT id, state, created_at, updated_at FROM batches WHERE id = ?", id)

	var b domain.Batch
	var state, createdAt, updatedAt string
	if err := row.Scan(&b.ID, &state, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	b.State = domain.BatchState(state)
	b.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	b.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &b, nil
}

func (r *BatchRepo) UpdateState(id string, state domain.BatchState) error {
	_, err := r.db.Exec(
		"UPDATE batches SET state = ?, updated_at = ? WHERE id = ?",
		string(state), time.Now().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("update batch state: %w", err)
	}
	return nil
}
