package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/datamart/bulkorder/internal/domain"
)

type CandidateRepo struct {
	db *sql.DB
}

func NewCandidateRepo(db *sql.DB) *CandidateRepo {
	return &CandidateRepo{db: db}
}

func (r *CandidateRepo) BulkInsert(cands []domain.OrderCandidate) (int, error) {
	inserted := 0
	sqlTx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer sqlTx.Rollback()

	stmt, err := sqlTx.Prepare(
		`INSERT INTO candidates
		(id, batch_id, file_id, file_name, row_index, raw_phone, raw_capacity,
		 phone, capacity_value, capacity_unit, product_id, product_name, price,
		 valid, errors, status)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i := range cands {
		c := &cands[i]
		var capValue, capUnit any
		if c.Capacity != nil {
			capValue = c.Capacity.Value
			capUnit = string(c.Capacity.Unit)
		}
		res, err := stmt.Exec(
			c.ID, c.BatchID, c.FileID, c.FileName, c.RowIndex,
			c.RawPhone, c.RawCapacity, c.Phone, capValue, capUnit,
			c.ProductID, c.ProductName, c.Price,
			boolToInt(c.Valid), strings.Join(c.Errors, "\n"), string(c.Status),
		)
		if err != nil {
			return inserted, fmt.Errorf("insert row %d: %w", i, err)
		}
		ra, _ := res.RowsAffected()
		inserted += int(ra)
	}

	if err := sqlTx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

// CandidateFilter selects which candidates a listing returns.
type CandidateFilter string

const (
	FilterAll     CandidateFilter = "all"
	FilterValid   CandidateFilter = "valid"
	FilterInvalid CandidateFilter = "invalid"
)

// ListByBatch returns a batch's candidates in original row order.
func (r *CandidateRepo) ListByBatch(batchID string, filter CandidateFilter) ([]domain.OrderCandidate, error) {
	query := `SELECT id, batch_id, file_id, file_name, row_index, raw_phone,
		raw_capacity, phone, capacity_value, capacity_unit, product_id,
		product_name, price, valid, errors, status
		FROM candidates WHERE batch_id = ?`
	switch filter {
	case FilterValid:
		query += " AND valid = 1"
	case FilterInvalid:
		query += " AND valid = 0"
	}
	query += " ORDER BY rowid"

	rows, err := r.db.Query(query, batchID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var cands []domain.OrderCandidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		cands = append(cands, *c)
	}
	return cands, rows.Err()
}

func (r *CandidateRepo) CountByBatch(batchID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM candidates WHERE batch_id = ?", batchID).Scan(&count)
	return count, err
}

// DeleteByFile removes the rows one uploaded file contributed, leaving the
// rest of the batch intact.
func (r *CandidateRepo) DeleteByFile(batchID, fileID string) (int, error) {
	res, err := r.db.Exec(
		"DELETE FROM candidates WHERE batch_id = ? AND file_id = ?",
		batchID, fileID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete by file: %w", err)
	}
	ra, _ := res.RowsAffected()
	return int(ra), nil
}

func (r *CandidateRepo) DeleteByBatch(batchID string) error {
	if _, err := r.db.Exec("DELETE FROM candidates WHERE batch_id = ?", batchID); err != nil {
		return fmt.Errorf("delete by batch: %w", err)
	}
	return nil
}

// MarkValidCompleted flips every valid pending candidate to completed after
// a successful submission.
func (r *CandidateRepo) MarkValidCompleted(batchID string) error {
	_, err := r.db.Exec(
		"UPDATE candidates SET status = ? WHERE batch_id = ? AND valid = 1",
		string(domain.StatusCompleted), batchID,
	)
	if err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

// --- helpers ---

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func scanCandidate(rows *sql.Rows) (*domain.OrderCandidate, error) {
	var c domain.OrderCandidate
	var fileID, fileName, phone, productID, productName sql.NullString
	var capValue sql.NullFloat64
	var capUnit sql.NullString
	var valid int
	var errsText, status string

	err := rows.Scan(
		&c.ID, &c.BatchID, &fileID, &fileName, &c.RowIndex,
		&c.RawPhone, &c.RawCapacity, &phone, &capValue, &capUnit,
		&productID, &productName, &c.Price, &valid, &errsText, &status,
	)
	if err != nil {
		return nil, err
	}

	c.FileID = fileID.String
	c.FileName = fileName.String
	c.Phone = phone.String
	c.ProductID = productID.String
	c.ProductName = productName.String
	c.Valid = valid == 1
	c.Status = domain.CandidateStatus(status)

	if capValue.Valid {
		c.Capacity = &domain.Capacity{
			Value: capValue.Float64,
			Unit:  domain.CapacityUnit(capUnit.String),
		}
	}
	if errsText != "" {
		c.Errors = strings.Split(errsText, "\n")
	}

	return &c, nil
}
