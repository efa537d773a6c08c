package repository

import (
	"database/sql"
	"fmt"

	"github.com/datamart/bulkorder/internal/domain"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count)
	return count, err
}

func (r *ProductRepo) BulkInsert(products []domain.Product) (int, error) {
	inserted := 0
	sqlTx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer sqlTx.Rollback()

	stmt, err := sqlTx.Prepare(
		`INSERT OR IGNORE INTO products
		(id, product_code, name, capacity_value, capacity_unit, capacity, price)
		VALUES (?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i := range products {
		p := &products[i]
		res, err := stmt.Exec(
			p.ID, p.ProductCode, p.Name, p.CapacityValue,
			string(p.CapacityUnit), p.Capacity, p.Price,
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

// List returns the full catalog ordered by capacity, MB tiers before GB.
func (r *ProductRepo) List() ([]domain.Product, error) {
	rows, err := r.db.Query(
		`SELECT id, product_code, name, capacity_value, capacity_unit, capacity, price
		 FROM products
		 ORDER BY CASE capacity_unit WHEN 'MB' THEN 0 ELSE 1 END, capacity_value`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var unit string
		if err := rows.Scan(&p.ID, &p.ProductCode, &p.Name, &p.CapacityValue,
			&unit, &p.Capacity, &p.Price); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		p.CapacityUnit = domain.CapacityUnit(unit)
		products = append(products, p)
	}
	return products, rows.Err()
}
