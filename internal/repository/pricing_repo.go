package repository

import (
	"database/sql"
	"fmt"

	"github.com/datamart/bulkorder/internal/pricing"
)

// PricingRepo persists the editable calculator price table. The table itself
// stays a plain value object; this is the load/save boundary.
type PricingRepo struct {
	db *sql.DB
}

func NewPricingRepo(db *sql.DB) *PricingRepo {
	return &PricingRepo{db: db}
}

func (r *PricingRepo) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM price_tiers").Scan(&count)
	return count, err
}

func (r *PricingRepo) Load() (pricing.PriceTable, error) {
	rows, err := r.db.Query("SELECT capacity, price FROM price_tiers ORDER BY capacity")
	if err != nil {
		return pricing.PriceTable{}, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var tiers []pricing.Tier
	for rows.Next() {
		var t pricing.Tier
		if err := rows.Scan(&t.Capacity, &t.Price); err != nil {
			return pricing.PriceTable{}, fmt.Errorf("scan: %w", err)
		}
		tiers = append(tiers, t)
	}
	if err := rows.Err(); err != nil {
		return pricing.PriceTable{}, err
	}
	return pricing.New(tiers), nil
}

// Save replaces the whole table in one transaction.
func (r *PricingRepo) Save(tiers []pricing.Tier) error {
	sqlTx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer sqlTx.Rollback()

	if _, err := sqlTx.Exec("DELETE FROM price_tiers"); err != nil {
		return fmt.Errorf("clear tiers: %w", err)
	}

	stmt, err := sqlTx.Prepare("INSERT INTO price_tiers (capacity, price) VALUES (?,?)")
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, t := range tiers {
		if _, err := stmt.Exec(t.Capacity, t.Price); err != nil {
			return fmt.Errorf("insert tier %v: %w", t.Capacity, err)
		}
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
