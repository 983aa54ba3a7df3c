package export

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/skhandal/doi/pkg/application/dto"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	window_days INTEGER NOT NULL,
	generated_at TEXT NOT NULL,
	row_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS doi_rows (
	run_id TEXT NOT NULL REFERENCES runs(id),
	city TEXT NOT NULL,
	item_code TEXT NOT NULL,
	product_name TEXT NOT NULL,
	units_sold INTEGER NOT NULL,
	warehouse_qty INTEGER NOT NULL,
	open_po_quantity INTEGER NOT NULL,
	doi REAL NOT NULL
);`

// WriteSQLite appends the run and its final table to a SQLite file.
// Earlier runs in the same file are kept, keyed by run ID.
func WriteSQLite(result *dto.Result, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite file: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO runs (id, window_days, generated_at, row_count) VALUES (?, ?, ?, ?)`,
		result.RunID.String(),
		result.WindowDays,
		time.Now().UTC().Format(time.RFC3339),
		len(result.Rows),
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO doi_rows (run_id, city, item_code, product_name, units_sold, warehouse_qty, open_po_quantity, doi)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare row insert: %w", err)
	}
	for _, row := range dto.RowsFrom(result.Rows) {
		if _, err := stmt.Exec(
			result.RunID.String(),
			row.City,
			row.ItemCode,
			row.ProductName,
			row.UnitsSold,
			row.WarehouseQty,
			row.OpenPoQuantity,
			row.DOI,
		); err != nil {
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("failed to insert row: %w", err)
		}
	}
	stmt.Close()

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
