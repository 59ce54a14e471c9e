// Package seed inserts the startup data a fresh installation needs: the cost
// parameter singleton, the document customer singleton and a base catalog of
// print products.
package seed

import (
	"database/sql"
	"fmt"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

type product struct {
	name           string
	priceFinal     float64
	pricePublisher float64
	designTime     int
}

// defaultCatalog carries per-cm2 rates in COP. Zero rates fall back to the
// general cost parameter during quoting.
var defaultCatalog = []product{
	{"PENDON", 3.0, 2.4, 30},
	{"PENDONES", 3.0, 2.4, 30},
	{"PENDON MAS OJALES", 3.2, 2.6, 30},
	{"PASACALLES", 3.5, 2.8, 45},
	{"BANNER PUBLICITARIO", 3.0, 2.4, 30},
	{"IMPRESIÓN EN VINILO REFLECTIVO", 6.0, 5.0, 15},
	{"VINILO MICROPERFORADO", 4.5, 3.8, 15},
	{"ADHESIVO", 2.8, 2.2, 15},
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureParams(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureDocumentInfo(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureCatalog(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureParams(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM params WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check params existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO params (
			id,
			cost_per_cm2,
			hourly_rate,
			tube_cost_factor,
			ojal_cost,
			stick_cost,
			waste,
			profit_margin_final,
			profit_margin_publisher,
			min_operative,
			iva
		)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, 2.5, 25000, 15, 1000, 2500, 0.1, 0.35, 0.25, 20000, 0.19); err != nil {
		return fmt.Errorf("insert params singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureDocumentInfo(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM document_info WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check document info existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`INSERT INTO document_info (id, customer_name, customer_phone) VALUES (1, '', '')`); err != nil {
		return fmt.Errorf("insert document info singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureCatalog(tx *sql.Tx, stats *Stats) error {
	for _, p := range defaultCatalog {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM products WHERE name = ? LIMIT 1)`, p.name).Scan(&exists); err != nil {
			return fmt.Errorf("check product existence: %w", err)
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(`
			INSERT INTO products (name, price_final, price_publisher, design_time)
			VALUES (?, ?, ?, ?)
		`, p.name, p.priceFinal, p.pricePublisher, p.designTime); err != nil {
			return fmt.Errorf("insert product %q: %w", p.name, err)
		}
		stats.Inserts++
	}
	return nil
}
