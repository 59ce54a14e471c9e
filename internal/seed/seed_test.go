package seed

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/estrategiasdpm/cotizador/internal/db"
	"github.com/estrategiasdpm/cotizador/internal/migrations"
)

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	// Singletons plus the base catalog.
	wantFirstRun := 2 + len(defaultCatalog)

	for i := 0; i < 10; i++ {
		stats, err := Run(database)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != wantFirstRun {
				t.Fatalf("expected %d inserts in first run, got %d", wantFirstRun, stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM params WHERE id = 1`, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM document_info WHERE id = 1`, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM products`, len(defaultCatalog))

	var iva float64
	if err := database.QueryRow(`SELECT iva FROM params WHERE id = 1`).Scan(&iva); err != nil {
		t.Fatalf("query seeded iva: %v", err)
	}
	if iva != 0.19 {
		t.Fatalf("expected seeded iva 0.19, got %v", iva)
	}
}

func TestRunKeepsOperatorChanges(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-keep-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := Run(database); err != nil {
		t.Fatalf("first seed run: %v", err)
	}

	// Operator edits must survive later startups.
	if _, err := database.Exec(`UPDATE params SET hourly_rate = 32000 WHERE id = 1`); err != nil {
		t.Fatalf("update hourly rate: %v", err)
	}
	if _, err := database.Exec(`UPDATE products SET price_final = 9.9 WHERE name = 'PENDON'`); err != nil {
		t.Fatalf("update product rate: %v", err)
	}

	if _, err := Run(database); err != nil {
		t.Fatalf("second seed run: %v", err)
	}

	var hourlyRate float64
	if err := database.QueryRow(`SELECT hourly_rate FROM params WHERE id = 1`).Scan(&hourlyRate); err != nil {
		t.Fatalf("query hourly rate: %v", err)
	}
	if hourlyRate != 32000 {
		t.Fatalf("expected hourly rate 32000 after reseed, got %v", hourlyRate)
	}

	var rate float64
	if err := database.QueryRow(`SELECT price_final FROM products WHERE name = 'PENDON'`).Scan(&rate); err != nil {
		t.Fatalf("query product rate: %v", err)
	}
	if rate != 9.9 {
		t.Fatalf("expected product rate 9.9 after reseed, got %v", rate)
	}
}

func assertCount(t *testing.T, database *sql.DB, query string, expected int) {
	t.Helper()

	var count int
	if err := database.QueryRow(query).Scan(&count); err != nil {
		t.Fatalf("count query %q: %v", query, err)
	}
	if count != expected {
		t.Fatalf("query %q: expected %d rows, got %d", query, expected, count)
	}
}
