package seed

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Simplici0/bladecost/internal/bladecost"
	"github.com/Simplici0/bladecost/internal/db"
	"github.com/Simplici0/bladecost/internal/migrations"
)

func openSeeded(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestRunIsIdempotent(t *testing.T) {
	database := openSeeded(t)
	cfg := Config{AdminClient: "admin"}

	for i := 0; i < 10; i++ {
		stats, err := Run(database, cfg)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 2 {
				t.Fatalf("expected 2 inserts in first run, got %d", stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 || stats.Updates != 0 {
			t.Fatalf("expected no changes in iteration %d, got %+v", i, stats)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM api_clients WHERE name = ? AND active`, "admin", 1)
	assertCount(t, database, `SELECT COUNT(*) FROM economic_presets WHERE name = ?`, "default", 1)

	var labor, maintenance float64
	if err := database.QueryRow(`SELECT labor_rate, maintenance_rate FROM economic_presets WHERE name = ?`, "default").Scan(&labor, &maintenance); err != nil {
		t.Fatalf("query default preset: %v", err)
	}
	if labor != DefaultEconomics.LaborRate || maintenance != DefaultEconomics.MaintenanceRate {
		t.Fatalf("unexpected default preset: labor=%v maintenance=%v", labor, maintenance)
	}
}

func TestRunStoresDefaultEconomics(t *testing.T) {
	database := openSeeded(t)

	if err := DefaultEconomics.Validate(); err != nil {
		t.Fatalf("default economics are invalid: %v", err)
	}
	if _, err := Run(database, Config{}); err != nil {
		t.Fatalf("run seed: %v", err)
	}

	var got bladecost.EconomicParams
	if err := database.QueryRow(`
		SELECT labor_rate, overhead_rate, electricity_rate, maintenance_rate, interest_rate, working_capital_period
		FROM economic_presets
		WHERE name = ?
	`, "default").Scan(
		&got.LaborRate,
		&got.OverheadRate,
		&got.ElectricityRate,
		&got.MaintenanceRate,
		&got.InterestRate,
		&got.WorkingCapitalPeriod,
	); err != nil {
		t.Fatalf("query default preset: %v", err)
	}
	if got != DefaultEconomics {
		t.Fatalf("default preset = %+v, want %+v", got, DefaultEconomics)
	}
}

func TestRunKeepsEditedPreset(t *testing.T) {
	database := openSeeded(t)

	if _, err := Run(database, Config{}); err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if _, err := database.Exec(`UPDATE economic_presets SET labor_rate = 40 WHERE name = ?`, "default"); err != nil {
		t.Fatalf("edit preset: %v", err)
	}
	if _, err := Run(database, Config{}); err != nil {
		t.Fatalf("rerun seed: %v", err)
	}

	var labor float64
	if err := database.QueryRow(`SELECT labor_rate FROM economic_presets WHERE name = ?`, "default").Scan(&labor); err != nil {
		t.Fatalf("query default preset: %v", err)
	}
	if labor != 40 {
		t.Fatalf("expected edited labor rate to survive, got %v", labor)
	}
	assertCount(t, database, `SELECT COUNT(*) FROM api_clients`, nil, 0)
}

func TestRunReactivatesAdminClient(t *testing.T) {
	database := openSeeded(t)
	cfg := Config{AdminClient: "admin"}

	if _, err := Run(database, cfg); err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if _, err := database.Exec(`UPDATE api_clients SET active = FALSE WHERE name = ?`, "admin"); err != nil {
		t.Fatalf("disable admin: %v", err)
	}

	stats, err := Run(database, cfg)
	if err != nil {
		t.Fatalf("rerun seed: %v", err)
	}
	if stats.Updates != 1 {
		t.Fatalf("expected 1 update, got %+v", stats)
	}
	assertCount(t, database, `SELECT COUNT(*) FROM api_clients WHERE name = ? AND active`, "admin", 1)
}

func assertCount(t *testing.T, database *sql.DB, query string, args any, expected int) {
	t.Helper()

	var count int
	var err error
	switch v := args.(type) {
	case nil:
		err = database.QueryRow(query).Scan(&count)
	case []any:
		err = database.QueryRow(query, v...).Scan(&count)
	default:
		err = database.QueryRow(query, v).Scan(&count)
	}
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
