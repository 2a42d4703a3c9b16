package seed

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/bladecost/internal/bladecost"
)

const defaultPresetName = "default"

// DefaultEconomics are the rates stored in the default preset on first start.
var DefaultEconomics = bladecost.EconomicParams{
	LaborRate:            24.8,
	OverheadRate:         0.3,
	ElectricityRate:      0.08,
	MaintenanceRate:      0.04,
	InterestRate:         0.12,
	WorkingCapitalPeriod: 0.5,
}

// Config contains the values required by startup seed.
type Config struct {
	AdminClient string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureAdminClient(tx, cfg.AdminClient, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureDefaultPreset(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

// ensureAdminClient inserts the admin client, re-enabling it if it was disabled.
func ensureAdminClient(tx *sql.Tx, name string, stats *Stats) error {
	if name == "" {
		return nil
	}

	var active sql.NullBool
	err := tx.QueryRow(`SELECT active FROM api_clients WHERE name = ?`, name).Scan(&active)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.Exec(`INSERT INTO api_clients (name, active) VALUES (?, ?)`, name, true); err != nil {
			return fmt.Errorf("insert admin client: %w", err)
		}
		stats.Inserts++
		return nil
	case err != nil:
		return fmt.Errorf("check admin client existence: %w", err)
	}

	if active.Valid && active.Bool {
		return nil
	}
	if _, err := tx.Exec(`UPDATE api_clients SET active = ? WHERE name = ?`, true, name); err != nil {
		return fmt.Errorf("reactivate admin client: %w", err)
	}
	stats.Updates++
	return nil
}

func ensureDefaultPreset(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM economic_presets WHERE name = ? LIMIT 1)`, defaultPresetName).Scan(&exists); err != nil {
		return fmt.Errorf("check default preset existence: %w", err)
	}
	if exists {
		return nil
	}

	e := DefaultEconomics
	if _, err := tx.Exec(`
		INSERT INTO economic_presets (
			name,
			labor_rate,
			overhead_rate,
			electricity_rate,
			maintenance_rate,
			interest_rate,
			working_capital_period
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, defaultPresetName, e.LaborRate, e.OverheadRate, e.ElectricityRate, e.MaintenanceRate, e.InterestRate, e.WorkingCapitalPeriod); err != nil {
		return fmt.Errorf("insert default preset: %w", err)
	}
	stats.Inserts++
	return nil
}
