package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/bladecost/internal/bladecost"
)

// DefaultPreset names the economic preset used when a request names none.
const DefaultPreset = "default"

// Preset is a named set of economic parameters.
type Preset struct {
	Name   string                   `json:"name"`
	Params bladecost.EconomicParams `json:"params"`
}

// GetPreset returns the economic parameters stored under name.
func (s *Store) GetPreset(ctx context.Context, name string) (bladecost.EconomicParams, error) {
	var p bladecost.EconomicParams
	err := s.db.QueryRowContext(ctx, `
		SELECT labor_rate, overhead_rate, electricity_rate, maintenance_rate, interest_rate, working_capital_period
		FROM economic_presets
		WHERE name = ?
	`, name).Scan(
		&p.LaborRate,
		&p.OverheadRate,
		&p.ElectricityRate,
		&p.MaintenanceRate,
		&p.InterestRate,
		&p.WorkingCapitalPeriod,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return bladecost.EconomicParams{}, fmt.Errorf("preset %q: %w", name, ErrNotFound)
		}
		return bladecost.EconomicParams{}, fmt.Errorf("query preset: %w", err)
	}
	return p, nil
}

// UpsertPreset creates or replaces the preset stored under name.
func (s *Store) UpsertPreset(ctx context.Context, name string, p bladecost.EconomicParams) error {
	if name == "" {
		return fmt.Errorf("preset name is required: %w", bladecost.ErrInvalidInput)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("preset %q: %w", name, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO economic_presets (
			name,
			labor_rate,
			overhead_rate,
			electricity_rate,
			maintenance_rate,
			interest_rate,
			working_capital_period
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			labor_rate = excluded.labor_rate,
			overhead_rate = excluded.overhead_rate,
			electricity_rate = excluded.electricity_rate,
			maintenance_rate = excluded.maintenance_rate,
			interest_rate = excluded.interest_rate,
			working_capital_period = excluded.working_capital_period,
			updated_at = CURRENT_TIMESTAMP
	`,
		name,
		p.LaborRate,
		p.OverheadRate,
		p.ElectricityRate,
		p.MaintenanceRate,
		p.InterestRate,
		p.WorkingCapitalPeriod,
	)
	if err != nil {
		return fmt.Errorf("upsert preset %q: %w", name, err)
	}
	return nil
}

// ListPresets returns every preset ordered by name.
func (s *Store) ListPresets(ctx context.Context) ([]Preset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, labor_rate, overhead_rate, electricity_rate, maintenance_rate, interest_rate, working_capital_period
		FROM economic_presets
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query presets: %w", err)
	}
	defer rows.Close()

	presets := make([]Preset, 0)
	for rows.Next() {
		var p Preset
		if err := rows.Scan(
			&p.Name,
			&p.Params.LaborRate,
			&p.Params.OverheadRate,
			&p.Params.ElectricityRate,
			&p.Params.MaintenanceRate,
			&p.Params.InterestRate,
			&p.Params.WorkingCapitalPeriod,
		); err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate presets: %w", err)
	}

	return presets, nil
}

// ClientActive reports whether an active API client exists under name.
func (s *Store) ClientActive(ctx context.Context, name string) (bool, error) {
	var active bool
	err := s.db.QueryRowContext(ctx, `SELECT active FROM api_clients WHERE name = ?`, name).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query api client: %w", err)
	}
	return active, nil
}

// SetClientActive enables or disables an existing API client.
func (s *Store) SetClientActive(ctx context.Context, name string, active bool) error {
	result, err := s.db.ExecContext(ctx, `UPDATE api_clients SET active = ? WHERE name = ?`, active, name)
	if err != nil {
		return fmt.Errorf("update api client: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update api client: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("api client %q: %w", name, ErrNotFound)
	}
	return nil
}
