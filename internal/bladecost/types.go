package bladecost

import (
	"fmt"
	"math"
)

// MaterialKind classifies a material item for reporting.
type MaterialKind int

const (
	// MaterialConsumable covers non-structural process consumables (peel ply, bagging, tape).
	MaterialConsumable MaterialKind = iota
	// MaterialMetallic covers metallic parts (root bolts, barrel nuts, lightning protection).
	MaterialMetallic
	// MaterialStructural covers laminate and core materials. They are only counted in the
	// combined material total.
	MaterialStructural
)

func (k MaterialKind) String() string {
	switch k {
	case MaterialConsumable:
		return "consumable"
	case MaterialMetallic:
		return "metallic"
	case MaterialStructural:
		return "structural"
	default:
		return fmt.Sprintf("MaterialKind(%d)", int(k))
	}
}

// ParseMaterialKind maps a kind name to a MaterialKind.
func ParseMaterialKind(name string) (MaterialKind, error) {
	switch name {
	case "consumable":
		return MaterialConsumable, nil
	case "metallic":
		return MaterialMetallic, nil
	case "structural":
		return MaterialStructural, nil
	default:
		return 0, fmt.Errorf("material kind %q: %w", name, ErrInvalidInput)
	}
}

// MaterialItem is one purchased material of a section. Quantity is a mass or an area,
// matching the unit of UnitCost.
type MaterialItem struct {
	Name          string
	Quantity      float64
	UnitCost      float64
	WasteFraction float64
	Kind          MaterialKind
}

// IsMetallic reports whether the item belongs to the metallic parts partition.
func (m MaterialItem) IsMetallic() bool {
	return m.Kind == MaterialMetallic
}

// ProcessStep is one manufacturing step. CycleTime is in hours and EnergyKW is the
// average electrical draw while the step runs.
type ProcessStep struct {
	Name       string
	LaborHours float64
	CycleTime  float64
	Gating     bool
	EnergyKW   float64
}

// FacilityParams holds the capital outlay of the production line and its amortization.
type FacilityParams struct {
	EquipmentCapital float64
	ToolingCapital   float64
	BuildingCapital  float64
	EquipmentLife    float64
	ToolingLife      float64
	BuildingLife     float64
	AnnualVolume     float64
}

// EconomicParams holds the rates applied on top of the physical quantities.
type EconomicParams struct {
	LaborRate            float64 `json:"labor_rate"`
	OverheadRate         float64 `json:"overhead_rate"`
	ElectricityRate      float64 `json:"electricity_rate"`
	MaintenanceRate      float64 `json:"maintenance_rate"`
	InterestRate         float64 `json:"interest_rate"`
	WorkingCapitalPeriod float64 `json:"working_capital_period"`
}

// EconomicFieldNames lists the names accepted by EconomicParams.Override.
var EconomicFieldNames = []string{
	"labor_rate",
	"overhead_rate",
	"electricity_rate",
	"maintenance_rate",
	"interest_rate",
	"working_capital_period",
}

// Override returns a copy of p with the named field replaced.
func (p EconomicParams) Override(name string, value float64) (EconomicParams, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return p, fmt.Errorf("override %s=%v: %w", name, value, ErrInvalidInput)
	}
	switch name {
	case "labor_rate":
		p.LaborRate = value
	case "overhead_rate":
		p.OverheadRate = value
	case "electricity_rate":
		p.ElectricityRate = value
	case "maintenance_rate":
		p.MaintenanceRate = value
	case "interest_rate":
		p.InterestRate = value
	case "working_capital_period":
		p.WorkingCapitalPeriod = value
	default:
		return p, fmt.Errorf("unknown economic parameter %q: %w", name, ErrInvalidInput)
	}
	return p, nil
}

// WithOverrides applies every override in the map to a copy of p. Keys are applied in
// EconomicFieldNames order so the first failure reported is stable.
func (p EconomicParams) WithOverrides(overrides map[string]float64) (EconomicParams, error) {
	for name := range overrides {
		if !isEconomicField(name) {
			return p, fmt.Errorf("unknown economic parameter %q: %w", name, ErrInvalidInput)
		}
	}
	out := p
	for _, name := range EconomicFieldNames {
		value, ok := overrides[name]
		if !ok {
			continue
		}
		var err error
		if out, err = out.Override(name, value); err != nil {
			return p, err
		}
	}
	return out, nil
}

func isEconomicField(name string) bool {
	for _, n := range EconomicFieldNames {
		if n == name {
			return true
		}
	}
	return false
}

// DesignInput is everything needed to cost one manufactured section.
type DesignInput struct {
	Materials []MaterialItem
	Processes []ProcessStep
	Facility  FacilityParams
	Economics EconomicParams
}

// Validate checks every structural precondition of the input.
func (in DesignInput) Validate() error {
	for _, m := range in.Materials {
		if err := validateMaterial(m); err != nil {
			return err
		}
	}
	for _, p := range in.Processes {
		if err := validateProcess(p); err != nil {
			return err
		}
	}
	if err := validateFacility(in.Facility); err != nil {
		return err
	}
	return in.Economics.Validate()
}

// Validate checks that every rate is finite and non-negative.
func (p EconomicParams) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"labor_rate", p.LaborRate},
		{"overhead_rate", p.OverheadRate},
		{"electricity_rate", p.ElectricityRate},
		{"maintenance_rate", p.MaintenanceRate},
		{"interest_rate", p.InterestRate},
		{"working_capital_period", p.WorkingCapitalPeriod},
	}
	for _, c := range checks {
		if err := nonNegative("economics", c.name, c.value); err != nil {
			return err
		}
	}
	return nil
}

func nonNegative(scope, name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s: %s is not finite: %w", scope, name, ErrInvalidInput)
	}
	if value < 0 {
		return fmt.Errorf("%s: %s must be >= 0, got %v: %w", scope, name, value, ErrInvalidInput)
	}
	return nil
}

func positive(scope, name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s: %s is not finite: %w", scope, name, ErrInvalidInput)
	}
	if value <= 0 {
		return fmt.Errorf("%s: %s must be > 0, got %v: %w", scope, name, value, ErrInvalidInput)
	}
	return nil
}
