package bladecost

import (
	"encoding/json"
	"fmt"
)

// Field names one value of a Breakdown.
type Field int

const (
	TotalLaborHours Field = iota
	TotalNonGatingCT
	TotalMetallicPartsCost
	TotalConsumableCostWithWaste
	TotalBladeMatCostWithWaste
	TotalCostLabor
	TotalCostUtility
	BladeVariableCost
	TotalCostEquipment
	TotalCostTooling
	TotalCostBuilding
	TotalMaintenanceCost
	TotalLaborOverhead
	CostCapital
	BladeFixedCost
	TotalBladeCost

	fieldCount
)

// Fields lists every breakdown field in reporting order.
var Fields = [fieldCount]Field{
	TotalLaborHours,
	TotalNonGatingCT,
	TotalMetallicPartsCost,
	TotalConsumableCostWithWaste,
	TotalBladeMatCostWithWaste,
	TotalCostLabor,
	TotalCostUtility,
	BladeVariableCost,
	TotalCostEquipment,
	TotalCostTooling,
	TotalCostBuilding,
	TotalMaintenanceCost,
	TotalLaborOverhead,
	CostCapital,
	BladeFixedCost,
	TotalBladeCost,
}

var fieldNames = [fieldCount]string{
	TotalLaborHours:              "total_labor_hours",
	TotalNonGatingCT:             "total_non_gating_ct",
	TotalMetallicPartsCost:       "total_metallic_parts_cost",
	TotalConsumableCostWithWaste: "total_consumable_cost_w_waste",
	TotalBladeMatCostWithWaste:   "total_blade_mat_cost_w_waste",
	TotalCostLabor:               "total_cost_labor",
	TotalCostUtility:             "total_cost_utility",
	BladeVariableCost:            "blade_variable_cost",
	TotalCostEquipment:           "total_cost_equipment",
	TotalCostTooling:             "total_cost_tooling",
	TotalCostBuilding:            "total_cost_building",
	TotalMaintenanceCost:         "total_maintenance_cost",
	TotalLaborOverhead:           "total_labor_overhead",
	CostCapital:                  "cost_capital",
	BladeFixedCost:               "blade_fixed_cost",
	TotalBladeCost:               "total_blade_cost",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParseField returns the field with the given external name.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if fieldNames[f] == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown breakdown field %q: %w", name, ErrInvalidInput)
}

// Breakdown is the cost breakdown of one section, or of several sections combined.
// Values are only produced by Calculate, Aggregate and JointBreakdown; the zero value is
// the all-zero breakdown.
type Breakdown struct {
	values [fieldCount]float64
}

// Value returns the value of f.
func (b Breakdown) Value(f Field) float64 {
	if f < 0 || f >= fieldCount {
		return 0
	}
	return b.values[f]
}

func (b Breakdown) TotalLaborHours() float64 { return b.values[TotalLaborHours] }
func (b Breakdown) TotalNonGatingCT() float64 { return b.values[TotalNonGatingCT] }
func (b Breakdown) TotalMetallicPartsCost() float64 { return b.values[TotalMetallicPartsCost] }
func (b Breakdown) TotalConsumableCostWithWaste() float64 { return b.values[TotalConsumableCostWithWaste] }
func (b Breakdown) TotalBladeMatCostWithWaste() float64 { return b.values[TotalBladeMatCostWithWaste] }
func (b Breakdown) TotalCostLabor() float64 { return b.values[TotalCostLabor] }
func (b Breakdown) TotalCostUtility() float64 { return b.values[TotalCostUtility] }
func (b Breakdown) BladeVariableCost() float64 { return b.values[BladeVariableCost] }
func (b Breakdown) TotalCostEquipment() float64 { return b.values[TotalCostEquipment] }
func (b Breakdown) TotalCostTooling() float64 { return b.values[TotalCostTooling] }
func (b Breakdown) TotalCostBuilding() float64 { return b.values[TotalCostBuilding] }
func (b Breakdown) TotalMaintenanceCost() float64 { return b.values[TotalMaintenanceCost] }
func (b Breakdown) TotalLaborOverhead() float64 { return b.values[TotalLaborOverhead] }
func (b Breakdown) CostCapital() float64 { return b.values[CostCapital] }
func (b Breakdown) BladeFixedCost() float64 { return b.values[BladeFixedCost] }
func (b Breakdown) TotalBladeCost() float64 { return b.values[TotalBladeCost] }

// Named returns the breakdown keyed by "<prefix>.<field>". An empty prefix yields bare
// field names.
func (b Breakdown) Named(prefix string) map[string]float64 {
	out := make(map[string]float64, fieldCount)
	for _, f := range Fields {
		key := fieldNames[f]
		if prefix != "" {
			key = prefix + "." + key
		}
		out[key] = b.values[f]
	}
	return out
}

// MarshalJSON encodes the breakdown as an object keyed by field name.
func (b Breakdown) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Named(""))
}

func (b Breakdown) checkFinite() error {
	for _, f := range Fields {
		if err := checkFinite(fieldNames[f], b.values[f]); err != nil {
			return err
		}
	}
	return nil
}
