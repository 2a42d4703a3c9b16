package bladecost

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseField_RoundTripsEveryName(t *testing.T) {
	for _, f := range Fields {
		got, err := ParseField(f.String())
		if err != nil {
			t.Fatalf("ParseField(%q): %v", f, err)
		}
		if got != f {
			t.Fatalf("ParseField(%q) = %v, want %v", f, got, f)
		}
	}
	if _, err := ParseField("total_profit"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestBreakdown_GettersMatchValue(t *testing.T) {
	b := inboardPanel()
	getters := map[Field]func() float64{
		TotalLaborHours:              b.TotalLaborHours,
		TotalNonGatingCT:             b.TotalNonGatingCT,
		TotalMetallicPartsCost:       b.TotalMetallicPartsCost,
		TotalConsumableCostWithWaste: b.TotalConsumableCostWithWaste,
		TotalBladeMatCostWithWaste:   b.TotalBladeMatCostWithWaste,
		TotalCostLabor:               b.TotalCostLabor,
		TotalCostUtility:             b.TotalCostUtility,
		BladeVariableCost:            b.BladeVariableCost,
		TotalCostEquipment:           b.TotalCostEquipment,
		TotalCostTooling:             b.TotalCostTooling,
		TotalCostBuilding:            b.TotalCostBuilding,
		TotalMaintenanceCost:         b.TotalMaintenanceCost,
		TotalLaborOverhead:           b.TotalLaborOverhead,
		CostCapital:                  b.CostCapital,
		BladeFixedCost:               b.BladeFixedCost,
		TotalBladeCost:               b.TotalBladeCost,
	}
	if len(getters) != len(Fields) {
		t.Fatalf("getter table covers %d fields, want %d", len(getters), len(Fields))
	}
	for f, get := range getters {
		if get() != b.Value(f) {
			t.Fatalf("%s getter = %v, Value = %v", f, get(), b.Value(f))
		}
	}
}

func TestBreakdown_NamedAndJSON(t *testing.T) {
	b := outboardPanel()

	named := b.Named("rc_out")
	if named["rc_out.total_blade_cost"] != b.TotalBladeCost() {
		t.Fatalf("rc_out.total_blade_cost = %v, want %v", named["rc_out.total_blade_cost"], b.TotalBladeCost())
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]float64
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != len(Fields) {
		t.Fatalf("decoded %d fields, want %d", len(decoded), len(Fields))
	}
	if decoded["cost_capital"] != b.CostCapital() {
		t.Fatalf("cost_capital = %v, want %v", decoded["cost_capital"], b.CostCapital())
	}
}

func TestEconomicParams_WithOverrides(t *testing.T) {
	base := referenceInput().Economics

	got, err := base.WithOverrides(map[string]float64{"labor_rate": 40, "interest_rate": 0.08})
	if err != nil {
		t.Fatalf("WithOverrides: %v", err)
	}
	nearlyEqual(t, "labor_rate", got.LaborRate, 40)
	nearlyEqual(t, "interest_rate", got.InterestRate, 0.08)
	nearlyEqual(t, "overhead_rate", got.OverheadRate, base.OverheadRate)
	nearlyEqual(t, "base labor_rate", base.LaborRate, 33.741962291921816)

	if _, err := base.WithOverrides(map[string]float64{"profit_margin": 0.2}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown name: err = %v, want ErrInvalidInput", err)
	}
	if _, err := base.Override("labor_rate", -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative value: err = %v, want ErrInvalidInput", err)
	}
}

func TestParseMaterialKind(t *testing.T) {
	for _, k := range []MaterialKind{MaterialConsumable, MaterialMetallic, MaterialStructural} {
		got, err := ParseMaterialKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseMaterialKind(%q) = %v, %v", k, got, err)
		}
	}
	if _, err := ParseMaterialKind("wood"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
