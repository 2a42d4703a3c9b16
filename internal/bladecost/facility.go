package bladecost

type facilityCosts struct {
	equipment   float64
	tooling     float64
	building    float64
	maintenance float64
	overhead    float64
}

func validateFacility(f FacilityParams) error {
	const scope = "facility"
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"equipment_capital", f.EquipmentCapital},
		{"tooling_capital", f.ToolingCapital},
		{"building_capital", f.BuildingCapital},
	} {
		if err := nonNegative(scope, c.name, c.value); err != nil {
			return err
		}
	}
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"useful_life_equipment", f.EquipmentLife},
		{"useful_life_tooling", f.ToolingLife},
		{"useful_life_building", f.BuildingLife},
		{"annual_production_volume", f.AnnualVolume},
	} {
		if err := positive(scope, c.name, c.value); err != nil {
			return err
		}
	}
	return nil
}

// depreciation spreads a capital outlay evenly over its useful life and then over the
// parts produced each year.
func depreciation(capital, life, volume float64) float64 {
	return capital / life / volume
}

// facilityCost computes the fixed costs that do not depend on the variable subtotal.
// laborCost is the direct labor cost already computed for the section.
func facilityCost(f FacilityParams, econ EconomicParams, laborCost float64) (facilityCosts, error) {
	if err := validateFacility(f); err != nil {
		return facilityCosts{}, err
	}
	out := facilityCosts{
		equipment:   depreciation(f.EquipmentCapital, f.EquipmentLife, f.AnnualVolume),
		tooling:     depreciation(f.ToolingCapital, f.ToolingLife, f.AnnualVolume),
		building:    depreciation(f.BuildingCapital, f.BuildingLife, f.AnnualVolume),
		maintenance: econ.MaintenanceRate * (f.EquipmentCapital + f.ToolingCapital + f.BuildingCapital) / f.AnnualVolume,
		overhead:    econ.OverheadRate * laborCost,
	}
	if err := checkFinite("total_maintenance_cost", out.maintenance); err != nil {
		return facilityCosts{}, err
	}
	if err := checkFinite("total_labor_overhead", out.overhead); err != nil {
		return facilityCosts{}, err
	}
	return out, nil
}

// capitalCost is the financing cost of the variable cost tied up while a part is in
// process. It takes the finished variable subtotal as an argument and cannot run before it.
func capitalCost(econ EconomicParams, v variableCosts) (float64, error) {
	c := econ.InterestRate * econ.WorkingCapitalPeriod * v.total
	if err := checkFinite("cost_capital", c); err != nil {
		return 0, err
	}
	return c, nil
}
