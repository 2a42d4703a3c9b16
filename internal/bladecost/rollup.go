package bladecost

// variableCosts is the finished variable subtotal of a section together with the
// material and labor figures it was built from.
type variableCosts struct {
	material materialCosts
	labor    laborCosts
	total    float64
}

// variableSubtotal is the first phase of the roll-up: material, labor and utility.
func variableSubtotal(in DesignInput) (variableCosts, error) {
	mat, err := materialCost(in.Materials)
	if err != nil {
		return variableCosts{}, err
	}
	lab, err := laborCost(in.Processes, in.Economics)
	if err != nil {
		return variableCosts{}, err
	}
	v := variableCosts{
		material: mat,
		labor:    lab,
		total:    lab.laborCost + lab.utilityCost + mat.total,
	}
	if err := checkFinite("blade_variable_cost", v.total); err != nil {
		return variableCosts{}, err
	}
	return v, nil
}

// Calculate computes the cost breakdown of one section. Inputs are validated up front,
// so an error never comes with a partially filled breakdown.
func Calculate(in DesignInput) (Breakdown, error) {
	if err := in.Validate(); err != nil {
		return Breakdown{}, err
	}

	v, err := variableSubtotal(in)
	if err != nil {
		return Breakdown{}, err
	}
	fac, err := facilityCost(in.Facility, in.Economics, v.labor.laborCost)
	if err != nil {
		return Breakdown{}, err
	}
	capital, err := capitalCost(in.Economics, v)
	if err != nil {
		return Breakdown{}, err
	}

	fixed := fac.equipment + fac.tooling + fac.building + fac.maintenance + fac.overhead + capital

	var b Breakdown
	b.values[TotalLaborHours] = v.labor.hours
	b.values[TotalNonGatingCT] = v.labor.nonGatingCT
	b.values[TotalMetallicPartsCost] = v.material.metallic
	b.values[TotalConsumableCostWithWaste] = v.material.consumable
	b.values[TotalBladeMatCostWithWaste] = v.material.total
	b.values[TotalCostLabor] = v.labor.laborCost
	b.values[TotalCostUtility] = v.labor.utilityCost
	b.values[BladeVariableCost] = v.total
	b.values[TotalCostEquipment] = fac.equipment
	b.values[TotalCostTooling] = fac.tooling
	b.values[TotalCostBuilding] = fac.building
	b.values[TotalMaintenanceCost] = fac.maintenance
	b.values[TotalLaborOverhead] = fac.overhead
	b.values[CostCapital] = capital
	b.values[BladeFixedCost] = fixed
	b.values[TotalBladeCost] = v.total + fixed

	if err := b.checkFinite(); err != nil {
		return Breakdown{}, err
	}
	return b, nil
}
