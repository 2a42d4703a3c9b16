package bladecost

import "fmt"

type laborCosts struct {
	hours       float64
	nonGatingCT float64
	laborCost   float64
	utilityCost float64
}

func validateProcess(p ProcessStep) error {
	scope := fmt.Sprintf("process %q", p.Name)
	if err := nonNegative(scope, "labor_hours", p.LaborHours); err != nil {
		return err
	}
	if err := nonNegative(scope, "cycle_time", p.CycleTime); err != nil {
		return err
	}
	return nonNegative(scope, "energy_kw", p.EnergyKW)
}

// laborCost converts per-step labor and cycle times into labor hours, non-gating
// cycle time, labor cost and electricity cost. Gating steps still draw labor and energy;
// they are only left out of the non-gating cycle time.
func laborCost(steps []ProcessStep, econ EconomicParams) (laborCosts, error) {
	var out laborCosts
	var energyKWh float64
	for _, p := range steps {
		if err := validateProcess(p); err != nil {
			return laborCosts{}, err
		}
		out.hours += p.LaborHours
		if !p.Gating {
			out.nonGatingCT += p.CycleTime
		}
		energyKWh += p.CycleTime * p.EnergyKW
	}
	out.laborCost = out.hours * econ.LaborRate
	out.utilityCost = energyKWh * econ.ElectricityRate

	if err := checkFinite("total_labor_hours", out.hours); err != nil {
		return laborCosts{}, err
	}
	if err := checkFinite("total_cost_labor", out.laborCost); err != nil {
		return laborCosts{}, err
	}
	if err := checkFinite("total_cost_utility", out.utilityCost); err != nil {
		return laborCosts{}, err
	}
	return out, nil
}
