package bladecost

import "fmt"

type materialCosts struct {
	metallic   float64
	consumable float64
	total      float64
}

// effectiveCost is the purchased cost of an item including its scrap allowance.
func effectiveCost(m MaterialItem) float64 {
	return m.Quantity * m.UnitCost * (1.0 + m.WasteFraction)
}

func validateMaterial(m MaterialItem) error {
	scope := fmt.Sprintf("material %q", m.Name)
	if err := nonNegative(scope, "quantity", m.Quantity); err != nil {
		return err
	}
	if err := nonNegative(scope, "unit_cost", m.UnitCost); err != nil {
		return err
	}
	if err := nonNegative(scope, "waste_fraction", m.WasteFraction); err != nil {
		return err
	}
	if m.WasteFraction >= 1 {
		return fmt.Errorf("%s: waste_fraction must be < 1, got %v: %w", scope, m.WasteFraction, ErrInvalidInput)
	}
	switch m.Kind {
	case MaterialConsumable, MaterialMetallic, MaterialStructural:
	default:
		return fmt.Errorf("%s: unknown kind %d: %w", scope, int(m.Kind), ErrInvalidInput)
	}
	return nil
}

// materialCost sums metallic parts, consumables and the combined material bill. The
// combined total is its own reduction over every item: structural materials land there
// and in neither partition.
func materialCost(items []MaterialItem) (materialCosts, error) {
	var out materialCosts
	for _, m := range items {
		if err := validateMaterial(m); err != nil {
			return materialCosts{}, err
		}
		cost := effectiveCost(m)
		switch m.Kind {
		case MaterialMetallic:
			out.metallic += cost
		case MaterialConsumable:
			out.consumable += cost
		}
		out.total += cost
	}
	if err := checkFinite("total_blade_mat_cost_w_waste", out.total); err != nil {
		return materialCosts{}, err
	}
	return out, nil
}
