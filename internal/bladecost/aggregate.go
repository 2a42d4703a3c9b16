package bladecost

import (
	"fmt"
	"sort"
)

// Aggregate combines the breakdowns of separately manufactured sections into one
// breakdown whose every field is the sum of that field across sections.
//
// Each field's contributions are added in ascending order, so the result does not
// depend on the order of sections. A single section is returned unchanged.
//
// Fields are summed independently. With three or more parts the combined
// total_blade_cost may differ from blade_variable_cost + blade_fixed_cost in the last
// bit; a breakdown from Calculate satisfies that identity exactly.
func Aggregate(sections []Breakdown) (Breakdown, error) {
	if len(sections) == 0 {
		return Breakdown{}, fmt.Errorf("aggregate: no sections: %w", ErrInvalidInput)
	}
	if len(sections) == 1 {
		return sections[0], nil
	}

	var out Breakdown
	terms := make([]float64, len(sections))
	for _, f := range Fields {
		for i, s := range sections {
			terms[i] = s.values[f]
		}
		sort.Float64s(terms)
		var sum float64
		for _, t := range terms {
			sum += t
		}
		out.values[f] = sum
	}

	if err := out.checkFinite(); err != nil {
		return Breakdown{}, fmt.Errorf("aggregate: %w", err)
	}
	return out, nil
}

// JointBreakdown is the contribution of the hardware joining two sections (root-joint
// bolts, inserts, bonding). It counts as metallic material, so adding it to a set of
// sections keeps the combined breakdown a plain field-wise sum.
func JointBreakdown(cost float64) (Breakdown, error) {
	if err := nonNegative("joint", "cost", cost); err != nil {
		return Breakdown{}, err
	}
	var b Breakdown
	b.values[TotalMetallicPartsCost] = cost
	b.values[TotalBladeMatCostWithWaste] = cost
	b.values[BladeVariableCost] = cost
	b.values[TotalBladeCost] = cost
	return b, nil
}
