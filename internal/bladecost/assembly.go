package bladecost

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultTotalName prefixes the combined outputs of a multi-section blade.
const DefaultTotalName = "total"

// Section is one independently manufactured part of a blade.
type Section struct {
	Name  string
	Input DesignInput
}

// Assembly describes how a blade is built: a single piece, or several sections that
// are joined after manufacture.
type Assembly struct {
	Sections []Section
	// JointCost is the cost of the hardware joining the sections. Only valid when the
	// blade has more than one section.
	JointCost float64
	// TotalName prefixes the combined outputs. Defaults to DefaultTotalName.
	TotalName string
}

// SectionResult is the breakdown of one section.
type SectionResult struct {
	Name      string    `json:"name"`
	Breakdown Breakdown `json:"breakdown"`
}

// Result holds every per-section breakdown and, for a multi-section blade, the combined
// breakdown.
type Result struct {
	Sections  []SectionResult `json:"sections"`
	Total     *Breakdown      `json:"total,omitempty"`
	TotalName string          `json:"total_name,omitempty"`
	JointCost float64         `json:"joint_cost,omitempty"`
}

// Aggregated reports whether the sections were combined.
func (r Result) Aggregated() bool {
	return r.Total != nil
}

// Final returns the bottom-line breakdown: the combined one when sections were
// aggregated, otherwise the only section's.
func (r Result) Final() Breakdown {
	if r.Total != nil {
		return *r.Total
	}
	if len(r.Sections) == 0 {
		return Breakdown{}
	}
	return r.Sections[0].Breakdown
}

// JointCostOutput is the field name under which Outputs reports the joint cost of an
// aggregated result.
const JointCostOutput = "joint_cost"

// Outputs returns every value keyed by its dotted name: "<section>.<field>" for each
// section and "<total>.<field>" for the combined breakdown. An aggregated result also
// carries "<total>.joint_cost", so <total>.total_blade_cost is the sum of the sections'
// total_blade_cost plus that entry.
func (r Result) Outputs() map[string]float64 {
	out := make(map[string]float64, (len(r.Sections)+1)*int(fieldCount)+1)
	for _, s := range r.Sections {
		for k, v := range s.Breakdown.Named(s.Name) {
			out[k] = v
		}
	}
	if r.Total != nil {
		for k, v := range r.Total.Named(r.TotalName) {
			out[k] = v
		}
		out[r.TotalName+"."+JointCostOutput] = r.JointCost
	}
	return out
}

// SectionCount returns the number of manufactured sections.
func (a Assembly) SectionCount() int {
	return len(a.Sections)
}

func (a Assembly) normalize() (Assembly, error) {
	if len(a.Sections) == 0 {
		return a, fmt.Errorf("assembly: no sections: %w", ErrInvalidInput)
	}
	if a.TotalName == "" {
		a.TotalName = DefaultTotalName
	}
	if err := nonNegative("assembly", "joint_cost", a.JointCost); err != nil {
		return a, err
	}
	if len(a.Sections) == 1 && a.JointCost > 0 {
		return a, fmt.Errorf("assembly: joint cost set on a single-piece blade: %w", ErrInvalidInput)
	}

	sections := make([]Section, len(a.Sections))
	seen := make(map[string]bool, len(a.Sections))
	for i, s := range a.Sections {
		if s.Name == "" {
			s.Name = fmt.Sprintf("section%d", i+1)
		}
		if s.Name == a.TotalName {
			return a, fmt.Errorf("assembly: section name %q collides with the total: %w", s.Name, ErrInvalidInput)
		}
		if seen[s.Name] {
			return a, fmt.Errorf("assembly: duplicate section name %q: %w", s.Name, ErrInvalidInput)
		}
		seen[s.Name] = true
		sections[i] = s
	}
	a.Sections = sections
	return a, nil
}

// Evaluate costs every section of the assembly. Sections are evaluated concurrently;
// when there is more than one, their breakdowns (and the joint, if any) are aggregated
// once all of them have finished.
func Evaluate(a Assembly) (Result, error) {
	a, err := a.normalize()
	if err != nil {
		return Result{}, err
	}

	results := make([]SectionResult, len(a.Sections))
	var g errgroup.Group
	for i, s := range a.Sections {
		g.Go(func() error {
			b, err := Calculate(s.Input)
			if err != nil {
				return fmt.Errorf("section %s: %w", s.Name, err)
			}
			results[i] = SectionResult{Name: s.Name, Breakdown: b}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Sections: results}
	if len(results) == 1 {
		return res, nil
	}

	parts := make([]Breakdown, 0, len(results)+1)
	for _, r := range results {
		parts = append(parts, r.Breakdown)
	}
	if a.JointCost > 0 {
		joint, err := JointBreakdown(a.JointCost)
		if err != nil {
			return Result{}, err
		}
		parts = append(parts, joint)
	}
	total, err := Aggregate(parts)
	if err != nil {
		return Result{}, err
	}
	res.Total = &total
	res.TotalName = a.TotalName
	res.JointCost = a.JointCost
	return res, nil
}
