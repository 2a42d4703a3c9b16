// Package design reads blade design documents and turns them into cost assemblies.
package design

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Simplici0/bladecost/internal/bladecost"
)

// ErrInvalidDocument is returned when a document cannot be decoded or is structurally
// incomplete.
var ErrInvalidDocument = errors.New("invalid design document")

// Document is the on-disk description of a blade. JSON documents are accepted as well
// since they are valid YAML.
type Document struct {
	Name      string             `yaml:"name" json:"name"`
	Economics Economics          `yaml:"economics" json:"economics"`
	Overrides map[string]float64 `yaml:"overrides,omitempty" json:"overrides,omitempty"`
	Sections  []Section          `yaml:"sections" json:"sections"`
	Joint     *Joint             `yaml:"joint,omitempty" json:"joint,omitempty"`
	TotalName string             `yaml:"total_name,omitempty" json:"total_name,omitempty"`
}

// Economics holds economic parameters. Unset fields fall back to the base parameters
// passed to Document.Assembly.
type Economics struct {
	LaborRate            *float64 `yaml:"labor_rate,omitempty" json:"labor_rate,omitempty"`
	OverheadRate         *float64 `yaml:"overhead_rate,omitempty" json:"overhead_rate,omitempty"`
	ElectricityRate      *float64 `yaml:"electricity_rate,omitempty" json:"electricity_rate,omitempty"`
	MaintenanceRate      *float64 `yaml:"maintenance_rate,omitempty" json:"maintenance_rate,omitempty"`
	InterestRate         *float64 `yaml:"interest_rate,omitempty" json:"interest_rate,omitempty"`
	WorkingCapitalPeriod *float64 `yaml:"working_capital_period,omitempty" json:"working_capital_period,omitempty"`
}

// Section is one manufactured section of the blade.
type Section struct {
	Name      string             `yaml:"name" json:"name"`
	Materials []Material         `yaml:"materials" json:"materials"`
	Processes []Process          `yaml:"processes" json:"processes"`
	Facility  Facility           `yaml:"facility" json:"facility"`
	Overrides map[string]float64 `yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// Material is one purchased material. Either kind or is_metallic classifies it; with
// neither it is a consumable.
type Material struct {
	Name          string  `yaml:"name" json:"name"`
	Quantity      float64 `yaml:"mass_or_area" json:"mass_or_area"`
	UnitCost      float64 `yaml:"unit_cost" json:"unit_cost"`
	WasteFraction float64 `yaml:"waste_fraction" json:"waste_fraction"`
	Kind          string  `yaml:"kind,omitempty" json:"kind,omitempty"`
	IsMetallic    *bool   `yaml:"is_metallic,omitempty" json:"is_metallic,omitempty"`
}

// Process is one manufacturing step of a section.
type Process struct {
	Name       string  `yaml:"name" json:"name"`
	LaborHours float64 `yaml:"labor_hours" json:"labor_hours"`
	CycleTime  float64 `yaml:"cycle_time" json:"cycle_time"`
	Gating     bool    `yaml:"is_gating" json:"is_gating"`
	EnergyKW   float64 `yaml:"energy_kw" json:"energy_kw"`
}

// Facility holds the capital outlay of a section's production line. Useful lives are in
// years and the volume in parts per year.
type Facility struct {
	EquipmentCapital float64 `yaml:"equipment_capital" json:"equipment_capital"`
	ToolingCapital   float64 `yaml:"tooling_capital" json:"tooling_capital"`
	BuildingCapital  float64 `yaml:"building_capital" json:"building_capital"`
	EquipmentLife    float64 `yaml:"useful_life_equipment" json:"useful_life_equipment"`
	ToolingLife      float64 `yaml:"useful_life_tooling" json:"useful_life_tooling"`
	BuildingLife     float64 `yaml:"useful_life_building" json:"useful_life_building"`
	AnnualVolume     float64 `yaml:"annual_production_volume" json:"annual_production_volume"`
}

// Joint describes the hardware joining the sections of a split blade.
type Joint struct {
	Cost float64 `yaml:"cost" json:"cost"`
}

// Load reads and parses the document at path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read design %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return Document{}, fmt.Errorf("load design %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a YAML or JSON document. Unknown keys are rejected.
func Parse(data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, fmt.Errorf("empty document: %w", ErrInvalidDocument)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Document{}, fmt.Errorf("decode: %v: %w", err, ErrInvalidDocument)
	}
	if len(doc.Sections) == 0 {
		return Document{}, fmt.Errorf("no sections: %w", ErrInvalidDocument)
	}
	return doc, nil
}

// Params applies the document's economics on top of base.
func (e Economics) Params(base bladecost.EconomicParams) bladecost.EconomicParams {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	p := base
	set(&p.LaborRate, e.LaborRate)
	set(&p.OverheadRate, e.OverheadRate)
	set(&p.ElectricityRate, e.ElectricityRate)
	set(&p.MaintenanceRate, e.MaintenanceRate)
	set(&p.InterestRate, e.InterestRate)
	set(&p.WorkingCapitalPeriod, e.WorkingCapitalPeriod)
	return p
}

// Assembly builds the cost assembly described by the document. Economic parameters are
// resolved as base, then the document's economics, then document overrides, then
// section overrides. maxSections <= 0 means no limit.
func (d Document) Assembly(base bladecost.EconomicParams, maxSections int) (bladecost.Assembly, error) {
	if len(d.Sections) == 0 {
		return bladecost.Assembly{}, fmt.Errorf("no sections: %w", ErrInvalidDocument)
	}
	if maxSections > 0 && len(d.Sections) > maxSections {
		return bladecost.Assembly{}, fmt.Errorf("%d sections exceeds the limit of %d: %w", len(d.Sections), maxSections, bladecost.ErrInvalidInput)
	}

	econ, err := d.Economics.Params(base).WithOverrides(d.Overrides)
	if err != nil {
		return bladecost.Assembly{}, fmt.Errorf("document overrides: %w", err)
	}

	a := bladecost.Assembly{
		Sections:  make([]bladecost.Section, 0, len(d.Sections)),
		TotalName: d.TotalName,
	}
	if d.Joint != nil {
		a.JointCost = d.Joint.Cost
	}
	for i, s := range d.Sections {
		in, err := s.input(econ)
		if err != nil {
			return bladecost.Assembly{}, fmt.Errorf("section %d (%s): %w", i+1, s.Name, err)
		}
		a.Sections = append(a.Sections, bladecost.Section{Name: s.Name, Input: in})
	}
	return a, nil
}

func (s Section) input(econ bladecost.EconomicParams) (bladecost.DesignInput, error) {
	econ, err := econ.WithOverrides(s.Overrides)
	if err != nil {
		return bladecost.DesignInput{}, err
	}

	in := bladecost.DesignInput{
		Materials: make([]bladecost.MaterialItem, 0, len(s.Materials)),
		Processes: make([]bladecost.ProcessStep, 0, len(s.Processes)),
		Facility: bladecost.FacilityParams{
			EquipmentCapital: s.Facility.EquipmentCapital,
			ToolingCapital:   s.Facility.ToolingCapital,
			BuildingCapital:  s.Facility.BuildingCapital,
			EquipmentLife:    s.Facility.EquipmentLife,
			ToolingLife:      s.Facility.ToolingLife,
			BuildingLife:     s.Facility.BuildingLife,
			AnnualVolume:     s.Facility.AnnualVolume,
		},
		Economics: econ,
	}
	for _, m := range s.Materials {
		kind, err := m.kind()
		if err != nil {
			return bladecost.DesignInput{}, err
		}
		in.Materials = append(in.Materials, bladecost.MaterialItem{
			Name:          m.Name,
			Quantity:      m.Quantity,
			UnitCost:      m.UnitCost,
			WasteFraction: m.WasteFraction,
			Kind:          kind,
		})
	}
	for _, p := range s.Processes {
		in.Processes = append(in.Processes, bladecost.ProcessStep{
			Name:       p.Name,
			LaborHours: p.LaborHours,
			CycleTime:  p.CycleTime,
			Gating:     p.Gating,
			EnergyKW:   p.EnergyKW,
		})
	}
	return in, nil
}

// kind resolves the material kind. is_metallic alone selects metallic or consumable;
// kind takes precedence but must agree with is_metallic when both are given.
func (m Material) kind() (bladecost.MaterialKind, error) {
	if m.Kind == "" {
		if m.IsMetallic != nil && *m.IsMetallic {
			return bladecost.MaterialMetallic, nil
		}
		return bladecost.MaterialConsumable, nil
	}
	kind, err := bladecost.ParseMaterialKind(m.Kind)
	if err != nil {
		return 0, fmt.Errorf("material %q: %w", m.Name, err)
	}
	if m.IsMetallic != nil && *m.IsMetallic != (kind == bladecost.MaterialMetallic) {
		return 0, fmt.Errorf("material %q: kind %s contradicts is_metallic=%t: %w", m.Name, kind, *m.IsMetallic, bladecost.ErrInvalidInput)
	}
	return kind, nil
}
