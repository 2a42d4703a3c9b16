package bladecost

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func withinRel(t *testing.T, name string, got, want, rel float64) {
	t.Helper()
	tol := rel * math.Max(math.Abs(want), 1)
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %v, want %v (tolerance %v)", name, got, want, tol)
	}
}

// referenceInput is a single-piece 3.4 MW class blade whose breakdown matches the
// published reference figures.
func referenceInput() DesignInput {
	return DesignInput{
		Materials: []MaterialItem{
			{Name: "glass_uniax", Quantity: 6280, UnitCost: 1.87, WasteFraction: 0.05, Kind: MaterialStructural},
			{Name: "glass_biax", Quantity: 2050, UnitCost: 3.00, WasteFraction: 0.10, Kind: MaterialStructural},
			{Name: "glass_triax", Quantity: 3600, UnitCost: 2.86, WasteFraction: 0.15, Kind: MaterialStructural},
			{Name: "balsa", Quantity: 640, UnitCost: 13.0, WasteFraction: 0.20, Kind: MaterialStructural},
			{Name: "resin", Quantity: 4448.581802035614, UnitCost: 3.63, WasteFraction: 0.05, Kind: MaterialStructural},
			{Name: "t_bolts", Quantity: 128, UnitCost: 21.5, Kind: MaterialMetallic},
			{Name: "barrel_nuts", Quantity: 128, UnitCost: 7.2, Kind: MaterialMetallic},
			{Name: "lightning_protection", Quantity: 104.00944820767651, UnitCost: 9.1, WasteFraction: 0.05, Kind: MaterialMetallic},
			{Name: "peel_ply", Quantity: 820, UnitCost: 0.99, WasteFraction: 0.15, Kind: MaterialConsumable},
			{Name: "infusion_mesh", Quantity: 780, UnitCost: 1.28, WasteFraction: 0.10, Kind: MaterialConsumable},
			{Name: "vacuum_bag", Quantity: 1450, UnitCost: 0.55, WasteFraction: 0.15, Kind: MaterialConsumable},
			{Name: "tacky_tape", Quantity: 3118.5742291016127, UnitCost: 1.15, WasteFraction: 0.10, Kind: MaterialConsumable},
		},
		Processes: []ProcessStep{
			{Name: "layup", LaborHours: 260, CycleTime: 40, EnergyKW: 12},
			{Name: "infusion", LaborHours: 48, CycleTime: 8, Gating: true, EnergyKW: 25},
			{Name: "cure", LaborHours: 12, CycleTime: 6, Gating: true, EnergyKW: 150},
			{Name: "demold", LaborHours: 40, CycleTime: 3.5},
			{Name: "trim", LaborHours: 85, CycleTime: 10, EnergyKW: 5},
			{Name: "overlay", LaborHours: 150, CycleTime: 12, EnergyKW: 4},
			{Name: "post_cure", LaborHours: 24, CycleTime: 8},
			{Name: "cut_drill", LaborHours: 329.2286340184439, CycleTime: 61.90494719056008, EnergyKW: 103.53661479338095},
		},
		Facility: FacilityParams{
			EquipmentCapital: 35216661.35630652,
			ToolingCapital:   39058840.31055669,
			BuildingCapital:  17144263.65320323,
			EquipmentLife:    10,
			ToolingLife:      4,
			BuildingLife:     30,
			AnnualVolume:     1000,
		},
		Economics: EconomicParams{
			LaborRate:            33.741962291921816,
			OverheadRate:         0.3,
			ElectricityRate:      0.08,
			MaintenanceRate:      0.04,
			InterestRate:         0.12,
			WorkingCapitalPeriod: 0.5998138686377014,
		},
	}
}

// breakdownOf builds a breakdown from published per-field values.
func breakdownOf(values map[Field]float64) Breakdown {
	var b Breakdown
	for f, v := range values {
		b.values[f] = v
	}
	return b
}

// Published inboard and outboard panels of a split blade.
func inboardPanel() Breakdown {
	return breakdownOf(map[Field]float64{
		TotalLaborHours:              1750.7449896744745,
		TotalNonGatingCT:             192.8046182063546,
		TotalMetallicPartsCost:       6482.0815222645215,
		TotalConsumableCostWithWaste: 8807.09170136831,
		TotalBladeMatCostWithWaste:   280221.03727427527,
		TotalCostLabor:               59153.48279337347,
		TotalCostUtility:             1826.3396141097405,
		BladeVariableCost:            341200.85968175845,
		TotalCostEquipment:           9614.277038808075,
		TotalCostTooling:             17156.692648656877,
		TotalCostBuilding:            842.3838836380187,
		TotalMaintenanceCost:         7601.642299673956,
		TotalLaborOverhead:           17746.04483801204,
		CostCapital:                  17307.02781926173,
		BladeFixedCost:               70268.06852805069,
		TotalBladeCost:               411468.9282098091,
	})
}

func outboardPanel() Breakdown {
	return breakdownOf(map[Field]float64{
		TotalLaborHours:              330.70091389289024,
		TotalNonGatingCT:             68.03884638670057,
		TotalMetallicPartsCost:       3428.7667570837384,
		TotalConsumableCostWithWaste: 2898.312583402607,
		TotalBladeMatCostWithWaste:   30109.20162015121,
		TotalCostLabor:               11129.391172290238,
		TotalCostUtility:             152.84958380873056,
		BladeVariableCost:            41391.442376250176,
		TotalCostEquipment:           1414.4471863503768,
		TotalCostTooling:             2510.9560206957676,
		TotalCostBuilding:            177.01847670844526,
		TotalMaintenanceCost:         1179.954009901608,
		TotalLaborOverhead:           3338.817351687071,
		CostCapital:                  2524.0029347944633,
		BladeFixedCost:               11145.195980137732,
		TotalBladeCost:               52536.638356387906,
	})
}
