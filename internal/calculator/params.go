package calculator

import (
	"math"
	"strconv"
	"strings"
)

// Defaults used whenever a product has not been explicitly configured.
const (
	DefaultDensityFactor  = 1.67
	DefaultMinDepth       = 1.0
	DefaultMaxDepth       = 20.0
	DefaultCoverageWalls  = 4.0
	DefaultCoverageFloors = 3.0
	DefaultGroutDensity   = 1.6
	DefaultLinearCoverage = 12.4
)

// Settings keys understood by ParamsFromSettings.
const (
	SettingPackSize       = "pack_size"
	SettingPackUnit       = "pack_unit"
	SettingDensityFactor  = "leveller_density"
	SettingMinDepth       = "leveller_min_depth"
	SettingMaxDepth       = "leveller_max_depth"
	SettingCoverageWalls  = "adhesive_coverage_walls"
	SettingCoverageFloors = "adhesive_coverage_floors"
	SettingGroutDensity   = "grout_density"
	SettingLinearCoverage = "silicone_coverage"
)

// Params is the per-product formula configuration. Values are expected to
// already carry their defaults; use DefaultParams or ParamsFromSettings.
type Params struct {
	// DensityFactor is kg per m² per mm of leveller depth.
	DensityFactor float64 `json:"density_factor,omitempty"`
	MinDepth      float64 `json:"min_depth,omitempty"`
	MaxDepth      float64 `json:"max_depth,omitempty"`
	// CoverageWalls and CoverageFloors are m² per kg of adhesive.
	CoverageWalls  float64 `json:"coverage_walls,omitempty"`
	CoverageFloors float64 `json:"coverage_floors,omitempty"`
	GroutDensity   float64 `json:"grout_density,omitempty"`
	// LinearCoverage is metres of bead per silicone tube.
	LinearCoverage float64 `json:"linear_coverage,omitempty"`
	// PackSize is only used when no variable pack sizes are configured.
	PackSize float64 `json:"pack_size"`
	PackUnit string  `json:"pack_unit"`
}

var fallbackPackSizes = map[ProductType]float64{
	AdhesivePowder: 20,
	AdhesiveReady:  20,
	Grout:          3.5,
}

var fallbackPackUnits = map[ProductType]string{
	Leveller:       "bag",
	AdhesivePowder: "bag",
	AdhesiveReady:  "tub",
	Grout:          "pack",
	Silicone:       "tube",
	Waterproofing:  "tub",
}

// DefaultParams returns the parameters of an unconfigured product of type t.
func DefaultParams(t ProductType) Params {
	return Params{
		DensityFactor:  DefaultDensityFactor,
		MinDepth:       DefaultMinDepth,
		MaxDepth:       DefaultMaxDepth,
		CoverageWalls:  DefaultCoverageWalls,
		CoverageFloors: DefaultCoverageFloors,
		GroutDensity:   DefaultGroutDensity,
		LinearCoverage: DefaultLinearCoverage,
		PackSize:       fallbackPackSizes[t],
		PackUnit:       fallbackPackUnits[t],
	}
}

// ParamsFromSettings builds Params from raw stored settings. Any value that
// is absent, empty, non-numeric, zero or negative falls back to its default.
func ParamsFromSettings(t ProductType, settings map[string]string) Params {
	p := DefaultParams(t)

	p.DensityFactor = positiveOr(settings[SettingDensityFactor], p.DensityFactor)
	p.MinDepth = positiveOr(settings[SettingMinDepth], p.MinDepth)
	p.MaxDepth = positiveOr(settings[SettingMaxDepth], p.MaxDepth)
	p.CoverageWalls = positiveOr(settings[SettingCoverageWalls], p.CoverageWalls)
	p.CoverageFloors = positiveOr(settings[SettingCoverageFloors], p.CoverageFloors)
	p.GroutDensity = positiveOr(settings[SettingGroutDensity], p.GroutDensity)
	p.LinearCoverage = positiveOr(settings[SettingLinearCoverage], p.LinearCoverage)
	p.PackSize = positiveOr(settings[SettingPackSize], p.PackSize)

	if unit := strings.TrimSpace(settings[SettingPackUnit]); unit != "" && t != Silicone {
		p.PackUnit = unit
	}

	return p
}

func positiveOr(raw string, fallback float64) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return fallback
	}
	return value
}
