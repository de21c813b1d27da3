package calculator

import (
	"fmt"
	"math"
	"strings"
)

// waterproofingRate is kilograms of coating per m² per coat.
const waterproofingRate = 1.4

const (
	defaultCoats    = 2.0
	detailSeparator = "<br>"
)

type packingMode int

const (
	// packVariable uses the optimizer when pack sizes are configured and a
	// fixed pack size otherwise.
	packVariable packingMode = iota
	// packFixed always divides by the fixed pack size.
	packFixed
	// packDiscrete means the quantity is already a count of packs.
	packDiscrete
)

// measurement is what a formula produces before packing is applied.
type measurement struct {
	quantity float64
	measure  string
	total    float64
	details  string
	mode     packingMode
	colour   bool
}

// formula is one product variant: its required inputs and how it turns
// them into a quantity.
type formula interface {
	fields() []string
	apply(t ProductType, p Params, v values, in Input) (measurement, error)
}

var formulas = map[ProductType]formula{
	Leveller:       levellerFormula{},
	AdhesivePowder: adhesiveFormula{},
	AdhesiveReady:  adhesiveFormula{},
	Grout:          groutFormula{},
	Silicone:       siliconeFormula{},
	Waterproofing:  waterproofingFormula{},
}

type levellerFormula struct{}

func (levellerFormula) fields() []string { return []string{"area", "depth"} }

func (levellerFormula) apply(_ ProductType, p Params, v values, _ Input) (measurement, error) {
	area, depth := v["area"], v["depth"]
	kg := area * depth * p.DensityFactor

	return measurement{
		quantity: kg,
		measure:  "kg",
		total:    kg,
		mode:     packVariable,
		details: joinDetails(
			fmt.Sprintf("Total material needed: %.1fkg", kg),
			fmt.Sprintf("Coverage: %sm² × %smm × %skg/m²/mm", num(area), num(depth), num(p.DensityFactor)),
		),
	}, nil
}

type adhesiveFormula struct{}

func (adhesiveFormula) fields() []string { return []string{"area"} }

func (adhesiveFormula) apply(t ProductType, p Params, v values, in Input) (measurement, error) {
	application := strings.ToLower(textField(in, "application"))
	if application == "" {
		application = "floors"
	}

	rate := p.CoverageFloors
	if application == "walls" {
		rate = p.CoverageWalls
	}
	if !(rate > 0) {
		return measurement{}, invalid(t, "coverage_rate", "must be greater than zero")
	}

	area := v["area"]
	kg := area / rate

	return measurement{
		quantity: kg,
		measure:  "kg",
		total:    kg,
		mode:     packVariable,
		colour:   true,
		details: joinDetails(
			fmt.Sprintf("Total adhesive needed: %.1fkg", kg),
			fmt.Sprintf("Application: %s, Coverage rate: %sm²/kg", upperFirst(application), num(rate)),
		),
	}, nil
}

type groutFormula struct{}

func (groutFormula) fields() []string {
	return []string{"area", "tile_length", "tile_width", "joint_width", "joint_depth"}
}

func (groutFormula) apply(_ ProductType, p Params, v values, _ Input) (measurement, error) {
	length, width := v["tile_length"], v["tile_width"]
	jointWidth, jointDepth := v["joint_width"], v["joint_depth"]

	perSqm := ((length + width) / (length * width)) * jointWidth * jointDepth * p.GroutDensity / 1000
	kg := perSqm * v["area"]

	return measurement{
		quantity: kg,
		measure:  "kg",
		total:    kg,
		mode:     packVariable,
		colour:   true,
		details: joinDetails(
			fmt.Sprintf("Total grout needed: %.1fkg", kg),
			fmt.Sprintf("Tile size: %s×%smm, Joint: %s×%smm", num(length), num(width), num(jointWidth), num(jointDepth)),
		),
	}, nil
}

type siliconeFormula struct{}

func (siliconeFormula) fields() []string { return []string{"length"} }

func (siliconeFormula) apply(t ProductType, p Params, v values, _ Input) (measurement, error) {
	if !(p.LinearCoverage > 0) {
		return measurement{}, invalid(t, "linear_coverage", "must be greater than zero")
	}
	length := v["length"]
	tubes := math.Ceil(length / p.LinearCoverage)

	return measurement{
		quantity: tubes,
		measure:  "m",
		total:    length,
		mode:     packDiscrete,
		colour:   true,
		details:  fmt.Sprintf("Coverage per tube: %sm (6mm bead)", num(p.LinearCoverage)),
	}, nil
}

type waterproofingFormula struct{}

func (waterproofingFormula) fields() []string { return []string{"area"} }

func (waterproofingFormula) apply(t ProductType, _ Params, v values, in Input) (measurement, error) {
	coats := defaultCoats
	if raw, ok := in["coats"]; ok && !isBlank(raw) {
		parsed, ok := parseNumber(raw)
		if !ok || parsed <= 0 {
			return measurement{}, invalid(t, "coats", "must be a positive number")
		}
		coats = parsed
	}

	area := v["area"]
	kg := area * waterproofingRate * coats

	return measurement{
		quantity: kg,
		measure:  "kg",
		total:    kg,
		mode:     packFixed,
		details: joinDetails(
			fmt.Sprintf("Total material needed: %.1fkg", kg),
			fmt.Sprintf("Coverage: %sm² × %s coats × %skg/m²/coat", num(area), num(coats), num(waterproofingRate)),
		),
	}, nil
}

func joinDetails(lines ...string) string {
	return strings.Join(lines, detailSeparator)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
