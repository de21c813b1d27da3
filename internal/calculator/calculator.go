package calculator

import (
	"math"

	"github.com/eugenenazirov/coverage-calculator/internal/packing"
)

type engine struct{}

// New creates a stateless Calculator. It is safe for concurrent use.
func New() Calculator {
	return engine{}
}

// Calculate validates input for t, applies the product formula and packs the
// resulting quantity. packSizes enables the optimizer for leveller, adhesive
// and grout; when it is empty params.PackSize is used instead. Every failure
// is a *ValidationError.
func (engine) Calculate(t ProductType, params Params, packSizes []float64, input Input) (Result, error) {
	f, ok := formulas[t]
	if !ok {
		return Result{}, invalid(t, "calc_type", "is not a supported product type")
	}

	v, err := requireFields(t, f.fields(), input)
	if err != nil {
		return Result{}, err
	}

	m, err := f.apply(t, params, v, input)
	if err != nil {
		return Result{}, err
	}
	if math.IsNaN(m.quantity) || math.IsInf(m.quantity, 0) || math.IsInf(m.total, 0) {
		return Result{}, tooLarge(t, f)
	}

	result := Result{
		Type:             t,
		RequiredQuantity: m.quantity,
		Measure:          m.measure,
		Total:            m.total,
		Unit:             packUnit(t, params),
		Details:          m.details,
	}
	if m.colour {
		result.Colour = textField(input, "colour")
	}

	switch m.mode {
	case packDiscrete:
		if m.quantity > packing.MaxPacks {
			return Result{}, tooLarge(t, f)
		}
		result.PackCount = int(m.quantity)
		return result, nil
	case packVariable:
		if sizes := packing.NormalizeSizes(packSizes); len(sizes) > 0 {
			if !packing.Fits(m.quantity, sizes[len(sizes)-1]) {
				return Result{}, tooLarge(t, f)
			}
			packed := packing.Optimize(m.quantity, sizes)
			result.PackCount = packed.PackCount
			result.PackBreakdown = packed.Breakdown
			return result, nil
		}
	}

	if !(params.PackSize > 0) || math.IsInf(params.PackSize, 1) {
		return Result{}, invalid(t, "pack_size", "must be greater than zero")
	}
	if !packing.Fits(m.quantity, params.PackSize) {
		return Result{}, tooLarge(t, f)
	}
	result.PackCount = int(math.Ceil(m.quantity / params.PackSize))

	return result, nil
}

// tooLarge blames the first measurement of f, the one every formula scales
// with.
func tooLarge(t ProductType, f formula) error {
	return invalid(t, f.fields()[0], "is too large to calculate")
}

func packUnit(t ProductType, p Params) string {
	if t == Silicone {
		return fallbackPackUnits[Silicone]
	}
	if p.PackUnit != "" {
		return p.PackUnit
	}
	return fallbackPackUnits[t]
}
