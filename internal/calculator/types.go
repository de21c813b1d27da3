package calculator

import (
	"fmt"
	"strings"

	"github.com/eugenenazirov/coverage-calculator/internal/packing"
)

// ProductType selects the formula and required inputs for a calculation.
type ProductType string

const (
	Leveller       ProductType = "leveller"
	AdhesivePowder ProductType = "adhesive_powder"
	AdhesiveReady  ProductType = "adhesive_ready"
	Grout          ProductType = "grout"
	Silicone       ProductType = "silicone"
	Waterproofing  ProductType = "waterproofing"
)

// ProductTypes lists every supported product type.
func ProductTypes() []ProductType {
	return []ProductType{Leveller, AdhesivePowder, AdhesiveReady, Grout, Silicone, Waterproofing}
}

// ParseProductType converts a raw tag into a ProductType.
func ParseProductType(raw string) (ProductType, error) {
	t := ProductType(strings.TrimSpace(raw))
	if _, ok := formulas[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProductType, raw)
	}
	return t, nil
}

// Input holds raw user measurements keyed by field name. Values may be
// numbers, json.Number or numeric strings.
type Input map[string]any

// Result is the outcome of a single calculation.
type Result struct {
	Type ProductType
	// RequiredQuantity is the raw amount needed: kilograms for mass based
	// products, tubes for silicone.
	RequiredQuantity float64
	// Measure names the unit of Total ("kg" or "m").
	Measure string
	Total   float64
	// Unit is the pack label shown to the customer (bag, tub, tube...).
	Unit          string
	PackCount     int
	PackBreakdown []packing.Pack
	Details       string
	Colour        string
}

// Optimized reports whether the pack count came from the pack optimizer.
func (r Result) Optimized() bool {
	return r.PackBreakdown != nil
}

// Calculator describes the behaviour required from a quantity calculator.
type Calculator interface {
	Calculate(t ProductType, params Params, packSizes []float64, input Input) (Result, error)
}
