// Package catalog turns stored product settings into the configuration the
// calculator runs with: formula parameters with defaults applied, the pack
// sizes parsed from weight attributes and the selectable colours.
package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/eugenenazirov/coverage-calculator/internal/calculator"
	"github.com/eugenenazirov/coverage-calculator/internal/storage"
)

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// Config is the resolved calculator configuration of one product.
type Config struct {
	ProductID           string                 `json:"productId"`
	Name                string                 `json:"name"`
	Enabled             bool                   `json:"enabled"`
	Type                calculator.ProductType `json:"type"`
	Params              calculator.Params      `json:"params"`
	UseColourAttributes bool                   `json:"useColourAttributes"`
	UseWeightAttributes bool                   `json:"useWeightAttributes"`
	AvailableColours    []string               `json:"availableColours"`
	AvailableWeights    []float64              `json:"availableWeights"`
}

// Build resolves the calculator configuration of p. Defaults are applied
// here once, so malformed settings degrade to documented values.
func Build(p storage.Product) (Config, error) {
	t, err := calculator.ParseProductType(p.Type)
	if err != nil {
		return Config{}, fmt.Errorf("product %q: %w", p.ID, err)
	}

	cfg := Config{
		ProductID:           p.ID,
		Name:                p.Name,
		Enabled:             p.Enabled,
		Type:                t,
		Params:              calculator.ParamsFromSettings(t, p.Settings),
		UseColourAttributes: p.UseColourAttributes,
		UseWeightAttributes: p.UseWeightAttributes,
		AvailableColours:    []string{},
		AvailableWeights:    []float64{},
	}

	if p.UseColourAttributes {
		cfg.AvailableColours = AttributeValues(p.Attributes[storage.AttributeColour])
	}
	if p.UseWeightAttributes {
		cfg.AvailableWeights = PackSizes(p.Attributes[storage.AttributeWeight])
	}

	return cfg, nil
}

// AttributeValues flattens attribute terms, splitting any term that holds
// several values separated by "|".
func AttributeValues(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		for _, value := range strings.Split(term, "|") {
			if value = strings.TrimSpace(value); value != "" {
				out = append(out, value)
			}
		}
	}
	return out
}

// PackSizes extracts positive numeric pack sizes from weight terms such as
// "5kg" or "15 kg", sorted from smallest to largest.
func PackSizes(terms []string) []float64 {
	values := AttributeValues(terms)
	sizes := make([]float64, 0, len(values))
	for _, value := range values {
		d, err := decimal.NewFromString(nonNumeric.ReplaceAllString(value, ""))
		if err != nil || !d.IsPositive() {
			continue
		}
		size, _ := d.Float64()
		sizes = append(sizes, size)
	}
	sort.Float64s(sizes)
	return sizes
}
