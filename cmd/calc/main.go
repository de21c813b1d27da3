package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/eugenenazirov/coverage-calculator/internal/api"
	"github.com/eugenenazirov/coverage-calculator/internal/calculator"
	"github.com/eugenenazirov/coverage-calculator/internal/catalog"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	types := make([]string, 0, len(calculator.ProductTypes()))
	for _, t := range calculator.ProductTypes() {
		types = append(types, string(t))
	}

	app := kingpin.New("calc", "Calculate how many packs of a product a job needs and print the result as JSON")
	productType := app.Arg("type", "Product type").Required().Enum(types...)
	inputs := app.Flag("input", "Measurement as field=value, e.g. area=10 (repeatable)").Short('i').StringMap()
	settings := app.Flag("param", "Formula setting as key=value, e.g. leveller_density=1.67 (repeatable)").Short('p').StringMap()
	packSizes := app.Flag("pack-sizes", "Comma-separated pack sizes that enable pack optimization, e.g. 5kg,10kg,20kg").String()

	if _, err := app.Parse(args); err != nil {
		return err
	}

	t := calculator.ProductType(*productType)
	params := calculator.ParamsFromSettings(t, *settings)

	var sizes []float64
	if raw := strings.TrimSpace(*packSizes); raw != "" {
		sizes = catalog.PackSizes(strings.Split(raw, ","))
	}

	input := make(calculator.Input, len(*inputs))
	for k, v := range *inputs {
		input[k] = v
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")

	result, err := calculator.New().Calculate(t, params, sizes, input)
	if err != nil {
		if encErr := encoder.Encode(api.NewFailureResponse(err)); encErr != nil {
			return encErr
		}
		return err
	}

	return encoder.Encode(api.NewCalculateResponse(result))
}
