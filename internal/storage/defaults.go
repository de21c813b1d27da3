package storage

import "github.com/eugenenazirov/coverage-calculator/internal/calculator"

var defaultProducts = []Product{
	{
		ID:                  "self-levelling-compound",
		Name:                "Self-Levelling Compound",
		Enabled:             true,
		Type:                string(calculator.Leveller),
		UseWeightAttributes: false,
		Settings: map[string]string{
			calculator.SettingPackSize:      "20",
			calculator.SettingPackUnit:      "bag",
			calculator.SettingDensityFactor: "1.67",
			calculator.SettingMinDepth:      "1",
			calculator.SettingMaxDepth:      "20",
		},
	},
	{
		ID:      "powdered-tile-adhesive",
		Name:    "Powdered Tile Adhesive",
		Enabled: true,
		Type:    string(calculator.AdhesivePowder),
		Settings: map[string]string{
			calculator.SettingPackSize:       "20",
			calculator.SettingPackUnit:       "bag",
			calculator.SettingCoverageWalls:  "4",
			calculator.SettingCoverageFloors: "3",
		},
	},
	{
		ID:                  "ready-mixed-adhesive",
		Name:                "Ready Mixed Adhesive",
		Enabled:             true,
		Type:                string(calculator.AdhesiveReady),
		UseWeightAttributes: true,
		Settings: map[string]string{
			calculator.SettingPackUnit: "tub",
		},
		Attributes: map[string][]string{
			AttributeWeight: {"1.5kg", "7.5kg", "15 kg"},
		},
	},
	{
		ID:                  "wall-and-floor-grout",
		Name:                "Wall & Floor Grout",
		Enabled:             true,
		Type:                string(calculator.Grout),
		UseColourAttributes: true,
		Settings: map[string]string{
			calculator.SettingPackSize:     "3.5",
			calculator.SettingPackUnit:     "pack",
			calculator.SettingGroutDensity: "1.6",
		},
		Attributes: map[string][]string{
			AttributeColour: {"White", "Grey|Anthracite", "Jasmine"},
		},
	},
	{
		ID:                  "sanitary-silicone",
		Name:                "Sanitary Silicone",
		Enabled:             true,
		Type:                string(calculator.Silicone),
		UseColourAttributes: true,
		Settings: map[string]string{
			calculator.SettingLinearCoverage: "12.4",
		},
		Attributes: map[string][]string{
			AttributeColour: {"White|Clear", "Grey"},
		},
	},
	{
		ID:      "tanking-kit",
		Name:    "Tanking Kit",
		Enabled: true,
		Type:    string(calculator.Waterproofing),
		Settings: map[string]string{
			calculator.SettingPackSize: "15",
			calculator.SettingPackUnit: "kit",
		},
	},
}
