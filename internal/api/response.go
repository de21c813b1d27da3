package api

import (
	"errors"

	"github.com/eugenenazirov/coverage-calculator/internal/calculator"
)

// CalculateResponse is the stable wire shape of a successful calculation.
// Exactly one of TotalKg and TotalM is set, depending on what the product
// is measured in.
type CalculateResponse struct {
	Success       bool       `json:"success"`
	Quantity      int        `json:"quantity"`
	Unit          string     `json:"unit"`
	PackBreakdown []PackLine `json:"pack_breakdown,omitempty"`
	TotalKg       *float64   `json:"total_kg,omitempty"`
	TotalM        *float64   `json:"total_m,omitempty"`
	Details       string     `json:"details"`
	Colour        string     `json:"colour,omitempty"`
}

// FailureResponse is the wire shape of a rejected calculation.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details"`
}

// NewFailureResponse serializes a calculation error, naming the rejected
// field when err is a *calculator.ValidationError.
func NewFailureResponse(err error) FailureResponse {
	resp := FailureResponse{
		Success: false,
		Error:   "Invalid input",
		Details: err.Error(),
	}
	var verr *calculator.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}
	return resp
}

// PackLine is one entry of the pack breakdown.
type PackLine struct {
	Size     float64 `json:"size"`
	Quantity int     `json:"quantity"`
}

// NewCalculateResponse serializes a calculator result.
func NewCalculateResponse(result calculator.Result) CalculateResponse {
	resp := CalculateResponse{
		Success:  true,
		Quantity: result.PackCount,
		Unit:     result.Unit,
		Details:  result.Details,
		Colour:   result.Colour,
	}

	total := result.Total
	if result.Measure == "m" {
		resp.TotalM = &total
	} else {
		resp.TotalKg = &total
	}

	if result.Optimized() {
		resp.PackBreakdown = make([]PackLine, 0, len(result.PackBreakdown))
		for _, p := range result.PackBreakdown {
			resp.PackBreakdown = append(resp.PackBreakdown, PackLine{Size: p.Size, Quantity: p.Count})
		}
	}

	return resp
}
