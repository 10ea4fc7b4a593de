package models

import (
	"math"

	"github.com/shopspring/decimal"

	greeks "github.com/jwaldner/greeks/greeks_lib"
)

// NotANumberDisplay is shown for undefined values
const NotANumberDisplay = "—"

// FieldValue represents a field with both raw data and formatted display
type FieldValue struct {
	Raw     interface{} `json:"raw"`     // float64, or null when undefined
	Display string      `json:"display"` // fixed precision string
	Type    string      `json:"type"`    // For CSS: "currency", "greek"
}

// FormatValue renders v at the given precision. NaN and Inf become a null raw
// value and the placeholder display.
func FormatValue(v float64, precision int, kind string) FieldValue {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FieldValue{Raw: nil, Display: NotANumberDisplay, Type: kind}
	}
	return FieldValue{
		Raw:     v,
		Display: decimal.NewFromFloat(v).StringFixed(int32(precision)),
		Type:    kind,
	}
}

// FormattedResult is a Result with each field formatted. Field order follows
// greeks.Result and is kept in the JSON output.
type FormattedResult struct {
	Price FieldValue `json:"price"`
	Delta FieldValue `json:"delta"`
	Gamma FieldValue `json:"gamma"`
	Vega  FieldValue `json:"vega"`
	Theta FieldValue `json:"theta"`
	Rho   FieldValue `json:"rho"`
}

// NewFormattedResult formats every field of r
func NewFormattedResult(r greeks.Result, precision int) FormattedResult {
	return FormattedResult{
		Price: FormatValue(r.Price, precision, "currency"),
		Delta: FormatValue(r.Delta, precision, "greek"),
		Gamma: FormatValue(r.Gamma, precision, "greek"),
		Vega:  FormatValue(r.Vega, precision, "greek"),
		Theta: FormatValue(r.Theta, precision, "greek"),
		Rho:   FormatValue(r.Rho, precision, "greek"),
	}
}

// ValuationResult is one priced contract in an API response
type ValuationResult struct {
	Symbol     string          `json:"symbol,omitempty"`
	Style      string          `json:"style"`
	OptionType string          `json:"option_type"`
	Valid      bool            `json:"valid"`
	Error      string          `json:"error,omitempty"`
	Result     FormattedResult `json:"result"`
}

// NewValuationResult builds the response entry for a priced contract
func NewValuationResult(c greeks.OptionContract, precision int) ValuationResult {
	vr := ValuationResult{
		Symbol:     c.Symbol,
		Style:      string(c.Style),
		OptionType: c.OptionType.String(),
		Valid:      c.Err == nil && !c.Result.IsNaN(),
		Result:     NewFormattedResult(c.Result, precision),
	}
	if c.Err != nil {
		vr.Error = c.Err.Error()
	}
	return vr
}

// PairResult holds the call and put for the same inputs side by side
type PairResult struct {
	Call ValuationResult `json:"call"`
	Put  ValuationResult `json:"put"`
	// ParityGap is (C - P) - (S*e^-qT - K*e^-rT). Reported for the European
	// style only, null otherwise.
	ParityGap FieldValue `json:"parity_gap"`
}

// ResponseMetadata describes how a response was produced
type ResponseMetadata struct {
	Timestamp      string  `json:"timestamp"`
	ProcessingTime float64 `json:"processing_time"` // milliseconds
	ExecutionMode  string  `json:"execution_mode,omitempty"`
	ContractCount  int     `json:"contract_count"`
	InvalidCount   int     `json:"invalid_count"`
}

// ValuationResponse is returned by the single and batch endpoints
type ValuationResponse struct {
	Success bool              `json:"success"`
	Data    []ValuationResult `json:"data"`
	Meta    ResponseMetadata  `json:"meta"`
}

// PairResponse is returned by the pair endpoint
type PairResponse struct {
	Success bool             `json:"success"`
	Data    PairResult       `json:"data"`
	Meta    ResponseMetadata `json:"meta"`
}

// ErrorResponse is returned for malformed requests
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
