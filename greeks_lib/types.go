package greeks

import (
	"fmt"
	"math"
	"strings"
)

// Type is the contract direction. Its value doubles as the payoff sign.
type Type int

const (
	Call Type = 1
	Put  Type = -1
)

// Defaults for the optional per-contract parameters
const (
	DefaultPayout = 1.0
	DefaultSteps  = 200
)

// String returns "call" or "put"
func (t Type) String() string {
	switch t {
	case Call:
		return "call"
	case Put:
		return "put"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is one of the two defined variants
func (t Type) Valid() bool {
	switch t {
	case Call, Put:
		return true
	}
	return false
}

// ParseType accepts call/put in any case, plus the C/P single-letter forms
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "calls", "c":
		return Call, nil
	case "put", "puts", "p":
		return Put, nil
	}
	return 0, fmt.Errorf("unknown option type %q", s)
}

// Result holds a price and its sensitivities. The field order is part of the
// public shape and every serializer keeps it.
type Result struct {
	Price float64
	Delta float64
	Gamma float64
	Vega  float64
	Theta float64
	Rho   float64
}

// NaNResult is the sentinel returned for invalid inputs
func NaNResult() Result {
	nan := math.NaN()
	return Result{nan, nan, nan, nan, nan, nan}
}

// IsNaN reports whether any field is NaN
func (r Result) IsNaN() bool {
	for _, v := range r.Fields() {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// Fields returns the values in canonical order: price, delta, gamma, vega, theta, rho
func (r Result) Fields() [6]float64 {
	return [6]float64{r.Price, r.Delta, r.Gamma, r.Vega, r.Theta, r.Rho}
}

// FieldNames matches the order of Fields
var FieldNames = [6]string{"price", "delta", "gamma", "vega", "theta", "rho"}

// validInputs is the shared domain check. The negated comparisons also reject NaN.
func validInputs(S, K, sigma, T float64) bool {
	return S > 0 && K > 0 && sigma > 0 && T > 0
}
