package greeks

import "math"

// binaryCashPrice is the cash-or-nothing closed form. Inputs are not checked;
// the finite-difference engine calls it at perturbed points.
func binaryCashPrice(t Type, S, K, r, q, sigma, T, payout float64) float64 {
	_, d2 := d1d2(S, K, r, q, sigma, T)
	disc := math.Exp(-r * T)
	switch t {
	case Call:
		return payout * disc * NormCdf(d2)
	case Put:
		return payout * disc * NormCdf(-d2)
	}
	return math.NaN()
}

// BinaryPrice returns the cash-or-nothing pricing function for a fixed payout
func BinaryPrice(t Type, payout float64) PriceFunc {
	return func(S, K, r, q, sigma, T float64) float64 {
		return binaryCashPrice(t, S, K, r, q, sigma, T, payout)
	}
}

// BinaryCashOrNothing prices a cash-or-nothing binary paying payout when the
// option finishes in the money. Greeks come from FiniteDiffGreeks.
func BinaryCashOrNothing(t Type, S, K, r, q, sigma, T, payout float64) Result {
	if !validInputs(S, K, sigma, T) || !t.Valid() {
		return NaNResult()
	}
	return FiniteDiffGreeks(BinaryPrice(t, payout), S, K, r, q, sigma, T)
}
