package greeks

import "math"

// d1d2 returns the Black-Scholes d1 and d2 terms with continuous yield q
func d1d2(S, K, r, q, sigma, T float64) (float64, float64) {
	sigmaSqrtT := sigma * math.Sqrt(T)
	d1 := (math.Log(S/K) + (r-q+0.5*sigma*sigma)*T) / sigmaSqrtT
	return d1, d1 - sigmaSqrtT
}

// BlackScholes prices a European option with continuous dividend yield q and
// returns analytic Greeks. Theta is the decay rate (-dV/dT).
//
// Invalid inputs (S, K, sigma or T not strictly positive, or an undefined
// Type) return NaNResult.
func BlackScholes(t Type, S, K, r, q, sigma, T float64) Result {
	if !validInputs(S, K, sigma, T) || !t.Valid() {
		return NaNResult()
	}

	sqrtT := math.Sqrt(T)
	sigmaSqrtT := sigma * sqrtT
	d1, d2 := d1d2(S, K, r, q, sigma, T)

	nd1 := NormCdf(d1)
	nd2 := NormCdf(d2)
	nmd1 := NormCdf(-d1)
	nmd2 := NormCdf(-d2)
	phi1 := NormPdf(d1)
	discR := math.Exp(-r * T)
	discQ := math.Exp(-q * T)

	// Shared by both types
	gamma := discQ * phi1 / (S * sigmaSqrtT)
	vega := S * discQ * phi1 * sqrtT
	thetaCommon := -(S * discQ * phi1 * sigma) / (2.0 * sqrtT)

	switch t {
	case Call:
		return Result{
			Price: S*discQ*nd1 - K*discR*nd2,
			Delta: discQ * nd1,
			Gamma: gamma,
			Vega:  vega,
			Theta: thetaCommon - r*K*discR*nd2 + q*S*discQ*nd1,
			Rho:   K * T * discR * nd2,
		}
	case Put:
		return Result{
			Price: K*discR*nmd2 - S*discQ*nmd1,
			Delta: discQ * (nd1 - 1.0),
			Gamma: gamma,
			Vega:  vega,
			Theta: thetaCommon + r*K*discR*nmd2 - q*S*discQ*nmd1,
			Rho:   -K * T * discR * nmd2,
		}
	}
	return NaNResult()
}

// EuropeanPrice is the price-only closed form, usable as a PriceFunc
func EuropeanPrice(t Type) PriceFunc {
	return func(S, K, r, q, sigma, T float64) float64 {
		return BlackScholes(t, S, K, r, q, sigma, T).Price
	}
}
