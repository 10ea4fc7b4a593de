package greeks

import "math"

// PriceFunc is anything that prices from (S, K, r, q, sigma, T)
type PriceFunc func(S, K, r, q, sigma, T float64) float64

// Pricer is the method form of PriceFunc. Pass p.Price to FiniteDiffGreeks.
type Pricer interface {
	Price(S, K, r, q, sigma, T float64) float64
}

// minMaturity is the smallest maturity the theta down-step may evaluate at
const minMaturity = 1e-8

// fdSteps are the bump sizes, fixed from the unperturbed inputs
type fdSteps struct {
	hS, hSigma, hR, hT float64
}

func newFDSteps(S, sigma, r, T float64) fdSteps {
	return fdSteps{
		hS:     math.Max(1e-6, 1e-4*S),
		hSigma: math.Max(1e-6, 1e-4*sigma),
		hR:     math.Max(1e-6, 1e-4*math.Abs(r)+1e-6),
		hT:     math.Max(1e-6, 1e-4*T+1e-6),
	}
}

// FiniteDiffGreeks prices with f at the given point and bumps each input to
// get delta, gamma, vega, rho and theta from central differences.
//
// If T-hT would fall to 1e-8 or below, the down-bumped maturity becomes
// max(1e-8, T/2) but theta still divides by the nominal 2*hT.
func FiniteDiffGreeks(f PriceFunc, S, K, r, q, sigma, T float64) Result {
	h := newFDSteps(S, sigma, r, T)

	p0 := f(S, K, r, q, sigma, T)
	pSUp := f(S+h.hS, K, r, q, sigma, T)
	pSDown := f(S-h.hS, K, r, q, sigma, T)
	pVolUp := f(S, K, r, q, sigma+h.hSigma, T)
	pVolDown := f(S, K, r, q, sigma-h.hSigma, T)
	pRateUp := f(S, K, r+h.hR, q, sigma, T)
	pRateDown := f(S, K, r-h.hR, q, sigma, T)

	pTUp := f(S, K, r, q, sigma, T+h.hT)
	tDown := T - h.hT
	if tDown <= minMaturity {
		tDown = math.Max(minMaturity, 0.5*T)
	}
	pTDown := f(S, K, r, q, sigma, tDown)

	return Result{
		Price: p0,
		Delta: (pSUp - pSDown) / (2.0 * h.hS),
		Gamma: (pSUp - 2.0*p0 + pSDown) / (h.hS * h.hS),
		Vega:  (pVolUp - pVolDown) / (2.0 * h.hSigma),
		Theta: -(pTUp - pTDown) / (2.0 * h.hT),
		Rho:   (pRateUp - pRateDown) / (2.0 * h.hR),
	}
}
