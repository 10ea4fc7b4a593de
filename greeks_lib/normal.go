package greeks

import "math"

const invSqrt2Pi = 0.39894228040143267794

// NormPdf is the standard normal density
func NormPdf(x float64) float64 {
	return invSqrt2Pi * math.Exp(-0.5*x*x)
}

// NormCdf is the standard normal distribution function. It goes through erfc
// rather than erf so the lower tail keeps its relative precision.
func NormCdf(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}
