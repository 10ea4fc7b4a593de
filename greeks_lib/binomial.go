package greeks

import "math"

// intrinsic is the immediate exercise value at spot s
func intrinsic(t Type, s, K float64) float64 {
	switch t {
	case Call:
		return math.Max(s-K, 0.0)
	case Put:
		return math.Max(K-s, 0.0)
	}
	return math.NaN()
}

// americanBinomialPrice runs a Cox-Ross-Rubinstein lattice with an early
// exercise check at every node. steps is clamped to at least 1.
func americanBinomialPrice(t Type, S, K, r, q, sigma, T float64, steps int) float64 {
	if steps < 1 {
		steps = 1
	}

	dt := T / float64(steps)
	u := math.Exp(sigma * math.Sqrt(dt))
	d := 1.0 / u
	disc := math.Exp(-r * dt)
	a := math.Exp((r - q) * dt)
	p := (a - d) / (u - d)

	// spots at maturity, lowest node first
	spot := make([]float64, steps+1)
	spot[0] = S * math.Pow(d, float64(steps))
	for i := 1; i <= steps; i++ {
		spot[i] = spot[i-1] * (u / d)
	}

	value := make([]float64, steps+1)
	for i := 0; i <= steps; i++ {
		value[i] = intrinsic(t, spot[i], K)
	}

	for step := steps - 1; step >= 0; step-- {
		for i := 0; i <= step; i++ {
			spot[i] = spot[i] / d // roll down
			cont := disc * (p*value[i+1] + (1.0-p)*value[i])
			value[i] = math.Max(cont, intrinsic(t, spot[i], K))
		}
	}
	return value[0]
}

// AmericanPrice returns the lattice pricing function for a fixed step count
func AmericanPrice(t Type, steps int) PriceFunc {
	return func(S, K, r, q, sigma, T float64) float64 {
		return americanBinomialPrice(t, S, K, r, q, sigma, T, steps)
	}
}

// AmericanOption prices an American option on a CRR lattice with the given
// number of steps and derives Greeks via FiniteDiffGreeks. steps < 1 is invalid.
func AmericanOption(t Type, S, K, r, q, sigma, T float64, steps int) Result {
	if !validInputs(S, K, sigma, T) || steps < 1 || !t.Valid() {
		return NaNResult()
	}
	return FiniteDiffGreeks(AmericanPrice(t, steps), S, K, r, q, sigma, T)
}
