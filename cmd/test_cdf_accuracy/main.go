package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	greeks "github.com/jwaldner/greeks/greeks_lib"
)

// Compare the erfc-based CDF against the naive erf form in the tails
func main() {
	fmt.Println("🎯 Testing CDF Accuracy (erfc vs erf)")
	fmt.Println("=====================================")
	fmt.Println()

	naive := func(x float64) float64 {
		return 0.5 * (1 + math.Erf(x/math.Sqrt2))
	}

	fmt.Printf("%8s  %-24s  %-24s  %-24s  %s\n", "x", "NormCdf (erfc)", "erf form", "gonum", "erf rel err")
	for _, x := range []float64{-1, -3, -5, -8, -10, -20, -30, -37} {
		ref := distuv.UnitNormal.CDF(x)
		got := greeks.NormCdf(x)
		bad := naive(x)

		relErr := math.Inf(1)
		if ref != 0 {
			relErr = math.Abs(bad-ref) / ref
		}
		fmt.Printf("%8.1f  %-24.17g  %-24.17g  %-24.17g  %.2e\n", x, got, bad, ref, relErr)
	}
	fmt.Println()

	// A deep out-of-the-money put with a short maturity lives in the lower tail
	S := 188.36
	K := 166.0
	T := 0.057534246575342465
	r := 0.03983
	sigma := 0.39963570444400937

	fmt.Printf("📊 Input Parameters:\n")
	fmt.Printf("   Stock Price (S): $%.2f\n", S)
	fmt.Printf("   Strike Price (K): $%.0f\n", K)
	fmt.Printf("   Time to Exp (T): %.6f years\n", T)
	fmt.Printf("   Risk-free Rate (r): %.5f\n", r)
	fmt.Printf("   Volatility (σ): %.6f\n", sigma)
	fmt.Println()

	res := greeks.BlackScholes(greeks.Put, S, K, r, 0, sigma, T)
	fmt.Printf("🔬 Calculation Results:\n")
	fmt.Printf("   Price: $%.6f\n", res.Price)
	fmt.Printf("   Delta: %.6f\n", res.Delta)
	fmt.Printf("   Gamma: %.6f\n", res.Gamma)
	fmt.Printf("   Vega:  %.6f\n", res.Vega)
	fmt.Printf("   Theta: %.6f\n", res.Theta)
	fmt.Printf("   Rho:   %.6f\n", res.Rho)
	fmt.Println()

	// Far enough out that the erf form collapses to zero
	far := greeks.BlackScholes(greeks.Put, 1000, 100, 0.05, 0, 0.2, 0.1)
	if far.Price > 0 && !math.IsNaN(far.Price) {
		fmt.Printf("✅ far OTM put keeps a positive price: %.3e\n", far.Price)
	} else {
		fmt.Printf("⚠️  far OTM put underflowed: %v\n", far.Price)
	}
}
