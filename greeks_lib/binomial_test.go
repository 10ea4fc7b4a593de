package greeks

import (
	"math"
	"testing"
)

func TestAmericanConvergesToEuropeanCall(t *testing.T) {
	// with no dividend an American call is never exercised early
	S, K, r, q, sigma, T := 100.0, 100.0, 0.05, 0.0, 0.2, 1.0
	bs := BlackScholes(Call, S, K, r, q, sigma, T).Price

	coarse := americanBinomialPrice(Call, S, K, r, q, sigma, T, 50)
	fine := americanBinomialPrice(Call, S, K, r, q, sigma, T, 2000)

	errCoarse := math.Abs(coarse - bs)
	errFine := math.Abs(fine - bs)
	if errCoarse > 1e-1 {
		t.Errorf("50 steps: %v vs closed form %v (err %v)", coarse, bs, errCoarse)
	}
	if errFine > 1e-3 {
		t.Errorf("2000 steps: %v vs closed form %v (err %v)", fine, bs, errFine)
	}
	if errFine >= errCoarse {
		t.Errorf("error did not shrink with steps: 50=%v 2000=%v", errCoarse, errFine)
	}
	t.Logf("✅ lattice error 50 steps %.6f, 2000 steps %.6f", errCoarse, errFine)
}

func TestAmericanAtLeastEuropean(t *testing.T) {
	cases := []struct {
		typ                  Type
		S, K, r, q, sigma, T float64
	}{
		{Put, 100, 100, 0.05, 0, 0.2, 1},
		{Put, 100, 110, 0.05, 0.03, 0.25, 0.5},
		{Call, 100, 100, 0.03, 0.06, 0.25, 1},
		{Call, 120, 100, 0.02, 0.08, 0.3, 2},
	}
	const eps = 1e-2
	for _, c := range cases {
		am := AmericanOption(c.typ, c.S, c.K, c.r, c.q, c.sigma, c.T, DefaultSteps)
		eu := BlackScholes(c.typ, c.S, c.K, c.r, c.q, c.sigma, c.T)
		if am.Price < eu.Price-eps {
			t.Errorf("%s %+v: american %v below european %v", c.typ, c, am.Price, eu.Price)
		}
	}
}

func TestAmericanPutEarlyExercisePremium(t *testing.T) {
	am := AmericanOption(Put, 100, 100, 0.05, 0, 0.2, 1, DefaultSteps)
	eu := BlackScholes(Put, 100, 100, 0.05, 0, 0.2, 1)
	if am.Price-eu.Price < 0.3 {
		t.Fatalf("expected a visible early exercise premium, american %v european %v", am.Price, eu.Price)
	}
	if am.Delta >= 0 || am.Delta <= -1 {
		t.Fatalf("put delta %v outside (-1,0)", am.Delta)
	}
}

func TestAmericanDeltaNearAnalytic(t *testing.T) {
	am := AmericanOption(Call, 100, 100, 0.05, 0, 0.2, 1, DefaultSteps)
	eu := BlackScholes(Call, 100, 100, 0.05, 0, 0.2, 1)
	if !almostEqual(am.Delta, eu.Delta, 2e-2) {
		t.Fatalf("lattice delta %v, closed form %v", am.Delta, eu.Delta)
	}
	if !almostEqual(am.Vega, eu.Vega, 0.5) {
		t.Fatalf("lattice vega %v, closed form %v", am.Vega, eu.Vega)
	}
}

func TestAmericanDeepInTheMoneyPutIsIntrinsic(t *testing.T) {
	// far below the exercise boundary the holder exercises immediately
	price := americanBinomialPrice(Put, 20, 100, 0.05, 0, 0.2, 1, DefaultSteps)
	if !almostEqual(price, 80, 1e-9) {
		t.Fatalf("deep ITM american put = %v, want intrinsic 80", price)
	}
}

func TestAmericanInvalidInputs(t *testing.T) {
	assertAllNaN(t, "zero steps", AmericanOption(Put, 100, 100, 0.05, 0, 0.2, 1, 0))
	assertAllNaN(t, "negative steps", AmericanOption(Put, 100, 100, 0.05, 0, 0.2, 1, -5))
	assertAllNaN(t, "zero spot", AmericanOption(Call, 0, 100, 0.05, 0, 0.2, 1, 100))
	assertAllNaN(t, "zero vol", AmericanOption(Call, 100, 100, 0.05, 0, 0, 1, 100))
}

func TestBinomialCoreClampsSteps(t *testing.T) {
	one := americanBinomialPrice(Put, 100, 100, 0.05, 0, 0.2, 1, 1)
	zero := americanBinomialPrice(Put, 100, 100, 0.05, 0, 0.2, 1, 0)
	if one != zero || math.IsNaN(one) {
		t.Fatalf("steps=0 should clamp to 1: got %v and %v", zero, one)
	}
}
