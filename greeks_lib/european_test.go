package greeks

import (
	"math"
	"testing"

	testdata "github.com/jwaldner/greeks/test_data"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func assertAllNaN(t *testing.T, name string, r Result) {
	t.Helper()
	for i, v := range r.Fields() {
		if !math.IsNaN(v) {
			t.Errorf("%s: %s = %v, want NaN", name, FieldNames[i], v)
		}
	}
}

func TestBlackScholesReferenceCases(t *testing.T) {
	for _, tc := range testdata.EuropeanReferenceCases {
		t.Run(tc.Name, func(t *testing.T) {
			typ := Put
			if tc.Call {
				typ = Call
			}
			res := BlackScholes(typ, tc.S, tc.K, tc.R, tc.Q, tc.Sigma, tc.T)
			if !almostEqual(res.Price, tc.ExpectedPrice, 1e-9) {
				t.Fatalf("price = %.12f, want %.12f", res.Price, tc.ExpectedPrice)
			}
			if tc.ExpectedDelta != 0 && !almostEqual(res.Delta, tc.ExpectedDelta, 1e-9) {
				t.Fatalf("delta = %.12f, want %.12f", res.Delta, tc.ExpectedDelta)
			}
		})
	}
}

func TestBlackScholesPutCallParity(t *testing.T) {
	cases := []struct{ S, K, r, q, sigma, T float64 }{
		{100, 100, 0.05, 0, 0.2, 1},
		{100, 120, 0.03, 0.02, 0.35, 0.5},
		{50, 40, -0.01, 0.04, 0.6, 2},
		{272.225, 275, 0.05, 0.005, 0.25, 0.0849},
	}
	for _, c := range cases {
		call := BlackScholes(Call, c.S, c.K, c.r, c.q, c.sigma, c.T)
		put := BlackScholes(Put, c.S, c.K, c.r, c.q, c.sigma, c.T)
		lhs := call.Price - put.Price
		rhs := c.S*math.Exp(-c.q*c.T) - c.K*math.Exp(-c.r*c.T)
		if math.Abs(lhs-rhs) > 1e-6*math.Max(1, math.Abs(rhs)) {
			t.Errorf("parity violated for %+v: C-P=%v, S*e^-qT - K*e^-rT=%v", c, lhs, rhs)
		}
		// gamma and vega do not depend on type
		if call.Gamma != put.Gamma || call.Vega != put.Vega {
			t.Errorf("gamma/vega differ between call and put for %+v", c)
		}
		if !almostEqual(call.Delta-put.Delta, math.Exp(-c.q*c.T), 1e-12) {
			t.Errorf("delta parity violated for %+v", c)
		}
	}
}

func TestBlackScholesInvalidInputs(t *testing.T) {
	cases := []struct {
		name                string
		S, K, r, q, sigma, T float64
	}{
		{"negative spot", -1, 100, 0.01, 0, 0.2, 1},
		{"zero strike", 100, 0, 0.01, 0, 0.2, 1},
		{"zero vol", 100, 100, 0.01, 0, 0, 1},
		{"zero maturity", 100, 100, 0.01, 0, 0.2, 0},
		{"nan spot", math.NaN(), 100, 0.01, 0, 0.2, 1},
	}
	for _, c := range cases {
		assertAllNaN(t, c.name, BlackScholes(Call, c.S, c.K, c.r, c.q, c.sigma, c.T))
		assertAllNaN(t, c.name, BlackScholes(Put, c.S, c.K, c.r, c.q, c.sigma, c.T))
	}
	assertAllNaN(t, "undefined type", BlackScholes(Type(0), 100, 100, 0.01, 0, 0.2, 1))
}

func TestBlackScholesDeepInTheMoney(t *testing.T) {
	S, K, r, q, sigma, T := 1e6, 100.0, 0.05, 0.03, 0.2, 1.0
	res := BlackScholes(Call, S, K, r, q, sigma, T)

	wantDelta := math.Exp(-q * T)
	wantPrice := S*math.Exp(-q*T) - K*math.Exp(-r*T)
	if !almostEqual(res.Delta, wantDelta, 1e-9) {
		t.Fatalf("delta = %v, want %v", res.Delta, wantDelta)
	}
	if math.Abs(res.Price-wantPrice)/wantPrice > 1e-9 {
		t.Fatalf("price = %v, want %v", res.Price, wantPrice)
	}
	if res.Gamma > 1e-12 || res.Vega > 1e-6 {
		t.Fatalf("expected vanishing gamma/vega, got gamma=%v vega=%v", res.Gamma, res.Vega)
	}
}

func TestBlackScholesGreekSigns(t *testing.T) {
	call := BlackScholes(Call, 100, 100, 0.05, 0, 0.2, 1)
	put := BlackScholes(Put, 100, 100, 0.05, 0, 0.2, 1)

	if call.Delta <= 0 || call.Delta >= 1 {
		t.Errorf("call delta %v outside (0,1)", call.Delta)
	}
	if put.Delta >= 0 || put.Delta <= -1 {
		t.Errorf("put delta %v outside (-1,0)", put.Delta)
	}
	if call.Theta >= 0 {
		t.Errorf("call theta %v should be negative (decay)", call.Theta)
	}
	if call.Rho <= 0 || put.Rho >= 0 {
		t.Errorf("rho signs wrong: call %v put %v", call.Rho, put.Rho)
	}
	t.Logf("✅ call %+v", call)
	t.Logf("✅ put  %+v", put)
}

func TestFiniteDiffMatchesAnalytic(t *testing.T) {
	S, K, r, q, sigma, T := 100.0, 105.0, 0.05, 0.02, 0.25, 0.75
	for _, typ := range []Type{Call, Put} {
		analytic := BlackScholes(typ, S, K, r, q, sigma, T)
		numeric := FiniteDiffGreeks(EuropeanPrice(typ), S, K, r, q, sigma, T)

		checks := []struct {
			name      string
			got, want float64
			tol       float64
		}{
			{"price", numeric.Price, analytic.Price, 1e-12},
			{"delta", numeric.Delta, analytic.Delta, 1e-4},
			{"gamma", numeric.Gamma, analytic.Gamma, 1e-3},
			{"vega", numeric.Vega, analytic.Vega, 1e-4},
			{"theta", numeric.Theta, analytic.Theta, 1e-4},
			{"rho", numeric.Rho, analytic.Rho, 1e-4},
		}
		for _, c := range checks {
			if !almostEqual(c.got, c.want, c.tol) {
				t.Errorf("%s %s: finite difference %v, analytic %v", typ, c.name, c.got, c.want)
			}
		}
	}
}
