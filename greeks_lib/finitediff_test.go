package greeks

import (
	"math"
	"testing"
)

// linear has constant sensitivities, so every central difference is exact
// up to rounding
type linear struct {
	a, b, c, d float64
	calls      int
	maturities []float64
}

func (l *linear) Price(S, K, r, q, sigma, T float64) float64 {
	l.calls++
	l.maturities = append(l.maturities, T)
	return l.a*S + l.b*sigma + l.c*r + l.d*T
}

func TestFiniteDiffLinearPricer(t *testing.T) {
	l := &linear{a: 0.5, b: 20, c: -3, d: 2}
	res := FiniteDiffGreeks(l.Price, 100, 100, 0.05, 0, 0.2, 1)

	if l.calls != 9 {
		t.Fatalf("expected 9 evaluations, got %d", l.calls)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"delta", res.Delta, 0.5},
		{"gamma", res.Gamma, 0},
		{"vega", res.Vega, 20},
		{"rho", res.Rho, -3},
		{"theta", res.Theta, -2},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want, 1e-6) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestFiniteDiffStepSizes(t *testing.T) {
	h := newFDSteps(100, 0.2, 0.05, 1)
	if !almostEqual(h.hS, 1e-2, 1e-15) || !almostEqual(h.hSigma, 2e-5, 1e-15) {
		t.Fatalf("unexpected spot/vol steps %+v", h)
	}
	if !almostEqual(h.hR, 6e-6, 1e-15) || !almostEqual(h.hT, 1.01e-4, 1e-15) {
		t.Fatalf("unexpected rate/maturity steps %+v", h)
	}

	// floors kick in near zero
	h = newFDSteps(1e-4, 1e-4, 0, 1e-6)
	if h.hS != 1e-6 || h.hSigma != 1e-6 || h.hR != 1e-6 {
		t.Fatalf("expected 1e-6 floors, got %+v", h)
	}
}

func TestFiniteDiffThetaFloor(t *testing.T) {
	T := 5e-7
	l := &linear{d: 1}
	res := FiniteDiffGreeks(l.Price, 100, 100, 0.05, 0, 0.2, T)

	hT := math.Max(1e-6, 1e-4*T+1e-6)
	tDown := l.maturities[len(l.maturities)-1]
	if tDown != 0.5*T {
		t.Fatalf("down maturity = %v, want %v", tDown, 0.5*T)
	}
	// nominal denominator, not the actual spread
	want := -((T + hT) - 0.5*T) / (2 * hT)
	if !almostEqual(res.Theta, want, 1e-12) {
		t.Fatalf("theta = %v, want %v", res.Theta, want)
	}
}

func TestFiniteDiffThetaFloorAtMinimum(t *testing.T) {
	l := &linear{d: 1}
	FiniteDiffGreeks(l.Price, 100, 100, 0.05, 0, 0.2, 1e-8)
	if got := l.maturities[len(l.maturities)-1]; got != minMaturity {
		t.Fatalf("down maturity = %v, want floor %v", got, minMaturity)
	}
}

func TestFiniteDiffShortMaturityIsFinite(t *testing.T) {
	res := AmericanOption(Put, 100, 100, 0.05, 0, 0.2, 5e-7, 10)
	if res.IsNaN() {
		t.Fatalf("expected finite greeks for a very short maturity, got %+v", res)
	}
}
