package perf

import (
	"errors"
	"strings"
	"testing"

	greeks "github.com/jwaldner/greeks/greeks_lib"
)

func TestPerformanceWrapperCounts(t *testing.T) {
	pw := NewPerformanceWrapper(greeks.NewEngineForced("cpu", 1))

	contracts := []greeks.OptionContract{
		{Style: greeks.StyleEuropean, OptionType: greeks.Call, UnderlyingPrice: 100, StrikePrice: 100, RiskFreeRate: 0.05, Volatility: 0.2, TimeToExpiration: 1},
		{Style: greeks.StyleBinary, OptionType: greeks.Put, UnderlyingPrice: 100, StrikePrice: 95, RiskFreeRate: 0.05, Volatility: 0.2, TimeToExpiration: 0.5},
	}
	for i := 0; i < 3; i++ {
		out, err := pw.Calculate(contracts)
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if len(out) != 2 || out[0].Result.IsNaN() {
			t.Fatalf("unexpected results %+v", out)
		}
	}

	s := pw.Snapshot()
	if s.TotalBatches != 3 || s.TotalContracts != 6 {
		t.Fatalf("expected 3 batches / 6 contracts, got %+v", s)
	}
	stats := pw.GetPerformanceStats()
	if !strings.Contains(stats, "Total Contracts:   6") || !strings.Contains(stats, "cpu") {
		t.Errorf("stats missing counters: %s", stats)
	}
}

func TestPerformanceWrapperCloseClosesEngine(t *testing.T) {
	pw := NewPerformanceWrapper(greeks.NewEngine())
	pw.Close()
	if _, err := pw.Calculate([]greeks.OptionContract{{}}); !errors.Is(err, greeks.ErrEngineClosed) {
		t.Fatalf("expected ErrEngineClosed after Close, got %v", err)
	}
}
