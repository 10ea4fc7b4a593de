package main

import (
	"fmt"
	"math"
	"time"

	greeks "github.com/jwaldner/greeks/greeks_lib"
	testdata "github.com/jwaldner/greeks/test_data"
)

func main() {
	snap := testdata.MarketSnapshot

	fmt.Println("🔬 Testing CPU vs Parallel Engine with Apple Options Data")
	fmt.Printf("📅 Data: %s options expiring %s\n", snap.Symbol, snap.ExpirationDate)
	fmt.Printf("💰 Stock Price: $%.3f\n", snap.StockPrice)
	fmt.Println()

	// Every strike in every style, both directions
	var contracts []greeks.OptionContract
	for _, style := range []greeks.Style{greeks.StyleEuropean, greeks.StyleBinary, greeks.StyleAmerican} {
		for _, typ := range []greeks.Type{greeks.Call, greeks.Put} {
			for _, strike := range snap.Strikes {
				contracts = append(contracts, greeks.OptionContract{
					Symbol:           snap.Symbol,
					Style:            style,
					OptionType:       typ,
					UnderlyingPrice:  snap.StockPrice,
					StrikePrice:      strike,
					RiskFreeRate:     snap.RiskFreeRate,
					Volatility:       snap.Volatility,
					TimeToExpiration: snap.TimeToExpiration,
				})
			}
		}
	}
	fmt.Printf("📈 Contracts in batch: %d\n", len(contracts))
	fmt.Println()

	cpu := testEngine("cpu", contracts)
	parallel := testEngine("parallel", contracts)
	testEngine("auto", contracts)

	if cpu == nil || parallel == nil {
		return
	}

	maxDiff := 0.0
	for i := range cpu {
		a, b := cpu[i].Result.Fields(), parallel[i].Result.Fields()
		for j := range a {
			maxDiff = math.Max(maxDiff, math.Abs(a[j]-b[j]))
		}
	}
	if maxDiff == 0 {
		fmt.Println("✅ CPU and parallel results are identical")
	} else {
		fmt.Printf("❌ CPU and parallel results differ by up to %g\n", maxDiff)
	}
}

func testEngine(mode string, contracts []greeks.OptionContract) []greeks.OptionContract {
	fmt.Printf("🧪 Testing %s Engine\n", mode)
	fmt.Println("=" + fmt.Sprintf("%*s", len(mode)+15, "="))

	engine := greeks.NewEngineForced(mode, 0)
	defer engine.Close()

	startTime := time.Now()
	results, err := engine.Calculate(contracts)
	if err != nil {
		fmt.Printf("❌ Error: %v\n\n", err)
		return nil
	}
	duration := time.Since(startTime)

	invalid := 0
	for _, c := range results {
		if c.Err != nil {
			invalid++
		}
	}

	fmt.Printf("✅ Success! Processed in %.2fms\n", duration.Seconds()*1000)
	fmt.Printf("🏃 Execution Mode: %s (%d workers)\n", engine.ActiveMode(len(contracts)), engine.Workers())
	fmt.Printf("📊 Contracts Processed: %d (%d invalid)\n", len(results), invalid)

	// ATM slice for a quick read
	for _, c := range results {
		if c.StrikePrice == 270 {
			fmt.Printf("   • %-8s %-4s K=%.0f price=%.4f delta=%.4f\n", c.Style, c.OptionType, c.StrikePrice, c.Result.Price, c.Result.Delta)
		}
	}
	fmt.Println()
	return results
}
