package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	greeks "github.com/jwaldner/greeks/greeks_lib"
	"github.com/jwaldner/greeks/internal/config"
	"github.com/jwaldner/greeks/internal/export"
	"github.com/jwaldner/greeks/internal/logger"
	"github.com/jwaldner/greeks/internal/models"
	"github.com/jwaldner/greeks/internal/perf"
)

func main() {
	configFile := flag.String("config", config.DefaultConfigFile, "YAML config file")
	style := flag.String("style", "european", "european, binary or american")
	optionType := flag.String("type", "both", "call, put or both")
	spot := flag.Float64("spot", 100, "underlying price")
	strike := flag.Float64("strike", 100, "strike price")
	strikes := flag.String("strikes", "", "comma-separated strike ladder, overrides -strike")
	rate := flag.Float64("rate", 0.05, "continuously compounded risk-free rate")
	div := flag.Float64("div", 0, "continuous dividend yield")
	vol := flag.Float64("vol", 0.2, "volatility")
	expiry := flag.Float64("t", 1, "time to expiration in years")
	payout := flag.Float64("payout", 0, "binary cash payout (0 = config default)")
	steps := flag.Int("steps", 0, "american lattice steps (0 = config default)")
	csvDir := flag.String("csv", "", "write results to a CSV file in this directory")
	flag.Parse()

	cfg := config.LoadFrom(*configFile)
	logger.InitWithWriter(cfg.Logging.LogLevel, os.Stderr)

	st, err := greeks.ParseStyle(*style)
	if err != nil {
		fail(err)
	}
	types, err := parseTypes(*optionType)
	if err != nil {
		fail(err)
	}
	ladder, err := parseStrikes(*strikes, *strike)
	if err != nil {
		fail(err)
	}
	if *payout == 0 {
		*payout = cfg.Engine.DefaultPayout
	}
	if *steps == 0 {
		*steps = cfg.Engine.DefaultSteps
	}

	var contracts []greeks.OptionContract
	for _, typ := range types {
		for _, k := range ladder {
			contracts = append(contracts, greeks.OptionContract{
				Style:            st,
				OptionType:       typ,
				UnderlyingPrice:  *spot,
				StrikePrice:      k,
				RiskFreeRate:     *rate,
				DividendYield:    *div,
				Volatility:       *vol,
				TimeToExpiration: *expiry,
				Payout:           *payout,
				Steps:            *steps,
			})
		}
	}

	engine := perf.NewPerformanceWrapper(greeks.NewEngineForced(cfg.Engine.ExecutionMode, cfg.Engine.Workers))
	defer engine.Close()

	priced, err := engine.Calculate(contracts)
	if err != nil {
		fail(err)
	}

	fmt.Printf("📊 %s options: S=%g r=%g q=%g σ=%g T=%g\n", st, *spot, *rate, *div, *vol, *expiry)
	for _, typ := range types {
		printTable(typ, priced, cfg.Display.Precision)
	}

	if *csvDir != "" {
		name := export.Filename(cfg.CSV, string(st), len(priced), time.Now())
		path := filepath.Join(*csvDir, name)
		if err := export.WriteCSV(path, priced); err != nil {
			fail(err)
		}
		fmt.Printf("💾 Wrote %s\n", path)
	}
}

func printTable(typ greeks.Type, priced []greeks.OptionContract, precision int) {
	fmt.Printf("\n%s\n", strings.ToUpper(typ.String()))
	fmt.Printf("%10s", "strike")
	for _, name := range greeks.FieldNames {
		fmt.Printf("  %14s", name)
	}
	fmt.Println()

	for _, c := range priced {
		if c.OptionType != typ {
			continue
		}
		fmt.Printf("%10g", c.StrikePrice)
		for _, v := range c.Result.Fields() {
			fmt.Printf("  %14s", models.FormatValue(v, precision, "").Display)
		}
		if c.Err != nil {
			fmt.Printf("  ⚠️  %v", c.Err)
		}
		fmt.Println()
	}
}

func parseTypes(s string) ([]greeks.Type, error) {
	if strings.EqualFold(s, "both") {
		return []greeks.Type{greeks.Call, greeks.Put}, nil
	}
	t, err := greeks.ParseType(s)
	if err != nil {
		return nil, err
	}
	return []greeks.Type{t}, nil
}

func parseStrikes(list string, single float64) ([]float64, error) {
	if strings.TrimSpace(list) == "" {
		return []float64{single}, nil
	}
	var out []float64
	for _, part := range strings.Split(list, ",") {
		k, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid strike %q: %w", part, err)
		}
		out = append(out, k)
	}
	return out, nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "❌ %v\n", err)
	os.Exit(1)
}
