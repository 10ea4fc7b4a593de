package export

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	greeks "github.com/jwaldner/greeks/greeks_lib"
	"github.com/jwaldner/greeks/internal/config"
	"github.com/jwaldner/greeks/internal/logger"
)

// Header is the column order of exported files. Result columns follow
// greeks.FieldNames.
var Header = []string{
	"symbol", "style", "type", "spot", "strike", "rate", "dividend_yield",
	"volatility", "time_to_expiration",
	"price", "delta", "gamma", "vega", "theta", "rho",
	"error",
}

// Filename builds the export filename for a batch from the configured template
func Filename(cfg config.CSVConfig, style string, count int, now time.Time) string {
	return config.FormatCSVFilename(cfg.FilenameFormat, style, count, now)
}

// WriteCSV writes priced contracts to path, creating parent directories
func WriteCSV(path string, contracts []greeks.OptionContract) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return err
	}
	for _, c := range contracts {
		if err := w.Write(Row(c)); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	logger.Info.Printf("💾 CSV: wrote %d contracts to %s", len(contracts), path)
	return f.Close()
}

// Row renders one contract in Header order
func Row(c greeks.OptionContract) []string {
	row := []string{
		c.Symbol,
		string(c.Style),
		c.OptionType.String(),
		formatFloat(c.UnderlyingPrice),
		formatFloat(c.StrikePrice),
		formatFloat(c.RiskFreeRate),
		formatFloat(c.DividendYield),
		formatFloat(c.Volatility),
		formatFloat(c.TimeToExpiration),
	}
	for _, v := range c.Result.Fields() {
		row = append(row, formatFloat(v))
	}
	errText := ""
	if c.Err != nil {
		errText = c.Err.Error()
	}
	return append(row, errText)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
