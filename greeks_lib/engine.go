package greeks

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
)

// Style selects the pricing model for a contract
type Style string

const (
	StyleEuropean Style = "european"
	StyleBinary   Style = "binary"
	StyleAmerican Style = "american"
)

// ParseStyle accepts the style names case-insensitively
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleEuropean, "":
		return StyleEuropean, nil
	case StyleBinary, "cash-or-nothing":
		return StyleBinary, nil
	case StyleAmerican:
		return StyleAmerican, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

var (
	// ErrInvalidInput marks a contract whose Result is the NaN sentinel
	ErrInvalidInput = errors.New("invalid pricing input")
	// ErrUnknownStyle marks a contract with no pricing model
	ErrUnknownStyle = errors.New("unknown option style")
	// ErrEngineClosed is returned by Calculate after Close
	ErrEngineClosed = errors.New("engine closed")
)

// OptionContract is one valuation request plus its output
type OptionContract struct {
	Symbol           string
	Style            Style
	OptionType       Type
	UnderlyingPrice  float64
	StrikePrice      float64
	RiskFreeRate     float64
	DividendYield    float64
	Volatility       float64
	TimeToExpiration float64
	Payout           float64 // binary only, 0 means DefaultPayout
	Steps            int     // american only, 0 means DefaultSteps

	// Output
	Result Result
	Err    error
}

// Validate reports the first domain violation as an ErrInvalidInput
func (c OptionContract) Validate() error {
	switch {
	case !c.OptionType.Valid():
		return fmt.Errorf("%w: option type %d", ErrInvalidInput, int(c.OptionType))
	case !(c.UnderlyingPrice > 0):
		return fmt.Errorf("%w: underlying price %v must be positive", ErrInvalidInput, c.UnderlyingPrice)
	case !(c.StrikePrice > 0):
		return fmt.Errorf("%w: strike %v must be positive", ErrInvalidInput, c.StrikePrice)
	case !(c.Volatility > 0):
		return fmt.Errorf("%w: volatility %v must be positive", ErrInvalidInput, c.Volatility)
	case !(c.TimeToExpiration > 0):
		return fmt.Errorf("%w: time to expiration %v must be positive", ErrInvalidInput, c.TimeToExpiration)
	case c.Style == StyleAmerican && c.Steps < 0:
		return fmt.Errorf("%w: steps %d must be at least 1", ErrInvalidInput, c.Steps)
	}
	return nil
}

// Value dispatches a contract to its pricing model. Invalid contracts still
// carry NaNResult alongside the error.
func Value(c OptionContract) (Result, error) {
	if err := c.Validate(); err != nil {
		return NaNResult(), err
	}

	S, K, r, q, sigma, T := c.UnderlyingPrice, c.StrikePrice, c.RiskFreeRate, c.DividendYield, c.Volatility, c.TimeToExpiration
	switch c.Style {
	case StyleEuropean, "":
		return BlackScholes(c.OptionType, S, K, r, q, sigma, T), nil
	case StyleBinary:
		payout := c.Payout
		if payout == 0 {
			payout = DefaultPayout
		}
		return BinaryCashOrNothing(c.OptionType, S, K, r, q, sigma, T, payout), nil
	case StyleAmerican:
		steps := c.Steps
		if steps == 0 {
			steps = DefaultSteps
		}
		return AmericanOption(c.OptionType, S, K, r, q, sigma, T, steps), nil
	}
	return NaNResult(), fmt.Errorf("%w: %q", ErrUnknownStyle, c.Style)
}

// ExecutionMode defines how batches are spread over goroutines
type ExecutionMode string

const (
	ExecutionModeAuto     ExecutionMode = "auto"
	ExecutionModeCPU      ExecutionMode = "cpu" // sequential on the calling goroutine
	ExecutionModeParallel ExecutionMode = "parallel"
)

// batches smaller than this stay sequential in auto mode
const parallelThreshold = 64

// Engine runs batches of contracts. It holds no pricing state, only the
// execution policy, so a single Engine may be shared between goroutines.
type Engine struct {
	mu            sync.RWMutex
	executionMode ExecutionMode
	workers       int
	closed        bool
}

// NewEngine creates an engine in auto mode with one worker per CPU
func NewEngine() *Engine {
	return &Engine{
		executionMode: ExecutionModeAuto,
		workers:       runtime.NumCPU(),
	}
}

// NewEngineForced creates an engine with a fixed mode; unknown modes fall back
// to auto. workers <= 0 means one per CPU.
func NewEngineForced(mode string, workers int) *Engine {
	e := NewEngine()
	switch ExecutionMode(strings.ToLower(mode)) {
	case ExecutionModeCPU:
		e.executionMode = ExecutionModeCPU
	case ExecutionModeParallel:
		e.executionMode = ExecutionModeParallel
	default:
		e.executionMode = ExecutionModeAuto
	}
	if workers > 0 {
		e.workers = workers
	}
	return e
}

// Close marks the engine unusable
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}

// Mode returns the configured execution mode
func (e *Engine) Mode() ExecutionMode {
	return e.executionMode
}

// Workers returns the parallel worker count
func (e *Engine) Workers() int {
	return e.workers
}

// ActiveMode resolves auto for a batch of n contracts
func (e *Engine) ActiveMode(n int) ExecutionMode {
	switch e.executionMode {
	case ExecutionModeCPU, ExecutionModeParallel:
		return e.executionMode
	}
	if n >= parallelThreshold && e.workers > 1 {
		return ExecutionModeParallel
	}
	return ExecutionModeCPU
}

// Calculate values every contract and returns copies with Result and Err
// filled. Per-contract failures land in Err; the returned error is only for
// engine-level problems.
func (e *Engine) Calculate(contracts []OptionContract) ([]OptionContract, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return nil, ErrEngineClosed
	}
	if len(contracts) == 0 {
		return contracts, nil
	}

	results := make([]OptionContract, len(contracts))
	copy(results, contracts)

	if e.ActiveMode(len(results)) == ExecutionModeCPU {
		for i := range results {
			results[i].Result, results[i].Err = Value(results[i])
		}
		return results, nil
	}

	workers := e.workers
	if workers > len(results) {
		workers = len(results)
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i].Result, results[i].Err = Value(results[i])
			}
		}()
	}
	for i := range results {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, nil
}
