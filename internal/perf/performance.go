package perf

import (
	"fmt"
	"sync"
	"time"

	greeks "github.com/jwaldner/greeks/greeks_lib"
	"github.com/jwaldner/greeks/internal/logger"
)

// slowBatch is the duration above which a batch is counted as slow
const slowBatch = 2 * time.Second

// PerformanceWrapper wraps the pricing engine with timing statistics
type PerformanceWrapper struct {
	engine *greeks.Engine

	mu                  sync.Mutex
	totalBatches        int64
	totalContracts      int64
	totalDuration       time.Duration
	slowBatchCount      int64
	lastComputeDuration time.Duration
}

// NewPerformanceWrapper creates a wrapper around an engine
func NewPerformanceWrapper(engine *greeks.Engine) *PerformanceWrapper {
	return &PerformanceWrapper{
		engine: engine,
	}
}

// Calculate wraps Engine.Calculate with performance monitoring
func (pw *PerformanceWrapper) Calculate(contracts []greeks.OptionContract) ([]greeks.OptionContract, error) {
	start := time.Now()
	result, err := pw.engine.Calculate(contracts)
	duration := time.Since(start)

	pw.recordBatch(len(contracts), duration)

	mode := pw.engine.ActiveMode(len(contracts))
	logger.Debug.Printf("⚙️  ENGINE: Calculate(%d contracts, %s) took %v", len(contracts), mode, duration)
	if duration > slowBatch {
		logger.Warn.Printf("⚠️  SLOW BATCH: Calculate(%d contracts, %s) took %v", len(contracts), mode, duration)
	}

	return result, err
}

// ActiveMode reports the execution mode the engine uses for n contracts
func (pw *PerformanceWrapper) ActiveMode(n int) greeks.ExecutionMode {
	return pw.engine.ActiveMode(n)
}

// LastComputeDuration returns the duration of the most recent batch
func (pw *PerformanceWrapper) LastComputeDuration() time.Duration {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	return pw.lastComputeDuration
}

// recordBatch updates performance statistics
func (pw *PerformanceWrapper) recordBatch(contracts int, duration time.Duration) {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	pw.totalBatches++
	pw.totalContracts += int64(contracts)
	pw.totalDuration += duration
	pw.lastComputeDuration = duration

	if duration > slowBatch {
		pw.slowBatchCount++
	}
}

// Snapshot is a copy of the counters
type Snapshot struct {
	TotalBatches   int64
	TotalContracts int64
	TotalDuration  time.Duration
	SlowBatches    int64
}

// Snapshot returns the current counters
func (pw *PerformanceWrapper) Snapshot() Snapshot {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	return Snapshot{
		TotalBatches:   pw.totalBatches,
		TotalContracts: pw.totalContracts,
		TotalDuration:  pw.totalDuration,
		SlowBatches:    pw.slowBatchCount,
	}
}

// GetPerformanceStats returns current performance statistics
func (pw *PerformanceWrapper) GetPerformanceStats() string {
	s := pw.Snapshot()

	avgDuration := time.Duration(0)
	perContract := time.Duration(0)
	if s.TotalBatches > 0 {
		avgDuration = time.Duration(int64(s.TotalDuration) / s.TotalBatches)
	}
	if s.TotalContracts > 0 {
		perContract = time.Duration(int64(s.TotalDuration) / s.TotalContracts)
	}

	return fmt.Sprintf(`
📊 Pricing Engine Performance Stats
===================================
Execution Mode:    %s (%d workers)
Total Batches:     %d
Total Contracts:   %d
Average Batch:     %v
Per Contract:      %v
Total Time:        %v
Slow Batches:      %d (>%v)
`,
		pw.engine.Mode(), pw.engine.Workers(),
		s.TotalBatches,
		s.TotalContracts,
		avgDuration,
		perContract,
		s.TotalDuration,
		s.SlowBatches, slowBatch,
	)
}

// Close prints the final report and closes the engine
func (pw *PerformanceWrapper) Close() {
	if pw.Snapshot().TotalBatches > 0 {
		logger.Info.Printf("📊 Engine Performance Report:%s", pw.GetPerformanceStats())
	}
	pw.engine.Close()
}
