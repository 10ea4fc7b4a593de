package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jwaldner/greeks/internal/logger"
	"github.com/jwaldner/greeks/internal/models"
)

// ErrAuditClosed is returned by Record after Close
var ErrAuditClosed = errors.New("audit closed")

// Entry is one audited valuation, written as a single JSON line
type Entry struct {
	Timestamp time.Time              `json:"timestamp"`
	Endpoint  string                 `json:"endpoint"`
	Inputs    map[string]interface{} `json:"inputs"`
	Outcome   models.ValuationResult `json:"outcome"`
}

// FileAuditor appends entries to a JSON-lines file from a single goroutine
type FileAuditor struct {
	path      string
	auditChan chan Entry
	done      chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewFileAuditor opens path for appending and starts the writer goroutine
func NewFileAuditor(path string, buffer int) (*FileAuditor, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open audit file: %w", err)
	}
	if buffer <= 0 {
		buffer = 100
	}

	fa := &FileAuditor{
		path:      path,
		auditChan: make(chan Entry, buffer),
		done:      make(chan struct{}),
	}
	go fa.auditWorker(f)
	return fa, nil
}

// Record queues an entry without blocking
func (fa *FileAuditor) Record(entry Entry) error {
	fa.mu.RLock()
	defer fa.mu.RUnlock()
	if fa.closed {
		return ErrAuditClosed
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	select {
	case fa.auditChan <- entry:
		return nil
	default:
		return fmt.Errorf("audit channel full")
	}
}

// Close drains queued entries and closes the file
func (fa *FileAuditor) Close() error {
	fa.mu.Lock()
	if fa.closed {
		fa.mu.Unlock()
		return nil
	}
	fa.closed = true
	close(fa.auditChan)
	fa.mu.Unlock()

	<-fa.done
	return nil
}

// auditWorker owns the file; it is the only writer
func (fa *FileAuditor) auditWorker(f *os.File) {
	defer close(fa.done)
	defer f.Close()

	enc := json.NewEncoder(f)
	written := 0
	for entry := range fa.auditChan {
		if err := enc.Encode(entry); err != nil {
			logger.Warn.Printf("⚠️ AUDIT: Failed to write entry for %s: %v", entry.Outcome.Symbol, err)
			continue
		}
		written++
		logger.Verbose.Printf("📝 AUDIT: %s %s %s (total: %d)", entry.Endpoint, entry.Outcome.Style, entry.Outcome.OptionType, written)
	}
	logger.Debug.Printf("📁 AUDIT: Closed %s after %d entries", fa.path, written)
}
