package audit

// ValuationAuditor records priced contracts for later review.
//
// Record must not block the request path. Implementations hand the entry to
// a background writer and report "audit channel full" instead of waiting
// when it falls behind.
//
// Close flushes everything already accepted and stops the writer. Record
// after Close returns an error.
type ValuationAuditor interface {
	Record(entry Entry) error
	Close() error
}
