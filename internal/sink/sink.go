// Package sink defines the persistence boundary for collected contacts and
// run statistics. Concrete sinks (Google Sheets, the local SQLite archive)
// live under modules/sink.
package sink

import (
	"context"

	"groupscout/pkg/scrape"
)

// Level tags a log-sheet entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Sink persists contact batches and run statistics.
//
// WriteContacts and WriteStats return errors so the orchestrator can report a
// partial outcome; Log is best-effort by contract and must swallow its own
// failures.
type Sink interface {
	// Name identifies the sink in logs and reports.
	Name() string

	// WriteContacts appends a batch of contacts. Must be a no-op on an
	// empty batch.
	WriteContacts(ctx context.Context, contacts []scrape.Contact) error

	// WriteStats appends one run's statistics.
	WriteStats(ctx context.Context, stats scrape.RunStats) error

	// Log appends a line to the sink's log surface, if it has one.
	Log(ctx context.Context, level Level, msg string)
}
