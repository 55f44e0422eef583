package sink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"groupscout/pkg/scrape"
)

// Fanout drives a set of sinks as one. Each sink's failure is captured
// independently so one broken sink does not stop the others from receiving
// the batch.
type Fanout struct {
	sinks  []Sink
	logger *slog.Logger
}

// NewFanout creates a Fanout over the given sinks.
func NewFanout(logger *slog.Logger, sinks ...Sink) *Fanout {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fanout{sinks: sinks, logger: logger}
}

// Name implements Sink.
func (f *Fanout) Name() string { return "fanout" }

// Len returns the number of wrapped sinks.
func (f *Fanout) Len() int { return len(f.sinks) }

// WriteContacts appends the batch to every sink and joins the failures.
func (f *Fanout) WriteContacts(ctx context.Context, contacts []scrape.Contact) error {
	if len(contacts) == 0 {
		return nil
	}
	var errs []error
	for _, s := range f.sinks {
		if err := s.WriteContacts(ctx, contacts); err != nil {
			f.logger.Error("sink rejected contact batch",
				"sink", s.Name(),
				"contacts", len(contacts),
				"error", err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// WriteStats appends the stats row to every sink and joins the failures.
func (f *Fanout) WriteStats(ctx context.Context, stats scrape.RunStats) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.WriteStats(ctx, stats); err != nil {
			f.logger.Error("sink rejected stats row", "sink", s.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Log forwards the line to every sink. Best-effort all the way down.
func (f *Fanout) Log(ctx context.Context, level Level, msg string) {
	for _, s := range f.sinks {
		s.Log(ctx, level, msg)
	}
}
