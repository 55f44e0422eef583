package sink

import (
	"context"
	"sync"

	"groupscout/pkg/scrape"
)

// Mock is an in-memory Sink for tests. When FailWrites is set, every write
// returns WriteErr and nothing is recorded, matching the contract that a
// failed write persists nothing observable.
type Mock struct {
	mu sync.Mutex

	// FailWrites makes WriteContacts and WriteStats fail with WriteErr.
	FailWrites bool
	WriteErr   error

	Contacts []scrape.Contact
	Stats    []scrape.RunStats
	Lines    []string
}

// NewMock creates an empty Mock sink.
func NewMock() *Mock { return &Mock{} }

// Name implements Sink.
func (m *Mock) Name() string { return "mock" }

// WriteContacts implements Sink.
func (m *Mock) WriteContacts(_ context.Context, contacts []scrape.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return m.WriteErr
	}
	if len(contacts) == 0 {
		return nil
	}
	m.Contacts = append(m.Contacts, contacts...)
	return nil
}

// WriteStats implements Sink.
func (m *Mock) WriteStats(_ context.Context, stats scrape.RunStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return m.WriteErr
	}
	m.Stats = append(m.Stats, stats)
	return nil
}

// Log implements Sink.
func (m *Mock) Log(_ context.Context, level Level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = append(m.Lines, string(level)+" "+msg)
}

// ContactCount returns how many contacts were persisted.
func (m *Mock) ContactCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Contacts)
}

var _ Sink = (*Mock)(nil)
