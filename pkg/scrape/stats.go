package scrape

import "time"

// RunStats aggregates counters for one orchestration run. Created at run
// start, finalised at run end, persisted to the stats sheet, then discarded.
//
// Invariants: WithUsername <= Contacts and WithPhone <= Contacts.
type RunStats struct {
	// Groups is the number of requested groups, including ones that
	// contributed zero contacts.
	Groups int `json:"groups"`

	// Contacts is the total number of collected contacts.
	Contacts int `json:"contacts"`

	WithUsername int `json:"with_username"`
	WithPhone    int `json:"with_phone"`

	// Errors counts groups that failed to resolve or collect.
	Errors int `json:"errors"`

	Duration time.Duration `json:"duration"`
}

// Tally folds a batch of contacts into the counters.
func (s *RunStats) Tally(contacts []Contact) {
	for _, c := range contacts {
		s.Contacts++
		if c.HasUsername() {
			s.WithUsername++
		}
		if c.HasPhone() {
			s.WithPhone++
		}
	}
}
