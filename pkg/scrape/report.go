package scrape

import (
	"fmt"
	"strings"
)

// Outcome classifies how a run ended. The orchestrator sets it from explicit
// stage results so callers can decide what to tell the requester without
// guessing from side effects.
type Outcome string

const (
	// OutcomeSuccess means every stage completed and all sinks accepted the batch.
	OutcomeSuccess Outcome = "success"
	// OutcomePartial means contacts were collected but at least one sink
	// rejected the batch; the in-memory summary is still valid.
	OutcomePartial Outcome = "partial"
	// OutcomeFailed means the run aborted before persisting anything.
	OutcomeFailed Outcome = "failed"
)

// GroupResult is the per-group contribution to a run.
type GroupResult struct {
	// Target is the requester-supplied group string.
	Target string `json:"target"`

	// Contacts is how many contacts the group contributed after filtering.
	Contacts int `json:"contacts"`

	// Failed marks a group whose resolution or collection errored. A failed
	// group contributes zero contacts but does not abort the run.
	Failed bool `json:"failed,omitempty"`
}

// RunReport is the result of one orchestrated run.
type RunReport struct {
	Outcome Outcome       `json:"outcome"`
	Stats   RunStats      `json:"stats"`
	Groups  []GroupResult `json:"groups"`

	// PersistErr holds the sink failure behind an OutcomePartial.
	PersistErr error `json:"-"`

	// Err holds the cause behind an OutcomeFailed.
	Err error `json:"-"`
}

// Summary renders the human-readable result sent back to the requester.
// It is produced regardless of whether any contacts were found.
func (r RunReport) Summary() string {
	if r.Outcome == OutcomeFailed {
		return fmt.Sprintf("Run failed: %v", r.Err)
	}

	var b strings.Builder
	b.WriteString("Done!\n\n")
	fmt.Fprintf(&b, "Groups: %d\n", r.Stats.Groups)
	fmt.Fprintf(&b, "Contacts: %d\n", r.Stats.Contacts)
	fmt.Fprintf(&b, "With username: %d\n", r.Stats.WithUsername)
	fmt.Fprintf(&b, "With phone: %d\n", r.Stats.WithPhone)
	if r.Stats.Errors > 0 {
		fmt.Fprintf(&b, "Failed groups: %d\n", r.Stats.Errors)
	}

	for _, g := range r.Groups {
		if g.Failed {
			fmt.Fprintf(&b, "\n%s: failed", g.Target)
			continue
		}
		fmt.Fprintf(&b, "\n%s: %d contacts", g.Target, g.Contacts)
	}

	switch r.Outcome {
	case OutcomePartial:
		b.WriteString("\n\nWarning: saving was incomplete, some rows may be missing.")
	case OutcomeSuccess:
		if r.Stats.Contacts > 0 {
			b.WriteString("\n\nSaved to the spreadsheet.")
		}
	}
	return b.String()
}
